package buffer

import (
	"strings"
	"testing"
	"unicode/utf8"
)

// FuzzOperations drives a buffer through an arbitrary sequence of operations
// and checks the cursor and length invariants after each one.
func FuzzOperations(f *testing.F) {
	f.Add("hello", -1, []byte{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10})
	f.Add("", 5, []byte{0, 0, 0, 0, 0, 0, 0, 9})
	f.Add("日本語 text", 8, []byte{7, 3, 1, 1, 6, 0, 2, 4})
	f.Add("abc", 0, []byte{0, 6, 10, 5})

	f.Fuzz(func(t *testing.T, initial string, limit int, ops []byte) {
		if !utf8.ValidString(initial) {
			return
		}
		limit %= 64

		b := NewFromString(initial, WithMaxLength(limit))
		checkInvariants(t, b, -1)

		for i, op := range ops {
			arg := int(op>>4) - 4
			switch op % 11 {
			case 0:
				b.InsertText(strings.Repeat("x", int(op>>4)))
			case 1:
				b.MoveLeft(op&0x10 != 0)
			case 2:
				b.MoveRight(op&0x10 != 0)
			case 3:
				b.MoveHome(op&0x10 != 0)
			case 4:
				b.MoveEnd(op&0x10 != 0)
			case 5:
				b.EraseSelection()
			case 6:
				_ = b.DeleteText(arg, int(op>>6))
			case 7:
				b.SelectAll()
			case 8:
				_, _ = b.ReplaceRange(arg, arg+2, "yz")
			case 9:
				b.SetSelection(arg, b.Len()-arg)
			case 10:
				b.ReplaceSelection("ü")
			}
			checkInvariants(t, b, i)
		}
	})
}

func checkInvariants(t *testing.T, b *Buffer, step int) {
	t.Helper()

	n := b.Len()
	if b.Cursor() < 0 || b.Cursor() > n {
		t.Fatalf("step %d: cursor %d out of [0, %d]", step, b.Cursor(), n)
	}
	if b.Anchor() < 0 || b.Anchor() > n {
		t.Fatalf("step %d: anchor %d out of [0, %d]", step, b.Anchor(), n)
	}
	if limit := b.MaxLength(); limit >= 0 && n > limit {
		t.Fatalf("step %d: length %d exceeds limit %d", step, n, limit)
	}
}
