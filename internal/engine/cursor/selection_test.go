package cursor

import "testing"

func TestNewSelection(t *testing.T) {
	sel := NewSelection(10, 20)

	if sel.Anchor != 10 {
		t.Errorf("expected anchor 10, got %d", sel.Anchor)
	}
	if sel.Head != 20 {
		t.Errorf("expected head 20, got %d", sel.Head)
	}
}

func TestNewCursorSelection(t *testing.T) {
	sel := NewCursorSelection(15)

	if sel.Anchor != 15 || sel.Head != 15 {
		t.Error("cursor selection should have anchor == head")
	}
	if !sel.IsEmpty() {
		t.Error("cursor selection should be empty")
	}
}

func TestSelectionRange(t *testing.T) {
	tests := []struct {
		name string
		sel  Selection
		want Range
	}{
		{"forward", NewSelection(2, 6), Range{Start: 2, End: 6}},
		{"backward", NewSelection(6, 2), Range{Start: 2, End: 6}},
		{"collapsed", NewCursorSelection(3), Range{Start: 3, End: 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.sel.Range(); got != tt.want {
				t.Errorf("Range() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSelectionDirection(t *testing.T) {
	if NewSelection(2, 6).IsBackward() {
		t.Error("2→6 should be forward")
	}
	if !NewSelection(6, 2).IsBackward() {
		t.Error("6→2 should be backward")
	}
}

func TestSelectionExtend(t *testing.T) {
	sel := NewCursorSelection(5).Extend(9)

	if sel.Anchor != 5 || sel.Head != 9 {
		t.Errorf("expected 5→9, got %s", sel)
	}

	sel = sel.Extend(1)
	if sel.Anchor != 5 || sel.Head != 1 {
		t.Errorf("expected 5→1, got %s", sel)
	}
}

func TestSelectionMoveTo(t *testing.T) {
	sel := NewSelection(8, 3)

	if got := sel.MoveTo(4); !got.Equals(NewCursorSelection(4)) {
		t.Errorf("MoveTo(4) = %s, want Cursor(4)", got)
	}
}

func TestSelectionClamp(t *testing.T) {
	tests := []struct {
		sel  Selection
		max  Offset
		want Selection
	}{
		{NewSelection(-3, 4), 10, NewSelection(0, 4)},
		{NewSelection(2, 40), 10, NewSelection(2, 10)},
		{NewSelection(12, -1), 10, NewSelection(10, 0)},
		{NewSelection(5, 5), -1, NewSelection(0, 0)},
	}

	for _, tt := range tests {
		if got := tt.sel.Clamp(tt.max); !got.Equals(tt.want) {
			t.Errorf("%s.Clamp(%d) = %s, want %s", tt.sel, tt.max, got, tt.want)
		}
	}
}

func TestSelectionString(t *testing.T) {
	tests := []struct {
		sel  Selection
		want string
	}{
		{NewCursorSelection(4), "Cursor(4)"},
		{NewSelection(1, 4), "Selection(1→4)"},
		{NewSelection(4, 1), "Selection(4←1)"},
	}

	for _, tt := range tests {
		if got := tt.sel.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestRange(t *testing.T) {
	r := Range{Start: 2, End: 5}
	if r.String() != "[2, 5)" {
		t.Errorf("String() = %q", r.String())
	}
}
