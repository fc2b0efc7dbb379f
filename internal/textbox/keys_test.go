package textbox

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/textbox/internal/event"
	"github.com/dshills/textbox/internal/input/key"
)

// press feeds key specs to the text box.
func press(t *testing.T, tb *TextBox, specs ...string) {
	t.Helper()
	for _, spec := range specs {
		ev, err := key.Parse(spec)
		require.NoError(t, err, spec)
		tb.HandleKey(ev)
	}
}

func TestHandleKeyTyping(t *testing.T) {
	tb, _, _ := newRecorded(t)
	press(t, tb, "h", "i", "<Space>", "A")
	assert.Equal(t, "hi A", tb.Text())
}

func TestHandleKeyNavigation(t *testing.T) {
	tests := []struct {
		name       string
		keys       []string
		wantAnchor int
		wantCursor int
	}{
		{"left", []string{"<Left>"}, 10, 10},
		{"home", []string{"<Home>"}, 0, 0},
		{"up is home", []string{"<Up>"}, 0, 0},
		{"end after home", []string{"<Home>", "<End>"}, 11, 11},
		{"down is end", []string{"<Home>", "<Down>"}, 11, 11},
		{"shift left extends", []string{"<S-Left>", "<S-Left>"}, 11, 9},
		{"shift home extends", []string{"<S-Home>"}, 11, 0},
		{"ctrl left word", []string{"<C-Left>"}, 6, 6},
		{"ctrl shift left word", []string{"<C-S-Left>"}, 11, 6},
		{"ctrl right word", []string{"<Home>", "<C-Right>"}, 5, 5},
		{"right collapses", []string{"<S-Left>", "<Right>"}, 11, 11},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tb := New(WithText("hello world"))
			press(t, tb, tt.keys...)
			assert.Equal(t, tt.wantAnchor, tb.Buffer().Anchor())
			assert.Equal(t, tt.wantCursor, tb.Buffer().Cursor())
		})
	}
}

func TestHandleKeyEditing(t *testing.T) {
	tests := []struct {
		name string
		keys []string
		want string
	}{
		{"backspace", []string{"<BS>"}, "hello worl"},
		{"delete at end", []string{"<Del>"}, "hello world"},
		{"delete", []string{"<Home>", "<Del>"}, "ello world"},
		{"ctrl backspace", []string{"<C-BS>"}, "hello "},
		{"ctrl w", []string{"<C-w>"}, "hello "},
		{"ctrl delete", []string{"<Home>", "<C-Del>"}, " world"},
		{"select all and type", []string{"<C-a>", "x"}, "x"},
		{"selection replaced", []string{"<S-Left>", "<S-Left>", "D"}, "hello worD"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tb := New(WithText("hello world"))
			press(t, tb, tt.keys...)
			assert.Equal(t, tt.want, tb.Text())
		})
	}
}

func TestHandleKeyClipboard(t *testing.T) {
	tb, _, clip := newRecorded(t, WithText("copy me"))

	press(t, tb, "<C-a>", "<C-c>", "<End>", "<C-v>")
	assert.Equal(t, "copy mecopy me", tb.Text())

	press(t, tb, "<C-a>", "<C-x>")
	assert.Empty(t, tb.Text())
	got, _ := clip.ReadText()
	assert.Equal(t, "copy mecopy me", got)

	press(t, tb, "<S-Ins>")
	assert.Equal(t, "copy mecopy me", tb.Text())

	press(t, tb, "<S-Home>", "<S-Del>")
	assert.Empty(t, tb.Text())

	require.NoError(t, clip.WriteText("x"))
	press(t, tb, "<C-a>", "<C-Ins>")
	got, _ = clip.ReadText()
	assert.Equal(t, "x", got, "ctrl+insert without selection copies nothing")
}

func TestHandleKeySubmit(t *testing.T) {
	tb, rec, _ := newRecorded(t, WithText("go"))
	press(t, tb, "<CR>")
	require.Len(t, rec.events, 1)
	assert.Equal(t, event.TopicSubmitted, rec.events[0].Topic)
}

func TestHandleKeyUnbound(t *testing.T) {
	tb := New(WithText("abc"))
	for _, spec := range []string{"<Esc>", "<Tab>", "<Ins>", "<C-q>", "<A-x>"} {
		ev, err := key.Parse(spec)
		require.NoError(t, err, spec)
		assert.False(t, tb.HandleKey(ev), spec)
	}
	assert.Equal(t, "abc", tb.Text())
}

func TestHandleKeyConsumed(t *testing.T) {
	tb := New()
	assert.True(t, tb.HandleKey(key.NewRuneEvent('z', key.ModNone)))
	assert.True(t, tb.HandleKey(key.NewSpecialEvent(key.KeyLeft, key.ModNone)))
	assert.True(t, tb.HandleKey(key.NewRuneEvent('a', key.ModCtrl)))
}
