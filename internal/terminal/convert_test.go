package terminal

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ferrum-editor/ferrum/internal/input/key"
)

func TestConvertKey(t *testing.T) {
	tests := []struct {
		name string
		ev   *tcell.EventKey
		key  string
		mods key.Modifiers
	}{
		{"rune", tcell.NewEventKey(tcell.KeyRune, 's', tcell.ModNone), "s", key.Modifiers{}},
		{"upper rune sets shift", tcell.NewEventKey(tcell.KeyRune, 'S', tcell.ModNone), "S", key.Modifiers{Shift: true}},
		{"alt rune", tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModAlt), "x", key.Modifiers{Alt: true}},
		{"meta rune", tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModMeta), "q", key.Modifiers{Meta: true}},
		{"space", tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone), " ", key.Modifiers{}},
		{"escape", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), "Escape", key.Modifiers{}},
		{"arrow with shift", tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModShift), "ArrowUp", key.Modifiers{Shift: true}},
		{"page down", tcell.NewEventKey(tcell.KeyPgDn, 0, tcell.ModNone), "PageDown", key.Modifiers{}},
		{"function key", tcell.NewEventKey(tcell.KeyF5, 0, tcell.ModNone), "F5", key.Modifiers{}},
		{"backtab", tcell.NewEventKey(tcell.KeyBacktab, 0, tcell.ModNone), "Tab", key.Modifiers{Shift: true}},
		{"ctrl letter", tcell.NewEventKey(tcell.KeyCtrlP, 0, tcell.ModCtrl), "p", key.Modifiers{Ctrl: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ConvertKey(tt.ev)
			require.NotNil(t, got)
			assert.Equal(t, tt.key, got.Key)
			assert.Equal(t, tt.mods, got.Modifiers())
			assert.False(t, got.Timestamp.IsZero())
		})
	}
}

func TestConvertKeyMatchesBindings(t *testing.T) {
	save := key.MustParseShortcut("Cmd+S")

	ev := ConvertKey(tcell.NewEventKey(tcell.KeyCtrlS, 0, tcell.ModCtrl))
	require.NotNil(t, ev)
	assert.True(t, key.Matches(save, ev, key.PlatformOther))
	assert.False(t, key.Matches(save, ev, key.PlatformMac))

	esc := ConvertKey(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone))
	assert.True(t, key.Matches(key.MustParseShortcut("Esc"), esc, key.PlatformOther))
}
