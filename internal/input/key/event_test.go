package key

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEventDefaultAndPropagation(t *testing.T) {
	ev := NewEvent("s", Modifiers{Meta: true})

	assert.False(t, ev.DefaultPrevented())
	assert.False(t, ev.PropagationStopped())

	ev.PreventDefault()
	ev.StopPropagation()

	assert.True(t, ev.DefaultPrevented())
	assert.True(t, ev.PropagationStopped())
	assert.False(t, ev.Timestamp.IsZero())
}

func TestEventString(t *testing.T) {
	assert.Equal(t, "Ctrl+Shift+P", NewEvent("P", Modifiers{Ctrl: true, Shift: true}).String())
	assert.Equal(t, "Space", NewEvent(" ", Modifiers{}).String())
}

func TestTargetIsTextEntry(t *testing.T) {
	tests := []struct {
		target Target
		want   bool
	}{
		{Target{Kind: TargetNone}, false},
		{Target{Kind: TargetEditor}, false},
		{Target{Kind: TargetPanel}, false},
		{Target{Kind: TargetTextInput}, true},
		{Target{Kind: TargetTextArea}, true},
		{Target{Kind: TargetPanel, ContentEditable: true}, true},
	}

	for _, tt := range tests {
		t.Run(tt.target.Kind.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.target.IsTextEntry())
		})
	}
}

func TestKeybindingString(t *testing.T) {
	assert.Equal(t, "Ctrl+Shift+p", MustParseShortcut("Shift+Ctrl+P").String())
	assert.Equal(t, "space", MustParseShortcut("Space").String())
	assert.True(t, MustParseShortcut("Up").IsArrowKey())
}
