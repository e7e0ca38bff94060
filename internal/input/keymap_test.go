package input

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
)

func TestProcessEvent(t *testing.T) {
	p := NewInputProcessor()
	tests := []struct {
		name string
		ev   *tcell.EventKey
		want Action
	}{
		{"undo rune", tcell.NewEventKey(tcell.KeyRune, 'u', tcell.ModNone), ActionUndo},
		{"redo rune", tcell.NewEventKey(tcell.KeyRune, 'r', tcell.ModNone), ActionRedo},
		{"shifted plus", tcell.NewEventKey(tcell.KeyRune, '+', tcell.ModShift), ActionGrow},
		{"ctrl-z", tcell.NewEventKey(tcell.KeyCtrlZ, 0, tcell.ModCtrl), ActionUndo},
		{"escape", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), ActionQuit},
		{"arrow", tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone), ActionSelectDown},
		{"paste", tcell.NewEventKey(tcell.KeyRune, 'p', tcell.ModNone), ActionPasteItem},
		{"debug log toggle", tcell.NewEventKey(tcell.KeyRune, 'L', tcell.ModShift), ActionToggleDebugLog},
		{"unbound rune", tcell.NewEventKey(tcell.KeyRune, 'z', tcell.ModNone), ActionUnknown},
		{"alt rune", tcell.NewEventKey(tcell.KeyRune, 'u', tcell.ModAlt), ActionUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, p.ProcessEvent(tt.ev))
		})
	}
}

func TestBind(t *testing.T) {
	p := NewInputProcessor()
	p.Bind('z', ActionUndo)
	assert.Equal(t, ActionUndo, p.ProcessEvent(tcell.NewEventKey(tcell.KeyRune, 'z', tcell.ModNone)))
	assert.Equal(t, "undo", ActionUndo.String())
}
