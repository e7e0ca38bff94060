// internal/input/keymap.go
package input

import (
	"github.com/gdamore/tcell/v2"
)

// Keymap maps special keys to board actions.
type Keymap map[tcell.Key]Action

// RuneKeymap maps plain runes to board actions.
type RuneKeymap map[rune]Action

// InputProcessor translates tcell events into Actions.
type InputProcessor struct {
	keymap     Keymap
	runeKeymap RuneKeymap
}

// NewInputProcessor creates a processor with default keybindings.
func NewInputProcessor() *InputProcessor {
	p := &InputProcessor{
		keymap:     make(Keymap),
		runeKeymap: make(RuneKeymap),
	}
	p.loadDefaultBindings()
	return p
}

func (p *InputProcessor) loadDefaultBindings() {
	// --- Simple Keys ---
	p.keymap[tcell.KeyUp] = ActionSelectUp
	p.keymap[tcell.KeyDown] = ActionSelectDown
	p.keymap[tcell.KeyEscape] = ActionQuit
	p.keymap[tcell.KeyCtrlC] = ActionQuit
	p.keymap[tcell.KeyCtrlZ] = ActionUndo
	p.keymap[tcell.KeyCtrlY] = ActionRedo

	// --- Runes ---
	p.runeKeymap['q'] = ActionQuit
	p.runeKeymap['k'] = ActionSelectUp
	p.runeKeymap['j'] = ActionSelectDown
	p.runeKeymap['+'] = ActionGrow
	p.runeKeymap['='] = ActionGrow // unshifted '+'
	p.runeKeymap['-'] = ActionShrink
	p.runeKeymap['c'] = ActionCycleColor
	p.runeKeymap['a'] = ActionAddItem
	p.runeKeymap['d'] = ActionRemoveItem
	p.runeKeymap['m'] = ActionMoveItemToFront
	p.runeKeymap['b'] = ActionToggleBatch
	p.runeKeymap['u'] = ActionUndo
	p.runeKeymap['r'] = ActionRedo
	p.runeKeymap['x'] = ActionReset
	p.runeKeymap['y'] = ActionCopyHistory
	p.runeKeymap['p'] = ActionPasteItem
	p.runeKeymap['L'] = ActionToggleDebugLog
}

// Bind maps r to action, replacing any previous binding.
func (p *InputProcessor) Bind(r rune, action Action) {
	p.runeKeymap[r] = action
}

// ProcessEvent returns the action bound to ev, or ActionUnknown.
func (p *InputProcessor) ProcessEvent(ev *tcell.EventKey) Action {
	key := ev.Key()
	mod := ev.Modifiers()

	// Ctrl+letter keys already carry the modifier in the key itself
	if key >= tcell.KeyCtrlA && key <= tcell.KeyCtrlZ {
		mod &^= tcell.ModCtrl
	}

	if mod == tcell.ModNone || mod == tcell.ModShift {
		if action, ok := p.keymap[key]; ok {
			return action
		}
	}

	// Shift is allowed since '+' needs it on most layouts
	if key == tcell.KeyRune && (mod == tcell.ModNone || mod == tcell.ModShift) {
		if action, ok := p.runeKeymap[ev.Rune()]; ok {
			return action
		}
	}
	return ActionUnknown
}
