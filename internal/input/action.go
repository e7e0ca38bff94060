// internal/input/action.go
package input

// Action represents an operation on the board.
type Action int

// Define the set of possible board actions.
const (
	// --- Meta Actions ---
	ActionUnknown Action = iota // Default/invalid action
	ActionQuit

	// --- Selection ---
	ActionSelectUp
	ActionSelectDown

	// --- Board Edits ---
	ActionGrow
	ActionShrink
	ActionCycleColor
	ActionAddItem
	ActionRemoveItem
	ActionMoveItemToFront
	ActionPasteItem

	// --- History ---
	ActionToggleBatch
	ActionUndo
	ActionRedo
	ActionReset
	ActionCopyHistory

	// --- Diagnostics ---
	ActionToggleDebugLog
)

var actionNames = map[Action]string{
	ActionUnknown:         "unknown",
	ActionQuit:            "quit",
	ActionSelectUp:        "select_up",
	ActionSelectDown:      "select_down",
	ActionGrow:            "grow",
	ActionShrink:          "shrink",
	ActionCycleColor:      "cycle_color",
	ActionAddItem:         "add_item",
	ActionRemoveItem:      "remove_item",
	ActionMoveItemToFront: "move_to_front",
	ActionPasteItem:       "paste_item",
	ActionToggleBatch:     "toggle_batch",
	ActionUndo:            "undo",
	ActionRedo:            "redo",
	ActionReset:           "reset",
	ActionCopyHistory:     "copy_history",
	ActionToggleDebugLog:  "toggle_debug_log",
}

func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "unknown"
}
