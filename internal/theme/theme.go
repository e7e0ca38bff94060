// internal/theme/theme.go
package theme

import (
	"strings"

	"github.com/bethropolis/mementor/internal/logger"
	"github.com/gdamore/tcell/v2"
)

// Style names looked up by the board view and status bar.
const (
	StyleDefault          = "Default"
	StyleTitle            = "Title"
	StyleSelected         = "Selected"
	StyleCircle           = "Circle"
	StyleHistoryUndo      = "History.undo"
	StyleHistoryRedo      = "History.redo"
	StyleStatusBar        = "StatusBar"
	StyleStatusBarBatch   = "StatusBar.batch"
	StyleStatusBarMessage = "StatusBar.message"
)

// Theme is a named set of styles.
type Theme struct {
	Name   string
	IsDark bool
	Styles map[string]tcell.Style
}

// GetStyle returns the named style, falling back to the part before the
// first dot and then to "Default".
func (t *Theme) GetStyle(name string) tcell.Style {
	// 1. Try exact name
	if style, ok := t.Styles[name]; ok {
		return style
	}

	// 2. Try base name (part before first dot)
	if dotIndex := strings.Index(name, "."); dotIndex != -1 {
		baseName := name[:dotIndex]
		if style, ok := t.Styles[baseName]; ok {
			logger.DebugTagf("theme", "Theme '%s': Style '%s' not found, using base '%s'", t.Name, name, baseName)
			return style
		}
	}

	// 3. Return "Default" style
	if defStyle, ok := t.Styles[StyleDefault]; ok {
		if name != StyleDefault {
			logger.DebugTagf("theme", "Theme '%s': Style '%s' not found, falling back to 'Default'", t.Name, name)
		}
		return defStyle
	}

	// 4. Absolute fallback
	logger.Warnf("Theme '%s': Style '%s' and 'Default' style not found, using tcell default.", t.Name, name)
	return tcell.StyleDefault
}

// Default returns the built-in theme.
func Default() *Theme {
	base := tcell.StyleDefault
	statusBG := tcell.ColorBlue

	return &Theme{
		Name:   "Board Default",
		IsDark: true,
		Styles: map[string]tcell.Style{
			StyleDefault:     base,
			StyleTitle:       base.Bold(true),
			StyleSelected:    base.Reverse(true),
			StyleCircle:      base.Foreground(tcell.ColorAqua),
			StyleHistoryUndo: base,
			StyleHistoryRedo: base.Foreground(tcell.ColorGray),

			StyleStatusBar:        base.Foreground(tcell.ColorBlack).Background(statusBG),
			StyleStatusBarBatch:   base.Foreground(tcell.ColorBlack).Background(tcell.ColorYellow),
			StyleStatusBarMessage: base.Foreground(tcell.ColorWhite).Background(statusBG).Bold(true),
		},
	}
}
