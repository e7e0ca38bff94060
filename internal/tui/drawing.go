package tui

import (
	"fmt"
	"strings"

	"github.com/bethropolis/mementor/internal/board"
	"github.com/bethropolis/mementor/internal/statusbar"
	"github.com/bethropolis/mementor/internal/theme"
	"github.com/gdamore/tcell/v2"
)

// View is everything DrawBoard needs for one frame.
type View struct {
	State       board.State
	History     []string
	Selected    int
	HistoryRows int
	Theme       *theme.Theme // nil means theme.Default()
}

// DrawBoard draws the circle, the item list and the history pane above the
// status line.
func DrawBoard(t *TUI, v View) {
	width, height := t.Size()
	viewHeight := height - 1 // status bar
	if viewHeight <= 0 || width <= 0 {
		return
	}
	s := t.screen
	th := v.Theme
	if th == nil {
		th = theme.Default()
	}
	styleTitle := th.GetStyle(theme.StyleTitle)
	y := 0
	line := func(text string, style tcell.Style) {
		if y < viewHeight {
			statusbar.DrawText(s, 0, y, width, text, style)
		}
		y++
	}

	color := v.State.Color
	if color == "" {
		color = "none"
	}
	line(fmt.Sprintf("Circle  radius=%d  color=%s", v.State.Radius, color), styleTitle)
	line(strings.Repeat("o", min(v.State.Radius, width)), th.GetStyle(theme.StyleCircle))
	y++

	line(fmt.Sprintf("Items (%d)", len(v.State.Items)), styleTitle)
	for i, item := range v.State.Items {
		if i == v.Selected {
			line("> "+item, th.GetStyle(theme.StyleSelected))
		} else {
			line("  "+item, th.GetStyle(theme.StyleDefault))
		}
	}
	y++

	if v.HistoryRows <= 0 {
		return
	}
	line("History", styleTitle)
	rows := v.History
	if len(rows) > v.HistoryRows {
		rows = rows[:v.HistoryRows]
	}
	for _, h := range rows {
		style := th.GetStyle(theme.StyleHistoryUndo)
		if strings.HasPrefix(strings.TrimSpace(h), "redo:") {
			style = th.GetStyle(theme.StyleHistoryRedo)
		}
		line(h, style)
	}
}
