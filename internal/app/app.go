// Package app runs the interactive board editor.
package app

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/bethropolis/mementor"
	"github.com/bethropolis/mementor/internal/board"
	"github.com/bethropolis/mementor/internal/clipboard"
	"github.com/bethropolis/mementor/internal/config"
	"github.com/bethropolis/mementor/internal/input"
	"github.com/bethropolis/mementor/internal/logger"
	"github.com/bethropolis/mementor/internal/statusbar"
	"github.com/bethropolis/mementor/internal/theme"
	"github.com/bethropolis/mementor/internal/tui"
	"github.com/gdamore/tcell/v2"
)

var colors = []string{"red", "green", "blue", "yellow"}

// App encapsulates the components and main loop of the board editor.
type App struct {
	ctx        context.Context
	tuiManager *tui.TUI
	board      *board.Board
	statusBar  *statusbar.StatusBar
	clipboard  *clipboard.Manager
	input      *input.InputProcessor
	theme      *theme.Theme
	cfg        config.BoardConfig

	selected    int
	logLevel    slog.Level // restored when debug logging is toggled off
	colorIndex  int
	subscribers []mementor.SubscriptionID
}

// New creates an app drawing on tuiManager.
func New(ctx context.Context, tuiManager *tui.TUI, cfg config.BoardConfig, clip *clipboard.Manager) *App {
	th, err := theme.Load(cfg.ThemeFile)
	if err != nil {
		logger.Warnf("App: %v; using the built-in theme", err)
		th = theme.Default()
	}
	sbCfg := statusbar.Config{
		StyleDefault:   th.GetStyle(theme.StyleStatusBar),
		StyleBatch:     th.GetStyle(theme.StyleStatusBarBatch),
		StyleMessage:   th.GetStyle(theme.StyleStatusBarMessage),
		MessageTimeout: config.MessageTimeout,
	}

	a := &App{
		ctx:        ctx,
		tuiManager: tuiManager,
		board:      board.New(board.Options{InitialRadius: cfg.InitialRadius}),
		statusBar:  statusbar.New(sbCfg),
		clipboard:  clip,
		input:      input.NewInputProcessor(),
		theme:      th,
		cfg:        cfg,
		logLevel:   logger.Level(),
	}
	if a.logLevel == slog.LevelDebug {
		a.logLevel = slog.LevelInfo
	}
	history := a.board.History()
	a.subscribers = append(a.subscribers, history.Subscribe(a.onHistoryChange))
	a.syncStatus()
	return a
}

// Board returns the board being edited.
func (a *App) Board() *board.Board { return a.board }

// StatusBar returns the app's status bar.
func (a *App) StatusBar() *statusbar.StatusBar { return a.statusBar }

// onHistoryChange keeps the status line in step with the history.
func (a *App) onHistoryChange(c mementor.Change) {
	logger.DebugTagf("app", "History %s: %s", c.Kind, mementor.Describe(c.Event))
	switch c.Kind {
	case mementor.ChangeUndone:
		a.statusBar.SetTemporaryMessage("Undid: %s", mementor.Describe(c.Event))
	case mementor.ChangeRedone:
		a.statusBar.SetTemporaryMessage("Redid: %s", mementor.Describe(c.Event))
	case mementor.ChangeReset:
		a.statusBar.SetTemporaryMessage("History cleared")
	}
	a.syncStatus()
}

func (a *App) syncStatus() {
	st := a.board.State()
	a.statusBar.SetHistoryInfo(st.UndoCount, st.RedoCount, st.InBatch, st.Tracking)
	if n := len(st.Items); a.selected >= n {
		a.selected = max(n-1, 0)
	}
}

// Run draws and processes input until the user quits.
func (a *App) Run() error {
	defer a.Close()
	for {
		a.Draw()
		switch ev := a.tuiManager.PollEvent().(type) {
		case nil:
			return nil // screen finalized
		case *tcell.EventResize:
			a.tuiManager.Sync()
		case *tcell.EventKey:
			if a.HandleKey(ev) {
				logger.Infof("Quit requested")
				return nil
			}
		}
	}
}

// Close detaches the app from the board's history.
func (a *App) Close() {
	for _, id := range a.subscribers {
		a.board.History().Unsubscribe(id)
	}
	a.subscribers = nil
}

// Draw renders one frame.
func (a *App) Draw() {
	a.tuiManager.Clear()
	tui.DrawBoard(a.tuiManager, tui.View{
		State:       a.board.State(),
		History:     a.board.HistoryLines(),
		Selected:    a.selected,
		HistoryRows: a.cfg.HistoryRows,
		Theme:       a.theme,
	})
	w, h := a.tuiManager.Size()
	a.statusBar.Draw(a.tuiManager.GetScreen(), w, h)
	a.tuiManager.Show()
}

// HandleKey applies a key press. It returns true when the app should quit.
func (a *App) HandleKey(ev *tcell.EventKey) bool {
	action := a.input.ProcessEvent(ev)
	if action == input.ActionUnknown {
		return false
	}
	logger.DebugTagf("input", "Key %s -> %s", ev.Name(), action)

	var err error
	switch action {
	case input.ActionQuit:
		return true
	case input.ActionSelectUp:
		a.moveSelection(-1)
	case input.ActionSelectDown:
		a.moveSelection(1)
	case input.ActionGrow:
		err = a.board.Grow(a.cfg.RadiusStep)
	case input.ActionShrink:
		err = a.board.Grow(-a.cfg.RadiusStep)
	case input.ActionCycleColor:
		a.colorIndex = (a.colorIndex + 1) % len(colors)
		err = a.board.SetColor(colors[a.colorIndex])
	case input.ActionAddItem:
		var name string
		if name, err = a.board.NewItem(); err == nil {
			a.selected = a.board.ItemCount() - 1
			logger.DebugTagf("app", "Added %s", name)
		}
	case input.ActionRemoveItem:
		if item := a.board.ItemAt(a.selected); item != "" {
			err = a.board.RemoveItem(item)
		}
	case input.ActionMoveItemToFront:
		if item := a.board.ItemAt(a.selected); item != "" {
			if err = a.board.MoveItem(item, 0); err == nil {
				a.selected = 0
			}
		}
	case input.ActionToggleBatch:
		var open bool
		if open, err = a.board.ToggleBatch(); err == nil {
			if open {
				a.statusBar.SetTemporaryMessage("Batch started")
			} else {
				a.statusBar.ResetTemporaryMessage()
			}
		}
	case input.ActionUndo:
		err = a.board.Undo(a.ctx)
	case input.ActionRedo:
		err = a.board.Redo(a.ctx)
	case input.ActionReset:
		a.board.Reset()
	case input.ActionCopyHistory:
		err = a.copyHistory()
	case input.ActionPasteItem:
		err = a.pasteItem()
	case input.ActionToggleDebugLog:
		a.toggleDebugLog()
	}

	if err != nil {
		a.report(err)
	}
	a.syncStatus()
	return false
}

func (a *App) moveSelection(delta int) {
	n := a.board.ItemCount()
	if n == 0 {
		a.selected = 0
		return
	}
	a.selected = min(max(a.selected+delta, 0), n-1)
}

func (a *App) copyHistory() error {
	lines := a.board.HistoryLines()
	if len(lines) == 0 {
		a.statusBar.SetTemporaryMessage("History is empty")
		return nil
	}
	system, err := a.clipboard.Copy(strings.Join(lines, "\n"))
	if err != nil {
		return err
	}
	where := "register"
	if system {
		where = "system clipboard"
	}
	a.statusBar.SetTemporaryMessage("Copied %d history lines to %s", len(lines), where)
	return nil
}

// pasteItem adds an item named by the first line of the clipboard.
func (a *App) pasteItem() error {
	text, err := a.clipboard.Paste()
	if err != nil {
		return err
	}
	name, _, _ := strings.Cut(text, "\n")
	name = strings.TrimSpace(name)
	if name == "" {
		a.statusBar.SetTemporaryMessage("Clipboard is empty")
		return nil
	}
	if err := a.board.AddItem(name); err != nil {
		return err
	}
	a.selected = a.board.ItemCount() - 1
	return nil
}

// toggleDebugLog switches between debug logging and the level in effect
// before debug was turned on.
func (a *App) toggleDebugLog() {
	if logger.Level() == slog.LevelDebug {
		logger.SetLevel(a.logLevel)
		a.statusBar.SetTemporaryMessage("Debug logging off")
		return
	}
	a.logLevel = logger.Level()
	logger.SetLevel(slog.LevelDebug)
	a.statusBar.SetTemporaryMessage("Debug logging on")
	logger.DebugTagf("app", "Debug logging enabled from the board")
}

func (a *App) report(err error) {
	switch {
	case errors.Is(err, mementor.ErrNothingToUndo):
		a.statusBar.SetTemporaryMessage("Nothing to undo")
	case errors.Is(err, mementor.ErrNothingToRedo):
		a.statusBar.SetTemporaryMessage("Nothing to redo")
	case errors.Is(err, mementor.ErrBatchOpen):
		a.statusBar.SetTemporaryMessage("Close the batch first (b)")
	default:
		logger.Errorf("App: %v", err)
		a.statusBar.SetTemporaryMessage("Error: %v", err)
	}
}
