// Package script runs TOML scenario files against a board.
//
// A script has an optional [setup] table and a list of [[step]] tables:
//
//	[setup]
//	radius = 0
//
//	[[step]]
//	op = "set_radius"
//	value = 1
//	repeat = 3
//
//	[[step]]
//	op = "expect"
//	radius = 1
//	undo = 1
package script

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/BurntSushi/toml"
	"github.com/bethropolis/mementor/internal/board"
	"github.com/bethropolis/mementor/internal/logger"
)

// Operations understood by Run.
const (
	OpSetRadius        = "set_radius"
	OpSetRadiusNoTrack = "notrack_set_radius"
	OpSetColor         = "set_color"
	OpAdd              = "add"
	OpRemove           = "remove"
	OpMove             = "move"
	OpBegin            = "begin"
	OpEnd              = "end"
	OpUndo             = "undo"
	OpRedo             = "redo"
	OpReset            = "reset"
	OpExpect           = "expect"
)

// ErrExpectation is returned when an expect step does not match the board.
var ErrExpectation = errors.New("expectation failed")

// Setup describes the board before the first step.
type Setup struct {
	Radius int      `toml:"radius"`
	Color  string   `toml:"color"`
	Items  []string `toml:"items"`
}

// Step is a single scripted operation. Fields not used by an op are ignored.
type Step struct {
	Op     string `toml:"op"`
	Value  int    `toml:"value"`
	Color  string `toml:"color"`
	Item   string `toml:"item"`
	Index  int    `toml:"index"`
	Repeat int    `toml:"repeat"`

	// Expected error kind for this step: "invalid_state", "invalid_index", ...
	Error string `toml:"error"`

	// Expectations, checked only when set
	Radius *int      `toml:"radius"`
	Items  *[]string `toml:"items"`
	Undo   *int      `toml:"undo"`
	Redo   *int      `toml:"redo"`
}

// Script is a parsed scenario.
type Script struct {
	Name  string `toml:"name"`
	Setup Setup  `toml:"setup"`
	Steps []Step `toml:"step"`
}

// Parse decodes a script from TOML text.
func Parse(data string) (*Script, error) {
	var s Script
	md, err := toml.Decode(data, &s)
	if err != nil {
		return nil, fmt.Errorf("failed to parse script: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		logger.Warnf("Script: Unrecognized keys: %v", undecoded)
	}
	return &s, nil
}

// Load reads and decodes the script at path.
func Load(path string) (*Script, error) {
	var s Script
	md, err := toml.DecodeFile(path, &s)
	if err != nil {
		return nil, fmt.Errorf("failed to parse script '%s': %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		logger.Warnf("Script '%s': Unrecognized keys: %v", path, undecoded)
	}
	if s.Name == "" {
		s.Name = path
	}
	return &s, nil
}

// NewBoard builds the board described by the script's setup.
func (s *Script) NewBoard() *board.Board {
	return board.New(board.Options{
		InitialRadius: s.Setup.Radius,
		Color:         s.Setup.Color,
		Items:         s.Setup.Items,
	})
}

// Run executes every step against b, writing one line per step to out.
// It stops at the first failing step.
func Run(ctx context.Context, s *Script, b *board.Board, out io.Writer) error {
	for i, step := range s.Steps {
		if err := ctx.Err(); err != nil {
			return err
		}
		times := max(step.Repeat, 1)
		for n := 0; n < times; n++ {
			err := apply(ctx, b, step)
			if err = checkError(step, err); err != nil {
				return fmt.Errorf("step %d (%s): %w", i+1, step.Op, err)
			}
		}
		fmt.Fprintf(out, "%3d %-18s %s\n", i+1, step.Op, summary(b.State()))
	}
	logger.InfoTagf("script", "Script %q finished after %d steps", s.Name, len(s.Steps))
	return nil
}

func apply(ctx context.Context, b *board.Board, step Step) error {
	switch step.Op {
	case OpSetRadius:
		return b.SetRadius(step.Value)
	case OpSetRadiusNoTrack:
		return b.SetRadiusUntracked(step.Value)
	case OpSetColor:
		return b.SetColor(step.Color)
	case OpAdd:
		return b.AddItem(step.Item)
	case OpRemove:
		return b.RemoveItem(step.Item)
	case OpMove:
		return b.MoveItem(step.Item, step.Index)
	case OpBegin:
		return b.History().BeginBatch()
	case OpEnd:
		return b.History().EndBatch()
	case OpUndo:
		return b.Undo(ctx)
	case OpRedo:
		return b.Redo(ctx)
	case OpReset:
		b.Reset()
		return nil
	case OpExpect:
		return expect(b.State(), step)
	default:
		return fmt.Errorf("unknown op %q", step.Op)
	}
}

func expect(st board.State, step Step) error {
	var errs []error
	if step.Radius != nil && *step.Radius != st.Radius {
		errs = append(errs, fmt.Errorf("%w: radius is %d, want %d", ErrExpectation, st.Radius, *step.Radius))
	}
	if step.Items != nil && !slices.Equal(*step.Items, st.Items) {
		errs = append(errs, fmt.Errorf("%w: items are %v, want %v", ErrExpectation, st.Items, *step.Items))
	}
	if step.Undo != nil && *step.Undo != st.UndoCount {
		errs = append(errs, fmt.Errorf("%w: undo count is %d, want %d", ErrExpectation, st.UndoCount, *step.Undo))
	}
	if step.Redo != nil && *step.Redo != st.RedoCount {
		errs = append(errs, fmt.Errorf("%w: redo count is %d, want %d", ErrExpectation, st.RedoCount, *step.Redo))
	}
	return errors.Join(errs...)
}

func summary(st board.State) string {
	batch := ""
	if st.InBatch {
		batch = " [batch]"
	}
	return fmt.Sprintf("radius=%d color=%q items=%v undo=%d redo=%d%s",
		st.Radius, st.Color, st.Items, st.UndoCount, st.RedoCount, batch)
}
