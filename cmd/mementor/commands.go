package main

import (
	"fmt"
	"io"

	"github.com/bethropolis/mementor/internal/app"
	"github.com/bethropolis/mementor/internal/clipboard"
	"github.com/bethropolis/mementor/internal/config"
	"github.com/bethropolis/mementor/internal/logger"
	"github.com/bethropolis/mementor/internal/script"
	"github.com/bethropolis/mementor/internal/tui"
	"github.com/spf13/cobra"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

// cli holds state shared by the subcommands.
type cli struct {
	flags     config.Flags
	cfg       *config.Config
	logCloser io.Closer
}

func newRootCmd() *cobra.Command {
	c := &cli{}
	root := &cobra.Command{
		Use:           config.AppName,
		Short:         "Undo/redo playground",
		Long:          "Records edits to a small board (a circle and a list of items) and lets you undo and redo them, interactively or from TOML scripts.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.setup(cmd)
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			if c.logCloser != nil {
				return c.logCloser.Close()
			}
			return nil
		},
	}
	c.flags.Define(root.PersistentFlags())

	root.AddCommand(c.runCmd(), c.tuiCmd(), versionCmd())
	return root
}

// setup loads configuration and initializes logging.
func (c *cli) setup(cmd *cobra.Command) error {
	cfg, err := c.flags.Resolve(cmd.Flags())
	if err != nil {
		return err
	}
	c.cfg = cfg

	closer, err := logger.Setup(cfg.Logger)
	if err != nil {
		return err
	}
	c.logCloser = closer
	logger.Debugf("Log level set to: %s", cfg.Logger.LogLevel)
	return nil
}

func (c *cli) runCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run <script.toml>...",
		Short: "Run scenario scripts and report the board after each step",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, path := range args {
				s, err := script.Load(path)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "== %s\n", s.Name)
				if err := script.Run(cmd.Context(), s, s.NewBoard(), out); err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}
			}
			return nil
		},
	}
}

func (c *cli) tuiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Edit the board interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if c.cfg.Logger.LogFilePath == "" {
				// stderr would draw over the screen
				logger.Init(c.cfg.Logger, io.Discard)
			}
			ui, err := tui.New()
			if err != nil {
				return fmt.Errorf("TUI initialization failed: %w", err)
			}
			clip := clipboard.NewManager(c.cfg.Board.SystemClipboard)
			logger.Infof("Starting board editor")
			return app.New(cmd.Context(), ui, c.cfg.Board, clip).Run()
		},
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", config.AppName, version)
		},
	}
}
