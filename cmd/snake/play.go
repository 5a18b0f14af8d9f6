package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/platform/tui"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in this terminal",
	Long: `Start a game in the current terminal.

Controls:
  Enter/Space      - Start, or restart after game over
  Arrows/WASD/hjkl - Steer
  ?                - Toggle help
  Q/Ctrl+C         - Quit

Examples:
  snake play
  snake play --seed 42
  snake play --log-file /tmp/snake.log --log-level debug`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func runPlay(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger, closeLog, err := newFileLogger(flagLogFile, flagLogLevel)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := closeLog(); closeErr != nil {
			fmt.Fprintf(os.Stderr, "cannot close log file: %v\n", closeErr)
		}
	}()

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	rc := core.RuntimeConfig{
		ScreenW:   width,
		ScreenH:   height,
		TickDelay: cfg.TickDelay(),
		Seed:      cfg.Seed,
	}

	logger.Info("starting game", "cols", cfg.Grid.Cols, "rows", cfg.Grid.Rows, "tick", rc.TickDelay)
	if err := tui.Run(cfg, rc, logger); err != nil {
		return fmt.Errorf("error running game: %w", err)
	}
	return nil
}

// newFileLogger returns a logger writing to path, or discarding when path is empty.
func newFileLogger(path, level string) (*log.Logger, func() error, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	if path == "" {
		logger := log.New(io.Discard)
		return logger, func() error { return nil }, nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open log file %s: %w", path, err)
	}

	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          "snake",
		Level:           lvl,
	})
	return logger, f.Close, nil
}
