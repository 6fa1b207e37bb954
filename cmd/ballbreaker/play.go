package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/ball-breaker/internal/config"
	"github.com/vovakirdan/ball-breaker/internal/platform/tui"
)

var (
	flagMode       string
	flagStartLevel int
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play interactively",
	Long: `Play Ball Breaker in the terminal.

Without --mode or --level a menu asks for the game mode and starting level.

Controls:
  Left/A, Right/D  - Move
  Up/W/Space       - Fire
  P/Esc            - Pause
  R                - Restart
  I                - Save a screenshot to ~/.ballbreaker/screenshots
  ?                - Toggle help
  Q/Ctrl+C         - Quit

Examples:
  ballbreaker play
  ballbreaker play --mode endless
  ballbreaker play --mode campaign --level 4
  ballbreaker play --levels ./my-levels.yaml --log-file play.log`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagMode, "mode", "", "Level progression: endless or campaign")
	playCmd.Flags().IntVar(&flagStartLevel, "level", 0, "Starting level, 1-based (0 = ask)")
}

func runPlay(_ *cobra.Command, _ []string) error {
	catalog, err := loadLevels()
	if err != nil {
		return err
	}

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width, height = w, h
	}

	mode, start := flagMode, flagStartLevel-1
	if mode == "" && flagStartLevel == 0 {
		names := make([]string, 0, catalog.Count())
		for _, l := range catalog.Levels() {
			names = append(names, l.Name)
		}
		selection, selErr := tui.RunMenu(names, width, height)
		if selErr != nil {
			return selErr
		}
		if selection == nil {
			return nil
		}
		mode, start = selection.Mode, selection.Level
	}
	if mode == "" {
		mode = config.ModeCampaign
	}
	if start < 0 || start >= catalog.Count() {
		return fmt.Errorf("level must be between 1 and %d", catalog.Count())
	}
	flagMode = mode

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger, closeLog, err := newLogger(io.Discard)
	if err != nil {
		return err
	}
	defer closeLog()

	return tui.Run(tui.Options{
		Config:     cfg,
		Levels:     catalog,
		StartLevel: start,
		Logger:     logger,
		ScreenW:    width,
		ScreenH:    height,
	})
}
