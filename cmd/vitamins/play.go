package main

import (
	"fmt"
	"io"
	"os"
	"os/user"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/vitamin-drop/internal/app"
	"github.com/vovakirdan/vitamin-drop/internal/audio"
	"github.com/vovakirdan/vitamin-drop/internal/config"
	"github.com/vovakirdan/vitamin-drop/internal/core"
	"github.com/vovakirdan/vitamin-drop/internal/platform/tui"
	"github.com/vovakirdan/vitamin-drop/internal/storage"
)

var (
	flagSeed       int64
	flagDifficulty string
	flagMute       bool
	flagNoHistory  bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in the terminal",
	Long: `Start the quiz in the current terminal.

Controls:
  Mouse      - Drag foods into the answer box
  Enter      - Start
  M          - Mute / unmute
  R          - Play again (after the last round)
  Q/Ctrl+C   - Quit

Difficulty options:
  easy   - 8 foods per round
  normal - 12 foods per round
  hard   - 16 foods per round

Examples:
  vitamins play
  vitamins play --difficulty easy
  vitamins play --config ./my-rounds.yaml --mute`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	playCmd.Flags().BoolVar(&flagMute, "mute", false, "Start with sound off")
	playCmd.Flags().BoolVar(&flagNoHistory, "no-history", false, "Do not record rounds")
}

func runPlay(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if flagDifficulty != "" {
		if err := config.ApplyPreset(&cfg, config.DifficultyPreset(flagDifficulty)); err != nil {
			return err
		}
	}
	if flagMute {
		cfg.Audio.Enabled = false
	}

	logger, closeLog, err := newLogger(cfg.Log.Level, io.Discard)
	if err != nil {
		return err
	}
	defer closeLog()

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width, height = w, h
	}

	player := audio.NewPlayer(audio.Config{
		Enabled: cfg.Audio.Enabled,
		BGM:     cfg.Audio.BGM,
		Volume:  cfg.Audio.Volume,
	}, logger)
	if err := player.Start(); err != nil {
		logger.Warn("audio unavailable", "error", err)
	}
	defer player.Close()

	deps := app.Deps{
		Audio:  player,
		Logger: logger,
		Player: currentUser(),
		Seed:   flagSeed,
	}

	// History is optional; the game still works without it
	if !flagNoHistory {
		store, openErr := storage.Open(flagDBPath)
		if openErr != nil {
			logger.Warn("could not open history database", "error", openErr)
			fmt.Fprintf(os.Stderr, "Warning: could not open history database: %v\n", openErr)
		} else {
			defer store.Close()
			deps.Store = store
		}
	}

	game := app.New(cfg, deps, time.Now())
	defer game.Close()

	rt := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: cfg.Timing.TickRate,
		Seed:     flagSeed,
	}
	if err := tui.Run(game, rt); err != nil {
		return fmt.Errorf("run game: %w", err)
	}
	return nil
}

func currentUser() string {
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	return "local"
}
