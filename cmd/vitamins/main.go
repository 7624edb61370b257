// vitamins is a drag-and-drop quiz about which foods contain which vitamin.
//
// Usage:
//
//	vitamins play      - Play in the terminal
//	vitamins rounds    - List the configured rounds
//	vitamins history   - Browse past rounds
//	vitamins serve     - Start an SSH server for remote play
//
// Global flags:
//
//	--config <path>     - Rounds and settings YAML
//	--log-level <name>  - Override the configured log level
//	--log-file <path>   - Write logs to a file (the terminal is taken by the game)
//	--db <path>         - History database (default: ~/.vitamins/history.db)
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/vitamin-drop/internal/config"
)

var (
	flagConfig   string
	flagLogLevel string
	flagLogFile  string
	flagDBPath   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "vitamins",
	Short: "Vitamin Drop - sort foods by vitamin in your terminal",
	Long: `Vitamin Drop asks which foods contain a vitamin. Drag every matching
food into the answer box with the mouse; a wrong food bounces back.

Examples:
  vitamins play
  vitamins play --difficulty hard --seed 42
  vitamins rounds
  vitamins history
  vitamins serve --ssh :2222`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to a rounds and settings YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.vitamins/history.db", "Path to the history database")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(roundsCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(serveCmd)
}

// loadConfig reads the configuration chain starting at --config.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	if flagLogLevel != "" {
		cfg.Log.Level = flagLogLevel
	}
	return cfg, nil
}

// newLogger builds the process logger. Without --log-file, logs go to
// fallback; the play command passes io.Discard so output never tears the
// alternate screen.
func newLogger(level string, fallback io.Writer) (*log.Logger, func(), error) {
	out := fallback
	closeFn := func() {}
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		out = f
		closeFn = func() { f.Close() }
	}

	logger := log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		Prefix:          "vitamins",
	})
	if level != "" {
		lvl, err := log.ParseLevel(level)
		if err != nil {
			closeFn()
			return nil, nil, fmt.Errorf("log level: %w", err)
		}
		logger.SetLevel(lvl)
	}
	return logger, closeFn, nil
}
