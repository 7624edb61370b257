package config

import (
	_ "embed"
	"time"

	"github.com/vovakirdan/vitamin-drop/internal/quiz"
)

//go:embed defaults/vitamins.yaml
var defaultYAML []byte

// Default returns the hard-coded configuration used when even the embedded
// file cannot be parsed. Its catalog is deliberately small.
func Default() Config {
	return Config{
		Board: BoardConfig{
			Size:    quiz.DefaultBoardSize,
			Spacing: 1,
		},
		Timing: TimingConfig{
			CompleteDelay:  2 * time.Second,
			BannerDuration: 2 * time.Second,
			TickRate:       30,
		},
		Messages: MessagesConfig{
			Wrong:    "Not quite, try another one!",
			Complete: "Well done!",
		},
		Audio: AudioConfig{
			Enabled: true,
			BGM:     true,
			Volume:  0.6,
		},
		Log: LogConfig{Level: "info"},
		Rounds: []RoundConfig{
			{
				Vitamin: "C",
				Foods: []FoodConfig{
					{ID: "orange", Label: "Orange", Image: "●"},
					{ID: "kiwi", Label: "Kiwi", Image: "◍"},
				},
			},
			{
				Vitamin: "D",
				Foods: []FoodConfig{
					{ID: "salmon", Label: "Salmon", Image: "≈"},
					{ID: "egg", Label: "Egg", Image: "○"},
				},
			},
		},
	}
}
