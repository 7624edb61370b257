// Package config provides YAML-based loading of the round catalog and the
// game settings.
package config

import (
	"time"

	"github.com/vovakirdan/vitamin-drop/internal/quiz"
)

// Config is the whole game configuration.
type Config struct {
	Board    BoardConfig    `yaml:"board"`
	Timing   TimingConfig   `yaml:"timing"`
	Messages MessagesConfig `yaml:"messages"`
	Audio    AudioConfig    `yaml:"audio"`
	Loop     bool           `yaml:"loop"` // Start over after the last round
	Log      LogConfig      `yaml:"log"`
	Rounds   []RoundConfig  `yaml:"rounds"`
}

// BoardConfig defines the playfield.
type BoardConfig struct {
	Size    int `yaml:"size"`    // Items shown per round, answers plus decoys
	Spacing int `yaml:"spacing"` // Rows between resting tokens
}

// TimingConfig defines delays and the frame rate.
type TimingConfig struct {
	CompleteDelay  time.Duration `yaml:"complete_delay"`
	BannerDuration time.Duration `yaml:"banner_duration"`
	TickRate       int           `yaml:"tick_rate"` // Ticks per second
}

// MessagesConfig holds the banner texts.
type MessagesConfig struct {
	Wrong    string `yaml:"wrong"`
	Complete string `yaml:"complete"`
}

// AudioConfig toggles sound.
type AudioConfig struct {
	Enabled bool    `yaml:"enabled"`
	BGM     bool    `yaml:"bgm"`
	Volume  float64 `yaml:"volume"` // 0.0 to 1.0
}

// LogConfig sets the log level name ("debug", "info", ...).
type LogConfig struct {
	Level string `yaml:"level"`
}

// RoundConfig is one authored question.
type RoundConfig struct {
	Vitamin string       `yaml:"vitamin"`
	Foods   []FoodConfig `yaml:"foods"`
}

// FoodConfig is one authored food item.
type FoodConfig struct {
	ID    string `yaml:"id"`
	Label string `yaml:"label"`
	Image string `yaml:"image"` // Single-cell glyph drawn before the label
}

// Catalog converts the authored rounds into engine rounds. Labels default
// to the ID.
func (c Config) Catalog() []quiz.Round {
	rounds := make([]quiz.Round, len(c.Rounds))
	for i, r := range c.Rounds {
		rounds[i].Vitamin = r.Vitamin
		rounds[i].Answers = make([]quiz.FoodItem, len(r.Foods))
		for j, f := range r.Foods {
			label := f.Label
			if label == "" {
				label = f.ID
			}
			rounds[i].Answers[j] = quiz.FoodItem{ID: f.ID, Label: label, Image: f.Image}
		}
	}
	return rounds
}

// FoodCount returns the number of distinct food IDs in the catalog.
func (c Config) FoodCount() int {
	seen := make(map[string]struct{})
	for _, r := range c.Rounds {
		for _, f := range r.Foods {
			seen[f.ID] = struct{}{}
		}
	}
	return len(seen)
}
