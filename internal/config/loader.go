package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/vitamin-drop/internal/quiz"
)

var (
	// ErrEmptyCatalog means the configuration has no rounds to play.
	ErrEmptyCatalog = errors.New("config: catalog has no rounds")
	// ErrMissingVitamin means a round has no vitamin name.
	ErrMissingVitamin = errors.New("config: round has no vitamin")
	// ErrEmptyRound means a round has no answer foods.
	ErrEmptyRound = errors.New("config: round has no foods")
	// ErrEmptyFoodID means a food has no ID.
	ErrEmptyFoodID = errors.New("config: food has no id")
	// ErrDuplicateFood means a food ID appears twice within one round.
	ErrDuplicateFood = errors.New("config: duplicate food id in round")
)

const fileName = "config.yaml"

// Load loads the game configuration.
// Search order: customPath -> ~/.vitamins/config.yaml -> ./configs/vitamins.yaml -> embedded default
//
// Files are read over the defaults, so a partial file only overrides the
// keys it sets. A custom path must exist and be valid; the other locations
// are skipped when missing or invalid.
func Load(customPath string) (Config, error) {
	if customPath != "" {
		cfg, err := readFile(customPath)
		if err != nil {
			return Config{}, err
		}
		return cfg, nil
	}

	if userPath := userConfigPath(fileName); userPath != "" {
		if cfg, err := readFile(userPath); err == nil {
			return cfg, nil
		}
	}

	if cfg, err := readFile(filepath.Join("configs", "vitamins.yaml")); err == nil {
		return cfg, nil
	}

	cfg := Default()
	if err := yaml.Unmarshal(defaultYAML, &cfg); err != nil {
		return Default(), nil // Fallback to hardcoded if embed fails
	}
	return normalize(cfg), nil
}

// Parse decodes YAML over the defaults and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	cfg.Rounds = nil
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse: %w", err)
	}
	if len(cfg.Rounds) == 0 {
		embedded, err := embeddedRounds()
		if err != nil {
			return Config{}, err
		}
		cfg.Rounds = embedded
	}
	cfg = normalize(cfg)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func readFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// embeddedRounds returns the catalog shipped with the binary, used when a
// settings-only file leaves rounds out.
func embeddedRounds() ([]RoundConfig, error) {
	var cfg Config
	if err := yaml.Unmarshal(defaultYAML, &cfg); err != nil {
		return nil, fmt.Errorf("config: embedded default: %w", err)
	}
	if len(cfg.Rounds) == 0 {
		return Default().Rounds, nil
	}
	return cfg.Rounds, nil
}

// normalize replaces out-of-range settings with their defaults.
func normalize(cfg Config) Config {
	def := Default()
	if cfg.Board.Size <= 0 {
		cfg.Board.Size = def.Board.Size
	}
	if cfg.Board.Spacing <= 0 {
		cfg.Board.Spacing = def.Board.Spacing
	}
	if cfg.Timing.CompleteDelay < 0 {
		cfg.Timing.CompleteDelay = def.Timing.CompleteDelay
	}
	if cfg.Timing.BannerDuration <= 0 {
		cfg.Timing.BannerDuration = def.Timing.BannerDuration
	}
	if cfg.Timing.TickRate <= 0 {
		cfg.Timing.TickRate = def.Timing.TickRate
	}
	if cfg.Audio.Volume < 0 || cfg.Audio.Volume > 1 {
		cfg.Audio.Volume = def.Audio.Volume
	}
	return cfg
}

// Validate checks the round catalog.
func (c Config) Validate() error {
	if len(c.Rounds) == 0 {
		return ErrEmptyCatalog
	}
	for i, r := range c.Rounds {
		if r.Vitamin == "" {
			return fmt.Errorf("round %d: %w", i+1, ErrMissingVitamin)
		}
		if len(r.Foods) == 0 {
			return fmt.Errorf("round %d (%s): %w", i+1, r.Vitamin, ErrEmptyRound)
		}
		seen := make(map[string]struct{}, len(r.Foods))
		for j, f := range r.Foods {
			if f.ID == "" {
				return fmt.Errorf("round %d (%s) food %d: %w", i+1, r.Vitamin, j+1, ErrEmptyFoodID)
			}
			if _, dup := seen[f.ID]; dup {
				return fmt.Errorf("round %d (%s) food %q: %w", i+1, r.Vitamin, f.ID, ErrDuplicateFood)
			}
			seen[f.ID] = struct{}{}
		}
	}
	return nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".vitamins", filename)
}

// DifficultyPreset represents a named board density.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// BoardSizeForPreset returns how many items a round shows at a preset.
// Harder presets add decoys.
func BoardSizeForPreset(preset DifficultyPreset) (int, bool) {
	switch preset {
	case DifficultyEasy:
		return 8, true
	case DifficultyNormal:
		return quiz.DefaultBoardSize, true
	case DifficultyHard:
		return 16, true
	default:
		return 0, false
	}
}

// ApplyPreset sets the board size from a preset. Unknown presets are an error.
func ApplyPreset(cfg *Config, preset DifficultyPreset) error {
	size, ok := BoardSizeForPreset(preset)
	if !ok {
		return fmt.Errorf("config: unknown difficulty %q", preset)
	}
	cfg.Board.Size = size
	return nil
}
