// Package audio plays the success and failure cues of the game through the
// system speaker, with an optional background loop.
package audio

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

// Config controls audio playback.
type Config struct {
	Enabled bool    // Start unmuted
	BGM     bool    // Play the background loop
	Volume  float64 // 0.0 to 1.0
}

// DefaultConfig returns audio enabled at a moderate volume.
func DefaultConfig() Config {
	return Config{Enabled: true, BGM: false, Volume: 0.6}
}

// Player routes cues to the speaker. Before Start, and when the speaker could
// not be opened, every call is a no-op.
type Player struct {
	mu          sync.Mutex
	cfg         Config
	logger      *log.Logger
	mixer       *beep.Mixer
	bgm         *beep.Ctrl
	initialized bool
	muted       bool
}

// NewPlayer creates a player. Call Start to open the speaker.
func NewPlayer(cfg Config, logger *log.Logger) *Player {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Player{
		cfg:    cfg,
		logger: logger,
		mixer:  &beep.Mixer{},
		muted:  !cfg.Enabled,
	}
}

// Start opens the speaker and starts the background loop if configured.
// On failure the player stays silent and the error is returned for logging.
func (p *Player) Start() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("audio: cannot open speaker: %w", err)
	}
	speaker.Play(p.mixer)
	p.initialized = true

	if p.cfg.BGM {
		p.bgm = &beep.Ctrl{Streamer: &bgmGenerator{rate: sampleRate}, Paused: p.muted}
		speaker.Lock()
		p.mixer.Add(p.bgm)
		speaker.Unlock()
	}
	return nil
}

// PlaySuccess plays the chime for a completed round.
func (p *Player) PlaySuccess() {
	p.play(SuccessSound(sampleRate, p.cfg.Volume))
}

// PlayFailure plays the buzz for a wrong drop.
func (p *Player) PlayFailure() {
	p.play(FailureSound(sampleRate, p.cfg.Volume))
}

func (p *Player) play(s beep.Streamer) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized || p.muted {
		return
	}
	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()
}

// ToggleMute flips mute for cues and the background loop.
// Returns true when audio is now muted.
func (p *Player) ToggleMute() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.muted = !p.muted
	if p.bgm != nil {
		speaker.Lock()
		p.bgm.Paused = p.muted
		speaker.Unlock()
	}
	p.logger.Debug("audio toggled", "muted", p.muted)
	return p.muted
}

// Muted reports whether audio is muted.
func (p *Player) Muted() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.muted
}

// Close stops every sound. The speaker itself stays open, beep has no way
// to release it.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Lock()
	if p.bgm != nil {
		p.bgm.Paused = true
	}
	p.mixer.Clear()
	speaker.Unlock()
	p.initialized = false
}

// Silent discards cues. Used for SSH sessions and when no speaker exists.
// It counts plays so tests and diagnostics can observe them.
type Silent struct {
	Successes int
	Failures  int
	muted     bool
}

// PlaySuccess records a success cue.
func (s *Silent) PlaySuccess() { s.Successes++ }

// PlayFailure records a failure cue.
func (s *Silent) PlayFailure() { s.Failures++ }

// ToggleMute flips the mute flag; nothing is audible either way.
func (s *Silent) ToggleMute() bool {
	s.muted = !s.muted
	return s.muted
}

// Muted reports the mute flag.
func (s *Silent) Muted() bool { return s.muted }
