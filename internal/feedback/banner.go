// Package feedback holds the message banner shown after a drop.
package feedback

import (
	"time"

	"github.com/vovakirdan/vitamin-drop/internal/timer"
)

// Kind is the tone of a banner message.
type Kind int

const (
	Positive Kind = iota
	Negative
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case Positive:
		return "Positive"
	case Negative:
		return "Negative"
	default:
		return "Unknown"
	}
}

// DefaultBannerDuration is how long a banner stays visible.
const DefaultBannerDuration = 2 * time.Second

// Message is the banner content currently on display.
type Message struct {
	Text string
	Kind Kind
}

// Banner shows one message at a time and hides it after a fixed duration.
// A new message replaces the current one and restarts the countdown.
type Banner struct {
	timers   *timer.Queue
	duration time.Duration
	current  *Message
	hide     *timer.Task
}

// NewBanner creates a banner that schedules its own hiding on timers.
// With a nil queue messages stay until replaced or cleared.
func NewBanner(timers *timer.Queue, duration time.Duration) *Banner {
	if duration <= 0 {
		duration = DefaultBannerDuration
	}
	return &Banner{timers: timers, duration: duration}
}

// ShowBanner displays text with the given tone.
func (b *Banner) ShowBanner(text string, kind Kind) {
	b.current = &Message{Text: text, Kind: kind}

	b.hide.Cancel()
	if b.timers != nil {
		b.hide = b.timers.After(b.duration, b.Clear)
	}
}

// Current returns the visible message, if any.
func (b *Banner) Current() (Message, bool) {
	if b.current == nil {
		return Message{}, false
	}
	return *b.current, true
}

// Clear hides the banner immediately.
func (b *Banner) Clear() {
	b.current = nil
	b.hide.Cancel()
	b.hide = nil
}
