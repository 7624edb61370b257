package feedback

import (
	"testing"
	"time"

	"github.com/vovakirdan/vitamin-drop/internal/timer"
)

func TestBannerHidesAfterDuration(t *testing.T) {
	start := time.Unix(0, 0)
	q := timer.NewQueue(start)
	b := NewBanner(q, 2*time.Second)

	b.ShowBanner("Correct!", Positive)
	msg, ok := b.Current()
	if !ok || msg.Text != "Correct!" || msg.Kind != Positive {
		t.Fatalf("Current() = %+v, %v", msg, ok)
	}

	q.Advance(start.Add(1999 * time.Millisecond))
	if _, ok := b.Current(); !ok {
		t.Error("banner hidden too early")
	}

	q.Advance(start.Add(2 * time.Second))
	if _, ok := b.Current(); ok {
		t.Error("banner should be hidden after its duration")
	}
}

func TestBannerReplaceRestartsCountdown(t *testing.T) {
	start := time.Unix(0, 0)
	q := timer.NewQueue(start)
	b := NewBanner(q, 2*time.Second)

	b.ShowBanner("first", Positive)
	q.Advance(start.Add(1500 * time.Millisecond))
	b.ShowBanner("second", Negative)

	q.Advance(start.Add(2500 * time.Millisecond))
	msg, ok := b.Current()
	if !ok || msg.Text != "second" {
		t.Fatalf("Current() = %+v, %v; expected the second message to still show", msg, ok)
	}

	q.Advance(start.Add(3500 * time.Millisecond))
	if _, ok := b.Current(); ok {
		t.Error("second banner should be hidden 2s after it was shown")
	}
}

func TestBannerWithoutTimers(t *testing.T) {
	b := NewBanner(nil, 0)
	b.ShowBanner("sticky", Negative)

	if _, ok := b.Current(); !ok {
		t.Fatal("banner should be visible")
	}
	b.Clear()
	if _, ok := b.Current(); ok {
		t.Error("Clear should hide the banner")
	}
}

func TestKindString(t *testing.T) {
	if Positive.String() != "Positive" || Negative.String() != "Negative" || Kind(9).String() != "Unknown" {
		t.Error("Kind.String() mismatch")
	}
}
