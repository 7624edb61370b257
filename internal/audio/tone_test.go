package audio

import (
	"math"
	"testing"
	"time"

	"github.com/gopxl/beep"
)

// drain reads a streamer to the end and returns the number of samples and
// the peak amplitude. It gives up after limit samples.
func drain(s beep.Streamer, limit int) (int, float64) {
	buf := make([][2]float64, 512)
	total := 0
	peak := 0.0
	for total < limit {
		n, ok := s.Stream(buf)
		for i := 0; i < n; i++ {
			peak = math.Max(peak, math.Abs(buf[i][0]))
		}
		total += n
		if !ok {
			break
		}
	}
	return total, peak
}

func TestOscillatorLength(t *testing.T) {
	rate := beep.SampleRate(1000)
	n, peak := drain(NewOscillator(100, 250*time.Millisecond, WaveSine, rate), 10000)

	if n != 250 {
		t.Errorf("oscillator produced %d samples, expected 250", n)
	}
	if peak > 1.0001 {
		t.Errorf("peak = %f, expected <= 1", peak)
	}
}

func TestEnvelopeStartsSilent(t *testing.T) {
	rate := beep.SampleRate(1000)
	osc := NewOscillator(0, 100*time.Millisecond, WaveSquare, rate) // constant +1
	env := NewEnvelope(osc, 100*time.Millisecond, 10*time.Millisecond, 10*time.Millisecond, rate)

	buf := make([][2]float64, 100)
	n, _ := env.Stream(buf)
	if n != 100 {
		t.Fatalf("envelope produced %d samples, expected 100", n)
	}
	if buf[0][0] != 0 {
		t.Errorf("first sample = %f, expected 0 at start of attack", buf[0][0])
	}
	if buf[50][0] != 1 {
		t.Errorf("sustain sample = %f, expected 1", buf[50][0])
	}
	if buf[99][0] >= buf[90][0] {
		t.Errorf("release should fade: sample 90 = %f, sample 99 = %f", buf[90][0], buf[99][0])
	}
}

func TestCuesAreFinite(t *testing.T) {
	rate := beep.SampleRate(8000)

	tests := []struct {
		name     string
		streamer beep.Streamer
		expected int
	}{
		{"success", SuccessSound(rate, 0.5), rate.N(3 * successNote)},
		{"failure", FailureSound(rate, 0.5), rate.N(failureTone)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			n, _ := drain(tc.streamer, 10*tc.expected)
			if n != tc.expected {
				t.Errorf("%s cue produced %d samples, expected %d", tc.name, n, tc.expected)
			}
		})
	}
}

func TestSilentCounts(t *testing.T) {
	var s Silent
	s.PlaySuccess()
	s.PlayFailure()
	s.PlayFailure()

	if s.Successes != 1 || s.Failures != 2 {
		t.Errorf("Silent = %+v, expected 1 success and 2 failures", s)
	}
	if !s.ToggleMute() || !s.Muted() {
		t.Error("ToggleMute should mute")
	}
}

func TestPlayerBeforeStartIsSilent(t *testing.T) {
	p := NewPlayer(DefaultConfig(), nil)
	p.PlaySuccess() // no speaker opened, must not block or panic
	p.PlayFailure()
	p.Close()

	if p.Muted() {
		t.Error("default config should start unmuted")
	}
	if !p.ToggleMute() {
		t.Error("ToggleMute should report muted")
	}
}
