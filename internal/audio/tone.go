package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
)

// oscillator generates a fixed-length raw wave.
type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
}

// NewOscillator creates a wave of the given frequency and length.
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveSaw:
			val = 2.0 * (o.phase - 0.5)
		}

		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies a linear attack and release to a stream.
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	totalSamples   int
}

// NewEnvelope shapes s with an attack ramp and a release ramp.
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		streamer:       s,
		attackSamples:  rate.N(attack),
		releaseSamples: rate.N(release),
		totalSamples:   rate.N(duration),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)

	for i := 0; i < n; i++ {
		if e.position >= e.totalSamples {
			return i, i > 0
		}

		vol := 1.0
		if e.position < e.attackSamples {
			vol = float64(e.position) / float64(e.attackSamples)
		}
		releaseStart := e.totalSamples - e.releaseSamples
		if e.releaseSamples > 0 && e.position >= releaseStart {
			vol = math.Max(0, float64(e.totalSamples-e.position)/float64(e.releaseSamples))
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}

	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume scales a stream; zero or less is silent (math.Log2(0) is -Inf).
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

const (
	successNote = 120 * time.Millisecond
	failureTone = 250 * time.Millisecond
	noteAttack  = 5 * time.Millisecond
	noteRelease = 60 * time.Millisecond
)

// SuccessSound is a rising three-note chime (C6, E6, G6).
func SuccessSound(rate beep.SampleRate, vol float64) beep.Streamer {
	notes := []float64{1046.50, 1318.51, 1567.98}
	parts := make([]beep.Streamer, len(notes))
	for i, f := range notes {
		osc := NewOscillator(f, successNote, WaveSine, rate)
		parts[i] = NewEnvelope(osc, successNote, noteAttack, noteRelease, rate)
	}
	return newVolume(beep.Seq(parts...), vol)
}

// FailureSound is a descending two-step buzz.
func FailureSound(rate beep.SampleRate, vol float64) beep.Streamer {
	first := failureTone * 3 / 5
	second := failureTone - first
	high := NewEnvelope(NewOscillator(220, first, WaveSaw, rate), first, noteAttack, noteRelease/2, rate)
	low := NewEnvelope(NewOscillator(110, second, WaveSaw, rate), second, noteAttack, noteRelease, rate)
	return newVolume(beep.Seq(high, low), vol)
}

// bgmGenerator plays a soft endless arpeggio.
type bgmGenerator struct {
	rate beep.SampleRate
	pos  int
}

var bgmNotes = []float64{261.63, 329.63, 392.00, 329.63}

func (g *bgmGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	noteLen := g.rate.N(400 * time.Millisecond)
	for i := range samples {
		note := bgmNotes[(g.pos/noteLen)%len(bgmNotes)]
		inNote := float64(g.pos%noteLen) / float64(noteLen)
		t := float64(g.pos) / float64(g.rate)

		sample := math.Sin(2*math.Pi*note*t) * (1 - inNote) * 0.05
		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *bgmGenerator) Err() error { return nil }
