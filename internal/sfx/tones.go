package sfx

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
)

// decay fades a streamer out exponentially and ends it after a fixed length.
type decay struct {
	s     beep.Streamer
	pos   int
	total int
	rate  float64 // e-folds per sample
}

func newDecay(s beep.Streamer, sr beep.SampleRate, length time.Duration, sharpness float64) beep.Streamer {
	total := sr.N(length)
	return &decay{s: s, total: total, rate: sharpness / float64(max(total, 1))}
}

func (d *decay) Stream(samples [][2]float64) (int, bool) {
	if d.pos >= d.total {
		return 0, false
	}
	if left := d.total - d.pos; len(samples) > left {
		samples = samples[:left]
	}
	n, ok := d.s.Stream(samples)
	for i := range n {
		g := math.Exp(-d.rate * float64(d.pos))
		samples[i][0] *= g
		samples[i][1] *= g
		d.pos++
	}
	return n, ok && n > 0
}

func (d *decay) Err() error { return d.s.Err() }

// noise is white noise from a seeded source so tests stay reproducible.
type noise struct {
	rng *rand.Rand
}

func (n noise) Stream(samples [][2]float64) (int, bool) {
	for i := range samples {
		v := n.rng.Float64()*2 - 1
		samples[i][0] = v
		samples[i][1] = v
	}
	return len(samples), true
}

func (noise) Err() error { return nil }

// tone is a decaying sine note.
func tone(sr beep.SampleRate, freq float64, length time.Duration) beep.Streamer {
	sine, err := generators.SineTone(sr, freq)
	if err != nil {
		// frequency above Nyquist, play nothing for the same length
		return beep.Silence(sr.N(length))
	}
	return newDecay(sine, sr, length, 4)
}

// gain scales a streamer linearly; zero or below is silent.
func gain(s beep.Streamer, v float64) beep.Streamer {
	if v <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(v)}
}

// streamer builds the synthesized sound for a cue, nil for unknown cues.
func streamer(c Cue, sr beep.SampleRate, rng *rand.Rand) beep.Streamer {
	note := 90 * time.Millisecond
	switch c {
	case CueEat:
		return beep.Take(sr.N(note), beep.Mix(
			gain(tone(sr, 880, note), 0.5),
			gain(tone(sr, 1320, note), 0.2),
		))
	case CueDeath:
		return gain(newDecay(noise{rng: rng}, sr, 220*time.Millisecond, 6), 0.35)
	case CueMilestone:
		return gain(beep.Seq(tone(sr, 523.25, note), tone(sr, 659.25, note), tone(sr, 783.99, 2*note)), 0.5)
	case CueLifeLost:
		return gain(beep.Seq(tone(sr, 440, 2*note), tone(sr, 330, 3*note)), 0.6)
	case CueGameOver:
		return gain(beep.Seq(tone(sr, 392, 2*note), tone(sr, 330, 2*note), tone(sr, 262, 5*note)), 0.6)
	case CueContinue:
		return gain(beep.Seq(tone(sr, 262, note), tone(sr, 392, 2*note)), 0.5)
	}
	return nil
}
