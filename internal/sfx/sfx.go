// Package sfx turns arena frames into short synthesized sound cues.
package sfx

import (
	"math/rand/v2"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/lao-tseu-is-alive/go-arena-simulation/pkg/simulation"
)

const sampleRate = beep.SampleRate(44100)

// Cue is one sound the player can make.
type Cue int

const (
	CueEat Cue = iota
	CueDeath
	CueMilestone
	CueLifeLost
	CueGameOver
	CueContinue
	numCues
)

func (c Cue) String() string {
	switch c {
	case CueEat:
		return "eat"
	case CueDeath:
		return "death"
	case CueMilestone:
		return "milestone"
	case CueLifeLost:
		return "life-lost"
	case CueGameOver:
		return "game-over"
	case CueContinue:
		return "continue"
	}
	return "unknown"
}

// deathEarshot is how far outside the view a competitor death is still heard, in world units.
const deathEarshot = 100

// CuesFor lists the cues a frame should trigger, each at most once, in Cue order.
func CuesFor(f simulation.Frame) []Cue {
	var hit [numCues]bool
	for _, e := range f.Events {
		switch e.Kind {
		case simulation.EventScore:
			hit[CueEat] = true
		case simulation.EventMilestone:
			hit[CueMilestone] = true
		case simulation.EventLifeLost:
			hit[CueLifeLost] = true
		case simulation.EventGameOver:
			hit[CueGameOver] = true
		case simulation.EventContinued:
			hit[CueContinue] = true
		}
	}
	for _, e := range f.Effects {
		if e.Kind == simulation.EffectCompetitorDeath && f.Camera.Visible(f.World, e.Pos, deathEarshot) {
			hit[CueDeath] = true
		}
	}
	var cues []Cue
	for c, ok := range hit {
		if ok {
			cues = append(cues, Cue(c))
		}
	}
	return cues
}

// Player plays cues on the default audio device. A Player that failed to
// initialise, or was never initialised, stays silent.
type Player struct {
	mu          sync.Mutex
	volume      float64
	rng         *rand.Rand
	initialized bool
}

func NewPlayer(volume float64) *Player {
	return &Player{volume: volume, rng: rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 7))}
}

// Init opens the speaker. Safe to call more than once.
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/20)); err != nil {
		return err
	}
	p.initialized = true
	return nil
}

// SetVolume takes a linear volume, 0 mutes.
func (p *Player) SetVolume(v float64) {
	p.mu.Lock()
	p.volume = v
	p.mu.Unlock()
}

func (p *Player) Volume() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.volume
}

func (p *Player) Play(c Cue) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.initialized || p.volume <= 0 {
		return
	}
	s := streamer(c, sampleRate, p.rng)
	if s == nil {
		return
	}
	speaker.Play(gain(s, p.volume))
}

// PlayFrame plays every cue the frame calls for.
func (p *Player) PlayFrame(f simulation.Frame) {
	for _, c := range CuesFor(f) {
		p.Play(c)
	}
}

func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.initialized {
		return
	}
	speaker.Clear()
	speaker.Close()
	p.initialized = false
}
