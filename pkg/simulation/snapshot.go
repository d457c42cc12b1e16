package simulation

import (
	"github.com/lao-tseu-is-alive/go-arena-simulation/pkg/geometry"
)

// State is the player lifecycle state of an arena.
type State int

const (
	NotStarted State = iota
	Playing
	Dead
	GameOver
	Exited
)

func (s State) String() string {
	switch s {
	case NotStarted:
		return "not-started"
	case Playing:
		return "playing"
	case Dead:
		return "dead"
	case GameOver:
		return "game-over"
	case Exited:
		return "exited"
	}
	return "unknown"
}

// EventKind tags what happened during a tick.
type EventKind int

const (
	EventScore EventKind = iota
	EventMilestone
	EventLifeLost
	EventGameOver
	EventContinued
)

// Event mirrors a Host callback so hosts that poll frames see the same story.
type Event struct {
	Kind    EventKind
	Value   int
	Message string
}

// EffectKind tags a visual or audible cue at a position.
type EffectKind int

const (
	EffectConsume EffectKind = iota
	EffectPlayerConsume
	EffectCompetitorDeath
	EffectPlayerDeath
	EffectSpawn
)

type Effect struct {
	Kind EffectKind
	Pos  geometry.Vector2D
	Tag  uint8
}

// Frame is a read-only copy of the arena after a tick. Nothing in it aliases arena state.
type Frame struct {
	Tick        uint64
	State       State
	World       geometry.Torus
	Player      Player
	Competitors []Competitor
	Resources   []Resource
	Camera      Camera
	Events      []Event
	Effects     []Effect
}

func (b Body) clone() Body {
	b.Segments = append([]geometry.Vector2D(nil), b.Segments...)
	return b
}

func (a *Arena) buildFrame() Frame {
	f := Frame{
		Tick:        a.tick,
		State:       a.state,
		World:       a.world,
		Player:      a.player,
		Competitors: make([]Competitor, len(a.competitors)),
		Resources:   append([]Resource(nil), a.resources...),
		Camera:      a.camera,
		Events:      append([]Event(nil), a.events...),
		Effects:     append([]Effect(nil), a.effects...),
	}
	f.Player.Body = a.player.Body.clone()
	for i, c := range a.competitors {
		f.Competitors[i] = *c
		f.Competitors[i].Body = c.Body.clone()
	}
	return f
}
