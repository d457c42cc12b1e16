package simulation

import (
	"math"
	"testing"

	"github.com/lao-tseu-is-alive/go-arena-simulation/pkg/geometry"
)

// thinkArena places a still player at (1000, 1000) with nothing else in the world.
func thinkArena(t *testing.T) *Arena {
	t.Helper()
	a := newTestArena(t, nil, nil)
	a.competitors = a.competitors[:0]
	a.resources = a.resources[:0]
	a.player.Segments = []geometry.Vector2D{{X: 1000, Y: 1000}}
	a.player.Heading = geometry.Vector2D{X: 1}
	a.player.Speed = 0
	return a
}

func TestThink(t *testing.T) {
	pos := geometry.Vector2D{X: 800, Y: 1000}
	food := geometry.Vector2D{X: 800, Y: 900}

	tests := []struct {
		name        string
		per         Personality
		cooldown    float64
		playerAlive bool
		hunting     bool
		want        geometry.Vector2D // zero means a wander heading
	}{
		{"hunts the player in sight", Personality{Intelligence: 1, Aggression: 1, SightRange: 500, BoostBurst: 1.5}, 0, true, true, geometry.Vector2D{X: 1}},
		{"cooldown sends it to food", Personality{Intelligence: 1, SightRange: 500}, 2, true, false, geometry.Vector2D{Y: -1}},
		{"player too short to chase", Personality{Intelligence: 1, AggressionThreshold: 3, SightRange: 500}, 0, true, false, geometry.Vector2D{Y: -1}},
		{"dead player is ignored", Personality{Intelligence: 1, SightRange: 500}, 0, false, false, geometry.Vector2D{Y: -1}},
		{"food out of sight", Personality{Intelligence: 1, SightRange: 50}, 2, true, false, geometry.Vector2D{}},
		{"dim competitors wander", Personality{SightRange: 500}, 0, true, false, geometry.Vector2D{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := thinkArena(t)
			a.resources = append(a.resources, Resource{Pos: food, Radius: 5})
			c := stillCompetitor("Competitor-001", 20, pos)
			c.Personality = tt.per
			c.HuntCooldown = tt.cooldown

			a.think(c, tt.playerAlive)
			if c.Hunting != tt.hunting {
				t.Fatalf("Hunting = %v, want %v", c.Hunting, tt.hunting)
			}
			if tt.want.IsZero() {
				turn := math.Abs(geometry.AngleBetween(c.Heading, c.TargetHeading))
				if turn > a.cfg.Competitor.WanderJitter+1e-9 {
					t.Errorf("wander turned %v, more than the jitter", turn)
				}
				return
			}
			if c.TargetHeading.Sub(tt.want).Len() > 1e-9 {
				t.Errorf("TargetHeading = %s, want %s", c.TargetHeading, tt.want)
			}
		})
	}

	t.Run("a hunt sprints and starts the cooldown", func(t *testing.T) {
		a := thinkArena(t)
		c := stillCompetitor("Competitor-002", 20, pos)
		c.Personality = Personality{Intelligence: 1, Aggression: 1, SightRange: 500, BoostBurst: 1.5}
		a.think(c, true)
		if !c.IsBoosting || c.BoostTimer != 1.5 {
			t.Errorf("boost = %v for %v s", c.IsBoosting, c.BoostTimer)
		}
		if c.HuntCooldown != a.cfg.Competitor.HuntCooldown {
			t.Errorf("HuntCooldown = %v", c.HuntCooldown)
		}
	})
}

func TestThinkAll_timers(t *testing.T) {
	a := thinkArena(t)
	c := stillCompetitor("Competitor-001", 20, geometry.Vector2D{X: 100, Y: 100})
	c.Personality.ThinkInterval = 1
	c.ThinkTimer = 0.5
	c.HuntCooldown = 0.2
	c.TargetHeading = geometry.Vector2D{X: 1}
	a.competitors = append(a.competitors, c)

	a.thinkAll(0.3)
	if math.Abs(c.ThinkTimer-0.2) > 1e-9 || c.HuntCooldown != 0 {
		t.Fatalf("timers = %v, %v", c.ThinkTimer, c.HuntCooldown)
	}

	a.thinkAll(0.3)
	if math.Abs(c.ThinkTimer-0.9) > 1e-9 {
		t.Errorf("ThinkTimer = %v after a re-plan, want 0.9", c.ThinkTimer)
	}
}
