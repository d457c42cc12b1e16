package simulation

import (
	"testing"

	"github.com/lao-tseu-is-alive/go-arena-simulation/pkg/geometry"
)

// collide runs the detection pass on the current positions without moving anything.
func collide(a *Arena) {
	a.marks.reset(len(a.competitors), len(a.resources))
	a.rebuildGrids()
	a.detectCollisions()
}

func TestCollision_playerHeadBoundary(t *testing.T) {
	a := newTestArena(t, nil, nil)
	rp := a.player.Radius
	const rc = 18.0
	w := a.world.Width

	tests := []struct {
		name       string
		playerHead geometry.Vector2D
		otherSeg   geometry.Vector2D
		want       bool
	}{
		{"just inside", geometry.Vector2D{X: 500, Y: 500}, geometry.Vector2D{X: 500 + rp + rc - 1, Y: 500}, true},
		{"just outside", geometry.Vector2D{X: 500, Y: 500}, geometry.Vector2D{X: 500 + rp + rc + 1, Y: 500}, false},
		{"inside across the seam", geometry.Vector2D{X: 1, Y: 500}, geometry.Vector2D{X: w - (rp + rc - 2), Y: 500}, true},
		{"outside across the seam", geometry.Vector2D{X: 1, Y: 500}, geometry.Vector2D{X: w - (rp + rc), Y: 500}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a.player.Segments = []geometry.Vector2D{tt.playerHead}
			// the segment under test is a tail, the competitor's head is far away
			far := a.world.Wrap(tt.playerHead.Add(geometry.Vector2D{Y: 1000}))
			a.competitors = []*Competitor{stillCompetitor("Other", rc, far, tt.otherSeg)}
			collide(a)
			if a.marks.playerDied != tt.want {
				t.Errorf("playerDied = %v, want %v", a.marks.playerDied, tt.want)
			}
		})
	}
}

func TestCollision_competitorClassification(t *testing.T) {
	a := newTestArena(t, nil, nil)
	a.player.Segments = []geometry.Vector2D{{X: 500, Y: 500}, {X: 530, Y: 500}, {X: 560, Y: 500}}

	// head over the player's second segment
	byPlayer := stillCompetitor("ByPlayer", 20, geometry.Vector2D{X: 530, Y: 535}, geometry.Vector2D{X: 530, Y: 571})
	// A's head runs into B's tail, B's head is clear
	victim := stillCompetitor("Victim", 20, geometry.Vector2D{X: 1000, Y: 1000}, geometry.Vector2D{X: 1000, Y: 1036})
	killer := stillCompetitor("Killer", 20, geometry.Vector2D{X: 1100, Y: 1000}, geometry.Vector2D{X: 1064, Y: 1000}, geometry.Vector2D{X: 1028, Y: 1000})
	bystander := stillCompetitor("Bystander", 20, geometry.Vector2D{X: 2000, Y: 2000})
	a.competitors = []*Competitor{byPlayer, victim, killer, bystander}

	collide(a)

	want := []killCause{killedByPlayer, killedByAI, alive, alive}
	for i, c := range a.competitors {
		if got := a.marks.deaths[i]; got != want[i] {
			t.Errorf("%s: cause %s, want %s", c.ID, causeName(got), causeName(want[i]))
		}
	}
	if a.marks.deathCount != 2 {
		t.Errorf("expected 2 deaths, got %d", a.marks.deathCount)
	}
	if a.marks.playerDied {
		t.Error("the player head touched nothing")
	}
}

func TestCollision_playerKillWinsOverAIKill(t *testing.T) {
	a := newTestArena(t, nil, nil)
	a.player.Segments = []geometry.Vector2D{{X: 500, Y: 500}, {X: 530, Y: 500}}
	// head touches both the player's tail and another competitor
	both := stillCompetitor("Both", 20, geometry.Vector2D{X: 530, Y: 530})
	other := stillCompetitor("Other", 20, geometry.Vector2D{X: 900, Y: 900}, geometry.Vector2D{X: 560, Y: 540})
	a.competitors = []*Competitor{both, other}

	collide(a)
	if a.marks.deaths[0] != killedByPlayer {
		t.Errorf("expected killed by player, got %s", causeName(a.marks.deaths[0]))
	}
}

func TestDeathConversion(t *testing.T) {
	six := func() []geometry.Vector2D {
		segs := make([]geometry.Vector2D, 6)
		for i := range segs {
			segs[i] = geometry.Vector2D{X: 1500, Y: 1000 + float64(i)*36}
		}
		return segs
	}
	tests := []struct {
		name  string
		cause killCause
		drops int
	}{
		{"killed by player converts every segment", killedByPlayer, 6},
		{"killed by competitor converts every other segment", killedByAI, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newTestArena(t, nil, nil)
			a.competitors = []*Competitor{stillCompetitor("Dying", 20, six()...)}
			before := len(a.resources)

			a.marks.reset(1, before)
			a.marks.deaths[0] = tt.cause
			a.marks.deathCount = 1
			a.resolveDeaths()

			want := before + tt.drops + a.cfg.Resources.HeadBurst
			if got := len(a.resources); got != want {
				t.Errorf("resources = %d, want %d", got, want)
			}
			if len(a.competitors) != 0 {
				t.Errorf("dead competitor was not compacted away")
			}
			for _, r := range a.resources[before:] {
				if !a.world.Contains(r.Pos) {
					t.Errorf("dropped resource outside the world at %s", r.Pos)
				}
			}
		})
	}
}

func TestConsumeResources(t *testing.T) {
	a := newTestArena(t, nil, nil)
	head := geometry.Vector2D{X: 700, Y: 700}
	a.player.Segments = []geometry.Vector2D{head}
	rival := stillCompetitor("Rival", 20, geometry.Vector2D{X: 745, Y: 700}, geometry.Vector2D{X: 781, Y: 700})
	a.competitors = []*Competitor{rival}
	// the shared meal sits in reach of both heads, the player eats first
	a.resources = []Resource{
		{Pos: geometry.Vector2D{X: 722.5, Y: 700}, Radius: 5},
		{Pos: geometry.Vector2D{X: 765, Y: 700}, Radius: 5},
		{Pos: geometry.Vector2D{X: 1500, Y: 1500}, Radius: 5},
	}

	collide(a)
	a.consumeResources()

	if want := []bool{true, true, false}; a.marks.eaten[0] != want[0] || a.marks.eaten[1] != want[1] || a.marks.eaten[2] != want[2] {
		t.Errorf("eaten = %v, want %v", a.marks.eaten, want)
	}
	if a.player.Score != a.cfg.Resources.ScoreValue {
		t.Errorf("player should have eaten exactly once, score %d", a.player.Score)
	}
	if rival.Consumed != 1 {
		t.Errorf("rival should have eaten exactly once, consumed %d", rival.Consumed)
	}

	a.resolveDeaths()
	if len(a.resources) != a.cfg.Resources.Floor {
		t.Errorf("resources should be topped up to the floor, got %d", len(a.resources))
	}
}
