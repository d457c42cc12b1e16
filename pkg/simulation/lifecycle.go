package simulation

import (
	"fmt"
	"math"

	"github.com/lao-tseu-is-alive/go-arena-simulation/pkg/geometry"
)

// newGame resets everything a game owns and moves to Playing.
func (a *Arena) newGame() {
	a.tick = 0
	a.nextID = 0
	a.unreplaced = 0
	clear(a.competitors)
	a.competitors = a.competitors[:0]
	a.resources = a.resources[:0]
	a.director.Reset()
	a.milestones.reset()

	a.player = Player{Lives: a.cfg.Player.StartLives}
	a.spawnPlayer()

	for range a.cfg.Resources.Initial {
		a.resources = append(a.resources, a.randomResource())
	}
	for len(a.resources) < a.cfg.Resources.Floor {
		a.resources = append(a.resources, a.randomResource())
	}

	ph := a.director.Phase(len(a.player.Segments))
	n := min(max(a.cfg.Director.InitialCount, ph.Floor), ph.Ceiling)
	for range n {
		a.spawnCompetitor()
	}
	a.state = Playing
}

// spawnPlayer puts the player back in spawn state: base size, empty growth, full boost.
// Score and lives are left alone.
func (a *Arena) spawnPlayer() {
	pc := a.cfg.Player
	p := &a.player
	head := a.pickSpawn(func(c geometry.Vector2D) float64 {
		nearest := math.Inf(1)
		for _, comp := range a.competitors {
			for _, s := range comp.Segments {
				nearest = math.Min(nearest, a.world.Distance(c, s))
			}
		}
		return nearest
	})
	heading := geometry.NewVectorPolar(1, a.rng.Float64()*2*math.Pi)
	p.Body = Body{
		Heading:       heading,
		TargetHeading: heading,
		Speed:         pc.NormalSpeed,
		NormalSpeed:   pc.NormalSpeed,
		BoostSpeed:    pc.BoostSpeed,
		Radius:        pc.Radius,
		TurnRate:      pc.TurnRate,
		SpacingFactor: pc.SpacingFactor,
	}
	p.Segments = layChain(a.world, head, heading, pc.StartSegments, p.Spacing())
	p.GrowthScore = 0
	p.BoostEnergy = a.cfg.Boost.EnergyMax
	p.BoostReserve = a.cfg.Boost.ReserveSeconds
	p.Boosting = false
	a.camera.snap(a.world, a.cfg.Camera, head, len(p.Segments))
}

// pickSpawn samples random points and keeps the first one whose clearance reaches
// SpawnMinDistance. If no attempt qualifies the roomiest candidate wins.
func (a *Arena) pickSpawn(clearance func(geometry.Vector2D) float64) geometry.Vector2D {
	want := a.cfg.Director.SpawnMinDistance
	var best geometry.Vector2D
	bestClear := -1.0
	for range a.cfg.Director.SpawnAttempts {
		c := a.randomPoint()
		d := clearance(c)
		if d >= want {
			return c
		}
		if d > bestClear {
			best, bestClear = c, d
		}
	}
	return best
}

// loseLife runs the death branch of the player state machine.
func (a *Arena) loseLife() {
	p := &a.player
	a.state = Dead
	p.Lives--
	a.log.Infof("player died at tick %d, %d lives left, score %d", a.tick, p.Lives, p.Score)
	a.emit(Event{Kind: EventLifeLost, Value: p.Lives})
	if p.Lives > 0 {
		a.spawnPlayer()
		a.state = Playing
		return
	}

	a.state = GameOver
	a.emit(Event{Kind: EventGameOver, Value: p.Score})
	if a.host.RequestContinuation(p.Score) {
		a.grantContinuation()
		return
	}
	a.log.Infof("game over, final score %d", p.Score)
}

// grantContinuation restores a full set of lives on an empty-growth player. The score survives.
func (a *Arena) grantContinuation() {
	a.player.Lives = a.cfg.Player.StartLives
	a.spawnPlayer()
	a.state = Playing
	a.events = append(a.events, Event{Kind: EventContinued, Value: a.player.Lives})
	a.log.Infof("continuation granted, score %d", a.player.Score)
}

// growPlayer applies the score table and fires newly reached milestones.
func (a *Arena) growPlayer() {
	pc := a.cfg.Player
	p := &a.player
	target := playerTargetSegments(pc.ScoreSteps, p.GrowthScore, pc.StartSegments, pc.MaxSegments)
	if growBody(&p.Body, target) == 0 {
		return
	}
	for _, msg := range a.milestones.reached(len(p.Segments)) {
		a.emit(Event{Kind: EventMilestone, Value: len(p.Segments), Message: msg})
	}
}

func (a *Arena) growCompetitors() {
	cc := a.cfg.Competitor
	for _, c := range a.competitors {
		growBody(&c.Body, competitorTargetSegments(cc.ConsumptionSteps, c.Consumed, c.SpawnSegments, cc.MaxSegments))
	}
}

// spawnCompetitor rolls a personality around the player's current stats and places it away
// from the player's head.
func (a *Arena) spawnCompetitor() {
	cc := a.cfg.Competitor
	p := &a.player
	per := a.cfg.Director.Distribution.Roll(a.rng, PlayerStats{
		Segments: len(p.Segments),
		Radius:   p.Radius,
		Speed:    p.NormalSpeed,
	})
	per.Segments = min(max(per.Segments, 1), cc.MaxSegments)

	playerHead := p.Head()
	head := a.pickSpawn(func(c geometry.Vector2D) float64 {
		return a.world.Distance(c, playerHead)
	})
	heading := geometry.NewVectorPolar(1, a.rng.Float64()*2*math.Pi)
	c := &Competitor{
		Body: Body{
			Heading:       heading,
			TargetHeading: heading,
			Speed:         per.Speed,
			NormalSpeed:   per.Speed,
			BoostSpeed:    per.Speed * cc.BoostMultiplier,
			Radius:        per.Radius,
			TurnRate:      per.TurnRate,
			SpacingFactor: cc.SpacingFactor,
		},
		ID:            fmt.Sprintf("Competitor-%03d", a.nextID),
		Personality:   per,
		ThinkTimer:    a.rng.Float64() * per.ThinkInterval,
		SpawnSegments: per.Segments,
		Tag:           uint8(a.rng.IntN(a.cfg.Resources.Tags)),
	}
	c.Segments = layChain(a.world, head, heading, per.Segments, c.Spacing())
	a.nextID++
	a.competitors = append(a.competitors, c)
	a.effects = append(a.effects, Effect{Kind: EffectSpawn, Pos: head, Tag: c.Tag})
	a.log.Debugf("spawned %s", c)
}

// despawnFarthest quietly removes the competitor farthest from the player. No food is dropped.
func (a *Arena) despawnFarthest() {
	if len(a.competitors) == 0 {
		return
	}
	head := a.player.Head()
	far, farD := 0, -1.0
	for i, c := range a.competitors {
		if d := a.world.DistanceSqr(head, c.Head()); d > farD {
			far, farD = i, d
		}
	}
	a.log.Debugf("despawned %s", a.competitors[far])
	last := len(a.competitors) - 1
	a.competitors[far] = a.competitors[last]
	a.competitors[last] = nil
	a.competitors = a.competitors[:last]
}
