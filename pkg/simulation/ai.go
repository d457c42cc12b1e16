package simulation

import (
	"github.com/lao-tseu-is-alive/go-arena-simulation/pkg/behavior"
)

// thinkAll runs every competitor's timers and re-plans the ones whose think timer elapsed.
func (a *Arena) thinkAll(dt float64) {
	playerAlive := a.state == Playing
	for _, c := range a.competitors {
		c.HuntCooldown = max(0, c.HuntCooldown-dt)
		c.ThinkTimer -= dt
		if c.ThinkTimer > 0 {
			continue
		}
		c.ThinkTimer += c.Personality.ThinkInterval
		if c.ThinkTimer <= 0 {
			c.ThinkTimer = c.Personality.ThinkInterval
		}
		a.think(c, playerAlive)
	}
}

// think picks a new target heading: hunt the player, else go for food, else wander.
func (a *Arena) think(c *Competitor, playerAlive bool) {
	head := c.Head()
	per := c.Personality
	c.Hunting = false

	if playerAlive && a.wantsHunt(c) {
		p := &a.player
		c.TargetHeading = behavior.Pursue(a.world, head, p.Head(), p.Velocity(), c.Speed, a.cfg.Competitor.MaxLead)
		c.Hunting = true
		if a.rng.Float64() < per.Aggression {
			c.IsBoosting = true
			c.BoostTimer = per.BoostBurst
		}
		c.HuntCooldown = a.cfg.Competitor.HuntCooldown
		return
	}

	if a.rng.Float64() < per.Intelligence {
		a.scratch = a.scratch[:0]
		for _, r := range a.resources {
			a.scratch = append(a.scratch, r.Pos)
		}
		if i, ok := behavior.Nearest(a.world, head, a.scratch, per.SightRange); ok {
			c.TargetHeading = behavior.Seek(a.world, head, a.scratch[i])
			return
		}
	}

	c.TargetHeading = behavior.Wander(a.rng, c.Heading, a.cfg.Competitor.WanderJitter)
}

func (a *Arena) wantsHunt(c *Competitor) bool {
	per := c.Personality
	if c.HuntCooldown > 0 || len(a.player.Segments) < per.AggressionThreshold {
		return false
	}
	if a.world.Distance(c.Head(), a.player.Head()) > per.SightRange {
		return false
	}
	return a.rng.Float64() < per.Intelligence
}

// steerCompetitors turns and moves every competitor for one tick.
func (a *Arena) steerCompetitors(dt float64) {
	for _, c := range a.competitors {
		applyCompetitorBoost(c, dt)
		turn(&c.Body, dt)
		move(a.world, &c.Body, dt)
	}
}
