package simulation

import (
	"github.com/lao-tseu-is-alive/go-arena-simulation/pkg/geometry"
)

// turn rotates the heading toward TargetHeading by at most TurnRate*dt radians.
// This bounded turn is the whole "feel" of the game, nothing ever snaps direction.
func turn(b *Body, dt float64) {
	b.Heading = b.Heading.RotateToward(b.TargetHeading, b.TurnRate*dt)
}

// move advances the head along its heading, wraps it, then drags the chain behind it.
func move(world geometry.Torus, b *Body, dt float64) {
	b.Segments[0] = world.Advance(b.Segments[0], b.Heading.Mul(b.Speed*dt))
	followChain(world, b.Segments, b.Spacing())
}

// followChain pulls every segment that drifted further than spacing from its predecessor
// back to exactly spacing along the toroidal delta. Closer segments stay where they are,
// which gives the rope-like trailing body without per-segment velocity.
func followChain(world geometry.Torus, segs []geometry.Vector2D, spacing float64) {
	for i := 1; i < len(segs); i++ {
		d := world.Delta(segs[i-1], segs[i])
		l := d.Len()
		if l <= spacing || l < geometry.Epsilon {
			continue
		}
		segs[i] = world.Advance(segs[i-1], d.Mul(spacing/l))
	}
}

// applyPlayerBoost sets the player's speed for this tick and updates the energy and reserve budgets.
func applyPlayerBoost(p *Player, cfg BoostConfig, requested bool, dt float64) {
	p.Boosting = requested && p.BoostEnergy > 0 && p.BoostReserve > 0
	if p.Boosting {
		p.Speed = p.BoostSpeed
		p.BoostEnergy = max(0, p.BoostEnergy-cfg.DrainPerSecond*dt)
		p.BoostReserve = max(0, p.BoostReserve-dt)
		return
	}
	p.Speed = p.NormalSpeed
	p.BoostEnergy = min(cfg.EnergyMax, p.BoostEnergy+cfg.RegenPerSecond*dt)
}

// applyCompetitorBoost runs a competitor's sprint timer down.
func applyCompetitorBoost(c *Competitor, dt float64) {
	if c.IsBoosting && c.BoostTimer > 0 {
		c.Speed = c.BoostSpeed
		c.BoostTimer -= dt
		if c.BoostTimer <= 0 {
			c.BoostTimer = 0
			c.IsBoosting = false
		}
		return
	}
	c.IsBoosting = false
	c.Speed = c.NormalSpeed
}

// setSteer records the host's desired direction. A zero vector (no input yet) keeps the
// previous target instead of normalising by zero.
func setSteer(b *Body, steer geometry.Vector2D) {
	if steer.IsZero() {
		return
	}
	b.TargetHeading = steer.Normalize()
}
