// Package behavior holds the steering decisions autonomous competitors make when they "think".
// Each function only proposes a desired heading; turning toward it at a bounded rate is the
// locomotion layer's job, which is what keeps the motion from snapping.
package behavior

import (
	"math"
	"math/rand/v2"

	"github.com/lao-tseu-is-alive/go-arena-simulation/pkg/geometry"
)

// Wander returns the current heading turned by a random angle in [-jitter, jitter].
// A zero heading wanders off in a fully random direction.
func Wander(rng *rand.Rand, heading geometry.Vector2D, jitter float64) geometry.Vector2D {
	if heading.IsZero() {
		return geometry.NewVectorPolar(1, rng.Float64()*2*math.Pi)
	}
	turn := (rng.Float64()*2 - 1) * jitter
	return heading.Rotate(turn).Normalize()
}

// Seek returns the unit heading from pos toward target along the shortest path on the torus.
func Seek(world geometry.Torus, pos, target geometry.Vector2D) geometry.Vector2D {
	return world.Direction(pos, target)
}

// Pursue aims at where a moving target will be when we reach it.
// The lead time is the straight-line closing time capped at maxLead seconds.
func Pursue(world geometry.Torus, pos, target, targetVel geometry.Vector2D, speed, maxLead float64) geometry.Vector2D {
	lead := 0.0
	if speed > 0 {
		lead = math.Min(world.Distance(pos, target)/speed, maxLead)
	}
	predicted := world.Advance(target, targetVel.Mul(lead))
	return world.Direction(pos, predicted)
}

// Nearest returns the index of the candidate closest to pos within radius.
func Nearest(world geometry.Torus, pos geometry.Vector2D, candidates []geometry.Vector2D, radius float64) (int, bool) {
	best := -1
	bestSq := radius * radius
	for i, c := range candidates {
		d := world.DistanceSqr(pos, c)
		if d <= bestSq {
			best = i
			bestSq = d
		}
	}
	return best, best >= 0
}
