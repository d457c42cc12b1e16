package simulation

import (
	"fmt"

	"github.com/lao-tseu-is-alive/go-arena-simulation/pkg/geometry"
)

// Body is the chain every moving entity is made of. Segments[0] is the head.
type Body struct {
	Segments      []geometry.Vector2D
	Heading       geometry.Vector2D // unit vector
	TargetHeading geometry.Vector2D
	Speed         float64
	NormalSpeed   float64
	BoostSpeed    float64
	Radius        float64
	TurnRate      float64 // max radians per second
	SpacingFactor float64
}

// Head returns the leading segment.
func (b *Body) Head() geometry.Vector2D {
	return b.Segments[0]
}

// Spacing is the target distance between consecutive segments.
func (b *Body) Spacing() float64 {
	return b.Radius * b.SpacingFactor
}

// Velocity is the head's displacement per second at the current speed.
func (b *Body) Velocity() geometry.Vector2D {
	return b.Heading.Mul(b.Speed)
}

// layChain places n segments behind head, spaced along -heading and wrapped into the world.
func layChain(world geometry.Torus, head, heading geometry.Vector2D, n int, spacing float64) []geometry.Vector2D {
	segs := make([]geometry.Vector2D, n)
	for i := range segs {
		segs[i] = world.Advance(head, heading.Mul(-spacing*float64(i)))
	}
	return segs
}

// Player is the organism driven by the host's input.
type Player struct {
	Body
	Score int
	// GrowthScore is the score earned since the last spawn, it drives the score table.
	GrowthScore  int
	Lives        int
	BoostEnergy  float64
	BoostReserve float64 // seconds of sprint left, refilled by eating
	Boosting     bool
}

// Personality is the behaviour profile the director rolls for every new competitor.
type Personality struct {
	Segments            int
	Radius              float64
	Speed               float64
	ThinkInterval       float64 // seconds between heading re-evaluations
	TurnRate            float64
	Aggression          float64 // chance to sprint when hunting, 0..1
	AggressionThreshold int     // player length worth chasing
	Intelligence        float64 // chance to act on what it sees, 0..1
	SightRange          float64
	BoostBurst          float64 // seconds per sprint
}

// Competitor is an autonomous organism managed by the population director.
type Competitor struct {
	Body
	ID            string
	Personality   Personality
	ThinkTimer    float64
	IsBoosting    bool
	BoostTimer    float64
	HuntCooldown  float64
	Hunting       bool
	Consumed      int
	SpawnSegments int
	Tag           uint8
}

func (c *Competitor) String() string {
	return fmt.Sprintf("%s[len=%d r=%.1f at %s]", c.ID, len(c.Segments), c.Radius, c.Head())
}

// Resource is a consumable food particle.
type Resource struct {
	Pos    geometry.Vector2D
	Radius float64
	Tag    uint8 // cosmetic, picks the colour
}
