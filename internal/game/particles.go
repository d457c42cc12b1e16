package game

import (
	"image/color"
	"math"
	"math/rand/v2"

	"github.com/lao-tseu-is-alive/go-arena-simulation/pkg/geometry"
	"github.com/lao-tseu-is-alive/go-arena-simulation/pkg/simulation"
)

type particle struct {
	pos   geometry.Vector2D
	vel   geometry.Vector2D
	age   float64
	ttl   float64
	size  float64
	color color.RGBA
}

// alpha fades linearly over the particle's life.
func (p *particle) alpha() float64 {
	return math.Max(0, 1-p.age/p.ttl)
}

type burst struct {
	count int
	speed float64
	ttl   float64
	size  float64
}

var bursts = map[simulation.EffectKind]burst{
	simulation.EffectConsume:         {count: 3, speed: 40, ttl: 0.35, size: 2},
	simulation.EffectPlayerConsume:   {count: 10, speed: 90, ttl: 0.5, size: 3},
	simulation.EffectCompetitorDeath: {count: 24, speed: 140, ttl: 0.9, size: 3},
	simulation.EffectPlayerDeath:     {count: 40, speed: 180, ttl: 1.2, size: 4},
	simulation.EffectSpawn:           {count: 8, speed: 30, ttl: 0.6, size: 2},
}

// Particles is the cosmetic burst system fed by frame effects. World coordinates,
// single goroutine (ebiten's Update).
type Particles struct {
	rng   *rand.Rand
	limit int
	items []particle
}

func NewParticles(rng *rand.Rand, limit int) *Particles {
	return &Particles{rng: rng, limit: limit, items: make([]particle, 0, limit)}
}

func (ps *Particles) Emit(e simulation.Effect) {
	b, ok := bursts[e.Kind]
	if !ok {
		return
	}
	clr := effectColor(e)
	for range b.count {
		if len(ps.items) >= ps.limit {
			return
		}
		speed := b.speed * (0.5 + ps.rng.Float64())
		ps.items = append(ps.items, particle{
			pos:   e.Pos,
			vel:   geometry.NewVectorPolar(speed, ps.rng.Float64()*2*math.Pi),
			ttl:   b.ttl * (0.7 + 0.6*ps.rng.Float64()),
			size:  b.size,
			color: clr,
		})
	}
}

// Update moves every particle, applies drag and drops the expired ones.
func (ps *Particles) Update(world geometry.Torus, dt float64) {
	drag := math.Exp(-3 * dt)
	kept := ps.items[:0]
	for _, p := range ps.items {
		p.age += dt
		if p.age >= p.ttl {
			continue
		}
		p.pos = world.Advance(p.pos, p.vel.Mul(dt))
		p.vel = p.vel.Mul(drag)
		kept = append(kept, p)
	}
	ps.items = kept
}

func (ps *Particles) Len() int { return len(ps.items) }

func (ps *Particles) Reset() { ps.items = ps.items[:0] }

func effectColor(e simulation.Effect) color.RGBA {
	switch e.Kind {
	case simulation.EffectCompetitorDeath:
		return color.RGBA{R: 255, G: 120, B: 60, A: 255}
	case simulation.EffectPlayerDeath:
		return color.RGBA{R: 255, G: 60, B: 60, A: 255}
	case simulation.EffectSpawn:
		return color.RGBA{R: 180, G: 180, B: 255, A: 255}
	}
	return resourcePalette[int(e.Tag)%len(resourcePalette)]
}
