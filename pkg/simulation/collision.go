package simulation

import (
	"math"

	"github.com/lao-tseu-is-alive/go-arena-simulation/pkg/geometry"
)

// playerOwner marks a segRef that belongs to the player.
const playerOwner = -1

// segRef points at one body segment: owner is a competitor index or playerOwner.
type segRef struct {
	owner int
	idx   int
}

type killCause uint8

const (
	alive killCause = iota
	killedByPlayer
	killedByAI
)

// tickMarks collects this tick's deaths and meals; nothing is removed until compact.
type tickMarks struct {
	playerDied bool
	deaths     []killCause // parallel to a.competitors
	eaten      []bool      // parallel to a.resources
	deathCount int
}

func (m *tickMarks) reset(competitors, resources int) {
	m.playerDied = false
	m.deathCount = 0
	m.deaths = resizeZero(m.deaths, competitors)
	m.eaten = resizeZero(m.eaten, resources)
}

func resizeZero[T any](s []T, n int) []T {
	if cap(s) < n {
		return make([]T, n)
	}
	s = s[:n]
	clear(s)
	return s
}

func (a *Arena) rebuildGrids() {
	a.segGrid.reset()
	if a.state == Playing {
		for i, s := range a.player.Segments {
			a.segGrid.insert(s, segRef{owner: playerOwner, idx: i})
		}
	}
	for ci, c := range a.competitors {
		for i, s := range c.Segments {
			a.segGrid.insert(s, segRef{owner: ci, idx: i})
		}
	}
	a.foodGrid.reset()
	for i, r := range a.resources {
		a.foodGrid.insert(r.Pos, i)
	}
}

// body resolves a segRef's owner.
func (a *Arena) body(owner int) *Body {
	if owner == playerOwner {
		return &a.player.Body
	}
	return &a.competitors[owner].Body
}

// detectCollisions classifies every death of this tick. A competitor is checked against the
// player's body first, then against other competitors, and stops at its first hit, so no
// competitor can die twice or from two causes. Dead competitors stay in the grid as obstacles.
func (a *Arena) detectCollisions() {
	m := &a.marks
	playing := a.state == Playing

	if playing {
		head, r := a.player.Head(), a.player.Radius
		a.segGrid.near(head, func(ref segRef) bool {
			if ref.owner == playerOwner {
				return true
			}
			c := a.competitors[ref.owner]
			if a.world.Overlap(head, r, c.Segments[ref.idx], c.Radius) {
				m.playerDied = true
				return false
			}
			return true
		})
	}

	for ci, c := range a.competitors {
		head, r := c.Head(), c.Radius
		cause := alive
		// player body first, so a kill by the player always wins the classification
		if playing {
			a.segGrid.near(head, func(ref segRef) bool {
				if ref.owner != playerOwner || ref.idx == 0 {
					return true
				}
				if a.world.Overlap(head, r, a.player.Segments[ref.idx], a.player.Radius) {
					cause = killedByPlayer
					return false
				}
				return true
			})
		}
		if cause == alive {
			a.segGrid.near(head, func(ref segRef) bool {
				if ref.owner == playerOwner || ref.owner == ci {
					return true
				}
				other := a.competitors[ref.owner]
				if a.world.Overlap(head, r, other.Segments[ref.idx], other.Radius) {
					cause = killedByAI
					return false
				}
				return true
			})
		}
		if cause != alive {
			m.deaths[ci] = cause
			m.deathCount++
		}
	}
}

// consumeResources lets every surviving head eat what it overlaps. The player eats first.
// A resource is eaten at most once per tick.
func (a *Arena) consumeResources() {
	m := &a.marks
	if a.state == Playing && !m.playerDied {
		p := &a.player
		head := p.Head()
		a.foodGrid.near(head, func(i int) bool {
			r := a.resources[i]
			if !m.eaten[i] && a.world.Overlap(head, p.Radius, r.Pos, r.Radius) {
				m.eaten[i] = true
				a.playerAte(r)
			}
			return true
		})
	}
	for ci, c := range a.competitors {
		if m.deaths[ci] != alive {
			continue
		}
		head := c.Head()
		a.foodGrid.near(head, func(i int) bool {
			r := a.resources[i]
			if !m.eaten[i] && a.world.Overlap(head, c.Radius, r.Pos, r.Radius) {
				m.eaten[i] = true
				c.Consumed++
				growRadius(&c.Body, a.cfg.Competitor.RadiusStep, a.cfg.Competitor.RadiusCap)
				a.effects = append(a.effects, Effect{Kind: EffectConsume, Pos: r.Pos, Tag: r.Tag})
			}
			return true
		})
	}
}

func (a *Arena) playerAte(r Resource) {
	p := &a.player
	p.Score += a.cfg.Resources.ScoreValue
	p.GrowthScore += a.cfg.Resources.ScoreValue
	p.BoostReserve = a.cfg.Boost.ReserveSeconds
	growRadius(&p.Body, a.cfg.Player.RadiusStep, a.cfg.Player.RadiusCap)
	a.effects = append(a.effects, Effect{Kind: EffectPlayerConsume, Pos: r.Pos, Tag: r.Tag})
	a.emit(Event{Kind: EventScore, Value: p.Score})
}

// convert turns a dead body into food. every is 1 for a full conversion, 2 for every other segment.
func (a *Arena) convert(b *Body, every int, tag uint8) {
	scatter := b.Radius * a.cfg.Resources.ScatterFactor
	for i := 0; i < len(b.Segments); i += every {
		a.spawned = append(a.spawned, a.scatteredResource(b.Segments[i], scatter, tag))
	}
	for range a.cfg.Resources.HeadBurst {
		a.spawned = append(a.spawned, a.scatteredResource(b.Head(), scatter, tag))
	}
}

// scatteredResource drops a resource uniformly inside a disc of radius spread around p.
func (a *Arena) scatteredResource(p geometry.Vector2D, spread float64, tag uint8) Resource {
	r := a.randomResource()
	offset := geometry.NewVectorPolar(spread*math.Sqrt(a.rng.Float64()), a.rng.Float64()*2*math.Pi)
	r.Pos = a.world.Advance(p, offset)
	r.Tag = tag
	return r
}

func (a *Arena) randomResource() Resource {
	rc := a.cfg.Resources
	return Resource{
		Pos:    a.randomPoint(),
		Radius: rc.MinRadius + a.rng.Float64()*(rc.MaxRadius-rc.MinRadius),
		Tag:    uint8(a.rng.IntN(rc.Tags)),
	}
}

func (a *Arena) randomPoint() geometry.Vector2D {
	return geometry.Vector2D{X: a.rng.Float64() * a.world.Width, Y: a.rng.Float64() * a.world.Height}
}

// resolveDeaths converts the marked bodies, then compacts both collections once.
func (a *Arena) resolveDeaths() {
	m := &a.marks
	for ci, c := range a.competitors {
		switch m.deaths[ci] {
		case killedByPlayer:
			a.convert(&c.Body, 1, c.Tag)
		case killedByAI:
			a.convert(&c.Body, 2, c.Tag)
		default:
			continue
		}
		a.effects = append(a.effects, Effect{Kind: EffectCompetitorDeath, Pos: c.Head(), Tag: c.Tag})
		a.log.Debugf("%s died (%s)", c, causeName(m.deaths[ci]))
	}
	if m.playerDied {
		a.convert(&a.player.Body, 1, 0)
		a.effects = append(a.effects, Effect{Kind: EffectPlayerDeath, Pos: a.player.Head()})
	}

	kept := a.competitors[:0]
	for ci, c := range a.competitors {
		if m.deaths[ci] == alive {
			kept = append(kept, c)
		}
	}
	clear(a.competitors[len(kept):])
	a.competitors = kept

	food := a.resources[:0]
	replacements := 0
	for i, r := range a.resources {
		if m.eaten[i] {
			replacements++
			continue
		}
		food = append(food, r)
	}
	a.resources = food
	for range replacements {
		a.resources = append(a.resources, a.randomResource())
	}
	a.resources = append(a.resources, a.spawned...)
	a.spawned = a.spawned[:0]
	for len(a.resources) < a.cfg.Resources.Floor {
		a.resources = append(a.resources, a.randomResource())
	}
}

func causeName(k killCause) string {
	switch k {
	case killedByPlayer:
		return "killed by player"
	case killedByAI:
		return "killed by competitor"
	}
	return "alive"
}
