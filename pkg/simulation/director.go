package simulation

import (
	"fmt"
	"math"
	"math/rand/v2"
)

// Range is a uniform interval.
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

func (r Range) roll(rng *rand.Rand) float64 {
	if r.Max <= r.Min {
		return r.Min
	}
	return r.Min + rng.Float64()*(r.Max-r.Min)
}

// StatRange is a triangular distribution whose centre tracks a player stat:
// centre = clamp(playerStat*Ratio, Floor, Ceiling), value = centre ± Spread, clamped again.
// Floor keeps new competitors worth fighting, Ceiling keeps them beatable.
type StatRange struct {
	Floor   float64 `json:"floor"`
	Ceiling float64 `json:"ceiling"`
	Ratio   float64 `json:"ratio"`
	Spread  float64 `json:"spread"`
}

func (s StatRange) clamp(v float64) float64 {
	return math.Max(s.Floor, math.Min(s.Ceiling, v))
}

// roll samples around the player's stat. Two uniforms summed give the triangular weight.
func (s StatRange) roll(rng *rand.Rand, playerStat float64) float64 {
	centre := s.clamp(playerStat * s.Ratio)
	offset := (rng.Float64() + rng.Float64() - 1) * s.Spread
	return s.clamp(centre + offset)
}

// Distribution describes how the director rolls new competitors.
type Distribution struct {
	Segments            StatRange `json:"segments"`
	Radius              StatRange `json:"radius"`
	Speed               StatRange `json:"speed"`
	ThinkInterval       Range     `json:"thinkInterval"`
	TurnRate            Range     `json:"turnRate"`
	Aggression          Range     `json:"aggression"`
	AggressionThreshold Range     `json:"aggressionThreshold"`
	Intelligence        Range     `json:"intelligence"`
	SightRange          Range     `json:"sightRange"`
	BoostBurst          Range     `json:"boostBurst"`
}

// PlayerStats is what the distribution centres on.
type PlayerStats struct {
	Segments int
	Radius   float64
	Speed    float64
}

// Roll draws one personality. The shape of the opposition follows the player's current stats,
// not the stats the game started with.
func (d Distribution) Roll(rng *rand.Rand, p PlayerStats) Personality {
	return Personality{
		Segments:            int(math.Round(d.Segments.roll(rng, float64(p.Segments)))),
		Radius:              d.Radius.roll(rng, p.Radius),
		Speed:               d.Speed.roll(rng, p.Speed),
		ThinkInterval:       d.ThinkInterval.roll(rng),
		TurnRate:            d.TurnRate.roll(rng),
		Aggression:          d.Aggression.roll(rng),
		AggressionThreshold: int(math.Round(d.AggressionThreshold.roll(rng))),
		Intelligence:        d.Intelligence.roll(rng),
		SightRange:          d.SightRange.roll(rng),
		BoostBurst:          d.BoostBurst.roll(rng),
	}
}

// Phase is one row of the population table, active once the player has MinPlayerSegments.
type Phase struct {
	MinPlayerSegments int     `json:"minPlayerSegments"`
	SpawnInterval     float64 `json:"spawnInterval"`
	Floor             int     `json:"floor"`
	Ceiling           int     `json:"ceiling"`
}

func validatePhases(phases []Phase) error {
	if len(phases) == 0 {
		return fmt.Errorf("director.phases must not be empty")
	}
	if phases[0].MinPlayerSegments != 0 {
		return fmt.Errorf("director.phases[0] must start at minPlayerSegments 0")
	}
	for i, ph := range phases {
		if ph.Floor < 1 || ph.Ceiling < ph.Floor {
			return fmt.Errorf("director.phases[%d] needs 1 <= floor <= ceiling, got %d..%d", i, ph.Floor, ph.Ceiling)
		}
		if i == 0 {
			continue
		}
		prev := phases[i-1]
		if ph.MinPlayerSegments <= prev.MinPlayerSegments {
			return fmt.Errorf("director.phases[%d] minPlayerSegments must increase", i)
		}
		if ph.Ceiling > prev.Ceiling || ph.SpawnInterval < prev.SpawnInterval {
			return fmt.Errorf("director.phases[%d] must not raise the ceiling or shorten the interval", i)
		}
	}
	return nil
}

// Director keeps the competitor population inside the band of the active phase.
// It only decides counts; the arena places and removes the actual competitors.
type Director struct {
	phases  []Phase
	elapsed float64
}

func NewDirector(phases []Phase) *Director {
	return &Director{phases: phases}
}

// Phase returns the row active for a player of the given length.
func (d *Director) Phase(playerSegments int) Phase {
	active := d.phases[0]
	for _, ph := range d.phases[1:] {
		if playerSegments >= ph.MinPlayerSegments {
			active = ph
		}
	}
	return active
}

// Plan is what the director wants done this tick.
type Plan struct {
	Spawn   int
	Despawn int
}

// Step decides spawns and despawns for one tick.
// alive is the population after this tick's deaths were compacted, deaths is how many died.
func (d *Director) Step(dt float64, playerSegments, alive, deaths int) Plan {
	ph := d.Phase(playerSegments)
	var plan Plan

	// every death is replaced right away, not interval gated
	room := max(0, ph.Ceiling-alive)
	plan.Spawn = min(deaths, room)
	count := alive + plan.Spawn

	d.elapsed += dt
	if d.elapsed >= ph.SpawnInterval {
		if count < ph.Ceiling {
			plan.Spawn++
			count++
			d.elapsed = 0
		} else {
			// hold the timer so a free slot is filled as soon as it opens
			d.elapsed = ph.SpawnInterval
		}
	}

	if count < ph.Floor {
		plan.Spawn += ph.Floor - count
		count = ph.Floor
	}
	if count > ph.Ceiling {
		plan.Despawn = count - ph.Ceiling
	}
	return plan
}

// Reset clears the spawn timer for a new game.
func (d *Director) Reset() {
	d.elapsed = 0
}
