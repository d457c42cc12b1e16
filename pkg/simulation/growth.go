package simulation

import (
	"fmt"
	"sort"
)

// ScoreStep says: once the player's growth score reaches Score, its Segment-th segment appears.
type ScoreStep struct {
	Score   int `json:"score"`
	Segment int `json:"segment"`
}

// ConsumptionStep says: after Consumed resources a competitor has gained Bonus segments
// over the length it spawned with.
type ConsumptionStep struct {
	Consumed int `json:"consumed"`
	Bonus    int `json:"bonus"`
}

// Milestone is a one-shot message shown when the player first reaches Segments.
type Milestone struct {
	Segments int    `json:"segments"`
	Message  string `json:"message"`
}

// LinearScoreSteps builds a table adding one segment every scorePerSegment points,
// for segments from..to.
func LinearScoreSteps(from, to, scorePerSegment int) []ScoreStep {
	steps := make([]ScoreStep, 0, to-from+1)
	for n := from; n <= to; n++ {
		steps = append(steps, ScoreStep{Score: (n - from + 1) * scorePerSegment, Segment: n})
	}
	return steps
}

// LinearConsumptionSteps builds a table granting one bonus segment every perSegment
// consumptions, up to maxBonus.
func LinearConsumptionSteps(perSegment, maxBonus int) []ConsumptionStep {
	steps := make([]ConsumptionStep, 0, maxBonus)
	for b := 1; b <= maxBonus; b++ {
		steps = append(steps, ConsumptionStep{Consumed: b * perSegment, Bonus: b})
	}
	return steps
}

// playerTargetSegments returns how many segments the score table grants at growthScore.
// The table is sorted, so the answer is the last step reached.
func playerTargetSegments(steps []ScoreStep, growthScore, base, maxSegments int) int {
	i := sort.Search(len(steps), func(i int) bool { return steps[i].Score > growthScore })
	target := base
	if i > 0 && steps[i-1].Segment > target {
		target = steps[i-1].Segment
	}
	return min(target, maxSegments)
}

// competitorTargetSegments is the consumption-gated twin of playerTargetSegments.
// The asymmetry is intentional: competitors need more meals per segment and hit a lower cap.
func competitorTargetSegments(steps []ConsumptionStep, consumed, spawnSegments, maxSegments int) int {
	i := sort.Search(len(steps), func(i int) bool { return steps[i].Consumed > consumed })
	bonus := 0
	if i > 0 {
		bonus = steps[i-1].Bonus
	}
	return min(spawnSegments+bonus, maxSegments)
}

// growBody appends tail duplicates until the body has target segments and returns how many it added.
// It never shrinks a body.
func growBody(b *Body, target int) int {
	added := 0
	for len(b.Segments) < target {
		b.Segments = append(b.Segments, b.Segments[len(b.Segments)-1])
		added++
	}
	return added
}

// growRadius applies one consumption's worth of radius growth, stopping at the cap.
func growRadius(b *Body, step, limit float64) {
	b.Radius = min(b.Radius+step, max(limit, b.Radius))
}

func validateScoreSteps(steps []ScoreStep) error {
	for i := 1; i < len(steps); i++ {
		if steps[i].Score <= steps[i-1].Score || steps[i].Segment <= steps[i-1].Segment {
			return fmt.Errorf("player.scoreSteps must increase strictly, step %d (%+v) follows %+v", i, steps[i], steps[i-1])
		}
	}
	return nil
}

func validateConsumptionSteps(steps []ConsumptionStep) error {
	for i := 1; i < len(steps); i++ {
		if steps[i].Consumed <= steps[i-1].Consumed || steps[i].Bonus <= steps[i-1].Bonus {
			return fmt.Errorf("competitor.consumptionSteps must increase strictly, step %d (%+v) follows %+v", i, steps[i], steps[i-1])
		}
	}
	return nil
}

// milestoneTracker fires each milestone once per game.
type milestoneTracker struct {
	milestones []Milestone
	fired      map[int]bool
}

func newMilestoneTracker(ms []Milestone) *milestoneTracker {
	return &milestoneTracker{milestones: ms, fired: make(map[int]bool, len(ms))}
}

// reached returns the messages newly unlocked by a body of the given length.
func (m *milestoneTracker) reached(segments int) []string {
	var out []string
	for _, ms := range m.milestones {
		if segments >= ms.Segments && !m.fired[ms.Segments] {
			m.fired[ms.Segments] = true
			out = append(out, ms.Message)
		}
	}
	return out
}

func (m *milestoneTracker) reset() {
	clear(m.fired)
}
