package simulation

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed config.schema.json
var configSchema string

// Config holds every tunable of the arena. Thresholds, caps and milestone texts are data,
// the algorithms in growth.go and director.go never hard-code them.
type Config struct {
	// Seed feeds the single random source; 0 picks a time based seed.
	Seed uint64 `json:"seed"`
	// MaxDelta clamps a tick's elapsed time in seconds so a stalled frame cannot tunnel entities.
	MaxDelta float64 `json:"maxDelta"`

	World      WorldConfig      `json:"world"`
	Player     PlayerConfig     `json:"player"`
	Boost      BoostConfig      `json:"boost"`
	Competitor CompetitorConfig `json:"competitor"`
	Resources  ResourceConfig   `json:"resources"`
	Director   DirectorConfig   `json:"director"`
	Camera     CameraConfig     `json:"camera"`
}

type WorldConfig struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type PlayerConfig struct {
	StartLives    int     `json:"startLives"`
	StartSegments int     `json:"startSegments"`
	MaxSegments   int     `json:"maxSegments"`
	Radius        float64 `json:"radius"`
	RadiusStep    float64 `json:"radiusStep"` // added per consumption
	RadiusCap     float64 `json:"radiusCap"`
	SpacingFactor float64 `json:"spacingFactor"`
	NormalSpeed   float64 `json:"normalSpeed"` // world units per second
	BoostSpeed    float64 `json:"boostSpeed"`
	TurnRate      float64 `json:"turnRate"` // radians per second

	ScoreSteps []ScoreStep `json:"scoreSteps"`
	Milestones []Milestone `json:"milestones"`
}

type BoostConfig struct {
	EnergyMax      float64 `json:"energyMax"`
	DrainPerSecond float64 `json:"drainPerSecond"`
	RegenPerSecond float64 `json:"regenPerSecond"`
	// ReserveSeconds is the sprint budget refilled by every consumption.
	ReserveSeconds float64 `json:"reserveSeconds"`
}

type CompetitorConfig struct {
	SpacingFactor   float64 `json:"spacingFactor"`
	MaxSegments     int     `json:"maxSegments"`
	RadiusStep      float64 `json:"radiusStep"`
	RadiusCap       float64 `json:"radiusCap"`
	BoostMultiplier float64 `json:"boostMultiplier"`
	WanderJitter    float64 `json:"wanderJitter"` // radians
	HuntCooldown    float64 `json:"huntCooldown"` // seconds
	MaxLead         float64 `json:"maxLead"`      // seconds of pursuit prediction

	ConsumptionSteps []ConsumptionStep `json:"consumptionSteps"`
}

type ResourceConfig struct {
	Initial    int     `json:"initial"`
	Floor      int     `json:"floor"`
	MinRadius  float64 `json:"minRadius"`
	MaxRadius  float64 `json:"maxRadius"`
	ScoreValue int     `json:"scoreValue"`
	// ScatterFactor times the dying entity's radius bounds the death-drop offset.
	ScatterFactor float64 `json:"scatterFactor"`
	HeadBurst     int     `json:"headBurst"`
	Tags          int     `json:"tags"`
}

type DirectorConfig struct {
	InitialCount     int          `json:"initialCount"`
	SpawnMinDistance float64      `json:"spawnMinDistance"`
	SpawnAttempts    int          `json:"spawnAttempts"`
	Phases           []Phase      `json:"phases"`
	Distribution     Distribution `json:"distribution"`
}

type CameraConfig struct {
	ViewWidth      float64 `json:"viewWidth"`
	ViewHeight     float64 `json:"viewHeight"`
	ZoomPerSegment float64 `json:"zoomPerSegment"`
	Ease           float64 `json:"ease"` // per second
}

func DefaultConfig() *Config {
	return &Config{
		MaxDelta: 0.1,
		World:    WorldConfig{Width: 3000, Height: 3000},
		Player: PlayerConfig{
			StartLives:    3,
			StartSegments: 1,
			MaxSegments:   40,
			Radius:        20,
			RadiusStep:    0.2,
			RadiusCap:     30,
			SpacingFactor: 1.5,
			NormalSpeed:   120,
			BoostSpeed:    240,
			TurnRate:      4,
			ScoreSteps:    LinearScoreSteps(2, 40, 30),
			Milestones: []Milestone{
				{Segments: 6, Message: "A colony takes hold: plaque is forming!"},
				{Segments: 8, Message: "Biofilm thickening, the enamel is under attack!"},
				{Segments: 12, Message: "Acid production is off the charts."},
				{Segments: 20, Message: "A cavity opens. The toothbrush fears you."},
				{Segments: 30, Message: "Dentists across the land whisper your name."},
				{Segments: 40, Message: "Streptococcus mutans, supreme ruler of the mouth."},
			},
		},
		Boost: BoostConfig{
			EnergyMax:      100,
			DrainPerSecond: 50,
			RegenPerSecond: 10,
			ReserveSeconds: 1,
		},
		Competitor: CompetitorConfig{
			SpacingFactor:    1.8,
			MaxSegments:      20,
			RadiusStep:       0.25,
			RadiusCap:        28,
			BoostMultiplier:  1.8,
			WanderJitter:     math.Pi / 3,
			HuntCooldown:     4,
			MaxLead:          1.5,
			ConsumptionSteps: LinearConsumptionSteps(5, 8),
		},
		Resources: ResourceConfig{
			Initial:       50,
			Floor:         50,
			MinRadius:     5,
			MaxRadius:     10,
			ScoreValue:    10,
			ScatterFactor: 1,
			HeadBurst:     3,
			Tags:          5,
		},
		Director: DirectorConfig{
			InitialCount:     5,
			SpawnMinDistance: 500,
			SpawnAttempts:    32,
			Phases: []Phase{
				{MinPlayerSegments: 0, SpawnInterval: 4, Floor: 3, Ceiling: 8},
				{MinPlayerSegments: 10, SpawnInterval: 7, Floor: 2, Ceiling: 6},
				{MinPlayerSegments: 20, SpawnInterval: 10, Floor: 2, Ceiling: 4},
			},
			Distribution: Distribution{
				Segments:            StatRange{Floor: 5, Ceiling: 12, Ratio: 1, Spread: 3},
				Radius:              StatRange{Floor: 15, Ceiling: 25, Ratio: 0.9, Spread: 4},
				Speed:               StatRange{Floor: 60, Ceiling: 120, Ratio: 0.7, Spread: 20},
				ThinkInterval:       Range{Min: 1, Max: 3},
				TurnRate:            Range{Min: 1.2, Max: 3.6},
				Aggression:          Range{Min: 0, Max: 1},
				AggressionThreshold: Range{Min: 3, Max: 7},
				Intelligence:        Range{Min: 0, Max: 1},
				SightRange:          Range{Min: 300, Max: 500},
				BoostBurst:          Range{Min: 0.5, Max: 1.5},
			},
		},
		Camera: CameraConfig{
			ViewWidth:      600,
			ViewHeight:     600,
			ZoomPerSegment: 0.02,
			Ease:           5,
		},
	}
}

// LoadConfig loads configuration from a JSON file, validates it against the embedded schema,
// and decodes it over DefaultConfig so a file only needs the values it changes.
func LoadConfig(configFile string) (*Config, error) {
	b, err := os.ReadFile(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg, err := ParseConfig(b)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", configFile, err)
	}
	return cfg, nil
}

// ParseConfig validates raw JSON against the schema, then against the semantic rules of Validate.
func ParseConfig(b []byte) (*Config, error) {
	sch, err := jsonschema.CompileString("arena.schema.json", configSchema)
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema: %w", err)
	}

	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return nil, fmt.Errorf("failed to decode config json: %w", err)
	}
	if err := sch.Validate(v); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	// tables are replaced wholesale, decoding a shorter array over the defaults would merge elements
	cfg := DefaultConfig()
	defaults := *cfg
	cfg.Player.ScoreSteps = nil
	cfg.Player.Milestones = nil
	cfg.Competitor.ConsumptionSteps = nil
	cfg.Director.Phases = nil
	if err := json.Unmarshal(b, cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if cfg.Player.ScoreSteps == nil {
		cfg.Player.ScoreSteps = defaults.Player.ScoreSteps
	}
	if cfg.Player.Milestones == nil {
		cfg.Player.Milestones = defaults.Player.Milestones
	}
	if cfg.Competitor.ConsumptionSteps == nil {
		cfg.Competitor.ConsumptionSteps = defaults.Competitor.ConsumptionSteps
	}
	if cfg.Director.Phases == nil {
		cfg.Director.Phases = defaults.Director.Phases
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the cross-field rules a JSON schema cannot express.
func (c *Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(c.World.Width > 0 && c.World.Height > 0, "world must have positive dimensions, got %vx%v", c.World.Width, c.World.Height)
	check(c.MaxDelta > 0, "maxDelta must be positive")

	p := c.Player
	check(p.StartLives >= 1, "player.startLives must be at least 1")
	check(p.StartSegments >= 1 && p.StartSegments <= p.MaxSegments, "player.startSegments must be in [1, maxSegments]")
	check(p.Radius > 0 && p.RadiusCap >= p.Radius, "player.radiusCap must be >= player.radius > 0")
	check(p.BoostSpeed >= p.NormalSpeed, "player.boostSpeed must be >= normalSpeed")
	if err := validateScoreSteps(p.ScoreSteps); err != nil {
		errs = append(errs, err)
	}

	comp := c.Competitor
	check(comp.MaxSegments < p.MaxSegments, "competitor.maxSegments (%d) must stay below player.maxSegments (%d)", comp.MaxSegments, p.MaxSegments)
	if err := validateConsumptionSteps(comp.ConsumptionSteps); err != nil {
		errs = append(errs, err)
	}

	r := c.Resources
	check(r.Floor >= 1, "resources.floor must be at least 1")
	check(r.MinRadius > 0 && r.MaxRadius >= r.MinRadius, "resources radius range is empty")
	check(r.Tags >= 1, "resources.tags must be at least 1")

	d := c.Director
	check(d.SpawnAttempts >= 1, "director.spawnAttempts must be at least 1")
	half := math.Min(c.World.Width, c.World.Height) / 2
	check(d.SpawnMinDistance < half, "director.spawnMinDistance (%v) must be below half the world (%v)", d.SpawnMinDistance, half)
	if err := validatePhases(d.Phases); err != nil {
		errs = append(errs, err)
	}
	dist := d.Distribution
	check(dist.Segments.Floor >= 1 && int(dist.Segments.Ceiling) <= comp.MaxSegments,
		"distribution.segments must stay within [1, competitor.maxSegments]")
	check(dist.Radius.Floor > 0 && dist.Radius.Ceiling <= comp.RadiusCap,
		"distribution.radius ceiling must not exceed competitor.radiusCap")
	for name, sr := range map[string]StatRange{"segments": dist.Segments, "radius": dist.Radius, "speed": dist.Speed} {
		check(sr.Ceiling >= sr.Floor, "distribution.%s ceiling is below its floor", name)
	}

	check(c.Camera.ViewWidth > 0 && c.Camera.ViewHeight > 0, "camera view must have positive dimensions")

	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}
