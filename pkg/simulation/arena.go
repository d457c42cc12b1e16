package simulation

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"github.com/tochemey/goakt/v3/log"

	"github.com/lao-tseu-is-alive/go-arena-simulation/pkg/geometry"
)

var (
	// ErrExited is returned by Update once the host asked to exit.
	ErrExited = errors.New("arena has exited")
	// ErrInvalidDelta rejects negative, NaN or infinite tick durations.
	ErrInvalidDelta = errors.New("invalid tick delta")
	// ErrNotGameOver is returned by Continue outside the game-over state.
	ErrNotGameOver = errors.New("arena is not in game over")
)

// Input is what the host samples once per tick. Steer is a direction, its length is ignored.
type Input struct {
	Steer geometry.Vector2D
	Boost bool
	Exit  bool
}

// Arena owns the whole simulation: the world, the player, the competitors and the food.
// It is not safe for concurrent use; WorldActor serialises access when several goroutines need it.
type Arena struct {
	cfg   *Config
	world geometry.Torus
	rng   *rand.Rand
	log   log.Logger
	host  Host

	state  State
	tick   uint64
	nextID int

	player      Player
	competitors []*Competitor
	resources   []Resource
	camera      Camera
	director    *Director
	milestones  *milestoneTracker
	// competitor deaths of a game over tick, replaced on the first tick after a continue
	unreplaced  int

	// per tick scratch, reused across ticks
	events  []Event
	effects []Effect
	marks   tickMarks
	spawned []Resource
	scratch []geometry.Vector2D

	segGrid  *spatialGrid[segRef]
	foodGrid *spatialGrid[int]
}

// Option customises an Arena.
type Option func(*Arena)

// WithRand injects the single random source. Tests pass a seeded one to get repeatable runs.
func WithRand(rng *rand.Rand) Option {
	return func(a *Arena) { a.rng = rng }
}

func WithLogger(l log.Logger) Option {
	return func(a *Arena) { a.log = l }
}

// New builds an arena in the NotStarted state. A nil host ignores every notification and
// denies continuations.
func New(cfg *Config, host Host, opts ...Option) (*Arena, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if host == nil {
		host = HostFuncs{}
	}
	a := &Arena{
		cfg:        cfg,
		world:      geometry.NewTorus(cfg.World.Width, cfg.World.Height),
		host:       host,
		log:        log.DefaultLogger,
		director:   NewDirector(cfg.Director.Phases),
		milestones: newMilestoneTracker(cfg.Player.Milestones),
		camera:     newCamera(cfg.Camera),
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.rng == nil {
		seed := cfg.Seed
		if seed == 0 {
			seed = uint64(time.Now().UnixNano())
		}
		a.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	}

	maxBody := math.Max(cfg.Player.RadiusCap, cfg.Competitor.RadiusCap)
	a.segGrid = newSpatialGrid[segRef](a.world, 2*maxBody)
	a.foodGrid = newSpatialGrid[int](a.world, maxBody+cfg.Resources.MaxRadius)
	return a, nil
}

func (a *Arena) State() State { return a.state }
func (a *Arena) Tick() uint64 { return a.tick }
func (a *Arena) Config() *Config { return a.cfg }
func (a *Arena) Frame() Frame { return a.buildFrame() }
func (a *Arena) Competitors() int { return len(a.competitors) }

// Start begins the first game. It does nothing unless the arena is NotStarted.
func (a *Arena) Start() {
	if a.state != NotStarted {
		return
	}
	a.newGame()
	a.log.Infof("arena started: %vx%v world, %d competitors, %d resources",
		a.world.Width, a.world.Height, len(a.competitors), len(a.resources))
}

// Restart throws the current game away and starts a fresh one, from any state but Exited.
func (a *Arena) Restart() {
	if a.state == Exited {
		return
	}
	a.state = NotStarted
	a.clearTickOutput()
	a.newGame()
	a.log.Info("arena restarted")
}

// Continue grants a continuation after the host first declined one.
func (a *Arena) Continue() error {
	if a.state != GameOver {
		return fmt.Errorf("continue in state %s: %w", a.state, ErrNotGameOver)
	}
	// the frame after a continue carries only its own event
	a.clearTickOutput()
	a.grantContinuation()
	return nil
}

// Update advances the simulation by dt seconds. dt above MaxDelta is clamped.
// Outside Playing the call only handles Exit.
func (a *Arena) Update(dt float64, in Input) error {
	if a.state == Exited {
		return ErrExited
	}
	if dt < 0 || math.IsNaN(dt) || math.IsInf(dt, 0) {
		return fmt.Errorf("%w: %v", ErrInvalidDelta, dt)
	}
	a.clearTickOutput()
	if in.Exit {
		a.state = Exited
		a.log.Info("arena exited")
		return nil
	}
	if a.state != Playing {
		return nil
	}
	dt = math.Min(dt, a.cfg.MaxDelta)
	a.tick++

	// steering
	p := &a.player
	setSteer(&p.Body, in.Steer)
	applyPlayerBoost(p, a.cfg.Boost, in.Boost, dt)
	turn(&p.Body, dt)
	move(a.world, &p.Body, dt)
	a.thinkAll(dt)
	a.steerCompetitors(dt)

	// collision and lifecycle
	a.marks.reset(len(a.competitors), len(a.resources))
	a.rebuildGrids()
	a.detectCollisions()
	a.consumeResources()
	deaths := a.marks.deathCount
	playerDied := a.marks.playerDied
	a.resolveDeaths()

	// growth
	if !playerDied {
		a.growPlayer()
	}
	a.growCompetitors()
	if playerDied {
		a.loseLife()
	}

	// population
	if a.state != Playing {
		a.unreplaced += deaths
	} else {
		deaths += a.unreplaced
		a.unreplaced = 0
		plan := a.director.Step(dt, len(p.Segments), len(a.competitors), deaths)
		for range plan.Spawn {
			a.spawnCompetitor()
		}
		for range plan.Despawn {
			a.despawnFarthest()
		}
		a.camera.follow(a.world, a.cfg.Camera, p.Head(), len(p.Segments), dt)
	}
	return nil
}

func (a *Arena) clearTickOutput() {
	a.events = a.events[:0]
	a.effects = a.effects[:0]
}

func (a *Arena) emit(e Event) {
	a.events = append(a.events, e)
	switch e.Kind {
	case EventScore:
		a.host.ScoreChanged(e.Value)
	case EventMilestone:
		a.host.MilestoneMessage(e.Message)
	case EventLifeLost:
		a.host.LifeLost(e.Value)
	case EventGameOver:
		a.host.GameOver(e.Value)
	}
}
