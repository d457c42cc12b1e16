package game

import (
	"math/rand/v2"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/lao-tseu-is-alive/go-arena-simulation/internal/sfx"
	"github.com/lao-tseu-is-alive/go-arena-simulation/pkg/geometry"
	"github.com/lao-tseu-is-alive/go-arena-simulation/pkg/simulation"
)

func TestWallet(t *testing.T) {
	w := NewWallet(1, 500)
	if !w.Spend() || w.Spend() {
		t.Fatal("expected exactly one token to spend")
	}

	tests := []struct {
		score, earned, balance int
	}{
		{120, 0, 0},
		{500, 1, 1},
		{990, 0, 1},
		{1600, 2, 3},
		{40, 0, 3},  // new game, counting restarts
		{510, 1, 4}, // first 500 of the new game
		{1000, 1, 5},
	}
	for _, tt := range tests {
		if got := w.Award(tt.score); got != tt.earned || w.Balance() != tt.balance {
			t.Errorf("Award(%d) = %d balance %d, want %d balance %d", tt.score, got, w.Balance(), tt.earned, tt.balance)
		}
	}

	t.Run("earning disabled", func(t *testing.T) {
		w := NewWallet(2, 0)
		if w.Award(10000) != 0 || w.Balance() != 2 {
			t.Errorf("balance %d", w.Balance())
		}
	})

	t.Run("concurrent spend", func(t *testing.T) {
		w := NewWallet(50, 0)
		var wg sync.WaitGroup
		var mu sync.Mutex
		spent := 0
		for range 100 {
			wg.Go(func() {
				if w.Spend() {
					mu.Lock()
					spent++
					mu.Unlock()
				}
			})
		}
		wg.Wait()
		if spent != 50 || w.Balance() != 0 {
			t.Errorf("spent %d, balance %d", spent, w.Balance())
		}
	})
}

func TestOverlay(t *testing.T) {
	now := time.Unix(1000, 0)
	o := NewOverlay(3*time.Second, 2)
	o.now = func() time.Time { return now }

	o.Push("one")
	now = now.Add(time.Second)
	o.Push("two")
	o.Push("three")
	if got := o.Active(); !slices.Equal(got, []string{"two", "three"}) {
		t.Errorf("limit not applied, got %v", got)
	}

	now = now.Add(3500 * time.Millisecond)
	o.Push("four")
	if got := o.Active(); !slices.Equal(got, []string{"four"}) {
		t.Errorf("expired messages still shown: %v", got)
	}

	o.Clear()
	if got := o.Active(); len(got) != 0 {
		t.Errorf("clear left %v", got)
	}
}

func TestParticles(t *testing.T) {
	world := geometry.NewTorus(100, 100)
	ps := NewParticles(rand.New(rand.NewPCG(1, 2)), 30)

	ps.Emit(simulation.Effect{Kind: simulation.EffectPlayerConsume, Pos: geometry.Vector2D{X: 99, Y: 99}})
	if ps.Len() != bursts[simulation.EffectPlayerConsume].count {
		t.Fatalf("expected a full burst, got %d", ps.Len())
	}
	ps.Emit(simulation.Effect{Kind: simulation.EffectPlayerDeath})
	if ps.Len() != 30 {
		t.Errorf("limit not applied, got %d", ps.Len())
	}

	ps.Update(world, 0.1)
	for _, p := range ps.items {
		if !world.Contains(p.pos) {
			t.Fatalf("particle left the world: %s", p.pos)
		}
		if a := p.alpha(); a <= 0 || a >= 1 {
			t.Fatalf("alpha %v outside (0, 1) mid life", a)
		}
	}

	for range 100 {
		ps.Update(world, 0.1)
	}
	if ps.Len() != 0 {
		t.Errorf("particles should expire, %d left", ps.Len())
	}

	t.Run("unknown effect", func(t *testing.T) {
		ps.Emit(simulation.Effect{Kind: simulation.EffectKind(99)})
		if ps.Len() != 0 {
			t.Error("unknown effects must not emit")
		}
	})
}

func TestSteering(t *testing.T) {
	tests := []struct {
		name                  string
		up, down, left, right bool
		want                  geometry.Vector2D
	}{
		{"idle", false, false, false, false, geometry.Vector2D{}},
		{"up", true, false, false, false, geometry.Vector2D{Y: -1}},
		{"diagonal", false, true, false, true, geometry.Vector2D{X: 1, Y: 1}},
		{"opposites cancel", true, true, true, false, geometry.Vector2D{X: -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := keyboardSteer(tt.up, tt.down, tt.left, tt.right); !got.Eq(tt.want) {
				t.Errorf("keyboardSteer() = %s, want %s", got, tt.want)
			}
		})
	}

	head := geometry.Vector2D{X: 300, Y: 300}
	if got := mouseSteer(geometry.Vector2D{X: 303, Y: 302}, head); !got.IsZero() {
		t.Errorf("cursor on the head should not steer, got %s", got)
	}
	if got := mouseSteer(geometry.Vector2D{X: 400, Y: 300}, head); !got.Eq(geometry.Vector2D{X: 100}) {
		t.Errorf("mouseSteer() = %s", got)
	}
}

func TestArenaHost(t *testing.T) {
	now := time.Unix(0, 0)
	overlay := NewOverlay(time.Minute, 10)
	overlay.now = func() time.Time { return now }
	h := &arenaHost{wallet: NewWallet(1, 100), overlay: overlay}

	if h.RequestContinuation(50) {
		t.Error("continuation granted without auto continue")
	}
	h.autoContinue.Store(true)
	if !h.RequestContinuation(50) {
		t.Error("continuation denied with a token available")
	}
	if h.RequestContinuation(50) {
		t.Error("continuation granted with an empty wallet")
	}

	h.ScoreChanged(250)
	if h.wallet.Balance() != 2 {
		t.Errorf("expected 2 earned tokens, balance %d", h.wallet.Balance())
	}
	h.LifeLost(2)
	h.MilestoneMessage("Growing strong")
	msgs := overlay.Active()
	if len(msgs) != 4 || msgs[len(msgs)-1] != "Growing strong" {
		t.Errorf("overlay = %v", msgs)
	}

	// the arena calls the host through the interface
	var _ simulation.Host = h
}

func TestGridLines(t *testing.T) {
	got := gridLines(250, 300, 100, 2)
	if !slices.Equal(got, []float64{100, 300, 500}) {
		t.Errorf("gridLines() = %v", got)
	}
	if got := gridLines(0, 100, 100, 1); !slices.Equal(got, []float64{0}) {
		t.Errorf("a line on the origin belongs to the view, got %v", got)
	}
}

func TestGame_continueSpendsOnGrant(t *testing.T) {
	g := &Game{
		wallet:    NewWallet(1, 0),
		overlay:   NewOverlay(time.Second, 4),
		particles: NewParticles(rand.New(rand.NewPCG(1, 2)), 10),
		sound:     sfx.NewPlayer(0),
	}
	continued := []simulation.Event{{Kind: simulation.EventContinued, Value: 3}}

	tests := []struct {
		name    string
		frames  []simulation.Frame
		balance int
	}{
		{"stale game over frames wait", []simulation.Frame{{State: simulation.GameOver}}, 1},
		{"refused continue keeps the token", []simulation.Frame{{State: simulation.GameOver}, {State: simulation.Playing}}, 1},
		{"granted continue spends it", []simulation.Frame{{State: simulation.GameOver}, {State: simulation.Playing, Events: continued}}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g.wallet = NewWallet(1, 0)
			g.pending, g.continuing = true, true
			for _, f := range tt.frames {
				g.consume(f)
			}
			if g.wallet.Balance() != tt.balance {
				t.Errorf("balance %d, want %d", g.wallet.Balance(), tt.balance)
			}
			last := tt.frames[len(tt.frames)-1]
			if g.pending != (last.State == simulation.GameOver) {
				t.Errorf("pending = %v after a %s frame", g.pending, last.State)
			}
		})
	}
}
