package terminal

import (
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/tochemey/goakt/v3/log"

	"github.com/lao-tseu-is-alive/go-arena-simulation/pkg/geometry"
	"github.com/lao-tseu-is-alive/go-arena-simulation/pkg/simulation"
)

func testViewport() viewport {
	return viewport{
		cols:   60,
		rows:   31, // 30 arena rows under the HUD
		world:  geometry.NewTorus(3000, 3000),
		camera: simulation.Camera{Pos: geometry.Vector2D{X: 2900, Y: 0}, Zoom: 1, ViewWidth: 600, ViewHeight: 600},
	}
}

func TestViewport_cell(t *testing.T) {
	v := testViewport()
	tests := []struct {
		name     string
		p        geometry.Vector2D
		col, row int
		ok       bool
	}{
		{"top left", geometry.Vector2D{X: 2900, Y: 0}, 0, 1, true},
		{"across the seam", geometry.Vector2D{X: 100, Y: 300}, 20, 16, true},
		{"last cell", geometry.Vector2D{X: 499, Y: 599}, 59, 30, true},
		{"off screen", geometry.Vector2D{X: 1500, Y: 1500}, 0, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			col, row, ok := v.cell(tt.p)
			if ok != tt.ok || (ok && (col != tt.col || row != tt.row)) {
				t.Errorf("cell(%s) = %d,%d,%v want %d,%d,%v", tt.p, col, row, ok, tt.col, tt.row, tt.ok)
			}
		})
	}

	t.Run("terminal too small", func(t *testing.T) {
		v.rows = hudRows
		if _, _, ok := v.cell(geometry.Vector2D{X: 2900}); ok {
			t.Error("no arena rows left, nothing is visible")
		}
	})
}

type recorder map[[2]int]rune

func (r recorder) SetContent(x, y int, c rune, _ []rune, _ tcell.Style) { r[[2]int{x, y}] = c }

func TestDrawFrame_layers(t *testing.T) {
	v := testViewport()
	spot := geometry.Vector2D{X: 2950, Y: 100}
	f := &simulation.Frame{
		World:     v.world,
		Camera:    v.camera,
		Resources: []simulation.Resource{{Pos: spot, Radius: 5}, {Pos: geometry.Vector2D{X: 2990, Y: 100}, Radius: 5}},
		Competitors: []simulation.Competitor{{Body: simulation.Body{
			Segments: []geometry.Vector2D{{X: 50, Y: 200}, {X: 30, Y: 200}},
		}}},
		Player: simulation.Player{Body: simulation.Body{Segments: []geometry.Vector2D{spot}}},
	}
	rec := recorder{}
	drawFrame(rec, v, f)

	col, row, _ := v.cell(spot)
	if got := rec[[2]int{col, row}]; got != '@' {
		t.Errorf("the player's head must win its cell, got %q", got)
	}
	col, row, _ = v.cell(geometry.Vector2D{X: 2990, Y: 100})
	if got := rec[[2]int{col, row}]; got != '·' {
		t.Errorf("expected a resource, got %q", got)
	}
	col, row, _ = v.cell(geometry.Vector2D{X: 30, Y: 200})
	if got := rec[[2]int{col, row}]; got != 'o' {
		t.Errorf("expected a competitor segment, got %q", got)
	}
}

func TestSteerKey(t *testing.T) {
	tests := []struct {
		ev   *tcell.EventKey
		want geometry.Vector2D
		ok   bool
	}{
		{tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone), geometry.Vector2D{Y: -1}, true},
		{tcell.NewEventKey(tcell.KeyRune, 'd', tcell.ModNone), geometry.Vector2D{X: 1}, true},
		{tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone), geometry.Vector2D{}, false},
		{tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), geometry.Vector2D{}, false},
	}
	for _, tt := range tests {
		got, ok := steerKey(tt.ev)
		if ok != tt.ok || !got.Eq(tt.want) {
			t.Errorf("steerKey(%s) = %s,%v", tt.ev.Name(), got, ok)
		}
	}
}

func TestActiveMessages(t *testing.T) {
	now := time.Unix(100, 0)
	msgs := []message{{"old", now.Add(-time.Second)}, {"new", now.Add(time.Second)}}
	got := activeMessages(msgs, now)
	if len(got) != 1 || got[0].text != "new" {
		t.Errorf("activeMessages() = %v", got)
	}
}

func newTestGame(t *testing.T) (*Game, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	cfg := simulation.DefaultConfig()
	cfg.Seed = 11
	g, err := NewGame(cfg, screen, nil, 1, log.DiscardLogger)
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	t.Cleanup(g.Close)
	screen.SetSize(100, 30)
	g.width, g.height = 100, 30
	return g, screen
}

func TestGame_events(t *testing.T) {
	g, _ := newTestGame(t)
	g.arena.Start()

	if !g.handleEvent(tcell.NewEventKey(tcell.KeyRune, 'a', tcell.ModNone)) || !g.steer.Eq(geometry.Vector2D{X: -1}) {
		t.Errorf("steer = %s", g.steer)
	}
	g.handleEvent(tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone))
	if !time.Now().Before(g.boostUntil) {
		t.Error("space should start a boost window")
	}
	g.handleEvent(tcell.NewEventKey(tcell.KeyRune, 'c', tcell.ModNone))
	if g.tokens != 1 {
		t.Error("continue outside game over must not spend a token")
	}
	if g.handleEvent(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)) {
		t.Error("q should quit")
	}
	if g.handleEvent(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)) {
		t.Error("escape should quit")
	}
}

func TestGame_draw(t *testing.T) {
	g, screen := newTestGame(t)
	g.arena.Start()
	g.frame = g.arena.Frame()
	g.say("Growing strong")
	g.draw(time.Now())

	var hud strings.Builder
	for x := range 20 {
		r, _, _, _ := screen.GetContent(x, 0)
		hud.WriteRune(r)
	}
	if !strings.HasPrefix(hud.String(), " Score 0  Lives 3") {
		t.Errorf("hud = %q", hud.String())
	}

	// the head sits in the middle of the view
	col, row, ok := viewport{cols: 100, rows: 30, world: g.frame.World, camera: g.frame.Camera}.cell(g.frame.Player.Head())
	if !ok {
		t.Fatal("player head off screen")
	}
	if r, _, _, _ := screen.GetContent(col, row); r != '@' {
		t.Errorf("expected the head at %d,%d, got %q", col, row, r)
	}
}

func TestPollEvents(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	out := make(chan tcell.Event)
	done := make(chan struct{})
	go pollEvents(screen, out, done)

	screen.InjectKey(tcell.KeyRune, 'w', tcell.ModNone)
	select {
	case ev := <-out:
		if k, ok := ev.(*tcell.EventKey); !ok || k.Rune() != 'w' {
			t.Errorf("forwarded %T", ev)
		}
	case <-time.After(time.Second):
		t.Fatal("event not forwarded")
	}

	// nobody reads any more: the poller must give up instead of blocking on the send
	screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)
	close(done)
	screen.Fini()
	stopped := make(chan struct{})
	go func() {
		for range out {
		}
		close(stopped)
	}()
	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Fatal("poller still running after the loop stopped")
	}
}
