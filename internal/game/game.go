// Package game is the ebiten host of the arena: it samples input, Tells the world actor
// one tick per ebiten update and draws the latest frame the actor pushed back.
package game

import (
	"context"
	"fmt"
	"math/rand/v2"
	"slices"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/tochemey/goakt/v3/actor"

	"github.com/lao-tseu-is-alive/go-arena-simulation/internal/sfx"
	"github.com/lao-tseu-is-alive/go-arena-simulation/pkg/simulation"
	"github.com/lao-tseu-is-alive/go-arena-simulation/pkg/ui"
)

// Options are the host side settings that are not part of the arena configuration.
type Options struct {
	Tokens        int     // continuation tokens at start
	ScorePerToken int     // score needed to earn another token, 0 disables earning
	AutoContinue  bool    // spend a token automatically when lives run out
	Volume        float64 // sound effects, 0..1
}

type Game struct {
	ctx        context.Context
	System     actor.ActorSystem
	worldPID   *actor.PID
	snapshotCh chan simulation.Frame
	lastFrame  simulation.Frame
	cfg        *simulation.Config
	// pending is set while a continue/restart command waits for its frame
	pending bool
	// continuing is set while a continue waits for the arena to grant it; the token is
	// spent only once the grant shows up in a frame
	continuing bool

	host      *arenaHost
	wallet    *Wallet
	overlay   *Overlay
	particles *Particles
	sound     *sfx.Player

	// UI Controls
	panel              *ui.UIPanel
	widgetKeyboard     *ui.Checkbox
	widgetAutoContinue *ui.Checkbox
	widgetVolume       *ui.Slider
	widgetShowGrid     *ui.Checkbox
	widgetShowStats    *ui.Checkbox
	buttonContinue     *ui.Button
	buttonRestart      *ui.Button

	// Timing instrumentation
	lastUpdateDuration time.Duration
	lastDrawDuration   time.Duration
	updateAvg          float64 // Rolling average in ms
	drawAvg            float64 // Rolling average in ms
}

// NewGame spawns the world actor in system and builds the UI around it. sound may be an
// uninitialised player, in which case the game is silent.
func NewGame(ctx context.Context, cfg *simulation.Config, system actor.ActorSystem, sound *sfx.Player, opts Options) (*Game, error) {
	snapshotCh := make(chan simulation.Frame, 10)

	wallet := NewWallet(opts.Tokens, opts.ScorePerToken)
	overlay := NewOverlay(3*time.Second, 4)
	host := &arenaHost{wallet: wallet, overlay: overlay}
	host.autoContinue.Store(opts.AutoContinue)

	worldPID, err := system.Spawn(ctx, "arena", simulation.NewWorldActor(cfg, host, snapshotCh))
	if err != nil {
		return nil, fmt.Errorf("failed to spawn the arena actor: %w", err)
	}

	if sound == nil {
		sound = sfx.NewPlayer(opts.Volume)
	}
	sound.SetVolume(opts.Volume)

	g := &Game{
		ctx:        ctx,
		System:     system,
		worldPID:   worldPID,
		snapshotCh: snapshotCh,
		cfg:        cfg,
		host:       host,
		wallet:     wallet,
		overlay:    overlay,
		particles:  NewParticles(rand.New(rand.NewPCG(cfg.Seed, 0xbeef)), 2000),
		sound:      sound,
	}
	g.buildUI(opts)
	return g, nil
}

func (g *Game) buildUI(opts Options) {
	w, h := g.cfg.Camera.ViewWidth, g.cfg.Camera.ViewHeight

	panel := ui.NewUIPanel(10, 30, 200, 250)
	panel.Title = "Controls (Tab)"
	panel.Hidden = true

	panel.AddSection("Steering")
	g.widgetKeyboard = panel.AddCheckbox("Keyboard (WASD)", false)
	g.widgetAutoContinue = panel.AddCheckbox("Auto continue", opts.AutoContinue)
	g.widgetAutoContinue.OnChange = g.host.autoContinue.Store
	panel.EndSection()

	panel.AddSection("Sound")
	g.widgetVolume = panel.AddSlider("Volume", 0, 1, opts.Volume)
	g.widgetVolume.Step = 0.05
	g.widgetVolume.OnChange = g.sound.SetVolume
	panel.EndSection()

	panel.AddSection("Display")
	g.widgetShowGrid = panel.AddCheckbox("Grid", true)
	g.widgetShowStats = panel.AddCheckbox("Stats", false)
	panel.EndSection()
	g.panel = panel

	g.buttonContinue = ui.NewButton(w/2-110, h/2, 100, 26, "Continue", g.continueGame)
	g.buttonRestart = ui.NewButton(w/2+10, h/2, 100, 26, "Restart", g.restartGame)
}

func (g *Game) Update() error {
	start := time.Now()
	defer func() {
		g.lastUpdateDuration = time.Since(start)
		g.updateAvg = g.updateAvg*0.95 + float64(g.lastUpdateDuration.Microseconds())/1000.0*0.05
	}()

	// auto continue needs a token to spend
	g.widgetAutoContinue.Disabled = g.wallet.Balance() == 0 && !g.widgetAutoContinue.Value
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		g.panel.Hidden = !g.panel.Hidden
	}
	g.panel.Update()

	g.drainSnapshots()
	dt := 1 / float64(ebiten.TPS())
	g.particles.Update(g.lastFrame.World, dt)

	switch g.lastFrame.State {
	case simulation.Exited:
		return ebiten.Termination
	case simulation.GameOver:
		g.updateGameOver()
	}

	in := g.sampleInput()
	if in.Exit {
		actor.Tell(g.ctx, g.worldPID, simulation.NewTick(dt, in))
		return ebiten.Termination
	}
	// ticks stop outside Playing, the world freezes on the last frame
	if g.lastFrame.State == simulation.Playing {
		actor.Tell(g.ctx, g.worldPID, simulation.NewTick(dt, in))
	}
	return nil
}

// drainSnapshots takes every frame the actor pushed since the last update so no event
// or effect is missed, keeping the newest for drawing.
func (g *Game) drainSnapshots() {
	for {
		select {
		case f := <-g.snapshotCh:
			g.consume(f)
		default:
			return
		}
	}
}

func (g *Game) consume(f simulation.Frame) {
	g.lastFrame = f
	if g.continuing && slices.ContainsFunc(f.Events, func(e simulation.Event) bool {
		return e.Kind == simulation.EventContinued
	}) {
		g.wallet.Spend()
		g.continuing = false
	}
	// frames queued before the command still show the game over
	if f.State != simulation.GameOver {
		g.pending = false
		g.continuing = false
	}
	for _, e := range f.Effects {
		g.particles.Emit(e)
	}
	g.sound.PlayFrame(f)
}

func (g *Game) updateGameOver() {
	balance := g.wallet.Balance()
	g.buttonContinue.Label = fmt.Sprintf("Continue (%d)", balance)
	g.buttonContinue.Disabled = balance == 0 || g.pending
	g.buttonRestart.Disabled = g.pending

	g.buttonContinue.Update()
	g.buttonRestart.Update()
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyC):
		g.continueGame()
	case inpututil.IsKeyJustPressed(ebiten.KeyEnter):
		g.restartGame()
	}
}

func (g *Game) continueGame() {
	if g.pending {
		return
	}
	if g.wallet.Balance() == 0 {
		g.overlay.Push("No tokens left, press Enter to restart")
		return
	}
	g.pending = true
	g.continuing = true
	actor.Tell(g.ctx, g.worldPID, simulation.NewCommand(simulation.CmdContinue))
}

func (g *Game) restartGame() {
	if g.pending {
		return
	}
	g.pending = true
	g.overlay.Clear()
	g.particles.Reset()
	actor.Tell(g.ctx, g.worldPID, simulation.NewCommand(simulation.CmdRestart))
}

func (g *Game) Draw(screen *ebiten.Image) {
	start := time.Now()
	defer func() {
		g.lastDrawDuration = time.Since(start)
		g.drawAvg = g.drawAvg*0.95 + float64(g.lastDrawDuration.Microseconds())/1000.0*0.05
	}()

	if g.lastFrame.Camera.Zoom == 0 {
		// no frame from the world yet
		screen.Fill(backgroundColor)
		ebitenutil.DebugPrintAt(screen, "Building the arena...", 10, 10)
		return
	}

	r := renderer{screen: screen, frame: &g.lastFrame}
	r.background(g.widgetShowGrid.Value)
	r.resources()
	r.competitors()
	r.player()
	r.particles(g.particles)
	r.hud(g.cfg, g.wallet.Balance())
	r.messages(g.overlay.Active())

	if g.lastFrame.State == simulation.GameOver {
		r.gameOver()
		g.buttonContinue.Draw(screen)
		g.buttonRestart.Draw(screen)
	}

	g.panel.Draw(screen)

	if g.widgetShowStats.Value {
		msg := fmt.Sprintf("FPS: %.2f\nTPS: %.2f\n\nUpdate: %.2fms\nDraw:   %.2fms\nTotal:  %.2fms\n\nCompetitors: %d\nResources: %d",
			ebiten.ActualFPS(),
			ebiten.ActualTPS(),
			g.updateAvg,
			g.drawAvg,
			g.updateAvg+g.drawAvg,
			len(g.lastFrame.Competitors),
			len(g.lastFrame.Resources))
		ebitenutil.DebugPrintAt(screen, msg, screen.Bounds().Dx()-150, 30)
	}
}

func (g *Game) Layout(int, int) (int, int) {
	return int(g.cfg.Camera.ViewWidth), int(g.cfg.Camera.ViewHeight)
}
