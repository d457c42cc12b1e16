// Package terminal hosts the arena in a text terminal. The arena runs on the loop
// goroutine, tcell events arrive from a polling goroutine over a channel.
package terminal

import (
	"errors"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/tochemey/goakt/v3/log"

	"github.com/lao-tseu-is-alive/go-arena-simulation/internal/sfx"
	"github.com/lao-tseu-is-alive/go-arena-simulation/pkg/geometry"
	"github.com/lao-tseu-is-alive/go-arena-simulation/pkg/simulation"
)

const (
	tickRate = 30 * time.Millisecond
	// keyboard terminals send no key release; a boost press lasts this long
	boostHold   = 400 * time.Millisecond
	messageTime = 3 * time.Second
)

type message struct {
	text    string
	expires time.Time
}

type Game struct {
	screen tcell.Screen
	arena  *simulation.Arena
	cfg    *simulation.Config
	sound  *sfx.Player
	logger log.Logger

	width, height int
	steer         geometry.Vector2D
	boostUntil    time.Time
	tokens        int
	messages      []message
	frame         simulation.Frame
}

// NewGame builds the arena and initialises the screen. sound may be nil.
func NewGame(cfg *simulation.Config, screen tcell.Screen, sound *sfx.Player, tokens int, logger log.Logger) (*Game, error) {
	g := &Game{screen: screen, cfg: cfg, sound: sound, tokens: tokens, logger: logger}
	arena, err := simulation.New(cfg, simulation.HostFuncs{
		OnMilestone: g.say,
		OnLifeLost: func(lives int) {
			g.say(fmt.Sprintf("Eaten! %d lives left", lives))
		},
	}, simulation.WithLogger(logger))
	if err != nil {
		return nil, err
	}
	g.arena = arena

	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialise the terminal: %w", err)
	}
	g.width, g.height = screen.Size()
	return g, nil
}

func (g *Game) say(text string) {
	g.messages = append(g.messages, message{text: text, expires: time.Now().Add(messageTime)})
}

// Run plays until the user quits.
func (g *Game) Run() {
	ticker := time.NewTicker(tickRate)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	done := make(chan struct{})
	defer close(done)
	go pollEvents(g.screen, eventChan, done)

	g.arena.Start()
	g.logger.Infof("terminal arena started, %d competitors", g.arena.Competitors())
	last := time.Now()
	exit := false

	for {
		select {
		case ev, ok := <-eventChan:
			if !ok {
				return
			}
			if !g.handleEvent(ev) {
				exit = true
			}

		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			last = now
			in := simulation.Input{Steer: g.steer, Boost: now.Before(g.boostUntil), Exit: exit}
			if err := g.arena.Update(dt, in); err != nil && !errors.Is(err, simulation.ErrExited) {
				g.logger.Warnf("tick rejected: %v", err)
			}
			g.frame = g.arena.Frame()
			if g.sound != nil {
				g.sound.PlayFrame(g.frame)
			}
			if g.frame.State == simulation.Exited {
				return
			}
			g.draw(now)
		}
	}
}

// pollEvents forwards screen events until the screen is finalised or done is closed.
func pollEvents(screen tcell.Screen, out chan<- tcell.Event, done <-chan struct{}) {
	defer close(out)
	for {
		ev := screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case out <- ev:
		case <-done:
			return
		}
	}
}

// handleEvent applies one terminal event, false means the user asked to quit.
func (g *Game) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}
		if d, ok := steerKey(ev); ok {
			g.steer = d
			return true
		}
		if ev.Key() != tcell.KeyRune {
			return true
		}
		switch ev.Rune() {
		case 'q':
			return false
		case ' ':
			g.boostUntil = time.Now().Add(boostHold)
		case 'c':
			g.continueGame()
		case 'r':
			if g.arena.State() == simulation.GameOver {
				g.arena.Restart()
				g.messages = g.messages[:0]
			}
		}

	case *tcell.EventResize:
		g.width, g.height = g.screen.Size()
		g.screen.Sync()
	}
	return true
}

func (g *Game) continueGame() {
	if g.arena.State() != simulation.GameOver {
		return
	}
	if g.tokens == 0 {
		g.say("No tokens left, press r to restart")
		return
	}
	if err := g.arena.Continue(); err != nil {
		g.logger.Warnf("continue refused: %v", err)
		return
	}
	g.tokens--
	g.say(fmt.Sprintf("Token spent, %d left", g.tokens))
}

// steerKey maps arrows and wasd to a heading. Screen y grows downwards like the world's.
func steerKey(ev *tcell.EventKey) (geometry.Vector2D, bool) {
	switch ev.Key() {
	case tcell.KeyUp:
		return geometry.Vector2D{Y: -1}, true
	case tcell.KeyDown:
		return geometry.Vector2D{Y: 1}, true
	case tcell.KeyLeft:
		return geometry.Vector2D{X: -1}, true
	case tcell.KeyRight:
		return geometry.Vector2D{X: 1}, true
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'w':
			return geometry.Vector2D{Y: -1}, true
		case 's':
			return geometry.Vector2D{Y: 1}, true
		case 'a':
			return geometry.Vector2D{X: -1}, true
		case 'd':
			return geometry.Vector2D{X: 1}, true
		}
	}
	return geometry.Vector2D{}, false
}

func (g *Game) draw(now time.Time) {
	g.screen.Clear()
	v := viewport{cols: g.width, rows: g.height, world: g.frame.World, camera: g.frame.Camera}
	drawFrame(g.screen, v, &g.frame)

	p := &g.frame.Player
	hud := fmt.Sprintf(" Score %d  Lives %d  Length %d  Boost %3.0f%%  Tokens %d  [wasd/arrows] steer  [space] boost  [q] quit",
		p.Score, p.Lives, len(p.Segments), 100*p.BoostEnergy/g.cfg.Boost.EnergyMax, g.tokens)
	for x := range g.width {
		g.screen.SetContent(x, 0, ' ', nil, hudStyle)
	}
	text(g.screen, 0, 0, hud, hudStyle)

	g.messages = activeMessages(g.messages, now)
	for i, m := range g.messages {
		text(g.screen, (g.width-len(m.text))/2, g.height/3+i, m.text, messageStyle)
	}

	if g.frame.State == simulation.GameOver {
		msg := fmt.Sprintf(" GAME OVER  score %d  [c] continue (%d tokens)  [r] restart  [q] quit ", p.Score, g.tokens)
		text(g.screen, max(0, (g.width-len(msg))/2), g.height/2, msg, gameOverStyle)
	}
	g.screen.Show()
}

func activeMessages(msgs []message, now time.Time) []message {
	kept := msgs[:0]
	for _, m := range msgs {
		if now.Before(m.expires) {
			kept = append(kept, m)
		}
	}
	return kept
}

// Close restores the terminal.
func (g *Game) Close() {
	g.screen.Fini()
}
