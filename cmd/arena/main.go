package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/tochemey/goakt/v3/actor"
	golog "github.com/tochemey/goakt/v3/log"

	"github.com/lao-tseu-is-alive/go-arena-simulation/internal/game"
	"github.com/lao-tseu-is-alive/go-arena-simulation/internal/sfx"
	"github.com/lao-tseu-is-alive/go-arena-simulation/pkg/simulation"
)

func loadConfig(path string) (*simulation.Config, error) {
	if path == "" {
		return simulation.DefaultConfig(), nil
	}
	return simulation.LoadConfig(path)
}

func main() {
	configFile := flag.String("config", "", "arena configuration JSON file, built-in defaults when empty")
	seed := flag.Uint64("seed", 0, "random seed, overrides the configuration when not 0")
	tokens := flag.Int("tokens", 3, "continuation tokens at start")
	scorePerToken := flag.Int("score-per-token", 500, "score needed to earn a token, 0 disables earning")
	autoContinue := flag.Bool("auto-continue", false, "spend a token automatically when the last life is lost")
	volume := flag.Float64("volume", 0.5, "sound effects volume between 0 and 1")
	mute := flag.Bool("mute", false, "do not open the audio device")
	debug := flag.Bool("debug", false, "log actor and arena activity to stdout")
	flag.Parse()

	cfg, err := loadConfig(*configFile)
	if err != nil {
		log.Fatal(err)
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}

	ctx := context.Background()
	logger := golog.DiscardLogger
	if *debug {
		logger = golog.New(golog.DebugLevel, os.Stdout)
	}
	system, err := actor.NewActorSystem("ArenaWorld",
		actor.WithLogger(logger),
		actor.WithActorInitMaxRetries(3))
	if err != nil {
		log.Fatal(err)
	}
	if err := system.Start(ctx); err != nil {
		log.Fatal(err)
	}

	sound := sfx.NewPlayer(*volume)
	if *mute {
		sound.SetVolume(0)
	} else if err := sound.Init(); err != nil {
		// the arena plays fine without sound
		log.Printf("audio disabled: %v", err)
	}
	defer sound.Close()

	g, err := game.NewGame(ctx, cfg, system, sound, game.Options{
		Tokens:        *tokens,
		ScorePerToken: *scorePerToken,
		AutoContinue:  *autoContinue,
		Volume:        sound.Volume(),
	})
	if err != nil {
		log.Fatal(err)
	}
	defer g.System.Stop(ctx)

	ebiten.SetWindowSize(int(cfg.Camera.ViewWidth), int(cfg.Camera.ViewHeight))
	ebiten.SetWindowTitle("Arena")
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
