package main

import (
	"flag"
	"log"
	"os"

	"github.com/gdamore/tcell/v2"
	golog "github.com/tochemey/goakt/v3/log"

	"github.com/lao-tseu-is-alive/go-arena-simulation/internal/sfx"
	"github.com/lao-tseu-is-alive/go-arena-simulation/internal/terminal"
	"github.com/lao-tseu-is-alive/go-arena-simulation/pkg/simulation"
)

func main() {
	configFile := flag.String("config", "", "arena configuration JSON file, built-in defaults when empty")
	seed := flag.Uint64("seed", 0, "random seed, overrides the configuration when not 0")
	tokens := flag.Int("tokens", 3, "continuation tokens at start")
	volume := flag.Float64("volume", 0.5, "sound effects volume between 0 and 1")
	mute := flag.Bool("mute", false, "do not open the audio device")
	logFile := flag.String("log", "", "write debug logs to this file, the terminal itself is busy")
	flag.Parse()

	cfg := simulation.DefaultConfig()
	if *configFile != "" {
		var err error
		if cfg, err = simulation.LoadConfig(*configFile); err != nil {
			log.Fatal(err)
		}
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}

	logger := golog.DiscardLogger
	if *logFile != "" {
		f, err := os.Create(*logFile)
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
		logger = golog.New(golog.DebugLevel, f)
	}

	var sound *sfx.Player
	if !*mute {
		sound = sfx.NewPlayer(*volume)
		if err := sound.Init(); err != nil {
			logger.Warnf("audio disabled: %v", err)
		}
		defer sound.Close()
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatal(err)
	}
	g, err := terminal.NewGame(cfg, screen, sound, *tokens, logger)
	if err != nil {
		log.Fatal(err)
	}
	defer g.Close()

	g.Run()
}
