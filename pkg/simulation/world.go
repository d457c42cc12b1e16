package simulation

import (
	"errors"
	"time"

	"github.com/tochemey/goakt/v3/actor"
	"github.com/tochemey/goakt/v3/goaktpb"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// WorldActor owns the Arena behind a mailbox. Hosts running their own loop (ebiten) Tell it
// ticks and read frames from the snapshot channel; the Arena never sees another goroutine.
type WorldActor struct {
	cfg        *Config
	host       Host
	opts       []Option
	arena      *Arena
	snapshotCh chan<- Frame

	// --- Benchmark Stats ---
	tickCount   int
	lastLogTime time.Time
}

// NewWorldActor creates the world logic unit. host callbacks run on the actor's goroutine.
func NewWorldActor(cfg *Config, host Host, snapshotCh chan<- Frame, opts ...Option) *WorldActor {
	return &WorldActor{
		cfg:         cfg,
		host:        host,
		opts:        opts,
		snapshotCh:  snapshotCh,
		lastLogTime: time.Now(),
	}
}

func (w *WorldActor) PreStart(ctx *actor.Context) error {
	opts := append([]Option{WithLogger(ctx.ActorSystem().Logger())}, w.opts...)
	arena, err := New(w.cfg, w.host, opts...)
	if err != nil {
		return err
	}
	w.arena = arena
	ctx.ActorSystem().Logger().Info("World is building the arena...")
	return nil
}

func (w *WorldActor) Receive(ctx *actor.ReceiveContext) {
	switch msg := ctx.Message().(type) {
	case *goaktpb.PostStart:
		w.arena.Start()
		ctx.Logger().Infof("World started with %d competitors", w.arena.Competitors())
		w.pushSnapshot()

	// the main simulation step, driven by the host's loop
	case *structpb.Struct:
		dt, in, err := DecodeTick(msg)
		if err != nil {
			ctx.Logger().Errorf("bad tick: %v", err)
			ctx.Unhandled()
			return
		}
		w.logBenchmarks(ctx)
		if err := w.arena.Update(dt, in); err != nil {
			if !errors.Is(err, ErrExited) {
				ctx.Logger().Warnf("tick rejected: %v", err)
			}
			return
		}
		w.tickCount++
		w.pushSnapshot()

	case *wrapperspb.StringValue:
		switch msg.GetValue() {
		case CmdContinue:
			if err := w.arena.Continue(); err != nil {
				ctx.Logger().Warnf("continue ignored: %v", err)
			}
		case CmdRestart:
			w.arena.Restart()
		default:
			ctx.Unhandled()
			return
		}
		w.pushSnapshot()

	case *emptypb.Empty:
		w.pushSnapshot()

	default:
		ctx.Unhandled()
	}
}

func (w *WorldActor) logBenchmarks(ctx *actor.ReceiveContext) {
	if time.Since(w.lastLogTime) >= time.Second {
		ctx.Logger().Infof("📊 TICK RATE: %d/sec | Competitors: %d | State: %s",
			w.tickCount, w.arena.Competitors(), w.arena.State())
		w.tickCount = 0
		w.lastLogTime = time.Now()
	}
}

func (w *WorldActor) pushSnapshot() {
	if w.snapshotCh == nil {
		return
	}
	select {
	case w.snapshotCh <- w.arena.Frame():
	default:
		// UI busy, skip frame
	}
}

func (w *WorldActor) PostStop(ctx *actor.Context) error {
	ctx.ActorSystem().Logger().Info("World is shutdown...")
	return nil
}
