package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/akmonengine/prism"
	"github.com/akmonengine/prism/actor"
	"github.com/akmonengine/prism/driver"
	"github.com/akmonengine/prism/scene"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"
)

func newLogger(level string) (*zap.Logger, error) {
	zapLevel, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}

	config := zap.Config{
		Level:            zap.NewAtomicLevelAt(zapLevel),
		Development:      false,
		Encoding:         "json",
		EncoderConfig:    zap.NewProductionEncoderConfig(),
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
		DisableCaller:    true,
	}

	return config.Build()
}

func loadConfig(path string) (prism.Config, error) {
	if path == "" {
		return prism.DefaultConfig(), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return prism.Config{}, err
	}
	defer f.Close()

	return prism.LoadConfig(f)
}

func loadPolygons(path string, seed int64) ([]*actor.Polygon, error) {
	if path == "" {
		spawn := scene.DefaultSpawnConfig()
		spawn.Seed = seed
		return scene.Spawn(spawn), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	s, err := scene.Load(f)
	if err != nil {
		return nil, err
	}
	return s.Build()
}

func run() error {
	configPath := flag.String("config", "", "YAML config file")
	scenePath := flag.String("scene", "", "YAML scene file, a random scene is spawned when empty")
	scenes := flag.Int("scenes", 1, "number of independent scenes to run side by side")
	ticks := flag.Int("ticks", 10, "ticks to run per scene, 0 runs until interrupted")
	level := flag.String("log-level", "info", "log level")
	flag.Parse()

	logger, err := newLogger(*level)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	config, err := loadConfig(*configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *ticks > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(*ticks)*config.TickInterval)
		defer cancel()
	}

	// Every scene owns its world: scenes share nothing and run concurrently
	sets := make([][]*actor.Polygon, *scenes)
	for i := range sets {
		if sets[i], err = loadPolygons(*scenePath, int64(i)); err != nil {
			return fmt.Errorf("load scene %d: %w", i, err)
		}
	}

	g, ctx := errgroup.WithContext(ctx)
	for i, polygons := range sets {
		sceneLogger := logger.With(zap.Int("scene", i))
		world := prism.NewWorld(config, sceneLogger)
		world.Events.Subscribe(prism.COLLISION_RESOLVED, func(event prism.Event) {
			contact := event.(prism.CollisionEvent).Contact
			sceneLogger.Debug("collision resolved",
				zap.String("a", contact.PolygonA.Name),
				zap.String("b", contact.PolygonB.Name),
				zap.Float64("depth", contact.Depth()),
			)
		})

		d := driver.New(world, polygons, sceneLogger)
		d.OnTick = func(report driver.Report) {
			sceneLogger.Info("tick",
				zap.Uint64("tick", report.Tick),
				zap.Int("candidates", report.Stats.Candidates),
				zap.Int("resolved", report.Stats.Resolved),
				zap.Uint64("digest", report.Digest),
			)
		}

		g.Go(func() error {
			return d.Run(ctx)
		})
	}

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return nil
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
