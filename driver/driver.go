// Package driver runs a prism.World at a fixed cadence and owns the per-tick
// collision flags read by visualization layers.
package driver

import (
	"context"
	"sync"
	"time"

	"github.com/akmonengine/prism"
	"github.com/akmonengine/prism/actor"
	"github.com/akmonengine/prism/constraint"
	"go.uber.org/zap"
)

// Report summarizes one tick
type Report struct {
	Tick       uint64
	Contacts   []*constraint.Contact
	Stats      prism.Stats
	Digest     uint64
	Duration   time.Duration
	StartedAt  time.Time
	Overlapped bool
}

// Driver calls World.Step once per tick. Ticks never overlap: Run waits for a
// tick to complete before starting the next one, and ticks that fall due in the
// meantime are dropped.
type Driver struct {
	World    *prism.World
	Polygons []*actor.Polygon
	Interval time.Duration
	Logger   *zap.Logger

	// OnTick, when set, is called after every tick with its report
	OnTick func(Report)

	mu    sync.Mutex
	tick  uint64
	flags map[actor.ID]bool
}

func New(world *prism.World, polygons []*actor.Polygon, logger *zap.Logger) *Driver {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Driver{
		World:    world,
		Polygons: polygons,
		Interval: world.Config.TickInterval,
		Logger:   logger,
		flags:    make(map[actor.ID]bool, len(polygons)),
	}
}

// Tick runs one collision pass: flags are reset, the world is stepped and both
// polygons of every resolved contact are flagged.
func (d *Driver) Tick() Report {
	report := d.step()

	if d.OnTick != nil {
		d.OnTick(report)
	}

	return report
}

func (d *Driver) step() Report {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.flags == nil {
		d.flags = make(map[actor.ID]bool, len(d.Polygons))
	}
	clear(d.flags)
	for _, polygon := range d.Polygons {
		d.flags[polygon.ID] = false
	}

	d.tick++
	startedAt := time.Now()
	contacts := d.World.Step(d.Polygons)
	duration := time.Since(startedAt)

	for _, contact := range contacts {
		if contact.State == constraint.StatePenetrating {
			d.flags[contact.PolygonA.ID] = true
			d.flags[contact.PolygonB.ID] = true
		}
	}

	report := Report{
		Tick:       d.tick,
		Contacts:   contacts,
		Stats:      d.World.Stats,
		Digest:     prism.Digest(contacts),
		Duration:   duration,
		StartedAt:  startedAt,
		Overlapped: d.Interval > 0 && duration > d.Interval,
	}

	d.Logger.Debug("tick",
		zap.Uint64("tick", report.Tick),
		zap.Int("contacts", len(contacts)),
		zap.Int("resolved", report.Stats.Resolved),
		zap.Uint64("digest", report.Digest),
		zap.Duration("duration", duration),
	)
	if report.Overlapped {
		d.Logger.Warn("tick took longer than the interval, next ticks are skipped",
			zap.Uint64("tick", report.Tick),
			zap.Duration("duration", duration),
			zap.Duration("interval", d.Interval),
		)
	}

	return report
}

// Run ticks every Interval until ctx is done. The first tick runs immediately.
func (d *Driver) Run(ctx context.Context) error {
	interval := d.Interval
	if interval <= 0 {
		interval = prism.DEFAULT_TICK_INTERVAL
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	d.Logger.Info("driver started", zap.Duration("interval", interval), zap.Int("polygons", len(d.Polygons)))

	for {
		if err := ctx.Err(); err != nil {
			d.Logger.Info("driver stopped", zap.Uint64("ticks", d.Ticks()))
			return err
		}

		d.Tick()

		select {
		case <-ctx.Done():
			d.Logger.Info("driver stopped", zap.Uint64("ticks", d.Ticks()))
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// Flags returns a copy of the collision flags of the last tick
func (d *Driver) Flags() map[actor.ID]bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	out := make(map[actor.ID]bool, len(d.flags))
	for id, colliding := range d.flags {
		out[id] = colliding
	}
	return out
}

// Ticks returns the number of completed ticks
func (d *Driver) Ticks() uint64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.tick
}
