package prism

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/akmonengine/prism/epa"
	"gopkg.in/yaml.v3"
)

const DEFAULT_WORKERS = 1

// DEFAULT_TICK_INTERVAL is two ticks per second
const DEFAULT_TICK_INTERVAL = 500 * time.Millisecond

// Config is the tuning surface consumed from the host
type Config struct {
	// TickInterval is advisory, the core never schedules anything: it is read by the driver
	TickInterval time.Duration `json:"tick_interval" yaml:"tick_interval"`
	// EPATolerance is the EPA convergence epsilon
	EPATolerance float64 `json:"epa_tolerance" yaml:"epa_tolerance"`
	// GJKMaxIterations caps GJK per pair, 0 derives it from the vertex counts
	GJKMaxIterations int `json:"gjk_max_iterations" yaml:"gjk_max_iterations"`
	EPAMaxIterations int `json:"epa_max_iterations" yaml:"epa_max_iterations"`
	// Workers fans the narrow phase out over goroutines; results keep the pair order
	Workers int `json:"workers" yaml:"workers"`
}

func DefaultConfig() Config {
	return Config{
		TickInterval:     DEFAULT_TICK_INTERVAL,
		EPATolerance:     epa.DefaultTolerance,
		GJKMaxIterations: 0,
		EPAMaxIterations: epa.DefaultMaxIterations,
		Workers:          DEFAULT_WORKERS,
	}
}

// LoadConfig reads a YAML config. Missing keys keep their default value,
// an empty document yields DefaultConfig.
func LoadConfig(r io.Reader) (Config, error) {
	config := DefaultConfig()

	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&config); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return Config{}, err
	}

	return config, nil
}

func (c Config) Validate() error {
	if c.TickInterval <= 0 {
		return fmt.Errorf("invalid tick_interval %v: must be positive", c.TickInterval)
	}
	if c.EPATolerance <= 0 {
		return fmt.Errorf("invalid epa_tolerance %v: must be positive", c.EPATolerance)
	}
	if c.GJKMaxIterations < 0 {
		return fmt.Errorf("invalid gjk_max_iterations %d: must be >= 0", c.GJKMaxIterations)
	}
	if c.EPAMaxIterations <= 0 {
		return fmt.Errorf("invalid epa_max_iterations %d: must be positive", c.EPAMaxIterations)
	}
	if c.Workers < 0 {
		return fmt.Errorf("invalid workers %d: must be >= 0", c.Workers)
	}
	return nil
}

func (c Config) epaOptions() epa.Options {
	return epa.Options{
		Tolerance:     c.EPATolerance,
		MaxIterations: c.EPAMaxIterations,
	}.WithDefaults()
}
