// Package scene builds the polygon set of a simulation, either from a YAML
// description or by seeded random spawning.
package scene

import (
	"errors"
	"fmt"
	"io"
	"math"
	"math/rand"

	"github.com/akmonengine/prism/actor"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

const (
	KindRegular   = "regular"
	KindIrregular = "irregular"
	KindCustom    = "custom"
)

// Scene is the YAML document describing the bodies of a simulation.
// Explicit prisms come first, then the spawned ones.
type Scene struct {
	Prisms []PrismSpec   `json:"prisms" yaml:"prisms"`
	Spawn  *SpawnConfig `json:"spawn,omitempty" yaml:"spawn,omitempty"`
}

// PrismSpec describes one body. Yaw is in degrees; a zero scale means 1.
type PrismSpec struct {
	Name     string       `json:"name" yaml:"name"`
	Kind     string       `json:"kind" yaml:"kind"`
	Points   int          `json:"points,omitempty" yaml:"points,omitempty"`
	Vertices [][2]float64 `json:"vertices,omitempty" yaml:"vertices,omitempty"`
	Position [2]float64   `json:"position" yaml:"position"`
	Yaw      float64      `json:"yaw,omitempty" yaml:"yaw,omitempty"`
	Scale    [2]float64   `json:"scale,omitempty" yaml:"scale,omitempty"`
	// Seed feeds the irregular vertex generator
	Seed int64 `json:"seed,omitempty" yaml:"seed,omitempty"`
}

// SpawnConfig drives random placement inside a square region centered on the origin
type SpawnConfig struct {
	Count        int     `json:"count" yaml:"count"`
	RegionRadius float64 `json:"region_radius" yaml:"region_radius"`
	MaxScale     float64 `json:"max_scale" yaml:"max_scale"`
	Seed         int64   `json:"seed" yaml:"seed"`
}

func DefaultSpawnConfig() SpawnConfig {
	return SpawnConfig{
		Count:        10,
		RegionRadius: 5,
		MaxScale:     5,
		Seed:         0,
	}
}

// PolygonID derives a stable identifier from a body name
func PolygonID(name string) actor.ID {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(name))
}

// Load decodes a YAML scene
func Load(r io.Reader) (*Scene, error) {
	var s Scene
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode scene: %w", err)
	}
	return &s, nil
}

// Build creates the polygons of the scene
func (s *Scene) Build() ([]*actor.Polygon, error) {
	polygons := make([]*actor.Polygon, 0, len(s.Prisms))

	for i, spec := range s.Prisms {
		polygon, err := spec.Build()
		if err != nil {
			return nil, fmt.Errorf("prism %d (%q): %w", i, spec.Name, err)
		}
		polygons = append(polygons, polygon)
	}

	if s.Spawn != nil {
		if s.Spawn.Count < 0 || s.Spawn.RegionRadius < 0 || s.Spawn.MaxScale < 0 {
			return nil, fmt.Errorf("invalid spawn config %+v: values must be >= 0", *s.Spawn)
		}
		polygons = append(polygons, Spawn(*s.Spawn)...)
	}

	return polygons, nil
}

func (p PrismSpec) Build() (*actor.Polygon, error) {
	var points []mgl64.Vec2

	switch p.Kind {
	case KindRegular, "":
		points = actor.RegularVertices(p.Points)
	case KindIrregular:
		points = actor.IrregularVertices(rand.New(rand.NewSource(p.Seed)))(p.Points)
	case KindCustom:
		points = make([]mgl64.Vec2, len(p.Vertices))
		for i, v := range p.Vertices {
			points[i] = mgl64.Vec2{v[0], v[1]}
		}
	default:
		return nil, fmt.Errorf("unknown prism kind %q", p.Kind)
	}

	scale := mgl64.Vec2{p.Scale[0], p.Scale[1]}
	if scale == (mgl64.Vec2{}) {
		scale = mgl64.Vec2{1, 1}
	}

	polygon := actor.NewPolygon(PolygonID(p.Name), points, actor.Transform{
		Position: mgl64.Vec2{p.Position[0], p.Position[1]},
		Yaw:      mgl64.DegToRad(p.Yaw),
		Scale:    scale,
	})
	polygon.Name = p.Name

	return polygon, nil
}

// Spawn places config.Count random prisms. The same seed always gives the same scene.
//
// Each prism gets 3 to 10 points, a yaw in [0, 2π), a scale in
// [-MaxScale, MaxScale] on both axes and a position in the region; it is
// regular or irregular with even odds.
func Spawn(config SpawnConfig) []*actor.Polygon {
	rng := rand.New(rand.NewSource(config.Seed))
	polygons := make([]*actor.Polygon, 0, config.Count)

	for i := 0; i < config.Count; i++ {
		pointCount := int(math.Round(3 + rng.Float64()*7))
		yaw := rng.Float64() * 2 * math.Pi
		scale := mgl64.Vec2{
			(rng.Float64() - 0.5) * 2 * config.MaxScale,
			(rng.Float64() - 0.5) * 2 * config.MaxScale,
		}
		position := mgl64.Vec2{
			(rng.Float64() - 0.5) * 2 * config.RegionRadius,
			(rng.Float64() - 0.5) * 2 * config.RegionRadius,
		}

		var generator actor.VertexGenerator = actor.RegularVertices
		if rng.Float64() >= 0.5 {
			generator = actor.IrregularVertices(rng)
		}

		name := fmt.Sprintf("Prism %d", i)
		polygon := actor.NewPolygonFrom(PolygonID(name), generator, pointCount, actor.Transform{
			Position: position,
			Yaw:      yaw,
			Scale:    scale,
		})
		polygon.Name = name

		polygons = append(polygons, polygon)
	}

	return polygons
}
