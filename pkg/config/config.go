// Package config loads and validates the engine configuration from YAML.
// Invalid values are rejected at load time, never clamped.
package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = fmt.Errorf("invalid engine configuration")

var validate = validator.New()

// SpatialConfig tunes the acceleration structures.
type SpatialConfig struct {
	// Theta is the Barnes-Hut accuracy parameter; typical values are
	// 0.5 to 1.0, lower is more accurate and slower.
	Theta float64 `yaml:"theta" validate:"gt=0"`
	// CellSize is the hash grid cell edge length.
	CellSize float64 `yaml:"cell_size" validate:"gt=0"`
}

// FrustumConfig holds the camera projection parameters.
type FrustumConfig struct {
	FOV    float64 `yaml:"fov" validate:"gt=0"`
	Aspect float64 `yaml:"aspect" validate:"gt=0"`
	Near   float64 `yaml:"near" validate:"gt=0"`
	Far    float64 `yaml:"far" validate:"gt=0"`
}

// LodConfig holds detail-band selection parameters.
type LodConfig struct {
	// Distances are the four ascending band thresholds.
	Distances [4]float64 `yaml:"distances"`
	// UseSquaredDistances skips a square root per node.
	UseSquaredDistances bool `yaml:"use_squared_distances"`
	// Hysteresis must be greater than 1.
	Hysteresis float64 `yaml:"hysteresis" validate:"gt=1"`
}

// PartitionConfig holds graph partitioning parameters.
type PartitionConfig struct {
	TargetPartitions int    `yaml:"target_partitions" validate:"gte=0"`
	MinSize          int    `yaml:"min_size" validate:"gte=0"`
	MaxSize          int    `yaml:"max_size" validate:"gt=0"`
	Algorithm        string `yaml:"algorithm" validate:"oneof=breadth-first"`
}

// LayoutConfig holds the force-layout parameters.
type LayoutConfig struct {
	Iterations        int     `yaml:"iterations" validate:"gt=0"`
	RepulsionStrength float64 `yaml:"repulsion_strength" validate:"gt=0"`
	SpringLength      float64 `yaml:"spring_length" validate:"gt=0"`
	Workers           int     `yaml:"workers" validate:"gte=0"`
	// FullRelayoutFraction is the affected-node share past which a full
	// relayout replaces a localized pass.
	FullRelayoutFraction float64 `yaml:"full_relayout_fraction" validate:"gt=0,lte=1"`
}

// EngineConfig is the root configuration.
type EngineConfig struct {
	Spatial   SpatialConfig   `yaml:"spatial"`
	Frustum   FrustumConfig   `yaml:"frustum"`
	Lod       LodConfig       `yaml:"lod"`
	Partition PartitionConfig `yaml:"partition"`
	Layout    LayoutConfig    `yaml:"layout"`
}

// Default returns the engine defaults.
func Default() EngineConfig {
	return EngineConfig{
		Spatial: SpatialConfig{
			Theta:    0.5,
			CellSize: 50,
		},
		Frustum: FrustumConfig{
			FOV:    1.5707963267948966, // pi/2
			Aspect: 16.0 / 9.0,
			Near:   0.1,
			Far:    10000,
		},
		Lod: LodConfig{
			Distances:           [4]float64{100, 500, 1000, 2000},
			UseSquaredDistances: true,
			Hysteresis:          1.1,
		},
		Partition: PartitionConfig{
			TargetPartitions: 0,
			MinSize:          10,
			MaxSize:          1000,
			Algorithm:        "breadth-first",
		},
		Layout: LayoutConfig{
			Iterations:           50,
			RepulsionStrength:    10000,
			SpringLength:         100,
			Workers:              0,
			FullRelayoutFraction: 0.10,
		},
	}
}

// Load reads and validates a YAML configuration file. Fields missing
// from the file keep their defaults.
func Load(path string) (EngineConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return EngineConfig{}, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML over the defaults and validates the result.
func Parse(data []byte) (EngineConfig, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return EngineConfig{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return EngineConfig{}, err
	}
	return cfg, nil
}

// Validate rejects configuration the engine cannot run with.
func (c EngineConfig) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	// Cross-field checks validator tags cannot express.
	if c.Frustum.Far <= c.Frustum.Near {
		return fmt.Errorf("%w: frustum far (%v) must exceed near (%v)", ErrInvalidConfig, c.Frustum.Far, c.Frustum.Near)
	}
	if c.Partition.MinSize > c.Partition.MaxSize {
		return fmt.Errorf("%w: partition min_size %d exceeds max_size %d", ErrInvalidConfig, c.Partition.MinSize, c.Partition.MaxSize)
	}
	prev := 0.0
	for i, d := range c.Lod.Distances {
		if d <= prev {
			return fmt.Errorf("%w: lod distances must be positive and ascending, got %v at index %d", ErrInvalidConfig, d, i)
		}
		prev = d
	}
	return nil
}
