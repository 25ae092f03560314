package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/zackradisic/toilet-paper-twitter/internal/cloth"
	"github.com/zackradisic/toilet-paper-twitter/internal/vmath"
)

const (
	DefaultWidth  = 10.0
	DefaultHeight = 14.0
	DefaultCols   = 22
	DefaultRows   = 26
)

type Config struct {
	Geometry GeometryConfig `yaml:"geometry"`
	Sim      SimConfig      `yaml:"sim"`
}

type GeometryConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Cols   int     `yaml:"cols"`
	Rows   int     `yaml:"rows"`
}

type SimConfig struct {
	FixedStep  float64    `yaml:"fixed_step"`
	Damping    float64    `yaml:"damping"`
	Iterations int        `yaml:"iterations"`
	PinMargin  int        `yaml:"pin_margin"`
	PinInset   float64    `yaml:"pin_inset"`
	Gravity    VectorYAML `yaml:"gravity"`
	Wind       VectorYAML `yaml:"wind"`
}

// VectorYAML maps a Vec3 onto named yaml fields.
type VectorYAML struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

func (v VectorYAML) Vec3() vmath.Vec3 { return vmath.Vec3{X: v.X, Y: v.Y, Z: v.Z} }

func fromVec3(v vmath.Vec3) VectorYAML { return VectorYAML{X: v.X, Y: v.Y, Z: v.Z} }

func DefaultConfig() *Config {
	p := cloth.DefaultParams()
	return &Config{
		Geometry: GeometryConfig{
			Width:  DefaultWidth,
			Height: DefaultHeight,
			Cols:   DefaultCols,
			Rows:   DefaultRows,
		},
		Sim: SimConfig{
			FixedStep:  p.FixedStep,
			Damping:    p.Damping,
			Iterations: p.Iterations,
			PinMargin:  p.PinMargin,
			PinInset:   p.PinInset,
			Gravity:    fromVec3(p.Gravity),
			Wind:       fromVec3(p.Wind),
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Params converts the sim section into cloth parameters.
func (c *Config) Params() cloth.Params {
	return cloth.Params{
		FixedStep:  c.Sim.FixedStep,
		Damping:    c.Sim.Damping,
		Iterations: c.Sim.Iterations,
		PinMargin:  c.Sim.PinMargin,
		PinInset:   c.Sim.PinInset,
		Gravity:    c.Sim.Gravity.Vec3(),
		Wind:       c.Sim.Wind.Vec3(),
	}
}

// NewCloth builds a cloth from the full config.
func (c *Config) NewCloth() (*cloth.Cloth, error) {
	return cloth.New(c.Geometry.Width, c.Geometry.Height, c.Geometry.Cols, c.Geometry.Rows, c.Params())
}
