package config

var Presets = map[string]*Config{
	// The geometry the original banner shipped with.
	"banner": func() *Config {
		cfg := DefaultConfig()
		cfg.Sim.PinInset = 0.5
		return cfg
	}(),
	// Denser lattice, slower step: closer to real drape at the cost
	// of per-frame work.
	"drape": func() *Config {
		cfg := DefaultConfig()
		cfg.Geometry.Width = 14
		cfg.Geometry.Height = 10
		cfg.Geometry.Cols = 45
		cfg.Geometry.Rows = 55
		cfg.Sim.Iterations = 40
		return cfg
	}(),
	// Strong wind, light damping: flaps hard.
	"flag": func() *Config {
		cfg := DefaultConfig()
		cfg.Sim.Wind = VectorYAML{X: 30, Y: 0, Z: 2}
		cfg.Sim.Damping = 0.005
		return cfg
	}(),
	// No wind at all: pure hang, useful for convergence inspection.
	"still": func() *Config {
		cfg := DefaultConfig()
		cfg.Sim.Wind = VectorYAML{}
		return cfg
	}(),
	// Coarse grid with few relaxation passes: visibly springy.
	"loose": func() *Config {
		cfg := DefaultConfig()
		cfg.Geometry.Cols = 10
		cfg.Geometry.Rows = 12
		cfg.Sim.Iterations = 5
		return cfg
	}(),
}

func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
