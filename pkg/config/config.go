// Package config reads simulation setups from gcfg (INI-style) files.
package config

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/gcfg.v1"

	"github.com/yummy913/FluidSIM/pkg/fluid"
	"github.com/yummy913/FluidSIM/pkg/render"
)

type SimulationConfig struct {
	Timestep    float64
	Diffusion   float64
	Viscosity   float64
	Dissipation float64
	Iterations  int
	Width       int
	Height      int

	// Seeds the injection jitter and emitter drift; 0 seeds both from the
	// clock.
	Seed int64
}

type EmitterConfig struct {
	X, Y          int
	Strength      float64
	Radius        int
	Angle         float64 // degrees
	RotationSpeed float64 // degrees per unit of simulated time
	Color         string  // "#rrggbb"; unquoted, '#' starts a comment

	Name string
}

type DisplayConfig struct {
	Scale  int
	View   string
	Wander bool
}

type Config struct {
	Simulation SimulationConfig
	Emitter    map[string]*EmitterConfig
	Display    DisplayConfig
}

// Default mirrors fluid.New with a timestep of 0.5 and no diffusion or
// viscosity.
func Default() *Config {
	w, h := fluid.DefaultWidth, fluid.DefaultHeight
	return &Config{
		Simulation: SimulationConfig{
			Timestep:    0.5,
			Dissipation: fluid.DefaultDissipation,
			Iterations:  fluid.DefaultIterations,
			Width:       w,
			Height:      h,
		},
		Emitter: map[string]*EmitterConfig{
			"a-left": {
				X: w / 3, Y: h / 2, Strength: 1, Radius: 1,
				Angle: 0, Color: "#ff6464",
			},
			"b-right": {
				X: 2 * w / 3, Y: h / 2, Strength: 1, Radius: 1,
				Angle: 180, Color: "#6464ff",
			},
		},
		Display: DisplayConfig{
			Scale: 8,
			View:  render.ViewDensity.String(),
		},
	}
}

// Load reads a config file. Values missing from the file keep their
// defaults, except that a file with any [Emitter] sections replaces the
// default emitters. Unknown sections and variables are errors.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := gcfg.ReadFileInto(cfg, path); err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	return finish(cfg)
}

// LoadOrDefault loads path, or returns Default when path is empty.
func LoadOrDefault(path string) (*Config, error) {
	if path == "" {
		cfg := Default()
		if err := cfg.CheckInit(); err != nil {
			return nil, err
		}
		return cfg, nil
	}
	return Load(path)
}

// Parse is Load for an in-memory config.
func Parse(s string) (*Config, error) {
	cfg := &Config{}
	if err := gcfg.ReadStringInto(cfg, s); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return finish(cfg)
}

func finish(cfg *Config) (*Config, error) {
	cfg.fillDefaults()
	if err := cfg.CheckInit(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (cfg *Config) fillDefaults() {
	def := Default()
	sim := &cfg.Simulation
	if sim.Timestep == 0 {
		sim.Timestep = def.Simulation.Timestep
	}
	if sim.Dissipation == 0 {
		sim.Dissipation = def.Simulation.Dissipation
	}
	if sim.Iterations == 0 {
		sim.Iterations = def.Simulation.Iterations
	}
	if sim.Width == 0 {
		sim.Width = def.Simulation.Width
	}
	if sim.Height == 0 {
		sim.Height = def.Simulation.Height
	}
	if cfg.Emitter == nil {
		cfg.Emitter = def.Emitter
	}
	if cfg.Display.Scale == 0 {
		cfg.Display.Scale = def.Display.Scale
	}
	if cfg.Display.View == "" {
		cfg.Display.View = def.Display.View
	}
}

// CheckInit validates the config and fills in emitter names.
func (cfg *Config) CheckInit() error {
	sim := &cfg.Simulation
	if sim.Width < 3 || sim.Height < 3 {
		return fmt.Errorf(
			"[Simulation] grid must be at least 3x3 to have an interior, but is %dx%d",
			sim.Width, sim.Height,
		)
	}
	if sim.Timestep <= 0 {
		return fmt.Errorf("[Simulation] Timestep must be positive, but is %g", sim.Timestep)
	}
	if sim.Diffusion < 0 || sim.Viscosity < 0 {
		return fmt.Errorf(
			"[Simulation] Diffusion and Viscosity must be non-negative, but are %g and %g",
			sim.Diffusion, sim.Viscosity,
		)
	}
	if sim.Dissipation <= 0 || sim.Dissipation > 1 {
		return fmt.Errorf("[Simulation] Dissipation must be in (0, 1], but is %g", sim.Dissipation)
	}
	if sim.Iterations < 1 {
		return fmt.Errorf("[Simulation] Iterations must be positive, but is %d", sim.Iterations)
	}

	for name, e := range cfg.Emitter {
		if err := e.CheckInit(name, sim.Width, sim.Height); err != nil {
			return err
		}
	}

	if cfg.Display.Scale < 1 {
		return fmt.Errorf("[Display] Scale must be positive, but is %d", cfg.Display.Scale)
	}
	if _, err := render.ParseView(cfg.Display.View); err != nil {
		return fmt.Errorf("[Display] %w", err)
	}
	return nil
}

func (e *EmitterConfig) CheckInit(name string, width, height int) error {
	if e.X < 0 || e.X >= width || e.Y < 0 || e.Y >= height {
		return fmt.Errorf(
			"Emitter '%s' at (%d, %d) lies outside the %dx%d grid",
			name, e.X, e.Y, width, height,
		)
	}
	if e.Strength < 0 {
		return fmt.Errorf("Emitter '%s' given a negative Strength, %g", name, e.Strength)
	}
	if e.Radius < 0 {
		return fmt.Errorf("Emitter '%s' given a negative Radius, %d", name, e.Radius)
	}
	if e.Color == "" {
		e.Color = "#ffffff"
	} else if !strings.HasPrefix(e.Color, "#") {
		e.Color = "#" + e.Color
	}
	if _, err := colorful.Hex(e.Color); err != nil {
		return fmt.Errorf("Emitter '%s' has invalid Color %q: %w", name, e.Color, err)
	}
	e.Name = name
	return nil
}

// Emitters returns the configured emitters ordered by section name.
func (cfg *Config) Emitters() []*EmitterConfig {
	names := make([]string, 0, len(cfg.Emitter))
	for name := range cfg.Emitter {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]*EmitterConfig, len(names))
	for i, name := range names {
		out[i] = cfg.Emitter[name]
	}
	return out
}

func (e *EmitterConfig) emitter() fluid.Emitter {
	em := fluid.NewEmitter(e.X, e.Y)
	em.Strength = e.Strength
	em.Radius = e.Radius
	em.Angle = degToRad(e.Angle)
	em.RotationSpeed = degToRad(e.RotationSpeed)

	// validated by CheckInit
	c, _ := colorful.Hex(e.Color)
	r, g, b := c.RGB255()
	em.Color.R, em.Color.G, em.Color.B = r, g, b
	return em
}

// Build creates a simulation from a validated config.
func (cfg *Config) Build() *fluid.Fluid {
	sim := cfg.Simulation
	f := fluid.NewSize(sim.Width, sim.Height, sim.Timestep, sim.Diffusion, sim.Viscosity)
	f.Dissipation = sim.Dissipation
	f.Iterations = sim.Iterations
	if sim.Seed != 0 {
		f.Seed(uint64(sim.Seed))
	}

	for _, e := range cfg.Emitters() {
		f.Emitters = append(f.Emitters, e.emitter())
	}
	// Angle wraps on the first Update; keep the stored value in range too.
	for i := range f.Emitters {
		f.Emitters[i].Update(0)
	}
	return f
}

// View returns the configured initial view.
func (cfg *Config) View() render.View {
	v, _ := render.ParseView(cfg.Display.View)
	return v
}

func degToRad(deg float64) float64 {
	return deg * math.Pi / 180
}

const Example = `; FluidSIM configuration.

[Simulation]
Timestep = 0.5
Diffusion = 0
Viscosity = 0
; density multiplier applied every step, in (0, 1]
Dissipation = 0.995
Iterations = 20
Width = 100
Height = 75
; seeds injection jitter and emitter drift; 0 seeds both from the clock
Seed = 0

; Emitters are created in order of their names.
[Emitter "a-left"]
X = 33
Y = 37
Strength = 1
Radius = 1
; degrees
Angle = 0
; degrees per unit of simulated time
RotationSpeed = 0
Color = "#ff6464"

[Emitter "b-right"]
X = 66
Y = 37
Strength = 1
Radius = 1
Angle = 180
RotationSpeed = 0
Color = "#6464ff"

[Display]
; window pixels per grid cell
Scale = 8
; density, speed or divergence
View = density
Wander = false
`
