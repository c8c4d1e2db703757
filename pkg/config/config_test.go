package config

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yummy913/FluidSIM/pkg/fluid"
	"github.com/yummy913/FluidSIM/pkg/render"
)

func TestDefaultMatchesFluidNew(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.CheckInit())

	got := cfg.Build()
	want := fluid.New(0.5, 0, 0)

	assert.Equal(t, want.Width, got.Width)
	assert.Equal(t, want.Height, got.Height)
	assert.Equal(t, want.Time, got.Time)
	assert.Equal(t, want.Dissipation, got.Dissipation)
	assert.Equal(t, want.Iterations, got.Iterations)
	require.Len(t, got.Emitters, len(want.Emitters))
	for i := range want.Emitters {
		w, g := want.Emitters[i], got.Emitters[i]
		assert.Equal(t, w.X, g.X, "emitter %d", i)
		assert.Equal(t, w.Y, g.Y, "emitter %d", i)
		assert.Equal(t, w.Color, g.Color, "emitter %d", i)
		assert.InDelta(t, w.Angle, g.Angle, 1e-12, "emitter %d", i)
	}
}

func TestParseExample(t *testing.T) {
	cfg, err := Parse(Example)
	require.NoError(t, err)

	assert.Equal(t, 0.5, cfg.Simulation.Timestep)
	assert.Equal(t, 0.995, cfg.Simulation.Dissipation)
	assert.Equal(t, 100, cfg.Simulation.Width)
	assert.Equal(t, 75, cfg.Simulation.Height)
	assert.Equal(t, 8, cfg.Display.Scale)
	assert.Equal(t, render.ViewDensity, cfg.View())

	ems := cfg.Emitters()
	require.Len(t, ems, 2)
	assert.Equal(t, "a-left", ems[0].Name)
	assert.Equal(t, "#ff6464", ems[0].Color)
	assert.Equal(t, "b-right", ems[1].Name)
	assert.Equal(t, 180.0, ems[1].Angle)
}

func TestParseFillsDefaults(t *testing.T) {
	cfg, err := Parse(`
[Simulation]
Viscosity = 0.0001
`)
	require.NoError(t, err)

	def := Default()
	assert.Equal(t, 0.0001, cfg.Simulation.Viscosity)
	assert.Equal(t, def.Simulation.Timestep, cfg.Simulation.Timestep)
	assert.Equal(t, def.Simulation.Width, cfg.Simulation.Width)
	assert.Len(t, cfg.Emitter, len(def.Emitter))
	assert.Equal(t, def.Display.View, cfg.Display.View)
}

func TestEmittersReplaceDefaults(t *testing.T) {
	cfg, err := Parse(`
[Simulation]
Width = 20
Height = 10
Seed = 7

[Emitter "spinner"]
X = 10
Y = 5
Strength = 2
Radius = 3
Angle = 450
RotationSpeed = 90
Color = 00ff00

[Display]
View = Speed
Wander = true
`)
	require.NoError(t, err)
	assert.Equal(t, render.ViewSpeed, cfg.View())
	assert.True(t, cfg.Display.Wander)

	f := cfg.Build()
	require.Len(t, f.Emitters, 1)
	e := f.Emitters[0]
	assert.Equal(t, 10, e.X)
	assert.Equal(t, 5, e.Y)
	assert.Equal(t, 2.0, e.Strength)
	assert.Equal(t, 3, e.Radius)
	assert.InDelta(t, math.Pi/2, e.Angle, 1e-12)
	assert.InDelta(t, math.Pi/2, e.RotationSpeed, 1e-12)
	assert.Equal(t, uint8(0), e.Color.R)
	assert.Equal(t, uint8(255), e.Color.G)
	assert.Equal(t, uint8(0xff), e.Color.A)
}

func TestSeedMakesBuildsReproducible(t *testing.T) {
	src := `
[Simulation]
Width = 16
Height = 16
Seed = 42

[Emitter "e"]
X = 8
Y = 8
Strength = 1
Radius = 1
`
	cfgA, err := Parse(src)
	require.NoError(t, err)
	cfgB, err := Parse(src)
	require.NoError(t, err)

	a, b := cfgA.Build(), cfgB.Build()
	for i := 0; i < 5; i++ {
		a.Step()
		b.Step()
	}
	assert.Equal(t, a.PX, b.PX)
	assert.Equal(t, a.R, b.R)
}

func TestCheckInitRejects(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"tiny grid", "[Simulation]\nWidth = 2\n"},
		{"negative timestep", "[Simulation]\nTimestep = -1\n"},
		{"negative viscosity", "[Simulation]\nViscosity = -0.1\n"},
		{"dissipation above one", "[Simulation]\nDissipation = 1.5\n"},
		{"negative iterations", "[Simulation]\nIterations = -3\n"},
		{"emitter off grid", "[Emitter \"x\"]\nX = 500\nY = 1\n"},
		{"negative strength", "[Emitter \"x\"]\nX = 1\nY = 1\nStrength = -1\n"},
		{"negative radius", "[Emitter \"x\"]\nX = 1\nY = 1\nRadius = -1\n"},
		{"bad color", "[Emitter \"x\"]\nX = 1\nY = 1\nColor = \"#zzzzzz\"\n"},
		{"bad scale", "[Display]\nScale = -2\n"},
		{"bad view", "[Display]\nView = pressure\n"},
		{"unknown section", "[Nope]\nA = 1\n"},
		{"unknown variable", "[Simulation]\nGravity = 9.8\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.src)
			assert.Error(t, err)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fluid.cfg")
	require.NoError(t, os.WriteFile(path, []byte(Example), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, cfg.Emitters(), 2)

	_, err = Load(filepath.Join(t.TempDir(), "missing.cfg"))
	assert.Error(t, err)
}

func TestLoadOrDefault(t *testing.T) {
	cfg, err := LoadOrDefault("")
	require.NoError(t, err)
	assert.Equal(t, Default().Simulation, cfg.Simulation)
	assert.Equal(t, "a-left", cfg.Emitters()[0].Name)

	_, err = LoadOrDefault(filepath.Join(t.TempDir(), "missing.cfg"))
	assert.Error(t, err)
}
