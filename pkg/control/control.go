// Package control holds the interactive state shared by the desktop and
// terminal front ends: pause, view, emitter selection, parameter sliders,
// dragging and drift. Front ends translate their input events into calls
// on a Controller and read back Status for display.
package control

import (
	"fmt"
	"image/color"
	"log"
	"math"
	"strings"
	"time"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/yummy913/FluidSIM/pkg/config"
	"github.com/yummy913/FluidSIM/pkg/fluid"
	"github.com/yummy913/FluidSIM/pkg/render"
	"github.com/yummy913/FluidSIM/pkg/wander"
)

// Action is a discrete user command.
type Action int

const (
	TogglePause Action = iota
	CycleView
	CycleHue
	ToggleWander
	Reset
	SelectNext

	TimestepDown
	TimestepUp
	DissipationDown
	DissipationUp
	ViscosityDown
	ViscosityUp
	DiffusionDown
	DiffusionUp
	StrengthDown
	StrengthUp
	RotationDown
	RotationUp
)

// Slider limits and increments.
const (
	minTimestep    = 0.01
	maxTimestep    = 5.0
	timestepFactor = 1.1

	minDissipation  = 0.9
	dissipationStep = 0.001

	viscosityStep = 1e-5
	diffusionStep = 1e-5
	strengthStep  = 0.1
	rotationStep  = 5 * math.Pi / 180
	hueStep       = 30.0

	// GrabDistance is how close, in cells, a pointer must be to an
	// emitter to pick it up.
	GrabDistance = 4.0

	PushStrength = 50.0
	PushRadius   = 20
)

type Controller struct {
	Fluid   *fluid.Fluid
	Painter *render.Painter
	Drift   *wander.Drift

	Paused   bool
	Wander   bool
	Selected int // emitter index, -1 with no emitters
	Elapsed  float64
	Frames   int

	hues     []float64
	dragging int
}

func New(f *fluid.Fluid, view render.View, drift *wander.Drift) *Controller {
	c := &Controller{
		Fluid:    f,
		Painter:  render.NewPainter(view),
		Drift:    drift,
		Selected: -1,
		dragging: -1,
	}
	if len(f.Emitters) > 0 {
		c.Selected = 0
	}
	c.hues = make([]float64, len(f.Emitters))
	for i, e := range f.Emitters {
		c.hues[i] = hueOf(e.Color)
	}
	return c
}

// FromConfig builds the simulation, view and drift described by cfg.
func FromConfig(cfg *config.Config) *Controller {
	f := cfg.Build()
	amplitude := float64(min(f.Width, f.Height)) / 10
	c := New(f, cfg.View(), wander.New(driftSeed(cfg.Simulation.Seed), amplitude))
	c.Wander = cfg.Display.Wander
	return c
}

// driftSeed treats 0 as "seed from the clock", like the injection jitter.
func driftSeed(seed int64) int64 {
	if seed != 0 {
		return seed
	}
	return time.Now().UnixNano()
}

func hueOf(c color.RGBA) float64 {
	col, _ := colorful.MakeColor(c)
	h, _, _ := col.Hsv()
	return h
}

// Tick advances the simulation by one step unless paused.
func (c *Controller) Tick() {
	if c.Paused {
		return
	}
	if c.Wander && c.dragging < 0 {
		c.Drift.Apply(c.Fluid, c.Elapsed)
	}
	c.Fluid.Step()
	c.Elapsed += c.Fluid.Time
	c.Frames++
}

// Paint renders the current view into pix.
func (c *Controller) Paint(pix []byte) {
	c.Painter.Paint(c.Fluid, pix)
}

func (c *Controller) selected() *fluid.Emitter {
	if c.Selected < 0 || c.Selected >= len(c.Fluid.Emitters) {
		return nil
	}
	return &c.Fluid.Emitters[c.Selected]
}

func (c *Controller) Do(a Action) {
	f := c.Fluid
	e := c.selected()

	switch a {
	case TogglePause:
		c.Paused = !c.Paused
	case CycleView:
		c.Painter.View = c.Painter.View.Next()
	case CycleHue:
		if e == nil {
			return
		}
		c.hues[c.Selected] = math.Mod(c.hues[c.Selected]+hueStep, 360)
		if err := e.SetHue(c.hues[c.Selected]); err != nil {
			log.Printf("setting hue of emitter %d: %v", c.Selected, err)
		}
	case ToggleWander:
		c.Wander = !c.Wander
		if c.Wander {
			c.Drift.Reset()
		}
	case Reset:
		f.Reset()
		c.Elapsed = 0
		c.Frames = 0
	case SelectNext:
		if n := len(f.Emitters); n > 0 {
			c.Selected = (c.Selected + 1) % n
		}

	case TimestepDown:
		f.Time = max(minTimestep, f.Time/timestepFactor)
	case TimestepUp:
		f.Time = min(maxTimestep, f.Time*timestepFactor)
	case DissipationDown:
		f.Dissipation = max(minDissipation, f.Dissipation-dissipationStep)
	case DissipationUp:
		f.Dissipation = min(1, f.Dissipation+dissipationStep)
	case ViscosityDown:
		f.Viscosity = max(0, f.Viscosity-viscosityStep)
	case ViscosityUp:
		f.Viscosity += viscosityStep
	case DiffusionDown:
		f.Diffusion = max(0, f.Diffusion-diffusionStep)
	case DiffusionUp:
		f.Diffusion += diffusionStep

	case StrengthDown, StrengthUp, RotationDown, RotationUp:
		if e == nil {
			return
		}
		switch a {
		case StrengthDown:
			e.Strength = max(0, e.Strength-strengthStep)
		case StrengthUp:
			e.Strength += strengthStep
		case RotationDown:
			e.RotationSpeed -= rotationStep
		case RotationUp:
			e.RotationSpeed += rotationStep
		}
	}
}

// SetRadius sets the footprint radius of the selected emitter.
func (c *Controller) SetRadius(r int) {
	if e := c.selected(); e != nil && r >= 0 {
		e.Radius = r
	}
}

// Grab picks up the emitter nearest to grid position (x, y), if any is
// within GrabDistance, and selects it.
func (c *Controller) Grab(x, y int) bool {
	i := c.Fluid.NearestEmitter(float64(x), float64(y), GrabDistance)
	if i < 0 {
		return false
	}
	c.dragging = i
	c.Selected = i
	return true
}

// DragTo moves the grabbed emitter, if any.
func (c *Controller) DragTo(x, y int) {
	if c.dragging >= 0 {
		c.Fluid.MoveEmitter(c.dragging, x, y)
	}
}

// Release drops the grabbed emitter. Drift restarts around the new
// positions.
func (c *Controller) Release() {
	if c.dragging < 0 {
		return
	}
	c.dragging = -1
	c.Drift.Reset()
}

func (c *Controller) Dragging() bool {
	return c.dragging >= 0
}

// Push blows fluid outward from grid position (x, y).
func (c *Controller) Push(x, y int) {
	c.Fluid.PushVelocity(x, y, PushStrength, PushRadius)
}

// Status returns human-readable state, one item per line.
func (c *Controller) Status() []string {
	f := c.Fluid
	state := "running"
	if c.Paused {
		state = "paused"
	}
	lines := []string{
		fmt.Sprintf("%s  t=%.1f  frame %d  view %s  wander %v",
			state, c.Elapsed, c.Frames, c.Painter.View, c.Wander),
		fmt.Sprintf("dt %.3f  dissipation %.3f  viscosity %.5f  diffusion %.5f",
			f.Time, f.Dissipation, f.Viscosity, f.Diffusion),
		fmt.Sprintf("density %.1f  max div %.4f", f.TotalDensity(), f.MaxDivergence()),
	}
	if e := c.selected(); e != nil {
		lines = append(lines, fmt.Sprintf(
			"emitter %d/%d at (%d,%d)  strength %.1f  radius %d  angle %.0f°  spin %.0f°/t",
			c.Selected+1, len(f.Emitters), e.X, e.Y, e.Strength, e.Radius,
			e.Angle*180/math.Pi, e.RotationSpeed*180/math.Pi))
	}
	return lines
}

func (c *Controller) StatusText() string {
	return strings.Join(c.Status(), "\n")
}

// Help lists the key bindings shared by both front ends.
const Help = `space pause  v view  h hue  w wander  r reset  tab next emitter
[ ] timestep  - = dissipation  , . viscosity  ; ' diffusion
up/down strength  left/right spin  1-9 radius`
