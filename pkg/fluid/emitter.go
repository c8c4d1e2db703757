package fluid

import (
	"image/color"
	"math"
	"math/rand/v2"

	"github.com/crazy3lf/colorconv"
)

const (
	fullTurn = 2 * math.Pi

	// Injected velocity direction is spread by up to this many radians
	// either side of the emitter angle.
	jitter = 0.25
)

// Emitter is a point source of colored density and directional velocity.
type Emitter struct {
	X, Y          int
	Strength      float64
	Radius        int // half-extent of the square footprint
	Angle         float64
	RotationSpeed float64 // radians per unit of simulated time
	Color         color.RGBA
}

func NewEmitter(x, y int) Emitter {
	return Emitter{
		X:        x,
		Y:        y,
		Strength: 1,
		Radius:   1,
		Color:    color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff},
	}
}

// Update rotates the emitter by RotationSpeed*dt and keeps Angle in [0, 2pi).
func (e *Emitter) Update(dt float64) {
	e.Angle = wrapAngle(e.Angle + e.RotationSpeed*dt)
}

func wrapAngle(a float64) float64 {
	a = math.Mod(a, fullTurn)
	if a < 0 {
		a += fullTurn
	}
	// a tiny negative remainder rounds up to a full turn
	if a >= fullTurn {
		a = 0
	}
	return a
}

// SetHue recolors the emitter with a fully saturated hue in degrees.
func (e *Emitter) SetHue(hue float64) error {
	hue = math.Mod(hue, 360)
	if hue < 0 {
		hue += 360
	}
	r, g, b, err := colorconv.HSVToRGB(hue, 1, 1)
	if err != nil {
		return err
	}
	e.Color = color.RGBA{R: r, G: g, B: b, A: 0xff}
	return nil
}

// Buffers is a borrowed view of caller-owned simulation buffers. Inject
// writes through it and never keeps a reference.
type Buffers struct {
	Width, Height int
	R, G, B       []float64
	PX, PY        []float64
}

func (b Buffers) Index(x, y int) int {
	return x + y*b.Width
}

// Inject adds the emitter's color and velocity to every in-bounds cell of
// its square footprint. The velocity direction of each cell is jittered
// independently using rng.
func (e *Emitter) Inject(b Buffers, rng *rand.Rand) {
	rv := float64(e.Color.R) / 255 * e.Strength
	gv := float64(e.Color.G) / 255 * e.Strength
	bv := float64(e.Color.B) / 255 * e.Strength

	for dy := -e.Radius; dy <= e.Radius; dy++ {
		for dx := -e.Radius; dx <= e.Radius; dx++ {
			x := e.X + dx
			y := e.Y + dy
			if x < 0 || x >= b.Width || y < 0 || y >= b.Height {
				continue
			}
			idx := b.Index(x, y)

			b.R[idx] += rv
			b.G[idx] += gv
			b.B[idx] += bv

			angle := e.Angle + (rng.Float64()-0.5)*2*jitter
			b.PX[idx] += math.Cos(angle) * e.Strength
			b.PY[idx] += math.Sin(angle) * e.Strength
		}
	}
}

func degToRad(deg float64) float64 {
	return deg * math.Pi / 180
}
