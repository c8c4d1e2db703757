package fluid

import (
	"image/color"
	"math/rand/v2"
	"time"

	"gonum.org/v1/gonum/floats"
)

const (
	DefaultWidth       = 100
	DefaultHeight      = 75
	DefaultDissipation = 0.995

	// DefaultIterations is the number of Gauss-Seidel sweeps used by the
	// diffusion and pressure solvers.
	DefaultIterations = 20
)

type Fluid struct {
	Width, Height int

	Time        float64 // integration step, also the backtrace distance of advect
	Diffusion   float64
	Viscosity   float64
	Dissipation float64 // per-step density multiplier

	Iterations int

	R, G, B []float64 // density channels
	PX, PY  []float64 // velocities

	// Emitters are identified by their index. The order never changes
	// between steps.
	Emitters []Emitter

	rng *rand.Rand

	tmpX, tmpY []float64
	div, p     []float64
}

// New returns the default 100x75 simulation with a red emitter pointing
// right and a blue emitter pointing left.
func New(timestep, diffusion, viscosity float64) *Fluid {
	f := NewSize(DefaultWidth, DefaultHeight, timestep, diffusion, viscosity)

	left := NewEmitter(f.Width/3, f.Height/2)
	left.Color = color.RGBA{R: 255, G: 100, B: 100, A: 0xff}
	left.Angle = 0

	right := NewEmitter(2*f.Width/3, f.Height/2)
	right.Color = color.RGBA{R: 100, G: 100, B: 255, A: 0xff}
	right.Angle = degToRad(180)

	f.Emitters = []Emitter{left, right}
	return f
}

// NewSize returns an empty width x height simulation without emitters.
func NewSize(width, height int, timestep, diffusion, viscosity float64) *Fluid {
	numCells := width * height
	return &Fluid{
		Width:       width,
		Height:      height,
		Time:        timestep,
		Diffusion:   diffusion,
		Viscosity:   viscosity,
		Dissipation: DefaultDissipation,
		Iterations:  DefaultIterations,

		R:  make([]float64, numCells),
		G:  make([]float64, numCells),
		B:  make([]float64, numCells),
		PX: make([]float64, numCells),
		PY: make([]float64, numCells),

		rng: newRand(uint64(time.Now().UnixNano())),

		tmpX: make([]float64, numCells),
		tmpY: make([]float64, numCells),
		div:  make([]float64, numCells),
		p:    make([]float64, numCells),
	}
}

func newRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Seed makes the injection jitter deterministic.
func (f *Fluid) Seed(seed uint64) {
	f.rng = newRand(seed)
}

// SetRand substitutes the source used for injection jitter.
func (f *Fluid) SetRand(r *rand.Rand) {
	f.rng = r
}

// Index maps a cell to its position in the flat buffers.
func (f *Fluid) Index(x, y int) int {
	return x + y*f.Width
}

// Buffers returns a view of the simulation's buffers for emitter injection.
func (f *Fluid) Buffers() Buffers {
	return Buffers{
		Width:  f.Width,
		Height: f.Height,
		R:      f.R,
		G:      f.G,
		B:      f.B,
		PX:     f.PX,
		PY:     f.PY,
	}
}

func (f *Fluid) inject() {
	buf := f.Buffers()
	for i := range f.Emitters {
		f.Emitters[i].Inject(buf, f.rng)
	}
}

// Step advances the simulation by one frame.
func (f *Fluid) Step() {
	for i := range f.Emitters {
		f.Emitters[i].Update(f.Time)
	}

	f.inject()

	copy(f.tmpX, f.PX)
	copy(f.tmpY, f.PY)
	f.diffuse(f.PX, f.tmpX, f.Viscosity, f.Time)
	f.diffuse(f.PY, f.tmpY, f.Viscosity, f.Time)

	f.project()

	// Both components trace through the velocity as it was before
	// advection started.
	copy(f.tmpX, f.PX)
	copy(f.tmpY, f.PY)
	f.advect(f.PX, f.tmpX, f.tmpX, f.tmpY)
	f.advect(f.PY, f.tmpY, f.tmpX, f.tmpY)

	f.project()

	for _, d := range [][]float64{f.R, f.G, f.B} {
		copy(f.tmpX, d)
		f.advect(d, f.tmpX, f.PX, f.PY)
	}

	floats.Scale(f.Dissipation, f.R)
	floats.Scale(f.Dissipation, f.G)
	floats.Scale(f.Dissipation, f.B)
}

// TotalDensity sums all three density channels over the whole grid.
func (f *Fluid) TotalDensity() float64 {
	return floats.Sum(f.R) + floats.Sum(f.G) + floats.Sum(f.B)
}

func fill[T any](slice []T, val T) {
	for i := range slice {
		slice[i] = val
	}
}
