// Package wander moves emitters around their starting points along smooth
// Perlin noise paths.
package wander

import (
	"math"

	"github.com/aquilax/go-perlin"

	"github.com/yummy913/FluidSIM/pkg/fluid"
)

const (
	alpha   = 2.0
	beta    = 2.0
	octaves = 3

	// How fast the paths are traversed, in noise units per unit of
	// simulated time.
	frequency = 0.05
	// Separates the noise rows used by different emitters and axes.
	rowSpacing = 7.31
)

type home struct {
	x, y int
}

// Drift offsets every emitter from its home position by up to amplitude
// cells along each axis. Homes are recorded the first time an emitter is
// seen.
type Drift struct {
	amplitude float64
	noise     *perlin.Perlin
	homes     []home
}

func New(seed int64, amplitude float64) *Drift {
	return &Drift{
		amplitude: amplitude,
		noise:     perlin.NewPerlin(alpha, beta, octaves, seed),
	}
}

// Apply moves the emitters of f to their positions at simulated time t.
func (d *Drift) Apply(f *fluid.Fluid, t float64) {
	for i := len(d.homes); i < len(f.Emitters); i++ {
		d.homes = append(d.homes, home{f.Emitters[i].X, f.Emitters[i].Y})
	}

	for i := range f.Emitters {
		h := d.homes[i]
		row := float64(2*i) * rowSpacing
		dx := d.offset(t, row)
		dy := d.offset(t, row+rowSpacing)
		f.MoveEmitter(i, h.x+dx, h.y+dy)
	}
}

func (d *Drift) offset(t, row float64) int {
	n := d.noise.Noise2D(t*frequency, row)
	n = max(-1, min(1, n))
	return int(math.Round(n * d.amplitude))
}

// Reset forgets the recorded homes. The next Apply uses the current emitter
// positions instead.
func (d *Drift) Reset() {
	d.homes = d.homes[:0]
}
