package fluid

import (
	"fmt"
	"math"
)

func (f *Fluid) mustCell(x, y int) int {
	if x < 0 || x >= f.Width {
		panic(fmt.Sprintf("invalid x-index: %d", x))
	}
	if y < 0 || y >= f.Height {
		panic(fmt.Sprintf("invalid y-index: %d", y))
	}
	return f.Index(x, y)
}

func (f *Fluid) SetVelocity(x, y int, u, v float64) {
	cell := f.mustCell(x, y)
	f.PX[cell] = u
	f.PY[cell] = v
}

func (f *Fluid) AddDensity(x, y int, r, g, b float64) {
	cell := f.mustCell(x, y)
	f.R[cell] += r
	f.G[cell] += g
	f.B[cell] += b
}

// PushVelocity adds an outward impulse to every cell of the disc of the
// given radius around (cx, cy). The impulse falls off with the squared
// distance from the center; the center cell itself is left alone.
func (f *Fluid) PushVelocity(cx, cy int, strength float64, radius int) {
	r2 := radius * radius
	for y := cy - radius; y <= cy+radius; y++ {
		for x := cx - radius; x <= cx+radius; x++ {
			if x < 0 || x >= f.Width || y < 0 || y >= f.Height {
				continue
			}
			dx := x - cx
			dy := y - cy
			d2 := dx*dx + dy*dy
			if d2 == 0 || d2 > r2 {
				continue
			}
			dist := math.Sqrt(float64(d2))
			force := strength / (1 + float64(d2))
			idx := f.Index(x, y)
			f.PX[idx] += float64(dx) / dist * force
			f.PY[idx] += float64(dy) / dist * force
		}
	}
}

// NearestEmitter returns the index of the emitter closest to (x, y) that
// lies within maxDist, or -1 if there is none.
func (f *Fluid) NearestEmitter(x, y, maxDist float64) int {
	best := -1
	bestDist := maxDist * maxDist
	for i, e := range f.Emitters {
		dx := float64(e.X) - x
		dy := float64(e.Y) - y
		if d := dx*dx + dy*dy; d <= bestDist {
			best = i
			bestDist = d
		}
	}
	return best
}

// MoveEmitter places emitter i at (x, y), clamped to the grid.
func (f *Fluid) MoveEmitter(i, x, y int) {
	if i < 0 || i >= len(f.Emitters) {
		return
	}
	f.Emitters[i].X = max(0, min(x, f.Width-1))
	f.Emitters[i].Y = max(0, min(y, f.Height-1))
}

// Reset clears density and velocity. Emitters and parameters are kept.
func (f *Fluid) Reset() {
	fill(f.R, 0.0)
	fill(f.G, 0.0)
	fill(f.B, 0.0)
	fill(f.PX, 0.0)
	fill(f.PY, 0.0)
	fill(f.tmpX, 0.0)
	fill(f.tmpY, 0.0)
	fill(f.div, 0.0)
	fill(f.p, 0.0)
}
