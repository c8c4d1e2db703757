package fluid

import "math"

// diffuse relaxes in toward its implicitly diffused version and writes
// the result to out. out doubles as the initial guess.
func (f *Fluid) diffuse(out, in []float64, rate, dt float64) {
	a := dt * rate * float64((f.Width-2)*(f.Height-2))
	f.linearSolve(out, in, a, 1+6*a)
}

// linearSolve runs a fixed number of Gauss-Seidel sweeps of
// x = (x0 + a*(neighbors of x)) / c over the interior cells.
func (f *Fluid) linearSolve(x, x0 []float64, a, c float64) {
	w := f.Width
	for k := 0; k < f.Iterations; k++ {
		for j := 1; j < f.Height-1; j++ {
			for i := 1; i < f.Width-1; i++ {
				idx := i + j*w
				x[idx] = (x0[idx] + a*(x[idx+1]+x[idx-1]+x[idx+w]+x[idx-w])) / c
			}
		}
	}
}

// advect moves in along (vx, vy) by tracing each interior cell back one
// step of length Time and sampling bilinearly.
func (f *Fluid) advect(out, in, vx, vy []float64) {
	dt0 := f.Time
	maxX := float64(f.Width-1) - 0.5
	maxY := float64(f.Height-1) - 0.5

	for j := 1; j < f.Height-1; j++ {
		for i := 1; i < f.Width-1; i++ {
			idx := f.Index(i, j)

			x := clampTrace(float64(i)-dt0*vx[idx], maxX)
			y := clampTrace(float64(j)-dt0*vy[idx], maxY)

			out[idx] = f.sample(in, x, y)
		}
	}
}

// clampTrace limits a traced coordinate to [0.5, hi]. NaN maps to 0.5.
func clampTrace(v, hi float64) float64 {
	if !(v >= 0.5) {
		return 0.5
	}
	if v > hi {
		return hi
	}
	return v
}

// sample interpolates field at a fractional position. x and y must lie in
// [0, Width-1) and [0, Height-1).
func (f *Fluid) sample(field []float64, x, y float64) float64 {
	i0 := int(math.Floor(x))
	i1 := i0 + 1
	j0 := int(math.Floor(y))
	j1 := j0 + 1

	s1 := x - float64(i0)
	s0 := 1 - s1
	t1 := y - float64(j0)
	t0 := 1 - t1

	return s0*(t0*field[f.Index(i0, j0)]+t1*field[f.Index(i0, j1)]) +
		s1*(t0*field[f.Index(i1, j0)]+t1*field[f.Index(i1, j1)])
}

// project removes most of the divergent part of (PX, PY) by subtracting the
// gradient of a pressure-like potential.
func (f *Fluid) project() {
	w := f.Width
	fill(f.div, 0)
	fill(f.p, 0)

	for j := 1; j < f.Height-1; j++ {
		for i := 1; i < f.Width-1; i++ {
			idx := i + j*w
			f.div[idx] = -0.5 * (f.PX[idx+1] - f.PX[idx-1] + f.PY[idx+w] - f.PY[idx-w]) / float64(f.Width)
		}
	}

	for k := 0; k < f.Iterations; k++ {
		for j := 1; j < f.Height-1; j++ {
			for i := 1; i < f.Width-1; i++ {
				idx := i + j*w
				f.p[idx] = (f.div[idx] + f.p[idx-1] + f.p[idx+1] + f.p[idx-w] + f.p[idx+w]) / 4
			}
		}
	}

	for j := 1; j < f.Height-1; j++ {
		for i := 1; i < f.Width-1; i++ {
			idx := i + j*w
			f.PX[idx] -= 0.5 * (f.p[idx+1] - f.p[idx-1]) * float64(f.Width)
			f.PY[idx] -= 0.5 * (f.p[idx+w] - f.p[idx-w]) * float64(f.Height)
		}
	}
}
