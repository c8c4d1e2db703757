package fluid

import "math"

// Velocity returns a snapshot of the velocity field.
func (f *Fluid) Velocity() VectorField {
	uCopy := make([]float64, len(f.PX))
	copy(uCopy, f.PX)
	vCopy := make([]float64, len(f.PY))
	copy(vCopy, f.PY)
	return VectorField{
		Width:   f.Width,
		Height:  f.Height,
		valuesU: uCopy,
		valuesV: vCopy,
	}
}

// Speed computes |v| for every cell.
func (f *Fluid) Speed() ScalarField {
	vals := make([]float64, len(f.PX))
	for i := range vals {
		vals[i] = math.Hypot(f.PX[i], f.PY[i])
	}
	return newScalarField(f.Width, f.Height, vals)
}

// Divergence computes the central-difference divergence of the velocity at
// interior cells. Boundary cells read as zero.
func (f *Fluid) Divergence() ScalarField {
	vals := make([]float64, len(f.PX))
	w := f.Width
	for j := 1; j < f.Height-1; j++ {
		for i := 1; i < f.Width-1; i++ {
			idx := i + j*w
			vals[idx] = 0.5 * (f.PX[idx+1] - f.PX[idx-1] + f.PY[idx+w] - f.PY[idx-w])
		}
	}
	return newScalarField(f.Width, f.Height, vals)
}

// SumDivergence returns the summed absolute divergence over interior cells.
func (f *Fluid) SumDivergence() float64 {
	sum := 0.0
	w := f.Width
	for j := 1; j < f.Height-1; j++ {
		for i := 1; i < f.Width-1; i++ {
			idx := i + j*w
			sum += math.Abs(0.5 * (f.PX[idx+1] - f.PX[idx-1] + f.PY[idx+w] - f.PY[idx-w]))
		}
	}
	return sum
}

// MaxDivergence returns the maximum absolute divergence over interior cells.
func (f *Fluid) MaxDivergence() float64 {
	maxDiv := 0.0
	w := f.Width
	for j := 1; j < f.Height-1; j++ {
		for i := 1; i < f.Width-1; i++ {
			idx := i + j*w
			div := 0.5 * (f.PX[idx+1] - f.PX[idx-1] + f.PY[idx+w] - f.PY[idx-w])
			if a := math.Abs(div); a > maxDiv {
				maxDiv = a
			}
		}
	}
	return maxDiv
}
