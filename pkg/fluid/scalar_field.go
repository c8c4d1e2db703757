package fluid

import (
	"fmt"
	"math"
)

// ScalarField is a read-only view of one value per cell.
type ScalarField struct {
	Width, Height      int
	MinValue, MaxValue float64
	values             []float64
}

func newScalarField(width, height int, values []float64) ScalarField {
	minValue := math.Inf(1)
	maxValue := math.Inf(-1)
	for _, v := range values {
		minValue = min(minValue, v)
		maxValue = max(maxValue, v)
	}
	return ScalarField{
		Width:    width,
		Height:   height,
		MinValue: minValue,
		MaxValue: maxValue,
		values:   values,
	}
}

func (s ScalarField) Value(x, y int) (float64, error) {
	if x < 0 || x >= s.Width {
		return 0.0, fmt.Errorf("x index out of range, must be between 0 and %d", s.Width-1)
	}
	if y < 0 || y >= s.Height {
		return 0.0, fmt.Errorf("y index out of range, must be between 0 and %d", s.Height-1)
	}

	return s.values[x+y*s.Width], nil
}

// At is Value without the bounds check.
func (s ScalarField) At(x, y int) float64 {
	return s.values[x+y*s.Width]
}

// ColorField groups the three density channels.
type ColorField struct {
	R, G, B ScalarField
}

// Density returns views over the live density buffers. They are only
// valid until the next Step.
func (f *Fluid) Density() ColorField {
	return ColorField{
		R: newScalarField(f.Width, f.Height, f.R),
		G: newScalarField(f.Width, f.Height, f.G),
		B: newScalarField(f.Width, f.Height, f.B),
	}
}
