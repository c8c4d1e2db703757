package fluid

import "fmt"

type VectorField struct {
	Width, Height    int
	valuesU, valuesV []float64
}

func (v VectorField) Value(x, y int) (float64, float64, error) {
	if x < 0 || x >= v.Width {
		return 0.0, 0.0, fmt.Errorf("x index out of range, must be between 0 and %d", v.Width-1)
	}
	if y < 0 || y >= v.Height {
		return 0.0, 0.0, fmt.Errorf("y index out of range, must be between 0 and %d", v.Height-1)
	}

	return v.valuesU[x+y*v.Width], v.valuesV[x+y*v.Width], nil
}

func (v VectorField) At(x, y int) (float64, float64) {
	return v.valuesU[x+y*v.Width], v.valuesV[x+y*v.Width]
}
