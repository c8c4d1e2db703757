package render

import (
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Evenly spaced stops of the scientific colormap.
var sciStops = [...]colorful.Color{
	{R: 0, G: 0, B: 1}, // blue
	{R: 0, G: 1, B: 1}, // cyan
	{R: 0, G: 1, B: 0}, // green
	{R: 1, G: 1, B: 0}, // yellow
	{R: 1, G: 0, B: 0}, // red
}

// sciColor maps val within [minVal, maxVal] onto the blue to red
// scientific scale. A degenerate or non-finite range maps to the middle
// (green).
func sciColor(val, minVal, maxVal float64) color.RGBA {
	t := 0.5
	if d := maxVal - minVal; d > 0 {
		t = (min(max(val, minVal), maxVal) - minVal) / d
	}
	// NaN, or an infinite range
	if !(t >= 0 && t <= 1) {
		t = 0.5
	}

	segments := float64(len(sciStops) - 1)
	seg := min(math.Floor(t*segments), segments-1)
	s := t*segments - seg
	c := sciStops[int(seg)].BlendRgb(sciStops[int(seg)+1], s)

	return color.RGBA{
		R: uint8(255 * c.R),
		G: uint8(255 * c.G),
		B: uint8(255 * c.B),
		A: 0xff,
	}
}
