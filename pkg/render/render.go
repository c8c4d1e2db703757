package render

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/mazznoer/colorgrad"

	"github.com/yummy913/FluidSIM/pkg/fluid"
)

// View selects which field is painted.
type View int

const (
	ViewDensity View = iota
	ViewSpeed
	ViewDivergence
	numViews
)

var viewNames = [numViews]string{"density", "speed", "divergence"}

func (v View) String() string {
	if v < 0 || v >= numViews {
		return fmt.Sprintf("View(%d)", int(v))
	}
	return viewNames[v]
}

// Next cycles through the views.
func (v View) Next() View {
	return (v + 1) % numViews
}

func ParseView(s string) (View, error) {
	for i, name := range viewNames {
		if strings.EqualFold(s, name) {
			return View(i), nil
		}
	}
	return 0, fmt.Errorf("unknown view %q, must be one of %s", s, strings.Join(viewNames[:], ", "))
}

// Painter turns simulation state into RGBA pixels, one pixel per cell.
type Painter struct {
	View  View
	speed colorgrad.Gradient
}

func NewPainter(view View) *Painter {
	return &Painter{
		View:  view,
		speed: colorgrad.Turbo(),
	}
}

// Paint fills pix (4*Width*Height bytes, row-major RGBA) from f. It must not
// run concurrently with f.Step.
func (p *Painter) Paint(f *fluid.Fluid, pix []byte) {
	if len(pix) < 4*f.Width*f.Height {
		panic(fmt.Sprintf("pixel buffer holds %d bytes, need %d", len(pix), 4*f.Width*f.Height))
	}

	var cell func(x, y int) color.RGBA
	switch p.View {
	case ViewSpeed:
		speed := f.Speed()
		maxSpeed := speed.MaxValue
		cell = func(x, y int) color.RGBA {
			t := 0.0
			if maxSpeed > 0 {
				t = speed.At(x, y) / maxSpeed
			}
			return toRGBA(p.speed.At(t))
		}
	case ViewDivergence:
		div := f.Divergence()
		lim := max(math.Abs(div.MinValue), math.Abs(div.MaxValue))
		cell = func(x, y int) color.RGBA {
			return sciColor(div.At(x, y), -lim, lim)
		}
	default:
		d := f.Density()
		cell = func(x, y int) color.RGBA {
			c := colorful.Color{R: d.R.At(x, y), G: d.G.At(x, y), B: d.B.At(x, y)}
			return toRGBA(c)
		}
	}

	parallelRows(f.Height, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			for x := 0; x < f.Width; x++ {
				c := cell(x, y)
				i := 4 * (x + y*f.Width)
				pix[i] = c.R
				pix[i+1] = c.G
				pix[i+2] = c.B
				pix[i+3] = c.A
			}
		}
	})
}

func toRGBA(c colorful.Color) color.RGBA {
	r, g, b := c.Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}

// Pixel reads back one cell from a buffer filled by Paint.
func Pixel(pix []byte, width, x, y int) color.RGBA {
	i := 4 * (x + y*width)
	return color.RGBA{R: pix[i], G: pix[i+1], B: pix[i+2], A: pix[i+3]}
}
