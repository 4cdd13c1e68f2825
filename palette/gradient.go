package palette

import (
	"fmt"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"

	"fractgen/escape"
)

// Gradient colors escaped points by blending between stops in OKLab, from
// the first stop for immediate escapes to the last stop just below the
// iteration cap. Points that never escape take the Inside color.
type Gradient struct {
	Stops  []colorful.Color
	Inside color.RGBA
}

var _ escape.Shader = (*Gradient)(nil)

// NewGradient builds a gradient from a palette, e.g. one read from a PAL
// file. Fully transparent entries are skipped.
func NewGradient(pal color.Palette) (*Gradient, error) {
	g := &Gradient{Inside: color.RGBA{A: 0xFF}}
	for _, c := range pal {
		if cc, ok := colorful.MakeColor(c); ok {
			g.Stops = append(g.Stops, cc)
		}
	}
	if len(g.Stops) == 0 {
		return nil, fmt.Errorf("palette has no usable colors")
	}
	return g, nil
}

func mustHexGradient(hexes ...string) *Gradient {
	g := &Gradient{Inside: color.RGBA{A: 0xFF}}
	for _, h := range hexes {
		c, err := colorful.Hex(h)
		if err != nil {
			panic(fmt.Sprintf("invalid gradient stop %q: %v", h, err))
		}
		g.Stops = append(g.Stops, c)
	}
	return g
}

// At returns the gradient color at t in [0, 1].
func (g *Gradient) At(t float64) color.RGBA {
	n := len(g.Stops)
	switch {
	case n == 0:
		return g.Inside
	case n == 1 || t <= 0:
		return rgba(g.Stops[0])
	case t >= 1:
		return rgba(g.Stops[n-1])
	}

	pos := t * float64(n-1)
	i := int(pos)
	return rgba(g.Stops[i].BlendOkLab(g.Stops[i+1], pos-float64(i)))
}

func (g *Gradient) Shade(s escape.Sample) color.RGBA {
	if s.Inside() {
		return g.Inside
	}
	if s.MaxIter <= 1 {
		return g.At(0)
	}
	return g.At(float64(s.Iter) / float64(s.MaxIter-1))
}

// Palette samples the gradient at n evenly spaced positions.
func (g *Gradient) Palette(n int) color.Palette {
	pal := make(color.Palette, n)
	for i := range n {
		t := 0.0
		if n > 1 {
			t = float64(i) / float64(n-1)
		}
		pal[i] = g.At(t)
	}
	return pal
}

func rgba(c colorful.Color) color.RGBA {
	r, g, b := c.Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xFF}
}
