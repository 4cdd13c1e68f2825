package palette

import (
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"fractgen/escape"
)

// Hue cycles through the HSV color wheel as the escape count grows.
type Hue struct {
	// Offset is the hue, in degrees, of points escaping immediately.
	Offset float64
	// Cycles is how many times the wheel is traversed up to the iteration cap.
	Cycles float64
	// Inside colors points that never escape. Always opaque.
	Inside color.RGBA
}

var _ escape.Shader = Hue{}

func (h Hue) Shade(s escape.Sample) color.RGBA {
	if s.Inside() {
		in := h.Inside
		in.A = 0xFF
		return in
	}
	return rgba(colorful.Hsv(wrapDegrees(h.Offset+h.Cycles*360*float64(s.Iter)/float64(s.MaxIter)), 1, 1))
}

// Palette samples one full wheel turn at n positions.
func (h Hue) Palette(n int) color.Palette {
	pal := make(color.Palette, n)
	for i := range n {
		pal[i] = rgba(colorful.Hsv(wrapDegrees(h.Offset+360*float64(i)/float64(n)), 1, 1))
	}
	return pal
}

func wrapDegrees(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}
