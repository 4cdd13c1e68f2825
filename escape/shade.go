package escape

import "image/color"

// Sample is everything a Shader may use to color one pixel.
type Sample struct {
	Iter    int
	MaxIter int
	X, Y    int
	Width   int
	Height  int
}

// Inside reports whether the orbit never escaped.
func (s Sample) Inside() bool {
	return s.Iter >= s.MaxIter
}

// Intensity is the escape count rescaled to 0..255.
func (s Sample) Intensity() uint8 {
	if s.MaxIter <= 0 {
		return 0
	}
	return uint8(s.Iter * 255 / s.MaxIter)
}

type Shader interface {
	Shade(s Sample) color.RGBA
}

type ShaderFunc func(s Sample) color.RGBA

func (f ShaderFunc) Shade(s Sample) color.RGBA {
	return f(s)
}

// Classic blends the escape intensity with a red gradient along x and a blue
// gradient along y.
type Classic struct{}

func (Classic) Shade(s Sample) color.RGBA {
	i := s.Intensity()
	r := uint8(s.X * 255 / s.Width)
	b := uint8(s.Y * 255 / s.Height)

	return color.RGBA{
		R: r/2 + i/2,
		G: i,
		B: b/2 + i/2,
		A: 0xFF,
	}
}
