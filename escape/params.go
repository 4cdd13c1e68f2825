// Package escape renders Julia and Mandelbrot sets with the escape-time
// algorithm into RGBA images.
package escape

import (
	"errors"
	"fmt"
	"math"
)

type Variant int

const (
	Julia Variant = iota
	Mandelbrot
)

func (v Variant) String() string {
	switch v {
	case Julia:
		return "julia"
	case Mandelbrot:
		return "mandelbrot"
	}
	return fmt.Sprintf("variant(%d)", int(v))
}

// Mapping selects how pixel coordinates are projected on the complex plane.
type Mapping int

const (
	// MappingReference steps the x axis by scale/height and the y axis by
	// scale/width. Kept as the default so existing renders stay reproducible.
	MappingReference Mapping = iota
	// MappingCorrected steps each axis by its own dimension.
	MappingCorrected
)

const (
	DefaultScale   = 3.0
	DefaultMaxIter = 255
	DefaultWidth   = 800
	DefaultHeight  = 800

	// Bailout is the squared orbit magnitude past which a point escapes.
	Bailout = 4.0
)

var DefaultJuliaConstant = complex(-0.4, 0.6)

var ErrInvalidParams = errors.New("invalid render parameters")

// Params describes one render request.
type Params struct {
	Width   int
	Height  int
	Center  complex128
	Scale   float64
	Variant Variant
	// C is the constant added at each step in Julia mode. Ignored for
	// Mandelbrot renders.
	C       complex128
	MaxIter int
	Mapping Mapping
}

func DefaultParams(v Variant) Params {
	return Params{
		Width:   DefaultWidth,
		Height:  DefaultHeight,
		Scale:   DefaultScale,
		Variant: v,
		C:       DefaultJuliaConstant,
		MaxIter: DefaultMaxIter,
	}
}

func (p Params) Validate() error {
	switch {
	case p.Width <= 0:
		return fmt.Errorf("%w: width must be positive, got %d", ErrInvalidParams, p.Width)
	case p.Height <= 0:
		return fmt.Errorf("%w: height must be positive, got %d", ErrInvalidParams, p.Height)
	case p.Scale == 0 || math.IsNaN(p.Scale) || math.IsInf(p.Scale, 0):
		return fmt.Errorf("%w: scale must be a nonzero finite number, got %v", ErrInvalidParams, p.Scale)
	case p.MaxIter < 1:
		return fmt.Errorf("%w: iteration cap must be at least 1, got %d", ErrInvalidParams, p.MaxIter)
	case p.Variant != Julia && p.Variant != Mandelbrot:
		return fmt.Errorf("%w: unknown %s", ErrInvalidParams, p.Variant)
	case p.Mapping != MappingReference && p.Mapping != MappingCorrected:
		return fmt.Errorf("%w: unknown mapping %d", ErrInvalidParams, int(p.Mapping))
	}
	return nil
}

// Iterations returns the escape count of pixel (x, y) under frame f.
func (p Params) Iterations(f Frame, x, y int) int {
	pt := f.Point(x, y)
	if p.Variant == Mandelbrot {
		return Iterate(0, pt, p.MaxIter)
	}
	return Iterate(pt, p.C, p.MaxIter)
}
