package escape

import (
	"context"
	"fmt"
	"image"
	"log/slog"

	"fractgen/parallel"
)

// Renderer fills images for one set of parameters.
type Renderer struct {
	Params Params
	// Shader colors each pixel. Classic when nil.
	Shader Shader
	// Workers is the number of rows rendered concurrently. Values below 1
	// use GOMAXPROCS.
	Workers int
	Logger  *slog.Logger
}

func (r *Renderer) shader() Shader {
	if r.Shader == nil {
		return Classic{}
	}
	return r.Shader
}

func (r *Renderer) logger() *slog.Logger {
	if r.Logger == nil {
		return slog.Default()
	}
	return r.Logger
}

// Render allocates a Width×Height image and fills it.
func (r *Renderer) Render(ctx context.Context) (*image.RGBA, error) {
	if err := r.Params.Validate(); err != nil {
		return nil, err
	}
	img := image.NewRGBA(image.Rect(0, 0, r.Params.Width, r.Params.Height))
	if err := r.RenderInto(ctx, img); err != nil {
		return nil, err
	}
	return img, nil
}

// RenderInto overwrites every pixel of img, whose bounds must be
// Width×Height starting at the origin. Rows are independent and written by
// at most one worker each. If ctx is cancelled the remaining rows are
// skipped and ctx.Err() is returned.
func (r *Renderer) RenderInto(ctx context.Context, img *image.RGBA) error {
	p := r.Params
	if err := p.Validate(); err != nil {
		return err
	}
	if want := image.Rect(0, 0, p.Width, p.Height); img.Bounds() != want {
		return fmt.Errorf("%w: image bounds %v do not match %v", ErrInvalidParams, img.Bounds(), want)
	}

	frame := NewFrame(p)
	shader := r.shader()
	pool := parallel.Start(r.Workers)

	r.logger().Debug("rendering", "variant", p.Variant, "width", p.Width, "height", p.Height,
		"center", p.Center, "scale", p.Scale, "maxIter", p.MaxIter, "workers", pool.Workers())

	pool.Range(p.Height, func(y int) {
		if ctx.Err() != nil {
			return
		}
		row := img.Pix[y*img.Stride : y*img.Stride+p.Width*4]
		for x := range p.Width {
			c := shader.Shade(Sample{
				Iter:    p.Iterations(frame, x, y),
				MaxIter: p.MaxIter,
				X:       x,
				Y:       y,
				Width:   p.Width,
				Height:  p.Height,
			})
			px := row[x*4 : x*4+4 : x*4+4]
			px[0], px[1], px[2], px[3] = c.R, c.G, c.B, c.A
		}
	})

	return ctx.Err()
}
