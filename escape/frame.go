package escape

// Frame maps integer pixel positions to points on the complex plane. It is
// fixed for the duration of one render.
type Frame struct {
	// steps applied per pixel along x and y
	dx, dy float64
	// plane coordinates subtracted after stepping
	offX, offY float64
}

func NewFrame(p Params) Frame {
	w, h := float64(p.Width), float64(p.Height)
	stepX := p.Scale / w
	stepY := p.Scale / h

	f := Frame{
		offX: w*stepX/2 - real(p.Center),
		offY: h*stepY/2 - imag(p.Center),
	}
	if p.Mapping == MappingCorrected {
		f.dx, f.dy = stepX, stepY
	} else {
		f.dx, f.dy = stepY, stepX
	}
	return f
}

func (f Frame) Point(x, y int) complex128 {
	return complex(float64(x)*f.dx-f.offX, float64(y)*f.dy-f.offY)
}
