package output

import (
	"image"
	"log/slog"

	"golang.org/x/image/draw"
)

const MaxSupersample = 8

// Downscale resamples img to width×height with a Catmull-Rom filter. It is
// used to average supersampled renders down to the requested size. The
// input is returned as is when it already has the requested size.
func Downscale(logger *slog.Logger, img *image.RGBA, width, height int) *image.RGBA {
	src := img.Bounds()
	if src.Dx() == width && src.Dy() == height {
		return img
	}

	logger.Info("resizing", "fromWidth", src.Dx(), "fromHeight", src.Dy(), "width", width, "height", height)
	dest := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dest, dest.Bounds(), img, src, draw.Src, nil)

	return dest
}
