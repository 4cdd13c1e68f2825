// Package preview shows rendered images in the terminal.
package preview

import (
	"fmt"
	"image"
	"image/color"

	"github.com/gdamore/tcell/v2"
)

// halfBlock paints the upper half of a cell with the foreground color and
// the lower half with the background, giving two pixels per cell.
const halfBlock = '▀'

// Draw paints img on screen, scaled to fit while keeping its aspect ratio.
// Show is left to the caller.
func Draw(screen tcell.Screen, img image.Image) {
	screen.Clear()

	cols, rows := screen.Size()
	b := img.Bounds()
	if cols <= 0 || rows <= 0 || b.Empty() {
		return
	}

	// source pixels per terminal pixel
	f := max(float64(b.Dx())/float64(cols), float64(b.Dy())/float64(2*rows))
	w := min(cols, int(float64(b.Dx())/f))
	h := min(2*rows, int(float64(b.Dy())/f))

	at := func(x, y int) tcell.Color {
		c := color.RGBAModel.Convert(img.At(b.Min.X+int(float64(x)*f), b.Min.Y+int(float64(y)*f))).(color.RGBA)
		return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
	}

	for y := 0; y < h; y += 2 {
		for x := range w {
			style := tcell.StyleDefault.Foreground(at(x, y))
			if y+1 < h {
				style = style.Background(at(x, y+1))
			}
			screen.SetContent(x, y/2, halfBlock, nil, style)
		}
	}
}

// Run shows img full screen until a key is pressed.
func Run(img image.Image) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("could not open terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("could not initialize terminal: %w", err)
	}
	defer screen.Fini()

	return loop(screen, img)
}

func loop(screen tcell.Screen, img image.Image) error {
	Draw(screen, img)
	screen.Show()

	for {
		switch screen.PollEvent().(type) {
		case nil, *tcell.EventKey:
			return nil
		case *tcell.EventResize:
			Draw(screen, img)
			screen.Sync()
		}
	}
}
