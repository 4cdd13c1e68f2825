package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"fractgen/escape"
	"fractgen/output"
	"fractgen/palette"
	"fractgen/preview"

	"github.com/alecthomas/kong"
)

type CLI struct {
	Julia      string `short:"j" help:"Write Julia fractal image to the specified file." group:"output"`
	Mandlebrot string `short:"m" help:"Write Mandelbrot fractal image to the specified file." group:"output"`

	JuliaCReal      float64 `name:"julia-c-real" aliases:"jr" env:"JULIA_RE" default:"-0.4" help:"Real part of the Julia constant."`
	JuliaCImaginary float64 `name:"julia-c-imaginary" aliases:"ji" env:"JULIA_IM" default:"0.6" help:"Imaginary part of the Julia constant."`
	CenterReal      float64 `name:"center-real" aliases:"cr" env:"CENTER_X" default:"0" help:"Real coordinate of the view center."`
	CenterImaginary float64 `name:"center-imaginary" aliases:"ci" env:"CENTER_Y" default:"0" help:"Imaginary coordinate of the view center."`
	Scale           float64 `short:"s" env:"SCALE" default:"3.0" help:"Width of the view on the complex plane."`
	Width           int     `env:"FRACTAL_WIDTH" default:"800" help:"Image WIDTH in pixels."`
	Height          int     `env:"FRACTAL_HEIGHT" default:"800" help:"Image HEIGHT in pixels."`
	MaxIter         int     `name:"max-iter" env:"FRACTAL_MAX_ITER" default:"255" help:"Iteration cap per pixel."`
	CorrectedAxes   bool    `name:"corrected-axes" help:"Step each axis by its own dimension instead of the legacy crossed mapping."`

	Palette       string `default:"classic" help:"Palette name (classic, hue, fire, ocean, gray) or PAL file in RIFF format." group:"color"`
	ExportPalette string `name:"export-palette" help:"Write the selected palette to this PAL file." group:"color"`

	Supersample int  `default:"1" help:"Render at this multiple of the size and scale down (1-8)." group:"output"`
	Quality     int  `default:"95" help:"JPEG quality (1-100)." group:"output"`
	Overwrite   bool `default:"true" negatable:"" help:"Replace existing output files." group:"output"`

	Workers  int    `default:"0" help:"Rows rendered in parallel, 0 for one per CPU."`
	Preview  bool   `help:"Show each image in the terminal after writing it."`
	LogLevel string `name:"log-level" enum:"debug,info,warn,error" default:"info" help:"Log verbosity."`

	shader escape.Shader `kong:"-"`
}

type job struct {
	variant escape.Variant
	dest    string
}

func (c *CLI) jobs() []job {
	var jobs []job
	if c.Julia != "" {
		jobs = append(jobs, job{escape.Julia, c.Julia})
	}
	if c.Mandlebrot != "" {
		jobs = append(jobs, job{escape.Mandelbrot, c.Mandlebrot})
	}
	return jobs
}

func (c *CLI) params(v escape.Variant) escape.Params {
	p := escape.Params{
		Width:   c.Width * c.Supersample,
		Height:  c.Height * c.Supersample,
		Center:  complex(c.CenterReal, c.CenterImaginary),
		Scale:   c.Scale,
		Variant: v,
		C:       complex(c.JuliaCReal, c.JuliaCImaginary),
		MaxIter: c.MaxIter,
	}
	if c.CorrectedAxes {
		p.Mapping = escape.MappingCorrected
	}
	return p
}

func (c *CLI) Validate(kctx *kong.Context) error {
	if len(c.jobs()) == 0 && c.ExportPalette == "" {
		return fmt.Errorf("nothing to do: give --julia and/or --mandlebrot")
	}

	if c.Supersample < 1 || c.Supersample > output.MaxSupersample {
		return fmt.Errorf("invalid supersample factor %d, expected 1-%d", c.Supersample, output.MaxSupersample)
	}
	if c.Quality < 1 || c.Quality > 100 {
		return fmt.Errorf("invalid JPEG quality %d, expected 1-100", c.Quality)
	}

	for _, j := range c.jobs() {
		if _, err := output.FormatFor(j.dest); err != nil {
			return fmt.Errorf("invalid %s output %q: %w", j.variant, j.dest, err)
		}
		if err := c.params(j.variant).Validate(); err != nil {
			return err
		}
	}

	shader, err := palette.Load(c.Palette)
	if err != nil {
		return err
	}
	c.shader = shader

	return nil
}

func (c *CLI) Run(ctx context.Context) error {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}
	slog.SetLogLoggerLevel(level)

	if c.ExportPalette != "" {
		if err := palette.WriteFile(c.ExportPalette, c.Overwrite, palette.Swatch(c.shader, 256)); err != nil {
			return err
		}
		slog.Info("palette exported", "palette", c.Palette, "file", c.ExportPalette)
	}

	for _, j := range c.jobs() {
		if err := c.render(ctx, j); err != nil {
			return err
		}
	}
	return nil
}

func (c *CLI) render(ctx context.Context, j job) error {
	logger := slog.Default().With("variant", j.variant, "file", j.dest)
	start := time.Now()

	r := escape.Renderer{
		Params:  c.params(j.variant),
		Shader:  c.shader,
		Workers: c.Workers,
		Logger:  logger,
	}
	img, err := r.Render(ctx)
	if err != nil {
		return fmt.Errorf("could not render %s: %w", j.variant, err)
	}
	img = output.Downscale(logger, img, c.Width, c.Height)

	opts := output.Options{Overwrite: c.Overwrite, Quality: c.Quality}
	if err := output.Save(img, j.dest, opts); err != nil {
		return err
	}
	logger.Info("rendered", "width", c.Width, "height", c.Height, "elapsed", time.Since(start))

	if c.Preview {
		if err := preview.Run(img); err != nil {
			return fmt.Errorf("could not preview %q: %w", j.dest, err)
		}
	}
	return nil
}
