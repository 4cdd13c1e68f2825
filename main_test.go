package main

import (
	"context"
	"errors"
	"image"
	"os"
	"path/filepath"
	"testing"

	"fractgen/escape"
	"fractgen/output"
	"fractgen/palette"

	"github.com/alecthomas/kong"
)

func parse(t *testing.T, args ...string) (*CLI, *kong.Context, error) {
	t.Helper()
	var cli CLI
	parser, err := newParser(&cli, kong.BindTo(context.Background(), (*context.Context)(nil)))
	if err != nil {
		t.Fatalf("could not build parser: %v", err)
	}
	kctx, err := parser.Parse(args)
	return &cli, kctx, err
}

func TestDefaults(t *testing.T) {
	cli, _, err := parse(t, "-j", "julia.png")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	p := cli.params(escape.Julia)
	want := escape.DefaultParams(escape.Julia)
	if p != want {
		t.Errorf("expected default params %+v, got %+v", want, p)
	}
	if cli.Mandlebrot != "" {
		t.Errorf("expected no Mandelbrot output, got %q", cli.Mandlebrot)
	}
	if !cli.Overwrite || cli.Quality != output.DefaultQuality || cli.Palette != palette.Default {
		t.Errorf("unexpected output defaults: %+v", cli)
	}
}

func TestAliases(t *testing.T) {
	cli, _, err := parse(t, "--mandlebrot", "m.png", "--jr=-0.8", "--ji", "0.156",
		"--cr=-0.5", "--ci", "0.25", "-s", "2", "--width", "30", "--height", "20")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	p := cli.params(escape.Mandelbrot)
	if p.C != complex(-0.8, 0.156) {
		t.Errorf("expected julia constant -0.8+0.156i, got %v", p.C)
	}
	if p.Center != complex(-0.5, 0.25) {
		t.Errorf("expected center -0.5+0.25i, got %v", p.Center)
	}
	if p.Scale != 2 || p.Width != 30 || p.Height != 20 {
		t.Errorf("unexpected geometry %+v", p)
	}
}

func TestEnvironment(t *testing.T) {
	t.Setenv("JULIA_RE", "0.285")
	t.Setenv("JULIA_IM", "0.01")
	t.Setenv("CENTER_X", "1")
	t.Setenv("CENTER_Y", "-1")
	t.Setenv("SCALE", "0.5")
	t.Setenv("FRACTAL_WIDTH", "64")
	t.Setenv("FRACTAL_HEIGHT", "48")
	t.Setenv("FRACTAL_MAX_ITER", "1000")

	cli, _, err := parse(t, "-j", "j.png", "--height", "40")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	p := cli.params(escape.Julia)
	want := escape.Params{
		Width:   64,
		Height:  40, // flags win over the environment
		Center:  complex(1, -1),
		Scale:   0.5,
		Variant: escape.Julia,
		C:       complex(0.285, 0.01),
		MaxIter: 1000,
	}
	if p != want {
		t.Errorf("expected %+v, got %+v", want, p)
	}
}

func TestValidation(t *testing.T) {
	cases := map[string][]string{
		"nothing to do":     {},
		"unknown extension": {"-j", "out.webp"},
		"zero width":        {"-j", "out.png", "--width", "0"},
		"zero scale":        {"-m", "out.png", "--scale", "0"},
		"bad palette":       {"-j", "out.png", "--palette", "plaid"},
		"bad supersample":   {"-j", "out.png", "--supersample", "9"},
		"bad quality":       {"-j", "out.jpg", "--quality", "0"},
		"bad log level":     {"-j", "out.png", "--log-level", "loud"},
	}
	for name, args := range cases {
		if _, _, err := parse(t, args...); err == nil {
			t.Errorf("%s: expected a parse error", name)
		}
	}
}

func decodeConfig(t *testing.T, name string) image.Config {
	t.Helper()
	f, err := os.Open(name)
	if err != nil {
		t.Fatalf("open %s failed: %v", name, err)
	}
	defer f.Close()

	conf, _, err := image.DecodeConfig(f)
	if err != nil {
		t.Fatalf("decode %s failed: %v", name, err)
	}
	return conf
}

func TestRunWritesBothImages(t *testing.T) {
	dir := t.TempDir()
	julia := filepath.Join(dir, "julia.png")
	mandel := filepath.Join(dir, "out", "mandel.bmp")

	_, kctx, err := parse(t, "-j", julia, "-m", mandel, "--width", "24", "--height", "16",
		"--supersample", "2", "--palette", "fire", "--log-level", "warn")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if err := kctx.Run(); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	for _, name := range []string{julia, mandel} {
		if conf := decodeConfig(t, name); conf.Width != 24 || conf.Height != 16 {
			t.Errorf("%s: expected 24x16, got %dx%d", name, conf.Width, conf.Height)
		}
	}
}

func TestRunRespectsNoOverwrite(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "julia.gif")
	if err := os.WriteFile(dest, []byte("old"), 0o644); err != nil {
		t.Fatalf("setup failed: %v", err)
	}

	_, kctx, err := parse(t, "-j", dest, "--width", "8", "--height", "8", "--no-overwrite")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if err := kctx.Run(); !errors.Is(err, output.ErrExists) {
		t.Errorf("expected ErrExists, got %v", err)
	}
}

func TestExportPaletteRespectsNoOverwrite(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "keep.pal")
	if err := os.WriteFile(dest, []byte("keep"), 0o644); err != nil {
		t.Fatalf("setup failed: %v", err)
	}

	_, kctx, err := parse(t, "--palette", "gray", "--export-palette", dest, "--no-overwrite")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if err := kctx.Run(); !errors.Is(err, output.ErrExists) {
		t.Errorf("expected ErrExists, got %v", err)
	}
	if data, _ := os.ReadFile(dest); string(data) != "keep" {
		t.Errorf("expected existing palette untouched, got %d bytes", len(data))
	}
}

func TestExportPalette(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "hue.pal")

	_, kctx, err := parse(t, "--palette", "hue", "--export-palette", dest)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if err := kctx.Run(); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	pals, err := palette.ReadFile(dest)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if len(pals) != 1 || len(pals[0]) != 256 {
		t.Errorf("expected one palette of 256 colors, got %d palettes", len(pals))
	}

	if _, err := palette.Load(dest); err != nil {
		t.Errorf("exported palette does not load: %v", err)
	}
}
