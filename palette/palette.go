// Package palette provides shaders that color escape-time samples, either
// built in or loaded from RIFF PAL files.
package palette

import (
	"fmt"
	"image/color"
	"io"
	"maps"
	"path/filepath"
	"slices"
	"strings"

	"fractgen/escape"
	"fractgen/output"
)

const Default = "classic"

var builtin = map[string]func() escape.Shader{
	"classic": func() escape.Shader { return escape.Classic{} },
	"hue":     func() escape.Shader { return Hue{Offset: 200, Cycles: 3} },
	"fire":    func() escape.Shader { return mustHexGradient("#000000", "#7a0403", "#f9420e", "#fcd336", "#ffffff") },
	"ocean":   func() escape.Shader { return mustHexGradient("#03051a", "#0b3d91", "#1fa3c4", "#b8f3ff") },
	"gray":    func() escape.Shader { return mustHexGradient("#000000", "#ffffff") },
}

// Names lists the built-in palettes.
func Names() []string {
	return slices.Sorted(maps.Keys(builtin))
}

// Load returns the built-in palette called name or, if name is a path to
// a PAL file, a gradient through all colors stored in it.
func Load(name string) (escape.Shader, error) {
	if name == "" {
		name = Default
	}
	if mk, ok := builtin[strings.ToLower(name)]; ok {
		return mk(), nil
	}

	if !strings.EqualFold(filepath.Ext(name), ".pal") {
		return nil, fmt.Errorf("unknown palette %q, expected one of %s or a .pal file",
			name, strings.Join(Names(), ", "))
	}

	pals, err := ReadFile(name)
	if err != nil {
		return nil, err
	}

	var all color.Palette
	for _, pal := range pals {
		all = append(all, pal...)
	}
	g, err := NewGradient(all)
	if err != nil {
		return nil, fmt.Errorf("could not use palette file %q: %w", name, err)
	}
	return g, nil
}

// Swatch returns n colors representative of sh, ordered from immediate
// escape to the iteration cap.
func Swatch(sh escape.Shader, n int) color.Palette {
	if s, ok := sh.(interface{ Palette(int) color.Palette }); ok {
		return s.Palette(n)
	}

	pal := make(color.Palette, n)
	for i := range n {
		pal[i] = sh.Shade(escape.Sample{Iter: i, MaxIter: n, Width: 1, Height: 1})
	}
	return pal
}

// WriteFile stores pals in a RIFF PAL file. An existing file is replaced
// only when overwrite is set.
func WriteFile(name string, overwrite bool, pals ...color.Palette) error {
	return output.WriteFile(name, overwrite, func(w io.Writer) error {
		if _, err := WriteTo(w, pals); err != nil {
			return fmt.Errorf("could not write palette file %q: %w", name, err)
		}
		return nil
	})
}
