package hexcolor

import (
	"encoding/json"
	"fmt"
	"os"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// paletteKeys lists the colorscheme entries eligible for hexagon fills, in a
// fixed order so palette indices stay stable across loads.
var paletteKeys = []string{
	"red", "blue", "yellow", "green", "purple", "cyan",
	"brightRed", "brightGreen", "brightPurple", "brightCyan",
}

// Scheme is a drawing palette parsed from a terminal colorscheme definition.
type Scheme struct {
	Name       string
	Background colorful.Color
	Foreground colorful.Color
	Grid       colorful.Color
	Palette    []colorful.Color
}

// LoadScheme reads a colorscheme from a windowsterminal-format JSON file
// (the iTerm2-Color-Schemes export layout: a flat map of named hex strings).
func LoadScheme(path string) (*Scheme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read colorscheme: %w", err)
	}
	var raw map[string]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse colorscheme: %w", err)
	}
	return buildScheme(raw)
}

func buildScheme(raw map[string]string) (*Scheme, error) {
	bg, ok := raw["background"]
	if !ok {
		return nil, fmt.Errorf("colorscheme missing background")
	}
	fg, ok := raw["foreground"]
	if !ok {
		return nil, fmt.Errorf("colorscheme missing foreground")
	}
	// The grid is drawn with the scheme's cyan.
	grid, ok := raw["cyan"]
	if !ok {
		return nil, fmt.Errorf("colorscheme missing cyan")
	}

	s := &Scheme{Name: raw["name"]}
	var err error
	if s.Background, err = colorful.Hex(bg); err != nil {
		return nil, fmt.Errorf("bad background color %q: %w", bg, err)
	}
	if s.Foreground, err = colorful.Hex(fg); err != nil {
		return nil, fmt.Errorf("bad foreground color %q: %w", fg, err)
	}
	if s.Grid, err = colorful.Hex(grid); err != nil {
		return nil, fmt.Errorf("bad grid color %q: %w", grid, err)
	}

	for _, key := range paletteKeys {
		v, ok := raw[key]
		if !ok {
			continue
		}
		// Entries matching the grid or background would render invisible.
		if v == grid || v == bg {
			continue
		}
		c, err := colorful.Hex(v)
		if err != nil {
			return nil, fmt.Errorf("bad %s color %q: %w", key, v, err)
		}
		s.Palette = append(s.Palette, c)
	}
	if len(s.Palette) == 0 {
		return nil, fmt.Errorf("colorscheme %q has no usable palette entries", s.Name)
	}
	return s, nil
}

// Cycle returns the k-th fill color, wrapping around the palette. Renderers
// call it with the draw index so fills repeat in palette order.
func (s *Scheme) Cycle(k int) colorful.Color {
	return s.Palette[k%len(s.Palette)]
}

// DefaultScheme returns the built-in palette used when no colorscheme file is
// configured.
func DefaultScheme() *Scheme {
	raw := map[string]string{
		"name":         "hexplane",
		"background":   "#1d2021",
		"foreground":   "#ebdbb2",
		"red":          "#cc241d",
		"blue":         "#458588",
		"yellow":       "#d79921",
		"green":        "#98971a",
		"purple":       "#b16286",
		"cyan":         "#689d6a",
		"brightRed":    "#fb4934",
		"brightGreen":  "#b8bb26",
		"brightPurple": "#d3869b",
		"brightCyan":   "#8ec07c",
	}
	s, err := buildScheme(raw)
	if err != nil {
		panic(err) // static input
	}
	return s
}
