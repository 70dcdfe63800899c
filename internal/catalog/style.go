package catalog

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"
)

// Shape is the marker drawn for a point.
type Shape string

const (
	Circle   Shape = "circle"
	Square   Shape = "square"
	Triangle Shape = "triangle"
	Cross    Shape = "x"
)

var shapes = []Shape{Circle, Square, Triangle, Cross}

// Shapes returns the supported shapes in cycle order.
func Shapes() []Shape {
	out := make([]Shape, len(shapes))
	copy(out, shapes)
	return out
}

func (s Shape) Valid() bool {
	for _, k := range shapes {
		if k == s {
			return true
		}
	}
	return false
}

// Next returns the shape after s in cycle order.
func (s Shape) Next() Shape {
	for i, k := range shapes {
		if k == s {
			return shapes[(i+1)%len(shapes)]
		}
	}
	return Circle
}

const (
	MinSize = 1.0
	MaxSize = 64.0
)

// Style is the visual configuration of one category. Size is a screen-space
// radius in pixels.
type Style struct {
	Color string  `yaml:"color" json:"color"`
	Size  float64 `yaml:"size" json:"size"`
	Shape Shape   `yaml:"shape" json:"shape"`
}

// Validate checks the color and shape and clamps the size into range.
func (s Style) Validate() (Style, error) {
	if _, err := ParseColor(s.Color); err != nil {
		return s, err
	}
	if !s.Shape.Valid() {
		return s, fmt.Errorf("invalid shape %q", s.Shape)
	}
	if math.IsNaN(s.Size) {
		return s, fmt.Errorf("invalid size")
	}
	s.Size = clampSize(s.Size)
	return s, nil
}

// RGBA returns the parsed style color; invalid colors render as mid gray.
func (s Style) RGBA() color.RGBA {
	c, err := ParseColor(s.Color)
	if err != nil {
		return color.RGBA{0x88, 0x88, 0x88, 0xff}
	}
	return c
}

func clampSize(v float64) float64 {
	if v < MinSize {
		return MinSize
	}
	if v > MaxSize {
		return MaxSize
	}
	return v
}

// ParseColor parses #rgb or #rrggbb. The leading # is required.
func ParseColor(s string) (color.RGBA, error) {
	h, ok := strings.CutPrefix(strings.TrimSpace(s), "#")
	if !ok {
		return color.RGBA{}, fmt.Errorf("invalid color %q", s)
	}
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) != 6 {
		return color.RGBA{}, fmt.Errorf("invalid color %q", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q", s)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}

var defaults = map[Category]Style{
	Chests:    {Color: "#e6a23c", Size: 4, Shape: Square},
	EChests:   {Color: "#9b59b6", Size: 4, Shape: Square},
	Shulkers:  {Color: "#e056fd", Size: 4, Shape: Square},
	Barrels:   {Color: "#a0522d", Size: 4, Shape: Square},
	Signs:     {Color: "#f1c40f", Size: 3, Shape: Triangle},
	Spawners:  {Color: "#e74c3c", Size: 5, Shape: Cross},
	Portals:   {Color: "#8e44ad", Size: 6, Shape: Circle},
	Beds:      {Color: "#c0392b", Size: 3, Shape: Square},
	Pigs:      {Color: "#ff9ff3", Size: 4, Shape: Circle},
	Villagers: {Color: "#27ae60", Size: 4, Shape: Circle},
	Unknown:   {Color: "#3498db", Size: 3, Shape: Circle},
}

// DefaultStyle returns the built-in style for c, falling back to Unknown's.
func DefaultStyle(c Category) Style {
	if s, ok := defaults[c]; ok {
		return s
	}
	return defaults[Unknown]
}
