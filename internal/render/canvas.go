package render

import "image/color"

// Canvas is a drawing surface addressed in screen pixels, origin top-left.
type Canvas interface {
	Size() (w, h int)
	Clear(bg color.Color)
	Line(x0, y0, x1, y1, width float64, c color.Color)
	FillCircle(cx, cy, r float64, c color.Color)
	FillRect(x0, y0, x1, y1 float64, c color.Color)
	FillPolygon(pts [][2]float64, c color.Color)
	Text(x, y float64, s string, c color.Color)
}

// Theme selects the background and grid palette.
type Theme string

const (
	Dark  Theme = "dark"
	Light Theme = "light"
)

// ParseTheme accepts "dark" or "light"; anything else is Dark.
func ParseTheme(s string) Theme {
	if Theme(s) == Light {
		return Light
	}
	return Dark
}

// Toggle returns the other theme.
func (t Theme) Toggle() Theme {
	if t == Light {
		return Dark
	}
	return Light
}

// Palette is the set of non-point colors for a theme.
type Palette struct {
	Background color.RGBA
	GridLine   color.RGBA
	GridLabel  color.RGBA
	Boundary   color.RGBA
}

func (t Theme) Palette() Palette {
	if t == Light {
		return Palette{
			Background: rgb(0xff, 0xff, 0xff),
			GridLine:   rgb(0xcc, 0xcc, 0xcc),
			GridLabel:  rgb(0x55, 0x55, 0x55),
			Boundary:   rgb(0x88, 0x88, 0x88),
		}
	}
	return Palette{
		Background: rgb(0x22, 0x22, 0x22),
		GridLine:   rgb(0x44, 0x44, 0x44),
		GridLabel:  rgb(0x88, 0x88, 0x88),
		Boundary:   rgb(0x88, 0x88, 0x88),
	}
}

func rgb(r, g, b uint8) color.RGBA { return color.RGBA{R: r, G: g, B: b, A: 0xff} }
