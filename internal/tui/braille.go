package tui

import (
	"fmt"
	"image/color"
	"math"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"mcmap/internal/render"
)

// brailleCell is one terminal cell: a 2x4 dot mask, the color of the last
// dot drawn into it, and an optional text rune that replaces the dots.
type brailleCell struct {
	mask uint8
	fg   color.RGBA
	text rune
}

// brailleCanvas is a render.Canvas on a micro-pixel grid of 2x4 dots per
// terminal cell. Each cell carries a single foreground color.
type brailleCanvas struct {
	w, h  int // in cells
	cells [][]brailleCell
	bg    color.RGBA
}

func newBrailleCanvas(w, h int) *brailleCanvas {
	w, h = max(0, w), max(0, h)
	cells := make([][]brailleCell, h)
	for i := range cells {
		cells[i] = make([]brailleCell, w)
	}
	return &brailleCanvas{w: w, h: h, cells: cells}
}

// Size is in micro-pixels.
func (b *brailleCanvas) Size() (int, int) { return b.w * 2, b.h * 4 }

func (b *brailleCanvas) Clear(bg color.Color) {
	b.bg = toRGBA(bg)
	for y := range b.cells {
		for x := range b.cells[y] {
			b.cells[y][x] = brailleCell{}
		}
	}
}

var dotBits = [2][4]uint8{
	{0x01, 0x02, 0x04, 0x40},
	{0x08, 0x10, 0x20, 0x80},
}

// setPixel sets a micro-pixel at micro coords (2x4 per cell)
func (b *brailleCanvas) setPixel(mx, my int, c color.RGBA) {
	if mx < 0 || my < 0 {
		return
	}
	cx, rx := mx/2, mx%2
	cy, ry := my/4, my%4
	if cy >= b.h || cx >= b.w {
		return
	}
	cell := &b.cells[cy][cx]
	cell.mask |= dotBits[rx][ry]
	cell.fg = c
}

// Line draws a one micro-pixel wide line; width is ignored at this resolution.
func (b *brailleCanvas) Line(x0, y0, x1, y1, width float64, c color.Color) {
	w, h := b.Size()
	x0, y0, x1, y1, ok := render.ClipLine(x0, y0, x1, y1, 0, 0, float64(w-1), float64(h-1))
	if !ok {
		return
	}
	b.drawLineMicro(int(math.Round(x0)), int(math.Round(y0)), int(math.Round(x1)), int(math.Round(y1)), toRGBA(c))
}

// drawLineMicro draws a line on the microgrid using Bresenham
func (b *brailleCanvas) drawLineMicro(x0, y0, x1, y1 int, c color.RGBA) {
	dx := abs(x1 - x0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -abs(y1 - y0)
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	for {
		b.setPixel(x0, y0, c)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// span clamps [lo, hi] to [0, n).
func span(lo, hi float64, n int) (int, int) {
	a := int(math.Max(0, math.Floor(lo)))
	z := int(math.Min(float64(n-1), math.Ceil(hi)))
	return a, z
}

// FillCircle lights the dots whose centers lie inside the circle. A circle
// smaller than one dot still lights its center dot.
func (b *brailleCanvas) FillCircle(cx, cy, r float64, c color.Color) {
	col := toRGBA(c)
	w, h := b.Size()
	b.setPixel(int(math.Floor(cx)), int(math.Floor(cy)), col)
	x0, x1 := span(cx-r, cx+r, w)
	y0, y1 := span(cy-r, cy+r, h)
	rr := r * r
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			dx, dy := float64(x)+0.5-cx, float64(y)+0.5-cy
			if dx*dx+dy*dy <= rr {
				b.setPixel(x, y, col)
			}
		}
	}
}

func (b *brailleCanvas) FillRect(x0, y0, x1, y1 float64, c color.Color) {
	col := toRGBA(c)
	w, h := b.Size()
	ax, zx := span(math.Min(x0, x1), math.Max(x0, x1), w)
	ay, zy := span(math.Min(y0, y1), math.Max(y0, y1), h)
	for y := ay; y <= zy; y++ {
		for x := ax; x <= zx; x++ {
			b.setPixel(x, y, col)
		}
	}
}

// FillPolygon fills using the even-odd rule per micro scanline.
func (b *brailleCanvas) FillPolygon(pts [][2]float64, c color.Color) {
	if len(pts) < 3 {
		return
	}
	col := toRGBA(c)
	w, h := b.Size()
	minY, maxY := pts[0][1], pts[0][1]
	for _, p := range pts[1:] {
		minY = math.Min(minY, p[1])
		maxY = math.Max(maxY, p[1])
	}
	y0, y1 := span(minY, maxY, h)
	for yMic := y0; yMic <= y1; yMic++ {
		yc := float64(yMic) + 0.5
		var xs []float64
		for i := range pts {
			a := pts[i]
			p := pts[(i+1)%len(pts)]
			if a[1] == p[1] { // horizontal edge: skip
				continue
			}
			if (yc >= a[1] && yc < p[1]) || (yc >= p[1] && yc < a[1]) {
				t := (yc - a[1]) / (p[1] - a[1])
				xs = append(xs, a[0]+t*(p[0]-a[0]))
			}
		}
		sort.Float64s(xs)
		for i := 0; i+1 < len(xs); i += 2 {
			xa, xb := span(xs[i], xs[i+1], w)
			for xMic := xa; xMic <= xb; xMic++ {
				b.setPixel(xMic, yMic, col)
			}
		}
	}
}

// Text writes s starting at the cell containing micro-pixel (x, y).
func (b *brailleCanvas) Text(x, y float64, s string, c color.Color) {
	b.textAt(int(math.Floor(x/2)), int(math.Floor(y/4)), s, toRGBA(c))
}

func (b *brailleCanvas) textAt(cx, cy int, s string, c color.RGBA) {
	if cy < 0 || cy >= b.h {
		return
	}
	for i, r := range []rune(s) {
		x := cx + i
		if x < 0 {
			continue
		}
		if x >= b.w {
			break
		}
		b.cells[cy][x] = brailleCell{text: r, fg: c}
	}
}

func (b *brailleCanvas) glyph(cell brailleCell) rune {
	switch {
	case cell.text != 0:
		return cell.text
	case cell.mask == 0:
		return ' '
	default:
		return rune(0x2800 + int(cell.mask))
	}
}

// plainLines returns the canvas without color, one string per cell row.
func (b *brailleCanvas) plainLines() []string {
	out := make([]string, b.h)
	for y, row := range b.cells {
		rs := make([]rune, len(row))
		for x, cell := range row {
			rs[x] = b.glyph(cell)
		}
		out[y] = string(rs)
	}
	return out
}

// toLines renders each row with lipgloss, grouping runs of equal color.
func (b *brailleCanvas) toLines() []string {
	bg := lipgloss.Color(hexColor(b.bg))
	out := make([]string, b.h)
	for y, row := range b.cells {
		var sb strings.Builder
		var run []rune
		var runFg color.RGBA
		flush := func() {
			if len(run) == 0 {
				return
			}
			st := lipgloss.NewStyle().Background(bg).Foreground(lipgloss.Color(hexColor(runFg)))
			sb.WriteString(st.Render(string(run)))
			run = run[:0]
		}
		for _, cell := range row {
			fg := cell.fg
			if cell.mask == 0 && cell.text == 0 {
				fg = b.bg
			}
			if len(run) > 0 && fg != runFg {
				flush()
			}
			runFg = fg
			run = append(run, b.glyph(cell))
		}
		flush()
		out[y] = sb.String()
	}
	return out
}

func toRGBA(c color.Color) color.RGBA {
	if rgba, ok := c.(color.RGBA); ok {
		return rgba
	}
	r, g, bl, a := c.RGBA()
	return color.RGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(bl >> 8), A: uint8(a >> 8)}
}

func hexColor(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
