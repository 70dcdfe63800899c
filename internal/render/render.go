package render

import (
	"image/color"
	"strconv"

	"mcmap/internal/catalog"
	"mcmap/internal/points"
	"mcmap/internal/view"
)

// labelThreshold is the minimum on-screen grid spacing, in pixels, for
// coordinate labels to be drawn.
const labelThreshold = 50

// Options are the per-frame switches read from the UI controls.
type Options struct {
	Theme    Theme
	ShowGrid bool
	// Scale multiplies line widths and label offsets; the terminal canvas
	// uses it to account for its micro-pixel resolution.
	Scale float64
}

// Render draws one frame: background, optional grid and boundary, then every
// point of ds that intersects the canvas.
func Render(cv Canvas, vp *view.Viewport, ds *points.DrawSet, opts Options) {
	if opts.Scale <= 0 {
		opts.Scale = 1
	}
	pal := opts.Theme.Palette()
	cv.Clear(pal.Background)
	if opts.ShowGrid {
		drawGrid(cv, vp, pal, opts.Scale)
	}
	if ds == nil {
		return
	}
	w, h := cv.Size()
	for _, g := range ds.Groups {
		col := g.Style.RGBA()
		size := g.Style.Size
		for _, p := range g.Points {
			sx, sy := vp.WorldToScreen(p.X, p.Z)
			if sx+size < 0 || sx-size > float64(w) || sy+size < 0 || sy-size > float64(h) {
				continue
			}
			drawMarker(cv, g.Style.Shape, sx, sy, size, col, opts.Scale)
		}
	}
}

func drawMarker(cv Canvas, shape catalog.Shape, sx, sy, size float64, c color.Color, scale float64) {
	switch shape {
	case catalog.Square:
		cv.FillRect(sx-size, sy-size, sx+size, sy+size, c)
	case catalog.Triangle:
		cv.FillPolygon([][2]float64{
			{sx, sy - size},
			{sx + size, sy + size},
			{sx - size, sy + size},
		}, c)
	case catalog.Cross:
		cv.Line(sx-size, sy-size, sx+size, sy+size, 2*scale, c)
		cv.Line(sx+size, sy-size, sx-size, sy+size, 2*scale, c)
	default:
		cv.FillCircle(sx, sy, size, c)
	}
}

func drawGrid(cv Canvas, vp *view.Viewport, pal Palette, scale float64) {
	grid, ok := vp.GridLines()
	if !ok {
		return
	}
	w, h := cv.Size()
	labels := grid.Spacing*vp.Zoom() >= labelThreshold*scale
	for _, x := range grid.X {
		sx, _ := vp.WorldToScreen(x, 0)
		cv.Line(sx, 0, sx, float64(h), scale, pal.GridLine)
		if labels {
			cv.Text(sx+2*scale, 12*scale, "X: "+gridLabel(x), pal.GridLabel)
		}
	}
	for _, z := range grid.Z {
		_, sy := vp.WorldToScreen(0, z)
		cv.Line(0, sy, float64(w), sy, scale, pal.GridLine)
		if labels {
			cv.Text(2*scale, sy-4*scale, "Z: "+gridLabel(z), pal.GridLabel)
		}
	}
	b := vp.Boundary()
	for i := range b {
		a, n := b[i], b[(i+1)%len(b)]
		cv.Line(a[0], a[1], n[0], n[1], 2*scale, pal.Boundary)
	}
}

// gridLabel prints a grid coordinate in plain decimal.
func gridLabel(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
