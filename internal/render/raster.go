package render

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"
	"sort"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Raster is a Canvas backed by an RGBA image.
type Raster struct {
	img *image.RGBA
}

func NewRaster(w, h int) *Raster {
	return &Raster{img: image.NewRGBA(image.Rect(0, 0, max(0, w), max(0, h)))}
}

func (r *Raster) Image() *image.RGBA { return r.img }

func (r *Raster) Size() (int, int) {
	b := r.img.Bounds()
	return b.Dx(), b.Dy()
}

// EncodePNG writes the current frame as PNG.
func (r *Raster) EncodePNG(w io.Writer) error {
	return png.Encode(w, r.img)
}

func (r *Raster) Clear(bg color.Color) {
	draw.Draw(r.img, r.img.Bounds(), &image.Uniform{C: bg}, image.Point{}, draw.Src)
}

func (r *Raster) FillRect(x0, y0, x1, y1 float64, c color.Color) {
	rect := image.Rect(int(math.Round(x0)), int(math.Round(y0)), int(math.Round(x1)), int(math.Round(y1)))
	rect = rect.Intersect(r.img.Bounds())
	if rect.Empty() {
		return
	}
	draw.Draw(r.img, rect, &image.Uniform{C: c}, image.Point{}, draw.Over)
}

func (r *Raster) FillCircle(cx, cy, rad float64, c color.Color) {
	w, h := r.Size()
	y0 := max(0, int(math.Floor(cy-rad)))
	y1 := min(h-1, int(math.Ceil(cy+rad)))
	x0 := max(0, int(math.Floor(cx-rad)))
	x1 := min(w-1, int(math.Ceil(cx+rad)))
	rr := rad * rad
	for y := y0; y <= y1; y++ {
		dy := float64(y) + 0.5 - cy
		for x := x0; x <= x1; x++ {
			dx := float64(x) + 0.5 - cx
			if dx*dx+dy*dy <= rr {
				r.img.Set(x, y, c)
			}
		}
	}
}

// FillPolygon fills with the even-odd rule, sampling pixel centers per scanline.
func (r *Raster) FillPolygon(pts [][2]float64, c color.Color) {
	if len(pts) < 3 {
		return
	}
	w, h := r.Size()
	minY, maxY := pts[0][1], pts[0][1]
	for _, p := range pts[1:] {
		minY = math.Min(minY, p[1])
		maxY = math.Max(maxY, p[1])
	}
	ys := max(0, int(math.Floor(minY)))
	ye := min(h-1, int(math.Ceil(maxY)))
	for y := ys; y <= ye; y++ {
		fy := float64(y) + 0.5
		var xs []float64
		for i := range pts {
			a := pts[i]
			b := pts[(i+1)%len(pts)]
			if a[1] == b[1] {
				continue
			}
			if (fy >= a[1] && fy < b[1]) || (fy >= b[1] && fy < a[1]) {
				t := (fy - a[1]) / (b[1] - a[1])
				xs = append(xs, a[0]+t*(b[0]-a[0]))
			}
		}
		sort.Float64s(xs)
		for i := 0; i+1 < len(xs); i += 2 {
			xstart := max(0, int(math.Ceil(xs[i]-0.5)))
			xend := min(w-1, int(math.Floor(xs[i+1]-0.5)))
			for x := xstart; x <= xend; x++ {
				r.img.Set(x, y, c)
			}
		}
	}
}

// Line draws a segment of the given width with Bresenham, stamping a square
// brush at every step.
func (r *Raster) Line(x0, y0, x1, y1, width float64, c color.Color) {
	w, h := r.Size()
	pad := width + 1
	x0, y0, x1, y1, ok := ClipLine(x0, y0, x1, y1, -pad, -pad, float64(w)+pad, float64(h)+pad)
	if !ok {
		return
	}
	half := max(0, int(math.Round(width))-1) / 2
	extra := max(0, int(math.Round(width))-1) - half
	ix0, iy0 := int(math.Round(x0)), int(math.Round(y0))
	ix1, iy1 := int(math.Round(x1)), int(math.Round(y1))
	bresenham(ix0, iy0, ix1, iy1, func(x, y int) {
		for by := y - half; by <= y+extra; by++ {
			for bx := x - half; bx <= x+extra; bx++ {
				if bx >= 0 && by >= 0 && bx < w && by < h {
					r.img.Set(bx, by, c)
				}
			}
		}
	})
}

// Text draws s with its baseline at y.
func (r *Raster) Text(x, y float64, s string, c color.Color) {
	d := &font.Drawer{
		Dst:  r.img,
		Src:  image.NewUniform(c),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(int(math.Round(x)), int(math.Round(y))),
	}
	d.DrawString(s)
}

func bresenham(x0, y0, x1, y1 int, plot func(x, y int)) {
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
		plot(x0, y0)
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

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
