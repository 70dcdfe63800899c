package view

import (
	"math"

	"github.com/paulmach/orb"
)

const (
	// MapLimit is the half-extent of the world on both horizontal axes.
	MapLimit = 30_000_000

	MaxZoom = 100.0

	// zoomFloor keeps every division by zoom finite, even for a zero-area canvas.
	zoomFloor = 1e-12

	// maxGridLines bounds grid enumeration per axis.
	maxGridLines = 200
)

// Viewport maps world coordinates (X east, Z north) to canvas pixels.
// The zero value is not usable; call New.
type Viewport struct {
	zoom   float64
	panX   float64
	panY   float64
	width  int
	height int
}

// New returns a viewport of the given canvas size, zoomed out to show the
// whole world.
func New(width, height int) *Viewport {
	v := &Viewport{}
	v.Resize(width, height)
	return v
}

func (v *Viewport) Zoom() float64 { return v.zoom }

// Offset returns the screen-space pan applied after centering.
func (v *Viewport) Offset() (float64, float64) { return v.panX, v.panY }

func (v *Viewport) Size() (int, int) { return v.width, v.height }

// Resize changes the canvas size and recenters the view.
func (v *Viewport) Resize(width, height int) {
	v.width = max(0, width)
	v.height = max(0, height)
	v.CenterView()
}

// CenterView resets pan and zooms out so the world fits the shorter canvas side.
func (v *Viewport) CenterView() {
	v.panX, v.panY = 0, 0
	v.zoom = v.MinZoom()
}

// MinZoom is the furthest zoom-out: the world span fills the shorter canvas
// dimension.
func (v *Viewport) MinZoom() float64 {
	z := float64(min(v.width, v.height)) / (2 * MapLimit)
	if z < zoomFloor {
		return zoomFloor
	}
	return z
}

func (v *Viewport) clampZoom(z float64) float64 {
	if math.IsNaN(z) {
		return v.MinZoom()
	}
	return math.Max(v.MinZoom(), math.Min(z, MaxZoom))
}

// SetZoom sets the zoom around the canvas center.
func (v *Viewport) SetZoom(z float64) {
	v.zoomTo(float64(v.width)/2, float64(v.height)/2, z)
}

// WorldToScreen projects a world position onto the canvas. World Z grows
// north, screen Y grows down.
func (v *Viewport) WorldToScreen(wx, wz float64) (float64, float64) {
	sx := wx*v.zoom + float64(v.width)/2 + v.panX
	sy := -wz*v.zoom + float64(v.height)/2 + v.panY
	return sx, sy
}

// ScreenToWorld is the inverse of WorldToScreen.
func (v *Viewport) ScreenToWorld(sx, sy float64) (float64, float64) {
	wx := (sx - float64(v.width)/2 - v.panX) / v.zoom
	wz := -(sy - float64(v.height)/2 - v.panY) / v.zoom
	return wx, wz
}

// ZoomAt scales the zoom by factor, keeping the world point under (sx, sy)
// fixed on screen. The result is clamped to [MinZoom, MaxZoom].
func (v *Viewport) ZoomAt(sx, sy, factor float64) {
	v.zoomTo(sx, sy, v.zoom*factor)
}

func (v *Viewport) zoomTo(sx, sy, z float64) {
	wx, wz := v.ScreenToWorld(sx, sy)
	v.zoom = v.clampZoom(z)
	v.panX = sx - wx*v.zoom - float64(v.width)/2
	v.panY = sy + wz*v.zoom - float64(v.height)/2
}

// Pan moves the view by a screen delta. Clamping is deferred to ClampPan so
// dragging stays responsive.
func (v *Viewport) Pan(dx, dy float64) {
	v.panX += dx
	v.panY += dy
}

// CenterOn pans so the world point (wx, wz) is at the canvas center.
func (v *Viewport) CenterOn(wx, wz float64) {
	v.panX = -wx * v.zoom
	v.panY = wz * v.zoom
}

// ClampPan keeps the visible rectangle inside the world. An axis whose
// visible span covers the whole world is centered.
func (v *Viewport) ClampPan() {
	v.panX = clampAxis(v.panX, float64(v.width)/(2*v.zoom), v.zoom)
	v.panY = clampAxis(v.panY, float64(v.height)/(2*v.zoom), v.zoom)
}

func clampAxis(pan, halfSpan, zoom float64) float64 {
	if halfSpan >= MapLimit {
		return 0
	}
	limit := (MapLimit - halfSpan) * zoom
	return math.Max(-limit, math.Min(limit, pan))
}

// VisibleBounds returns the world rectangle covered by the canvas, with
// X on the first axis and Z on the second.
func (v *Viewport) VisibleBounds() orb.Bound {
	minX, minZ := v.ScreenToWorld(0, float64(v.height))
	maxX, maxZ := v.ScreenToWorld(float64(v.width), 0)
	return orb.Bound{Min: orb.Point{minX, minZ}, Max: orb.Point{maxX, maxZ}}
}

// FitBounds zooms and pans so b fills the canvas, leaving a margin fraction
// on each side.
func (v *Viewport) FitBounds(b orb.Bound, margin float64) {
	w := b.Max[0] - b.Min[0]
	h := b.Max[1] - b.Min[1]
	cx, cz := b.Center()[0], b.Center()[1]
	z := MaxZoom
	if w > 0 {
		z = math.Min(z, float64(v.width)/(w*(1+2*margin)))
	}
	if h > 0 {
		z = math.Min(z, float64(v.height)/(h*(1+2*margin)))
	}
	v.zoom = v.clampZoom(z)
	v.CenterOn(cx, cz)
}
