package view

import (
	"math"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCenterViewScenario(t *testing.T) {
	v := New(800, 600)
	assert.InDelta(t, 1e-5, v.Zoom(), 1e-18)
	sx, sy := v.WorldToScreen(0, 0)
	assert.InDelta(t, 400, sx, 1e-9)
	assert.InDelta(t, 300, sy, 1e-9)
}

func TestNorthIsUp(t *testing.T) {
	v := New(800, 600)
	v.SetZoom(1)
	_, sNorth := v.WorldToScreen(0, 100)
	_, sSouth := v.WorldToScreen(0, -100)
	assert.Less(t, sNorth, sSouth)
}

func TestRoundTrip(t *testing.T) {
	v := New(1024, 768)
	v.ZoomAt(100, 700, 37.5)
	v.Pan(-123.25, 456.5)
	for _, p := range [][2]float64{{0, 0}, {512, 384}, {1023, 1}, {-50, 900}, {3.5, 7.25}} {
		wx, wz := v.ScreenToWorld(p[0], p[1])
		sx, sy := v.WorldToScreen(wx, wz)
		assert.InDelta(t, p[0], sx, 1e-6)
		assert.InDelta(t, p[1], sy, 1e-6)
	}
}

func TestZoomAnchoring(t *testing.T) {
	factors := []float64{1.1, 0.9, 2, 0.5, 1e3, 1e-3}
	cursors := [][2]float64{{0, 0}, {400, 300}, {799, 599}, {123, 456}}
	for _, f := range factors {
		for _, c := range cursors {
			v := New(800, 600)
			v.ZoomAt(400, 300, 50)
			v.Pan(30, -70)
			bx, bz := v.ScreenToWorld(c[0], c[1])
			v.ZoomAt(c[0], c[1], f)
			ax, az := v.ScreenToWorld(c[0], c[1])
			tol := 1e-9 * math.Max(1, math.Max(math.Abs(bx), math.Abs(bz)))
			assert.InDelta(t, bx, ax, tol, "factor %v cursor %v", f, c)
			assert.InDelta(t, bz, az, tol, "factor %v cursor %v", f, c)
		}
	}
}

func TestZoomClamped(t *testing.T) {
	v := New(800, 600)
	v.ZoomAt(10, 10, 1e12)
	assert.Equal(t, MaxZoom, v.Zoom())
	v.ZoomAt(10, 10, 1e-12)
	assert.Equal(t, v.MinZoom(), v.Zoom())
}

func TestWheelOutStopsAtMinZoom(t *testing.T) {
	v := New(800, 600)
	before := v.Zoom()
	v.ZoomAt(400, 300, 0.9)
	assert.Equal(t, before, v.Zoom())

	v.ZoomAt(400, 300, 4)
	z := v.Zoom()
	v.ZoomAt(400, 300, 0.9)
	assert.InDelta(t, z*0.9, v.Zoom(), 1e-18)
}

func TestDegenerateCanvasKeepsZoomPositive(t *testing.T) {
	v := New(0, 0)
	assert.Greater(t, v.Zoom(), 0.0)
	wx, wz := v.ScreenToWorld(10, 10)
	assert.False(t, math.IsNaN(wx) || math.IsInf(wx, 0))
	assert.False(t, math.IsNaN(wz) || math.IsInf(wz, 0))
	v.ClampPan()
	_, ok := v.GridLines()
	assert.False(t, ok)
}

func TestClampPanKeepsViewInsideWorld(t *testing.T) {
	v := New(800, 600)
	v.ZoomAt(400, 300, 1000)
	pans := [][2]float64{{1e12, 0}, {-3e12, 5e11}, {0, -9e13}, {17, 23}, {2e13, 2e13}}
	for _, p := range pans {
		v.Pan(p[0], p[1])
		v.ClampPan()
		b := v.VisibleBounds()
		assert.GreaterOrEqual(t, b.Min[0], -MapLimit-1e-3)
		assert.LessOrEqual(t, b.Max[0], MapLimit+1e-3)
		assert.GreaterOrEqual(t, b.Min[1], -MapLimit-1e-3)
		assert.LessOrEqual(t, b.Max[1], MapLimit+1e-3)
	}
}

func TestClampPanCentersWideAxis(t *testing.T) {
	v := New(800, 600)
	// At min zoom the 800px axis spans more than the world.
	v.Pan(250, 40)
	v.ClampPan()
	px, py := v.Offset()
	assert.Equal(t, 0.0, px)
	assert.InDelta(t, 0.0, py, 1e-6)

	v.ClampPan()
	px2, _ := v.Offset()
	assert.Equal(t, px, px2)
}

func TestVisibleBounds(t *testing.T) {
	v := New(200, 100)
	v.SetZoom(1)
	v.CenterOn(1000, -500)
	b := v.VisibleBounds()
	assert.InDelta(t, 900, b.Min[0], 1e-9)
	assert.InDelta(t, 1100, b.Max[0], 1e-9)
	assert.InDelta(t, -550, b.Min[1], 1e-9)
	assert.InDelta(t, -450, b.Max[1], 1e-9)
}

func TestFitBounds(t *testing.T) {
	v := New(800, 600)
	b := orb.Bound{Min: orb.Point{-100, -50}, Max: orb.Point{300, 250}}
	v.FitBounds(b, 0)
	assert.InDelta(t, 2.0, v.Zoom(), 1e-12)
	sx, sy := v.WorldToScreen(100, 100)
	assert.InDelta(t, 400, sx, 1e-9)
	assert.InDelta(t, 300, sy, 1e-9)
}

func TestGridSpacing(t *testing.T) {
	for _, z := range []float64{1e-5, 3e-4, 0.01, 0.37, 1, 12, 99} {
		v := New(800, 600)
		v.SetZoom(z)
		s := v.GridSpacing()
		require.Greater(t, s, 0.0)
		exp := math.Log10(s)
		assert.InDelta(t, math.Round(exp), exp, 1e-9, "spacing %v is not a power of ten", s)
		n := 800 / v.Zoom() / s
		assert.GreaterOrEqual(t, n, 10-1e-9)
		assert.Less(t, n, 100.0)
	}
}

func TestGridLinesBounded(t *testing.T) {
	v := New(800, 600)
	v.SetZoom(0.5)
	g, ok := v.GridLines()
	require.True(t, ok)
	assert.NotEmpty(t, g.X)
	assert.NotEmpty(t, g.Z)
	assert.LessOrEqual(t, len(g.X), maxGridLines+1)
	for _, x := range g.X {
		assert.InDelta(t, 0, math.Remainder(x, g.Spacing), 1e-6)
		assert.LessOrEqual(t, math.Abs(x), float64(MapLimit))
	}
}

func TestGridLinesClippedToWorld(t *testing.T) {
	v := New(800, 600)
	g, ok := v.GridLines()
	require.True(t, ok)
	assert.Equal(t, -float64(MapLimit), g.X[0])
	assert.Equal(t, float64(MapLimit), g.X[len(g.X)-1])
}

func TestBoundary(t *testing.T) {
	v := New(800, 600)
	c := v.Boundary()
	assert.InDelta(t, 100, c[0][0], 1e-6)
	assert.InDelta(t, 600, c[0][1], 1e-6)
	assert.InDelta(t, 700, c[2][0], 1e-6)
	assert.InDelta(t, 0, c[2][1], 1e-6)
}
