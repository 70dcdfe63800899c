package hover

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mcmap/internal/catalog"
	"mcmap/internal/points"
	"mcmap/internal/view"
)

func setup(t *testing.T, rows []points.Row, zoom float64) (*view.Viewport, *points.Index, *catalog.Table) {
	t.Helper()
	vp := view.New(800, 600)
	vp.SetZoom(zoom)
	vp.CenterOn(0, 0)
	ix := points.NewIndex()
	ix.Load(rows)
	return vp, ix, catalog.NewTable()
}

func TestQueryHitsWithinRadius(t *testing.T) {
	vp, ix, tbl := setup(t, []points.Row{{X: "10", Y: "70", Z: "20", Type: "minecraft:pig"}}, 2)
	ds := ix.DrawSet(vp.Zoom(), tbl)
	sx, sy := vp.WorldToScreen(10, 20)

	p, ok := Query(sx, sy, vp, ds, tbl)
	require.True(t, ok)
	assert.Equal(t, catalog.Pigs, p.Category)

	// pig size 4 at zoom 2: hit radius 2.5 world units, 5 px.
	_, ok = Query(sx+4.9, sy, vp, ds, tbl)
	assert.True(t, ok)
	_, ok = Query(sx+5.1, sy, vp, ds, tbl)
	assert.False(t, ok)
}

func TestQueryMissReportsNothing(t *testing.T) {
	vp, ix, tbl := setup(t, []points.Row{{X: "0", Z: "0", Type: "pig"}}, 1)
	_, ok := Query(10, 10, vp, ix.DrawSet(vp.Zoom(), tbl), tbl)
	assert.False(t, ok)
}

func TestQueryEmptySet(t *testing.T) {
	vp, ix, tbl := setup(t, nil, 1)
	_, ok := Query(400, 300, vp, ix.DrawSet(vp.Zoom(), tbl), tbl)
	assert.False(t, ok)
	_, ok = Query(400, 300, vp, nil, tbl)
	assert.False(t, ok)
}

func TestQueryTieBreakFirstInserted(t *testing.T) {
	rows := []points.Row{
		{X: "0", Z: "0", Type: "minecraft:pig"},
		{X: "1.5", Z: "0", Type: "minecraft:pig"},
		{X: "0.5", Z: "0", Type: "chest"},
	}
	// pig size 4 at zoom 4: 1-unit cells, 1.25-unit hit radius.
	vp, ix, tbl := setup(t, rows, 4)
	ds := ix.DrawSet(vp.Zoom(), tbl)
	require.Equal(t, 3, ds.Len())
	sx, sy := vp.WorldToScreen(0.9, 0)
	p, ok := Query(sx, sy, vp, ds, tbl)
	require.True(t, ok)
	assert.Equal(t, 0, p.Seq)

	// Chests precede pigs in table order but the pig was inserted first.
	rows = []points.Row{
		{X: "1", Z: "0", Type: "minecraft:pig"},
		{X: "0", Z: "0", Type: "chest"},
	}
	vp, ix, tbl = setup(t, rows, 4)
	ds = ix.DrawSet(vp.Zoom(), tbl)
	sx, sy = vp.WorldToScreen(0.5, 0)
	p, ok = Query(sx, sy, vp, ds, tbl)
	require.True(t, ok)
	assert.Equal(t, catalog.Pigs, p.Category)
}

func TestQueryVisibility(t *testing.T) {
	rows := []points.Row{
		{X: "0", Z: "0", Type: "pig"},
		{X: "0", Z: "0", Type: "chest"},
	}
	vp, ix, tbl := setup(t, rows, 4)
	sx, sy := vp.WorldToScreen(0, 0)

	p, ok := Query(sx, sy, vp, ix.DrawSet(vp.Zoom(), tbl), tbl)
	require.True(t, ok)
	assert.Equal(t, catalog.Pigs, p.Category)

	require.NoError(t, tbl.SetVisible(catalog.Pigs, false))
	ix.Invalidate()
	p, ok = Query(sx, sy, vp, ix.DrawSet(vp.Zoom(), tbl), tbl)
	require.True(t, ok)
	assert.Equal(t, catalog.Chests, p.Category)

	require.NoError(t, tbl.SetVisible(catalog.Chests, false))
	ix.Invalidate()
	_, ok = Query(sx, sy, vp, ix.DrawSet(vp.Zoom(), tbl), tbl)
	assert.False(t, ok)

	require.NoError(t, tbl.SetVisible(catalog.Pigs, true))
	ix.Invalidate()
	p, ok = Query(sx, sy, vp, ix.DrawSet(vp.Zoom(), tbl), tbl)
	require.True(t, ok)
	assert.Equal(t, 0, p.Seq)
}

func TestQueryUsesDecimatedSet(t *testing.T) {
	rows := []points.Row{
		{X: "0", Z: "0", Type: "pig"},
		{X: "1", Z: "1", Type: "pig"},
	}
	vp, ix, tbl := setup(t, rows, 0.01)
	ds := ix.DrawSet(vp.Zoom(), tbl)
	require.Equal(t, 1, ds.Len())
	sx, sy := vp.WorldToScreen(1, 1)
	p, ok := Query(sx, sy, vp, ds, tbl)
	require.True(t, ok)
	assert.Equal(t, 0, p.Seq)
}

func TestTooltip(t *testing.T) {
	txt := Tooltip(points.Point{X: 1, Y: math.NaN(), Z: -2.5, Category: catalog.Pigs, Label: "minecraft:pig"})
	assert.Equal(t, "Type: minecraft:pig\nCategory: pigs\nX: 1\nY: ?\nZ: -2.5", txt)
}
