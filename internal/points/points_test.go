package points

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mcmap/internal/catalog"
)

func pigTable(size float64) *catalog.Table {
	t := catalog.NewTable()
	_ = t.SetStyle(catalog.Pigs, catalog.Style{Color: "#ff9ff3", Size: size, Shape: catalog.Circle})
	return t
}

func TestLoadNormalizesAndDrops(t *testing.T) {
	ix := NewIndex()
	acc, drop := ix.Load([]Row{
		{X: "10", Y: "64", Z: "-20", Type: "minecraft:pig"},
		{X: "abc", Y: "64", Z: "1", Type: "Chest"},
		{X: "1", Y: "64", Z: "", Type: "Chest"},
		{X: " 5.5 ", Y: "n/a", Z: "7", Type: "Chest"},
		{X: "NaN", Y: "1", Z: "1", Type: "Chest"},
		{X: "3", Y: "1", Z: "4", Type: "minecraft:creeper"},
	})
	assert.Equal(t, 3, acc)
	assert.Equal(t, 3, drop)
	require.Equal(t, 3, ix.Len())

	pts := ix.Points()
	assert.Equal(t, catalog.Pigs, pts[0].Category)
	assert.Equal(t, "minecraft:pig", pts[0].Label)
	assert.Equal(t, catalog.Chests, pts[1].Category)
	assert.Equal(t, 5.5, pts[1].X)
	assert.True(t, math.IsNaN(pts[1].Y))
	assert.Equal(t, catalog.Unknown, pts[2].Category)
	for i, p := range pts {
		assert.Equal(t, i, p.Seq)
	}

	b, ok := ix.Bounds()
	require.True(t, ok)
	assert.Equal(t, 3.0, b.Min[0])
	assert.Equal(t, 10.0, b.Max[0])
	assert.Equal(t, -20.0, b.Min[1])
	assert.Equal(t, 7.0, b.Max[1])

	counts := ix.Counts()
	assert.Equal(t, 1, counts[catalog.Pigs])
	assert.Equal(t, 1, counts[catalog.Chests])
}

func TestEmptyIndex(t *testing.T) {
	ix := NewIndex()
	_, ok := ix.Bounds()
	assert.False(t, ok)
	ds := ix.DrawSet(1, catalog.NewTable())
	assert.Equal(t, 0, ds.Len())
	assert.Empty(t, ds.Groups)
}

func TestPigBucketScenario(t *testing.T) {
	ix := NewIndex()
	ix.Load([]Row{
		{X: "0", Y: "64", Z: "0", Type: "minecraft:pig"},
		{X: "1", Y: "64", Z: "1", Type: "minecraft:pig"},
	})
	ds := ix.DrawSet(0.01, pigTable(4))
	g := ds.Group(catalog.Pigs)
	require.NotNil(t, g)
	require.Len(t, g.Points, 1)
	assert.Equal(t, 0, g.Points[0].Seq)
}

func TestDecimationSeparatesAtHighZoom(t *testing.T) {
	ix := NewIndex()
	ix.Load([]Row{
		{X: "0", Z: "0", Type: "pig"},
		{X: "1", Z: "1", Type: "pig"},
	})
	ds := ix.DrawSet(10, pigTable(4))
	assert.Len(t, ds.Group(catalog.Pigs).Points, 2)
}

func TestDecimationKeepsFirstSeen(t *testing.T) {
	ix := NewIndex()
	ix.Load([]Row{
		{X: "150", Z: "10", Type: "pig"},
		{X: "120", Z: "20", Type: "pig"},
		{X: "-5", Z: "-5", Type: "pig"},
		{X: "199", Z: "99", Type: "pig"},
		{X: "-1", Z: "-99", Type: "pig"},
	})
	// size 4 at zoom 0.04 gives 100-unit cells.
	g := ix.DrawSet(0.04, pigTable(4)).Group(catalog.Pigs)
	require.NotNil(t, g)
	seqs := []int{}
	for _, p := range g.Points {
		seqs = append(seqs, p.Seq)
	}
	assert.Equal(t, []int{0, 2}, seqs)
}

func manyRows(n int) []Row {
	rows := make([]Row, 0, n)
	types := []string{"minecraft:pig", "Chest", "minecraft:oak_sign", "zombie"}
	for i := 0; i < n; i++ {
		rows = append(rows, Row{
			X:    fmt.Sprint((i * 7919) % 5000),
			Y:    "64",
			Z:    fmt.Sprint((i * 104729) % 5000),
			Type: types[i%len(types)],
		})
	}
	return rows
}

func TestDecimationIdempotent(t *testing.T) {
	ix := NewIndex()
	ix.Load(manyRows(2000))
	tbl := catalog.NewTable()
	// Cells of 3000 to 4000 blocks over a 5000 block square.
	a := ix.Rebuild(0.001, tbl)
	b := ix.Rebuild(0.001, tbl)
	require.Equal(t, len(a.Groups), len(b.Groups))
	for i := range a.Groups {
		assert.Equal(t, a.Groups[i].Category, b.Groups[i].Category)
		assert.Equal(t, a.Groups[i].Points, b.Groups[i].Points)
	}
	assert.Less(t, a.Len(), 100)
	assert.Greater(t, a.Len(), 0)
}

func TestDecimationHugeCoordinates(t *testing.T) {
	ix := NewIndex()
	ix.Load([]Row{
		{X: "1e17", Z: "0", Type: "minecraft:pig"},
		{X: "2e17", Z: "0", Type: "minecraft:pig"},
		{X: "-1e18", Z: "5", Type: "minecraft:pig"},
	})
	ds := ix.Rebuild(100, catalog.NewTable())
	assert.Equal(t, 3, ds.Len())
}

func TestDrawSetCaching(t *testing.T) {
	ix := NewIndex()
	ix.Load(manyRows(100))
	tbl := catalog.NewTable()

	first := ix.DrawSet(0.5, tbl)
	assert.Same(t, first, ix.DrawSet(0.5, tbl))
	assert.Same(t, first, ix.DrawSet(0.5*(1+1e-9), tbl))
	assert.NotSame(t, first, ix.DrawSet(0.6, tbl))

	cur := ix.DrawSet(0.6, tbl)
	ix.Invalidate()
	assert.NotSame(t, cur, ix.DrawSet(0.6, tbl))
}

func TestVisibilityFiltersDrawSet(t *testing.T) {
	ix := NewIndex()
	ix.Load(manyRows(400))
	tbl := catalog.NewTable()

	before := ix.DrawSet(1, tbl)
	require.NotNil(t, before.Group(catalog.Pigs))
	pigs := append([]Point(nil), before.Group(catalog.Pigs).Points...)

	require.NoError(t, tbl.SetVisible(catalog.Pigs, false))
	ix.Invalidate()
	hidden := ix.DrawSet(1, tbl)
	assert.Nil(t, hidden.Group(catalog.Pigs))
	for _, g := range hidden.Groups {
		for _, p := range g.Points {
			assert.NotEqual(t, catalog.Pigs, p.Category)
		}
	}

	require.NoError(t, tbl.SetVisible(catalog.Pigs, true))
	ix.Invalidate()
	restored := ix.DrawSet(1, tbl)
	require.NotNil(t, restored.Group(catalog.Pigs))
	assert.Equal(t, pigs, restored.Group(catalog.Pigs).Points)
}

func TestGroupsFollowCategoryOrder(t *testing.T) {
	ix := NewIndex()
	ix.Load(manyRows(40))
	ds := ix.DrawSet(1, catalog.NewTable())
	order := map[catalog.Category]int{}
	for i, c := range catalog.All() {
		order[c] = i
	}
	for i := 1; i < len(ds.Groups); i++ {
		assert.Less(t, order[ds.Groups[i-1].Category], order[ds.Groups[i].Category])
	}
}

func TestGroupNear(t *testing.T) {
	ix := NewIndex()
	ix.Load([]Row{
		{X: "0", Z: "0", Type: "pig"},
		{X: "10", Z: "0", Type: "pig"},
		{X: "100", Z: "100", Type: "pig"},
	})
	g := ix.DrawSet(100, pigTable(1)).Group(catalog.Pigs)
	require.NotNil(t, g)
	near := g.Near(1, 0, 2)
	require.Len(t, near, 1)
	assert.Equal(t, 0, near[0].Seq)

	assert.Len(t, g.Near(5, 0, 6), 2)
	assert.Empty(t, g.Near(50, 50, 1))
}
