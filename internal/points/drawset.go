package points

import (
	"math"

	"github.com/dhconnelly/rtreego"

	"mcmap/internal/catalog"
)

// zoomEpsilon is the relative zoom change below which a cached draw set is
// reused.
const zoomEpsilon = 1e-6

// maxCell bounds decimation cell indices to values int64 holds exactly.
const maxCell = 1 << 53

// Group is the decimated points of one visible category.
type Group struct {
	Category catalog.Category
	Style    catalog.Style
	Points   []Point

	tree *rtreego.Rtree
}

// DrawSet is the decimated, visibility-filtered point set for one zoom,
// grouped in category table order.
type DrawSet struct {
	Zoom   float64
	Groups []*Group
}

// Len is the total number of points in the draw set.
func (d *DrawSet) Len() int {
	n := 0
	for _, g := range d.Groups {
		n += len(g.Points)
	}
	return n
}

// Group returns the group for c, or nil when c is hidden or empty.
func (d *DrawSet) Group(c catalog.Category) *Group {
	for _, g := range d.Groups {
		if g.Category == c {
			return g
		}
	}
	return nil
}

// Invalidate forces the next DrawSet call to rebuild. Call it after any style
// or visibility edit.
func (ix *Index) Invalidate() {
	ix.dirty = true
}

// DrawSet returns the decimated draw set for zoom, rebuilding it when the
// index is dirty or zoom moved beyond zoomEpsilon since the last build.
func (ix *Index) DrawSet(zoom float64, table *catalog.Table) *DrawSet {
	if ix.cache != nil && !ix.dirty && sameZoom(ix.cacheZoom, zoom) {
		return ix.cache
	}
	ix.cache = ix.Rebuild(zoom, table)
	ix.cacheZoom = zoom
	ix.dirty = false
	return ix.cache
}

func sameZoom(a, b float64) bool {
	return math.Abs(a-b) <= zoomEpsilon*math.Max(math.Abs(a), math.Abs(b))
}

type cell struct{ x, z int64 }

// Rebuild computes a fresh draw set without touching the cache. Each visible
// category is bucketed on a grid of Style.Size/zoom world units, so the cell
// is constant in screen pixels, and the first point seen in each cell is kept.
func (ix *Index) Rebuild(zoom float64, table *catalog.Table) *DrawSet {
	ds := &DrawSet{Zoom: zoom}
	for _, c := range catalog.All() {
		if !table.Visible(c) {
			continue
		}
		src := ix.byCat[c]
		if len(src) == 0 {
			continue
		}
		style := table.Style(c)
		ds.Groups = append(ds.Groups, &Group{
			Category: c,
			Style:    style,
			Points:   decimate(src, style.Size/zoom),
		})
	}
	return ds
}

func decimate(src []Point, size float64) []Point {
	if !(size > 0) || math.IsInf(size, 0) {
		out := make([]Point, len(src))
		copy(out, src)
		return out
	}
	seen := make(map[cell]struct{}, len(src))
	out := make([]Point, 0, len(src))
	for _, p := range src {
		cx, cz := math.Floor(p.X/size), math.Floor(p.Z/size)
		if math.Abs(cx) > maxCell || math.Abs(cz) > maxCell {
			// No representable cell; keep the point undecimated.
			out = append(out, p)
			continue
		}
		k := cell{int64(cx), int64(cz)}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, p)
	}
	return out
}

type spatialPoint struct {
	Point
}

func (s spatialPoint) Bounds() rtreego.Rect {
	return rtreego.Point{s.X, s.Z}.ToRect(1e-9)
}

// Near returns the group's points within the square of half-side r around
// (wx, wz). Order is unspecified.
func (g *Group) Near(wx, wz, r float64) []Point {
	if len(g.Points) == 0 || !(r > 0) {
		return nil
	}
	if g.tree == nil {
		objs := make([]rtreego.Spatial, len(g.Points))
		for i, p := range g.Points {
			objs[i] = spatialPoint{p}
		}
		g.tree = rtreego.NewTree(2, 25, 50, objs...)
	}
	q, err := rtreego.NewRectFromPoints(rtreego.Point{wx - r, wz - r}, rtreego.Point{wx + r, wz + r})
	if err != nil {
		return nil
	}
	hits := g.tree.SearchIntersect(q)
	out := make([]Point, 0, len(hits))
	for _, h := range hits {
		out = append(out, h.(spatialPoint).Point)
	}
	return out
}
