package points

import (
	"math"
	"strconv"
	"strings"

	"github.com/paulmach/orb"

	"mcmap/internal/catalog"
)

// Row is one raw record as supplied by a loader.
type Row struct {
	X, Y, Z, Type string
}

// Point is an immutable world position. Y is elevation and is NaN when the
// source value was not numeric. Seq is the point's position among accepted
// rows and orders ties between overlapping points.
type Point struct {
	X, Y, Z  float64
	Category catalog.Category
	Label    string
	Seq      int
}

// Index holds the loaded point set and caches the decimated draw set for the
// most recent zoom.
type Index struct {
	points  []Point
	byCat   map[catalog.Category][]Point
	bounds  orb.Bound
	dropped int

	cache     *DrawSet
	cacheZoom float64
	dirty     bool
}

func NewIndex() *Index {
	return &Index{byCat: map[catalog.Category][]Point{}, dirty: true}
}

// Load replaces the point set with rows. Rows whose X or Z is not a finite
// number are dropped. It returns the number of accepted and dropped rows.
func (ix *Index) Load(rows []Row) (accepted, dropped int) {
	ix.points = nil
	ix.byCat = map[catalog.Category][]Point{}
	for _, r := range rows {
		x, okx := parseCoord(r.X)
		z, okz := parseCoord(r.Z)
		if !okx || !okz {
			dropped++
			continue
		}
		y, oky := parseCoord(r.Y)
		if !oky {
			y = math.NaN()
		}
		p := Point{
			X:        x,
			Y:        y,
			Z:        z,
			Category: catalog.Normalize(r.Type),
			Label:    strings.TrimSpace(r.Type),
			Seq:      len(ix.points),
		}
		ix.points = append(ix.points, p)
		ix.byCat[p.Category] = append(ix.byCat[p.Category], p)
		if p.Seq == 0 {
			ix.bounds = orb.Bound{Min: orb.Point{x, z}, Max: orb.Point{x, z}}
		} else {
			ix.bounds = ix.bounds.Extend(orb.Point{x, z})
		}
	}
	ix.dropped = dropped
	ix.Invalidate()
	return len(ix.points), dropped
}

func parseCoord(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

func (ix *Index) Len() int     { return len(ix.points) }
func (ix *Index) Dropped() int { return ix.dropped }

// Points returns every loaded point in insertion order.
func (ix *Index) Points() []Point { return ix.points }

// Bounds is the world bounding box of all points (X, Z). ok is false when
// the index is empty.
func (ix *Index) Bounds() (b orb.Bound, ok bool) {
	return ix.bounds, len(ix.points) > 0
}

// Counts returns the number of loaded points per category.
func (ix *Index) Counts() map[catalog.Category]int {
	out := make(map[catalog.Category]int, len(ix.byCat))
	for c, ps := range ix.byCat {
		out[c] = len(ps)
	}
	return out
}
