package hover

import (
	"fmt"
	"math"
	"strings"

	"mcmap/internal/catalog"
	"mcmap/internal/points"
	"mcmap/internal/view"
)

// HitScale widens a marker's radius into its hover radius.
const HitScale = 1.25

// Query returns the point under the screen position (sx, sy). A point is hit
// when its world distance to the cursor is below Style.Size*HitScale/zoom.
// Among overlapping hits the point that came first in the source data wins.
// Hidden categories are never considered.
func Query(sx, sy float64, vp *view.Viewport, ds *points.DrawSet, table *catalog.Table) (points.Point, bool) {
	if ds == nil || vp.Zoom() <= 0 {
		return points.Point{}, false
	}
	wx, wz := vp.ScreenToWorld(sx, sy)
	var best points.Point
	found := false
	for _, g := range ds.Groups {
		if !table.Visible(g.Category) {
			continue
		}
		r := g.Style.Size * HitScale / vp.Zoom()
		rr := r * r
		for _, p := range g.Near(wx, wz, r) {
			dx, dz := wx-p.X, wz-p.Z
			if dx*dx+dz*dz >= rr {
				continue
			}
			if !found || p.Seq < best.Seq {
				best, found = p, true
			}
		}
	}
	return best, found
}

// Tooltip formats the text shown for p.
func Tooltip(p points.Point) string {
	lines := []string{
		"Type: " + p.Label,
		"Category: " + string(p.Category),
		fmt.Sprintf("X: %s", coord(p.X)),
		fmt.Sprintf("Y: %s", coord(p.Y)),
		fmt.Sprintf("Z: %s", coord(p.Z)),
	}
	return strings.Join(lines, "\n")
}

func coord(v float64) string {
	if math.IsNaN(v) {
		return "?"
	}
	return fmt.Sprintf("%g", v)
}
