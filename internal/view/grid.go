package view

import "math"

// GridSpacing returns the world distance between grid lines: a power of ten
// chosen so the longest canvas side spans 10 to 100 lines at any zoom.
func (v *Viewport) GridSpacing() float64 {
	span := float64(max(v.width, v.height)) / v.zoom
	if !(span > 0) || math.IsInf(span, 0) {
		return 0
	}
	return math.Pow(10, math.Floor(math.Log10(span/10)))
}

// Grid is the set of grid line positions in world units.
type Grid struct {
	Spacing float64
	X       []float64 // vertical lines
	Z       []float64 // horizontal lines
}

// GridLines enumerates the grid lines that fall inside the canvas and the
// world limit. It reports false when either axis would need more than
// maxGridLines lines; callers skip the grid for that frame.
func (v *Viewport) GridLines() (Grid, bool) {
	spacing := v.GridSpacing()
	if !(spacing > 0) {
		return Grid{}, false
	}
	left, top := v.ScreenToWorld(0, 0)
	right, bottom := v.ScreenToWorld(float64(v.width), float64(v.height))

	startX := math.Max(math.Floor(left/spacing)*spacing, -MapLimit)
	endX := math.Min(math.Ceil(right/spacing)*spacing, MapLimit)
	startZ := math.Max(math.Floor(bottom/spacing)*spacing, -MapLimit)
	endZ := math.Min(math.Ceil(top/spacing)*spacing, MapLimit)

	if (endX-startX)/spacing > maxGridLines || (endZ-startZ)/spacing > maxGridLines {
		return Grid{}, false
	}
	return Grid{
		Spacing: spacing,
		X:       steps(startX, endX, spacing),
		Z:       steps(startZ, endZ, spacing),
	}, true
}

// steps multiplies instead of accumulating so positions stay exact multiples.
func steps(start, end, spacing float64) []float64 {
	if end < start {
		return nil
	}
	n := int(math.Round((end-start)/spacing)) + 1
	out := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		p := start + float64(i)*spacing
		if p > end+spacing/2 {
			break
		}
		out = append(out, p)
	}
	return out
}

// Boundary returns the screen positions of the world limit corners in
// drawing order: south-west, south-east, north-east, north-west.
func (v *Viewport) Boundary() [4][2]float64 {
	corners := [4][2]float64{
		{-MapLimit, -MapLimit},
		{MapLimit, -MapLimit},
		{MapLimit, MapLimit},
		{-MapLimit, MapLimit},
	}
	var out [4][2]float64
	for i, c := range corners {
		out[i][0], out[i][1] = v.WorldToScreen(c[0], c[1])
	}
	return out
}
