package tui

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

const (
	sidebarWidth = 28
	headerHeight = 1
	footerHeight = 2
)

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// mapArea is the map's position and size in terminal cells.
type mapArea struct {
	x, y, w, h int
}

func (m Model) mapArea() mapArea {
	contentHeight := max(4, m.height-headerHeight-footerHeight)
	contentWidth := max(10, m.width)
	a := mapArea{y: headerHeight, w: contentWidth, h: contentHeight}
	if m.showSidebar {
		a.x = sidebarWidth + 1
		a.w = contentWidth - sidebarWidth - 1
	}
	a.w = max(10, a.w)
	return a
}

// toMicro maps a terminal cell to the micro-pixel at its center, relative to
// the map origin. in reports whether the cell lies on the map.
func (a mapArea) toMicro(cx, cy int) (mx, my float64, in bool) {
	mx = float64((cx-a.x)*cellW) + cellW/2
	my = float64((cy-a.y)*cellH) + cellH/2
	in = cx >= a.x && cx < a.x+a.w && cy >= a.y && cy < a.y+a.h
	return mx, my, in
}

// parseGoto accepts "x z" or "x y z", separated by spaces or commas.
func parseGoto(s string) (x, z float64, err error) {
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ' ' || r == '\t' })
	vals := make([]float64, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, 0, fmt.Errorf("not a number: %q", f)
		}
		vals = append(vals, v)
	}
	switch len(vals) {
	case 2:
		return vals[0], vals[1], nil
	case 3:
		return vals[0], vals[2], nil
	default:
		return 0, 0, fmt.Errorf("want \"x z\" or \"x y z\", got %d values", len(vals))
	}
}
