// Package viewer ties the viewport, point index, style table and renderer
// together behind device-level input handlers. Surfaces (terminal, HTTP)
// translate their events into these calls and supply a Canvas to draw on.
package viewer

import (
	"fmt"

	"mcmap/internal/catalog"
	"mcmap/internal/hover"
	"mcmap/internal/points"
	"mcmap/internal/prefs"
	"mcmap/internal/render"
	"mcmap/internal/view"
)

// Button identifies a pointer button.
type Button int

const (
	Primary Button = iota
	Middle
	Secondary
)

// Wheel zoom factors.
const (
	ZoomOutFactor = 0.9
	ZoomInFactor  = 1.1
)

// fitMargin is the fraction of the data extent left free on each side by FitData.
const fitMargin = 0.05

// Tooltip is the surface that displays hover information.
type Tooltip interface {
	Show(x, y float64, text string)
	Hide()
}

// Store persists preferences. *prefs.Store satisfies it.
type Store interface {
	Save(prefs.Prefs) error
}

type nopTooltip struct{}

func (nopTooltip) Show(float64, float64, string) {}
func (nopTooltip) Hide()                         {}

// Viewer is the single owner of the map state. It is not safe for concurrent
// use; callers serialise access.
type Viewer struct {
	vp       *view.Viewport
	index    *points.Index
	table    *catalog.Table
	theme    render.Theme
	showGrid bool
	scale    float64

	tooltip Tooltip
	store   Store

	dragging     bool
	dragButton   Button
	lastX, lastY float64

	mouseX, mouseY float64
	mouseIn        bool
}

// New returns a viewer for a width x height canvas with the given
// preferences applied. It starts empty; call Load to add points.
func New(width, height int, p prefs.Prefs) *Viewer {
	return &Viewer{
		vp:       view.New(width, height),
		index:    points.NewIndex(),
		table:    p.Table(),
		theme:    render.ParseTheme(string(p.Theme)),
		showGrid: p.ShowGrid,
		scale:    1,
		tooltip:  nopTooltip{},
	}
}

// SetTooltip sets the hover surface. nil disables tooltips.
func (v *Viewer) SetTooltip(t Tooltip) {
	if t == nil {
		t = nopTooltip{}
	}
	v.tooltip = t
}

// SetStore enables persistence of style, visibility, theme and grid edits.
func (v *Viewer) SetStore(s Store) { v.store = s }

// SetScale sets the line width and label offset multiplier passed to the renderer.
func (v *Viewer) SetScale(s float64) { v.scale = s }

func (v *Viewer) Viewport() *view.Viewport { return v.vp }
func (v *Viewer) Index() *points.Index     { return v.index }
func (v *Viewer) Theme() render.Theme      { return v.theme }
func (v *Viewer) ShowGrid() bool           { return v.showGrid }

// Load replaces the point set.
func (v *Viewer) Load(rows []points.Row) (accepted, dropped int) {
	accepted, dropped = v.index.Load(rows)
	v.tooltip.Hide()
	return accepted, dropped
}

// Resize changes the canvas size and recenters the view.
func (v *Viewer) Resize(width, height int) {
	w, h := v.vp.Size()
	if w == width && h == height {
		return
	}
	v.vp.Resize(width, height)
	v.tooltip.Hide()
}

// Wheel zooms around (x, y). A positive deltaY zooms out.
func (v *Viewer) Wheel(x, y, deltaY float64) {
	factor := ZoomInFactor
	if deltaY > 0 {
		factor = ZoomOutFactor
	}
	v.vp.ZoomAt(x, y, factor)
	v.vp.ClampPan()
	v.mouseX, v.mouseY, v.mouseIn = x, y, true
	v.refreshHover()
}

// PointerDown starts a drag for the middle and secondary buttons.
func (v *Viewer) PointerDown(x, y float64, b Button) {
	v.mouseX, v.mouseY, v.mouseIn = x, y, true
	if b != Middle && b != Secondary {
		return
	}
	v.dragging = true
	v.dragButton = b
	v.lastX, v.lastY = x, y
	v.tooltip.Hide()
}

// PointerMove pans while dragging and otherwise updates the tooltip.
func (v *Viewer) PointerMove(x, y float64) {
	v.mouseX, v.mouseY, v.mouseIn = x, y, true
	if v.dragging {
		v.vp.Pan(x-v.lastX, y-v.lastY)
		v.lastX, v.lastY = x, y
		return
	}
	v.refreshHover()
}

// PointerUp ends a drag started with b.
func (v *Viewer) PointerUp(b Button) {
	if v.dragging && b == v.dragButton {
		v.dragging = false
		v.vp.ClampPan()
		v.refreshHover()
	}
}

// PointerLeave hides the tooltip and cancels any drag.
func (v *Viewer) PointerLeave() {
	v.mouseIn = false
	v.dragging = false
	v.tooltip.Hide()
}

func (v *Viewer) Dragging() bool { return v.dragging }

// CursorWorld returns the world position under the pointer.
func (v *Viewer) CursorWorld() (wx, wz float64, ok bool) {
	if !v.mouseIn {
		return 0, 0, false
	}
	wx, wz = v.vp.ScreenToWorld(v.mouseX, v.mouseY)
	return wx, wz, true
}

// Hover resolves the point under (x, y) without touching the tooltip.
func (v *Viewer) Hover(x, y float64) (points.Point, bool) {
	return hover.Query(x, y, v.vp, v.DrawSet(), v.table)
}

func (v *Viewer) refreshHover() {
	if !v.mouseIn {
		v.tooltip.Hide()
		return
	}
	p, ok := v.Hover(v.mouseX, v.mouseY)
	if !ok {
		v.tooltip.Hide()
		return
	}
	v.tooltip.Show(v.mouseX, v.mouseY, hover.Tooltip(p))
}

// PanBy moves the view by a screen delta and clamps it.
func (v *Viewer) PanBy(dx, dy float64) {
	v.vp.Pan(dx, dy)
	v.vp.ClampPan()
	v.tooltip.Hide()
}

// ZoomCenter zooms by factor around the canvas center.
func (v *Viewer) ZoomCenter(factor float64) {
	w, h := v.vp.Size()
	v.vp.ZoomAt(float64(w)/2, float64(h)/2, factor)
	v.vp.ClampPan()
	v.tooltip.Hide()
}

func (v *Viewer) CenterView() {
	v.vp.CenterView()
	v.tooltip.Hide()
}

// FitData frames the loaded points. With no points it behaves like CenterView.
func (v *Viewer) FitData() {
	b, ok := v.index.Bounds()
	if !ok {
		v.CenterView()
		return
	}
	v.vp.FitBounds(b, fitMargin)
	v.vp.ClampPan()
	v.tooltip.Hide()
}

// GoTo centers the view on a world position at the current zoom.
func (v *Viewer) GoTo(wx, wz float64) {
	v.vp.CenterOn(wx, wz)
	v.vp.ClampPan()
	v.tooltip.Hide()
}

func (v *Viewer) ToggleTheme() error {
	v.theme = v.theme.Toggle()
	return v.persist()
}

func (v *Viewer) ToggleGrid() error {
	v.showGrid = !v.showGrid
	return v.persist()
}

func (v *Viewer) Style(c catalog.Category) catalog.Style { return v.table.Style(c) }
func (v *Viewer) Visible(c catalog.Category) bool        { return v.table.Visible(c) }

// Counts returns loaded points per category.
func (v *Viewer) Counts() map[catalog.Category]int { return v.index.Counts() }

// SetStyle replaces a category's style and rebuilds the draw set on the next frame.
func (v *Viewer) SetStyle(c catalog.Category, s catalog.Style) error {
	if err := v.table.SetStyle(c, s); err != nil {
		return err
	}
	v.index.Invalidate()
	v.refreshHover()
	return v.persist()
}

// SetVisible shows or hides a category.
func (v *Viewer) SetVisible(c catalog.Category, visible bool) error {
	if err := v.table.SetVisible(c, visible); err != nil {
		return err
	}
	v.index.Invalidate()
	v.refreshHover()
	return v.persist()
}

// CycleShape advances c to its next marker shape.
func (v *Viewer) CycleShape(c catalog.Category) error {
	s := v.table.Style(c)
	s.Shape = s.Shape.Next()
	return v.SetStyle(c, s)
}

// AdjustSize changes c's marker size by delta, clamped to the valid range.
func (v *Viewer) AdjustSize(c catalog.Category, delta float64) error {
	s := v.table.Style(c)
	s.Size += delta
	return v.SetStyle(c, s)
}

// Prefs snapshots the persisted state.
func (v *Viewer) Prefs() prefs.Prefs {
	return prefs.Snapshot(v.table, v.theme, v.showGrid)
}

func (v *Viewer) persist() error {
	if v.store == nil {
		return nil
	}
	if err := v.store.Save(v.Prefs()); err != nil {
		return fmt.Errorf("save prefs: %w", err)
	}
	return nil
}

// DrawSet returns the decimated points for the current zoom.
func (v *Viewer) DrawSet() *points.DrawSet {
	return v.index.DrawSet(v.vp.Zoom(), v.table)
}

// Options are the render switches for the current state.
func (v *Viewer) Options() render.Options {
	return render.Options{Theme: v.theme, ShowGrid: v.showGrid, Scale: v.scale}
}

// Frame clamps the view and draws it onto cv.
func (v *Viewer) Frame(cv render.Canvas) {
	v.FrameWith(cv, v.Options())
}

// FrameWith is Frame with explicit render options, leaving the persisted
// theme and grid flag untouched.
func (v *Viewer) FrameWith(cv render.Canvas, opts render.Options) {
	v.vp.ClampPan()
	render.Render(cv, v.vp, v.DrawSet(), opts)
}
