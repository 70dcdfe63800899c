package tui

import (
	"fmt"
	"log"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"mcmap/internal/catalog"
	"mcmap/internal/geom"
	"mcmap/internal/points"
	"mcmap/internal/viewer"
)

const (
	keyZoomFactor = 1.2
	panStep       = 16 // micro-pixels
)

type loadedMsg struct {
	path   string
	format string
	rows   []points.Row
	err    error
}

func loadFile(path string) tea.Cmd {
	return func() tea.Msg {
		d, err := geom.Load(path)
		return loadedMsg{path: path, format: d.Format, rows: d.Rows, err: err}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		m.loading = false
		if msg.err != nil {
			m.status = "load error: " + msg.err.Error()
			log.Printf("load %s: %v", msg.path, msg.err)
			return m, nil
		}
		accepted, dropped := m.v.Load(msg.rows)
		m.status = fmt.Sprintf("loaded %s (%s): %d points, %d dropped", filepath.Base(msg.path), msg.format, accepted, dropped)
		log.Print(m.status)
		m.refreshCategories()
		return m, nil
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		a := m.mapArea()
		m.v.Resize(a.w*cellW, a.h*cellH)
		m.l.SetSize(sidebarWidth-2, a.h-2)
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		m.handleMouse(msg)
		return m, nil
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.gotoMode {
		switch msg.String() {
		case "esc":
			m.gotoMode = false
			m.ta.Blur()
			m.status = "view mode"
			return m, nil
		case "enter":
			x, z, err := parseGoto(strings.TrimSpace(m.ta.Value()))
			if err != nil {
				m.status = "go to: " + err.Error()
				return m, nil
			}
			m.v.GoTo(x, z)
			m.gotoMode = false
			m.ta.Blur()
			m.status = fmt.Sprintf("centered on X: %g Z: %g", x, z)
			return m, nil
		}
		var cmd tea.Cmd
		m.ta, cmd = m.ta.Update(msg)
		return m, cmd
	}

	if m.showLegend {
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "esc", "a":
			m.showLegend = false
			return m, nil
		}
		var cmd tea.Cmd
		m.tbl, cmd = m.tbl.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "+", "=":
		m.v.ZoomCenter(keyZoomFactor)
		m.status = m.zoomStatus()
	case "-", "_":
		m.v.ZoomCenter(1 / keyZoomFactor)
		m.status = m.zoomStatus()
	case "left":
		m.v.PanBy(panStep, 0)
	case "right":
		m.v.PanBy(-panStep, 0)
	case "up", "down", "pgup", "pgdown", "home", "end":
		if m.showSidebar {
			var cmd tea.Cmd
			m.l, cmd = m.l.Update(msg)
			return m, cmd
		}
		switch msg.String() {
		case "up":
			m.v.PanBy(0, panStep)
		case "down":
			m.v.PanBy(0, -panStep)
		}
	case "c":
		m.v.CenterView()
		m.status = "centered"
	case "f":
		m.v.FitData()
		m.status = m.zoomStatus()
	case "g":
		m.report("grid", m.v.ToggleGrid())
	case "t":
		m.report("theme", m.v.ToggleTheme())
	case "tab":
		m.showSidebar = !m.showSidebar
		m.resizeKeepingView()
		if m.showSidebar {
			m.refreshCategories()
		}
	case " ", "space":
		m.editSelected("visibility", func(c catalog.Category) error {
			return m.v.SetVisible(c, !m.v.Visible(c))
		})
	case "s":
		m.editSelected("shape", m.v.CycleShape)
	case "[":
		m.editSelected("size", func(c catalog.Category) error { return m.v.AdjustSize(c, -1) })
	case "]":
		m.editSelected("size", func(c catalog.Category) error { return m.v.AdjustSize(c, 1) })
	case "a":
		m.showLegend = true
		m.refreshLegend()
	case "p":
		m.gotoMode = true
		m.ta.SetValue("")
		m.status = "go to coordinates"
		cmd := m.ta.Focus()
		return m, cmd
	case "h":
		m.helpVisible = !m.helpVisible
	}
	return m, nil
}

func (m *Model) report(what string, err error) {
	if err != nil {
		m.status = what + ": " + err.Error()
		log.Printf("%s: %v", what, err)
		return
	}
	m.status = fmt.Sprintf("theme: %s  grid: %v", m.v.Theme(), m.v.ShowGrid())
}

func (m Model) zoomStatus() string {
	return fmt.Sprintf("zoom: %.4g cells/block", m.v.Viewport().Zoom()/cellW)
}

// resizeKeepingView fits the viewport to the map area while keeping the
// world point at the center and the zoom.
func (m *Model) resizeKeepingView() {
	vp := m.v.Viewport()
	w, h := vp.Size()
	zoom := vp.Zoom()
	cx, cz := vp.ScreenToWorld(float64(w)/2, float64(h)/2)
	a := m.mapArea()
	m.v.Resize(a.w*cellW, a.h*cellH)
	m.l.SetSize(sidebarWidth-2, a.h-2)
	vp.SetZoom(zoom)
	m.v.GoTo(cx, cz)
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	a := m.mapArea()
	mx, my, in := a.toMicro(msg.X, msg.Y)
	switch msg.Action {
	case tea.MouseActionPress:
		if !in {
			return
		}
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			m.v.Wheel(mx, my, -1)
		case tea.MouseButtonWheelDown:
			m.v.Wheel(mx, my, 1)
		case tea.MouseButtonLeft:
			m.v.PointerDown(mx, my, viewer.Primary)
		case tea.MouseButtonMiddle:
			m.v.PointerDown(mx, my, viewer.Middle)
		case tea.MouseButtonRight:
			m.v.PointerDown(mx, my, viewer.Secondary)
		}
	case tea.MouseActionRelease:
		// Without SGR mouse mode a release does not name its button.
		switch msg.Button {
		case tea.MouseButtonMiddle:
			m.v.PointerUp(viewer.Middle)
		case tea.MouseButtonRight:
			m.v.PointerUp(viewer.Secondary)
		default:
			m.v.PointerUp(viewer.Middle)
			m.v.PointerUp(viewer.Secondary)
		}
	case tea.MouseActionMotion:
		if in || m.v.Dragging() {
			m.v.PointerMove(mx, my)
		} else {
			m.v.PointerLeave()
		}
	}
	wx, wz, ok := m.v.CursorWorld()
	m.hoverHasWorld = ok && in
	m.hoverX, m.hoverZ = wx, wz
}
