package tui

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
)

func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	a := m.mapArea()
	contentWidth := max(10, m.width)

	// Header
	header := titleStyle.Render(" mcmap ─ minecraft point map ")
	header = lipgloss.NewStyle().Width(contentWidth).Padding(0).Render(header)

	// Sidebar
	var sidebar string
	if m.showSidebar {
		m.l.SetSize(sidebarWidth-2, a.h-2)
		sidebar = lipgloss.NewStyle().Width(sidebarWidth).Height(a.h).Render(m.l.View())
	}

	var mapView string
	if m.showLegend {
		colW := 0
		for _, c := range m.tbl.Columns() {
			colW += c.Width + 3
		}
		maxW := min(a.w, max(32, colW))
		m.tbl.SetWidth(maxW - 4)
		m.tbl.SetHeight(min(a.h-2, 20))
		legendBox := boxStyle.Width(maxW).Render(m.tbl.View())
		mapView = lipgloss.Place(a.w, a.h, lipgloss.Center, lipgloss.Center, legendBox)
	} else {
		mapView = lipgloss.NewStyle().Width(a.w).Height(a.h).Render(m.renderMap(a))
	}

	var body string
	if m.showSidebar {
		body = lipgloss.JoinHorizontal(lipgloss.Top, sidebar, " ", mapView)
	} else {
		body = mapView
	}

	ui := lipgloss.JoinVertical(lipgloss.Left, header, body, m.renderFooter(contentWidth))
	return appStyle.Width(contentWidth).Height(m.height).Render(ui)
}

// renderMap draws the current frame into a braille canvas of a's size and
// overlays the hover popup.
func (m Model) renderMap(a mapArea) string {
	cv := newBrailleCanvas(a.w, a.h)
	m.v.Frame(cv)
	if m.tip.visible {
		m.drawPopup(cv)
	}
	return strings.Join(cv.toLines(), "\n")
}

// drawPopup boxes the tooltip text next to the pointer, flipping it left or
// up when it would leave the map.
func (m Model) drawPopup(cv *brailleCanvas) {
	lines := strings.Split(m.tip.text, "\n")
	inner := 0
	for _, l := range lines {
		inner = max(inner, utf8.RuneCountInString(l))
	}
	boxW, boxH := inner+4, len(lines)+2
	px, py := int(m.tip.x)/cellW, int(m.tip.y)/cellH
	x := px + 2
	if x+boxW > cv.w {
		x = px - boxW - 1
	}
	y := py + 1
	if y+boxH > cv.h {
		y = cv.h - boxH
	}
	x, y = max(0, x), max(0, y)

	fg := popupColor(m.v.Theme())
	bar := strings.Repeat("─", inner+2)
	cv.textAt(x, y, "╭"+bar+"╮", fg)
	for i, l := range lines {
		pad := strings.Repeat(" ", inner-utf8.RuneCountInString(l))
		cv.textAt(x, y+1+i, "│ "+l+pad+" │", fg)
	}
	cv.textAt(x, y+boxH-1, "╰"+bar+"╯", fg)
}

func (m Model) renderFooter(width int) string {
	left := dimStyle.Render(" " + m.status + " ")
	if m.gotoMode {
		m.ta.SetWidth(min(40, width/2))
		left = " go to: " + m.ta.View()
	}
	info := fmt.Sprintf("  pts=%d", m.v.Index().Len())
	if m.hoverHasWorld {
		info = fmt.Sprintf("  X: %.1f Z: %.1f%s", m.hoverX, m.hoverZ, info)
	}
	right := dimStyle.Render(info + "  ")
	spacerW := max(0, width-lipgloss.Width(left)-lipgloss.Width(right))
	top := lipgloss.JoinHorizontal(lipgloss.Bottom, left, strings.Repeat(" ", spacerW), right)
	return lipgloss.JoinVertical(lipgloss.Left, top, lipgloss.NewStyle().MaxWidth(width).Render(m.renderHelp()))
}

func (m Model) renderHelp() string {
	if !m.helpVisible {
		return ""
	}
	keys := []string{
		"↑↓←→ pan",
		"+/- zoom",
		"wheel zoom",
		"right-drag pan",
		"c center",
		"f fit",
		"g grid",
		"t theme",
		"Tab categories",
		"Space show/hide",
		"s shape",
		"[/] size",
		"a legend",
		"p go to",
		"h help",
		"q quit",
	}
	return dimStyle.Render("  " + strings.Join(keys, "  "))
}
