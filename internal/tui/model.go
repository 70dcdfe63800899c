package tui

import (
	list "github.com/charmbracelet/bubbles/list"
	table "github.com/charmbracelet/bubbles/table"
	textarea "github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"mcmap/internal/viewer"
)

// Micro-pixels per terminal cell.
const (
	cellW = 2
	cellH = 4
)

// popup is the hover tooltip. The viewer shows and hides it; View draws it
// next to the pointer.
type popup struct {
	visible bool
	x, y    float64 // micro-pixels
	text    string
}

func (p *popup) Show(x, y float64, text string) {
	p.visible, p.x, p.y, p.text = true, x, y, text
}

func (p *popup) Hide() { p.visible = false }

type Model struct {
	width  int
	height int

	showSidebar bool
	helpVisible bool

	status string

	v   *viewer.Viewer
	tip *popup

	// data source, loaded by Init
	dataPath string
	loading  bool

	// category sidebar
	l list.Model

	// go-to coordinates input
	gotoMode bool
	ta       textarea.Model

	// legend table
	showLegend bool
	tbl        table.Model

	// last cursor position in world coordinates, for the footer
	hoverHasWorld bool
	hoverX        float64
	hoverZ        float64
}

// New returns a model driving v. The viewer's tooltip is replaced by the
// terminal popup.
func New(v *viewer.Viewer) Model {
	m := Model{
		helpVisible: true,
		status:      "mcmap ready",
		v:           v,
		tip:         &popup{},
	}
	v.SetTooltip(m.tip)
	v.SetScale(0.5)

	d := list.NewDefaultDelegate()
	d.ShowDescription = false
	m.l = list.New(nil, d, 0, 0)
	m.l.Title = "Categories"
	m.l.SetShowHelp(false)
	m.l.SetShowStatusBar(false)
	m.l.SetFilteringEnabled(false)

	m.ta = textarea.New()
	m.ta.Placeholder = "x z  (Enter to jump, Esc to cancel)"
	m.ta.ShowLineNumbers = false
	m.ta.CharLimit = 64
	m.ta.SetWidth(40)
	m.ta.SetHeight(1)

	m.tbl = table.New(table.WithFocused(true))
	m.tbl.SetHeight(12)
	m.refreshCategories()
	return m
}

// NewWithPath loads path in the background once the program starts.
func NewWithPath(v *viewer.Viewer, path string) Model {
	m := New(v)
	m.dataPath = path
	m.loading = true
	m.status = "loading " + path
	return m
}

func (m Model) Init() tea.Cmd {
	if m.dataPath == "" {
		return nil
	}
	return loadFile(m.dataPath)
}
