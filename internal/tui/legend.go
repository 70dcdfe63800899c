package tui

import (
	"fmt"

	table "github.com/charmbracelet/bubbles/table"

	"mcmap/internal/catalog"
)

var legendColumns = []table.Column{
	{Title: "Category", Width: 10},
	{Title: "Count", Width: 8},
	{Title: "Shape", Width: 8},
	{Title: "Size", Width: 5},
	{Title: "Color", Width: 8},
	{Title: "Shown", Width: 5},
}

// legendRows lists every category with its count and style.
func (m Model) legendRows() []table.Row {
	counts := m.v.Counts()
	cats := catalog.All()
	rows := make([]table.Row, 0, len(cats))
	for _, c := range cats {
		s := m.v.Style(c)
		shown := "no"
		if m.v.Visible(c) {
			shown = "yes"
		}
		rows = append(rows, table.Row{
			string(c),
			fmt.Sprintf("%d", counts[c]),
			string(s.Shape),
			fmt.Sprintf("%g", s.Size),
			s.Color,
			shown,
		})
	}
	return rows
}

// refreshLegend rebuilds the table rows from the current viewer state.
func (m *Model) refreshLegend() {
	// Avoid transient mismatch: clear rows, set columns, then set rows
	m.tbl.SetRows(nil)
	m.tbl.SetColumns(legendColumns)
	m.tbl.SetRows(m.legendRows())
}
