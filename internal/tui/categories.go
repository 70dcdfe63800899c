package tui

import (
	"fmt"
	"log"

	list "github.com/charmbracelet/bubbles/list"

	"mcmap/internal/catalog"
)

type categoryItem struct {
	cat     catalog.Category
	count   int
	visible bool
	style   catalog.Style
}

func (c categoryItem) Title() string {
	mark := "[ ]"
	if c.visible {
		mark = "[x]"
	}
	return fmt.Sprintf("%s %s (%d)", mark, c.cat, c.count)
}

func (c categoryItem) Description() string {
	return fmt.Sprintf("%s %g %s", c.style.Shape, c.style.Size, c.style.Color)
}

func (c categoryItem) FilterValue() string { return string(c.cat) }

// refreshCategories rebuilds the sidebar from the viewer, keeping the cursor.
func (m *Model) refreshCategories() {
	counts := m.v.Counts()
	cats := catalog.All()
	items := make([]list.Item, 0, len(cats))
	for _, c := range cats {
		items = append(items, categoryItem{
			cat:     c,
			count:   counts[c],
			visible: m.v.Visible(c),
			style:   m.v.Style(c),
		})
	}
	idx := m.l.Index()
	m.l.SetItems(items)
	if idx > 0 && idx < len(items) {
		m.l.Select(idx)
	}
	if m.showLegend {
		m.refreshLegend()
	}
}

// selectedCategory is the category under the sidebar cursor. It stays
// meaningful while the sidebar is hidden.
func (m Model) selectedCategory() catalog.Category {
	if it, ok := m.l.SelectedItem().(categoryItem); ok {
		return it.cat
	}
	return catalog.Unknown
}

// editSelected applies fn to the selected category and reports the outcome.
func (m *Model) editSelected(what string, fn func(catalog.Category) error) {
	c := m.selectedCategory()
	if err := fn(c); err != nil {
		m.status = what + " error: " + err.Error()
		log.Printf("%s %s: %v", what, c, err)
	} else {
		s := m.v.Style(c)
		m.status = fmt.Sprintf("%s: %s visible=%v shape=%s size=%g", what, c, m.v.Visible(c), s.Shape, s.Size)
	}
	m.refreshCategories()
}
