package catalog

import "fmt"

// Table holds the style and visibility of every category. A Table always
// contains an entry for each category in All, including Unknown.
type Table struct {
	styles  map[Category]Style
	visible map[Category]bool
}

// NewTable returns a table with default styles and every category visible.
func NewTable() *Table {
	t := &Table{
		styles:  make(map[Category]Style, len(all)),
		visible: make(map[Category]bool, len(all)),
	}
	for _, c := range all {
		t.styles[c] = DefaultStyle(c)
		t.visible[c] = true
	}
	return t
}

// Style returns the style for c. Categories outside the closed set resolve
// to Unknown.
func (t *Table) Style(c Category) Style {
	if s, ok := t.styles[c]; ok {
		return s
	}
	return t.styles[Unknown]
}

func (t *Table) Visible(c Category) bool {
	return t.visible[c]
}

// SetStyle validates s and stores it for c.
func (t *Table) SetStyle(c Category, s Style) error {
	if !c.Valid() {
		return fmt.Errorf("unknown category %q", c)
	}
	v, err := s.Validate()
	if err != nil {
		return fmt.Errorf("style for %s: %w", c, err)
	}
	t.styles[c] = v
	return nil
}

func (t *Table) SetVisible(c Category, v bool) error {
	if !c.Valid() {
		return fmt.Errorf("unknown category %q", c)
	}
	t.visible[c] = v
	return nil
}

// Clone returns an independent copy.
func (t *Table) Clone() *Table {
	n := &Table{
		styles:  make(map[Category]Style, len(t.styles)),
		visible: make(map[Category]bool, len(t.visible)),
	}
	for k, v := range t.styles {
		n.styles[k] = v
	}
	for k, v := range t.visible {
		n.visible[k] = v
	}
	return n
}
