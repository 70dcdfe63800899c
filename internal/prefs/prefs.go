package prefs

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"mcmap/internal/catalog"
	"mcmap/internal/render"
)

// Prefs is the persisted UI state.
type Prefs struct {
	Theme    render.Theme                       `yaml:"theme"`
	ShowGrid bool                               `yaml:"show_grid"`
	Styles   map[catalog.Category]catalog.Style `yaml:"styles,omitempty"`
	Visible  map[catalog.Category]bool          `yaml:"visible,omitempty"`
}

// Default is the state used when nothing has been saved yet.
func Default() Prefs {
	return Prefs{Theme: render.Dark}
}

// Snapshot captures the current table, theme and grid flag.
func Snapshot(t *catalog.Table, theme render.Theme, showGrid bool) Prefs {
	p := Prefs{
		Theme:    theme,
		ShowGrid: showGrid,
		Styles:   map[catalog.Category]catalog.Style{},
		Visible:  map[catalog.Category]bool{},
	}
	for _, c := range catalog.All() {
		p.Styles[c] = t.Style(c)
		p.Visible[c] = t.Visible(c)
	}
	return p
}

// Table builds a style table from p. Unknown categories are ignored and
// invalid styles keep the category's default.
func (p Prefs) Table() *catalog.Table {
	t := catalog.NewTable()
	for c, s := range p.Styles {
		_ = t.SetStyle(c, s)
	}
	for c, v := range p.Visible {
		_ = t.SetVisible(c, v)
	}
	return t
}

// Store reads and writes Prefs as YAML at Path.
type Store struct {
	Path string
}

func NewStore(path string) *Store { return &Store{Path: path} }

// Load returns the saved prefs, or Default when the file does not exist.
func (s *Store) Load() (Prefs, error) {
	b, err := os.ReadFile(s.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return Default(), err
	}
	p := Default()
	if err := yaml.Unmarshal(b, &p); err != nil {
		return Default(), fmt.Errorf("prefs %s: %w", s.Path, err)
	}
	p.Theme = render.ParseTheme(string(p.Theme))
	return p, nil
}

// Save writes p atomically through a temporary file in the same directory.
func (s *Store) Save(p Prefs) error {
	b, err := yaml.Marshal(p)
	if err != nil {
		return err
	}
	dir := filepath.Dir(s.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("prefs dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".prefs-*.yaml")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), s.Path)
}
