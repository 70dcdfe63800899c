package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"mcmap/internal/config"
	"mcmap/internal/geom"
	"mcmap/internal/prefs"
	"mcmap/internal/render"
	"mcmap/internal/server"
	"mcmap/internal/tui"
	"mcmap/internal/viewer"
)

const usage = `usage:
  mcmap [flags] [file]                 terminal viewer
  mcmap serve [flags] [file]           HTTP map service
  mcmap render -o out.png [flags] [file]
`

func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		log.Fatal(err)
	}
	args := os.Args[1:]
	cmd := "view"
	if len(args) > 0 {
		switch args[0] {
		case "view", "serve", "render":
			cmd, args = args[0], args[1:]
		case "help", "-h", "--help":
			fmt.Fprint(os.Stderr, usage)
			return
		}
	}
	switch cmd {
	case "serve":
		err = runServe(cfg, args)
	case "render":
		err = runRender(cfg, args)
	default:
		err = runView(cfg, args)
	}
	if err != nil {
		log.Fatal(err)
	}
}

// newViewer builds a viewer with saved preferences, overridden by the
// configured theme when one is set.
func newViewer(cfg config.Config, prefsPath string, w, h int) *viewer.Viewer {
	store := prefs.NewStore(prefsPath)
	p, err := store.Load()
	if err != nil {
		log.Printf("prefs: %v (using defaults)", err)
	}
	if cfg.Theme != "" {
		p.Theme = cfg.Theme
	}
	v := viewer.New(w, h, p)
	v.SetStore(store)
	return v
}

func dataPath(cfg config.Config, fs *flag.FlagSet) string {
	if fs.NArg() > 0 {
		return fs.Arg(0)
	}
	return cfg.Data
}

func loadInto(v *viewer.Viewer, path string) error {
	d, err := geom.Load(path)
	if err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	accepted, dropped := v.Load(d.Rows)
	log.Printf("loaded %s (%s): %d points, %d dropped", path, d.Format, accepted, dropped)
	return nil
}

func runView(cfg config.Config, args []string) error {
	fs := flag.NewFlagSet("mcmap", flag.ExitOnError)
	prefsPath := fs.String("prefs", cfg.Prefs, "preferences file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	// stdout belongs to the terminal UI
	if cfg.LogFile != "" {
		f, err := tea.LogToFile(cfg.LogFile, "mcmap")
		if err != nil {
			return err
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	v := newViewer(cfg, *prefsPath, 0, 0)
	m := tui.NewWithPath(v, dataPath(cfg, fs))
	_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion()).Run()
	return err
}

func runServe(cfg config.Config, args []string) error {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	addr := fs.String("addr", cfg.Addr, "listen address")
	prefsPath := fs.String("prefs", cfg.Prefs, "preferences file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	v := newViewer(cfg, *prefsPath, 800, 600)
	if err := loadInto(v, dataPath(cfg, fs)); err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return server.Serve(ctx, *addr, server.NewRouter(server.NewMapHandler(v)))
}

func runRender(cfg config.Config, args []string) error {
	fs := flag.NewFlagSet("render", flag.ExitOnError)
	out := fs.String("o", "map.png", "output PNG file")
	w := fs.Int("w", 1600, "image width")
	h := fs.Int("h", 1200, "image height")
	zoom := fs.Float64("zoom", 0, "pixels per block; 0 fits the data")
	cx := fs.Float64("cx", 0, "world X at the image center")
	cz := fs.Float64("cz", 0, "world Z at the image center")
	grid := fs.Bool("grid", false, "draw the grid")
	prefsPath := fs.String("prefs", cfg.Prefs, "preferences file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *w < 1 || *h < 1 {
		return fmt.Errorf("invalid size %dx%d", *w, *h)
	}

	v := newViewer(cfg, *prefsPath, *w, *h)
	if err := loadInto(v, dataPath(cfg, fs)); err != nil {
		return err
	}
	if *zoom > 0 {
		v.Viewport().SetZoom(*zoom)
		v.GoTo(*cx, *cz)
	} else {
		v.FitData()
	}

	cv := render.NewRaster(*w, *h)
	opts := v.Options()
	opts.ShowGrid = *grid
	v.FrameWith(cv, opts)

	f, err := os.Create(*out)
	if err != nil {
		return err
	}
	if err := cv.EncodePNG(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	log.Printf("wrote %s (%dx%d, zoom %g)", *out, *w, *h, v.Viewport().Zoom())
	return nil
}
