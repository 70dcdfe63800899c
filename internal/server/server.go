// Package server exposes the map over HTTP: rendered PNG frames, hover
// queries and category style edits.
package server

import (
	"bytes"
	"context"
	"errors"
	"log"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"mcmap/internal/catalog"
	"mcmap/internal/hover"
	"mcmap/internal/render"
	"mcmap/internal/viewer"
)

const (
	defaultWidth  = 800
	defaultHeight = 600
	maxDimension  = 4096
)

// MapHandler serves one viewer. All handlers hold mu for the whole request,
// so each request sees the state left by the previous one.
type MapHandler struct {
	mu sync.Mutex
	v  *viewer.Viewer
}

func NewMapHandler(v *viewer.Viewer) *MapHandler {
	return &MapHandler{v: v}
}

// NewRouter wires the routes with gin's logger and recovery middleware.
func NewRouter(h *MapHandler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	r.GET("/healthz", h.Health)
	r.GET("/map.png", h.GetMap)
	api := r.Group("/api")
	{
		api.GET("/hover", h.GetHover)
		api.GET("/categories", h.GetCategories)
		api.PUT("/categories/:category", h.PutCategory)
	}
	return r
}

// Serve runs the HTTP server until ctx is cancelled.
func Serve(ctx context.Context, addr string, handler http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		log.Printf("mcmap server listening on %s", addr)
		errCh <- srv.ListenAndServe()
	}()
	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{
		"error":   "invalid_parameter",
		"message": msg,
	})
}

// Health GET /healthz
func (h *MapHandler) Health(c *gin.Context) {
	h.mu.Lock()
	n := h.v.Index().Len()
	h.mu.Unlock()
	c.JSON(http.StatusOK, gin.H{"status": "ok", "points": n})
}

// viewParams is the viewport described by a request's query string.
type viewParams struct {
	w, h     int
	zoom     float64 // 0 means fully zoomed out
	cx, cz   float64
	theme    render.Theme
	showGrid bool
}

func (h *MapHandler) parseView(c *gin.Context) (viewParams, error) {
	p := viewParams{theme: h.v.Theme(), showGrid: h.v.ShowGrid()}
	var err error
	if p.w, err = intQuery(c, "w", defaultWidth); err != nil {
		return p, err
	}
	if p.h, err = intQuery(c, "h", defaultHeight); err != nil {
		return p, err
	}
	if p.zoom, err = floatQuery(c, "zoom", 0); err != nil {
		return p, err
	}
	if p.zoom < 0 {
		return p, errors.New("zoom must be positive")
	}
	if p.cx, err = floatQuery(c, "cx", 0); err != nil {
		return p, err
	}
	if p.cz, err = floatQuery(c, "cz", 0); err != nil {
		return p, err
	}
	switch t := c.Query("theme"); t {
	case "":
	case string(render.Dark), string(render.Light):
		p.theme = render.Theme(t)
	default:
		return p, errors.New("theme must be dark or light")
	}
	if g := c.Query("grid"); g != "" {
		if p.showGrid, err = strconv.ParseBool(g); err != nil {
			return p, errors.New("grid must be a boolean")
		}
	}
	return p, nil
}

func intQuery(c *gin.Context, key string, def int) (int, error) {
	s := c.Query(key)
	if s == "" {
		return def, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil || v < 1 || v > maxDimension {
		return 0, errors.New(key + " must be an integer in [1, 4096]")
	}
	return v, nil
}

func floatQuery(c *gin.Context, key string, def float64) (float64, error) {
	s := c.Query(key)
	if s == "" {
		return def, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, errors.New(key + " must be a finite number")
	}
	return v, nil
}

// applyView puts the viewer's viewport into the state p describes. Caller
// holds mu.
func (h *MapHandler) applyView(p viewParams) {
	h.v.Resize(p.w, p.h)
	vp := h.v.Viewport()
	if p.zoom > 0 {
		vp.SetZoom(p.zoom)
	} else {
		vp.CenterView()
	}
	h.v.GoTo(p.cx, p.cz)
}

// GetMap GET /map.png - render one frame
func (h *MapHandler) GetMap(c *gin.Context) {
	h.mu.Lock()
	defer h.mu.Unlock()

	p, err := h.parseView(c)
	if err != nil {
		badRequest(c, err.Error())
		return
	}
	h.applyView(p)

	cv := render.NewRaster(p.w, p.h)
	opts := h.v.Options()
	opts.Theme, opts.ShowGrid = p.theme, p.showGrid
	h.v.FrameWith(cv, opts)

	var buf bytes.Buffer
	if err := cv.EncodePNG(&buf); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "internal_error",
			"message": "Failed to encode frame: " + err.Error(),
		})
		return
	}
	c.Data(http.StatusOK, "image/png", buf.Bytes())
}

// pointJSON is a point as returned by the hover endpoint. Y is null when the
// source row had no numeric elevation.
type pointJSON struct {
	X        float64  `json:"x"`
	Y        *float64 `json:"y"`
	Z        float64  `json:"z"`
	Category string   `json:"category"`
	Label    string   `json:"label"`
	Seq      int      `json:"seq"`
}

// GetHover GET /api/hover - point under screen position (x, y)
func (h *MapHandler) GetHover(c *gin.Context) {
	h.mu.Lock()
	defer h.mu.Unlock()

	p, err := h.parseView(c)
	if err != nil {
		badRequest(c, err.Error())
		return
	}
	if c.Query("x") == "" || c.Query("y") == "" {
		badRequest(c, "x and y are required")
		return
	}
	x, err := floatQuery(c, "x", 0)
	if err != nil {
		badRequest(c, err.Error())
		return
	}
	y, err := floatQuery(c, "y", 0)
	if err != nil {
		badRequest(c, err.Error())
		return
	}
	h.applyView(p)

	pt, ok := h.v.Hover(x, y)
	if !ok {
		c.JSON(http.StatusOK, gin.H{"hit": false})
		return
	}
	out := pointJSON{X: pt.X, Z: pt.Z, Category: string(pt.Category), Label: pt.Label, Seq: pt.Seq}
	if !math.IsNaN(pt.Y) {
		yv := pt.Y
		out.Y = &yv
	}
	c.JSON(http.StatusOK, gin.H{
		"hit":     true,
		"point":   out,
		"tooltip": hover.Tooltip(pt),
	})
}

type categoryJSON struct {
	Category string        `json:"category"`
	Style    catalog.Style `json:"style"`
	Visible  bool          `json:"visible"`
	Count    int           `json:"count"`
}

func (h *MapHandler) category(c catalog.Category, counts map[catalog.Category]int) categoryJSON {
	return categoryJSON{
		Category: string(c),
		Style:    h.v.Style(c),
		Visible:  h.v.Visible(c),
		Count:    counts[c],
	}
}

// GetCategories GET /api/categories
func (h *MapHandler) GetCategories(c *gin.Context) {
	h.mu.Lock()
	defer h.mu.Unlock()

	counts := h.v.Counts()
	out := make([]categoryJSON, 0, len(catalog.All()))
	for _, cat := range catalog.All() {
		out = append(out, h.category(cat, counts))
	}
	c.JSON(http.StatusOK, gin.H{"categories": out})
}

// categoryUpdate is a partial edit; absent fields keep their value.
type categoryUpdate struct {
	Color   *string        `json:"color"`
	Size    *float64       `json:"size"`
	Shape   *catalog.Shape `json:"shape"`
	Visible *bool          `json:"visible"`
}

// PutCategory PUT /api/categories/:category - edit style and visibility
func (h *MapHandler) PutCategory(c *gin.Context) {
	var req categoryUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"message": "Invalid JSON format: " + err.Error(),
		})
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	cat := catalog.Category(c.Param("category"))
	if !cat.Valid() {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "not_found",
			"message": "unknown category " + string(cat),
		})
		return
	}

	if req.Color != nil || req.Size != nil || req.Shape != nil {
		s := h.v.Style(cat)
		if req.Color != nil {
			s.Color = *req.Color
		}
		if req.Size != nil {
			s.Size = *req.Size
		}
		if req.Shape != nil {
			s.Shape = *req.Shape
		}
		if _, err := s.Validate(); err != nil {
			badRequest(c, err.Error())
			return
		}
		if err := h.v.SetStyle(cat, s); err != nil {
			h.persistError(c, err)
			return
		}
	}
	if req.Visible != nil {
		if err := h.v.SetVisible(cat, *req.Visible); err != nil {
			h.persistError(c, err)
			return
		}
	}
	c.JSON(http.StatusOK, h.category(cat, h.v.Counts()))
}

func (h *MapHandler) persistError(c *gin.Context, err error) {
	log.Printf("persist: %v", err)
	c.JSON(http.StatusInternalServerError, gin.H{
		"error":   "internal_error",
		"message": "Failed to save preferences: " + err.Error(),
	})
}
