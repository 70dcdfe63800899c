package geom

import (
	"encoding/json"
	"errors"
	"io"
	"os"
	"strconv"

	"mcmap/internal/points"
)

// LoadGeoJSON reads Point and MultiPoint geometries from a GeoJSON file.
func LoadGeoJSON(path string) ([]points.Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadGeoJSON(f)
}

// ReadGeoJSON maps positions [x, z(, y)] to rows. The label comes from the
// feature's "Type" (or "type") property.
func ReadGeoJSON(r io.Reader) ([]points.Row, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	t, _ := raw["type"].(string)
	if t == "" {
		return nil, errors.New("invalid geojson: missing type")
	}

	var rows []points.Row
	add := func(v any, label string) {
		a, ok := v.([]any)
		if !ok || len(a) < 2 {
			return
		}
		row := points.Row{X: num(a[0]), Z: num(a[1]), Type: label}
		if len(a) >= 3 {
			row.Y = num(a[2])
		}
		rows = append(rows, row)
	}
	walkGeom := func(g map[string]any, label string) {
		gt, _ := g["type"].(string)
		switch gt {
		case "Point":
			add(g["coordinates"], label)
		case "MultiPoint":
			if arr, ok := g["coordinates"].([]any); ok {
				for _, el := range arr {
					add(el, label)
				}
			}
		}
	}
	walkFeature := func(fm map[string]any) {
		g, ok := fm["geometry"].(map[string]any)
		if !ok {
			return
		}
		walkGeom(g, featureLabel(fm))
	}

	switch t {
	case "Point", "MultiPoint":
		walkGeom(raw, "")
	case "Feature":
		walkFeature(raw)
	case "FeatureCollection":
		if fs, ok := raw["features"].([]any); ok {
			for _, f := range fs {
				if fm, ok := f.(map[string]any); ok {
					walkFeature(fm)
				}
			}
		}
	default:
		return nil, errors.New("unsupported geojson type: " + t)
	}
	if len(rows) == 0 {
		return nil, ErrNoRows
	}
	return rows, nil
}

func featureLabel(fm map[string]any) string {
	props, _ := fm["properties"].(map[string]any)
	for _, k := range []string{"Type", "type"} {
		if s, ok := props[k].(string); ok {
			return s
		}
	}
	return ""
}

// num renders a decoded JSON value as the string a CSV cell would hold.
// Non-numbers become "" and are dropped by the index.
func num(v any) string {
	switch n := v.(type) {
	case float64:
		return strconv.FormatFloat(n, 'f', -1, 64)
	case string:
		return n
	}
	return ""
}
