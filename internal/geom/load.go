package geom

import (
	"path/filepath"
	"strings"
)

// Load reads a dataset, choosing the parser by file extension.
func Load(path string) (Dataset, error) {
	ext := strings.ToLower(filepath.Ext(path))
	d := Dataset{Path: path, Format: strings.TrimPrefix(ext, ".")}
	var err error
	switch ext {
	case ".csv":
		d.Rows, err = LoadCSV(path)
	case ".geojson", ".json":
		d.Format = "geojson"
		d.Rows, err = LoadGeoJSON(path)
	case ".kml":
		d.Rows, err = LoadKML(path)
	default:
		return Dataset{}, &ErrUnsupportedFormat{Ext: ext}
	}
	if err != nil {
		return Dataset{}, err
	}
	return d, nil
}

// Supported reports whether Load understands the file's extension.
func Supported(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".geojson", ".json", ".kml":
		return true
	}
	return false
}
