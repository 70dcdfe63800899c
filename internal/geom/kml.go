package geom

import (
	"encoding/xml"
	"io"
	"os"
	"strings"

	"mcmap/internal/points"
)

// LoadKML reads Placemark points from a KML file.
func LoadKML(path string) ([]points.Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadKML(f)
}

// ReadKML maps Placemark > Point > coordinates "x,z[,y]" to rows, using the
// Placemark name as the label. A coordinates element may hold several tuples.
func ReadKML(r io.Reader) ([]points.Row, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	type kmlPoint struct {
		Coordinates string `xml:"coordinates"`
	}
	type kmlPlacemark struct {
		Name  string    `xml:"name"`
		Point *kmlPoint `xml:"Point"`
	}
	type kmlDoc struct {
		Placemarks []kmlPlacemark `xml:"Document>Placemark"`
		Top        []kmlPlacemark `xml:"Placemark"`
	}

	var doc kmlDoc
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	var rows []points.Row
	for _, pm := range append(doc.Top, doc.Placemarks...) {
		if pm.Point == nil {
			continue
		}
		for _, tuple := range strings.Fields(pm.Point.Coordinates) {
			vals := strings.Split(tuple, ",")
			if len(vals) < 2 {
				continue
			}
			row := points.Row{X: vals[0], Z: vals[1], Type: strings.TrimSpace(pm.Name)}
			if len(vals) >= 3 {
				row.Y = vals[2]
			}
			rows = append(rows, row)
		}
	}
	if len(rows) == 0 {
		return nil, ErrNoRows
	}
	return rows, nil
}
