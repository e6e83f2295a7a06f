// Package geojson holds the subset of RFC 7946 this pipeline emits: a
// FeatureCollection of LineString features, one per satellite ground track.
package geojson

import (
	"encoding/json"
	"io"
)

// FeatureCollection is the top-level GeoJSON output artifact.
type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}

// Feature is one satellite's ground track.
type Feature struct {
	Type       string     `json:"type"`
	Geometry   Geometry   `json:"geometry"`
	Properties Properties `json:"properties"`
}

// Geometry carries LineString coordinates as [lon, lat, alt] triples.
// Longitudes may exceed [-180, 180] after antimeridian unwrapping.
type Geometry struct {
	Type        string      `json:"type"`
	Coordinates [][]float64 `json:"coordinates"`
}

// Properties carries per-satellite metadata. Timestamps parallel the
// coordinate array, one RFC 3339 instant per vertex.
type Properties struct {
	Name        string   `json:"name"`
	Timestamps  []string `json:"timestamps"`
	LaunchGroup string   `json:"launch_group"`
}

// NewFeatureCollection wraps features in a FeatureCollection.
func NewFeatureCollection(features []Feature) FeatureCollection {
	if features == nil {
		features = []Feature{}
	}
	return FeatureCollection{Type: "FeatureCollection", Features: features}
}

// NewLineString builds a LineString geometry from coordinate triples.
func NewLineString(coords [][]float64) Geometry {
	return Geometry{Type: "LineString", Coordinates: coords}
}

// Encode writes the collection to w as indented JSON.
func (fc FeatureCollection) Encode(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(fc)
}
