package heatmap

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/goccy/go-json"
)

// absentCode - так Natural Earth помечает страны без кода ISO
const absentCode = "-99"

type featureCollection struct {
	Type     string    `json:"type"`
	Features []feature `json:"features"`
}

type feature struct {
	Properties map[string]any `json:"properties"`
}

// LoadGeometries читает FeatureCollection из файла. Геометрия фигур
// не нужна, берутся только свойства с именами и кодами.
func LoadGeometries(path string) ([]Geometry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open geometry file: %w", err)
	}
	defer f.Close()

	return ParseGeometries(f)
}

func ParseGeometries(r io.Reader) ([]Geometry, error) {
	var fc featureCollection
	if err := json.NewDecoder(r).Decode(&fc); err != nil {
		return nil, fmt.Errorf("failed to decode geometry: %w", err)
	}

	if fc.Type != "FeatureCollection" {
		return nil, fmt.Errorf("unexpected geojson type %q, want FeatureCollection", fc.Type)
	}

	geometries := make([]Geometry, 0, len(fc.Features))
	for _, f := range fc.Features {
		geometries = append(geometries, Geometry{
			Name:     property(f.Properties, "NAME"),
			NameLong: property(f.Properties, "NAME_LONG"),
			NameEN:   property(f.Properties, "NAME_EN"),
			ISOA2:    code(property(f.Properties, "ISO_A2")),
			ISOA3:    code(property(f.Properties, "ISO_A3")),
		})
	}

	return geometries, nil
}

// property ищет ключ в верхнем, затем в нижнем регистре
func property(props map[string]any, key string) string {
	for _, k := range []string{key, strings.ToLower(key)} {
		if s, ok := props[k].(string); ok {
			return strings.TrimSpace(s)
		}
	}
	return ""
}

func code(s string) string {
	if s == absentCode {
		return ""
	}
	return s
}
