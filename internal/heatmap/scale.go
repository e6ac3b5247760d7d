package heatmap

import (
	"fmt"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

const DefaultNoDataColor = "#1a1a1a"

// ylOrRd - опорные цвета последовательной схемы YlOrRd (ColorBrewer, 9 классов)
var ylOrRd = mustPalette(
	"#ffffcc", "#ffeda0", "#fed976", "#feb24c", "#fd8d3c",
	"#fc4e2a", "#e31a1c", "#bd0026", "#800026",
)

func mustPalette(hexes ...string) []colorful.Color {
	palette := make([]colorful.Color, len(hexes))
	for i, h := range hexes {
		c, err := colorful.Hex(h)
		if err != nil {
			panic(fmt.Sprintf("heatmap: bad palette color %q: %v", h, err))
		}
		palette[i] = c
	}
	return palette
}

// Scale - последовательная шкала по домену [min(counts ∪ {0}), max(counts ∪ {1})]
type Scale struct {
	min, max float64
	noData   string
}

func NewScale(counts []int64, noDataColor string) Scale {
	if noDataColor == "" {
		noDataColor = DefaultNoDataColor
	}

	lo, hi := 0.0, 1.0
	for _, c := range counts {
		lo = math.Min(lo, float64(c))
		hi = math.Max(hi, float64(c))
	}

	return Scale{min: lo, max: hi, noData: noDataColor}
}

func (s Scale) domain() (float64, float64) {
	return s.min, s.max
}

// Color возвращает hex-цвет: noData для 0, иначе цвет из шкалы
func (s Scale) Color(count int64) string {
	if count == 0 {
		return s.noData
	}

	t := (float64(count) - s.min) / (s.max - s.min)
	return interpolate(ylOrRd, t).Hex()
}

// interpolate - кусочно-линейная интерполяция в Lab между опорными цветами, t в [0, 1]
func interpolate(palette []colorful.Color, t float64) colorful.Color {
	switch {
	case math.IsNaN(t) || t <= 0:
		return palette[0]
	case t >= 1:
		return palette[len(palette)-1]
	}

	pos := t * float64(len(palette)-1)
	i := int(pos)
	return palette[i].BlendLab(palette[i+1], pos-float64(i)).Clamped()
}
