package heatmap

// ShapeColor - результат для одной геометрии
type ShapeColor struct {
	Name   string `json:"name"`
	ISOA2  string `json:"iso_a2,omitempty"`
	ISOA3  string `json:"iso_a3,omitempty"`
	Clicks int64  `json:"clicks"`
	Color  string `json:"color"`
}

type Renderer struct {
	geometries  []Geometry
	noDataColor string
}

func NewRenderer(geometries []Geometry, noDataColor string) *Renderer {
	if noDataColor == "" {
		noDataColor = DefaultNoDataColor
	}
	return &Renderer{geometries: geometries, noDataColor: noDataColor}
}

// Render считает клики и цвет для каждой геометрии за один проход
func (r *Renderer) Render(aggregate map[string]int64) []ShapeColor {
	return render(aggregate, r.geometries, r.noDataColor)
}

// Render - то же, что Renderer.Render, с цветом "нет данных" по умолчанию
func Render(aggregate map[string]int64, geometries []Geometry) []ShapeColor {
	return render(aggregate, geometries, DefaultNoDataColor)
}

func render(aggregate map[string]int64, geometries []Geometry, noDataColor string) []ShapeColor {
	table := NewKeyTable(aggregate)

	// домен шкалы по нормализованным значениям, как их видит Count
	counts := make([]int64, 0, len(table))
	for _, c := range table {
		counts = append(counts, c)
	}
	scale := NewScale(counts, noDataColor)

	shapes := make([]ShapeColor, len(geometries))
	for i, g := range geometries {
		clicks := table.Count(g)
		shapes[i] = ShapeColor{
			Name:   g.DisplayName(),
			ISOA2:  g.ISOA2,
			ISOA3:  g.ISOA3,
			Clicks: clicks,
			Color:  scale.Color(clicks),
		}
	}

	return shapes
}
