package heatmap

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewKeyTable_Normalizes(t *testing.T) {
	table := NewKeyTable(map[string]int64{" br ": 3, "us": 2, "US": 5, "": 7})

	assert.Equal(t, KeyTable{"BR": 3, "US": 7}, table)
}

func TestKeyTable_Count(t *testing.T) {
	aggregate := map[string]int64{"BR": 10, "US": 5}

	tests := []struct {
		name     string
		agg      map[string]int64
		geometry Geometry
		want     int64
	}{
		{
			name:     "iso a2 match",
			agg:      aggregate,
			geometry: Geometry{Name: "Brazil", ISOA2: "BR", ISOA3: "BRA"},
			want:     10,
		},
		{
			name:     "iso a2 lowercase",
			agg:      aggregate,
			geometry: Geometry{Name: "United States of America", ISOA2: " us"},
			want:     5,
		},
		{
			name:     "name fallback does not match alpha-2 aggregate",
			agg:      aggregate,
			geometry: Geometry{Name: "Brazil"},
			want:     0,
		},
		{
			name:     "name fallback matches alpha-3 aggregate",
			agg:      map[string]int64{"BRA": 4},
			geometry: Geometry{Name: "Brazil"},
			want:     4,
		},
		{
			name:     "iso a3 fallback when a2 absent",
			agg:      map[string]int64{"FRA": 8},
			geometry: Geometry{Name: "France", ISOA3: "FRA"},
			want:     8,
		},
		{
			name:     "iso a3 fallback when a2 does not match",
			agg:      map[string]int64{"NOR": 2},
			geometry: Geometry{Name: "Norway", ISOA2: "NO", ISOA3: "NOR"},
			want:     2,
		},
		{
			name:     "a2 preferred over a3",
			agg:      map[string]int64{"DE": 1, "DEU": 9},
			geometry: Geometry{Name: "Germany", ISOA2: "DE", ISOA3: "DEU"},
			want:     1,
		},
		{
			name:     "name from NAME_LONG",
			agg:      map[string]int64{"KOR": 6},
			geometry: Geometry{NameLong: "South Korea"},
			want:     6,
		},
		{
			name:     "no match anywhere",
			agg:      aggregate,
			geometry: Geometry{Name: "Atlantis", ISOA2: "AT", ISOA3: "ATL"},
			want:     0,
		},
		{
			name:     "empty aggregate",
			agg:      map[string]int64{},
			geometry: Geometry{Name: "Brazil", ISOA2: "BR"},
			want:     0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NewKeyTable(tt.agg).Count(tt.geometry))
		})
	}
}

func TestGeometry_DisplayName(t *testing.T) {
	assert.Equal(t, "Brazil", Geometry{Name: "Brazil", NameLong: "Federative Republic of Brazil"}.DisplayName())
	assert.Equal(t, "Republic of Korea", Geometry{NameLong: "Republic of Korea", NameEN: "South Korea"}.DisplayName())
	assert.Equal(t, "South Korea", Geometry{NameEN: "South Korea"}.DisplayName())
	assert.Equal(t, "", Geometry{}.DisplayName())
}

func TestNameToISO3(t *testing.T) {
	code, ok := NameToISO3("United States")
	assert.True(t, ok)
	assert.Equal(t, "USA", code)

	_, ok = NameToISO3("united states")
	assert.False(t, ok)
}
