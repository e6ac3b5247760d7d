// Package heatmap сопоставляет агрегат кликов по странам с геометриями карты
// и раскрашивает их.
package heatmap

import "strings"

// Geometry - идентификаторы одной фигуры страны из набора геометрий
type Geometry struct {
	Name     string `json:"name"`
	NameLong string `json:"name_long,omitempty"`
	NameEN   string `json:"name_en,omitempty"`
	ISOA2    string `json:"iso_a2,omitempty"`
	ISOA3    string `json:"iso_a3,omitempty"`
}

// DisplayName - первое непустое из NAME, NAME_LONG, NAME_EN
func (g Geometry) DisplayName() string {
	for _, name := range []string{g.Name, g.NameLong, g.NameEN} {
		if name != "" {
			return name
		}
	}
	return ""
}

// KeyTable - нормализованный агрегат кликов. Строится один раз на проход
// рендеринга и передается явно, глобального состояния нет.
type KeyTable map[string]int64

func normalizeKey(key string) string {
	return strings.ToUpper(strings.TrimSpace(key))
}

// NewKeyTable нормализует ключи агрегата. Ключи, совпавшие после
// нормализации ("us" и "US"), суммируются.
func NewKeyTable(aggregate map[string]int64) KeyTable {
	table := make(KeyTable, len(aggregate))
	for key, count := range aggregate {
		k := normalizeKey(key)
		if k == "" {
			continue
		}
		table[k] += count
	}
	return table
}

func (t KeyTable) lookup(key string) (int64, bool) {
	k := normalizeKey(key)
	if k == "" {
		return 0, false
	}
	count, ok := t[k]
	if !ok || count <= 0 {
		return 0, false
	}
	return count, true
}

// Count возвращает число кликов для геометрии: ISO_A2, затем ISO_A3,
// затем имя через таблицу имен. Если ничего не подошло - 0.
//
// 0 означает и "кликов не было", и "сопоставить не удалось":
// различить эти случаи по результату нельзя.
func (t KeyTable) Count(g Geometry) int64 {
	if count, ok := t.lookup(g.ISOA2); ok {
		return count
	}

	if count, ok := t.lookup(g.ISOA3); ok {
		return count
	}

	if code, ok := NameToISO3(g.DisplayName()); ok {
		if count, ok := t.lookup(code); ok {
			return count
		}
	}

	return 0
}
