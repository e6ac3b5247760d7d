package repository

import (
	"context"

	"github.com/Kosench/linkpulse/internal/model"
)

// LinkRepository - чтение ссылок по короткому коду
type LinkRepository interface {
	GetByShortCode(ctx context.Context, shortCode string) (*model.Link, error)
}

// ClickRepository - запись кликов и агрегаты по ним
type ClickRepository interface {
	Create(ctx context.Context, click *model.ClickEvent) error
	// CountByCountry возвращает число кликов по коду страны, клики без страны не учитываются
	CountByCountry(ctx context.Context, filter model.ClickFilter) (map[string]int64, error)
}
