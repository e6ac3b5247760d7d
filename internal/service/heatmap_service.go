package service

import (
	"context"
	"fmt"

	apperrors "github.com/Kosench/linkpulse/internal/errors"
	"github.com/Kosench/linkpulse/internal/heatmap"
	"github.com/Kosench/linkpulse/internal/model"
	"github.com/Kosench/linkpulse/internal/repository"
)

// HeatmapResult - сырой агрегат по странам и раскраска всех геометрий
type HeatmapResult struct {
	Countries map[string]int64     `json:"countries"`
	Shapes    []heatmap.ShapeColor `json:"shapes"`
}

type HeatmapService struct {
	clicks   repository.ClickRepository
	renderer *heatmap.Renderer
}

func NewHeatmapService(clicks repository.ClickRepository, renderer *heatmap.Renderer) *HeatmapService {
	return &HeatmapService{clicks: clicks, renderer: renderer}
}

func (s *HeatmapService) Heatmap(ctx context.Context, filter model.ClickFilter) (*HeatmapResult, error) {
	if filter.UserID == "" {
		return nil, apperrors.NewValidationError("user_id", "user_id is required")
	}
	if filter.From != nil && filter.To != nil && filter.From.After(*filter.To) {
		return nil, apperrors.NewValidationError("from", "from must not be after to")
	}

	counts, err := s.clicks.CountByCountry(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("count clicks by country: %w", err)
	}

	return &HeatmapResult{
		Countries: counts,
		Shapes:    s.renderer.Render(counts),
	}, nil
}
