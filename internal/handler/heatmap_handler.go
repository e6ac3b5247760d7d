package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "github.com/Kosench/linkpulse/internal/errors"
	"github.com/Kosench/linkpulse/internal/logging"
	"github.com/Kosench/linkpulse/internal/model"
	"github.com/Kosench/linkpulse/internal/service"
)

type HeatmapProvider interface {
	Heatmap(ctx context.Context, filter model.ClickFilter) (*service.HeatmapResult, error)
}

type HeatmapHandler struct {
	svc HeatmapProvider
}

func NewHeatmapHandler(svc HeatmapProvider) *HeatmapHandler {
	return &HeatmapHandler{svc: svc}
}

// GetHeatmap - GET /api/analytics/heatmap?user_id=&link_id=&from=&to=
func (h *HeatmapHandler) GetHeatmap(c *gin.Context) {
	filter := model.ClickFilter{
		UserID: c.Query("user_id"),
		LinkID: c.Query("link_id"),
	}

	var err error
	if filter.From, err = parseTimeParam(c.Query("from"), "from"); err != nil {
		h.handleError(c, err)
		return
	}
	if filter.To, err = parseTimeParam(c.Query("to"), "to"); err != nil {
		h.handleError(c, err)
		return
	}

	result, err := h.svc.Heatmap(c.Request.Context(), filter)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// parseTimeParam принимает RFC3339 или дату YYYY-MM-DD (UTC)
func parseTimeParam(value, field string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}

	for _, layout := range []string{time.RFC3339, time.DateOnly} {
		if t, err := time.Parse(layout, value); err == nil {
			return &t, nil
		}
	}

	return nil, apperrors.NewValidationError(field, "expected RFC3339 timestamp or YYYY-MM-DD date")
}

func (h *HeatmapHandler) handleError(c *gin.Context, err error) {
	if validationErr := apperrors.GetValidationError(err); validationErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "validation_error",
			"message": validationErr.Message,
			"field":   validationErr.Field,
		})
		return
	}

	logging.Ctx(c.Request.Context()).Error().Err(err).Msg("heatmap query failed")
	c.JSON(http.StatusInternalServerError, gin.H{"error": msgInternal})
}
