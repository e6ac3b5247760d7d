package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/Kosench/linkpulse/internal/errors"
	"github.com/Kosench/linkpulse/internal/logging"
)

// Тела ответов редиректа - часть внешнего контракта
const (
	msgLinkNotFound = "Link not found"
	msgLinkInactive = "Link is inactive"
	msgLinkExpired  = "Link has expired"
	msgInternal     = "Internal server error"
)

// Redirector - сервис, который ведет запрос от кода до целевого URL
type Redirector interface {
	Redirect(ctx context.Context, shortCode string, r *http.Request) (string, error)
}

type RedirectHandler struct {
	svc Redirector
}

func NewRedirectHandler(svc Redirector) *RedirectHandler {
	return &RedirectHandler{svc: svc}
}

// Redirect - GET /:shortCode
func (h *RedirectHandler) Redirect(c *gin.Context) {
	shortCode := c.Param("shortCode")
	ctx := c.Request.Context()

	target, err := h.svc.Redirect(ctx, shortCode, c.Request)
	if err != nil {
		h.handleError(c, shortCode, err)
		return
	}

	c.Redirect(http.StatusFound, target)
}

func (h *RedirectHandler) handleError(c *gin.Context, shortCode string, err error) {
	switch {
	case errors.Is(err, apperrors.ErrLinkNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": msgLinkNotFound})
	case apperrors.IsLinkGone(err):
		msg := msgLinkInactive
		if errors.Is(err, apperrors.ErrLinkExpired) {
			msg = msgLinkExpired
		}
		c.JSON(http.StatusGone, gin.H{"error": msg})
	default:
		// причина только в лог, клиенту - общий ответ
		event := logging.Ctx(c.Request.Context()).Error().Err(err).Str("short_code", shortCode)
		if be := apperrors.GetBusinessError(err); be != nil {
			event = event.Str("code", be.Code)
		}
		event.Msg("redirect failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": msgInternal})
	}
}
