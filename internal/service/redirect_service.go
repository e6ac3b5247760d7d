package service

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/Kosench/linkpulse/internal/errors"
	"github.com/Kosench/linkpulse/internal/logging"
	"github.com/Kosench/linkpulse/internal/metrics"
	"github.com/Kosench/linkpulse/internal/model"
	"github.com/Kosench/linkpulse/internal/repository"
	"github.com/Kosench/linkpulse/internal/utils"
)

// AttributionExtractor - то, что сервису нужно от tracking.Extractor
type AttributionExtractor interface {
	Extract(ctx context.Context, r *http.Request) model.AttributionRecord
}

type RedirectService struct {
	links     *LinkResolver
	extractor AttributionExtractor
	clicks    repository.ClickRepository
	newID     func() string
	now       func() time.Time
}

func NewRedirectService(links *LinkResolver, extractor AttributionExtractor, clicks repository.ClickRepository) *RedirectService {
	return &RedirectService{
		links:     links,
		extractor: extractor,
		clicks:    clicks,
		newID:     uuid.NewString,
		now:       time.Now,
	}
}

// Redirect проводит запрос через конвейер: поиск ссылки, проверка состояния,
// атрибуция, запись клика. Возвращает URL для редиректа только после
// успешной записи клика.
//
// Ошибки: ErrLinkNotFound, ErrLinkInactive, ErrLinkExpired или *BusinessError.
func (s *RedirectService) Redirect(ctx context.Context, shortCode string, r *http.Request) (string, error) {
	link, validity, err := s.links.Resolve(ctx, shortCode)
	if err != nil {
		metrics.RecordRedirect(metrics.OutcomeError)
		return "", fmt.Errorf("resolve link %q: %w", shortCode, err)
	}

	if validity != Valid {
		metrics.RecordRedirect(validity.String())
		logging.Ctx(ctx).Debug().Str("short_code", shortCode).Str("state", validity.String()).Msg("link not redirectable")
		return "", validity.Err()
	}

	if err := utils.ValidateURL(link.OriginalURL); err != nil {
		metrics.RecordRedirect(metrics.OutcomeError)
		return "", apperrors.NewBusinessError(apperrors.CodeInvalidTarget, "link target is not redirectable", err)
	}

	rec := s.extractor.Extract(ctx, r)
	click := model.NewClickEvent(s.newID(), link, rec, s.now().UTC())

	// запись доводится до конца, даже если клиент отключился
	if err := s.clicks.Create(context.WithoutCancel(ctx), click); err != nil {
		metrics.RecordRedirect(metrics.OutcomeError)
		return "", fmt.Errorf("persist click for link %s: %w", link.ID, err)
	}

	metrics.RecordRedirect(metrics.OutcomeRedirected)
	logging.Ctx(ctx).Debug().
		Str("short_code", shortCode).
		Str("click_id", click.ID).
		Str("device", string(click.Device)).
		Msg("click recorded")

	return link.OriginalURL, nil
}
