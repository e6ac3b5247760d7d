package service

import (
	"context"
	"errors"
	"time"

	apperrors "github.com/Kosench/linkpulse/internal/errors"
	"github.com/Kosench/linkpulse/internal/model"
	"github.com/Kosench/linkpulse/internal/repository"
	"github.com/Kosench/linkpulse/internal/utils"
)

// Validity - состояние ссылки с точки зрения редиректа
type Validity int

const (
	Valid Validity = iota
	NotFound
	Inactive
	Expired
)

func (v Validity) String() string {
	switch v {
	case Valid:
		return "valid"
	case NotFound:
		return "not_found"
	case Inactive:
		return "inactive"
	case Expired:
		return "expired"
	default:
		return "unknown"
	}
}

// Err возвращает sentinel-ошибку для невалидного состояния, nil для Valid
func (v Validity) Err() error {
	switch v {
	case NotFound:
		return apperrors.ErrLinkNotFound
	case Inactive:
		return apperrors.ErrLinkInactive
	case Expired:
		return apperrors.ErrLinkExpired
	default:
		return nil
	}
}

// Evaluate проверяет существование, затем флаг активности, затем срок действия
func Evaluate(link *model.Link, now time.Time) Validity {
	if link == nil {
		return NotFound
	}
	if !link.IsActive {
		return Inactive
	}
	if link.ExpiresAt != nil && link.ExpiresAt.Before(now) {
		return Expired
	}
	return Valid
}

type LinkResolver struct {
	repo repository.LinkRepository
	now  func() time.Time
}

func NewLinkResolver(repo repository.LinkRepository) *LinkResolver {
	return &LinkResolver{repo: repo, now: time.Now}
}

// Resolve ищет ссылку и оценивает ее состояние. Ошибка возвращается
// только при сбое хранилища. Код неверного формата - NotFound без обращения к хранилищу.
func (r *LinkResolver) Resolve(ctx context.Context, shortCode string) (*model.Link, Validity, error) {
	if err := utils.ValidateShortCode(shortCode); err != nil {
		return nil, NotFound, nil
	}

	link, err := r.repo.GetByShortCode(ctx, shortCode)
	if errors.Is(err, apperrors.ErrLinkNotFound) {
		return nil, NotFound, nil
	}
	if err != nil {
		return nil, NotFound, err
	}

	return link, Evaluate(link, r.now()), nil
}
