package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	apperrors "github.com/Kosench/linkpulse/internal/errors"
	"github.com/Kosench/linkpulse/internal/model"
)

type PostgresLinkRepository struct {
	db *sql.DB
}

func NewPostgresLinkRepository(db *sql.DB) *PostgresLinkRepository {
	return &PostgresLinkRepository{db: db}
}

func (r *PostgresLinkRepository) GetByShortCode(ctx context.Context, shortCode string) (*model.Link, error) {
	query := `
	SELECT id, short_code, original_url, user_id, is_active, expires_at, created_at
	FROM links
	WHERE short_code = $1
	`

	link := &model.Link{}
	var expiresAt sql.NullTime

	err := r.db.QueryRowContext(ctx, query, shortCode).Scan(
		&link.ID,
		&link.ShortCode,
		&link.OriginalURL,
		&link.UserID,
		&link.IsActive,
		&expiresAt,
		&link.CreatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("link with short code '%s': %w", shortCode, apperrors.ErrLinkNotFound)
	}

	if err != nil {
		return nil, apperrors.NewBusinessError(
			apperrors.CodeDatabase,
			"failed to get link",
			err,
		)
	}

	if expiresAt.Valid {
		t := expiresAt.Time
		link.ExpiresAt = &t
	}

	return link, nil
}
