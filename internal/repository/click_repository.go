package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	apperrors "github.com/Kosench/linkpulse/internal/errors"
	"github.com/Kosench/linkpulse/internal/metrics"
	"github.com/Kosench/linkpulse/internal/model"
)

type PostgresClickRepository struct {
	db *sql.DB
}

func NewPostgresClickRepository(db *sql.DB) *PostgresClickRepository {
	return &PostgresClickRepository{db: db}
}

func (r *PostgresClickRepository) Create(ctx context.Context, click *model.ClickEvent) (err error) {
	start := time.Now()
	defer func() { metrics.ObserveClickPersist(start, err) }()

	query := `
	INSERT INTO clicks (id, link_id, user_id, referrer, user_agent, device, browser, os, ip, country, city, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err = r.db.ExecContext(
		ctx,
		query,
		click.ID,
		click.LinkID,
		click.UserID,
		click.Referrer,
		click.UserAgent,
		string(click.Device),
		click.Browser,
		click.OS,
		click.IP,
		click.Country,
		click.City,
		click.CreatedAt,
	)
	if err != nil {
		return apperrors.NewBusinessError(
			apperrors.CodeDatabase,
			"failed to create click",
			err,
		)
	}

	return nil
}

func (r *PostgresClickRepository) CountByCountry(ctx context.Context, filter model.ClickFilter) (map[string]int64, error) {
	query, args := buildCountByCountryQuery(filter)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewBusinessError(
			apperrors.CodeDatabase,
			"failed to count clicks by country",
			err,
		)
	}
	defer rows.Close()

	counts := make(map[string]int64)
	for rows.Next() {
		var (
			country string
			count   int64
		)
		if err := rows.Scan(&country, &count); err != nil {
			return nil, apperrors.NewBusinessError(apperrors.CodeDatabase, "failed to scan country count", err)
		}
		counts[country] = count
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewBusinessError(apperrors.CodeDatabase, "failed to iterate country counts", err)
	}

	return counts, nil
}

func buildCountByCountryQuery(filter model.ClickFilter) (string, []any) {
	conditions := []string{"country IS NOT NULL", "country <> ''"}
	var args []any

	add := func(cond string, value any) {
		args = append(args, value)
		conditions = append(conditions, fmt.Sprintf(cond, len(args)))
	}

	if filter.UserID != "" {
		add("user_id = $%d", filter.UserID)
	}
	if filter.LinkID != "" {
		add("link_id = $%d", filter.LinkID)
	}
	if filter.From != nil {
		add("created_at >= $%d", *filter.From)
	}
	if filter.To != nil {
		add("created_at < $%d", *filter.To)
	}

	query := "SELECT country, COUNT(*) FROM clicks WHERE " +
		strings.Join(conditions, " AND ") +
		" GROUP BY country"

	return query, args
}
