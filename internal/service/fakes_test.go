package service

import (
	"context"
	"net/http"
	"sync"

	apperrors "github.com/Kosench/linkpulse/internal/errors"
	"github.com/Kosench/linkpulse/internal/model"
)

type fakeLinks struct {
	links map[string]*model.Link
	err   error
	calls int
}

func (f *fakeLinks) GetByShortCode(ctx context.Context, shortCode string) (*model.Link, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	if link, ok := f.links[shortCode]; ok {
		return link, nil
	}
	return nil, apperrors.ErrLinkNotFound
}

type fakeClicks struct {
	mu      sync.Mutex
	created []*model.ClickEvent
	ctxErr  error
	err     error
	counts  map[string]int64
	filter  model.ClickFilter
}

func (f *fakeClicks) Create(ctx context.Context, click *model.ClickEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ctxErr = ctx.Err()
	if f.err != nil {
		return f.err
	}
	f.created = append(f.created, click)
	return nil
}

func (f *fakeClicks) CountByCountry(ctx context.Context, filter model.ClickFilter) (map[string]int64, error) {
	f.filter = filter
	if f.err != nil {
		return nil, f.err
	}
	return f.counts, nil
}

type fakeExtractor struct {
	rec   model.AttributionRecord
	calls int
}

func (f *fakeExtractor) Extract(ctx context.Context, r *http.Request) model.AttributionRecord {
	f.calls++
	return f.rec
}
