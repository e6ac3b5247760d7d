package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/Kosench/linkpulse/internal/errors"
	"github.com/Kosench/linkpulse/internal/model"
)

func TestEvaluate(t *testing.T) {
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Minute)
	future := now.Add(time.Minute)

	tests := []struct {
		name string
		link *model.Link
		want Validity
	}{
		{name: "missing", link: nil, want: NotFound},
		{name: "active without expiry", link: &model.Link{IsActive: true}, want: Valid},
		{name: "active future expiry", link: &model.Link{IsActive: true, ExpiresAt: &future}, want: Valid},
		{name: "expiry exactly now", link: &model.Link{IsActive: true, ExpiresAt: &now}, want: Valid},
		{name: "active past expiry", link: &model.Link{IsActive: true, ExpiresAt: &past}, want: Expired},
		{name: "inactive", link: &model.Link{IsActive: false}, want: Inactive},
		{name: "inactive wins over expired", link: &model.Link{IsActive: false, ExpiresAt: &past}, want: Inactive},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Evaluate(tt.link, now))
		})
	}
}

func TestValidity_Err(t *testing.T) {
	assert.NoError(t, Valid.Err())
	assert.ErrorIs(t, NotFound.Err(), apperrors.ErrLinkNotFound)
	assert.ErrorIs(t, Inactive.Err(), apperrors.ErrLinkInactive)
	assert.ErrorIs(t, Expired.Err(), apperrors.ErrLinkExpired)
}

func TestLinkResolver_Resolve(t *testing.T) {
	repo := &fakeLinks{links: map[string]*model.Link{
		"abc123": {ID: "link-1", ShortCode: "abc123", IsActive: true},
	}}
	r := NewLinkResolver(repo)

	link, v, err := r.Resolve(context.Background(), "abc123")
	require.NoError(t, err)
	assert.Equal(t, Valid, v)
	assert.Equal(t, "link-1", link.ID)

	link, v, err = r.Resolve(context.Background(), "missing")
	require.NoError(t, err)
	assert.Equal(t, NotFound, v)
	assert.Nil(t, link)
}

func TestLinkResolver_InvalidCodeSkipsStore(t *testing.T) {
	repo := &fakeLinks{}
	r := NewLinkResolver(repo)

	_, v, err := r.Resolve(context.Background(), "../../etc/passwd")

	require.NoError(t, err)
	assert.Equal(t, NotFound, v)
	assert.Zero(t, repo.calls)
}

func TestLinkResolver_StoreError(t *testing.T) {
	repo := &fakeLinks{err: apperrors.NewBusinessError(apperrors.CodeDatabase, "failed to get link", errors.New("conn reset"))}
	r := NewLinkResolver(repo)

	_, _, err := r.Resolve(context.Background(), "abc123")

	assert.NotNil(t, apperrors.GetBusinessError(err))
}

func TestLinkResolver_DottedCodeReachesStore(t *testing.T) {
	repo := &fakeLinks{links: map[string]*model.Link{
		"a.b": {ID: "link-2", ShortCode: "a.b", IsActive: true},
	}}
	r := NewLinkResolver(repo)

	link, v, err := r.Resolve(context.Background(), "a.b")

	require.NoError(t, err)
	assert.Equal(t, Valid, v)
	assert.Equal(t, "link-2", link.ID)
	assert.Equal(t, 1, repo.calls)
}
