package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	appErrors "github.com/studytrack/studytrack-api/pkg/errors"
)

type mockCacheRepo struct {
	store       map[string]interface{}
	invalidated []string
	getErr      error
}

func (m *mockCacheRepo) Get(ctx context.Context, key string, dest interface{}) error {
	if m.getErr != nil {
		return m.getErr
	}
	if _, ok := m.store[key]; !ok {
		return appErrors.ErrCacheMiss
	}
	return nil
}

func (m *mockCacheRepo) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if m.store == nil {
		m.store = make(map[string]interface{})
	}
	m.store[key] = value
	return nil
}

func (m *mockCacheRepo) DeleteByPattern(ctx context.Context, pattern string) error {
	m.invalidated = append(m.invalidated, pattern)
	return nil
}

func TestCacheServiceDisabledIsNoOp(t *testing.T) {
	repo := &mockCacheRepo{}
	svc := NewCacheService(repo, nil, time.Minute, zap.NewNop(), false)

	var dest string
	hit, err := svc.Get(context.Background(), "key", &dest)
	require.NoError(t, err)
	assert.False(t, hit)

	require.NoError(t, svc.Set(context.Background(), "key", "value", 0))
	assert.Empty(t, repo.store)
}

func TestCacheServiceMissThenHit(t *testing.T) {
	repo := &mockCacheRepo{}
	svc := NewCacheService(repo, nil, time.Minute, zap.NewNop(), true)

	var dest string
	hit, err := svc.Get(context.Background(), DashboardCacheKey, &dest)
	require.NoError(t, err)
	assert.False(t, hit)

	require.NoError(t, svc.Set(context.Background(), DashboardCacheKey, "payload", 0))

	hit, err = svc.Get(context.Background(), DashboardCacheKey, &dest)
	require.NoError(t, err)
	assert.True(t, hit)
}

func TestCacheServiceInvalidate(t *testing.T) {
	repo := &mockCacheRepo{}
	svc := NewCacheService(repo, nil, time.Minute, zap.NewNop(), true)

	require.NoError(t, svc.Invalidate(context.Background(), DashboardCachePattern))
	assert.Equal(t, []string{DashboardCachePattern}, repo.invalidated)
}

func TestCacheServiceNilReceiver(t *testing.T) {
	var svc *CacheService
	assert.False(t, svc.Enabled())
}
