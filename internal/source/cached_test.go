package source

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Srbanana94/dashboard-monitores-energia/internal/cache"
	"github.com/Srbanana94/dashboard-monitores-energia/internal/model"
)

type countingSource struct {
	records []model.SiteRecord
	loads   int
	saves   int
}

func (s *countingSource) Name() string { return "counting" }

func (s *countingSource) Load(ctx context.Context) ([]model.SiteRecord, error) {
	s.loads++
	return s.records, nil
}

func (s *countingSource) Save(ctx context.Context, records []model.SiteRecord) error {
	s.saves++
	s.records = records
	return nil
}

func TestCachedLoadHitsSourceOnce(t *testing.T) {
	src := &countingSource{records: []model.SiteRecord{{City: "A", Technician: "X"}}}
	cached := NewCached(src, cache.NewMemory(time.Minute))
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		records, err := cached.Load(ctx)
		require.NoError(t, err)
		assert.Len(t, records, 1)
	}

	assert.Equal(t, 1, src.loads)
}

func TestCachedLoadReloadsAfterExpiry(t *testing.T) {
	src := &countingSource{}
	cached := NewCached(src, cache.NewMemory(10*time.Millisecond))
	ctx := context.Background()

	_, err := cached.Load(ctx)
	require.NoError(t, err)
	time.Sleep(30 * time.Millisecond)
	_, err = cached.Load(ctx)
	require.NoError(t, err)

	assert.Equal(t, 2, src.loads)
}

func TestCachedSaveDoesNotInvalidate(t *testing.T) {
	src := &countingSource{records: []model.SiteRecord{{City: "A", Technician: "X", HasMonitor: "Não"}}}
	cached := NewCached(src, cache.NewMemory(time.Minute))
	ctx := context.Background()

	before, err := cached.Load(ctx)
	require.NoError(t, err)

	edited := []model.SiteRecord{{City: "A", Technician: "X", HasMonitor: "Sim"}}
	require.NoError(t, cached.Save(ctx, edited))

	after, err := cached.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, before, after)
	assert.Equal(t, 1, src.loads)
}

func TestCachedForceRefresh(t *testing.T) {
	src := &countingSource{records: []model.SiteRecord{{City: "A", Technician: "X", HasMonitor: "Não"}}}
	cached := NewCached(src, cache.NewMemory(time.Minute))
	ctx := context.Background()

	_, err := cached.Load(ctx)
	require.NoError(t, err)

	edited := []model.SiteRecord{{City: "A", Technician: "X", HasMonitor: "Sim"}}
	require.NoError(t, cached.Save(ctx, edited))

	records, err := cached.ForceRefresh(ctx)
	require.NoError(t, err)
	assert.Equal(t, edited, records)
	assert.Equal(t, 2, src.loads)
}

func TestCachedSaveReadOnlySource(t *testing.T) {
	src := &readOnly{}
	cached := NewCached(src, cache.NewMemory(time.Minute))

	assert.False(t, cached.Writable())
	err := cached.Save(context.Background(), nil)
	assert.ErrorIs(t, err, ErrReadOnly)
}

type readOnly struct{}

func (s *readOnly) Name() string { return "readonly" }

func (s *readOnly) Load(ctx context.Context) ([]model.SiteRecord, error) {
	return nil, nil
}
