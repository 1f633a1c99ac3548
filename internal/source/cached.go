package source

import (
	"context"

	"go.uber.org/zap"

	"github.com/Srbanana94/dashboard-monitores-energia/internal/cache"
	"github.com/Srbanana94/dashboard-monitores-energia/internal/metrics"
	"github.com/Srbanana94/dashboard-monitores-energia/internal/model"
	"github.com/Srbanana94/dashboard-monitores-energia/pkg/logger"
)

// Cached serves Load from a bounded-freshness cache. Save deliberately does
// not touch the cache: entries expire on their TTL or via ForceRefresh.
type Cached struct {
	src   Source
	cache cache.RecordCache
}

func NewCached(src Source, c cache.RecordCache) *Cached {
	return &Cached{src: src, cache: c}
}

func (c *Cached) Name() string {
	return c.src.Name()
}

func (c *Cached) Load(ctx context.Context) ([]model.SiteRecord, error) {
	records, ok, err := c.cache.Get(ctx)
	if err != nil {
		logger.Warn("Record cache read failed", zap.Error(err))
	}
	if ok {
		metrics.CacheHits.Inc()
		return records, nil
	}
	metrics.CacheMisses.Inc()

	records, err = c.src.Load(ctx)
	if err != nil {
		metrics.LoadsTotal.WithLabelValues(c.src.Name(), "failure").Inc()
		return nil, err
	}
	metrics.LoadsTotal.WithLabelValues(c.src.Name(), "success").Inc()
	metrics.RecordsLoaded.Set(float64(len(records)))

	if err := c.cache.Set(ctx, records); err != nil {
		logger.Warn("Record cache write failed", zap.Error(err))
	}

	return records, nil
}

func (c *Cached) ForceRefresh(ctx context.Context) ([]model.SiteRecord, error) {
	if err := c.cache.Invalidate(ctx); err != nil {
		logger.Warn("Record cache invalidation failed", zap.Error(err))
	}
	return c.Load(ctx)
}

func (c *Cached) Writable() bool {
	_, ok := c.src.(WritableSource)
	return ok
}

func (c *Cached) Save(ctx context.Context, records []model.SiteRecord) error {
	w, ok := c.src.(WritableSource)
	if !ok {
		return ErrReadOnly
	}
	return w.Save(ctx, records)
}
