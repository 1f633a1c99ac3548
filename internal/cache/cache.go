package cache

import (
	"context"
	"sync"
	"time"

	"github.com/Srbanana94/dashboard-monitores-energia/internal/model"
)

type RecordCache interface {
	Get(ctx context.Context) ([]model.SiteRecord, bool, error)
	Set(ctx context.Context, records []model.SiteRecord) error
	Invalidate(ctx context.Context) error
}

type Memory struct {
	ttl time.Duration

	mu        sync.Mutex
	records   []model.SiteRecord
	loaded    bool
	expiresAt time.Time
}

func NewMemory(ttl time.Duration) *Memory {
	return &Memory{ttl: ttl}
}

func (m *Memory) Get(ctx context.Context) ([]model.SiteRecord, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.loaded || time.Now().After(m.expiresAt) {
		return nil, false, nil
	}

	out := make([]model.SiteRecord, len(m.records))
	copy(out, m.records)
	return out, true, nil
}

func (m *Memory) Set(ctx context.Context, records []model.SiteRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.records = make([]model.SiteRecord, len(records))
	copy(m.records, records)
	m.loaded = true
	m.expiresAt = time.Now().Add(m.ttl)
	return nil
}

func (m *Memory) Invalidate(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.records = nil
	m.loaded = false
	m.expiresAt = time.Time{}
	return nil
}
