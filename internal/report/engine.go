package report

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Srbanana94/dashboard-monitores-energia/internal/metrics"
	"github.com/Srbanana94/dashboard-monitores-energia/internal/model"
	"github.com/Srbanana94/dashboard-monitores-energia/internal/source"
	"github.com/Srbanana94/dashboard-monitores-energia/pkg/logger"
)

type Engine struct {
	src *source.Cached
}

func NewEngine(src *source.Cached) *Engine {
	return &Engine{src: src}
}

func (e *Engine) Writable() bool {
	return e.src.Writable()
}

func (e *Engine) Dashboard(ctx context.Context, sel Selector, onlyUnmonitored bool) (*RenderModel, error) {
	startTime := time.Now()

	records, err := e.src.Load(ctx)
	if err != nil {
		if errors.Is(err, source.ErrNotFound) {
			logger.Warn("Data source not found, rendering empty state", zap.Error(err))
			m := BuildRenderModel(nil, onlyUnmonitored)
			m.Notice = "Fonte de dados não encontrada. Nenhum registro para exibir."
			return &m, nil
		}
		return nil, err
	}

	subset := Filter(records, sel)
	m := BuildRenderModel(subset, onlyUnmonitored)

	metrics.PipelineDuration.Observe(time.Since(startTime).Seconds())
	logger.Debug("Dashboard built",
		zap.String("city", sel.City),
		zap.String("technician", sel.Technician),
		zap.Int("records", len(records)),
		zap.Int("matched", len(subset)),
	)

	return &m, nil
}

func (e *Engine) FilterOptions(ctx context.Context) (*FilterOptions, error) {
	records, err := e.src.Load(ctx)
	if err != nil {
		if errors.Is(err, source.ErrNotFound) {
			opts := BuildFilterOptions(nil)
			return &opts, nil
		}
		return nil, err
	}

	opts := BuildFilterOptions(records)
	return &opts, nil
}

func (e *Engine) Records(ctx context.Context) ([]model.SiteRecord, error) {
	records, err := e.src.Load(ctx)
	if err != nil {
		if errors.Is(err, source.ErrNotFound) {
			return []model.SiteRecord{}, nil
		}
		return nil, err
	}
	return records, nil
}

func (e *Engine) Replace(ctx context.Context, records []model.SiteRecord) error {
	startTime := time.Now()
	saveID := uuid.New().String()

	for i, r := range records {
		if err := r.Validate(); err != nil {
			return &InvalidRecordError{Index: i, Err: err}
		}
	}

	if err := e.src.Save(ctx, records); err != nil {
		metrics.SavesTotal.WithLabelValues("failure").Inc()
		logger.Error("Save failed",
			zap.String("save_id", saveID),
			zap.Int("records", len(records)),
			zap.Error(err),
		)
		return err
	}

	metrics.SavesTotal.WithLabelValues("success").Inc()
	logger.Info("Save completed",
		zap.String("save_id", saveID),
		zap.Int("records", len(records)),
		zap.Duration("elapsed", time.Since(startTime)),
	)

	return nil
}

func (e *Engine) Refresh(ctx context.Context) (int, error) {
	records, err := e.src.ForceRefresh(ctx)
	if err != nil {
		if errors.Is(err, source.ErrNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return len(records), nil
}

type InvalidRecordError struct {
	Index int
	Err   error
}

func (e *InvalidRecordError) Error() string {
	return fmt.Sprintf("invalid record at index %d: %v", e.Index, e.Err)
}

func (e *InvalidRecordError) Unwrap() error {
	return e.Err
}
