package source

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Srbanana94/dashboard-monitores-energia/internal/model"
)

var (
	ErrNotFound    = errors.New("data source not found")
	ErrAuth        = errors.New("data source authorization failed")
	ErrUnavailable = errors.New("data source unavailable")
	ErrReadOnly    = errors.New("data source does not support save")
)

type MissingColumnsError struct {
	Columns []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("source is missing required columns: %s", strings.Join(e.Columns, ", "))
}

type SaveError struct {
	Err error
}

func (e *SaveError) Error() string {
	return fmt.Sprintf("save failed: %v", e.Err)
}

func (e *SaveError) Unwrap() error {
	return e.Err
}

type Source interface {
	Name() string
	Load(ctx context.Context) ([]model.SiteRecord, error)
}

type WritableSource interface {
	Source
	Save(ctx context.Context, records []model.SiteRecord) error
}
