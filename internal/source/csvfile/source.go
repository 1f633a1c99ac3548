package csvfile

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/Srbanana94/dashboard-monitores-energia/internal/model"
	"github.com/Srbanana94/dashboard-monitores-energia/internal/source"
	"github.com/Srbanana94/dashboard-monitores-energia/pkg/logger"
)

type Source struct {
	path string
}

func NewSource(path string) *Source {
	logger.Info("CSV source initialized", zap.String("path", path))
	return &Source{path: path}
}

func (s *Source) Name() string {
	return "csv"
}

func (s *Source) Load(ctx context.Context) ([]model.SiteRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: file %s", source.ErrNotFound, s.path)
		}
		if errors.Is(err, os.ErrPermission) {
			return nil, fmt.Errorf("%w: file %s", source.ErrAuth, s.path)
		}
		return nil, fmt.Errorf("failed to open %s: %w", s.path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header from %s: %w", s.path, err)
	}

	idx, missing := model.IndexHeader(header)
	if len(missing) > 0 {
		return nil, &source.MissingColumnsError{Columns: missing}
	}

	var records []model.SiteRecord
	line := 1
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read row %d from %s: %w", line+1, s.path, err)
		}
		line++

		rec, err := model.FromRow(idx, row)
		if err != nil {
			logger.Warn("Skipping invalid row",
				zap.String("source", s.Name()),
				zap.Int("line", line),
				zap.Error(err),
			)
			continue
		}
		records = append(records, rec)
	}

	logger.Info("Records loaded", zap.String("source", s.Name()), zap.Int("count", len(records)))
	return records, nil
}
