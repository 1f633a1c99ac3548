package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"github.com/Srbanana94/dashboard-monitores-energia/internal/model"
	"github.com/Srbanana94/dashboard-monitores-energia/internal/source"
	"github.com/Srbanana94/dashboard-monitores-energia/pkg/logger"
)

type Source struct {
	db *sql.DB
}

func NewSource(dbPath string) (*Source, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	logger.Info("SQLite source initialized", zap.String("path", dbPath))

	return &Source{db: db}, nil
}

func (s *Source) Close() error {
	return s.db.Close()
}

func (s *Source) Name() string {
	return "sqlite"
}

func (s *Source) InitSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS monitor_sites (
		seq INTEGER NOT NULL,
		city TEXT NOT NULL,
		technician TEXT NOT NULL,
		site_name TEXT NOT NULL DEFAULT '',
		has_monitor TEXT NOT NULL DEFAULT '',
		monitor_type TEXT NOT NULL DEFAULT '',
		monitor_wiring TEXT NOT NULL DEFAULT '',
		notes TEXT NOT NULL DEFAULT '',
		evidence_link TEXT NOT NULL DEFAULT ''
	);
	CREATE INDEX IF NOT EXISTS idx_sites_seq ON monitor_sites(seq);
	`

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}

	logger.Info("SQLite schema initialized")
	return nil
}

func (s *Source) Load(ctx context.Context) ([]model.SiteRecord, error) {
	query := `
		SELECT city, technician, site_name, has_monitor, monitor_type, monitor_wiring, notes, evidence_link
		FROM monitor_sites ORDER BY seq`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to load records: %w", err)
	}
	defer rows.Close()

	var records []model.SiteRecord
	line := 0
	for rows.Next() {
		var r model.SiteRecord
		err := rows.Scan(
			&r.City,
			&r.Technician,
			&r.SiteName,
			&r.HasMonitor,
			&r.MonitorType,
			&r.MonitorWiring,
			&r.Notes,
			&r.EvidenceLink,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		line++

		if err := r.Validate(); err != nil {
			logger.Warn("Skipping invalid row",
				zap.String("source", s.Name()),
				zap.Int("row", line),
				zap.Error(err),
			)
			continue
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to load records: %w", err)
	}

	logger.Info("Records loaded", zap.String("source", s.Name()), zap.Int("count", len(records)))
	return records, nil
}

func (s *Source) Save(ctx context.Context, records []model.SiteRecord) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return &source.SaveError{Err: err}
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM monitor_sites"); err != nil {
		return &source.SaveError{Err: err}
	}

	insert := `
		INSERT INTO monitor_sites (seq, city, technician, site_name, has_monitor, monitor_type, monitor_wiring, notes, evidence_link)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	stmt, err := tx.PrepareContext(ctx, insert)
	if err != nil {
		return &source.SaveError{Err: err}
	}
	defer stmt.Close()

	for i, r := range records {
		_, err := stmt.ExecContext(ctx, i,
			r.City,
			r.Technician,
			r.SiteName,
			r.HasMonitor,
			r.MonitorType,
			r.MonitorWiring,
			r.Notes,
			r.EvidenceLink,
		)
		if err != nil {
			return &source.SaveError{Err: err}
		}
	}

	if err := tx.Commit(); err != nil {
		return &source.SaveError{Err: err}
	}

	logger.Info("Records saved", zap.String("source", s.Name()), zap.Int("count", len(records)))
	return nil
}
