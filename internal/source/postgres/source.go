package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net"

	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/Srbanana94/dashboard-monitores-energia/internal/model"
	"github.com/Srbanana94/dashboard-monitores-energia/internal/source"
	"github.com/Srbanana94/dashboard-monitores-energia/pkg/logger"
	"github.com/Srbanana94/dashboard-monitores-energia/pkg/retry"
)

var columnNames = map[string]string{
	model.ColCity:          "city",
	model.ColTechnician:    "technician",
	model.ColSiteName:      "site_name",
	model.ColHasMonitor:    "has_monitor",
	model.ColMonitorType:   "monitor_type",
	model.ColMonitorWiring: "monitor_wiring",
	model.ColNotes:         "notes",
	model.ColEvidenceLink:  "evidence_link",
}

type Source struct {
	db       *sql.DB
	table    string
	retryCfg retry.Config
}

func NewSource(dsn, table string) (*Source, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres connection: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, classify(err)
	}

	logger.Info("Postgres source initialized", zap.String("table", table))

	cfg := retry.DefaultConfig()
	cfg.RetryableErrors = []error{source.ErrUnavailable}
	cfg.Logger = logger.Log

	return &Source{db: db, table: table, retryCfg: cfg}, nil
}

func (s *Source) Close() error {
	return s.db.Close()
}

func (s *Source) Name() string {
	return "postgres"
}

func (s *Source) InitSchema() error {
	schema := fmt.Sprintf(`
	CREATE TABLE IF NOT EXISTS %s (
		seq INTEGER NOT NULL,
		city TEXT NOT NULL,
		technician TEXT NOT NULL,
		site_name TEXT NOT NULL DEFAULT '',
		has_monitor TEXT NOT NULL DEFAULT '',
		monitor_type TEXT NOT NULL DEFAULT '',
		monitor_wiring TEXT NOT NULL DEFAULT '',
		notes TEXT NOT NULL DEFAULT '',
		evidence_link TEXT NOT NULL DEFAULT ''
	)`, pq.QuoteIdentifier(s.table))

	if _, err := s.db.Exec(schema); err != nil {
		return classify(err)
	}

	logger.Info("Postgres schema initialized", zap.String("table", s.table))
	return nil
}

func (s *Source) Load(ctx context.Context) ([]model.SiteRecord, error) {
	if missing, err := s.missingColumns(ctx); err != nil {
		return nil, err
	} else if len(missing) > 0 {
		return nil, &source.MissingColumnsError{Columns: missing}
	}

	return retry.DoWithResult(ctx, s.retryCfg, func() ([]model.SiteRecord, error) {
		return s.load(ctx)
	})
}

func (s *Source) load(ctx context.Context) ([]model.SiteRecord, error) {
	query := fmt.Sprintf(`
		SELECT city, technician, site_name, has_monitor, monitor_type, monitor_wiring, notes, evidence_link
		FROM %s ORDER BY seq`, pq.QuoteIdentifier(s.table))

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, classify(err)
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
		return nil, classify(err)
	}

	logger.Info("Records loaded", zap.String("source", s.Name()), zap.Int("count", len(records)))
	return records, nil
}

func (s *Source) Save(ctx context.Context, records []model.SiteRecord) error {
	err := retry.Do(ctx, s.retryCfg, func() error {
		return s.save(ctx, records)
	})
	if err != nil {
		return &source.SaveError{Err: err}
	}
	return nil
}

func (s *Source) save(ctx context.Context, records []model.SiteRecord) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return classify(err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, fmt.Sprintf("DELETE FROM %s", pq.QuoteIdentifier(s.table))); err != nil {
		return classify(err)
	}

	insert := fmt.Sprintf(`
		INSERT INTO %s (seq, city, technician, site_name, has_monitor, monitor_type, monitor_wiring, notes, evidence_link)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`, pq.QuoteIdentifier(s.table))

	stmt, err := tx.PrepareContext(ctx, insert)
	if err != nil {
		return classify(err)
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
			return classify(err)
		}
	}

	if err := tx.Commit(); err != nil {
		return classify(err)
	}

	logger.Info("Records saved", zap.String("source", s.Name()), zap.Int("count", len(records)))
	return nil
}

func (s *Source) missingColumns(ctx context.Context) ([]string, error) {
	query := `SELECT column_name FROM information_schema.columns WHERE table_name = $1`

	rows, err := s.db.QueryContext(ctx, query, s.table)
	if err != nil {
		return nil, classify(err)
	}
	defer rows.Close()

	present := make(map[string]bool)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan column name: %w", err)
		}
		present[name] = true
	}
	if err := rows.Err(); err != nil {
		return nil, classify(err)
	}

	if len(present) == 0 {
		return nil, fmt.Errorf("%w: table %s does not exist", source.ErrNotFound, s.table)
	}

	var missing []string
	for _, col := range model.Columns {
		if !present[columnNames[col]] {
			missing = append(missing, col)
		}
	}
	return missing, nil
}

func classify(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "28000", "28P01":
			return fmt.Errorf("%w: %s", source.ErrAuth, pqErr.Message)
		case "3D000", "42P01":
			return fmt.Errorf("%w: %s", source.ErrNotFound, pqErr.Message)
		}
		return fmt.Errorf("postgres error %s: %s", pqErr.Code, pqErr.Message)
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return fmt.Errorf("%w: %v", source.ErrUnavailable, err)
	}
	if errors.Is(err, sql.ErrConnDone) {
		return fmt.Errorf("%w: %v", source.ErrUnavailable, err)
	}

	return err
}
