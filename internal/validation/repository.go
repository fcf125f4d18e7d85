package validation

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"time"

	"codeberg.org/mutker/deepcoolctl/internal/errors"
	"codeberg.org/mutker/deepcoolctl/internal/logger"
	_ "github.com/mattn/go-sqlite3"
)

type repository struct {
	db     *sql.DB
	logger logger.Logger
	cfg    Config
}

func newRepository(cfg Config, log logger.Logger) (*repository, error) {
	errFactory := errors.New()

	if cfg.DBPath == "" {
		return nil, errFactory.New(ErrInvalidDBPath)
	}

	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), defaultDirPerm); err != nil {
		return nil, errFactory.WithData(ErrStorageInit, struct {
			Phase string
			Path  string
			Error string
		}{
			Phase: "create_directory",
			Path:  cfg.DBPath,
			Error: err.Error(),
		})
	}

	db, err := sql.Open("sqlite3", cfg.DBPath+"?_journal=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, errFactory.WithData(ErrStorageInit, struct {
			Phase string
			Error string
		}{
			Phase: "open_database",
			Error: err.Error(),
		})
	}

	if err := ValidateAndUpdateSchema(db, cfg.backupDir(), log); err != nil {
		db.Close()
		return nil, errFactory.Wrap(ErrStorageInit, err)
	}

	log.Info().
		Str("path", cfg.DBPath).
		Int("schema_version", SchemaVersion).
		Msg("Validation ledger opened")

	return &repository{db: db, logger: log, cfg: cfg}, nil
}

func (r *repository) Record(ctx context.Context, result *Result) error {
	errFactory := errors.New()

	if result == nil || result.Model == "" || !result.Outcome.IsValid() {
		return errFactory.WithData(ErrInvalidEntry, result)
	}

	recordedAt := result.RecordedAt
	if recordedAt.IsZero() {
		recordedAt = time.Now()
	}

	_, err := r.db.ExecContext(ctx, insertResultSQL,
		recordedAt.Unix(),
		result.Model,
		int64(result.VendorID),
		int64(result.ProductID),
		boolToInt(result.Rearranged),
		result.Mode,
		int64(result.Value),
		string(result.Outcome),
	)
	if err != nil {
		return errFactory.Wrap(ErrRecordFailed, err)
	}

	r.logger.Debug().
		Str("model", result.Model).
		Str("mode", result.Mode).
		Int("value", result.Value).
		Str("outcome", string(result.Outcome)).
		Msg("Self-test result recorded")

	return nil
}

func (r *repository) Summary(ctx context.Context, model string) (Summary, error) {
	s := Summary{Model: model}
	if err := r.db.QueryRowContext(ctx, summarySQL, model).Scan(&s.Passed, &s.Failed); err != nil {
		return s, errors.New().Wrap(ErrQueryFailed, err)
	}

	return s, nil
}

func (r *repository) Close() error {
	if _, err := r.db.Exec("PRAGMA wal_checkpoint(TRUNCATE)"); err != nil {
		r.logger.Debug().Err(err).Msg("Failed to checkpoint WAL")
	}

	if err := r.db.Close(); err != nil {
		return errors.New().WithData(ErrStorageClose, struct {
			Phase string
			Error string
		}{
			Phase: "close_database",
			Error: err.Error(),
		})
	}

	r.logger.Debug().Msg("Validation ledger closed")

	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
