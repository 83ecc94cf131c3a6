package runlog

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/YangKyeongHoon/tool-ocr-2/internal/common"
)

// Status of a single extraction attempt.
type Status string

const (
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// Attempt records one (run, model, image) extraction outcome.
type Attempt struct {
	RunID        string
	Model        string
	ImageStem    string
	Status       Status
	ErrorMessage *string
	OutputBytes  int64
	Duration     time.Duration
	CreatedAt    time.Time
}

// Store defines persistence for run history.
type Store interface {
	RecordAttempt(a *Attempt) error
	ListRun(runID string) ([]Attempt, error)
	Close() error
}

type SQLiteStore struct {
	db *sql.DB
}

var _ Store = (*SQLiteStore)(nil)

func NewSQLiteStore(path string) (*SQLiteStore, error) {
	// Busy timeout to avoid SQLITE_BUSY in concurrent access.
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(%d)", path, common.SQLiteBusyTimeout)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := migrate(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &SQLiteStore{db: db}, nil
}

func migrate(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS attempts (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT NOT NULL,
		model TEXT NOT NULL,
		image_stem TEXT NOT NULL,
		status TEXT NOT NULL,
		error_message TEXT,
		output_bytes INTEGER NOT NULL DEFAULT 0,
		duration_ms INTEGER NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_attempts_run ON attempts(run_id);
	`
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("migrate schema: %w", err)
	}
	return nil
}

func (s *SQLiteStore) RecordAttempt(a *Attempt) error {
	if a == nil {
		return errors.New("attempt is nil")
	}
	if a.RunID == "" {
		return errors.New("attempt.RunID is required")
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}
	var errMsg *string
	if a.ErrorMessage != nil && *a.ErrorMessage != "" {
		errMsg = a.ErrorMessage
	}
	_, err := s.db.Exec(
		`INSERT INTO attempts (run_id, model, image_stem, status, error_message, output_bytes, duration_ms, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		a.RunID, a.Model, a.ImageStem, string(a.Status), errMsg, a.OutputBytes,
		a.Duration.Milliseconds(), a.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert attempt: %w", err)
	}
	return nil
}

func (s *SQLiteStore) ListRun(runID string) ([]Attempt, error) {
	rows, err := s.db.Query(
		`SELECT run_id, model, image_stem, status, error_message, output_bytes, duration_ms, created_at
		 FROM attempts WHERE run_id = ? ORDER BY id`, runID)
	if err != nil {
		return nil, fmt.Errorf("query attempts: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []Attempt
	for rows.Next() {
		var a Attempt
		var status, created string
		var errMsg sql.NullString
		var durationMS int64
		if err := rows.Scan(&a.RunID, &a.Model, &a.ImageStem, &status, &errMsg, &a.OutputBytes, &durationMS, &created); err != nil {
			return nil, fmt.Errorf("scan attempt: %w", err)
		}
		a.Status = Status(status)
		if errMsg.Valid {
			v := errMsg.String
			a.ErrorMessage = &v
		}
		a.Duration = time.Duration(durationMS) * time.Millisecond
		if t, err := time.Parse(time.RFC3339Nano, created); err == nil {
			a.CreatedAt = t
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate attempts: %w", err)
	}
	return out, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
