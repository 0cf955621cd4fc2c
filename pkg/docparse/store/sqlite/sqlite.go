package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/cognicore/docparse/pkg/docparse/internalerr"
	"github.com/cognicore/docparse/pkg/docparse/store"
)

// sqliteStore implements the Store interface using SQLite
type sqliteStore struct {
	db *sql.DB
}

// OpenSQLite opens a SQLite database with WAL mode enabled and creates the
// ledger schema if needed.
func OpenSQLite(ctx context.Context, path string) (store.Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", internalerr.ErrStoreUnavailable, err)
	}

	// One connection serializes writers; the ledger is low volume.
	db.SetMaxOpenConns(1)

	// Enable WAL mode for better concurrency
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: %v", internalerr.ErrStoreUnavailable, err)
	}

	if _, err := db.ExecContext(ctx, "PRAGMA busy_timeout=5000"); err != nil {
		db.Close()
		return nil, err
	}

	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return &sqliteStore{db: db}, nil
}

// Close closes the database connection
func (s *sqliteStore) Close() error {
	return s.db.Close()
}

// initSchema creates tables if they don't exist
func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS ingestions (
	id TEXT PRIMARY KEY,
	filename TEXT NOT NULL,
	file_type TEXT NOT NULL,
	size_bytes INTEGER NOT NULL DEFAULT 0,
	text_bytes INTEGER NOT NULL DEFAULT 0,
	status TEXT NOT NULL,
	error TEXT NOT NULL DEFAULT '',
	tag_count INTEGER NOT NULL DEFAULT 0,
	keyword_count INTEGER NOT NULL DEFAULT 0,
	phrase_count INTEGER NOT NULL DEFAULT 0,
	duration_ns INTEGER NOT NULL DEFAULT 0,
	created_at INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_ingestions_created ON ingestions(created_at);
`
	_, err := db.ExecContext(ctx, schema)
	return err
}

// RecordIngestion inserts or replaces a ledger entry.
func (s *sqliteStore) RecordIngestion(ctx context.Context, in store.Ingestion) error {
	if in.ID == "" {
		return fmt.Errorf("%w: ingestion id is required", internalerr.ErrInvalidInput)
	}

	_, err := s.db.ExecContext(ctx, `
INSERT INTO ingestions (id, filename, file_type, size_bytes, text_bytes, status, error,
	tag_count, keyword_count, phrase_count, duration_ns, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
	filename=excluded.filename,
	file_type=excluded.file_type,
	size_bytes=excluded.size_bytes,
	text_bytes=excluded.text_bytes,
	status=excluded.status,
	error=excluded.error,
	tag_count=excluded.tag_count,
	keyword_count=excluded.keyword_count,
	phrase_count=excluded.phrase_count,
	duration_ns=excluded.duration_ns,
	created_at=excluded.created_at;
`, in.ID, in.Filename, in.FileType, in.SizeBytes, in.TextBytes, string(in.Status), in.Error,
		in.TagCount, in.KeywordCount, in.PhraseCount, int64(in.Duration), in.CreatedAt.UnixNano())
	return err
}

const selectIngestion = `
SELECT id, filename, file_type, size_bytes, text_bytes, status, error,
	tag_count, keyword_count, phrase_count, duration_ns, created_at
FROM ingestions`

type scanner interface {
	Scan(dest ...any) error
}

func scanIngestion(row scanner) (store.Ingestion, error) {
	var in store.Ingestion
	var status string
	var durationNS, createdNS int64
	err := row.Scan(&in.ID, &in.Filename, &in.FileType, &in.SizeBytes, &in.TextBytes, &status, &in.Error,
		&in.TagCount, &in.KeywordCount, &in.PhraseCount, &durationNS, &createdNS)
	if err != nil {
		return store.Ingestion{}, err
	}
	in.Status = store.Status(status)
	in.Duration = time.Duration(durationNS)
	in.CreatedAt = time.Unix(0, createdNS).UTC()
	return in, nil
}

// GetIngestion retrieves a ledger entry by ID.
func (s *sqliteStore) GetIngestion(ctx context.Context, id string) (store.Ingestion, bool, error) {
	row := s.db.QueryRowContext(ctx, selectIngestion+` WHERE id = ?;`, id)
	in, err := scanIngestion(row)
	if errors.Is(err, sql.ErrNoRows) {
		return store.Ingestion{}, false, nil
	}
	if err != nil {
		return store.Ingestion{}, false, err
	}
	return in, true, nil
}

// RecentIngestions returns the newest entries first.
func (s *sqliteStore) RecentIngestions(ctx context.Context, limit int) ([]store.Ingestion, error) {
	if limit <= 0 {
		limit = store.DefaultRecentLimit
	}

	rows, err := s.db.QueryContext(ctx, selectIngestion+`
ORDER BY created_at DESC, rowid DESC
LIMIT ?;
`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []store.Ingestion{}
	for rows.Next() {
		in, err := scanIngestion(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, in)
	}
	return result, rows.Err()
}
