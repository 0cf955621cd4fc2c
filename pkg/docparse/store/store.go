package store

import (
	"context"
	"time"
)

// Store persists the ingestion ledger. Only request metadata and list
// sizes are recorded; extracted text and analyzer output are never stored.
type Store interface {
	Close() error

	RecordIngestion(ctx context.Context, in Ingestion) error
	GetIngestion(ctx context.Context, id string) (Ingestion, bool, error)
	RecentIngestions(ctx context.Context, limit int) ([]Ingestion, error)
}

// Status of a recorded ingestion.
type Status string

const (
	StatusSuccess Status = "success"
	StatusFailed  Status = "failed"
)

// Ingestion is one ledger row.
type Ingestion struct {
	ID           string        `json:"id"`
	Filename     string        `json:"filename"`
	FileType     string        `json:"file_type"`
	SizeBytes    int64         `json:"size_bytes"`
	TextBytes    int64         `json:"text_bytes"`
	Status       Status        `json:"status"`
	Error        string        `json:"error,omitempty"`
	TagCount     int           `json:"tag_count"`
	KeywordCount int           `json:"keyword_count"`
	PhraseCount  int           `json:"phrase_count"`
	Duration     time.Duration `json:"duration_ns"`
	CreatedAt    time.Time     `json:"created_at"`
}

// DefaultRecentLimit is used when a non-positive limit is requested.
const DefaultRecentLimit = 20
