// Package docparse turns uploaded documents into text plus suggested tags,
// ranked keywords, and repeated phrases.
package docparse

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/cognicore/docparse/pkg/docparse/extract"
	"github.com/cognicore/docparse/pkg/docparse/ingest"
	"github.com/cognicore/docparse/pkg/docparse/internalerr"
	"github.com/cognicore/docparse/pkg/docparse/store"
	"github.com/cognicore/docparse/pkg/docparse/store/memstore"
)

// Default size ceilings.
const (
	DefaultMaxUploadBytes = 50 << 20
	DefaultMaxTextBytes   = 10 << 20
)

// Service is the document parsing facade.
type Service struct {
	pipeline   *ingest.Pipeline
	extractors *extract.Registry
	store      store.Store
	maxUpload  int64
	maxText    int64
	logger     *slog.Logger
	tempDir    string

	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
}

// Options configures a Service. Zero values fall back to defaults: the
// built-in pipeline, every extractor, an in-memory ledger, and the default
// size ceilings.
type Options struct {
	Pipeline       *ingest.Pipeline
	Extractors     *extract.Registry
	Store          store.Store
	MaxUploadBytes int64
	MaxTextBytes   int64
	Logger         *slog.Logger
	// TempDir holds spooled uploads; empty uses os.TempDir.
	TempDir string
}

// New creates a Service with the given dependencies.
func New(opts Options) *Service {
	s := &Service{
		pipeline:   opts.Pipeline,
		extractors: opts.Extractors,
		store:      opts.Store,
		maxUpload:  opts.MaxUploadBytes,
		maxText:    opts.MaxTextBytes,
		logger:     opts.Logger,
		tempDir:    opts.TempDir,
		entropy:    ulid.Monotonic(rand.Reader, 0),
	}
	if s.pipeline == nil {
		s.pipeline = ingest.NewDefaultPipeline()
	}
	if s.extractors == nil {
		s.extractors = extract.NewRegistry(extract.Options{})
	}
	if s.store == nil {
		s.store = memstore.New()
	}
	if s.maxUpload <= 0 {
		s.maxUpload = DefaultMaxUploadBytes
	}
	if s.maxText <= 0 {
		s.maxText = DefaultMaxTextBytes
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	return s
}

// Close cleanly shuts down the ledger.
func (s *Service) Close() error {
	return s.store.Close()
}

// Upload is a file received from a client.
type Upload struct {
	Filename string
	Body     io.Reader
}

// ParseResponse is the result of parsing one upload.
type ParseResponse struct {
	ID            string   `json:"id"`
	Success       bool     `json:"success"`
	Text          string   `json:"text"`
	Error         string   `json:"error"`
	FileType      string   `json:"file_type"`
	SuggestedTags []string `json:"suggested_tags"`
	Keywords      []string `json:"keywords"`
	Phrases       []string `json:"phrases"`
}

// Parse spools the upload to a temporary file, extracts its text, and runs
// the analysis pipeline. Every call is recorded in the ingestion ledger,
// including failures.
func (s *Service) Parse(ctx context.Context, up Upload) (ParseResponse, error) {
	if up.Body == nil || up.Filename == "" {
		return ParseResponse{}, fmt.Errorf("%w: No file provided", internalerr.ErrInvalidInput)
	}

	start := time.Now()
	fileType := extract.DetectType(up.Filename)
	entry := store.Ingestion{
		ID:        s.newID(start),
		Filename:  filepath.Base(up.Filename),
		FileType:  string(fileType),
		CreatedAt: start.UTC(),
	}

	resp, err := s.parse(ctx, up, fileType, &entry)
	entry.Duration = time.Since(start)

	if err != nil {
		entry.Status = store.StatusFailed
		entry.Error = err.Error()
		s.logger.Warn("parse failed",
			"id", entry.ID,
			"filename", entry.Filename,
			"file_type", entry.FileType,
			"size_bytes", entry.SizeBytes,
			"error", err,
		)
	} else {
		entry.Status = store.StatusSuccess
		entry.TagCount = len(resp.SuggestedTags)
		entry.KeywordCount = len(resp.Keywords)
		entry.PhraseCount = len(resp.Phrases)
		s.logger.Info("parsed document",
			"id", entry.ID,
			"filename", entry.Filename,
			"file_type", entry.FileType,
			"size_bytes", entry.SizeBytes,
			"text_bytes", entry.TextBytes,
			"tags", entry.TagCount,
			"keywords", entry.KeywordCount,
			"phrases", entry.PhraseCount,
			"duration", entry.Duration,
		)
	}

	// The ledger outlives a cancelled request.
	if recErr := s.store.RecordIngestion(context.WithoutCancel(ctx), entry); recErr != nil {
		s.logger.Error("record ingestion", "id", entry.ID, "error", recErr)
	}

	if err != nil {
		return ParseResponse{}, err
	}
	return resp, nil
}

func (s *Service) parse(ctx context.Context, up Upload, fileType extract.Type, entry *store.Ingestion) (ParseResponse, error) {
	if fileType == extract.TypeUnknown {
		return ParseResponse{}, &extract.UnsupportedTypeError{Type: fileType}
	}

	path, size, err := s.spool(up)
	entry.SizeBytes = size
	if err != nil {
		return ParseResponse{}, err
	}
	defer os.Remove(path)

	text, _, err := s.extractors.Extract(ctx, path)
	if err != nil {
		return ParseResponse{}, err
	}
	entry.TextBytes = int64(len(text))

	doc, err := s.Analyze(text)
	if err != nil {
		return ParseResponse{}, err
	}

	return ParseResponse{
		ID:            entry.ID,
		Success:       true,
		Text:          text,
		FileType:      string(fileType),
		SuggestedTags: doc.Tags,
		Keywords:      doc.Keywords,
		Phrases:       doc.Phrases,
	}, nil
}

// spool copies the upload into a temporary file carrying the original
// extension, so type detection on the path matches the upload. The file is
// removed here on failure; on success the caller owns it.
func (s *Service) spool(up Upload) (string, int64, error) {
	f, err := os.CreateTemp(s.tempDir, "docparse-*"+filepath.Ext(up.Filename))
	if err != nil {
		return "", 0, fmt.Errorf("create temp file: %w", err)
	}
	path := f.Name()

	n, err := io.Copy(f, io.LimitReader(up.Body, s.maxUpload+1))
	closeErr := f.Close()
	switch {
	case err != nil:
		err = fmt.Errorf("read upload: %w", err)
	case n > s.maxUpload:
		err = fmt.Errorf("%w: upload exceeds %d bytes", internalerr.ErrInputTooLarge, s.maxUpload)
	case closeErr != nil:
		err = fmt.Errorf("write temp file: %w", closeErr)
	}
	if err != nil {
		os.Remove(path)
		return "", n, err
	}
	return path, n, nil
}

// Analyze runs the pipeline directly on text.
func (s *Service) Analyze(text string) (ingest.ProcessedDoc, error) {
	if int64(len(text)) > s.maxText {
		return ingest.ProcessedDoc{}, fmt.Errorf("%w: text is %d bytes, limit %d", internalerr.ErrInputTooLarge, len(text), s.maxText)
	}
	return s.pipeline.Process(text), nil
}

// Ingestion returns one ledger entry.
func (s *Service) Ingestion(ctx context.Context, id string) (store.Ingestion, error) {
	in, found, err := s.store.GetIngestion(ctx, id)
	if err != nil {
		return store.Ingestion{}, errors.Join(internalerr.ErrStoreUnavailable, err)
	}
	if !found {
		return store.Ingestion{}, fmt.Errorf("ingestion %s: %w", id, internalerr.ErrNotFound)
	}
	return in, nil
}

// RecentIngestions returns up to limit ledger entries, newest first.
func (s *Service) RecentIngestions(ctx context.Context, limit int) ([]store.Ingestion, error) {
	entries, err := s.store.RecentIngestions(ctx, limit)
	if err != nil {
		return nil, errors.Join(internalerr.ErrStoreUnavailable, err)
	}
	return entries, nil
}

func (s *Service) newID(t time.Time) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ulid.MustNew(ulid.Timestamp(t), s.entropy).String()
}
