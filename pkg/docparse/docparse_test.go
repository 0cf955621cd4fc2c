package docparse

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"reflect"
	"strings"
	"sync"
	"testing"

	"github.com/cognicore/docparse/pkg/docparse/extract"
	"github.com/cognicore/docparse/pkg/docparse/internalerr"
	"github.com/cognicore/docparse/pkg/docparse/store"
	"github.com/cognicore/docparse/pkg/docparse/store/memstore"
)

const appleText = "Apple Inc announced new products. Apple Inc products were well received. New products shipped fast."

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestService(t *testing.T, opts Options) (*Service, *memstore.Store, string) {
	t.Helper()
	st := memstore.New()
	dir := t.TempDir()
	opts.Store = st
	opts.TempDir = dir
	opts.Logger = discardLogger()
	return New(opts), st, dir
}

func assertNoSpooledFiles(t *testing.T, dir string) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("temp dir not cleaned: %d entries left", len(entries))
	}
}

func TestParseTextUpload(t *testing.T) {
	svc, st, dir := newTestService(t, Options{})
	ctx := context.Background()

	resp, err := svc.Parse(ctx, Upload{Filename: "notes.txt", Body: strings.NewReader(appleText)})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if !resp.Success || resp.Error != "" || resp.FileType != "txt" || resp.Text != appleText {
		t.Errorf("unexpected response header: %+v", resp)
	}
	if want := []string{"Apple Inc", "products", "apple"}; !reflect.DeepEqual(resp.SuggestedTags, want) {
		t.Errorf("SuggestedTags = %q, want %q", resp.SuggestedTags, want)
	}
	if want := []string{"products", "apple"}; !reflect.DeepEqual(resp.Keywords, want) {
		t.Errorf("Keywords = %q, want %q", resp.Keywords, want)
	}
	if want := []string{"apple inc", "new products"}; !reflect.DeepEqual(resp.Phrases, want) {
		t.Errorf("Phrases = %q, want %q", resp.Phrases, want)
	}
	assertNoSpooledFiles(t, dir)

	entry, found, err := st.GetIngestion(ctx, resp.ID)
	if err != nil || !found {
		t.Fatalf("ledger entry missing: found=%v err=%v", found, err)
	}
	if entry.Status != store.StatusSuccess || entry.Filename != "notes.txt" {
		t.Errorf("entry = %+v", entry)
	}
	if entry.SizeBytes != int64(len(appleText)) || entry.TextBytes != int64(len(appleText)) {
		t.Errorf("sizes = %d/%d, want %d", entry.SizeBytes, entry.TextBytes, len(appleText))
	}
	if entry.TagCount != 3 || entry.KeywordCount != 2 || entry.PhraseCount != 2 {
		t.Errorf("counts = %d/%d/%d", entry.TagCount, entry.KeywordCount, entry.PhraseCount)
	}
}

func TestParseEmptyTextHasEmptyLists(t *testing.T) {
	svc, _, _ := newTestService(t, Options{})

	resp, err := svc.Parse(context.Background(), Upload{Filename: "empty.txt", Body: strings.NewReader("")})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if resp.SuggestedTags == nil || resp.Keywords == nil || resp.Phrases == nil {
		t.Errorf("lists must be non-nil: %+v", resp)
	}
}

func TestParseMissingFile(t *testing.T) {
	svc, st, _ := newTestService(t, Options{})

	_, err := svc.Parse(context.Background(), Upload{})
	if !errors.Is(err, internalerr.ErrInvalidInput) {
		t.Errorf("err = %v, want ErrInvalidInput", err)
	}
	if entries, _ := st.RecentIngestions(context.Background(), 0); len(entries) != 0 {
		t.Errorf("missing file should not be recorded, got %d entries", len(entries))
	}
}

func TestParseUnsupportedTypeIsRecorded(t *testing.T) {
	svc, st, dir := newTestService(t, Options{})
	ctx := context.Background()

	_, err := svc.Parse(ctx, Upload{Filename: "legacy.doc", Body: strings.NewReader("data")})
	if !errors.Is(err, internalerr.ErrUnsupportedType) {
		t.Fatalf("err = %v, want ErrUnsupportedType", err)
	}
	if err.Error() != "Unsupported file type: unknown" {
		t.Errorf("message = %q", err.Error())
	}
	assertNoSpooledFiles(t, dir)

	entries, _ := st.RecentIngestions(ctx, 0)
	if len(entries) != 1 || entries[0].Status != store.StatusFailed || entries[0].FileType != "unknown" {
		t.Errorf("entries = %+v", entries)
	}
}

func TestParseUploadTooLarge(t *testing.T) {
	svc, _, dir := newTestService(t, Options{MaxUploadBytes: 8})

	_, err := svc.Parse(context.Background(), Upload{Filename: "big.txt", Body: strings.NewReader("123456789")})
	if !errors.Is(err, internalerr.ErrInputTooLarge) {
		t.Errorf("err = %v, want ErrInputTooLarge", err)
	}
	assertNoSpooledFiles(t, dir)

	if _, err := svc.Parse(context.Background(), Upload{Filename: "fits.txt", Body: strings.NewReader("12345678")}); err != nil {
		t.Errorf("upload at the limit should pass: %v", err)
	}
}

func TestParseTextTooLarge(t *testing.T) {
	reg := extract.NewRegistry(extract.Options{})
	reg.Register(extract.TypePDF, extract.ExtractorFunc(func(ctx context.Context, path string) (string, error) {
		return strings.Repeat("x", 11), nil
	}))
	svc, _, dir := newTestService(t, Options{Extractors: reg, MaxTextBytes: 10})

	_, err := svc.Parse(context.Background(), Upload{Filename: "doc.pdf", Body: strings.NewReader("%PDF")})
	if !errors.Is(err, internalerr.ErrInputTooLarge) {
		t.Errorf("err = %v, want ErrInputTooLarge", err)
	}
	assertNoSpooledFiles(t, dir)
}

func TestParseExtractionFailure(t *testing.T) {
	reg := extract.NewRegistry(extract.Options{})
	var seenPath string
	reg.Register(extract.TypeDOCX, extract.ExtractorFunc(func(ctx context.Context, path string) (string, error) {
		seenPath = path
		return "", errors.New("zip: not a valid zip file")
	}))
	svc, st, dir := newTestService(t, Options{Extractors: reg})
	ctx := context.Background()

	_, err := svc.Parse(ctx, Upload{Filename: "memo.docx", Body: strings.NewReader("garbage")})
	if !errors.Is(err, internalerr.ErrExtraction) {
		t.Fatalf("err = %v, want ErrExtraction", err)
	}
	if err.Error() != "DOCX extraction error: zip: not a valid zip file" {
		t.Errorf("message = %q", err.Error())
	}
	if !strings.HasSuffix(seenPath, ".docx") {
		t.Errorf("spooled path %q lost the extension", seenPath)
	}
	assertNoSpooledFiles(t, dir)

	entries, _ := st.RecentIngestions(ctx, 0)
	if len(entries) != 1 || entries[0].Error != err.Error() {
		t.Errorf("entries = %+v", entries)
	}
}

func TestAnalyze(t *testing.T) {
	svc, _, _ := newTestService(t, Options{MaxTextBytes: 1 << 10})

	doc, err := svc.Analyze(appleText)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if want := []string{"products", "apple"}; !reflect.DeepEqual(doc.Keywords, want) {
		t.Errorf("Keywords = %q, want %q", doc.Keywords, want)
	}

	if _, err := svc.Analyze(strings.Repeat("a", 1<<10+1)); !errors.Is(err, internalerr.ErrInputTooLarge) {
		t.Errorf("err = %v, want ErrInputTooLarge", err)
	}
}

func TestIngestionLookup(t *testing.T) {
	svc, _, _ := newTestService(t, Options{})
	ctx := context.Background()

	if _, err := svc.Ingestion(ctx, "01HZZZZZZZZZZZZZZZZZZZZZZZ"); !errors.Is(err, internalerr.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}

	resp, err := svc.Parse(ctx, Upload{Filename: "a.txt", Body: strings.NewReader("hello")})
	if err != nil {
		t.Fatal(err)
	}
	got, err := svc.Ingestion(ctx, resp.ID)
	if err != nil || got.ID != resp.ID {
		t.Errorf("Ingestion = %+v, %v", got, err)
	}
}

func TestConcurrentParsesGetUniqueIDs(t *testing.T) {
	svc, _, dir := newTestService(t, Options{})
	ctx := context.Background()

	const n = 20
	ids := make([]string, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			resp, err := svc.Parse(ctx, Upload{Filename: "doc.txt", Body: strings.NewReader(appleText)})
			if err != nil {
				t.Errorf("Parse: %v", err)
				return
			}
			ids[i] = resp.ID
		}(i)
	}
	wg.Wait()

	seen := make(map[string]bool, n)
	for _, id := range ids {
		if id == "" || seen[id] {
			t.Fatalf("duplicate or empty id %q", id)
		}
		seen[id] = true
	}
	assertNoSpooledFiles(t, dir)

	entries, err := svc.RecentIngestions(ctx, 100)
	if err != nil || len(entries) != n {
		t.Errorf("RecentIngestions = %d entries, %v", len(entries), err)
	}
}
