package extract

import (
	"context"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Text reads a plain-text file as UTF-8, dropping invalid bytes. A leading
// byte order mark selects UTF-8 or UTF-16 decoding and is removed.
type Text struct{}

// Extract implements Extractor.
func (Text) Extract(ctx context.Context, path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	data, err := io.ReadAll(decodeBOM(f))
	if err != nil {
		return "", err
	}
	return strings.ToValidUTF8(string(data), ""), nil
}

// decodeBOM wraps r so UTF-16 input is transcoded to UTF-8 and any BOM is
// stripped. Input without a BOM passes through unchanged.
func decodeBOM(r io.Reader) io.Reader {
	return transform.NewReader(r, unicode.BOMOverride(encoding.Nop.NewDecoder()))
}
