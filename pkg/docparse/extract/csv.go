package extract

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"
)

// CSV joins each record's fields with a space, one record per line.
type CSV struct{}

// Extract implements Extractor.
func (CSV) Extract(ctx context.Context, path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	reader := csv.NewReader(decodeBOM(f))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var sb strings.Builder
	for line := 1; ; line++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}
		joined := strings.Join(record, " ")
		if !utf8.ValidString(joined) {
			return "", fmt.Errorf("record %d: invalid utf-8", line)
		}
		sb.WriteString(joined)
		sb.WriteByte('\n')
	}
	return sb.String(), nil
}
