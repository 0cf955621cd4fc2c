package extract

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

const defaultTesseract = "tesseract"

// OCR runs the tesseract binary over a raster image.
type OCR struct {
	Binary string
}

// Extract implements Extractor.
func (o OCR) Extract(ctx context.Context, path string) (string, error) {
	bin := o.Binary
	if bin == "" {
		bin = defaultTesseract
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, bin, path, "stdout")
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			if msg := strings.TrimSpace(stderr.String()); msg != "" {
				return "", fmt.Errorf("%s: %s", bin, msg)
			}
		}
		return "", fmt.Errorf("run %s: %w", bin, err)
	}
	return stdout.String(), nil
}
