// Package extract turns uploaded files into plain text. It only dispatches
// on the file extension and delegates to a per-format extractor; no text
// analysis happens here.
package extract

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/cognicore/docparse/pkg/docparse/internalerr"
)

// Type is a detected file type.
type Type string

const (
	TypePDF     Type = "pdf"
	TypeDOCX    Type = "docx"
	TypeText    Type = "txt"
	TypeImage   Type = "image"
	TypeCSV     Type = "csv"
	TypeHTML    Type = "html"
	TypeUnknown Type = "unknown"
)

// DetectType maps a file name to a Type by its lowercased extension.
func DetectType(filename string) Type {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return TypePDF
	case ".docx":
		return TypeDOCX
	case ".txt":
		return TypeText
	case ".png", ".jpg", ".jpeg", ".bmp", ".tiff", ".gif":
		return TypeImage
	case ".csv":
		return TypeCSV
	case ".html", ".htm":
		return TypeHTML
	default:
		return TypeUnknown
	}
}

// Extractor reads the file at path and returns its text.
type Extractor interface {
	Extract(ctx context.Context, path string) (string, error)
}

// ExtractorFunc adapts a function to Extractor.
type ExtractorFunc func(ctx context.Context, path string) (string, error)

// Extract implements Extractor.
func (f ExtractorFunc) Extract(ctx context.Context, path string) (string, error) {
	return f(ctx, path)
}

// Options configures the default extractors.
type Options struct {
	// TesseractPath is the OCR binary; empty means "tesseract" on PATH.
	TesseractPath string
}

// Registry dispatches extraction by detected type.
type Registry struct {
	extractors map[Type]Extractor
}

// NewRegistry creates a registry with an extractor for every known type.
func NewRegistry(opts Options) *Registry {
	r := &Registry{extractors: make(map[Type]Extractor)}
	r.Register(TypePDF, PDF{})
	r.Register(TypeDOCX, DOCX{})
	r.Register(TypeText, Text{})
	r.Register(TypeImage, OCR{Binary: opts.TesseractPath})
	r.Register(TypeCSV, CSV{})
	r.Register(TypeHTML, HTML{})
	return r
}

// Register sets or replaces the extractor for t.
func (r *Registry) Register(t Type, e Extractor) {
	r.extractors[t] = e
}

// Extract detects the type of path and runs the matching extractor.
// Extractor failures are returned as *Error.
func (r *Registry) Extract(ctx context.Context, path string) (string, Type, error) {
	t := DetectType(path)
	e, ok := r.extractors[t]
	if !ok {
		return "", t, &UnsupportedTypeError{Type: t}
	}
	if err := ctx.Err(); err != nil {
		return "", t, err
	}

	text, err := e.Extract(ctx, path)
	if err != nil {
		return "", t, &Error{Type: t, Err: err}
	}
	return text, t, nil
}

// Error reports a failure inside a format extractor.
type Error struct {
	Type Type
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %v", errorLabel(e.Type), e.Err)
}

// Unwrap exposes both internalerr.ErrExtraction and the cause.
func (e *Error) Unwrap() []error {
	return []error{internalerr.ErrExtraction, e.Err}
}

func errorLabel(t Type) string {
	switch t {
	case TypePDF:
		return "PDF extraction error"
	case TypeDOCX:
		return "DOCX extraction error"
	case TypeImage:
		return "Image OCR error"
	case TypeCSV:
		return "CSV extraction error"
	case TypeHTML:
		return "HTML extraction error"
	default:
		return "Text extraction error"
	}
}

// UnsupportedTypeError is returned for files with no registered extractor.
type UnsupportedTypeError struct {
	Type Type
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("Unsupported file type: %s", e.Type)
}

// Is matches internalerr.ErrUnsupportedType.
func (e *UnsupportedTypeError) Is(target error) bool {
	return target == internalerr.ErrUnsupportedType
}
