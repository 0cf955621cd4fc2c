package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/cognicore/docparse/pkg/docparse/internalerr"
)

func envMap(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultSettingsValidate(t *testing.T) {
	s := Default()
	if err := s.Validate(); err != nil {
		t.Fatalf("default settings should validate: %v", err)
	}
	if s.Port != DefaultPort || s.MaxUploadBytes != DefaultMaxUploadBytes {
		t.Errorf("unexpected defaults: %+v", s)
	}
	if !reflect.DeepEqual(s.CORSOrigins, []string{"*"}) {
		t.Errorf("CORSOrigins = %v", s.CORSOrigins)
	}
}

func TestLoadSettingsKeepsUnsetDefaults(t *testing.T) {
	path := writeTemp(t, "settings.yaml", `
port: "9090"
ledger_path: /var/lib/docparse/ledger.db
analysis:
  max_keywords: 15
  phrase_windows: contiguous
`)

	s, err := LoadSettings(path)
	if err != nil {
		t.Fatalf("LoadSettings: %v", err)
	}
	if s.Port != "9090" || s.LedgerPath != "/var/lib/docparse/ledger.db" {
		t.Errorf("file values not applied: %+v", s)
	}
	if s.Analysis.MaxKeywords != 15 || s.Analysis.PhraseWindows != "contiguous" {
		t.Errorf("analysis not applied: %+v", s.Analysis)
	}
	if s.Environment != DefaultEnvironment || s.MaxTextBytes != DefaultMaxTextBytes {
		t.Errorf("defaults lost: %+v", s)
	}
}

func TestLoadSettingsInvalidYAML(t *testing.T) {
	path := writeTemp(t, "bad.yaml", "port: [unterminated")

	_, err := LoadSettings(path)
	if !errors.Is(err, internalerr.ErrInvalidConfig) {
		t.Errorf("err = %v, want ErrInvalidConfig", err)
	}
}

func TestApplyEnv(t *testing.T) {
	s := Default()
	err := s.ApplyEnv(envMap(map[string]string{
		"PORT":                      "7000",
		"ENVIRONMENT":               "prod",
		"CORS_ORIGINS":              "https://a.example, https://b.example,",
		"DOCPARSE_MAX_UPLOAD_BYTES": "1024",
		"DOCPARSE_TESSERACT":        "/opt/tesseract",
	}))
	if err != nil {
		t.Fatalf("ApplyEnv: %v", err)
	}
	if s.Port != "7000" || s.Environment != "prod" || s.MaxUploadBytes != 1024 {
		t.Errorf("env not applied: %+v", s)
	}
	if s.TesseractPath != "/opt/tesseract" {
		t.Errorf("TesseractPath = %q", s.TesseractPath)
	}
	want := []string{"https://a.example", "https://b.example"}
	if !reflect.DeepEqual(s.CORSOrigins, want) {
		t.Errorf("CORSOrigins = %v, want %v", s.CORSOrigins, want)
	}
}

func TestApplyEnvRejectsBadInteger(t *testing.T) {
	s := Default()
	err := s.ApplyEnv(envMap(map[string]string{"DOCPARSE_MAX_TEXT_BYTES": "lots"}))
	if !errors.Is(err, internalerr.ErrInvalidConfig) {
		t.Errorf("err = %v, want ErrInvalidConfig", err)
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Settings)
	}{
		{"bad port", func(s *Settings) { s.Port = "http" }},
		{"port out of range", func(s *Settings) { s.Port = "70000" }},
		{"unknown environment", func(s *Settings) { s.Environment = "staging" }},
		{"unknown log level", func(s *Settings) { s.LogLevel = "verbose" }},
		{"negative upload limit", func(s *Settings) { s.MaxUploadBytes = -1 }},
		{"zero text limit", func(s *Settings) { s.MaxTextBytes = 0 }},
		{"no cors origins", func(s *Settings) { s.CORSOrigins = nil }},
		{"negative tag cap", func(s *Settings) { s.Analysis.MaxTags = -2 }},
		{"tag cap raised", func(s *Settings) { s.Analysis.MaxTags = 8 }},
		{"keyword cap raised", func(s *Settings) { s.Analysis.MaxKeywords = 21 }},
		{"phrase cap raised", func(s *Settings) { s.Analysis.MaxPhrases = 11 }},
		{"unknown window mode", func(s *Settings) { s.Analysis.PhraseWindows = "raw" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Default()
			tt.mutate(s)
			if err := s.Validate(); !errors.Is(err, internalerr.ErrInvalidConfig) {
				t.Errorf("err = %v, want ErrInvalidConfig", err)
			}
		})
	}
}
