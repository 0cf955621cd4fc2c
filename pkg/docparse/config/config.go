package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cognicore/docparse/pkg/docparse/internalerr"
)

// Defaults applied before the settings file and environment.
const (
	DefaultPort           = "8000"
	DefaultEnvironment    = "dev"
	DefaultLogLevel       = "info"
	DefaultMaxUploadBytes = 50 << 20
	DefaultMaxTextBytes   = 10 << 20
)

// Settings is the service configuration.
type Settings struct {
	Port           string        `yaml:"port"`
	Environment    string        `yaml:"environment"`
	CORSOrigins    []string      `yaml:"cors_origins"`
	LogLevel       string        `yaml:"log_level"`
	MaxUploadBytes int64         `yaml:"max_upload_bytes"`
	MaxTextBytes   int64         `yaml:"max_text_bytes"`
	TesseractPath  string        `yaml:"tesseract_path"`
	LedgerPath     string        `yaml:"ledger_path"` // empty keeps the ledger in memory
	Stoplists      StoplistPaths `yaml:"stoplists"`
	Analysis       Analysis      `yaml:"analysis"`
}

// StoplistPaths points at optional stoplist overrides, one per analyzer.
type StoplistPaths struct {
	Tags     string `yaml:"tags"`
	Keywords string `yaml:"keywords"`
	Phrases  string `yaml:"phrases"`
}

// Analysis overrides analyzer caps. Zero values keep the defaults.
type Analysis struct {
	MaxTags       int    `yaml:"max_tags"`
	MaxKeywords   int    `yaml:"max_keywords"`
	MaxPhrases    int    `yaml:"max_phrases"`
	TagMaxLen     int    `yaml:"tag_max_len"`
	PhraseWindows string `yaml:"phrase_windows"`
}

// Default returns settings with every default filled in.
func Default() *Settings {
	return &Settings{
		Port:           DefaultPort,
		Environment:    DefaultEnvironment,
		CORSOrigins:    []string{"*"},
		LogLevel:       DefaultLogLevel,
		MaxUploadBytes: DefaultMaxUploadBytes,
		MaxTextBytes:   DefaultMaxTextBytes,
	}
}

// LoadSettings reads a YAML settings file on top of the defaults.
func LoadSettings(path string) (*Settings, error) {
	s := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", internalerr.ErrInvalidConfig, path, err)
	}
	return s, nil
}

// ApplyEnv overrides settings from environment variables. getenv is
// usually os.Getenv.
func (s *Settings) ApplyEnv(getenv func(string) string) error {
	setString := func(key string, dst *string) {
		if v := getenv(key); v != "" {
			*dst = v
		}
	}
	setInt := func(key string, dst *int64) error {
		v := getenv(key)
		if v == "" {
			return nil
		}
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%w: %s=%q is not an integer", internalerr.ErrInvalidConfig, key, v)
		}
		*dst = n
		return nil
	}

	setString("PORT", &s.Port)
	setString("ENVIRONMENT", &s.Environment)
	setString("LOG_LEVEL", &s.LogLevel)
	setString("DOCPARSE_TESSERACT", &s.TesseractPath)
	setString("DOCPARSE_LEDGER", &s.LedgerPath)
	if v := getenv("CORS_ORIGINS"); v != "" {
		s.CORSOrigins = splitList(v)
	}
	if err := setInt("DOCPARSE_MAX_UPLOAD_BYTES", &s.MaxUploadBytes); err != nil {
		return err
	}
	return setInt("DOCPARSE_MAX_TEXT_BYTES", &s.MaxTextBytes)
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Stoplist represents the stopword list configuration. With Extend set the
// terms are added to the analyzer's built-in list instead of replacing it.
type Stoplist struct {
	Extend bool     `yaml:"extend"`
	Terms  []string `yaml:"terms"`
}

// LoadStoplist loads stopwords from a YAML file
func LoadStoplist(path string) (*Stoplist, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var sl Stoplist
	if err := yaml.Unmarshal(data, &sl); err != nil {
		return nil, err
	}

	return &sl, nil
}
