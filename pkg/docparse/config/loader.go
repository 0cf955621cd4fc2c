package config

import (
	"fmt"
	"os"

	"github.com/cognicore/docparse/pkg/docparse/extract"
	"github.com/cognicore/docparse/pkg/docparse/ingest"
	"github.com/cognicore/docparse/pkg/docparse/internalerr"
	"github.com/cognicore/docparse/pkg/docparse/stoplist"
)

// Loader loads all configuration files and constructs components
type Loader struct {
	SettingsPath string
	// Getenv reads environment overrides; nil uses os.Getenv.
	Getenv func(string) string
}

// Components holds all loaded configuration components
type Components struct {
	Settings   *Settings
	Pipeline   *ingest.Pipeline
	Extractors *extract.Registry
}

// Load reads settings and stoplists and returns initialized components
func (l *Loader) Load() (*Components, error) {
	settings := Default()
	if l.SettingsPath != "" {
		loaded, err := LoadSettings(l.SettingsPath)
		if err != nil {
			return nil, fmt.Errorf("load settings: %w", err)
		}
		settings = loaded
	}

	getenv := l.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}
	if err := settings.ApplyEnv(getenv); err != nil {
		return nil, err
	}
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	pipeline, err := BuildPipeline(settings)
	if err != nil {
		return nil, err
	}

	return &Components{
		Settings:   settings,
		Pipeline:   pipeline,
		Extractors: extract.NewRegistry(extract.Options{TesseractPath: settings.TesseractPath}),
	}, nil
}

// BuildPipeline constructs the analyzers from settings, loading stoplist
// overrides where configured.
func BuildPipeline(s *Settings) (*ingest.Pipeline, error) {
	tagStops, err := loadSet(stoplist.TagsName, s.Stoplists.Tags, stoplist.Tags)
	if err != nil {
		return nil, err
	}
	keywordStops, err := loadSet(stoplist.KeywordsName, s.Stoplists.Keywords, stoplist.Keywords)
	if err != nil {
		return nil, err
	}
	phraseStops, err := loadSet(stoplist.PhrasesName, s.Stoplists.Phrases, stoplist.Phrases)
	if err != nil {
		return nil, err
	}

	windows, err := ingest.ParseWindowMode(s.Analysis.PhraseWindows)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", internalerr.ErrInvalidConfig, err)
	}

	tags := ingest.NewTagSuggester(tagStops)
	if s.Analysis.MaxTags > 0 {
		tags.MaxTags = s.Analysis.MaxTags
	}
	if s.Analysis.TagMaxLen > 0 {
		tags.MaxLen = s.Analysis.TagMaxLen
	}

	keywords := ingest.NewKeywordRanker(keywordStops)
	if s.Analysis.MaxKeywords > 0 {
		keywords.MaxKeywords = s.Analysis.MaxKeywords
	}

	phrases := ingest.NewPhraseBuilder(phraseStops)
	phrases.Windows = windows
	if s.Analysis.MaxPhrases > 0 {
		phrases.MaxPhrases = s.Analysis.MaxPhrases
	}

	return ingest.NewPipeline(tags, keywords, phrases), nil
}

func loadSet(name, path string, builtin func() *stoplist.Set) (*stoplist.Set, error) {
	if path == "" {
		return builtin(), nil
	}
	sl, err := LoadStoplist(path)
	if err != nil {
		return nil, fmt.Errorf("load %s stoplist: %w", name, err)
	}
	if sl.Extend {
		return builtin().With(sl.Terms...), nil
	}
	return stoplist.New(name, sl.Terms), nil
}
