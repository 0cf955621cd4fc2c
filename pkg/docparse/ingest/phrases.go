package ingest

import (
	"fmt"
	"strings"

	"github.com/cognicore/docparse/pkg/docparse/stoplist"
)

// Phrase builder defaults.
const (
	DefaultMaxPhrases   = 10
	DefaultPhraseMinLen = 3
)

// WindowMode selects how n-gram windows treat removed stopwords.
type WindowMode string

const (
	// WindowsFiltered builds windows over the filtered token sequence, so
	// words separated only by stopwords become adjacent.
	WindowsFiltered WindowMode = "filtered"
	// WindowsContiguous only builds windows over words that were adjacent
	// in the source text; a removed token breaks the sequence.
	WindowsContiguous WindowMode = "contiguous"
)

// ParseWindowMode maps a configuration value to a WindowMode. Empty means
// WindowsFiltered.
func ParseWindowMode(s string) (WindowMode, error) {
	switch WindowMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", WindowsFiltered:
		return WindowsFiltered, nil
	case WindowsContiguous:
		return WindowsContiguous, nil
	default:
		return "", fmt.Errorf("unknown phrase window mode %q", s)
	}
}

// PhraseBuilder ranks repeated 2- and 3-word sequences.
type PhraseBuilder struct {
	tokenizer  *Tokenizer
	MaxPhrases int
	Windows    WindowMode
}

// NewPhraseBuilder creates a builder that ignores stopwords and words of two
// runes or fewer.
func NewPhraseBuilder(stopwords *stoplist.Set) *PhraseBuilder {
	return &PhraseBuilder{
		tokenizer:  NewTokenizer(stopwords, DefaultPhraseMinLen),
		MaxPhrases: DefaultMaxPhrases,
		Windows:    WindowsFiltered,
	}
}

// Build returns phrases occurring more than once, most frequent first.
// Every bigram is counted before any trigram, so on equal counts bigrams
// rank ahead of trigrams and each group keeps positional order.
func (p *PhraseBuilder) Build(text string) []string {
	runs := p.runs(text)

	counter := NewCounter()
	for _, run := range runs {
		counter.AddAll(ngrams(run, 2))
	}
	for _, run := range runs {
		counter.AddAll(ngrams(run, 3))
	}
	return counter.MostCommon(p.MaxPhrases, defaultMinRepeatCount)
}

// runs splits the filtered tokens into sequences windows may span.
func (p *PhraseBuilder) runs(text string) [][]string {
	if p.Windows != WindowsContiguous {
		return [][]string{p.tokenizer.Tokenize(text)}
	}

	var runs [][]string
	var current []string
	for _, w := range Normalize(text) {
		if p.tokenizer.Keep(w) {
			current = append(current, w)
			continue
		}
		if len(current) > 0 {
			runs = append(runs, current)
			current = nil
		}
	}
	if len(current) > 0 {
		runs = append(runs, current)
	}
	return runs
}

// ngrams returns every contiguous n-token window, space-joined.
func ngrams(tokens []string, n int) []string {
	if len(tokens) < n {
		return nil
	}
	out := make([]string, 0, len(tokens)-n+1)
	for i := 0; i+n <= len(tokens); i++ {
		out = append(out, strings.Join(tokens[i:i+n], " "))
	}
	return out
}
