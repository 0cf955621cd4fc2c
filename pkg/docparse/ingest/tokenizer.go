package ingest

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/cognicore/docparse/pkg/docparse/stoplist"
)

// Tokenizer handles text tokenization and normalization
type Tokenizer struct {
	stopwords *stoplist.Set
	minLen    int // tokens shorter than this many runes are dropped
}

// NewTokenizer creates a tokenizer that drops stopwords and tokens shorter
// than minLen runes.
func NewTokenizer(stopwords *stoplist.Set, minLen int) *Tokenizer {
	return &Tokenizer{stopwords: stopwords, minLen: minLen}
}

// Tokenize splits text into normalized tokens, removing stopwords and short
// tokens. The relative order of surviving tokens is preserved.
func (t *Tokenizer) Tokenize(text string) []string {
	words := Normalize(text)
	tokens := words[:0]
	for _, w := range words {
		if t.Keep(w) {
			tokens = append(tokens, w)
		}
	}
	return tokens
}

// Keep reports whether a normalized word survives filtering.
func (t *Tokenizer) Keep(word string) bool {
	if utf8.RuneCountInString(word) < t.minLen {
		return false
	}
	return !t.stopwords.IsStop(word)
}

// lower applies full Unicode lowercasing: a word-final capital sigma becomes
// ς and dotted capital I expands to i followed by U+0307. A Caser keeps
// state, so each call gets its own.
func lower(text string) string {
	return cases.Lower(language.Und).String(text)
}

// Normalize lowercases text, deletes every rune that is neither a word rune
// nor whitespace, and splits on whitespace runs. Punctuation inside a word
// is deleted rather than treated as a separator, so "don't" becomes "dont".
func Normalize(text string) []string {
	lowered := lower(text)

	var b strings.Builder
	b.Grow(len(lowered))
	for _, r := range lowered {
		if isWordRune(r) || isSpace(r) {
			b.WriteRune(r)
		}
	}

	return strings.FieldsFunc(b.String(), isSpace)
}

// TagWords returns the lowercased words the tag suggester counts: maximal
// runs of word runes that consist only of ASCII letters and are at least
// minLen letters long. A run touching a digit, underscore, or non-ASCII
// letter is skipped as a whole rather than trimmed.
func TagWords(text string, minLen int) []string {
	lowered := lower(text)

	var words []string
	start := -1
	asciiOnly := true
	flush := func(end int) {
		if start >= 0 && asciiOnly && end-start >= minLen {
			words = append(words, lowered[start:end])
		}
		start = -1
		asciiOnly = true
	}

	for i, r := range lowered {
		if !isWordRune(r) {
			flush(i)
			continue
		}
		if start < 0 {
			start = i
		}
		if !isASCIILetter(r) {
			asciiOnly = false
		}
	}
	flush(len(lowered))

	return words
}

// isWordRune matches letters, numbers, and underscore.
func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsNumber(r) || r == '_'
}

// isSpace also treats the ASCII information separators as whitespace.
func isSpace(r rune) bool {
	return unicode.IsSpace(r) || (r >= 0x1c && r <= 0x1f)
}

func isASCIILetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isASCIIUpper(r rune) bool {
	return r >= 'A' && r <= 'Z'
}

func isASCIILower(r rune) bool {
	return r >= 'a' && r <= 'z'
}
