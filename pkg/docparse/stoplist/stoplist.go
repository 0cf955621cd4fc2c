package stoplist

import (
	"sort"
	"strings"
)

// Set is an immutable stopword lookup. Each analyzer owns its own Set; the
// three built-in lists are deliberately different and must not be merged.
type Set struct {
	name  string
	stops map[string]struct{}
}

// New creates a named set from the given terms. Terms are lowercased.
func New(name string, terms []string) *Set {
	stops := make(map[string]struct{}, len(terms))
	for _, t := range terms {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" {
			continue
		}
		stops[t] = struct{}{}
	}
	return &Set{name: name, stops: stops}
}

// Name identifies the set in logs and CLI output.
func (s *Set) Name() string {
	if s == nil {
		return ""
	}
	return s.name
}

// IsStop checks if a token is a stopword. A nil set has no stopwords.
func (s *Set) IsStop(token string) bool {
	if s == nil {
		return false
	}
	_, ok := s.stops[token]
	return ok
}

// Len returns the number of terms in the set.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.stops)
}

// All returns all stopwords in sorted order
func (s *Set) All() []string {
	if s == nil {
		return nil
	}
	result := make([]string, 0, len(s.stops))
	for t := range s.stops {
		result = append(result, t)
	}
	sort.Strings(result)
	return result
}

// With returns a copy of the set extended by extra terms.
func (s *Set) With(extra ...string) *Set {
	terms := append(s.All(), extra...)
	return New(s.Name(), terms)
}

// Names of the built-in sets.
const (
	TagsName     = "tags"
	KeywordsName = "keywords"
	PhrasesName  = "phrases"
)

// TagTerms is the short connector list applied to the tag suggester's
// frequent-word pass. Every entry is four letters or more because the tag
// tokenizer never yields shorter words.
var TagTerms = []string{
	"this", "that", "with", "from", "have", "were", "what", "when", "where",
	"which", "their", "there", "about", "would", "could", "should",
}

// KeywordTerms is the general English list applied to keyword ranking.
var KeywordTerms = []string{
	"a", "about", "above", "after", "again", "against", "all", "am", "an", "and",
	"any", "are", "as", "at", "be", "because", "been", "before", "being", "below",
	"between", "both", "but", "by", "could", "did", "do", "does", "doing", "down",
	"during", "each", "few", "for", "from", "further", "had", "has", "have", "having",
	"he", "her", "here", "hers", "herself", "him", "himself", "his", "how", "i",
	"if", "in", "into", "is", "it", "its", "itself", "me", "more", "most", "my",
	"myself", "no", "nor", "not", "of", "off", "on", "once", "only", "or", "other",
	"ought", "our", "ours", "ourselves", "out", "over", "own", "same", "she", "should",
	"so", "some", "such", "than", "that", "the", "their", "theirs", "them", "themselves",
	"then", "there", "these", "they", "this", "those", "through", "to", "too", "under",
	"until", "up", "very", "was", "we", "were", "what", "when", "where", "which", "while",
	"who", "whom", "why", "with", "would", "you", "your", "yours", "yourself", "yourselves",
}

// PhraseTerms is the function-word list applied before n-gram construction.
var PhraseTerms = []string{
	"a", "an", "the", "and", "or", "but", "is", "are", "was", "were",
	"be", "been", "being", "to", "of", "in", "for", "with", "by", "at",
	"this", "that", "these", "those", "it", "its",
}

// Tags returns the built-in tag-extraction set.
func Tags() *Set { return New(TagsName, TagTerms) }

// Keywords returns the built-in keyword set.
func Keywords() *Set { return New(KeywordsName, KeywordTerms) }

// Phrases returns the built-in phrase set.
func Phrases() *Set { return New(PhrasesName, PhraseTerms) }
