package ingest

import (
	"github.com/cognicore/docparse/pkg/docparse/stoplist"
)

// Keyword ranker defaults.
const (
	DefaultMaxKeywords   = 20
	DefaultKeywordMinLen = 4
)

// KeywordRanker ranks repeated single words by frequency.
type KeywordRanker struct {
	tokenizer   *Tokenizer
	MaxKeywords int
}

// NewKeywordRanker creates a ranker that ignores stopwords and words of
// three runes or fewer.
func NewKeywordRanker(stopwords *stoplist.Set) *KeywordRanker {
	return &KeywordRanker{
		tokenizer:   NewTokenizer(stopwords, DefaultKeywordMinLen),
		MaxKeywords: DefaultMaxKeywords,
	}
}

// Rank returns words occurring more than once, most frequent first. Ties
// keep the order in which the words first appear in text.
func (k *KeywordRanker) Rank(text string) []string {
	counter := NewCounter()
	counter.AddAll(k.tokenizer.Tokenize(text))
	return counter.MostCommon(k.MaxKeywords, defaultMinRepeatCount)
}
