package ingest

import (
	"github.com/cognicore/docparse/pkg/docparse/stoplist"
)

// Tag suggester defaults.
const (
	DefaultMaxTags        = 5
	DefaultMaxTagPhrases  = 3
	DefaultMaxTagWords    = 5
	DefaultTagMinWordLen  = 4
	DefaultTagMaxLen      = 20
	TagEllipsis           = "..."
	defaultMinRepeatCount = 2
)

// TagSuggester proposes short tags from capitalized phrases and repeated words.
type TagSuggester struct {
	Stopwords  *stoplist.Set
	MaxTags    int // cap on the returned list
	MaxPhrases int // capitalized phrases considered, in order of appearance
	MaxWords   int // frequent words considered
	MinWordLen int // letters required for a frequent-word candidate
	MaxLen     int // runes kept before the ellipsis is appended
}

// NewTagSuggester creates a suggester with the default caps.
func NewTagSuggester(stopwords *stoplist.Set) *TagSuggester {
	return &TagSuggester{
		Stopwords:  stopwords,
		MaxTags:    DefaultMaxTags,
		MaxPhrases: DefaultMaxTagPhrases,
		MaxWords:   DefaultMaxTagWords,
		MinWordLen: DefaultTagMinWordLen,
		MaxLen:     DefaultTagMaxLen,
	}
}

// Suggest returns up to MaxTags tags. Capitalized phrases come first, then
// frequent words; duplicates keep their first position.
func (s *TagSuggester) Suggest(text string) []string {
	candidates := CapitalizedPhrases(text, s.MaxPhrases)
	candidates = append(candidates, s.frequentWords(text)...)

	seen := make(map[string]struct{}, len(candidates))
	tags := make([]string, 0, s.MaxTags)
	for _, c := range candidates {
		if len(tags) >= s.MaxTags {
			break
		}
		if _, dup := seen[c]; dup {
			continue
		}
		seen[c] = struct{}{}
		tags = append(tags, TruncateTag(c, s.MaxLen))
	}
	return tags
}

func (s *TagSuggester) frequentWords(text string) []string {
	counter := NewCounter()
	for _, w := range TagWords(text, s.MinWordLen) {
		if s.Stopwords.IsStop(w) {
			continue
		}
		counter.Add(w)
	}
	return counter.MostCommon(s.MaxWords, defaultMinRepeatCount)
}

// TruncateTag cuts tag to maxLen runes and appends TagEllipsis when it was
// longer.
func TruncateTag(tag string, maxLen int) string {
	if maxLen <= 0 {
		return tag
	}
	n := 0
	for i := range tag {
		if n == maxLen {
			return tag[:i] + TagEllipsis
		}
		n++
	}
	return tag
}

// CapitalizedPhrases finds runs of two or more capitalized words separated
// by single spaces, e.g. "New York Times". A capitalized word is one ASCII
// uppercase letter followed by one or more ASCII lowercase letters. A match
// must start and end on a word boundary, where letters of any script,
// digits, and underscore count as word runes. Matches do not overlap.
// limit <= 0 returns every match.
func CapitalizedPhrases(text string, limit int) []string {
	runes := []rune(text)
	var phrases []string

	for i := 0; i < len(runes); {
		if limit > 0 && len(phrases) >= limit {
			break
		}
		end := matchCapitalized(runes, i)
		if end < 0 {
			i++
			continue
		}
		phrases = append(phrases, string(runes[i:end]))
		i = end
	}
	return phrases
}

// matchCapitalized returns the end of the longest phrase starting at i, or -1.
func matchCapitalized(runes []rune, i int) int {
	if i > 0 && isWordRune(runes[i-1]) {
		return -1
	}

	// ends[k] is the position just past the (k+1)th word of the chain.
	var ends []int
	pos := i
	for {
		end := capitalizedWordEnd(runes, pos)
		if end < 0 {
			break
		}
		ends = append(ends, end)
		if end+1 < len(runes) && runes[end] == ' ' && capitalizedWordEnd(runes, end+1) > 0 {
			pos = end + 1
			continue
		}
		break
	}

	if len(ends) < 2 {
		return -1
	}
	last := ends[len(ends)-1]
	if last == len(runes) || !isWordRune(runes[last]) {
		return last
	}
	// Every earlier word is followed by a space, which is a boundary.
	if len(ends) >= 3 {
		return ends[len(ends)-2]
	}
	return -1
}

// capitalizedWordEnd returns the end of [A-Z][a-z]+ at pos, or -1.
func capitalizedWordEnd(runes []rune, pos int) int {
	if pos >= len(runes) || !isASCIIUpper(runes[pos]) {
		return -1
	}
	j := pos + 1
	for j < len(runes) && isASCIILower(runes[j]) {
		j++
	}
	if j == pos+1 {
		return -1
	}
	return j
}
