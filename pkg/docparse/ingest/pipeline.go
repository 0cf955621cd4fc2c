package ingest

import "github.com/cognicore/docparse/pkg/docparse/stoplist"

// Pipeline runs the three analyzers over the same text:
// text → {tag suggestion, keyword ranking, phrase building}
//
// The analyzers share no mutable state, so a Pipeline is safe for
// concurrent use once constructed.
type Pipeline struct {
	tags     *TagSuggester
	keywords *KeywordRanker
	phrases  *PhraseBuilder
}

// NewPipeline creates a pipeline with the given components
func NewPipeline(tags *TagSuggester, keywords *KeywordRanker, phrases *PhraseBuilder) *Pipeline {
	return &Pipeline{
		tags:     tags,
		keywords: keywords,
		phrases:  phrases,
	}
}

// NewDefaultPipeline wires the built-in stopword sets and default caps.
func NewDefaultPipeline() *Pipeline {
	return NewPipeline(
		NewTagSuggester(stoplist.Tags()),
		NewKeywordRanker(stoplist.Keywords()),
		NewPhraseBuilder(stoplist.Phrases()),
	)
}

// ProcessedDoc holds the analyzer output for one text.
type ProcessedDoc struct {
	Tags     []string
	Keywords []string
	Phrases  []string
}

// Process runs a document's text through every analyzer. It never fails;
// text without qualifying words yields empty, non-nil lists.
func (p *Pipeline) Process(text string) ProcessedDoc {
	return ProcessedDoc{
		Tags:     nonNil(p.tags.Suggest(text)),
		Keywords: nonNil(p.keywords.Rank(text)),
		Phrases:  nonNil(p.phrases.Build(text)),
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
