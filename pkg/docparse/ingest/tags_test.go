package ingest

import (
	"reflect"
	"testing"
	"unicode/utf8"

	"github.com/cognicore/docparse/pkg/docparse/stoplist"
)

func TestCapitalizedPhrases(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"two words", "Apple Inc announced", []string{"Apple Inc"}},
		{"three words", "The New York Times reported", []string{"The New York Times"}},
		{"single word ignored", "Apple announced", nil},
		{"acronym breaks word", "IBM Research Labs", []string{"Research Labs"}},
		{"double space breaks chain", "Hello  World", nil},
		{"must start on boundary", "xApple Inc", nil},
		{"trailing word rune backs off", "Apple Inc Corpé", []string{"Apple Inc"}},
		{"trailing word rune with two words", "Apple Incé", nil},
		{"digit suffix backs off", "Big Blue Box9", []string{"Big Blue"}},
		{"non-ascii capital is not a start", "Über Alles Gut", []string{"Alles Gut"}},
		{"multiple non-overlapping", "Red Hat and Blue Origin met Red Hat", []string{"Red Hat", "Blue Origin", "Red Hat"}},
		{"punctuation ends phrase", "Visit New York, then Los Angeles.", []string{"Visit New York", "Los Angeles"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CapitalizedPhrases(tt.text, 0)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("CapitalizedPhrases(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestCapitalizedPhrasesLimit(t *testing.T) {
	got := CapitalizedPhrases("Alpha One. Beta Two. Gamma Three. Delta Four.", 3)
	want := []string{"Alpha One", "Beta Two", "Gamma Three"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestTruncateTag(t *testing.T) {
	tests := []struct {
		tag  string
		want string
	}{
		{"short", "short"},
		{"exactlytwentyletters", "exactlytwentyletters"},
		{"internationalizations", "internationalization..."},
		{"ééééééééééééééééééééé", "éééééééééééééééééééé..."},
	}
	for _, tt := range tests {
		if got := TruncateTag(tt.tag, 20); got != tt.want {
			t.Errorf("TruncateTag(%q) = %q, want %q", tt.tag, got, tt.want)
		}
	}
}

func TestTagSuggesterTruncatesFrequentWord(t *testing.T) {
	s := NewTagSuggester(stoplist.Tags())

	got := s.Suggest("internationalizations and internationalizations")
	want := []string{"internationalization..."}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Suggest = %q, want %q", got, want)
	}
	if n := utf8.RuneCountInString(got[0]); n != 23 {
		t.Errorf("truncated tag has %d runes, want 23", n)
	}
}

func TestTagSuggesterSingletonsNeverPromoted(t *testing.T) {
	s := NewTagSuggester(stoplist.Tags())

	if got := s.Suggest("every word here appears only once"); len(got) != 0 {
		t.Errorf("Suggest = %q, want empty", got)
	}
}

func TestTagSuggesterFiltersTagStopwords(t *testing.T) {
	s := NewTagSuggester(stoplist.Tags())

	got := s.Suggest("which which which there there river river")
	want := []string{"river"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Suggest = %q, want %q", got, want)
	}
}

func TestTagSuggesterCapAndOrder(t *testing.T) {
	s := NewTagSuggester(stoplist.Tags())

	text := "Alpha One. Beta Two. Gamma Three. Delta Four. " +
		"rivers rivers rivers lakes lakes oceans oceans ponds ponds creeks creeks"
	got := s.Suggest(text)
	want := []string{"Alpha One", "Beta Two", "Gamma Three", "rivers", "lakes"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Suggest = %q, want %q", got, want)
	}
}

func TestTagSuggesterDeduplicatesPhrases(t *testing.T) {
	s := NewTagSuggester(stoplist.Tags())

	got := s.Suggest("Acme Corp. Acme Corp. Acme Corp.")
	want := []string{"Acme Corp", "acme", "corp"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Suggest = %q, want %q", got, want)
	}
}
