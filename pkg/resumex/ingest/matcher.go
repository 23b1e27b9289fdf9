package ingest

import (
	"strings"

	"github.com/cognicore/resumex/pkg/resumex/lexicon"
)

// PhraseMatcher finds lexicon phrases in text as whole token sequences.
type PhraseMatcher struct {
	dict       map[string][]phraseEntry // token key → categories holding the phrase
	categories []string
	maxLen     int
}

type phraseEntry struct {
	category string
	phrase   string
}

// NewPhraseMatcher builds a matcher over every skill category of lex.
// Phrases are tokenized with the same tokenizer as the text, so
// "objective-c" matches "Objective-C" but "java" never matches
// "javascript".
func NewPhraseMatcher(lex *lexicon.Lexicon) *PhraseMatcher {
	m := &PhraseMatcher{
		dict:       make(map[string][]phraseEntry),
		categories: lex.Categories(),
		maxLen:     1,
	}
	for _, cat := range m.categories {
		for _, phrase := range lex.Phrases(cat) {
			toks := Tokenize(phrase)
			if len(toks) == 0 {
				continue
			}
			key := phraseKey(toks)
			m.dict[key] = append(m.dict[key], phraseEntry{category: cat, phrase: phrase})
			if len(toks) > m.maxLen {
				m.maxLen = len(toks)
			}
		}
	}
	return m
}

// Categories returns the categories the matcher reports on.
func (m *PhraseMatcher) Categories() []string {
	out := make([]string, len(m.categories))
	copy(out, m.categories)
	return out
}

// Match returns category → matched phrases. Every category is present,
// possibly with an empty list. Overlapping phrases all match ("spring" and
// "spring boot"). Within a category phrases are ordered by first occurrence
// and appear once.
func (m *PhraseMatcher) Match(text string) map[string][]string {
	result := make(map[string][]string, len(m.categories))
	seen := make(map[string]map[string]bool, len(m.categories))
	for _, cat := range m.categories {
		result[cat] = []string{}
		seen[cat] = make(map[string]bool)
	}

	tokens := Tokenize(text)
	for i := range tokens {
		maxPhrase := m.maxLen
		if remaining := len(tokens) - i; maxPhrase > remaining {
			maxPhrase = remaining
		}
		for n := 1; n <= maxPhrase; n++ {
			entries, ok := m.dict[phraseKey(tokens[i:i+n])]
			if !ok {
				continue
			}
			for _, e := range entries {
				if seen[e.category][e.phrase] {
					continue
				}
				seen[e.category][e.phrase] = true
				result[e.category] = append(result[e.category], e.phrase)
			}
		}
	}

	return result
}

func phraseKey(tokens []string) string {
	return strings.Join(tokens, " ")
}
