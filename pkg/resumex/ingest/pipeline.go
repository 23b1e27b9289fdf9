package ingest

import (
	"github.com/cognicore/resumex/pkg/resumex/lexicon"
	"github.com/cognicore/resumex/pkg/resumex/record"
)

// Pipeline orchestrates the deterministic extraction passes:
// text → normalization → regex extraction → phrase and link matching
type Pipeline struct {
	normalizer *Normalizer
	phrases    *PhraseMatcher
	links      *LinkMatcher
}

// NewPipeline creates an ingestion pipeline with the given components
func NewPipeline(normalizer *Normalizer, phrases *PhraseMatcher, links *LinkMatcher) *Pipeline {
	return &Pipeline{
		normalizer: normalizer,
		phrases:    phrases,
		links:      links,
	}
}

// ProcessedDoc represents a document after the deterministic passes
type ProcessedDoc struct {
	Clean  string // normalized, original casing
	Text   string // normalized per options, possibly casefolded
	Regex  Extraction
	Skills map[string][]string
	Links  map[string]map[string][]string
}

// Normalizer returns the pipeline's normalizer.
func (p *Pipeline) Normalizer() *Normalizer {
	return p.normalizer
}

// Schema returns the categories and platforms the pipeline reports on.
func (p *Pipeline) Schema() record.Schema {
	return record.Schema{
		SkillCategories:   p.phrases.Categories(),
		ExternalPlatforms: p.links.Platforms(lexicon.ExternalLinks),
		SocialPlatforms:   p.links.Platforms(lexicon.SocialLinks),
	}
}

// Process runs raw text through normalization, the regex extractors and
// the phrase and link matchers.
func (p *Pipeline) Process(raw string) ProcessedDoc {
	// 1. Normalize. Casing-sensitive passes read Clean.
	clean := p.normalizer.Clean(raw)
	text := clean
	if p.normalizer.Lowercase() {
		text = p.normalizer.Normalize(raw)
	}

	// 2. Regex extractors
	regex := Extract(clean)

	// 3. Dictionary passes
	return ProcessedDoc{
		Clean:  clean,
		Text:   text,
		Regex:  regex,
		Skills: p.phrases.Match(text),
		Links:  p.links.Match(regex.URLs),
	}
}
