package ingest

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// DefaultBoilerplate lists converter banners that leak into extracted text.
var DefaultBoilerplate = []string{
	"Evaluation Warning: The document was created with Spire.Doc for Python.",
}

// NormalizerOptions configures a Normalizer.
type NormalizerOptions struct {
	Lowercase   bool     // casefold the output of Normalize
	Boilerplate []string // exact phrases removed from the text
}

// Normalizer collapses whitespace, strips boilerplate and optionally
// casefolds text. It holds no mutable state and is safe for concurrent use.
type Normalizer struct {
	lowercase   bool
	boilerplate []string
}

// NewNormalizer creates a normalizer with the given options
func NewNormalizer(opts NormalizerOptions) *Normalizer {
	n := &Normalizer{lowercase: opts.Lowercase}
	for _, b := range opts.Boilerplate {
		if b = collapse(b); b != "" {
			n.boilerplate = append(n.boilerplate, b)
		}
	}
	return n
}

// Lowercase reports whether Normalize casefolds its output.
func (n *Normalizer) Lowercase() bool {
	return n.lowercase
}

// Clean applies NFC, removes boilerplate, turns CR/LF into spaces,
// collapses whitespace runs and trims. Casing is preserved.
func (n *Normalizer) Clean(raw string) string {
	if raw == "" {
		return ""
	}
	text := collapse(norm.NFC.String(raw))
	if len(n.boilerplate) == 0 {
		return text
	}
	for _, b := range n.boilerplate {
		text = strings.ReplaceAll(text, b, " ")
	}
	return collapse(text)
}

// Normalize is Clean followed by casefolding when the normalizer is
// configured to lowercase.
func (n *Normalizer) Normalize(raw string) string {
	text := n.Clean(raw)
	if !n.lowercase {
		return text
	}
	// Casers carry state; one per call keeps Normalize concurrency-safe.
	return cases.Lower(language.Und).String(text)
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
