package ner

import (
	"context"
	"errors"
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cognicore/resumex/pkg/resumex/ingest"
	"github.com/cognicore/resumex/pkg/resumex/internalerr"
)

// GazetteerModel is the on-disk form of a gazetteer recognizer.
//
//	name: general
//	labels: [PERSON, ORG, GPE]
//	entities:
//	  - label: ORG
//	    entries: ["IIT Bombay", "Infosys"]
//	rules:
//	  - label: GRADUATION_YEAR
//	    pattern: '\b(?:19|20)\d{2}\b'
//
// A rule with a capture group labels the first group instead of the
// whole match.
type GazetteerModel struct {
	Name     string        `yaml:"name"`
	Labels   []string      `yaml:"labels"`
	Entities []EntityList  `yaml:"entities"`
	Rules    []PatternRule `yaml:"rules"`
}

// EntityList holds the gazetteer entries of one label.
type EntityList struct {
	Label   string   `yaml:"label"`
	Entries []string `yaml:"entries"`
}

// PatternRule labels regex matches.
type PatternRule struct {
	Label   string `yaml:"label"`
	Pattern string `yaml:"pattern"`
}

// Gazetteer recognizes whole-token, case-insensitive gazetteer entries
// and regex rules. It is read-only after construction.
type Gazetteer struct {
	name    string
	labels  []string
	entries map[string]string // token key → label
	maxLen  int
	rules   []compiledRule
}

type compiledRule struct {
	label string
	re    *regexp.Regexp
}

// LoadGazetteer reads a gazetteer model from a YAML file.
func LoadGazetteer(path string) (*Gazetteer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read model: %v", internalerr.ErrModelUnavailable, err)
	}
	var model GazetteerModel
	if err := yaml.Unmarshal(data, &model); err != nil {
		return nil, fmt.Errorf("%w: parse model %s: %v", internalerr.ErrModelUnavailable, path, err)
	}
	if model.Name == "" {
		model.Name = path
	}
	return NewGazetteer(model)
}

// NewGazetteer compiles a model. Entries and rules must use declared labels.
func NewGazetteer(model GazetteerModel) (*Gazetteer, error) {
	if len(model.Labels) == 0 {
		return nil, fmt.Errorf("%w: model %q declares no labels", internalerr.ErrModelUnavailable, model.Name)
	}
	declared := make(map[string]bool, len(model.Labels))
	for _, l := range model.Labels {
		declared[l] = true
	}

	g := &Gazetteer{
		name:    model.Name,
		labels:  append([]string(nil), model.Labels...),
		entries: make(map[string]string),
		maxLen:  1,
	}

	for _, list := range model.Entities {
		if !declared[list.Label] {
			return nil, fmt.Errorf("%w: model %q: undeclared label %q", internalerr.ErrModelUnavailable, model.Name, list.Label)
		}
		for _, entry := range list.Entries {
			toks := ingest.Tokenize(entry)
			if len(toks) == 0 {
				continue
			}
			key := strings.Join(toks, " ")
			if _, exists := g.entries[key]; exists {
				continue
			}
			g.entries[key] = list.Label
			if len(toks) > g.maxLen {
				g.maxLen = len(toks)
			}
		}
	}

	for _, r := range model.Rules {
		if !declared[r.Label] {
			return nil, fmt.Errorf("%w: model %q: undeclared label %q", internalerr.ErrModelUnavailable, model.Name, r.Label)
		}
		re, err := regexp.Compile(r.Pattern)
		if err != nil {
			return nil, fmt.Errorf("%w: model %q: rule %s: %v", internalerr.ErrModelUnavailable, model.Name, r.Label, err)
		}
		g.rules = append(g.rules, compiledRule{label: r.Label, re: re})
	}

	return g, nil
}

// Name returns the model name.
func (g *Gazetteer) Name() string {
	return g.name
}

// Labels returns the declared labels.
func (g *Gazetteer) Labels() []string {
	return append([]string(nil), g.labels...)
}

// Recognize returns spans ordered by start offset. Gazetteer entries are
// matched longest-first without overlap; rule matches are added as found.
func (g *Gazetteer) Recognize(ctx context.Context, text string) ([]Span, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Join(internalerr.ErrRecognitionFailure, err)
	}

	var spans []Span
	tokens := ingest.Tokens(text)
	lowered := make([]string, len(tokens))
	for i, t := range tokens {
		lowered[i] = strings.ToLower(t.Text)
	}

	for i := 0; i < len(tokens); {
		n := g.maxLen
		if remaining := len(tokens) - i; n > remaining {
			n = remaining
		}
		matched := 0
		for ; n >= 1; n-- {
			label, ok := g.entries[strings.Join(lowered[i:i+n], " ")]
			if !ok {
				continue
			}
			start, end := tokens[i].Start, tokens[i+n-1].End
			spans = append(spans, Span{Text: text[start:end], Label: label, Start: start, End: end})
			matched = n
			break
		}
		if matched == 0 {
			matched = 1
		}
		i += matched
	}

	seen := make(map[[2]int]bool, len(spans))
	for _, s := range spans {
		seen[[2]int{s.Start, s.End}] = true
	}
	for _, r := range g.rules {
		for _, loc := range r.re.FindAllStringSubmatchIndex(text, -1) {
			start, end := loc[0], loc[1]
			if len(loc) >= 4 && loc[2] >= 0 {
				start, end = loc[2], loc[3]
			}
			if start == end || seen[[2]int{start, end}] {
				continue
			}
			seen[[2]int{start, end}] = true
			spans = append(spans, Span{Text: text[start:end], Label: r.label, Start: start, End: end})
		}
	}

	sort.SliceStable(spans, func(i, j int) bool {
		if spans[i].Start != spans[j].Start {
			return spans[i].Start < spans[j].Start
		}
		return spans[i].End > spans[j].End
	})
	return spans, nil
}
