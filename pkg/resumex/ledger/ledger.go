// Package ledger accumulates the phrases and platforms seen across a batch.
package ledger

import (
	"strings"

	"github.com/cognicore/resumex/pkg/resumex/lexicon"
	"github.com/cognicore/resumex/pkg/resumex/record"
)

// Ledger maps a category to the ordered set of values seen so far.
// Skill categories collect matched phrases; the link groups collect the
// platform names that received at least one URL. It is not safe for
// concurrent use; a batch builds one after its workers finish.
type Ledger struct {
	schema  record.Schema
	order   []string
	entries map[string]*orderedSet
	docs    int64
}

type orderedSet struct {
	values []string
	seen   map[string]struct{}
}

func (s *orderedSet) add(v string) {
	key := strings.ToLower(v)
	if _, ok := s.seen[key]; ok {
		return
	}
	s.seen[key] = struct{}{}
	s.values = append(s.values, v)
}

// New creates an empty ledger with every skill category and both link
// groups present.
func New(schema record.Schema) *Ledger {
	l := &Ledger{schema: schema, entries: make(map[string]*orderedSet)}
	for _, cat := range schema.SkillCategories {
		l.ensure(cat)
	}
	l.ensure(lexicon.ExternalLinks)
	l.ensure(lexicon.SocialLinks)
	return l
}

func (l *Ledger) ensure(category string) *orderedSet {
	if s, ok := l.entries[category]; ok {
		return s
	}
	s := &orderedSet{seen: make(map[string]struct{})}
	l.entries[category] = s
	l.order = append(l.order, category)
	return s
}

// Add records values under category, skipping empty and already seen ones.
func (l *Ledger) Add(category string, values ...string) {
	s := l.ensure(category)
	for _, v := range values {
		if v != "" {
			s.add(v)
		}
	}
}

// Process consumes one document's record.
func (l *Ledger) Process(rec record.Record) {
	l.docs++
	for _, cat := range l.schema.SkillCategories {
		l.Add(cat, rec.Skills[cat]...)
	}
	for _, p := range l.schema.ExternalPlatforms {
		if len(rec.ExternalLinks[p]) > 0 {
			l.Add(lexicon.ExternalLinks, p)
		}
	}
	for _, p := range l.schema.SocialPlatforms {
		if len(rec.SocialLinks[p]) > 0 {
			l.Add(lexicon.SocialLinks, p)
		}
	}
}

// Merge appends other's entries after this ledger's, category by category.
func (l *Ledger) Merge(other *Ledger) {
	if other == nil {
		return
	}
	l.docs += other.docs
	for _, cat := range other.order {
		l.Add(cat, other.entries[cat].values...)
	}
}

// Get returns the values recorded under category.
func (l *Ledger) Get(category string) []string {
	s, ok := l.entries[category]
	if !ok {
		return []string{}
	}
	out := make([]string, len(s.values))
	copy(out, s.values)
	return out
}

// Categories returns the ledger categories in insertion order.
func (l *Ledger) Categories() []string {
	out := make([]string, len(l.order))
	copy(out, l.order)
	return out
}

// Docs returns the number of processed documents.
func (l *Ledger) Docs() int64 {
	return l.docs
}

// Snapshot returns a copy of the ledger as category → values.
func (l *Ledger) Snapshot() map[string][]string {
	out := make(map[string][]string, len(l.order))
	for _, cat := range l.order {
		out[cat] = l.Get(cat)
	}
	return out
}
