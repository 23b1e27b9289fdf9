package lexicon

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cognicore/resumex/pkg/resumex/internalerr"
)

// Lexicon stores the static vocabulary the matchers work from:
// - Skill categories: category name -> ordered set of phrases
// - Link groups: group -> platform -> hostname substrings
//
// Phrases and hosts are lowercased and whitespace-collapsed on load.
// Category, group and platform order is the order they were declared in,
// which makes first-match link labelling deterministic.
//
// A Lexicon is read-only after Build and safe for concurrent use.
type Lexicon struct {
	categories []string
	phrases    map[string][]string
	groups     []LinkGroup
}

// Category is one skill category with its phrases.
type Category struct {
	Name    string   `yaml:"category"`
	Phrases []string `yaml:"phrases"`
}

// LinkGroup is a named set of link platforms (e.g. "external_links").
type LinkGroup struct {
	Name      string     `yaml:"group"`
	Platforms []Platform `yaml:"platforms"`
}

// Platform maps a platform name to the hostname substrings identifying it.
type Platform struct {
	Name  string   `yaml:"name"`
	Hosts []string `yaml:"hosts"`
}

// Build validates the given categories and link groups and returns a
// Lexicon. Validation failures wrap internalerr.ErrMalformedLexicon.
func Build(skills []Category, links []LinkGroup) (*Lexicon, error) {
	lex := &Lexicon{phrases: make(map[string][]string, len(skills))}

	for i, cat := range skills {
		name := strings.TrimSpace(cat.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: category %d has no name", internalerr.ErrMalformedLexicon, i)
		}
		if _, dup := lex.phrases[name]; dup {
			return nil, fmt.Errorf("%w: duplicate category %q", internalerr.ErrMalformedLexicon, name)
		}
		if len(cat.Phrases) == 0 {
			return nil, fmt.Errorf("%w: category %q is empty", internalerr.ErrMalformedLexicon, name)
		}

		phrases := make([]string, 0, len(cat.Phrases))
		seen := make(map[string]bool, len(cat.Phrases))
		for _, p := range cat.Phrases {
			p = Fold(p)
			if p == "" {
				return nil, fmt.Errorf("%w: category %q has an empty phrase", internalerr.ErrMalformedLexicon, name)
			}
			if seen[p] {
				continue
			}
			seen[p] = true
			phrases = append(phrases, p)
		}

		lex.categories = append(lex.categories, name)
		lex.phrases[name] = phrases
	}

	groupSeen := make(map[string]bool, len(links))
	for i, g := range links {
		gname := strings.TrimSpace(g.Name)
		if gname == "" {
			return nil, fmt.Errorf("%w: link group %d has no name", internalerr.ErrMalformedLexicon, i)
		}
		if groupSeen[gname] {
			return nil, fmt.Errorf("%w: duplicate link group %q", internalerr.ErrMalformedLexicon, gname)
		}
		groupSeen[gname] = true

		group := LinkGroup{Name: gname, Platforms: make([]Platform, 0, len(g.Platforms))}
		platSeen := make(map[string]bool, len(g.Platforms))
		for _, p := range g.Platforms {
			pname := strings.TrimSpace(p.Name)
			if pname == "" {
				return nil, fmt.Errorf("%w: link group %q has an unnamed platform", internalerr.ErrMalformedLexicon, gname)
			}
			if platSeen[pname] {
				return nil, fmt.Errorf("%w: duplicate platform %q in %q", internalerr.ErrMalformedLexicon, pname, gname)
			}
			platSeen[pname] = true

			hosts := make([]string, 0, len(p.Hosts))
			for _, h := range p.Hosts {
				if h = Fold(h); h != "" {
					hosts = append(hosts, h)
				}
			}
			if len(hosts) == 0 {
				return nil, fmt.Errorf("%w: platform %q in %q has no hosts", internalerr.ErrMalformedLexicon, pname, gname)
			}
			group.Platforms = append(group.Platforms, Platform{Name: pname, Hosts: hosts})
		}
		lex.groups = append(lex.groups, group)
	}

	return lex, nil
}

// LoadFromYAML loads a lexicon from a YAML file.
//
// Expected format:
//
//	skills:
//	  - category: programming_languages
//	    phrases: [python, java, ruby on rails]
//	links:
//	  - group: external_links
//	    platforms:
//	      - name: github
//	        hosts: [github.com]
func LoadFromYAML(path string) (*Lexicon, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var file struct {
		Skills []Category  `yaml:"skills"`
		Links  []LinkGroup `yaml:"links"`
	}
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("%w: %v", internalerr.ErrMalformedLexicon, err)
	}

	return Build(file.Skills, file.Links)
}

// Fold lowercases s and collapses internal whitespace.
func Fold(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// Restrict returns a lexicon holding only the named skill categories, in
// their original order. Link groups are kept. An empty list keeps every
// category; an unknown name is a configuration error.
func (l *Lexicon) Restrict(active []string) (*Lexicon, error) {
	if len(active) == 0 {
		return l, nil
	}

	want := make(map[string]bool, len(active))
	for _, name := range active {
		name = strings.TrimSpace(name)
		if _, ok := l.phrases[name]; !ok {
			return nil, fmt.Errorf("%w: unknown skill category %q", internalerr.ErrInvalidConfig, name)
		}
		want[name] = true
	}

	out := &Lexicon{phrases: make(map[string][]string, len(want)), groups: l.groups}
	for _, cat := range l.categories {
		if want[cat] {
			out.categories = append(out.categories, cat)
			out.phrases[cat] = l.phrases[cat]
		}
	}
	return out, nil
}

// Categories returns skill category names in declaration order.
func (l *Lexicon) Categories() []string {
	out := make([]string, len(l.categories))
	copy(out, l.categories)
	return out
}

// Phrases returns the phrases of a category, or nil if it does not exist.
func (l *Lexicon) Phrases(category string) []string {
	p, ok := l.phrases[category]
	if !ok {
		return nil
	}
	out := make([]string, len(p))
	copy(out, p)
	return out
}

// HasCategory reports whether category is a known skill category.
func (l *Lexicon) HasCategory(category string) bool {
	_, ok := l.phrases[category]
	return ok
}

// LinkGroups returns the link groups in declaration order.
func (l *Lexicon) LinkGroups() []LinkGroup {
	return l.groups
}

// PlatformNames returns the platform names of a link group in order.
func (l *Lexicon) PlatformNames(group string) []string {
	for _, g := range l.groups {
		if g.Name != group {
			continue
		}
		names := make([]string, len(g.Platforms))
		for i, p := range g.Platforms {
			names[i] = p.Name
		}
		return names
	}
	return nil
}

// GroupNames returns the link group names in order.
func (l *Lexicon) GroupNames() []string {
	names := make([]string, len(l.groups))
	for i, g := range l.groups {
		names[i] = g.Name
	}
	return names
}

// Stats returns statistics about the lexicon contents.
func (l *Lexicon) Stats() LexiconStats {
	st := LexiconStats{Categories: len(l.categories), LinkGroups: len(l.groups)}
	for _, p := range l.phrases {
		st.Phrases += len(p)
	}
	for _, g := range l.groups {
		st.Platforms += len(g.Platforms)
	}
	return st
}

// LexiconStats holds statistics about lexicon contents.
type LexiconStats struct {
	Categories int // Number of skill categories
	Phrases    int // Total phrases across categories
	LinkGroups int // Number of link groups
	Platforms  int // Total platforms across link groups
}
