package ingest

import (
	"strings"

	"github.com/cognicore/resumex/pkg/resumex/lexicon"
)

// LinkMatcher assigns URLs to link platforms by hostname substring.
type LinkMatcher struct {
	groups []lexicon.LinkGroup
}

// NewLinkMatcher creates a link matcher over the link groups of lex.
func NewLinkMatcher(lex *lexicon.Lexicon) *LinkMatcher {
	return &LinkMatcher{groups: lex.LinkGroups()}
}

// Platforms returns the platform names of group in lexicon order.
func (m *LinkMatcher) Platforms(group string) []string {
	for _, g := range m.groups {
		if g.Name != group {
			continue
		}
		out := make([]string, len(g.Platforms))
		for i, p := range g.Platforms {
			out[i] = p.Name
		}
		return out
	}
	return []string{}
}

// Match returns group → platform → URLs. Every group and platform is
// present. Groups and platforms are tried in lexicon order and the first
// platform with a host contained in the URL takes it; a URL is assigned to
// at most one platform.
func (m *LinkMatcher) Match(urls []string) map[string]map[string][]string {
	result := make(map[string]map[string][]string, len(m.groups))
	for _, g := range m.groups {
		platforms := make(map[string][]string, len(g.Platforms))
		for _, p := range g.Platforms {
			platforms[p.Name] = []string{}
		}
		result[g.Name] = platforms
	}

	seen := make(map[string]bool)
	for _, u := range urls {
		lower := strings.ToLower(u)
		if seen[lower] {
			continue
		}
		seen[lower] = true

		if group, platform, ok := m.classify(lower); ok {
			result[group][platform] = append(result[group][platform], u)
		}
	}

	return result
}

func (m *LinkMatcher) classify(lowerURL string) (group, platform string, ok bool) {
	for _, g := range m.groups {
		for _, p := range g.Platforms {
			for _, host := range p.Hosts {
				if strings.Contains(lowerURL, host) {
					return g.Name, p.Name, true
				}
			}
		}
	}
	return "", "", false
}
