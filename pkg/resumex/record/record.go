// Package record defines the normalized résumé record.
package record

import "strings"

// Record is the merged extraction result for one document.
type Record struct {
	Name            *string             `json:"name"`
	NameGuessed     bool                `json:"name_guessed"` // name came from the leading-token fallback
	Emails          []string            `json:"emails"`
	Phones          []string            `json:"phones"`
	Education       []string            `json:"education"`
	Certifications  []string            `json:"certifications"`
	Designations    []string            `json:"designations"`
	GraduationYears []string            `json:"graduation_years"`
	Locations       []string            `json:"locations"`
	Employers       []string            `json:"employers"`
	Skills          map[string][]string `json:"skills"`
	ExternalLinks   map[string][]string `json:"external_links"`
	SocialLinks     map[string][]string `json:"social_links"`
}

// Schema names the categories and platforms a record pre-initializes.
type Schema struct {
	SkillCategories   []string
	ExternalPlatforms []string
	SocialPlatforms   []string
}

// New returns an empty record with every list empty and every known
// category and platform present.
func New(schema Schema) Record {
	return Record{
		Emails:          []string{},
		Phones:          []string{},
		Education:       []string{},
		Certifications:  []string{},
		Designations:    []string{},
		GraduationYears: []string{},
		Locations:       []string{},
		Employers:       []string{},
		Skills:          seed(schema.SkillCategories),
		ExternalLinks:   seed(schema.ExternalPlatforms),
		SocialLinks:     seed(schema.SocialPlatforms),
	}
}

// NameOr returns the record name or fallback when there is none.
func (r Record) NameOr(fallback string) string {
	if r.Name == nil {
		return fallback
	}
	return *r.Name
}

// IsEmpty reports whether the record carries no extracted value.
func (r Record) IsEmpty() bool {
	if r.Name != nil {
		return false
	}
	for _, list := range [][]string{
		r.Emails, r.Phones, r.Education, r.Certifications,
		r.Designations, r.GraduationYears, r.Locations, r.Employers,
	} {
		if len(list) > 0 {
			return false
		}
	}
	for _, m := range []map[string][]string{r.Skills, r.ExternalLinks, r.SocialLinks} {
		for _, v := range m {
			if len(v) > 0 {
				return false
			}
		}
	}
	return true
}

// Dedup returns values without casefolded duplicates, first occurrence
// kept. Empty strings are dropped. The result is never nil.
func Dedup(values []string) []string {
	out := make([]string, 0, len(values))
	seen := make(map[string]bool, len(values))
	for _, v := range values {
		if v == "" {
			continue
		}
		key := strings.ToLower(v)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, v)
	}
	return out
}

// DedupExact is Dedup with exact string comparison.
func DedupExact(values []string) []string {
	out := make([]string, 0, len(values))
	seen := make(map[string]bool, len(values))
	for _, v := range values {
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}

func seed(keys []string) map[string][]string {
	m := make(map[string][]string, len(keys))
	for _, k := range keys {
		m[k] = []string{}
	}
	return m
}
