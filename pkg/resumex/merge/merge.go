// Package merge combines per-source extraction results into one record.
package merge

import (
	"github.com/cognicore/resumex/pkg/resumex/ner"
	"github.com/cognicore/resumex/pkg/resumex/record"
)

// Field names a record field.
type Field string

const (
	FieldName            Field = "name"
	FieldEmails          Field = "emails"
	FieldPhones          Field = "phones"
	FieldEducation       Field = "education"
	FieldCertifications  Field = "certifications"
	FieldDesignations    Field = "designations"
	FieldGraduationYears Field = "graduation_years"
	FieldLocations       Field = "locations"
	FieldEmployers       Field = "employers"
	FieldSkills          Field = "skills"
	FieldExternalLinks   Field = "external_links"
	FieldSocialLinks     Field = "social_links"
)

// Owners maps every record field to the only source allowed to fill it.
var Owners = map[Field]ner.Source{
	FieldName:            ner.SourceGeneral,
	FieldEducation:       ner.SourceGeneral,
	FieldDesignations:    ner.SourceCustom,
	FieldGraduationYears: ner.SourceCustom,
	FieldLocations:       ner.SourceCustom,
	FieldEmployers:       ner.SourceCustom,
	FieldEmails:          ner.SourceRegex,
	FieldPhones:          ner.SourceRegex,
	FieldCertifications:  ner.SourceRegex,
	FieldExternalLinks:   ner.SourceRegex,
	FieldSocialLinks:     ner.SourceRegex,
	FieldSkills:          ner.SourcePhrase,
}

// ExactFields are list fields deduplicated by exact string match rather
// than casefolded.
var ExactFields = map[Field]bool{
	FieldCertifications: true,
}

// Contribution is what one source offers for the record.
type Contribution struct {
	Source      ner.Source
	Name        *string
	NameGuessed bool
	Lists       map[Field][]string
	Groups      map[Field]map[string][]string
}

// Merger builds records with a fixed schema.
type Merger struct {
	schema record.Schema
}

// NewMerger creates a merger whose records pre-initialize every category
// and platform in schema.
func NewMerger(schema record.Schema) *Merger {
	return &Merger{schema: schema}
}

// Schema returns the record schema.
func (m *Merger) Schema() record.Schema {
	return m.schema
}

// Empty returns a record with no values and every key present.
func (m *Merger) Empty() record.Record {
	return record.New(m.schema)
}

// Merge folds contributions into one record. A value offered for a field
// the contribution's source does not own is ignored, as is a group key
// outside the schema. List fields are deduplicated casefolded, except
// ExactFields.
func (m *Merger) Merge(contributions ...Contribution) record.Record {
	rec := record.New(m.schema)

	for _, c := range contributions {
		if c.Name != nil && Owners[FieldName] == c.Source && rec.Name == nil {
			name := *c.Name
			rec.Name = &name
			rec.NameGuessed = c.NameGuessed
		}

		for field, values := range c.Lists {
			if Owners[field] != c.Source {
				continue
			}
			dedup := record.Dedup
			if ExactFields[field] {
				dedup = record.DedupExact
			}
			if dst := listField(&rec, field); dst != nil {
				*dst = dedup(append(*dst, values...))
			}
		}

		for field, groups := range c.Groups {
			if Owners[field] != c.Source {
				continue
			}
			dst := groupField(&rec, field)
			if dst == nil {
				continue
			}
			for key, values := range groups {
				existing, known := dst[key]
				if !known {
					continue
				}
				dst[key] = record.Dedup(append(existing, values...))
			}
		}
	}

	return rec
}

func listField(rec *record.Record, f Field) *[]string {
	switch f {
	case FieldEmails:
		return &rec.Emails
	case FieldPhones:
		return &rec.Phones
	case FieldEducation:
		return &rec.Education
	case FieldCertifications:
		return &rec.Certifications
	case FieldDesignations:
		return &rec.Designations
	case FieldGraduationYears:
		return &rec.GraduationYears
	case FieldLocations:
		return &rec.Locations
	case FieldEmployers:
		return &rec.Employers
	}
	return nil
}

func groupField(rec *record.Record, f Field) map[string][]string {
	switch f {
	case FieldSkills:
		return rec.Skills
	case FieldExternalLinks:
		return rec.ExternalLinks
	case FieldSocialLinks:
		return rec.SocialLinks
	}
	return nil
}
