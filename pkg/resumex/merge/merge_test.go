package merge

import (
	"reflect"
	"testing"

	"github.com/cognicore/resumex/pkg/resumex/ner"
	"github.com/cognicore/resumex/pkg/resumex/record"
)

func testMerger() *Merger {
	return NewMerger(record.Schema{
		SkillCategories:   []string{"programming_languages", "frameworks", "tools"},
		ExternalPlatforms: []string{"github", "linkedin"},
		SocialPlatforms:   []string{"twitter"},
	})
}

func contributions() []Contribution {
	name := "Jane Doe"
	return []Contribution{
		{
			Source: ner.SourceRegex,
			Lists: map[Field][]string{
				FieldEmails:         {"jane@example.com", "JANE@example.com"},
				FieldPhones:         {"555-123-4567"},
				FieldCertifications: {"Certified Kubernetes Administrator"},
			},
			Groups: map[Field]map[string][]string{
				FieldExternalLinks: {"github": {"https://github.com/jane"}},
			},
		},
		{
			Source: ner.SourcePhrase,
			Groups: map[Field]map[string][]string{
				FieldSkills: {
					"programming_languages": {"python"},
					"tools":                 {"git", "docker"},
				},
			},
		},
		{
			Source: ner.SourceGeneral,
			Name:   &name,
			Lists:  map[Field][]string{FieldEducation: {"IIT Bombay"}},
		},
		{
			Source: ner.SourceCustom,
			Lists: map[Field][]string{
				FieldEmployers:       {"Infosys"},
				FieldGraduationYears: {"2020"},
			},
		},
	}
}

func TestMergeBasic(t *testing.T) {
	rec := testMerger().Merge(contributions()...)

	if rec.Name == nil || *rec.Name != "Jane Doe" {
		t.Errorf("Name = %v", rec.Name)
	}
	if !reflect.DeepEqual(rec.Emails, []string{"jane@example.com"}) {
		t.Errorf("Emails = %v", rec.Emails)
	}
	if !reflect.DeepEqual(rec.Skills["tools"], []string{"git", "docker"}) {
		t.Errorf("Skills[tools] = %v", rec.Skills["tools"])
	}
	if !reflect.DeepEqual(rec.Skills["frameworks"], []string{}) {
		t.Errorf("Skills[frameworks] = %v, want empty", rec.Skills["frameworks"])
	}
	if !reflect.DeepEqual(rec.Education, []string{"IIT Bombay"}) {
		t.Errorf("Education = %v", rec.Education)
	}
	if !reflect.DeepEqual(rec.Employers, []string{"Infosys"}) {
		t.Errorf("Employers = %v", rec.Employers)
	}
	if !reflect.DeepEqual(rec.ExternalLinks["linkedin"], []string{}) {
		t.Errorf("ExternalLinks[linkedin] = %v, want empty", rec.ExternalLinks["linkedin"])
	}
}

func TestMergeDeterministic(t *testing.T) {
	m := testMerger()
	c := contributions()
	want := m.Merge(c...)

	orders := [][]int{{3, 2, 1, 0}, {1, 3, 0, 2}, {2, 0, 3, 1}}
	for _, order := range orders {
		permuted := make([]Contribution, len(order))
		for i, idx := range order {
			permuted[i] = c[idx]
		}
		if got := m.Merge(permuted...); !reflect.DeepEqual(got, want) {
			t.Errorf("Merge order %v = %+v, want %+v", order, got, want)
		}
	}
}

func TestMergeEnforcesOwnership(t *testing.T) {
	name := "Not A Name"
	rec := testMerger().Merge(
		Contribution{
			Source: ner.SourceRegex,
			Name:   &name,
			Lists:  map[Field][]string{FieldEducation: {"Fake University"}},
			Groups: map[Field]map[string][]string{FieldSkills: {"tools": {"git"}}},
		},
		Contribution{
			Source: ner.SourcePhrase,
			Lists:  map[Field][]string{FieldEmails: {"x@y.com"}},
		},
	)

	if rec.Name != nil {
		t.Errorf("Regex source must not set name, got %q", *rec.Name)
	}
	if len(rec.Education) != 0 || len(rec.Skills["tools"]) != 0 || len(rec.Emails) != 0 {
		t.Errorf("Non-owning sources must be ignored, got %+v", rec)
	}
}

func TestMergeCertificationsExactDedup(t *testing.T) {
	rec := testMerger().Merge(Contribution{
		Source: ner.SourceRegex,
		Lists: map[Field][]string{
			FieldCertifications: {"Certified Java Developer", "certified java developer", "Certified Java Developer"},
			FieldPhones:         {"555-123-4567", "555-123-4567"},
		},
	})

	want := []string{"Certified Java Developer", "certified java developer"}
	if !reflect.DeepEqual(rec.Certifications, want) {
		t.Errorf("Certifications = %v, want %v", rec.Certifications, want)
	}
	if !reflect.DeepEqual(rec.Phones, []string{"555-123-4567"}) {
		t.Errorf("Phones = %v", rec.Phones)
	}
}

func TestMergeNameGuessed(t *testing.T) {
	name := "Om Chandel"
	m := testMerger()

	rec := m.Merge(Contribution{Source: ner.SourceGeneral, Name: &name, NameGuessed: true})
	if rec.Name == nil || *rec.Name != name || !rec.NameGuessed {
		t.Errorf("Expected guessed name %q, got %v (guessed=%v)", name, rec.Name, rec.NameGuessed)
	}

	rec = m.Merge(Contribution{Source: ner.SourceRegex, Name: &name, NameGuessed: true})
	if rec.Name != nil || rec.NameGuessed {
		t.Errorf("Non-owning source must not set the name flag, got %+v", rec)
	}
}

func TestMergeUnknownGroupKey(t *testing.T) {
	rec := testMerger().Merge(Contribution{
		Source: ner.SourcePhrase,
		Groups: map[Field]map[string][]string{FieldSkills: {"cooking": {"sous vide"}}},
	})
	if _, ok := rec.Skills["cooking"]; ok {
		t.Error("Categories outside the schema should be ignored")
	}
}

func TestMergeNothing(t *testing.T) {
	m := testMerger()
	if got := m.Merge(); !reflect.DeepEqual(got, m.Empty()) {
		t.Errorf("Merge() = %+v, want empty record", got)
	}
}

func TestEveryFieldHasOwner(t *testing.T) {
	fields := []Field{
		FieldName, FieldEmails, FieldPhones, FieldEducation, FieldCertifications,
		FieldDesignations, FieldGraduationYears, FieldLocations, FieldEmployers,
		FieldSkills, FieldExternalLinks, FieldSocialLinks,
	}
	for _, f := range fields {
		if _, ok := Owners[f]; !ok {
			t.Errorf("Field %s has no owning source", f)
		}
	}
}
