package ner

// Source identifies the extractor that produced a span.
type Source string

const (
	SourceRegex   Source = "regex"
	SourcePhrase  Source = "phrase-match"
	SourceGeneral Source = "statistical-general"
	SourceCustom  Source = "statistical-custom"
)

// Labels produced by the general recognizer.
const (
	LabelPerson = "PERSON"
	LabelOrg    = "ORG"
	LabelGPE    = "GPE"
)

// Labels produced by the domain-specific recognizer.
const (
	LabelGraduationYear = "GRADUATION_YEAR"
	LabelDesignation    = "DESIGNATION"
	LabelLocation       = "LOCATION"
	LabelEmployer       = "EMPLOYER"
)

// GeneralLabels and CustomLabels are the label sets of the two recognizers
// the pipeline composes.
var (
	GeneralLabels = []string{LabelPerson, LabelOrg, LabelGPE}
	CustomLabels  = []string{LabelGraduationYear, LabelDesignation, LabelLocation, LabelEmployer}
)

// Span is a labeled substring of the text a recognizer ran on.
// Start and End are byte offsets.
type Span struct {
	Text   string
	Label  string
	Source Source
	Start  int
	End    int
}
