package ner

import (
	"strings"

	"go.uber.org/zap"
)

// Result is the outcome of one recognizer call. A nil Result or a
// non-nil Err means the recognizer produced nothing for the document.
type Result struct {
	Spans []Span
	Err   error
}

// Failed reports whether the recognizer call did not succeed.
func (r *Result) Failed() bool {
	return r == nil || r.Err != nil
}

// Entities are the record fields derived from recognizer spans.
type Entities struct {
	Name            *string
	NameGuessed     bool
	Education       []string
	Designations    []string
	GraduationYears []string
	Locations       []string
	Employers       []string
}

// Interpreter turns recognizer spans into record fields.
type Interpreter struct {
	keywords []string
	logger   *zap.Logger
}

// NewInterpreter creates an interpreter that treats ORG spans whose text
// contains one of keywords (any case) as education.
func NewInterpreter(keywords []string, logger *zap.Logger) *Interpreter {
	if logger == nil {
		logger = zap.NewNop()
	}
	in := &Interpreter{logger: logger}
	for _, k := range keywords {
		if k = strings.ToLower(strings.TrimSpace(k)); k != "" {
			in.keywords = append(in.keywords, k)
		}
	}
	return in
}

// Interpret derives record fields from the general and custom recognizer
// results on text, which should keep its original casing.
//
// Name is the first PERSON span. Without one, the first two whitespace
// tokens of text are used and NameGuessed is set. When the general
// recognizer failed there is no name and no education.
func (in *Interpreter) Interpret(text string, general, custom *Result) Entities {
	e := Entities{
		Education:       []string{},
		Designations:    []string{},
		GraduationYears: []string{},
		Locations:       []string{},
		Employers:       []string{},
	}

	if !general.Failed() {
		e.Name, e.NameGuessed = in.name(text, general.Spans)
		e.Education = in.education(general.Spans)
	}

	if !custom.Failed() {
		for _, s := range custom.Spans {
			switch s.Label {
			case LabelDesignation:
				e.Designations = appendUnique(e.Designations, s.Text)
			case LabelGraduationYear:
				e.GraduationYears = appendUnique(e.GraduationYears, s.Text)
			case LabelLocation:
				e.Locations = appendUnique(e.Locations, s.Text)
			case LabelEmployer:
				e.Employers = appendUnique(e.Employers, s.Text)
			}
		}
	}

	return e
}

func (in *Interpreter) name(text string, spans []Span) (*string, bool) {
	for _, s := range spans {
		if s.Label == LabelPerson {
			name := strings.TrimSpace(s.Text)
			return &name, false
		}
	}

	fields := strings.Fields(text)
	if len(fields) == 0 {
		return nil, false
	}
	if len(fields) > 2 {
		fields = fields[:2]
	}
	name := strings.Join(fields, " ")
	in.logger.Debug("No PERSON entity, guessing name from leading tokens", zap.String("name", name))
	return &name, true
}

// IsEducation reports whether org contains an education keyword. The test
// is a plain substring match, so "iit" also accepts "IITB".
func (in *Interpreter) IsEducation(org string) bool {
	org = strings.ToLower(org)
	for _, kw := range in.keywords {
		if strings.Contains(org, kw) {
			return true
		}
	}
	return false
}

func (in *Interpreter) education(spans []Span) []string {
	out := []string{}
	for _, s := range spans {
		if s.Label == LabelOrg && in.IsEducation(s.Text) {
			out = appendUnique(out, strings.TrimSpace(s.Text))
		}
	}
	return out
}

// appendUnique appends v unless list already holds it, compared casefolded.
func appendUnique(list []string, v string) []string {
	if v == "" {
		return list
	}
	for _, existing := range list {
		if strings.EqualFold(existing, v) {
			return list
		}
	}
	return append(list, v)
}
