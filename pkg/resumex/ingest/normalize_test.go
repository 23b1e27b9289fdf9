package ingest

import "testing"

func TestNormalizerCollapsesWhitespace(t *testing.T) {
	n := NewNormalizer(NormalizerOptions{})

	tests := []struct {
		input string
		want  string
	}{
		{"", ""},
		{"   ", ""},
		{"Jane\r\nDoe", "Jane Doe"},
		{"  a\n\n\tb   c  ", "a b c"},
		{"Python,\rDjango", "Python, Django"},
	}

	for _, tt := range tests {
		if got := n.Normalize(tt.input); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestNormalizerLowercase(t *testing.T) {
	n := NewNormalizer(NormalizerOptions{Lowercase: true})

	raw := "Jane DOE\nPython"
	if got := n.Normalize(raw); got != "jane doe python" {
		t.Errorf("Normalize() = %q, want casefolded", got)
	}
	if got := n.Clean(raw); got != "Jane DOE Python" {
		t.Errorf("Clean() should preserve casing, got %q", got)
	}
}

func TestNormalizerStripsBoilerplate(t *testing.T) {
	n := NewNormalizer(NormalizerOptions{Boilerplate: DefaultBoilerplate})

	raw := "Jane Doe\nEvaluation Warning: The document was created\nwith Spire.Doc for Python.\nSkills: Go"
	if got := n.Normalize(raw); got != "Jane Doe Skills: Go" {
		t.Errorf("Normalize() = %q, boilerplate should be removed", got)
	}
}

func TestNormalizerNFC(t *testing.T) {
	n := NewNormalizer(NormalizerOptions{})

	// "e" + combining acute composes to a single rune
	if got := n.Normalize("Re\u0301sume\u0301"); got != "R\u00e9sum\u00e9" {
		t.Errorf("Normalize() = %q, want NFC form", got)
	}
}
