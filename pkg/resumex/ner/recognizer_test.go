package ner

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/cognicore/resumex/pkg/resumex/internalerr"
)

func TestOpen(t *testing.T) {
	rec, err := Open(filepath.Join("..", "..", "..", "models", "general.yaml"), OpenOptions{})
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if rec.Name() != "general" {
		t.Errorf("Name() = %q, want general", rec.Name())
	}

	rec, err = Open("openai:gpt-4o-mini", OpenOptions{APIKey: "test", Labels: CustomLabels})
	if err != nil {
		t.Fatalf("Open hosted model failed: %v", err)
	}
	if rec.Name() != "openai:gpt-4o-mini" {
		t.Errorf("Name() = %q", rec.Name())
	}
}

func TestOpenFailures(t *testing.T) {
	tests := []struct {
		name string
		path string
	}{
		{"empty", ""},
		{"missing file", filepath.Join(t.TempDir(), "nope.yaml")},
		{"hosted without key", "openai:gpt-4o-mini"},
		{"hosted without model", "openai:"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Open(tt.path, OpenOptions{}); !errors.Is(err, internalerr.ErrModelUnavailable) {
				t.Errorf("Open(%q) error = %v, want ErrModelUnavailable", tt.path, err)
			}
		})
	}
}

func TestStamp(t *testing.T) {
	spans := Stamp([]Span{{Text: "a"}, {Text: "b"}}, SourceCustom)
	for _, s := range spans {
		if s.Source != SourceCustom {
			t.Errorf("Span %q source = %s", s.Text, s.Source)
		}
	}
}
