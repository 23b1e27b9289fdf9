package ingest

import (
	"reflect"
	"testing"
)

func TestExtractEmails(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"simple", "Contact: jane@example.com, thanks", []string{"jane@example.com"}},
		{"lowercased", "Reach me at Jane.Doe@Example.COM today", []string{"jane.doe@example.com"}},
		{"sentence end", "Mail omchandel1703@gmail.com.", []string{"omchandel1703@gmail.com"}},
		{"dedup casefolded", "a@b.io and A@B.IO", []string{"a@b.io"}},
		{"trailing dot before at", "bad foo.@bar.com", []string{}},
		{"leading dot after at", "bad foo@.bar.com", []string{}},
		{"subdomain and plus", "x+tag@mail.uni.edu", []string{"x+tag@mail.uni.edu"}},
		{"none", "no address here", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractEmails(tt.text); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ExtractEmails(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestExtractPhones(t *testing.T) {
	tests := []struct {
		text string
		want []string
	}{
		{"Call +1 (555) 123-4567 now", []string{"+1 (555) 123-4567"}},
		{"Phone: 555-123-4567", []string{"555-123-4567"}},
		{"Mobile 9685890401", []string{"9685890401"}},
		{"Room 12", []string{}},
		{"555-123-4567 or 555-123-4567", []string{"555-123-4567"}},
	}

	for _, tt := range tests {
		if got := ExtractPhones(tt.text); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("ExtractPhones(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}

func TestExtractURLs(t *testing.T) {
	text := "See https://github.com/jane and HTTP://Example.org/a?b=1 or https://github.com/jane"
	want := []string{"https://github.com/jane", "HTTP://Example.org/a?b=1"}
	if got := ExtractURLs(text); !reflect.DeepEqual(got, want) {
		t.Errorf("ExtractURLs() = %v, want %v", got, want)
	}

	if got := ExtractURLs("ftp://files.example.org"); len(got) != 0 {
		t.Errorf("Only http(s) URLs should match, got %v", got)
	}
}

func TestExtractCertifications(t *testing.T) {
	text := "Certified Kubernetes Administrator, AWS Solutions Architect Certification; Certification in Data Science."
	want := []string{
		"Certified Kubernetes Administrator",
		"Certification in Data Science",
		"AWS Solutions Architect Certification",
	}
	if got := ExtractCertifications(text); !reflect.DeepEqual(got, want) {
		t.Errorf("ExtractCertifications() = %v, want %v", got, want)
	}
}

func TestExtractCertificationsCaseInsensitive(t *testing.T) {
	got := ExtractCertifications("certified scrum master")
	if len(got) != 1 || got[0] != "certified scrum master" {
		t.Errorf("Expected lowercase match, got %v", got)
	}
}

func TestExtractEmptyText(t *testing.T) {
	ex := Extract("")
	if len(ex.Emails) != 0 || len(ex.Phones) != 0 || len(ex.URLs) != 0 || len(ex.Certifications) != 0 {
		t.Errorf("Empty text should extract nothing, got %+v", ex)
	}
	if ex.Emails == nil || ex.Phones == nil || ex.URLs == nil || ex.Certifications == nil {
		t.Error("Extractors should return empty slices, not nil")
	}
}
