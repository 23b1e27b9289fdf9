package ingest

import (
	"reflect"
	"testing"

	"github.com/cognicore/resumex/pkg/resumex/lexicon"
)

func newTestPipeline(lowercase bool) *Pipeline {
	lex := lexicon.Default()
	return NewPipeline(
		NewNormalizer(NormalizerOptions{Lowercase: lowercase, Boilerplate: DefaultBoilerplate}),
		NewPhraseMatcher(lex),
		NewLinkMatcher(lex),
	)
}

func TestPipelineBasic(t *testing.T) {
	p := newTestPipeline(true)

	doc := p.Process("Contact: jane@example.com,\nskills: Python, Django, Tools: Git, Docker")

	if !reflect.DeepEqual(doc.Regex.Emails, []string{"jane@example.com"}) {
		t.Errorf("Emails = %v", doc.Regex.Emails)
	}
	if !reflect.DeepEqual(doc.Skills["programming_languages"], []string{"python"}) {
		t.Errorf("programming_languages = %v", doc.Skills["programming_languages"])
	}
	if !reflect.DeepEqual(doc.Skills["frameworks"], []string{"django"}) {
		t.Errorf("frameworks = %v", doc.Skills["frameworks"])
	}
	if !reflect.DeepEqual(doc.Skills["tools"], []string{"git", "docker"}) {
		t.Errorf("tools = %v", doc.Skills["tools"])
	}
}

func TestPipelinePreservesCasingForRegex(t *testing.T) {
	p := newTestPipeline(true)

	doc := p.Process("Jane Doe  Certified Kubernetes Administrator")
	if doc.Clean != "Jane Doe Certified Kubernetes Administrator" {
		t.Errorf("Clean = %q", doc.Clean)
	}
	if doc.Text != "jane doe certified kubernetes administrator" {
		t.Errorf("Text = %q", doc.Text)
	}
	if !reflect.DeepEqual(doc.Regex.Certifications, []string{"Certified Kubernetes Administrator"}) {
		t.Errorf("Certifications = %v", doc.Regex.Certifications)
	}
}

func TestPipelineLinks(t *testing.T) {
	p := newTestPipeline(false)

	doc := p.Process("Portfolio https://github.com/jane https://instagram.com/jane")
	if len(doc.Links[lexicon.ExternalLinks]["github"]) != 1 {
		t.Errorf("github = %v", doc.Links[lexicon.ExternalLinks]["github"])
	}
	if len(doc.Links[lexicon.SocialLinks]["instagram"]) != 1 {
		t.Errorf("instagram = %v", doc.Links[lexicon.SocialLinks]["instagram"])
	}
}

func TestPipelineEmpty(t *testing.T) {
	p := newTestPipeline(true)

	doc := p.Process("")
	if doc.Text != "" || doc.Clean != "" {
		t.Errorf("Expected empty text, got %q / %q", doc.Clean, doc.Text)
	}
	if len(doc.Skills) != 7 {
		t.Errorf("Expected 7 skill categories, got %d", len(doc.Skills))
	}
	if len(doc.Links) != 2 {
		t.Errorf("Expected 2 link groups, got %d", len(doc.Links))
	}
}

func TestPipelineSchema(t *testing.T) {
	schema := newTestPipeline(false).Schema()

	if len(schema.SkillCategories) != 7 || schema.SkillCategories[0] != "programming_languages" {
		t.Errorf("SkillCategories = %v", schema.SkillCategories)
	}
	want := []string{"github", "linkedin", "hackerrank", "leetcode", "codechef", "codingninjas"}
	if !reflect.DeepEqual(schema.ExternalPlatforms, want) {
		t.Errorf("ExternalPlatforms = %v, want %v", schema.ExternalPlatforms, want)
	}
	if !reflect.DeepEqual(schema.SocialPlatforms, []string{"instagram", "twitter", "facebook"}) {
		t.Errorf("SocialPlatforms = %v", schema.SocialPlatforms)
	}
}
