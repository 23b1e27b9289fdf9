package ingest

import (
	"regexp"
	"strings"
	"unicode"
)

// Patterns are RE2, so matching is linear in the input size.
var (
	// Local part and domain labels may not start or end with a dot, so
	// "foo.@bar.com" does not match at all.
	emailPattern = regexp.MustCompile(`[A-Za-z0-9%+_-]+(?:\.[A-Za-z0-9%+_-]+)*@[A-Za-z0-9-]+(?:\.[A-Za-z0-9-]+)*\.[A-Za-z]{2,}`)

	// Low precision: dates and zip codes can match. Digit count is checked
	// afterwards.
	phonePattern = regexp.MustCompile(`(?:\+?\d{1,3}[\s-]?)?(?:\(\d{3}\)|\d{3})[\s-]?\d{2,4}[\s-]?\d{2,4}`)

	urlPattern = regexp.MustCompile(`(?i)https?://\S+`)

	certificationPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\bcertified [a-z ]+`),
		regexp.MustCompile(`(?i)\bcertification in [a-z ]+`),
		regexp.MustCompile(`(?i)[a-z][a-z ]* certification\b`),
	}
)

const (
	minPhoneDigits = 7
	maxPhoneDigits = 15
)

// Extraction holds the regex extractor results for one text.
type Extraction struct {
	Emails         []string
	Phones         []string
	URLs           []string
	Certifications []string
}

// Extract runs every regex extractor over text.
func Extract(text string) Extraction {
	return Extraction{
		Emails:         ExtractEmails(text),
		Phones:         ExtractPhones(text),
		URLs:           ExtractURLs(text),
		Certifications: ExtractCertifications(text),
	}
}

// ExtractEmails returns lowercased email addresses in order of first
// occurrence.
func ExtractEmails(text string) []string {
	out := []string{}
	seen := make(map[string]bool)
	for _, m := range emailPattern.FindAllString(text, -1) {
		m = strings.ToLower(m)
		if !seen[m] {
			seen[m] = true
			out = append(out, m)
		}
	}
	return out
}

// ExtractPhones returns phone-like digit runs holding 7 to 15 digits.
func ExtractPhones(text string) []string {
	out := []string{}
	seen := make(map[string]bool)
	for _, m := range phonePattern.FindAllString(text, -1) {
		m = strings.Trim(m, " -")
		if n := countDigits(m); n < minPhoneDigits || n > maxPhoneDigits {
			continue
		}
		if !seen[m] {
			seen[m] = true
			out = append(out, m)
		}
	}
	return out
}

// ExtractURLs returns http(s) URLs, deduplicated case-insensitively.
func ExtractURLs(text string) []string {
	out := []string{}
	seen := make(map[string]bool)
	for _, m := range urlPattern.FindAllString(text, -1) {
		key := strings.ToLower(m)
		if !seen[key] {
			seen[key] = true
			out = append(out, m)
		}
	}
	return out
}

// ExtractCertifications returns the matches of every certification
// pattern, pattern by pattern. Only exact duplicates are dropped.
func ExtractCertifications(text string) []string {
	out := []string{}
	seen := make(map[string]bool)
	for _, re := range certificationPatterns {
		for _, m := range re.FindAllString(text, -1) {
			m = strings.TrimSpace(m)
			if m == "" || seen[m] {
				continue
			}
			seen[m] = true
			out = append(out, m)
		}
	}
	return out
}

func countDigits(s string) int {
	n := 0
	for _, r := range s {
		if unicode.IsDigit(r) {
			n++
		}
	}
	return n
}
