package ingest

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Token is a word or punctuation token with its byte offsets in the input.
type Token struct {
	Text  string
	Start int
	End   int
}

// Tokens splits text into word and punctuation tokens.
//
// A word is a run of letters, digits and the runes "+#._", so "c++",
// "c#" and "node.js" stay whole. Every other non-space rune becomes its own
// token ("objective-c" is objective, -, c). Trailing dots are split off a
// word so sentence ends do not stick to the last word.
func Tokens(text string) []Token {
	var tokens []Token
	start := -1

	flush := func(end int) {
		if start < 0 {
			return
		}
		word := text[start:end]
		trimmed := strings.TrimRight(word, ".")
		if trimmed != "" {
			tokens = append(tokens, Token{Text: trimmed, Start: start, End: start + len(trimmed)})
		}
		for i := start + len(trimmed); i < end; i++ {
			tokens = append(tokens, Token{Text: ".", Start: i, End: i + 1})
		}
		start = -1
	}

	for i := 0; i < len(text); {
		r, size := utf8.DecodeRuneInString(text[i:])
		switch {
		case isWordRune(r):
			if start < 0 {
				start = i
			}
		case unicode.IsSpace(r):
			flush(i)
		default:
			flush(i)
			tokens = append(tokens, Token{Text: text[i : i+size], Start: i, End: i + size})
		}
		i += size
	}
	flush(len(text))

	return tokens
}

// Tokenize returns the lowercased token texts of text.
func Tokenize(text string) []string {
	toks := Tokens(text)
	out := make([]string, len(toks))
	for i, t := range toks {
		out[i] = strings.ToLower(t.Text)
	}
	return out
}

func isWordRune(r rune) bool {
	if unicode.IsLetter(r) || unicode.IsNumber(r) {
		return true
	}
	switch r {
	case '+', '#', '.', '_':
		return true
	}
	return false
}
