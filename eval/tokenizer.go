package eval

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// punctuation tokens removed after tokenization.
var punctuation = map[string]struct{}{
	"''": {}, "'": {}, "``": {}, "`": {},
	"-lrb-": {}, "-rrb-": {}, "-lcb-": {}, "-rcb-": {},
	".": {}, "?": {}, "!": {}, ",": {}, ":": {}, "-": {}, "--": {}, "...": {}, ";": {},
	"(": {}, ")": {}, "[": {}, "]": {}, "{": {}, "}": {}, `"`: {},
}

var clitics = []string{"n't", "'s", "'re", "'ve", "'ll", "'d", "'m"}

// Tokenize splits s into lower-cased PTB-style tokens without punctuation.
func Tokenize(s string) []string {
	// A Caser is stateful, so each call gets its own.
	s = cases.Lower(language.English).String(norm.NFKC.String(s))
	s = strings.NewReplacer("’", "'", "‘", "'", "“", `"`, "”", `"`).Replace(s)

	var out []string
	for _, field := range strings.Fields(s) {
		for _, tok := range splitField(field) {
			if _, drop := punctuation[tok]; drop {
				continue
			}
			out = append(out, tok)
		}
	}
	return out
}

// TokenizeJoined returns Tokenize(s) joined by single spaces.
func TokenizeJoined(s string) string {
	return strings.Join(Tokenize(s), " ")
}

// splitField breaks one whitespace-delimited field into word, clitic and
// punctuation tokens. Hyphens and periods between alphanumerics stay inside
// the word.
func splitField(field string) []string {
	var (
		toks []string
		word []rune
	)
	flush := func() {
		if len(word) == 0 {
			return
		}
		toks = append(toks, splitClitic(string(word))...)
		word = word[:0]
	}

	runes := []rune(field)
	for i, r := range runes {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			word = append(word, r)
		case (r == '-' || r == '.' || r == '\'') && len(word) > 0 && i+1 < len(runes) && isAlnum(runes[i+1]):
			word = append(word, r)
		default:
			flush()
			if !unicode.IsSpace(r) {
				toks = append(toks, string(r))
			}
		}
	}
	flush()
	return mergeEllipsis(toks)
}

func splitClitic(w string) []string {
	for _, c := range clitics {
		if len(w) > len(c) && strings.HasSuffix(w, c) {
			return []string{w[:len(w)-len(c)], c}
		}
	}
	return []string{w}
}

func mergeEllipsis(toks []string) []string {
	out := toks[:0]
	for _, t := range toks {
		if n := len(out); n > 0 && t == "." && strings.Trim(out[n-1], ".") == "" && len(out[n-1]) < 3 {
			out[n-1] += "."
			continue
		}
		if n := len(out); n > 0 && t == "-" && out[n-1] == "-" {
			out[n-1] = "--"
			continue
		}
		out = append(out, t)
	}
	return out
}

func isAlnum(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}
