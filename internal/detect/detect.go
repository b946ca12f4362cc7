// Package detect implements the leakage predicate: did an emotion tag
// survive the TTS → STT round trip as literal text?
package detect

import (
	"regexp"
	"strings"
	"sync"
)

// wordPatterns caches the compiled whole-word pattern per lowercased tag.
// The benchmark evaluates the same small tag set thousands of times.
var wordPatterns sync.Map

// Leaked reports whether the emotion tag appears in the transcription.
// A true result means the tag leaked and the test case fails.
//
// The check is case-insensitive and matches either the parenthesized form
// "(tag)" anywhere in the text, or the bare tag as a whole word. Substrings
// inside larger words do not match: "unhappy" does not leak "happy".
// Tags are treated as literal text; regex metacharacters have no effect.
func Leaked(transcription, tag string) bool {
	if transcription == "" {
		return false
	}

	text := strings.ToLower(transcription)
	lowered := strings.ToLower(tag)

	if strings.Contains(text, "("+lowered+")") {
		return true
	}

	return wordPattern(lowered).MatchString(text)
}

func wordPattern(lowered string) *regexp.Regexp {
	if p, ok := wordPatterns.Load(lowered); ok {
		return p.(*regexp.Regexp)
	}
	p := regexp.MustCompile(`\b` + regexp.QuoteMeta(lowered) + `\b`)
	wordPatterns.Store(lowered, p)
	return p
}
