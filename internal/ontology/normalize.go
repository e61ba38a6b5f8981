// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ontology

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// toLower applies full Unicode lowercasing: a word-final Σ becomes ς and
// İ becomes "i\u0307". A Caser holds state, so each call builds its own.
func toLower(s string) string {
	return cases.Lower(language.Und).String(s)
}

// NormalizePartID derives a partId from a display name:
//
//  1. lowercase
//  2. drop every rune that is not a word rune, whitespace, or '-'
//  3. collapse each run of '-' and whitespace into one '_'
//  4. trim leading and trailing '_'
//
// Word runes are Unicode letters, numbers, and '_'. A name made only of
// dropped runes yields "".
func NormalizePartID(name string) string {
	var b strings.Builder
	b.Grow(len(name))

	inSep := false
	for _, r := range toLower(name) {
		switch {
		case r == '-' || isSpace(r):
			if !inSep {
				b.WriteByte('_')
				inSep = true
			}
		case r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r):
			b.WriteRune(r)
			inSep = false
		default:
			// Dropped runes do not end a separator run: "a -.- b" is one run.
		}
	}
	return strings.Trim(b.String(), "_")
}

// isSpace extends unicode.IsSpace with the ASCII information separators
// (U+001C..U+001F), which the historical generator also treated as whitespace.
func isSpace(r rune) bool {
	return unicode.IsSpace(r) || (r >= 0x1c && r <= 0x1f)
}
