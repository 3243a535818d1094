// Package textproc tokenizes and normalizes French review text.
//
// Normalization is case-insensitive and diacritic-sensitive: text is put
// into NFC form and lower-cased with French casing rules, accents are kept,
// so "Hélène" and "hélène" are equal while "Hélène" and "Helene" are not.
//
// Placeholder markers produced by redaction, such as [PERSONNE_3] or
// [EMAIL], are never returned as tokens.
//
// All functions are safe for concurrent use by multiple goroutines.
package textproc

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Token is a normalized word with byte offsets into the NFC form of the
// source text.
type Token struct {
	Text  string
	Start int
	End   int
}

// rePlaceholder matches redaction markers like [PERSONNE_12] or [URL].
var rePlaceholder = regexp.MustCompile(`\[[A-Z]+(?:_[0-9]+)?\]`)

// Normalize returns s in NFC form, lower-cased with French rules and with
// runs of white space collapsed to one space.
func Normalize(s string) string {
	s = norm.NFC.String(s)
	s = cases.Lower(language.French).String(s)
	return strings.Join(strings.Fields(s), " ")
}

// Fold is Normalize with diacritics removed. It is meant for matching
// user input typed without accents ("reparation"), never for pseudonym
// keys.
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	res, _, err := transform.String(t, Normalize(s))
	if err != nil {
		return Normalize(s)
	}
	return res
}

// PlaceholderSpans returns byte ranges of redaction markers in s.
func PlaceholderSpans(s string) [][]int {
	return rePlaceholder.FindAllStringIndex(s, -1)
}

// Tokens splits s into lower-cased word tokens. A word is a run of
// letters, hyphens inside a word are kept ("sous-effectif"), apostrophes
// split elisions ("n'est" gives "n" and "est"). Digits and punctuation
// separate words.
func Tokens(s string) []Token {
	if s == "" {
		return nil
	}
	s = norm.NFC.String(s)
	masked := maskPlaceholders(s)
	lower := cases.Lower(language.French)

	var res []Token
	start := -1
	flush := func(end int) {
		if start < 0 {
			return
		}
		w := strings.Trim(masked[start:end], "-")
		if w != "" {
			off := start + strings.Index(masked[start:end], w)
			res = append(res, Token{
				Text:  lower.String(w),
				Start: off,
				End:   off + len(w),
			})
		}
		start = -1
	}

	for i := 0; i < len(masked); {
		r, size := utf8.DecodeRuneInString(masked[i:])
		switch {
		case unicode.IsLetter(r) || unicode.Is(unicode.Mn, r):
			if start < 0 {
				start = i
			}
		case r == '-' && start >= 0:
		default:
			flush(i)
		}
		i += size
	}
	flush(len(masked))
	return res
}

// Words returns token texts of s.
func Words(s string) []string {
	toks := Tokens(s)
	if len(toks) == 0 {
		return nil
	}
	res := make([]string, len(toks))
	for i := range toks {
		res[i] = toks[i].Text
	}
	return res
}

// ContentWords returns words of s that are not stopwords and have at
// least minRunes runes.
func ContentWords(s string, minRunes int) []string {
	words := Words(s)
	res := words[:0]
	for _, w := range words {
		if utf8.RuneCountInString(w) < minRunes || IsStopword(w) {
			continue
		}
		res = append(res, w)
	}
	return res
}

// Stem returns the first n runes of a word. It is a crude prefix stem
// used to group inflections ("réparer", "réparation").
func Stem(word string, n int) string {
	if n <= 0 {
		return word
	}
	i := 0
	for pos := range word {
		if i == n {
			return word[:pos]
		}
		i++
	}
	return word
}

// maskPlaceholders replaces redaction markers with spaces of equal byte
// length so offsets stay valid.
func maskPlaceholders(s string) string {
	spans := PlaceholderSpans(s)
	if len(spans) == 0 {
		return s
	}
	b := []byte(s)
	for _, sp := range spans {
		for i := sp[0]; i < sp[1]; i++ {
			b[i] = ' '
		}
	}
	return string(b)
}
