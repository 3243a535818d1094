package redact

import (
	"bufio"
	_ "embed"
	"regexp"
	"strings"

	"github.com/aladaia/vocan/pkg/textproc"
)

//go:embed data/firstnames.txt
var firstNamesData string

// reNameWord matches a capitalized word ("Sophie", "Jean-Pierre",
// "Lefèvre") or an all-caps word of 2+ letters ("MARTIN").
var reNameWord = regexp.MustCompile(
	`\p{Lu}[\p{Ll}\p{M}]+(?:-\p{Lu}[\p{Ll}\p{M}]+)*|\p{Lu}{2,}(?:-\p{Lu}{2,})*`,
)

// honorifics introduce a person name even when the name is not in the
// gazetteer ("Madame Durand").
var honorifics = []string{
	"m.", "mr", "mr.", "mme", "mme.", "madame", "monsieur",
	"mlle", "mlle.", "mademoiselle",
}

type personDetector struct {
	firstNames map[string]struct{}
}

// NewPersonDetector returns a dictionary-driven detector of person names.
//
// A name starts with a known first name or with any capitalized word that
// follows an honorific. One directly following capitalized word is taken
// as the family name.
func NewPersonDetector(extraNames ...string) EntityDetector {
	d := personDetector{firstNames: make(map[string]struct{})}
	sc := bufio.NewScanner(strings.NewReader(firstNamesData))
	for sc.Scan() {
		d.add(sc.Text())
	}
	for _, v := range extraNames {
		d.add(v)
	}
	return d
}

func (d personDetector) add(name string) {
	name = strings.TrimSpace(name)
	if name == "" || strings.HasPrefix(name, "#") {
		return
	}
	d.firstNames[textproc.Normalize(name)] = struct{}{}
}

func (d personDetector) Type() EntityType {
	return Person
}

func (d personDetector) Detect(text string) []Span {
	locs := reNameWord.FindAllStringIndex(text, -1)
	var res []Span
	for i := 0; i < len(locs); i++ {
		start, end := locs[i][0], locs[i][1]
		word := text[start:end]
		if !d.isFirstName(word) &&
			!(afterHonorific(text[:start]) && isSurname(word)) {
			continue
		}
		if i+1 < len(locs) {
			next := locs[i+1]
			gap := text[end:next[0]]
			if isBlank(gap) && isSurname(text[next[0]:next[1]]) {
				end = next[1]
				i++
			}
		}
		res = append(res, Span{Start: start, End: end, Type: Person})
	}
	return res
}

func (d personDetector) isFirstName(word string) bool {
	w := textproc.Normalize(word)
	if _, ok := d.firstNames[w]; ok {
		return true
	}
	// compound first names: "Jean-Pierre", "Marie-Claire"
	if first, _, ok := strings.Cut(w, "-"); ok {
		_, ok = d.firstNames[first]
		return ok
	}
	return false
}

func isSurname(word string) bool {
	return !textproc.IsStopword(textproc.Normalize(word))
}

func afterHonorific(before string) bool {
	before = strings.TrimRight(before, " \t")
	if before == "" {
		return false
	}
	idx := strings.LastIndexAny(before, " \t\n\r([,;:!?\"'")
	last := textproc.Normalize(before[idx+1:])
	for _, h := range honorifics {
		if last == h {
			return true
		}
	}
	return false
}

// isBlank is true for a non-empty run of spaces or tabs.
func isBlank(s string) bool {
	return s != "" && strings.Trim(s, " \t") == ""
}
