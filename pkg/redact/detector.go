package redact

import (
	"regexp"
	"strings"
)

// EntityDetector finds spans of one entity type in a text.
// Implementations must be safe for concurrent use.
type EntityDetector interface {
	Type() EntityType
	Detect(text string) []Span
}

var (
	reEmail = regexp.MustCompile(
		`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`,
	)
	// French numbers: 0X XX XX XX XX, +33 X XX XX XX XX, 0033...
	// with spaces, dots or dashes between digit pairs.
	rePhone = regexp.MustCompile(
		`(?:\+33|\b0033|\b0)[ \t]*[1-9](?:[ \t.-]*[0-9]{2}){4}\b`,
	)
	reURL = regexp.MustCompile(`(?i)\bhttps?://\S+|\bwww\.\S+`)
)

// regexDetector reports every match of a pattern as an entity.
type regexDetector struct {
	typ  EntityType
	re   *regexp.Regexp
	trim string
}

// NewEmailDetector returns a detector of e-mail addresses.
func NewEmailDetector() EntityDetector {
	return regexDetector{typ: Email, re: reEmail}
}

// NewPhoneDetector returns a detector of French phone numbers.
func NewPhoneDetector() EntityDetector {
	return regexDetector{typ: Phone, re: rePhone}
}

// NewURLDetector returns a detector of web addresses. Trailing
// punctuation is not part of a URL.
func NewURLDetector() EntityDetector {
	return regexDetector{typ: URL, re: reURL, trim: ".,;:!?)]}\"'"}
}

func (d regexDetector) Type() EntityType {
	return d.typ
}

func (d regexDetector) Detect(text string) []Span {
	locs := d.re.FindAllStringIndex(text, -1)
	if len(locs) == 0 {
		return nil
	}
	res := make([]Span, 0, len(locs))
	for _, loc := range locs {
		end := loc[1]
		if d.trim != "" {
			end = loc[0] + len(strings.TrimRight(text[loc[0]:end], d.trim))
		}
		if end <= loc[0] {
			continue
		}
		res = append(res, Span{Start: loc[0], End: end, Type: d.typ})
	}
	return res
}

// DefaultDetectors returns all built-in detectors.
func DefaultDetectors() []EntityDetector {
	return []EntityDetector{
		NewURLDetector(),
		NewEmailDetector(),
		NewPhoneDetector(),
		NewPersonDetector(),
	}
}
