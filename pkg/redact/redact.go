// Package redact replaces personal information in review texts with
// placeholders.
//
// E-mails, phone numbers and URLs become the category placeholders
// [EMAIL], [TELEPHONE] and [URL]. Person names become [PERSONNE_<n>], where
// n is allocated by a Registry shared by all reviews of a run, so the same
// person always gets the same placeholder.
//
// Redaction is best-effort: entities that no detector recognizes stay in
// the text. Placeholders are never detected as entities, so redacting an
// already redacted text returns it unchanged.
package redact

import (
	"regexp"
	"slices"
	"strings"

	"github.com/aladaia/vocan/pkg/textproc"
)

// Redactor applies a set of detectors to review texts.
type Redactor struct {
	reg       *Registry
	detectors []EntityDetector
}

// New creates a Redactor backed by a registry. Without detectors it uses
// DefaultDetectors.
func New(reg *Registry, detectors ...EntityDetector) *Redactor {
	if len(detectors) == 0 {
		detectors = DefaultDetectors()
	}
	return &Redactor{reg: reg, detectors: detectors}
}

// Registry returns the pseudonym registry of the redactor.
func (r *Redactor) Registry() *Registry {
	return r.reg
}

// Redact returns text with all detected entities replaced, and one event
// per replacement in text order.
func (r *Redactor) Redact(reviewID, text string) (string, []Event) {
	var cands []Span
	for _, d := range r.detectors {
		cands = append(cands, d.Detect(text)...)
	}
	spans := resolveOverlaps(cands, textproc.PlaceholderSpans(text))
	if len(spans) == 0 {
		return text, nil
	}

	var sb strings.Builder
	events := make([]Event, 0, len(spans))
	var last int
	for _, sp := range spans {
		orig := text[sp.Start:sp.End]
		ph := sp.Type.categoryPlaceholder()
		if sp.Type == Person {
			ph = r.reg.Placeholder(orig)
		}
		sb.WriteString(text[last:sp.Start])
		sb.WriteString(ph)
		last = sp.End
		events = append(events, Event{
			ReviewID:    reviewID,
			EntityType:  sp.Type,
			Placeholder: ph,
			Original:    orig,
		})
	}
	sb.WriteString(text[last:])
	return sb.String(), events
}

// resolveOverlaps picks non-overlapping spans. Longer spans win, then
// earlier ones, then the type with higher priority. Spans touching an
// existing placeholder are dropped. The result is sorted by start.
func resolveOverlaps(cands []Span, placeholders [][]int) []Span {
	slices.SortStableFunc(cands, func(a, b Span) int {
		if a.Len() != b.Len() {
			return b.Len() - a.Len()
		}
		if a.Start != b.Start {
			return a.Start - b.Start
		}
		return b.Type.priority() - a.Type.priority()
	})

	var res []Span
outer:
	for _, c := range cands {
		for _, p := range placeholders {
			if c.overlaps(p[0], p[1]) {
				continue outer
			}
		}
		for _, kept := range res {
			if c.overlaps(kept.Start, kept.End) {
				continue outer
			}
		}
		res = append(res, c)
	}

	slices.SortFunc(res, func(a, b Span) int {
		return a.Start - b.Start
	})
	return res
}

var (
	reDigitRun = regexp.MustCompile(`[0-9]{8,}`)
	reWWW      = regexp.MustCompile(`(?i)www\.`)
)

// Note kinds of residual fragments that look like personal data.
const (
	NoteAtSign   = "at-sign"
	NoteDigitRun = "digit-run"
	NoteWWW      = "www"
)

// Note marks a fragment of redacted text that looks like personal data
// but was not recognized. It carries the position only, never the text.
type Note struct {
	ReviewID string `json:"review_id"`
	Kind     string `json:"kind"`
	Offset   int    `json:"offset"`
}

// Residuals scans redacted text for fragments that may be personal data
// missed by the detectors.
func Residuals(reviewID, redacted string) []Note {
	var res []Note
	masked := redacted
	for _, sp := range textproc.PlaceholderSpans(redacted) {
		masked = masked[:sp[0]] + strings.Repeat(" ", sp[1]-sp[0]) + masked[sp[1]:]
	}

	if i := strings.IndexByte(masked, '@'); i >= 0 {
		res = append(res, Note{ReviewID: reviewID, Kind: NoteAtSign, Offset: i})
	}
	if loc := reDigitRun.FindStringIndex(masked); loc != nil {
		res = append(res, Note{ReviewID: reviewID, Kind: NoteDigitRun, Offset: loc[0]})
	}
	if loc := reWWW.FindStringIndex(masked); loc != nil {
		res = append(res, Note{ReviewID: reviewID, Kind: NoteWWW, Offset: loc[0]})
	}
	return res
}
