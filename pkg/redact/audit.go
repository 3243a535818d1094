package redact

// Audit collects redaction events and residual notes of a run. Its JSON
// form never contains original text.
type Audit struct {
	Summary Summary `json:"summary"`
	Events  []Event `json:"events"`
	Notes   []Note  `json:"residual_notes"`
}

// Summary holds redaction counts of a run.
type Summary struct {
	Reviews         int            `json:"reviews"`
	RedactedReviews int            `json:"redacted_reviews"`
	Redactions      int            `json:"redactions"`
	ByType          map[string]int `json:"by_type"`
	UniquePersons   int            `json:"unique_persons"`
	PersonMentions  map[string]int `json:"person_mentions"`
	ResidualNotes   int            `json:"residual_notes"`
}

// NewAudit returns an empty audit.
func NewAudit() *Audit {
	res := Audit{
		Events: []Event{},
		Notes:  []Note{},
	}
	res.Summary.ByType = make(map[string]int, len(EntityTypes))
	res.Summary.PersonMentions = make(map[string]int)
	for _, t := range EntityTypes {
		res.Summary.ByType[t.String()] = 0
	}
	return &res
}

// Add records the outcome of redacting one review.
func (a *Audit) Add(events []Event, notes []Note) {
	a.Summary.Reviews++
	if len(events) > 0 {
		a.Summary.RedactedReviews++
	}
	for _, e := range events {
		a.Summary.ByType[e.EntityType.String()]++
	}
	a.Summary.Redactions += len(events)
	a.Summary.ResidualNotes += len(notes)
	a.Events = append(a.Events, events...)
	a.Notes = append(a.Notes, notes...)
}

// Finish sets counts that depend on the registry.
func (a *Audit) Finish(reg *Registry) {
	persons := reg.Persons()
	a.Summary.UniquePersons = len(persons)
	for _, p := range persons {
		a.Summary.PersonMentions[p.Placeholder] = p.Mentions
	}
}

// Original is an access-controlled record of one replaced span.
type Original struct {
	ReviewID    string     `json:"review_id"`
	EntityType  EntityType `json:"entity_type"`
	Placeholder string     `json:"placeholder"`
	Original    string     `json:"original"`
}

// Originals returns replaced spans with their original text. The result is
// personal data and must only be written to a restricted location.
func (a *Audit) Originals() []Original {
	res := make([]Original, len(a.Events))
	for i, e := range a.Events {
		res[i] = Original{
			ReviewID:    e.ReviewID,
			EntityType:  e.EntityType,
			Placeholder: e.Placeholder,
			Original:    e.Original,
		}
	}
	return res
}
