package redact

import (
	"encoding/json"
	"fmt"
)

// EntityType is a category of personal information.
type EntityType int

const (
	Person EntityType = iota
	Email
	Phone
	URL
)

var entityNames = [...]string{
	Person: "Person",
	Email:  "Email",
	Phone:  "Phone",
	URL:    "URL",
}

// EntityTypes lists all entity types in reporting order.
var EntityTypes = []EntityType{Person, Email, Phone, URL}

// String returns the name of the entity type.
func (t EntityType) String() string {
	if int(t) >= 0 && int(t) < len(entityNames) {
		return entityNames[t]
	}
	return fmt.Sprintf("EntityType(%d)", int(t))
}

// MarshalJSON encodes the entity type as a JSON string.
func (t EntityType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// UnmarshalJSON decodes a JSON string into an EntityType.
func (t *EntityType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	for i, v := range entityNames {
		if v == s {
			*t = EntityType(i)
			return nil
		}
	}
	return fmt.Errorf("unknown entity type: %q", s)
}

// priority breaks ties between spans of equal length and start.
// Higher wins.
func (t EntityType) priority() int {
	switch t {
	case URL:
		return 4
	case Email:
		return 3
	case Phone:
		return 2
	case Person:
		return 1
	}
	return 0
}

// categoryPlaceholder returns the unnumbered placeholder of non-person
// entities.
func (t EntityType) categoryPlaceholder() string {
	switch t {
	case Email:
		return "[EMAIL]"
	case Phone:
		return "[TELEPHONE]"
	case URL:
		return "[URL]"
	}
	return ""
}

// Span is a detected entity as byte offsets into the text.
type Span struct {
	Start int
	End   int
	Type  EntityType
}

// Len returns the byte length of the span.
func (s Span) Len() int {
	return s.End - s.Start
}

func (s Span) overlaps(start, end int) bool {
	return s.Start < end && start < s.End
}

// Event records one replacement made by the redactor.
type Event struct {
	ReviewID    string     `json:"review_id"`
	EntityType  EntityType `json:"entity_type"`
	Placeholder string     `json:"placeholder"`

	// Original is the replaced text. It is kept only for the
	// access-controlled audit record and never serialized with events.
	Original string `json:"-"`
}
