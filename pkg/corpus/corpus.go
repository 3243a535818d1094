// Package corpus holds the review and store records of one pipeline run
// and validates them before analysis.
package corpus

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
)

// Zone is a geographic classification of a store.
type Zone int

const (
	UnknownZone Zone = iota
	IntraMuros
	ExtraMuros
	Province
)

var zoneNames = [...]string{
	UnknownZone: "Unknown",
	IntraMuros:  "IntraMuros",
	ExtraMuros:  "ExtraMuros",
	Province:    "Province",
}

// Zones lists valid zones in reporting order.
var Zones = []Zone{IntraMuros, ExtraMuros, Province}

// String returns the name of the zone.
func (z Zone) String() string {
	if int(z) >= 0 && int(z) < len(zoneNames) {
		return zoneNames[z]
	}
	return fmt.Sprintf("Zone(%d)", int(z))
}

// MarshalJSON encodes the zone as a JSON string.
func (z Zone) MarshalJSON() ([]byte, error) {
	return json.Marshal(z.String())
}

// UnmarshalJSON decodes a JSON string into a Zone.
func (z *Zone) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	res, ok := ParseZone(s)
	if !ok {
		return fmt.Errorf("unknown zone: %q", s)
	}
	*z = res
	return nil
}

// ParseZone converts a zone name to Zone. Besides canonical names it
// accepts the spelled-out forms "Paris Intra Muros" and
// "Paris Extra Muros", case-insensitively.
func ParseZone(s string) (Zone, bool) {
	key := strings.ToLower(strings.TrimSpace(s))
	key = strings.NewReplacer(" ", "", "-", "", "_", "").Replace(key)
	key = strings.TrimPrefix(key, "paris")
	switch key {
	case "intramuros":
		return IntraMuros, true
	case "extramuros":
		return ExtraMuros, true
	case "province":
		return Province, true
	}
	return UnknownZone, false
}

// Review is one customer review.
type Review struct {
	ReviewID string `json:"review_id"`
	StoreID  string `json:"store_id"`
	TextRaw  string `json:"-"`
	// TextAnonymized is set once by redaction and never changed after.
	TextAnonymized string `json:"text_anonymized"`
	Rating         int    `json:"rating"`
	Date           string `json:"date"`
}

// Store is static reference data about a shop.
type Store struct {
	StoreID   string  `json:"store_id"   yaml:"store_id"`
	Name      string  `json:"name"       yaml:"name"`
	City      string  `json:"city"       yaml:"city"`
	Zone      Zone    `json:"zone"       yaml:"-"`
	Latitude  float64 `json:"latitude"   yaml:"latitude"`
	Longitude float64 `json:"longitude"  yaml:"longitude"`
	Region    string  `json:"region"     yaml:"region"`
}

// Corpus is the validated input of one run.
type Corpus struct {
	Stores  []Store
	Reviews []Review

	storeIdx map[string]int
}

// New validates stores and reviews and builds a Corpus.
//
// Reviews with an out-of-range rating, empty text or an already seen
// review_id are skipped; their errors are returned in skipped. A duplicate
// store_id, an unknown zone or a review referring to an unknown store is
// fatal, because aggregation cannot proceed without reliable store
// metadata.
func New(stores []Store, reviews []Review) (c *Corpus, skipped []error, err error) {
	c = &Corpus{
		Stores:   make([]Store, 0, len(stores)),
		Reviews:  make([]Review, 0, len(reviews)),
		storeIdx: make(map[string]int, len(stores)),
	}

	for _, st := range stores {
		if _, ok := c.storeIdx[st.StoreID]; ok {
			return nil, nil, DuplicateStoreError(st.StoreID)
		}
		if st.Zone == UnknownZone {
			return nil, nil, ZoneError(st.StoreID, st.Zone.String())
		}
		c.storeIdx[st.StoreID] = len(c.Stores)
		c.Stores = append(c.Stores, st)
	}

	seen := make(map[string]struct{}, len(reviews))
	for _, r := range reviews {
		if _, ok := c.storeIdx[r.StoreID]; !ok {
			return nil, nil, UnknownStoreError(r.ReviewID, r.StoreID)
		}
		if e := checkReview(r, seen); e != nil {
			slog.Warn("Skipping review", "review_id", r.ReviewID, "error", e)
			skipped = append(skipped, e)
			continue
		}
		seen[r.ReviewID] = struct{}{}
		c.Reviews = append(c.Reviews, r)
	}

	return c, skipped, nil
}

// Store returns metadata of a store by its ID.
func (c *Corpus) Store(id string) (Store, bool) {
	i, ok := c.storeIdx[id]
	if !ok {
		return Store{}, false
	}
	return c.Stores[i], true
}

// SetAnonymized stores the redacted text of the i-th review. It refuses
// to overwrite a text that was already set.
func (c *Corpus) SetAnonymized(i int, text string) error {
	r := &c.Reviews[i]
	if r.TextAnonymized != "" {
		return AnonymizedTwiceError(r.ReviewID)
	}
	r.TextAnonymized = text
	return nil
}

func checkReview(r Review, seen map[string]struct{}) error {
	if _, ok := seen[r.ReviewID]; ok {
		return DuplicateReviewError(r.ReviewID)
	}
	if r.Rating < 1 || r.Rating > 5 {
		return RatingRangeError(r.ReviewID, r.Rating)
	}
	if strings.TrimSpace(r.TextRaw) == "" {
		return EmptyTextError(r.ReviewID)
	}
	return nil
}
