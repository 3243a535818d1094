// Package sentiment labels review texts as positive, negative or neutral
// by counting lexicon terms.
//
// Each positive term adds one to the score and each negative term
// subtracts one. A negator among the preceding tokens of the same clause
// flips the sign of a term ("pas satisfait" counts as negative, "rien à
// redire, parfait" does not). The star rating is never
// consulted, so labels can later be checked against it.
package sentiment

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/aladaia/vocan/pkg/textproc"
	"golang.org/x/text/unicode/norm"
)

// DefaultNegationWindow is how many preceding tokens are searched for a
// negator.
const DefaultNegationWindow = 3

const clauseBreaks = ".!?,;:"

// Label is the polarity of a review.
type Label int

const (
	Neutral Label = iota
	Positive
	Negative
)

var labelNames = [...]string{
	Neutral:  "Neutral",
	Positive: "Positive",
	Negative: "Negative",
}

// Labels lists all labels in reporting order.
var Labels = []Label{Positive, Neutral, Negative}

// String returns the name of the label.
func (l Label) String() string {
	if int(l) >= 0 && int(l) < len(labelNames) {
		return labelNames[l]
	}
	return fmt.Sprintf("Label(%d)", int(l))
}

// MarshalJSON encodes the label as a JSON string.
func (l Label) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.String())
}

// UnmarshalJSON decodes a JSON string into a Label.
func (l *Label) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	res, ok := ParseLabel(s)
	if !ok {
		return fmt.Errorf("unknown sentiment label: %q", s)
	}
	*l = res
	return nil
}

// ParseLabel converts a label name to Label.
func ParseLabel(s string) (Label, bool) {
	for i, v := range labelNames {
		if v == s {
			return Label(i), true
		}
	}
	return Neutral, false
}

// Result is the sentiment of one review.
type Result struct {
	ReviewID string `json:"review_id"`
	Label    Label  `json:"label"`
	// Score is the net count of positive minus negative hits.
	Score int `json:"score"`
	// MatchedTerms is the total number of lexicon hits.
	MatchedTerms int      `json:"matched_terms"`
	Positive     []string `json:"positive_terms,omitempty"`
	Negative     []string `json:"negative_terms,omitempty"`
}

// Classifier assigns sentiment labels. It holds no mutable state and is
// safe for concurrent use.
type Classifier struct {
	lex    *Lexicon
	window int
}

// NewClassifier creates a classifier. A nil lexicon means DefaultLexicon,
// a non-positive window means DefaultNegationWindow.
func NewClassifier(lex *Lexicon, window int) *Classifier {
	if lex == nil {
		lex = DefaultLexicon()
	}
	if window <= 0 {
		window = DefaultNegationWindow
	}
	return &Classifier{lex: lex, window: window}
}

// Lexicon returns the lexicon of the classifier.
func (c *Classifier) Lexicon() *Lexicon {
	return c.lex
}

// Classify returns the sentiment of a redacted review text.
func (c *Classifier) Classify(reviewID, text string) Result {
	res := Result{ReviewID: reviewID}
	words, clauses := clauseWords(text)

	for i, w := range words {
		pol := c.lex.Polarity(w)
		if pol == 0 {
			continue
		}
		if c.negated(words, clauses, i) {
			pol = -pol
		}
		res.MatchedTerms++
		res.Score += pol
		if pol > 0 {
			res.Positive = append(res.Positive, w)
		} else {
			res.Negative = append(res.Negative, w)
		}
	}

	switch {
	case res.Score > 0:
		res.Label = Positive
	case res.Score < 0:
		res.Label = Negative
	default:
		res.Label = Neutral
	}
	return res
}

// negated searches the window before word i for a negator. The search
// never crosses a clause boundary.
func (c *Classifier) negated(words []string, clauses []int, i int) bool {
	for j := i - 1; j >= max(0, i-c.window); j-- {
		if clauses[j] != clauses[i] {
			return false
		}
		if c.lex.IsNegator(words[j]) {
			return true
		}
	}
	return false
}

// clauseWords returns the token texts with the clause index of every
// token. Sentence and clause punctuation between two tokens starts a new
// clause.
func clauseWords(text string) ([]string, []int) {
	text = norm.NFC.String(text)
	toks := textproc.Tokens(text)
	words := make([]string, len(toks))
	clauses := make([]int, len(toks))
	var clause int
	for i := range toks {
		if i > 0 && strings.ContainsAny(text[toks[i-1].End:toks[i].Start], clauseBreaks) {
			clause++
		}
		words[i] = toks[i].Text
		clauses[i] = clause
	}
	return words, clauses
}
