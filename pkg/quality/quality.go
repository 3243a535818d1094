// Package quality checks sentiment labels against star ratings and grades
// the result.
//
// Ratings 4 and 5 expect a Positive label, ratings 1 and 2 a Negative one.
// Rating 3 is ambiguous; how it is counted depends on the Policy.
package quality

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/aladaia/vocan/pkg/sentiment"
)

// Grade thresholds on the agreement rate.
const (
	GoodThreshold = 0.80
	PoorThreshold = 0.60
)

// Grade is the quality verdict of a run.
type Grade int

const (
	InsufficientData Grade = iota
	Good
	NeedsReview
	Poor
)

var gradeNames = [...]string{
	InsufficientData: "INSUFFICIENT_DATA",
	Good:             "GOOD",
	NeedsReview:      "NEEDS_REVIEW",
	Poor:             "POOR",
}

// String returns the name of the grade.
func (g Grade) String() string {
	if int(g) >= 0 && int(g) < len(gradeNames) {
		return gradeNames[g]
	}
	return fmt.Sprintf("Grade(%d)", int(g))
}

// MarshalJSON encodes the grade as a JSON string.
func (g Grade) MarshalJSON() ([]byte, error) {
	return json.Marshal(g.String())
}

// UnmarshalJSON decodes a JSON string into a Grade.
func (g *Grade) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	for i, v := range gradeNames {
		if v == s {
			*g = Grade(i)
			return nil
		}
	}
	return fmt.Errorf("unknown grade: %q", s)
}

// GradeFor maps an agreement rate to a grade: above 0.80 is GOOD, below
// 0.60 is POOR, anything in between (bounds included) is NEEDS_REVIEW.
func GradeFor(rate float64) Grade {
	switch {
	case rate > GoodThreshold:
		return Good
	case rate < PoorThreshold:
		return Poor
	default:
		return NeedsReview
	}
}

// Policy decides how rating-3 reviews enter the agreement rate.
type Policy int

const (
	// Exclude leaves rating-3 reviews out of the agreement denominator.
	Exclude Policy = iota
	// NeutralAgrees counts rating-3 reviews, which agree only when
	// labeled Neutral.
	NeutralAgrees
)

// String returns the configuration name of the policy.
func (p Policy) String() string {
	if p == NeutralAgrees {
		return "neutral-agrees"
	}
	return "exclude"
}

// MarshalJSON encodes the policy as a JSON string.
func (p Policy) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

// UnmarshalJSON decodes a JSON string into a Policy.
func (p *Policy) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	res, ok := ParsePolicy(s)
	if !ok {
		return fmt.Errorf("unknown rating3 policy: %q", s)
	}
	*p = res
	return nil
}

// ParsePolicy converts a configuration value to Policy.
func ParsePolicy(s string) (Policy, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "exclude", "":
		return Exclude, true
	case "neutral-agrees":
		return NeutralAgrees, true
	}
	return Exclude, false
}

// Expected is the label implied by a rating. The second value is false
// when the rating does not count towards agreement under the policy.
func (p Policy) Expected(rating int) (sentiment.Label, bool) {
	switch {
	case rating >= 4:
		return sentiment.Positive, true
	case rating <= 2:
		return sentiment.Negative, true
	case p == NeutralAgrees:
		return sentiment.Neutral, true
	}
	return sentiment.Neutral, false
}

// Observation pairs a star rating with the sentiment of the same review.
type Observation struct {
	Rating    int
	Sentiment sentiment.Result
}

// Report is the quality self-assessment of one run.
type Report struct {
	Grade  Grade  `json:"grade"`
	Policy Policy `json:"rating3_policy"`

	// AgreementRate is null when no review has an unambiguous rating.
	AgreementRate   *float64 `json:"agreement_rate"`
	LexiconCoverage float64  `json:"lexicon_coverage"`
	NeutralRate     float64  `json:"neutral_rate"`

	Total   int `json:"total_reviews"`
	Counted int `json:"counted_reviews"`
	Agreed  int `json:"agreed_reviews"`

	// Confusion counts reviews by expected rating class and actual label.
	Confusion map[string]map[string]int `json:"confusion"`
	Metrics   []LabelMetrics            `json:"label_metrics"`

	// Disagreements lists IDs of counted reviews whose label differs from
	// the expected one, in input order.
	Disagreements []string `json:"disagreements"`
}

// LabelMetrics estimates precision and recall of one label on counted
// reviews. Values are null when their denominator is zero.
type LabelMetrics struct {
	Label     sentiment.Label `json:"label"`
	Support   int             `json:"support"`
	Predicted int             `json:"predicted"`
	Precision *float64        `json:"precision"`
	Recall    *float64        `json:"recall"`
}

// Audit computes the quality report of a run. When no review has an
// unambiguous rating it returns the report graded INSUFFICIENT_DATA
// together with an InsufficientDataError.
func Audit(obs []Observation, p Policy) (Report, error) {
	res := Report{
		Policy:        p,
		Total:         len(obs),
		Confusion:     make(map[string]map[string]int),
		Disagreements: []string{},
	}

	var matched, neutral int
	hits := make(map[sentiment.Label]int)
	support := make(map[sentiment.Label]int)
	predicted := make(map[sentiment.Label]int)

	for _, o := range obs {
		lbl := o.Sentiment.Label
		if o.Sentiment.MatchedTerms > 0 {
			matched++
		}
		if lbl == sentiment.Neutral {
			neutral++
		}

		exp, ok := p.Expected(o.Rating)
		class := "Ambiguous"
		if ok {
			class = exp.String()
		}
		if res.Confusion[class] == nil {
			res.Confusion[class] = make(map[string]int)
		}
		res.Confusion[class][lbl.String()]++

		if !ok {
			continue
		}
		res.Counted++
		support[exp]++
		predicted[lbl]++
		if lbl == exp {
			res.Agreed++
			hits[exp]++
		} else {
			res.Disagreements = append(res.Disagreements, o.Sentiment.ReviewID)
		}
	}

	if res.Total > 0 {
		res.LexiconCoverage = float64(matched) / float64(res.Total)
		res.NeutralRate = float64(neutral) / float64(res.Total)
	}

	for _, l := range sentiment.Labels {
		if support[l] == 0 && predicted[l] == 0 {
			continue
		}
		res.Metrics = append(res.Metrics, LabelMetrics{
			Label:     l,
			Support:   support[l],
			Predicted: predicted[l],
			Precision: ratio(hits[l], predicted[l]),
			Recall:    ratio(hits[l], support[l]),
		})
	}

	if res.Counted == 0 {
		res.Grade = InsufficientData
		return res, InsufficientDataError(res.Total, p)
	}

	res.AgreementRate = ratio(res.Agreed, res.Counted)
	res.Grade = GradeFor(*res.AgreementRate)
	return res, nil
}

func ratio(a, b int) *float64 {
	if b == 0 {
		return nil
	}
	res := float64(a) / float64(b)
	return &res
}
