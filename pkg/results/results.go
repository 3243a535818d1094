// Package results holds everything one pipeline run produced, in the
// shape shared by artifact export, archive and publish.
package results

import (
	"github.com/aladaia/vocan/pkg/aggregate"
	"github.com/aladaia/vocan/pkg/corpus"
	"github.com/aladaia/vocan/pkg/quality"
	"github.com/aladaia/vocan/pkg/query"
	"github.com/aladaia/vocan/pkg/redact"
	"github.com/aladaia/vocan/pkg/sentiment"
	"github.com/aladaia/vocan/pkg/tagging"
)

// FormatVersion is the version of the artifact layout. Readers refuse
// artifacts older than MinFormatVersion.
const (
	FormatVersion    = "1.0.0"
	MinFormatVersion = "1.0.0"
)

// Manifest describes a run.
type Manifest struct {
	RunID         string `json:"run_id"`
	Version       string `json:"vocan_version"`
	FormatVersion string `json:"format_version"`
	CreatedAt     string `json:"created_at"`
	ReviewsPath   string `json:"reviews_path"`
	StoresPath    string `json:"stores_path"`
	// InputReviews counts rows read, Reviews counts rows analyzed.
	InputReviews int    `json:"input_reviews"`
	Reviews      int    `json:"reviews"`
	Skipped      int    `json:"skipped_reviews"`
	Stores       int    `json:"stores"`
	Policy       string `json:"rating3_policy"`
	Duration     string `json:"duration"`
}

// Review is one analyzed review. Its raw text is not part of any artifact.
type Review struct {
	corpus.Review
	Sentiment sentiment.Result
	// TagIDs and Tags list assigned tags in plan order.
	TagIDs []string
	Tags   []string
}

// Results of one run.
type Results struct {
	Manifest Manifest
	Stores   []corpus.Store
	Reviews  []Review
	Audit    *redact.Audit
	Quality  quality.Report
	Plan     tagging.Plan
	Stats    aggregate.Result
}

// Bundle returns the artifacts the query engine works with.
func (r *Results) Bundle() *query.Bundle {
	return &query.Bundle{
		Summary: r.Stats.Summary,
		Stores:  r.Stats.Stores,
		Zones:   r.Stats.Zones,
		Tags:    r.Stats.Tags,
		Quality: r.Quality,
		Plan:    r.Plan,
	}
}

// Records converts reviews to aggregation input.
func (r *Results) Records() []aggregate.Record {
	res := make([]aggregate.Record, len(r.Reviews))
	for i, v := range r.Reviews {
		res[i] = aggregate.Record{
			Review:    v.Review,
			Sentiment: v.Sentiment.Label,
			Tags:      v.Tags,
		}
	}
	return res
}

// Observations converts reviews to quality audit input.
func (r *Results) Observations() []quality.Observation {
	res := make([]quality.Observation, len(r.Reviews))
	for i, v := range r.Reviews {
		res[i] = quality.Observation{
			Rating:    v.Rating,
			Sentiment: v.Sentiment,
		}
	}
	return res
}

// Docs converts reviews to tagging input. Tags are mined from redacted
// text only.
func (r *Results) Docs() []tagging.Doc {
	res := make([]tagging.Doc, len(r.Reviews))
	for i, v := range r.Reviews {
		res[i] = tagging.Doc{ReviewID: v.ReviewID, Text: v.TextAnonymized}
	}
	return res
}

// SetTags stores tag assignments. Assignments are index-aligned with
// reviews.
func (r *Results) SetTags(assigns []tagging.Assignment) {
	labels := make(map[string]string, len(r.Plan.Tags))
	for _, t := range r.Plan.Tags {
		labels[t.ID] = t.Label
	}
	for i, a := range assigns {
		rv := &r.Reviews[i]
		rv.TagIDs = a.TagIDs
		rv.Tags = make([]string, len(a.TagIDs))
		for j, id := range a.TagIDs {
			rv.Tags[j] = labels[id]
		}
	}
}
