package aggregate

import (
	"cmp"
	"slices"

	"github.com/aladaia/vocan/pkg/sentiment"
)

// acc accumulates ratings, labels and tags of a group of reviews.
type acc struct {
	n          int
	sum        int
	promoters  int
	detractors int
	ratings    [5]int
	labels     [3]int
	tags       map[string]int
}

func newAcc() *acc {
	return &acc{tags: make(map[string]int)}
}

func (a *acc) add(r Record) {
	rating := r.Review.Rating
	a.n++
	a.sum += rating
	switch {
	case rating == 5:
		a.promoters++
	case rating <= 3:
		a.detractors++
	}
	if rating >= 1 && rating <= 5 {
		a.ratings[rating-1]++
	}
	if int(r.Sentiment) < len(a.labels) {
		a.labels[r.Sentiment]++
	}
	for _, t := range r.Tags {
		a.tags[t]++
	}
}

func (a *acc) mean() *float64 {
	return ratio(a.sum, a.n)
}

func (a *acc) nps() *float64 {
	if a.n == 0 {
		return nil
	}
	res := 100 * float64(a.promoters-a.detractors) / float64(a.n)
	return &res
}

func (a *acc) metrics() Metrics {
	return Metrics{
		ReviewCount:   a.n,
		MeanRating:    a.mean(),
		NPS:           a.nps(),
		Promoters:     a.promoters,
		Detractors:    a.detractors,
		Ratings:       a.ratings,
		PositiveShare: ratio(a.labels[sentiment.Positive], a.n),
		NeutralShare:  ratio(a.labels[sentiment.Neutral], a.n),
		NegativeShare: ratio(a.labels[sentiment.Negative], a.n),
		TagCounts:     a.tagCounts(),
	}
}

// tagCounts returns tag counts by decreasing count, then label.
func (a *acc) tagCounts() []TagCount {
	res := make([]TagCount, 0, len(a.tags))
	for label, n := range a.tags {
		res = append(res, TagCount{Label: label, Count: n})
	}
	slices.SortFunc(res, func(x, y TagCount) int {
		if c := cmp.Compare(y.Count, x.Count); c != 0 {
			return c
		}
		return cmp.Compare(x.Label, y.Label)
	})
	return res
}

func ratio(a, b int) *float64 {
	if b == 0 {
		return nil
	}
	res := float64(a) / float64(b)
	return &res
}
