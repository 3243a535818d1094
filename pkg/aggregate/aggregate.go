// Package aggregate computes per-store, per-zone and per-tag statistics
// of tagged and sentiment-labeled reviews.
//
// Statistics are raw, without smoothing. Every record carries its sample
// size; means, NPS and shares are null when there is no review to compute
// them from.
package aggregate

import (
	"cmp"
	"slices"

	"github.com/aladaia/vocan/pkg/corpus"
	"github.com/aladaia/vocan/pkg/sentiment"
)

// DefaultTopTags is how many tags are listed as top tags of a store.
const DefaultTopTags = 5

// Record is one review with its derived labels.
type Record struct {
	Review    corpus.Review
	Sentiment sentiment.Label
	// Tags holds labels of tags assigned to the review.
	Tags []string
}

// TagCount is the number of reviews carrying a tag.
type TagCount struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// Metrics are statistics shared by stores, zones and the whole corpus.
type Metrics struct {
	ReviewCount int      `json:"review_count"`
	MeanRating  *float64 `json:"mean_rating"`
	// NPS is 100 * (promoter share - detractor share), promoters rate 5,
	// detractors rate 3 or less.
	NPS           *float64   `json:"nps"`
	Promoters     int        `json:"promoters"`
	Detractors    int        `json:"detractors"`
	Ratings       [5]int     `json:"ratings"`
	PositiveShare *float64   `json:"positive_share"`
	NeutralShare  *float64   `json:"neutral_share"`
	NegativeShare *float64   `json:"negative_share"`
	TagCounts     []TagCount `json:"tag_counts"`
}

// StoreStats are statistics of one store.
type StoreStats struct {
	StoreID   string      `json:"store_id"`
	Name      string      `json:"name"`
	City      string      `json:"city"`
	Zone      corpus.Zone `json:"zone"`
	Region    string      `json:"region"`
	Latitude  float64     `json:"latitude"`
	Longitude float64     `json:"longitude"`
	Metrics
	TopTags []string `json:"top_tags"`
}

// ZoneStats are statistics of one zone.
type ZoneStats struct {
	Zone       corpus.Zone `json:"zone"`
	StoreCount int         `json:"store_count"`
	Metrics
}

// StoreRef points to a store in the summary.
type StoreRef struct {
	StoreID     string  `json:"store_id"`
	Name        string  `json:"name"`
	City        string  `json:"city"`
	MeanRating  float64 `json:"mean_rating"`
	ReviewCount int     `json:"review_count"`
}

// Summary holds corpus-wide statistics.
type Summary struct {
	StoreCount        int `json:"store_count"`
	StoresWithReviews int `json:"stores_with_reviews"`
	Metrics
	// Best and Worst are null when no store has reviews.
	Best  *StoreRef `json:"best_store"`
	Worst *StoreRef `json:"worst_store"`
}

// TagStats are statistics of reviews carrying one tag.
type TagStats struct {
	Label       string   `json:"label"`
	Count       int      `json:"count"`
	Share       float64  `json:"share"`
	MeanRating  *float64 `json:"mean_rating"`
	// RatingDelta is the tag mean rating minus the overall mean rating.
	RatingDelta   *float64 `json:"rating_vs_overall"`
	PositiveShare *float64 `json:"positive_share"`
	NegativeShare *float64 `json:"negative_share"`
}

// Result holds all statistics of a run.
type Result struct {
	Stores  []StoreStats `json:"stores"`
	Zones   []ZoneStats  `json:"zones"`
	Summary Summary      `json:"summary"`
	Tags    []TagStats   `json:"tags"`
}

// Aggregate computes statistics of records. Stores are reported in input
// order, zones in the order of corpus.Zones, tags by decreasing count.
// Every record must refer to one of the stores.
func Aggregate(stores []corpus.Store, recs []Record, topTags int) (Result, error) {
	if topTags <= 0 {
		topTags = DefaultTopTags
	}

	storeAcc := make(map[string]*acc, len(stores))
	for _, st := range stores {
		storeAcc[st.StoreID] = newAcc()
	}
	zoneAcc := make(map[corpus.Zone]*acc, len(corpus.Zones))
	zoneStores := make(map[corpus.Zone]int, len(corpus.Zones))
	for _, z := range corpus.Zones {
		zoneAcc[z] = newAcc()
	}
	for _, st := range stores {
		zoneStores[st.Zone]++
		if _, ok := zoneAcc[st.Zone]; !ok {
			zoneAcc[st.Zone] = newAcc()
		}
	}
	zoneOf := make(map[string]corpus.Zone, len(stores))
	for _, st := range stores {
		zoneOf[st.StoreID] = st.Zone
	}

	total := newAcc()
	tagAcc := make(map[string]*acc)
	for _, r := range recs {
		sa, ok := storeAcc[r.Review.StoreID]
		if !ok {
			return Result{}, MissingStoreError(r.Review.ReviewID, r.Review.StoreID)
		}
		sa.add(r)
		zoneAcc[zoneOf[r.Review.StoreID]].add(r)
		total.add(r)
		for _, t := range r.Tags {
			ta, ok := tagAcc[t]
			if !ok {
				ta = newAcc()
				tagAcc[t] = ta
			}
			ta.add(r)
		}
	}

	var res Result
	res.Stores = make([]StoreStats, len(stores))
	for i, st := range stores {
		m := storeAcc[st.StoreID].metrics()
		top := make([]string, 0, topTags)
		for _, tc := range m.TagCounts {
			if len(top) == topTags {
				break
			}
			top = append(top, tc.Label)
		}
		res.Stores[i] = StoreStats{
			StoreID:   st.StoreID,
			Name:      st.Name,
			City:      st.City,
			Zone:      st.Zone,
			Region:    st.Region,
			Latitude:  st.Latitude,
			Longitude: st.Longitude,
			Metrics:   m,
			TopTags:   top,
		}
	}

	for _, z := range corpus.Zones {
		res.Zones = append(res.Zones, ZoneStats{
			Zone:       z,
			StoreCount: zoneStores[z],
			Metrics:    zoneAcc[z].metrics(),
		})
	}

	res.Summary = summarize(res.Stores, total.metrics())
	res.Tags = tagStats(tagAcc, total)
	return res, nil
}

func summarize(stores []StoreStats, m Metrics) Summary {
	res := Summary{StoreCount: len(stores), Metrics: m}

	var rated []StoreStats
	for _, st := range stores {
		if st.ReviewCount > 0 {
			rated = append(rated, st)
		}
	}
	res.StoresWithReviews = len(rated)
	if len(rated) == 0 {
		return res
	}

	// Higher mean first, then more reviews, then store ID.
	slices.SortStableFunc(rated, func(a, b StoreStats) int {
		if c := cmp.Compare(*b.MeanRating, *a.MeanRating); c != 0 {
			return c
		}
		if c := cmp.Compare(b.ReviewCount, a.ReviewCount); c != 0 {
			return c
		}
		return cmp.Compare(a.StoreID, b.StoreID)
	})
	res.Best = ref(rated[0])

	// Lower mean first, then more reviews, then store ID.
	slices.SortStableFunc(rated, func(a, b StoreStats) int {
		if c := cmp.Compare(*a.MeanRating, *b.MeanRating); c != 0 {
			return c
		}
		if c := cmp.Compare(b.ReviewCount, a.ReviewCount); c != 0 {
			return c
		}
		return cmp.Compare(a.StoreID, b.StoreID)
	})
	res.Worst = ref(rated[0])
	return res
}

func ref(st StoreStats) *StoreRef {
	return &StoreRef{
		StoreID:     st.StoreID,
		Name:        st.Name,
		City:        st.City,
		MeanRating:  *st.MeanRating,
		ReviewCount: st.ReviewCount,
	}
}

func tagStats(tags map[string]*acc, total *acc) []TagStats {
	overall := total.mean()
	res := make([]TagStats, 0, len(tags))
	for label, a := range tags {
		ts := TagStats{
			Label:         label,
			Count:         a.n,
			MeanRating:    a.mean(),
			PositiveShare: ratio(a.labels[sentiment.Positive], a.n),
			NegativeShare: ratio(a.labels[sentiment.Negative], a.n),
		}
		if total.n > 0 {
			ts.Share = float64(a.n) / float64(total.n)
		}
		if ts.MeanRating != nil && overall != nil {
			d := *ts.MeanRating - *overall
			ts.RatingDelta = &d
		}
		res = append(res, ts)
	}
	slices.SortFunc(res, func(a, b TagStats) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return cmp.Compare(a.Label, b.Label)
	})
	return res
}
