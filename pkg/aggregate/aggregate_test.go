package aggregate_test

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/aladaia/vocan/pkg/aggregate"
	"github.com/aladaia/vocan/pkg/corpus"
	"github.com/aladaia/vocan/pkg/sentiment"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStores() []corpus.Store {
	return []corpus.Store{
		{StoreID: "S1", Name: "Bastille", City: "Paris", Zone: corpus.IntraMuros},
		{StoreID: "S2", Name: "Montparnasse", City: "Paris", Zone: corpus.IntraMuros},
		{StoreID: "S3", Name: "Lyon", City: "Lyon", Zone: corpus.Province},
		{StoreID: "S4", Name: "Vélizy", City: "Vélizy", Zone: corpus.ExtraMuros},
	}
}

var seq int

func rec(store string, rating int, lbl sentiment.Label, tags ...string) aggregate.Record {
	seq++
	return aggregate.Record{
		Review: corpus.Review{
			ReviewID: fmt.Sprintf("R%d", seq),
			StoreID:  store,
			Rating:   rating,
		},
		Sentiment: lbl,
		Tags:      tags,
	}
}

func testRecords() []aggregate.Record {
	return []aggregate.Record{
		rec("S1", 5, sentiment.Positive, "vélo", "accueil"),
		rec("S1", 5, sentiment.Positive, "vélo"),
		rec("S1", 4, sentiment.Neutral, "accueil"),
		rec("S2", 1, sentiment.Negative, "attente"),
		rec("S2", 3, sentiment.Neutral, "attente", "vélo"),
		rec("S3", 5, sentiment.Positive, "unclassified"),
		rec("S3", 3, sentiment.Negative, "vélo"),
	}
}

func TestAggregateStores(t *testing.T) {
	res, err := aggregate.Aggregate(testStores(), testRecords(), 0)
	require.NoError(t, err)
	require.Len(t, res.Stores, 4)

	s1 := res.Stores[0]
	assert.Equal(t, "S1", s1.StoreID)
	assert.Equal(t, 3, s1.ReviewCount)
	assert.InDelta(t, 14.0/3.0, *s1.MeanRating, 1e-9)
	assert.InDelta(t, 100*2.0/3.0, *s1.NPS, 1e-9)
	assert.Equal(t, [5]int{0, 0, 0, 1, 2}, s1.Ratings)
	assert.InDelta(t, 2.0/3.0, *s1.PositiveShare, 1e-9)
	assert.Equal(t, 0.0, *s1.NegativeShare)
	assert.Equal(t, []aggregate.TagCount{
		{Label: "accueil", Count: 2},
		{Label: "vélo", Count: 2},
	}, s1.TagCounts)
	assert.Equal(t, []string{"accueil", "vélo"}, s1.TopTags)

	s2 := res.Stores[1]
	assert.Equal(t, 2.0, *s2.MeanRating)
	assert.Equal(t, -100.0, *s2.NPS)

	s3 := res.Stores[2]
	assert.Equal(t, 0.0, *s3.NPS)
}

func TestZeroReviewStore(t *testing.T) {
	res, err := aggregate.Aggregate(testStores(), testRecords(), 0)
	require.NoError(t, err)

	s4 := res.Stores[3]
	assert.Equal(t, "S4", s4.StoreID)
	assert.Equal(t, 0, s4.ReviewCount)
	assert.Nil(t, s4.MeanRating)
	assert.Nil(t, s4.NPS)
	assert.Nil(t, s4.PositiveShare)
	assert.Empty(t, s4.TopTags)

	bs, err := json.Marshal(s4)
	require.NoError(t, err)
	assert.Contains(t, string(bs), `"mean_rating":null`)
	assert.Contains(t, string(bs), `"review_count":0`)

	sum := res.Summary
	assert.Equal(t, 4, sum.StoreCount)
	assert.Equal(t, 3, sum.StoresWithReviews)
	require.NotNil(t, sum.Best)
	require.NotNil(t, sum.Worst)
	assert.Equal(t, "S1", sum.Best.StoreID)
	assert.Equal(t, "S2", sum.Worst.StoreID)
	assert.NotEqual(t, "S4", sum.Best.StoreID)
	assert.NotEqual(t, "S4", sum.Worst.StoreID)
}

func TestAggregationConsistency(t *testing.T) {
	res, err := aggregate.Aggregate(testStores(), testRecords(), 0)
	require.NoError(t, err)
	require.Len(t, res.Zones, 3)

	perZone := make(map[corpus.Zone]int)
	for _, st := range res.Stores {
		perZone[st.Zone] += st.ReviewCount
	}

	var weighted float64
	var total int
	for _, z := range res.Zones {
		assert.Equal(t, perZone[z.Zone], z.ReviewCount, z.Zone.String())
		if z.MeanRating != nil {
			weighted += *z.MeanRating * float64(z.ReviewCount)
		}
		total += z.ReviewCount
	}
	assert.Equal(t, res.Summary.ReviewCount, total)
	assert.InDelta(t, *res.Summary.MeanRating, weighted/float64(total), 1e-9)

	intra := res.Zones[0]
	assert.Equal(t, corpus.IntraMuros, intra.Zone)
	assert.Equal(t, 2, intra.StoreCount)
	assert.Equal(t, 5, intra.ReviewCount)
	assert.InDelta(t, 3.6, *intra.MeanRating, 1e-9)
	assert.Equal(t, 0.0, *intra.NPS)

	extra := res.Zones[1]
	assert.Equal(t, corpus.ExtraMuros, extra.Zone)
	assert.Equal(t, 0, extra.ReviewCount)
	assert.Nil(t, extra.MeanRating)
}

func TestBestWorstTies(t *testing.T) {
	stores := []corpus.Store{
		{StoreID: "C", Zone: corpus.Province},
		{StoreID: "A", Zone: corpus.Province},
		{StoreID: "B", Zone: corpus.Province},
	}
	recs := []aggregate.Record{
		rec("A", 4, sentiment.Positive),
		rec("B", 4, sentiment.Positive),
		rec("B", 4, sentiment.Positive),
		rec("B", 4, sentiment.Positive),
		rec("C", 5, sentiment.Positive),
		rec("C", 3, sentiment.Neutral),
		rec("C", 4, sentiment.Positive),
	}
	res, err := aggregate.Aggregate(stores, recs, 0)
	require.NoError(t, err)
	assert.Equal(t, "B", res.Summary.Best.StoreID,
		"equal means: more reviews first, then store ID")
	assert.Equal(t, "B", res.Summary.Worst.StoreID)
}

func TestNoReviews(t *testing.T) {
	res, err := aggregate.Aggregate(testStores(), nil, 0)
	require.NoError(t, err)
	assert.Nil(t, res.Summary.Best)
	assert.Nil(t, res.Summary.Worst)
	assert.Nil(t, res.Summary.MeanRating)
	assert.Empty(t, res.Tags)
}

func TestTagStats(t *testing.T) {
	res, err := aggregate.Aggregate(testStores(), testRecords(), 0)
	require.NoError(t, err)

	require.Len(t, res.Tags, 4)
	velo := res.Tags[0]
	assert.Equal(t, "vélo", velo.Label)
	assert.Equal(t, 4, velo.Count)
	assert.InDelta(t, 4.0/7.0, velo.Share, 1e-9)
	assert.Equal(t, 4.0, *velo.MeanRating)
	assert.InDelta(t, 4.0-26.0/7.0, *velo.RatingDelta, 1e-9)
	assert.Equal(t, 0.5, *velo.PositiveShare)
	assert.Equal(t, 0.25, *velo.NegativeShare)

	assert.Equal(t, "accueil", res.Tags[1].Label)
	assert.Equal(t, "attente", res.Tags[2].Label)
	assert.Equal(t, "unclassified", res.Tags[3].Label)
}

func TestMissingStore(t *testing.T) {
	recs := []aggregate.Record{rec("S9", 4, sentiment.Positive)}
	_, err := aggregate.Aggregate(testStores(), recs, 0)
	assert.Error(t, err)
}
