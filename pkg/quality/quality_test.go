package quality_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/aladaia/vocan/pkg/errcode"
	"github.com/aladaia/vocan/pkg/quality"
	"github.com/aladaia/vocan/pkg/sentiment"
	"github.com/gnames/gn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func obs(id string, rating int, lbl sentiment.Label, matched int) quality.Observation {
	return quality.Observation{
		Rating: rating,
		Sentiment: sentiment.Result{
			ReviewID:     id,
			Label:        lbl,
			MatchedTerms: matched,
		},
	}
}

func TestAuditTenReviewsGood(t *testing.T) {
	var data []quality.Observation
	for i := range 5 {
		data = append(data, obs(fmt.Sprintf("P%d", i), 5, sentiment.Positive, 2))
		data = append(data, obs(fmt.Sprintf("N%d", i), 1, sentiment.Negative, 1))
	}

	rep, err := quality.Audit(data, quality.Exclude)
	require.NoError(t, err)
	require.NotNil(t, rep.AgreementRate)
	assert.Equal(t, 1.0, *rep.AgreementRate)
	assert.Equal(t, quality.Good, rep.Grade)
	assert.Equal(t, 1.0, rep.LexiconCoverage)
	assert.Equal(t, 0.0, rep.NeutralRate)
	assert.Equal(t, 10, rep.Counted)
	assert.Empty(t, rep.Disagreements)
}

func TestGradeFor(t *testing.T) {
	tests := []struct {
		rate float64
		want quality.Grade
	}{
		{1.0, quality.Good},
		{0.81, quality.Good},
		{0.80, quality.NeedsReview},
		{0.70, quality.NeedsReview},
		{0.60, quality.NeedsReview},
		{0.5999, quality.Poor},
		{0.0, quality.Poor},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, quality.GradeFor(tt.rate), "rate %v", tt.rate)
	}
}

func TestAgreementBound(t *testing.T) {
	labels := []sentiment.Label{sentiment.Positive, sentiment.Neutral, sentiment.Negative}
	rnd := rand.New(rand.NewPCG(1, 2))

	for range 50 {
		n := rnd.IntN(30) + 1
		data := make([]quality.Observation, n)
		for i := range data {
			data[i] = obs(fmt.Sprintf("R%d", i), rnd.IntN(5)+1, labels[rnd.IntN(3)], rnd.IntN(3))
		}
		for _, p := range []quality.Policy{quality.Exclude, quality.NeutralAgrees} {
			rep, err := quality.Audit(data, p)
			if err != nil {
				assert.Equal(t, quality.InsufficientData, rep.Grade)
				assert.Nil(t, rep.AgreementRate)
				continue
			}
			rate := *rep.AgreementRate
			assert.GreaterOrEqual(t, rate, 0.0)
			assert.LessOrEqual(t, rate, 1.0)
			assert.Equal(t, quality.GradeFor(rate), rep.Grade)
			assert.Equal(t, rep.Counted-rep.Agreed, len(rep.Disagreements))
		}
	}
}

func TestRating3Policy(t *testing.T) {
	data := []quality.Observation{
		obs("R1", 5, sentiment.Positive, 1),
		obs("R2", 3, sentiment.Neutral, 0),
		obs("R3", 3, sentiment.Positive, 1),
		obs("R4", 2, sentiment.Positive, 1),
	}

	t.Run("exclude", func(t *testing.T) {
		rep, err := quality.Audit(data, quality.Exclude)
		require.NoError(t, err)
		assert.Equal(t, 2, rep.Counted)
		assert.Equal(t, 1, rep.Agreed)
		assert.Equal(t, 0.5, *rep.AgreementRate)
		assert.Equal(t, quality.Poor, rep.Grade)
		assert.Equal(t, []string{"R4"}, rep.Disagreements)
		assert.Equal(t, 1, rep.Confusion["Ambiguous"]["Neutral"])
		assert.Equal(t, 1, rep.Confusion["Ambiguous"]["Positive"])
	})

	t.Run("neutral agrees", func(t *testing.T) {
		rep, err := quality.Audit(data, quality.NeutralAgrees)
		require.NoError(t, err)
		assert.Equal(t, 4, rep.Counted)
		assert.Equal(t, 2, rep.Agreed)
		assert.Equal(t, 0.5, *rep.AgreementRate)
		assert.Equal(t, []string{"R3", "R4"}, rep.Disagreements)
		assert.Empty(t, rep.Confusion["Ambiguous"])
	})

	t.Run("shared rates", func(t *testing.T) {
		rep, _ := quality.Audit(data, quality.Exclude)
		assert.Equal(t, 0.75, rep.LexiconCoverage)
		assert.Equal(t, 0.25, rep.NeutralRate)
	})
}

func TestInsufficientData(t *testing.T) {
	tests := []struct {
		msg  string
		data []quality.Observation
	}{
		{"empty corpus", nil},
		{"only rating 3", []quality.Observation{
			obs("R1", 3, sentiment.Neutral, 0),
			obs("R2", 3, sentiment.Positive, 1),
		}},
	}

	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			rep, err := quality.Audit(tt.data, quality.Exclude)
			require.Error(t, err)
			var gnErr *gn.Error
			require.True(t, errors.As(err, &gnErr))
			assert.Equal(t, errcode.QualityInsufficientDataError, gnErr.Code)
			assert.Equal(t, quality.InsufficientData, rep.Grade)
			assert.Nil(t, rep.AgreementRate)

			bs, err := json.Marshal(rep)
			require.NoError(t, err)
			assert.Contains(t, string(bs), `"grade":"INSUFFICIENT_DATA"`)
			assert.Contains(t, string(bs), `"agreement_rate":null`)
		})
	}
}

func TestLabelMetrics(t *testing.T) {
	data := []quality.Observation{
		obs("R1", 5, sentiment.Positive, 1),
		obs("R2", 4, sentiment.Positive, 1),
		obs("R3", 4, sentiment.Neutral, 0),
		obs("R4", 1, sentiment.Positive, 1),
		obs("R5", 2, sentiment.Negative, 1),
	}
	rep, err := quality.Audit(data, quality.Exclude)
	require.NoError(t, err)

	byLabel := make(map[sentiment.Label]quality.LabelMetrics)
	for _, m := range rep.Metrics {
		byLabel[m.Label] = m
	}

	pos := byLabel[sentiment.Positive]
	assert.Equal(t, 3, pos.Support)
	assert.Equal(t, 3, pos.Predicted)
	assert.InDelta(t, 2.0/3.0, *pos.Precision, 1e-9)
	assert.InDelta(t, 2.0/3.0, *pos.Recall, 1e-9)

	neg := byLabel[sentiment.Negative]
	assert.Equal(t, 1.0, *neg.Precision)
	assert.Equal(t, 0.5, *neg.Recall)

	neu := byLabel[sentiment.Neutral]
	assert.Equal(t, 0, neu.Support)
	assert.Nil(t, neu.Recall)
	assert.Equal(t, 0.0, *neu.Precision)
}

func TestParsePolicy(t *testing.T) {
	p, ok := quality.ParsePolicy("Neutral-Agrees")
	assert.True(t, ok)
	assert.Equal(t, quality.NeutralAgrees, p)

	p, ok = quality.ParsePolicy("exclude")
	assert.True(t, ok)
	assert.Equal(t, quality.Exclude, p)

	_, ok = quality.ParsePolicy("count-all")
	assert.False(t, ok)
}
