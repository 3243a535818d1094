package tagging_test

import (
	"slices"
	"testing"

	"github.com/aladaia/vocan/pkg/sentiment"
	"github.com/aladaia/vocan/pkg/tagging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func corpus() []tagging.Doc {
	return []tagging.Doc{
		{ReviewID: "R1", Text: "Réparation rapide du vélo."},
		{ReviewID: "R2", Text: "Réparation soignée, vélo comme neuf"},
		{ReviewID: "R3", Text: "Ils ont pu réparer mon vélo"},
		{ReviewID: "R4", Text: "Vélo prêt à temps"},
		{ReviewID: "R5", Text: "Attente en caisse interminable"},
		{ReviewID: "R6", Text: "Caisse fermée, attente"},
		{ReviewID: "R7", Text: "Rien à dire"},
	}
}

func deriver(opts ...tagging.Option) *tagging.Deriver {
	lex := sentiment.DefaultLexicon()
	base := []tagging.Option{
		tagging.OptMinSupport(2),
		tagging.OptMaxSamples(2),
		tagging.OptExclude(lex.IsTerm),
	}
	return tagging.New(append(base, opts...)...)
}

func labels(p tagging.Plan) []string {
	res := make([]string, len(p.Tags))
	for i, t := range p.Tags {
		res[i] = t.Label
	}
	return res
}

func TestDerive(t *testing.T) {
	plan, assigns, err := deriver().Derive(corpus())
	require.NoError(t, err)

	assert.Equal(t,
		[]string{"vélo", "attente", "caisse", "réparation", tagging.FallbackLabel},
		labels(plan),
		"sorted by frequency, then lexical order; fallback last")
	assert.Equal(t, 4, plan.Candidates)

	support := make(map[string]int)
	for _, tag := range plan.Tags {
		support[tag.Label] = tag.SupportCount
	}
	assert.Equal(t, 4, support["vélo"])
	assert.Equal(t, 2, support["caisse"])
	assert.Equal(t, 3, support["réparation"], "réparer matches the réparation tag")
	assert.Equal(t, 1, support[tagging.FallbackLabel])

	velo := plan.Tags[0]
	assert.Equal(t, 4, velo.Frequency)
	assert.InDelta(t, 4.0/7.0, velo.Coverage, 1e-9)
	require.Len(t, velo.Samples, 2)
	assert.Equal(t, "R1", velo.Samples[0].ReviewID)
	assert.Equal(t, "R2", velo.Samples[1].ReviewID)

	require.Len(t, assigns, 7)
	byReview := make(map[string][]string)
	for _, a := range assigns {
		byReview[a.ReviewID] = a.TagIDs
	}
	assert.Equal(t,
		[]string{tagging.TagID("vélo"), tagging.TagID("réparation")},
		byReview["R3"])
	assert.Equal(t,
		[]string{tagging.TagID(tagging.FallbackLabel)},
		byReview["R7"])

	assert.InDelta(t, 6.0/7.0, plan.DerivedCoverage, 1e-9)
	assert.Equal(t, 1.0, plan.Coverage)
}

func TestDeriveCoverageInvariant(t *testing.T) {
	tests := []struct {
		msg  string
		opts []tagging.Option
		docs []tagging.Doc
	}{
		{"default settings", nil, corpus()},
		{"tight top k", []tagging.Option{tagging.OptTopK(1)}, corpus()},
		{"no candidates", []tagging.Option{tagging.OptMinSupport(50)}, corpus()},
		{"texts without words", nil, []tagging.Doc{
			{ReviewID: "R1", Text: "!!!"},
			{ReviewID: "R2", Text: "[PERSONNE_1] [EMAIL]"},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			plan, assigns, err := deriver(tt.opts...).Derive(tt.docs)
			require.NoError(t, err)
			for _, a := range assigns {
				assert.NotEmpty(t, a.TagIDs, a.ReviewID)
			}
			assert.Equal(t, 1.0, plan.Coverage)
		})
	}
}

func TestDeriveTopK(t *testing.T) {
	plan, _, err := deriver(tagging.OptTopK(2)).Derive(corpus())
	require.NoError(t, err)
	assert.Equal(t,
		[]string{"vélo", "attente", tagging.FallbackLabel},
		labels(plan))
}

func TestDeriveClustersStems(t *testing.T) {
	docs := []tagging.Doc{
		{ReviewID: "R1", Text: "réparation vélo"},
		{ReviewID: "R2", Text: "réparation pneu"},
		{ReviewID: "R3", Text: "réparer pneu"},
		{ReviewID: "R4", Text: "réparer frein"},
	}
	plan, _, err := deriver().Derive(docs)
	require.NoError(t, err)

	assert.Equal(t,
		[]string{"pneu", "réparation", tagging.FallbackLabel},
		labels(plan))
	assert.Equal(t, []string{"réparation", "réparer"}, plan.Tags[1].Members)
	assert.Equal(t, "répar", plan.Tags[1].Key)
	assert.Equal(t, 4, plan.Tags[1].SupportCount)
}

func TestDeriveDeterministic(t *testing.T) {
	d := deriver()
	plan1, assigns1, err := d.Derive(corpus())
	require.NoError(t, err)
	plan2, assigns2, err := d.Derive(corpus())
	require.NoError(t, err)
	assert.Equal(t, plan1, plan2)
	assert.Equal(t, assigns1, assigns2)

	rev := corpus()
	slices.Reverse(rev)
	plan3, _, err := d.Derive(rev)
	require.NoError(t, err)
	assert.Equal(t, labels(plan1), labels(plan3),
		"tag set does not depend on input order")
}

func TestDeriveExcludesSentimentTerms(t *testing.T) {
	docs := []tagging.Doc{
		{ReviewID: "R1", Text: "excellent accueil"},
		{ReviewID: "R2", Text: "excellent accueil"},
		{ReviewID: "R3", Text: "excellent parking"},
	}
	plan, _, err := deriver().Derive(docs)
	require.NoError(t, err)
	assert.Equal(t, []string{"accueil", tagging.FallbackLabel}, labels(plan))
}

func TestDeriveEmpty(t *testing.T) {
	plan, assigns, err := deriver().Derive(nil)
	require.NoError(t, err)
	assert.Empty(t, assigns)
	assert.Equal(t, []string{tagging.FallbackLabel}, labels(plan))
	assert.Equal(t, 1.0, plan.Coverage)
	assert.Equal(t, 0, plan.Tags[0].SupportCount)
}

func TestTagID(t *testing.T) {
	assert.Equal(t, tagging.TagID("vélo"), tagging.TagID("vélo"))
	assert.NotEqual(t, tagging.TagID("vélo"), tagging.TagID("caisse"))
	assert.Len(t, tagging.TagID("vélo"), 36)
}
