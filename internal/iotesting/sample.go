package iotesting

import (
	"testing"

	"github.com/aladaia/vocan/pkg/aggregate"
	"github.com/aladaia/vocan/pkg/corpus"
	"github.com/aladaia/vocan/pkg/quality"
	"github.com/aladaia/vocan/pkg/redact"
	"github.com/aladaia/vocan/pkg/results"
	"github.com/aladaia/vocan/pkg/sentiment"
	"github.com/aladaia/vocan/pkg/tagging"
)

// SampleStoresCSV has four stores, S4 has no reviews.
const SampleStoresCSV = `store_id,name,city,zone,latitude,longitude,region
S1,Intersport Bastille,Paris,Paris Intra Muros,48.8532,2.3691,Île-de-France
S2,Intersport Vélizy,Vélizy-Villacoublay,Paris Extra Muros,48.7833,2.2167,Île-de-France
S3,Intersport Lille,Lille,Province,50.6292,3.0573,Hauts-de-France
S4,Intersport Lyon,Lyon,Province,45.7640,4.8357,Auvergne-Rhône-Alpes
`

// SampleReviewsCSV has eleven reviews. R10 has no text and R11 an
// invalid rating; both are skipped by validation.
const SampleReviewsCSV = `review_id,store_id,text,rating,date
R01,S1,"Merci Sophie Martin pour la réparation de mon vélo, super accueil !",5,2024-03-01
R02,S1,"Réparation du vélo rapide et efficace, très bon conseil.",5,2024-03-02
R03,S1,"Bon magasin, vélo réparé en une heure.",4,2024-03-04
R04,S2,"Attente interminable en caisse, personnel désagréable.",1,2024-03-05
R05,S2,"Trop d'attente à la caisse, rappelez-moi au 06 12 34 56 78.",2,2024-03-06
R06,S2,"Marc Dupont m'a bien conseillé, mais attente en caisse.",3,2024-03-07
R07,S3,"Excellent choix de chaussures de running, prix correct.",5,2024-03-08
R08,S3,"Chaussures de running abîmées, pas content. Écrivez à client@example.com",1,2024-03-09
R09,S3,"Le vendeur Marc Dupont est top, chaussures parfaites.",5,2024-03-10
R10,S1,"",4,2024-03-11
R11,S3,"Super magasin",7,2024-03-12
`

// PII lists personal data present in the sample reviews. None of it may
// appear in artifacts other than the restricted originals file.
var PII = []string{
	"Sophie", "Martin", "Marc Dupont", "06 12 34 56 78", "client@example.com",
}

// SampleResults runs the analysis packages over sample data in memory.
func SampleResults(t *testing.T) *results.Results {
	t.Helper()
	stores := []corpus.Store{
		{StoreID: "S1", Name: "Intersport Bastille", City: "Paris",
			Zone: corpus.IntraMuros, Region: "Île-de-France"},
		{StoreID: "S2", Name: "Intersport Vélizy", City: "Vélizy-Villacoublay",
			Zone: corpus.ExtraMuros, Region: "Île-de-France"},
		{StoreID: "S3", Name: "Intersport Lille", City: "Lille",
			Zone: corpus.Province, Region: "Hauts-de-France"},
	}
	texts := []struct {
		id, store, text string
		rating          int
	}{
		{"R01", "S1", "Merci Sophie Martin pour la réparation de mon vélo, super accueil !", 5},
		{"R02", "S1", "Réparation du vélo rapide et efficace, très bon conseil.", 5},
		{"R03", "S2", "Attente interminable en caisse, rappelez-moi au 06 12 34 56 78.", 1},
		{"R04", "S2", "Marc Dupont m'a bien conseillé, mais attente en caisse.", 3},
		{"R05", "S3", "Chaussures abîmées, pas content. Écrivez à client@example.com", 1},
	}
	var reviews []corpus.Review
	for _, v := range texts {
		reviews = append(reviews, corpus.Review{
			ReviewID: v.id, StoreID: v.store, TextRaw: v.text,
			Rating: v.rating, Date: "2024-03-01",
		})
	}

	c, _, err := corpus.New(stores, reviews)
	if err != nil {
		t.Fatalf("corpus: %v", err)
	}

	res := &results.Results{
		Manifest: results.Manifest{
			RunID:         "00000000-0000-0000-0000-000000000001",
			Version:       "test",
			FormatVersion: results.FormatVersion,
			CreatedAt:     "2024-03-15T10:00:00Z",
			InputReviews:  len(reviews),
			Reviews:       len(c.Reviews),
			Stores:        len(c.Stores),
			Policy:        quality.Exclude.String(),
		},
		Stores: c.Stores,
		Audit:  redact.NewAudit(),
	}

	rd := redact.New(redact.NewRegistry())
	cl := sentiment.NewClassifier(nil, 0)
	for i, r := range c.Reviews {
		text, events := rd.Redact(r.ReviewID, r.TextRaw)
		res.Audit.Add(events, redact.Residuals(r.ReviewID, text))
		if err = c.SetAnonymized(i, text); err != nil {
			t.Fatalf("redact: %v", err)
		}
		res.Reviews = append(res.Reviews, results.Review{
			Review:    c.Reviews[i],
			Sentiment: cl.Classify(r.ReviewID, text),
		})
	}
	res.Audit.Finish(rd.Registry())

	res.Quality, _ = quality.Audit(res.Observations(), quality.Exclude)

	d := tagging.New(
		tagging.OptMinSupport(2),
		tagging.OptExclude(cl.Lexicon().IsTerm),
	)
	var assigns []tagging.Assignment
	res.Plan, assigns, err = d.Derive(res.Docs())
	if err != nil {
		t.Fatalf("tagging: %v", err)
	}
	res.SetTags(assigns)

	res.Stats, err = aggregate.Aggregate(c.Stores, res.Records(), 0)
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}
	return res
}
