package schema

import (
	"strings"
	"time"

	"github.com/aladaia/vocan/pkg/results"
	"gorm.io/gorm"
)

// Rows holds all table rows of one run.
type Rows struct {
	Run        Run
	Stores     []Store
	Reviews    []Review
	Tags       []Tag
	ReviewTags []ReviewTag
	StoreStats []StoreStat
	ZoneStats  []ZoneStat
	TagStats   []TagStat
	Events     []RedactionEvent
}

// FromResults converts run results to table rows.
func FromResults(res *results.Results) Rows {
	m := res.Manifest
	created, _ := time.Parse(time.RFC3339, m.CreatedAt)
	out := Rows{
		Run: Run{
			RunID:         m.RunID,
			Version:       m.Version,
			FormatVersion: m.FormatVersion,
			CreatedAt:     created,
			ReviewsPath:   m.ReviewsPath,
			StoresPath:    m.StoresPath,
			InputReviews:  m.InputReviews,
			Reviews:       m.Reviews,
			Skipped:       m.Skipped,
			Stores:        m.Stores,
			Policy:        m.Policy,
			Grade:         res.Quality.Grade.String(),
			AgreementRate: res.Quality.AgreementRate,
			Coverage:      res.Plan.Coverage,
			Duration:      m.Duration,
		},
	}

	for _, st := range res.Stores {
		out.Stores = append(out.Stores, Store{
			StoreID:   st.StoreID,
			Name:      st.Name,
			City:      st.City,
			Zone:      st.Zone.String(),
			Region:    st.Region,
			Latitude:  st.Latitude,
			Longitude: st.Longitude,
		})
	}

	for _, r := range res.Reviews {
		out.Reviews = append(out.Reviews, Review{
			ReviewID:       r.ReviewID,
			StoreID:        r.StoreID,
			Rating:         r.Rating,
			Date:           r.Date,
			TextAnonymized: r.TextAnonymized,
			SentimentLabel: r.Sentiment.Label.String(),
			SentimentScore: r.Sentiment.Score,
			MatchedTerms:   r.Sentiment.MatchedTerms,
		})
		for _, id := range r.TagIDs {
			out.ReviewTags = append(out.ReviewTags, ReviewTag{
				ReviewID: r.ReviewID,
				TagID:    id,
			})
		}
	}

	for _, t := range res.Plan.Tags {
		out.Tags = append(out.Tags, Tag{
			TagID:        t.ID,
			Label:        t.Label,
			Key:          t.Key,
			Members:      strings.Join(t.Members, "|"),
			Frequency:    t.Frequency,
			SupportCount: t.SupportCount,
			Coverage:     t.Coverage,
			Fallback:     t.Fallback,
		})
	}

	for _, st := range res.Stats.Stores {
		out.StoreStats = append(out.StoreStats, StoreStat{
			StoreID:       st.StoreID,
			ReviewCount:   st.ReviewCount,
			MeanRating:    st.MeanRating,
			NPS:           st.NPS,
			Promoters:     st.Promoters,
			Detractors:    st.Detractors,
			PositiveShare: st.PositiveShare,
			NegativeShare: st.NegativeShare,
			TopTags:       strings.Join(st.TopTags, "|"),
		})
	}

	for _, z := range res.Stats.Zones {
		out.ZoneStats = append(out.ZoneStats, ZoneStat{
			Zone:          z.Zone.String(),
			StoreCount:    z.StoreCount,
			ReviewCount:   z.ReviewCount,
			MeanRating:    z.MeanRating,
			NPS:           z.NPS,
			PositiveShare: z.PositiveShare,
			NegativeShare: z.NegativeShare,
		})
	}

	for _, t := range res.Stats.Tags {
		out.TagStats = append(out.TagStats, TagStat{
			Label:         t.Label,
			Count:         t.Count,
			Share:         t.Share,
			MeanRating:    t.MeanRating,
			RatingDelta:   t.RatingDelta,
			PositiveShare: t.PositiveShare,
			NegativeShare: t.NegativeShare,
		})
	}

	if res.Audit != nil {
		for _, e := range res.Audit.Events {
			out.Events = append(out.Events, RedactionEvent{
				ReviewID:    e.ReviewID,
				EntityType:  e.EntityType.String(),
				Placeholder: e.Placeholder,
			})
		}
	}
	return out
}

// Insert writes rows in batches of batchSize, parents first.
func (r Rows) Insert(db *gorm.DB, batchSize int) error {
	if err := db.Create(&r.Run).Error; err != nil {
		return err
	}
	batches := []struct {
		n    int
		rows any
	}{
		{len(r.Stores), &r.Stores},
		{len(r.Reviews), &r.Reviews},
		{len(r.Tags), &r.Tags},
		{len(r.ReviewTags), &r.ReviewTags},
		{len(r.StoreStats), &r.StoreStats},
		{len(r.ZoneStats), &r.ZoneStats},
		{len(r.TagStats), &r.TagStats},
		{len(r.Events), &r.Events},
	}
	for _, b := range batches {
		if b.n == 0 {
			continue
		}
		if err := db.CreateInBatches(b.rows, batchSize).Error; err != nil {
			return err
		}
	}
	return nil
}

// Count returns the number of rows excluding the run row.
func (r Rows) Count() int {
	return len(r.Stores) + len(r.Reviews) + len(r.Tags) + len(r.ReviewTags) +
		len(r.StoreStats) + len(r.ZoneStats) + len(r.TagStats) + len(r.Events)
}
