// Package schema provides database models for archived and published
// runs. Tables share the vocan_ prefix so they can live in an existing
// database.
package schema

import (
	"time"
)

// Run stores the manifest of the run whose results fill the tables.
type Run struct {
	RunID         string `gorm:"primaryKey;type:varchar(36)"`
	Version       string `gorm:"type:varchar(50)"`
	FormatVersion string `gorm:"type:varchar(20)"`
	CreatedAt     time.Time
	ReviewsPath   string
	StoresPath    string
	InputReviews  int
	Reviews       int
	Skipped       int
	Stores        int
	Policy        string `gorm:"type:varchar(20)"`
	Grade         string `gorm:"type:varchar(20)"`
	AgreementRate *float64
	Coverage      float64
	Duration      string `gorm:"type:varchar(50)"`
}

func (Run) TableName() string { return "vocan_runs" }

// Store is store metadata.
type Store struct {
	StoreID   string `gorm:"primaryKey;type:varchar(100)"`
	Name      string
	City      string `gorm:"index"`
	Zone      string `gorm:"type:varchar(20);index"`
	Region    string `gorm:"index"`
	Latitude  float64
	Longitude float64
}

func (Store) TableName() string { return "vocan_stores" }

// Review is an analyzed review. Raw text is never stored.
type Review struct {
	ReviewID       string `gorm:"primaryKey;type:varchar(100)"`
	StoreID        string `gorm:"type:varchar(100);index;not null"`
	Rating         int    `gorm:"type:smallint"`
	Date           string `gorm:"type:varchar(30)"`
	TextAnonymized string `gorm:"type:text"`
	SentimentLabel string `gorm:"type:varchar(10);index"`
	SentimentScore int
	MatchedTerms   int
}

func (Review) TableName() string { return "vocan_reviews" }

// Tag is a derived topic.
type Tag struct {
	TagID        string `gorm:"primaryKey;type:varchar(36)"`
	Label        string `gorm:"uniqueIndex"`
	Key          string
	Members      string `gorm:"type:text"`
	Frequency    int
	SupportCount int
	Coverage     float64
	Fallback     bool
}

func (Tag) TableName() string { return "vocan_tags" }

// ReviewTag links reviews to tags.
type ReviewTag struct {
	ReviewID string `gorm:"primaryKey;type:varchar(100)"`
	TagID    string `gorm:"primaryKey;type:varchar(36);index"`
}

func (ReviewTag) TableName() string { return "vocan_review_tags" }

// StoreStat holds statistics of a store. Nullable values are null for
// stores without reviews.
type StoreStat struct {
	StoreID       string `gorm:"primaryKey;type:varchar(100)"`
	ReviewCount   int
	MeanRating    *float64
	NPS           *float64 `gorm:"column:nps"`
	Promoters     int
	Detractors    int
	PositiveShare *float64
	NegativeShare *float64
	TopTags       string
}

func (StoreStat) TableName() string { return "vocan_store_stats" }

// ZoneStat holds statistics of a zone.
type ZoneStat struct {
	Zone          string `gorm:"primaryKey;type:varchar(20)"`
	StoreCount    int
	ReviewCount   int
	MeanRating    *float64
	NPS           *float64 `gorm:"column:nps"`
	PositiveShare *float64
	NegativeShare *float64
}

func (ZoneStat) TableName() string { return "vocan_zone_stats" }

// TagStat holds statistics of reviews carrying a tag.
type TagStat struct {
	Label         string `gorm:"primaryKey"`
	Count         int
	Share         float64
	MeanRating    *float64
	RatingDelta   *float64
	PositiveShare *float64
	NegativeShare *float64
}

func (TagStat) TableName() string { return "vocan_tag_stats" }

// RedactionEvent is one replaced span. The original text is never stored.
type RedactionEvent struct {
	ID          uint   `gorm:"primaryKey"`
	ReviewID    string `gorm:"type:varchar(100);index"`
	EntityType  string `gorm:"type:varchar(10)"`
	Placeholder string `gorm:"type:varchar(30)"`
}

func (RedactionEvent) TableName() string { return "vocan_redaction_events" }
