package ioexport

import (
	"encoding/csv"
	"os"
	"strconv"
	"strings"

	"github.com/aladaia/vocan/pkg/results"
)

var (
	anonymizedHeader = []string{
		"review_id", "store_id", "rating", "date", "text_anonymized",
	}
	taggedHeader = append(append([]string{}, anonymizedHeader...),
		"sentiment_label", "sentiment_score", "matched_terms", "tags",
	)
)

// TagSeparator joins tag labels in the tags column.
const TagSeparator = "|"

func anonymizedRow(r results.Review) []string {
	return []string{
		r.ReviewID,
		r.StoreID,
		strconv.Itoa(r.Rating),
		r.Date,
		r.TextAnonymized,
	}
}

func writeAnonymized(path string, reviews []results.Review) error {
	return writeCSV(path, anonymizedHeader, len(reviews), func(i int) []string {
		return anonymizedRow(reviews[i])
	})
}

func writeTagged(path string, reviews []results.Review) error {
	return writeCSV(path, taggedHeader, len(reviews), func(i int) []string {
		r := reviews[i]
		return append(anonymizedRow(r),
			r.Sentiment.Label.String(),
			strconv.Itoa(r.Sentiment.Score),
			strconv.Itoa(r.Sentiment.MatchedTerms),
			strings.Join(r.Tags, TagSeparator),
		)
	})
}

func writeCSV(path string, header []string, n int, row func(int) []string) error {
	f, err := os.Create(path)
	if err != nil {
		return StageError(path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err = w.Write(header); err != nil {
		return StageError(path, err)
	}
	for i := range n {
		if err = w.Write(row(i)); err != nil {
			return StageError(path, err)
		}
	}
	w.Flush()
	if err = w.Error(); err != nil {
		return StageError(path, err)
	}
	if err = f.Close(); err != nil {
		return StageError(path, err)
	}
	return nil
}
