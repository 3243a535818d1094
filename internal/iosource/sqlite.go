package iosource

import (
	"database/sql"
	"log/slog"
	"os"
	"strings"

	"github.com/aladaia/vocan/internal/iofs"
	"github.com/aladaia/vocan/pkg/corpus"
	_ "modernc.org/sqlite"
)

const reviewsQuery = `
SELECT CAST(review_id AS TEXT), CAST(store_id AS TEXT),
	COALESCE(text, ''), COALESCE(rating, 0), COALESCE(CAST(date AS TEXT), '')
FROM reviews
ORDER BY rowid`

// reviewsSQLite reads the reviews table of an SQLite database. The table
// must have the same columns as the CSV input.
func reviewsSQLite(path string) ([]corpus.Review, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, iofs.ReadFileError(path, err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, FormatError(path, err)
	}
	defer db.Close()

	if err = checkReviewsTable(db, path); err != nil {
		return nil, err
	}

	rows, err := db.Query(reviewsQuery)
	if err != nil {
		return nil, FormatError(path, err)
	}
	defer rows.Close()

	var res []corpus.Review
	for rows.Next() {
		var r corpus.Review
		var rating float64
		err = rows.Scan(&r.ReviewID, &r.StoreID, &r.TextRaw, &rating, &r.Date)
		if err != nil {
			return nil, MalformedRowError(path, len(res)+1, err)
		}
		r.ReviewID = strings.TrimSpace(r.ReviewID)
		r.StoreID = strings.TrimSpace(r.StoreID)
		r.TextRaw = cleanText(r.TextRaw)
		r.Rating = int(rating)
		if float64(r.Rating) != rating {
			r.Rating = 0
		}
		res = append(res, r)
	}
	if err = rows.Err(); err != nil {
		return nil, FormatError(path, err)
	}

	slog.Info("Reviews loaded", "path", path, "reviews", len(res))
	return res, nil
}

func checkReviewsTable(db *sql.DB, path string) error {
	rows, err := db.Query("SELECT name FROM pragma_table_info('reviews')")
	if err != nil {
		return FormatError(path, err)
	}
	defer rows.Close()

	have := make(map[string]struct{})
	for rows.Next() {
		var name string
		if err = rows.Scan(&name); err != nil {
			return FormatError(path, err)
		}
		have[strings.ToLower(name)] = struct{}{}
	}
	if err = rows.Err(); err != nil {
		return FormatError(path, err)
	}

	var missing []string
	for _, c := range reviewColumns {
		if _, ok := have[c]; !ok {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return MissingColumnError(path, missing)
	}
	return nil
}
