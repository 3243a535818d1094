package iosource

import (
	"encoding/csv"
	"errors"
	"io"
	"log/slog"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/aladaia/vocan/internal/iofs"
	"github.com/aladaia/vocan/pkg/corpus"
)

var (
	reviewColumns = []string{"review_id", "store_id", "text", "rating", "date"}
	storeColumns  = []string{"store_id", "name", "city", "zone"}
)

// table is a CSV file with a header mapping column names to positions.
type table struct {
	path string
	r    *csv.Reader
	f    *os.File
	cols map[string]int
}

func openTable(path string, required []string) (*table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, iofs.ReadFileError(path, err)
	}

	r := csv.NewReader(f)
	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		f.Close()
		return nil, MissingColumnError(path, required)
	}
	if err != nil {
		f.Close()
		return nil, MalformedRowError(path, 1, err)
	}

	cols := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.TrimPrefix(h, "\ufeff")
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}

	var missing []string
	for _, c := range required {
		if _, ok := cols[c]; !ok {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		f.Close()
		return nil, MissingColumnError(path, missing)
	}

	return &table{path: path, r: r, f: f, cols: cols}, nil
}

// each calls fn for every data row. Line numbers count the header as 1.
func (t *table) each(fn func(line int, get func(string) string) error) error {
	defer t.f.Close()
	for {
		row, err := t.r.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			var line int
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				line = pe.Line
			}
			return MalformedRowError(t.path, line, err)
		}
		line, _ := t.r.FieldPos(0)
		get := func(col string) string {
			i, ok := t.cols[col]
			if !ok || i >= len(row) {
				return ""
			}
			return row[i]
		}
		if err = fn(line, get); err != nil {
			return err
		}
	}
}

func reviewsCSV(path string) ([]corpus.Review, error) {
	t, err := openTable(path, reviewColumns[:4])
	if err != nil {
		return nil, err
	}

	var res []corpus.Review
	err = t.each(func(line int, get func(string) string) error {
		r := corpus.Review{
			ReviewID: strings.TrimSpace(get("review_id")),
			StoreID:  strings.TrimSpace(get("store_id")),
			TextRaw:  cleanText(get("text")),
			Rating:   parseRating(get("rating")),
			Date:     strings.TrimSpace(get("date")),
		}
		if r.ReviewID == "" {
			return MalformedRowError(path, line, lineErr(line, "empty review_id"))
		}
		res = append(res, r)
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("Reviews loaded", "path", path, "reviews", len(res))
	return res, nil
}

func storesCSV(path string) ([]corpus.Store, error) {
	t, err := openTable(path, storeColumns)
	if err != nil {
		return nil, err
	}

	var res []corpus.Store
	err = t.each(func(line int, get func(string) string) error {
		var err error
		st := corpus.Store{
			StoreID: strings.TrimSpace(get("store_id")),
			Name:    cleanText(get("name")),
			City:    cleanText(get("city")),
			Region:  cleanText(get("region")),
		}
		if st.StoreID == "" {
			return MalformedRowError(path, line, lineErr(line, "empty store_id"))
		}
		if st.Zone, err = parseZone(st.StoreID, get("zone")); err != nil {
			return err
		}
		if st.Latitude, err = parseCoord(get("latitude")); err != nil {
			return MalformedRowError(path, line, err)
		}
		if st.Longitude, err = parseCoord(get("longitude")); err != nil {
			return MalformedRowError(path, line, err)
		}
		res = append(res, st)
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("Stores loaded", "path", path, "stores", len(res))
	return res, nil
}

// parseRating reads a star rating. Integral floats such as "4.0" are
// accepted. Anything else becomes 0, which validation rejects with the
// review ID attached.
func parseRating(s string) int {
	s = strings.TrimSpace(s)
	if i, err := strconv.Atoi(s); err == nil {
		return i
	}
	f, err := strconv.ParseFloat(strings.Replace(s, ",", ".", 1), 64)
	if err != nil || f != math.Trunc(f) {
		return 0
	}
	return int(f)
}

func parseCoord(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	return strconv.ParseFloat(s, 64)
}
