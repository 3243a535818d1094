// Package iosource reads review and store tables from CSV, YAML and
// SQLite files.
//
// Text fields are repaired to valid UTF-8 and trimmed. Validation of the
// records themselves happens in pkg/corpus.
package iosource

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/aladaia/vocan/pkg/corpus"
)

// Format of an input file.
type Format int

const (
	UnknownFormat Format = iota
	CSV
	YAML
	SQLite
)

// FormatOf detects the format of a file by its extension.
func FormatOf(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return CSV
	case ".yaml", ".yml":
		return YAML
	case ".sqlite", ".sqlite3", ".db":
		return SQLite
	}
	return UnknownFormat
}

// LoadReviews reads reviews from a CSV file or an SQLite database.
func LoadReviews(path string) ([]corpus.Review, error) {
	switch FormatOf(path) {
	case CSV:
		return reviewsCSV(path)
	case SQLite:
		return reviewsSQLite(path)
	}
	return nil, FormatError(path, errors.New("unsupported reviews format"))
}

// LoadStores reads store metadata from a CSV or a YAML file.
func LoadStores(path string) ([]corpus.Store, error) {
	var res []corpus.Store
	var err error
	switch FormatOf(path) {
	case CSV:
		res, err = storesCSV(path)
	case YAML:
		res, err = storesYAML(path)
	default:
		return nil, FormatError(path, errors.New("unsupported stores format"))
	}
	if err != nil {
		return nil, err
	}
	if len(res) == 0 {
		return nil, EmptyInputError(path)
	}
	return res, nil
}

// cleanText repairs invalid UTF-8 sequences and trims surrounding space.
func cleanText(s string) string {
	s = strings.ToValidUTF8(s, "\uFFFD")
	return strings.TrimSpace(s)
}

func parseZone(storeID, s string) (corpus.Zone, error) {
	z, ok := corpus.ParseZone(s)
	if !ok {
		return z, corpus.ZoneError(storeID, s)
	}
	return z, nil
}

func lineErr(line int, format string, args ...any) error {
	return fmt.Errorf("line %d: "+format, append([]any{line}, args...)...)
}
