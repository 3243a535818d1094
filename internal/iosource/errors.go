package iosource

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/aladaia/vocan/pkg/errcode"
	"github.com/gnames/gn"
)

// MissingColumnError is returned when a table lacks required columns.
func MissingColumnError(path string, cols []string) error {
	msg := `File <em>%s</em> misses required columns: %s

<em>How to fix:</em>
  1. Make sure the first line of the file is a header
  2. Reviews need: review_id, store_id, text, rating, date
  3. Stores need: store_id, name, city, zone`
	vars := []any{path, strings.Join(cols, ", ")}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.InputMissingColumnError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: %s: missing columns %v",
			fn.Name(), path, cols),
	}
}

// MalformedRowError is returned when a row cannot be parsed.
func MalformedRowError(path string, line int, err error) error {
	msg := "Cannot parse line %d of <em>%s</em>"
	vars := []any{line, path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.InputMalformedRowError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: %s line %d: %w",
			fn.Name(), path, line, err),
	}
}

// FormatError is returned for files that are not of a supported format.
func FormatError(path string, err error) error {
	msg := `Cannot read <em>%s</em>

Reviews can be a CSV file or an SQLite database (.sqlite, .db),
stores can be a CSV or a YAML file.`
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.InputFormatError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: %s: %w", fn.Name(), path, err),
	}
}

// EmptyInputError is returned when a file has no records.
func EmptyInputError(path string) error {
	msg := "File <em>%s</em> contains no records"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.InputEmptyCorpusError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: %s: no records", fn.Name(), path),
	}
}
