package ioschema

import (
	"fmt"

	"github.com/aladaia/vocan/pkg/errcode"
	"github.com/gnames/gn"
)

// NotConnectedError creates an error for when schema
// operation is attempted without database connection.
func NotConnectedError() error {
	msg := "Schema operation attempted without database connection"

	return &gn.Error{
		Code: errcode.DBNotConnectedError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("not connected to database"),
	}
}

// GORMConnectionError creates an error for GORM
// connection failures.
func GORMConnectionError(target string, err error) error {
	msg := `Cannot open <em>%s</em> with GORM

<em>Possible causes:</em>
  - Connection pool not initialized
  - SQLite file cannot be created
  - Database configuration issue`

	return &gn.Error{
		Code: errcode.DBConnectionError,
		Msg:  msg,
		Vars: []any{target},
		Err:  fmt.Errorf("failed to open %s with GORM: %w", target, err),
	}
}

// MigrateSchemaError creates an error for schema
// migration failures.
func MigrateSchemaError(err error) error {
	msg := `Cannot create or update vocan tables

<em>How to fix:</em>
  1. Check that the database user can create tables
  2. Drop vocan_* tables that were changed by hand`

	return &gn.Error{
		Code: errcode.DBMigrateError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("failed to migrate schema: %w", err),
	}
}

// ReplaceRowsError creates an error for a failed replacement of table
// contents. The transaction is rolled back and previous rows stay.
func ReplaceRowsError(err error) error {
	msg := "Cannot write results, previous contents are kept"

	return &gn.Error{
		Code: errcode.DBWriteError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("failed to replace rows: %w", err),
	}
}
