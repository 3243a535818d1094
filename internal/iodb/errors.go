package iodb

import (
	"fmt"

	"github.com/aladaia/vocan/pkg/errcode"
	"github.com/gnames/gn"
)

// ConnectionError creates an error for database connection
// failures.
func ConnectionError(
	host string,
	port int,
	database, user string,
	err error,
) error {
	msg := `Cannot connect to PostgreSQL at <em>%s:%d</em>

<em>Database:</em> %s
<em>User:</em> %s

<em>How to fix:</em>
  1. Check that PostgreSQL is running
  2. Check database settings in config.yaml or VOCAN_DATABASE_* variables
  3. Create the database if it does not exist: createdb %s`

	return &gn.Error{
		Code: errcode.DBConnectionError,
		Msg:  msg,
		Vars: []any{host, port, database, user, database},
		Err:  fmt.Errorf("failed to connect to %s:%d/%s: %w", host, port, database, err),
	}
}

// NotConnectedError creates an error for when a database
// operation is attempted without a connection.
func NotConnectedError() error {
	msg := "Database operation attempted without connection"

	return &gn.Error{
		Code: errcode.DBNotConnectedError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("not connected to database"),
	}
}

// TableExistsCheckError creates an error for failures while
// checking if a table exists.
func TableExistsCheckError(tableName string, err error) error {
	msg := "Cannot check if table <em>%s</em> exists"

	return &gn.Error{
		Code: errcode.DBTableCheckError,
		Msg:  msg,
		Vars: []any{tableName},
		Err:  fmt.Errorf("failed to check table %s: %w", tableName, err),
	}
}

// ArchiveCommitError creates an error for an SQLite archive that
// cannot be moved into place.
func ArchiveCommitError(path string, err error) error {
	msg := "Cannot write SQLite archive <em>%s</em>"

	return &gn.Error{
		Code: errcode.ArchiveCommitError,
		Msg:  msg,
		Vars: []any{path},
		Err:  fmt.Errorf("failed to write archive %s: %w", path, err),
	}
}
