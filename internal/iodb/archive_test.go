package iodb_test

import (
	"database/sql"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aladaia/vocan/internal/iodb"
	"github.com/aladaia/vocan/internal/ioexport"
	"github.com/aladaia/vocan/internal/iotesting"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func count(t *testing.T, db *sql.DB, table string) int {
	t.Helper()
	var n int
	err := db.QueryRow("SELECT count(*) FROM " + table).Scan(&n)
	require.NoError(t, err)
	return n
}

func TestArchive(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping SQLite test in short mode")
	}

	res := iotesting.SampleResults(t)
	path := filepath.Join(t.TempDir(), "vocan.sqlite")

	// a second archive replaces the first one
	require.NoError(t, iodb.Archive(path, res, 2))
	require.NoError(t, iodb.Archive(path, res, 2))

	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer db.Close()

	assert.Equal(t, 1, count(t, db, "vocan_runs"))
	assert.Equal(t, len(res.Stores), count(t, db, "vocan_stores"))
	assert.Equal(t, len(res.Reviews), count(t, db, "vocan_reviews"))

	rows, err := db.Query("SELECT text_anonymized FROM vocan_reviews")
	require.NoError(t, err)
	defer rows.Close()
	for rows.Next() {
		var txt string
		require.NoError(t, rows.Scan(&txt))
		for _, pii := range iotesting.PII {
			assert.NotContains(t, txt, pii)
		}
	}
	require.NoError(t, rows.Err())

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	for _, e := range entries {
		assert.False(t, strings.HasPrefix(e.Name(), ".vocan-archive-"),
			"temporary file %s is left behind", e.Name())
	}
}

func TestArchiveStager(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping SQLite test in short mode")
	}

	res := iotesting.SampleResults(t)
	dir := filepath.Join(t.TempDir(), "analysis")
	exp := ioexport.New(dir, false)

	err := exp.Write(res, iodb.ArchiveStager(res, 100))
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, ioexport.ArchiveFile))
	assert.FileExists(t, filepath.Join(dir, ioexport.ManifestFile))
}

func TestArchive_BadDir(t *testing.T) {
	res := iotesting.SampleResults(t)
	path := filepath.Join(t.TempDir(), "missing", "vocan.sqlite")

	err := iodb.Archive(path, res, 10)
	assert.Error(t, err)
	assert.NoFileExists(t, path)
}
