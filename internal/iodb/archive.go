package iodb

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/aladaia/vocan/internal/ioexport"
	"github.com/aladaia/vocan/internal/ioschema"
	"github.com/aladaia/vocan/pkg/results"
	"github.com/aladaia/vocan/pkg/schema"
)

// Archive writes the results of a run into an SQLite file at path. The
// file is built under a temporary name in the same directory and renamed
// at the end, so an existing archive is either fully replaced or kept.
func Archive(path string, res *results.Results, batchSize int) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".vocan-archive-*")
	if err != nil {
		return ArchiveCommitError(path, err)
	}
	tmpPath := tmp.Name()
	if err = tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return ArchiveCommitError(path, err)
	}

	if err = fill(tmpPath, res, batchSize); err != nil {
		os.Remove(tmpPath)
		return err
	}

	if err = os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return ArchiveCommitError(path, err)
	}

	slog.Info("SQLite archive written", "path", path)
	return nil
}

func fill(path string, res *results.Results, batchSize int) error {
	gormDB, err := ioschema.OpenSQLite(path)
	if err != nil {
		return err
	}

	err = ioschema.Replace(gormDB, schema.FromResults(res), batchSize)
	if cerr := ioschema.Close(gormDB); err == nil && cerr != nil {
		err = ArchiveCommitError(path, cerr)
	}
	return err
}

// ArchiveStager returns an ioexport.Stager that adds the SQLite archive to
// the staged artifacts of a run.
func ArchiveStager(res *results.Results, batchSize int) ioexport.Stager {
	return func(dir string) error {
		return Archive(filepath.Join(dir, ioexport.ArchiveFile), res, batchSize)
	}
}
