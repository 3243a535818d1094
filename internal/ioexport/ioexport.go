// Package ioexport writes the artifacts of a run and reads them back.
//
// All artifacts are written into a staging directory next to the output
// directory, which then replaces the output directory with a rename.
// Readers never see a half-written run. Only an empty directory or one
// holding a previous run (it has a manifest) is ever replaced.
package ioexport

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/aladaia/vocan/pkg/results"
	"github.com/gnames/gnfmt"
)

// Artifact file names.
const (
	ManifestFile   = "manifest.json"
	AnonymizedFile = "reviews_anonymized.csv"
	TaggedFile     = "reviews_tagged.csv"
	AuditFile      = "redaction_audit.json"
	OriginalsFile  = "audit/redaction_originals.json"
	QualityFile    = "quality_report.json"
	PlanFile       = "tagging_plan.json"
	StoreStatsFile = "store_stats.json"
	ZoneStatsFile  = "zone_stats.json"
	SummaryFile    = "summary.json"
	TagStatsFile   = "tag_stats.json"
	ArchiveFile    = "vocan.sqlite"
)

// Exporter writes run artifacts to a directory.
type Exporter struct {
	dir           string
	keepOriginals bool
	protected     []string
	enc           gnfmt.GNjson
}

// Stager writes additional files into the staging directory of a run.
type Stager func(dir string) error

// New creates an Exporter for the output directory dir. When keepOriginals
// is true, original PII spans are written to a file readable only by its
// owner.
func New(dir string, keepOriginals bool) *Exporter {
	return &Exporter{
		dir:           filepath.Clean(dir),
		keepOriginals: keepOriginals,
		enc:           gnfmt.GNjson{Pretty: true},
	}
}

// Protect registers files that must never be inside the output
// directory, usually the input tables.
func (e *Exporter) Protect(paths ...string) *Exporter {
	for _, p := range paths {
		if p != "" {
			e.protected = append(e.protected, p)
		}
	}
	return e
}

// Dir returns the output directory.
func (e *Exporter) Dir() string {
	return e.dir
}

// Write stages all artifacts of res, runs extra stagers and replaces the
// output directory with the result.
func (e *Exporter) Write(res *results.Results, extra ...Stager) error {
	if err := e.check(); err != nil {
		return err
	}

	parent := filepath.Dir(e.dir)
	if err := os.MkdirAll(parent, 0755); err != nil {
		return StageError(parent, err)
	}

	stage, err := os.MkdirTemp(parent, ".vocan-stage-")
	if err != nil {
		return StageError(parent, err)
	}
	if err = os.Chmod(stage, 0755); err != nil {
		os.RemoveAll(stage)
		return StageError(stage, err)
	}

	if err = e.stage(stage, res); err != nil {
		os.RemoveAll(stage)
		return err
	}
	for _, fn := range extra {
		if err = fn(stage); err != nil {
			os.RemoveAll(stage)
			return err
		}
	}

	if err = commit(stage, e.dir); err != nil {
		os.RemoveAll(stage)
		return err
	}

	slog.Info("Artifacts written", "dir", e.dir, "run_id", res.Manifest.RunID)
	return nil
}

// check refuses output directories whose replacement would lose data
// that vocan did not write.
func (e *Exporter) check() error {
	abs, err := filepath.Abs(e.dir)
	if err != nil {
		return StageError(e.dir, err)
	}
	for _, p := range e.protected {
		pa, err := filepath.Abs(p)
		if err != nil {
			return StageError(p, err)
		}
		if pa == abs || strings.HasPrefix(pa, abs+string(filepath.Separator)) {
			return ProtectedPathError(e.dir, p)
		}
	}

	entries, err := os.ReadDir(e.dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return StageError(e.dir, err)
	}
	if len(entries) == 0 {
		return nil
	}
	if _, err = os.Stat(filepath.Join(e.dir, ManifestFile)); err != nil {
		return ForeignDirError(e.dir)
	}
	return nil
}

func (e *Exporter) stage(dir string, res *results.Results) error {
	jsons := []struct {
		name string
		obj  any
	}{
		{ManifestFile, res.Manifest},
		{AuditFile, res.Audit},
		{QualityFile, res.Quality},
		{PlanFile, res.Plan},
		{StoreStatsFile, res.Stats.Stores},
		{ZoneStatsFile, res.Stats.Zones},
		{SummaryFile, res.Stats.Summary},
		{TagStatsFile, res.Stats.Tags},
	}
	for _, v := range jsons {
		if err := e.writeJSON(filepath.Join(dir, v.name), v.obj, 0644); err != nil {
			return err
		}
	}

	if err := writeAnonymized(filepath.Join(dir, AnonymizedFile), res.Reviews); err != nil {
		return err
	}
	if err := writeTagged(filepath.Join(dir, TaggedFile), res.Reviews); err != nil {
		return err
	}

	if e.keepOriginals && res.Audit != nil {
		path := filepath.Join(dir, OriginalsFile)
		if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
			return StageError(path, err)
		}
		if err := e.writeJSON(path, res.Audit.Originals(), 0600); err != nil {
			return err
		}
		slog.Warn("Original PII spans written", "path", filepath.Join(e.dir, OriginalsFile))
	}
	return nil
}

func (e *Exporter) writeJSON(path string, obj any, perm os.FileMode) error {
	data, err := e.enc.Encode(obj)
	if err != nil {
		return StageError(path, err)
	}
	data = append(data, '\n')
	if err = os.WriteFile(path, data, perm); err != nil {
		return StageError(path, err)
	}
	// WriteFile perm is subject to umask
	if err = os.Chmod(path, perm); err != nil {
		return StageError(path, err)
	}
	return nil
}

// commit moves the staged directory into place. An existing output
// directory is moved aside first and removed only after the new one is in
// place; on failure it is restored.
func commit(stage, dir string) error {
	var old string
	if _, err := os.Stat(dir); err == nil {
		old = fmt.Sprintf("%s.old-%d", dir, os.Getpid())
		if err = os.RemoveAll(old); err != nil {
			return CommitError(dir, err)
		}
		if err = os.Rename(dir, old); err != nil {
			return CommitError(dir, err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return CommitError(dir, err)
	}

	if err := os.Rename(stage, dir); err != nil {
		if old != "" {
			os.Rename(old, dir)
		}
		return CommitError(dir, err)
	}

	if old != "" {
		if err := os.RemoveAll(old); err != nil {
			slog.Warn("Cannot remove previous artifacts", "dir", old, "error", err)
		}
	}
	return nil
}
