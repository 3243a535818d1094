package ioexport

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/aladaia/vocan/pkg/query"
	"github.com/aladaia/vocan/pkg/results"
	"github.com/gnames/gnfmt"
	"github.com/gnames/gnlib"
)

// LoadManifest reads the manifest of a run and checks its format version.
func LoadManifest(dir string) (results.Manifest, error) {
	var res results.Manifest
	path := filepath.Join(dir, ManifestFile)
	if err := loadJSON(path, &res); err != nil {
		return res, err
	}
	if !gnlib.IsVersion(res.FormatVersion) ||
		gnlib.CmpVersion(res.FormatVersion, results.MinFormatVersion) < 0 {
		return res, VersionError(path, res.FormatVersion, results.MinFormatVersion)
	}
	return res, nil
}

// LoadBundle reads the artifacts the query engine needs from an output
// directory.
func LoadBundle(dir string) (*query.Bundle, results.Manifest, error) {
	man, err := LoadManifest(dir)
	if err != nil {
		return nil, man, err
	}

	var b query.Bundle
	parts := []struct {
		name string
		obj  any
	}{
		{SummaryFile, &b.Summary},
		{StoreStatsFile, &b.Stores},
		{ZoneStatsFile, &b.Zones},
		{TagStatsFile, &b.Tags},
		{QualityFile, &b.Quality},
		{PlanFile, &b.Plan},
	}
	for _, p := range parts {
		if err = loadJSON(filepath.Join(dir, p.name), p.obj); err != nil {
			return nil, man, err
		}
	}
	return &b, man, nil
}

func loadJSON(path string, obj any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return LoadError(path, err)
	}
	enc := gnfmt.GNjson{}
	if err = enc.Decode(data, obj); err != nil {
		return LoadError(path, fmt.Errorf("decode: %w", err))
	}
	return nil
}
