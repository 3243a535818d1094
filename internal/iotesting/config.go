// Package iotesting provides shared test utilities for I/O packages.
// This is an internal package for test infrastructure only.
package iotesting

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aladaia/vocan/pkg/config"
)

const (
	// TestDatabaseName is the database name used for all integration tests.
	// This ensures tests never accidentally run against production databases.
	TestDatabaseName = "vocan_test"
)

// GetTestConfig returns a configuration suitable for tests. Input paths
// point to sample files written into a temporary directory, output goes
// to the same directory and the database name is TestDatabaseName.
//
// PostgreSQL settings can be changed with VOCAN_TEST_DATABASE_HOST and
// VOCAN_TEST_DATABASE_PORT.
func GetTestConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	reviews, stores := WriteInputs(t, dir)

	cfg := config.New()
	opts := []config.Option{
		config.OptInputReviewsPath(reviews),
		config.OptInputStoresPath(stores),
		config.OptOutputDir(filepath.Join(dir, "analysis")),
		config.OptDatabaseDatabase(TestDatabaseName),
		config.OptJobsNumber(2),
		config.OptAnalysisMinSupport(2),
		config.OptHomeDir(dir),
	}
	if h := os.Getenv("VOCAN_TEST_DATABASE_HOST"); h != "" {
		opts = append(opts, config.OptDatabaseHost(h))
	}
	cfg.Update(opts)
	return cfg
}

// WriteInputs writes SampleReviewsCSV and SampleStoresCSV into dir and
// returns their paths.
func WriteInputs(t *testing.T, dir string) (reviews, stores string) {
	t.Helper()
	reviews = filepath.Join(dir, "reviews.csv")
	stores = filepath.Join(dir, "stores.csv")
	for path, data := range map[string]string{
		reviews: SampleReviewsCSV,
		stores:  SampleStoresCSV,
	} {
		if err := os.WriteFile(path, []byte(data), 0644); err != nil {
			t.Fatalf("Failed to write %s: %v", path, err)
		}
	}
	return reviews, stores
}
