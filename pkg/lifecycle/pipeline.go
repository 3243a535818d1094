// Package lifecycle defines the stages a vocan run goes through.
package lifecycle

import (
	"context"

	"github.com/aladaia/vocan/pkg/results"
)

// Pipeline turns input tables into the results and artifacts of one run.
// Every run fully replaces the artifacts of the previous one.
type Pipeline interface {
	// Analyze reads the input tables and computes results. Nothing is
	// written.
	Analyze(ctx context.Context) (*results.Results, error)

	// Run analyzes the input and writes the artifacts. Depending on
	// configuration it also writes the SQLite archive and publishes
	// results to PostgreSQL.
	Run(ctx context.Context) (*results.Results, error)
}
