// Package iorun runs the analysis pipeline: it reads input tables,
// redacts, classifies, audits, tags and aggregates reviews, and writes
// the artifacts of the run. This is an impure I/O package that
// implements lifecycle.Pipeline.
package iorun

import (
	"context"
	"log/slog"
	"time"

	"github.com/aladaia/vocan/internal/iodb"
	"github.com/aladaia/vocan/internal/ioexport"
	app "github.com/aladaia/vocan/pkg"
	"github.com/aladaia/vocan/pkg/config"
	"github.com/aladaia/vocan/pkg/db"
	"github.com/aladaia/vocan/pkg/lifecycle"
	"github.com/aladaia/vocan/pkg/results"
	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/google/uuid"
)

type runner struct {
	cfg *config.Config
	// op is used only when results are published.
	op db.Operator
}

// New creates a pipeline for cfg. The operator must be connected when
// cfg.Output.Publish is true, otherwise it may be nil.
func New(cfg *config.Config, op db.Operator) lifecycle.Pipeline {
	return &runner{cfg: cfg, op: op}
}

// Analyze reads the input tables and computes the results of a run
// without writing anything.
func (r *runner) Analyze(ctx context.Context) (*results.Results, error) {
	start := time.Now()
	slog.Info("Starting analysis",
		"reviews", r.cfg.Input.ReviewsPath,
		"stores", r.cfg.Input.StoresPath,
	)

	in, err := r.load()
	if err != nil {
		return nil, err
	}

	res := &results.Results{
		Manifest: results.Manifest{
			RunID:         uuid.NewString(),
			Version:       app.Version,
			FormatVersion: results.FormatVersion,
			CreatedAt:     start.UTC().Format(time.RFC3339),
			ReviewsPath:   r.cfg.Input.ReviewsPath,
			StoresPath:    r.cfg.Input.StoresPath,
			InputReviews:  in.total,
			Reviews:       len(in.corpus.Reviews),
			Skipped:       in.skipped,
			Stores:        len(in.corpus.Stores),
		},
		Stores: in.corpus.Stores,
	}

	if err = r.redact(ctx, in.corpus, res); err != nil {
		return nil, err
	}

	cl, err := r.classifier()
	if err != nil {
		return nil, err
	}
	if err = r.classify(ctx, cl, res); err != nil {
		return nil, err
	}

	if err = r.audit(res); err != nil {
		return nil, err
	}
	if err = r.tag(cl, res); err != nil {
		return nil, err
	}
	if err = r.aggregate(res); err != nil {
		return nil, err
	}

	res.Manifest.Duration = gnfmt.TimeString(time.Since(start).Seconds())
	slog.Info("Analysis complete",
		"run_id", res.Manifest.RunID,
		"reviews", res.Manifest.Reviews,
		"skipped", res.Manifest.Skipped,
		"grade", res.Quality.Grade.String(),
		"tags", len(res.Plan.Tags),
		"duration", res.Manifest.Duration,
	)
	return res, nil
}

// Run analyzes the input, writes artifacts into the output directory and,
// depending on configuration, archives and publishes the results.
func (r *runner) Run(ctx context.Context) (*results.Results, error) {
	start := time.Now()
	res, err := r.Analyze(ctx)
	if err != nil {
		return nil, err
	}

	if err = ctx.Err(); err != nil {
		return nil, CancelledError(err)
	}

	var stagers []ioexport.Stager
	if r.cfg.Output.Archive {
		stagers = append(stagers, iodb.ArchiveStager(res, r.cfg.Database.BatchSize))
	}
	exp := ioexport.New(r.cfg.Output.Dir, r.cfg.Output.KeepOriginals).
		Protect(r.cfg.Input.ReviewsPath, r.cfg.Input.StoresPath, r.cfg.Analysis.LexiconPath)
	if err = exp.Write(res, stagers...); err != nil {
		return nil, err
	}

	if r.cfg.Output.Publish {
		if r.op == nil {
			return nil, NoOperatorError()
		}
		err = iodb.Publish(ctx, r.op, res, r.cfg.Database.BatchSize)
		if err != nil {
			return nil, err
		}
	}

	r.report(res, exp.Dir(), time.Since(start))
	return res, nil
}

func (r *runner) report(res *results.Results, dir string, dur time.Duration) {
	m := res.Manifest
	gn.Info(`Analysis complete
Reviews: <em>%s</em> analyzed, %s skipped, %s stores.
Sentiment quality: <em>%s</em>, tags: %d.
Artifacts: <em>%s</em>
Elapsed time: <em>%s</em>
`,
		humanize.Comma(int64(m.Reviews)),
		humanize.Comma(int64(m.Skipped)),
		humanize.Comma(int64(m.Stores)),
		res.Quality.Grade,
		len(res.Plan.Tags),
		dir,
		gnfmt.TimeString(dur.Seconds()),
	)
}
