package iorun

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"github.com/aladaia/vocan/internal/iofs"
	"github.com/aladaia/vocan/internal/iosource"
	"github.com/aladaia/vocan/pkg/aggregate"
	"github.com/aladaia/vocan/pkg/corpus"
	"github.com/aladaia/vocan/pkg/errcode"
	"github.com/aladaia/vocan/pkg/quality"
	"github.com/aladaia/vocan/pkg/redact"
	"github.com/aladaia/vocan/pkg/results"
	"github.com/aladaia/vocan/pkg/sentiment"
	"github.com/aladaia/vocan/pkg/tagging"
	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"golang.org/x/sync/errgroup"
)

type input struct {
	corpus  *corpus.Corpus
	total   int
	skipped int
}

func (r *runner) load() (input, error) {
	var res input
	stores, err := iosource.LoadStores(r.cfg.Input.StoresPath)
	if err != nil {
		return res, err
	}
	reviews, err := iosource.LoadReviews(r.cfg.Input.ReviewsPath)
	if err != nil {
		return res, err
	}

	c, skipped, err := corpus.New(stores, reviews)
	if err != nil {
		return res, err
	}
	res = input{corpus: c, total: len(reviews), skipped: len(skipped)}

	slog.Info("Input loaded",
		"stores", len(c.Stores),
		"reviews", len(c.Reviews),
		"skipped", len(skipped),
	)
	if len(skipped) > 0 {
		gn.Warn("Skipped <em>%s</em> invalid reviews, see the log for details",
			humanize.Comma(int64(len(skipped))))
	}
	if len(c.Reviews) == 0 {
		gn.Warn("No valid reviews in <em>%s</em>", r.cfg.Input.ReviewsPath)
	}
	return res, nil
}

// redact anonymizes reviews one by one in corpus order, so person
// numbers depend only on the input.
func (r *runner) redact(
	ctx context.Context,
	c *corpus.Corpus,
	res *results.Results,
) error {
	rd := redact.New(redact.NewRegistry())
	res.Audit = redact.NewAudit()
	res.Reviews = make([]results.Review, len(c.Reviews))

	bar := newProgressBar(len(c.Reviews), "Redacting reviews: ")
	defer bar.Finish()

	for i, rev := range c.Reviews {
		if err := ctx.Err(); err != nil {
			return CancelledError(err)
		}
		text, events := rd.Redact(rev.ReviewID, rev.TextRaw)
		notes := redact.Residuals(rev.ReviewID, text)
		for _, n := range notes {
			slog.Warn("Possible PII left in review",
				"review_id", n.ReviewID,
				"kind", n.Kind,
			)
		}
		res.Audit.Add(events, notes)
		if err := c.SetAnonymized(i, text); err != nil {
			return err
		}
		res.Reviews[i].Review = c.Reviews[i]
		bar.Increment()
	}
	res.Audit.Finish(rd.Registry())

	slog.Info("Reviews redacted",
		"persons", rd.Registry().Len(),
		"events", len(res.Audit.Events),
	)
	return nil
}

// classifier builds the sentiment classifier, with a custom lexicon when
// one is configured.
func (r *runner) classifier() (*sentiment.Classifier, error) {
	var lex *sentiment.Lexicon
	if path := r.cfg.Analysis.LexiconPath; path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, iofs.ReadFileError(path, err)
		}
		defer f.Close()
		if lex, err = sentiment.LoadLexicon(f); err != nil {
			return nil, err
		}
		pos, neg := lex.Size()
		slog.Info("Custom lexicon loaded", "path", path,
			"positive", pos, "negative", neg)
	}
	return sentiment.NewClassifier(lex, r.cfg.Analysis.NegationWindow), nil
}

// classify labels reviews with JobsNumber workers. Each worker writes
// only its own indices, so the outcome matches a sequential run.
func (r *runner) classify(
	ctx context.Context,
	cl *sentiment.Classifier,
	res *results.Results,
) error {
	chIn := make(chan int)
	g, gctx := errgroup.WithContext(ctx)

	bar := newProgressBar(len(res.Reviews), "Classifying sentiment: ")
	defer bar.Finish()

	jobs := max(r.cfg.JobsNumber, 1)
	for range jobs {
		g.Go(func() error {
			for i := range chIn {
				rev := &res.Reviews[i]
				rev.Sentiment = cl.Classify(rev.ReviewID, rev.TextAnonymized)
				bar.Increment()
			}
			return nil
		})
	}

	g.Go(func() error {
		defer close(chIn)
		for i := range res.Reviews {
			select {
			case <-gctx.Done():
				return gctx.Err()
			case chIn <- i:
			}
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return CancelledError(err)
	}
	return nil
}

func (r *runner) audit(res *results.Results) error {
	policy, ok := quality.ParsePolicy(r.cfg.Analysis.Rating3Policy)
	if !ok {
		slog.Warn("Unknown rating3 policy, using default",
			"policy", r.cfg.Analysis.Rating3Policy,
			"default", policy.String(),
		)
	}
	res.Manifest.Policy = policy.String()

	var err error
	res.Quality, err = quality.Audit(res.Observations(), policy)
	if err != nil {
		if !hasCode(err, errcode.QualityInsufficientDataError) {
			return err
		}
		slog.Warn("Sentiment quality cannot be graded", "error", err)
		gn.Warn("Not enough rated reviews to grade sentiment quality")
	}

	rate := -1.0
	if res.Quality.AgreementRate != nil {
		rate = *res.Quality.AgreementRate
	}
	slog.Info("Sentiment audited",
		"grade", res.Quality.Grade.String(),
		"agreement_rate", rate,
		"lexicon_coverage", res.Quality.LexiconCoverage,
	)
	return nil
}

func (r *runner) tag(cl *sentiment.Classifier, res *results.Results) error {
	a := r.cfg.Analysis
	d := tagging.New(
		tagging.OptTopK(a.TopK),
		tagging.OptMinSupport(a.MinSupport),
		tagging.OptStemRunes(a.StemRunes),
		tagging.OptMaxSamples(a.MaxSamples),
		tagging.OptExclude(cl.Lexicon().IsTerm),
	)

	plan, assigns, err := d.Derive(res.Docs())
	if err != nil {
		if !hasCode(err, errcode.TagZeroCoverageWarning) {
			return err
		}
		slog.Warn("Some reviews have no tag", "error", err)
	}
	res.Plan = plan
	res.SetTags(assigns)

	slog.Info("Tags derived",
		"tags", len(plan.Tags),
		"candidates", plan.Candidates,
		"derived_coverage", plan.DerivedCoverage,
	)
	return nil
}

func (r *runner) aggregate(res *results.Results) error {
	var err error
	res.Stats, err = aggregate.Aggregate(res.Stores, res.Records(), 0)
	if err != nil {
		return err
	}
	slog.Info("Statistics aggregated",
		"stores", len(res.Stats.Stores),
		"zones", len(res.Stats.Zones),
	)
	return nil
}

func hasCode(err error, code gn.ErrorCode) bool {
	var gnErr *gn.Error
	return errors.As(err, &gnErr) && gnErr.Code == code
}
