package iorun_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/aladaia/vocan/internal/ioexport"
	"github.com/aladaia/vocan/internal/iorun"
	"github.com/aladaia/vocan/internal/iotesting"
	"github.com/aladaia/vocan/pkg/config"
	"github.com/aladaia/vocan/pkg/errcode"
	"github.com/aladaia/vocan/pkg/quality"
	"github.com/aladaia/vocan/pkg/results"
	"github.com/aladaia/vocan/pkg/sentiment"
	"github.com/aladaia/vocan/pkg/tagging"
	"github.com/gnames/gn"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func review(t *testing.T, res *results.Results, id string) results.Review {
	t.Helper()
	for _, r := range res.Reviews {
		if r.ReviewID == id {
			return r
		}
	}
	t.Fatalf("review %s not found", id)
	return results.Review{}
}

func TestAnalyze(t *testing.T) {
	cfg := iotesting.GetTestConfig(t)
	res, err := iorun.New(cfg, nil).Analyze(context.Background())
	require.NoError(t, err)

	m := res.Manifest
	assert.Equal(t, 11, m.InputReviews)
	assert.Equal(t, 9, m.Reviews)
	assert.Equal(t, 2, m.Skipped, "R10 has no text, R11 a rating of 7")
	assert.Equal(t, 4, m.Stores)
	assert.Equal(t, results.FormatVersion, m.FormatVersion)
	assert.Equal(t, quality.Exclude.String(), m.Policy)
	assert.NotEmpty(t, m.Duration)
	_, err = uuid.Parse(m.RunID)
	assert.NoError(t, err)

	require.Len(t, res.Reviews, 9)
	for _, r := range res.Reviews {
		assert.NotEmpty(t, r.TagIDs, r.ReviewID)
		assert.Equal(t, r.ReviewID, r.Sentiment.ReviewID)
		for _, pii := range iotesting.PII {
			assert.NotContains(t, r.TextAnonymized, pii, r.ReviewID)
		}
	}
	assert.Equal(t, 1.0, res.Plan.Coverage)

	r01 := review(t, res, "R01")
	assert.Contains(t, r01.TextAnonymized, "[PERSONNE_1]")
	assert.Equal(t, sentiment.Positive, r01.Sentiment.Label)
	r06 := review(t, res, "R06")
	r09 := review(t, res, "R09")
	assert.Contains(t, r06.TextAnonymized, "[PERSONNE_2]")
	assert.Contains(t, r09.TextAnonymized, "[PERSONNE_2]")
	assert.Contains(t, review(t, res, "R05").TextAnonymized, "[TELEPHONE]")

	require.Len(t, res.Stats.Stores, 4)
	s4 := res.Stats.Stores[3]
	assert.Equal(t, "S4", s4.StoreID)
	assert.Equal(t, 0, s4.ReviewCount)
	assert.Nil(t, s4.MeanRating)
	assert.NotEqual(t, "S4", res.Stats.Summary.Worst.StoreID)
	assert.Equal(t, 9, res.Stats.Summary.ReviewCount)

	assert.Equal(t, 9, res.Quality.Total)
	assert.NotEqual(t, quality.InsufficientData, res.Quality.Grade)
}

func TestAnalyze_Deterministic(t *testing.T) {
	cfg := iotesting.GetTestConfig(t)
	cfg.Update([]config.Option{config.OptJobsNumber(1)})
	res1, err := iorun.New(cfg, nil).Analyze(context.Background())
	require.NoError(t, err)

	cfg.Update([]config.Option{config.OptJobsNumber(8)})
	res2, err := iorun.New(cfg, nil).Analyze(context.Background())
	require.NoError(t, err)

	assert.Equal(t, res1.Reviews, res2.Reviews)
	assert.Equal(t, res1.Plan, res2.Plan)
	assert.Equal(t, res1.Stats, res2.Stats)
	assert.Equal(t, res1.Quality, res2.Quality)
	assert.NotEqual(t, res1.Manifest.RunID, res2.Manifest.RunID)
}

func TestAnalyze_Lexicon(t *testing.T) {
	cfg := iotesting.GetTestConfig(t)
	path := filepath.Join(cfg.HomeDir, "lexicon.yaml")
	lex := "positive: [attente, caisse]\nnegative: [vélo]\n"
	require.NoError(t, os.WriteFile(path, []byte(lex), 0644))
	cfg.Update([]config.Option{config.OptAnalysisLexiconPath(path)})

	res, err := iorun.New(cfg, nil).Analyze(context.Background())
	require.NoError(t, err)
	assert.Equal(t, sentiment.Positive, review(t, res, "R04").Sentiment.Label)

	for _, tg := range res.Plan.Tags {
		assert.NotEqual(t, "attente", tg.Label,
			"lexicon terms never become tags")
	}
}

func TestAnalyze_Errors(t *testing.T) {
	tests := []struct {
		msg  string
		opt  func(dir string) config.Option
		code gn.ErrorCode
	}{
		{
			msg: "missing reviews",
			opt: func(dir string) config.Option {
				return config.OptInputReviewsPath(filepath.Join(dir, "none.csv"))
			},
			code: errcode.ReadFileError,
		},
		{
			msg: "unsupported reviews format",
			opt: func(dir string) config.Option {
				return config.OptInputReviewsPath(filepath.Join(dir, "reviews.json"))
			},
			code: errcode.InputFormatError,
		},
		{
			msg: "missing lexicon",
			opt: func(dir string) config.Option {
				return config.OptAnalysisLexiconPath(filepath.Join(dir, "none.yaml"))
			},
			code: errcode.ReadFileError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			cfg := iotesting.GetTestConfig(t)
			cfg.Update([]config.Option{tt.opt(cfg.HomeDir)})
			_, err := iorun.New(cfg, nil).Analyze(context.Background())
			require.Error(t, err)
			gnErr, ok := err.(*gn.Error)
			require.True(t, ok)
			assert.Equal(t, tt.code, gnErr.Code)
		})
	}
}

func TestAnalyze_Cancelled(t *testing.T) {
	cfg := iotesting.GetTestConfig(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := iorun.New(cfg, nil).Run(ctx)
	require.Error(t, err)
	assert.Equal(t, errcode.RunCancelledError, err.(*gn.Error).Code)
	assert.NoDirExists(t, cfg.Output.Dir)
}

func TestRun(t *testing.T) {
	cfg := iotesting.GetTestConfig(t)
	res, err := iorun.New(cfg, nil).Run(context.Background())
	require.NoError(t, err)

	for _, f := range []string{
		ioexport.ManifestFile, ioexport.AnonymizedFile, ioexport.TaggedFile,
		ioexport.AuditFile, ioexport.QualityFile, ioexport.PlanFile,
		ioexport.StoreStatsFile, ioexport.ZoneStatsFile,
		ioexport.SummaryFile, ioexport.TagStatsFile,
	} {
		assert.FileExists(t, filepath.Join(cfg.Output.Dir, f))
	}
	assert.NoFileExists(t, filepath.Join(cfg.Output.Dir, ioexport.OriginalsFile))
	assert.NoFileExists(t, filepath.Join(cfg.Output.Dir, ioexport.ArchiveFile))

	m, err := ioexport.LoadManifest(cfg.Output.Dir)
	require.NoError(t, err)
	assert.Equal(t, res.Manifest, m)

	tagged, err := os.ReadFile(filepath.Join(cfg.Output.Dir, ioexport.TaggedFile))
	require.NoError(t, err)
	assert.Contains(t, string(tagged), tagging.FallbackLabel)
}

func TestRun_Archive(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping SQLite test in short mode")
	}

	cfg := iotesting.GetTestConfig(t)
	cfg.Update([]config.Option{
		config.OptOutputArchive(true),
		config.OptOutputKeepOriginals(true),
	})
	_, err := iorun.New(cfg, nil).Run(context.Background())
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(cfg.Output.Dir, ioexport.ArchiveFile))
	info, err := os.Stat(filepath.Join(cfg.Output.Dir, ioexport.OriginalsFile))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestRun_PublishWithoutOperator(t *testing.T) {
	cfg := iotesting.GetTestConfig(t)
	cfg.Update([]config.Option{config.OptOutputPublish(true)})

	_, err := iorun.New(cfg, nil).Run(context.Background())
	require.Error(t, err)
	assert.Equal(t, errcode.DBNotConnectedError, err.(*gn.Error).Code)
}

func TestRun_KeepsPreviousArtifacts(t *testing.T) {
	cfg := iotesting.GetTestConfig(t)
	first, err := iorun.New(cfg, nil).Run(context.Background())
	require.NoError(t, err)

	bad := filepath.Join(cfg.HomeDir, "bad.csv")
	data := "review_id,store_id,text,rating\nR1,S9,Bonjour,5\n"
	require.NoError(t, os.WriteFile(bad, []byte(data), 0644))
	cfg.Update([]config.Option{config.OptInputReviewsPath(bad)})

	_, err = iorun.New(cfg, nil).Run(context.Background())
	require.Error(t, err)
	assert.Equal(t, errcode.DataUnknownStoreError, err.(*gn.Error).Code)

	m, err := ioexport.LoadManifest(cfg.Output.Dir)
	require.NoError(t, err)
	assert.Equal(t, first.Manifest.RunID, m.RunID)
}

func TestRun_OutputHoldsInputs(t *testing.T) {
	cfg := iotesting.GetTestConfig(t)
	cfg.Update([]config.Option{config.OptOutputDir(cfg.HomeDir)})

	_, err := iorun.New(cfg, nil).Run(context.Background())
	require.Error(t, err)
	assert.Equal(t, errcode.ExportOutputDirError, err.(*gn.Error).Code)
	assert.FileExists(t, cfg.Input.ReviewsPath)
	assert.FileExists(t, cfg.Input.StoresPath)
}
