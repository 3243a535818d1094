/*
Copyright © 2025 The vocan authors

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"context"
	"os"
	"os/signal"

	"github.com/aladaia/vocan/internal/iodb"
	"github.com/aladaia/vocan/internal/iorun"
	"github.com/aladaia/vocan/pkg/config"
	"github.com/aladaia/vocan/pkg/db"
	"github.com/gnames/gn"
	"github.com/spf13/cobra"
)

// getAnalyzeCmd returns the analyze command.
// Extracted as a function to facilitate testing and dynamic
// command registration.
func getAnalyzeCmd() *cobra.Command {
	var (
		reviewsPath   string
		storesPath    string
		outDir        string
		archive       bool
		publish       bool
		keepOriginals bool
		rating3Policy string
		jobs          int
	)

	analyzeCmd := &cobra.Command{
		Use:   "analyze",
		Short: "Analyze customer reviews and write artifacts",
		Long: `Run the review analysis pipeline.

This command:
  1. Reads reviews (CSV or SQLite) and stores (CSV or YAML)
  2. Skips invalid reviews and logs why
  3. Redacts personal data with consistent pseudonyms
  4. Classifies sentiment and grades it against ratings
  5. Derives topic tags and assigns them to every review
  6. Aggregates statistics per store, zone and tag
  7. Replaces the output directory with the new artifacts

Original personal data is written only with --keep-originals, into
audit/redaction_originals.json readable by the owner only.

Examples:
  # Use paths from config.yaml
  vocan analyze

  # Explicit input and output
  vocan analyze -r data/raw/reviews.csv -s data/raw/stores.csv -o data/analysis

  # Also write an SQLite archive and publish to PostgreSQL
  vocan analyze --archive --publish

  # Count 3-star reviews as agreeing when labeled neutral
  vocan analyze --rating3-policy neutral-agrees`,
		Aliases: []string{"run"},
		RunE: func(cmd *cobra.Command, args []string) error {
			var analyzeOpts []config.Option
			flags := cmd.Flags()
			if flags.Changed("reviews") {
				analyzeOpts = append(analyzeOpts, config.OptInputReviewsPath(reviewsPath))
			}
			if flags.Changed("stores") {
				analyzeOpts = append(analyzeOpts, config.OptInputStoresPath(storesPath))
			}
			if flags.Changed("out") {
				analyzeOpts = append(analyzeOpts, config.OptOutputDir(outDir))
			}
			if flags.Changed("archive") {
				analyzeOpts = append(analyzeOpts, config.OptOutputArchive(archive))
			}
			if flags.Changed("keep-originals") {
				analyzeOpts = append(analyzeOpts, config.OptOutputKeepOriginals(keepOriginals))
			}
			if flags.Changed("rating3-policy") {
				analyzeOpts = append(analyzeOpts, config.OptAnalysisRating3Policy(rating3Policy))
			}
			if flags.Changed("jobs") {
				analyzeOpts = append(analyzeOpts, config.OptJobsNumber(jobs))
			}
			analyzeOpts = append(analyzeOpts, config.OptOutputPublish(publish))
			cfg.Update(analyzeOpts)

			if err := runAnalyze(cmd.Context()); err != nil {
				gn.PrintErrorMessage(err)
				return err
			}
			return nil
		},
	}

	analyzeCmd.Flags().StringVarP(
		&reviewsPath, "reviews", "r", "",
		"reviews file, CSV or SQLite",
	)
	analyzeCmd.Flags().StringVarP(
		&storesPath, "stores", "s", "",
		"stores file, CSV or YAML",
	)
	analyzeCmd.Flags().StringVarP(
		&outDir, "out", "o", "",
		"output directory, replaced on every run",
	)
	analyzeCmd.Flags().BoolVarP(
		&archive, "archive", "a", false,
		"write an SQLite archive of the run",
	)
	analyzeCmd.Flags().BoolVarP(
		&publish, "publish", "p", false,
		"publish results to PostgreSQL",
	)
	analyzeCmd.Flags().BoolVar(
		&keepOriginals, "keep-originals", false,
		"keep original personal data in a restricted audit file",
	)
	analyzeCmd.Flags().StringVar(
		&rating3Policy, "rating3-policy", "",
		"how 3-star reviews are graded: exclude or neutral-agrees",
	)
	analyzeCmd.Flags().IntVarP(
		&jobs, "jobs", "j", 0,
		"number of sentiment workers",
	)

	return analyzeCmd
}

func runAnalyze(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	var op db.Operator
	if cfg.Output.Publish {
		op = iodb.NewPgxOperator()
		if err := op.Connect(ctx, &cfg.Database); err != nil {
			return err
		}
		defer op.Close()

		gn.Info("Connected to database: <em>%s@%s:%d/%s</em>",
			cfg.Database.User, cfg.Database.Host,
			cfg.Database.Port, cfg.Database.Database)
	}

	gn.Info("Analyzing reviews from <em>%s</em>", cfg.Input.ReviewsPath)
	if _, err := iorun.New(cfg, op).Run(ctx); err != nil {
		return err
	}

	gn.Info(`Next steps:
	 - Run '<em>vocan ask "résumé global"</em>' to explore results
	 - Artifacts are in <em>%s</em>
`, cfg.Output.Dir)
	return nil
}
