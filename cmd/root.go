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
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/aladaia/vocan/internal/iofs"
	"github.com/aladaia/vocan/internal/iologger"
	app "github.com/aladaia/vocan/pkg"
	"github.com/aladaia/vocan/pkg/config"
	"github.com/gnames/gn"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	homeDir string
	opts    []config.Option
	cfg     *config.Config
)

// getRootCmd returns the root command with all subcommands attached.
// Every call creates a new instance.
func getRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Version: fmt.Sprintf("version: %s\nbuild:   %s", app.Version, app.Build),
		Use:     "vocan",
		Short:   "Vocan analyzes customer reviews of retail stores",
		Long: `Vocan turns free-text customer reviews of a store chain into
anonymized, tagged and aggregated artifacts.

A run of 'vocan analyze':
  - redacts personal data (names, emails, phones, URLs)
  - classifies sentiment with a French retail lexicon
  - checks sentiment against star ratings and grades the result
  - derives topic tags from the corpus and assigns them to reviews
  - computes statistics per store, per zone and per tag

'vocan ask' answers fixed questions about the last run, 'vocan serve'
offers the same answers and statistics over a read-only HTTP API.

Configuration precedence (highest to lowest):
  1. CLI flags
  2. Environment variables (VOCAN_*)
  3. Config file (~/.config/vocan/config.yaml)
  4. Built-in defaults

Nested fields use underscores (analysis.top_k → VOCAN_ANALYSIS_TOP_K).
See 'go doc github.com/aladaia/vocan/pkg/config' for the complete list.`,
		PersistentPreRunE: bootstrap,
		RunE:              runRoot,
		SilenceErrors:     true,
		SilenceUsage:      true,
	}

	// Remove the automatic "vocan version" prefix
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	// Override version flag to use -V (consistent with other gn projects)
	rootCmd.Flags().BoolP("version", "V", false, "version for vocan")

	rootCmd.AddCommand(getAnalyzeCmd())
	rootCmd.AddCommand(getAskCmd(), getServeCmd())

	return rootCmd
}

func bootstrap(cmd *cobra.Command, args []string) error {
	var err error
	homeDir, err = os.UserHomeDir()
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureDirs(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	// Initialize logging with hardcoded defaults
	// Will be reconfigured later with user's config settings
	defaultLog := config.LogConfig{
		Format:      "json",
		Level:       "info",
		Destination: "file",
	}
	if err = iologger.Init(config.LogDir(homeDir), defaultLog, false); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureConfigFile(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	var cfgViper *config.Config
	if cfgViper, err = initConfig(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	cfg = config.New()
	opts = cfgViper.ToOptions()
	cfg.Update(opts)

	// Set HomeDir after config is loaded
	cfg.Update([]config.Option{config.OptHomeDir(homeDir)})

	// Reconfigure logging with user's settings, keeping lines written so far
	if err = iologger.Init(config.LogDir(cfg.HomeDir), cfg.Log, true); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	slog.Info("Configuration loaded",
		"config_file", config.ConfigFilePath(homeDir),
		"command", cmd.Name(),
	)

	return nil
}

func runRoot(cmd *cobra.Command, args []string) error {
	versionFlag(cmd)
	return cmd.Help()
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := getRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func initConfig(home string) (*config.Config, error) {
	var err error
	cfgPath := config.ConfigFilePath(home)
	v := viper.New()
	v.SetConfigFile(cfgPath)

	initEnvVars(v)

	if err = v.ReadInConfig(); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	var res config.Config
	if err = v.Unmarshal(&res); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	return &res, nil
}

func initEnvVars(v *viper.Viper) {
	// Set environment variables we want.
	// We set them manually so we can see clearly which env variables are allowed.
	// These match the fields included in config.ToOptions() - i.e., persistent
	// configuration that can be stored in config.yaml.
	v.SetEnvPrefix("VOCAN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Input configuration
	v.BindEnv("input.reviews_path", "VOCAN_INPUT_REVIEWS_PATH")
	v.BindEnv("input.stores_path", "VOCAN_INPUT_STORES_PATH")

	// Output configuration
	v.BindEnv("output.dir", "VOCAN_OUTPUT_DIR")
	v.BindEnv("output.archive", "VOCAN_OUTPUT_ARCHIVE")
	v.BindEnv("output.keep_originals", "VOCAN_OUTPUT_KEEP_ORIGINALS")

	// Analysis configuration
	v.BindEnv("analysis.negation_window", "VOCAN_ANALYSIS_NEGATION_WINDOW")
	v.BindEnv("analysis.top_k", "VOCAN_ANALYSIS_TOP_K")
	v.BindEnv("analysis.min_support", "VOCAN_ANALYSIS_MIN_SUPPORT")
	v.BindEnv("analysis.stem_runes", "VOCAN_ANALYSIS_STEM_RUNES")
	v.BindEnv("analysis.max_samples", "VOCAN_ANALYSIS_MAX_SAMPLES")
	v.BindEnv("analysis.rating3_policy", "VOCAN_ANALYSIS_RATING3_POLICY")
	v.BindEnv("analysis.lexicon_path", "VOCAN_ANALYSIS_LEXICON_PATH")

	// Database configuration
	v.BindEnv("database.host", "VOCAN_DATABASE_HOST")
	v.BindEnv("database.port", "VOCAN_DATABASE_PORT")
	v.BindEnv("database.user", "VOCAN_DATABASE_USER")
	v.BindEnv("database.password", "VOCAN_DATABASE_PASSWORD")
	v.BindEnv("database.database", "VOCAN_DATABASE_DATABASE")
	v.BindEnv("database.ssl_mode", "VOCAN_DATABASE_SSL_MODE")
	v.BindEnv("database.batch_size", "VOCAN_DATABASE_BATCH_SIZE")

	// Log configuration
	v.BindEnv("log.level", "VOCAN_LOG_LEVEL")
	v.BindEnv("log.format", "VOCAN_LOG_FORMAT")
	v.BindEnv("log.destination", "VOCAN_LOG_DESTINATION")

	// Serve configuration
	v.BindEnv("serve.port", "VOCAN_SERVE_PORT")
	v.BindEnv("serve.cache_ttl", "VOCAN_SERVE_CACHE_TTL")

	// General configuration
	v.BindEnv("jobs_number", "VOCAN_JOBS_NUMBER")

	v.AutomaticEnv()
}
