// Package config provides configuration management for vocan.
//
// This package has no I/O dependencies (no file operations, no network calls).
// Validation functions may write user-facing warnings via gn.Warn().
//
// # Configuration Sources
//
// Precedence (highest to lowest): CLI flags > env vars > config.yaml > defaults
//
// # Design Principles
//
// - Default config (from New()) is always valid - no validation needed
// - All mutations go through Option functions - the only way to modify Config
// - Invalid options are rejected with gn.Warn() - config remains in valid state
// - ToOptions() converts persistent fields (those in config.yaml)
// - Environment variables match ToOptions() fields exactly
//
// # Persistent vs Runtime Fields
//
// Persistent fields (in ToOptions, config.yaml, and env vars):
//   - Input: reviews_path, stores_path
//   - Output: dir, archive, keep_originals
//   - Analysis: negation_window, top_k, min_support, stem_runes,
//     max_samples, rating3_policy, lexicon_path
//   - Database: host, port, user, password, database, ssl_mode, batch_size
//   - Log: level, format, destination
//   - Serve: port, cache_ttl
//   - General: jobs_number
//
// Runtime-only fields (CLI flags only):
//   - Output.Publish (per-command)
//   - HomeDir (set once at startup)
//
// # Environment Variables
//
// Use VOCAN_ prefix with underscores for nesting:
//
//	VOCAN_INPUT_REVIEWS_PATH=data/raw/reviews.csv
//	VOCAN_ANALYSIS_TOP_K=16
//	VOCAN_LOG_LEVEL=info
//	VOCAN_JOBS_NUMBER=8
package config

import (
	"runtime"
)

// Rating3 policies for the quality auditor.
const (
	// Rating3Exclude removes 3-star reviews from the agreement denominator.
	Rating3Exclude = "exclude"
	// Rating3NeutralAgrees keeps 3-star reviews in the denominator,
	// counting them as agreeing only when classified Neutral.
	Rating3NeutralAgrees = "neutral-agrees"
)

// Config represents the complete vocan configuration.
type Config struct {
	// Input points to the review and store tables.
	Input InputConfig `mapstructure:"input" yaml:"input"`

	// Output determines where and how run artifacts are written.
	Output OutputConfig `mapstructure:"output" yaml:"output"`

	// Analysis holds the tunables of the classifier, tagger and auditor.
	Analysis AnalysisConfig `mapstructure:"analysis" yaml:"analysis"`

	// Database contains PostgreSQL connection settings used by publish.
	Database DatabaseConfig `mapstructure:"database" yaml:"database"`

	Log LogConfig `mapstructure:"log" yaml:"log"`

	// Serve configures the read-only HTTP API over run artifacts.
	Serve ServeConfig `mapstructure:"serve" yaml:"serve"`

	// JobsNumber is the number of concurrent workers for sentiment
	// classification. Default value is the number of available threads.
	JobsNumber int `mapstructure:"jobs_number" yaml:"jobs_number"`

	// HomeDir determines where config, cache and logs directories reside.
	// It must be set by CLI during init, there is no default value for it.
	HomeDir string
}

// InputConfig locates the input tables.
type InputConfig struct {
	// ReviewsPath is a CSV file (review_id,store_id,text,rating,date) or
	// an SQLite database with a reviews table.
	ReviewsPath string `mapstructure:"reviews_path" yaml:"reviews_path"`

	// StoresPath is a CSV or YAML file with store metadata.
	StoresPath string `mapstructure:"stores_path" yaml:"stores_path"`
}

// OutputConfig describes artifact destinations.
type OutputConfig struct {
	// Dir receives all artifacts of a run. Previous artifacts are replaced.
	Dir string `mapstructure:"dir" yaml:"dir"`

	// Archive writes an SQLite copy of the run next to the artifacts.
	Archive bool `mapstructure:"archive" yaml:"archive"`

	// KeepOriginals writes original PII spans into an access-restricted
	// audit file. They never appear in other artifacts.
	KeepOriginals bool `mapstructure:"keep_originals" yaml:"keep_originals"`

	// Publish copies results to PostgreSQL. Runtime-only.
	Publish bool `mapstructure:"-" yaml:"-"`
}

// AnalysisConfig contains tunables of the analysis pipeline.
type AnalysisConfig struct {
	// NegationWindow is how many tokens before a polarity term are searched
	// for a negator.
	NegationWindow int `mapstructure:"negation_window" yaml:"negation_window"`

	// TopK is the maximum number of derived tags.
	TopK int `mapstructure:"top_k" yaml:"top_k"`

	// MinSupport is the minimal number of reviews a candidate term must
	// appear in to become a tag.
	MinSupport int `mapstructure:"min_support" yaml:"min_support"`

	// StemRunes is the prefix length used to cluster near-synonyms.
	StemRunes int `mapstructure:"stem_runes" yaml:"stem_runes"`

	// MaxSamples is the number of sample reviews stored per tag.
	MaxSamples int `mapstructure:"max_samples" yaml:"max_samples"`

	// Rating3Policy is either "exclude" or "neutral-agrees".
	Rating3Policy string `mapstructure:"rating3_policy" yaml:"rating3_policy"`

	// LexiconPath optionally replaces the built-in sentiment lexicon
	// with a YAML file.
	LexiconPath string `mapstructure:"lexicon_path" yaml:"lexicon_path"`
}

// DatabaseConfig contains PostgreSQL connection parameters.
type DatabaseConfig struct {
	// Host is the PostgreSQL server hostname or IP address.
	Host string `mapstructure:"host" yaml:"host"`

	// Port is the PostgreSQL server port number.
	Port int `mapstructure:"port" yaml:"port"`

	// User is the PostgreSQL database username.
	User string `mapstructure:"user" yaml:"user"`

	// Password is the PostgreSQL database password.
	Password string `mapstructure:"password" yaml:"password"`

	// Database is the PostgreSQL database name to connect to.
	Database string `mapstructure:"database" yaml:"database"`

	// SSLMode specifies the SSL connection mode.
	// Valid values: "disable", "require", "verify-ca", "verify-full"
	SSLMode string `mapstructure:"ssl_mode" yaml:"ssl_mode"`

	// BatchSize is the number of rows per insert batch.
	BatchSize int `mapstructure:"batch_size" yaml:"batch_size"`
}

// LogConfig provides typical settings for application logs.
type LogConfig struct {
	// Format can be 'json', 'text' or 'tint' (user-facing and colored).
	Format string `mapstructure:"format"      yaml:"format"`
	// Level of logging -- 'error', 'warn', 'info', 'debug'
	Level string `mapstructure:"level"       yaml:"level"`
	// Destination can be a log file (to default place), STDERR or STDOUT
	Destination string `mapstructure:"destination" yaml:"destination"`
}

// ServeConfig contains settings of the HTTP API.
type ServeConfig struct {
	// Port is the TCP port the API listens on.
	Port int `mapstructure:"port" yaml:"port"`

	// CacheTTL is how long, in seconds, answers to identical questions
	// are kept in memory.
	CacheTTL int `mapstructure:"cache_ttl" yaml:"cache_ttl"`
}

// New creates a Config with sensible default values.
// The returned config is always valid and ready to use.
// Default values can be overridden using Option functions via Update().
func New() *Config {
	res := &Config{
		Input: InputConfig{
			ReviewsPath: "data/raw/reviews_raw.csv",
			StoresPath:  "data/raw/stores.csv",
		},
		Output: OutputConfig{
			Dir: "data/analysis",
		},
		Analysis: AnalysisConfig{
			NegationWindow: 3,
			TopK:           16,
			MinSupport:     3,
			StemRunes:      5,
			MaxSamples:     4,
			Rating3Policy:  Rating3Exclude,
		},
		Database: DatabaseConfig{
			Host:      "localhost",
			Port:      5432,
			User:      "postgres",
			Password:  "postgres",
			Database:  "vocan",
			SSLMode:   "disable",
			BatchSize: 1_000,
		},
		Log: LogConfig{
			Format: "json",
			Level:  "info",
			// for now file is rewritten every time the log starts
			Destination: "file",
		},
		Serve: ServeConfig{
			Port:     8765,
			CacheTTL: 300,
		},
		JobsNumber: runtime.NumCPU(),
	}

	return res
}
