package config

import (
	"strings"

	"github.com/gnames/gn"
)

// Option is a function that modifies a Config.
// Options validate inputs and reject invalid values with warnings.
type Option func(*Config)

// OptInputReviewsPath sets the path to the reviews table.
func OptInputReviewsPath(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Reviews Path", s) {
			c.Input.ReviewsPath = s
		}
	}
}

// OptInputStoresPath sets the path to the store metadata table.
func OptInputStoresPath(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Stores Path", s) {
			c.Input.StoresPath = s
		}
	}
}

// OptOutputDir sets the directory for run artifacts.
func OptOutputDir(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Output Dir", s) {
			c.Output.Dir = s
		}
	}
}

// OptOutputArchive toggles the SQLite archive of a run.
func OptOutputArchive(b bool) Option {
	return func(c *Config) {
		c.Output.Archive = b
	}
}

// OptOutputKeepOriginals toggles the restricted audit file with
// original PII spans.
func OptOutputKeepOriginals(b bool) Option {
	return func(c *Config) {
		c.Output.KeepOriginals = b
	}
}

// OptOutputPublish toggles publishing results to PostgreSQL.
// Runtime-only field - not in ToOptions().
func OptOutputPublish(b bool) Option {
	return func(c *Config) {
		c.Output.Publish = b
	}
}

// OptAnalysisNegationWindow sets how many preceding tokens are scanned
// for negators.
func OptAnalysisNegationWindow(i int) Option {
	return func(c *Config) {
		if isValidInt("Negation Window", i) {
			c.Analysis.NegationWindow = i
		}
	}
}

// OptAnalysisTopK sets the maximum number of derived tags.
func OptAnalysisTopK(i int) Option {
	return func(c *Config) {
		if isValidInt("Top K", i) {
			c.Analysis.TopK = i
		}
	}
}

// OptAnalysisMinSupport sets the minimal review support of a tag term.
func OptAnalysisMinSupport(i int) Option {
	return func(c *Config) {
		if isValidInt("Min Support", i) {
			c.Analysis.MinSupport = i
		}
	}
}

// OptAnalysisStemRunes sets the prefix length for near-synonym clustering.
func OptAnalysisStemRunes(i int) Option {
	return func(c *Config) {
		if isValidInt("Stem Runes", i) {
			c.Analysis.StemRunes = i
		}
	}
}

// OptAnalysisMaxSamples sets the number of sample reviews kept per tag.
func OptAnalysisMaxSamples(i int) Option {
	return func(c *Config) {
		if isValidInt("Max Samples", i) {
			c.Analysis.MaxSamples = i
		}
	}
}

// OptAnalysisRating3Policy sets how 3-star reviews enter the agreement rate.
// Valid values: "exclude", "neutral-agrees".
func OptAnalysisRating3Policy(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Analysis.Rating3Policy", s) {
			c.Analysis.Rating3Policy = s
		}
	}
}

// OptAnalysisLexiconPath sets a YAML file replacing the built-in lexicon.
func OptAnalysisLexiconPath(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Lexicon Path", s) {
			c.Analysis.LexiconPath = s
		}
	}
}

// OptDatabaseHost sets the PostgreSQL server hostname or IP address.
func OptDatabaseHost(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database Host", s) {
			c.Database.Host = s
		}
	}
}

// OptDatabasePort sets the PostgreSQL server port number.
func OptDatabasePort(i int) Option {
	return func(c *Config) {
		if isValidInt("Database Port", i) {
			c.Database.Port = i
		}
	}
}

// OptDatabaseUser sets the PostgreSQL database username.
func OptDatabaseUser(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database User", s) {
			c.Database.User = s
		}
	}
}

// OptDatabasePassword sets the PostgreSQL database password.
func OptDatabasePassword(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database Password", s) {
			c.Database.Password = s
		}
	}
}

// OptDatabaseDatabase sets the PostgreSQL database name to connect to.
func OptDatabaseDatabase(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database Name", s) {
			c.Database.Database = s
		}
	}
}

// OptDatabaseSSLMode sets the SSL connection mode.
// Valid values: "disable", "require", "verify-ca", "verify-full".
func OptDatabaseSSLMode(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Database.SSLMode", s) {
			c.Database.SSLMode = s
		}
	}
}

// OptDatabaseBatchSize sets the number of rows per insert batch.
func OptDatabaseBatchSize(i int) Option {
	return func(c *Config) {
		if isValidInt("Batch Size", i) {
			c.Database.BatchSize = i
		}
	}
}

// OptLogLevel sets the logging level.
// Valid values: "debug", "info", "warn", "error".
func OptLogLevel(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Level", s) {
			c.Log.Level = s
		}
	}
}

// OptLogFormat sets the log output format.
// Valid values: "json", "text", "tint".
func OptLogFormat(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Format", s) {
			c.Log.Format = s
		}
	}
}

// OptLogDestination sets where logs are written.
// Valid values: "file", "stderr", "stdout".
func OptLogDestination(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Destination", s) {
			c.Log.Destination = s
		}
	}
}

// OptServePort sets the port of the HTTP API.
func OptServePort(i int) Option {
	return func(c *Config) {
		if i > 65535 {
			gn.Warn("<em>Serve Port</em> %d is out of range, ignoring", i)
			return
		}
		if isValidInt("Serve Port", i) {
			c.Serve.Port = i
		}
	}
}

// OptServeCacheTTL sets how many seconds answers stay cached.
func OptServeCacheTTL(i int) Option {
	return func(c *Config) {
		if isValidInt("Serve Cache TTL", i) {
			c.Serve.CacheTTL = i
		}
	}
}

// OptJobsNumber sets the number of concurrent workers for parallel operations.
// Default is runtime.NumCPU().
func OptJobsNumber(i int) Option {
	return func(c *Config) {
		if isValidInt("Jobs Number", i) {
			c.JobsNumber = i
		}
	}
}

// OptHomeDir sets the home directory for config, cache, and log locations.
// Set once at startup from os.UserHomeDir().
// Runtime-only field - not in ToOptions().
func OptHomeDir(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Home Directory", s) {
			c.HomeDir = s
		}
	}
}
