// Package am loads and persists harness configuration: corpus paths,
// recognizer endpoints, fetch behavior, and evaluation options.
package am

import (
	"fmt"
	"time"
)

// Config represents the full harness configuration
type Config struct {
	Database DatabaseConfig `mapstructure:"database" toml:"database"`
	Corpus   CorpusConfig   `mapstructure:"corpus" toml:"corpus"`
	Duckling DucklingConfig `mapstructure:"duckling" toml:"duckling"`
	Mallard  MallardConfig  `mapstructure:"mallard" toml:"mallard"`
	Fetch    FetchConfig    `mapstructure:"fetch" toml:"fetch"`
	Eval     EvalConfig     `mapstructure:"eval" toml:"eval"`
}

// DatabaseConfig configures the SQLite prediction cache
type DatabaseConfig struct {
	Path string `mapstructure:"path" toml:"path"`
}

// CorpusConfig locates the query corpus files. Clean holds the raw
// query text; Labeled holds the same queries with {text|sys_label}
// entity markup, one per line, index-aligned.
type CorpusConfig struct {
	CleanPath   string `mapstructure:"clean_path" toml:"clean_path"`
	LabeledPath string `mapstructure:"labeled_path" toml:"labeled_path"`
}

// DucklingConfig configures the Duckling recognizer endpoint
type DucklingConfig struct {
	Endpoint       string `mapstructure:"endpoint" toml:"endpoint"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds" toml:"timeout_seconds"`
}

// MallardConfig configures the Mallard recognizer endpoint
type MallardConfig struct {
	Endpoint       string `mapstructure:"endpoint" toml:"endpoint"`
	Language       string `mapstructure:"language" toml:"language"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds" toml:"timeout_seconds"`
}

// FetchConfig configures batch fetching from the recognizers
type FetchConfig struct {
	Workers           int     `mapstructure:"workers" toml:"workers"`                       // Concurrent in-flight requests per system
	RequestsPerSecond float64 `mapstructure:"requests_per_second" toml:"requests_per_second"` // 0 = unlimited
	ProgressEvery     int     `mapstructure:"progress_every" toml:"progress_every"`         // Log batch progress every N queries
}

// EvalConfig configures the comparison run
type EvalConfig struct {
	// IgnoreLabels are skipped during cross-system agreement; Mallard
	// never emits amount-of-money, so comparing it is pure noise.
	IgnoreLabels []string `mapstructure:"ignore_labels" toml:"ignore_labels"`

	// MissedReportPath is where the missed-entities text report is
	// written. Empty disables the report.
	MissedReportPath string `mapstructure:"missed_report_path" toml:"missed_report_path"`
}

// File system constants
const (
	DefaultDirPermissions  = 0755 // Standard directory permissions (rwxr-xr-x)
	DefaultFilePermissions = 0644 // Standard file permissions (rw-r--r--)
)

// DucklingTimeout returns the Duckling request timeout.
func (c *Config) DucklingTimeout() time.Duration {
	return time.Duration(c.Duckling.TimeoutSeconds) * time.Second
}

// MallardTimeout returns the Mallard request timeout.
func (c *Config) MallardTimeout() time.Duration {
	return time.Duration(c.Mallard.TimeoutSeconds) * time.Second
}

// GetDatabasePath returns the configured database path
func (c *Config) GetDatabasePath() string {
	if c.Database.Path == "" {
		return "sereval.db" // Fallback default
	}
	return c.Database.Path
}

// String returns a string representation of the config
func (c *Config) String() string {
	return fmt.Sprintf("Config{Database: %s, Duckling: %s, Mallard: %s, Fetch: {Workers: %d}}",
		c.Database.Path, c.Duckling.Endpoint, c.Mallard.Endpoint, c.Fetch.Workers)
}
