package am

import (
	"github.com/spf13/viper"
)

// SetDefaults configures default values for all configuration options
func SetDefaults(v *viper.Viper) {
	// Database defaults
	v.SetDefault("database.path", "sereval.db")

	// Corpus defaults match the historical analysis file names
	v.SetDefault("corpus.clean_path", "sys_queries_clean.txt")
	v.SetDefault("corpus.labeled_path", "sys_queries.txt")

	// Duckling defaults
	v.SetDefault("duckling.endpoint", "http://0.0.0.0:8000/parse")
	v.SetDefault("duckling.timeout_seconds", 10)

	// Mallard defaults
	v.SetDefault("mallard.endpoint", "http://localhost:2626/parse")
	v.SetDefault("mallard.language", "eng")
	v.SetDefault("mallard.timeout_seconds", 10)

	// Fetch defaults
	v.SetDefault("fetch.workers", 4)
	v.SetDefault("fetch.requests_per_second", 0) // Local recognizers, no throttle
	v.SetDefault("fetch.progress_every", 1000)

	// Eval defaults
	v.SetDefault("eval.ignore_labels", []string{"amount-of-money"})
	v.SetDefault("eval.missed_report_path", "duckling_missed_entities.txt")
}

// BindSensitiveEnvVars explicitly binds sensitive configuration to environment variables
func BindSensitiveEnvVars(v *viper.Viper) {
	// Endpoints vary per deployment and are commonly overridden in CI
	v.BindEnv("duckling.endpoint", "SEREVAL_DUCKLING_ENDPOINT")
	v.BindEnv("mallard.endpoint", "SEREVAL_MALLARD_ENDPOINT")

	// Database path
	v.BindEnv("database.path", "SEREVAL_DATABASE_PATH")
}
