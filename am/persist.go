package am

import (
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/vijay120/duckling-1/errors"
)

// DefaultConfig returns a Config populated entirely from defaults.
func DefaultConfig() *Config {
	return &Config{
		Database: DatabaseConfig{Path: "sereval.db"},
		Corpus: CorpusConfig{
			CleanPath:   "sys_queries_clean.txt",
			LabeledPath: "sys_queries.txt",
		},
		Duckling: DucklingConfig{
			Endpoint:       "http://0.0.0.0:8000/parse",
			TimeoutSeconds: 10,
		},
		Mallard: MallardConfig{
			Endpoint:       "http://localhost:2626/parse",
			Language:       "eng",
			TimeoutSeconds: 10,
		},
		Fetch: FetchConfig{
			Workers:       4,
			ProgressEvery: 1000,
		},
		Eval: EvalConfig{
			IgnoreLabels:     []string{"amount-of-money"},
			MissedReportPath: "duckling_missed_entities.txt",
		},
	}
}

// WriteConfig marshals a config to TOML at the given path, creating
// parent directories as needed. Existing files are not overwritten.
func WriteConfig(config *Config, path string) error {
	if _, err := os.Stat(path); err == nil {
		return errors.Newf("config file already exists: %s", path)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return errors.Wrap(err, "marshal config")
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, DefaultDirPermissions); err != nil {
			return errors.Wrapf(err, "create config directory %s", dir)
		}
	}

	if err := os.WriteFile(path, data, DefaultFilePermissions); err != nil {
		return errors.Wrapf(err, "write config %s", path)
	}
	return nil
}
