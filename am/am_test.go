package am

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	v := viper.New()
	SetDefaults(v)

	assert.Equal(t, "http://0.0.0.0:8000/parse", v.GetString("duckling.endpoint"))
	assert.Equal(t, "http://localhost:2626/parse", v.GetString("mallard.endpoint"))
	assert.Equal(t, "eng", v.GetString("mallard.language"))
	assert.Equal(t, 1000, v.GetInt("fetch.progress_every"))
	assert.Equal(t, []string{"amount-of-money"}, v.GetStringSlice("eval.ignore_labels"))
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sereval.toml")

	content := `
[duckling]
endpoint = "http://duckling.internal:8000/parse"

[mallard]
language = "deu"

[fetch]
workers = 8
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	config, err := LoadFromFile(path)
	require.NoError(t, err)

	// Overridden values
	assert.Equal(t, "http://duckling.internal:8000/parse", config.Duckling.Endpoint)
	assert.Equal(t, "deu", config.Mallard.Language)
	assert.Equal(t, 8, config.Fetch.Workers)

	// Defaults still apply to the rest
	assert.Equal(t, "http://localhost:2626/parse", config.Mallard.Endpoint)
	assert.Equal(t, "sereval.db", config.Database.Path)
}

func TestLoadFromFileMissing(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

func TestWriteConfig(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "conf", "sereval.toml")

		require.NoError(t, WriteConfig(DefaultConfig(), path))

		loaded, err := LoadFromFile(path)
		require.NoError(t, err)
		assert.Equal(t, DefaultConfig(), loaded)
	})

	t.Run("refuses to overwrite", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "sereval.toml")
		require.NoError(t, WriteConfig(DefaultConfig(), path))

		err := WriteConfig(DefaultConfig(), path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "already exists")
	})
}

func TestEnvOverride(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	t.Setenv("SEREVAL_DUCKLING_ENDPOINT", "http://override:9999/parse")

	config, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://override:9999/parse", config.Duckling.Endpoint)
}

func TestConfigHelpers(t *testing.T) {
	config := DefaultConfig()
	assert.Equal(t, "sereval.db", config.GetDatabasePath())
	assert.Equal(t, 10, int(config.DucklingTimeout().Seconds()))
	assert.Contains(t, config.String(), "http://0.0.0.0:8000/parse")
}
