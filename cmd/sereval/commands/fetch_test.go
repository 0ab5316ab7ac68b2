package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vijay120/duckling-1/am"
)

func TestSelectTargets(t *testing.T) {
	cfg := am.DefaultConfig()

	t.Run("both", func(t *testing.T) {
		targets, err := selectTargets(cfg, "both")
		require.NoError(t, err)
		require.Len(t, targets, 2)
		assert.Equal(t, "duckling", targets[0].rec.Name())
		assert.Equal(t, "mallard", targets[1].rec.Name())
		assert.Equal(t, cfg.Duckling.Endpoint, targets[0].endpoint)
		assert.Equal(t, cfg.Mallard.Endpoint, targets[1].endpoint)
	})

	t.Run("single system", func(t *testing.T) {
		targets, err := selectTargets(cfg, "mallard")
		require.NoError(t, err)
		require.Len(t, targets, 1)
		assert.Equal(t, "mallard", targets[0].rec.Name())
	})

	t.Run("unknown system", func(t *testing.T) {
		_, err := selectTargets(cfg, "rasa")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "rasa")
	})
}
