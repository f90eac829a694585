package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 64, cfg.Server.BodyLimitMB)
	assert.Equal(t, "merges", cfg.Storage.Bucket)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.True(t, cfg.Merge.HeaderRow)
	assert.Equal(t, "first_wins", cfg.Merge.Policy)
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9999")
	t.Setenv("MERGE_POLICY", "last_wins")
	t.Setenv("MERGE_KEY_COLUMNS", "ID,Region")
	t.Setenv("LOG_FORMAT", "console")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "9999", cfg.Server.Port)
	assert.Equal(t, "last_wins", cfg.Merge.Policy)
	assert.Equal(t, "ID,Region", cfg.Merge.KeyColumns)
	assert.Equal(t, "console", cfg.Log.Format)

	opts, err := cfg.Merge.Options()
	require.NoError(t, err)
	assert.Equal(t, []string{"ID", "Region"}, opts.KeyColumns)
}
