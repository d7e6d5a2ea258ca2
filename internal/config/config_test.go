package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_AppliesDefaultsWhenEnvUnset(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.DevMode)
	assert.Equal(t, 3, cfg.AIAttempts)
	assert.False(t, cfg.ArchiveEnabled)
}

func TestLoad_EnvOverridesDefaults(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("DEV_MODE", "true")
	t.Setenv("AI_ATTEMPTS", "5")

	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.True(t, cfg.DevMode)
	assert.Equal(t, 5, cfg.AIAttempts)
}

func TestLoad_CreatesDataDirectory(t *testing.T) {
	dir := t.TempDir() + "/nested/data"
	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.DirExists(t, cfg.DataDir)
}

func TestValidate_RequiresArchiveBucketWhenEnabled(t *testing.T) {
	cfg := &Config{ArchiveEnabled: true, ArchiveBucket: ""}
	err := cfg.Validate()
	require.Error(t, err)
}

func TestValidate_PassesWhenArchiveDisabled(t *testing.T) {
	cfg := &Config{ArchiveEnabled: false}
	assert.NoError(t, cfg.Validate())
}

func TestValidate_PassesWhenBucketProvided(t *testing.T) {
	cfg := &Config{ArchiveEnabled: true, ArchiveBucket: "my-bucket"}
	assert.NoError(t, cfg.Validate())
}
