package config

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitializeConfigDefaults(t *testing.T) {
	cfg, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, ",", cfg.CSV.Delimiter)
	assert.Equal(t, "spendlens.db", cfg.Storage.Path)
	assert.Equal(t, 0, cfg.Sweep.BatchLimit)
}

func TestInitializeConfigEnvOverride(t *testing.T) {
	t.Setenv("SPENDLENS_LOG_LEVEL", "debug")
	t.Setenv("SPENDLENS_STORAGE_PATH", "/tmp/test.db")

	cfg, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "/tmp/test.db", cfg.Storage.Path)
}

func TestValidateConfig(t *testing.T) {
	valid, err := InitializeConfig()
	require.NoError(t, err)

	bad := *valid
	bad.Log.Level = "shouting"
	assert.Error(t, validateConfig(&bad))

	bad = *valid
	bad.Log.Format = "xml"
	assert.Error(t, validateConfig(&bad))

	bad = *valid
	bad.CSV.Delimiter = ";;"
	assert.Error(t, validateConfig(&bad))

	bad = *valid
	bad.Storage.Path = ""
	assert.Error(t, validateConfig(&bad))

	bad = *valid
	bad.Sweep.BatchLimit = -1
	assert.Error(t, validateConfig(&bad))
}

func TestConfigureLoggingFromConfig(t *testing.T) {
	cfg, err := InitializeConfig()
	require.NoError(t, err)

	cfg.Log.Level = "warn"
	cfg.Log.Format = "json"
	logger := ConfigureLoggingFromConfig(cfg)

	assert.Equal(t, logrus.WarnLevel, logger.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, logger.Formatter)
}
