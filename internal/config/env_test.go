package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadServerConfig_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "ENV", "LOG_LEVEL", "RATE_LIMIT_PER_MINUTE", "RATE_LIMIT_BURST", "FHCALC_CONFIG"} {
		t.Setenv(key, "")
	}

	cfg, err := LoadServerConfig()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, 60, cfg.RateLimitPerMinute)
	assert.Equal(t, 10, cfg.RateLimitBurst)
	assert.False(t, cfg.IsProduction())
}

func TestLoadServerConfig_FromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("ENV", "production")
	t.Setenv("RATE_LIMIT_PER_MINUTE", "120")
	t.Setenv("FHCALC_CONFIG", "testdata/example_config.yaml")

	cfg, err := LoadServerConfig()
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, 120, cfg.RateLimitPerMinute)
	assert.Equal(t, "testdata/example_config.yaml", cfg.ConfigFile)
}

func TestLoadServerConfig_Invalid(t *testing.T) {
	t.Setenv("RATE_LIMIT_BURST", "lots")
	_, err := LoadServerConfig()
	assert.ErrorContains(t, err, "RATE_LIMIT_BURST")

	t.Setenv("RATE_LIMIT_BURST", "0")
	_, err = LoadServerConfig()
	assert.Error(t, err)

	t.Setenv("RATE_LIMIT_BURST", "5")
	t.Setenv("PORT", "http")
	_, err = LoadServerConfig()
	assert.ErrorContains(t, err, "PORT")
}
