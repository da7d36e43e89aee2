package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testConfig struct {
	Port     int    `env:"TESTCFG_PORT" envDefault:"8004"`
	Name     string `env:"TESTCFG_NAME" envDefault:"catalog"`
	Verbose  bool   `env:"TESTCFG_VERBOSE" envDefault:"false"`
	Required string `env:"TESTCFG_REQUIRED"`
}

func TestLoadDefaults(t *testing.T) {
	var cfg testConfig
	require.NoError(t, Load(&cfg))

	assert.Equal(t, 8004, cfg.Port)
	assert.Equal(t, "catalog", cfg.Name)
	assert.False(t, cfg.Verbose)
	assert.Empty(t, cfg.Required)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("TESTCFG_PORT", "9100")
	t.Setenv("TESTCFG_VERBOSE", "true")
	t.Setenv("TESTCFG_REQUIRED", "set")

	var cfg testConfig
	require.NoError(t, Load(&cfg))

	assert.Equal(t, 9100, cfg.Port)
	assert.True(t, cfg.Verbose)
	assert.Equal(t, "set", cfg.Required)
}

func TestLoadRejectsMalformedValue(t *testing.T) {
	t.Setenv("TESTCFG_PORT", "not-a-number")

	var cfg testConfig
	err := Load(&cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load config")
}
