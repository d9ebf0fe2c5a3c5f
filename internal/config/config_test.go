package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.True(t, cfg.Security.RateLimit.Enabled)
	assert.Equal(t, "info", cfg.Logging.Level)

	assert.Equal(t, []string{"data.xlsx", "data/digital_transformation_index.xlsx"}, cfg.Data.Files)
	assert.Equal(t, 1999, cfg.Data.DefaultYear)
	assert.Equal(t, "600003", cfg.Data.FallbackCode)

	require.NoError(t, cfg.validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "valid defaults",
			mutate: func(c *Config) {},
		},
		{
			name:    "port zero",
			mutate:  func(c *Config) { c.Server.Port = 0 },
			wantErr: "invalid server port",
		},
		{
			name:    "port out of range",
			mutate:  func(c *Config) { c.Server.Port = 70000 },
			wantErr: "invalid server port",
		},
		{
			name:    "non-positive read timeout",
			mutate:  func(c *Config) { c.Server.ReadTimeout = 0 },
			wantErr: "read timeout",
		},
		{
			name:    "no candidate data files",
			mutate:  func(c *Config) { c.Data.Files = nil },
			wantErr: "at least one candidate data file",
		},
		{
			name:    "rate limit enabled with zero rps",
			mutate:  func(c *Config) { c.Security.RateLimit.RPS = 0 },
			wantErr: "rate limit rps",
		},
		{
			name:   "rate limit disabled ignores rps",
			mutate: func(c *Config) { c.Security.RateLimit.Enabled = false; c.Security.RateLimit.RPS = 0 },
		},
		{
			name:    "bad log level",
			mutate:  func(c *Config) { c.Logging.Level = "verbose" },
			wantErr: "invalid log level",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := cfg.validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.ErrorContains(t, err, tt.wantErr)
			}
		})
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("DTX_SERVER_PORT", "9090")
	t.Setenv("DTX_DATA_DEFAULT_YEAR", "2005")
	t.Setenv("DTX_DATA_FALLBACK_CODE", "000001")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 2005, cfg.Data.DefaultYear)
	assert.Equal(t, "000001", cfg.Data.FallbackCode)
}
