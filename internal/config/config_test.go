package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_DefaultsAndOverrides(t *testing.T) {
	path := writeConfig(t, `
[server]
http_port = 9090

[database]
host = "db"
dbname = "clinic"

[policy]
hourly_capacity = 10
almost_full_threshold = 8
`)
	t.Setenv("DB_PASSWORD", "secret")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.Equal(t, 10, cfg.Policy.HourlyCapacity)
	assert.Equal(t, 8, cfg.Policy.AlmostFullThreshold)
	assert.Equal(t, 8, cfg.Policy.DashboardStartHour)
	assert.Equal(t, 20, cfg.Policy.DashboardEndHour)
	assert.Equal(t, 30, cfg.Policy.MaxAdvanceBookingDays)
	assert.Equal(t, "secret", cfg.Database.Password)
	assert.Contains(t, cfg.Database.DSN(), "host=db")
	assert.Contains(t, cfg.Database.DSN(), "dbname=clinic")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	assert.ErrorIs(t, err, ErrReadConfig)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"zero capacity", func(c *Config) { c.Policy.HourlyCapacity = 0 }},
		{"threshold above capacity", func(c *Config) { c.Policy.AlmostFullThreshold = 21 }},
		{"inverted dashboard hours", func(c *Config) { c.Policy.DashboardStartHour = 20; c.Policy.DashboardEndHour = 8 }},
		{"negative advance days", func(c *Config) { c.Policy.MaxAdvanceBookingDays = -1 }},
		{"cache without size", func(c *Config) { c.Cache.Size = 0 }},
		{"rabbitmq without url", func(c *Config) { c.RabbitMQ.Enabled = true }},
	}

	require.NoError(t, defaults().Validate())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaults()
			tt.mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}
}
