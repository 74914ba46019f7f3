package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewManager_Defaults(t *testing.T) {
	manager, err := NewManager()
	require.NoError(t, err)

	cfg := manager.GetConfig()
	require.NotNil(t, cfg)

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.Port)

	assert.Equal(t, "sqlite", cfg.Storage.Driver)
	assert.Equal(t, "./data/predictions.db", cfg.Storage.SQLitePath)

	assert.True(t, cfg.Cache.Enabled)
	assert.Equal(t, 512, cfg.Cache.MaxMemorySize)
	assert.Empty(t, cfg.Cache.RedisURL)

	assert.True(t, cfg.RateLimit.Enabled)
	assert.Equal(t, 10.0, cfg.RateLimit.RequestsPerSecond)
	assert.Equal(t, 20, cfg.RateLimit.Burst)

	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestManager_Validate(t *testing.T) {
	manager, err := NewManager()
	require.NoError(t, err)
	require.NoError(t, manager.Validate())

	tests := []struct {
		name    string
		mutate  func(m *Manager)
		wantErr string
	}{
		{
			name:    "Invalid port",
			mutate:  func(m *Manager) { m.config.Server.Port = 0 },
			wantErr: "invalid server port",
		},
		{
			name:    "Unknown storage driver",
			mutate:  func(m *Manager) { m.config.Storage.Driver = "mongodb" },
			wantErr: "unsupported storage driver",
		},
		{
			name: "SQLite without a path",
			mutate: func(m *Manager) {
				m.config.Storage.Driver = "sqlite"
				m.config.Storage.SQLitePath = ""
			},
			wantErr: "sqlite path is required",
		},
		{
			name: "Postgres without a host",
			mutate: func(m *Manager) {
				m.config.Storage.Driver = "postgres"
				m.config.Storage.Host = ""
			},
			wantErr: "storage host is required",
		},
		{
			name: "Rate limiting with zero rate",
			mutate: func(m *Manager) {
				m.config.RateLimit.Enabled = true
				m.config.RateLimit.RequestsPerSecond = 0
			},
			wantErr: "requests_per_second must be positive",
		},
		{
			name:    "Invalid log level",
			mutate:  func(m *Manager) { m.config.Logging.Level = "verbose" },
			wantErr: "invalid log level",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := NewManager()
			require.NoError(t, err)

			tt.mutate(m)

			err = m.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestManager_Accessors(t *testing.T) {
	manager, err := NewManager()
	require.NoError(t, err)

	assert.Equal(t, &manager.config.Server, manager.GetServerConfig())
	assert.Equal(t, &manager.config.Storage, manager.GetStorageConfig())
}
