package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/ivf-outcome-server/internal/domain"
)

// Manager implements the ConfigManager interface using Viper
type Manager struct {
	config *domain.Config
}

// NewManager creates a new configuration manager
func NewManager() (*Manager, error) {
	m := &Manager{}
	if err := m.loadConfig(); err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return m, nil
}

// loadConfig loads configuration from various sources
func (m *Manager) loadConfig() error {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AddConfigPath("/etc/ivf-outcome-server/")

	viper.SetEnvPrefix("IVF")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	m.setDefaults()

	// Config file is optional; defaults and env vars apply when absent.
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	config := &domain.Config{}
	if err := viper.Unmarshal(config); err != nil {
		return fmt.Errorf("error unmarshaling config: %w", err)
	}

	m.config = config
	return nil
}

// setDefaults sets default configuration values
func (m *Manager) setDefaults() {
	// Server defaults
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", "30s")
	viper.SetDefault("server.write_timeout", "30s")
	viper.SetDefault("server.idle_timeout", "120s")

	// Storage defaults: local SQLite unless Postgres is configured
	viper.SetDefault("storage.driver", "sqlite")
	viper.SetDefault("storage.sqlite_path", "./data/predictions.db")
	viper.SetDefault("storage.host", "localhost")
	viper.SetDefault("storage.port", 5432)
	viper.SetDefault("storage.database", "ivf_outcomes")
	viper.SetDefault("storage.username", "postgres")
	viper.SetDefault("storage.password", "")
	viper.SetDefault("storage.ssl_mode", "disable")
	viper.SetDefault("storage.max_conns", 25)
	viper.SetDefault("storage.min_conns", 2)
	viper.SetDefault("storage.conn_max_lifetime", "5m")
	viper.SetDefault("storage.conn_max_idle_time", "1m")

	// Cache defaults
	viper.SetDefault("cache.enabled", true)
	viper.SetDefault("cache.max_memory_size", 512)
	viper.SetDefault("cache.redis_url", "")
	viper.SetDefault("cache.default_ttl", "24h")

	// Rate limit defaults
	viper.SetDefault("rate_limit.enabled", true)
	viper.SetDefault("rate_limit.requests_per_second", 10.0)
	viper.SetDefault("rate_limit.burst", 20)

	// Logging defaults
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "json")
}

// GetConfig returns the complete configuration
func (m *Manager) GetConfig() *domain.Config {
	return m.config
}

// GetServerConfig returns server configuration
func (m *Manager) GetServerConfig() *domain.ServerConfig {
	return &m.config.Server
}

// GetStorageConfig returns storage configuration
func (m *Manager) GetStorageConfig() *domain.StorageConfig {
	return &m.config.Storage
}

// Validate validates the configuration
func (m *Manager) Validate() error {
	config := m.config

	if config.Server.Port <= 0 || config.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", config.Server.Port)
	}

	switch config.Storage.Driver {
	case "sqlite":
		if config.Storage.SQLitePath == "" {
			return fmt.Errorf("sqlite path is required")
		}
	case "postgres":
		if config.Storage.Host == "" {
			return fmt.Errorf("storage host is required")
		}
		if config.Storage.Database == "" {
			return fmt.Errorf("storage database name is required")
		}
		if config.Storage.Username == "" {
			return fmt.Errorf("storage username is required")
		}
	default:
		return fmt.Errorf("unsupported storage driver: %s", config.Storage.Driver)
	}

	if config.RateLimit.Enabled && config.RateLimit.RequestsPerSecond <= 0 {
		return fmt.Errorf("rate limit requests_per_second must be positive")
	}

	validLogLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true, "fatal": true, "panic": true,
	}
	if !validLogLevels[strings.ToLower(config.Logging.Level)] {
		return fmt.Errorf("invalid log level: %s", config.Logging.Level)
	}

	return nil
}
