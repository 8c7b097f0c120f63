package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config defines server configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	DB       DBConfig       `yaml:"db"`
	Log      LogConfig      `yaml:"log"`
	Presence PresenceConfig `yaml:"presence"`
	CORS     CORSConfig     `yaml:"cors"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type DBConfig struct {
	Path string `yaml:"path"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// PresenceConfig controls the heartbeat lease. StaleAfter must stay below
// twice SweepInterval so no participant survives two full sweeps past expiry.
type PresenceConfig struct {
	SweepInterval Duration `yaml:"sweep_interval"`
	StaleAfter    Duration `yaml:"stale_after"`
}

type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// Duration wraps time.Duration for YAML values like "15s".
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := time.ParseDuration(value.Value)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", value.Value, err)
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Load reads configuration from an optional YAML file and environment variables.
func Load() (Config, error) {
	cfg := Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 5000,
		},
		DB: DBConfig{
			Path: "batepapo.db",
		},
		Log: LogConfig{
			Level: "info",
		},
		Presence: PresenceConfig{
			SweepInterval: Duration(15 * time.Second),
			StaleAfter:    Duration(10 * time.Second),
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{"*"},
		},
	}

	if path := os.Getenv("BATEPAPO_CONFIG_PATH"); path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if host := os.Getenv("BATEPAPO_SERVER_HOST"); host != "" {
		cfg.Server.Host = host
	}
	if portStr := os.Getenv("BATEPAPO_SERVER_PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return Config{}, fmt.Errorf("invalid BATEPAPO_SERVER_PORT: %w", err)
		}
		cfg.Server.Port = port
	}
	if dbPath := os.Getenv("BATEPAPO_DB_PATH"); dbPath != "" {
		cfg.DB.Path = dbPath
	}
	if level := os.Getenv("BATEPAPO_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}
	if interval := os.Getenv("BATEPAPO_SWEEP_INTERVAL"); interval != "" {
		parsed, err := time.ParseDuration(interval)
		if err != nil {
			return Config{}, fmt.Errorf("invalid BATEPAPO_SWEEP_INTERVAL: %w", err)
		}
		cfg.Presence.SweepInterval = Duration(parsed)
	}
	if staleAfter := os.Getenv("BATEPAPO_STALE_AFTER"); staleAfter != "" {
		parsed, err := time.ParseDuration(staleAfter)
		if err != nil {
			return Config{}, fmt.Errorf("invalid BATEPAPO_STALE_AFTER: %w", err)
		}
		cfg.Presence.StaleAfter = Duration(parsed)
	}
	if origins := os.Getenv("BATEPAPO_ALLOWED_ORIGINS"); origins != "" {
		parts := strings.Split(origins, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		cfg.CORS.AllowedOrigins = parts
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) validate() error {
	if c.Presence.SweepInterval <= 0 {
		return fmt.Errorf("presence sweep_interval must be positive")
	}
	if c.Presence.StaleAfter <= 0 {
		return fmt.Errorf("presence stale_after must be positive")
	}
	if c.Presence.StaleAfter.Std() >= 2*c.Presence.SweepInterval.Std() {
		return fmt.Errorf("presence stale_after (%s) must be below twice sweep_interval (%s)",
			c.Presence.StaleAfter.Std(), c.Presence.SweepInterval.Std())
	}
	return nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}
