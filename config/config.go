package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config represents the overall application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Assets   AssetsConfig   `yaml:"assets"`
	School   SchoolConfig   `yaml:"school"`
}

// ServerConfig holds the server-related configuration.
type ServerConfig struct {
	Port            int     `yaml:"port"`
	RateLimitPerSec float64 `yaml:"rate_limit_per_sec"`
	RateLimitBurst  int     `yaml:"rate_limit_burst"`
	CacheTTLSeconds int     `yaml:"cache_ttl_seconds"`
}

// DatabaseConfig holds the database connection configuration. Credentials
// come from the environment; the YAML file only carries non-secret tuning.
type DatabaseConfig struct {
	Host                   string `yaml:"host"`
	Port                   int    `yaml:"port"`
	User                   string `yaml:"user"`
	Password               string `yaml:"-"`
	Name                   string `yaml:"name"`
	TLS                    bool   `yaml:"tls"`
	MaxOpenConns           int    `yaml:"max_open_conns"`
	MaxIdleConns           int    `yaml:"max_idle_conns"`
	ConnMaxLifetimeMinutes int    `yaml:"conn_max_lifetime_minutes"`
}

// AssetsConfig holds the image storage configuration.
type AssetsConfig struct {
	Dir            string `yaml:"dir"`
	MaxUploadBytes int64  `yaml:"max_upload_bytes"`
}

// SchoolConfig selects the create-endpoint deployment mode.
type SchoolConfig struct {
	// UploadsEnabled switches POST /schools to accept multipart uploads.
	// When false the endpoint is JSON-only and records carry an image URL.
	UploadsEnabled  bool   `yaml:"uploads_enabled"`
	DefaultImageURL string `yaml:"default_image_url"`
}

// DSN builds the MySQL connection string.
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=UTC&tls=%t",
		c.User, c.Password, c.Host, c.Port, c.Name, c.TLS)
}

// Load reads the configuration from the given path and applies environment
// overrides. A missing file is not an error: defaults plus the environment
// fully describe a working deployment.
func Load(path string) (*Config, error) {
	cfg := defaults()

	f, err := os.Open(path)
	if err == nil {
		defer f.Close()
		decoder := yaml.NewDecoder(f)
		if err := decoder.Decode(cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	applyEnv(cfg)

	if cfg.Server.Port <= 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.RateLimitPerSec <= 0 {
		cfg.Server.RateLimitPerSec = 10
	}
	if cfg.Server.RateLimitBurst <= 0 {
		cfg.Server.RateLimitBurst = 5
	}
	if cfg.Server.CacheTTLSeconds <= 0 {
		cfg.Server.CacheTTLSeconds = 60
	}
	if cfg.Assets.MaxUploadBytes <= 0 {
		cfg.Assets.MaxUploadBytes = 5 << 20
	}

	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Database: DatabaseConfig{
			Host:         "localhost",
			Port:         3306,
			Name:         "school_hub",
			MaxOpenConns: 5,
			MaxIdleConns: 2,
		},
		Assets: AssetsConfig{
			Dir: "./schoolImages",
		},
		School: SchoolConfig{
			UploadsEnabled:  true,
			DefaultImageURL: "https://images.unsplash.com/photo-1580582932707-520aed937b7b?w=400",
		},
	}
}

// applyEnv overrides store settings from the environment. Credentials have no
// file-based fallback.
func applyEnv(cfg *Config) {
	if v := os.Getenv("DB_HOST"); v != "" {
		cfg.Database.Host = v
	}
	if v := os.Getenv("DB_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			cfg.Database.Port = p
		}
	}
	if v := os.Getenv("DB_USER"); v != "" {
		cfg.Database.User = v
	}
	if v := os.Getenv("DB_PASSWORD"); v != "" {
		cfg.Database.Password = v
	}
	if v := os.Getenv("DB_NAME"); v != "" {
		cfg.Database.Name = v
	}
	if v := os.Getenv("DB_TLS"); v != "" {
		cfg.Database.TLS = v == "true" || v == "1"
	}
}
