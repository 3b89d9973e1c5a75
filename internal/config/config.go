// Package config loads the service configuration from config.toml, an
// optional config.<VOUCH_ENV>.toml overlay, and VOUCH_* environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/JaimeStill/vouch/internal/classifier"
	"github.com/JaimeStill/vouch/pkg/database"
	"github.com/JaimeStill/vouch/pkg/envvar"
	"github.com/JaimeStill/vouch/pkg/ocr"
	"github.com/JaimeStill/vouch/pkg/storage"
)

const (
	BaseConfigFile       = "config.toml"
	OverlayConfigPattern = "config.%s.toml"

	EnvVouchEnv             = "VOUCH_ENV"
	EnvVouchShutdownTimeout = "VOUCH_SHUTDOWN_TIMEOUT"
	EnvVouchVersion         = "VOUCH_VERSION"
)

var databaseEnv = &database.Env{
	Host:            "VOUCH_DB_HOST",
	Port:            "VOUCH_DB_PORT",
	Name:            "VOUCH_DB_NAME",
	User:            "VOUCH_DB_USER",
	Password:        "VOUCH_DB_PASSWORD",
	SSLMode:         "VOUCH_DB_SSL_MODE",
	MaxOpenConns:    "VOUCH_DB_MAX_OPEN_CONNS",
	MaxIdleConns:    "VOUCH_DB_MAX_IDLE_CONNS",
	ConnMaxLifetime: "VOUCH_DB_CONN_MAX_LIFETIME",
	ConnTimeout:     "VOUCH_DB_CONN_TIMEOUT",
}

var storageEnv = &storage.Env{
	Provider:         "VOUCH_STORAGE_PROVIDER",
	ContainerName:    "VOUCH_STORAGE_CONTAINER_NAME",
	ConnectionString: "VOUCH_STORAGE_CONNECTION_STRING",
	AccountURL:       "VOUCH_STORAGE_ACCOUNT_URL",
	Endpoint:         "VOUCH_STORAGE_ENDPOINT",
	Region:           "VOUCH_STORAGE_REGION",
	AccessKey:        "VOUCH_STORAGE_ACCESS_KEY",
	SecretKey:        "VOUCH_STORAGE_SECRET_KEY",
	UseSSL:           "VOUCH_STORAGE_USE_SSL",
}

var ocrEnv = &ocr.Env{
	Languages:      "VOUCH_OCR_LANGUAGES",
	Timeout:        "VOUCH_OCR_TIMEOUT",
	PageSegMode:    "VOUCH_OCR_PAGE_SEG_MODE",
	TessdataPrefix: "VOUCH_OCR_TESSDATA_PREFIX",
}

var classifierEnv = &classifier.Env{
	Keywords: "VOUCH_CLASSIFIER_KEYWORDS",
}

// Config is the root configuration for the service.
type Config struct {
	Server          ServerConfig      `toml:"server"`
	Database        database.Config   `toml:"database"`
	Storage         storage.Config    `toml:"storage"`
	OCR             ocr.Config        `toml:"ocr"`
	Classifier      classifier.Config `toml:"classifier"`
	API             APIConfig         `toml:"api"`
	ShutdownTimeout string            `toml:"shutdown_timeout"`
	Version         string            `toml:"version"`
}

// Env returns the VOUCH_ENV value, defaulting to "local".
func (c *Config) Env() string {
	if env := os.Getenv(EnvVouchEnv); env != "" {
		return env
	}
	return "local"
}

// ShutdownTimeoutDuration returns ShutdownTimeout as a time.Duration.
func (c *Config) ShutdownTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.ShutdownTimeout)
	return d
}

// Load reads config.toml from the working directory if present, merges the
// environment overlay, and finalizes every section.
func Load() (*Config, error) {
	return LoadFrom(".")
}

// LoadFrom is Load with the config files resolved relative to dir.
func LoadFrom(dir string) (*Config, error) {
	cfg := &Config{}

	base := filepath.Join(dir, BaseConfigFile)
	if _, err := os.Stat(base); err == nil {
		loaded, err := load(base)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if env := os.Getenv(EnvVouchEnv); env != "" {
		path := filepath.Join(dir, fmt.Sprintf(OverlayConfigPattern, env))
		if _, err := os.Stat(path); err == nil {
			overlay, err := load(path)
			if err != nil {
				return nil, fmt.Errorf("load overlay %s: %w", path, err)
			}
			cfg.Merge(overlay)
		}
	}

	if err := cfg.finalize(); err != nil {
		return nil, fmt.Errorf("finalize config: %w", err)
	}
	return cfg, nil
}

// Merge overwrites set fields from overlay across all sections.
func (c *Config) Merge(overlay *Config) {
	if overlay.ShutdownTimeout != "" {
		c.ShutdownTimeout = overlay.ShutdownTimeout
	}
	if overlay.Version != "" {
		c.Version = overlay.Version
	}
	c.Server.Merge(&overlay.Server)
	c.Database.Merge(&overlay.Database)
	c.Storage.Merge(&overlay.Storage)
	c.OCR.Merge(&overlay.OCR)
	c.Classifier.Merge(&overlay.Classifier)
	c.API.Merge(&overlay.API)
}

func (c *Config) finalize() error {
	if c.ShutdownTimeout == "" {
		c.ShutdownTimeout = "30s"
	}
	if c.Version == "" {
		c.Version = "0.1.0"
	}
	envvar.String(&c.ShutdownTimeout, EnvVouchShutdownTimeout)
	envvar.String(&c.Version, EnvVouchVersion)

	if _, err := time.ParseDuration(c.ShutdownTimeout); err != nil {
		return fmt.Errorf("invalid shutdown_timeout: %w", err)
	}

	sections := []struct {
		name     string
		finalize func() error
	}{
		{"server", c.Server.Finalize},
		{"database", func() error { return c.Database.Finalize(databaseEnv) }},
		{"storage", func() error { return c.Storage.Finalize(storageEnv) }},
		{"ocr", func() error { return c.OCR.Finalize(ocrEnv) }},
		{"classifier", func() error { return c.Classifier.Finalize(classifierEnv) }},
		{"api", c.API.Finalize},
	}
	for _, s := range sections {
		if err := s.finalize(); err != nil {
			return fmt.Errorf("%s: %w", s.name, err)
		}
	}
	return nil
}

func load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return &cfg, nil
}
