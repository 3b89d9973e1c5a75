package storage

import (
	"fmt"

	"github.com/JaimeStill/vouch/pkg/envvar"
)

// Supported storage providers.
const (
	ProviderAzure = "azure"
	ProviderMinio = "minio"
)

// Config selects a blob provider and holds its connection parameters.
// Azure uses ConnectionString, or AccountURL with the ambient Azure
// credential chain when no connection string is set. MinIO (or any S3-compatible endpoint) uses
// Endpoint, Region, AccessKey, SecretKey, and UseSSL. ContainerName is the
// Azure container or the S3 bucket.
type Config struct {
	Provider         string `toml:"provider"`
	ContainerName    string `toml:"container_name"`
	ConnectionString string `toml:"connection_string"`
	AccountURL       string `toml:"account_url"`
	Endpoint         string `toml:"endpoint"`
	Region           string `toml:"region"`
	AccessKey        string `toml:"access_key"`
	SecretKey        string `toml:"secret_key"`
	UseSSL           bool   `toml:"use_ssl"`
}

// Env names the environment variables that override each Config field.
type Env struct {
	Provider         string
	ContainerName    string
	ConnectionString string
	AccountURL       string
	Endpoint         string
	Region           string
	AccessKey        string
	SecretKey        string
	UseSSL           string
}

// Finalize applies defaults, environment overrides, and validation.
func (c *Config) Finalize(env *Env) error {
	c.loadDefaults()
	if env != nil {
		c.loadEnv(env)
	}
	return c.validate()
}

// Merge overwrites fields that are set in overlay. UseSSL is only
// ever switched on by an overlay.
func (c *Config) Merge(overlay *Config) {
	for dst, v := range map[*string]string{
		&c.Provider:         overlay.Provider,
		&c.ContainerName:    overlay.ContainerName,
		&c.ConnectionString: overlay.ConnectionString,
		&c.AccountURL:       overlay.AccountURL,
		&c.Endpoint:         overlay.Endpoint,
		&c.Region:           overlay.Region,
		&c.AccessKey:        overlay.AccessKey,
		&c.SecretKey:        overlay.SecretKey,
	} {
		if v != "" {
			*dst = v
		}
	}
	if overlay.UseSSL {
		c.UseSSL = true
	}
}

func (c *Config) loadDefaults() {
	if c.Provider == "" {
		c.Provider = ProviderAzure
	}
	if c.ContainerName == "" {
		c.ContainerName = "photos"
	}
}

func (c *Config) loadEnv(env *Env) {
	envvar.String(&c.Provider, env.Provider)
	envvar.String(&c.ContainerName, env.ContainerName)
	envvar.String(&c.ConnectionString, env.ConnectionString)
	envvar.String(&c.AccountURL, env.AccountURL)
	envvar.String(&c.Endpoint, env.Endpoint)
	envvar.String(&c.Region, env.Region)
	envvar.String(&c.AccessKey, env.AccessKey)
	envvar.String(&c.SecretKey, env.SecretKey)
	envvar.Bool(&c.UseSSL, env.UseSSL)
}

func (c *Config) validate() error {
	if c.ContainerName == "" {
		return fmt.Errorf("container_name required")
	}

	switch c.Provider {
	case ProviderAzure:
		if c.ConnectionString == "" && c.AccountURL == "" {
			return fmt.Errorf("connection_string or account_url required")
		}
	case ProviderMinio:
		if c.Endpoint == "" {
			return fmt.Errorf("endpoint required")
		}
		if c.AccessKey == "" || c.SecretKey == "" {
			return fmt.Errorf("access_key and secret_key required")
		}
	default:
		return fmt.Errorf("unknown provider: %q", c.Provider)
	}
	return nil
}
