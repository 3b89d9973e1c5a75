package config

import (
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/JaimeStill/vouch/pkg/envvar"
)

const (
	EnvServerHost         = "VOUCH_SERVER_HOST"
	EnvServerPort         = "VOUCH_SERVER_PORT"
	EnvServerReadTimeout  = "VOUCH_SERVER_READ_TIMEOUT"
	EnvServerWriteTimeout = "VOUCH_SERVER_WRITE_TIMEOUT"
)

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Host         string `toml:"host"`
	Port         int    `toml:"port"`
	ReadTimeout  string `toml:"read_timeout"`
	WriteTimeout string `toml:"write_timeout"`
}

// Addr returns the host:port listen address.
func (c *ServerConfig) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// ReadTimeoutDuration returns ReadTimeout as a time.Duration.
func (c *ServerConfig) ReadTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.ReadTimeout)
	return d
}

// WriteTimeoutDuration returns WriteTimeout as a time.Duration. It must cover
// upload, OCR, and persistence for a single intake.
func (c *ServerConfig) WriteTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.WriteTimeout)
	return d
}

// Finalize applies defaults, environment overrides, and validation.
func (c *ServerConfig) Finalize() error {
	if c.Host == "" {
		c.Host = "0.0.0.0"
	}
	if c.Port == 0 {
		c.Port = 8080
	}
	if c.ReadTimeout == "" {
		c.ReadTimeout = "30s"
	}
	if c.WriteTimeout == "" {
		c.WriteTimeout = "2m"
	}

	envvar.String(&c.Host, EnvServerHost)
	envvar.Int(&c.Port, EnvServerPort)
	envvar.String(&c.ReadTimeout, EnvServerReadTimeout)
	envvar.String(&c.WriteTimeout, EnvServerWriteTimeout)

	return c.validate()
}

// Merge overwrites set fields from overlay.
func (c *ServerConfig) Merge(overlay *ServerConfig) {
	if overlay.Host != "" {
		c.Host = overlay.Host
	}
	if overlay.Port != 0 {
		c.Port = overlay.Port
	}
	if overlay.ReadTimeout != "" {
		c.ReadTimeout = overlay.ReadTimeout
	}
	if overlay.WriteTimeout != "" {
		c.WriteTimeout = overlay.WriteTimeout
	}
}

func (c *ServerConfig) validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}
	if _, err := time.ParseDuration(c.ReadTimeout); err != nil {
		return fmt.Errorf("invalid read_timeout: %w", err)
	}
	if _, err := time.ParseDuration(c.WriteTimeout); err != nil {
		return fmt.Errorf("invalid write_timeout: %w", err)
	}
	return nil
}
