package config

import (
	"fmt"
	"strings"

	"github.com/JaimeStill/vouch/internal/photos"
	"github.com/JaimeStill/vouch/pkg/envvar"
	"github.com/JaimeStill/vouch/pkg/formatting"
	"github.com/JaimeStill/vouch/pkg/middleware"
	"github.com/JaimeStill/vouch/pkg/openapi"
)

const (
	EnvAPIBasePath      = "VOUCH_API_BASE_PATH"
	EnvAPIMaxUploadSize = "VOUCH_API_MAX_UPLOAD_SIZE"
)

var openapiEnv = &openapi.Env{
	Title:       "VOUCH_OPENAPI_TITLE",
	Description: "VOUCH_OPENAPI_DESCRIPTION",
}

var corsEnv = &middleware.CORSEnv{
	Enabled:          "VOUCH_CORS_ENABLED",
	Origins:          "VOUCH_CORS_ORIGINS",
	AllowedMethods:   "VOUCH_CORS_ALLOWED_METHODS",
	AllowedHeaders:   "VOUCH_CORS_ALLOWED_HEADERS",
	AllowCredentials: "VOUCH_CORS_ALLOW_CREDENTIALS",
	MaxAge:           "VOUCH_CORS_MAX_AGE",
}

// APIConfig holds API routing, upload, CORS, and OpenAPI document settings.
type APIConfig struct {
	BasePath      string                `toml:"base_path"`
	MaxUploadSize string                `toml:"max_upload_size"`
	CORS          middleware.CORSConfig `toml:"cors"`
	OpenAPI       openapi.Config        `toml:"openapi"`
}

// MaxUploadSizeBytes returns MaxUploadSize in bytes.
func (c *APIConfig) MaxUploadSizeBytes() int64 {
	size, err := formatting.ParseBytes(c.MaxUploadSize)
	if err != nil {
		return photos.MaxSize
	}
	return size
}

// Finalize applies defaults, environment overrides, and validation for the
// API config and its nested CORS and OpenAPI configs.
func (c *APIConfig) Finalize() error {
	if c.BasePath == "" {
		c.BasePath = "/api"
	}
	if c.MaxUploadSize == "" {
		c.MaxUploadSize = "2MB"
	}

	envvar.String(&c.BasePath, EnvAPIBasePath)
	envvar.String(&c.MaxUploadSize, EnvAPIMaxUploadSize)

	if err := c.validate(); err != nil {
		return err
	}
	if err := c.CORS.Finalize(corsEnv); err != nil {
		return fmt.Errorf("cors: %w", err)
	}
	if err := c.OpenAPI.Finalize(openapiEnv); err != nil {
		return fmt.Errorf("openapi: %w", err)
	}
	return nil
}

// Merge overwrites set fields from overlay.
func (c *APIConfig) Merge(overlay *APIConfig) {
	if overlay.BasePath != "" {
		c.BasePath = overlay.BasePath
	}
	if overlay.MaxUploadSize != "" {
		c.MaxUploadSize = overlay.MaxUploadSize
	}
	c.CORS.Merge(&overlay.CORS)
	c.OpenAPI.Merge(&overlay.OpenAPI)
}

func (c *APIConfig) validate() error {
	if !strings.HasPrefix(c.BasePath, "/") || strings.Count(c.BasePath, "/") != 1 || c.BasePath == "/" {
		return fmt.Errorf("base_path must be a single-level path such as /api: %q", c.BasePath)
	}

	size, err := formatting.ParseBytes(c.MaxUploadSize)
	if err != nil {
		return fmt.Errorf("invalid max_upload_size: %w", err)
	}
	if size <= 0 || size > photos.MaxSize {
		return fmt.Errorf(
			"max_upload_size must be between 1 B and %s: %s",
			formatting.FormatBytes(photos.MaxSize, 0),
			c.MaxUploadSize,
		)
	}
	return nil
}
