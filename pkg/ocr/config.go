package ocr

import (
	"fmt"
	"time"

	"github.com/JaimeStill/vouch/pkg/envvar"
)

// Config holds OCR engine settings.
type Config struct {
	// Languages lists trained-data names passed to the engine, in priority order.
	Languages []string `toml:"languages"`
	// Timeout bounds a single recognition call.
	Timeout string `toml:"timeout"`
	// PageSegMode is the Tesseract page segmentation mode; zero keeps the engine default.
	PageSegMode int `toml:"page_seg_mode"`
	// TessdataPrefix points at a tessdata directory when not installed system-wide.
	TessdataPrefix string `toml:"tessdata_prefix"`
}

// Env names the environment variables that override each Config field.
type Env struct {
	Languages      string
	Timeout        string
	PageSegMode    string
	TessdataPrefix string
}

// TimeoutDuration returns Timeout as a time.Duration.
func (c *Config) TimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.Timeout)
	return d
}

// Finalize applies defaults, environment overrides, and validation.
func (c *Config) Finalize(env *Env) error {
	c.loadDefaults()
	if env != nil {
		envvar.List(&c.Languages, env.Languages)
		envvar.String(&c.Timeout, env.Timeout)
		envvar.Int(&c.PageSegMode, env.PageSegMode)
		envvar.String(&c.TessdataPrefix, env.TessdataPrefix)
	}
	return c.validate()
}

// Merge overwrites fields that are set in overlay.
func (c *Config) Merge(overlay *Config) {
	if overlay.Languages != nil {
		c.Languages = overlay.Languages
	}
	if overlay.Timeout != "" {
		c.Timeout = overlay.Timeout
	}
	if overlay.PageSegMode != 0 {
		c.PageSegMode = overlay.PageSegMode
	}
	if overlay.TessdataPrefix != "" {
		c.TessdataPrefix = overlay.TessdataPrefix
	}
}

func (c *Config) loadDefaults() {
	if len(c.Languages) == 0 {
		c.Languages = []string{"jpn", "eng"}
	}
	if c.Timeout == "" {
		c.Timeout = "30s"
	}
}

func (c *Config) validate() error {
	if len(c.Languages) == 0 {
		return fmt.Errorf("at least one language required")
	}
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return fmt.Errorf("invalid timeout: %w", err)
	}
	if d <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	if c.PageSegMode < 0 || c.PageSegMode > 13 {
		return fmt.Errorf("invalid page_seg_mode: %d", c.PageSegMode)
	}
	return nil
}
