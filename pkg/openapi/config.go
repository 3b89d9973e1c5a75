package openapi

import "github.com/JaimeStill/vouch/pkg/envvar"

// Config holds the document title and description.
type Config struct {
	Title       string `toml:"title"`
	Description string `toml:"description"`
}

type Env struct {
	Title       string
	Description string
}

// Finalize applies defaults and environment overrides.
func (c *Config) Finalize(env *Env) error {
	if c.Title == "" {
		c.Title = "Vouch API"
	}
	if c.Description == "" {
		c.Description = "Photo intake: OCR and identity-document keyword judgement."
	}
	if env != nil {
		envvar.String(&c.Title, env.Title)
		envvar.String(&c.Description, env.Description)
	}
	return nil
}

// Merge overwrites fields set in overlay.
func (c *Config) Merge(overlay *Config) {
	if overlay.Title != "" {
		c.Title = overlay.Title
	}
	if overlay.Description != "" {
		c.Description = overlay.Description
	}
}
