package classifier

import (
	"fmt"

	"github.com/JaimeStill/vouch/pkg/envvar"
)

// Config holds the keyword list used for classification.
type Config struct {
	Keywords []string `toml:"keywords"`
}

// Env names the environment variables that override Config fields.
type Env struct {
	Keywords string
}

// Finalize applies defaults, environment overrides, and validation.
func (c *Config) Finalize(env *Env) error {
	if len(c.Keywords) == 0 {
		c.Keywords = append([]string(nil), DefaultKeywords...)
	}
	if env != nil {
		envvar.List(&c.Keywords, env.Keywords)
	}
	return c.validate()
}

// Merge overwrites fields that are set in overlay.
func (c *Config) Merge(overlay *Config) {
	if overlay.Keywords != nil {
		c.Keywords = overlay.Keywords
	}
}

func (c *Config) validate() error {
	if len(c.Keywords) == 0 {
		return fmt.Errorf("at least one keyword required")
	}
	for i, k := range c.Keywords {
		if k == "" {
			return fmt.Errorf("keyword %d is empty", i)
		}
	}
	return nil
}
