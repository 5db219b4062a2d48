// Package config loads engine configuration from a YAML file with
// environment-variable overrides. Missing files yield defaults so the CLI
// works with nothing but an API key in the environment.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration.
type Config struct {
	LLM       LLMConfig       `yaml:"llm"`
	Templates TemplatesConfig `yaml:"templates"`
}

// LLMConfig configures the completion client.
type LLMConfig struct {
	APIKey  string `yaml:"api_key"`
	Model   string `yaml:"model"`
	Timeout string `yaml:"timeout"`
}

// TemplatesConfig configures the example template store.
type TemplatesConfig struct {
	Path  string `yaml:"path"`
	Watch bool   `yaml:"watch"`
}

// Default returns the built-in defaults.
func Default() Config {
	return Config{
		LLM: LLMConfig{
			Model:   "gemini-2.5-flash",
			Timeout: "2m",
		},
		Templates: TemplatesConfig{
			Path: "templates.json",
		},
	}
}

// Load reads the config file at path, falling back to defaults when the
// file does not exist, then applies environment overrides. A present but
// malformed file is an error; silently ignoring typos hides real mistakes.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// Defaults apply.
		case err != nil:
			return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
			}
		}
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// ParsedTimeout returns the LLM timeout as a duration, zero when unset or
// unparseable.
func (c Config) ParsedTimeout() time.Duration {
	d, err := time.ParseDuration(c.LLM.Timeout)
	if err != nil {
		return 0
	}
	return d
}

// applyEnvOverrides lets the environment win over the file, matching how
// the service is deployed (secrets come from the environment, not disk).
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("DAYFLOW_API_KEY"); v != "" {
		c.LLM.APIKey = v
	} else if v := os.Getenv("GEMINI_API_KEY"); v != "" && c.LLM.APIKey == "" {
		c.LLM.APIKey = v
	}
	if v := os.Getenv("DAYFLOW_MODEL"); v != "" {
		c.LLM.Model = v
	}
	if v := os.Getenv("DAYFLOW_TEMPLATES"); v != "" {
		c.Templates.Path = v
	}
}
