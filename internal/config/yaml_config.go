package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// YAMLConfig represents the structure of the config.yaml file.
// Word lists are easier to manage in YAML than env vars.
type YAMLConfig struct {
	Profanity ProfanityConfig `yaml:"profanity"`
}

// ProfanityConfig extends the built-in profanity lexicon.
type ProfanityConfig struct {
	Words      []string `yaml:"words"`      // Matched as whole words
	Substrings []string `yaml:"substrings"` // Matched anywhere inside a word
	Allow      []string `yaml:"allow"`      // Never blocked
}

// LoadYAMLConfig loads the YAML configuration file.
// Path is determined by CONFIG_FILE env var, defaulting to "config.yaml".
// Returns nil without error if the config file doesn't exist.
func LoadYAMLConfig() (*YAMLConfig, error) {
	return LoadYAMLConfigFile(getEnv("CONFIG_FILE", "config.yaml"))
}

// LoadYAMLConfigFile loads the YAML configuration from path.
func LoadYAMLConfigFile(path string) (*YAMLConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Config file is optional
			return nil, nil
		}
		return nil, err
	}

	var cfg YAMLConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// ProfanityWords returns the extra whole-word terms, nil-safe.
func (c *YAMLConfig) ProfanityWords() []string {
	if c == nil {
		return nil
	}
	return c.Profanity.Words
}

// ProfanitySubstrings returns the extra substring terms, nil-safe.
func (c *YAMLConfig) ProfanitySubstrings() []string {
	if c == nil {
		return nil
	}
	return c.Profanity.Substrings
}

// ProfanityAllow returns the allow list, nil-safe.
func (c *YAMLConfig) ProfanityAllow() []string {
	if c == nil {
		return nil
	}
	return c.Profanity.Allow
}
