package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	logger "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultProvider is the code hosting platform used when none is configured.
	DefaultProvider = "github"

	defaultIntervalSeconds = 1
	defaultCooldownSeconds = 60
)

// Config is the top-level configuration for orgsearch.
type Config struct {
	Provider     string       `yaml:"provider"`     // Code hosting platform, "github" by default
	Organization string       `yaml:"organization"` // Organization whose repositories are searched
	Token        string       `yaml:"token"`        // Inline, ${ENV_VAR}, or file path
	Ignore       []string     `yaml:"ignore"`       // Ignore patterns (extensions or paths)
	Search       SearchConfig `yaml:"search"`
}

// SearchConfig holds the pacing settings for search calls.
type SearchConfig struct {
	IntervalSeconds int `yaml:"interval_seconds"` // Spacing between two search calls
	CooldownSeconds int `yaml:"cooldown_seconds"` // Pause after a rate-limit signal
}

// Interval returns the configured call spacing as a duration.
func (s SearchConfig) Interval() time.Duration {
	return time.Duration(s.IntervalSeconds) * time.Second
}

// Cooldown returns the configured rate-limit pause as a duration.
func (s SearchConfig) Cooldown() time.Duration {
	return time.Duration(s.CooldownSeconds) * time.Second
}

// envVarPattern matches ${VAR_NAME} placeholders.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)}`)

// Default returns the configuration used when no config file is present.
func Default() *Config {
	cfg := &Config{Provider: DefaultProvider}
	applyDefaults(cfg)
	return cfg
}

// Load reads and parses a configuration file, expanding environment
// variables, resolving token file paths, and applying defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
	}

	var cfg Config
	if unmarshalErr := yaml.Unmarshal(data, &cfg); unmarshalErr != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", unmarshalErr)
	}

	cfg.Token = ResolveToken(cfg.Token)
	applyDefaults(&cfg)

	if validateErr := Validate(&cfg); validateErr != nil {
		return nil, validateErr
	}

	return &cfg, nil
}

// FindConfigFile searches for a configuration file in standard locations.
// Returns the path to the first file found or an error if none is found.
func FindConfigFile() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = ""
	}

	locations := []string{
		".",
		".config",
	}
	if homeDir != "" {
		locations = append(
			locations,
			homeDir,
			filepath.Join(homeDir, ".config"),
		)
	}

	patterns := []string{
		".orgsearch.yaml",
		".orgsearch.yml",
		"orgsearch.yaml",
		"orgsearch.yml",
	}

	for _, loc := range locations {
		for _, pat := range patterns {
			p := filepath.Join(loc, pat)
			if _, statErr := os.Stat(p); statErr == nil {
				return p, nil
			}
		}
	}

	return "", errors.New("config file not found in default locations")
}

// ResolveToken expands environment variable references (${VAR}) and, if the
// resulting string is a path to an existing file, reads the token from the file.
func ResolveToken(raw string) string {
	if raw == "" {
		return raw
	}

	// Expand ${ENV_VAR} references
	resolved := envVarPattern.ReplaceAllStringFunc(raw, func(match string) string {
		varName := envVarPattern.FindStringSubmatch(match)[1]
		if val := os.Getenv(varName); val != "" {
			return val
		}
		logger.Warnf("Environment variable %q is not set", varName)
		return ""
	})

	// If the resolved value is a path to an existing file, read the token from it
	if _, statErr := os.Stat(resolved); statErr == nil {
		data, readErr := os.ReadFile(resolved)
		if readErr != nil {
			logger.Warnf("Failed to read token file %q: %v", resolved, readErr)
			return resolved
		}
		logger.Infof("Read token from file %q", resolved)
		return strings.TrimSpace(string(data))
	}

	return resolved
}

// Validate checks for required configuration values.
func Validate(cfg *Config) error {
	if cfg.Provider == "" {
		return errors.New("provider is required")
	}
	if cfg.Search.IntervalSeconds < 0 {
		return fmt.Errorf("search.interval_seconds must not be negative, got %d", cfg.Search.IntervalSeconds)
	}
	if cfg.Search.CooldownSeconds < 0 {
		return fmt.Errorf("search.cooldown_seconds must not be negative, got %d", cfg.Search.CooldownSeconds)
	}
	return nil
}

// applyDefaults fills unset fields with their defaults. A zero pacing value
// means "unset"; disabling the pacing entirely is not supported through the
// config file.
func applyDefaults(cfg *Config) {
	if cfg.Provider == "" {
		cfg.Provider = DefaultProvider
	}
	if cfg.Search.IntervalSeconds == 0 {
		cfg.Search.IntervalSeconds = defaultIntervalSeconds
	}
	if cfg.Search.CooldownSeconds == 0 {
		cfg.Search.CooldownSeconds = defaultCooldownSeconds
	}
}
