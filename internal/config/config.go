package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"

	"go.yaml.in/yaml/v3"
)

// Config represents the envctl project configuration
type Config struct {
	Version string `yaml:"version"`
	Project string `yaml:"project,omitempty"`
	API     API    `yaml:"api,omitempty"`
	Git     Git    `yaml:"git,omitempty"`
	Hooks   Hooks  `yaml:"hooks,omitempty"`

	// Internal field: API token, only ever read from the environment
	Token string `yaml:"-"`
}

// API represents the remote API settings
type API struct {
	URL string `yaml:"url,omitempty"`
}

// Git represents how the git binary is driven
type Git struct {
	Program          string `yaml:"program,omitempty"`
	CheckDirectories *bool  `yaml:"check_directories,omitempty"` // nil = true
}

// Hooks represents commands run after switching branches
type Hooks struct {
	PostCheckout []Hook `yaml:"post_checkout,omitempty"`
}

// Hook represents a single hook command
type Hook struct {
	Command string            `yaml:"command"`
	Env     map[string]string `yaml:"env,omitempty"`
	WorkDir string            `yaml:"work_dir,omitempty"`
}

const (
	ConfigFileName        = ".envctl.yml"
	CurrentVersion        = "1.0"
	DefaultAPIURL         = "https://api.envctl.dev/v1"
	DefaultGitProgram     = "git"
	configFilePermissions = 0o600
)

// Environment variables that override file settings
const (
	EnvToken   = "ENVCTL_TOKEN"
	EnvAPIURL  = "ENVCTL_API_URL"
	EnvProject = "ENVCTL_PROJECT"
	EnvGit     = "ENVCTL_GIT"
)

// Default returns the configuration used when no file exists
func Default() *Config {
	return &Config{
		Version: CurrentVersion,
		API:     API{URL: DefaultAPIURL},
		Git:     Git{Program: DefaultGitProgram},
	}
}

// FileExists reports whether a configuration file exists in repoRoot
func FileExists(repoRoot string) bool {
	_, err := os.Stat(filepath.Join(repoRoot, ConfigFileName))
	return err == nil
}

// LoadConfig loads configuration from .envctl.yml in the repository root.
// A missing file yields the defaults. Environment overrides are applied last.
func LoadConfig(repoRoot string) (*Config, error) {
	return loadConfig(repoRoot, os.LookupEnv)
}

func loadConfig(repoRoot string, lookupEnv func(string) (string, bool)) (*Config, error) {
	configPath := filepath.Join(repoRoot, ConfigFileName)

	config := Default()
	data, err := os.ReadFile(configPath)
	switch {
	case os.IsNotExist(err):
		// defaults only
	case err != nil:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	default:
		config = &Config{}
		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	config.applyEnv(lookupEnv)

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

func (c *Config) applyEnv(lookupEnv func(string) (string, bool)) {
	if v, ok := lookupEnv(EnvToken); ok {
		c.Token = v
	}
	if v, ok := lookupEnv(EnvAPIURL); ok && v != "" {
		c.API.URL = v
	}
	if v, ok := lookupEnv(EnvProject); ok && v != "" {
		c.Project = v
	}
	if v, ok := lookupEnv(EnvGit); ok && v != "" {
		c.Git.Program = v
	}
}

// SaveConfig saves configuration to .envctl.yml in the repository root
func SaveConfig(repoRoot string, config *Config) error {
	if err := config.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	configPath := filepath.Join(repoRoot, ConfigFileName)

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, configFilePermissions); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate fills in defaults and validates the configuration
func (c *Config) Validate() error {
	if c.Version == "" {
		c.Version = CurrentVersion
	}
	if c.API.URL == "" {
		c.API.URL = DefaultAPIURL
	}
	if c.Git.Program == "" {
		c.Git.Program = DefaultGitProgram
	}

	u, err := url.Parse(c.API.URL)
	if err != nil {
		return fmt.Errorf("invalid api url '%s': %w", c.API.URL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid api url '%s', must be an absolute http(s) URL", c.API.URL)
	}

	for i, hook := range c.Hooks.PostCheckout {
		if hook.Command == "" {
			return fmt.Errorf("invalid hook %d: 'command' field is required", i+1)
		}
	}

	return nil
}

// HasHooks returns true if the configuration has any post-checkout hooks
func (c *Config) HasHooks() bool {
	return len(c.Hooks.PostCheckout) > 0
}

// ShouldCheckDirectories returns whether git commands verify the repository first
func (c *Config) ShouldCheckDirectories() bool {
	if c.Git.CheckDirectories != nil {
		return *c.Git.CheckDirectories
	}
	return true
}

// SetCheckDirectories sets git.check_directories explicitly
func (c *Config) SetCheckDirectories(enabled bool) {
	c.Git.CheckDirectories = &enabled
}

// String renders a short summary for debug logging without the token
func (c *Config) String() string {
	return fmt.Sprintf("project=%s api=%s git=%s check_directories=%s hooks=%d",
		c.Project, c.API.URL, c.Git.Program, strconv.FormatBool(c.ShouldCheckDirectories()), len(c.Hooks.PostCheckout))
}
