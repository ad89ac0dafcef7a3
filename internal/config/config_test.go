package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func noEnv(string) (string, bool) { return "", false }

func envFrom(values map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := values[key]
		return v, ok
	}
}

func TestLoadConfig_NonExistentFile(t *testing.T) {
	tempDir := t.TempDir()

	config, err := loadConfig(tempDir, noEnv)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if config.Version != CurrentVersion {
		t.Errorf("Expected version %s, got %s", CurrentVersion, config.Version)
	}

	if config.API.URL != DefaultAPIURL {
		t.Errorf("Expected default api url '%s', got %s", DefaultAPIURL, config.API.URL)
	}

	if config.Git.Program != DefaultGitProgram {
		t.Errorf("Expected default git program '%s', got %s", DefaultGitProgram, config.Git.Program)
	}

	if !config.ShouldCheckDirectories() {
		t.Error("Expected directory checks to default to true")
	}
}

func TestLoadConfig_ValidFile(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, ConfigFileName)

	configContent := `version: "1.0"
project: abc123
api:
  url: "https://api.example.com/v2"
git:
  program: /opt/git/bin/git
  check_directories: false
hooks:
  post_checkout:
    - command: "make deps"
    - command: "echo switched"
      env:
        FOO: bar
      work_dir: sub
`

	err := os.WriteFile(configPath, []byte(configContent), 0644)
	if err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	config, err := loadConfig(tempDir, noEnv)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if config.Project != "abc123" {
		t.Errorf("Expected project 'abc123', got %s", config.Project)
	}

	if config.API.URL != "https://api.example.com/v2" {
		t.Errorf("Expected api url 'https://api.example.com/v2', got %s", config.API.URL)
	}

	if config.Git.Program != "/opt/git/bin/git" {
		t.Errorf("Expected git program '/opt/git/bin/git', got %s", config.Git.Program)
	}

	if config.ShouldCheckDirectories() {
		t.Error("Expected directory checks to be disabled")
	}

	if len(config.Hooks.PostCheckout) != 2 {
		t.Fatalf("Expected 2 hooks, got %d", len(config.Hooks.PostCheckout))
	}

	if config.Hooks.PostCheckout[1].Env["FOO"] != "bar" {
		t.Errorf("Expected hook env FOO=bar, got %v", config.Hooks.PostCheckout[1].Env)
	}

	if config.Hooks.PostCheckout[1].WorkDir != "sub" {
		t.Errorf("Expected hook work_dir 'sub', got %s", config.Hooks.PostCheckout[1].WorkDir)
	}
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, ConfigFileName)
	if err := os.WriteFile(configPath, []byte("project: from-file\n"), 0o600); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	config, err := loadConfig(tempDir, envFrom(map[string]string{
		EnvToken:   "secret",
		EnvAPIURL:  "http://localhost:8080",
		EnvProject: "from-env",
		EnvGit:     "git2",
	}))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if config.Token != "secret" {
		t.Errorf("Expected token from env, got %q", config.Token)
	}
	if config.API.URL != "http://localhost:8080" {
		t.Errorf("Expected api url from env, got %s", config.API.URL)
	}
	if config.Project != "from-env" {
		t.Errorf("Expected project from env, got %s", config.Project)
	}
	if config.Git.Program != "git2" {
		t.Errorf("Expected git program from env, got %s", config.Git.Program)
	}
}

func TestLoadConfig_UsesProcessEnvironment(t *testing.T) {
	t.Setenv(EnvProject, "process-env")

	config, err := LoadConfig(t.TempDir())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if config.Project != "process-env" {
		t.Errorf("Expected project 'process-env', got %s", config.Project)
	}
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, ConfigFileName)

	invalidContent := `version: "1.0"
hooks:
  post_checkout:
    - command: "make"
    invalid_structure
`

	err := os.WriteFile(configPath, []byte(invalidContent), 0644)
	if err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	_, err = loadConfig(tempDir, noEnv)
	if err == nil {
		t.Error("Expected error for invalid YAML, got nil")
	}
}

func TestLoadConfig_InvalidURL(t *testing.T) {
	tempDir := t.TempDir()

	_, err := loadConfig(tempDir, envFrom(map[string]string{EnvAPIURL: "ftp://example.com"}))
	if err == nil || !strings.Contains(err.Error(), "invalid api url") {
		t.Fatalf("Expected invalid api url error, got %v", err)
	}
}

func TestFileExists(t *testing.T) {
	tempDir := t.TempDir()

	if FileExists(tempDir) {
		t.Fatal("Expected config file to be missing")
	}

	configPath := filepath.Join(tempDir, ConfigFileName)
	if err := os.WriteFile(configPath, []byte("version: 1.0\n"), 0o644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	if !FileExists(tempDir) {
		t.Fatal("Expected config file to exist")
	}
}

func TestSaveConfig(t *testing.T) {
	tempDir := t.TempDir()

	config := Default()
	config.Project = "abc123"
	config.Token = "must-not-be-written"
	config.SetCheckDirectories(false)
	config.Hooks.PostCheckout = []Hook{{Command: "make deps"}}

	err := SaveConfig(tempDir, config)
	if err != nil {
		t.Fatalf("Failed to save config: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(tempDir, ConfigFileName))
	if err != nil {
		t.Fatalf("Config file was not created: %v", err)
	}
	if strings.Contains(string(data), "must-not-be-written") {
		t.Error("Token must never be persisted")
	}

	loadedConfig, err := loadConfig(tempDir, noEnv)
	if err != nil {
		t.Fatalf("Failed to load saved config: %v", err)
	}

	if loadedConfig.Project != config.Project {
		t.Errorf("Expected project %s, got %s", config.Project, loadedConfig.Project)
	}

	if loadedConfig.ShouldCheckDirectories() {
		t.Error("Expected check_directories false to survive a round trip")
	}

	if !loadedConfig.HasHooks() {
		t.Error("Expected hooks to survive a round trip")
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name        string
		config      *Config
		expectError bool
	}{
		{
			name:        "empty config gets defaults",
			config:      &Config{},
			expectError: false,
		},
		{
			name:        "relative api url",
			config:      &Config{API: API{URL: "/v1"}},
			expectError: true,
		},
		{
			name:        "hook without command",
			config:      &Config{Hooks: Hooks{PostCheckout: []Hook{{WorkDir: "sub"}}}},
			expectError: true,
		},
		{
			name:        "valid hook",
			config:      &Config{Hooks: Hooks{PostCheckout: []Hook{{Command: "true"}}}},
			expectError: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.expectError && err == nil {
				t.Error("Expected validation error, got nil")
			}
			if !tt.expectError && err != nil {
				t.Errorf("Expected no validation error, got %v", err)
			}
		})
	}

	t.Run("fills defaults", func(t *testing.T) {
		config := &Config{}
		if err := config.Validate(); err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if config.Version != CurrentVersion || config.API.URL != DefaultAPIURL || config.Git.Program != DefaultGitProgram {
			t.Errorf("Expected defaults to be filled, got %+v", config)
		}
	})
}

func TestConfigString(t *testing.T) {
	config := Default()
	config.Token = "secret"

	if strings.Contains(config.String(), "secret") {
		t.Error("String must not include the token")
	}
	if !strings.Contains(config.String(), "check_directories=true") {
		t.Errorf("Unexpected summary: %s", config.String())
	}
}
