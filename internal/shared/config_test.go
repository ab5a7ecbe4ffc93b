package shared

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestConfig(t *testing.T) {
	t.Run("DefaultConfig", func(t *testing.T) {
		config := DefaultConfig()

		if config.Server.Port != 3000 {
			t.Errorf("expected server port 3000, got %d", config.Server.Port)
		}

		if config.Server.Env != EnvDevelopment {
			t.Errorf("expected env %s, got %s", EnvDevelopment, config.Server.Env)
		}

		if config.API.URL != "http://localhost:3001" {
			t.Errorf("expected api url http://localhost:3001, got %s", config.API.URL)
		}

		if config.API.HydrateTimeout.Duration != 5*time.Second {
			t.Errorf("expected hydrate timeout 5s, got %v", config.API.HydrateTimeout)
		}

		if !config.IsDevelopment() {
			t.Error("expected default config to be development")
		}
	})

	t.Run("CreateConfigFile", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		if err := CreateConfigFile(configPath); err != nil {
			t.Fatalf("failed to create config file: %v", err)
		}

		if _, err := os.Stat(configPath); err != nil {
			t.Fatalf("config file should exist: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load created config: %v", err)
		}

		defaultConfig := DefaultConfig()
		if config.API.URL != defaultConfig.API.URL {
			t.Errorf("created config api url doesn't match default")
		}

		if err := CreateConfigFile(configPath); err == nil {
			t.Error("creating config file again should fail")
		}
	})

	t.Run("LoadConfig", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		testConfig := `[server]
env = "production"
host = "127.0.0.1"
port = 8080

[api]
url = "https://api.example.com"
api_key_token = "key"
timeout = "3s"
`
		if err := os.WriteFile(configPath, []byte(testConfig), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load config: %v", err)
		}

		if config.Server.Port != 8080 {
			t.Errorf("expected server port 8080, got %d", config.Server.Port)
		}

		if config.IsDevelopment() {
			t.Error("expected production config")
		}

		if config.API.Timeout.Duration != 3*time.Second {
			t.Errorf("expected api timeout 3s, got %v", config.API.Timeout)
		}

		if config.API.HydrateTimeout.Duration != 5*time.Second {
			t.Errorf("expected hydrate timeout to keep default 5s, got %v", config.API.HydrateTimeout)
		}

		if config.Addr() != "127.0.0.1:8080" {
			t.Errorf("expected addr 127.0.0.1:8080, got %s", config.Addr())
		}
	})

	t.Run("LoadConfig With Bad Duration", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.toml")
		if err := os.WriteFile(configPath, []byte("[api]\ntimeout = \"soon\"\n"), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		if _, err := LoadConfig(configPath); err == nil {
			t.Error("expected parse error for invalid duration")
		}
	})

	t.Run("LoadConfig Missing File", func(t *testing.T) {
		if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
			t.Error("expected error for missing file")
		}
	})
}

func TestApplyEnv(t *testing.T) {
	env := func(values map[string]string) func(string) string {
		return func(key string) string { return values[key] }
	}

	t.Run("Overrides", func(t *testing.T) {
		config := DefaultConfig()
		err := config.ApplyEnv(env(map[string]string{
			"ENV":           "production",
			"PORT":          "4000",
			"API_URL":       "https://movies.example.com",
			"API_KEY_TOKEN": "abc",
			"LOG_LEVEL":     "debug",
		}))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if config.Server.Env != "production" || config.IsDevelopment() {
			t.Errorf("expected production env, got %s", config.Server.Env)
		}
		if config.Server.Port != 4000 {
			t.Errorf("expected port 4000, got %d", config.Server.Port)
		}
		if config.API.URL != "https://movies.example.com" {
			t.Errorf("unexpected api url %s", config.API.URL)
		}
		if config.API.APIKeyToken != "abc" {
			t.Errorf("unexpected api key token %s", config.API.APIKeyToken)
		}
		if config.Log.Level != "debug" {
			t.Errorf("unexpected log level %s", config.Log.Level)
		}
	})

	t.Run("Empty Environment Keeps Values", func(t *testing.T) {
		config := DefaultConfig()
		if err := config.ApplyEnv(env(nil)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if config.Server.Port != 3000 {
			t.Errorf("expected port 3000, got %d", config.Server.Port)
		}
	})

	t.Run("Invalid Port", func(t *testing.T) {
		config := DefaultConfig()
		err := config.ApplyEnv(env(map[string]string{"PORT": "http"}))
		if !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("expected ErrInvalidConfig, got %v", err)
		}
	})
}

func TestValidate(t *testing.T) {
	config := DefaultConfig()
	if err := config.Validate(); err != nil {
		t.Fatalf("default config should be valid: %v", err)
	}

	config.API.URL = ""
	if err := config.Validate(); !errors.Is(err, ErrMissingConfig) {
		t.Errorf("expected ErrMissingConfig, got %v", err)
	}

	config = DefaultConfig()
	config.Security.AuthBurst = -1
	if err := config.Validate(); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestLogFormat(t *testing.T) {
	config := DefaultConfig()
	if got := config.LogFormat(); got != "text" {
		t.Errorf("expected text in development, got %s", got)
	}

	config.Server.Env = "production"
	if got := config.LogFormat(); got != "json" {
		t.Errorf("expected json in production, got %s", got)
	}

	config.Log.Format = "text"
	if got := config.LogFormat(); got != "text" {
		t.Errorf("expected explicit format to win, got %s", got)
	}
}
