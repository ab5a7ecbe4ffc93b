package shared

import (
	_ "embed"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
)

//go:embed config.example.toml
var exampleConf []byte

// EnvDevelopment is the environment name that enables development behaviour:
// plain cookies, local assets and permissive CORS.
const EnvDevelopment = "development"

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Server   ServerConfig   `toml:"server"`
	API      APIConfig      `toml:"api"`
	Security SecurityConfig `toml:"security"`
	Log      LogConfig      `toml:"log"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Env             string   `toml:"env"`
	Host            string   `toml:"host"`
	Port            int      `toml:"port"`
	StaticDir       string   `toml:"static_dir"`
	ManifestPath    string   `toml:"manifest_path"`
	ShutdownTimeout Duration `toml:"shutdown_timeout"`
}

// APIConfig points at the remote movie API.
type APIConfig struct {
	URL            string   `toml:"url"`
	APIKeyToken    string   `toml:"api_key_token"`
	Timeout        Duration `toml:"timeout"`
	HydrateTimeout Duration `toml:"hydrate_timeout"`
}

// SecurityConfig contains throttling and cross-origin settings.
type SecurityConfig struct {
	AuthRateLimit float64  `toml:"auth_rate_limit"`
	AuthBurst     int      `toml:"auth_burst"`
	CORSOrigins   []string `toml:"cors_origins"`

	// TrustedProxies are peer IPs whose X-Forwarded-For or X-Real-IP the rate limiter believes.
	TrustedProxies []string `toml:"trusted_proxies"`
}

// LogConfig contains logger settings.
type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Duration wraps [time.Duration] so it can be written as "10s" in TOML.
type Duration struct {
	time.Duration
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("%w: duration %q: %v", ErrInvalidConfig, string(text), err)
	}
	d.Duration = v
	return nil
}

// MarshalText implements [encoding.TextMarshaler].
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// IsDevelopment reports whether the server runs in the development environment.
func (c *Config) IsDevelopment() bool {
	return c.Server.Env == EnvDevelopment
}

// LogFormat returns the configured log format, defaulting to JSON outside development.
func (c *Config) LogFormat() string {
	if c.Log.Format != "" {
		return c.Log.Format
	}
	if c.IsDevelopment() {
		return "text"
	}
	return "json"
}

// Addr returns the host:port the HTTP server listens on.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
//
// Values missing from the file keep the embedded defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// ApplyEnv overrides configuration values with the process environment.
//
// Recognised variables: ENV, PORT, API_URL, API_KEY_TOKEN and LOG_LEVEL.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	if getenv == nil {
		getenv = os.Getenv
	}

	if v := getenv("ENV"); v != "" {
		c.Server.Env = v
	}
	if v := getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil || port <= 0 || port > 65535 {
			return fmt.Errorf("%w: PORT=%q", ErrInvalidConfig, v)
		}
		c.Server.Port = port
	}
	if v := getenv("API_URL"); v != "" {
		c.API.URL = v
	}
	if v := getenv("API_KEY_TOKEN"); v != "" {
		c.API.APIKeyToken = v
	}
	if v := getenv("LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}

	return nil
}

// Validate checks the settings the server cannot start without.
func (c *Config) Validate() error {
	if c.API.URL == "" {
		return fmt.Errorf("%w: api.url is required", ErrMissingConfig)
	}
	if c.Server.Port <= 0 {
		return fmt.Errorf("%w: server.port must be positive", ErrInvalidConfig)
	}
	if c.Security.AuthRateLimit < 0 || c.Security.AuthBurst < 0 {
		return fmt.Errorf("%w: rate limits cannot be negative", ErrInvalidConfig)
	}
	return nil
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
