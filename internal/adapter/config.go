package adapter

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	UI      UIConfig      `mapstructure:"ui"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// ServerConfig holds CloudLibrary backend configuration
type ServerConfig struct {
	URL     string        `mapstructure:"url"`     // e.g. http://localhost:8080
	Timeout time.Duration `mapstructure:"timeout"` // Per-request timeout
}

// UIConfig holds UI configuration
type UIConfig struct {
	Language      string `mapstructure:"language"`       // "es" or "en"
	SearchAuthors bool   `mapstructure:"search_authors"` // Also match the query against authors
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			URL:     "",
			Timeout: 30 * time.Second,
		},
		UI: UIConfig{
			Language: "es",
		},
		Logging: LoggingConfig{
			File:  defaultLogPath(),
			Level: "INFO",
		},
	}
}

// defaultLogPath returns the default log file path for the current OS
func defaultLogPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "cloudlib", "cloudlib.log")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "cloudlib", "cloudlib.log")
	}
}

// defaultConfigPath returns the default config directory for the current OS
func defaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "cloudlib")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "cloudlib")
	}
}

// Loader reads and writes the config file. The zero value is not usable;
// construct with NewLoader.
type Loader struct {
	v   *viper.Viper
	dir string
}

// NewLoader creates a loader rooted at dir (empty = OS default)
func NewLoader(dir string) *Loader {
	if dir == "" {
		dir = defaultConfigPath()
	}
	return &Loader{v: viper.New(), dir: dir}
}

// Dir returns the directory the config file lives in
func (l *Loader) Dir() string { return l.dir }

// LoadConfig loads configuration from file and environment
func (l *Loader) LoadConfig() (*Config, error) {
	cfg := DefaultConfig()
	v := l.v

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(l.dir)

	v.SetDefault("server.url", cfg.Server.URL)
	v.SetDefault("server.timeout", cfg.Server.Timeout)
	v.SetDefault("ui.language", cfg.UI.Language)
	v.SetDefault("ui.search_authors", cfg.UI.SearchAuthors)
	v.SetDefault("logging.file", cfg.Logging.File)
	v.SetDefault("logging.level", cfg.Logging.Level)

	// Environment variable overrides (CLOUDLIB_SERVER_URL, ...)
	v.SetEnvPrefix("CLOUDLIB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SaveConfig writes the configuration to <dir>/config.yaml.
// Credentials are never part of Config and so are never written.
func (l *Loader) SaveConfig(cfg *Config) error {
	if err := os.MkdirAll(l.dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Set fields individually to ensure correct key names (snake_case)
	l.v.Set("server.url", cfg.Server.URL)
	l.v.Set("server.timeout", cfg.Server.Timeout.String())
	l.v.Set("ui.language", cfg.UI.Language)
	l.v.Set("ui.search_authors", cfg.UI.SearchAuthors)
	l.v.Set("logging.file", cfg.Logging.File)
	l.v.Set("logging.level", cfg.Logging.Level)

	configFile := filepath.Join(l.dir, "config.yaml")
	if err := l.v.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// IsConfigured returns true if the server URL is set
func (c *Config) IsConfigured() bool {
	return c.Server.URL != ""
}

// Validate checks values that would otherwise fail later at runtime
func (c *Config) Validate() error {
	switch c.UI.Language {
	case "es", "en":
	default:
		return fmt.Errorf("unsupported ui.language %q (want \"es\" or \"en\")", c.UI.Language)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("server.timeout must be positive, got %s", c.Server.Timeout)
	}
	if c.Server.URL != "" {
		if err := ValidateServerURL(c.Server.URL); err != nil {
			return err
		}
	}
	return nil
}

// ValidateServerURL checks that raw is an absolute http(s) URL
func ValidateServerURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid server URL %q: %w", raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid server URL %q: scheme must be http or https", raw)
	}
	if u.Host == "" {
		return fmt.Errorf("invalid server URL %q: missing host", raw)
	}
	return nil
}
