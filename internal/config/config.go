package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// DefaultPageSize is the number of results requested per search page
const DefaultPageSize = 10

// Config represents the application configuration
type Config struct {
	Version  int            `toml:"version"`
	APIURL   string         `toml:"api_url"`
	PageSize int            `toml:"page_size"`
	Timeout  Duration       `toml:"timeout"`
	Server   ServerSettings `toml:"server"`
	UI       UISettings     `toml:"ui"`
}

// ServerSettings configures the REST backend started by `stringsdb serve`
type ServerSettings struct {
	Addr         string `toml:"addr"`
	DBPath       string `toml:"db_path"`
	Memory       bool   `toml:"memory"`
	SanitizeHTML bool   `toml:"sanitize_html"`
}

// UISettings represents UI-related configuration
type UISettings struct {
	ShowHelpBar bool `toml:"show_help_bar"`
}

// Duration is a time.Duration stored as a Go duration string ("10s")
type Duration struct {
	time.Duration
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", string(text), err)
	}
	d.Duration = parsed
	return nil
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
	Path() string
}

// configService is the concrete implementation
type configService struct {
	filePath string
}

// NewConfigService creates a config service backed by the user config directory
func NewConfigService() ConfigService {
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}

	return &configService{
		filePath: filepath.Join(configDir, "stringsdb", "config.toml"),
	}
}

// NewConfigServiceAt creates a config service backed by an explicit file
func NewConfigServiceAt(path string) ConfigService {
	return &configService{filePath: path}
}

func (cs *configService) Path() string {
	return cs.filePath
}

// Load loads the configuration file, writing the defaults on first run
func (cs *configService) Load() (*Config, error) {
	if _, err := os.Stat(cs.filePath); errors.Is(err, os.ErrNotExist) {
		cfg := DefaultConfig()
		if err := cs.Save(cfg); err != nil {
			return cfg, err
		}
		return cfg, nil
	}
	return cs.LoadFromPath(cs.filePath)
}

// Save saves the configuration to file
func (cs *configService) Save(config *Config) error {
	return cs.SaveToPath(config, cs.filePath)
}

// LoadFromPath loads configuration from a specific path. Missing fields keep
// their default values.
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Validate reports configuration values the application cannot run with
func (c *Config) Validate() error {
	if c.PageSize <= 0 {
		return fmt.Errorf("page_size must be positive, got %d", c.PageSize)
	}
	if c.APIURL == "" {
		return errors.New("api_url must not be empty")
	}
	if c.Timeout.Duration < 0 {
		return fmt.Errorf("timeout must not be negative, got %s", c.Timeout)
	}
	return nil
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version:  1,
		APIURL:   "http://localhost:8080",
		PageSize: DefaultPageSize,
		Timeout:  Duration{10 * time.Second},
		Server: ServerSettings{
			Addr:         ":8080",
			DBPath:       "stringsdb.db",
			SanitizeHTML: true,
		},
		UI: UISettings{
			ShowHelpBar: true,
		},
	}
}
