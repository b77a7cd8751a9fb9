package config

import (
	"errors"
	"fmt"
	"strings"

	"imgmin/internal/codec"

	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment variables that override flags.
const EnvPrefix = "IMGMIN"

var (
	// ErrInvalidQuality is returned when quality is outside 1-99.
	ErrInvalidQuality = errors.New("quality must be in range 1-99")
	// ErrInvalidColorRange is returned when the palette size is outside 1-256.
	ErrInvalidColorRange = errors.New("colors must be in range 1-256")
	// ErrInvalidMethod is returned for an unknown quantization method.
	ErrInvalidMethod = errors.New("method must be one of 0, 1, 2, 3")
)

// Config represents the settings of a single invocation.
type Config struct {
	Path      string        `mapstructure:"path"`
	Quality   int           `mapstructure:"quality"`
	Method    int           `mapstructure:"method"`
	Colors    int           `mapstructure:"colors"`
	Replace   bool          `mapstructure:"replace"`
	Output    string        `mapstructure:"output"`
	DryRun    bool          `mapstructure:"dry"`
	Remove    bool          `mapstructure:"remove"`
	AssumeYes bool          `mapstructure:"assume-yes"`
	Logging   LoggingConfig `mapstructure:",squash"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Verbose    bool   `mapstructure:"verbose"`
	FilePath   string `mapstructure:"log-file"`
	MaxSize    int    `mapstructure:"log-max-size"` // MB
	MaxBackups int    `mapstructure:"log-max-backups"`
	MaxAge     int    `mapstructure:"log-max-age"` // days
}

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	return &Config{
		Path:    ".",
		Quality: 75,
		Method:  int(codec.DefaultMethod),
		Colors:  256,
		Logging: LoggingConfig{
			MaxSize:    10,
			MaxBackups: 3,
			MaxAge:     30,
		},
	}
}

// FromViper builds a Config from flag and environment values bound to v.
func FromViper(v *viper.Viper) (*Config, error) {
	cfg := DefaultConfig()

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	// Rotation settings have no flags; defaults register them so the
	// environment can override them.
	v.SetDefault("log-max-size", cfg.Logging.MaxSize)
	v.SetDefault("log-max-backups", cfg.Logging.MaxBackups)
	v.SetDefault("log-max-age", cfg.Logging.MaxAge)

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.Quality < 1 || c.Quality > 99 {
		return fmt.Errorf("%w, got %d", ErrInvalidQuality, c.Quality)
	}
	if c.Colors < 1 || c.Colors > 256 {
		return fmt.Errorf("%w, got %d", ErrInvalidColorRange, c.Colors)
	}
	if !codec.Method(c.Method).Valid() {
		return fmt.Errorf("%w, got %d", ErrInvalidMethod, c.Method)
	}
	if c.Path == "" {
		c.Path = "."
	}
	return nil
}

// QuantizeMethod returns the configured method as a codec.Method.
func (c *Config) QuantizeMethod() codec.Method {
	return codec.Method(c.Method)
}
