// Package config loads generator and CLI settings from files, environment
// variables and flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/viper"

	"github.com/ericlevine/barcodegen"
)

const (
	// FileName is the base name of configuration files, without extension.
	FileName = "barcodegen"

	// EnvPrefix is the prefix of environment variables.
	EnvPrefix = "BARCODEGEN"
)

// Config holds the effective settings.
type Config struct {
	Ink        string `mapstructure:"ink" yaml:"ink"`
	Background string `mapstructure:"background" yaml:"background"`
	Width      int    `mapstructure:"width" yaml:"width"`
	Height     int    `mapstructure:"height" yaml:"height"`
	Workers    int    `mapstructure:"workers" yaml:"workers"`
	LogLevel   string `mapstructure:"log_level" yaml:"log_level"`
}

// Colors parses the configured ink and background.
func (c *Config) Colors() (barcodegen.ColorPair, error) {
	ink, err := barcodegen.ParseColor(c.Ink)
	if err != nil {
		return barcodegen.ColorPair{}, fmt.Errorf("ink: %w", err)
	}
	bg, err := barcodegen.ParseColor(c.Background)
	if err != nil {
		return barcodegen.ColorPair{}, fmt.Errorf("background: %w", err)
	}
	return barcodegen.ColorPair{Ink: ink, Background: bg}, nil
}

// Validate checks the settings.
func (c *Config) Validate() error {
	var errs []error
	if _, err := c.Colors(); err != nil {
		errs = append(errs, err)
	}
	if c.Width < 1 || c.Height < 1 {
		errs = append(errs, fmt.Errorf("size must be positive, got %dx%d", c.Width, c.Height))
	}
	if c.Workers < 1 {
		errs = append(errs, fmt.Errorf("workers must be at least 1, got %d", c.Workers))
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("unknown log level %q", c.LogLevel))
	}
	return errors.Join(errs...)
}

// Loader reads a Config through viper.
type Loader struct {
	v *viper.Viper
}

// NewLoader creates a loader on v, which may already have flags bound.
func NewLoader(v *viper.Viper) *Loader {
	return &Loader{v: v}
}

// Load reads configFile, or searches the default locations when it is
// empty. A missing file in the default locations is not an error.
func (l *Loader) Load(configFile string) (*Config, error) {
	l.setDefaults()
	l.v.SetEnvPrefix(EnvPrefix)
	l.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	l.v.AutomaticEnv()

	if configFile != "" {
		l.v.SetConfigFile(configFile)
	} else {
		l.v.SetConfigName(FileName)
		l.v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			l.v.AddConfigPath(filepath.Join(home, ".config", FileName))
		}
	}

	if err := l.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := l.v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &cfg, nil
}

// ConfigFileUsed returns the file the configuration was read from, if any.
func (l *Loader) ConfigFileUsed() string {
	return l.v.ConfigFileUsed()
}

func (l *Loader) setDefaults() {
	l.v.SetDefault("ink", barcodegen.Black.String())
	l.v.SetDefault("background", barcodegen.White.String())
	l.v.SetDefault("width", 400)
	l.v.SetDefault("height", 120)
	l.v.SetDefault("workers", runtime.GOMAXPROCS(0))
	l.v.SetDefault("log_level", "info")
}
