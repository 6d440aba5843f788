package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/calperiod/calperiod-go/pkg/period"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"
)

// Output formats.
const (
	OutputText = "text"
	OutputISO  = "iso"
	OutputYAML = "yaml"
	OutputCBOR = "cbor"
)

// Config represents the command configuration
type Config struct {
	Output   string      `mapstructure:"output"`
	LogLevel string      `mapstructure:"log_level"`
	LogFile  string      `mapstructure:"log_file"`
	Open     OpenConfig  `mapstructure:"open"`
	Shell    ShellConfig `mapstructure:"shell"`
}

// OpenConfig sets the bounds substituted for the missing side of an open
// period text such as "2000..".
type OpenConfig struct {
	Past   string `mapstructure:"past"`
	Future string `mapstructure:"future"`
}

// ShellConfig represents interactive shell configuration
type ShellConfig struct {
	Prompt      string `mapstructure:"prompt"`
	HistoryFile string `mapstructure:"history_file"`
}

// LoadConfig reads the configuration from path, or from
// $HOME/.calperiod.yaml when path is empty. A missing default file is not an
// error. PERIOD_* environment variables and the given flags override file
// values.
func LoadConfig(path string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	v.SetDefault("output", OutputText)
	v.SetDefault("log_level", "warn")
	v.SetDefault("log_file", "")
	v.SetDefault("open.past", "")
	v.SetDefault("open.future", "")
	v.SetDefault("shell.prompt", "")
	v.SetDefault("shell.history_file", "")

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(".calperiod")
		v.SetConfigType("yaml")
		v.AddConfigPath("$HOME")
	}

	v.SetEnvPrefix("PERIOD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for key, name := range map[string]string{
			"output":    "output",
			"log_level": "log-level",
		} {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("failed to bind flag %s: %w", name, err)
				}
			}
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	switch c.Output {
	case OutputText, OutputISO, OutputYAML, OutputCBOR:
	default:
		return fmt.Errorf("output must be one of text, iso, yaml, cbor; got %q", c.Output)
	}

	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}

	bounds, err := c.Bounds()
	if err != nil {
		return err
	}
	if !bounds.Past.Before(bounds.Future) {
		return fmt.Errorf("open.past %s must precede open.future %s", bounds.Past, bounds.Future)
	}

	return nil
}

// Bounds returns the open period bounds, falling back to
// period.DefaultOpenBounds for unset sides.
func (c *Config) Bounds() (period.OpenBounds, error) {
	bounds := period.DefaultOpenBounds()
	if c.Open.Past != "" {
		i, err := period.InstantFromText(c.Open.Past)
		if err != nil {
			return bounds, fmt.Errorf("open.past: %w", err)
		}
		bounds.Past = i
	}
	if c.Open.Future != "" {
		i, err := period.InstantFromText(c.Open.Future)
		if err != nil {
			return bounds, fmt.Errorf("open.future: %w", err)
		}
		bounds.Future = i
	}
	return bounds, nil
}
