// Package config loads uciconfig settings from defaults, an optional TOML
// file and UCICONFIG_* environment variables.
package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/viper"

	"github.com/honeybbq/uciconfig/pkg/ucierr"
)

const (
	// AppName is the application name.
	AppName = "uciconfig"
	// ConfigFileName is the name of the config file (without extension).
	ConfigFileName = "config"
	// ConfigFileExt is the config file extension.
	ConfigFileExt = "toml"
	// EnvPrefix prefixes environment overrides, e.g. UCICONFIG_SORT_SECTION.
	EnvPrefix = "UCICONFIG"
)

// Config holds every tunable of the CLI.
type Config struct {
	Sort   SortConfig   `mapstructure:"sort"`
	Output OutputConfig `mapstructure:"output"`
	Parse  ParseConfig  `mapstructure:"parse"`
	Log    LogConfig    `mapstructure:"log"`
}

// SortConfig selects the section and option used by the sort transform.
type SortConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Section string `mapstructure:"section"`
	Option  string `mapstructure:"option"`
}

// OutputConfig controls where rewritten files go.
type OutputConfig struct {
	Suffix string `mapstructure:"suffix"`
}

// ParseConfig mirrors uciconfig.ParseOptions.
type ParseConfig struct {
	Strict bool `mapstructure:"strict"`
}

// LogConfig controls the CLI logger.
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// DefaultConfig returns the built-in settings.
func DefaultConfig() *Config {
	return &Config{
		Sort:   SortConfig{Enabled: true, Section: "host", Option: "ip"},
		Output: OutputConfig{Suffix: ".new"},
		Parse:  ParseConfig{Strict: false},
		Log:    LogConfig{Level: "warn"},
	}
}

// LoadOptions tells Load where to look.
type LoadOptions struct {
	// ConfigFilePath, when set, must exist and is used exclusively.
	ConfigFilePath string
	// ConfigDirPath overrides the platform config directory.
	ConfigDirPath string
}

// Dir returns $XDG_CONFIG_HOME/uciconfig, falling back to ~/.config/uciconfig.
func Dir() (string, error) {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, AppName), nil
}

// Load resolves the configuration and returns it with the path of the file
// that was read (empty when only defaults and environment were used).
func Load(ctx context.Context, opts LoadOptions) (*Config, string, error) {
	select {
	case <-ctx.Done():
		return nil, "", fmt.Errorf("load config canceled: %w", ctx.Err())
	default:
	}

	v := viper.New()
	defaults := DefaultConfig()
	v.SetDefault("sort.enabled", defaults.Sort.Enabled)
	v.SetDefault("sort.section", defaults.Sort.Section)
	v.SetDefault("sort.option", defaults.Sort.Option)
	v.SetDefault("output.suffix", defaults.Output.Suffix)
	v.SetDefault("parse.strict", defaults.Parse.Strict)
	v.SetDefault("log.level", defaults.Log.Level)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	resolvedPath := ""
	if opts.ConfigFilePath != "" {
		if _, err := os.Stat(opts.ConfigFilePath); err != nil {
			return nil, "", ucierr.New(ucierr.KindIO, fmt.Errorf("config file not found: %w", err))
		}
		v.SetConfigFile(opts.ConfigFilePath)
		v.SetConfigType(ConfigFileExt)
		if err := v.ReadInConfig(); err != nil {
			return nil, "", ucierr.New(ucierr.KindValidation, fmt.Errorf("read config %s: %w", opts.ConfigFilePath, err))
		}
		resolvedPath = opts.ConfigFilePath
	} else {
		dir := opts.ConfigDirPath
		if dir == "" {
			var err error
			if dir, err = Dir(); err != nil {
				return nil, "", err
			}
		}
		v.AddConfigPath(dir)
		v.SetConfigName(ConfigFileName)
		v.SetConfigType(ConfigFileExt)
		if err := v.ReadInConfig(); err != nil {
			// If no config file found, use defaults (no error)
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, "", ucierr.New(ucierr.KindValidation, fmt.Errorf("read config: %w", err))
			}
		} else {
			resolvedPath = v.ConfigFileUsed()
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, "", fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", err
	}
	return &cfg, resolvedPath, nil
}

// Validate checks values viper cannot check for us.
func (c *Config) Validate() error {
	if c.Sort.Enabled && (c.Sort.Section == "" || c.Sort.Option == "") {
		return ucierr.New(ucierr.KindValidation, errors.New("sort.section and sort.option must be set when sorting is enabled"))
	}
	if c.Output.Suffix == "" {
		return ucierr.New(ucierr.KindValidation, errors.New("output.suffix must not be empty"))
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return ucierr.New(ucierr.KindValidation, fmt.Errorf("log.level: %w", err))
	}
	return nil
}

// LogLevel returns the parsed log level; Validate guarantees it parses.
func (c *Config) LogLevel() log.Level {
	level, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return log.WarnLevel
	}
	return level
}
