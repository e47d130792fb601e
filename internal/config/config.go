// Package config resolves runtime settings from defaults, an optional
// config file, a .env file and ASKESIS_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/rjgrunau/askesis/internal/substack"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "ASKESIS"

// Config holds runtime settings.
type Config struct {
	FeedURL     string `mapstructure:"feed_url"`
	Addr        string `mapstructure:"addr"`
	RecentCount int    `mapstructure:"recent_count"`
	PagesDir    string `mapstructure:"pages_dir"`
	SiteFile    string `mapstructure:"site_file"`
	UniqueSlugs bool   `mapstructure:"unique_slugs"`
	LogLevel    string `mapstructure:"log_level"`
}

// Options controls where Load looks.
type Options struct {
	// ConfigFile is an explicit config file; it must exist when set.
	ConfigFile string
	// EnvFile is loaded into the environment when present. Defaults to ".env".
	EnvFile string
}

// Load resolves the configuration. Environment variables win over the
// config file, which wins over defaults.
func Load(opts Options) (*Config, error) {
	envFile := opts.EnvFile
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load %s: %w", envFile, err)
	}

	v := viper.New()
	v.SetDefault("feed_url", substack.DefaultFeedURL)
	v.SetDefault("addr", ":8080")
	v.SetDefault("recent_count", 3)
	v.SetDefault("pages_dir", "content/pages")
	v.SetDefault("site_file", "")
	v.SetDefault("unique_slugs", false)
	v.SetDefault("log_level", "info")

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("askesis")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if opts.ConfigFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	if cfg.RecentCount < 0 {
		return nil, fmt.Errorf("recent_count must be non-negative")
	}
	if _, err := ParseLevel(cfg.LogLevel); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ParseLevel maps a level name to a slog level.
func ParseLevel(name string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(name)); err != nil {
		return 0, fmt.Errorf("invalid log level %q: %w", name, err)
	}
	return level, nil
}
