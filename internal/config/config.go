// Package config loads furnedit settings from an optional config file,
// FURNEDIT_* environment variables and command-line flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const (
	// EnvPrefix prefixes every environment variable, e.g. FURNEDIT_LOG_LEVEL.
	EnvPrefix = "FURNEDIT"
	// DirEnv overrides the directory searched for config.yaml (for testing).
	DirEnv = "FURNEDIT_CONFIG_DIR"
	// DefaultDir is the config directory under the user's home.
	DefaultDir = ".config/furnedit"
	// DefaultServiceName is the trace service name when none is configured.
	DefaultServiceName = "furnedit"
)

// Config holds all settings.
type Config struct {
	// Dir is the directory relative document names resolve against.
	Dir      string        `mapstructure:"dir"`
	Autosave bool          `mapstructure:"autosave"`
	Log      LogConfig     `mapstructure:"log"`
	History  HistoryConfig `mapstructure:"history"`
	OTLP     OTLPConfig    `mapstructure:"otlp"`
	Service  ServiceConfig `mapstructure:"service"`
}

// LogConfig configures the file logger. An empty File disables logging.
type LogConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

type HistoryConfig struct {
	Limit int `mapstructure:"limit"`
}

// OTLPConfig configures trace export. An empty Endpoint disables export.
type OTLPConfig struct {
	Endpoint string `mapstructure:"endpoint"`
	Insecure bool   `mapstructure:"insecure"`
}

type ServiceConfig struct {
	Name string `mapstructure:"name"`
}

// New returns a viper instance with defaults and environment binding applied.
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault("dir", "")
	v.SetDefault("autosave", false)
	v.SetDefault("log.file", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("history.limit", 100)
	v.SetDefault("otlp.endpoint", "")
	v.SetDefault("otlp.insecure", true)
	v.SetDefault("service.name", "")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads file (or config.yaml from the config directory when file is
// empty) into v and decodes the result. A missing default config file is not
// an error; a missing explicit file is.
func Load(v *viper.Viper, file string) (Config, error) {
	if file != "" {
		v.SetConfigFile(file)
	} else {
		dir, err := configDir()
		if err != nil {
			return Config{}, err
		}
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(dir)
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if cfg.OTLP.Endpoint == "" {
		cfg.OTLP.Endpoint = os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")
	}
	if cfg.Service.Name == "" {
		cfg.Service.Name = os.Getenv("OTEL_SERVICE_NAME")
	}
	if cfg.Service.Name == "" {
		cfg.Service.Name = DefaultServiceName
	}
	return cfg, nil
}

func configDir() (string, error) {
	if dir := os.Getenv(DirEnv); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, DefaultDir), nil
}
