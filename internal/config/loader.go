package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// dotEnvFile is loaded from the working directory when present.
const dotEnvFile = ".env"

// LoadConfig loads, merges and validates the configuration.
//
// Precedence, highest first: process environment, .env file, the YAML file at
// path, defaults. An empty path or a missing file is not an error. No network
// activity happens here, so a missing secret is reported before any client
// is created.
func LoadConfig(path string) (*Config, error) {
	if err := loadDotEnv(dotEnvFile); err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetConfigType("yaml")
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if err := v.BindEnv("telegram.token", EnvTelegramToken); err != nil {
		return nil, fmt.Errorf("failed to bind %s: %w", EnvTelegramToken, err)
	}
	if err := v.BindEnv("gemini.api_key", EnvGeminiAPIKey); err != nil {
		return nil, fmt.Errorf("failed to bind %s: %w", EnvGeminiAPIKey, err)
	}
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
			}
			slog.Debug("Config file not found, using defaults and environment", "path", path)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("%w: failed to parse config: %v", ErrValidation, err)
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadDotEnv copies variables from the named file into the process
// environment without overriding variables that are already set.
func loadDotEnv(name string) error {
	if err := godotenv.Load(name); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load %s: %w", name, err)
	}
	return nil
}
