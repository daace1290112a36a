// Package config provides configuration loading, validation, and management
// for the greetbot application. Values come from defaults, an optional YAML
// file, an optional .env file and the process environment.
package config

import (
	"errors"
	"fmt"
	"time"
)

// Environment variables holding the two required secrets.
const (
	EnvTelegramToken = "TELEGRAM_BOT_TOKEN"
	EnvGeminiAPIKey  = "GEMINI_API_KEY"
)

var (
	// ErrValidation is wrapped by every configuration validation failure
	// other than a missing secret.
	ErrValidation = errors.New("configuration validation error")

	// ErrMissingValue is matched by MissingValueError.
	ErrMissingValue = errors.New("required value not set")
)

// MissingValueError reports a required secret that is absent or empty.
type MissingValueError struct {
	Key string // configuration key, e.g. telegram.token
	Env string // environment variable, e.g. TELEGRAM_BOT_TOKEN
}

func (e *MissingValueError) Error() string {
	return fmt.Sprintf("%s is not set", e.Env)
}

func (e *MissingValueError) Unwrap() error {
	return ErrMissingValue
}

// Config holds the full application configuration.
type Config struct {
	Telegram  TelegramConfig  `mapstructure:"telegram"`
	Gemini    GeminiConfig    `mapstructure:"gemini"`
	Logger    LoggerConfig    `mapstructure:"logger"`
	Responder ResponderConfig `mapstructure:"responder"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
}

// TelegramConfig holds the chat platform settings.
type TelegramConfig struct {
	Token       string        `mapstructure:"token"        validate:"required"`
	PollTimeout time.Duration `mapstructure:"poll_timeout" validate:"min=2s,max=10m"`
}

// GeminiConfig holds the generative API settings. The API key is required
// even though replies never call the API.
type GeminiConfig struct {
	APIKey        string        `mapstructure:"api_key"         validate:"required"`
	ModelName     string        `mapstructure:"model_name"      validate:"required"`
	VerifyOnStart bool          `mapstructure:"verify_on_start"`
	VerifyTimeout time.Duration `mapstructure:"verify_timeout"  validate:"min=1s,max=2m"`
}

// LoggerConfig holds logging settings.
type LoggerConfig struct {
	Level string `mapstructure:"level" validate:"oneof=debug info warn error"`
	JSON  bool   `mapstructure:"json"`
}

// ResponderConfig holds the keyword the bot listens for and its reply.
type ResponderConfig struct {
	Keyword string `mapstructure:"keyword" validate:"required"`
	Reply   string `mapstructure:"reply"   validate:"required"`
}

// SchedulerConfig maps task names to their schedule.
type SchedulerConfig struct {
	Tasks map[string]TaskConfig `mapstructure:"tasks" validate:"dive"`
}

// TaskConfig configures a single scheduled task. Schedule is a cron
// expression with a leading seconds field.
type TaskConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Schedule string `mapstructure:"schedule" validate:"required_if=Enabled true"`
}

var defaults = map[string]any{
	"telegram.poll_timeout": time.Minute,

	"gemini.model_name":      "gemini-1.5-flash",
	"gemini.verify_on_start": false,
	"gemini.verify_timeout":  15 * time.Second,

	"logger.level": "info",
	"logger.json":  false,

	"responder.keyword": "hello",
	"responder.reply":   "Hello!",

	"scheduler.tasks": map[string]any{
		"session_check": map[string]any{
			"enabled":  false,
			"schedule": "0 */5 * * * *",
		},
	},
}
