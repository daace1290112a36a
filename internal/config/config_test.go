package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// setEnv sets key for the duration of the test; an empty value unsets it.
func setEnv(t *testing.T, key, value string) {
	t.Helper()
	t.Setenv(key, value)
	if value == "" {
		if err := os.Unsetenv(key); err != nil {
			t.Fatalf("unsetenv %s: %v", key, err)
		}
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	setEnv(t, EnvTelegramToken, "123:abc")
	setEnv(t, EnvGeminiAPIKey, "gemini-key")

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Telegram.Token != "123:abc" {
		t.Errorf("Telegram.Token = %q, want %q", cfg.Telegram.Token, "123:abc")
	}
	if cfg.Gemini.APIKey != "gemini-key" {
		t.Errorf("Gemini.APIKey = %q, want %q", cfg.Gemini.APIKey, "gemini-key")
	}
	if cfg.Responder.Keyword != "hello" {
		t.Errorf("Responder.Keyword = %q, want %q", cfg.Responder.Keyword, "hello")
	}
	if cfg.Responder.Reply != "Hello!" {
		t.Errorf("Responder.Reply = %q, want %q", cfg.Responder.Reply, "Hello!")
	}
	if cfg.Logger.Level != "info" {
		t.Errorf("Logger.Level = %q, want %q", cfg.Logger.Level, "info")
	}
	if cfg.Gemini.VerifyOnStart {
		t.Error("Gemini.VerifyOnStart = true, want false")
	}
	if cfg.Telegram.PollTimeout != time.Minute {
		t.Errorf("Telegram.PollTimeout = %v, want %v", cfg.Telegram.PollTimeout, time.Minute)
	}

	task, ok := cfg.Scheduler.Tasks["session_check"]
	if !ok {
		t.Fatal("session_check task missing from defaults")
	}
	if task.Enabled {
		t.Error("session_check enabled by default")
	}
	if task.Schedule == "" {
		t.Error("session_check has no default schedule")
	}
}

func TestLoadConfigMissingSecrets(t *testing.T) {
	tests := []struct {
		name    string
		token   string
		apiKey  string
		wantEnv string
	}{
		{name: "token missing", token: "", apiKey: "gemini-key", wantEnv: EnvTelegramToken},
		{name: "api key missing", token: "123:abc", apiKey: "", wantEnv: EnvGeminiAPIKey},
		{name: "both missing reports token first", token: "", apiKey: "", wantEnv: EnvTelegramToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Chdir(t.TempDir())
			setEnv(t, EnvTelegramToken, tt.token)
			setEnv(t, EnvGeminiAPIKey, tt.apiKey)

			cfg, err := LoadConfig("")
			if err == nil {
				t.Fatalf("LoadConfig() = %+v, want error", cfg)
			}
			if !errors.Is(err, ErrMissingValue) {
				t.Fatalf("LoadConfig() error = %v, want ErrMissingValue", err)
			}

			var missing *MissingValueError
			if !errors.As(err, &missing) {
				t.Fatalf("LoadConfig() error type = %T, want *MissingValueError", err)
			}
			if missing.Env != tt.wantEnv {
				t.Errorf("missing.Env = %q, want %q", missing.Env, tt.wantEnv)
			}
			if want := tt.wantEnv + " is not set"; err.Error() != want {
				t.Errorf("error = %q, want %q", err.Error(), want)
			}
		})
	}
}

func TestLoadConfigDotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	setEnv(t, EnvTelegramToken, "")
	setEnv(t, EnvGeminiAPIKey, "from-environment")

	content := EnvTelegramToken + "=from-dotenv\n" + EnvGeminiAPIKey + "=ignored\n"
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte(content), 0o600); err != nil {
		t.Fatalf("write .env: %v", err)
	}

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Telegram.Token != "from-dotenv" {
		t.Errorf("Telegram.Token = %q, want %q", cfg.Telegram.Token, "from-dotenv")
	}
	if cfg.Gemini.APIKey != "from-environment" {
		t.Errorf("Gemini.APIKey = %q, want environment to win over .env", cfg.Gemini.APIKey)
	}
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	setEnv(t, EnvTelegramToken, "123:abc")
	setEnv(t, EnvGeminiAPIKey, "gemini-key")
	setEnv(t, "LOGGER_LEVEL", "")

	path := filepath.Join(dir, "config.yaml")
	content := `
logger:
  level: debug
  json: true
responder:
  keyword: "hi"
  reply: "Hi there!"
scheduler:
  tasks:
    session_check:
      enabled: true
      schedule: "*/30 * * * * *"
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Logger.Level != "debug" || !cfg.Logger.JSON {
		t.Errorf("Logger = %+v, want debug/json", cfg.Logger)
	}
	if cfg.Responder.Keyword != "hi" || cfg.Responder.Reply != "Hi there!" {
		t.Errorf("Responder = %+v", cfg.Responder)
	}
	task := cfg.Scheduler.Tasks["session_check"]
	if !task.Enabled || task.Schedule != "*/30 * * * * *" {
		t.Errorf("session_check = %+v", task)
	}
}

func TestLoadConfigEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	setEnv(t, EnvTelegramToken, "123:abc")
	setEnv(t, EnvGeminiAPIKey, "gemini-key")
	setEnv(t, "LOGGER_LEVEL", "warn")

	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("logger:\n  level: debug\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Logger.Level != "warn" {
		t.Errorf("Logger.Level = %q, want %q", cfg.Logger.Level, "warn")
	}
}

func TestLoadConfigMissingFileIsTolerated(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	setEnv(t, EnvTelegramToken, "123:abc")
	setEnv(t, EnvGeminiAPIKey, "gemini-key")

	if _, err := LoadConfig(filepath.Join(dir, "absent.yaml")); err != nil {
		t.Fatalf("LoadConfig() error = %v, want nil for missing file", err)
	}
}

func TestLoadConfigInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		file string
	}{
		{name: "bad log level", file: "logger:\n  level: verbose\n"},
		{name: "empty keyword", file: "responder:\n  keyword: \"\"\n"},
		{name: "enabled task without schedule", file: "scheduler:\n  tasks:\n    session_check:\n      enabled: true\n      schedule: \"\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			t.Chdir(dir)
			setEnv(t, EnvTelegramToken, "123:abc")
			setEnv(t, EnvGeminiAPIKey, "gemini-key")
			setEnv(t, "LOGGER_LEVEL", "")
			setEnv(t, "RESPONDER_KEYWORD", "")

			path := filepath.Join(dir, "config.yaml")
			if err := os.WriteFile(path, []byte(tt.file), 0o600); err != nil {
				t.Fatalf("write config: %v", err)
			}

			_, err := LoadConfig(path)
			if !errors.Is(err, ErrValidation) {
				t.Fatalf("LoadConfig() error = %v, want ErrValidation", err)
			}
			if errors.Is(err, ErrMissingValue) {
				t.Errorf("LoadConfig() error = %v, must not report a missing secret", err)
			}
		})
	}
}
