package config

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// secrets maps validator namespaces of required secrets to the value the
// operator has to set. Struct field order decides which one is reported
// first when several are missing.
var secrets = map[string]MissingValueError{
	"Config.Telegram.Token": {Key: "telegram.token", Env: EnvTelegramToken},
	"Config.Gemini.APIKey":  {Key: "gemini.api_key", Env: EnvGeminiAPIKey},
}

func validate(cfg *Config) error {
	err := validator.New().Struct(cfg)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}

	for _, fe := range fieldErrs {
		if missing, ok := secrets[fe.Namespace()]; ok && fe.Tag() == "required" {
			return &missing
		}
	}

	return fmt.Errorf("%w: %v", ErrValidation, err)
}
