// Package gemini implements integration with Google's Gemini AI API.
// The bot holds a client for the configured key; replies do not use it.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/edgard/greetbot/internal/config"
)

// pingPrompt is the prompt sent when verifying the API key.
const pingPrompt = "Test"

// Client defines the Gemini operations used by the application.
type Client interface {
	// Ping sends a minimal prompt to confirm the key and model are usable.
	Ping(ctx context.Context) error
}

// contentGenerator is the subset of *genai.Models the client calls.
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

type sdkClient struct {
	models    contentGenerator
	log       *slog.Logger
	modelName string
	timeout   time.Duration
}

// NewClient creates a new Gemini AI client with the provided configuration.
// It does not contact the API.
func NewClient(ctx context.Context, cfg config.GeminiConfig, log *slog.Logger) (Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}
	if log == nil {
		log = slog.Default()
	}

	gi, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	logger := log.With("component", "gemini_client")
	logger.Info("Gemini client initialized", "model", cfg.ModelName)
	return newSDKClient(gi.Models, logger, cfg), nil
}

func newSDKClient(models contentGenerator, log *slog.Logger, cfg config.GeminiConfig) *sdkClient {
	return &sdkClient{
		models:    models,
		log:       log,
		modelName: cfg.ModelName,
		timeout:   cfg.VerifyTimeout,
	}
}

func (c *sdkClient) Ping(ctx context.Context) error {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	start := time.Now()
	resp, err := c.models.GenerateContent(ctx, c.modelName, genai.Text(pingPrompt), nil)
	if err != nil {
		var apiErr genai.APIError
		if errors.As(err, &apiErr) {
			c.log.ErrorContext(ctx, "Gemini API rejected verification request", "code", apiErr.Code, "status", apiErr.Status)
			return fmt.Errorf("gemini API verification failed (code %d): %w", apiErr.Code, err)
		}
		c.log.ErrorContext(ctx, "Gemini API verification failed", "error", err)
		return fmt.Errorf("gemini API verification failed: %w", err)
	}

	if resp != nil && resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
		c.log.WarnContext(ctx, "Gemini verification prompt was blocked", "reason", resp.PromptFeedback.BlockReason)
	}

	var preview string
	if resp != nil {
		preview = strings.TrimSpace(resp.Text())
	}
	c.log.InfoContext(ctx, "Gemini API connection verified",
		"model", c.modelName,
		"duration", time.Since(start),
		"response_length", len(preview))
	return nil
}
