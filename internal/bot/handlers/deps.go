package handlers

import (
	"context"
	"log/slog"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/edgard/greetbot/internal/config"
	"github.com/edgard/greetbot/internal/session"
)

// HandlerDeps provides dependencies for Telegram message handlers.
type HandlerDeps struct {
	Logger  *slog.Logger
	Config  *config.Config
	Session *session.Session
}

// Sender is the part of the Telegram client the handlers reply through.
// *bot.Bot satisfies it.
type Sender interface {
	SendMessage(ctx context.Context, params *bot.SendMessageParams) (*models.Message, error)
}
