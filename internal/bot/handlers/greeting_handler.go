package handlers

import (
	"context"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// NewGreetingHandler returns a handler that replies with the configured
// greeting to messages starting with the configured keyword.
func NewGreetingHandler(deps HandlerDeps) bot.HandlerFunc {
	h := greetingHandler{deps}
	return func(ctx context.Context, b *bot.Bot, update *models.Update) {
		h.handle(ctx, b, update)
	}
}

type greetingHandler struct {
	deps HandlerDeps
}

func (h greetingHandler) handle(ctx context.Context, sender Sender, update *models.Update) {
	log := h.deps.Logger.With("handler", "greeting")

	msg := update.Message
	if msg == nil || msg.From == nil {
		log.DebugContext(ctx, "Ignoring update with nil message or sender", "update_id", update.ID)
		return
	}

	// Registered behind IgnoreSelf, checked again so the handler is safe on its own.
	if h.deps.Session.IsSelf(msg.From.ID) {
		return
	}

	chatID := msg.Chat.ID
	if !strings.HasPrefix(msg.Text, h.deps.Config.Responder.Keyword) {
		log.DebugContext(ctx, "Message does not start with keyword, ignoring", "chat_id", chatID, "message_id", msg.ID)
		return
	}

	log.InfoContext(ctx, "Replying to greeting", "chat_id", chatID, "user_id", msg.From.ID)
	_, err := sender.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   h.deps.Config.Responder.Reply,
	})
	if err != nil {
		log.ErrorContext(ctx, "Failed to send greeting", "error", err, "chat_id", chatID)
		return
	}
	log.DebugContext(ctx, "Greeting sent", "chat_id", chatID)
}

// NewDefaultHandler returns the handler for updates no registered handler
// matched. It does nothing besides logging.
func NewDefaultHandler(deps HandlerDeps) bot.HandlerFunc {
	log := deps.Logger.With("handler", "default")
	return func(ctx context.Context, _ *bot.Bot, update *models.Update) {
		log.DebugContext(ctx, "No handler matched update, ignoring", "update_id", update.ID)
	}
}
