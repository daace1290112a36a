// Package handlers contains Telegram bot message handlers,
// along with their registration logic and middleware.
package handlers

import (
	"context"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// IgnoreSelf creates a middleware that drops messages authored by the bot's
// own account, so the bot never answers itself.
func IgnoreSelf(deps HandlerDeps) tgbot.Middleware {
	return func(next tgbot.HandlerFunc) tgbot.HandlerFunc {
		return func(ctx context.Context, bot *tgbot.Bot, update *models.Update) {
			if isOwnMessage(deps, update) {
				deps.Logger.With("middleware", "IgnoreSelf").DebugContext(ctx, "Ignoring message from self",
					"update_id", update.ID, "chat_id", update.Message.Chat.ID)
				return
			}
			next(ctx, bot, update)
		}
	}
}

func isOwnMessage(deps HandlerDeps, update *models.Update) bool {
	if update == nil || update.Message == nil || update.Message.From == nil {
		return false
	}
	return deps.Session.IsSelf(update.Message.From.ID)
}
