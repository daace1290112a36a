package handlers

import (
	tgbot "github.com/go-telegram/bot"
)

// RegisteredHandler describes how a handler is attached to the Telegram bot.
type RegisteredHandler struct {
	HandlerType tgbot.HandlerType
	Pattern     string
	Handler     tgbot.HandlerFunc
	Middleware  []tgbot.Middleware
	MatchType   tgbot.MatchType
}

// RegisterAllHandlers returns the message handlers keyed by name.
func RegisterAllHandlers(deps HandlerDeps) map[string]RegisteredHandler {
	handlers := make(map[string]RegisteredHandler)

	handlers["greeting"] = RegisteredHandler{
		HandlerType: tgbot.HandlerTypeMessageText,
		Pattern:     deps.Config.Responder.Keyword,
		Handler:     NewGreetingHandler(deps),
		MatchType:   tgbot.MatchTypePrefix,
		Middleware:  []tgbot.Middleware{IgnoreSelf(deps)},
	}

	return handlers
}
