// Package tasks implements scheduled tasks for greetbot.
// It includes task definitions, dependencies, and registration mechanisms.
package tasks

import (
	"log/slog"

	"github.com/edgard/greetbot/internal/session"
)

// TaskDeps contains all dependencies required by scheduled tasks.
type TaskDeps struct {
	Logger   *slog.Logger
	Session  *session.Session
	Telegram session.IdentityFetcher
}
