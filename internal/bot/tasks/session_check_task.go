package tasks

import (
	"context"
	"time"
)

const sessionCheckTimeout = 30 * time.Second

// newSessionCheckTask creates a task that confirms the bot credentials are
// still accepted. It only reports; reconnecting is left to the client's
// polling loop.
func newSessionCheckTask(deps TaskDeps) ScheduledTaskFunc {
	log := deps.Logger.With("task", "session_check")

	return func(ctx context.Context) error {
		timeoutCtx, cancel := context.WithTimeout(ctx, sessionCheckTimeout)
		defer cancel()

		startTime := time.Now()
		err := deps.Session.Verify(timeoutCtx, deps.Telegram)
		duration := time.Since(startTime)

		if err != nil {
			log.WarnContext(ctx, "Session check failed", "error", err, "duration", duration,
				"last_ok", deps.Session.LastChecked())
			return err
		}

		log.DebugContext(ctx, "Session check passed", "state", deps.Session.State(), "duration", duration)
		return nil
	}
}
