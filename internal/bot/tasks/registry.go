package tasks

import (
	"context"
)

// ScheduledTaskFunc defines the standard signature for all scheduled tasks.
// The context provided by the scheduler should be respected for cancellation.
type ScheduledTaskFunc func(ctx context.Context) error

// RegisterAllTasks returns all scheduled tasks keyed by the name used in the
// scheduler.tasks configuration section.
func RegisterAllTasks(deps TaskDeps) map[string]ScheduledTaskFunc {
	tasks := make(map[string]ScheduledTaskFunc)

	tasks["session_check"] = newSessionCheckTask(deps)

	deps.Logger.Debug("Initialized scheduled tasks", "count", len(tasks))
	return tasks
}
