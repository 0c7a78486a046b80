// Package middleware wraps CLI commands with cross-cutting behavior.
package middleware

import (
	"context"
	"flag"
	"log/slog"
	"time"

	"github.com/google/subcommands"
)

// loggedCommand decorates a subcommand with start and finish logging.
type loggedCommand struct {
	subcommands.Command
}

// WithLogging returns cmd wrapped so every execution logs the command name,
// its arguments, the duration and the exit status.
func WithLogging(cmd subcommands.Command) subcommands.Command {
	return loggedCommand{Command: cmd}
}

func (c loggedCommand) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	start := time.Now()
	name := c.Name()
	slog.Debug("Command started", "command", name, "args", f.Args())

	status := c.Command.Execute(ctx, f, args...)

	duration := time.Since(start).Milliseconds()
	switch status {
	case subcommands.ExitSuccess:
		slog.Info("Command ok",
			"command", name,
			"duration_ms", duration,
		)
	case subcommands.ExitUsageError:
		slog.Warn("Command usage error",
			"command", name,
			"duration_ms", duration,
		)
	default:
		slog.Error("Command failed",
			"command", name,
			"status", int(status),
			"duration_ms", duration,
		)
	}

	return status
}
