package arena

import (
	"log/slog"
	"os"
)

// logEnv enables debug logging to stderr when no logger is configured.
const logEnv = "ARENA_LOG_ALLOC"

// defaultLogger returns a stderr debug logger when ARENA_LOG_ALLOC is set and
// a discarding logger otherwise.
func defaultLogger() *slog.Logger {
	if os.Getenv(logEnv) != "" {
		return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})).With("component", "arena")
	}
	return slog.New(slog.DiscardHandler)
}
