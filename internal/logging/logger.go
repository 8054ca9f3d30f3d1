package logging

import (
	"log/slog"
	"os"
	"strings"

	"github.com/google/wire"
	"github.com/solos-nft/solos-deploy/internal/domain/config"
)

var LoggingSet = wire.NewSet(
	NewLogger,
)

// NewLogger creates a new logger based on runtime configuration
func NewLogger(cfg *config.RuntimeConfig) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: levelFromEnv(os.Getenv("SOLOS_LOG_LEVEL"), slog.LevelWarn),
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			// Remove time for cleaner output
			if a.Key == slog.TimeKey {
				return slog.Attr{}
			}
			return a
		},
	}

	if cfg.Debug {
		opts.Level = slog.LevelDebug
	}

	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}

func levelFromEnv(val string, fallback slog.Level) slog.Level {
	switch strings.ToLower(val) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		// unknown value, keep default
		return fallback
	}
}
