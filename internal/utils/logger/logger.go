package logger

import (
	"os"
	"strings"

	"golang.org/x/exp/slog"
	"linekeeper/internal/config"
)

// New собирает логгер по окружению: local - цветной вывод, dev и prod - JSON.
func New(env string) *slog.Logger {
	switch env {
	case config.EnvLocal:
		return setupPrettySlog()
	case config.EnvDev:
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	default:
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}
}

// NewWithLevel is New with an explicit level override; an empty or unknown level
// keeps the environment default.
func NewWithLevel(env, level string) *slog.Logger {
	lvl, ok := parseLevel(level)
	if !ok {
		return New(env)
	}
	opts := &slog.HandlerOptions{Level: lvl}
	if env == config.EnvLocal {
		return slog.New(NewPrettyHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, opts))
}

func setupPrettySlog() *slog.Logger {
	return slog.New(NewPrettyHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func parseLevel(s string) (slog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, true
	case "info":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	}
	return 0, false
}
