// Package types carries values shared by the revhistory subcommands.
package types

import (
	"context"

	"revhistory/internal/app/server/config"

	"golang.org/x/exp/slog"
)

type contextKey string

const (
	configKey contextKey = "config"
	loggerKey contextKey = "logger"
)

func WithRuntime(ctx context.Context, cfg *config.Config, log *slog.Logger) context.Context {
	ctx = context.WithValue(ctx, configKey, cfg)
	return context.WithValue(ctx, loggerKey, log)
}

func Config(ctx context.Context) *config.Config {
	cfg, _ := ctx.Value(configKey).(*config.Config)
	return cfg
}

func Logger(ctx context.Context) *slog.Logger {
	if log, ok := ctx.Value(loggerKey).(*slog.Logger); ok {
		return log
	}
	return slog.Default()
}
