package logger

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/exp/slog"
	"revhistory/internal/app/server/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name          string
		env           string
		expectedDebug bool
	}{
		{
			name:          "local environment",
			env:           config.EnvLocal,
			expectedDebug: true,
		},
		{
			name:          "dev environment",
			env:           config.EnvDev,
			expectedDebug: true,
		},
		{
			name:          "prod environment",
			env:           config.EnvProd,
			expectedDebug: false,
		},
		{
			name:          "unknown environment",
			env:           "staging",
			expectedDebug: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := New(tt.env)
			require.NotNil(t, logger)
			ctx := context.Background()
			assert.Equal(t, tt.expectedDebug, logger.Enabled(ctx, slog.LevelDebug))
			assert.True(t, logger.Enabled(ctx, slog.LevelInfo))
		})
	}
}

func TestSetupPrettySlog(t *testing.T) {
	logger := setupPrettySlog()
	require.NotNil(t, logger)

	ctx := context.Background()
	assert.True(t, logger.Enabled(ctx, slog.LevelDebug))
}

func TestPrettyHandler_Handle(t *testing.T) {
	var buf bytes.Buffer
	opts := PrettyHandlerOptions{SlogOpts: &slog.HandlerOptions{Level: slog.LevelDebug}}
	h := opts.NewPrettyHandler(&buf).WithAttrs([]slog.Attr{slog.String("component", "lister")})

	r := slog.NewRecord(time.Now(), slog.LevelWarn, "suspicious log message", 0)
	r.AddAttrs(slog.Int("record_id", 7), slog.Any("error", errors.New("boom")))

	require.NoError(t, h.Handle(context.Background(), r))

	out := buf.String()
	assert.Contains(t, out, "suspicious log message")
	assert.Contains(t, out, `"component": "lister"`)
	assert.Contains(t, out, `"record_id": 7`)
	assert.Contains(t, out, `"error": "boom"`)
}
