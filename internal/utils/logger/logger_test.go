package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"

	"vaultis/internal/app/server/config"
)

func TestNew(t *testing.T) {
	ctx := context.Background()

	localLogger := New(config.EnvLocal)
	require.NotNil(t, localLogger)
	assert.True(t, localLogger.Enabled(ctx, slog.LevelDebug))

	devLogger := New(config.EnvDev)
	require.NotNil(t, devLogger)
	assert.True(t, devLogger.Enabled(ctx, slog.LevelDebug))

	prodLogger := New(config.EnvProd)
	require.NotNil(t, prodLogger)
	assert.False(t, prodLogger.Enabled(ctx, slog.LevelDebug))
	assert.True(t, prodLogger.Enabled(ctx, slog.LevelInfo))
}

func TestNewUnknownEnvDefaultsToInfo(t *testing.T) {
	logger := New("staging")
	require.NotNil(t, logger)

	ctx := context.Background()
	assert.False(t, logger.Enabled(ctx, slog.LevelDebug))
	assert.True(t, logger.Enabled(ctx, slog.LevelInfo))
}
