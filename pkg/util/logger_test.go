package util_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/zapagente/zapagente/pkg/util"
)

func TestNewLogger(t *testing.T) {
	ctx := context.Background()

	t.Run("development enables debug", func(t *testing.T) {
		logger := util.NewLogger("development")
		assert.True(t, logger.Enabled(ctx, slog.LevelDebug))
	})

	t.Run("dev shorthand is accepted", func(t *testing.T) {
		logger := util.NewLogger("DEV")
		assert.True(t, logger.Enabled(ctx, slog.LevelDebug))
	})

	t.Run("production starts at info", func(t *testing.T) {
		logger := util.NewLogger("production")
		assert.False(t, logger.Enabled(ctx, slog.LevelDebug))
		assert.True(t, logger.Enabled(ctx, slog.LevelInfo))
	})
}
