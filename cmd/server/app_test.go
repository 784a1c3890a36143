package main

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/phrazzld/taskboard/internal/config"
	"github.com/phrazzld/taskboard/internal/platform/cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{Port: 8080, LogLevel: "info", LogFormat: "json"},
		Database: config.DatabaseConfig{
			URL:                    "postgres://localhost/taskboard",
			MaxOpenConns:           5,
			ConnMaxLifetimeMinutes: 5,
		},
		Auth: config.AuthConfig{
			JWTSecret:            strings.Repeat("s", 32),
			TokenLifetimeMinutes: 60,
			BCryptCost:           4,
		},
	}
}

func TestNewApplication(t *testing.T) {
	t.Parallel()

	t.Run("without cache", func(t *testing.T) {
		db, _, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		app, err := newApplication(context.Background(), testConfig(), discardLogger(), db)
		require.NoError(t, err)
		assert.Nil(t, app.redis)
		assert.Nil(t, app.taskCache)
		assert.NotNil(t, app.userStore)
		assert.NotNil(t, app.boardStore)
		assert.NotNil(t, app.taskStore)
		assert.NotNil(t, app.jwtService)
		assert.NotNil(t, app.passwordVerifier)
	})

	t.Run("with cache", func(t *testing.T) {
		mr := miniredis.RunT(t)
		db, _, err := sqlmock.New()
		require.NoError(t, err)

		cfg := testConfig()
		cfg.Cache = config.CacheConfig{RedisURL: "redis://" + mr.Addr(), TTLSeconds: 30}

		app, err := newApplication(context.Background(), cfg, discardLogger(), db)
		require.NoError(t, err)
		require.NotNil(t, app.taskCache)
		assert.IsType(t, &cache.TaskCache{}, app.taskStore)
		app.cleanup()
	})

	t.Run("weak secret", func(t *testing.T) {
		db, _, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		cfg := testConfig()
		cfg.Auth.JWTSecret = "short"
		_, err = newApplication(context.Background(), cfg, discardLogger(), db)
		assert.ErrorContains(t, err, "JWT service")
	})

	t.Run("unreachable redis", func(t *testing.T) {
		db, _, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		cfg := testConfig()
		cfg.Cache.RedisURL = "redis://127.0.0.1:1"
		_, err = newApplication(context.Background(), cfg, discardLogger(), db)
		assert.ErrorContains(t, err, "redis")
	})
}
