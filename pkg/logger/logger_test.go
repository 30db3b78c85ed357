package logger

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/ManithKumarpace/Edu-Pilot/pkg/config"
	"github.com/ManithKumarpace/Edu-Pilot/pkg/middleware/requestid"
)

func TestNewHonoursLevel(t *testing.T) {
	l, err := New(&config.Config{Env: config.EnvProduction, Log: config.LogConfig{Level: "warn", Format: "console"}})
	require.NoError(t, err)
	assert.False(t, l.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, l.Core().Enabled(zapcore.WarnLevel))

	cli, err := NewConsole(true)
	require.NoError(t, err)
	assert.True(t, cli.Core().Enabled(zapcore.DebugLevel))
}

func TestGinMiddlewareLogsRequest(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(requestid.Middleware(), GinMiddleware(zap.New(core)))
	r.GET("/items/:id", func(c *gin.Context) { c.Status(http.StatusNotFound) })

	req := httptest.NewRequest(http.MethodGet, "/items/7", nil)
	req.Header.Set("X-Request-ID", "req-1")
	r.ServeHTTP(httptest.NewRecorder(), req)

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
	fields := entries[0].ContextMap()
	assert.Equal(t, "/items/:id", fields["path"])
	assert.Equal(t, "req-1", fields["request_id"])
	assert.EqualValues(t, http.StatusNotFound, fields["status"])
}
