package cache

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ManithKumarpace/Edu-Pilot/pkg/config"
)

func TestOptions(t *testing.T) {
	opts := Options(config.RedisConfig{Host: "cache.local", Port: 6380, Password: "pw", DB: 2})
	assert.Equal(t, "cache.local:6380", opts.Addr)
	assert.Equal(t, "pw", opts.Password)
	assert.Equal(t, 2, opts.DB)
}

func TestNewRedisFailsWhenUnreachable(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	client, err := NewRedis(ctx, config.RedisConfig{Host: "127.0.0.1", Port: 1})
	require.Error(t, err)
	assert.Nil(t, client)
}
