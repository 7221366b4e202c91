//go:build integration

package auth

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
)

func TestRedisLimiter(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	ctx := context.Background()

	container, err := tcredis.Run(ctx, "redis:7-alpine")
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	url, err := container.ConnectionString(ctx)
	require.NoError(t, err)
	opts, err := redis.ParseURL(url)
	require.NoError(t, err)
	client := redis.NewClient(opts)
	t.Cleanup(func() { _ = client.Close() })

	l := NewRedisLimiter(client, 2, time.Minute)

	locked, err := l.Locked(ctx, "alice")
	require.NoError(t, err)
	assert.False(t, locked)

	require.NoError(t, l.RecordFailure(ctx, "alice"))
	require.NoError(t, l.RecordFailure(ctx, "alice"))
	locked, err = l.Locked(ctx, "alice")
	require.NoError(t, err)
	assert.True(t, locked)

	ttl, err := client.TTL(ctx, lockoutKeyPrefix+"alice").Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))

	require.NoError(t, l.Reset(ctx, "alice"))
	locked, err = l.Locked(ctx, "alice")
	require.NoError(t, err)
	assert.False(t, locked)
}
