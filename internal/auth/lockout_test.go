package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryLimiter_LocksAfterMaxAttempts(t *testing.T) {
	ctx := context.Background()
	l := NewMemoryLimiter(3, time.Minute)

	for i := 0; i < 2; i++ {
		require.NoError(t, l.RecordFailure(ctx, "alice"))
	}
	locked, err := l.Locked(ctx, "alice")
	require.NoError(t, err)
	assert.False(t, locked)

	require.NoError(t, l.RecordFailure(ctx, "alice"))
	locked, _ = l.Locked(ctx, "alice")
	assert.True(t, locked)

	locked, _ = l.Locked(ctx, "bob")
	assert.False(t, locked, "keys are independent")
}

func TestMemoryLimiter_WindowExpires(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	l := NewMemoryLimiter(1, time.Minute)
	l.now = func() time.Time { return now }

	require.NoError(t, l.RecordFailure(ctx, "alice"))
	locked, _ := l.Locked(ctx, "alice")
	assert.True(t, locked)

	now = now.Add(time.Minute)
	locked, _ = l.Locked(ctx, "alice")
	assert.False(t, locked)
}

func TestMemoryLimiter_Reset(t *testing.T) {
	ctx := context.Background()
	l := NewMemoryLimiter(1, time.Minute)

	require.NoError(t, l.RecordFailure(ctx, "alice"))
	require.NoError(t, l.Reset(ctx, "alice"))
	locked, _ := l.Locked(ctx, "alice")
	assert.False(t, locked)
}

func TestMemoryLimiter_DisabledWhenMaxIsZero(t *testing.T) {
	ctx := context.Background()
	l := NewMemoryLimiter(0, time.Minute)
	require.NoError(t, l.RecordFailure(ctx, "alice"))
	locked, _ := l.Locked(ctx, "alice")
	assert.False(t, locked)
}

func TestNewLoginLimiter_FallsBackToMemory(t *testing.T) {
	_, ok := NewLoginLimiter(nil, 5, time.Minute).(*MemoryLimiter)
	assert.True(t, ok)
}
