package redis_limiter

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLimiter(t *testing.T, maxConcurrent int) *RedisLimiter {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	return NewRedisLimiter(client, maxConcurrent, "test_slots:", time.Minute, logger)
}

func TestAcquireUpToLimit(t *testing.T) {
	limiter := newTestLimiter(t, 2)
	ctx := context.Background()

	require.NoError(t, limiter.Acquire(ctx, "m"))
	require.NoError(t, limiter.Acquire(ctx, "m"))

	err := limiter.Acquire(ctx, "m")
	assert.ErrorIs(t, err, ErrSlotsFull)
}

func TestReleaseFreesSlot(t *testing.T) {
	limiter := newTestLimiter(t, 1)
	ctx := context.Background()

	require.NoError(t, limiter.Acquire(ctx, "m"))
	assert.ErrorIs(t, limiter.Acquire(ctx, "m"), ErrSlotsFull)

	limiter.Release(ctx, "m")
	assert.NoError(t, limiter.Acquire(ctx, "m"))
}

func TestGetCurrent(t *testing.T) {
	limiter := newTestLimiter(t, 3)
	ctx := context.Background()

	current, err := limiter.GetCurrent(ctx, "m")
	require.NoError(t, err)
	assert.Equal(t, 0, current)

	require.NoError(t, limiter.Acquire(ctx, "m"))
	require.NoError(t, limiter.Acquire(ctx, "m"))

	current, err = limiter.GetCurrent(ctx, "m")
	require.NoError(t, err)
	assert.Equal(t, 2, current)
}

func TestSeparateKeysDoNotInterfere(t *testing.T) {
	limiter := newTestLimiter(t, 1)
	ctx := context.Background()

	require.NoError(t, limiter.Acquire(ctx, "a"))
	assert.NoError(t, limiter.Acquire(ctx, "b"))
}
