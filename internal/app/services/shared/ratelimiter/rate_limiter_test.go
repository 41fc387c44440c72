package ratelimiter

import (
	"context"
	"errors"
	"medconsult-service/internal/app/contracts/mocks"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestResourceLimiter_ApplyResourceLimiter(t *testing.T) {
	now := time.Unix(1_700_000_010, 0).UTC()
	input := func() *ApplyResourceLimiterInput {
		return &ApplyResourceLimiterInput{
			ResourceName:     " Amina@Example.com ",
			LimiterGroupName: "otp",
			WindowDuration:   time.Minute,
			MaxQuota:         3,
			NowUTC:           now,
		}
	}
	const key = "OTP:amina@example.com:28333333"

	t.Run("within quota", func(t *testing.T) {
		redis := new(mocks.RedisRepository)
		redis.On("IncrementWithExpiry", mock.Anything, key, 61*time.Second).Return(int64(3), nil)

		out, err := NewResourceLimiter(redis, zap.NewNop()).ApplyResourceLimiter(context.Background(), input())
		require.NoError(t, err)
		assert.True(t, out.Allowed)
		redis.AssertExpectations(t)
	})

	t.Run("over quota reports seconds to next window", func(t *testing.T) {
		redis := new(mocks.RedisRepository)
		redis.On("IncrementWithExpiry", mock.Anything, key, 61*time.Second).Return(int64(4), nil)

		out, err := NewResourceLimiter(redis, zap.NewNop()).ApplyResourceLimiter(context.Background(), input())
		require.NoError(t, err)
		assert.False(t, out.Allowed)
		assert.Equal(t, 31, out.RetryAfterSecs)
	})

	t.Run("disabled quota skips redis", func(t *testing.T) {
		redis := new(mocks.RedisRepository)
		in := input()
		in.MaxQuota = 0

		out, err := NewResourceLimiter(redis, zap.NewNop()).ApplyResourceLimiter(context.Background(), in)
		require.NoError(t, err)
		assert.True(t, out.Allowed)
		redis.AssertNotCalled(t, "IncrementWithExpiry", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("blank resource is denied", func(t *testing.T) {
		in := input()
		in.ResourceName = "  "

		out, err := NewResourceLimiter(new(mocks.RedisRepository), zap.NewNop()).ApplyResourceLimiter(context.Background(), in)
		require.NoError(t, err)
		assert.False(t, out.Allowed)
	})

	t.Run("redis failure", func(t *testing.T) {
		redis := new(mocks.RedisRepository)
		redis.On("IncrementWithExpiry", mock.Anything, key, 61*time.Second).Return(int64(0), errors.New("connection refused"))

		out, err := NewResourceLimiter(redis, zap.NewNop()).ApplyResourceLimiter(context.Background(), input())
		assert.Error(t, err)
		assert.False(t, out.Allowed)
	})
}
