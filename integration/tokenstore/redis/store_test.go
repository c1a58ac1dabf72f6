package redis_test

import (
	"context"
	"errors"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/neurogrid/storefront/core/tokenstore"
	"github.com/neurogrid/storefront/integration/tokenstore/redis"
)

type mockClient struct {
	mock.Mock
}

func (m *mockClient) Get(ctx context.Context, key string) *goredis.StringCmd {
	args := m.Called(ctx, key)
	return args.Get(0).(*goredis.StringCmd)
}

func (m *mockClient) Set(ctx context.Context, key string, value any, expiration time.Duration) *goredis.StatusCmd {
	args := m.Called(ctx, key, value, expiration)
	return args.Get(0).(*goredis.StatusCmd)
}

func (m *mockClient) Del(ctx context.Context, keys ...string) *goredis.IntCmd {
	args := m.Called(ctx, keys)
	return args.Get(0).(*goredis.IntCmd)
}

func TestStore_Read(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("present", func(t *testing.T) {
		t.Parallel()
		client := &mockClient{}
		client.On("Get", ctx, "device:1").Return(goredis.NewStringResult("tok", nil))

		token, ok := redis.New(client, redis.WithKey("device:1")).Read(ctx)
		assert.True(t, ok)
		assert.Equal(t, "tok", token)
		client.AssertExpectations(t)
	})

	t.Run("missing key", func(t *testing.T) {
		t.Parallel()
		client := &mockClient{}
		client.On("Get", ctx, redis.DefaultKey).Return(goredis.NewStringResult("", goredis.Nil))

		_, ok := redis.New(client).Read(ctx)
		assert.False(t, ok)
	})

	t.Run("backend failure reads absent", func(t *testing.T) {
		t.Parallel()
		client := &mockClient{}
		client.On("Get", ctx, redis.DefaultKey).Return(goredis.NewStringResult("", errors.New("connection refused")))

		_, ok := redis.New(client).Read(ctx)
		assert.False(t, ok)
	})
}

func TestStore_Write(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	client := &mockClient{}
	client.On("Set", ctx, redis.DefaultKey, "tok", time.Duration(0)).Return(goredis.NewStatusResult("OK", nil))

	s := redis.New(client)
	require.NoError(t, s.Write(ctx, "tok"))
	assert.ErrorIs(t, s.Write(ctx, ""), tokenstore.ErrEmptyToken)
	client.AssertExpectations(t)
}

func TestStore_Clear(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	client := &mockClient{}
	client.On("Del", ctx, []string{redis.DefaultKey}).Return(goredis.NewIntResult(0, nil)).Twice()

	s := redis.New(client)
	require.NoError(t, s.Clear(ctx))
	require.NoError(t, s.Clear(ctx))
	client.AssertExpectations(t)
}
