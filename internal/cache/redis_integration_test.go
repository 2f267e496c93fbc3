//go:build integration

package cache

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/Domenick1991/shareit/internal/domain"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func startRedis(t *testing.T) *redis.Client {
	t.Helper()
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(30 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err, "failed to start redis container")
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "6379")
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{Addr: fmt.Sprintf("%s:%s", host, port.Port())})
	require.Eventually(t, func() bool { return client.Ping(ctx).Err() == nil }, 10*time.Second, 200*time.Millisecond)
	return client
}

func TestRedisCache_Users(t *testing.T) {
	client := startRedis(t)
	c := NewRedisCacheWithClient(client, time.Minute)
	ctx := context.Background()

	miss, err := c.GetUser(ctx, 1)
	require.NoError(t, err)
	assert.Nil(t, miss)

	user := &domain.User{ID: 1, Name: "ann", Email: "ann@example.com"}
	require.NoError(t, c.SetUser(ctx, user))

	hit, err := c.GetUser(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, user, hit)

	ttl, err := client.TTL(ctx, userKey(1)).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))
	assert.NoError(t, c.Ping(ctx))
}
