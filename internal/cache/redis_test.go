package cache

import (
	"testing"
	"time"

	"github.com/Domenick1991/shareit/config"
	"github.com/stretchr/testify/assert"
)

func TestUserKey(t *testing.T) {
	assert.Equal(t, "cache:user:42", userKey(42))
}

func TestNewRedisCache(t *testing.T) {
	c := NewRedisCache(config.RedisConfig{Addr: "localhost:6379", UsersTTL: time.Minute})
	assert.NotNil(t, c)
	assert.Equal(t, time.Minute, c.usersTTL)
	assert.NoError(t, c.Close())
}
