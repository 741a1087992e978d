package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/ppgee-dashboard-api/pkg/config"
)

func TestOptionsFromConfig(t *testing.T) {
	opts := Options(config.RedisConfig{Host: "cache.local", Port: 6380, Password: "pw", DB: 2})
	assert.Equal(t, "cache.local:6380", opts.Addr)
	assert.Equal(t, "pw", opts.Password)
	assert.Equal(t, 2, opts.DB)
	assert.Greater(t, opts.WriteTimeout, opts.ReadTimeout)
}

func TestNewRedisFailsWhenUnreachable(t *testing.T) {
	// Port 1 on loopback refuses connections.
	start := time.Now()
	_, err := NewRedis(config.RedisConfig{Host: "127.0.0.1", Port: 1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "127.0.0.1:1")
	assert.Less(t, time.Since(start), 2*connectTimeout)
}
