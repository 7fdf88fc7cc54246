package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/shiva/flightlog/config"
)

func TestOptions_CacheAndQuotaWorkload(t *testing.T) {
	o := Options(config.RedisConfig{Host: "redis", Port: 6379, DB: 2, PoolSize: 50, OpTimeout: 300 * time.Millisecond})

	assert.Equal(t, "redis:6379", o.Addr)
	assert.Equal(t, 2, o.DB)
	assert.Equal(t, "flightlog", o.ClientName)
	assert.Equal(t, 50, o.PoolSize)
	assert.Equal(t, 5, o.MinIdleConns)
	assert.Equal(t, 300*time.Millisecond, o.ReadTimeout)
	assert.Equal(t, 600*time.Millisecond, o.PoolTimeout)
	assert.True(t, o.ContextTimeoutEnabled)
	assert.Equal(t, 1, o.MaxRetries)
}

func TestOptions_Defaults(t *testing.T) {
	o := Options(config.RedisConfig{Host: "localhost", Port: 6379})
	assert.Equal(t, 10, o.PoolSize)
	assert.Equal(t, 1, o.MinIdleConns)
	assert.Equal(t, 500*time.Millisecond, o.WriteTimeout)
}
