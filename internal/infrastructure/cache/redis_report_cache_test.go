package cache_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/smartshelf-api/internal/application/dto"
	"github.com/jhoicas/smartshelf-api/internal/infrastructure/cache"
	"github.com/jhoicas/smartshelf-api/pkg/config"
	"github.com/jhoicas/smartshelf-api/pkg/logger"
)

func TestNewRedisClient_SinAddrDevuelveNil(t *testing.T) {
	assert.Nil(t, cache.NewRedisClient(config.RedisConfig{}))
}

// Con Redis caído la caché responde miss y deja rastro en el log, sin propagar el error.
func TestRedisReportCache_RedisCaidoEsMiss(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()

	var buf bytes.Buffer
	log := logger.New(logger.Config{Env: "production", Level: "warn", Output: &buf})
	c := cache.NewRedisReportCache(client, time.Minute, log)
	ctx := context.Background()

	_, ok := c.Generation(ctx)
	assert.False(t, ok, "sin generación el reporte no se guarda")

	report, ok := c.Get(ctx, 0)
	assert.False(t, ok)
	assert.Nil(t, report)

	assert.NotPanics(t, func() {
		c.Set(ctx, 0, &dto.AnalyticsDTO{})
		c.Invalidate(ctx)
	})
	assert.Contains(t, buf.String(), "analytics-cache")
}
