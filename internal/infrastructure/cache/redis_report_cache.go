// Package cache guarda en Redis el reporte de analítica ya armado.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/smartshelf-api/internal/application/analytics"
	"github.com/jhoicas/smartshelf-api/internal/application/dto"
	"github.com/jhoicas/smartshelf-api/pkg/config"
	"github.com/jhoicas/smartshelf-api/pkg/logger"
)

const (
	// ReportKey prefijo de la clave del reporte; la clave final lleva la generación.
	ReportKey = "smartshelf:analytics:report"
	// GenerationKey contador que avanza en cada invalidación.
	GenerationKey = "smartshelf:analytics:generation"
)

func reportKey(gen int64) string {
	return fmt.Sprintf("%s:%d", ReportKey, gen)
}

var _ analytics.ReportCache = (*RedisReportCache)(nil)

// RedisReportCache implementa analytics.ReportCache. Cualquier fallo de Redis se registra
// como warning y se trata como miss: el reporte se recalcula desde la base de datos.
type RedisReportCache struct {
	client redis.Cmdable
	ttl    time.Duration
	log    *logger.Logger
}

// NewRedisClient crea el cliente a partir de la configuración. Devuelve nil si REDIS_ADDR está vacío.
func NewRedisClient(cfg config.RedisConfig) *redis.Client {
	if !cfg.Enabled() {
		return nil
	}
	return redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
	})
}

// NewRedisReportCache construye la caché sobre un cliente existente.
func NewRedisReportCache(client redis.Cmdable, ttl time.Duration, log *logger.Logger) *RedisReportCache {
	if log == nil {
		log = logger.Nop()
	}
	return &RedisReportCache{client: client, ttl: ttl, log: log.Component("analytics-cache")}
}

// Generation devuelve la generación vigente. Sin contador en Redis la generación es 0.
func (c *RedisReportCache) Generation(ctx context.Context) (int64, bool) {
	gen, err := c.client.Get(ctx, GenerationKey).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, true
		}
		c.log.Warn().Err(err).Msg("leer generación de caché")
		return 0, false
	}
	return gen, true
}

// Get devuelve el reporte guardado para gen, si existe y se puede decodificar.
func (c *RedisReportCache) Get(ctx context.Context, gen int64) (*dto.AnalyticsDTO, bool) {
	raw, err := c.client.Get(ctx, reportKey(gen)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Warn().Err(err).Msg("leer reporte de caché")
		}
		return nil, false
	}
	var report dto.AnalyticsDTO
	if err := json.Unmarshal(raw, &report); err != nil {
		c.log.Warn().Err(err).Msg("decodificar reporte de caché")
		return nil, false
	}
	return &report, true
}

// Set guarda el reporte bajo la generación gen con el TTL configurado. Si gen ya no es la
// vigente la clave no se vuelve a leer y expira sola.
func (c *RedisReportCache) Set(ctx context.Context, gen int64, report *dto.AnalyticsDTO) {
	raw, err := json.Marshal(report)
	if err != nil {
		c.log.Warn().Err(err).Msg("codificar reporte")
		return
	}
	if err := c.client.Set(ctx, reportKey(gen), raw, c.ttl).Err(); err != nil {
		c.log.Warn().Err(err).Msg("guardar reporte en caché")
	}
}

// Invalidate avanza la generación; los reportes guardados antes dejan de servirse.
func (c *RedisReportCache) Invalidate(ctx context.Context) {
	if err := c.client.Incr(ctx, GenerationKey).Err(); err != nil {
		c.log.Warn().Err(err).Msg("invalidar reporte en caché")
	}
}
