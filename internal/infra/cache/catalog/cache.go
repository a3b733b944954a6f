package catalog

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/m04kA/spa-booking-service/internal/domain"
	"github.com/m04kA/spa-booking-service/pkg/metrics"
)

const keyPrefix = "catalog:professional:"

// Исходы обращения к кэшу для метрик
const (
	outcomeHit   = "hit"
	outcomeMiss  = "miss"
	outcomeError = "error"
)

// Cache кэш профилей профессионалов поверх Redis (cache-aside)
// Используется только для обогащения списков бронирований (имя, телефон, email).
// Услуги, цены и длительности в кэш не попадают: итоги бронирования всегда
// считаются по данным из БД. Недоступность Redis не ломает запрос
type Cache struct {
	source  ProfessionalSource
	redis   *redis.Client
	ttl     time.Duration
	logger  Logger
	metrics *metrics.Metrics
}

// NewCache создает кэш профилей
// При redisClient == nil или ttl <= 0 все запросы идут напрямую в источник
func NewCache(source ProfessionalSource, redisClient *redis.Client, ttl time.Duration, logger Logger, m *metrics.Metrics) *Cache {
	return &Cache{
		source:  source,
		redis:   redisClient,
		ttl:     ttl,
		logger:  logger,
		metrics: m,
	}
}

// GetProfessionalsByIDs получает профили из кэша, недостающие догружает из источника и кладёт в кэш
func (c *Cache) GetProfessionalsByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]domain.Professional, error) {
	if c.redis == nil || c.ttl <= 0 || len(ids) == 0 {
		return c.source.GetProfessionalsByIDs(ctx, ids)
	}

	result, missing := c.readCache(ctx, ids)
	if len(missing) == 0 {
		return result, nil
	}

	loaded, err := c.source.GetProfessionalsByIDs(ctx, missing)
	if err != nil {
		return nil, err
	}

	for id, professional := range loaded {
		result[id] = professional
	}
	c.writeCache(ctx, loaded)

	return result, nil
}

func (c *Cache) readCache(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]domain.Professional, []uuid.UUID) {
	result := make(map[uuid.UUID]domain.Professional, len(ids))

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = cacheKey(id)
	}

	values, err := c.redis.MGet(ctx, keys...).Result()
	if err != nil {
		c.metrics.IncCacheLookup(outcomeError)
		c.logger.Warn("professional cache: MGET failed, falling back to storage: %v", err)
		return result, ids
	}

	missing := make([]uuid.UUID, 0)
	for i, raw := range values {
		str, ok := raw.(string)
		if !ok {
			c.metrics.IncCacheLookup(outcomeMiss)
			missing = append(missing, ids[i])
			continue
		}

		var cached cachedProfessional
		if err := json.Unmarshal([]byte(str), &cached); err != nil {
			c.metrics.IncCacheLookup(outcomeError)
			missing = append(missing, ids[i])
			continue
		}

		c.metrics.IncCacheLookup(outcomeHit)
		result[ids[i]] = cached.toDomain()
	}

	return result, missing
}

func (c *Cache) writeCache(ctx context.Context, professionals map[uuid.UUID]domain.Professional) {
	if len(professionals) == 0 {
		return
	}

	pipe := c.redis.Pipeline()
	for id, professional := range professionals {
		data, err := json.Marshal(toCached(professional))
		if err != nil {
			continue
		}
		pipe.Set(ctx, cacheKey(id), data, c.ttl)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		c.logger.Warn("professional cache: write failed: %v", err)
	}
}

func cacheKey(id uuid.UUID) string {
	return keyPrefix + id.String()
}
