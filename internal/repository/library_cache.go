package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/mansoorceksport/totality/internal/domain"
)

var ErrCacheMiss = errors.New("cache miss")

// LibraryCache keeps decoded exercises and the sorted library listing in
// Redis as JSON.
//
// Every entry is stored under a generation number. A write bumps the
// generation instead of scanning for keys, so an entry read from the store
// before the write can never be served after it; orphaned entries expire
// with their TTL.
type LibraryCache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

func NewLibraryCache(client *redis.Client, prefix string, ttl time.Duration) *LibraryCache {
	return &LibraryCache{client: client, prefix: prefix, ttl: ttl}
}

func (c *LibraryCache) generationKey() string { return c.prefix + ":generation" }
func (c *LibraryCache) exerciseKey(gen int64, id string) string {
	return c.prefix + ":exercise:" + strconv.FormatInt(gen, 10) + ":" + id
}
func (c *LibraryCache) listKey(gen int64) string {
	return c.prefix + ":list:" + strconv.FormatInt(gen, 10)
}

func (c *LibraryCache) startSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return otel.Tracer("repository.cache").Start(ctx, name, trace.WithAttributes(attrs...))
}

// Generation returns the current cache generation. A missing counter is
// generation zero.
func (c *LibraryCache) Generation(ctx context.Context) (int64, error) {
	gen, err := c.client.Get(ctx, c.generationKey()).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to read cache generation: %w", err)
	}
	return gen, nil
}

// Exercise returns the exercise cached for generation gen or ErrCacheMiss.
func (c *LibraryCache) Exercise(ctx context.Context, gen int64, id string) (*domain.Exercise, error) {
	ctx, span := c.startSpan(ctx, "cache.Exercise",
		attribute.String("exercise.id", id), attribute.Int64("cache.generation", gen))
	defer span.End()

	var ex domain.Exercise
	if err := c.get(ctx, span, c.exerciseKey(gen, id), &ex); err != nil {
		return nil, err
	}
	return &ex, nil
}

// StoreExercise caches an exercise under the generation that was current
// when it was read from the store.
func (c *LibraryCache) StoreExercise(ctx context.Context, gen int64, ex *domain.Exercise) error {
	ctx, span := c.startSpan(ctx, "cache.StoreExercise",
		attribute.String("exercise.id", ex.ID), attribute.Int64("cache.generation", gen))
	defer span.End()
	return c.set(ctx, span, c.exerciseKey(gen, ex.ID), ex)
}

// Library returns the listing cached for generation gen or ErrCacheMiss.
func (c *LibraryCache) Library(ctx context.Context, gen int64) ([]*domain.Exercise, error) {
	ctx, span := c.startSpan(ctx, "cache.Library", attribute.Int64("cache.generation", gen))
	defer span.End()

	var exercises []*domain.Exercise
	if err := c.get(ctx, span, c.listKey(gen), &exercises); err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.Int("exercise.count", len(exercises)))
	return exercises, nil
}

// StoreLibrary caches a listing under the generation that was current when
// it was read from the store.
func (c *LibraryCache) StoreLibrary(ctx context.Context, gen int64, exercises []*domain.Exercise) error {
	ctx, span := c.startSpan(ctx, "cache.StoreLibrary", attribute.Int64("cache.generation", gen))
	defer span.End()
	return c.set(ctx, span, c.listKey(gen), exercises)
}

// Invalidate retires every entry of the current generation.
func (c *LibraryCache) Invalidate(ctx context.Context) error {
	ctx, span := c.startSpan(ctx, "cache.Invalidate")
	defer span.End()

	gen, err := c.client.Incr(ctx, c.generationKey()).Result()
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to invalidate library cache: %w", err)
	}
	span.SetAttributes(attribute.Int64("cache.generation", gen))
	return nil
}

func (c *LibraryCache) get(ctx context.Context, span trace.Span, key string, dest interface{}) error {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			span.SetAttributes(attribute.String("cache.result", "miss"))
			return ErrCacheMiss
		}
		span.RecordError(err)
		return fmt.Errorf("failed to read %s from cache: %w", key, err)
	}

	span.SetAttributes(attribute.String("cache.result", "hit"))
	if err := json.Unmarshal(data, dest); err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to decode cached %s: %w", key, err)
	}
	return nil
}

func (c *LibraryCache) set(ctx context.Context, span trace.Span, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to encode %s for cache: %w", key, err)
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to write %s to cache: %w", key, err)
	}
	return nil
}
