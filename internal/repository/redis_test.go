package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mansoorceksport/totality/internal/catalog"
	"github.com/mansoorceksport/totality/internal/domain"
)

func TestRedisSeedFlagStore(t *testing.T) {
	ctx := context.Background()
	mr, client := setupRedis(t)
	store := NewRedisSeedFlagStore(client, "totality:catalog:seeded", time.Minute, 3)

	seeded, err := store.IsSeeded(ctx)
	require.NoError(t, err)
	assert.False(t, seeded)

	version, err := store.SeededVersion(ctx)
	require.NoError(t, err)
	assert.Zero(t, version)

	require.NoError(t, store.MarkSeeded(ctx))

	seeded, err = store.IsSeeded(ctx)
	require.NoError(t, err)
	assert.True(t, seeded)

	version, err = store.SeededVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, version)

	assert.True(t, mr.Exists("totality:catalog:seeded"))
	assert.Zero(t, mr.TTL("totality:catalog:seeded"))
}

func TestRedisSeedFlagStore_Lock(t *testing.T) {
	ctx := context.Background()
	mr, client := setupRedis(t)
	first := NewRedisSeedFlagStore(client, "seed", 30*time.Second, 1)
	second := NewRedisSeedFlagStore(client, "seed", 30*time.Second, 1)

	ok, err := first.AcquireLock(ctx)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = second.AcquireLock(ctx)
	require.NoError(t, err)
	assert.False(t, ok, "lock is already held")

	require.NoError(t, first.ReleaseLock(ctx))

	ok, err = second.AcquireLock(ctx)
	require.NoError(t, err)
	assert.True(t, ok)

	// an abandoned lock expires
	mr.FastForward(31 * time.Second)
	ok, err = first.AcquireLock(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRedisSeedFlagStore_Error(t *testing.T) {
	ctx := context.Background()
	mr, client := setupRedis(t)
	store := NewRedisSeedFlagStore(client, "seed", time.Minute, 1)

	mr.Close()

	_, err := store.IsSeeded(ctx)
	assert.Error(t, err)
	_, err = store.AcquireLock(ctx)
	assert.Error(t, err)
}

const testCachePrefix = "totality:library"

func newTestCache(t *testing.T) (*LibraryCache, *CachedExerciseRepository, *MemoryExerciseRepository, func() bool) {
	t.Helper()
	mr, client := setupRedis(t)
	cache := NewLibraryCache(client, testCachePrefix, time.Minute)
	store := NewMemoryExerciseRepository()
	listed := func() bool { return mr.Exists(testCachePrefix + ":list:0") }
	return cache, NewCachedExerciseRepository(store, cache), store, listed
}

func TestCachedExerciseRepository(t *testing.T) {
	ctx := context.Background()
	cache, repo, store, listedAtZero := newTestCache(t)

	bench := newExercise(t, "Bench Press")
	require.NoError(t, store.Create(ctx, bench))

	list, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.True(t, listedAtZero())

	// writes that bypass the cache are not visible until invalidation
	require.NoError(t, store.Create(ctx, newExercise(t, "Squat")))
	list, err = repo.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, repo.Create(ctx, newExercise(t, "Deadlift")))
	gen, err := cache.Generation(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), gen)

	list, err = repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []string{"Bench Press", "Deadlift", "Squat"}, []string{list[0].Name, list[1].Name, list[2].Name})

	got, err := repo.GetByID(ctx, bench.ID)
	require.NoError(t, err)
	assert.Equal(t, "Bench Press", got.Name)
	assert.Len(t, got.Muscles, 2)
	cached, err := cache.Exercise(ctx, 1, bench.ID)
	require.NoError(t, err)
	assert.Equal(t, bench.ID, cached.ID)

	require.NoError(t, repo.Delete(ctx, bench.ID))
	_, err = cache.Exercise(ctx, 2, bench.ID)
	assert.ErrorIs(t, err, ErrCacheMiss)
	_, err = repo.GetByID(ctx, bench.ID)
	assert.ErrorIs(t, err, domain.ErrExerciseNotFound)

	list, err = repo.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestCachedExerciseRepository_DeleteMissingStillInvalidates(t *testing.T) {
	ctx := context.Background()
	cache, repo, store, _ := newTestCache(t)

	ex := newExercise(t, "Bench Press")
	require.NoError(t, store.Create(ctx, ex))
	_, err := repo.GetByID(ctx, ex.ID)
	require.NoError(t, err)

	// removed behind the cache's back
	require.NoError(t, store.Delete(ctx, ex.ID))

	assert.ErrorIs(t, repo.Delete(ctx, ex.ID), domain.ErrExerciseNotFound)
	gen, err := cache.Generation(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), gen)
	_, err = repo.GetByID(ctx, ex.ID)
	assert.ErrorIs(t, err, domain.ErrExerciseNotFound)
}

// racingStore runs afterGet once, between the store read and the cache
// write of the first GetByID.
type racingStore struct {
	*MemoryExerciseRepository
	afterGet func()
}

func (s *racingStore) GetByID(ctx context.Context, id string) (*domain.Exercise, error) {
	ex, err := s.MemoryExerciseRepository.GetByID(ctx, id)
	if s.afterGet != nil {
		hook := s.afterGet
		s.afterGet = nil
		hook()
	}
	return ex, err
}

func TestCachedExerciseRepository_GetRacingDelete(t *testing.T) {
	ctx := context.Background()
	_, client := setupRedis(t)
	cache := NewLibraryCache(client, testCachePrefix, time.Minute)
	store := &racingStore{MemoryExerciseRepository: NewMemoryExerciseRepository()}
	repo := NewCachedExerciseRepository(store, cache)

	ex := newExercise(t, "Bench Press")
	require.NoError(t, store.Create(ctx, ex))
	store.afterGet = func() { require.NoError(t, repo.Delete(ctx, ex.ID)) }

	// the in-flight read still returns what it saw
	got, err := repo.GetByID(ctx, ex.ID)
	require.NoError(t, err)
	assert.Equal(t, ex.ID, got.ID)

	_, err = repo.GetByID(ctx, ex.ID)
	assert.ErrorIs(t, err, domain.ErrExerciseNotFound)
}

func TestCachedExerciseRepository_CreateManyRetiresListing(t *testing.T) {
	ctx := context.Background()
	_, repo, _, _ := newTestCache(t)

	list, err := repo.ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	var batch []*domain.Exercise
	for _, def := range catalog.All() {
		ex, err := def.Materialize()
		require.NoError(t, err)
		batch = append(batch, ex)
	}
	require.NoError(t, repo.CreateMany(ctx, batch))

	list, err = repo.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, list, len(catalog.All()))
}

func TestCachedExerciseRepository_RedisDown(t *testing.T) {
	ctx := context.Background()
	mr, client := setupRedis(t)
	store := NewMemoryExerciseRepository()
	repo := NewCachedExerciseRepository(store, NewLibraryCache(client, testCachePrefix, time.Minute))
	ex := newExercise(t, "Bench Press")
	require.NoError(t, store.Create(ctx, ex))

	mr.Close()

	list, err := repo.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	got, err := repo.GetByID(ctx, ex.ID)
	require.NoError(t, err)
	assert.Equal(t, ex.ID, got.ID)

	require.NoError(t, repo.Create(ctx, newExercise(t, "Squat")))
}

func TestLibraryCache_Expiry(t *testing.T) {
	ctx := context.Background()
	mr, client := setupRedis(t)
	cache := NewLibraryCache(client, testCachePrefix, time.Minute)

	_, err := cache.Library(ctx, 0)
	assert.ErrorIs(t, err, ErrCacheMiss)

	require.NoError(t, cache.StoreLibrary(ctx, 0, []*domain.Exercise{newExercise(t, "Bench Press")}))
	list, err := cache.Library(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	mr.FastForward(2 * time.Minute)
	_, err = cache.Library(ctx, 0)
	assert.ErrorIs(t, err, ErrCacheMiss)

	// the generation counter itself never expires
	require.NoError(t, cache.Invalidate(ctx))
	mr.FastForward(time.Hour)
	gen, err := cache.Generation(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), gen)
}
