package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mansoorceksport/totality/internal/catalog"
	"github.com/mansoorceksport/totality/internal/domain"
	"github.com/mansoorceksport/totality/internal/logger"
	"github.com/mansoorceksport/totality/internal/repository"
)

func TestCatalogSeeder_SeedsEmptyStore(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryExerciseRepository()
	flags := repository.NewMemorySeedFlagStore(false)
	defs := catalog.All()

	seeder := NewCatalogSeeder(repo, flags, defs, logger.Nop())
	result, err := seeder.SeedIfNeeded(ctx)
	require.NoError(t, err)

	assert.Equal(t, SeedResult{Inserted: len(defs)}, result)
	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(len(defs)), count)

	seeded, err := flags.IsSeeded(ctx)
	require.NoError(t, err)
	assert.True(t, seeded)

	// lock is released once seeding finishes
	acquired, err := flags.AcquireLock(ctx)
	require.NoError(t, err)
	assert.True(t, acquired)
}

func TestCatalogSeeder_SecondRunIsNoop(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryExerciseRepository()
	flags := repository.NewMemorySeedFlagStore(false)
	seeder := NewCatalogSeeder(repo, flags, catalog.All(), logger.Nop())

	_, err := seeder.SeedIfNeeded(ctx)
	require.NoError(t, err)

	result, err := seeder.SeedIfNeeded(ctx)
	require.NoError(t, err)
	assert.Equal(t, SeedResult{Skipped: true, Reason: SkipFlagSet}, result)

	count, _ := repo.Count(ctx)
	assert.Equal(t, int64(len(catalog.All())), count)
}

func TestCatalogSeeder_PopulatedStoreWithoutFlag(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryExerciseRepository()
	flags := repository.NewMemorySeedFlagStore(false)

	ex, err := catalog.All()[0].Materialize()
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, ex))

	seeder := NewCatalogSeeder(repo, flags, catalog.All(), logger.Nop())
	result, err := seeder.SeedIfNeeded(ctx)
	require.NoError(t, err)

	assert.Equal(t, SeedResult{Skipped: true, Reason: SkipStoreFilled}, result)
	count, _ := repo.Count(ctx)
	assert.Equal(t, int64(1), count)

	seeded, _ := flags.IsSeeded(ctx)
	assert.True(t, seeded)
}

func TestCatalogSeeder_LockHeldElsewhere(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryExerciseRepository()
	flags := repository.NewMemorySeedFlagStore(false)

	acquired, err := flags.AcquireLock(ctx)
	require.NoError(t, err)
	require.True(t, acquired)

	seeder := NewCatalogSeeder(repo, flags, catalog.All(), logger.Nop())
	result, err := seeder.SeedIfNeeded(ctx)
	require.NoError(t, err)

	assert.Equal(t, SeedResult{Skipped: true, Reason: SkipLocked}, result)
	count, _ := repo.Count(ctx)
	assert.Zero(t, count)
}

func TestCatalogSeeder_ConcurrentFirstLaunch(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryExerciseRepository()
	flags := repository.NewMemorySeedFlagStore(false)
	defs := catalog.All()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := NewCatalogSeeder(repo, flags, defs, logger.Nop()).SeedIfNeeded(ctx)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(len(defs)), count)
}

func TestCatalogSeeder_InvalidDefinitionWritesNothing(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryExerciseRepository()
	flags := repository.NewMemorySeedFlagStore(false)

	defs := catalog.All()[:3]
	defs = append(defs, domain.ExerciseDefinition{Name: "Broken", Category: "nope"})

	_, err := NewCatalogSeeder(repo, flags, defs, logger.Nop()).SeedIfNeeded(ctx)
	require.ErrorIs(t, err, domain.ErrInvalidDefinition)

	count, _ := repo.Count(ctx)
	assert.Zero(t, count)
	seeded, _ := flags.IsSeeded(ctx)
	assert.False(t, seeded)
}

type failingFlagStore struct {
	*repository.MemorySeedFlagStore
}

func (failingFlagStore) IsSeeded(ctx context.Context) (bool, error) {
	return false, errors.New("connection refused")
}

func TestCatalogSeeder_FlagStoreDown(t *testing.T) {
	repo := repository.NewMemoryExerciseRepository()
	flags := failingFlagStore{repository.NewMemorySeedFlagStore(false)}

	_, err := NewCatalogSeeder(repo, flags, catalog.All(), logger.Nop()).SeedIfNeeded(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read seed flag")
}

// flakyBatchRepo writes the first failAfter exercises of its first batch
// and then fails, like a store that drops the connection mid-insert.
type flakyBatchRepo struct {
	*repository.MemoryExerciseRepository
	failAfter int
	failed    bool
}

func (r *flakyBatchRepo) CreateMany(ctx context.Context, exercises []*domain.Exercise) error {
	if r.failed {
		return r.MemoryExerciseRepository.CreateMany(ctx, exercises)
	}
	r.failed = true
	for _, ex := range exercises[:r.failAfter] {
		if err := r.Create(ctx, ex); err != nil {
			return err
		}
	}
	return errors.New("connection reset by peer")
}

func TestCatalogSeeder_FailedBatchIsRolledBack(t *testing.T) {
	ctx := context.Background()
	repo := &flakyBatchRepo{MemoryExerciseRepository: repository.NewMemoryExerciseRepository(), failAfter: 49}
	flags := repository.NewMemorySeedFlagStore(false)
	defs := catalog.All()

	result, err := NewCatalogSeeder(repo, flags, defs, logger.Nop()).SeedIfNeeded(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to seed catalog")
	assert.Zero(t, result.Inserted)

	count, _ := repo.Count(ctx)
	assert.Zero(t, count)
	seeded, _ := flags.IsSeeded(ctx)
	assert.False(t, seeded)

	// the next launch starts from an empty store and seeds everything
	result, err = NewCatalogSeeder(repo, flags, defs, logger.Nop()).SeedIfNeeded(ctx)
	require.NoError(t, err)
	assert.Equal(t, SeedResult{Inserted: len(defs)}, result)
	count, _ = repo.Count(ctx)
	assert.Equal(t, int64(len(defs)), count)
}

func TestCatalogSeeder_RefreshesCachedListing(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	store := repository.NewMemoryExerciseRepository()
	cache := repository.NewLibraryCache(client, "totality:library", time.Minute)
	repo := repository.NewCachedExerciseRepository(store, cache)

	// a listing cached before the catalog arrives
	list, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Empty(t, list)

	flags := repository.NewMemorySeedFlagStore(false)
	_, err = NewCatalogSeeder(repo, flags, catalog.All(), logger.Nop()).SeedIfNeeded(ctx)
	require.NoError(t, err)

	list, err = repo.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, list, len(catalog.All()))
}
