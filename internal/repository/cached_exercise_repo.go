package repository

import (
	"context"
	"errors"

	"github.com/mansoorceksport/totality/internal/domain"
)

// CachedExerciseRepository serves single exercises and the full sorted
// listing from a LibraryCache. Every write through it invalidates the
// cache; cache failures fall back to the store.
//
// Reads take the generation before touching the store, so a read that
// races a write is filed under the retired generation.
type CachedExerciseRepository struct {
	store domain.ExerciseRepository
	cache *LibraryCache
}

func NewCachedExerciseRepository(store domain.ExerciseRepository, cache *LibraryCache) *CachedExerciseRepository {
	return &CachedExerciseRepository{
		store: store,
		cache: cache,
	}
}

func (r *CachedExerciseRepository) GetByID(ctx context.Context, id string) (*domain.Exercise, error) {
	gen, genErr := r.cache.Generation(ctx)
	if genErr == nil {
		if ex, err := r.cache.Exercise(ctx, gen, id); err == nil {
			return ex, nil
		}
	}

	ex, err := r.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if genErr == nil {
		_ = r.cache.StoreExercise(ctx, gen, ex)
	}
	return ex, nil
}

func (r *CachedExerciseRepository) ListAll(ctx context.Context) ([]*domain.Exercise, error) {
	gen, genErr := r.cache.Generation(ctx)
	if genErr == nil {
		if exercises, err := r.cache.Library(ctx, gen); err == nil {
			return exercises, nil
		}
	}

	exercises, err := r.store.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	if genErr == nil {
		_ = r.cache.StoreLibrary(ctx, gen, exercises)
	}
	return exercises, nil
}

func (r *CachedExerciseRepository) Create(ctx context.Context, ex *domain.Exercise) error {
	if err := r.store.Create(ctx, ex); err != nil {
		return err
	}
	_ = r.cache.Invalidate(ctx)
	return nil
}

func (r *CachedExerciseRepository) CreateMany(ctx context.Context, exercises []*domain.Exercise) error {
	err := r.store.CreateMany(ctx, exercises)
	// a failed batch may still have been visible to a concurrent read
	_ = r.cache.Invalidate(ctx)
	return err
}

// Delete invalidates the cache even when the store reports the exercise
// missing, since the cache may still hold it.
func (r *CachedExerciseRepository) Delete(ctx context.Context, id string) error {
	err := r.store.Delete(ctx, id)
	if err != nil && !errors.Is(err, domain.ErrExerciseNotFound) {
		return err
	}
	_ = r.cache.Invalidate(ctx)
	return err
}

// Filtered listings, counts and relation edges are not cached.

func (r *CachedExerciseRepository) List(ctx context.Context, filter domain.ExerciseFilter) ([]*domain.Exercise, error) {
	return r.store.List(ctx, filter)
}

func (r *CachedExerciseRepository) Count(ctx context.Context) (int64, error) {
	return r.store.Count(ctx)
}

func (r *CachedExerciseRepository) CreateRelation(ctx context.Context, rel *domain.ExerciseRelation) error {
	return r.store.CreateRelation(ctx, rel)
}

func (r *CachedExerciseRepository) ListRelations(ctx context.Context, exerciseID string) ([]*domain.ExerciseRelation, error) {
	return r.store.ListRelations(ctx, exerciseID)
}
