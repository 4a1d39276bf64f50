package repository

import (
	"cmp"
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/mansoorceksport/totality/internal/domain"
)

// MemoryExerciseRepository is an in-process exercise store with the same
// ordering and cascade behaviour as the Mongo store. It backs tests and
// single-process runs without a database.
type MemoryExerciseRepository struct {
	mu        sync.RWMutex
	exercises map[string]*domain.Exercise
	relations map[string]*domain.ExerciseRelation
}

func NewMemoryExerciseRepository() *MemoryExerciseRepository {
	return &MemoryExerciseRepository{
		exercises: make(map[string]*domain.Exercise),
		relations: make(map[string]*domain.ExerciseRelation),
	}
}

// clone deep-copies the exercise so callers cannot mutate stored state.
func clone(ex *domain.Exercise) *domain.Exercise {
	c := *ex
	c.AKANames = slices.Clone(ex.AKANames)
	c.AllowedSetTypesRaw = slices.Clone(ex.AllowedSetTypesRaw)
	c.Muscles = slices.Clone(ex.Muscles)
	c.Joints = slices.Clone(ex.Joints)
	c.OverloadPotential = cloneInt(ex.OverloadPotential)
	c.StabilityDemand = cloneInt(ex.StabilityDemand)
	c.SkillDemand = cloneInt(ex.SkillDemand)
	c.DifficultyRating = cloneInt(ex.DifficultyRating)
	if ex.CardioProfile != nil {
		p := *ex.CardioProfile
		p.DefaultZone = cloneInt(ex.CardioProfile.DefaultZone)
		c.CardioProfile = &p
	}
	return &c
}

func cloneInt(v *int) *int {
	if v == nil {
		return nil
	}
	n := *v
	return &n
}

func stamp(ex *domain.Exercise, now time.Time) {
	if ex.ID == "" {
		ex.ID = domain.NewID()
	}
	if ex.CreatedAt.IsZero() {
		ex.CreatedAt = now
	}
	ex.UpdatedAt = now
}

func (r *MemoryExerciseRepository) Create(ctx context.Context, ex *domain.Exercise) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stamp(ex, time.Now())
	r.exercises[ex.ID] = clone(ex)
	return nil
}

// CreateMany stores the whole batch under one lock.
func (r *MemoryExerciseRepository) CreateMany(ctx context.Context, exercises []*domain.Exercise) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	for _, ex := range exercises {
		stamp(ex, now)
		r.exercises[ex.ID] = clone(ex)
	}
	return nil
}

func (r *MemoryExerciseRepository) GetByID(ctx context.Context, id string) (*domain.Exercise, error) {
	if id == "" {
		return nil, domain.ErrInvalidID
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	ex, ok := r.exercises[id]
	if !ok {
		return nil, domain.ErrExerciseNotFound
	}
	return clone(ex), nil
}

func (r *MemoryExerciseRepository) ListAll(ctx context.Context) ([]*domain.Exercise, error) {
	return r.List(ctx, domain.ExerciseFilter{})
}

func (r *MemoryExerciseRepository) List(ctx context.Context, filter domain.ExerciseFilter) ([]*domain.Exercise, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	name := strings.ToLower(filter.Name)
	out := []*domain.Exercise{}
	for _, ex := range r.exercises {
		if name != "" && !strings.Contains(strings.ToLower(ex.Name), name) {
			continue
		}
		if filter.Category != "" && ex.CategoryRaw != string(filter.Category) {
			continue
		}
		if filter.Implement != "" && ex.ImplementRaw != string(filter.Implement) {
			continue
		}
		if filter.UserCreated != nil && ex.IsUserCreated != *filter.UserCreated {
			continue
		}
		if filter.CreatedByUser != "" && ex.CreatedByUserID != filter.CreatedByUser {
			continue
		}
		out = append(out, clone(ex))
	}

	slices.SortFunc(out, func(a, b *domain.Exercise) int {
		return cmp.Or(cmp.Compare(a.Name, b.Name), cmp.Compare(a.ID, b.ID))
	})
	return out, nil
}

func (r *MemoryExerciseRepository) Count(ctx context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.exercises)), nil
}

func (r *MemoryExerciseRepository) Delete(ctx context.Context, id string) error {
	if id == "" {
		return domain.ErrInvalidID
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.exercises[id]; !ok {
		return domain.ErrExerciseNotFound
	}
	delete(r.exercises, id)

	for relID, rel := range r.relations {
		if rel.FromExerciseID == id || rel.ToExerciseID == id {
			delete(r.relations, relID)
		}
	}
	return nil
}

func (r *MemoryExerciseRepository) CreateRelation(ctx context.Context, rel *domain.ExerciseRelation) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if rel.ID == "" {
		rel.ID = domain.NewID()
	}
	if rel.CreatedAt.IsZero() {
		rel.CreatedAt = time.Now()
	}
	c := *rel
	r.relations[rel.ID] = &c
	return nil
}

func (r *MemoryExerciseRepository) ListRelations(ctx context.Context, exerciseID string) ([]*domain.ExerciseRelation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []*domain.ExerciseRelation{}
	for _, rel := range r.relations {
		if rel.FromExerciseID == exerciseID || rel.ToExerciseID == exerciseID {
			c := *rel
			out = append(out, &c)
		}
	}
	slices.SortFunc(out, func(a, b *domain.ExerciseRelation) int {
		return cmp.Or(a.CreatedAt.Compare(b.CreatedAt), cmp.Compare(a.ID, b.ID))
	})
	return out, nil
}

// MemorySetRecordRepository keeps logged sets in process.
type MemorySetRecordRepository struct {
	mu      sync.RWMutex
	records []*domain.SetRecord
}

func NewMemorySetRecordRepository() *MemorySetRecordRepository {
	return &MemorySetRecordRepository{}
}

func (r *MemorySetRecordRepository) Create(ctx context.Context, record *domain.SetRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if record.ID == "" {
		record.ID = domain.NewID()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now()
	}
	c := *record
	c.MiniSets = slices.Clone(record.MiniSets)
	r.records = append(r.records, &c)
	return nil
}

func (r *MemorySetRecordRepository) ListByWorkout(ctx context.Context, workoutID string) ([]*domain.SetRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []*domain.SetRecord{}
	for _, rec := range r.records {
		if rec.WorkoutID == workoutID {
			c := *rec
			c.MiniSets = slices.Clone(rec.MiniSets)
			out = append(out, &c)
		}
	}
	slices.SortStableFunc(out, func(a, b *domain.SetRecord) int {
		return cmp.Compare(a.OrderIndex, b.OrderIndex)
	})
	return out, nil
}

func (r *MemorySetRecordRepository) DeleteByExerciseID(ctx context.Context, exerciseID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.records = slices.DeleteFunc(r.records, func(rec *domain.SetRecord) bool {
		return rec.ExerciseID == exerciseID
	})
	return nil
}

// MemorySeedFlagStore holds the seed flag and lock in process.
type MemorySeedFlagStore struct {
	mu     sync.Mutex
	seeded bool
	locked bool
}

func NewMemorySeedFlagStore(seeded bool) *MemorySeedFlagStore {
	return &MemorySeedFlagStore{seeded: seeded}
}

func (s *MemorySeedFlagStore) IsSeeded(ctx context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.seeded, nil
}

func (s *MemorySeedFlagStore) MarkSeeded(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seeded = true
	return nil
}

func (s *MemorySeedFlagStore) AcquireLock(ctx context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.locked {
		return false, nil
	}
	s.locked = true
	return true, nil
}

func (s *MemorySeedFlagStore) ReleaseLock(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.locked = false
	return nil
}
