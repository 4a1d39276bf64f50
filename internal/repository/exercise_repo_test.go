package repository

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mansoorceksport/totality/internal/domain"
)

// testExerciseStore runs the store contract against any implementation.
func testExerciseStore(t *testing.T, newStore func(t *testing.T) domain.ExerciseRepository) {
	ctx := context.Background()

	t.Run("create and get keeps owned sub-records", func(t *testing.T) {
		repo := newStore(t)
		ex := newExercise(t, "Bench Press")
		require.NoError(t, repo.Create(ctx, ex))

		got, err := repo.GetByID(ctx, ex.ID)
		require.NoError(t, err)
		assert.Equal(t, "Bench Press", got.Name)
		assert.Len(t, got.Muscles, 2)
		assert.Len(t, got.Joints, 1)
		assert.Equal(t, domain.MuscleTriceps, got.Muscles[1].Muscle())
		assert.Equal(t, domain.ImplementBarbell, got.Implement())
		assert.True(t, got.AllowsSetType(domain.SetWarmup))
	})

	t.Run("get unknown id", func(t *testing.T) {
		repo := newStore(t)
		_, err := repo.GetByID(ctx, domain.NewID())
		assert.ErrorIs(t, err, domain.ErrExerciseNotFound)

		_, err = repo.GetByID(ctx, "")
		assert.ErrorIs(t, err, domain.ErrInvalidID)
	})

	t.Run("list all sorted by name", func(t *testing.T) {
		repo := newStore(t)
		for _, name := range []string{"Squat", "Bench Press", "Deadlift", "Bench Press"} {
			require.NoError(t, repo.Create(ctx, newExercise(t, name)))
		}

		list, err := repo.ListAll(ctx)
		require.NoError(t, err)
		require.Len(t, list, 4)
		names := make([]string, len(list))
		for i, ex := range list {
			names[i] = ex.Name
		}
		assert.Equal(t, []string{"Bench Press", "Bench Press", "Deadlift", "Squat"}, names)

		count, err := repo.Count(ctx)
		require.NoError(t, err)
		assert.EqualValues(t, 4, count)
	})

	t.Run("list with filter", func(t *testing.T) {
		repo := newStore(t)
		custom := newExercise(t, "Cable Bench Press")
		custom.IsUserCreated = true
		custom.CreatedByUserID = "user-1"
		require.NoError(t, repo.Create(ctx, custom))
		require.NoError(t, repo.Create(ctx, newExercise(t, "Bench Press")))
		require.NoError(t, repo.Create(ctx, newExercise(t, "Squat")))

		list, err := repo.List(ctx, domain.ExerciseFilter{Name: "bench"})
		require.NoError(t, err)
		assert.Len(t, list, 2)

		userCreated := true
		list, err = repo.List(ctx, domain.ExerciseFilter{UserCreated: &userCreated})
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, "Cable Bench Press", list[0].Name)
		assert.True(t, list[0].IsEditable())

		list, err = repo.List(ctx, domain.ExerciseFilter{Name: "("})
		require.NoError(t, err)
		assert.Empty(t, list)
	})

	t.Run("delete cascades relations from either endpoint", func(t *testing.T) {
		repo := newStore(t)
		a := newExercise(t, "A")
		b := newExercise(t, "B")
		c := newExercise(t, "C")
		for _, ex := range []*domain.Exercise{a, b, c} {
			require.NoError(t, repo.Create(ctx, ex))
		}
		require.NoError(t, repo.CreateRelation(ctx, mustRelate(t, a.ID, b.ID)))
		require.NoError(t, repo.CreateRelation(ctx, mustRelate(t, c.ID, a.ID)))
		require.NoError(t, repo.CreateRelation(ctx, mustRelate(t, b.ID, c.ID)))

		rels, err := repo.ListRelations(ctx, a.ID)
		require.NoError(t, err)
		assert.Len(t, rels, 2)

		require.NoError(t, repo.Delete(ctx, a.ID))

		_, err = repo.GetByID(ctx, a.ID)
		assert.ErrorIs(t, err, domain.ErrExerciseNotFound)

		rels, err = repo.ListRelations(ctx, a.ID)
		require.NoError(t, err)
		assert.Empty(t, rels)

		rels, err = repo.ListRelations(ctx, b.ID)
		require.NoError(t, err)
		require.Len(t, rels, 1)
		assert.Equal(t, c.ID, rels[0].ToExerciseID)

		count, err := repo.Count(ctx)
		require.NoError(t, err)
		assert.EqualValues(t, 2, count)
	})

	t.Run("create many", func(t *testing.T) {
		repo := newStore(t)
		batch := []*domain.Exercise{newExercise(t, "Squat"), newExercise(t, "Bench Press")}
		require.NoError(t, repo.CreateMany(ctx, batch))
		require.NoError(t, repo.CreateMany(ctx, nil))

		list, err := repo.ListAll(ctx)
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, "Bench Press", list[0].Name)
		assert.False(t, list[0].CreatedAt.IsZero())
	})

	t.Run("delete unknown id", func(t *testing.T) {
		repo := newStore(t)
		assert.ErrorIs(t, repo.Delete(ctx, domain.NewID()), domain.ErrExerciseNotFound)
	})
}

func TestMemoryExerciseRepository(t *testing.T) {
	testExerciseStore(t, func(t *testing.T) domain.ExerciseRepository {
		return NewMemoryExerciseRepository()
	})
}

func TestMemoryExerciseRepository_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryExerciseRepository()
	ex := newExercise(t, "Bench Press")
	ex.OverloadPotential = domain.IntPtr(5)
	require.NoError(t, repo.Create(ctx, ex))

	got, err := repo.GetByID(ctx, ex.ID)
	require.NoError(t, err)
	got.Name = "Changed"
	got.Muscles[0].Emphasis = 1
	*got.OverloadPotential = 1

	again, err := repo.GetByID(ctx, ex.ID)
	require.NoError(t, err)
	assert.Equal(t, "Bench Press", again.Name)
	assert.Equal(t, 5, again.Muscles[0].Emphasis)
	assert.Equal(t, 5, *again.OverloadPotential)
}

func TestMemoryExerciseRepository_CardioZoneIsCopied(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryExerciseRepository()
	ex := newExercise(t, "Rower")
	ex.CardioProfile = &domain.CardioProfile{ID: domain.NewID(), DefaultZone: domain.IntPtr(2)}
	require.NoError(t, repo.Create(ctx, ex))

	// the caller's copy is detached from the stored one too
	*ex.CardioProfile.DefaultZone = 4

	got, err := repo.GetByID(ctx, ex.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, *got.CardioProfile.DefaultZone)
	*got.CardioProfile.DefaultZone = 5

	again, err := repo.GetByID(ctx, ex.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, *again.CardioProfile.DefaultZone)
}

func TestMongoExerciseRepository(t *testing.T) {
	db := setupTestDB(t)
	n := 0
	testExerciseStore(t, func(t *testing.T) domain.ExerciseRepository {
		// each subtest gets its own database on the shared container
		n++
		return NewMongoExerciseRepository(db.Client().Database(fmt.Sprintf("%s_%d", db.Name(), n)))
	})
}

func TestMongoExerciseRepository_CreateManyRemovesPartialBatch(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := NewMongoExerciseRepository(db)

	existing := newExercise(t, "Deadlift")
	require.NoError(t, repo.Create(ctx, existing))

	clash := newExercise(t, "Deadlift Again")
	clash.ID = existing.ID
	batch := []*domain.Exercise{newExercise(t, "Squat"), newExercise(t, "Bench Press"), clash, newExercise(t, "Row")}
	require.Error(t, repo.CreateMany(ctx, batch))

	list, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Deadlift", list[0].Name)
}

func TestMongoExerciseRepository_DecodesUnknownTokens(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := NewMongoExerciseRepository(db)

	ex := newExercise(t, "Future Press")
	ex.CategoryRaw = "hyperResistance"
	ex.Muscles[0].MuscleRaw = "serratusPosteriorInferior"
	ex.MovementPatternRaw = "teleport"
	require.NoError(t, repo.Create(ctx, ex))

	got, err := repo.GetByID(ctx, ex.ID)
	require.NoError(t, err)
	assert.Equal(t, "hyperResistance", got.CategoryRaw)
	assert.Equal(t, domain.CategoryResistance, got.Category())
	assert.Equal(t, domain.MuscleOther, got.Muscles[0].Muscle())
	assert.Empty(t, got.MovementPattern())
}
