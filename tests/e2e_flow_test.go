package tests

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mansoorceksport/totality/internal/catalog"
	"github.com/mansoorceksport/totality/internal/config"
	"github.com/mansoorceksport/totality/internal/domain"
	"github.com/mansoorceksport/totality/internal/logger"
	"github.com/mansoorceksport/totality/internal/repository"
	"github.com/mansoorceksport/totality/internal/server"
	"github.com/mansoorceksport/totality/internal/service"
)

func TestGoldenPath(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container-backed flow in short mode")
	}
	ctx := context.Background()

	// 1. Setup Infrastructure
	db, cleanupDB := SetupTestDB(t)
	defer cleanupDB()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	redisClient := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer redisClient.Close()

	cfg := &config.Config{}
	cfg.Server.IdempotencyTTL = time.Hour
	cfg.Seed.FlagKey = "test:catalog:seeded"
	cfg.Seed.LockTTL = time.Minute

	deps := server.AppDependencies{
		Config:      cfg,
		MongoDB:     db,
		RedisClient: redisClient,
		Logger:      logger.Nop(),
	}
	exercises, sets := server.Repositories(deps)

	// 2. Seed twice: the second launch must not add anything
	flags := repository.NewRedisSeedFlagStore(redisClient, cfg.Seed.FlagKey, cfg.Seed.LockTTL, catalog.Version())
	seeder := service.NewCatalogSeeder(exercises, flags, catalog.All(), logger.Nop())

	result, err := seeder.SeedIfNeeded(ctx)
	require.NoError(t, err)
	assert.Equal(t, len(catalog.All()), result.Inserted)

	result, err = seeder.SeedIfNeeded(ctx)
	require.NoError(t, err)
	assert.True(t, result.Skipped)

	app := server.NewAppWithService(deps, service.NewExerciseService(exercises, sets, logger.Nop()))
	client := NewClient(t, app)

	// 3. Library listing is sorted by name
	var library []domain.Exercise
	resp := client.Do(http.MethodGet, "/v1/exercises", nil, &library)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, library, len(catalog.All()))
	for i := 1; i < len(library); i++ {
		assert.LessOrEqual(t, library[i-1].Name, library[i].Name)
	}

	var benches []domain.Exercise
	client.Do(http.MethodGet, "/v1/exercises?name=barbell%20bench", nil, &benches)
	require.NotEmpty(t, benches)
	bench := benches[0]

	// 4. Create a custom exercise from a title, retried with the same correlation id
	var custom, replayed domain.Exercise
	body := map[string]interface{}{"title": "Barbell Pause Incline Bench Press"}
	resp = client.Do(http.MethodPost, "/v1/exercises", body, &custom, "X-User-ID", "user-1", "X-Correlation-ID", "create-1")
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp = client.Do(http.MethodPost, "/v1/exercises", body, &replayed, "X-User-ID", "user-1", "X-Correlation-ID", "create-1")
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "true", resp.Header.Get("X-Idempotent-Replay"))
	assert.Equal(t, custom.ID, replayed.ID)

	assert.Equal(t, "Bench Press", custom.Name)
	assert.Equal(t, domain.ImplementBarbell, custom.Implement())
	assert.True(t, custom.IsUserCreated)

	count, err := exercises.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(len(catalog.All())+1), count)

	// 5. Relate it to the catalog bench press and log sets
	resp = client.Do(http.MethodPost, "/v1/exercises/"+custom.ID+"/relations", map[string]interface{}{
		"to_exercise_id": bench.ID,
		"type":           "variation",
		"similarity":     0.9,
	}, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	for i, setType := range []string{"warmup", "straight"} {
		resp = client.Do(http.MethodPost, "/v1/exercises/"+custom.ID+"/sets", map[string]interface{}{
			"workout_id":  "workout-1",
			"order_index": i,
			"type":        setType,
			"reps":        8,
		}, nil)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	var logged []domain.SetRecord
	client.Do(http.MethodGet, "/v1/workouts/workout-1/sets", nil, &logged)
	require.Len(t, logged, 2)
	assert.Equal(t, domain.SetWarmup, logged[0].Type())

	// 6. Catalog exercises are protected; custom ones cascade on delete
	resp = client.Do(http.MethodDelete, "/v1/exercises/"+bench.ID, nil, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = client.Do(http.MethodDelete, "/v1/exercises/"+custom.ID, nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var rels []domain.ExerciseRelation
	client.Do(http.MethodGet, "/v1/exercises/"+bench.ID+"/relations", nil, &rels)
	assert.Empty(t, rels)

	client.Do(http.MethodGet, "/v1/workouts/workout-1/sets", nil, &logged)
	assert.Empty(t, logged)

	resp = client.Do(http.MethodGet, "/v1/exercises/"+custom.ID, nil, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
