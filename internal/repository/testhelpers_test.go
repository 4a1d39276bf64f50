package repository

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mansoorceksport/totality/internal/domain"
)

// setupTestDB spins up a fresh MongoDB container. Skipped with -short.
func setupTestDB(t *testing.T) *mongo.Database {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping MongoDB container test in short mode")
	}
	ctx := context.Background()

	container, err := mongodb.Run(ctx, "mongo:7")
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	endpoint, err := container.ConnectionString(ctx)
	require.NoError(t, err)

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(endpoint))
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Disconnect(ctx) })

	return client.Database("totality_test")
}

func setupRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func newExercise(t *testing.T, name string) *domain.Exercise {
	t.Helper()
	ex, err := domain.ExerciseDefinition{
		Name:            name,
		Category:        domain.CategoryResistance,
		Implement:       domain.ImplementBarbell,
		Type:            domain.TypeCompound,
		AllowedSetTypes: []domain.SetType{domain.SetStraight, domain.SetWarmup},
		Muscles: []domain.MuscleDefinition{
			{Muscle: domain.MusclePectorals, Role: domain.RolePrimaryAgonist, Emphasis: 5, Articulation: domain.ArticulationMonoarticular},
			{Muscle: domain.MuscleTriceps, Role: domain.RoleSynergist, Emphasis: 3, Articulation: domain.ArticulationBiarticular},
		},
		Joints: []domain.JointDefinition{
			{Joint: domain.JointShoulder, LoadEmphasis: 4},
		},
	}.Materialize()
	require.NoError(t, err)
	return ex
}

func mustRelate(t *testing.T, from, to string) *domain.ExerciseRelation {
	t.Helper()
	rel, err := domain.NewExerciseRelation(from, to, domain.RelationSimilar, 0.8)
	require.NoError(t, err)
	return rel
}
