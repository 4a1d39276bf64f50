package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/mansoorceksport/totality/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoSetRecordRepository stores logged sets. Mini-sets are embedded in
// their parent record.
type MongoSetRecordRepository struct {
	collection *mongo.Collection
}

func NewMongoSetRecordRepository(db *mongo.Database) *MongoSetRecordRepository {
	coll := db.Collection("set_records")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "workout_id", Value: 1}, {Key: "order_index", Value: 1}}},
		{Keys: bson.D{{Key: "exercise_id", Value: 1}}},
	})

	return &MongoSetRecordRepository{
		collection: coll,
	}
}

func (r *MongoSetRecordRepository) Create(ctx context.Context, record *domain.SetRecord) error {
	if record.ID == "" {
		record.ID = domain.NewID()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now()
	}

	if _, err := r.collection.InsertOne(ctx, record); err != nil {
		return fmt.Errorf("failed to create set record: %w", err)
	}
	return nil
}

func (r *MongoSetRecordRepository) ListByWorkout(ctx context.Context, workoutID string) ([]*domain.SetRecord, error) {
	opts := options.Find().SetSort(bson.D{{Key: "order_index", Value: 1}, {Key: "created_at", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"workout_id": workoutID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list set records: %w", err)
	}
	defer cursor.Close(ctx)

	records := []*domain.SetRecord{}
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("failed to decode set records: %w", err)
	}
	return records, nil
}

// DeleteByExerciseID removes all sets logged against an exercise (cascade)
func (r *MongoSetRecordRepository) DeleteByExerciseID(ctx context.Context, exerciseID string) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"exercise_id": exerciseID})
	if err != nil {
		return fmt.Errorf("failed to delete set records: %w", err)
	}
	return nil
}
