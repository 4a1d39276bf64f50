package repository

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/mansoorceksport/totality/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// MongoExerciseRepository stores exercises with their muscle, joint and
// cardio sub-records embedded, so an exercise and everything it owns is
// written and removed by a single document operation. Relation edges live in
// their own collection and are removed with either endpoint.
type MongoExerciseRepository struct {
	collection *mongo.Collection
	relations  *mongo.Collection
}

func NewMongoExerciseRepository(db *mongo.Database) *MongoExerciseRepository {
	coll := db.Collection("exercises")
	relations := db.Collection("exercise_relations")

	// Create Indexes
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Names are not unique: user-created exercises may repeat catalog names
	coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "name", Value: 1}}},
		{Keys: bson.D{{Key: "category", Value: 1}, {Key: "implement", Value: 1}}},
	})
	relations.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "from_exercise_id", Value: 1}}},
		{Keys: bson.D{{Key: "to_exercise_id", Value: 1}}},
	})

	return &MongoExerciseRepository{
		collection: coll,
		relations:  relations,
	}
}

func (r *MongoExerciseRepository) startSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return otel.Tracer("repository.exercise").Start(ctx, name, trace.WithAttributes(attrs...))
}

func (r *MongoExerciseRepository) Create(ctx context.Context, ex *domain.Exercise) error {
	ctx, span := r.startSpan(ctx, "exercise.Create", attribute.String("exercise.name", ex.Name))
	defer span.End()

	if ex.ID == "" {
		ex.ID = domain.NewID()
	}
	now := time.Now()
	if ex.CreatedAt.IsZero() {
		ex.CreatedAt = now
	}
	ex.UpdatedAt = now

	if _, err := r.collection.InsertOne(ctx, ex); err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to create exercise: %w", err)
	}
	return nil
}

// CreateMany inserts the batch in order. If the insert stops partway, the
// documents it wrote are removed before the error is returned; a clashing
// document that was already stored is left alone.
func (r *MongoExerciseRepository) CreateMany(ctx context.Context, exercises []*domain.Exercise) error {
	ctx, span := r.startSpan(ctx, "exercise.CreateMany", attribute.Int("exercise.count", len(exercises)))
	defer span.End()

	if len(exercises) == 0 {
		return nil
	}

	now := time.Now()
	docs := make([]interface{}, len(exercises))
	ids := make(bson.A, len(exercises))
	for i, ex := range exercises {
		if ex.ID == "" {
			ex.ID = domain.NewID()
		}
		if ex.CreatedAt.IsZero() {
			ex.CreatedAt = now
		}
		ex.UpdatedAt = now
		docs[i] = ex
		ids[i] = ex.ID
	}

	if _, err := r.collection.InsertMany(ctx, docs, options.InsertMany().SetOrdered(true)); err != nil {
		span.RecordError(err)
		written := ids
		var bwe mongo.BulkWriteException
		if errors.As(err, &bwe) && len(bwe.WriteErrors) > 0 {
			written = ids[:bwe.WriteErrors[0].Index]
		}
		err = fmt.Errorf("failed to create exercises: %w", err)
		if len(written) == 0 {
			return err
		}
		if _, cleanupErr := r.collection.DeleteMany(context.WithoutCancel(ctx), bson.M{"_id": bson.M{"$in": written}}); cleanupErr != nil {
			span.RecordError(cleanupErr)
			return errors.Join(err, fmt.Errorf("failed to remove partial batch: %w", cleanupErr))
		}
		return err
	}
	return nil
}

func (r *MongoExerciseRepository) GetByID(ctx context.Context, id string) (*domain.Exercise, error) {
	if id == "" {
		return nil, domain.ErrInvalidID
	}

	var ex domain.Exercise
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&ex)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrExerciseNotFound
		}
		return nil, fmt.Errorf("failed to get exercise: %w", err)
	}
	return &ex, nil
}

func (r *MongoExerciseRepository) ListAll(ctx context.Context) ([]*domain.Exercise, error) {
	return r.List(ctx, domain.ExerciseFilter{})
}

func (r *MongoExerciseRepository) List(ctx context.Context, filter domain.ExerciseFilter) ([]*domain.Exercise, error) {
	ctx, span := r.startSpan(ctx, "exercise.List")
	defer span.End()

	query := bson.M{}
	if filter.Name != "" {
		query["name"] = bson.M{"$regex": regexp.QuoteMeta(filter.Name), "$options": "i"}
	}
	if filter.Category != "" {
		query["category"] = string(filter.Category)
	}
	if filter.Implement != "" {
		query["implement"] = string(filter.Implement)
	}
	if filter.UserCreated != nil {
		query["is_user_created"] = *filter.UserCreated
	}
	if filter.CreatedByUser != "" {
		query["created_by_user_id"] = filter.CreatedByUser
	}

	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}, {Key: "_id", Value: 1}})
	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list exercises: %w", err)
	}
	defer cursor.Close(ctx)

	exercises := []*domain.Exercise{}
	if err := cursor.All(ctx, &exercises); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to decode exercises: %w", err)
	}
	span.SetAttributes(attribute.Int("exercise.count", len(exercises)))
	return exercises, nil
}

func (r *MongoExerciseRepository) Count(ctx context.Context) (int64, error) {
	n, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count exercises: %w", err)
	}
	return n, nil
}

// Delete removes the exercise document, which carries its owned
// sub-records, then every relation edge touching it.
func (r *MongoExerciseRepository) Delete(ctx context.Context, id string) error {
	ctx, span := r.startSpan(ctx, "exercise.Delete", attribute.String("exercise.id", id))
	defer span.End()

	if id == "" {
		return domain.ErrInvalidID
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to delete exercise: %w", err)
	}
	if result.DeletedCount == 0 {
		return domain.ErrExerciseNotFound
	}

	edges, err := r.relations.DeleteMany(ctx, bson.M{"$or": bson.A{
		bson.M{"from_exercise_id": id},
		bson.M{"to_exercise_id": id},
	}})
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to delete relations of exercise %s: %w", id, err)
	}
	span.SetAttributes(attribute.Int64("relation.deleted", edges.DeletedCount))
	return nil
}

func (r *MongoExerciseRepository) CreateRelation(ctx context.Context, rel *domain.ExerciseRelation) error {
	if rel.ID == "" {
		rel.ID = domain.NewID()
	}
	if rel.CreatedAt.IsZero() {
		rel.CreatedAt = time.Now()
	}

	if _, err := r.relations.InsertOne(ctx, rel); err != nil {
		return fmt.Errorf("failed to create exercise relation: %w", err)
	}
	return nil
}

func (r *MongoExerciseRepository) ListRelations(ctx context.Context, exerciseID string) ([]*domain.ExerciseRelation, error) {
	filter := bson.M{"$or": bson.A{
		bson.M{"from_exercise_id": exerciseID},
		bson.M{"to_exercise_id": exerciseID},
	}}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})

	cursor, err := r.relations.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list exercise relations: %w", err)
	}
	defer cursor.Close(ctx)

	relations := []*domain.ExerciseRelation{}
	if err := cursor.All(ctx, &relations); err != nil {
		return nil, fmt.Errorf("failed to decode exercise relations: %w", err)
	}
	return relations, nil
}
