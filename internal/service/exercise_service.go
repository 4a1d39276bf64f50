package service

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/mansoorceksport/totality/internal/domain"
	"github.com/mansoorceksport/totality/internal/logger"
	"github.com/mansoorceksport/totality/internal/titleparser"
)

// ExerciseService is the library's read side plus the user-facing write
// flows: custom exercises, relations and set logging.
type ExerciseService struct {
	exercises domain.ExerciseRepository
	sets      domain.SetRecordRepository
	log       *logger.Logger
}

func NewExerciseService(exercises domain.ExerciseRepository, sets domain.SetRecordRepository, log *logger.Logger) *ExerciseService {
	return &ExerciseService{
		exercises: exercises,
		sets:      sets,
		log:       log.With("component", "exercise_service"),
	}
}

// ListAll returns the library sorted by name. A store failure is logged and
// reported as an empty library.
func (s *ExerciseService) ListAll(ctx context.Context) []*domain.Exercise {
	exercises, err := s.exercises.ListAll(ctx)
	if err != nil {
		s.log.Error("failed to list exercises", "error", err)
		return []*domain.Exercise{}
	}
	return exercises
}

// List is ListAll narrowed by filter, with the same fail-soft behaviour.
func (s *ExerciseService) List(ctx context.Context, filter domain.ExerciseFilter) []*domain.Exercise {
	if filter == (domain.ExerciseFilter{}) {
		return s.ListAll(ctx)
	}
	exercises, err := s.exercises.List(ctx, filter)
	if err != nil {
		s.log.Error("failed to list exercises", "error", err, "name", filter.Name)
		return []*domain.Exercise{}
	}
	return exercises
}

func (s *ExerciseService) Get(ctx context.Context, id string) (*domain.Exercise, error) {
	return s.exercises.GetByID(ctx, id)
}

// ParseTitle exposes the title parser so clients can pre-fill a form
// before submitting.
func (s *ExerciseService) ParseTitle(title string) titleparser.Hints {
	return titleparser.Parse(title)
}

// CreateCustomExercise builds a user-created exercise from a raw title.
// Fields set on overrides win over anything guessed from the title; the
// rest fall back to resistance/compound/bodyweight with implement-derived
// ratings.
func (s *ExerciseService) CreateCustomExercise(ctx context.Context, userID, title string, overrides domain.ExerciseDefinition) (*domain.Exercise, error) {
	def := overrides
	titleparser.Parse(title).Prefill(&def)

	if def.Category == "" {
		def.Category = domain.CategoryResistance
	}
	if def.Type == "" {
		def.Type = domain.TypeCompound
		if def.Category == domain.CategoryCardio {
			def.Type = domain.TypeCardio
		}
	}
	if def.Implement == "" {
		def.Implement = domain.ImplementBodyweight
	}
	domain.DefaultRatings(def.Implement).Apply(&def)
	if len(def.AllowedSetTypes) == 0 {
		def.AllowedSetTypes = defaultSetTypes(def.Category)
	}
	def.IsUserCreated = true
	def.CreatedByUserID = userID

	ex, err := def.Materialize()
	if err != nil {
		return nil, err
	}
	if err := s.exercises.Create(ctx, ex); err != nil {
		return nil, err
	}

	customCreated.Add(ctx, 1, metric.WithAttributes(attribute.String("implement", ex.ImplementRaw)))
	s.log.Info("custom exercise created", "id", ex.ID, "name", ex.Name, "user_id", userID)
	return ex, nil
}

func defaultSetTypes(category domain.ExerciseCategory) []domain.SetType {
	if category == domain.CategoryCardio {
		return []domain.SetType{domain.SetCardioRound, domain.SetWarmup}
	}
	return []domain.SetType{domain.SetStraight, domain.SetWarmup, domain.SetBackoff, domain.SetFailure}
}

// DeleteExercise removes a user-created exercise with its sub-records,
// relation edges and logged sets. Catalog exercises cannot be deleted.
func (s *ExerciseService) DeleteExercise(ctx context.Context, id string) error {
	ex, err := s.exercises.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !ex.IsEditable() {
		return domain.ErrNotEditable
	}

	if err := s.exercises.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.sets.DeleteByExerciseID(ctx, id); err != nil {
		return fmt.Errorf("exercise %s deleted but its sets were not: %w", id, err)
	}

	customDeleted.Add(ctx, 1)
	s.log.Info("custom exercise deleted", "id", id)
	return nil
}

// CreateRelation links two existing exercises.
func (s *ExerciseService) CreateRelation(ctx context.Context, fromID, toID string, relationType domain.ExerciseRelationType, similarity float64) (*domain.ExerciseRelation, error) {
	rel, err := domain.NewExerciseRelation(fromID, toID, relationType, similarity)
	if err != nil {
		return nil, err
	}

	for _, id := range []string{fromID, toID} {
		if _, err := s.exercises.GetByID(ctx, id); err != nil {
			return nil, err
		}
	}

	if err := s.exercises.CreateRelation(ctx, rel); err != nil {
		return nil, err
	}
	return rel, nil
}

// ListRelations returns edges touching the exercise, oldest first.
func (s *ExerciseService) ListRelations(ctx context.Context, exerciseID string) ([]*domain.ExerciseRelation, error) {
	if _, err := s.exercises.GetByID(ctx, exerciseID); err != nil {
		return nil, err
	}
	return s.exercises.ListRelations(ctx, exerciseID)
}

// LogSet records a set against an exercise. The set type must be one the
// exercise allows; a missing category is taken from the exercise.
func (s *ExerciseService) LogSet(ctx context.Context, record *domain.SetRecord) error {
	ex, err := s.exercises.GetByID(ctx, record.ExerciseID)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidID) {
			return fmt.Errorf("%w: exercise_id is required", domain.ErrInvalidSet)
		}
		return err
	}

	if record.CategoryRaw == "" {
		record.CategoryRaw = string(domain.SetCategoryResistance)
		if ex.Category() == domain.CategoryCardio {
			record.CategoryRaw = string(domain.SetCategoryCardio)
		}
	}
	if record.FailureTypeRaw == "" {
		record.FailureTypeRaw = string(domain.FailureNone)
	}
	if record.MiniSets == nil {
		record.MiniSets = []domain.MiniSet{}
	}
	if err := record.Validate(); err != nil {
		return err
	}
	if !ex.AllowsSetType(record.Type()) {
		return fmt.Errorf("%w: %s on %s", domain.ErrSetTypeNotAllowed, record.TypeRaw, ex.Name)
	}

	record.IsLogged = true
	if err := s.sets.Create(ctx, record); err != nil {
		return err
	}
	setsLogged.Add(ctx, 1, metric.WithAttributes(attribute.String("set_type", record.TypeRaw)))
	return nil
}

// ListWorkoutSets returns the sets logged in a workout by order index.
func (s *ExerciseService) ListWorkoutSets(ctx context.Context, workoutID string) ([]*domain.SetRecord, error) {
	if workoutID == "" {
		return nil, domain.ErrInvalidID
	}
	return s.sets.ListByWorkout(ctx, workoutID)
}
