package service

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/mansoorceksport/totality/internal/domain"
	"github.com/mansoorceksport/totality/internal/logger"
)

// SeedResult describes what a seeding attempt did.
type SeedResult struct {
	Inserted int    `json:"inserted"`
	Skipped  bool   `json:"skipped"`
	Reason   string `json:"reason,omitempty"`
}

const (
	SkipFlagSet     = "already seeded"
	SkipLocked      = "another seeder holds the lock"
	SkipStoreFilled = "store already contains exercises"
)

// CatalogSeeder writes the canonical catalog into an empty exercise store
// once per installation.
type CatalogSeeder struct {
	exercises   domain.ExerciseRepository
	flags       domain.SeedFlagStore
	definitions []domain.ExerciseDefinition
	log         *logger.Logger
}

func NewCatalogSeeder(
	exercises domain.ExerciseRepository,
	flags domain.SeedFlagStore,
	definitions []domain.ExerciseDefinition,
	log *logger.Logger,
) *CatalogSeeder {
	return &CatalogSeeder{
		exercises:   exercises,
		flags:       flags,
		definitions: definitions,
		log:         log.With("component", "seeder"),
	}
}

// SeedIfNeeded seeds the catalog unless the flag is set, another process
// holds the seed lock, or the store already has exercises. The emptiness
// check is a count, not a per-name comparison: a store that lost part of
// the catalog is left alone. The flag is set in that case too, so later
// launches skip the count.
func (s *CatalogSeeder) SeedIfNeeded(ctx context.Context) (SeedResult, error) {
	ctx, span := otel.Tracer("service.seeder").Start(ctx, "seeder.SeedIfNeeded")
	defer span.End()

	seeded, err := s.flags.IsSeeded(ctx)
	if err != nil {
		span.RecordError(err)
		return SeedResult{}, fmt.Errorf("failed to read seed flag: %w", err)
	}
	if seeded {
		s.log.Debug("catalog seed skipped", "reason", SkipFlagSet)
		return SeedResult{Skipped: true, Reason: SkipFlagSet}, nil
	}

	acquired, err := s.flags.AcquireLock(ctx)
	if err != nil {
		span.RecordError(err)
		return SeedResult{}, fmt.Errorf("failed to acquire seed lock: %w", err)
	}
	if !acquired {
		s.log.Info("catalog seed skipped", "reason", SkipLocked)
		return SeedResult{Skipped: true, Reason: SkipLocked}, nil
	}
	defer func() {
		if err := s.flags.ReleaseLock(context.WithoutCancel(ctx)); err != nil {
			s.log.Warn("failed to release seed lock", "error", err)
		}
	}()

	// another process may have finished between the flag read and the lock
	if seeded, err = s.flags.IsSeeded(ctx); err != nil {
		return SeedResult{}, fmt.Errorf("failed to read seed flag: %w", err)
	} else if seeded {
		return SeedResult{Skipped: true, Reason: SkipFlagSet}, nil
	}

	count, err := s.exercises.Count(ctx)
	if err != nil {
		span.RecordError(err)
		return SeedResult{}, fmt.Errorf("failed to count exercises: %w", err)
	}
	if count > 0 {
		if err := s.flags.MarkSeeded(ctx); err != nil {
			return SeedResult{}, fmt.Errorf("failed to set seed flag: %w", err)
		}
		s.log.Info("catalog seed skipped", "reason", SkipStoreFilled, "existing", count)
		return SeedResult{Skipped: true, Reason: SkipStoreFilled}, nil
	}

	// Materialize everything before the first write so a bad entry leaves
	// the store empty.
	exercises := make([]*domain.Exercise, 0, len(s.definitions))
	for _, def := range s.definitions {
		ex, err := def.Materialize()
		if err != nil {
			span.RecordError(err)
			return SeedResult{}, err
		}
		exercises = append(exercises, ex)
	}

	if err := s.exercises.CreateMany(ctx, exercises); err != nil {
		span.RecordError(err)
		err = fmt.Errorf("failed to seed catalog: %w", err)
		if rbErr := s.rollback(ctx, exercises); rbErr != nil {
			return SeedResult{}, errors.Join(err, rbErr)
		}
		return SeedResult{}, err
	}

	if err := s.flags.MarkSeeded(ctx); err != nil {
		return SeedResult{Inserted: len(exercises)}, fmt.Errorf("failed to set seed flag: %w", err)
	}

	catalogSeeded.Add(ctx, int64(len(exercises)))
	span.SetAttributes(attribute.Int("seed.inserted", len(exercises)))
	s.log.Info("catalog seeded", "inserted", len(exercises))
	return SeedResult{Inserted: len(exercises)}, nil
}

// rollback removes whatever part of a failed batch reached the store, so
// the next launch finds it empty and seeds again instead of counting a
// partial catalog as seeded.
func (s *CatalogSeeder) rollback(ctx context.Context, exercises []*domain.Exercise) error {
	ctx = context.WithoutCancel(ctx)
	var errs []error
	for _, ex := range exercises {
		if err := s.exercises.Delete(ctx, ex.ID); err != nil && !errors.Is(err, domain.ErrExerciseNotFound) {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		s.log.Error("failed to roll back partial catalog seed", "failed", len(errs), "error", errs[0])
		return fmt.Errorf("failed to roll back partial seed: %w", errors.Join(errs...))
	}
	s.log.Warn("rolled back partial catalog seed", "exercises", len(exercises))
	return nil
}
