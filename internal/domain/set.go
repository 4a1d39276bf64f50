package domain

import (
	"context"
	"fmt"
	"slices"
	"time"
)

// SetType is a set technique. Exercises declare which ones they support.
type SetType string

const (
	SetStraight     SetType = "straight"
	SetWarmup       SetType = "warmup"
	SetBackoff      SetType = "backoff"
	SetFailure      SetType = "failure"
	SetDrop         SetType = "drop"
	SetMyo          SetType = "myo"
	SetForced       SetType = "forced"
	SetPartialLong  SetType = "partialLong"
	SetPartialShort SetType = "partialShort"
	SetCardioRound  SetType = "cardioRound"
)

var setTypes = []SetType{
	SetStraight, SetWarmup, SetBackoff, SetFailure, SetDrop, SetMyo, SetForced, SetPartialLong,
	SetPartialShort, SetCardioRound,
}

func (v SetType) Valid() bool { return slices.Contains(setTypes, v) }

// ParseSetType decodes a stored token. Unknown tokens decode to SetStraight.
func ParseSetType(raw string) SetType { return decode(raw, setTypes, SetStraight) }

type SetCategory string

const (
	SetCategoryResistance SetCategory = "resistance"
	SetCategoryCardio     SetCategory = "cardio"
	SetCategorySpecial    SetCategory = "special"
)

var setCategories = []SetCategory{
	SetCategoryResistance, SetCategoryCardio, SetCategorySpecial,
}

func (v SetCategory) Valid() bool { return slices.Contains(setCategories, v) }

// ParseSetCategory decodes a stored token. Unknown tokens decode to SetCategoryResistance.
func ParseSetCategory(raw string) SetCategory {
	return decode(raw, setCategories, SetCategoryResistance)
}

type SetStimulus string

const (
	StimulusStandard   SetStimulus = "standard"
	StimulusMetabolite SetStimulus = "metabolite"
	StimulusStrength   SetStimulus = "strength"
	StimulusPower      SetStimulus = "power"
	StimulusEndurance  SetStimulus = "endurance"
)

var setStimuli = []SetStimulus{
	StimulusStandard, StimulusMetabolite, StimulusStrength, StimulusPower, StimulusEndurance,
}

func (v SetStimulus) Valid() bool { return slices.Contains(setStimuli, v) }

func ParseSetStimulus(raw string) SetStimulus { return decode(raw, setStimuli, "") }

type SetFailureType string

const (
	FailureNone           SetFailureType = "none"
	FailureTechnical      SetFailureType = "technical"
	FailureMuscular       SetFailureType = "muscular"
	FailureCardiovascular SetFailureType = "cardiovascular"
)

var setFailureTypes = []SetFailureType{
	FailureNone, FailureTechnical, FailureMuscular, FailureCardiovascular,
}

func (v SetFailureType) Valid() bool { return slices.Contains(setFailureTypes, v) }

// ParseSetFailureType decodes a stored token. Unknown tokens decode to FailureNone.
func ParseSetFailureType(raw string) SetFailureType { return decode(raw, setFailureTypes, FailureNone) }

type RestType string

const (
	RestPassive RestType = "passive"
	RestActive  RestType = "active"
)

var restTypes = []RestType{
	RestPassive, RestActive,
}

func (v RestType) Valid() bool { return slices.Contains(restTypes, v) }

func ParseRestType(raw string) RestType { return decode(raw, restTypes, "") }

// SetRecord is a logged set. Drop and myo clusters keep their mini-sets
// embedded, so deleting the record deletes them too.
type SetRecord struct {
	ID         string `json:"id" bson:"_id"`
	WorkoutID  string `json:"workout_id" bson:"workout_id" validate:"required"`
	ExerciseID string `json:"exercise_id" bson:"exercise_id" validate:"required"`
	OrderIndex int    `json:"order_index" bson:"order_index" validate:"min=0"`

	CategoryRaw string `json:"category" bson:"category"`
	TypeRaw     string `json:"type" bson:"type"`
	StimulusRaw string `json:"stimulus,omitempty" bson:"stimulus,omitempty"`

	Load             *float64 `json:"load,omitempty" bson:"load,omitempty" validate:"omitempty,min=0"`
	Reps             *int     `json:"reps,omitempty" bson:"reps,omitempty" validate:"omitempty,min=0"`
	RIR              *int     `json:"rir,omitempty" bson:"rir,omitempty" validate:"omitempty,min=0,max=5"`
	RPE              *float64 `json:"rpe,omitempty" bson:"rpe,omitempty" validate:"omitempty,min=1,max=10"`
	TimeUnderTension *float64 `json:"time_under_tension,omitempty" bson:"time_under_tension,omitempty" validate:"omitempty,min=0"`

	// Cardio rounds
	DurationSeconds  *float64 `json:"duration_seconds,omitempty" bson:"duration_seconds,omitempty" validate:"omitempty,min=0"`
	Distance         *float64 `json:"distance,omitempty" bson:"distance,omitempty" validate:"omitempty,min=0"`
	AverageHeartRate *int     `json:"average_heart_rate,omitempty" bson:"average_heart_rate,omitempty" validate:"omitempty,min=0"`

	IsLogged       bool   `json:"is_logged" bson:"is_logged"`
	IsSkipped      bool   `json:"is_skipped" bson:"is_skipped"`
	FailureTypeRaw string `json:"failure_type" bson:"failure_type"`
	RestTypeRaw    string `json:"rest_type,omitempty" bson:"rest_type,omitempty"`

	MiniSets []MiniSet `json:"mini_sets" bson:"mini_sets" validate:"dive"`

	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// MiniSet is one step of a drop or myo cluster. IsLast marks the mini-set
// that carries the cluster's RPE.
type MiniSet struct {
	IndexInParent int      `json:"index_in_parent" bson:"index_in_parent" validate:"min=0"`
	Load          *float64 `json:"load,omitempty" bson:"load,omitempty" validate:"omitempty,min=0"`
	Reps          *int     `json:"reps,omitempty" bson:"reps,omitempty" validate:"omitempty,min=0"`
	RIR           *int     `json:"rir,omitempty" bson:"rir,omitempty" validate:"omitempty,min=0,max=5"`
	RPE           *float64 `json:"rpe,omitempty" bson:"rpe,omitempty" validate:"omitempty,min=1,max=10"`
	IsLast        bool     `json:"is_last" bson:"is_last"`
}

// NewSetRecord returns an unlogged set with no failure recorded.
func NewSetRecord(workoutID, exerciseID string, orderIndex int, category SetCategory, setType SetType) *SetRecord {
	return &SetRecord{
		ID:             NewID(),
		WorkoutID:      workoutID,
		ExerciseID:     exerciseID,
		OrderIndex:     orderIndex,
		CategoryRaw:    string(category),
		TypeRaw:        string(setType),
		FailureTypeRaw: string(FailureNone),
		MiniSets:       []MiniSet{},
	}
}

// Validate checks ranges and stored tokens. Mini-sets are only allowed on
// drop and myo sets.
func (s *SetRecord) Validate() error {
	if err := definitionValidate.Struct(s); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSet, err)
	}
	if !SetType(s.TypeRaw).Valid() {
		return fmt.Errorf("%w: unknown set type %q", ErrInvalidSet, s.TypeRaw)
	}
	if !SetCategory(s.CategoryRaw).Valid() {
		return fmt.Errorf("%w: unknown set category %q", ErrInvalidSet, s.CategoryRaw)
	}
	if s.StimulusRaw != "" && !SetStimulus(s.StimulusRaw).Valid() {
		return fmt.Errorf("%w: unknown stimulus %q", ErrInvalidSet, s.StimulusRaw)
	}
	if s.FailureTypeRaw != "" && !SetFailureType(s.FailureTypeRaw).Valid() {
		return fmt.Errorf("%w: unknown failure type %q", ErrInvalidSet, s.FailureTypeRaw)
	}
	if s.RestTypeRaw != "" && !RestType(s.RestTypeRaw).Valid() {
		return fmt.Errorf("%w: unknown rest type %q", ErrInvalidSet, s.RestTypeRaw)
	}
	if len(s.MiniSets) > 0 {
		if t := s.Type(); t != SetDrop && t != SetMyo {
			return fmt.Errorf("%w: %s sets cannot carry mini-sets", ErrInvalidSet, t)
		}
	}
	return nil
}

func (s *SetRecord) Category() SetCategory       { return ParseSetCategory(s.CategoryRaw) }
func (s *SetRecord) Type() SetType               { return ParseSetType(s.TypeRaw) }
func (s *SetRecord) Stimulus() SetStimulus       { return ParseSetStimulus(s.StimulusRaw) }
func (s *SetRecord) FailureType() SetFailureType { return ParseSetFailureType(s.FailureTypeRaw) }
func (s *SetRecord) RestType() RestType          { return ParseRestType(s.RestTypeRaw) }

// SetRecordRepository stores logged sets.
type SetRecordRepository interface {
	Create(ctx context.Context, record *SetRecord) error
	ListByWorkout(ctx context.Context, workoutID string) ([]*SetRecord, error)
	// DeleteByExerciseID removes every set logged against an exercise
	DeleteByExerciseID(ctx context.Context, exerciseID string) error
}
