package domain

import (
	"context"
	"slices"
	"time"
)

// Exercise is a persisted movement in the library. Taxonomy fields are
// stored as raw tokens; the typed accessors decode them leniently so that
// documents written by a newer taxonomy still load.
type Exercise struct {
	ID              string   `json:"id" bson:"_id"`
	Name            string   `json:"name" bson:"name"`
	AKANames        []string `json:"aka_names" bson:"aka_names"`
	IsUserCreated   bool     `json:"is_user_created" bson:"is_user_created"`
	CreatedByUserID string   `json:"created_by_user_id,omitempty" bson:"created_by_user_id,omitempty"`

	CategoryRaw  string `json:"category" bson:"category"`
	TypeRaw      string `json:"type" bson:"type"`
	ImplementRaw string `json:"implement" bson:"implement"`

	MovementPatternRaw    string `json:"movement_pattern,omitempty" bson:"movement_pattern,omitempty"`
	PlaneRaw              string `json:"plane,omitempty" bson:"plane,omitempty"`
	ROMBiasRaw            string `json:"rom_bias,omitempty" bson:"rom_bias,omitempty"`
	ROMClassRaw           string `json:"rom_class,omitempty" bson:"rom_class,omitempty"`
	AngleRaw              string `json:"angle,omitempty" bson:"angle,omitempty"`
	BodyPositionRaw       string `json:"body_position,omitempty" bson:"body_position,omitempty"`
	GripOrientationRaw    string `json:"grip_orientation,omitempty" bson:"grip_orientation,omitempty"`
	GripWidthRaw          string `json:"grip_width,omitempty" bson:"grip_width,omitempty"`
	StanceRaw             string `json:"stance,omitempty" bson:"stance,omitempty"`
	LateralTypeRaw        string `json:"lateral_type,omitempty" bson:"lateral_type,omitempty"`
	ContractionBiasRaw    string `json:"contraction_bias,omitempty" bson:"contraction_bias,omitempty"`
	VelocityTypeRaw       string `json:"velocity_type,omitempty" bson:"velocity_type,omitempty"`
	StabilityClassRaw     string `json:"stability_class,omitempty" bson:"stability_class,omitempty"`
	PrimaryJointActionRaw string `json:"primary_joint_action,omitempty" bson:"primary_joint_action,omitempty"`
	TissueLoadTypeRaw     string `json:"tissue_load_type,omitempty" bson:"tissue_load_type,omitempty"`
	ForceCurveRaw         string `json:"force_curve,omitempty" bson:"force_curve,omitempty"`
	MovementArcRaw        string `json:"movement_arc,omitempty" bson:"movement_arc,omitempty"`
	ResistanceProfileRaw  string `json:"resistance_profile,omitempty" bson:"resistance_profile,omitempty"`
	ForceVectorRaw        string `json:"force_vector,omitempty" bson:"force_vector,omitempty"`

	// Ratings, 1–5
	OverloadPotential *int `json:"overload_potential,omitempty" bson:"overload_potential,omitempty"`
	StabilityDemand   *int `json:"stability_demand,omitempty" bson:"stability_demand,omitempty"`
	SkillDemand       *int `json:"skill_demand,omitempty" bson:"skill_demand,omitempty"`
	DifficultyRating  *int `json:"difficulty_rating,omitempty" bson:"difficulty_rating,omitempty"`

	AllowedSetTypesRaw []string `json:"allowed_set_types" bson:"allowed_set_types"`

	Description string `json:"description,omitempty" bson:"description,omitempty"`
	VideoURL    string `json:"video_url,omitempty" bson:"video_url,omitempty"`

	// Owned sub-records, removed together with the exercise
	Muscles       []ExerciseMuscle `json:"muscles" bson:"muscles"`
	Joints        []ExerciseJoint  `json:"joints" bson:"joints"`
	CardioProfile *CardioProfile   `json:"cardio_profile,omitempty" bson:"cardio_profile,omitempty"`

	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// IsEditable reports whether users may modify or delete the exercise.
// Catalog exercises are read-only.
func (e *Exercise) IsEditable() bool { return e.IsUserCreated }

func (e *Exercise) Category() ExerciseCategory { return ParseExerciseCategory(e.CategoryRaw) }
func (e *Exercise) Type() ExerciseType         { return ParseExerciseType(e.TypeRaw) }
func (e *Exercise) Implement() ImplementType   { return ParseImplementType(e.ImplementRaw) }
func (e *Exercise) MovementPattern() MovementPattern {
	return ParseMovementPattern(e.MovementPatternRaw)
}
func (e *Exercise) Plane() PlaneOfMotion         { return ParsePlaneOfMotion(e.PlaneRaw) }
func (e *Exercise) ROMBias() ROMBias             { return ParseROMBias(e.ROMBiasRaw) }
func (e *Exercise) ROMClass() RangeOfMotionClass { return ParseRangeOfMotionClass(e.ROMClassRaw) }
func (e *Exercise) Angle() ExerciseAngle         { return ParseExerciseAngle(e.AngleRaw) }
func (e *Exercise) BodyPosition() BodyPosition   { return ParseBodyPosition(e.BodyPositionRaw) }
func (e *Exercise) GripOrientation() GripOrientation {
	return ParseGripOrientation(e.GripOrientationRaw)
}
func (e *Exercise) GripWidth() GripWidth     { return ParseGripWidth(e.GripWidthRaw) }
func (e *Exercise) Stance() StanceType       { return ParseStanceType(e.StanceRaw) }
func (e *Exercise) LateralType() LateralType { return ParseLateralType(e.LateralTypeRaw) }
func (e *Exercise) ContractionBias() ContractionBias {
	return ParseContractionBias(e.ContractionBiasRaw)
}
func (e *Exercise) VelocityType() VelocityType      { return ParseVelocityType(e.VelocityTypeRaw) }
func (e *Exercise) StabilityClass() StabilityClass  { return ParseStabilityClass(e.StabilityClassRaw) }
func (e *Exercise) PrimaryJointAction() JointAction { return ParseJointAction(e.PrimaryJointActionRaw) }
func (e *Exercise) TissueLoadType() TissueLoadType  { return ParseTissueLoadType(e.TissueLoadTypeRaw) }
func (e *Exercise) ForceCurve() ForceCurve          { return ParseForceCurve(e.ForceCurveRaw) }
func (e *Exercise) MovementArc() MovementArc        { return ParseMovementArc(e.MovementArcRaw) }
func (e *Exercise) ResistanceProfile() ResistanceProfile {
	return ParseResistanceProfile(e.ResistanceProfileRaw)
}
func (e *Exercise) ForceVector() ForceVector { return ParseForceVector(e.ForceVectorRaw) }

// AllowedSetTypes decodes the stored set types, skipping unknown tokens.
func (e *Exercise) AllowedSetTypes() []SetType {
	out := make([]SetType, 0, len(e.AllowedSetTypesRaw))
	for _, raw := range e.AllowedSetTypesRaw {
		if t := SetType(raw); t.Valid() {
			out = append(out, t)
		}
	}
	return out
}

// AllowsSetType reports whether a set of the given type may be logged
// against this exercise.
func (e *Exercise) AllowsSetType(t SetType) bool {
	return slices.Contains(e.AllowedSetTypesRaw, string(t))
}

// ExerciseMuscle records how one muscle group is involved in an exercise.
type ExerciseMuscle struct {
	ID              string `json:"id" bson:"id"`
	MuscleRaw       string `json:"muscle" bson:"muscle"`
	RoleRaw         string `json:"role" bson:"role"`
	Emphasis        int    `json:"emphasis" bson:"emphasis"` // 1–5
	ArticulationRaw string `json:"articulation" bson:"articulation"`
}

func (m ExerciseMuscle) Muscle() MuscleGroup { return ParseMuscleGroup(m.MuscleRaw) }
func (m ExerciseMuscle) Role() MuscleRole    { return ParseMuscleRole(m.RoleRaw) }
func (m ExerciseMuscle) Articulation() MuscleArticulationType {
	return ParseMuscleArticulationType(m.ArticulationRaw)
}

// ExerciseJoint records the load an exercise places on a joint.
type ExerciseJoint struct {
	ID           string `json:"id" bson:"id"`
	JointRaw     string `json:"joint" bson:"joint"`
	LoadEmphasis int    `json:"load_emphasis" bson:"load_emphasis"` // 1–5
}

func (j ExerciseJoint) Joint() Joint { return ParseJoint(j.JointRaw) }

// CardioProfile describes how a cardio exercise is tracked.
type CardioProfile struct {
	ID                     string `json:"id" bson:"id"`
	DefaultRoundTypeRaw    string `json:"default_round_type" bson:"default_round_type"`
	SupportsDistance       bool   `json:"supports_distance" bson:"supports_distance"`
	SupportsDuration       bool   `json:"supports_duration" bson:"supports_duration"`
	SupportsHeartRateZones bool   `json:"supports_heart_rate_zones" bson:"supports_heart_rate_zones"`
	DefaultZone            *int   `json:"default_zone,omitempty" bson:"default_zone,omitempty"`
}

func (c CardioProfile) DefaultRoundType() CardioRoundType {
	return ParseCardioRoundType(c.DefaultRoundTypeRaw)
}

// ExerciseRelation is a directed edge between two exercises. It belongs to
// neither endpoint and is removed when either one is deleted.
type ExerciseRelation struct {
	ID             string    `json:"id" bson:"_id"`
	FromExerciseID string    `json:"from_exercise_id" bson:"from_exercise_id"`
	ToExerciseID   string    `json:"to_exercise_id" bson:"to_exercise_id"`
	TypeRaw        string    `json:"type" bson:"type"`
	Similarity     float64   `json:"similarity" bson:"similarity"` // 0–1
	CreatedAt      time.Time `json:"created_at" bson:"created_at"`
}

func (r *ExerciseRelation) Type() ExerciseRelationType { return ParseExerciseRelationType(r.TypeRaw) }

// NewExerciseRelation validates the endpoints and score and returns a new edge.
func NewExerciseRelation(fromID, toID string, relationType ExerciseRelationType, similarity float64) (*ExerciseRelation, error) {
	if fromID == "" || toID == "" {
		return nil, ErrInvalidID
	}
	if fromID == toID {
		return nil, ErrSelfRelation
	}
	if !relationType.Valid() {
		return nil, ErrInvalidRelationType
	}
	if !(similarity >= 0 && similarity <= 1) {
		return nil, ErrInvalidSimilarity
	}
	return &ExerciseRelation{
		ID:             NewID(),
		FromExerciseID: fromID,
		ToExerciseID:   toID,
		TypeRaw:        string(relationType),
		Similarity:     similarity,
		CreatedAt:      time.Now(),
	}, nil
}

// ExerciseFilter narrows a library listing. Empty fields match everything.
type ExerciseFilter struct {
	Name          string // case-insensitive substring
	Category      ExerciseCategory
	Implement     ImplementType
	UserCreated   *bool
	CreatedByUser string
}

// ExerciseRepository is the entity store for exercises and relation edges.
type ExerciseRepository interface {
	// Create inserts the exercise together with its owned sub-records
	Create(ctx context.Context, exercise *Exercise) error
	// CreateMany inserts a batch. A failed batch leaves none of its
	// exercises behind
	CreateMany(ctx context.Context, exercises []*Exercise) error
	GetByID(ctx context.Context, id string) (*Exercise, error)
	// ListAll returns every exercise sorted by name ascending
	ListAll(ctx context.Context) ([]*Exercise, error)
	List(ctx context.Context, filter ExerciseFilter) ([]*Exercise, error)
	Count(ctx context.Context) (int64, error)
	// Delete removes the exercise, its sub-records and every relation edge
	// that references it
	Delete(ctx context.Context, id string) error

	CreateRelation(ctx context.Context, relation *ExerciseRelation) error
	// ListRelations returns edges where the exercise is either endpoint
	ListRelations(ctx context.Context, exerciseID string) ([]*ExerciseRelation, error)
}

// SeedFlagStore persists the "catalog has been seeded" flag outside the
// exercise store.
type SeedFlagStore interface {
	IsSeeded(ctx context.Context) (bool, error)
	MarkSeeded(ctx context.Context) error
	// AcquireLock returns false if another seeder holds the lock
	AcquireLock(ctx context.Context) (bool, error)
	ReleaseLock(ctx context.Context) error
}
