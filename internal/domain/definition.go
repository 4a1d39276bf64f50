package domain

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// definitionValidate checks definitions before they are materialized.
// The "taxonomy" tag accepts any value whose Valid method reports true.
var definitionValidate *validator.Validate

func init() {
	definitionValidate = validator.New()
	_ = definitionValidate.RegisterValidation("taxonomy", validateTaxonomy)
}

func validateTaxonomy(fl validator.FieldLevel) bool {
	v, ok := fl.Field().Interface().(interface{ Valid() bool })
	return ok && v.Valid()
}

// ExerciseDefinition describes an exercise before it is persisted. Catalog
// entries and user-created exercises are both built from one.
type ExerciseDefinition struct {
	Name            string   `json:"name" validate:"required"`
	AKANames        []string `json:"aka_names,omitempty"`
	IsUserCreated   bool     `json:"is_user_created"`
	CreatedByUserID string   `json:"created_by_user_id,omitempty"`

	Category  ExerciseCategory `json:"category" validate:"required,taxonomy"`
	Implement ImplementType    `json:"implement" validate:"required,taxonomy"`
	Type      ExerciseType     `json:"type" validate:"required,taxonomy"`

	MovementPattern    MovementPattern    `json:"movement_pattern,omitempty" validate:"omitempty,taxonomy"`
	Plane              PlaneOfMotion      `json:"plane,omitempty" validate:"omitempty,taxonomy"`
	ROMBias            ROMBias            `json:"rom_bias,omitempty" validate:"omitempty,taxonomy"`
	ROMClass           RangeOfMotionClass `json:"rom_class,omitempty" validate:"omitempty,taxonomy"`
	Angle              ExerciseAngle      `json:"angle,omitempty" validate:"omitempty,taxonomy"`
	BodyPosition       BodyPosition       `json:"body_position,omitempty" validate:"omitempty,taxonomy"`
	GripOrientation    GripOrientation    `json:"grip_orientation,omitempty" validate:"omitempty,taxonomy"`
	GripWidth          GripWidth          `json:"grip_width,omitempty" validate:"omitempty,taxonomy"`
	Stance             StanceType         `json:"stance,omitempty" validate:"omitempty,taxonomy"`
	LateralType        LateralType        `json:"lateral_type,omitempty" validate:"omitempty,taxonomy"`
	ContractionBias    ContractionBias    `json:"contraction_bias,omitempty" validate:"omitempty,taxonomy"`
	VelocityType       VelocityType       `json:"velocity_type,omitempty" validate:"omitempty,taxonomy"`
	StabilityClass     StabilityClass     `json:"stability_class,omitempty" validate:"omitempty,taxonomy"`
	PrimaryJointAction JointAction        `json:"primary_joint_action,omitempty" validate:"omitempty,taxonomy"`
	TissueLoadType     TissueLoadType     `json:"tissue_load_type,omitempty" validate:"omitempty,taxonomy"`
	ForceCurve         ForceCurve         `json:"force_curve,omitempty" validate:"omitempty,taxonomy"`
	MovementArc        MovementArc        `json:"movement_arc,omitempty" validate:"omitempty,taxonomy"`
	ResistanceProfile  ResistanceProfile  `json:"resistance_profile,omitempty" validate:"omitempty,taxonomy"`
	ForceVector        ForceVector        `json:"force_vector,omitempty" validate:"omitempty,taxonomy"`

	OverloadPotential *int `json:"overload_potential,omitempty" validate:"omitempty,min=1,max=5"`
	StabilityDemand   *int `json:"stability_demand,omitempty" validate:"omitempty,min=1,max=5"`
	SkillDemand       *int `json:"skill_demand,omitempty" validate:"omitempty,min=1,max=5"`
	DifficultyRating  *int `json:"difficulty_rating,omitempty" validate:"omitempty,min=1,max=5"`

	AllowedSetTypes []SetType `json:"allowed_set_types,omitempty" validate:"unique,dive,taxonomy"`

	Muscles       []MuscleDefinition       `json:"muscles,omitempty" validate:"dive"`
	Joints        []JointDefinition        `json:"joints,omitempty" validate:"dive"`
	CardioProfile *CardioProfileDefinition `json:"cardio_profile,omitempty" validate:"omitempty"`

	Description string `json:"description,omitempty"`
	VideoURL    string `json:"video_url,omitempty" validate:"omitempty,url"`
}

type MuscleDefinition struct {
	Muscle       MuscleGroup            `json:"muscle" validate:"required,taxonomy"`
	Role         MuscleRole             `json:"role" validate:"required,taxonomy"`
	Emphasis     int                    `json:"emphasis" validate:"min=1,max=5"`
	Articulation MuscleArticulationType `json:"articulation" validate:"required,taxonomy"`
}

type JointDefinition struct {
	Joint        Joint `json:"joint" validate:"required,taxonomy"`
	LoadEmphasis int   `json:"load_emphasis" validate:"min=1,max=5"`
}

type CardioProfileDefinition struct {
	DefaultRoundType       CardioRoundType `json:"default_round_type" validate:"required,taxonomy"`
	SupportsDistance       bool            `json:"supports_distance"`
	SupportsDuration       bool            `json:"supports_duration"`
	SupportsHeartRateZones bool            `json:"supports_heart_rate_zones"`
	DefaultZone            *int            `json:"default_zone,omitempty" validate:"omitempty,min=1,max=5"`
}

// Validate reports every rule the definition breaks, wrapped in
// ErrInvalidDefinition.
func (d ExerciseDefinition) Validate() error {
	if err := definitionValidate.Struct(d); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidDefinition, d.Name, err)
	}
	return nil
}

// Materialize validates the definition and builds the exercise it
// describes, with one owned sub-record per muscle and joint definition and a
// cardio profile when one is defined. Duplicate muscle entries are kept as
// separate rows.
func (d ExerciseDefinition) Materialize() (*Exercise, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}

	now := time.Now()
	ex := &Exercise{
		ID:              NewID(),
		Name:            d.Name,
		AKANames:        append([]string{}, d.AKANames...),
		IsUserCreated:   d.IsUserCreated,
		CreatedByUserID: d.CreatedByUserID,

		CategoryRaw:  string(d.Category),
		TypeRaw:      string(d.Type),
		ImplementRaw: string(d.Implement),

		MovementPatternRaw:    string(d.MovementPattern),
		PlaneRaw:              string(d.Plane),
		ROMBiasRaw:            string(d.ROMBias),
		ROMClassRaw:           string(d.ROMClass),
		AngleRaw:              string(d.Angle),
		BodyPositionRaw:       string(d.BodyPosition),
		GripOrientationRaw:    string(d.GripOrientation),
		GripWidthRaw:          string(d.GripWidth),
		StanceRaw:             string(d.Stance),
		LateralTypeRaw:        string(d.LateralType),
		ContractionBiasRaw:    string(d.ContractionBias),
		VelocityTypeRaw:       string(d.VelocityType),
		StabilityClassRaw:     string(d.StabilityClass),
		PrimaryJointActionRaw: string(d.PrimaryJointAction),
		TissueLoadTypeRaw:     string(d.TissueLoadType),
		ForceCurveRaw:         string(d.ForceCurve),
		MovementArcRaw:        string(d.MovementArc),
		ResistanceProfileRaw:  string(d.ResistanceProfile),
		ForceVectorRaw:        string(d.ForceVector),

		OverloadPotential: copyInt(d.OverloadPotential),
		StabilityDemand:   copyInt(d.StabilityDemand),
		SkillDemand:       copyInt(d.SkillDemand),
		DifficultyRating:  copyInt(d.DifficultyRating),

		AllowedSetTypesRaw: make([]string, len(d.AllowedSetTypes)),
		Muscles:            make([]ExerciseMuscle, len(d.Muscles)),
		Joints:             make([]ExerciseJoint, len(d.Joints)),

		Description: d.Description,
		VideoURL:    d.VideoURL,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	for i, t := range d.AllowedSetTypes {
		ex.AllowedSetTypesRaw[i] = string(t)
	}
	for i, m := range d.Muscles {
		ex.Muscles[i] = ExerciseMuscle{
			ID:              NewID(),
			MuscleRaw:       string(m.Muscle),
			RoleRaw:         string(m.Role),
			Emphasis:        m.Emphasis,
			ArticulationRaw: string(m.Articulation),
		}
	}
	for i, j := range d.Joints {
		ex.Joints[i] = ExerciseJoint{
			ID:           NewID(),
			JointRaw:     string(j.Joint),
			LoadEmphasis: j.LoadEmphasis,
		}
	}
	if c := d.CardioProfile; c != nil {
		ex.CardioProfile = &CardioProfile{
			ID:                     NewID(),
			DefaultRoundTypeRaw:    string(c.DefaultRoundType),
			SupportsDistance:       c.SupportsDistance,
			SupportsDuration:       c.SupportsDuration,
			SupportsHeartRateZones: c.SupportsHeartRateZones,
			DefaultZone:            copyInt(c.DefaultZone),
		}
	}

	return ex, nil
}

func copyInt(v *int) *int {
	if v == nil {
		return nil
	}
	n := *v
	return &n
}
