// Package domain holds the exercise library model: the classification
// taxonomy, exercise definitions and the persisted exercise entities.
//
// Every taxonomy field is a string-backed token. Tokens are persisted
// verbatim, so renaming a constant's value is a schema change. Decoding a
// stored token never fails: required fields fall back to a fixed default and
// optional fields decode to the empty (unset) value.
package domain

import (
	"slices"
)

func decode[T ~string](raw string, set []T, fallback T) T {
	for _, v := range set {
		if string(v) == raw {
			return v
		}
	}
	return fallback
}

func tokens[T ~string](set []T) []string {
	out := make([]string, len(set))
	for i, v := range set {
		out[i] = string(v)
	}
	return out
}

// Taxonomy returns every classification field keyed by its JSON name, with
// the field's tokens in declaration order.
func Taxonomy() map[string][]string {
	return map[string][]string{
		"category":             tokens(exerciseCategories),
		"type":                 tokens(exerciseTypes),
		"implement":            tokens(implementTypes),
		"movement_pattern":     tokens(movementPatterns),
		"plane":                tokens(planesOfMotion),
		"rom_bias":             tokens(romBiases),
		"rom_class":            tokens(romClasses),
		"angle":                tokens(exerciseAngles),
		"body_position":        tokens(bodyPositions),
		"grip_orientation":     tokens(gripOrientations),
		"grip_width":           tokens(gripWidths),
		"stance":               tokens(stanceTypes),
		"lateral_type":         tokens(lateralTypes),
		"contraction_bias":     tokens(contractionBiases),
		"velocity_type":        tokens(velocityTypes),
		"stability_class":      tokens(stabilityClasses),
		"primary_joint_action": tokens(jointActions),
		"tissue_load_type":     tokens(tissueLoadTypes),
		"force_curve":          tokens(forceCurves),
		"movement_arc":         tokens(movementArcs),
		"resistance_profile":   tokens(resistanceProfiles),
		"force_vector":         tokens(forceVectors),
		"muscle":               tokens(muscleGroups),
		"muscle_role":          tokens(muscleRoles),
		"articulation":         tokens(articulationTypes),
		"joint":                tokens(jointValues),
		"relation_type":        tokens(relationTypes),
		"cardio_round_type":    tokens(cardioRoundTypes),
		"set_type":             tokens(setTypes),
		"set_category":         tokens(setCategories),
		"set_stimulus":         tokens(setStimuli),
		"set_failure_type":     tokens(setFailureTypes),
		"rest_type":            tokens(restTypes),
	}
}

// High-level classification

// ExerciseCategory is the high-level classification of an exercise.
type ExerciseCategory string

const (
	CategoryResistance ExerciseCategory = "resistance"
	CategoryCardio     ExerciseCategory = "cardio"
	CategoryMixed      ExerciseCategory = "mixed"
	CategoryMobility   ExerciseCategory = "mobility"
	CategoryRehab      ExerciseCategory = "rehab"
)

var exerciseCategories = []ExerciseCategory{
	CategoryResistance, CategoryCardio, CategoryMixed, CategoryMobility, CategoryRehab,
}

func (v ExerciseCategory) Valid() bool { return slices.Contains(exerciseCategories, v) }

// ParseExerciseCategory decodes a stored token. Unknown tokens decode to CategoryResistance.
func ParseExerciseCategory(raw string) ExerciseCategory {
	return decode(raw, exerciseCategories, CategoryResistance)
}

// ExerciseType separates multi-joint lifts from single-joint and conditioning work.
type ExerciseType string

const (
	TypeCompound  ExerciseType = "compound"
	TypeIsolation ExerciseType = "isolation"
	TypeCardio    ExerciseType = "cardio"
	TypeMixed     ExerciseType = "mixed"
)

var exerciseTypes = []ExerciseType{
	TypeCompound, TypeIsolation, TypeCardio, TypeMixed,
}

func (v ExerciseType) Valid() bool { return slices.Contains(exerciseTypes, v) }

// ParseExerciseType decodes a stored token. Unknown tokens decode to TypeCompound.
func ParseExerciseType(raw string) ExerciseType { return decode(raw, exerciseTypes, TypeCompound) }

// ImplementType is the primary tool or modality used to load the movement.
type ImplementType string

const (
	ImplementBarbell        ImplementType = "barbell"
	ImplementDumbbell       ImplementType = "dumbbell"
	ImplementMachine        ImplementType = "machine"
	ImplementCable          ImplementType = "cable"
	ImplementBand           ImplementType = "band"
	ImplementKettlebell     ImplementType = "kettlebell"
	ImplementBodyweight     ImplementType = "bodyweight"
	ImplementTrapBar        ImplementType = "trapBar"
	ImplementSmithMachine   ImplementType = "smithMachine"
	ImplementSled           ImplementType = "sled"
	ImplementBattleRope     ImplementType = "battleRope"
	ImplementJumpRope       ImplementType = "jumpRope"
	ImplementTreadmill      ImplementType = "treadmill"
	ImplementBike           ImplementType = "bike"
	ImplementRower          ImplementType = "rower"
	ImplementElliptical     ImplementType = "elliptical"
	ImplementAirBike        ImplementType = "airBike"
	ImplementStairClimber   ImplementType = "stairClimber"
	ImplementStationaryBike ImplementType = "stationaryBike"
	ImplementOther          ImplementType = "other"
)

var implementTypes = []ImplementType{
	ImplementBarbell, ImplementDumbbell, ImplementMachine, ImplementCable, ImplementBand,
	ImplementKettlebell, ImplementBodyweight, ImplementTrapBar, ImplementSmithMachine, ImplementSled,
	ImplementBattleRope, ImplementJumpRope, ImplementTreadmill, ImplementBike, ImplementRower,
	ImplementElliptical, ImplementAirBike, ImplementStairClimber, ImplementStationaryBike,
	ImplementOther,
}

func (v ImplementType) Valid() bool { return slices.Contains(implementTypes, v) }

// ParseImplementType decodes a stored token. Unknown tokens decode to ImplementBarbell.
func ParseImplementType(raw string) ImplementType {
	return decode(raw, implementTypes, ImplementBarbell)
}

// Muscles, joints and relations

type MuscleGroup string

const (
	MusclePectorals        MuscleGroup = "pectorals"
	MuscleDeltsAnterior    MuscleGroup = "deltsAnterior"
	MuscleDeltsLateral     MuscleGroup = "deltsLateral"
	MuscleDeltsPosterior   MuscleGroup = "deltsPosterior"
	MuscleLats             MuscleGroup = "lats"
	MuscleMidBack          MuscleGroup = "midBack"
	MuscleTraps            MuscleGroup = "traps"
	MuscleTrapsUpper       MuscleGroup = "trapsUpper"
	MuscleBiceps           MuscleGroup = "biceps"
	MuscleBrachialis       MuscleGroup = "brachialis"
	MuscleBrachioradialis  MuscleGroup = "brachioradialis"
	MuscleTriceps          MuscleGroup = "triceps"
	MuscleForearms         MuscleGroup = "forearms"
	MuscleAbs              MuscleGroup = "abs"
	MuscleObliques         MuscleGroup = "obliques"
	MuscleSpinalErectors   MuscleGroup = "spinalErectors"
	MuscleGlutes           MuscleGroup = "glutes"
	MuscleGluteMedius      MuscleGroup = "gluteMedius"
	MuscleQuads            MuscleGroup = "quads"
	MuscleHamstrings       MuscleGroup = "hamstrings"
	MuscleCalves           MuscleGroup = "calves"
	MuscleTibialisAnterior MuscleGroup = "tibialisAnterior"
	MuscleHipFlexors       MuscleGroup = "hipFlexors"
	MuscleAdductors        MuscleGroup = "adductors"
	MuscleAbductors        MuscleGroup = "abductors"
	MuscleOther            MuscleGroup = "other"
)

var muscleGroups = []MuscleGroup{
	MusclePectorals, MuscleDeltsAnterior, MuscleDeltsLateral, MuscleDeltsPosterior, MuscleLats,
	MuscleMidBack, MuscleTraps, MuscleTrapsUpper, MuscleBiceps, MuscleBrachialis,
	MuscleBrachioradialis, MuscleTriceps, MuscleForearms, MuscleAbs, MuscleObliques,
	MuscleSpinalErectors, MuscleGlutes, MuscleGluteMedius, MuscleQuads, MuscleHamstrings,
	MuscleCalves, MuscleTibialisAnterior, MuscleHipFlexors, MuscleAdductors, MuscleAbductors,
	MuscleOther,
}

func (v MuscleGroup) Valid() bool { return slices.Contains(muscleGroups, v) }

// ParseMuscleGroup decodes a stored token. Unknown tokens decode to MuscleOther.
func ParseMuscleGroup(raw string) MuscleGroup { return decode(raw, muscleGroups, MuscleOther) }

type MuscleRole string

const (
	RolePrimaryAgonist MuscleRole = "primaryAgonist"
	RoleSynergist      MuscleRole = "synergist"
	RoleAntagonist     MuscleRole = "antagonist"
)

var muscleRoles = []MuscleRole{
	RolePrimaryAgonist, RoleSynergist, RoleAntagonist,
}

func (v MuscleRole) Valid() bool { return slices.Contains(muscleRoles, v) }

// ParseMuscleRole decodes a stored token. Unknown tokens decode to RolePrimaryAgonist.
func ParseMuscleRole(raw string) MuscleRole { return decode(raw, muscleRoles, RolePrimaryAgonist) }

// MuscleArticulationType counts the joints a muscle crosses.
type MuscleArticulationType string

const (
	ArticulationMonoarticular  MuscleArticulationType = "monoarticular"
	ArticulationBiarticular    MuscleArticulationType = "biarticular"
	ArticulationMultiarticular MuscleArticulationType = "multiarticular"
	ArticulationUnknown        MuscleArticulationType = "unknown"
)

var articulationTypes = []MuscleArticulationType{
	ArticulationMonoarticular, ArticulationBiarticular, ArticulationMultiarticular,
	ArticulationUnknown,
}

func (v MuscleArticulationType) Valid() bool { return slices.Contains(articulationTypes, v) }

// ParseMuscleArticulationType decodes a stored token. Unknown tokens decode to ArticulationUnknown.
func ParseMuscleArticulationType(raw string) MuscleArticulationType {
	return decode(raw, articulationTypes, ArticulationUnknown)
}

type Joint string

const (
	JointShoulder      Joint = "shoulder"
	JointElbow         Joint = "elbow"
	JointWrist         Joint = "wrist"
	JointSpineCervical Joint = "spineCervical"
	JointSpineThoracic Joint = "spineThoracic"
	JointSpineLumbar   Joint = "spineLumbar"
	JointHip           Joint = "hip"
	JointKnee          Joint = "knee"
	JointAnkle         Joint = "ankle"
	JointOther         Joint = "other"
)

var jointValues = []Joint{
	JointShoulder, JointElbow, JointWrist, JointSpineCervical, JointSpineThoracic, JointSpineLumbar,
	JointHip, JointKnee, JointAnkle, JointOther,
}

func (v Joint) Valid() bool { return slices.Contains(jointValues, v) }

// ParseJoint decodes a stored token. Unknown tokens decode to JointOther.
func ParseJoint(raw string) Joint { return decode(raw, jointValues, JointOther) }

type ExerciseRelationType string

const (
	RelationSimilar    ExerciseRelationType = "similar"
	RelationSubstitute ExerciseRelationType = "substitute"
	RelationAntagonist ExerciseRelationType = "antagonist"
	RelationVariation  ExerciseRelationType = "variation"
)

var relationTypes = []ExerciseRelationType{
	RelationSimilar, RelationSubstitute, RelationAntagonist, RelationVariation,
}

func (v ExerciseRelationType) Valid() bool { return slices.Contains(relationTypes, v) }

// ParseExerciseRelationType decodes a stored token. Unknown tokens decode to RelationSimilar.
func ParseExerciseRelationType(raw string) ExerciseRelationType {
	return decode(raw, relationTypes, RelationSimilar)
}

type CardioRoundType string

const (
	RoundSteadyState CardioRoundType = "steadyState"
	RoundIntervals   CardioRoundType = "intervals"
	RoundEmom        CardioRoundType = "emom"
	RoundTabata      CardioRoundType = "tabata"
	RoundMixed       CardioRoundType = "mixed"
	RoundZoneBased   CardioRoundType = "zoneBased"
)

var cardioRoundTypes = []CardioRoundType{
	RoundSteadyState, RoundIntervals, RoundEmom, RoundTabata, RoundMixed, RoundZoneBased,
}

func (v CardioRoundType) Valid() bool { return slices.Contains(cardioRoundTypes, v) }

// ParseCardioRoundType decodes a stored token. Unknown tokens decode to RoundSteadyState.
func ParseCardioRoundType(raw string) CardioRoundType {
	return decode(raw, cardioRoundTypes, RoundSteadyState)
}
