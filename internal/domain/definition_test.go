package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func barbellFlatBenchPress() ExerciseDefinition {
	return ExerciseDefinition{
		Name:            "Barbell Flat Bench Press",
		AKANames:        []string{"Bench", "Flat Bench"},
		Category:        CategoryResistance,
		Implement:       ImplementBarbell,
		Type:            TypeCompound,
		MovementPattern: PatternPush,
		Plane:           PlaneSagittal,
		Angle:           AngleFlat,
		GripOrientation: GripPronated,
		GripWidth:       GripWidthShoulderWidth,
		Stance:          StanceHipWidth,

		OverloadPotential: IntPtr(5),
		StabilityDemand:   IntPtr(2),
		SkillDemand:       IntPtr(3),
		DifficultyRating:  IntPtr(3),

		AllowedSetTypes: []SetType{SetStraight, SetWarmup, SetBackoff, SetFailure, SetDrop, SetPartialShort},

		Muscles: []MuscleDefinition{
			{Muscle: MusclePectorals, Role: RolePrimaryAgonist, Emphasis: 5, Articulation: ArticulationMultiarticular},
			{Muscle: MuscleDeltsAnterior, Role: RoleSynergist, Emphasis: 3, Articulation: ArticulationMonoarticular},
			{Muscle: MuscleTriceps, Role: RoleSynergist, Emphasis: 3, Articulation: ArticulationMultiarticular},
			{Muscle: MuscleLats, Role: RoleAntagonist, Emphasis: 1, Articulation: ArticulationMultiarticular},
		},
		Joints: []JointDefinition{
			{Joint: JointShoulder, LoadEmphasis: 4},
			{Joint: JointElbow, LoadEmphasis: 3},
			{Joint: JointWrist, LoadEmphasis: 2},
		},
		VideoURL: "https://example.com/bench.mp4",
	}
}

func TestMaterialize(t *testing.T) {
	def := barbellFlatBenchPress()

	ex, err := def.Materialize()
	require.NoError(t, err)

	assert.NotEmpty(t, ex.ID)
	assert.Equal(t, def.Name, ex.Name)
	assert.Equal(t, def.AKANames, ex.AKANames)
	assert.False(t, ex.IsUserCreated)
	assert.False(t, ex.IsEditable())
	assert.Equal(t, CategoryResistance, ex.Category())
	assert.Equal(t, TypeCompound, ex.Type())
	assert.Equal(t, ImplementBarbell, ex.Implement())
	assert.Equal(t, PatternPush, ex.MovementPattern())
	assert.Equal(t, AngleFlat, ex.Angle())
	assert.Equal(t, GripWidthShoulderWidth, ex.GripWidth())
	assert.Equal(t, StanceHipWidth, ex.Stance())
	assert.Empty(t, ex.BodyPositionRaw)
	assert.Equal(t, 5, *ex.OverloadPotential)
	assert.Equal(t, 2, *ex.StabilityDemand)
	assert.Equal(t, def.AllowedSetTypes, ex.AllowedSetTypes())
	assert.Equal(t, def.VideoURL, ex.VideoURL)
	assert.Nil(t, ex.CardioProfile)
	assert.False(t, ex.CreatedAt.IsZero())

	require.Len(t, ex.Muscles, 4)
	ids := map[string]bool{ex.ID: true}
	for i, m := range ex.Muscles {
		assert.Equal(t, def.Muscles[i].Muscle, m.Muscle())
		assert.Equal(t, def.Muscles[i].Role, m.Role())
		assert.Equal(t, def.Muscles[i].Emphasis, m.Emphasis)
		assert.Equal(t, def.Muscles[i].Articulation, m.Articulation())
		assert.False(t, ids[m.ID], "muscle id reused")
		ids[m.ID] = true
	}

	require.Len(t, ex.Joints, 3)
	for i, j := range ex.Joints {
		assert.Equal(t, def.Joints[i].Joint, j.Joint())
		assert.Equal(t, def.Joints[i].LoadEmphasis, j.LoadEmphasis)
		assert.False(t, ids[j.ID], "joint id reused")
		ids[j.ID] = true
	}
}

func TestMaterialize_FreshEntities(t *testing.T) {
	def := barbellFlatBenchPress()

	first, err := def.Materialize()
	require.NoError(t, err)
	second, err := def.Materialize()
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
	assert.NotEqual(t, first.Muscles[0].ID, second.Muscles[0].ID)

	// the exercise does not alias the definition's slices or ratings
	first.AKANames[0] = "changed"
	*first.OverloadPotential = 1
	assert.Equal(t, "Bench", def.AKANames[0])
	assert.Equal(t, 5, *def.OverloadPotential)
}

func TestMaterialize_DuplicateMusclesKept(t *testing.T) {
	def := barbellFlatBenchPress()
	def.Muscles = append(def.Muscles, def.Muscles[0])

	ex, err := def.Materialize()
	require.NoError(t, err)
	require.Len(t, ex.Muscles, 5)
	assert.Equal(t, MusclePectorals, ex.Muscles[4].Muscle())
	assert.NotEqual(t, ex.Muscles[0].ID, ex.Muscles[4].ID)
}

func TestMaterialize_CardioProfile(t *testing.T) {
	def := ExerciseDefinition{
		Name:            "Rowing Machine",
		Category:        CategoryCardio,
		Implement:       ImplementRower,
		Type:            TypeCardio,
		AllowedSetTypes: []SetType{SetCardioRound, SetWarmup},
		CardioProfile: &CardioProfileDefinition{
			DefaultRoundType:       RoundIntervals,
			SupportsDistance:       true,
			SupportsDuration:       true,
			SupportsHeartRateZones: true,
			DefaultZone:            IntPtr(2),
		},
	}

	ex, err := def.Materialize()
	require.NoError(t, err)
	require.NotNil(t, ex.CardioProfile)
	assert.NotEmpty(t, ex.CardioProfile.ID)
	assert.Equal(t, RoundIntervals, ex.CardioProfile.DefaultRoundType())
	assert.True(t, ex.CardioProfile.SupportsDistance)
	assert.Equal(t, 2, *ex.CardioProfile.DefaultZone)
	assert.Empty(t, ex.Muscles)
	assert.Empty(t, ex.Joints)
}

func TestValidate_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(d *ExerciseDefinition)
	}{
		{"empty name", func(d *ExerciseDefinition) { d.Name = "" }},
		{"missing implement", func(d *ExerciseDefinition) { d.Implement = "" }},
		{"unknown category", func(d *ExerciseDefinition) { d.Category = "yoga" }},
		{"unknown optional token", func(d *ExerciseDefinition) { d.Angle = "sideways" }},
		{"rating above range", func(d *ExerciseDefinition) { d.SkillDemand = IntPtr(6) }},
		{"rating below range", func(d *ExerciseDefinition) { d.DifficultyRating = IntPtr(0) }},
		{"duplicate set types", func(d *ExerciseDefinition) {
			d.AllowedSetTypes = []SetType{SetStraight, SetWarmup, SetStraight}
		}},
		{"unknown set type", func(d *ExerciseDefinition) { d.AllowedSetTypes = []SetType{"superSet"} }},
		{"muscle emphasis out of range", func(d *ExerciseDefinition) { d.Muscles[0].Emphasis = 9 }},
		{"unknown joint", func(d *ExerciseDefinition) { d.Joints[0].Joint = "jaw" }},
		{"bad video url", func(d *ExerciseDefinition) { d.VideoURL = "not a url" }},
		{"cardio zone out of range", func(d *ExerciseDefinition) {
			d.CardioProfile = &CardioProfileDefinition{DefaultRoundType: RoundSteadyState, DefaultZone: IntPtr(7)}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			def := barbellFlatBenchPress()
			tt.mutate(&def)

			ex, err := def.Materialize()
			assert.Nil(t, ex)
			assert.ErrorIs(t, err, ErrInvalidDefinition)
		})
	}
}

func TestValidate_OptionalFieldsMayBeUnset(t *testing.T) {
	def := ExerciseDefinition{
		Name:      "Mystery Movement",
		Category:  CategoryMobility,
		Implement: ImplementOther,
		Type:      TypeMixed,
	}
	assert.NoError(t, def.Validate())
}
