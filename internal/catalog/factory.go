package catalog

import "github.com/mansoorceksport/totality/internal/domain"

// Factories fill in the metadata shared by every entry of a kind. Catalog
// entries record only their primary muscle and no joint loads.

const stanceNone = "none"

func resolveStance(raw string) domain.StanceType {
	switch raw {
	case "":
		return domain.StanceHipWidth
	case stanceNone:
		return ""
	default:
		return domain.StanceType(raw)
	}
}

func resolveLateral(raw string) domain.LateralType {
	if raw == "" {
		return domain.LateralBilateralSymmetric
	}
	return domain.LateralType(raw)
}

func primaryMuscle(muscle domain.MuscleGroup, emphasis int, articulation domain.MuscleArticulationType) []domain.MuscleDefinition {
	return []domain.MuscleDefinition{{
		Muscle:       muscle,
		Role:         domain.RolePrimaryAgonist,
		Emphasis:     emphasis,
		Articulation: articulation,
	}}
}

func compound(e Entry, implement domain.ImplementType) domain.ExerciseDefinition {
	d := domain.ExerciseDefinition{
		Name:            e.Name,
		AKANames:        e.AKA,
		Category:        domain.CategoryResistance,
		Implement:       implement,
		Type:            domain.TypeCompound,
		MovementPattern: domain.MovementPattern(e.Movement),
		Stance:          resolveStance(e.Stance),
		LateralType:     resolveLateral(e.Lateral),
		AllowedSetTypes: []domain.SetType{domain.SetStraight, domain.SetWarmup, domain.SetBackoff, domain.SetFailure},
		Muscles:         primaryMuscle(domain.MuscleGroup(e.Muscle), 5, domain.ArticulationUnknown),
	}
	domain.DefaultRatings(implement).Apply(&d)
	return d
}

func isolation(e Entry, implement domain.ImplementType) domain.ExerciseDefinition {
	return domain.ExerciseDefinition{
		Name:              e.Name,
		AKANames:          e.AKA,
		Category:          domain.CategoryResistance,
		Implement:         implement,
		Type:              domain.TypeIsolation,
		MovementPattern:   domain.MovementPattern(e.Movement),
		Stance:            resolveStance(e.Stance),
		LateralType:       resolveLateral(e.Lateral),
		OverloadPotential: domain.IntPtr(3),
		StabilityDemand:   domain.IntPtr(2),
		SkillDemand:       domain.IntPtr(2),
		DifficultyRating:  domain.IntPtr(2),
		AllowedSetTypes:   []domain.SetType{domain.SetStraight, domain.SetWarmup, domain.SetBackoff, domain.SetFailure},
		Muscles:           primaryMuscle(domain.MuscleGroup(e.Muscle), 5, domain.ArticulationUnknown),
	}
}

// core entries are always bodyweight, whatever group they are listed in.
func core(e Entry) domain.ExerciseDefinition {
	muscle := domain.MuscleAbs
	if e.Muscle != "" {
		muscle = domain.MuscleGroup(e.Muscle)
	}
	return domain.ExerciseDefinition{
		Name:              e.Name,
		AKANames:          e.AKA,
		Category:          domain.CategoryResistance,
		Implement:         domain.ImplementBodyweight,
		Type:              domain.TypeIsolation,
		MovementPattern:   domain.MovementPattern(e.Movement),
		LateralType:       domain.LateralBilateralSymmetric,
		OverloadPotential: domain.IntPtr(2),
		StabilityDemand:   domain.IntPtr(3),
		SkillDemand:       domain.IntPtr(2),
		DifficultyRating:  domain.IntPtr(2),
		AllowedSetTypes:   []domain.SetType{domain.SetStraight, domain.SetWarmup, domain.SetFailure},
		Muscles:           primaryMuscle(muscle, 5, domain.ArticulationUnknown),
	}
}

func cardioMachine(e Entry, implement domain.ImplementType) domain.ExerciseDefinition {
	zone := 2
	if e.Zone != nil {
		zone = *e.Zone
	}
	return domain.ExerciseDefinition{
		Name:              e.Name,
		AKANames:          e.AKA,
		Category:          domain.CategoryCardio,
		Implement:         implement,
		Type:              domain.TypeCardio,
		MovementPattern:   domain.PatternGait,
		Stance:            domain.StanceHipWidth,
		LateralType:       domain.LateralGaitPattern,
		OverloadPotential: domain.IntPtr(2),
		StabilityDemand:   domain.IntPtr(2),
		SkillDemand:       domain.IntPtr(1),
		DifficultyRating:  domain.IntPtr(2),
		AllowedSetTypes:   []domain.SetType{domain.SetStraight, domain.SetWarmup, domain.SetCardioRound},
		Muscles:           primaryMuscle(domain.MuscleGlutes, 3, domain.ArticulationMultiarticular),
		CardioProfile: &domain.CardioProfileDefinition{
			DefaultRoundType:       domain.RoundSteadyState,
			SupportsDistance:       true,
			SupportsDuration:       true,
			SupportsHeartRateZones: true,
			DefaultZone:            domain.IntPtr(zone),
		},
	}
}
