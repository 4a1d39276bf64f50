package domain

// Ratings are the four 1–5 scores attached to an exercise.
type Ratings struct {
	OverloadPotential int `json:"overload_potential"`
	StabilityDemand   int `json:"stability_demand"`
	SkillDemand       int `json:"skill_demand"`
	DifficultyRating  int `json:"difficulty_rating"`
}

// DefaultRatings derives compound-movement ratings from the implement.
// Explicit values on a definition always take precedence.
func DefaultRatings(implement ImplementType) Ratings {
	r := Ratings{OverloadPotential: 3, StabilityDemand: 2, SkillDemand: 2, DifficultyRating: 3}

	switch implement {
	case ImplementBarbell, ImplementSmithMachine:
		r.OverloadPotential = 5
	case ImplementMachine, ImplementCable, ImplementTrapBar, ImplementDumbbell, ImplementKettlebell:
		r.OverloadPotential = 4
	}

	switch implement {
	case ImplementBarbell, ImplementDumbbell, ImplementKettlebell, ImplementBodyweight:
		r.StabilityDemand = 3
	}

	switch implement {
	case ImplementBarbell, ImplementDumbbell, ImplementKettlebell:
		r.SkillDemand = 3
	}

	switch implement {
	case ImplementBarbell:
		r.DifficultyRating = 4
	case ImplementMachine, ImplementSmithMachine:
		r.DifficultyRating = 2
	}

	return r
}

// Apply fills any unset rating on d from r.
func (r Ratings) Apply(d *ExerciseDefinition) {
	if d.OverloadPotential == nil {
		d.OverloadPotential = IntPtr(r.OverloadPotential)
	}
	if d.StabilityDemand == nil {
		d.StabilityDemand = IntPtr(r.StabilityDemand)
	}
	if d.SkillDemand == nil {
		d.SkillDemand = IntPtr(r.SkillDemand)
	}
	if d.DifficultyRating == nil {
		d.DifficultyRating = IntPtr(r.DifficultyRating)
	}
}

func IntPtr(v int) *int { return &v }
