package domain

import "fmt"

// UserProfile is the caller-supplied health profile. All flags default to
// false; a zero-value profile represents a user with no constraints.
type UserProfile struct {
	// Medical conditions
	HasHypertension    bool `json:"has_hypertension"`
	HasDiabetes        bool `json:"has_diabetes"`
	HasHighCholesterol bool `json:"has_high_cholesterol"`
	HeartDisease       bool `json:"heart_disease"`
	KidneyDisease      bool `json:"kidney_disease"`
	Obesity            bool `json:"obesity"`

	// Allergies and intolerances
	PeanutAllergy      bool `json:"peanut_allergy"`
	GlutenIntolerance  bool `json:"gluten_intolerance"`
	LactoseIntolerance bool `json:"lactose_intolerance"`
	SoyAllergy         bool `json:"soy_allergy"`
	EggAllergy         bool `json:"egg_allergy"`

	// Fitness goals
	GoalWeightLoss  bool `json:"goal_weight_loss"`
	GoalMuscleGain  bool `json:"goal_muscle_gain"`
	GoalHighProtein bool `json:"goal_high_protein"`
	GoalLowCarb     bool `json:"goal_low_carb"`

	Age                int `json:"age,omitempty"`
	DailyCalorieTarget int `json:"daily_calorie_target,omitempty"`
}

// Validate checks the optional numeric fields. Profile validation is the
// only failure the scoring pipeline surfaces to the caller.
func (p *UserProfile) Validate() error {
	if p.Age < 0 || p.Age > 150 {
		return fmt.Errorf("%w: age %d out of range", ErrInvalidProfile, p.Age)
	}
	if p.DailyCalorieTarget < 0 || p.DailyCalorieTarget > 20000 {
		return fmt.Errorf("%w: daily calorie target %d out of range", ErrInvalidProfile, p.DailyCalorieTarget)
	}
	return nil
}
