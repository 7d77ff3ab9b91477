package usecase

import (
	"strings"

	"github.com/foodscan/backend/internal/domain"
)

// Default feature-mapping constants. Both are overridable via ScoringConfig:
// treating an unknown processing level as "most processed" is deliberately
// conservative, and the sodium-to-salt factor is not settled upstream.
const (
	DefaultNovaGroup    = 4
	DefaultSodiumToSalt = 2.5
)

// Product category labels consumed by the model and the rule table.
const (
	CategoryBeverage  = "Beverage"
	CategoryDairy     = "Dairy"
	CategoryCereal    = "Cereal"
	CategoryReadyMeal = "Ready-Meal"
	CategorySnack     = "Snack"
)

// ProductFeatures is the product half of the model input row.
type ProductFeatures struct {
	Category     string
	EnergyKcal   float64
	Sugar        float64
	Fat          float64
	SaturatedFat float64
	Salt         float64
	Fiber        float64
	Protein      float64
	NovaGroup    int

	ContainsGluten bool
	ContainsPeanut bool
	ContainsMilk   bool
	ContainsEgg    bool
}

// UserFeatures is the user half of the model input row: the subset of
// profile flags the scorer consumes.
type UserFeatures struct {
	HasHypertension    bool
	HasDiabetes        bool
	HasHighCholesterol bool
	GlutenIntolerance  bool
	PeanutAllergy      bool
	LactoseIntolerance bool
	EggAllergy         bool
	GoalWeightLoss     bool
	GoalMuscleGain     bool
}

// categoryRules is the ordered first-match rule list for deriving the
// product category from lower-cased category tags.
var categoryRules = []struct {
	substrings []string
	category   string
}{
	{[]string{"beverage", "drink"}, CategoryBeverage},
	{[]string{"dairy", "milk"}, CategoryDairy},
	{[]string{"cereal", "breakfast"}, CategoryCereal},
	{[]string{"meal", "ready"}, CategoryReadyMeal},
}

// MapProductFeatures derives the model features from a product record.
// The salt figure is derived from sodium via the configured conversion
// factor; a missing NOVA group takes the configured default.
func MapProductFeatures(product *domain.ProductRecord, novaDefault int, sodiumToSalt float64) ProductFeatures {
	category := CategorySnack
	tags := make([]string, len(product.CategoryTags))
	for i, tag := range product.CategoryTags {
		tags[i] = strings.ToLower(tag)
	}
outer:
	for _, rule := range categoryRules {
		for _, tag := range tags {
			for _, sub := range rule.substrings {
				if strings.Contains(tag, sub) {
					category = rule.category
					break outer
				}
			}
		}
	}

	nova := product.NovaGroup
	if nova == domain.NovaGroupUnknown {
		nova = novaDefault
	}

	allergenText := strings.ToLower(
		strings.Join(product.AllergenTags, " ") + " " + strings.Join(product.TraceTags, " "),
	)

	return ProductFeatures{
		Category:     category,
		EnergyKcal:   product.Nutrition.EnergyKcal,
		Sugar:        product.Nutrition.Sugars,
		Fat:          product.Nutrition.Fat,
		SaturatedFat: product.Nutrition.SaturatedFat,
		Salt:         product.Nutrition.Sodium * sodiumToSalt,
		Fiber:        product.Nutrition.Fiber,
		Protein:      product.Nutrition.Protein,
		NovaGroup:    nova,

		ContainsGluten: strings.Contains(allergenText, "gluten"),
		ContainsPeanut: strings.Contains(allergenText, "peanut") || strings.Contains(allergenText, "nut"),
		ContainsMilk:   strings.Contains(allergenText, "milk") || strings.Contains(allergenText, "dairy"),
		ContainsEgg:    strings.Contains(allergenText, "egg"),
	}
}

// MapUserFeatures copies the scorer-relevant profile flags.
func MapUserFeatures(user *domain.UserProfile) UserFeatures {
	return UserFeatures{
		HasHypertension:    user.HasHypertension,
		HasDiabetes:        user.HasDiabetes,
		HasHighCholesterol: user.HasHighCholesterol,
		GlutenIntolerance:  user.GlutenIntolerance,
		PeanutAllergy:      user.PeanutAllergy,
		LactoseIntolerance: user.LactoseIntolerance,
		EggAllergy:         user.EggAllergy,
		GoalWeightLoss:     user.GoalWeightLoss,
		GoalMuscleGain:     user.GoalMuscleGain,
	}
}

// featureRow concatenates both feature halves into the tabular row the
// model was trained on. Column names must match the training pipeline.
func featureRow(pf ProductFeatures, uf UserFeatures) map[string]float64 {
	return map[string]float64{
		"energy_kcal_100g":     pf.EnergyKcal,
		"sugar_100g":           pf.Sugar,
		"fat_100g":             pf.Fat,
		"saturated_fat_100g":   pf.SaturatedFat,
		"salt_100g":            pf.Salt,
		"fiber_100g":           pf.Fiber,
		"protein_100g":         pf.Protein,
		"nova_group":           float64(pf.NovaGroup),
		"contains_gluten":      boolToFloat(pf.ContainsGluten),
		"contains_peanut":      boolToFloat(pf.ContainsPeanut),
		"contains_milk":        boolToFloat(pf.ContainsMilk),
		"contains_egg":         boolToFloat(pf.ContainsEgg),
		"has_hypertension":     boolToFloat(uf.HasHypertension),
		"has_diabetes":         boolToFloat(uf.HasDiabetes),
		"has_high_cholesterol": boolToFloat(uf.HasHighCholesterol),
		"gluten_intolerance":   boolToFloat(uf.GlutenIntolerance),
		"peanut_allergy":       boolToFloat(uf.PeanutAllergy),
		"lactose_intolerance":  boolToFloat(uf.LactoseIntolerance),
		"egg_allergy":          boolToFloat(uf.EggAllergy),
		"goal_weight_loss":     boolToFloat(uf.GoalWeightLoss),
		"goal_muscle_gain":     boolToFloat(uf.GoalMuscleGain),
	}
}

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
