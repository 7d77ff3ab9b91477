package usecase

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/foodscan/backend/internal/domain"
)

func newTestEngine() *PersonalizationEngine {
	// Nonexistent model path: every call uses rule-based fallback.
	return NewPersonalizationEngine(ScoringConfig{
		ModelPath: filepath.Join(os.TempDir(), "no-such-model.json"),
	})
}

func TestPredict_DiabeticUserHighSugar(t *testing.T) {
	engine := newTestEngine()

	product := &domain.ProductRecord{
		ID:   "3017620422003",
		Name: "Nutella",
		Nutrition: domain.NutritionProfile{
			EnergyKcal: 200,
			Sugars:     56.3,
			Sodium:     0.042,
		},
		NovaGroup: 1,
	}
	user := &domain.UserProfile{HasDiabetes: true}

	result := engine.Predict(product, user)

	if result.Score != 50.0 {
		t.Errorf("Score = %v, want 50 (100 - 50 very-high-sugar penalty)", result.Score)
	}
	if len(result.Warnings) != 0 {
		t.Errorf("Warnings = %v, want none without allergen match", result.Warnings)
	}
	foundSugar := false
	for _, reason := range result.Reasons {
		if reason == "Very high sugar content (not suitable for diabetes)" {
			foundSugar = true
		}
	}
	if !foundSugar {
		t.Errorf("Reasons = %v, want sugar-related entry", result.Reasons)
	}
}

func TestPredict_PeanutAllergyHardConstraint(t *testing.T) {
	engine := newTestEngine()

	product := &domain.ProductRecord{
		ID:           "1",
		Name:         "Peanut Butter",
		AllergenTags: []string{"en:peanuts"},
		Nutrition: domain.NutritionProfile{
			Sugars: 56.3, // soft penalties must not evaluate
			Sodium: 2.0,
		},
	}
	user := &domain.UserProfile{PeanutAllergy: true, HasDiabetes: true, HasHypertension: true}

	result := engine.Predict(product, user)

	if result.Score != 0.0 {
		t.Errorf("Score = %v, want 0 on allergen hard match", result.Score)
	}
	wantReasons := []string{"Product contains allergen you're allergic to"}
	if !reflect.DeepEqual(result.Reasons, wantReasons) {
		t.Errorf("Reasons = %v, want %v", result.Reasons, wantReasons)
	}
	if len(result.Warnings) != 1 {
		t.Fatalf("Warnings = %v, want exactly one", result.Warnings)
	}
}

func TestPredict_HardConstraintOrder(t *testing.T) {
	// Product matching several allergen flags must report the first pair in
	// the fixed evaluation order: peanut, gluten, lactose/milk, egg.
	engine := newTestEngine()

	product := &domain.ProductRecord{
		AllergenTags: []string{"en:gluten", "en:milk", "en:eggs"},
	}
	user := &domain.UserProfile{
		GlutenIntolerance:  true,
		LactoseIntolerance: true,
		EggAllergy:         true,
	}

	result := engine.Predict(product, user)

	if result.Score != 0.0 {
		t.Fatalf("Score = %v, want 0", result.Score)
	}
	if result.Warnings[0] != "ALLERGEN ALERT: Contains gluten - UNSAFE for you!" {
		t.Errorf("Warnings = %v, want gluten alert first", result.Warnings)
	}
	if result.Reasons[0] != "Product contains allergen you're intolerant to" {
		t.Errorf("Reasons = %v, want intolerance wording", result.Reasons)
	}
}

func TestPredict_DefaultUserUnknownNova(t *testing.T) {
	engine := newTestEngine()

	product := &domain.ProductRecord{
		ID:   "plain",
		Name: "Plain Crackers",
		Nutrition: domain.NutritionProfile{
			EnergyKcal: 100,
			Sugars:     2,
		},
		// NovaGroup absent: defaults to 4 (most processed)
	}
	user := &domain.UserProfile{}

	result := engine.Predict(product, user)

	if result.Score != 85.0 {
		t.Errorf("Score = %v, want 85 (only the ultra-processed penalty)", result.Score)
	}
	if result.Reasons[0] != "Ultra-processed food (NOVA Group 4)" {
		t.Errorf("Reasons = %v, want ultra-processed explanation", result.Reasons)
	}
}

func TestPredict_NoPenaltiesDefaultReason(t *testing.T) {
	engine := newTestEngine()

	product := &domain.ProductRecord{NovaGroup: 1}
	user := &domain.UserProfile{}

	result := engine.Predict(product, user)

	if result.Score != 100.0 {
		t.Errorf("Score = %v, want 100", result.Score)
	}
	wantReasons := []string{"Product is generally suitable for your profile"}
	if !reflect.DeepEqual(result.Reasons, wantReasons) {
		t.Errorf("Reasons = %v, want default suitability reason", result.Reasons)
	}
}

func TestPredict_ScoreClamping(t *testing.T) {
	engine := newTestEngine()

	// Every penalty at once drives the raw score far below zero.
	product := &domain.ProductRecord{
		Nutrition: domain.NutritionProfile{
			EnergyKcal:   600,
			Sugars:       50,
			SaturatedFat: 20,
			Sodium:       2, // salt = 5 with default factor
			Protein:      1,
		},
		// nova defaults to 4
	}
	user := &domain.UserProfile{
		HasHypertension:    true,
		HasDiabetes:        true,
		HasHighCholesterol: true,
		GoalWeightLoss:     true,
		GoalMuscleGain:     true,
	}

	result := engine.Predict(product, user)

	if result.Score < 0 || result.Score > 100 {
		t.Errorf("Score = %v, want within [0, 100]", result.Score)
	}
	if result.Score != 0.0 {
		t.Errorf("Score = %v, want clamped to 0", result.Score)
	}
	if len(result.Reasons) == 0 {
		t.Error("Reasons must never be empty")
	}
}

func TestPredict_MuscleGainBonusClampedAt100(t *testing.T) {
	engine := newTestEngine()

	product := &domain.ProductRecord{
		Nutrition: domain.NutritionProfile{Protein: 30},
		NovaGroup: 1,
	}
	user := &domain.UserProfile{GoalMuscleGain: true}

	result := engine.Predict(product, user)

	if result.Score != 100.0 {
		t.Errorf("Score = %v, want 110 clamped to 100", result.Score)
	}
	if result.Reasons[0] != "Excellent protein content (great for muscle gain)" {
		t.Errorf("Reasons = %v", result.Reasons)
	}
}

func TestPredict_ProcessedFoodPenalty(t *testing.T) {
	engine := newTestEngine()

	product := &domain.ProductRecord{NovaGroup: 3}
	result := engine.Predict(product, &domain.UserProfile{})

	if result.Score != 95.0 {
		t.Errorf("Score = %v, want 95 (NOVA 3 penalty)", result.Score)
	}
}

func TestPredict_ModelPath(t *testing.T) {
	writeModel := func(t *testing.T, content string) string {
		t.Helper()
		path := filepath.Join(t.TempDir(), "model.json")
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
		return path
	}

	t.Run("score comes from the model, reasons from the rule table", func(t *testing.T) {
		path := writeModel(t, `{
			"intercept": 90,
			"weights": {"sugar_100g": -1},
			"category_weights": {}
		}`)
		engine := NewPersonalizationEngine(ScoringConfig{ModelPath: path})

		product := &domain.ProductRecord{
			Nutrition: domain.NutritionProfile{Sugars: 25},
			NovaGroup: 1,
		}
		result := engine.Predict(product, &domain.UserProfile{})

		if result.Score != 65.0 {
			t.Errorf("Score = %v, want 65 from the model", result.Score)
		}
		// 65 lands in the good-with-minor-concerns band, plus sugar > 20
		// appends a value-bearing reason.
		if result.Reasons[0] != "Good match with minor concerns" {
			t.Errorf("Reasons = %v, want band reason first", result.Reasons)
		}
		if result.Reasons[1] != "High sugar content (25g per 100g)" {
			t.Errorf("Reasons = %v, want literal sugar value", result.Reasons)
		}
	})

	t.Run("model path reports all allergen matches as warnings", func(t *testing.T) {
		path := writeModel(t, `{
			"intercept": 10,
			"weights": {"sugar_100g": 0},
			"category_weights": {}
		}`)
		engine := NewPersonalizationEngine(ScoringConfig{ModelPath: path})

		product := &domain.ProductRecord{
			AllergenTags: []string{"en:peanuts", "en:eggs"},
		}
		user := &domain.UserProfile{PeanutAllergy: true, EggAllergy: true}

		result := engine.Predict(product, user)

		want := []string{"ALLERGEN ALERT: Contains peanuts", "ALLERGEN ALERT: Contains egg"}
		if !reflect.DeepEqual(result.Warnings, want) {
			t.Errorf("Warnings = %v, want both matches, not short-circuited", result.Warnings)
		}
		if result.Reasons[0] != "Not recommended for your health profile" {
			t.Errorf("Reasons = %v", result.Reasons)
		}
	})

	t.Run("model score above 100 is clamped", func(t *testing.T) {
		path := writeModel(t, `{
			"intercept": 250,
			"weights": {"sugar_100g": 0},
			"category_weights": {}
		}`)
		engine := NewPersonalizationEngine(ScoringConfig{ModelPath: path})

		result := engine.Predict(&domain.ProductRecord{NovaGroup: 1}, &domain.UserProfile{})
		if result.Score != 100.0 {
			t.Errorf("Score = %v, want clamped to 100", result.Score)
		}
	})

	t.Run("unloadable model routes to fallback permanently", func(t *testing.T) {
		path := writeModel(t, "{broken")
		engine := NewPersonalizationEngine(ScoringConfig{ModelPath: path})

		result := engine.Predict(&domain.ProductRecord{NovaGroup: 1}, &domain.UserProfile{})
		if result.Score != 100.0 {
			t.Errorf("Score = %v, want fallback rule score", result.Score)
		}
		if engine.model != nil {
			t.Error("model handle must stay unset after a load failure")
		}
	})
}
