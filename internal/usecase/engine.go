package usecase

import (
	"fmt"
	"log"
	"sync"

	"github.com/foodscan/backend/internal/domain"
	"github.com/foodscan/backend/internal/infrastructure/model"
)

// Scoring thresholds and adjustments for the rule-based fallback.
const (
	saltHighThreshold        = 1.5
	saltModerateThreshold    = 0.5
	sugarVeryHighThreshold   = 22.5
	sugarModerateThreshold   = 5.0
	satFatHighThreshold      = 5.0
	energyHighThreshold      = 400.0
	sugarWeightLossThreshold = 15.0
	proteinHighThreshold     = 20.0
	proteinLowThreshold      = 5.0
)

// ScoringConfig holds configuration for the personalization engine.
type ScoringConfig struct {
	// ModelPath is the well-known location of the trained model artifact.
	// An absent or unloadable artifact routes all calls to rule-based
	// fallback scoring.
	ModelPath string
	// NovaDefault substitutes for an unreported processing level.
	NovaDefault int
	// SodiumToSalt converts the sodium figure to salt for the rule table.
	SodiumToSalt float64
}

// PersonalizationEngine turns a product record and a user profile into a
// suitability score with explanations. The model handle is loaded lazily,
// exactly once, and is immutable afterwards; concurrent first calls are
// safe.
type PersonalizationEngine struct {
	cfg      ScoringConfig
	loadOnce sync.Once
	model    *model.LinearModel // nil after load means fallback scoring
}

// NewPersonalizationEngine creates an engine. The model artifact is not
// touched until the first Predict call.
func NewPersonalizationEngine(cfg ScoringConfig) *PersonalizationEngine {
	if cfg.NovaDefault == 0 {
		cfg.NovaDefault = DefaultNovaGroup
	}
	if cfg.SodiumToSalt == 0 {
		cfg.SodiumToSalt = DefaultSodiumToSalt
	}
	return &PersonalizationEngine{cfg: cfg}
}

// loadModel runs once. Absence of the artifact is not an error; it just
// means every call uses the deterministic rules.
func (e *PersonalizationEngine) loadModel() {
	if e.cfg.ModelPath == "" {
		log.Printf("[Engine] no model path configured, using rule-based scoring")
		return
	}
	m, err := model.Load(e.cfg.ModelPath)
	if err != nil {
		log.Printf("[Engine] model unavailable (%v), using rule-based scoring", err)
		return
	}
	log.Printf("[Engine] personalization model loaded from %s", e.cfg.ModelPath)
	e.model = m
}

// Predict scores a product for a user. It never fails: model absence or
// inference errors degrade to the rule-based fallback, so a ScoreResult is
// always produced.
func (e *PersonalizationEngine) Predict(product *domain.ProductRecord, user *domain.UserProfile) domain.ScoreResult {
	pf := MapProductFeatures(product, e.cfg.NovaDefault, e.cfg.SodiumToSalt)
	uf := MapUserFeatures(user)

	e.loadOnce.Do(e.loadModel)

	if e.model != nil {
		score, err := e.model.Predict(pf.Category, featureRow(pf, uf))
		if err == nil {
			reasons, warnings := explain(pf, uf, score)
			return domain.ScoreResult{
				Score:    clampScore(score),
				Reasons:  reasons,
				Warnings: warnings,
			}
		}
		// Degrade this request only; the loaded model stays usable.
		log.Printf("[Engine] %v: %v, falling back to rules", domain.ErrModelInference, err)
	}

	return fallbackScore(pf, uf)
}

// fallbackScore is the deterministic rule-based algorithm of record.
func fallbackScore(pf ProductFeatures, uf UserFeatures) domain.ScoreResult {
	// Hard allergen constraints short-circuit everything else, in fixed
	// order: peanut, gluten, lactose/milk, egg.
	if uf.PeanutAllergy && pf.ContainsPeanut {
		return domain.ScoreResult{
			Score:    0.0,
			Reasons:  []string{"Product contains allergen you're allergic to"},
			Warnings: []string{"ALLERGEN ALERT: Contains peanuts - UNSAFE for you!"},
		}
	}
	if uf.GlutenIntolerance && pf.ContainsGluten {
		return domain.ScoreResult{
			Score:    0.0,
			Reasons:  []string{"Product contains allergen you're intolerant to"},
			Warnings: []string{"ALLERGEN ALERT: Contains gluten - UNSAFE for you!"},
		}
	}
	if uf.LactoseIntolerance && pf.ContainsMilk {
		return domain.ScoreResult{
			Score:    0.0,
			Reasons:  []string{"Product contains allergen you're intolerant to"},
			Warnings: []string{"ALLERGEN ALERT: Contains milk/lactose - UNSAFE for you!"},
		}
	}
	if uf.EggAllergy && pf.ContainsEgg {
		return domain.ScoreResult{
			Score:    0.0,
			Reasons:  []string{"Product contains allergen you're allergic to"},
			Warnings: []string{"ALLERGEN ALERT: Contains egg - UNSAFE for you!"},
		}
	}

	score := 100.0
	reasons := []string{}

	// Health conditions
	if uf.HasHypertension {
		if pf.Salt > saltHighThreshold {
			score -= 40
			reasons = append(reasons, "High salt content (not suitable for hypertension)")
		} else if pf.Salt > saltModerateThreshold {
			score -= 20
			reasons = append(reasons, "Moderate salt content (caution with hypertension)")
		}
	}
	if uf.HasDiabetes {
		if pf.Sugar > sugarVeryHighThreshold {
			score -= 50
			reasons = append(reasons, "Very high sugar content (not suitable for diabetes)")
		} else if pf.Sugar > sugarModerateThreshold {
			score -= 25
			reasons = append(reasons, "Moderate sugar content (caution with diabetes)")
		}
	}
	if uf.HasHighCholesterol && pf.SaturatedFat > satFatHighThreshold {
		score -= 30
		reasons = append(reasons, "High saturated fat (not suitable for high cholesterol)")
	}

	// Fitness goals
	if uf.GoalWeightLoss {
		if pf.EnergyKcal > energyHighThreshold {
			score -= 20
			reasons = append(reasons, "High calorie content (not ideal for weight loss)")
		}
		if pf.Sugar > sugarWeightLossThreshold {
			score -= 15
			reasons = append(reasons, "High sugar content (not ideal for weight loss)")
		}
	}
	if uf.GoalMuscleGain {
		if pf.Protein > proteinHighThreshold {
			score += 10
			reasons = append(reasons, "Excellent protein content (great for muscle gain)")
		} else if pf.Protein < proteinLowThreshold {
			score -= 10
			reasons = append(reasons, "Low protein content (not ideal for muscle gain)")
		}
	}

	// General processing-level penalties
	if pf.NovaGroup == 4 {
		score -= 15
		reasons = append(reasons, "Ultra-processed food (NOVA Group 4)")
	} else if pf.NovaGroup == 3 {
		score -= 5
		reasons = append(reasons, "Processed food (NOVA Group 3)")
	}

	score = clampScore(score)

	if len(reasons) == 0 {
		reasons = append(reasons, "Product is generally suitable for your profile")
	}

	return domain.ScoreResult{Score: score, Reasons: reasons, Warnings: []string{}}
}

// explain generates reasons and warnings for a model-produced score. Unlike
// the fallback, allergen checks do not short-circuit; every match appends a
// warning.
func explain(pf ProductFeatures, uf UserFeatures, score float64) (reasons, warnings []string) {
	warnings = []string{}
	if uf.PeanutAllergy && pf.ContainsPeanut {
		warnings = append(warnings, "ALLERGEN ALERT: Contains peanuts")
	}
	if uf.GlutenIntolerance && pf.ContainsGluten {
		warnings = append(warnings, "ALLERGEN ALERT: Contains gluten")
	}
	if uf.LactoseIntolerance && pf.ContainsMilk {
		warnings = append(warnings, "ALLERGEN ALERT: Contains milk/lactose")
	}
	if uf.EggAllergy && pf.ContainsEgg {
		warnings = append(warnings, "ALLERGEN ALERT: Contains egg")
	}

	switch {
	case score >= 80:
		reasons = append(reasons, "Excellent match for your health profile")
	case score >= 60:
		reasons = append(reasons, "Good match with minor concerns")
	case score >= 40:
		reasons = append(reasons, "Moderate suitability - consume with caution")
	default:
		reasons = append(reasons, "Not recommended for your health profile")
	}

	if pf.Sugar > 20 {
		reasons = append(reasons, fmt.Sprintf("High sugar content (%gg per 100g)", pf.Sugar))
	}
	if pf.Salt > 1.0 {
		reasons = append(reasons, fmt.Sprintf("High salt content (%gg per 100g)", pf.Salt))
	}

	return reasons, warnings
}

func clampScore(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
