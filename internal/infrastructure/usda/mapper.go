package usda

import (
	"fmt"

	"github.com/foodscan/backend/internal/domain"
)

// USDA FoodData Central nutrient IDs for the tracked profile fields.
// Matching by ID avoids name collisions: "Fatty acids, total
// monounsaturated" contains the substring "saturated", and "Sugars,
// added" would shadow "Sugars, total".
const (
	NutrientIDEnergy       = 1008 // Energy (kcal)
	NutrientIDProtein      = 1003 // Protein (g)
	NutrientIDTotalFat     = 1004 // Total lipid (fat) (g)
	NutrientIDCarbohydrate = 1005 // Carbohydrate, by difference (g)
	NutrientIDSugarsTotal  = 2000 // Sugars, total including NLEA (g)
	NutrientIDFiber        = 1079 // Fiber, total dietary (g)
	NutrientIDSodium       = 1093 // Sodium, Na (mg)
	NutrientIDSaturatedFat = 1258 // Fatty acids, total saturated (g)
)

// MapToFoodSummary converts a USDA food item to a normalized food summary.
// Sodium is divided by sodiumDivisor to convert to grams.
func MapToFoodSummary(food *domain.USDAFood, sodiumDivisor float64) *domain.FoodSummary {
	return &domain.FoodSummary{
		FdcID:       fmt.Sprintf("%d", food.FdcID),
		Description: food.Description,
		Nutrition:   extractNutrition(food.Nutrients, sodiumDivisor),
		Source:      "USDA",
	}
}

// extractNutrition maps USDA nutrients onto the canonical profile by
// nutrient ID. Unrecognized nutrients are ignored.
func extractNutrition(nutrients []domain.USDANutrient, sodiumDivisor float64) domain.NutritionProfile {
	var profile domain.NutritionProfile

	for _, nutrient := range nutrients {
		switch nutrient.NutrientID {
		case NutrientIDEnergy:
			profile.EnergyKcal = nutrient.Value
		case NutrientIDProtein:
			profile.Protein = nutrient.Value
		case NutrientIDTotalFat:
			profile.Fat = nutrient.Value
		case NutrientIDCarbohydrate:
			profile.Carbohydrates = nutrient.Value
		case NutrientIDSugarsTotal:
			profile.Sugars = nutrient.Value
		case NutrientIDFiber:
			profile.Fiber = nutrient.Value
		case NutrientIDSodium:
			profile.Sodium = nutrient.Value / sodiumDivisor
		case NutrientIDSaturatedFat:
			profile.SaturatedFat = nutrient.Value
		}
	}

	return profile
}
