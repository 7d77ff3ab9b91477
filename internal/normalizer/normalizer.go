// Package normalizer converts raw heterogeneous nutrition, ingredient and
// additive data from upstream product databases into the canonical schema.
package normalizer

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/foodscan/backend/internal/domain"
)

// Package-level compiled regex patterns for performance
var (
	numericValueRegex = regexp.MustCompile(`[\d.]+`)
	annotationRegex   = regexp.MustCompile(`[(\[{].*?[)\]}]`)
)

// additivePrefix marks language-qualified additive tags, e.g. "en:e330".
const additivePrefix = "en:e"

// nutrient field keys: primary per-100g key plus the legacy unsuffixed key.
var nutrientKeys = []struct {
	primary string
	legacy  string
}{
	{"energy-kcal_100g", "energy-kcal"},
	{"fat_100g", "fat"},
	{"saturated-fat_100g", "saturated-fat"},
	{"carbohydrates_100g", "carbohydrates"},
	{"sugars_100g", "sugars"},
	{"proteins_100g", "proteins"},
	{"sodium_100g", "sodium"},
	{"fiber_100g", "fiber"},
}

// CleanNutrientValue coerces a raw nutrient value to a float64. Numeric
// values pass through; strings have the first numeric substring extracted;
// anything else yields 0.
func CleanNutrientValue(value any) float64 {
	switch v := value.(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case string:
		match := numericValueRegex.FindString(v)
		if match == "" {
			return 0
		}
		f, err := strconv.ParseFloat(match, 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

// NormalizeNutrition extracts the eight tracked nutrients from a raw
// nutriments map. Each field is looked up under its per-100g key first,
// then the legacy key; missing or unparseable values become 0.
func NormalizeNutrition(raw map[string]any) domain.NutritionProfile {
	values := make([]float64, len(nutrientKeys))
	for i, keys := range nutrientKeys {
		v, ok := raw[keys.primary]
		if !ok {
			v = raw[keys.legacy]
		}
		values[i] = CleanNutrientValue(v)
	}
	return domain.NutritionProfile{
		EnergyKcal:    values[0],
		Fat:           values[1],
		SaturatedFat:  values[2],
		Carbohydrates: values[3],
		Sugars:        values[4],
		Protein:       values[5],
		Sodium:        values[6],
		Fiber:         values[7],
	}
}

// NormalizeIngredients cleans an ingredients string into an ordered list.
// Parenthetical, bracketed and braced annotations are stripped before
// splitting on commas; empty entries are dropped.
func NormalizeIngredients(text string) []string {
	if text == "" {
		return []string{}
	}
	cleaned := annotationRegex.ReplaceAllString(text, "")
	parts := strings.Split(cleaned, ",")
	items := make([]string, 0, len(parts))
	for _, part := range parts {
		if item := strings.TrimSpace(part); item != "" {
			items = append(items, item)
		}
	}
	return items
}

// ExtractAdditives keeps only language-prefixed additive tags like
// "en:e330" and returns their codes upper-cased ("E330"), in input order.
func ExtractAdditives(tags []string) []string {
	codes := make([]string, 0, len(tags))
	for _, tag := range tags {
		if !strings.HasPrefix(tag, additivePrefix) {
			continue
		}
		codes = append(codes, strings.ToUpper(strings.TrimPrefix(tag, "en:")))
	}
	return codes
}
