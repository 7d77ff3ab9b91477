package domain

// UnknownProductName is used when the upstream payload carries no usable name.
const UnknownProductName = "Unknown Product"

// Default data-source identifiers when the upstream payload lists none.
const (
	SourceOpenFoodFacts       = "OpenFoodFacts"
	SourceOpenFoodFactsSearch = "OpenFoodFacts Search"
)

// NovaGroupUnknown marks a product whose processing level the upstream
// database does not report. Scoring substitutes a configurable default.
const NovaGroupUnknown = 0

// NutritionProfile holds nutrient amounts per 100g of product. Absent or
// unparseable source values normalize to 0, never to a null state, so
// consumers need no nil handling.
type NutritionProfile struct {
	EnergyKcal    float64 `json:"energy_kcal_100g"`
	Fat           float64 `json:"fat_100g"`
	SaturatedFat  float64 `json:"saturated_fat_100g"`
	Carbohydrates float64 `json:"carbohydrates_100g"`
	Sugars        float64 `json:"sugars_100g"`
	Protein       float64 `json:"proteins_100g"`
	Sodium        float64 `json:"sodium_100g"`
	Fiber         float64 `json:"fiber_100g"`
}

// ProductRecord is the canonical product representation produced by the
// resolvers and consumed by the personalization engine.
type ProductRecord struct {
	ID           string           `json:"product_id"`
	Name         string           `json:"name"`
	Ingredients  []string         `json:"ingredients"`
	Additives    []string         `json:"additives"`
	Nutrition    NutritionProfile `json:"nutrition"`
	DataSources  []string         `json:"data_sources"`
	ImageURL     string           `json:"image_url,omitempty"`
	CategoryTags []string         `json:"categories_tags,omitempty"`
	AllergenTags []string         `json:"allergens_tags,omitempty"`
	TraceTags    []string         `json:"traces_tags,omitempty"`
	NovaGroup    int              `json:"nova_group,omitempty"` // 1-4, NovaGroupUnknown when absent
}
