package domain

// USDAFood represents a food item from the USDA FoodData Central API.
type USDAFood struct {
	FdcID       int64          `json:"fdcId"`
	Description string         `json:"description"`
	DataType    string         `json:"dataType"`
	Nutrients   []USDANutrient `json:"foodNutrients"`
}

// USDANutrient represents a single nutrient from USDA data.
type USDANutrient struct {
	NutrientID   int     `json:"nutrientId"`
	NutrientName string  `json:"nutrientName"`
	UnitName     string  `json:"unitName"`
	Value        float64 `json:"value"`
}

// USDASearchResponse represents the response from the USDA search API.
type USDASearchResponse struct {
	Foods     []USDAFood `json:"foods"`
	TotalHits int        `json:"totalHits"`
}

// FoodSummary is the normalized result of a secondary nutrition lookup.
type FoodSummary struct {
	FdcID       string           `json:"fdcId"`
	Description string           `json:"description"`
	Nutrition   NutritionProfile `json:"nutrition"`
	Source      string           `json:"source"`
}
