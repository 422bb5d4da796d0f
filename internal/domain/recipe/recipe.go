// Package recipe contains the core domain model for generated recipes.
package recipe

import "encoding/json"

// Recipe is a generated recipe, either the draft produced by the first
// generation stage or the final compiled recipe returned to the caller.
type Recipe struct {
	Name                string         `json:"name"`
	Description         string         `json:"description"`
	Emoji               string         `json:"emoji_representation"`
	PrepTime            int            `json:"prep_time"`
	CookTime            int            `json:"cook_time"`
	TotalTime           int            `json:"total_time"`
	Servings            int            `json:"servings"`
	Difficulty          string         `json:"difficulty"`
	CuisineType         string         `json:"cuisine_type"`
	ApplianceUsed       ApplianceField `json:"appliance_used"`
	Ingredients         []string       `json:"ingredients"`
	Instructions        []string       `json:"instructions"`
	Tips                []string       `json:"tips"`
	Variations          []string       `json:"variations"`
	StorageInstructions string         `json:"storage_instructions"`
}

// NutritionInfo contains per-serving nutritional estimates for a recipe.
type NutritionInfo struct {
	CaloriesPerServing int      `json:"calories_per_serving"`
	ProteinG           float64  `json:"protein_g"`
	CarbsG             float64  `json:"carbs_g"`
	FatG               float64  `json:"fat_g"`
	FiberG             float64  `json:"fiber_g"`
	SodiumMg           float64  `json:"sodium_mg"`
	SugarG             float64  `json:"sugar_g"`
	KeyNutrients       []string `json:"key_nutrients"`
	HealthBenefits     []string `json:"health_benefits"`
}

// ApplianceField is always a single appliance name. Generation providers
// sometimes return a list here despite instructions; decoding collapses a
// list to its first element so downstream consumers never see a collection.
type ApplianceField string

// UnmarshalJSON accepts either a JSON string or a JSON array of strings.
func (a *ApplianceField) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*a = ApplianceField(single)
		return nil
	}

	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return err
	}
	if len(list) > 0 {
		*a = ApplianceField(list[0])
	} else {
		*a = ""
	}
	return nil
}

// String returns the appliance name.
func (a ApplianceField) String() string {
	return string(a)
}
