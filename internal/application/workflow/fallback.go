package workflow

import (
	"fmt"

	"github.com/mealforge/v1/internal/domain/recipe"
	"github.com/mealforge/v1/internal/domain/workflow"
)

// Deterministic fallback content. Every stage must be able to degrade to
// locally synthesized output so a run always produces a usable recipe.

// fallbackDraft builds the substitute draft bundle used when the combined
// generation call fails. Ingredients are carried through bullet-prefixed and
// total time is always prep plus cook.
func fallbackDraft(ingredients []string, appliance string) (*recipe.Recipe, *recipe.NutritionInfo, []string) {
	const (
		prepTime = 15
		cookTime = 30
	)

	bulleted := make([]string, 0, len(ingredients))
	for _, ing := range ingredients {
		bulleted = append(bulleted, "• "+ing)
	}

	rec := &recipe.Recipe{
		Name:          "Simple Mixed Dish",
		Description:   fmt.Sprintf("A simple dish using available ingredients with %s", appliance),
		Emoji:         "🍽️✨",
		PrepTime:      prepTime,
		CookTime:      cookTime,
		TotalTime:     prepTime + cookTime,
		Servings:      4,
		Difficulty:    "Easy",
		CuisineType:   "International",
		ApplianceUsed: recipe.ApplianceField(appliance),
		Ingredients:   bulleted,
		Instructions: []string{
			"1. Prepare all ingredients by washing and chopping as needed",
			fmt.Sprintf("2. Use your %s to cook the ingredients", appliance),
			"3. Season to taste with salt and pepper",
			"4. Cook until ingredients are tender and flavors are combined",
			"5. Serve hot and enjoy!",
		},
		Tips: []string{
			"Taste and adjust seasoning as needed",
			"Don't overcook the vegetables",
			"Add herbs or spices to enhance flavor",
		},
		Variations: []string{
			"Add different seasonings",
			"Include additional vegetables",
			"Try different cooking methods",
		},
		StorageInstructions: "Store in refrigerator for up to 3 days",
	}

	nutrition := &recipe.NutritionInfo{
		CaloriesPerServing: 300,
		ProteinG:           12.0,
		CarbsG:             40.0,
		FatG:               10.0,
		FiberG:             5.0,
		SodiumMg:           500.0,
		SugarG:             6.0,
		KeyNutrients:       []string{"Vitamin C", "Iron", "Calcium"},
		HealthBenefits:     []string{"Provides balanced nutrition", "Contains essential vitamins"},
	}

	shoppingList := []string{"Basic seasonings if needed"}

	return rec, nutrition, shoppingList
}

// genericTips is the substitute tip list when tip generation fails.
func genericTips() []string {
	return []string{
		"Read through the entire recipe before starting",
		"Prep all ingredients before cooking",
		"Keep a clean workspace",
		"Taste as you go and adjust seasoning",
	}
}

// synthesizeFinalRecipe compiles the final recipe directly from prior state
// without another model call. It cannot fail.
func synthesizeFinalRecipe(state *workflow.State) *recipe.Recipe {
	name := "Custom Recipe"
	description := "A delicious homemade dish"
	prepTime := 15
	cookTime := 30
	servings := 4
	difficulty := "Medium"
	cuisine := "International"

	if draft := state.DraftRecipe; draft != nil {
		if draft.Name != "" {
			name = draft.Name
		}
		if draft.Description != "" {
			description = draft.Description
		}
		if draft.PrepTime > 0 {
			prepTime = draft.PrepTime
		}
		if draft.CookTime > 0 {
			cookTime = draft.CookTime
		}
		if draft.Servings > 0 {
			servings = draft.Servings
		}
		if draft.Difficulty != "" {
			difficulty = draft.Difficulty
		}
		if draft.CuisineType != "" {
			cuisine = draft.CuisineType
		}
	}

	ingredients := make([]string, 0, len(state.ParsedIngredients))
	for _, ing := range state.ParsedIngredients {
		ingredients = append(ingredients, "• "+ing)
	}

	return &recipe.Recipe{
		Name:          name,
		Description:   description,
		Emoji:         "🍽️✨",
		PrepTime:      prepTime,
		CookTime:      cookTime,
		TotalTime:     prepTime + cookTime,
		Servings:      servings,
		Difficulty:    difficulty,
		CuisineType:   cuisine,
		ApplianceUsed: recipe.ApplianceField(state.Request.Appliance),
		Ingredients:   ingredients,
		Instructions: []string{
			"1. Prepare all ingredients",
			"2. Follow cooking method for your appliance",
			"3. Cook until done",
			"4. Serve and enjoy!",
		},
		Tips:                state.CookingTips,
		Variations:          []string{"Try different seasonings", "Add more vegetables"},
		StorageInstructions: "Store in refrigerator for up to 3 days",
	}
}

// mergeTips merges additional tips into existing ones, preserving original
// order, dropping duplicate strings, and capping the total.
func mergeTips(existing, additional []string, limit int) []string {
	merged := make([]string, 0, len(existing)+len(additional))
	seen := make(map[string]struct{}, len(existing)+len(additional))

	for _, tip := range append(append([]string{}, existing...), additional...) {
		if tip == "" {
			continue
		}
		if _, dup := seen[tip]; dup {
			continue
		}
		seen[tip] = struct{}{}
		merged = append(merged, tip)
		if len(merged) == limit {
			break
		}
	}

	return merged
}
