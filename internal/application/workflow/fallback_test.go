package workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mealforge/v1/internal/domain/recipe"
)

func TestMergeTips(t *testing.T) {
	t.Run("deduplicates preserving original order", func(t *testing.T) {
		merged := mergeTips([]string{"A", "B"}, []string{"B", "C", "D"}, 8)
		assert.Equal(t, []string{"A", "B", "C", "D"}, merged)
	})

	t.Run("caps the total", func(t *testing.T) {
		merged := mergeTips(
			[]string{"1", "2", "3", "4", "5"},
			[]string{"6", "7", "8", "9", "10"},
			8,
		)
		assert.Len(t, merged, 8)
		assert.Equal(t, "8", merged[7])
	})

	t.Run("drops empty strings", func(t *testing.T) {
		merged := mergeTips([]string{"A", ""}, []string{"", "B"}, 8)
		assert.Equal(t, []string{"A", "B"}, merged)
	})

	t.Run("merging is idempotent", func(t *testing.T) {
		once := mergeTips([]string{"A", "B"}, []string{"B", "C"}, 8)
		twice := mergeTips(once, []string{"B", "C"}, 8)
		assert.Equal(t, once, twice)
	})
}

func TestFallbackDraft(t *testing.T) {
	rec, nutrition, shoppingList := fallbackDraft([]string{"chicken", "rice"}, "Oven")

	assert.Equal(t, "Simple Mixed Dish", rec.Name)
	assert.Equal(t, rec.PrepTime+rec.CookTime, rec.TotalTime)
	assert.Equal(t, []string{"• chicken", "• rice"}, rec.Ingredients)
	assert.Contains(t, rec.Instructions[1], "Oven")
	assert.Equal(t, recipe.ApplianceField("Oven"), rec.ApplianceUsed)

	require.NotNil(t, nutrition)
	assert.Equal(t, 300, nutrition.CaloriesPerServing)

	assert.Equal(t, []string{"Basic seasonings if needed"}, shoppingList)
}

func TestSynthesizeFinalRecipe(t *testing.T) {
	t.Run("carries draft fields through", func(t *testing.T) {
		state := testState()
		state.ParsedIngredients = []string{"chicken", "rice"}
		state.DraftRecipe = &recipe.Recipe{
			Name:        "Lemon Chicken",
			Description: "Bright and simple",
			PrepTime:    10,
			CookTime:    25,
			Servings:    2,
			Difficulty:  "Easy",
			CuisineType: "Italian",
		}
		state.CookingTips = []string{"Zest the lemon first"}

		final := synthesizeFinalRecipe(state)

		assert.Equal(t, "Lemon Chicken", final.Name)
		assert.Equal(t, 35, final.TotalTime)
		assert.Equal(t, 2, final.Servings)
		assert.Equal(t, []string{"• chicken", "• rice"}, final.Ingredients)
		assert.Equal(t, state.CookingTips, final.Tips)
		assert.NotEmpty(t, final.Instructions)
	})

	t.Run("applies defaults when draft is missing", func(t *testing.T) {
		state := testState()
		state.ParsedIngredients = []string{"eggs"}

		final := synthesizeFinalRecipe(state)

		assert.Equal(t, "Custom Recipe", final.Name)
		assert.Equal(t, 45, final.TotalTime)
		assert.Equal(t, 4, final.Servings)
		assert.Equal(t, "Medium", final.Difficulty)
	})
}
