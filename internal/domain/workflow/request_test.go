package workflow

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mealforge/v1/internal/domain/recipe"
)

func validRequest() Request {
	return Request{
		Ingredients:         []string{"Chicken", "Rice"},
		Appliance:           "Oven",
		AvailableAppliances: []string{"Oven"},
		DietaryRestrictions: []string{"Vegetarian"},
		CuisinePreference:   "Italian",
		SkillLevel:          "Beginner",
	}
}

func TestRequestNormalize(t *testing.T) {
	t.Run("trims and deduplicates ingredients", func(t *testing.T) {
		req := Request{Ingredients: []string{" Chicken ", "Chicken", "", "Rice"}}
		req.Normalize()
		assert.Equal(t, []string{"Chicken", "Rice"}, req.Ingredients)
	})

	t.Run("defaults cuisine", func(t *testing.T) {
		req := Request{Ingredients: []string{"Eggs"}}
		req.Normalize()
		assert.Equal(t, recipe.DefaultCuisine, req.CuisinePreference)
	})

	t.Run("defaults primary appliance to first available", func(t *testing.T) {
		req := Request{
			Ingredients:         []string{"Eggs"},
			AvailableAppliances: []string{"Microwave", "Oven"},
		}
		req.Normalize()
		assert.Equal(t, "Microwave", req.Appliance)
	})

	t.Run("keeps explicit appliance", func(t *testing.T) {
		req := validRequest()
		req.Normalize()
		assert.Equal(t, "Oven", req.Appliance)
	})
}

func TestRequestValidate(t *testing.T) {
	t.Run("valid request passes", func(t *testing.T) {
		assert.Empty(t, validRequest().Validate())
	})

	t.Run("missing ingredients", func(t *testing.T) {
		req := validRequest()
		req.Ingredients = nil

		errs := req.Validate()
		require.Len(t, errs, 1)
		assert.Equal(t, "Please select at least one ingredient.", errs[0].Message)
	})

	t.Run("too many ingredients", func(t *testing.T) {
		req := validRequest()
		req.Ingredients = make([]string, recipe.MaxIngredients+1)
		for i := range req.Ingredients {
			req.Ingredients[i] = fmt.Sprintf("ingredient-%d", i)
		}

		errs := req.Validate()
		require.Len(t, errs, 1)
		assert.Contains(t, errs[0].Message, "Too many ingredients")
	})

	t.Run("no appliances", func(t *testing.T) {
		req := validRequest()
		req.Appliance = ""
		req.AvailableAppliances = nil

		errs := req.Validate()
		require.Len(t, errs, 1)
		assert.Equal(t, "Please select at least one cooking appliance.", errs[0].Message)
	})

	t.Run("unknown appliance", func(t *testing.T) {
		req := validRequest()
		req.AvailableAppliances = []string{"Campfire"}

		errs := req.Validate()
		require.NotEmpty(t, errs)
		assert.Contains(t, errs[0].Message, "Invalid appliance: Campfire")
	})

	t.Run("unknown skill level", func(t *testing.T) {
		req := validRequest()
		req.SkillLevel = "Grandmaster"

		errs := req.Validate()
		require.Len(t, errs, 1)
		assert.Contains(t, errs[0].Message, "Invalid skill level")
	})

	t.Run("unknown dietary restrictions collected together", func(t *testing.T) {
		req := validRequest()
		req.DietaryRestrictions = []string{"Paleo", "Vegan", "Carnivore"}

		errs := req.Validate()
		require.Len(t, errs, 1)
		assert.Contains(t, errs[0].Message, "Paleo, Carnivore")
	})

	t.Run("unknown cuisine", func(t *testing.T) {
		req := validRequest()
		req.CuisinePreference = "Martian"

		errs := req.Validate()
		require.Len(t, errs, 1)
		assert.Contains(t, errs[0].Message, "Invalid cuisine preference: Martian")
	})

	t.Run("reports every problem at once", func(t *testing.T) {
		req := Request{SkillLevel: "Expert"}

		errs := req.Validate()
		assert.GreaterOrEqual(t, len(errs), 3)
	})
}
