package workflow

import (
	"fmt"
	"strings"

	"github.com/mealforge/v1/internal/domain/recipe"
	"github.com/mealforge/v1/pkg/errors"
)

// Request is the validated preferences-and-ingredients input that starts a
// run. It is embedded in State and immutable once the run begins.
type Request struct {
	Ingredients         []string `json:"ingredients"`
	Appliance           string   `json:"appliance"`
	AvailableAppliances []string `json:"available_appliances"`
	DietaryRestrictions []string `json:"dietary_restrictions"`
	CuisinePreference   string   `json:"cuisine_preference"`
	SkillLevel          string   `json:"skill_level"`
}

// Normalize trims and deduplicates the ingredient list, drops empties, and
// applies defaults for the cuisine preference and primary appliance.
func (r *Request) Normalize() {
	seen := make(map[string]struct{}, len(r.Ingredients))
	cleaned := make([]string, 0, len(r.Ingredients))
	for _, ing := range r.Ingredients {
		ing = strings.TrimSpace(ing)
		if ing == "" {
			continue
		}
		if _, dup := seen[ing]; dup {
			continue
		}
		seen[ing] = struct{}{}
		cleaned = append(cleaned, ing)
	}
	r.Ingredients = cleaned

	if r.CuisinePreference == "" {
		r.CuisinePreference = recipe.DefaultCuisine
	}
	if r.Appliance == "" && len(r.AvailableAppliances) > 0 {
		r.Appliance = r.AvailableAppliances[0]
	}
	if r.DietaryRestrictions == nil {
		r.DietaryRestrictions = []string{}
	}
}

// Validate checks the request against the static catalogs. It returns every
// problem found as a human-readable message; the workflow must not be invoked
// when any are present.
func (r Request) Validate() errors.ValidationErrors {
	var errs errors.ValidationErrors

	if len(r.Ingredients) == 0 {
		errs = append(errs, errors.ValidationError{
			Field:   "ingredients",
			Message: "Please select at least one ingredient.",
		})
	} else if len(r.Ingredients) > recipe.MaxIngredients {
		errs = append(errs, errors.ValidationError{
			Field:   "ingredients",
			Value:   len(r.Ingredients),
			Message: fmt.Sprintf("Too many ingredients selected (maximum %d).", recipe.MaxIngredients),
		})
	}

	if len(r.AvailableAppliances) == 0 {
		errs = append(errs, errors.ValidationError{
			Field:   "available_appliances",
			Message: "Please select at least one cooking appliance.",
		})
	}
	for _, appliance := range r.AvailableAppliances {
		if !recipe.IsSupportedAppliance(appliance) {
			errs = append(errs, errors.ValidationError{
				Field:   "available_appliances",
				Value:   appliance,
				Message: fmt.Sprintf("Invalid appliance: %s", appliance),
			})
		}
	}
	if r.Appliance != "" && !recipe.IsSupportedAppliance(r.Appliance) {
		errs = append(errs, errors.ValidationError{
			Field:   "appliance",
			Value:   r.Appliance,
			Message: fmt.Sprintf("Invalid appliance: %s", r.Appliance),
		})
	}

	if !recipe.IsSupportedSkillLevel(r.SkillLevel) {
		errs = append(errs, errors.ValidationError{
			Field:   "skill_level",
			Value:   r.SkillLevel,
			Message: fmt.Sprintf("Invalid skill level. Must be one of: %s", strings.Join(recipe.SupportedSkillLevels, ", ")),
		})
	}

	var invalidRestrictions []string
	for _, tag := range r.DietaryRestrictions {
		if !recipe.IsSupportedDietaryRestriction(tag) {
			invalidRestrictions = append(invalidRestrictions, tag)
		}
	}
	if len(invalidRestrictions) > 0 {
		errs = append(errs, errors.ValidationError{
			Field:   "dietary_restrictions",
			Value:   invalidRestrictions,
			Message: fmt.Sprintf("Invalid dietary restrictions: %s", strings.Join(invalidRestrictions, ", ")),
		})
	}

	if r.CuisinePreference != "" && !recipe.IsSupportedCuisine(r.CuisinePreference) {
		errs = append(errs, errors.ValidationError{
			Field:   "cuisine_preference",
			Value:   r.CuisinePreference,
			Message: fmt.Sprintf("Invalid cuisine preference: %s", r.CuisinePreference),
		})
	}

	return errs
}
