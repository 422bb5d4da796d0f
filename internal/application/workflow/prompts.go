package workflow

import (
	"fmt"
	"strings"

	"github.com/mealforge/v1/internal/domain/recipe"
	"github.com/mealforge/v1/internal/domain/workflow"
)

// Prompt builders for every generation call the pipeline issues. Kept
// together so the full conversational surface is reviewable in one place.

const draftSystemPrompt = `You are a professional chef and nutritionist.
Provide detailed, accurate recipe information in the requested JSON format.
Always include COMPLETE step-by-step instructions - never truncate or abbreviate them.`

func draftUserPrompt(req workflow.Request, ingredients []string) string {
	return fmt.Sprintf(`Create a complete recipe analysis for the following ingredients and preferences:

Ingredients: %s
Appliances: %s
Skill Level: %s
Dietary Restrictions: %s
Cuisine Preference: %s

Provide a comprehensive response in JSON format with the following structure:
{
    "recipe": {
        "name": "Recipe Name",
        "description": "Brief description",
        "emoji_representation": "🍽️",
        "prep_time": 15,
        "cook_time": 30,
        "total_time": 45,
        "servings": 4,
        "difficulty": "Medium",
        "cuisine_type": "Italian",
        "appliance_used": "Oven",
        "ingredients": ["ingredient with measurement", "..."],
        "instructions": ["step 1 - be very detailed", "step 2 - include timing", "... continue with ALL steps needed"],
        "tips": ["cooking tip 1", "tip 2", "..."],
        "variations": ["variation 1", "variation 2"],
        "storage_instructions": "How to store leftovers"
    },
    "nutrition": {
        "calories_per_serving": 350,
        "protein_g": 25.5,
        "carbs_g": 30.2,
        "fat_g": 12.8,
        "fiber_g": 5.2,
        "sodium_mg": 450,
        "sugar_g": 8.1,
        "key_nutrients": ["High in protein", "Good source of fiber"],
        "health_benefits": ["benefit 1", "benefit 2"]
    },
    "shopping_list": ["item 1", "item 2", "..."]
}

Make sure the recipe:
1. Uses primarily the provided ingredients
2. Is appropriate for the specified skill level
3. Respects dietary restrictions
4. Uses the available cooking appliances
5. Follows the cuisine preference when possible
6. Includes accurate nutritional estimates
7. Provides a practical shopping list for missing ingredients
8. CRITICAL: Ensures ALL ingredients are properly cooked - especially
   lentils, beans, grains, raw meats, and root vegetables
9. CRITICAL: Instructions must be COMPLETE, with timing, temperatures, and
   preparation details for every step

IMPORTANT: Provide COMPLETE step-by-step instructions. Do not abbreviate or summarize.`,
		strings.Join(ingredients, ", "),
		strings.Join(req.AvailableAppliances, ", "),
		req.SkillLevel,
		strings.Join(req.DietaryRestrictions, ", "),
		req.CuisinePreference,
	)
}

const tipsSystemPrompt = `You are an experienced cooking instructor. Give practical, specific tips.`

func tipsUserPrompt(state *workflow.State) string {
	applianceLine := fmt.Sprintf("%s (Available: %s)",
		state.Request.Appliance,
		strings.Join(state.Request.AvailableAppliances, ", "))

	return fmt.Sprintf(`Generate helpful cooking tips for:
Recipe: %s - %s
Available appliances: %s
Skill level: %s

Focus on:
- Technique tips specific to the available appliances
- How to use multiple appliances effectively if applicable
- Timing and temperature guidance
- Common mistakes to avoid
- Safety considerations
- Tips for the user's skill level

Provide 5-8 practical tips as a numbered list.`,
		draftName(state),
		draftDescription(state),
		applianceLine,
		state.Request.SkillLevel,
	)
}

const enhancementSystemPrompt = `You are a professional chef. Respond with ONLY a JSON array of strings.`

func enhancementUserPrompt(state *workflow.State, contextBlock string) string {
	currentTips := "None yet"
	if len(state.CookingTips) > 0 {
		currentTips = strings.Join(state.CookingTips, ", ")
	}

	return fmt.Sprintf(`Based on the following online search results about cooking techniques and tips:

%s

And the current recipe context:
- Recipe: %s
- Ingredients: %s
- Appliances: %s
- Current tips: %s

Generate 3-5 enhanced cooking tips that incorporate insights from the search results.
Focus on:
1. Professional cooking techniques
2. Ingredient-specific handling tips
3. Appliance optimization
4. Common mistakes to avoid
5. Quality improvements

Format as a JSON list of strings, each tip should be concise and actionable.`,
		contextBlock,
		draftName(state),
		strings.Join(state.Request.Ingredients, ", "),
		strings.Join(state.Request.AvailableAppliances, ", "),
		currentTips,
	)
}

const compileSystemPrompt = `You are an expert recipe writer.

CRITICAL: You must respond with ONLY a valid JSON object in the exact format shown below. Do not include any explanatory text, markdown formatting, or other content outside the JSON.

Required JSON format:
{
  "name": "Recipe Name",
  "description": "Brief description of the dish",
  "emoji_representation": "🍝",
  "prep_time": 15,
  "cook_time": 30,
  "total_time": 45,
  "servings": 4,
  "difficulty": "Medium",
  "cuisine_type": "Italian",
  "appliance_used": "Oven",
  "ingredients": ["ingredient with precise measurement", "..."],
  "instructions": ["Step 1: Detailed instruction", "Step 2: Next step", "..."],
  "tips": ["tip 1", "tip 2"],
  "variations": ["variation 1", "variation 2"],
  "storage_instructions": "How to store leftovers",
  "nutrition": {
    "calories_per_serving": 350,
    "protein_g": 25.0,
    "carbs_g": 30.0,
    "fat_g": 15.0,
    "fiber_g": 5.0,
    "sodium_mg": 450,
    "sugar_g": 8.0,
    "key_nutrients": ["..."],
    "health_benefits": ["..."]
  }
}

IMPORTANT: For the 'appliance_used' field, provide ONLY the primary appliance as a single string (e.g., "Oven" or "Stovetop"), not a list.`

func compileUserPrompt(state *workflow.State) string {
	return fmt.Sprintf(`Create a complete, detailed recipe using:
Selected recipe: %s - %s
Available ingredients: %s
Nutrition info: %s
Cooking tips: %s
Available appliances: %s (primary: %s)

Create a comprehensive recipe with:
- Clear, step-by-step instructions
- Precise ingredient measurements
- Detailed cooking techniques using available appliances
- Instructions for using multiple appliances if beneficial
- Storage instructions
- Fun emoji representation
- Recipe variations

Make it engaging and easy to follow!`,
		draftName(state),
		draftDescription(state),
		strings.Join(state.ParsedIngredients, ", "),
		nutritionSummary(state.Nutrition),
		strings.Join(state.CookingTips, "; "),
		strings.Join(state.Request.AvailableAppliances, ", "),
		state.Request.Appliance,
	)
}

const completionSystemPrompt = `You are a professional chef. Provide complete, detailed cooking instructions. Never truncate or abbreviate steps.`

func completionUserPrompt(rec *recipe.Recipe) string {
	return fmt.Sprintf(`The following recipe has incomplete or truncated instructions. Please provide COMPLETE, detailed step-by-step instructions.

Recipe: %s
Ingredients: %s
Current Instructions: %s

Please provide complete, detailed cooking instructions in JSON format:
{
    "complete_instructions": [
        "Step 1: Detailed preparation step with timing",
        "Step 2: Detailed cooking step with temperature and timing",
        "Step 3: Continue with ALL necessary steps",
        "... include every step needed from start to finish"
    ]
}

Make sure to include:
- All preparation steps (washing, chopping, seasoning)
- Proper cooking steps with times and temperatures
- Any resting, cooling, or finishing steps
- Serving suggestions

Focus especially on ensuring ingredients like lentils, grains, and proteins are properly cooked.`,
		rec.Name,
		strings.Join(rec.Ingredients, ", "),
		strings.Join(rec.Instructions, " | "),
	)
}

func draftName(state *workflow.State) string {
	if state.DraftRecipe != nil && state.DraftRecipe.Name != "" {
		return state.DraftRecipe.Name
	}
	return "Unknown Recipe"
}

func draftDescription(state *workflow.State) string {
	if state.DraftRecipe != nil {
		return state.DraftRecipe.Description
	}
	return ""
}

func nutritionSummary(n *recipe.NutritionInfo) string {
	if n == nil {
		return "not available"
	}
	return fmt.Sprintf("%d kcal/serving, %.1fg protein, %.1fg carbs, %.1fg fat",
		n.CaloriesPerServing, n.ProteinG, n.CarbsG, n.FatG)
}
