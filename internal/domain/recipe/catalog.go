package recipe

// Static catalogs backing request validation and the form UI. Pure data.

// SupportedAppliances lists the cooking appliances a request may name.
var SupportedAppliances = []string{
	"Oven",
	"Stovetop",
	"Microwave",
	"Air Fryer",
	"Slow Cooker",
	"Pressure Cooker",
	"Grill",
	"Toaster",
	"Food Processor",
	"Blender",
}

// SupportedSkillLevels lists the accepted cooking skill levels.
var SupportedSkillLevels = []string{
	"Beginner",
	"Intermediate",
	"Advanced",
}

// SupportedDietaryRestrictions lists the accepted dietary restriction tags.
var SupportedDietaryRestrictions = []string{
	"Vegetarian",
	"Vegan",
	"Gluten-Free",
	"Dairy-Free",
	"Keto",
	"Low-Carb",
	"Low-Sodium",
	"Nut-Free",
	"Egg-Free",
	"Soy-Free",
}

// SupportedCuisines lists the accepted cuisine preferences. "Any" is the
// default and must stay first.
var SupportedCuisines = []string{
	"Any",
	"Italian",
	"Mexican",
	"Asian",
	"American",
	"Mediterranean",
	"Indian",
	"Thai",
	"French",
	"Middle Eastern",
	"Japanese",
	"Chinese",
	"Korean",
	"Greek",
	"Spanish",
}

// DefaultCuisine is used when a request leaves the cuisine preference empty.
const DefaultCuisine = "Any"

// MaxIngredients is the soft cap on the inbound ingredient list.
const MaxIngredients = 50

// CommonIngredients groups typical kitchen ingredients by category for the
// ingredient-picker UI.
var CommonIngredients = map[string][]string{
	"proteins": {
		"Chicken", "Eggs", "Salmon", "Tuna", "Tofu",
		"Beans", "Lentils", "Chickpeas", "Cheese", "Greek yogurt",
		"Shrimp", "Turkey", "Pork", "Cottage cheese",
	},
	"vegetables": {
		"Tomatoes", "Onions", "Garlic", "Bell peppers", "Spinach", "Broccoli",
		"Carrots", "Mushrooms", "Zucchini", "Potatoes", "Sweet potatoes",
		"Avocado", "Cucumber", "Lettuce", "Celery", "Corn", "Green beans", "Limes",
	},
	"grains_starches": {
		"Rice", "Pasta", "Bread", "Quinoa", "Oats", "Flour", "Noodles",
		"Barley",
	},
	"dairy": {
		"Milk", "Heavy cream", "Butter", "Cream cheese", "Mozzarella",
		"Parmesan", "Cheddar", "Almond milk", "Coconut milk", "Sour cream",
		"Ricotta", "Feta", "Goat cheese",
	},
	"herbs_spices": {
		"Basil", "Oregano", "Thyme", "Rosemary", "Parsley", "Cilantro",
		"Garlic powder", "Paprika", "Cumin", "Black pepper",
		"Chili powder", "Cinnamon", "Ginger", "Turmeric", "Bay leaves",
	},
	"pantry": {
		"Salt", "Olive oil", "Vegetable oil", "Soy sauce", "Vinegar", "Honey",
		"Sugar", "Canned tomatoes", "Coconut oil", "Vanilla extract",
	},
}

// IsSupportedAppliance reports whether name is in the appliance catalog.
func IsSupportedAppliance(name string) bool {
	return containsString(SupportedAppliances, name)
}

// IsSupportedSkillLevel reports whether level is in the skill catalog.
func IsSupportedSkillLevel(level string) bool {
	return containsString(SupportedSkillLevels, level)
}

// IsSupportedDietaryRestriction reports whether tag is in the dietary catalog.
func IsSupportedDietaryRestriction(tag string) bool {
	return containsString(SupportedDietaryRestrictions, tag)
}

// IsSupportedCuisine reports whether cuisine is in the cuisine catalog.
func IsSupportedCuisine(cuisine string) bool {
	return containsString(SupportedCuisines, cuisine)
}

func containsString(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
