package services

// Built-in lookup tables for common first foods. Keys are written the way
// the UI lists them; NewFoodLookup normalizes on construction so logged
// names like "carrots" or "BANANA" still resolve.

var defaultCategories = map[string]Category{
	"Oatmeal":        CategoryCarbs,
	"Rice cereal":    CategoryCarbs,
	"Sweet potato":   CategoryCarbs,
	"Potato":         CategoryCarbs,
	"Pasta":          CategoryCarbs,
	"Bread":          CategoryCarbs,
	"Quinoa":         CategoryCarbs,
	"Chicken":        CategoryProtein,
	"Beef":           CategoryProtein,
	"Lentils":        CategoryProtein,
	"Beans":          CategoryProtein,
	"Egg":            CategoryProtein,
	"Salmon":         CategoryProtein,
	"Tofu":           CategoryProtein,
	"Turkey":         CategoryProtein,
	"Banana":         CategoryFruitVeg,
	"Avocado":        CategoryFruitVeg,
	"Carrot":         CategoryFruitVeg,
	"Pea":            CategoryFruitVeg,
	"Apple":          CategoryFruitVeg,
	"Pear":           CategoryFruitVeg,
	"Broccoli":       CategoryFruitVeg,
	"Spinach":        CategoryFruitVeg,
	"Blueberry":      CategoryFruitVeg,
	"Strawberry":     CategoryFruitVeg,
	"Mango":          CategoryFruitVeg,
	"Pumpkin":        CategoryFruitVeg,
	"Zucchini":       CategoryFruitVeg,
	"Yogurt":         CategoryDairy,
	"Cheese":         CategoryDairy,
	"Cottage cheese": CategoryDairy,
}

var defaultColors = map[string]string{
	"Banana":       "yellow",
	"Mango":        "yellow",
	"Sweet potato": "orange",
	"Carrot":       "orange",
	"Pumpkin":      "orange",
	"Avocado":      "green",
	"Pea":          "green",
	"Broccoli":     "green",
	"Spinach":      "green",
	"Zucchini":     "green",
	"Apple":        "red",
	"Strawberry":   "red",
	"Blueberry":    "purple",
	"Potato":       "white",
	"Cauliflower":  "white",
}

var defaultNutrients = map[string][]string{
	"Oatmeal":        {"Iron"},
	"Rice cereal":    {"Iron"},
	"Lentils":        {"Iron", "Protein"},
	"Beans":          {"Iron", "Protein"},
	"Beef":           {"Iron", "Protein"},
	"Chicken":        {"Protein"},
	"Turkey":         {"Protein"},
	"Tofu":           {"Calcium", "Protein"},
	"Egg":            {"Protein", "Omega-3"},
	"Salmon":         {"Omega-3", "Protein"},
	"Yogurt":         {"Calcium", "Protein"},
	"Cheese":         {"Calcium", "Protein"},
	"Cottage cheese": {"Calcium", "Protein"},
	"Spinach":        {"Iron", "Vitamin C"},
	"Broccoli":       {"Vitamin C", "Calcium"},
	"Strawberry":     {"Vitamin C"},
	"Blueberry":      {"Vitamin C"},
	"Apple":          {"Vitamin C"},
	"Mango":          {"Vitamin C"},
	"Pea":            {"Protein", "Vitamin C"},
	"Sweet potato":   {"Vitamin C"},
}

// DefaultFoodLookup returns the built-in tables, normalized.
func DefaultFoodLookup() FoodLookup {
	return NewFoodLookup(defaultCategories, defaultColors, defaultNutrients)
}
