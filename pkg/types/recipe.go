package types

import "strings"

// Recipe is a dish in the household cookbook.
type Recipe struct {
	ID           string   `json:"id"`
	HouseholdID  string   `json:"householdId"`
	Name         string   `json:"name"`
	Ingredients  []string `json:"ingredients"`
	Instructions string   `json:"instructions"`
	AddedBy      string   `json:"addedBy"`
}

// Weekday names a meal-plan day. Values are the lowercase keys used remotely.
type Weekday string

// Meal plan days in week order.
const (
	Monday    Weekday = "monday"
	Tuesday   Weekday = "tuesday"
	Wednesday Weekday = "wednesday"
	Thursday  Weekday = "thursday"
	Friday    Weekday = "friday"
	Saturday  Weekday = "saturday"
	Sunday    Weekday = "sunday"
)

// Weekdays lists the days in week order.
var Weekdays = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// ParseWeekday normalizes s to a Weekday. It reports false for unknown names.
func ParseWeekday(s string) (Weekday, bool) {
	d := Weekday(strings.ToLower(strings.TrimSpace(s)))
	for _, w := range Weekdays {
		if w == d {
			return d, true
		}
	}
	return "", false
}

// MealPlanSlot assigns a recipe and a cook to one day of the week. The slot is
// identified by Day, not by a generated ID.
type MealPlanSlot struct {
	Day         Weekday `json:"day"`
	HouseholdID string  `json:"householdId"`

	// RecipeID may reference a deleted recipe.
	RecipeID string `json:"recipeId"`
	Cook     string `json:"cook"`
}
