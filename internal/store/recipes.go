package store

import (
	"strings"

	"github.com/mesh-intelligence/flatshare/pkg/types"
)

// Recipes returns the current household's cookbook.
func (s *Store) Recipes() []types.Recipe {
	hid := s.householdID()
	return copyWhere(s.recipes, cloneRecipe, func(r *types.Recipe) bool { return hid != "" && r.HouseholdID == hid })
}

// AddRecipe adds a recipe. Blank ingredients are dropped.
func (s *Store) AddRecipe(name string, ingredients []string, instructions string) (types.Recipe, error) {
	h, err := s.currentHousehold()
	if err != nil {
		return types.Recipe{}, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return types.Recipe{}, types.ErrInvalidName
	}
	r := &types.Recipe{
		ID:           s.newID(),
		HouseholdID:  h.ID,
		Name:         name,
		Ingredients:  []string{},
		Instructions: instructions,
		AddedBy:      s.actor(),
	}
	for _, ing := range ingredients {
		if ing = strings.TrimSpace(ing); ing != "" {
			r.Ingredients = append(r.Ingredients, ing)
		}
	}
	s.recipes = append(s.recipes, r)
	s.upsert(r)
	return cloneRecipe(*r), nil
}

// RemoveRecipe deletes a recipe. Meal plan slots pointing at it are left
// dangling.
func (s *Store) RemoveRecipe(id string) bool {
	r, i := findInHousehold(s.recipes, s.householdID(), recipeOwner, func(r *types.Recipe) bool { return r.ID == id })
	if r == nil {
		return false
	}
	s.recipes = removeAt(s.recipes, i)
	s.remove(types.RecipesCollection, r.ID)
	return true
}

// MealPlan returns the current household's slots in week order.
func (s *Store) MealPlan() []types.MealPlanSlot {
	hid := s.householdID()
	out := []types.MealPlanSlot{}
	for _, day := range types.Weekdays {
		if slot := s.slot(day); slot != nil && hid != "" && slot.HouseholdID == hid {
			out = append(out, *slot)
		}
	}
	return out
}

func (s *Store) slot(day types.Weekday) *types.MealPlanSlot {
	slot, _ := find(s.mealPlan, func(m *types.MealPlanSlot) bool { return m.Day == day })
	return slot
}

// AssignMeal puts a recipe and cook on a day. Slots are keyed by day alone,
// so assigning replaces whatever the day held.
func (s *Store) AssignMeal(day types.Weekday, recipeID, cook string) (types.MealPlanSlot, error) {
	h, err := s.currentHousehold()
	if err != nil {
		return types.MealPlanSlot{}, err
	}
	d, ok := types.ParseWeekday(string(day))
	if !ok {
		return types.MealPlanSlot{}, types.ErrInvalidDay
	}

	slot := s.slot(d)
	if slot == nil {
		slot = &types.MealPlanSlot{Day: d}
		s.mealPlan = append(s.mealPlan, slot)
	}
	slot.HouseholdID = h.ID
	slot.RecipeID = recipeID
	slot.Cook = strings.TrimSpace(cook)
	s.upsert(slot)
	return *slot, nil
}

// ClearMeal empties a day.
func (s *Store) ClearMeal(day types.Weekday) bool {
	d, ok := types.ParseWeekday(string(day))
	if !ok {
		return false
	}
	slot, i := findInHousehold(s.mealPlan, s.householdID(), slotOwner, func(m *types.MealPlanSlot) bool { return m.Day == d })
	if slot == nil {
		return false
	}
	s.mealPlan = removeAt(s.mealPlan, i)
	s.remove(types.MealPlanCollection, string(d))
	return true
}

// MealFor resolves the recipe planned for day. A missing slot or a deleted
// recipe both report false.
func (s *Store) MealFor(day types.Weekday) (types.Recipe, bool) {
	d, ok := types.ParseWeekday(string(day))
	if !ok {
		return types.Recipe{}, false
	}
	slot := s.slot(d)
	if slot == nil || slot.HouseholdID != s.householdID() {
		return types.Recipe{}, false
	}
	r, _ := findInHousehold(s.recipes, slot.HouseholdID, recipeOwner, func(r *types.Recipe) bool { return r.ID == slot.RecipeID })
	if r == nil {
		return types.Recipe{}, false
	}
	return cloneRecipe(*r), true
}

// AddIngredientsToShopping lists each ingredient of a recipe as a pending
// item unless already pending. It returns the number of items added.
func (s *Store) AddIngredientsToShopping(recipeID string) int {
	h, err := s.currentHousehold()
	if err != nil {
		return 0
	}
	r, _ := findInHousehold(s.recipes, h.ID, recipeOwner, func(r *types.Recipe) bool { return r.ID == recipeID })
	if r == nil {
		return 0
	}
	added := 0
	for _, ing := range r.Ingredients {
		if s.hasPending(h.ID, ing) {
			continue
		}
		s.addShoppingItem(h.ID, ing, 0)
		added++
	}
	return added
}
