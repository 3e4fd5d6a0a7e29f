package store

import (
	"maps"
	"slices"

	"github.com/mesh-intelligence/flatshare/pkg/types"
)

// find returns the first element matching match and its index, or nil, -1.
func find[T any](items []*T, match func(*T) bool) (*T, int) {
	for i, item := range items {
		if match(item) {
			return item, i
		}
	}
	return nil, -1
}

// findInHousehold is find limited to entities owned by household hid. An
// empty hid matches nothing.
func findInHousehold[T any](items []*T, hid string, owner func(*T) string, match func(*T) bool) (*T, int) {
	if hid == "" {
		return nil, -1
	}
	return find(items, func(item *T) bool { return owner(item) == hid && match(item) })
}

// removeAt deletes index i, keeping order.
func removeAt[T any](items []*T, i int) []*T {
	return slices.Delete(items, i, i+1)
}

// copyAll returns value copies of every element.
func copyAll[T any](items []*T, clone func(T) T) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		out = append(out, clone(*item))
	}
	return out
}

// copyWhere returns value copies of the elements matching keep.
func copyWhere[T any](items []*T, clone func(T) T, keep func(*T) bool) []T {
	out := []T{}
	for _, item := range items {
		if keep(item) {
			out = append(out, clone(*item))
		}
	}
	return out
}

// pointers turns values into owned pointers.
func pointers[T any](items []T, clone func(T) T) []*T {
	out := make([]*T, 0, len(items))
	for _, item := range items {
		c := clone(item)
		out = append(out, &c)
	}
	return out
}

func plain[T any](v T) T { return v }

func cloneUser(u types.User) types.User {
	u.Onboarding = slices.Clone(u.Onboarding)
	return u
}

func cloneHousehold(h types.Household) types.Household {
	h.Amenities = slices.Clone(h.Amenities)
	return h
}

func cloneTicket(t types.Ticket) types.Ticket {
	t.Options = slices.Clone(t.Options)
	t.Votes = maps.Clone(t.Votes)
	return t
}

func cloneRecipe(r types.Recipe) types.Recipe {
	r.Ingredients = slices.Clone(r.Ingredients)
	return r
}

func cloneReward(r types.RewardItem) types.RewardItem {
	r.RedeemedBy = slices.Clone(r.RedeemedBy)
	return r
}

func shoppingOwner(i *types.ShoppingItem) string { return i.HouseholdID }
func taskOwner(t *types.Task) string             { return t.HouseholdID }
func ticketOwner(t *types.Ticket) string         { return t.HouseholdID }
func eventOwner(e *types.CalendarEvent) string   { return e.HouseholdID }
func recipeOwner(r *types.Recipe) string         { return r.HouseholdID }
func slotOwner(m *types.MealPlanSlot) string     { return m.HouseholdID }
func vaultOwner(v *types.VaultItem) string       { return v.HouseholdID }
func rewardOwner(r *types.RewardItem) string     { return r.HouseholdID }
func costOwner(c *types.RecurringCost) string    { return c.HouseholdID }
func guestOwner(g *types.GuestPass) string       { return g.HouseholdID }
func sceneOwner(sc *types.SmartScene) string     { return sc.HouseholdID }
func pantryOwner(p *types.PantryItem) string     { return p.HouseholdID }
