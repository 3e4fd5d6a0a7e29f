package store

import (
	"strings"
	"time"

	"github.com/mesh-intelligence/flatshare/pkg/types"
)

// Seed ids are fixed so a seeded remote can be recognized and diffed.
const (
	SeedHouseholdID = "seed-household-sunny"
	SeedJoinCode    = "SUNNY"

	SeedAnnaID = "seed-user-anna"
	SeedMaxID  = "seed-user-max"
	SeedTomID  = "seed-user-tom"
	SeedRootID = "seed-user-root"
)

// SeedMockData replaces every collection with the first-run dataset and
// clears the session. It does not mirror; the caller decides whether to push.
func (s *Store) SeedMockData() {
	s.session = Session{}
	s.Replace(mockSnapshot(s.now()))
	s.logger.Info("seeded mock data")
}

// mockSnapshot builds the first-run dataset. Timestamps are relative to the
// day of now; everything else is fixed.
func mockSnapshot(now time.Time) types.Snapshot {
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	at := func(days, hour int) time.Time { return day.AddDate(0, 0, days).Add(time.Duration(hour) * time.Hour) }
	hid := SeedHouseholdID

	completed := func(n int) []types.OnboardingItem {
		items := types.NewOnboarding()
		for i := 0; i < n && i < len(items); i++ {
			items[i].Completed = true
		}
		return items
	}
	user := func(id, name, role string, points, steps int) types.User {
		return types.User{
			ID:                  id,
			Name:                name,
			Email:               strings.ToLower(name) + "@flat.test",
			Password:            strings.ToLower(name),
			Role:                types.Role(role),
			Points:              points,
			Onboarding:          completed(steps),
			OnboardingCompleted: steps >= len(types.OnboardingSteps),
			CreatedAt:           at(-30, 9),
		}
	}

	anna := user(SeedAnnaID, "Anna", string(types.RoleAdmin), 180, 5)
	anna.SetHousehold(hid)
	maxU := user(SeedMaxID, "Max", string(types.RoleMember), 95, 3)
	maxU.SetHousehold(hid)
	tom := user(SeedTomID, "Tom", string(types.RoleMember), 40, 1)
	tom.SetHousehold(hid)
	root := user(SeedRootID, "Root", string(types.RoleSuperAdmin), 0, 5)
	root.SetHousehold("")

	return types.Snapshot{
		Users: []types.User{anna, maxU, tom, root},
		Households: []types.Household{{
			ID:            hid,
			Name:          "Sunny Side",
			Address:       "Sonnenallee 12, Berlin",
			JoinCode:      SeedJoinCode,
			MonthlyBudget: 600,
			Rules:         "Quiet hours 22:00-07:00. Dishes within a day. Label your food.",
			Amenities:     []string{"balcony", "dishwasher", "washing machine"},
			CreatedAt:     at(-30, 9),
		}},
		Shopping: []types.ShoppingItem{
			{ID: "seed-shop-milk", HouseholdID: hid, Name: "Oat milk", Price: 1.29, Status: types.ShoppingPending, AddedBy: "Max", CreatedAt: at(-1, 18)},
			{ID: "seed-shop-coffee", HouseholdID: hid, Name: "Coffee", Price: 8.99, Status: types.ShoppingBought, AddedBy: "Tom", BoughtBy: "Anna", CreatedAt: at(-3, 8)},
			{ID: "seed-shop-detergent", HouseholdID: hid, Name: "Detergent", Price: 5.49, Status: types.ShoppingBought, AddedBy: "Anna", BoughtBy: "Max", CreatedAt: at(-2, 12)},
			{ID: "seed-shop-bread", HouseholdID: hid, Name: "Bread", Price: 2.5, Status: types.ShoppingPending, AddedBy: "Anna", CreatedAt: at(0, 7)},
		},
		Tasks: []types.Task{
			{ID: "seed-task-dishes", HouseholdID: hid, Title: "Dishes", AssignedTo: "Anna", Points: 10, CreatedAt: at(-14, 9)},
			{ID: "seed-task-trash", HouseholdID: hid, Title: "Take out trash", AssignedTo: "Max", Completed: true, Streak: 2, Points: 5, CreatedAt: at(-14, 9)},
			{ID: "seed-task-bathroom", HouseholdID: hid, Title: "Clean bathroom", AssignedTo: "Tom", Points: 15, CreatedAt: at(-14, 9)},
		},
		Tickets: []types.Ticket{
			{ID: "seed-ticket-music", HouseholdID: hid, Type: types.TicketComplaint, Title: "Loud music after midnight", Body: "Please use headphones on weeknights.", Author: "Max", CreatedAt: at(-4, 23)},
			{ID: "seed-ticket-kudos", HouseholdID: hid, Type: types.TicketKudos, Title: "Kudos for Tom", Body: "Thanks for fixing the shelf!", Author: "Anna", Target: "Tom", CreatedAt: at(-2, 19)},
			{
				ID: "seed-ticket-dinner", HouseholdID: hid, Type: types.TicketPoll, Title: "Friday dinner?", Author: "Anna",
				Options: []string{"Pizza", "Sushi", "Curry"}, Votes: map[string]string{"Anna": "Pizza"}, CreatedAt: at(-1, 12),
			},
		},
		Events: []types.CalendarEvent{
			{ID: "seed-event-cleaning", HouseholdID: hid, Title: "Big cleaning day", Type: types.EventCleaning, Start: at(2, 10), CreatedBy: "Anna"},
			{ID: "seed-event-party", HouseholdID: hid, Title: "Housewarming", Type: types.EventParty, Start: at(5, 20), CreatedBy: "Max"},
		},
		Recipes: []types.Recipe{
			{ID: "seed-recipe-pasta", HouseholdID: hid, Name: "Pasta Arrabbiata", Ingredients: []string{"Pasta", "Tomatoes", "Chili", "Garlic"}, Instructions: "Cook pasta. Simmer sauce. Combine.", AddedBy: "Anna"},
			{ID: "seed-recipe-curry", HouseholdID: hid, Name: "Veggie Curry", Ingredients: []string{"Rice", "Coconut milk", "Curry paste", "Vegetables"}, Instructions: "Fry paste, add vegetables and coconut milk, serve with rice.", AddedBy: "Tom"},
		},
		MealPlan: []types.MealPlanSlot{
			{Day: types.Monday, HouseholdID: hid, RecipeID: "seed-recipe-pasta", Cook: "Anna"},
			{Day: types.Wednesday, HouseholdID: hid, RecipeID: "seed-recipe-curry", Cook: "Tom"},
		},
		Vault: []types.VaultItem{
			{ID: "seed-vault-wifi", HouseholdID: hid, Kind: types.VaultWifi, Label: "Wi-Fi", Secret: "sunny-side-42"},
			{ID: "seed-vault-door", HouseholdID: hid, Kind: types.VaultDoorCode, Label: "Front door", Secret: "4711"},
		},
		Rewards: []types.RewardItem{
			{ID: "seed-reward-skip", HouseholdID: hid, Title: "Skip one chore", Cost: 50, RedeemedBy: []string{}},
			{ID: "seed-reward-movie", HouseholdID: hid, Title: "Pick the movie night film", Cost: 30, RedeemedBy: []string{"Max"}},
		},
		JoinRequests: []types.JoinRequest{},
		RecurringCosts: []types.RecurringCost{
			{ID: "seed-cost-rent", HouseholdID: hid, Name: "Rent", Amount: 1500, IsActive: true},
			{ID: "seed-cost-internet", HouseholdID: hid, Name: "Internet", Amount: 39.99, IsActive: true},
			{ID: "seed-cost-streaming", HouseholdID: hid, Name: "Streaming", Amount: 12.99, IsActive: false},
		},
		GuestPasses: []types.GuestPass{
			{ID: "seed-guest-lea", HouseholdID: hid, GuestName: "Lea", WifiPassword: "sunny-side-42", ValidUntil: at(3, 12), Status: types.GuestActive, CreatedBy: "Max"},
		},
		Scenes: []types.SmartScene{
			{ID: "seed-scene-movie", HouseholdID: hid, Name: "Movie night"},
			{ID: "seed-scene-morning", HouseholdID: hid, Name: "Good morning"},
		},
		Pantry: []types.PantryItem{
			{ID: "seed-pantry-salt", HouseholdID: hid, Name: "Salt", Quantity: 1, Status: types.PantryStocked},
			{ID: "seed-pantry-oil", HouseholdID: hid, Name: "Olive oil", Quantity: 1, Status: types.PantryLow},
			{ID: "seed-pantry-beans", HouseholdID: hid, Name: "Coffee beans", Quantity: 2, Status: types.PantryStocked},
		},
	}
}
