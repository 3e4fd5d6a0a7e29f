package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/flatshare/pkg/types"
)

func TestOperationsNeedSessionAndHousehold(t *testing.T) {
	s, _ := newTestStore(t)
	_, err := s.AddShoppingItem("Milk", 1)
	assert.ErrorIs(t, err, types.ErrNoSession)

	_, ok := s.Register("Lena", "lena@flat.test", "pw")
	require.True(t, ok)
	_, err = s.AddShoppingItem("Milk", 1)
	assert.ErrorIs(t, err, types.ErrNoHousehold)
	_, err = s.AddTask("Dishes", "Lena", 1)
	assert.ErrorIs(t, err, types.ErrNoHousehold)
	assert.ErrorIs(t, s.UpdateBudget(10), types.ErrNoHousehold)
	assert.Empty(t, s.ShoppingItems())
}

func TestShoppingValidation(t *testing.T) {
	s, _ := householdStore(t, "Anna")
	_, err := s.AddShoppingItem("", 1)
	assert.ErrorIs(t, err, types.ErrInvalidName)
	_, err = s.AddShoppingItem("Milk", -0.5)
	assert.ErrorIs(t, err, types.ErrInvalidPrice)

	item, err := s.AddShoppingItem("Milk", 0)
	require.NoError(t, err)
	assert.Equal(t, "Anna", item.AddedBy)
	assert.Equal(t, types.ShoppingPending, item.Status)

	require.True(t, s.MarkBought(item.ID))
	assert.False(t, s.MarkBought(item.ID), "already bought")
	assert.True(t, s.RemoveShoppingItem(item.ID))
	assert.False(t, s.RemoveShoppingItem(item.ID))
}

func TestHouseholdIsolation(t *testing.T) {
	s, m := householdStore(t, "Anna")
	item, err := s.AddShoppingItem("Milk", 1)
	require.NoError(t, err)
	task, err := s.AddTask("Dishes", "Anna", 5)
	require.NoError(t, err)
	poll, err := s.CreatePoll("Pizza?", []string{"yes", "no"})
	require.NoError(t, err)
	scene, err := s.AddScene("Movie night")
	require.NoError(t, err)
	pantry, err := s.AddPantryItem("Rice", 2)
	require.NoError(t, err)
	cost, err := s.AddRecurringCost("Internet", 40)
	require.NoError(t, err)
	secret, err := s.AddVaultItem(types.VaultWifi, "Wi-Fi", "pw")
	require.NoError(t, err)
	event, err := s.AddEvent("Party", types.EventParty, testNow.Add(time.Hour))
	require.NoError(t, err)
	recipe, err := s.AddRecipe("Soup", []string{"Leek"}, "")
	require.NoError(t, err)
	_, err = s.AssignMeal(types.Monday, recipe.ID, "Anna")
	require.NoError(t, err)
	pass, err := s.CreateGuestPass("Bob", testNow.Add(time.Hour), "")
	require.NoError(t, err)
	reward, err := s.AddReward("Skip dishes", 0)
	require.NoError(t, err)

	_, ok := s.Register("Lena", "lena@flat.test", "pw")
	require.True(t, ok)
	s.CreateHousehold("Other Place", "")
	assert.Empty(t, s.ShoppingItems())
	assert.Len(t, s.Members(), 1)

	m.reset()
	assert.False(t, s.MarkBought(item.ID))
	assert.False(t, s.RemoveShoppingItem(item.ID))
	assert.False(t, s.ToggleTask(task.ID))
	assert.False(t, s.RemoveTask(task.ID))
	assert.False(t, s.Vote(poll.ID, "yes"))
	assert.False(t, s.ResolveTicket(poll.ID))
	_, ok = s.ToggleScene(scene.ID)
	assert.False(t, ok)
	assert.False(t, s.SetPantryStatus(pantry.ID, types.PantryOut))
	assert.False(t, s.RemovePantryItem(pantry.ID))
	assert.False(t, s.ToggleRecurringCost(cost.ID))
	assert.False(t, s.RemoveRecurringCost(cost.ID))
	assert.False(t, s.RemoveVaultItem(secret.ID))
	assert.False(t, s.RemoveEvent(event.ID))
	assert.Zero(t, s.AddIngredientsToShopping(recipe.ID))
	assert.False(t, s.RemoveRecipe(recipe.ID))
	assert.False(t, s.ClearMeal(types.Monday))
	assert.False(t, s.RevokeGuestPass(pass.ID))
	assert.False(t, s.RedeemReward(reward.ID))
	assert.Empty(t, m.upserts)
	assert.Empty(t, m.removes)

	loginAs(t, s, "Anna")
	items := s.ShoppingItems()
	require.Len(t, items, 1)
	assert.Equal(t, types.ShoppingPending, items[0].Status)
	assert.Len(t, s.Tasks(), 1)
	assert.Len(t, s.MealPlan(), 1)
	assert.Equal(t, "pw", s.WifiPassword())
}

func TestGiveKudos(t *testing.T) {
	s, m := householdStore(t, "Anna", "Max")

	ticket, err := s.GiveKudos("Max", "Thanks for the groceries")
	require.NoError(t, err)
	assert.Equal(t, types.TicketKudos, ticket.Type)
	assert.Equal(t, "Kudos for Max", ticket.Title)
	assert.Equal(t, "Max", ticket.Target)
	assert.Equal(t, "Anna", ticket.Author)
	maxU, _ := s.User(userID("Max"))
	assert.Equal(t, KudosPoints, maxU.Points)
	assert.Equal(t, []string{"tickets/" + ticket.ID, "users/" + userID("Max")}, m.upserts)
	assert.Equal(t, "Anna gave kudos to Max", s.Log()[0].Message)

	m.reset()
	_, err = s.GiveKudos("Stranger", "")
	require.NoError(t, err)
	assert.Len(t, m.upserts, 1, "non-members gain nothing")
	assert.Len(t, s.Tickets(), 2)

	_, err = s.GiveKudos(" ", "")
	assert.ErrorIs(t, err, types.ErrInvalidName)
}

func TestPollVoting(t *testing.T) {
	s, _ := householdStore(t, "Anna", "Max")

	_, err := s.CreatePoll("Dinner", []string{"Pizza", " Pizza ", ""})
	assert.ErrorIs(t, err, types.ErrInvalidOptions)

	poll, err := s.CreatePoll("Dinner", []string{"Pizza", " Pizza ", "Sushi", ""})
	require.NoError(t, err)
	assert.Equal(t, []string{"Pizza", "Sushi"}, poll.Options)

	assert.True(t, s.Vote(poll.ID, "Pizza"))
	assert.True(t, s.Vote(poll.ID, "Sushi"), "changing a vote")
	assert.False(t, s.Vote(poll.ID, "Tacos"))
	loginAs(t, s, "Max")
	assert.True(t, s.Vote(poll.ID, "Sushi"))

	tickets := s.Tickets()
	require.Len(t, tickets, 1)
	assert.Equal(t, map[string]string{"Anna": "Sushi", "Max": "Sushi"}, tickets[0].Votes)

	complaint, err := s.CreateTicket(types.TicketComplaint, "Noise", "")
	require.NoError(t, err)
	assert.False(t, s.Vote(complaint.ID, "Pizza"), "not a poll")

	require.True(t, s.ResolveTicket(poll.ID))
	assert.False(t, s.ResolveTicket(poll.ID))
	assert.False(t, s.Vote(poll.ID, "Pizza"), "resolved")
}

func TestRedeemReward(t *testing.T) {
	s, _ := householdStore(t, "Anna")
	reward, err := s.AddReward("Skip a chore", 50)
	require.NoError(t, err)

	assert.False(t, s.RedeemReward(reward.ID), "cannot afford")
	require.True(t, s.AwardPoints(userID("Anna"), 60))
	require.True(t, s.RedeemReward(reward.ID))

	u, _ := s.CurrentUser()
	assert.Equal(t, 10, u.Points)
	assert.Equal(t, []string{"Anna"}, s.Rewards()[0].RedeemedBy)
	assert.False(t, s.RedeemReward("missing"))
}

func TestJoinRequestFlow(t *testing.T) {
	s, _ := householdStore(t, "Anna")

	_, ok := s.Register("Lena", "lena@flat.test", "pw")
	require.True(t, ok)

	_, ok = s.RequestToJoin("NOPE")
	assert.False(t, ok)
	req, ok := s.RequestToJoin("sunny")
	require.True(t, ok)
	assert.Equal(t, types.JoinPending, req.Status)
	_, ok = s.RequestToJoin("SUNNY")
	assert.False(t, ok, "duplicate pending request")

	loginAs(t, s, "Anna")
	pending := s.PendingJoinRequests()
	require.Len(t, pending, 1)
	require.True(t, s.ApproveJoinRequest(pending[0].ID))
	assert.False(t, s.ApproveJoinRequest(pending[0].ID))
	assert.Empty(t, s.PendingJoinRequests())

	lena, ok := s.UserByEmail("lena@flat.test")
	require.True(t, ok)
	assert.Equal(t, "h1", lena.HouseholdID)
	assert.True(t, lena.HasHousehold)
	assert.True(t, lena.Onboarding[1].Completed)
	assert.Len(t, s.Members(), 2)

	loginAs(t, s, "Lena")
	_, ok = s.RequestToJoin("SUNNY")
	assert.False(t, ok, "already a member")
}

func TestRejectJoinRequest(t *testing.T) {
	s, _ := householdStore(t, "Anna")
	_, ok := s.Register("Lena", "lena@flat.test", "pw")
	require.True(t, ok)
	req, ok := s.RequestToJoin("SUNNY")
	require.True(t, ok)

	require.True(t, s.RejectJoinRequest(req.ID))
	assert.False(t, s.ApproveJoinRequest(req.ID))
	lena, _ := s.CurrentUser()
	assert.False(t, lena.HasHousehold)

	_, ok = s.RequestToJoin("SUNNY")
	assert.True(t, ok, "a rejected request does not block a new one")
}

func TestGuestPassWifiDefault(t *testing.T) {
	s, _ := householdStore(t, "Anna")

	pass, err := s.CreateGuestPass("Lea", testNow.Add(24*time.Hour), "")
	require.NoError(t, err)
	assert.Empty(t, pass.WifiPassword)

	_, err = s.AddVaultItem(types.VaultWifi, "Wi-Fi", "sunny-42")
	require.NoError(t, err)
	pass, err = s.CreateGuestPass("Lea", testNow.Add(24*time.Hour), "")
	require.NoError(t, err)
	assert.Equal(t, "sunny-42", pass.WifiPassword)
	assert.Equal(t, types.GuestActive, pass.Status)

	pass, err = s.CreateGuestPass("Kim", testNow.Add(24*time.Hour), "guest-net")
	require.NoError(t, err)
	assert.Equal(t, "guest-net", pass.WifiPassword)
}

func TestGuestPassLifecycle(t *testing.T) {
	s, _ := householdStore(t, "Anna")
	old, err := s.CreateGuestPass("Lea", testNow.Add(-time.Hour), "x")
	require.NoError(t, err)
	current, err := s.CreateGuestPass("Kim", testNow.Add(time.Hour), "x")
	require.NoError(t, err)

	assert.Equal(t, 1, s.ExpireGuestPasses(testNow))
	assert.Zero(t, s.ExpireGuestPasses(testNow))
	assert.False(t, s.RevokeGuestPass(old.ID), "expired passes cannot be revoked")
	assert.True(t, s.RevokeGuestPass(current.ID))

	statuses := map[string]types.GuestPassStatus{}
	for _, g := range s.GuestPasses() {
		statuses[g.GuestName] = g.Status
	}
	assert.Equal(t, map[string]types.GuestPassStatus{"Lea": types.GuestExpired, "Kim": types.GuestRevoked}, statuses)
}

func TestToggleSceneNotifiesOnActivation(t *testing.T) {
	s, _ := householdStore(t, "Anna")
	scene, err := s.AddScene("Movie night")
	require.NoError(t, err)
	assert.False(t, scene.IsActive)

	active, ok := s.ToggleScene(scene.ID)
	require.True(t, ok)
	assert.True(t, active)
	require.Len(t, s.Log(), 1)
	assert.Equal(t, "scene Movie night activated", s.Log()[0].Message)

	active, ok = s.ToggleScene(scene.ID)
	require.True(t, ok)
	assert.False(t, active)
	assert.Len(t, s.Log(), 1)

	_, ok = s.ToggleScene("missing")
	assert.False(t, ok)
}

func TestPantryRunningOut(t *testing.T) {
	s, m := householdStore(t, "Anna")
	salt, err := s.AddPantryItem("Salt", 2)
	require.NoError(t, err)
	m.reset()

	require.True(t, s.SetPantryStatus(salt.ID, types.PantryOut))
	require.Len(t, m.upserts, 2)
	assert.Equal(t, "pantry/"+salt.ID, m.upserts[0])

	items := s.Pantry()
	assert.Equal(t, types.PantryOut, items[0].Status)
	assert.Zero(t, items[0].Quantity)
	shopping := s.ShoppingItems()
	require.Len(t, shopping, 1)
	assert.Equal(t, "Salt", shopping[0].Name)

	require.True(t, s.SetPantryStatus(salt.ID, types.PantryLow))
	require.True(t, s.SetPantryStatus(salt.ID, types.PantryOut))
	assert.Len(t, s.ShoppingItems(), 1, "already pending")

	assert.True(t, s.RemovePantryItem(salt.ID))
	assert.False(t, s.SetPantryStatus(salt.ID, types.PantryOut))
}

func TestMealPlan(t *testing.T) {
	s, _ := householdStore(t, "Anna")
	pasta, err := s.AddRecipe("Pasta", []string{"Pasta", " ", "Tomatoes"}, "Boil.")
	require.NoError(t, err)
	assert.Equal(t, []string{"Pasta", "Tomatoes"}, pasta.Ingredients)

	_, err = s.AssignMeal(types.Weekday("someday"), pasta.ID, "Anna")
	assert.ErrorIs(t, err, types.ErrInvalidDay)

	_, err = s.AssignMeal(types.Wednesday, pasta.ID, "Anna")
	require.NoError(t, err)
	slot, err := s.AssignMeal(types.Weekday("Monday"), pasta.ID, "Max")
	require.NoError(t, err)
	assert.Equal(t, types.Monday, slot.Day)

	plan := s.MealPlan()
	require.Len(t, plan, 2)
	assert.Equal(t, types.Monday, plan[0].Day)
	assert.Equal(t, types.Wednesday, plan[1].Day)

	r, ok := s.MealFor(types.Monday)
	require.True(t, ok)
	assert.Equal(t, "Pasta", r.Name)

	require.True(t, s.RemoveRecipe(pasta.ID))
	_, ok = s.MealFor(types.Monday)
	assert.False(t, ok, "dangling recipe id")
	assert.Len(t, s.MealPlan(), 2)

	require.True(t, s.ClearMeal(types.Monday))
	assert.False(t, s.ClearMeal(types.Monday))
	assert.Len(t, s.MealPlan(), 1)
}

// Meal plan slots are keyed by day alone, so a second household planning the
// same day takes the slot over.
func TestMealPlanDayIsSharedAcrossHouseholds(t *testing.T) {
	s, m := householdStore(t, "Anna")
	pasta, err := s.AddRecipe("Pasta", nil, "")
	require.NoError(t, err)
	_, err = s.AssignMeal(types.Monday, pasta.ID, "Anna")
	require.NoError(t, err)

	_, ok := s.Register("Lena", "lena@flat.test", "pw")
	require.True(t, ok)
	other := s.CreateHousehold("Other Place", "")
	curry, err := s.AddRecipe("Curry", nil, "")
	require.NoError(t, err)
	m.reset()
	slot, err := s.AssignMeal(types.Monday, curry.ID, "Lena")
	require.NoError(t, err)
	assert.Equal(t, other.ID, slot.HouseholdID)
	assert.Equal(t, []string{"mealPlan/monday"}, m.upserts)

	loginAs(t, s, "Anna")
	assert.Empty(t, s.MealPlan())
	_, ok = s.MealFor(types.Monday)
	assert.False(t, ok)
	assert.False(t, s.ClearMeal(types.Monday), "the slot now belongs to the other household")
}

func TestAddIngredientsToShopping(t *testing.T) {
	s, _ := householdStore(t, "Anna")
	r, err := s.AddRecipe("Pasta", []string{"Pasta", "Tomatoes", "Garlic"}, "")
	require.NoError(t, err)
	_, err = s.AddShoppingItem("pasta", 1.5)
	require.NoError(t, err)

	assert.Equal(t, 2, s.AddIngredientsToShopping(r.ID))
	assert.Len(t, s.ShoppingItems(), 3)
	assert.Zero(t, s.AddIngredientsToShopping(r.ID))
	assert.Zero(t, s.AddIngredientsToShopping("missing"))
}

func TestUpcomingEvents(t *testing.T) {
	s, _ := householdStore(t, "Anna")
	_, err := s.AddEvent("Party", types.EventParty, testNow.Add(48*time.Hour))
	require.NoError(t, err)
	_, err = s.AddEvent("Past", types.EventCleaning, testNow.Add(-time.Hour))
	require.NoError(t, err)
	cleaning, err := s.AddEvent("Cleaning", types.EventType("unknown"), testNow.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, types.EventGeneral, cleaning.Type)

	upcoming := s.UpcomingEvents(testNow)
	require.Len(t, upcoming, 2)
	assert.Equal(t, "Cleaning", upcoming[0].Title)
	assert.Equal(t, "Party", upcoming[1].Title)

	empty, _ := newTestStore(t)
	assert.NotNil(t, empty.UpcomingEvents(testNow))
}

func TestVault(t *testing.T) {
	s, _ := householdStore(t, "Anna")
	assert.Empty(t, s.WifiPassword())

	note, err := s.AddVaultItem(types.VaultKind("diary"), "Landlord", "call Mondays")
	require.NoError(t, err)
	assert.Equal(t, types.VaultNote, note.Kind)
	_, err = s.AddVaultItem(types.VaultWifi, "", "x")
	assert.ErrorIs(t, err, types.ErrInvalidName)

	assert.True(t, s.RemoveVaultItem(note.ID))
	assert.Empty(t, s.VaultItems())
}

func TestHouseholdSettings(t *testing.T) {
	s, m := householdStore(t, "Anna")

	require.NoError(t, s.UpdateBudget(450))
	assert.ErrorIs(t, s.UpdateBudget(-1), types.ErrInvalidAmount)
	require.NoError(t, s.UpdateRules("No shoes inside"))

	assert.True(t, s.AddAmenity("balcony"))
	assert.False(t, s.AddAmenity("balcony"))
	assert.True(t, s.RemoveAmenity("balcony"))
	assert.False(t, s.RemoveAmenity("balcony"))

	h, ok := s.CurrentHousehold()
	require.True(t, ok)
	assert.Equal(t, 450.0, h.MonthlyBudget)
	assert.Equal(t, "No shoes inside", h.Rules)
	assert.Empty(t, h.Amenities)

	u, _ := s.CurrentUser()
	assert.True(t, u.Onboarding[4].Completed, "house rules step")
	assert.Contains(t, m.upserts, "users/"+userID("Anna"))
}
