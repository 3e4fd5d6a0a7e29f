package types

// Snapshot is a full copy of every collection, used for bootstrap replacement
// and bulk pushes. Slices keep collection order.
type Snapshot struct {
	Users          []User          `json:"users"`
	Households     []Household     `json:"households"`
	Shopping       []ShoppingItem  `json:"shopping"`
	Tasks          []Task          `json:"tasks"`
	Tickets        []Ticket        `json:"tickets"`
	Events         []CalendarEvent `json:"events"`
	Recipes        []Recipe        `json:"recipes"`
	MealPlan       []MealPlanSlot  `json:"mealPlan"`
	Vault          []VaultItem     `json:"vault"`
	Rewards        []RewardItem    `json:"rewards"`
	JoinRequests   []JoinRequest   `json:"joinRequests"`
	RecurringCosts []RecurringCost `json:"recurringCosts"`
	GuestPasses    []GuestPass     `json:"guestPasses"`
	Scenes         []SmartScene    `json:"scenes"`
	Pantry         []PantryItem    `json:"pantry"`
}

// Counts returns the number of entities per collection name.
func (s Snapshot) Counts() map[string]int {
	return map[string]int{
		UsersCollection:          len(s.Users),
		HouseholdsCollection:     len(s.Households),
		ShoppingCollection:       len(s.Shopping),
		TasksCollection:          len(s.Tasks),
		TicketsCollection:        len(s.Tickets),
		EventsCollection:         len(s.Events),
		RecipesCollection:        len(s.Recipes),
		MealPlanCollection:       len(s.MealPlan),
		VaultCollection:          len(s.Vault),
		RewardsCollection:        len(s.Rewards),
		JoinRequestsCollection:   len(s.JoinRequests),
		RecurringCostsCollection: len(s.RecurringCosts),
		GuestPassesCollection:    len(s.GuestPasses),
		ScenesCollection:         len(s.Scenes),
		PantryCollection:         len(s.Pantry),
	}
}
