package types

// Collection names addressing the remote document store. Each entity lives at
// <collection>/<id>; the meal plan is keyed by lowercase day name instead.
const (
	UsersCollection          = "users"
	HouseholdsCollection     = "households"
	ShoppingCollection       = "shopping"
	TasksCollection          = "tasks"
	TicketsCollection        = "tickets"
	EventsCollection         = "events"
	RecipesCollection        = "recipes"
	MealPlanCollection       = "mealPlan"
	VaultCollection          = "vault"
	RewardsCollection        = "rewards"
	JoinRequestsCollection   = "joinRequests"
	RecurringCostsCollection = "recurringCosts"
	GuestPassesCollection    = "guestPasses"
	ScenesCollection         = "scenes"
	PantryCollection         = "pantry"
)

// StandardCollections lists every collection name in load order.
var StandardCollections = []string{
	UsersCollection,
	HouseholdsCollection,
	ShoppingCollection,
	TasksCollection,
	TicketsCollection,
	EventsCollection,
	RecipesCollection,
	MealPlanCollection,
	VaultCollection,
	RewardsCollection,
	JoinRequestsCollection,
	RecurringCostsCollection,
	GuestPassesCollection,
	ScenesCollection,
	PantryCollection,
}

// ContentCollections lists the collections cleared by a destructive reset.
// Users and households are not content.
var ContentCollections = StandardCollections[2:]

// IsStandardCollection reports whether name is one of StandardCollections.
func IsStandardCollection(name string) bool {
	for _, c := range StandardCollections {
		if c == name {
			return true
		}
	}
	return false
}
