package mirror

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/mesh-intelligence/flatshare/pkg/types"
)

// Encode converts an entity (value or pointer) to its remote address and
// record. Enum fields are written by name. Meal plan slots are keyed by day.
func Encode(entity any) (collection, key string, rec types.Record, err error) {
	switch e := entity.(type) {
	case *types.User:
		return Encode(*e)
	case types.User:
		rec, err = toRecord(e)
		if err == nil {
			// Password is hidden from JSON views but stored remotely.
			rec["password"] = e.Password
		}
		return types.UsersCollection, e.ID, rec, err
	case *types.Household:
		return Encode(*e)
	case types.Household:
		collection, key = types.HouseholdsCollection, e.ID
	case *types.ShoppingItem:
		return Encode(*e)
	case types.ShoppingItem:
		collection, key = types.ShoppingCollection, e.ID
	case *types.Task:
		return Encode(*e)
	case types.Task:
		collection, key = types.TasksCollection, e.ID
	case *types.Ticket:
		return Encode(*e)
	case types.Ticket:
		collection, key = types.TicketsCollection, e.ID
	case *types.CalendarEvent:
		return Encode(*e)
	case types.CalendarEvent:
		collection, key = types.EventsCollection, e.ID
	case *types.Recipe:
		return Encode(*e)
	case types.Recipe:
		collection, key = types.RecipesCollection, e.ID
	case *types.MealPlanSlot:
		return Encode(*e)
	case types.MealPlanSlot:
		collection, key = types.MealPlanCollection, string(e.Day)
	case *types.VaultItem:
		return Encode(*e)
	case types.VaultItem:
		collection, key = types.VaultCollection, e.ID
	case *types.RewardItem:
		return Encode(*e)
	case types.RewardItem:
		collection, key = types.RewardsCollection, e.ID
	case *types.JoinRequest:
		return Encode(*e)
	case types.JoinRequest:
		collection, key = types.JoinRequestsCollection, e.ID
	case *types.RecurringCost:
		return Encode(*e)
	case types.RecurringCost:
		collection, key = types.RecurringCostsCollection, e.ID
	case *types.GuestPass:
		return Encode(*e)
	case types.GuestPass:
		collection, key = types.GuestPassesCollection, e.ID
	case *types.SmartScene:
		return Encode(*e)
	case types.SmartScene:
		collection, key = types.ScenesCollection, e.ID
	case *types.PantryItem:
		return Encode(*e)
	case types.PantryItem:
		collection, key = types.PantryCollection, e.ID
	default:
		return "", "", nil, fmt.Errorf("encode %T: %w", entity, types.ErrUnknownCollection)
	}

	if key == "" {
		return collection, "", nil, fmt.Errorf("encode %s: %w", collection, types.ErrInvalidID)
	}
	rec, err = toRecord(entity)
	return collection, key, rec, err
}

func toRecord(v any) (types.Record, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal %T: %w", v, err)
	}
	var rec types.Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("unmarshal %T: %w", v, err)
	}
	return rec, nil
}

// EncodeSnapshot converts every collection of snap into a tree. Every
// standard collection is present, possibly empty.
func EncodeSnapshot(snap types.Snapshot) (types.Tree, error) {
	tree := make(types.Tree, len(types.StandardCollections))
	for _, c := range types.StandardCollections {
		tree[c] = make(map[string]types.Record)
	}

	var entities []any
	for i := range snap.Users {
		entities = append(entities, snap.Users[i])
	}
	for i := range snap.Households {
		entities = append(entities, snap.Households[i])
	}
	for i := range snap.Shopping {
		entities = append(entities, snap.Shopping[i])
	}
	for i := range snap.Tasks {
		entities = append(entities, snap.Tasks[i])
	}
	for i := range snap.Tickets {
		entities = append(entities, snap.Tickets[i])
	}
	for i := range snap.Events {
		entities = append(entities, snap.Events[i])
	}
	for i := range snap.Recipes {
		entities = append(entities, snap.Recipes[i])
	}
	for i := range snap.MealPlan {
		entities = append(entities, snap.MealPlan[i])
	}
	for i := range snap.Vault {
		entities = append(entities, snap.Vault[i])
	}
	for i := range snap.Rewards {
		entities = append(entities, snap.Rewards[i])
	}
	for i := range snap.JoinRequests {
		entities = append(entities, snap.JoinRequests[i])
	}
	for i := range snap.RecurringCosts {
		entities = append(entities, snap.RecurringCosts[i])
	}
	for i := range snap.GuestPasses {
		entities = append(entities, snap.GuestPasses[i])
	}
	for i := range snap.Scenes {
		entities = append(entities, snap.Scenes[i])
	}
	for i := range snap.Pantry {
		entities = append(entities, snap.Pantry[i])
	}

	for _, e := range entities {
		collection, key, rec, err := Encode(e)
		if err != nil {
			return nil, err
		}
		tree[collection][key] = rec
	}
	return tree, nil
}

// DecodeTree parses every known collection of tree. Records that fail to
// decode are skipped; skipped counts them per collection. Unknown
// collections are ignored. Entities are ordered by key, meal plan slots by
// weekday.
func DecodeTree(tree types.Tree) (snap types.Snapshot, skipped map[string]int) {
	skipped = make(map[string]int)

	for _, collection := range types.StandardCollections {
		children := tree[collection]
		for _, key := range sortedKeys(children) {
			if err := decodeInto(&snap, collection, key, children[key]); err != nil {
				skipped[collection]++
			}
		}
	}

	sort.SliceStable(snap.MealPlan, func(i, j int) bool {
		return weekdayIndex(snap.MealPlan[i].Day) < weekdayIndex(snap.MealPlan[j].Day)
	})
	return snap, skipped
}

func decodeInto(snap *types.Snapshot, collection, key string, rec types.Record) error {
	if rec == nil {
		return types.ErrInvalidRecord
	}
	switch collection {
	case types.UsersCollection:
		v, err := DecodeUser(key, rec)
		if err == nil {
			snap.Users = append(snap.Users, v)
		}
		return err
	case types.HouseholdsCollection:
		v, err := DecodeHousehold(key, rec)
		if err == nil {
			snap.Households = append(snap.Households, v)
		}
		return err
	case types.ShoppingCollection:
		v, err := DecodeShoppingItem(key, rec)
		if err == nil {
			snap.Shopping = append(snap.Shopping, v)
		}
		return err
	case types.TasksCollection:
		v, err := DecodeTask(key, rec)
		if err == nil {
			snap.Tasks = append(snap.Tasks, v)
		}
		return err
	case types.TicketsCollection:
		v, err := DecodeTicket(key, rec)
		if err == nil {
			snap.Tickets = append(snap.Tickets, v)
		}
		return err
	case types.EventsCollection:
		v, err := DecodeCalendarEvent(key, rec)
		if err == nil {
			snap.Events = append(snap.Events, v)
		}
		return err
	case types.RecipesCollection:
		v, err := DecodeRecipe(key, rec)
		if err == nil {
			snap.Recipes = append(snap.Recipes, v)
		}
		return err
	case types.MealPlanCollection:
		v, err := DecodeMealPlanSlot(key, rec)
		if err == nil {
			snap.MealPlan = append(snap.MealPlan, v)
		}
		return err
	case types.VaultCollection:
		v, err := DecodeVaultItem(key, rec)
		if err == nil {
			snap.Vault = append(snap.Vault, v)
		}
		return err
	case types.RewardsCollection:
		v, err := DecodeRewardItem(key, rec)
		if err == nil {
			snap.Rewards = append(snap.Rewards, v)
		}
		return err
	case types.JoinRequestsCollection:
		v, err := DecodeJoinRequest(key, rec)
		if err == nil {
			snap.JoinRequests = append(snap.JoinRequests, v)
		}
		return err
	case types.RecurringCostsCollection:
		v, err := DecodeRecurringCost(key, rec)
		if err == nil {
			snap.RecurringCosts = append(snap.RecurringCosts, v)
		}
		return err
	case types.GuestPassesCollection:
		v, err := DecodeGuestPass(key, rec)
		if err == nil {
			snap.GuestPasses = append(snap.GuestPasses, v)
		}
		return err
	case types.ScenesCollection:
		v, err := DecodeSmartScene(key, rec)
		if err == nil {
			snap.Scenes = append(snap.Scenes, v)
		}
		return err
	case types.PantryCollection:
		v, err := DecodePantryItem(key, rec)
		if err == nil {
			snap.Pantry = append(snap.Pantry, v)
		}
		return err
	}
	return types.ErrUnknownCollection
}

func sortedKeys(m map[string]types.Record) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func weekdayIndex(d types.Weekday) int {
	for i, w := range types.Weekdays {
		if w == d {
			return i
		}
	}
	return len(types.Weekdays)
}

// DecodeUser parses a users record. Email is required; an unknown role falls
// back to member and unknown onboarding kinds are dropped.
func DecodeUser(key string, rec types.Record) (types.User, error) {
	f := &fields{rec: rec}
	u := types.User{
		ID:                  f.id(key),
		Name:                f.str("name"),
		Email:               f.required("email"),
		Password:            f.str("password"),
		Role:                types.ParseRole(f.str("role"), types.RoleMember),
		Points:              f.integer("points"),
		OnboardingCompleted: f.boolean("onboardingCompleted"),
		CreatedAt:           f.timestamp("createdAt"),
	}
	u.SetHousehold(f.str("householdId"))
	if u.Points < 0 {
		u.Points = 0
	}

	if _, ok := rec["onboarding"]; ok {
		u.Onboarding = []types.OnboardingItem{}
		for _, item := range f.records("onboarding") {
			sf := &fields{rec: item}
			kind, known := types.ParseOnboardingKind(sf.str("kind"))
			if !known || sf.err != nil {
				continue
			}
			u.Onboarding = append(u.Onboarding, types.OnboardingItem{Kind: kind, Completed: sf.boolean("completed")})
		}
	} else {
		u.Onboarding = types.NewOnboarding()
	}
	return u, f.err
}

// DecodeHousehold parses a households record. The join code is required.
func DecodeHousehold(key string, rec types.Record) (types.Household, error) {
	f := &fields{rec: rec}
	h := types.Household{
		ID:            f.id(key),
		Name:          f.str("name"),
		Address:       f.str("address"),
		JoinCode:      f.required("joinCode"),
		MonthlyBudget: f.float("monthlyBudget"),
		Rules:         f.str("rules"),
		CreatedAt:     f.timestamp("createdAt"),
	}
	for _, a := range f.stringList("amenities") {
		h.AddAmenity(a)
	}
	return h, f.err
}

// DecodeShoppingItem parses a shopping record. An unknown status falls back
// to pending.
func DecodeShoppingItem(key string, rec types.Record) (types.ShoppingItem, error) {
	f := &fields{rec: rec}
	s := types.ShoppingItem{
		ID:          f.id(key),
		HouseholdID: f.str("householdId"),
		Name:        f.required("name"),
		Price:       f.float("price"),
		Status:      types.ParseShoppingStatus(f.str("status"), types.ShoppingPending),
		AddedBy:     f.str("addedBy"),
		BoughtBy:    f.str("boughtBy"),
		CreatedAt:   f.timestamp("createdAt"),
	}
	if s.Price < 0 {
		f.fail("price", "is negative")
	}
	return s, f.err
}

// DecodeTask parses a tasks record.
func DecodeTask(key string, rec types.Record) (types.Task, error) {
	f := &fields{rec: rec}
	t := types.Task{
		ID:          f.id(key),
		HouseholdID: f.str("householdId"),
		Title:       f.required("title"),
		AssignedTo:  f.str("assignedTo"),
		Completed:   f.boolean("completed"),
		Streak:      f.integer("streak"),
		Points:      f.integer("points"),
		CreatedAt:   f.timestamp("createdAt"),
	}
	if t.Streak < 0 {
		t.Streak = 0
	}
	return t, f.err
}

// DecodeTicket parses a tickets record. An unknown type falls back to
// complaint.
func DecodeTicket(key string, rec types.Record) (types.Ticket, error) {
	f := &fields{rec: rec}
	t := types.Ticket{
		ID:          f.id(key),
		HouseholdID: f.str("householdId"),
		Type:        types.ParseTicketType(f.str("type"), types.TicketComplaint),
		Title:       f.required("title"),
		Body:        f.str("body"),
		Author:      f.str("author"),
		Target:      f.str("target"),
		Options:     f.stringList("options"),
		Votes:       f.stringMap("votes"),
		Resolved:    f.boolean("resolved"),
		CreatedAt:   f.timestamp("createdAt"),
	}
	return t, f.err
}

// DecodeCalendarEvent parses an events record. An unknown type falls back to
// general.
func DecodeCalendarEvent(key string, rec types.Record) (types.CalendarEvent, error) {
	f := &fields{rec: rec}
	e := types.CalendarEvent{
		ID:          f.id(key),
		HouseholdID: f.str("householdId"),
		Title:       f.required("title"),
		Type:        types.ParseEventType(f.str("type"), types.EventGeneral),
		Start:       f.timestamp("start"),
		CreatedBy:   f.str("createdBy"),
	}
	return e, f.err
}

// DecodeRecipe parses a recipes record.
func DecodeRecipe(key string, rec types.Record) (types.Recipe, error) {
	f := &fields{rec: rec}
	r := types.Recipe{
		ID:           f.id(key),
		HouseholdID:  f.str("householdId"),
		Name:         f.required("name"),
		Ingredients:  f.stringList("ingredients"),
		Instructions: f.str("instructions"),
		AddedBy:      f.str("addedBy"),
	}
	return r, f.err
}

// DecodeMealPlanSlot parses a mealPlan record. The node key must be a day
// name.
func DecodeMealPlanSlot(key string, rec types.Record) (types.MealPlanSlot, error) {
	f := &fields{rec: rec}
	day, ok := types.ParseWeekday(key)
	if !ok {
		f.fail("day", "is not a weekday")
	}
	s := types.MealPlanSlot{
		Day:         day,
		HouseholdID: f.str("householdId"),
		RecipeID:    f.str("recipeId"),
		Cook:        f.str("cook"),
	}
	return s, f.err
}

// DecodeVaultItem parses a vault record. An unknown kind falls back to note.
func DecodeVaultItem(key string, rec types.Record) (types.VaultItem, error) {
	f := &fields{rec: rec}
	v := types.VaultItem{
		ID:          f.id(key),
		HouseholdID: f.str("householdId"),
		Kind:        types.ParseVaultKind(f.str("kind"), types.VaultNote),
		Label:       f.required("label"),
		Secret:      f.str("secret"),
	}
	return v, f.err
}

// DecodeRewardItem parses a rewards record.
func DecodeRewardItem(key string, rec types.Record) (types.RewardItem, error) {
	f := &fields{rec: rec}
	r := types.RewardItem{
		ID:          f.id(key),
		HouseholdID: f.str("householdId"),
		Title:       f.required("title"),
		Cost:        f.integer("cost"),
		RedeemedBy:  f.stringList("redeemedBy"),
	}
	return r, f.err
}

// DecodeJoinRequest parses a joinRequests record. An unknown status falls
// back to pending.
func DecodeJoinRequest(key string, rec types.Record) (types.JoinRequest, error) {
	f := &fields{rec: rec}
	j := types.JoinRequest{
		ID:          f.id(key),
		UserID:      f.required("userId"),
		UserName:    f.str("userName"),
		HouseholdID: f.required("householdId"),
		Status:      types.ParseJoinStatus(f.str("status"), types.JoinPending),
		CreatedAt:   f.timestamp("createdAt"),
	}
	return j, f.err
}

// DecodeRecurringCost parses a recurringCosts record.
func DecodeRecurringCost(key string, rec types.Record) (types.RecurringCost, error) {
	f := &fields{rec: rec}
	c := types.RecurringCost{
		ID:          f.id(key),
		HouseholdID: f.str("householdId"),
		Name:        f.required("name"),
		Amount:      f.float("amount"),
		IsActive:    f.boolean("isActive"),
	}
	return c, f.err
}

// DecodeGuestPass parses a guestPasses record. An unknown status falls back
// to active.
func DecodeGuestPass(key string, rec types.Record) (types.GuestPass, error) {
	f := &fields{rec: rec}
	g := types.GuestPass{
		ID:           f.id(key),
		HouseholdID:  f.str("householdId"),
		GuestName:    f.required("guestName"),
		WifiPassword: f.str("wifiPassword"),
		ValidUntil:   f.timestamp("validUntil"),
		Status:       types.ParseGuestPassStatus(f.str("status"), types.GuestActive),
		CreatedBy:    f.str("createdBy"),
	}
	return g, f.err
}

// DecodeSmartScene parses a scenes record.
func DecodeSmartScene(key string, rec types.Record) (types.SmartScene, error) {
	f := &fields{rec: rec}
	s := types.SmartScene{
		ID:          f.id(key),
		HouseholdID: f.str("householdId"),
		Name:        f.required("name"),
		IsActive:    f.boolean("isActive"),
	}
	return s, f.err
}

// DecodePantryItem parses a pantry record. An unknown status falls back to
// stocked.
func DecodePantryItem(key string, rec types.Record) (types.PantryItem, error) {
	f := &fields{rec: rec}
	p := types.PantryItem{
		ID:          f.id(key),
		HouseholdID: f.str("householdId"),
		Name:        f.required("name"),
		Quantity:    f.integer("quantity"),
		Status:      types.ParsePantryStatus(f.str("status"), types.PantryStocked),
	}
	return p, f.err
}
