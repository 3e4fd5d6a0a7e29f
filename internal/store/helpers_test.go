package store

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/flatshare/pkg/logging"
	"github.com/mesh-intelligence/flatshare/pkg/types"
)

var testNow = time.Date(2024, 5, 6, 12, 0, 0, 0, time.UTC)

// recordingMirror captures what the store hands to the sync engine.
type recordingMirror struct {
	upserts []string // collection/key
	removes []string // collection/key
	pushes  []types.Snapshot
}

func (m *recordingMirror) Upsert(entity any) {
	m.upserts = append(m.upserts, address(entity))
}

func (m *recordingMirror) Remove(collection, key string) {
	m.removes = append(m.removes, collection+"/"+key)
}

func (m *recordingMirror) PushSnapshot(snap types.Snapshot) {
	m.pushes = append(m.pushes, snap)
}

func (m *recordingMirror) reset() {
	m.upserts, m.removes, m.pushes = nil, nil, nil
}

func address(entity any) string {
	switch e := entity.(type) {
	case *types.User:
		return types.UsersCollection + "/" + e.ID
	case *types.Household:
		return types.HouseholdsCollection + "/" + e.ID
	case *types.ShoppingItem:
		return types.ShoppingCollection + "/" + e.ID
	case *types.Task:
		return types.TasksCollection + "/" + e.ID
	case *types.Ticket:
		return types.TicketsCollection + "/" + e.ID
	case *types.CalendarEvent:
		return types.EventsCollection + "/" + e.ID
	case *types.Recipe:
		return types.RecipesCollection + "/" + e.ID
	case *types.MealPlanSlot:
		return types.MealPlanCollection + "/" + string(e.Day)
	case *types.VaultItem:
		return types.VaultCollection + "/" + e.ID
	case *types.RewardItem:
		return types.RewardsCollection + "/" + e.ID
	case *types.JoinRequest:
		return types.JoinRequestsCollection + "/" + e.ID
	case *types.RecurringCost:
		return types.RecurringCostsCollection + "/" + e.ID
	case *types.GuestPass:
		return types.GuestPassesCollection + "/" + e.ID
	case *types.SmartScene:
		return types.ScenesCollection + "/" + e.ID
	case *types.PantryItem:
		return types.PantryCollection + "/" + e.ID
	}
	return fmt.Sprintf("unknown/%T", entity)
}

func newTestStore(t *testing.T) (*Store, *recordingMirror) {
	t.Helper()
	m := &recordingMirror{}
	n := 0
	s := New(m,
		WithLogger(logging.Discard()),
		WithClock(func() time.Time { return testNow }),
		WithIDGenerator(func() string { n++; return fmt.Sprintf("id-%03d", n) }),
		WithSeed(1),
	)
	return s, m
}

func userID(name string) string { return "u-" + strings.ToLower(name) }

// householdStore returns a store holding household "h1" (code SUNNY) with
// the named members, logged in as the first. The mirror is reset after setup.
func householdStore(t *testing.T, names ...string) (*Store, *recordingMirror) {
	t.Helper()
	s, m := newTestStore(t)

	snap := types.Snapshot{
		Households: []types.Household{{ID: "h1", Name: "Sunny Side", JoinCode: "SUNNY"}},
	}
	for _, name := range names {
		u := types.User{
			ID:         userID(name),
			Name:       name,
			Email:      strings.ToLower(name) + "@flat.test",
			Password:   "pw",
			Role:       types.RoleMember,
			Onboarding: types.NewOnboarding(),
		}
		u.SetHousehold("h1")
		snap.Users = append(snap.Users, u)
	}
	s.Replace(snap)

	if len(names) > 0 {
		_, ok := s.Login(strings.ToLower(names[0])+"@flat.test", "pw")
		require.True(t, ok)
	}
	m.reset()
	return s, m
}

// loginAs switches the acting user without touching the mirror log.
func loginAs(t *testing.T, s *Store, name string) {
	t.Helper()
	_, ok := s.Login(strings.ToLower(name)+"@flat.test", "pw")
	require.True(t, ok)
}

// boughtItem adds an item and marks it bought by the given member.
func boughtItem(t *testing.T, s *Store, buyer string, price float64) types.ShoppingItem {
	t.Helper()
	loginAs(t, s, buyer)
	item, err := s.AddShoppingItem("thing", price)
	require.NoError(t, err)
	require.True(t, s.MarkBought(item.ID))
	return item
}
