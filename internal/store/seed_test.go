package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/flatshare/pkg/types"
)

func TestSeedMockData(t *testing.T) {
	s, m := householdStore(t, "Lena")
	s.SeedMockData()

	_, ok := s.CurrentUser()
	assert.False(t, ok, "seeding clears the session")
	assert.Empty(t, m.upserts)
	assert.Empty(t, m.pushes, "seeding does not mirror")

	snap := s.Snapshot()
	assert.Len(t, snap.Users, 4)
	require.Len(t, snap.Households, 1)
	assert.Equal(t, SeedJoinCode, snap.Households[0].JoinCode)
	for _, c := range types.StandardCollections {
		if c == types.JoinRequestsCollection {
			continue
		}
		assert.NotZero(t, snap.Counts()[c], c)
	}

	root, ok := s.User(SeedRootID)
	require.True(t, ok)
	assert.False(t, root.HasHousehold)
	assert.Equal(t, types.RoleSuperAdmin, root.Role)
}

func TestSeedLoginAndViews(t *testing.T) {
	s, _ := newTestStore(t)
	s.SeedMockData()

	u, ok := s.Login("anna@flat.test", "anna")
	require.True(t, ok)
	assert.Equal(t, SeedAnnaID, u.ID)
	assert.Equal(t, types.RoleAdmin, u.Role)
	assert.Equal(t, 180, u.Points, "already onboarded")

	assert.Equal(t, "sunny-side-42", s.WifiPassword())
	assert.InDelta(t, 1539.99, s.MonthlyRecurringTotal(), 1e-9)
	assert.Len(t, s.MealPlan(), 2)

	sum := 0.0
	for _, b := range s.Balances() {
		sum += b.Amount
	}
	assert.InDelta(t, 0.0, sum, 1e-9)
	assert.InDelta(t, 8.99-14.48/3, balanceOf(t, s.Balances(), "Anna"), 1e-9)

	board := s.Leaderboard()
	require.Len(t, board, 3)
	assert.Equal(t, []string{"Anna", "Max", "Tom"}, []string{board[0].Name, board[1].Name, board[2].Name})
	assert.Equal(t, 180+PurchaseScore, board[0].Score)
	assert.Equal(t, 95+TaskScore+PurchaseScore, board[1].Score)
}

func TestSeedIsDeterministic(t *testing.T) {
	a := mockSnapshot(testNow)
	b := mockSnapshot(testNow)
	assert.Equal(t, a, b)
}
