package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/flatshare/pkg/types"
)

func balanceOf(t *testing.T, balances []Balance, name string) float64 {
	t.Helper()
	for _, b := range balances {
		if b.Name == name {
			return b.Amount
		}
	}
	t.Fatalf("no balance for %s", name)
	return 0
}

func TestSettlementScenario(t *testing.T) {
	s, m := householdStore(t, "A", "B")

	bought := boughtItem(t, s, "A", 10)
	loginAs(t, s, "B")
	_, err := s.AddShoppingItem("pending", 6)
	require.NoError(t, err)

	balances := s.Balances()
	require.Len(t, balances, 2)
	assert.InDelta(t, 5.0, balanceOf(t, balances, "A"), 1e-9)
	assert.InDelta(t, -5.0, balanceOf(t, balances, "B"), 1e-9)

	m.reset()
	assert.Equal(t, 1, s.SettleAllDebts())
	assert.Equal(t, []string{"shopping/" + bought.ID}, m.removes)

	for _, b := range s.Balances() {
		assert.InDelta(t, 0.0, b.Amount, 1e-9, b.Name)
	}
	items := s.ShoppingItems()
	require.Len(t, items, 1, "pending items survive settlement")
	assert.Equal(t, "pending", items[0].Name)
}

func TestBalanceConservation(t *testing.T) {
	tests := []struct {
		name    string
		members []string
		buys    map[string][]float64
	}{
		{"single member", []string{"A"}, map[string][]float64{"A": {3.5}}},
		{"two members", []string{"A", "B"}, map[string][]float64{"A": {10, 0.3}, "B": {7.77}}},
		{"three uneven", []string{"A", "B", "C"}, map[string][]float64{"A": {0.1, 0.2}, "C": {99.99}}},
		{"nobody bought", []string{"A", "B", "C", "D"}, nil},
		{"all bought", []string{"A", "B", "C", "D"}, map[string][]float64{"A": {1}, "B": {2}, "C": {3}, "D": {4.01}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := householdStore(t, tt.members...)
			for buyer, prices := range tt.buys {
				for _, p := range prices {
					boughtItem(t, s, buyer, p)
				}
			}
			sum := 0.0
			for _, b := range s.Balances() {
				sum += b.Amount
			}
			assert.InDelta(t, 0.0, sum, 1e-9)
		})
	}
}

func TestBalanceConservationAfterMembershipChanges(t *testing.T) {
	sumOf := func(balances []Balance) float64 {
		sum := 0.0
		for _, b := range balances {
			sum += b.Amount
		}
		return sum
	}

	t.Run("buyer left", func(t *testing.T) {
		s, _ := householdStore(t, "A", "B", "C")
		boughtItem(t, s, "C", 30)
		require.True(t, s.LeaveHousehold())

		loginAs(t, s, "A")
		balances := s.Balances()
		require.Len(t, balances, 2)
		assert.InDelta(t, 0.0, sumOf(balances), 1e-9)
		assert.Zero(t, balanceOf(t, balances, "A"))
	})

	t.Run("buyer deleted", func(t *testing.T) {
		s, _ := householdStore(t, "A", "B", "C")
		boughtItem(t, s, "A", 12)
		boughtItem(t, s, "C", 30)
		loginAs(t, s, "A")
		require.True(t, s.DeleteUser(userID("C")))

		balances := s.Balances()
		assert.InDelta(t, 0.0, sumOf(balances), 1e-9)
		assert.InDelta(t, 6.0, balanceOf(t, balances, "A"), 1e-9)
		assert.InDelta(t, -6.0, balanceOf(t, balances, "B"), 1e-9)
	})

	t.Run("outsider buyer", func(t *testing.T) {
		s, _ := householdStore(t, "A", "B")
		snap := s.Snapshot()
		snap.Shopping = append(snap.Shopping, types.ShoppingItem{
			ID: "x1", HouseholdID: "h1", Name: "Beer", Price: 20,
			Status: types.ShoppingBought, BoughtBy: "Zed",
		})
		s.Replace(snap)

		balances := s.Balances()
		assert.InDelta(t, 0.0, sumOf(balances), 1e-9)
		assert.Zero(t, balanceOf(t, balances, "A"))
	})

	t.Run("shared display name", func(t *testing.T) {
		s, _ := householdStore(t, "A", "B")
		snap := s.Snapshot()
		twin := types.User{ID: "u-a2", Name: "A", Email: "a2@flat.test", Password: "pw", Onboarding: types.NewOnboarding()}
		twin.SetHousehold("h1")
		snap.Users = append(snap.Users, twin)
		s.Replace(snap)
		boughtItem(t, s, "A", 9)

		balances := s.Balances()
		require.Len(t, balances, 3)
		assert.InDelta(t, 0.0, sumOf(balances), 1e-9)
		assert.InDelta(t, 6.0, balances[0].Amount, 1e-9)
		assert.InDelta(t, -3.0, balances[2].Amount, 1e-9)
	})
}

func TestBalancesWithoutMembers(t *testing.T) {
	s, _ := newTestStore(t)
	assert.Empty(t, s.Balances())
	assert.Empty(t, s.DebtEdges())
	assert.Zero(t, s.SettleAllDebts())
}

func TestSettleWithShrinksSharedTotal(t *testing.T) {
	s, m := householdStore(t, "A", "B", "C")
	boughtItem(t, s, "A", 30)
	boughtItem(t, s, "B", 15)

	before := s.Balances()
	assert.InDelta(t, 15.0, balanceOf(t, before, "A"), 1e-9)
	assert.InDelta(t, 0.0, balanceOf(t, before, "B"), 1e-9)
	assert.InDelta(t, -15.0, balanceOf(t, before, "C"), 1e-9)

	m.reset()
	assert.Equal(t, 1, s.SettleWith("A"))
	assert.Len(t, m.removes, 1)

	after := s.Balances()
	assert.InDelta(t, -5.0, balanceOf(t, after, "A"), 1e-9, "creditor is recomputed against the smaller total")
	assert.InDelta(t, 10.0, balanceOf(t, after, "B"), 1e-9, "other members shift too")
	assert.InDelta(t, -5.0, balanceOf(t, after, "C"), 1e-9)

	assert.Zero(t, s.SettleWith("nobody"))
}

func TestDebtEdges(t *testing.T) {
	s, _ := householdStore(t, "A", "B", "C")
	boughtItem(t, s, "A", 30)

	edges := s.DebtEdges()
	require.Len(t, edges, 2)
	total := 0.0
	for _, e := range edges {
		assert.Equal(t, "A", e.To)
		assert.InDelta(t, 10.0, e.Amount, 1e-9)
		total += e.Amount
	}
	assert.InDelta(t, 20.0, total, 1e-9)
}
