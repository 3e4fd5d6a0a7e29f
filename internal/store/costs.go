package store

import (
	"strings"

	"github.com/mesh-intelligence/flatshare/pkg/types"
)

// RecurringCosts returns the current household's fixed monthly costs.
func (s *Store) RecurringCosts() []types.RecurringCost {
	hid := s.householdID()
	return copyWhere(s.recurringCosts, plain[types.RecurringCost], func(c *types.RecurringCost) bool { return hid != "" && c.HouseholdID == hid })
}

// AddRecurringCost adds an active monthly cost.
func (s *Store) AddRecurringCost(name string, amount float64) (types.RecurringCost, error) {
	h, err := s.currentHousehold()
	if err != nil {
		return types.RecurringCost{}, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return types.RecurringCost{}, types.ErrInvalidName
	}
	if amount < 0 {
		return types.RecurringCost{}, types.ErrInvalidAmount
	}
	c := &types.RecurringCost{
		ID:          s.newID(),
		HouseholdID: h.ID,
		Name:        name,
		Amount:      amount,
		IsActive:    true,
	}
	s.recurringCosts = append(s.recurringCosts, c)
	s.upsert(c)
	return *c, nil
}

// ToggleRecurringCost flips whether a cost counts toward totals.
func (s *Store) ToggleRecurringCost(id string) bool {
	c, _ := findInHousehold(s.recurringCosts, s.householdID(), costOwner, func(c *types.RecurringCost) bool { return c.ID == id })
	if c == nil {
		return false
	}
	c.IsActive = !c.IsActive
	s.upsert(c)
	return true
}

// RemoveRecurringCost deletes a cost.
func (s *Store) RemoveRecurringCost(id string) bool {
	c, i := findInHousehold(s.recurringCosts, s.householdID(), costOwner, func(c *types.RecurringCost) bool { return c.ID == id })
	if c == nil {
		return false
	}
	s.recurringCosts = removeAt(s.recurringCosts, i)
	s.remove(types.RecurringCostsCollection, c.ID)
	return true
}

// MonthlyRecurringTotal sums the household's active costs.
func (s *Store) MonthlyRecurringTotal() float64 {
	total := 0.0
	for _, c := range s.RecurringCosts() {
		if c.IsActive {
			total += c.Amount
		}
	}
	return total
}

// RecurringCostShare splits the active total across current members. It is
// zero without members.
func (s *Store) RecurringCostShare() float64 {
	n := len(s.members())
	if n == 0 {
		return 0
	}
	return s.MonthlyRecurringTotal() / float64(n)
}
