package store

import (
	"strings"

	"github.com/mesh-intelligence/flatshare/pkg/types"
)

// ShoppingItems returns the current household's shopping list.
func (s *Store) ShoppingItems() []types.ShoppingItem {
	hid := s.householdID()
	return copyWhere(s.shopping, plain[types.ShoppingItem], func(i *types.ShoppingItem) bool { return hid != "" && i.HouseholdID == hid })
}

// AddShoppingItem adds a pending item to the current household's list.
func (s *Store) AddShoppingItem(name string, price float64) (types.ShoppingItem, error) {
	h, err := s.currentHousehold()
	if err != nil {
		return types.ShoppingItem{}, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return types.ShoppingItem{}, types.ErrInvalidName
	}
	if price < 0 {
		return types.ShoppingItem{}, types.ErrInvalidPrice
	}
	return s.addShoppingItem(h.ID, name, price), nil
}

func (s *Store) addShoppingItem(householdID, name string, price float64) types.ShoppingItem {
	item := &types.ShoppingItem{
		ID:          s.newID(),
		HouseholdID: householdID,
		Name:        name,
		Price:       price,
		Status:      types.ShoppingPending,
		AddedBy:     s.actor(),
		CreatedAt:   s.now(),
	}
	s.shopping = append(s.shopping, item)
	s.upsert(item)
	return *item
}

// hasPending reports whether the household already lists name as pending.
func (s *Store) hasPending(householdID, name string) bool {
	item, _ := find(s.shopping, func(i *types.ShoppingItem) bool {
		return i.HouseholdID == householdID && !i.IsBought() && strings.EqualFold(i.Name, name)
	})
	return item != nil
}

// MarkBought records the acting user as buyer of a pending item and
// completes their first purchase onboarding step. Items of other households
// are treated as missing.
func (s *Store) MarkBought(id string) bool {
	u := s.session.User
	if u == nil {
		return false
	}
	item, _ := findInHousehold(s.shopping, s.householdID(), shoppingOwner, func(i *types.ShoppingItem) bool { return i.ID == id })
	if item == nil || item.IsBought() {
		return false
	}
	item.Status = types.ShoppingBought
	item.BoughtBy = u.Name
	s.upsert(item)

	if s.completeStep(u, types.StepFirstPurchase) {
		s.upsert(u)
	}
	return true
}

// RemoveShoppingItem deletes an item of the current household.
func (s *Store) RemoveShoppingItem(id string) bool {
	item, i := findInHousehold(s.shopping, s.householdID(), shoppingOwner, func(i *types.ShoppingItem) bool { return i.ID == id })
	if item == nil {
		return false
	}
	s.shopping = removeAt(s.shopping, i)
	s.remove(types.ShoppingCollection, item.ID)
	return true
}
