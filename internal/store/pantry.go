package store

import (
	"strings"

	"github.com/mesh-intelligence/flatshare/pkg/types"
)

// Pantry returns the current household's staples.
func (s *Store) Pantry() []types.PantryItem {
	hid := s.householdID()
	return copyWhere(s.pantry, plain[types.PantryItem], func(p *types.PantryItem) bool { return hid != "" && p.HouseholdID == hid })
}

// AddPantryItem tracks a stocked staple.
func (s *Store) AddPantryItem(name string, quantity int) (types.PantryItem, error) {
	h, err := s.currentHousehold()
	if err != nil {
		return types.PantryItem{}, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return types.PantryItem{}, types.ErrInvalidName
	}
	if quantity < 0 {
		return types.PantryItem{}, types.ErrInvalidAmount
	}
	p := &types.PantryItem{
		ID:          s.newID(),
		HouseholdID: h.ID,
		Name:        name,
		Quantity:    quantity,
		Status:      types.PantryStocked,
	}
	s.pantry = append(s.pantry, p)
	s.upsert(p)
	return *p, nil
}

// SetPantryStatus changes a staple's stock level. Running out puts the item
// on the shopping list unless it is already pending there.
func (s *Store) SetPantryStatus(id string, status types.PantryStatus) bool {
	p, _ := findInHousehold(s.pantry, s.householdID(), pantryOwner, func(p *types.PantryItem) bool { return p.ID == id })
	if p == nil {
		return false
	}
	status = types.ParsePantryStatus(string(status), p.Status)
	if p.Status == status {
		return true
	}
	p.Status = status
	if status == types.PantryOut {
		p.Quantity = 0
	}
	s.upsert(p)

	if status == types.PantryOut && !s.hasPending(p.HouseholdID, p.Name) {
		s.addShoppingItem(p.HouseholdID, p.Name, 0)
	}
	return true
}

// RemovePantryItem stops tracking a staple.
func (s *Store) RemovePantryItem(id string) bool {
	p, i := findInHousehold(s.pantry, s.householdID(), pantryOwner, func(p *types.PantryItem) bool { return p.ID == id })
	if p == nil {
		return false
	}
	s.pantry = removeAt(s.pantry, i)
	s.remove(types.PantryCollection, p.ID)
	return true
}
