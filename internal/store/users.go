package store

import (
	"sort"
	"strings"

	"github.com/mesh-intelligence/flatshare/pkg/types"
)

// Users returns every user in registration order.
func (s *Store) Users() []types.User {
	return copyAll(s.users, cloneUser)
}

// User returns the user with id.
func (s *Store) User(id string) (types.User, bool) {
	u := s.userByID(id)
	if u == nil {
		return types.User{}, false
	}
	return cloneUser(*u), true
}

// UserByEmail looks a user up by email ignoring case.
func (s *Store) UserByEmail(email string) (types.User, bool) {
	u, _ := find(s.users, func(u *types.User) bool { return u.EmailMatches(email) })
	if u == nil {
		return types.User{}, false
	}
	return cloneUser(*u), true
}

// Members returns the current household's members in collection order.
func (s *Store) Members() []types.User {
	return s.MembersOf(s.householdID())
}

// MembersOf returns the members of householdID in collection order.
func (s *Store) MembersOf(householdID string) []types.User {
	if householdID == "" {
		return []types.User{}
	}
	return copyWhere(s.users, cloneUser, func(u *types.User) bool { return u.HouseholdID == householdID })
}

func (s *Store) members() []*types.User {
	hid := s.householdID()
	var out []*types.User
	if hid == "" {
		return out
	}
	for _, u := range s.users {
		if u.HouseholdID == hid {
			out = append(out, u)
		}
	}
	return out
}

// sortedMembers returns the current members ordered by name.
func (s *Store) sortedMembers() []*types.User {
	members := s.members()
	sort.SliceStable(members, func(i, j int) bool { return members[i].Name < members[j].Name })
	return members
}

// Households returns every household.
func (s *Store) Households() []types.Household {
	return copyAll(s.households, cloneHousehold)
}

// HouseholdByCode looks a household up by join code ignoring case.
func (s *Store) HouseholdByCode(code string) (types.Household, bool) {
	h, _ := find(s.households, func(h *types.Household) bool { return h.CodeMatches(code) })
	if h == nil {
		return types.Household{}, false
	}
	return cloneHousehold(*h), true
}

// UpdateBudget sets the current household's monthly budget.
func (s *Store) UpdateBudget(amount float64) error {
	h, err := s.currentHousehold()
	if err != nil {
		return err
	}
	if amount < 0 {
		return types.ErrInvalidAmount
	}
	h.MonthlyBudget = amount
	s.upsert(h)
	return nil
}

// UpdateRules replaces the current household's rules text and completes the
// acting user's house rules onboarding step.
func (s *Store) UpdateRules(rules string) error {
	h, err := s.currentHousehold()
	if err != nil {
		return err
	}
	h.Rules = rules
	s.upsert(h)
	if s.completeStep(s.session.User, types.StepHouseRules) {
		s.upsert(s.session.User)
	}
	return nil
}

// AddAmenity adds name to the current household's amenities. It returns
// false when already present.
func (s *Store) AddAmenity(name string) bool {
	name = strings.TrimSpace(name)
	h, err := s.currentHousehold()
	if err != nil || name == "" {
		return false
	}
	if !h.AddAmenity(name) {
		return false
	}
	s.upsert(h)
	return true
}

// RemoveAmenity drops name from the current household's amenities.
func (s *Store) RemoveAmenity(name string) bool {
	h, err := s.currentHousehold()
	if err != nil {
		return false
	}
	if !h.RemoveAmenity(name) {
		return false
	}
	s.upsert(h)
	return true
}
