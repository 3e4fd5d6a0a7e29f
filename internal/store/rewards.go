package store

import (
	"strings"

	"github.com/mesh-intelligence/flatshare/pkg/types"
)

// Rewards returns the current household's reward shop.
func (s *Store) Rewards() []types.RewardItem {
	hid := s.householdID()
	return copyWhere(s.rewards, cloneReward, func(r *types.RewardItem) bool { return hid != "" && r.HouseholdID == hid })
}

// AddReward offers something for cost points.
func (s *Store) AddReward(title string, cost int) (types.RewardItem, error) {
	h, err := s.currentHousehold()
	if err != nil {
		return types.RewardItem{}, err
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return types.RewardItem{}, types.ErrInvalidName
	}
	if cost < 0 {
		return types.RewardItem{}, types.ErrInvalidAmount
	}
	r := &types.RewardItem{
		ID:          s.newID(),
		HouseholdID: h.ID,
		Title:       title,
		Cost:        cost,
		RedeemedBy:  []string{},
	}
	s.rewards = append(s.rewards, r)
	s.upsert(r)
	return cloneReward(*r), nil
}

// RedeemReward spends the acting user's points on a reward. It returns false
// when they cannot afford it.
func (s *Store) RedeemReward(id string) bool {
	u := s.session.User
	if u == nil {
		return false
	}
	r, _ := findInHousehold(s.rewards, s.householdID(), rewardOwner, func(r *types.RewardItem) bool { return r.ID == id })
	if r == nil || u.Points < r.Cost {
		return false
	}
	u.AddPoints(-r.Cost)
	r.RedeemedBy = append(r.RedeemedBy, u.Name)
	s.upsert(u)
	s.upsert(r)
	s.addLog("%s redeemed %s", u.Name, r.Title)
	return true
}
