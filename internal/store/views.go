package store

import (
	"sort"

	"github.com/mesh-intelligence/flatshare/pkg/types"
)

// Badge marks a leaderboard rank.
type Badge string

// Leaderboard badges.
const (
	BadgeTop     Badge = "top"
	BadgeMiddle  Badge = "middle"
	BadgeBottom  Badge = "bottom"
	BadgeNeutral Badge = "neutral"
)

// Score weights.
const (
	TaskScore     = 5
	PurchaseScore = 3
)

// LeaderboardEntry is one member's ranking.
type LeaderboardEntry struct {
	UserID         string `json:"userId"`
	Name           string `json:"name"`
	Points         int    `json:"points"`
	CompletedTasks int    `json:"completedTasks"`
	BoughtItems    int    `json:"boughtItems"`
	Score          int    `json:"score"`
	Level          string `json:"level"`
	Badge          Badge  `json:"badge"`
}

// Leaderboard ranks the current household's members by points plus
// TaskScore per completed chore plus PurchaseScore per bought item, highest
// first. Ties keep member order.
func (s *Store) Leaderboard() []LeaderboardEntry {
	members := s.members()
	hid := s.householdID()

	tasks := make(map[string]int)
	for _, t := range s.tasks {
		if t.HouseholdID == hid && t.Completed {
			tasks[t.AssignedTo]++
		}
	}
	bought := make(map[string]int)
	for _, item := range s.shopping {
		if item.HouseholdID == hid && item.IsBought() {
			bought[item.BoughtBy]++
		}
	}

	out := make([]LeaderboardEntry, 0, len(members))
	for _, m := range members {
		e := LeaderboardEntry{
			UserID:         m.ID,
			Name:           m.Name,
			Points:         m.Points,
			CompletedTasks: tasks[m.Name],
			BoughtItems:    bought[m.Name],
			Level:          types.LevelTitle(m.Points),
		}
		e.Score = e.Points + e.CompletedTasks*TaskScore + e.BoughtItems*PurchaseScore
		out = append(out, e)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })

	for i := range out {
		out[i].Badge = badgeFor(i, len(out))
	}
	return out
}

// badgeFor assigns the badge for rank in a board of n.
func badgeFor(rank, n int) Badge {
	switch {
	case rank == 0:
		return BadgeTop
	case n > 1 && rank == n-1:
		return BadgeBottom
	case n > 2 && rank == n-2:
		return BadgeMiddle
	}
	return BadgeNeutral
}
