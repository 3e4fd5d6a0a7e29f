package store

import (
	"fmt"
	"slices"
	"time"

	"github.com/mesh-intelligence/flatshare/pkg/types"
)

// LogCapacity is the number of notification log entries kept.
const LogCapacity = 50

// LogEntry is one notification log line.
type LogEntry struct {
	At      time.Time `json:"at"`
	Message string    `json:"message"`
}

// addLog prepends a message, dropping the oldest beyond LogCapacity.
func (s *Store) addLog(format string, args ...any) {
	entry := LogEntry{At: s.now(), Message: fmt.Sprintf(format, args...)}
	s.log = slices.Insert(s.log, 0, entry)
	if len(s.log) > LogCapacity {
		s.log = s.log[:LogCapacity]
	}
	s.logger.Info(entry.Message)
}

// Log returns the notification log, most recent first.
func (s *Store) Log() []LogEntry {
	return slices.Clone(s.log)
}

// MaintenanceMode reports whether maintenance mode is on.
func (s *Store) MaintenanceMode() bool {
	return s.maintenance
}

// SetMaintenanceMode switches maintenance mode, logging transitions.
func (s *Store) SetMaintenanceMode(on bool) {
	if s.maintenance == on {
		return
	}
	s.maintenance = on
	if on {
		s.addLog("maintenance mode enabled")
	} else {
		s.addLog("maintenance mode disabled")
	}
}

// Broadcast returns the current broadcast message.
func (s *Store) Broadcast() string {
	return s.broadcast
}

// SetBroadcast replaces the broadcast message. An empty message clears it.
func (s *Store) SetBroadcast(msg string) {
	if s.broadcast == msg {
		return
	}
	s.broadcast = msg
	if msg == "" {
		s.addLog("broadcast cleared")
	} else {
		s.addLog("broadcast: %s", msg)
	}
}

// NukeAllContent empties every content collection, keeps users and
// households, and pushes the resulting snapshot.
func (s *Store) NukeAllContent() {
	s.shopping = nil
	s.tasks = nil
	s.tickets = nil
	s.events = nil
	s.recipes = nil
	s.mealPlan = nil
	s.vault = nil
	s.rewards = nil
	s.joinRequests = nil
	s.recurringCosts = nil
	s.guestPasses = nil
	s.scenes = nil
	s.pantry = nil

	s.mirror.PushSnapshot(s.Snapshot())
	s.addLog("all content deleted")
}

// SetUserRole changes a user's role.
func (s *Store) SetUserRole(userID string, role types.Role) bool {
	u := s.userByID(userID)
	if u == nil || types.ParseRole(string(role), "") == "" {
		return false
	}
	u.Role = role
	s.upsert(u)
	s.addLog("%s is now %s", u.Name, role)
	return true
}

// DeleteUser removes a user. Content referencing them by name is kept. A
// deleted acting user is logged out.
func (s *Store) DeleteUser(userID string) bool {
	u, i := find(s.users, func(u *types.User) bool { return u.ID == userID })
	if u == nil {
		return false
	}
	s.users = removeAt(s.users, i)
	s.remove(types.UsersCollection, u.ID)

	if s.session.User == u {
		s.Logout()
	}
	if s.session.Origin == u {
		s.session.Origin = nil
	}
	s.addLog("user %s deleted", u.Name)
	return true
}

// DeleteHousehold removes a household and unlinks its members. Nothing else
// is deleted.
func (s *Store) DeleteHousehold(householdID string) bool {
	h, i := find(s.households, func(h *types.Household) bool { return h.ID == householdID })
	if h == nil {
		return false
	}
	s.households = removeAt(s.households, i)

	for _, u := range s.users {
		if u.HouseholdID == h.ID {
			u.SetHousehold("")
			s.upsert(u)
		}
	}
	if s.session.Household == h {
		s.session.Household = nil
	}
	s.remove(types.HouseholdsCollection, h.ID)
	s.addLog("household %s deleted", h.Name)
	return true
}

// AwardPoints adds n points to a user.
func (s *Store) AwardPoints(userID string, n int) bool {
	u := s.userByID(userID)
	if u == nil || n < 0 {
		return false
	}
	u.AddPoints(n)
	s.upsert(u)
	return true
}

// DeductPoints removes n points from a user, stopping at zero.
func (s *Store) DeductPoints(userID string, n int) bool {
	u := s.userByID(userID)
	if u == nil || n < 0 {
		return false
	}
	u.AddPoints(-n)
	s.upsert(u)
	return true
}
