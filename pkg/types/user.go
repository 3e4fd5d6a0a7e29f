package types

import (
	"strings"
	"time"
)

// Role is a user's authority level.
type Role string

// User roles.
const (
	RoleMember     Role = "member"
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "super-admin"
)

// ParseRole returns the Role named by s, or def when s is empty or unknown.
func ParseRole(s string, def Role) Role {
	switch Role(s) {
	case RoleMember, RoleAdmin, RoleSuperAdmin:
		return Role(s)
	}
	return def
}

// IsElevated reports whether r is admin or super-admin.
func (r Role) IsElevated() bool {
	return r == RoleAdmin || r == RoleSuperAdmin
}

// User is a registered flatmate.
type User struct {
	// ID is a UUID v7, generated on registration.
	ID string `json:"id"`

	// Name is the display name. Tasks and shopping items reference users by name.
	Name string `json:"name"`

	// Email is unique across users, compared case-insensitively.
	Email string `json:"email"`

	// Password is matched verbatim on login.
	Password string `json:"-"`

	Role Role `json:"role"`

	// HouseholdID is empty until the user joins or creates a household.
	HouseholdID string `json:"householdId"`

	// HasHousehold mirrors HouseholdID != "" and is kept in step by SetHousehold.
	HasHousehold bool `json:"hasWG"`

	// Points never drops below zero.
	Points int `json:"points"`

	Onboarding          []OnboardingItem `json:"onboarding"`
	OnboardingCompleted bool             `json:"onboardingCompleted"`

	CreatedAt time.Time `json:"createdAt"`
}

// SetHousehold links the user to householdID, or unlinks when it is empty.
func (u *User) SetHousehold(householdID string) {
	u.HouseholdID = householdID
	u.HasHousehold = householdID != ""
}

// AddPoints adjusts Points by delta, clamping the result at zero.
func (u *User) AddPoints(delta int) {
	u.Points += delta
	if u.Points < 0 {
		u.Points = 0
	}
}

// LevelTitle returns the user's rank title derived from Points.
func (u *User) LevelTitle() string {
	return LevelTitle(u.Points)
}

// EmailMatches reports whether email equals the user's email ignoring case.
func (u *User) EmailMatches(email string) bool {
	return strings.EqualFold(strings.TrimSpace(email), u.Email)
}

// Level thresholds, highest first.
var levelTitles = []struct {
	min   int
	title string
}{
	{500, "Flat Legend"},
	{300, "House Hero"},
	{150, "Chore Champion"},
	{50, "Helping Hand"},
}

// LevelTitle maps a point total to its rank title.
func LevelTitle(points int) string {
	for _, l := range levelTitles {
		if points >= l.min {
			return l.title
		}
	}
	return "Newcomer"
}
