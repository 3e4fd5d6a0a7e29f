package types

import (
	"strings"
	"time"
)

// Household is a shared flat. Members reference it through User.HouseholdID.
type Household struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`

	// JoinCode is generated once at creation and unique among households.
	// Matching is case-insensitive.
	JoinCode string `json:"joinCode"`

	MonthlyBudget float64 `json:"monthlyBudget"`

	// Rules is the free-text house rules blob.
	Rules string `json:"rules"`

	// Amenities has set semantics; AddAmenity ignores duplicates.
	Amenities []string `json:"amenities"`

	CreatedAt time.Time `json:"createdAt"`
}

// CodeMatches reports whether code equals the join code ignoring case.
func (h *Household) CodeMatches(code string) bool {
	return strings.EqualFold(strings.TrimSpace(code), h.JoinCode)
}

// AddAmenity adds name unless already present. It reports whether the set changed.
func (h *Household) AddAmenity(name string) bool {
	for _, a := range h.Amenities {
		if a == name {
			return false
		}
	}
	h.Amenities = append(h.Amenities, name)
	return true
}

// RemoveAmenity deletes name. It reports whether the set changed.
func (h *Household) RemoveAmenity(name string) bool {
	for i, a := range h.Amenities {
		if a == name {
			h.Amenities = append(h.Amenities[:i], h.Amenities[i+1:]...)
			return true
		}
	}
	return false
}
