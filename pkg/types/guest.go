package types

import "time"

// GuestPassStatus is the validity state of a guest pass.
type GuestPassStatus string

// Guest pass states.
const (
	GuestActive  GuestPassStatus = "active"
	GuestRevoked GuestPassStatus = "revoked"
	GuestExpired GuestPassStatus = "expired"
)

// ParseGuestPassStatus returns the status named by s, or def when unknown.
func ParseGuestPassStatus(s string, def GuestPassStatus) GuestPassStatus {
	switch GuestPassStatus(s) {
	case GuestActive, GuestRevoked, GuestExpired:
		return GuestPassStatus(s)
	}
	return def
}

// GuestPass grants a visitor temporary access, including the Wi-Fi password.
type GuestPass struct {
	ID           string          `json:"id"`
	HouseholdID  string          `json:"householdId"`
	GuestName    string          `json:"guestName"`
	WifiPassword string          `json:"wifiPassword"`
	ValidUntil   time.Time       `json:"validUntil"`
	Status       GuestPassStatus `json:"status"`
	CreatedBy    string          `json:"createdBy"`
}
