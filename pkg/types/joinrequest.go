package types

import "time"

// JoinStatus is the review state of a join request.
type JoinStatus string

// Join request states.
const (
	JoinPending  JoinStatus = "pending"
	JoinApproved JoinStatus = "approved"
	JoinRejected JoinStatus = "rejected"
)

// ParseJoinStatus returns the status named by s, or def when unknown.
func ParseJoinStatus(s string, def JoinStatus) JoinStatus {
	switch JoinStatus(s) {
	case JoinPending, JoinApproved, JoinRejected:
		return JoinStatus(s)
	}
	return def
}

// JoinRequest asks a household admin to admit a user. At most one pending
// request exists per (UserID, HouseholdID).
type JoinRequest struct {
	ID          string     `json:"id"`
	UserID      string     `json:"userId"`
	UserName    string     `json:"userName"`
	HouseholdID string     `json:"householdId"`
	Status      JoinStatus `json:"status"`
	CreatedAt   time.Time  `json:"createdAt"`
}
