package types

// SmartScene is a named smart-home preset that can be switched on and off.
type SmartScene struct {
	ID          string `json:"id"`
	HouseholdID string `json:"householdId"`
	Name        string `json:"name"`
	IsActive    bool   `json:"isActive"`
}
