package types

// RecurringCost is a fixed monthly expense such as rent or internet. Only
// active costs count toward totals.
type RecurringCost struct {
	ID          string  `json:"id"`
	HouseholdID string  `json:"householdId"`
	Name        string  `json:"name"`
	Amount      float64 `json:"amount"`
	IsActive    bool    `json:"isActive"`
}
