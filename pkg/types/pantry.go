package types

// PantryStatus is the stock level of a pantry item.
type PantryStatus string

// Pantry stock levels.
const (
	PantryStocked PantryStatus = "stocked"
	PantryLow     PantryStatus = "low"
	PantryOut     PantryStatus = "out"
)

// ParsePantryStatus returns the status named by s, or def when unknown.
func ParsePantryStatus(s string, def PantryStatus) PantryStatus {
	switch PantryStatus(s) {
	case PantryStocked, PantryLow, PantryOut:
		return PantryStatus(s)
	}
	return def
}

// PantryItem is a shared staple tracked by stock level.
type PantryItem struct {
	ID          string       `json:"id"`
	HouseholdID string       `json:"householdId"`
	Name        string       `json:"name"`
	Quantity    int          `json:"quantity"`
	Status      PantryStatus `json:"status"`
}
