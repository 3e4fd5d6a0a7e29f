package types

import "time"

// ShoppingStatus is the purchase state of a shopping item.
type ShoppingStatus string

// Shopping item states.
const (
	ShoppingPending ShoppingStatus = "pending"
	ShoppingBought  ShoppingStatus = "bought"
)

// ParseShoppingStatus returns the status named by s, or def when unknown.
func ParseShoppingStatus(s string, def ShoppingStatus) ShoppingStatus {
	switch ShoppingStatus(s) {
	case ShoppingPending, ShoppingBought:
		return ShoppingStatus(s)
	}
	return def
}

// ShoppingItem is an entry on the shared shopping list. Bought items feed the
// balance ledger.
type ShoppingItem struct {
	ID          string         `json:"id"`
	HouseholdID string         `json:"householdId"`
	Name        string         `json:"name"`
	Price       float64        `json:"price"`
	Status      ShoppingStatus `json:"status"`
	AddedBy     string         `json:"addedBy"`
	BoughtBy    string         `json:"boughtBy"`
	CreatedAt   time.Time      `json:"createdAt"`
}

// IsBought reports whether the item has been purchased.
func (s *ShoppingItem) IsBought() bool {
	return s.Status == ShoppingBought
}
