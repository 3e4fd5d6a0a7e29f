package types

// RewardItem is something members can buy with points.
type RewardItem struct {
	ID          string `json:"id"`
	HouseholdID string `json:"householdId"`
	Title       string `json:"title"`

	// Cost is the point price.
	Cost int `json:"cost"`

	// RedeemedBy lists member names in redemption order.
	RedeemedBy []string `json:"redeemedBy"`
}
