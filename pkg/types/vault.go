package types

// VaultKind classifies stored secrets.
type VaultKind string

// Vault item kinds.
const (
	VaultWifi     VaultKind = "wifi"
	VaultDoorCode VaultKind = "door_code"
	VaultContract VaultKind = "contract"
	VaultNote     VaultKind = "note"
)

// ParseVaultKind returns the kind named by s, or def when unknown.
func ParseVaultKind(s string, def VaultKind) VaultKind {
	switch VaultKind(s) {
	case VaultWifi, VaultDoorCode, VaultContract, VaultNote:
		return VaultKind(s)
	}
	return def
}

// VaultItem is a shared secret such as the Wi-Fi password or a door code.
type VaultItem struct {
	ID          string    `json:"id"`
	HouseholdID string    `json:"householdId"`
	Kind        VaultKind `json:"kind"`
	Label       string    `json:"label"`
	Secret      string    `json:"secret"`
}
