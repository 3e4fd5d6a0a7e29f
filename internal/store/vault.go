package store

import (
	"strings"

	"github.com/mesh-intelligence/flatshare/pkg/types"
)

// VaultItems returns the current household's shared secrets.
func (s *Store) VaultItems() []types.VaultItem {
	hid := s.householdID()
	return copyWhere(s.vault, plain[types.VaultItem], func(v *types.VaultItem) bool { return hid != "" && v.HouseholdID == hid })
}

// AddVaultItem stores a secret. Unknown kinds become notes.
func (s *Store) AddVaultItem(kind types.VaultKind, label, secret string) (types.VaultItem, error) {
	h, err := s.currentHousehold()
	if err != nil {
		return types.VaultItem{}, err
	}
	label = strings.TrimSpace(label)
	if label == "" {
		return types.VaultItem{}, types.ErrInvalidName
	}
	v := &types.VaultItem{
		ID:          s.newID(),
		HouseholdID: h.ID,
		Kind:        types.ParseVaultKind(string(kind), types.VaultNote),
		Label:       label,
		Secret:      secret,
	}
	s.vault = append(s.vault, v)
	s.upsert(v)
	return *v, nil
}

// RemoveVaultItem deletes a secret.
func (s *Store) RemoveVaultItem(id string) bool {
	v, i := findInHousehold(s.vault, s.householdID(), vaultOwner, func(v *types.VaultItem) bool { return v.ID == id })
	if v == nil {
		return false
	}
	s.vault = removeAt(s.vault, i)
	s.remove(types.VaultCollection, v.ID)
	return true
}

// WifiPassword returns the secret of the household's first Wi-Fi entry, or
// "" when there is none.
func (s *Store) WifiPassword() string {
	hid := s.householdID()
	v, _ := find(s.vault, func(v *types.VaultItem) bool { return hid != "" && v.HouseholdID == hid && v.Kind == types.VaultWifi })
	if v == nil {
		return ""
	}
	return v.Secret
}
