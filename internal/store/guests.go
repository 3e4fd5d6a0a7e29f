package store

import (
	"strings"
	"time"

	"github.com/mesh-intelligence/flatshare/pkg/types"
)

// GuestPasses returns the current household's guest passes.
func (s *Store) GuestPasses() []types.GuestPass {
	hid := s.householdID()
	return copyWhere(s.guestPasses, plain[types.GuestPass], func(g *types.GuestPass) bool { return hid != "" && g.HouseholdID == hid })
}

// CreateGuestPass issues an active pass. An empty wifiPassword is filled from
// the household's Wi-Fi vault entry.
func (s *Store) CreateGuestPass(guest string, validUntil time.Time, wifiPassword string) (types.GuestPass, error) {
	h, err := s.currentHousehold()
	if err != nil {
		return types.GuestPass{}, err
	}
	guest = strings.TrimSpace(guest)
	if guest == "" {
		return types.GuestPass{}, types.ErrInvalidName
	}
	if wifiPassword == "" {
		wifiPassword = s.WifiPassword()
	}
	g := &types.GuestPass{
		ID:           s.newID(),
		HouseholdID:  h.ID,
		GuestName:    guest,
		WifiPassword: wifiPassword,
		ValidUntil:   validUntil,
		Status:       types.GuestActive,
		CreatedBy:    s.actor(),
	}
	s.guestPasses = append(s.guestPasses, g)
	s.upsert(g)
	return *g, nil
}

// RevokeGuestPass cancels an active pass.
func (s *Store) RevokeGuestPass(id string) bool {
	g, _ := findInHousehold(s.guestPasses, s.householdID(), guestOwner, func(g *types.GuestPass) bool { return g.ID == id })
	if g == nil || g.Status != types.GuestActive {
		return false
	}
	g.Status = types.GuestRevoked
	s.upsert(g)
	return true
}

// ExpireGuestPasses marks every active pass whose validity ended before now
// as expired. It returns the number expired.
func (s *Store) ExpireGuestPasses(now time.Time) int {
	n := 0
	for _, g := range s.guestPasses {
		if g.Status == types.GuestActive && g.ValidUntil.Before(now) {
			g.Status = types.GuestExpired
			s.upsert(g)
			n++
		}
	}
	return n
}
