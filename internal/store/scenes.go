package store

import (
	"strings"

	"github.com/mesh-intelligence/flatshare/pkg/types"
)

// Scenes returns the current household's smart-home scenes.
func (s *Store) Scenes() []types.SmartScene {
	hid := s.householdID()
	return copyWhere(s.scenes, plain[types.SmartScene], func(sc *types.SmartScene) bool { return hid != "" && sc.HouseholdID == hid })
}

// AddScene adds an inactive scene.
func (s *Store) AddScene(name string) (types.SmartScene, error) {
	h, err := s.currentHousehold()
	if err != nil {
		return types.SmartScene{}, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return types.SmartScene{}, types.ErrInvalidName
	}
	sc := &types.SmartScene{ID: s.newID(), HouseholdID: h.ID, Name: name}
	s.scenes = append(s.scenes, sc)
	s.upsert(sc)
	return *sc, nil
}

// ToggleScene flips a scene and reports its new state. Only switching on
// posts a notification.
func (s *Store) ToggleScene(id string) (active, ok bool) {
	sc, _ := findInHousehold(s.scenes, s.householdID(), sceneOwner, func(sc *types.SmartScene) bool { return sc.ID == id })
	if sc == nil {
		return false, false
	}
	sc.IsActive = !sc.IsActive
	s.upsert(sc)
	if sc.IsActive {
		s.addLog("scene %s activated", sc.Name)
	}
	return sc.IsActive, true
}
