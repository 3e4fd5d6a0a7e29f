package store

import (
	"github.com/mesh-intelligence/flatshare/pkg/types"
)

// JoinRequests returns every join request.
func (s *Store) JoinRequests() []types.JoinRequest {
	return copyAll(s.joinRequests, plain[types.JoinRequest])
}

// PendingJoinRequests returns the open requests for the current household.
func (s *Store) PendingJoinRequests() []types.JoinRequest {
	hid := s.householdID()
	return copyWhere(s.joinRequests, plain[types.JoinRequest], func(j *types.JoinRequest) bool {
		return hid != "" && j.HouseholdID == hid && j.Status == types.JoinPending
	})
}

// RequestToJoin asks to join the household with code. It returns false for an
// unknown code, when the user already belongs to it, or when a pending
// request for the same user and household exists.
func (s *Store) RequestToJoin(code string) (types.JoinRequest, bool) {
	u := s.session.User
	if u == nil {
		return types.JoinRequest{}, false
	}
	h, _ := find(s.households, func(h *types.Household) bool { return h.CodeMatches(code) })
	if h == nil || u.HouseholdID == h.ID {
		return types.JoinRequest{}, false
	}
	dup, _ := find(s.joinRequests, func(j *types.JoinRequest) bool {
		return j.UserID == u.ID && j.HouseholdID == h.ID && j.Status == types.JoinPending
	})
	if dup != nil {
		return types.JoinRequest{}, false
	}

	j := &types.JoinRequest{
		ID:          s.newID(),
		UserID:      u.ID,
		UserName:    u.Name,
		HouseholdID: h.ID,
		Status:      types.JoinPending,
		CreatedAt:   s.now(),
	}
	s.joinRequests = append(s.joinRequests, j)
	s.upsert(j)
	s.addLog("%s asked to join %s", u.Name, h.Name)
	return *j, true
}

// ApproveJoinRequest admits the requester into the household.
func (s *Store) ApproveJoinRequest(id string) bool {
	j := s.pendingRequest(id)
	if j == nil {
		return false
	}
	j.Status = types.JoinApproved
	s.upsert(j)

	if u := s.userByID(j.UserID); u != nil && s.householdByID(j.HouseholdID) != nil {
		u.SetHousehold(j.HouseholdID)
		s.completeStep(u, types.StepHousehold)
		s.upsert(u)
		if s.session.User == u {
			s.session.Household = s.householdByID(j.HouseholdID)
		}
	}
	s.addLog("%s was admitted", j.UserName)
	return true
}

// RejectJoinRequest declines a pending request.
func (s *Store) RejectJoinRequest(id string) bool {
	j := s.pendingRequest(id)
	if j == nil {
		return false
	}
	j.Status = types.JoinRejected
	s.upsert(j)
	return true
}

func (s *Store) pendingRequest(id string) *types.JoinRequest {
	j, _ := find(s.joinRequests, func(j *types.JoinRequest) bool { return j.ID == id })
	if j == nil || j.Status != types.JoinPending {
		return nil
	}
	return j
}
