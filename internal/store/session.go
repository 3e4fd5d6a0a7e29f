package store

import (
	"strings"

	"github.com/mesh-intelligence/flatshare/pkg/types"
)

// Session is the authority state: who is acting, in which household, and
// which super-admin is paused while impersonating. Origin is only ever set
// together with User.
type Session struct {
	User      *types.User
	Household *types.Household
	Origin    *types.User
}

// IsImpersonating reports whether an origin user is paused.
func (s Session) IsImpersonating() bool {
	return s.Origin != nil
}

// Session returns a copy of the session with copied entities.
func (s *Store) Session() Session {
	var out Session
	if s.session.User != nil {
		u := cloneUser(*s.session.User)
		out.User = &u
	}
	if s.session.Household != nil {
		h := cloneHousehold(*s.session.Household)
		out.Household = &h
	}
	if s.session.Origin != nil {
		o := cloneUser(*s.session.Origin)
		out.Origin = &o
	}
	return out
}

// CurrentUser returns the acting user.
func (s *Store) CurrentUser() (types.User, bool) {
	if s.session.User == nil {
		return types.User{}, false
	}
	return cloneUser(*s.session.User), true
}

// CurrentHousehold returns the acting user's household.
func (s *Store) CurrentHousehold() (types.Household, bool) {
	if s.session.Household == nil {
		return types.Household{}, false
	}
	return cloneHousehold(*s.session.Household), true
}

// IsImpersonating reports whether a super-admin is acting as another user.
func (s *Store) IsImpersonating() bool {
	return s.session.IsImpersonating()
}

// Login matches email case-insensitively and password exactly. Unknown email
// and wrong password are indistinguishable. An elevated user who already has
// a household has onboarding force-completed without the bonus.
func (s *Store) Login(email, password string) (types.User, bool) {
	u, _ := find(s.users, func(u *types.User) bool {
		return u.EmailMatches(email) && u.Password == password
	})
	if u == nil {
		s.logger.Debug("login rejected", "email", email)
		return types.User{}, false
	}

	s.session.User = u
	s.session.Household = s.householdByID(u.HouseholdID)

	if u.HasHousehold && u.Role.IsElevated() {
		s.forceCompleteOnboarding(u)
		s.upsert(u)
	}
	s.logger.Info("login", "user", u.Name)
	return cloneUser(*u), true
}

// Register creates a member and makes it the current user. It returns false
// when the email is taken.
func (s *Store) Register(name, email, password string) (types.User, bool) {
	email = strings.TrimSpace(email)
	if email == "" {
		return types.User{}, false
	}
	if existing, _ := find(s.users, func(u *types.User) bool { return u.EmailMatches(email) }); existing != nil {
		return types.User{}, false
	}

	u := &types.User{
		ID:         s.newID(),
		Name:       strings.TrimSpace(name),
		Email:      email,
		Password:   password,
		Role:       types.RoleMember,
		Onboarding: types.NewOnboarding(),
		CreatedAt:  s.now(),
	}
	u.SetHousehold("")
	s.users = append(s.users, u)

	s.session.User = u
	s.session.Household = nil
	s.upsert(u)
	s.logger.Info("registered", "user", u.Name)
	return cloneUser(*u), true
}

// Logout clears the user and household. An impersonation origin survives.
func (s *Store) Logout() {
	s.session.User = nil
	s.session.Household = nil
}

// JoinHouseholdByCode links the current user to the household whose join
// code matches code ignoring case. It returns false for an unknown code or
// without a current user.
func (s *Store) JoinHouseholdByCode(code string) bool {
	u := s.session.User
	if u == nil {
		return false
	}
	h, _ := find(s.households, func(h *types.Household) bool { return h.CodeMatches(code) })
	if h == nil {
		return false
	}

	u.SetHousehold(h.ID)
	s.session.Household = h
	s.completeStep(u, types.StepHousehold)
	s.upsert(u)
	s.logger.Info("joined household", "user", u.Name, "household", h.Name)
	return true
}

// CreateHousehold creates a household with a fresh join code and links the
// current user to it, if there is one.
func (s *Store) CreateHousehold(name, address string) types.Household {
	h := &types.Household{
		ID:        s.newID(),
		Name:      strings.TrimSpace(name),
		Address:   strings.TrimSpace(address),
		JoinCode:  s.uniqueJoinCode(),
		Amenities: []string{},
		CreatedAt: s.now(),
	}
	s.households = append(s.households, h)
	s.upsert(h)

	if u := s.session.User; u != nil {
		u.SetHousehold(h.ID)
		s.session.Household = h
		s.completeStep(u, types.StepHousehold)
		s.upsert(u)
	}
	s.logger.Info("created household", "household", h.Name, "code", h.JoinCode)
	return cloneHousehold(*h)
}

// LeaveHousehold unlinks the current user from their household.
func (s *Store) LeaveHousehold() bool {
	u := s.session.User
	if u == nil || !u.HasHousehold {
		return false
	}
	u.SetHousehold("")
	s.session.Household = nil
	s.upsert(u)
	return true
}

// Impersonate makes userID the acting user and pauses the real one. Calling
// it again while impersonating replaces the paused user with the current
// (impersonated) one.
func (s *Store) Impersonate(userID string) bool {
	acting := s.session.User
	if acting == nil {
		return false
	}
	target := s.userByID(userID)
	if target == nil {
		return false
	}

	s.session = Session{
		User:      target,
		Household: s.householdByID(target.HouseholdID),
		Origin:    acting,
	}
	s.addLog("%s is impersonating %s", acting.Name, target.Name)
	return true
}

// StopImpersonation restores the paused user.
func (s *Store) StopImpersonation() bool {
	origin := s.session.Origin
	if origin == nil {
		return false
	}
	impersonated := s.session.User
	s.session = Session{
		User:      origin,
		Household: s.householdByID(origin.HouseholdID),
	}
	if impersonated != nil {
		s.addLog("%s stopped impersonating %s", origin.Name, impersonated.Name)
	}
	return true
}

const joinCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

const joinCodeLength = 6

// uniqueJoinCode generates a code not used by any household, compared
// case-insensitively.
func (s *Store) uniqueJoinCode() string {
	for {
		b := make([]byte, joinCodeLength)
		for i := range b {
			b[i] = joinCodeAlphabet[s.rand.IntN(len(joinCodeAlphabet))]
		}
		code := string(b)
		if taken, _ := find(s.households, func(h *types.Household) bool { return h.CodeMatches(code) }); taken == nil {
			return code
		}
	}
}
