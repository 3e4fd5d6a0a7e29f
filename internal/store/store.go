// Package store is the in-memory entity store for a flatshare session. It
// owns one ordered collection per entity type plus the session state, and
// every mutating operation follows the same shape: validate against local
// state, mutate synchronously, hand exactly the changed entities to the
// Mirror, return. Business-rule rejections are reported as false; errors are
// reserved for malformed input or a missing session.
//
// A Store has a single owner. It performs no locking; callers that share one
// across goroutines must serialize access themselves.
package store

import (
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/mesh-intelligence/flatshare/pkg/types"
)

// Mirror receives every local change. Calls must not block on the network.
type Mirror interface {
	Upsert(entity any)
	Remove(collection, key string)
	PushSnapshot(snap types.Snapshot)
}

type noopMirror struct{}

func (noopMirror) Upsert(any)                  {}
func (noopMirror) Remove(string, string)       {}
func (noopMirror) PushSnapshot(types.Snapshot) {}

// Store is the entity store.
type Store struct {
	mirror Mirror
	logger *slog.Logger
	now    func() time.Time
	newID  func() string
	rand   *rand.Rand

	users          []*types.User
	households     []*types.Household
	shopping       []*types.ShoppingItem
	tasks          []*types.Task
	tickets        []*types.Ticket
	events         []*types.CalendarEvent
	recipes        []*types.Recipe
	mealPlan       []*types.MealPlanSlot
	vault          []*types.VaultItem
	rewards        []*types.RewardItem
	joinRequests   []*types.JoinRequest
	recurringCosts []*types.RecurringCost
	guestPasses    []*types.GuestPass
	scenes         []*types.SmartScene
	pantry         []*types.PantryItem

	session     Session
	maintenance bool
	broadcast   string
	log         []LogEntry
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// WithClock sets the time source used for timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDGenerator replaces types.NewID for new entities.
func WithIDGenerator(gen func() string) Option {
	return func(s *Store) { s.newID = gen }
}

// WithSeed makes join code generation deterministic.
func WithSeed(seed uint64) Option {
	return func(s *Store) { s.rand = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)) }
}

// New creates an empty store that mirrors changes to m. A nil m discards
// them.
func New(m Mirror, opts ...Option) *Store {
	if m == nil {
		m = noopMirror{}
	}
	s := &Store{
		mirror: m,
		logger: slog.Default(),
		now:    time.Now,
		newID:  types.NewID,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rand == nil {
		s.rand = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return s
}

// Snapshot copies every collection.
func (s *Store) Snapshot() types.Snapshot {
	return types.Snapshot{
		Users:          copyAll(s.users, cloneUser),
		Households:     copyAll(s.households, cloneHousehold),
		Shopping:       copyAll(s.shopping, plain[types.ShoppingItem]),
		Tasks:          copyAll(s.tasks, plain[types.Task]),
		Tickets:        copyAll(s.tickets, cloneTicket),
		Events:         copyAll(s.events, plain[types.CalendarEvent]),
		Recipes:        copyAll(s.recipes, cloneRecipe),
		MealPlan:       copyAll(s.mealPlan, plain[types.MealPlanSlot]),
		Vault:          copyAll(s.vault, plain[types.VaultItem]),
		Rewards:        copyAll(s.rewards, cloneReward),
		JoinRequests:   copyAll(s.joinRequests, plain[types.JoinRequest]),
		RecurringCosts: copyAll(s.recurringCosts, plain[types.RecurringCost]),
		GuestPasses:    copyAll(s.guestPasses, plain[types.GuestPass]),
		Scenes:         copyAll(s.scenes, plain[types.SmartScene]),
		Pantry:         copyAll(s.pantry, plain[types.PantryItem]),
	}
}

// Replace swaps every collection for the contents of snap. Nothing is
// merged. Session pointers are re-resolved by id and dropped when the
// entity no longer exists. Replace does not mirror.
func (s *Store) Replace(snap types.Snapshot) {
	s.users = pointers(snap.Users, cloneUser)
	s.households = pointers(snap.Households, cloneHousehold)
	s.shopping = pointers(snap.Shopping, plain[types.ShoppingItem])
	s.tasks = pointers(snap.Tasks, plain[types.Task])
	s.tickets = pointers(snap.Tickets, cloneTicket)
	s.events = pointers(snap.Events, plain[types.CalendarEvent])
	s.recipes = pointers(snap.Recipes, cloneRecipe)
	s.mealPlan = pointers(snap.MealPlan, plain[types.MealPlanSlot])
	s.vault = pointers(snap.Vault, plain[types.VaultItem])
	s.rewards = pointers(snap.Rewards, cloneReward)
	s.joinRequests = pointers(snap.JoinRequests, plain[types.JoinRequest])
	s.recurringCosts = pointers(snap.RecurringCosts, plain[types.RecurringCost])
	s.guestPasses = pointers(snap.GuestPasses, plain[types.GuestPass])
	s.scenes = pointers(snap.Scenes, plain[types.SmartScene])
	s.pantry = pointers(snap.Pantry, plain[types.PantryItem])

	s.resolveSession()
}

// resolveSession repoints the session at the current collections.
func (s *Store) resolveSession() {
	var user, origin *types.User
	if s.session.User != nil {
		user = s.userByID(s.session.User.ID)
	}
	if s.session.Origin != nil {
		origin = s.userByID(s.session.Origin.ID)
	}
	s.session = Session{User: user, Origin: origin}
	if user != nil {
		s.session.Household = s.householdByID(user.HouseholdID)
	}
}

func (s *Store) upsert(entity any) {
	s.mirror.Upsert(entity)
}

func (s *Store) remove(collection, key string) {
	s.mirror.Remove(collection, key)
}

// currentHousehold returns the session household or ErrNoHousehold.
func (s *Store) currentHousehold() (*types.Household, error) {
	if s.session.User == nil {
		return nil, types.ErrNoSession
	}
	if s.session.Household == nil {
		return nil, types.ErrNoHousehold
	}
	return s.session.Household, nil
}

// householdID returns the session household id, or "" without one.
func (s *Store) householdID() string {
	if s.session.Household == nil {
		return ""
	}
	return s.session.Household.ID
}

// actor returns the current user's name for AddedBy/CreatedBy fields.
func (s *Store) actor() string {
	if s.session.User == nil {
		return ""
	}
	return s.session.User.Name
}

func (s *Store) userByID(id string) *types.User {
	u, _ := find(s.users, func(u *types.User) bool { return u.ID == id })
	return u
}

func (s *Store) householdByID(id string) *types.Household {
	if id == "" {
		return nil
	}
	h, _ := find(s.households, func(h *types.Household) bool { return h.ID == id })
	return h
}

// memberByName finds a member of the current household by display name.
func (s *Store) memberByName(name string) *types.User {
	hid := s.householdID()
	if hid == "" {
		return nil
	}
	u, _ := find(s.users, func(u *types.User) bool { return u.HouseholdID == hid && u.Name == name })
	return u
}
