package store

import (
	"strings"

	"github.com/mesh-intelligence/flatshare/pkg/types"
)

// KudosPoints is awarded to the target of a kudos.
const KudosPoints = 10

// Tickets returns the current household's board.
func (s *Store) Tickets() []types.Ticket {
	hid := s.householdID()
	return copyWhere(s.tickets, cloneTicket, func(t *types.Ticket) bool { return hid != "" && t.HouseholdID == hid })
}

// CreateTicket posts a complaint or kudos-style message without a target.
func (s *Store) CreateTicket(typ types.TicketType, title, body string) (types.Ticket, error) {
	h, err := s.currentHousehold()
	if err != nil {
		return types.Ticket{}, err
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return types.Ticket{}, types.ErrInvalidName
	}
	t := s.newTicket(h.ID, types.ParseTicketType(string(typ), types.TicketComplaint), title, body)
	s.tickets = append(s.tickets, t)
	s.upsert(t)
	return cloneTicket(*t), nil
}

func (s *Store) newTicket(householdID string, typ types.TicketType, title, body string) *types.Ticket {
	return &types.Ticket{
		ID:          s.newID(),
		HouseholdID: householdID,
		Type:        typ,
		Title:       title,
		Body:        body,
		Author:      s.actor(),
		CreatedAt:   s.now(),
	}
}

// CreatePoll posts a poll. Options are trimmed and de-duplicated; at least
// two must remain.
func (s *Store) CreatePoll(title string, options []string) (types.Ticket, error) {
	h, err := s.currentHousehold()
	if err != nil {
		return types.Ticket{}, err
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return types.Ticket{}, types.ErrInvalidName
	}

	var opts []string
	seen := make(map[string]bool, len(options))
	for _, o := range options {
		o = strings.TrimSpace(o)
		if o == "" || seen[o] {
			continue
		}
		seen[o] = true
		opts = append(opts, o)
	}
	if len(opts) < 2 {
		return types.Ticket{}, types.ErrInvalidOptions
	}

	t := s.newTicket(h.ID, types.TicketPoll, title, "")
	t.Options = opts
	t.Votes = map[string]string{}
	s.tickets = append(s.tickets, t)
	s.upsert(t)
	return cloneTicket(*t), nil
}

// GiveKudos thanks a member publicly. The target gains KudosPoints when they
// are a member of the household.
func (s *Store) GiveKudos(target, message string) (types.Ticket, error) {
	h, err := s.currentHousehold()
	if err != nil {
		return types.Ticket{}, err
	}
	target = strings.TrimSpace(target)
	if target == "" {
		return types.Ticket{}, types.ErrInvalidName
	}

	t := s.newTicket(h.ID, types.TicketKudos, "Kudos for "+target, message)
	t.Target = target
	s.tickets = append(s.tickets, t)
	s.upsert(t)

	if u := s.memberByName(target); u != nil {
		u.AddPoints(KudosPoints)
		s.upsert(u)
	}
	s.addLog("%s gave kudos to %s", t.Author, target)
	return cloneTicket(*t), nil
}

// Vote records the acting user's choice on a poll, replacing an earlier
// vote. It returns false for non-polls, resolved polls, and unknown options.
func (s *Store) Vote(ticketID, option string) bool {
	u := s.session.User
	if u == nil {
		return false
	}
	t, _ := findInHousehold(s.tickets, s.householdID(), ticketOwner, func(t *types.Ticket) bool { return t.ID == ticketID })
	if t == nil || t.Type != types.TicketPoll || t.Resolved || !t.HasOption(option) {
		return false
	}
	if t.Votes == nil {
		t.Votes = map[string]string{}
	}
	t.Votes[u.Name] = option
	s.upsert(t)
	return true
}

// ResolveTicket closes a ticket.
func (s *Store) ResolveTicket(id string) bool {
	t, _ := findInHousehold(s.tickets, s.householdID(), ticketOwner, func(t *types.Ticket) bool { return t.ID == id })
	if t == nil || t.Resolved {
		return false
	}
	t.Resolved = true
	s.upsert(t)
	return true
}
