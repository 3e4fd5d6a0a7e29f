package types

import "time"

// TicketType distinguishes complaints, kudos, and polls.
type TicketType string

// Ticket types.
const (
	TicketComplaint TicketType = "complaint"
	TicketKudos     TicketType = "kudos"
	TicketPoll      TicketType = "poll"
)

// ParseTicketType returns the type named by s, or def when unknown.
func ParseTicketType(s string, def TicketType) TicketType {
	switch TicketType(s) {
	case TicketComplaint, TicketKudos, TicketPoll:
		return TicketType(s)
	}
	return def
}

// Ticket is a message on the household board. Polls carry Options and Votes.
type Ticket struct {
	ID          string     `json:"id"`
	HouseholdID string     `json:"householdId"`
	Type        TicketType `json:"type"`
	Title       string     `json:"title"`
	Body        string     `json:"body"`
	Author      string     `json:"author"`

	// Target names the member a kudos is addressed to.
	Target string `json:"target,omitempty"`

	// Options is fixed at creation.
	Options []string `json:"options,omitempty"`

	// Votes maps voter name to chosen option; one vote per voter.
	Votes map[string]string `json:"votes,omitempty"`

	Resolved  bool      `json:"resolved"`
	CreatedAt time.Time `json:"createdAt"`
}

// HasOption reports whether option is one of the poll options.
func (t *Ticket) HasOption(option string) bool {
	for _, o := range t.Options {
		if o == option {
			return true
		}
	}
	return false
}

// Tally counts votes per option. Options without votes map to zero.
func (t *Ticket) Tally() map[string]int {
	counts := make(map[string]int, len(t.Options))
	for _, o := range t.Options {
		counts[o] = 0
	}
	for _, choice := range t.Votes {
		if _, ok := counts[choice]; ok {
			counts[choice]++
		}
	}
	return counts
}
