package store

import (
	"sort"
	"strings"
	"time"

	"github.com/mesh-intelligence/flatshare/pkg/types"
)

// Events returns the current household's calendar in insertion order.
func (s *Store) Events() []types.CalendarEvent {
	hid := s.householdID()
	return copyWhere(s.events, plain[types.CalendarEvent], func(e *types.CalendarEvent) bool { return hid != "" && e.HouseholdID == hid })
}

// AddEvent schedules an event. Unknown types become general.
func (s *Store) AddEvent(title string, typ types.EventType, start time.Time) (types.CalendarEvent, error) {
	h, err := s.currentHousehold()
	if err != nil {
		return types.CalendarEvent{}, err
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return types.CalendarEvent{}, types.ErrInvalidName
	}
	e := &types.CalendarEvent{
		ID:          s.newID(),
		HouseholdID: h.ID,
		Title:       title,
		Type:        types.ParseEventType(string(typ), types.EventGeneral),
		Start:       start,
		CreatedBy:   s.actor(),
	}
	s.events = append(s.events, e)
	s.upsert(e)
	return *e, nil
}

// RemoveEvent deletes an event.
func (s *Store) RemoveEvent(id string) bool {
	e, i := findInHousehold(s.events, s.householdID(), eventOwner, func(e *types.CalendarEvent) bool { return e.ID == id })
	if e == nil {
		return false
	}
	s.events = removeAt(s.events, i)
	s.remove(types.EventsCollection, e.ID)
	return true
}

// UpcomingEvents returns the household's events starting at or after now,
// soonest first.
func (s *Store) UpcomingEvents(now time.Time) []types.CalendarEvent {
	out := []types.CalendarEvent{}
	for _, e := range s.Events() {
		if !e.Start.Before(now) {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Start.Before(out[j].Start) })
	return out
}
