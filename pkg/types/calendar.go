package types

import "time"

// EventType classifies calendar entries.
type EventType string

// Calendar event types.
const (
	EventGeneral    EventType = "general"
	EventParty      EventType = "party"
	EventQuietHours EventType = "quiet_hours"
	EventCleaning   EventType = "cleaning"
)

// ParseEventType returns the type named by s, or def when unknown.
func ParseEventType(s string, def EventType) EventType {
	switch EventType(s) {
	case EventGeneral, EventParty, EventQuietHours, EventCleaning:
		return EventType(s)
	}
	return def
}

// CalendarEvent is an entry on the shared household calendar.
type CalendarEvent struct {
	ID          string    `json:"id"`
	HouseholdID string    `json:"householdId"`
	Title       string    `json:"title"`
	Type        EventType `json:"type"`
	Start       time.Time `json:"start"`
	CreatedBy   string    `json:"createdBy"`
}
