package types

import "time"

// Task is a recurring household chore assigned to one member by name.
type Task struct {
	ID          string `json:"id"`
	HouseholdID string `json:"householdId"`
	Title       string `json:"title"`

	// AssignedTo is a member name; it may dangle after a member leaves.
	AssignedTo string `json:"assignedTo"`

	Completed bool `json:"completed"`

	// Streak counts completions and never drops below zero.
	Streak int `json:"streak"`

	// Points is awarded on completion and taken back on un-completion.
	Points int `json:"points"`

	CreatedAt time.Time `json:"createdAt"`
}

// Toggle flips Completed and adjusts Streak. It returns the new state.
func (t *Task) Toggle() bool {
	t.Completed = !t.Completed
	if t.Completed {
		t.Streak++
	} else if t.Streak > 0 {
		t.Streak--
	}
	return t.Completed
}
