package store

import (
	"strings"

	"github.com/mesh-intelligence/flatshare/pkg/types"
)

// Tasks returns the current household's chores.
func (s *Store) Tasks() []types.Task {
	hid := s.householdID()
	return copyWhere(s.tasks, plain[types.Task], func(t *types.Task) bool { return hid != "" && t.HouseholdID == hid })
}

// AddTask creates an open chore assigned to a member name.
func (s *Store) AddTask(title, assignee string, points int) (types.Task, error) {
	h, err := s.currentHousehold()
	if err != nil {
		return types.Task{}, err
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return types.Task{}, types.ErrInvalidName
	}
	if points < 0 {
		return types.Task{}, types.ErrInvalidAmount
	}
	t := &types.Task{
		ID:          s.newID(),
		HouseholdID: h.ID,
		Title:       title,
		AssignedTo:  strings.TrimSpace(assignee),
		Points:      points,
		CreatedAt:   s.now(),
	}
	s.tasks = append(s.tasks, t)
	s.upsert(t)
	return *t, nil
}

// ToggleTask flips a chore's completion. Completing awards the task's points
// to the assignee (when they are a member) and completes the acting user's
// first task onboarding step; un-completing takes the points back.
func (s *Store) ToggleTask(id string) bool {
	t, _ := findInHousehold(s.tasks, s.householdID(), taskOwner, func(t *types.Task) bool { return t.ID == id })
	if t == nil {
		return false
	}
	done := t.Toggle()
	s.upsert(t)

	if assignee := s.memberByName(t.AssignedTo); assignee != nil && t.Points > 0 {
		if done {
			assignee.AddPoints(t.Points)
		} else {
			assignee.AddPoints(-t.Points)
		}
		s.upsert(assignee)
	}
	if u := s.session.User; done && u != nil && s.completeStep(u, types.StepFirstTask) {
		s.upsert(u)
	}
	return true
}

// RemoveTask deletes a chore.
func (s *Store) RemoveTask(id string) bool {
	t, i := findInHousehold(s.tasks, s.householdID(), taskOwner, func(t *types.Task) bool { return t.ID == id })
	if t == nil {
		return false
	}
	s.tasks = removeAt(s.tasks, i)
	s.remove(types.TasksCollection, t.ID)
	return true
}

// RotateTasks hands every chore of the current household to the member after
// its assignee in name order, wrapping at the end, and reopens it. A chore
// whose assignee is not a member goes to the first member by name. It
// returns the number of chores rotated.
func (s *Store) RotateTasks() int {
	members := s.sortedMembers()
	if len(members) == 0 {
		return 0
	}
	hid := s.householdID()

	rotated := 0
	for _, t := range s.tasks {
		if t.HouseholdID != hid {
			continue
		}
		current := -1
		for i, m := range members {
			if m.Name == t.AssignedTo {
				current = i
				break
			}
		}
		next := 0
		if current >= 0 {
			next = (current + 1) % len(members)
		}
		t.AssignedTo = members[next].Name
		t.Completed = false
		s.upsert(t)
		rotated++
	}
	if rotated > 0 {
		s.addLog("%d chores rotated", rotated)
	}
	return rotated
}
