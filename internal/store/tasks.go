// Package store keeps the task and dictionary collections in display order.
// Collections are not safe for concurrent use; the planner serializes access.
package store

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/benvon/quest-planner/internal/models"
)

// NewTask holds the user supplied fields of a task
type NewTask struct {
	Title     string
	XP        int
	Category  models.TaskCategory
	Important bool
	Urgent    bool
}

// Tasks is a newest-first task collection
type Tasks struct {
	items []models.Task
}

// NewTasks wraps an existing list, kept in the given order
func NewTasks(items []models.Task) *Tasks {
	t := &Tasks{}
	t.Replace(items)
	return t
}

func newID() uuid.UUID {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New()
	}
	return id
}

// Add prepends a task. A blank title is rejected and ok is false.
func (s *Tasks) Add(in NewTask, now time.Time) (models.Task, bool) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return models.Task{}, false
	}
	xp := in.XP
	if xp <= 0 {
		xp = models.DefaultTaskXP
	}
	category := in.Category
	if !category.IsValid() {
		category = models.TaskCategoryGeneral
	}

	task := models.Task{
		ID:        newID(),
		Title:     title,
		XP:        xp,
		Category:  category,
		Important: in.Important,
		Urgent:    in.Urgent,
		CreatedAt: now,
	}
	s.items = append([]models.Task{task}, s.items...)
	return task, true
}

// Complete marks a task done. ok is true only when the task moved from open to
// completed, so callers award xp exactly once.
func (s *Tasks) Complete(id uuid.UUID, now time.Time) (models.Task, bool) {
	for i := range s.items {
		if s.items[i].ID != id {
			continue
		}
		if s.items[i].Completed {
			return s.items[i], false
		}
		at := now
		s.items[i].Completed = true
		s.items[i].CompletedAt = &at
		return s.items[i], true
	}
	return models.Task{}, false
}

// Get returns the task with id
func (s *Tasks) Get(id uuid.UUID) (models.Task, bool) {
	for _, t := range s.items {
		if t.ID == id {
			return t, true
		}
	}
	return models.Task{}, false
}

// Delete removes a task regardless of its state
func (s *Tasks) Delete(id uuid.UUID) bool {
	for i, t := range s.items {
		if t.ID == id {
			s.items = append(s.items[:i:i], s.items[i+1:]...)
			return true
		}
	}
	return false
}

// ClearCompleted removes every completed task and returns how many were dropped
func (s *Tasks) ClearCompleted() int {
	kept := make([]models.Task, 0, len(s.items))
	for _, t := range s.items {
		if !t.Completed {
			kept = append(kept, t)
		}
	}
	removed := len(s.items) - len(kept)
	s.items = kept
	return removed
}

// All returns a copy of the collection
func (s *Tasks) All() []models.Task {
	out := make([]models.Task, len(s.items))
	copy(out, s.items)
	return out
}

// Len returns the number of tasks
func (s *Tasks) Len() int { return len(s.items) }

// Replace swaps the whole collection. Completed tasks without a completion time
// get their creation time, and open tasks drop a stray completion time, so the
// completed/completed_at pairing holds for restored data.
func (s *Tasks) Replace(items []models.Task) {
	s.items = make([]models.Task, 0, len(items))
	for _, t := range items {
		if t.Completed && t.CompletedAt == nil {
			at := t.CreatedAt
			t.CompletedAt = &at
		}
		if !t.Completed {
			t.CompletedAt = nil
		}
		s.items = append(s.items, t)
	}
}
