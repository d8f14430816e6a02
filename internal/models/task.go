package models

import (
	"time"

	"github.com/google/uuid"
)

// TaskCategory is the label a task is filed under
type TaskCategory string

const (
	TaskCategoryGeneral  TaskCategory = "General"
	TaskCategoryHealth   TaskCategory = "Health"
	TaskCategoryWork     TaskCategory = "Work"
	TaskCategoryLearning TaskCategory = "Learning"
	TaskCategoryRoutine  TaskCategory = "Routine"
)

// IsValid reports whether c is one of the known categories
func (c TaskCategory) IsValid() bool {
	switch c {
	case TaskCategoryGeneral, TaskCategoryHealth, TaskCategoryWork, TaskCategoryLearning, TaskCategoryRoutine:
		return true
	default:
		return false
	}
}

// DefaultTaskXP is awarded for a task created without an explicit xp value
const DefaultTaskXP = 15

// Task represents a planner task
type Task struct {
	ID          uuid.UUID    `json:"id"`
	Title       string       `json:"title"`
	XP          int          `json:"xp"`
	Completed   bool         `json:"completed"`
	Category    TaskCategory `json:"category"`
	Important   bool         `json:"important"`
	Urgent      bool         `json:"urgent"`
	CreatedAt   time.Time    `json:"created_at"`
	CompletedAt *time.Time   `json:"completed_at,omitempty"`
}

// CompletedWithin reports whether the task was completed at or after since
func (t Task) CompletedWithin(since time.Time) bool {
	return t.Completed && t.CompletedAt != nil && !t.CompletedAt.Before(since)
}
