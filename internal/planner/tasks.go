package planner

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/benvon/quest-planner/internal/leveling"
	"github.com/benvon/quest-planner/internal/logger"
	"github.com/benvon/quest-planner/internal/models"
	"github.com/benvon/quest-planner/internal/store"
)

// Completion reports what completing a task changed
type Completion struct {
	Task      models.Task        `json:"task"`
	XPAwarded int                `json:"xp_awarded"`
	LevelUps  []leveling.LevelUp `json:"level_ups,omitempty"`
}

// Tasks returns every task, newest first
func (s *Service) Tasks(ctx context.Context) []models.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tasks.All()
}

// AddTask creates a task. ok is false when the title is blank; nothing changes then.
func (s *Service) AddTask(ctx context.Context, in store.NewTask) (models.Task, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := s.checkpoint()

	task, ok := s.tasks.Add(in, s.now())
	if !ok {
		return models.Task{}, false, nil
	}
	s.logger.Info("task_added",
		zap.String("task_id", task.ID.String()),
		zap.String("title", logger.SanitizeTitle(task.Title)),
		zap.String("category", string(task.Category)),
	)
	if err := s.commit(ctx, cp); err != nil {
		return models.Task{}, false, err
	}
	return task, true, nil
}

// CompleteTask marks a task done and awards its xp. Completing an already
// completed task is a no-op that awards nothing.
func (s *Service) CompleteTask(ctx context.Context, id uuid.UUID) (Completion, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := s.checkpoint()

	if _, ok := s.tasks.Get(id); !ok {
		return Completion{}, ErrTaskNotFound
	}
	task, changed := s.tasks.Complete(id, s.now())
	if !changed {
		return Completion{Task: task}, nil
	}

	s.progression = leveling.AwardXP(s.progression, task.XP)
	s.logger.Info("task_completed",
		zap.String("task_id", task.ID.String()),
		zap.Int("xp", task.XP),
		zap.Int("total_xp", s.progression.XP),
	)

	ups, err := s.commitWithLevelUps(ctx, cp)
	if err != nil {
		return Completion{}, err
	}
	return Completion{Task: task, XPAwarded: task.XP, LevelUps: ups}, nil
}

// DeleteTask removes a task. XP already awarded for it is kept.
func (s *Service) DeleteTask(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := s.checkpoint()

	if !s.tasks.Delete(id) {
		return ErrTaskNotFound
	}
	s.logger.Info("task_deleted", zap.String("task_id", id.String()))
	return s.commit(ctx, cp)
}

// ClearCompleted removes every completed task and returns how many were removed
func (s *Service) ClearCompleted(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := s.checkpoint()

	n := s.tasks.ClearCompleted()
	if n == 0 {
		return 0, nil
	}
	s.logger.Info("completed_tasks_cleared", zap.Int("count", n))
	if err := s.commit(ctx, cp); err != nil {
		return 0, err
	}
	return n, nil
}

// ApplyTemplate adds every task of a routine template
func (s *Service) ApplyTemplate(ctx context.Context, id string) ([]models.Task, error) {
	tmpl, ok := LookupTemplate(id)
	if !ok {
		return nil, ErrUnknownTemplate
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	cp := s.checkpoint()

	now := s.now()
	added := make([]models.Task, 0, len(tmpl.Tasks))
	for _, in := range tmpl.Tasks {
		if task, ok := s.tasks.Add(in, now); ok {
			added = append(added, task)
		}
	}
	s.logger.Info("template_applied", zap.String("template_id", id), zap.Int("tasks", len(added)))
	if err := s.commit(ctx, cp); err != nil {
		return nil, err
	}
	return added, nil
}
