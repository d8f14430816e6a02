package planner

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/benvon/quest-planner/internal/backup"
	"github.com/benvon/quest-planner/internal/storage"
)

// Persistence keys
const (
	KeyTasks          = "plannerTasks"
	KeyDictionary     = "germanDictionary"
	KeyXP             = "userXp"
	KeyLevel          = "userLevel"
	KeyDarkMode       = "darkMode"
	KeyQuests         = "plannerQuests"
	KeySkillPoints    = "skillPoints"
	KeyUnlockedSkills = "unlockedSkills"
)

// load reads every key independently. A missing or malformed value falls back to
// its default and never fails the load.
func (s *Service) load(ctx context.Context) {
	snap := backup.Defaults()

	loadKey(ctx, s, KeyTasks, &snap.Tasks)
	loadKey(ctx, s, KeyDictionary, &snap.Dictionary)
	loadKey(ctx, s, KeyXP, &snap.XP)
	loadKey(ctx, s, KeyLevel, &snap.Level)
	loadKey(ctx, s, KeyDarkMode, &snap.DarkMode)
	loadKey(ctx, s, KeyQuests, &snap.Quests)
	loadKey(ctx, s, KeySkillPoints, &snap.SkillPoints)
	loadKey(ctx, s, KeyUnlockedSkills, &snap.UnlockedSkills)

	defaults := backup.Defaults()
	if snap.Tasks == nil {
		snap.Tasks = defaults.Tasks
	}
	if snap.Dictionary == nil {
		snap.Dictionary = defaults.Dictionary
	}
	if snap.UnlockedSkills == nil {
		snap.UnlockedSkills = defaults.UnlockedSkills
	}

	s.apply(snap)
	s.logger.Debug("state_loaded",
		zap.Int("tasks", s.tasks.Len()),
		zap.Int("words", s.dictionary.Len()),
		zap.Int("level", s.progression.Level),
	)
}

func loadKey[T any](ctx context.Context, s *Service, key string, dst *T) {
	data, err := s.store.Load(ctx, key)
	if errors.Is(err, storage.ErrNotFound) {
		return
	}
	if err != nil {
		s.logger.Warn("state_load_failed", zap.String("key", key), zap.Error(err))
		return
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		s.logger.Warn("state_value_malformed", zap.String("key", key), zap.Error(err))
		return
	}
	*dst = v
}

func (s *Service) persist(ctx context.Context) error {
	snap := s.snapshot()
	values := []struct {
		key   string
		value any
	}{
		{KeyTasks, snap.Tasks},
		{KeyDictionary, snap.Dictionary},
		{KeyXP, snap.XP},
		{KeyLevel, snap.Level},
		{KeyDarkMode, snap.DarkMode},
		{KeyQuests, snap.Quests},
		{KeySkillPoints, snap.SkillPoints},
		{KeyUnlockedSkills, snap.UnlockedSkills},
	}

	for _, v := range values {
		data, err := json.Marshal(v.value)
		if err != nil {
			return fmt.Errorf("encode %s: %w", v.key, err)
		}
		if err := s.store.Save(ctx, v.key, data); err != nil {
			s.logger.Error("state_save_failed", zap.String("key", v.key), zap.Error(err))
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}
	return nil
}
