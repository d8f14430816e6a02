package planner

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/benvon/quest-planner/internal/leveling"
	"github.com/benvon/quest-planner/internal/models"
	"github.com/benvon/quest-planner/internal/quest"
	"github.com/benvon/quest-planner/internal/skills"
)

// QuestView is a quest with its catalog details
type QuestView struct {
	models.Quest
	Title       string `json:"title"`
	Description string `json:"description"`
	RewardXP    int    `json:"reward_xp"`
	UnlockSkill string `json:"unlock_skill,omitempty"`
}

// Claim reports the result of claiming a quest reward
type Claim struct {
	Quest    models.Quest       `json:"quest"`
	RewardXP int                `json:"reward_xp"`
	LevelUps []leveling.LevelUp `json:"level_ups,omitempty"`
}

// Profile is the progression summary
type Profile struct {
	Level          int            `json:"level"`
	XP             int            `json:"xp"`
	XPForNextLevel int            `json:"xp_for_next_level"`
	XPRemaining    int            `json:"xp_remaining"`
	SkillPoints    int            `json:"skill_points"`
	UnlockedSkills []string       `json:"unlocked_skills"`
	DarkMode       bool           `json:"dark_mode"`
	TasksCompleted int            `json:"tasks_completed"`
	Words          int            `json:"words"`
	LevelUp        *LevelUpNotice `json:"level_up,omitempty"`
}

// SkillView is a skill with its unlock state
type SkillView struct {
	skills.Skill
	Unlocked bool `json:"unlocked"`
}

// Quests re-evaluates against the current time and returns every quest
func (s *Service) Quests(ctx context.Context) ([]QuestView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := s.checkpoint()

	if err := s.commit(ctx, cp); err != nil {
		return nil, err
	}
	out := make([]QuestView, 0, len(s.quests))
	for _, q := range s.quests {
		v := QuestView{Quest: q}
		if d, ok := quest.Lookup(q.ID); ok {
			v.Title = d.Title
			v.Description = d.Description
			v.RewardXP = d.RewardXP
			v.UnlockSkill = d.UnlockSkill
		}
		out = append(out, v)
	}
	return out, nil
}

// ClaimQuest collects the reward of a completed quest
func (s *Service) ClaimQuest(ctx context.Context, id string) (Claim, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := s.checkpoint()

	// A stale completion from a previous period must not be claimable
	s.recompute(ctx)

	quests, reward, err := quest.Claim(s.quests, id)
	if err != nil {
		return Claim{}, err
	}
	s.quests = quests
	s.progression = leveling.AwardXP(s.progression, reward)
	s.logger.Info("quest_claimed", zap.String("quest_id", id), zap.Int("reward_xp", reward))

	ups, err := s.commitWithLevelUps(ctx, cp)
	if err != nil {
		return Claim{}, err
	}
	claimed := Claim{RewardXP: reward, LevelUps: ups}
	for _, q := range s.quests {
		if q.ID == id {
			claimed.Quest = q
		}
	}
	return claimed, nil
}

// Skills returns the skill tree with unlock state
func (s *Service) Skills(ctx context.Context) []SkillView {
	s.mu.Lock()
	defer s.mu.Unlock()

	all := skills.Catalog()
	out := make([]SkillView, 0, len(all))
	for _, sk := range all {
		out = append(out, SkillView{Skill: sk, Unlocked: s.progression.HasSkill(sk.ID)})
	}
	return out
}

// UnlockSkill spends a skill point and activates any quest the skill gates
func (s *Service) UnlockSkill(ctx context.Context, id string) (Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := s.checkpoint()

	p, err := skills.Unlock(s.progression, id)
	if err != nil {
		return Profile{}, err
	}
	s.progression = p
	for _, gated := range quest.GatedBy(id) {
		var activated bool
		if s.quests, activated = quest.Activate(s.quests, gated); activated {
			s.logger.Info("quest_activated", zap.String("quest_id", gated), zap.String("skill_id", id))
		}
	}
	s.logger.Info("skill_unlocked", zap.String("skill_id", id), zap.Int("skill_points", p.SkillPoints))

	if err := s.commit(ctx, cp); err != nil {
		return Profile{}, err
	}
	return s.profile(s.now()), nil
}

// ToggleDarkMode flips the theme flag and returns the new value
func (s *Service) ToggleDarkMode(ctx context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.darkMode = !s.darkMode
	if err := s.persist(ctx); err != nil {
		s.darkMode = !s.darkMode
		return s.darkMode, err
	}
	return s.darkMode, nil
}

// Profile returns the progression summary
func (s *Service) Profile(ctx context.Context) Profile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.profile(s.now())
}

func (s *Service) profile(now time.Time) Profile {
	p := s.progression
	completed := 0
	for _, t := range s.tasks.All() {
		if t.Completed {
			completed++
		}
	}
	out := Profile{
		Level:          p.Level,
		XP:             p.XP,
		XPForNextLevel: leveling.XPForNextLevel(p.Level),
		XPRemaining:    leveling.Remaining(p),
		SkillPoints:    p.SkillPoints,
		UnlockedSkills: append([]string{}, p.UnlockedSkills...),
		DarkMode:       s.darkMode,
		TasksCompleted: completed,
		Words:          s.dictionary.Len(),
	}
	if s.levelUp != nil && now.Before(s.levelUp.Until) {
		n := *s.levelUp
		out.LevelUp = &n
	}
	return out
}
