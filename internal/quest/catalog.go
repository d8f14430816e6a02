// Package quest holds the quest catalog and the evaluator that keeps quest
// progress in sync with the task and dictionary collections.
package quest

import (
	"errors"

	"github.com/benvon/quest-planner/internal/models"
)

// Quest identifiers
const (
	IDEarlyBird     = "daily_early_bird"
	IDPrioritySweep = "daily_priority_sweep"
	IDFocusMarathon = "daily_focus_marathon"
	IDGermanMinute  = "daily_german_minute"
	IDTaskHunter    = "weekly_task_hunter"
	IDVocabBuilder  = "weekly_vocab_builder"
	IDStreakKeeper  = "weekly_streak_keeper"
	IDWellRounded   = "weekly_well_rounded"
	IDBacklogSlayer = "monthly_backlog_slayer"
	IDBigGame       = "monthly_big_game"
	IDReachLevel    = "story_reach_level"
)

var (
	ErrNotFound     = errors.New("quest not found")
	ErrNotClaimable = errors.New("quest is not completed")
)

// Definition is an immutable catalog entry. UnlockSkill names the skill whose
// unlock activates a quest that does not auto-activate.
type Definition struct {
	ID           string             `json:"id"`
	Title        string             `json:"title"`
	Description  string             `json:"description"`
	Period       models.QuestPeriod `json:"period"`
	BaseTarget   int                `json:"base_target"`
	AutoActivate bool               `json:"auto_activate"`
	RewardXP     int                `json:"reward_xp"`
	UnlockSkill  string             `json:"unlock_skill,omitempty"`
}

var catalog = []Definition{
	{
		ID: IDEarlyBird, Title: "Early bird", Description: "Complete a task before 10:00",
		Period: models.QuestPeriodDay, BaseTarget: 1, AutoActivate: true, RewardXP: 10,
	},
	{
		ID: IDPrioritySweep, Title: "Priority sweep", Description: "Finish every important task created today",
		Period: models.QuestPeriodDay, BaseTarget: 1, AutoActivate: true, RewardXP: 15,
	},
	{
		ID: IDFocusMarathon, Title: "Focus marathon", Description: "Complete 5 tasks today",
		Period: models.QuestPeriodDay, BaseTarget: 5, AutoActivate: true, RewardXP: 25,
	},
	{
		ID: IDGermanMinute, Title: "German minute", Description: "Add 3 words to the dictionary today",
		Period: models.QuestPeriodDay, BaseTarget: 3, AutoActivate: true, RewardXP: 15,
	},
	{
		ID: IDTaskHunter, Title: "Task hunter", Description: "Complete 20 tasks in 7 days",
		Period: models.QuestPeriodWeek, BaseTarget: 20, AutoActivate: true, RewardXP: 50,
	},
	{
		ID: IDVocabBuilder, Title: "Vocabulary builder", Description: "Add 15 words in 7 days",
		Period: models.QuestPeriodWeek, BaseTarget: 15, AutoActivate: true, RewardXP: 40,
	},
	{
		ID: IDStreakKeeper, Title: "Streak keeper", Description: "Stay active 5 days in a row",
		Period: models.QuestPeriodWeek, BaseTarget: 5, AutoActivate: true, RewardXP: 40,
	},
	{
		ID: IDWellRounded, Title: "Well rounded", Description: "Complete tasks in 3 different categories in 7 days",
		Period: models.QuestPeriodWeek, BaseTarget: 3, RewardXP: 30, UnlockSkill: "prod_multitask",
	},
	{
		ID: IDBacklogSlayer, Title: "Backlog slayer", Description: "Complete 5 tasks older than a week",
		Period: models.QuestPeriodMonth, BaseTarget: 5, RewardXP: 60, UnlockSkill: "disc_deadline_pro",
	},
	{
		ID: IDBigGame, Title: "Big game", Description: "Complete a task worth 20 XP or more",
		Period: models.QuestPeriodMonth, BaseTarget: 1, AutoActivate: true, RewardXP: 30,
	},
	{
		ID: IDReachLevel, Title: "Rising star", Description: "Reach level 5",
		Period: models.QuestPeriodNone, BaseTarget: 5, AutoActivate: true, RewardXP: 100,
	},
}

// Catalog returns a copy of the built-in quest definitions in display order
func Catalog() []Definition {
	out := make([]Definition, len(catalog))
	copy(out, catalog)
	return out
}

// Lookup returns the built-in definition for id
func Lookup(id string) (Definition, bool) {
	for _, d := range catalog {
		if d.ID == id {
			return d, true
		}
	}
	return Definition{}, false
}

// GatedBy returns the ids of the quests that unlocking skillID activates
func GatedBy(skillID string) []string {
	var ids []string
	for _, d := range catalog {
		if d.UnlockSkill != "" && d.UnlockSkill == skillID {
			ids = append(ids, d.ID)
		}
	}
	return ids
}

// NewQuest instantiates the initial state for a definition
func NewQuest(d Definition) models.Quest {
	status := models.QuestStatusLocked
	if d.AutoActivate {
		status = models.QuestStatusActive
	}
	return models.Quest{
		ID:           d.ID,
		Period:       d.Period,
		BaseTarget:   d.BaseTarget,
		AutoActivate: d.AutoActivate,
		Status:       status,
	}
}

// NewQuests instantiates one quest per definition
func NewQuests(defs []Definition) []models.Quest {
	out := make([]models.Quest, 0, len(defs))
	for _, d := range defs {
		out = append(out, NewQuest(d))
	}
	return out
}

// Reconcile aligns a persisted quest list with defs. Stored state is kept for ids
// still present, definitions missing from stored are instantiated, and ids no longer
// defined are dropped. The result follows defs order.
func Reconcile(defs []Definition, stored []models.Quest) []models.Quest {
	byID := make(map[string]models.Quest, len(stored))
	for _, q := range stored {
		byID[q.ID] = q
	}

	out := make([]models.Quest, 0, len(defs))
	for _, d := range defs {
		q, ok := byID[d.ID]
		if !ok || !q.Status.IsValid() {
			out = append(out, NewQuest(d))
			continue
		}
		q.Period = d.Period
		q.BaseTarget = d.BaseTarget
		q.AutoActivate = d.AutoActivate
		if q.Progress < 0 {
			q.Progress = 0
		}
		if q.Progress > q.BaseTarget {
			q.Progress = q.BaseTarget
		}
		out = append(out, q)
	}
	return out
}

// Claim moves a completed quest to claimed and returns its reward xp
func Claim(quests []models.Quest, id string) ([]models.Quest, int, error) {
	idx := indexOf(quests, id)
	if idx < 0 {
		return quests, 0, ErrNotFound
	}
	if quests[idx].Status != models.QuestStatusCompleted {
		return quests, 0, ErrNotClaimable
	}

	out := clone(quests)
	out[idx].Status = models.QuestStatusClaimed
	reward := 0
	if d, ok := Lookup(id); ok {
		reward = d.RewardXP
	}
	return out, reward, nil
}

// Activate moves a locked quest to active. It reports whether the quest changed.
func Activate(quests []models.Quest, id string) ([]models.Quest, bool) {
	idx := indexOf(quests, id)
	if idx < 0 || quests[idx].Status != models.QuestStatusLocked {
		return quests, false
	}
	out := clone(quests)
	out[idx].Status = models.QuestStatusActive
	return out, true
}

func indexOf(quests []models.Quest, id string) int {
	for i, q := range quests {
		if q.ID == id {
			return i
		}
	}
	return -1
}

func clone(quests []models.Quest) []models.Quest {
	out := make([]models.Quest, len(quests))
	copy(out, quests)
	return out
}
