package models

import (
	"testing"
	"time"
)

func TestTaskCategory_IsValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		value TaskCategory
		valid bool
	}{
		{"general", TaskCategoryGeneral, true},
		{"health", TaskCategoryHealth, true},
		{"work", TaskCategoryWork, true},
		{"learning", TaskCategoryLearning, true},
		{"routine", TaskCategoryRoutine, true},
		{"lowercase", TaskCategory("work"), false},
		{"empty", TaskCategory(""), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.value.IsValid(); got != tt.valid {
				t.Errorf("IsValid(%q) = %v, want %v", tt.value, got, tt.valid)
			}
		})
	}
}

func TestQuestStatus_IsValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		value QuestStatus
		valid bool
	}{
		{"locked", QuestStatusLocked, true},
		{"active", QuestStatusActive, true},
		{"completed", QuestStatusCompleted, true},
		{"claimed", QuestStatusClaimed, true},
		{"invalid", QuestStatus("failed"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.value.IsValid(); got != tt.valid {
				t.Errorf("IsValid(%q) = %v, want %v", tt.value, got, tt.valid)
			}
		})
	}
}

func TestQuestPeriod_IsValid(t *testing.T) {
	t.Parallel()

	for _, p := range []QuestPeriod{QuestPeriodNone, QuestPeriodDay, QuestPeriodWeek, QuestPeriodMonth} {
		if !p.IsValid() {
			t.Errorf("Expected period %q to be valid", p)
		}
	}
	if QuestPeriod("year").IsValid() {
		t.Error("Expected period 'year' to be invalid")
	}
}

func TestTask_CompletedWithin(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	done := now.Add(-2 * time.Hour)

	tests := []struct {
		name  string
		task  Task
		since time.Time
		want  bool
	}{
		{"completed after since", Task{Completed: true, CompletedAt: &done}, now.Add(-24 * time.Hour), true},
		{"completed exactly at since", Task{Completed: true, CompletedAt: &done}, done, true},
		{"completed before since", Task{Completed: true, CompletedAt: &done}, now.Add(-time.Hour), false},
		{"not completed", Task{}, now.Add(-24 * time.Hour), false},
		{"completed flag without timestamp", Task{Completed: true}, now.Add(-24 * time.Hour), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.task.CompletedWithin(tt.since); got != tt.want {
				t.Errorf("CompletedWithin() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestProgression_HasSkill(t *testing.T) {
	t.Parallel()

	p := NewProgression()
	if p.Level != 1 || p.XP != 0 || p.SkillPoints != 0 {
		t.Fatalf("NewProgression() = %+v, want level 1 with no xp or points", p)
	}
	if p.HasSkill("prod_focus") {
		t.Error("Expected fresh progression to have no skills")
	}
	p.UnlockedSkills = append(p.UnlockedSkills, "prod_focus")
	if !p.HasSkill("prod_focus") {
		t.Error("Expected prod_focus to be unlocked")
	}
}
