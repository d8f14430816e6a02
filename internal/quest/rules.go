package quest

import (
	"time"

	"github.com/benvon/quest-planner/internal/models"
	"github.com/benvon/quest-planner/internal/period"
)

const (
	// earlyBirdHour is the local hour before which a completion counts as early
	earlyBirdHour = 10
	// trailingWindow bounds the rolling "last 7 days" aggregates
	trailingWindow = 7 * 24 * time.Hour
	// streakLookback is how many days before today the streak walk may reach
	streakLookback = 6
	// bigGameXP is the minimum task value for the high-value completion quest
	bigGameXP = 20
)

// Snapshot is the read-only view a rule aggregates over
type Snapshot struct {
	Tasks      []models.Task
	Dictionary []models.DictionaryEntry
	Level      int
	Now        time.Time
}

// Rule computes progress toward target and whether the quest is complete
type Rule func(s Snapshot, target int) (progress int, done bool)

var rules = map[string]Rule{
	IDEarlyBird:     earlyBird,
	IDPrioritySweep: prioritySweep,
	IDFocusMarathon: countRule(completedToday),
	IDGermanMinute:  countRule(wordsAddedToday),
	IDTaskHunter:    countRule(completedInWindow),
	IDVocabBuilder:  countRule(wordsAddedInWindow),
	IDStreakKeeper:  countRule(activityStreak),
	IDWellRounded:   countRule(distinctCategories),
	IDBacklogSlayer: countRule(completedOverdue),
	IDBigGame:       bigGame,
	IDReachLevel:    reachLevel,
}

// storyGates activate a locked quest straight into completed when the condition holds
var storyGates = map[string]func(s Snapshot, target int) bool{
	IDReachLevel: func(s Snapshot, target int) bool { return s.Level >= target },
}

// RuleFor returns the progress rule registered for a quest id
func RuleFor(id string) (Rule, bool) {
	r, ok := rules[id]
	return r, ok
}

func countRule(count func(Snapshot) int) Rule {
	return func(s Snapshot, target int) (int, bool) {
		p := capAt(count(s), target)
		return p, p >= target
	}
}

func capAt(n, target int) int {
	if target < 0 {
		target = 0
	}
	if n > target {
		return target
	}
	if n < 0 {
		return 0
	}
	return n
}

func completedToday(s Snapshot) int {
	n := 0
	for _, t := range s.Tasks {
		if t.Completed && t.CompletedAt != nil && period.SameDay(*t.CompletedAt, s.Now) {
			n++
		}
	}
	return n
}

func earlyBird(s Snapshot, target int) (int, bool) {
	n := 0
	for _, t := range s.Tasks {
		if !t.Completed || t.CompletedAt == nil || !period.SameDay(*t.CompletedAt, s.Now) {
			continue
		}
		if t.CompletedAt.In(s.Now.Location()).Hour() < earlyBirdHour {
			n++
		}
	}
	p := capAt(n, target)
	return p, p >= target
}

// prioritySweep never completes on an empty set
func prioritySweep(s Snapshot, target int) (int, bool) {
	eligible, done := 0, 0
	for _, t := range s.Tasks {
		if !t.Important || !period.SameDay(t.CreatedAt, s.Now) {
			continue
		}
		eligible++
		if t.Completed {
			done++
		}
	}
	if eligible == 0 || done < eligible {
		return 0, false
	}
	p := capAt(1, target)
	return p, p >= target
}

func wordsAddedToday(s Snapshot) int {
	n := 0
	for _, w := range s.Dictionary {
		if period.SameDay(w.CreatedAt, s.Now) {
			n++
		}
	}
	return n
}

func windowStart(s Snapshot) time.Time {
	return s.Now.Add(-trailingWindow)
}

func completedInWindow(s Snapshot) int {
	since := windowStart(s)
	n := 0
	for _, t := range s.Tasks {
		if t.CompletedWithin(since) {
			n++
		}
	}
	return n
}

func wordsAddedInWindow(s Snapshot) int {
	since := windowStart(s)
	n := 0
	for _, w := range s.Dictionary {
		if !w.CreatedAt.Before(since) {
			n++
		}
	}
	return n
}

func activityStreak(s Snapshot) int {
	loc := s.Now.Location()
	active := make(map[string]struct{})
	for _, t := range s.Tasks {
		if t.Completed && t.CompletedAt != nil {
			active[period.DayKey(t.CompletedAt.In(loc))] = struct{}{}
		}
	}
	for _, w := range s.Dictionary {
		active[period.DayKey(w.CreatedAt.In(loc))] = struct{}{}
	}

	today := period.StartOfDay(s.Now)
	streak := 0
	for i := 0; i <= streakLookback; i++ {
		if _, ok := active[period.DayKey(today.AddDate(0, 0, -i))]; !ok {
			break
		}
		streak++
	}
	return streak
}

func distinctCategories(s Snapshot) int {
	since := windowStart(s)
	seen := make(map[models.TaskCategory]struct{})
	for _, t := range s.Tasks {
		if t.Category != "" && t.CompletedWithin(since) {
			seen[t.Category] = struct{}{}
		}
	}
	return len(seen)
}

func completedOverdue(s Snapshot) int {
	n := 0
	for _, t := range s.Tasks {
		if t.Completed && s.Now.Sub(t.CreatedAt) > trailingWindow {
			n++
		}
	}
	return n
}

func bigGame(s Snapshot, target int) (int, bool) {
	since := windowStart(s)
	hit := 0
	for _, t := range s.Tasks {
		if t.XP >= bigGameXP && t.CompletedWithin(since) {
			hit = 1
			break
		}
	}
	p := capAt(hit, target)
	return p, p >= target
}

func reachLevel(s Snapshot, target int) (int, bool) {
	return capAt(s.Level, target), s.Level >= target
}
