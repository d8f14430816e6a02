package quest

import (
	"time"

	"github.com/benvon/quest-planner/internal/models"
	"github.com/benvon/quest-planner/internal/period"
)

// Input is everything one evaluation pass reads
type Input struct {
	Quests     []models.Quest
	Tasks      []models.Task
	Dictionary []models.DictionaryEntry
	Level      int
	Now        time.Time
}

// Evaluate returns the next quest collection. The output has the same length, order,
// and ids as in.Quests; only status, progress, and period key change. Evaluate does
// not modify its input.
func Evaluate(in Input) []models.Quest {
	snap := Snapshot{
		Tasks:      in.Tasks,
		Dictionary: in.Dictionary,
		Level:      in.Level,
		Now:        in.Now,
	}

	out := make([]models.Quest, len(in.Quests))
	for i, q := range in.Quests {
		out[i] = evaluateOne(q, snap)
	}
	return out
}

func evaluateOne(q models.Quest, s Snapshot) models.Quest {
	rollover(&q, s.Now)
	activate(&q, s)

	if q.Status != models.QuestStatusActive {
		return q
	}
	rule, ok := rules[q.ID]
	if !ok {
		return q
	}
	progress, done := rule(s, q.BaseTarget)
	q.Progress = capAt(progress, q.BaseTarget)
	if done {
		q.Status = models.QuestStatusCompleted
	}
	return q
}

func rollover(q *models.Quest, now time.Time) {
	if q.Period == models.QuestPeriodNone {
		return
	}
	key := period.KeyFor(q.Period, now)
	if key == q.PeriodKey {
		return
	}
	q.PeriodKey = key
	q.Progress = 0
	if q.Status == models.QuestStatusCompleted || q.Status == models.QuestStatusClaimed {
		q.Status = models.QuestStatusActive
	}
}

func activate(q *models.Quest, s Snapshot) {
	if q.Status != models.QuestStatusLocked || !q.AutoActivate {
		return
	}
	if gate, ok := storyGates[q.ID]; ok && gate(s, q.BaseTarget) {
		q.Status = models.QuestStatusCompleted
		q.Progress = capAt(q.BaseTarget, q.BaseTarget)
		return
	}
	q.Status = models.QuestStatusActive
}
