package planner

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/benvon/quest-planner/internal/models"
)

func viewTask(xp int, important, urgent bool, created time.Time) models.Task {
	return models.Task{ID: uuid.New(), Title: "task", XP: xp, Important: important, Urgent: urgent, CreatedAt: created}
}

func doneAt(t models.Task, at time.Time) models.Task {
	t.Completed = true
	t.CompletedAt = &at
	return t
}

func TestBuildPlan_Sections(t *testing.T) {
	t.Parallel()
	yesterday := testNow.Add(-24 * time.Hour)
	tasks := []models.Task{
		viewTask(10, false, false, testNow),
		viewTask(30, false, false, testNow),
		viewTask(15, true, false, yesterday),
		viewTask(20, false, true, yesterday),
		viewTask(5, true, true, yesterday),
		doneAt(viewTask(15, true, false, testNow), testNow),
	}

	p := BuildPlan(tasks, testNow)

	if len(p.Today) != 4 || len(p.Backlog) != 1 {
		t.Fatalf("today %d backlog %d, want 4/1", len(p.Today), len(p.Backlog))
	}
	for i := 1; i < len(p.Today); i++ {
		if p.Today[i-1].XP < p.Today[i].XP {
			t.Errorf("today not sorted by xp desc: %d before %d", p.Today[i-1].XP, p.Today[i].XP)
		}
	}
	if p.Backlog[0].XP != 20 {
		t.Errorf("backlog = %+v", p.Backlog)
	}

	m := p.Matrix
	if len(m.DoNow) != 1 || len(m.Schedule) != 1 || len(m.Delegate) != 1 || len(m.Drop) != 2 {
		t.Errorf("matrix = %d/%d/%d/%d, want 1/1/1/2", len(m.DoNow), len(m.Schedule), len(m.Delegate), len(m.Drop))
	}
	if len(p.Templates) != 3 {
		t.Errorf("templates = %d", len(p.Templates))
	}
}

func TestTimeline(t *testing.T) {
	t.Parallel()
	tasks := []models.Task{
		doneAt(viewTask(10, false, false, testNow), testNow.Add(-48*time.Hour)),
		doneAt(viewTask(15, false, false, testNow), testNow.Add(-time.Hour)),
		doneAt(viewTask(20, false, false, testNow), testNow),
		viewTask(50, false, false, testNow),
	}

	days := Timeline(tasks, time.UTC)
	if len(days) != 2 {
		t.Fatalf("days = %d, want 2", len(days))
	}
	if days[0].Date != "2026-10-14" || days[0].TotalXP != 35 || len(days[0].Tasks) != 2 {
		t.Errorf("first day = %+v", days[0])
	}
	if days[0].Tasks[0].XP != 20 {
		t.Error("tasks within a day should be newest first")
	}
	if days[1].Date != "2026-10-12" || days[1].TotalXP != 10 {
		t.Errorf("second day = %+v", days[1])
	}
}

func TestTimeOfDayAt(t *testing.T) {
	t.Parallel()
	tests := []struct {
		hour int
		want TimeOfDay
	}{
		{0, Morning},
		{10, Morning},
		{11, Day},
		{16, Day},
		{17, Evening},
		{21, Evening},
		{22, Night},
		{23, Night},
	}
	for _, tt := range tests {
		at := time.Date(2026, 10, 14, tt.hour, 30, 0, 0, time.UTC)
		if got := TimeOfDayAt(at); got != tt.want {
			t.Errorf("TimeOfDayAt(%d:30) = %s, want %s", tt.hour, got, tt.want)
		}
	}
}

func TestContext_Energy(t *testing.T) {
	t.Parallel()
	completions := func(n int, at time.Time) []models.Task {
		out := make([]models.Task, n)
		for i := range out {
			out[i] = doneAt(viewTask(15, false, false, at), at)
		}
		return out
	}

	tests := []struct {
		name      string
		tasks     []models.Task
		want      Energy
		wantXP    int
		important bool
	}{
		{"none", nil, EnergyLow, 15, false},
		{"one", completions(1, testNow), EnergyLow, 15, false},
		{"two", completions(2, testNow), EnergyMedium, 15, false},
		{"six", completions(6, testNow.Add(-23*time.Hour)), EnergyHigh, 20, true},
		{"outside window", completions(6, testNow.Add(-25*time.Hour)), EnergyLow, 15, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := Context(tt.tasks, testNow)
			if c.Energy != tt.want {
				t.Errorf("Energy = %s, want %s", c.Energy, tt.want)
			}
			if c.TimeOfDay != Day || len(c.Suggestions) != 3 {
				t.Fatalf("context = %+v", c)
			}
			for _, s := range c.Suggestions {
				if s.XP != tt.wantXP || s.Important != tt.important {
					t.Errorf("suggestion = %+v", s)
				}
			}
		})
	}
}
