package planner

import (
	"context"
	"sort"
	"time"

	"github.com/benvon/quest-planner/internal/models"
	"github.com/benvon/quest-planner/internal/period"
	"github.com/benvon/quest-planner/internal/store"
)

// TimeOfDay buckets the local hour
type TimeOfDay string

const (
	Morning TimeOfDay = "morning"
	Day     TimeOfDay = "day"
	Evening TimeOfDay = "evening"
	Night   TimeOfDay = "night"
)

// Energy is estimated from recent completions
type Energy string

const (
	EnergyLow    Energy = "low"
	EnergyMedium Energy = "medium"
	EnergyHigh   Energy = "high"
)

const (
	highEnergyCompletions   = 6
	mediumEnergyCompletions = 2
	energyWindow            = 24 * time.Hour
)

var suggestions = map[TimeOfDay][]string{
	Morning: {"Do morning exercises", "Meditate for 5 minutes", "Plan the day"},
	Day:     {"Focus on one task", "Sort out the backlog", "Take a 10 minute break"},
	Evening: {"Review the day", "Read for 15 minutes", "Prepare tomorrow's plan"},
	Night:   {"Write down your thoughts", "Get ready for bed", "Light stretching"},
}

// Matrix is the Eisenhower split of incomplete tasks
type Matrix struct {
	DoNow    []models.Task `json:"do_now"`
	Schedule []models.Task `json:"schedule"`
	Delegate []models.Task `json:"delegate"`
	Drop     []models.Task `json:"drop"`
}

// TimelineDay groups the tasks completed on one local day
type TimelineDay struct {
	Date    string        `json:"date"`
	Tasks   []models.Task `json:"tasks"`
	TotalXP int           `json:"total_xp"`
}

// SmartContext describes the moment and ready-made suggestions for it
type SmartContext struct {
	TimeOfDay   TimeOfDay       `json:"time_of_day"`
	Energy      Energy          `json:"energy"`
	Completions int             `json:"completions_24h"`
	Suggestions []store.NewTask `json:"suggestions"`
}

// Plan is every derived task view
type Plan struct {
	Today     []models.Task `json:"today"`
	Backlog   []models.Task `json:"backlog"`
	Matrix    Matrix        `json:"matrix"`
	Timeline  []TimelineDay `json:"timeline"`
	Context   SmartContext  `json:"context"`
	Templates []Template    `json:"templates"`
}

// State is the full read model
type State struct {
	Profile    Profile                  `json:"profile"`
	Tasks      []models.Task            `json:"tasks"`
	Dictionary []models.DictionaryEntry `json:"dictionary"`
	Quests     []QuestView              `json:"quests"`
	Plan       Plan                     `json:"plan"`
}

// Plan builds the task views for the current time
func (s *Service) Plan(ctx context.Context) Plan {
	s.mu.Lock()
	tasks := s.tasks.All()
	now := s.now()
	s.mu.Unlock()

	return BuildPlan(tasks, now)
}

// State returns the profile, raw collections, quests and plan in one read
func (s *Service) State(ctx context.Context) (State, error) {
	quests, err := s.Quests(ctx)
	if err != nil {
		return State{}, err
	}
	s.mu.Lock()
	now := s.now()
	st := State{
		Profile:    s.profile(now),
		Tasks:      s.tasks.All(),
		Dictionary: s.dictionary.All(),
		Quests:     quests,
	}
	s.mu.Unlock()

	st.Plan = BuildPlan(st.Tasks, now)
	return st, nil
}

// BuildPlan derives the views from tasks at now. Day boundaries follow now's location.
func BuildPlan(tasks []models.Task, now time.Time) Plan {
	p := Plan{
		Today:     []models.Task{},
		Backlog:   []models.Task{},
		Matrix:    Matrix{DoNow: []models.Task{}, Schedule: []models.Task{}, Delegate: []models.Task{}, Drop: []models.Task{}},
		Timeline:  Timeline(tasks, now.Location()),
		Context:   Context(tasks, now),
		Templates: Templates(),
	}
	for _, t := range tasks {
		if t.Completed {
			continue
		}
		if t.Important || period.SameDay(t.CreatedAt, now) {
			p.Today = append(p.Today, t)
		} else {
			p.Backlog = append(p.Backlog, t)
		}
		switch {
		case t.Important && t.Urgent:
			p.Matrix.DoNow = append(p.Matrix.DoNow, t)
		case t.Important:
			p.Matrix.Schedule = append(p.Matrix.Schedule, t)
		case t.Urgent:
			p.Matrix.Delegate = append(p.Matrix.Delegate, t)
		default:
			p.Matrix.Drop = append(p.Matrix.Drop, t)
		}
	}
	byXP(p.Today)
	byXP(p.Backlog)
	return p
}

func byXP(tasks []models.Task) {
	sort.SliceStable(tasks, func(i, j int) bool { return tasks[i].XP > tasks[j].XP })
}

// Timeline groups completed tasks by the local day they were completed, newest day first
func Timeline(tasks []models.Task, loc *time.Location) []TimelineDay {
	if loc == nil {
		loc = time.Local
	}
	index := map[string]int{}
	days := []TimelineDay{}
	for _, t := range tasks {
		if !t.Completed || t.CompletedAt == nil {
			continue
		}
		key := period.DayKey(t.CompletedAt.In(loc))
		i, ok := index[key]
		if !ok {
			i = len(days)
			index[key] = i
			days = append(days, TimelineDay{Date: key})
		}
		days[i].Tasks = append(days[i].Tasks, t)
		days[i].TotalXP += t.XP
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Date > days[j].Date })
	for _, d := range days {
		sort.SliceStable(d.Tasks, func(i, j int) bool { return d.Tasks[i].CompletedAt.After(*d.Tasks[j].CompletedAt) })
	}
	return days
}

// Context estimates time of day and energy at now and proposes tasks to match
func Context(tasks []models.Task, now time.Time) SmartContext {
	tod := TimeOfDayAt(now)
	since := now.Add(-energyWindow)
	completions := 0
	for _, t := range tasks {
		if t.CompletedWithin(since) {
			completions++
		}
	}

	energy := EnergyLow
	switch {
	case completions >= highEnergyCompletions:
		energy = EnergyHigh
	case completions >= mediumEnergyCompletions:
		energy = EnergyMedium
	}

	out := SmartContext{TimeOfDay: tod, Energy: energy, Completions: completions}
	for _, title := range suggestions[tod] {
		in := store.NewTask{Title: title, XP: models.DefaultTaskXP, Category: models.TaskCategoryGeneral}
		if energy == EnergyHigh {
			in.XP = 20
			in.Important = true
		}
		out.Suggestions = append(out.Suggestions, in)
	}
	return out
}

// TimeOfDayAt buckets the hour of t
func TimeOfDayAt(t time.Time) TimeOfDay {
	switch h := t.Hour(); {
	case h < 11:
		return Morning
	case h < 17:
		return Day
	case h < 22:
		return Evening
	default:
		return Night
	}
}
