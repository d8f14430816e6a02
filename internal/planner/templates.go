package planner

import (
	"github.com/benvon/quest-planner/internal/models"
	"github.com/benvon/quest-planner/internal/store"
)

const (
	TemplateMorningRitual = "morning_ritual"
	TemplateWorkBlock     = "work_block"
	TemplateEveningRitual = "evening_ritual"
)

// Template is a named batch of tasks added in one step
type Template struct {
	ID    string          `json:"id"`
	Title string          `json:"title"`
	Tasks []store.NewTask `json:"tasks"`
}

var templates = []Template{
	{
		ID:    TemplateMorningRitual,
		Title: "Morning ritual",
		Tasks: []store.NewTask{
			{Title: "Drink a glass of water", XP: 15, Category: models.TaskCategoryRoutine, Important: true},
			{Title: "Morning exercises", XP: 15, Category: models.TaskCategoryRoutine, Important: true},
			{Title: "Plan the day", XP: 15, Category: models.TaskCategoryRoutine, Important: true},
		},
	},
	{
		ID:    TemplateWorkBlock,
		Title: "Work block",
		Tasks: []store.NewTask{
			{Title: "Check email", XP: 20, Category: models.TaskCategoryWork, Important: true},
			{Title: "Focus session on the main task", XP: 20, Category: models.TaskCategoryWork, Important: true},
			{Title: "Review progress", XP: 20, Category: models.TaskCategoryWork, Important: true},
			{Title: "Update the task list", XP: 20, Category: models.TaskCategoryWork, Important: true},
			{Title: "Take a break", XP: 10, Category: models.TaskCategoryWork},
		},
	},
	{
		ID:    TemplateEveningRitual,
		Title: "Evening ritual",
		Tasks: []store.NewTask{
			{Title: "Review the day", XP: 12, Category: models.TaskCategoryRoutine},
			{Title: "Prepare for tomorrow", XP: 12, Category: models.TaskCategoryRoutine},
			{Title: "Read before bed", XP: 12, Category: models.TaskCategoryRoutine},
		},
	},
}

// Templates returns every routine template
func Templates() []Template {
	out := make([]Template, len(templates))
	for i, t := range templates {
		out[i] = Template{ID: t.ID, Title: t.Title, Tasks: append([]store.NewTask{}, t.Tasks...)}
	}
	return out
}

// LookupTemplate returns the template with the given id
func LookupTemplate(id string) (Template, bool) {
	for _, t := range Templates() {
		if t.ID == id {
			return t, true
		}
	}
	return Template{}, false
}
