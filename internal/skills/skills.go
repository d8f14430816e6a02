// Package skills defines the skill tree and how skill points are spent on it.
package skills

import (
	"errors"

	"github.com/benvon/quest-planner/internal/models"
)

// Branch groups related skills
type Branch string

const (
	BranchProductivity Branch = "productivity"
	BranchLearning     Branch = "learning"
	BranchDiscipline   Branch = "discipline"
	BranchCreativity   Branch = "creativity"
)

var (
	ErrUnknownSkill    = errors.New("unknown skill")
	ErrAlreadyUnlocked = errors.New("skill already unlocked")
	ErrNoSkillPoints   = errors.New("no skill points available")
)

// Skill is a skill tree entry
type Skill struct {
	ID          string `json:"id"`
	Branch      Branch `json:"branch"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

var catalog = []Skill{
	{ID: "prod_focus", Branch: BranchProductivity, Title: "Deep focus", Description: "More XP for tasks finished in an unbroken run."},
	{ID: "prod_fast_hands", Branch: BranchProductivity, Title: "Fast hands", Description: "Quicker entry of routine tasks."},
	{ID: "prod_multitask", Branch: BranchProductivity, Title: "Multitasking", Description: "Better overview of load across several tasks."},
	{ID: "prod_energizer", Branch: BranchProductivity, Title: "Energizer", Description: "More motivation from finished tasks."},

	{ID: "learn_photo_memory", Branch: BranchLearning, Title: "Photographic memory", Description: "Stronger work with dictionary words."},
	{ID: "learn_linguist", Branch: BranchLearning, Title: "Linguist", Description: "More emphasis on examples and phrases."},
	{ID: "learn_grammar_detective", Branch: BranchLearning, Title: "Grammar detective", Description: "Hints on sentence structure."},
	{ID: "learn_dialog_master", Branch: BranchLearning, Title: "Dialog master", Description: "Focus on dialogs rather than single words."},

	{ID: "disc_streak_master", Branch: BranchDiscipline, Title: "Streak master", Description: "Bonuses for daily streaks."},
	{ID: "disc_deadline_pro", Branch: BranchDiscipline, Title: "Deadline pro", Description: "A flexible approach to task deadlines."},
	{ID: "disc_iron_will", Branch: BranchDiscipline, Title: "Iron will", Description: "Support for focus and concentration."},
	{ID: "disc_ritual_master", Branch: BranchDiscipline, Title: "Ritual master", Description: "Stronger morning and evening routines."},

	{ID: "crea_task_designer", Branch: BranchCreativity, Title: "Task designer", Description: "Build good-looking task templates."},
	{ID: "crea_theme_artist", Branch: BranchCreativity, Title: "Theme artist", Description: "Custom color schemes."},
	{ID: "crea_storyteller", Branch: BranchCreativity, Title: "Storyteller", Description: "Your own story quests."},
	{ID: "crea_architect", Branch: BranchCreativity, Title: "Architect", Description: "Design your own productivity systems."},
}

// Catalog returns every skill in tree order
func Catalog() []Skill {
	out := make([]Skill, len(catalog))
	copy(out, catalog)
	return out
}

// Lookup finds a skill by id
func Lookup(id string) (Skill, bool) {
	for _, s := range catalog {
		if s.ID == id {
			return s, true
		}
	}
	return Skill{}, false
}

// ByBranch returns the skills of one branch
func ByBranch(b Branch) []Skill {
	var out []Skill
	for _, s := range catalog {
		if s.Branch == b {
			out = append(out, s)
		}
	}
	return out
}

// Unlock spends one skill point on id and returns the updated progression.
// p is returned unchanged on error.
func Unlock(p models.Progression, id string) (models.Progression, error) {
	if _, ok := Lookup(id); !ok {
		return p, ErrUnknownSkill
	}
	if p.HasSkill(id) {
		return p, ErrAlreadyUnlocked
	}
	if p.SkillPoints <= 0 {
		return p, ErrNoSkillPoints
	}

	unlocked := make([]string, 0, len(p.UnlockedSkills)+1)
	unlocked = append(unlocked, p.UnlockedSkills...)
	p.UnlockedSkills = append(unlocked, id)
	p.SkillPoints--
	return p, nil
}
