package models

// Progression holds the user's leveling state
type Progression struct {
	Level          int      `json:"level"`
	XP             int      `json:"xp"`
	SkillPoints    int      `json:"skill_points"`
	UnlockedSkills []string `json:"unlocked_skills"`
}

// NewProgression returns the starting progression for a fresh profile
func NewProgression() Progression {
	return Progression{Level: 1, UnlockedSkills: []string{}}
}

// HasSkill reports whether the skill id has been unlocked
func (p Progression) HasSkill(id string) bool {
	for _, s := range p.UnlockedSkills {
		if s == id {
			return true
		}
	}
	return false
}
