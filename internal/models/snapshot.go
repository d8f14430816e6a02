package models

import "time"

// Snapshot is the full serializable state of the planner
type Snapshot struct {
	Tasks          []Task            `json:"tasks"`
	Dictionary     []DictionaryEntry `json:"dictionary"`
	XP             int               `json:"xp"`
	Level          int               `json:"level"`
	DarkMode       bool              `json:"dark_mode"`
	Quests         []Quest           `json:"quests"`
	SkillPoints    int               `json:"skill_points"`
	UnlockedSkills []string          `json:"unlocked_skills"`
}

// Progression extracts the leveling fields of the snapshot
func (s Snapshot) Progression() Progression {
	return Progression{
		Level:          s.Level,
		XP:             s.XP,
		SkillPoints:    s.SkillPoints,
		UnlockedSkills: s.UnlockedSkills,
	}
}

// Backup is a snapshot stored under a timestamp-derived key
type Backup struct {
	Key       string    `json:"key"`
	Timestamp time.Time `json:"timestamp"`
	Data      Snapshot  `json:"data"`
}
