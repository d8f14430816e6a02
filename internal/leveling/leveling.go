// Package leveling implements the XP threshold curve and level-up transitions.
package leveling

import "github.com/benvon/quest-planner/internal/models"

// XPPerLevel is the threshold multiplier: reaching level L+1 requires L*XPPerLevel total xp.
const XPPerLevel = 100

// LevelUp describes a single level transition
type LevelUp struct {
	From int `json:"from"`
	To   int `json:"to"`
}

// XPForNextLevel returns the total xp needed to leave the given level
func XPForNextLevel(level int) int {
	if level < 1 {
		level = 1
	}
	return level * XPPerLevel
}

// Step applies at most one level-up to p.
// When xp crosses several thresholds at once only the threshold of the current level
// is taken; callers that want to catch up use Settle.
func Step(p models.Progression) (models.Progression, *LevelUp) {
	p = normalize(p)
	if p.XP < XPForNextLevel(p.Level) {
		return p, nil
	}
	up := &LevelUp{From: p.Level, To: p.Level + 1}
	p.Level++
	p.SkillPoints++
	return p, up
}

// Settle repeats Step until no threshold is crossed, the same way a level change
// retriggers the check. Each level gained awards one skill point.
func Settle(p models.Progression) (models.Progression, []LevelUp) {
	var ups []LevelUp
	for {
		next, up := Step(p)
		if up == nil {
			return next, ups
		}
		ups = append(ups, *up)
		p = next
	}
}

// AwardXP adds xp to p. Non-positive amounts are ignored.
func AwardXP(p models.Progression, xp int) models.Progression {
	if xp > 0 {
		p.XP += xp
	}
	return p
}

// Remaining returns how much xp is still needed to reach the next level
func Remaining(p models.Progression) int {
	p = normalize(p)
	if r := XPForNextLevel(p.Level) - p.XP; r > 0 {
		return r
	}
	return 0
}

func normalize(p models.Progression) models.Progression {
	if p.Level < 1 {
		p.Level = 1
	}
	if p.XP < 0 {
		p.XP = 0
	}
	if p.SkillPoints < 0 {
		p.SkillPoints = 0
	}
	return p
}
