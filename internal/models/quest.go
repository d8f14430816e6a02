package models

// QuestStatus represents where a quest is in its lifecycle
type QuestStatus string

const (
	QuestStatusLocked    QuestStatus = "locked"
	QuestStatusActive    QuestStatus = "active"
	QuestStatusCompleted QuestStatus = "completed"
	QuestStatusClaimed   QuestStatus = "claimed"
)

// IsValid reports whether s is a known status
func (s QuestStatus) IsValid() bool {
	switch s {
	case QuestStatusLocked, QuestStatusActive, QuestStatusCompleted, QuestStatusClaimed:
		return true
	default:
		return false
	}
}

// QuestPeriod is the time bucket a quest resets on.
// The zero value means the quest never rolls over.
type QuestPeriod string

const (
	QuestPeriodNone  QuestPeriod = ""
	QuestPeriodDay   QuestPeriod = "day"
	QuestPeriodWeek  QuestPeriod = "week"
	QuestPeriodMonth QuestPeriod = "month"
)

// IsValid reports whether p is a known period (including unbounded)
func (p QuestPeriod) IsValid() bool {
	switch p {
	case QuestPeriodNone, QuestPeriodDay, QuestPeriodWeek, QuestPeriodMonth:
		return true
	default:
		return false
	}
}

// Quest is the tracked state of one catalog quest
type Quest struct {
	ID           string      `json:"id"`
	Period       QuestPeriod `json:"period"`
	BaseTarget   int         `json:"base_target"`
	AutoActivate bool        `json:"auto_activate"`
	Status       QuestStatus `json:"status"`
	Progress     int         `json:"progress"`
	PeriodKey    string      `json:"period_key"`
}
