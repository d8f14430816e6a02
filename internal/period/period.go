// Package period maps timestamps to the day, week and month buckets quests reset on.
// Keys are computed in the location carried by the time value.
package period

import (
	"fmt"
	"time"

	"github.com/benvon/quest-planner/internal/models"
)

const (
	dayLayout   = "2006-01-02"
	monthLayout = "2006-01"
)

// DayKey returns the calendar date of t as YYYY-MM-DD
func DayKey(t time.Time) string {
	return t.Format(dayLayout)
}

// WeekKey returns the ISO-8601 week of t as YYYY-Www.
// The year is the ISO year, so Dec 31 can belong to week 1 of the next year.
func WeekKey(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%04d-W%02d", year, week)
}

// MonthKey returns the calendar month of t as YYYY-MM
func MonthKey(t time.Time) string {
	return t.Format(monthLayout)
}

// KeyFor returns the bucket key for p, or an empty string for unbounded quests
func KeyFor(p models.QuestPeriod, t time.Time) string {
	switch p {
	case models.QuestPeriodDay:
		return DayKey(t)
	case models.QuestPeriodWeek:
		return WeekKey(t)
	case models.QuestPeriodMonth:
		return MonthKey(t)
	default:
		return ""
	}
}

// StartOfDay returns midnight of t's calendar day in t's location
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// SameDay reports whether a falls on the same calendar day as ref, in ref's location
func SameDay(a, ref time.Time) bool {
	return DayKey(a.In(ref.Location())) == DayKey(ref)
}
