package backup

import (
	"bytes"
	"encoding/json"
	"errors"
	"time"

	"github.com/benvon/quest-planner/internal/models"
)

// ErrInvalidSnapshot is returned when a payload is not a JSON object
var ErrInvalidSnapshot = errors.New("backup: payload is not a JSON object")

// payload is the on-disk shape of an exported snapshot
type payload struct {
	models.Snapshot
	Timestamp time.Time `json:"timestamp"`
}

// Encode serializes a snapshot with its export time
func Encode(snap models.Snapshot, exportedAt time.Time) ([]byte, error) {
	if snap.Tasks == nil {
		snap.Tasks = []models.Task{}
	}
	if snap.Dictionary == nil {
		snap.Dictionary = []models.DictionaryEntry{}
	}
	if snap.Quests == nil {
		snap.Quests = []models.Quest{}
	}
	if snap.UnlockedSkills == nil {
		snap.UnlockedSkills = []string{}
	}
	return json.MarshalIndent(payload{Snapshot: snap, Timestamp: exportedAt.UTC()}, "", "  ")
}

// Decode reads a snapshot leniently. Only the top-level shape is checked; each field
// falls back to its default when missing or malformed, and malformed list elements
// are skipped. The camelCase names and millisecond ids written by older exports are
// accepted too; an entry without a creation time gets the payload timestamp.
// The returned time is zero when the payload carries no usable timestamp.
func Decode(data []byte) (models.Snapshot, time.Time, error) {
	var fields map[string]json.RawMessage
	if !bytes.HasPrefix(bytes.TrimSpace(data), []byte("{")) {
		return models.Snapshot{}, time.Time{}, ErrInvalidSnapshot
	}
	if err := json.Unmarshal(data, &fields); err != nil {
		return models.Snapshot{}, time.Time{}, ErrInvalidSnapshot
	}

	ts, _ := decodeField[time.Time](fields, "timestamp")

	snap := Defaults()
	snap.Tasks = decodeList[models.Task](fields["tasks"])
	snap.Dictionary = decodeList[models.DictionaryEntry](fields["dictionary"])
	for i := range snap.Tasks {
		if snap.Tasks[i].CreatedAt.IsZero() {
			snap.Tasks[i].CreatedAt = ts
		}
	}
	for i := range snap.Dictionary {
		if snap.Dictionary[i].CreatedAt.IsZero() {
			snap.Dictionary[i].CreatedAt = ts
		}
	}
	snap.Quests = decodeList[models.Quest](fields["quests"])

	if v, ok := decodeField[int](fields, "xp"); ok && v > 0 {
		snap.XP = v
	}
	if v, ok := decodeField[int](fields, "level"); ok && v >= 1 {
		snap.Level = v
	}
	if v, ok := decodeField[bool](fields, "dark_mode", "darkMode"); ok {
		snap.DarkMode = v
	}
	if v, ok := decodeField[int](fields, "skill_points", "skillPoints"); ok && v > 0 {
		snap.SkillPoints = v
	}
	if v, ok := decodeField[[]string](fields, "unlocked_skills", "unlockedSkills"); ok && v != nil {
		snap.UnlockedSkills = v
	}

	return snap, ts, nil
}

// Defaults is the snapshot used for anything missing from persisted state
func Defaults() models.Snapshot {
	return models.Snapshot{
		Tasks:          []models.Task{},
		Dictionary:     []models.DictionaryEntry{},
		Level:          1,
		DarkMode:       true,
		Quests:         []models.Quest{},
		UnlockedSkills: []string{},
	}
}

func decodeField[T any](fields map[string]json.RawMessage, names ...string) (T, bool) {
	var zero T
	for _, name := range names {
		raw, ok := fields[name]
		if !ok || isNull(raw) {
			continue
		}
		var v T
		if err := json.Unmarshal(raw, &v); err != nil {
			continue
		}
		return v, true
	}
	return zero, false
}

func decodeList[T any](raw json.RawMessage) []T {
	out := []T{}
	if len(raw) == 0 || isNull(raw) {
		return out
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return out
	}
	for _, item := range items {
		var v T
		if err := json.Unmarshal(item, &v); err != nil {
			continue
		}
		out = append(out, v)
	}
	return out
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
