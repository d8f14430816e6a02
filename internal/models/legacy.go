package models

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// Older exports store epoch-millisecond numbers as ids and camelCase timestamps.
// Task and DictionaryEntry decode both shapes; they always encode the current one.

// UnmarshalJSON accepts UUID or millisecond ids and the createdAt/completedAt names
func (t *Task) UnmarshalJSON(data []byte) error {
	type plain Task
	var aux struct {
		plain
		ID                json.RawMessage `json:"id"`
		LegacyCreatedAt   *time.Time      `json:"createdAt"`
		LegacyCompletedAt *time.Time      `json:"completedAt"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	id, created, err := parseID(aux.ID)
	if err != nil {
		return err
	}
	*t = Task(aux.plain)
	t.ID = id
	if t.CreatedAt.IsZero() {
		if aux.LegacyCreatedAt != nil {
			t.CreatedAt = *aux.LegacyCreatedAt
		} else {
			t.CreatedAt = created
		}
	}
	if t.CompletedAt == nil {
		t.CompletedAt = aux.LegacyCompletedAt
	}
	if !t.Category.IsValid() {
		t.Category = TaskCategoryGeneral
	}
	return nil
}

// UnmarshalJSON accepts UUID or millisecond ids and the createdAt name
func (e *DictionaryEntry) UnmarshalJSON(data []byte) error {
	type plain DictionaryEntry
	var aux struct {
		plain
		ID              json.RawMessage `json:"id"`
		LegacyCreatedAt *time.Time      `json:"createdAt"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	id, created, err := parseID(aux.ID)
	if err != nil {
		return err
	}
	*e = DictionaryEntry(aux.plain)
	e.ID = id
	if e.CreatedAt.IsZero() {
		if aux.LegacyCreatedAt != nil {
			e.CreatedAt = *aux.LegacyCreatedAt
		} else {
			e.CreatedAt = created
		}
	}
	return nil
}

// parseID reads a UUID string or a millisecond id. A millisecond id becomes a
// UUIDv7 carrying that instant, which is also returned as the creation time.
// A missing id gets a fresh UUIDv7.
func parseID(raw json.RawMessage) (uuid.UUID, time.Time, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return newV7(time.Time{}), time.Time{}, nil
	}

	var s string
	if raw[0] == '"' {
		if err := json.Unmarshal(raw, &s); err != nil {
			return uuid.Nil, time.Time{}, err
		}
		if id, err := uuid.Parse(s); err == nil {
			return id, time.Time{}, nil
		}
	} else {
		s = string(raw)
	}

	ms, err := strconv.ParseFloat(s, 64)
	if err != nil || ms <= 0 || ms >= 1<<48 {
		return uuid.Nil, time.Time{}, fmt.Errorf("invalid id %s", s)
	}
	at := time.UnixMilli(int64(ms)).UTC()
	return newV7(at), at, nil
}

// newV7 returns a version 7 UUID. A non-zero at replaces the embedded timestamp.
func newV7(at time.Time) uuid.UUID {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	if !at.IsZero() {
		var ts [8]byte
		binary.BigEndian.PutUint64(ts[:], uint64(at.UnixMilli()))
		copy(id[0:6], ts[2:8])
	}
	id[6] = (id[6] & 0x0f) | 0x70
	id[8] = (id[8] & 0x3f) | 0x80
	return id
}
