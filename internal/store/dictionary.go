package store

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/benvon/quest-planner/internal/models"
)

// NewEntry holds the user supplied fields of a dictionary entry
type NewEntry struct {
	German  string
	English string
	Example string
}

// Dictionary is a newest-first word collection
type Dictionary struct {
	items []models.DictionaryEntry
}

// NewDictionary wraps an existing list, kept in the given order
func NewDictionary(items []models.DictionaryEntry) *Dictionary {
	d := &Dictionary{}
	d.Replace(items)
	return d
}

// Add prepends an entry. Both terms are required after trimming.
func (s *Dictionary) Add(in NewEntry, now time.Time) (models.DictionaryEntry, bool) {
	german := strings.TrimSpace(in.German)
	english := strings.TrimSpace(in.English)
	if german == "" || english == "" {
		return models.DictionaryEntry{}, false
	}

	entry := models.DictionaryEntry{
		ID:        newID(),
		German:    german,
		English:   english,
		Example:   strings.TrimSpace(in.Example),
		CreatedAt: now,
	}
	s.items = append([]models.DictionaryEntry{entry}, s.items...)
	return entry, true
}

// Delete removes an entry by id
func (s *Dictionary) Delete(id uuid.UUID) bool {
	for i, e := range s.items {
		if e.ID == id {
			s.items = append(s.items[:i:i], s.items[i+1:]...)
			return true
		}
	}
	return false
}

// All returns a copy of the collection
func (s *Dictionary) All() []models.DictionaryEntry {
	out := make([]models.DictionaryEntry, len(s.items))
	copy(out, s.items)
	return out
}

// Len returns the number of entries
func (s *Dictionary) Len() int { return len(s.items) }

// Replace swaps the whole collection
func (s *Dictionary) Replace(items []models.DictionaryEntry) {
	s.items = make([]models.DictionaryEntry, len(items))
	copy(s.items, items)
}
