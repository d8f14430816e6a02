package models

import (
	"time"

	"github.com/google/uuid"
)

// DictionaryEntry is a German word with its English translation
type DictionaryEntry struct {
	ID        uuid.UUID `json:"id"`
	German    string    `json:"german"`
	English   string    `json:"english"`
	Example   string    `json:"example,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
