package planner

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/benvon/quest-planner/internal/logger"
	"github.com/benvon/quest-planner/internal/models"
	"github.com/benvon/quest-planner/internal/store"
)

// Dictionary returns every entry, newest first
func (s *Service) Dictionary(ctx context.Context) []models.DictionaryEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dictionary.All()
}

// AddWord adds a dictionary entry. ok is false when either term is blank.
func (s *Service) AddWord(ctx context.Context, in store.NewEntry) (models.DictionaryEntry, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := s.checkpoint()

	entry, ok := s.dictionary.Add(in, s.now())
	if !ok {
		return models.DictionaryEntry{}, false, nil
	}
	s.logger.Info("word_added",
		zap.String("word_id", entry.ID.String()),
		zap.String("german", logger.SanitizeTitle(entry.German)),
	)
	if err := s.commit(ctx, cp); err != nil {
		return models.DictionaryEntry{}, false, err
	}
	return entry, true, nil
}

// DeleteWord removes a dictionary entry
func (s *Service) DeleteWord(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := s.checkpoint()

	if !s.dictionary.Delete(id) {
		return ErrWordNotFound
	}
	s.logger.Info("word_deleted", zap.String("word_id", id.String()))
	return s.commit(ctx, cp)
}

// ImportWords adds a batch of entries with a single recompute. Entries with a
// blank term are skipped. It returns the entries that were added.
func (s *Service) ImportWords(ctx context.Context, entries []store.NewEntry) ([]models.DictionaryEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := s.checkpoint()

	now := s.now()
	added := make([]models.DictionaryEntry, 0, len(entries))
	for _, in := range entries {
		if entry, ok := s.dictionary.Add(in, now); ok {
			added = append(added, entry)
		}
	}
	if len(added) == 0 {
		return added, nil
	}
	s.logger.Info("words_imported", zap.Int("count", len(added)), zap.Int("skipped", len(entries)-len(added)))
	if err := s.commit(ctx, cp); err != nil {
		return nil, err
	}
	return added, nil
}
