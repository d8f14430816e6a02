package planner

import (
	"context"

	"github.com/benvon/quest-planner/internal/models"
)

// CreateBackup stores a backup of the current state
func (s *Service) CreateBackup(ctx context.Context) (models.Backup, error) {
	s.mu.Lock()
	snap := s.snapshot()
	now := s.now()
	s.mu.Unlock()

	return s.backups.Create(ctx, snap, now)
}

// ListBackups returns the retained backups, newest first
func (s *Service) ListBackups(ctx context.Context) ([]models.Backup, error) {
	return s.backups.List(ctx)
}

// GetBackup returns a single backup
func (s *Service) GetBackup(ctx context.Context, key string) (models.Backup, error) {
	return s.backups.Get(ctx, key)
}

// DeleteBackup removes a backup slot
func (s *Service) DeleteBackup(ctx context.Context, key string) error {
	return s.backups.Delete(ctx, key)
}

// RestoreBackup replaces the current state with the backup stored under key
func (s *Service) RestoreBackup(ctx context.Context, key string) (models.Backup, error) {
	b, err := s.backups.Get(ctx, key)
	if err != nil {
		return models.Backup{}, err
	}
	if err := s.Restore(ctx, b.Data); err != nil {
		return models.Backup{}, err
	}
	return b, nil
}
