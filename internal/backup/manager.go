// Package backup manages timestamped snapshot slots, file export and the
// periodic backup job.
package backup

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/benvon/quest-planner/internal/models"
	"github.com/benvon/quest-planner/internal/storage"
)

const (
	// KeyPrefix marks backup slots in the persistence port
	KeyPrefix = "planner_backup_"
	// DefaultRetention is how many backups are kept after each write
	DefaultRetention = 10

	keyTimeLayout = "2006-01-02T15:04:05.000Z"
)

// ErrBackupNotFound is returned for keys that hold no backup
var ErrBackupNotFound = errors.New("backup not found")

// Key returns the slot key for a backup taken at t
func Key(t time.Time) string {
	return KeyPrefix + t.UTC().Format(keyTimeLayout)
}

// ParseKey extracts the timestamp from a slot key
func ParseKey(key string) (time.Time, bool) {
	if !strings.HasPrefix(key, KeyPrefix) {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339Nano, strings.TrimPrefix(key, KeyPrefix))
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Manager writes, lists and prunes backups in a storage.Store
type Manager struct {
	store     storage.Store
	retention int
	logger    *zap.Logger
}

// NewManager creates a manager keeping at most retention backups
func NewManager(store storage.Store, retention int, logger *zap.Logger) *Manager {
	if retention <= 0 {
		retention = DefaultRetention
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{store: store, retention: retention, logger: logger}
}

// Retention returns the number of slots kept
func (m *Manager) Retention() int { return m.retention }

// Create stores snap under a key derived from now and prunes old slots.
// Two backups in the same millisecond share a key; the later write wins.
func (m *Manager) Create(ctx context.Context, snap models.Snapshot, now time.Time) (models.Backup, error) {
	data, err := Encode(snap, now)
	if err != nil {
		return models.Backup{}, fmt.Errorf("encode backup: %w", err)
	}
	key := Key(now)
	if err := m.store.Save(ctx, key, data); err != nil {
		return models.Backup{}, fmt.Errorf("save backup: %w", err)
	}

	pruned, err := m.prune(ctx)
	if err != nil {
		m.logger.Warn("backup_prune_failed", zap.Error(err))
	}
	m.logger.Info("backup_created",
		zap.String("key", key),
		zap.Int("tasks", len(snap.Tasks)),
		zap.Int("words", len(snap.Dictionary)),
		zap.Int("pruned", pruned),
	)

	ts, _ := ParseKey(key)
	return models.Backup{Key: key, Timestamp: ts, Data: snap}, nil
}

// List returns the retained backups, newest first. Unreadable slots are skipped.
func (m *Manager) List(ctx context.Context) ([]models.Backup, error) {
	keys, err := m.newestKeys(ctx)
	if err != nil {
		return nil, err
	}
	if len(keys) > m.retention {
		keys = keys[:m.retention]
	}

	out := make([]models.Backup, 0, len(keys))
	for _, key := range keys {
		b, err := m.Get(ctx, key)
		if err != nil {
			m.logger.Warn("backup_unreadable", zap.String("key", key), zap.Error(err))
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

// Get loads a single backup
func (m *Manager) Get(ctx context.Context, key string) (models.Backup, error) {
	ts, ok := ParseKey(key)
	if !ok {
		return models.Backup{}, ErrBackupNotFound
	}
	data, err := m.store.Load(ctx, key)
	if errors.Is(err, storage.ErrNotFound) {
		return models.Backup{}, ErrBackupNotFound
	}
	if err != nil {
		return models.Backup{}, fmt.Errorf("load backup: %w", err)
	}
	snap, _, err := Decode(data)
	if err != nil {
		return models.Backup{}, err
	}
	return models.Backup{Key: key, Timestamp: ts, Data: snap}, nil
}

// Delete removes a backup slot
func (m *Manager) Delete(ctx context.Context, key string) error {
	if _, ok := ParseKey(key); !ok {
		return ErrBackupNotFound
	}
	if _, err := m.store.Load(ctx, key); errors.Is(err, storage.ErrNotFound) {
		return ErrBackupNotFound
	}
	if err := m.store.Delete(ctx, key); err != nil {
		return fmt.Errorf("delete backup: %w", err)
	}
	m.logger.Info("backup_deleted", zap.String("key", key))
	return nil
}

func (m *Manager) newestKeys(ctx context.Context) ([]string, error) {
	keys, err := m.store.Keys(ctx, KeyPrefix)
	if err != nil {
		return nil, fmt.Errorf("list backups: %w", err)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(keys)))
	return keys, nil
}

// prune keeps the newest retention slots by key order and deletes the rest
func (m *Manager) prune(ctx context.Context) (int, error) {
	keys, err := m.newestKeys(ctx)
	if err != nil {
		return 0, err
	}
	if len(keys) <= m.retention {
		return 0, nil
	}
	removed := 0
	for _, key := range keys[m.retention:] {
		if err := m.store.Delete(ctx, key); err != nil {
			return removed, fmt.Errorf("prune %s: %w", key, err)
		}
		removed++
	}
	return removed, nil
}
