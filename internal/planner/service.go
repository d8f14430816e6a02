// Package planner owns the planner state and runs the leveling and quest
// recomputation after every change.
package planner

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/benvon/quest-planner/internal/backup"
	"github.com/benvon/quest-planner/internal/leveling"
	"github.com/benvon/quest-planner/internal/models"
	"github.com/benvon/quest-planner/internal/quest"
	"github.com/benvon/quest-planner/internal/storage"
	"github.com/benvon/quest-planner/internal/store"
	"github.com/benvon/quest-planner/internal/telemetry"
)

var (
	ErrTaskNotFound      = errors.New("task not found")
	ErrWordNotFound      = errors.New("dictionary entry not found")
	ErrQuestNotFound     = quest.ErrNotFound
	ErrQuestNotClaimable = quest.ErrNotClaimable
	ErrUnknownTemplate   = errors.New("unknown template")
)

// DefaultLevelUpNotice is how long a level-up stays visible in the profile
const DefaultLevelUpNotice = 3 * time.Second

// Options configures a Service. Store is required.
type Options struct {
	Store         storage.Store
	Backups       *backup.Manager
	Location      *time.Location
	Now           func() time.Time
	Logger        *zap.Logger
	LevelUpNotice time.Duration
	Catalog       []quest.Definition
}

// LevelUpNotice is the transient notification shown after a level-up
type LevelUpNotice struct {
	leveling.LevelUp
	Until time.Time `json:"until"`
}

// Service serializes every read and write of the planner state
type Service struct {
	mu sync.Mutex

	store   storage.Store
	backups *backup.Manager
	loc     *time.Location
	clock   func() time.Time
	logger  *zap.Logger
	tracer  trace.Tracer
	notice  time.Duration
	catalog []quest.Definition

	tasks       *store.Tasks
	dictionary  *store.Dictionary
	progression models.Progression
	darkMode    bool
	quests      []models.Quest
	levelUp     *LevelUpNotice
}

// New loads state from the store, brings it up to date and persists the result
func New(ctx context.Context, opts Options) (*Service, error) {
	if opts.Store == nil {
		return nil, errors.New("planner: store is required")
	}
	s := &Service{
		store:   opts.Store,
		backups: opts.Backups,
		loc:     opts.Location,
		clock:   opts.Now,
		logger:  opts.Logger,
		tracer:  telemetry.Tracer(),
		notice:  opts.LevelUpNotice,
		catalog: opts.Catalog,
	}
	if s.loc == nil {
		s.loc = time.Local
	}
	if s.clock == nil {
		s.clock = time.Now
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	if s.notice == 0 {
		s.notice = DefaultLevelUpNotice
	}
	if s.catalog == nil {
		s.catalog = quest.Catalog()
	}
	if s.backups == nil {
		s.backups = backup.NewManager(opts.Store, backup.DefaultRetention, s.logger)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.load(ctx)
	if err := s.commit(ctx, s.checkpoint()); err != nil {
		return nil, err
	}
	return s, nil
}

// Backups exposes the backup manager the service writes through
func (s *Service) Backups() *backup.Manager { return s.backups }

// Location returns the zone day, week and month boundaries are computed in
func (s *Service) Location() *time.Location { return s.loc }

func (s *Service) now() time.Time {
	return s.clock().In(s.loc)
}

// recompute settles the level, then re-evaluates every quest. It returns the
// level-ups that happened.
func (s *Service) recompute(ctx context.Context) []leveling.LevelUp {
	_, span := s.tracer.Start(ctx, "planner.recompute")
	defer span.End()

	now := s.now()

	p, ups := leveling.Settle(s.progression)
	s.progression = p
	for _, up := range ups {
		s.levelUp = &LevelUpNotice{LevelUp: up, Until: now.Add(s.notice)}
		s.logger.Info("level_up",
			zap.Int("from", up.From),
			zap.Int("to", up.To),
			zap.Int("skill_points", p.SkillPoints),
		)
	}

	before := make(map[string]models.QuestStatus, len(s.quests))
	for _, q := range s.quests {
		before[q.ID] = q.Status
	}

	s.quests = quest.Evaluate(quest.Input{
		Quests:     s.quests,
		Tasks:      s.tasks.All(),
		Dictionary: s.dictionary.All(),
		Level:      p.Level,
		Now:        now,
	})

	completed := 0
	for _, q := range s.quests {
		if q.Status == models.QuestStatusCompleted && before[q.ID] != models.QuestStatusCompleted {
			completed++
			s.logger.Info("quest_completed", zap.String("quest_id", q.ID), zap.String("period_key", q.PeriodKey))
		}
	}

	span.SetAttributes(
		attribute.Int("planner.level", p.Level),
		attribute.Int("planner.quests", len(s.quests)),
		attribute.Int("planner.quests_completed", completed),
		attribute.Int("planner.level_ups", len(ups)),
	)
	return ups
}

// checkpoint is the state before a mutation, kept so a failed save can be undone
type checkpoint struct {
	snap    models.Snapshot
	levelUp *LevelUpNotice
}

func (s *Service) checkpoint() checkpoint {
	return checkpoint{snap: s.snapshot(), levelUp: s.levelUp}
}

// rollback restores cp after a failed save so memory never runs ahead of storage.
// Keys written before the failure are overwritten by the next successful commit.
func (s *Service) rollback(cp checkpoint) {
	s.apply(cp.snap)
	s.levelUp = cp.levelUp
	s.logger.Warn("state_rolled_back",
		zap.Int("level", s.progression.Level),
		zap.Int("xp", s.progression.XP),
	)
}

// commit runs the recompute pipeline and saves the result, rolling back to cp
// when the save fails
func (s *Service) commit(ctx context.Context, cp checkpoint) error {
	_, err := s.commitWithLevelUps(ctx, cp)
	return err
}

// commitWithLevelUps is commit for operations that report level-ups
func (s *Service) commitWithLevelUps(ctx context.Context, cp checkpoint) ([]leveling.LevelUp, error) {
	ups := s.recompute(ctx)
	if err := s.persist(ctx); err != nil {
		s.rollback(cp)
		return nil, err
	}
	return ups, nil
}

// Refresh re-evaluates quests against the current time, picking up period
// rollovers without any data change
func (s *Service) Refresh(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := s.checkpoint()
	return s.commit(ctx, cp)
}

// Snapshot returns the full current state
func (s *Service) Snapshot(ctx context.Context) models.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

func (s *Service) snapshot() models.Snapshot {
	quests := make([]models.Quest, len(s.quests))
	copy(quests, s.quests)
	unlocked := make([]string, len(s.progression.UnlockedSkills))
	copy(unlocked, s.progression.UnlockedSkills)
	return models.Snapshot{
		Tasks:          s.tasks.All(),
		Dictionary:     s.dictionary.All(),
		XP:             s.progression.XP,
		Level:          s.progression.Level,
		DarkMode:       s.darkMode,
		Quests:         quests,
		SkillPoints:    s.progression.SkillPoints,
		UnlockedSkills: unlocked,
	}
}

// Restore replaces the whole state with snap in one step and re-runs the pipeline.
// Quests are reconciled against the catalog, so a snapshot without quests starts
// them fresh.
func (s *Service) Restore(ctx context.Context, snap models.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := s.checkpoint()

	s.apply(snap)
	s.levelUp = nil
	s.logger.Info("state_restored",
		zap.Int("tasks", s.tasks.Len()),
		zap.Int("words", s.dictionary.Len()),
		zap.Int("level", s.progression.Level),
		zap.Int("xp", s.progression.XP),
	)
	return s.commit(ctx, cp)
}

func (s *Service) apply(snap models.Snapshot) {
	s.tasks = store.NewTasks(snap.Tasks)
	s.dictionary = store.NewDictionary(snap.Dictionary)

	p := models.Progression{
		Level:          snap.Level,
		XP:             snap.XP,
		SkillPoints:    snap.SkillPoints,
		UnlockedSkills: append([]string{}, snap.UnlockedSkills...),
	}
	if p.Level < 1 {
		p.Level = 1
	}
	if p.XP < 0 {
		p.XP = 0
	}
	if p.SkillPoints < 0 {
		p.SkillPoints = 0
	}
	s.progression = p
	s.darkMode = snap.DarkMode
	s.quests = quest.Reconcile(s.catalog, snap.Quests)
	for _, id := range p.UnlockedSkills {
		for _, gated := range quest.GatedBy(id) {
			s.quests, _ = quest.Activate(s.quests, gated)
		}
	}
}

// ClearAll wipes every stored key, backups included, and resets to a fresh profile
func (s *Service) ClearAll(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := s.checkpoint()

	keys, err := s.store.Keys(ctx, "")
	if err != nil {
		return fmt.Errorf("list keys: %w", err)
	}
	for _, key := range keys {
		if err := s.store.Delete(ctx, key); err != nil {
			return fmt.Errorf("delete %s: %w", key, err)
		}
	}

	s.apply(backup.Defaults())
	s.levelUp = nil
	s.logger.Info("data_cleared", zap.Int("keys_deleted", len(keys)))
	return s.commit(ctx, cp)
}
