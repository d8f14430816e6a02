package planner

import (
	"bytes"
	"context"
	"errors"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/benvon/quest-planner/internal/backup"
	"github.com/benvon/quest-planner/internal/models"
	"github.com/benvon/quest-planner/internal/quest"
	"github.com/benvon/quest-planner/internal/skills"
	"github.com/benvon/quest-planner/internal/storage"
	"github.com/benvon/quest-planner/internal/store"
)

var testNow = time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

func newTestService(t *testing.T, st storage.Store) (*Service, *fakeClock) {
	t.Helper()
	if st == nil {
		st = storage.NewMemoryStore()
	}
	clock := &fakeClock{t: testNow}
	svc, err := New(context.Background(), Options{Store: st, Location: time.UTC, Now: clock.Now})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return svc, clock
}

func questView(t *testing.T, svc *Service, id string) QuestView {
	t.Helper()
	quests, err := svc.Quests(context.Background())
	if err != nil {
		t.Fatalf("Quests() error = %v", err)
	}
	for _, q := range quests {
		if q.ID == id {
			return q
		}
	}
	t.Fatalf("quest %s not found", id)
	return QuestView{}
}

func addAndComplete(t *testing.T, svc *Service, n int) {
	t.Helper()
	ctx := context.Background()
	for i := 0; i < n; i++ {
		task, ok, err := svc.AddTask(ctx, store.NewTask{Title: "task"})
		if err != nil || !ok {
			t.Fatalf("AddTask() = %v, %v", ok, err)
		}
		if _, err := svc.CompleteTask(ctx, task.ID); err != nil {
			t.Fatalf("CompleteTask() error = %v", err)
		}
	}
}

func TestNew_Defaults(t *testing.T) {
	t.Parallel()
	st := storage.NewMemoryStore()
	svc, _ := newTestService(t, st)

	p := svc.Profile(context.Background())
	if p.Level != 1 || p.XP != 0 || !p.DarkMode || p.SkillPoints != 0 {
		t.Errorf("Profile() = %+v, want level 1, xp 0, dark mode on", p)
	}
	if p.XPForNextLevel != 100 || p.XPRemaining != 100 {
		t.Errorf("next level = %d remaining %d, want 100/100", p.XPForNextLevel, p.XPRemaining)
	}

	snap := svc.Snapshot(context.Background())
	if len(snap.Quests) != len(quest.Catalog()) {
		t.Errorf("quests = %d, want %d", len(snap.Quests), len(quest.Catalog()))
	}

	for _, key := range []string{KeyTasks, KeyDictionary, KeyXP, KeyLevel, KeyDarkMode, KeyQuests, KeySkillPoints, KeyUnlockedSkills} {
		if _, err := st.Load(context.Background(), key); err != nil {
			t.Errorf("key %s not persisted: %v", key, err)
		}
	}
}

func TestNew_RequiresStore(t *testing.T) {
	t.Parallel()
	if _, err := New(context.Background(), Options{}); err == nil {
		t.Fatal("New() without store should fail")
	}
}

func TestNew_MalformedKeysFallBack(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	st := storage.NewMemoryStore()
	for key, value := range map[string]string{
		KeyTasks:       "not json",
		KeyDictionary:  `{"german":"Haus"}`,
		KeyXP:          "40",
		KeyLevel:       `"abc"`,
		KeyDarkMode:    "false",
		KeyQuests:      "[1,2",
		KeySkillPoints: "null",
	} {
		if err := st.Save(ctx, key, []byte(value)); err != nil {
			t.Fatalf("Save(%s) error = %v", key, err)
		}
	}

	svc, _ := newTestService(t, st)
	snap := svc.Snapshot(ctx)

	if len(snap.Tasks) != 0 || len(snap.Dictionary) != 0 {
		t.Errorf("collections = %d/%d, want empty", len(snap.Tasks), len(snap.Dictionary))
	}
	if snap.XP != 40 || snap.Level != 1 || snap.DarkMode || snap.SkillPoints != 0 {
		t.Errorf("snapshot = xp %d level %d dark %v points %d", snap.XP, snap.Level, snap.DarkMode, snap.SkillPoints)
	}
	if len(snap.Quests) != len(quest.Catalog()) {
		t.Errorf("quests = %d, want fresh catalog", len(snap.Quests))
	}
}

func TestNew_LoadsOriginalAppKeys(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	st := storage.NewMemoryStore()
	for key, value := range map[string]string{
		KeyTasks: `[{"id":1712000000000,"title":"Buy milk","xp":15,"completed":true,"category":"General",` +
			`"important":false,"createdAt":"2024-04-01T19:33:20.000Z","completedAt":"2024-04-01T20:00:00.000Z"}]`,
		KeyDictionary: `[{"id":1712000000001,"german":"Baum","english":"tree","example":""}]`,
		KeyXP:         "15",
		KeyLevel:      "1",
	} {
		if err := st.Save(ctx, key, []byte(value)); err != nil {
			t.Fatalf("Save(%s) error = %v", key, err)
		}
	}

	svc, _ := newTestService(t, st)
	tasks := svc.Tasks(ctx)
	if len(tasks) != 1 || tasks[0].Title != "Buy milk" || !tasks[0].Completed || tasks[0].CompletedAt == nil {
		t.Fatalf("Tasks() = %+v, want the stored task", tasks)
	}
	words := svc.Dictionary(ctx)
	if len(words) != 1 || words[0].German != "Baum" {
		t.Fatalf("Dictionary() = %+v, want the stored word", words)
	}
	if p := svc.Profile(ctx); p.XP != 15 || p.TasksCompleted != 1 || p.Words != 1 {
		t.Errorf("Profile() = %+v", p)
	}

	// The first commit rewrites the keys with stable UUIDs
	reloaded, _ := newTestService(t, st)
	if got := reloaded.Tasks(ctx); len(got) != 1 || got[0].ID != tasks[0].ID {
		t.Errorf("reloaded tasks = %+v, want id %v", got, tasks[0].ID)
	}
}

func TestNew_ReloadsPersistedState(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	st := storage.NewMemoryStore()
	svc, _ := newTestService(t, st)
	addAndComplete(t, svc, 2)
	if _, err := svc.ToggleDarkMode(ctx); err != nil {
		t.Fatalf("ToggleDarkMode() error = %v", err)
	}

	reloaded, _ := newTestService(t, st)
	if !reflect.DeepEqual(reloaded.Snapshot(ctx).Quests, svc.Snapshot(ctx).Quests) {
		t.Error("quests differ after reload")
	}
	p := reloaded.Profile(ctx)
	if p.XP != 30 || p.DarkMode || p.TasksCompleted != 2 {
		t.Errorf("reloaded profile = %+v", p)
	}
}

func TestAddTask(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, _ := newTestService(t, nil)

	task, ok, err := svc.AddTask(ctx, store.NewTask{Title: "  Learn verbs  ", Important: true})
	if err != nil || !ok {
		t.Fatalf("AddTask() = %v, %v", ok, err)
	}
	if task.Title != "Learn verbs" || task.XP != models.DefaultTaskXP || task.Category != models.TaskCategoryGeneral {
		t.Errorf("task = %+v", task)
	}
	if !task.CreatedAt.Equal(testNow) {
		t.Errorf("CreatedAt = %v, want %v", task.CreatedAt, testNow)
	}

	if _, ok, _ := svc.AddTask(ctx, store.NewTask{Title: "   "}); ok {
		t.Error("blank title should be rejected")
	}
	if got := len(svc.Tasks(ctx)); got != 1 {
		t.Errorf("tasks = %d, want 1", got)
	}
}

func TestCompleteTask_AwardsXPOnce(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, _ := newTestService(t, nil)

	task, _, _ := svc.AddTask(ctx, store.NewTask{Title: "Write report"})
	res, err := svc.CompleteTask(ctx, task.ID)
	if err != nil {
		t.Fatalf("CompleteTask() error = %v", err)
	}
	if res.XPAwarded != 15 || !res.Task.Completed || res.Task.CompletedAt == nil {
		t.Errorf("completion = %+v", res)
	}

	focus := questView(t, svc, quest.IDFocusMarathon)
	if focus.Progress != 1 || focus.Status != models.QuestStatusActive {
		t.Errorf("focus marathon = %d %s, want 1 active", focus.Progress, focus.Status)
	}

	again, err := svc.CompleteTask(ctx, task.ID)
	if err != nil {
		t.Fatalf("second CompleteTask() error = %v", err)
	}
	if again.XPAwarded != 0 {
		t.Errorf("second completion awarded %d xp", again.XPAwarded)
	}
	if xp := svc.Profile(ctx).XP; xp != 15 {
		t.Errorf("xp = %d, want 15", xp)
	}
}

func TestCompleteTask_NotFound(t *testing.T) {
	t.Parallel()
	svc, _ := newTestService(t, nil)
	if _, err := svc.CompleteTask(context.Background(), uuid.New()); !errors.Is(err, ErrTaskNotFound) {
		t.Errorf("CompleteTask() error = %v, want ErrTaskNotFound", err)
	}
	if err := svc.DeleteTask(context.Background(), uuid.New()); !errors.Is(err, ErrTaskNotFound) {
		t.Errorf("DeleteTask() error = %v, want ErrTaskNotFound", err)
	}
}

func TestDeleteTask_KeepsXP(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, _ := newTestService(t, nil)
	addAndComplete(t, svc, 1)
	open, _, _ := svc.AddTask(ctx, store.NewTask{Title: "open"})

	if err := svc.DeleteTask(ctx, open.ID); err != nil {
		t.Fatalf("DeleteTask() error = %v", err)
	}
	n, err := svc.ClearCompleted(ctx)
	if err != nil || n != 1 {
		t.Fatalf("ClearCompleted() = %d, %v", n, err)
	}
	if len(svc.Tasks(ctx)) != 0 {
		t.Error("tasks should be empty")
	}
	if xp := svc.Profile(ctx).XP; xp != 15 {
		t.Errorf("xp = %d, want 15", xp)
	}
}

func TestRestore_NoSpuriousLevelUp(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, _ := newTestService(t, nil)

	snap := backup.Defaults()
	snap.Level, snap.XP = 3, 250
	if err := svc.Restore(ctx, snap); err != nil {
		t.Fatalf("Restore() error = %v", err)
	}
	p := svc.Profile(ctx)
	if p.Level != 3 || p.XP != 250 || p.LevelUp != nil {
		t.Errorf("profile = %+v, want level 3 xp 250 without level-up", p)
	}
}

func TestRestore_SettlesMultipleLevels(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, clock := newTestService(t, nil)

	snap := backup.Defaults()
	snap.XP = 350
	if err := svc.Restore(ctx, snap); err != nil {
		t.Fatalf("Restore() error = %v", err)
	}
	p := svc.Profile(ctx)
	if p.Level != 4 || p.SkillPoints != 3 {
		t.Errorf("profile = level %d points %d, want 4/3", p.Level, p.SkillPoints)
	}
	if p.LevelUp == nil || p.LevelUp.To != 4 {
		t.Fatalf("level-up notice = %+v, want to 4", p.LevelUp)
	}

	clock.Advance(DefaultLevelUpNotice + time.Second)
	if p := svc.Profile(ctx); p.LevelUp != nil {
		t.Errorf("notice should expire, got %+v", p.LevelUp)
	}
}

func TestClaimQuest(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, _ := newTestService(t, nil)
	addAndComplete(t, svc, 5)

	if q := questView(t, svc, quest.IDFocusMarathon); q.Status != models.QuestStatusCompleted {
		t.Fatalf("focus marathon status = %s, want completed", q.Status)
	}

	claim, err := svc.ClaimQuest(ctx, quest.IDFocusMarathon)
	if err != nil {
		t.Fatalf("ClaimQuest() error = %v", err)
	}
	if claim.RewardXP != 25 || claim.Quest.Status != models.QuestStatusClaimed {
		t.Errorf("claim = %+v", claim)
	}
	if len(claim.LevelUps) != 1 || claim.LevelUps[0].To != 2 {
		t.Errorf("level-ups = %+v, want one to level 2", claim.LevelUps)
	}

	if _, err := svc.ClaimQuest(ctx, quest.IDFocusMarathon); !errors.Is(err, ErrQuestNotClaimable) {
		t.Errorf("second claim error = %v, want ErrQuestNotClaimable", err)
	}
	if _, err := svc.ClaimQuest(ctx, "nope"); !errors.Is(err, ErrQuestNotFound) {
		t.Errorf("unknown claim error = %v, want ErrQuestNotFound", err)
	}
}

// flakyStore fails every Save while failing is set
type flakyStore struct {
	*storage.MemoryStore
	mu      sync.Mutex
	failing bool
}

var errSaveFailed = errors.New("disk full")

func (f *flakyStore) setFailing(v bool) {
	f.mu.Lock()
	f.failing = v
	f.mu.Unlock()
}

func (f *flakyStore) Save(ctx context.Context, key string, value []byte) error {
	f.mu.Lock()
	failing := f.failing
	f.mu.Unlock()
	if failing {
		return errSaveFailed
	}
	return f.MemoryStore.Save(ctx, key, value)
}

func TestFailedSaveRollsBack(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	st := &flakyStore{MemoryStore: storage.NewMemoryStore()}
	svc, _ := newTestService(t, st)
	addAndComplete(t, svc, 4)
	last, _, err := svc.AddTask(ctx, store.NewTask{Title: "fifth"})
	if err != nil {
		t.Fatalf("AddTask() error = %v", err)
	}
	before := svc.Snapshot(ctx)

	st.setFailing(true)
	if _, err := svc.CompleteTask(ctx, last.ID); !errors.Is(err, errSaveFailed) {
		t.Fatalf("CompleteTask() error = %v, want save failure", err)
	}
	if got := svc.Snapshot(ctx); !reflect.DeepEqual(got, before) {
		t.Errorf("state after failed completion = %+v, want %+v", got, before)
	}
	if _, _, err := svc.AddTask(ctx, store.NewTask{Title: "lost"}); !errors.Is(err, errSaveFailed) {
		t.Errorf("AddTask() error = %v, want save failure", err)
	}
	if dark, err := svc.ToggleDarkMode(ctx); !errors.Is(err, errSaveFailed) || !dark {
		t.Errorf("ToggleDarkMode() = %v, %v, want unchanged dark mode and save failure", dark, err)
	}
	if len(svc.Tasks(ctx)) != 5 {
		t.Errorf("tasks = %d, want 5", len(svc.Tasks(ctx)))
	}

	st.setFailing(false)
	res, err := svc.CompleteTask(ctx, last.ID)
	if err != nil || res.XPAwarded != 15 {
		t.Fatalf("CompleteTask() after recovery = %+v, %v", res, err)
	}
	if q := questView(t, svc, quest.IDFocusMarathon); q.Status != models.QuestStatusCompleted {
		t.Fatalf("focus marathon status = %s, want completed", q.Status)
	}

	st.setFailing(true)
	if _, err := svc.ClaimQuest(ctx, quest.IDFocusMarathon); !errors.Is(err, errSaveFailed) {
		t.Fatalf("ClaimQuest() error = %v, want save failure", err)
	}
	if p := svc.Profile(ctx); p.XP != 75 || p.Level != 1 {
		t.Errorf("profile after failed claim = xp %d level %d, want 75 at level 1", p.XP, p.Level)
	}
	st.setFailing(false)
	if q := questView(t, svc, quest.IDFocusMarathon); q.Status != models.QuestStatusCompleted {
		t.Errorf("focus marathon status = %s, want still completed", q.Status)
	}
}

func TestQuests_RollOverNextDay(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, clock := newTestService(t, nil)
	addAndComplete(t, svc, 5)
	if _, err := svc.ClaimQuest(ctx, quest.IDFocusMarathon); err != nil {
		t.Fatalf("ClaimQuest() error = %v", err)
	}

	clock.Advance(24 * time.Hour)
	q := questView(t, svc, quest.IDFocusMarathon)
	if q.Status != models.QuestStatusActive || q.Progress != 0 || q.PeriodKey != "2026-10-15" {
		t.Errorf("after rollover = %s %d %s", q.Status, q.Progress, q.PeriodKey)
	}
}

func TestUnlockSkill_ActivatesGatedQuest(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, _ := newTestService(t, nil)

	snap := backup.Defaults()
	snap.Level, snap.XP, snap.SkillPoints = 2, 150, 1
	if err := svc.Restore(ctx, snap); err != nil {
		t.Fatalf("Restore() error = %v", err)
	}
	if q := questView(t, svc, quest.IDWellRounded); q.Status != models.QuestStatusLocked {
		t.Fatalf("well rounded = %s, want locked", q.Status)
	}

	p, err := svc.UnlockSkill(ctx, "prod_multitask")
	if err != nil {
		t.Fatalf("UnlockSkill() error = %v", err)
	}
	if p.SkillPoints != 0 || len(p.UnlockedSkills) != 1 {
		t.Errorf("profile = %+v", p)
	}
	if q := questView(t, svc, quest.IDWellRounded); q.Status != models.QuestStatusActive {
		t.Errorf("well rounded = %s, want active", q.Status)
	}

	tests := []struct {
		id   string
		want error
	}{
		{"prod_multitask", skills.ErrAlreadyUnlocked},
		{"prod_focus", skills.ErrNoSkillPoints},
		{"nope", skills.ErrUnknownSkill},
	}
	for _, tt := range tests {
		if _, err := svc.UnlockSkill(ctx, tt.id); !errors.Is(err, tt.want) {
			t.Errorf("UnlockSkill(%s) error = %v, want %v", tt.id, err, tt.want)
		}
	}

	unlocked := 0
	for _, sk := range svc.Skills(ctx) {
		if sk.Unlocked {
			unlocked++
		}
	}
	if unlocked != 1 {
		t.Errorf("unlocked skills = %d, want 1", unlocked)
	}
}

func TestImportWords(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, _ := newTestService(t, nil)

	added, err := svc.ImportWords(ctx, []store.NewEntry{
		{German: "Haus", English: "house"},
		{German: "Baum", English: "tree"},
		{German: "", English: "skipped"},
		{German: "Hund", English: "dog", Example: "Der Hund bellt."},
	})
	if err != nil {
		t.Fatalf("ImportWords() error = %v", err)
	}
	if len(added) != 3 || len(svc.Dictionary(ctx)) != 3 {
		t.Errorf("added = %d, want 3", len(added))
	}
	if q := questView(t, svc, quest.IDGermanMinute); q.Status != models.QuestStatusCompleted {
		t.Errorf("german minute = %s, want completed", q.Status)
	}

	if err := svc.DeleteWord(ctx, added[0].ID); err != nil {
		t.Fatalf("DeleteWord() error = %v", err)
	}
	if err := svc.DeleteWord(ctx, added[0].ID); !errors.Is(err, ErrWordNotFound) {
		t.Errorf("DeleteWord() error = %v, want ErrWordNotFound", err)
	}
}

func TestApplyTemplate(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, _ := newTestService(t, nil)

	added, err := svc.ApplyTemplate(ctx, TemplateWorkBlock)
	if err != nil {
		t.Fatalf("ApplyTemplate() error = %v", err)
	}
	if len(added) != 5 {
		t.Fatalf("added = %d, want 5", len(added))
	}
	important := 0
	for _, task := range added {
		if task.Important {
			important++
			if task.XP != 20 || task.Category != models.TaskCategoryWork {
				t.Errorf("work task = %+v", task)
			}
		}
	}
	if important != 4 {
		t.Errorf("important = %d, want 4", important)
	}

	if _, err := svc.ApplyTemplate(ctx, "lunch"); !errors.Is(err, ErrUnknownTemplate) {
		t.Errorf("ApplyTemplate() error = %v, want ErrUnknownTemplate", err)
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, _ := newTestService(t, nil)
	addAndComplete(t, svc, 3)
	if _, err := svc.ImportWords(ctx, []store.NewEntry{{German: "Haus", English: "house"}}); err != nil {
		t.Fatalf("ImportWords() error = %v", err)
	}

	var buf bytes.Buffer
	if err := backup.Export(&buf, svc.Snapshot(ctx), testNow); err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	snap, err := backup.Import(&buf)
	if err != nil {
		t.Fatalf("Import() error = %v", err)
	}

	other, _ := newTestService(t, nil)
	if err := other.Restore(ctx, snap); err != nil {
		t.Fatalf("Restore() error = %v", err)
	}
	if !reflect.DeepEqual(other.Snapshot(ctx).Quests, svc.Snapshot(ctx).Quests) {
		t.Error("quest evaluation differs after round trip")
	}
	if a, b := other.Profile(ctx), svc.Profile(ctx); a.XP != b.XP || a.Level != b.Level || a.Words != b.Words {
		t.Errorf("profile %+v, want %+v", a, b)
	}
}

func TestBackups(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, clock := newTestService(t, nil)
	addAndComplete(t, svc, 1)

	b, err := svc.CreateBackup(ctx)
	if err != nil {
		t.Fatalf("CreateBackup() error = %v", err)
	}
	clock.Advance(time.Minute)
	addAndComplete(t, svc, 2)

	list, err := svc.ListBackups(ctx)
	if err != nil || len(list) != 1 {
		t.Fatalf("ListBackups() = %d, %v", len(list), err)
	}

	if _, err := svc.RestoreBackup(ctx, b.Key); err != nil {
		t.Fatalf("RestoreBackup() error = %v", err)
	}
	if p := svc.Profile(ctx); p.XP != 15 || p.TasksCompleted != 1 {
		t.Errorf("restored profile = %+v", p)
	}

	if err := svc.DeleteBackup(ctx, b.Key); err != nil {
		t.Fatalf("DeleteBackup() error = %v", err)
	}
	if _, err := svc.GetBackup(ctx, b.Key); !errors.Is(err, backup.ErrBackupNotFound) {
		t.Errorf("GetBackup() error = %v, want ErrBackupNotFound", err)
	}
}

func TestClearAll(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	st := storage.NewMemoryStore()
	svc, _ := newTestService(t, st)
	addAndComplete(t, svc, 2)
	if _, err := svc.CreateBackup(ctx); err != nil {
		t.Fatalf("CreateBackup() error = %v", err)
	}

	if err := svc.ClearAll(ctx); err != nil {
		t.Fatalf("ClearAll() error = %v", err)
	}
	p := svc.Profile(ctx)
	if p.XP != 0 || p.Level != 1 || p.TasksCompleted != 0 || !p.DarkMode {
		t.Errorf("profile = %+v, want fresh", p)
	}
	list, err := svc.ListBackups(ctx)
	if err != nil || len(list) != 0 {
		t.Errorf("backups = %d, %v, want none", len(list), err)
	}
	keys, _ := st.Keys(ctx, backup.KeyPrefix)
	if len(keys) != 0 {
		t.Errorf("backup keys left: %v", keys)
	}
}

func TestState(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, _ := newTestService(t, nil)
	addAndComplete(t, svc, 1)
	if _, _, err := svc.AddTask(ctx, store.NewTask{Title: "open", Important: true}); err != nil {
		t.Fatalf("AddTask() error = %v", err)
	}

	st, err := svc.State(ctx)
	if err != nil {
		t.Fatalf("State() error = %v", err)
	}
	if len(st.Tasks) != 2 || len(st.Plan.Today) != 1 || len(st.Plan.Timeline) != 1 {
		t.Errorf("state tasks %d today %d timeline %d", len(st.Tasks), len(st.Plan.Today), len(st.Plan.Timeline))
	}
	if len(st.Quests) != len(quest.Catalog()) || st.Quests[0].Title == "" {
		t.Error("quests should carry catalog details")
	}
}
