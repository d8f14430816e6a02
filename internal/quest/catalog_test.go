package quest

import (
	"errors"
	"testing"

	"github.com/benvon/quest-planner/internal/models"
)

func TestCatalog_Consistency(t *testing.T) {
	t.Parallel()

	seen := make(map[string]bool)
	for _, d := range Catalog() {
		if seen[d.ID] {
			t.Errorf("duplicate quest id %s", d.ID)
		}
		seen[d.ID] = true

		if !d.Period.IsValid() {
			t.Errorf("quest %s has invalid period %q", d.ID, d.Period)
		}
		if d.BaseTarget <= 0 {
			t.Errorf("quest %s has non-positive target", d.ID)
		}
		if d.RewardXP <= 0 {
			t.Errorf("quest %s has no reward", d.ID)
		}
		if !d.AutoActivate && d.UnlockSkill == "" {
			t.Errorf("quest %s can never activate", d.ID)
		}
		if _, ok := RuleFor(d.ID); !ok {
			t.Errorf("quest %s has no rule", d.ID)
		}
	}
}

func TestCatalog_ReturnsCopy(t *testing.T) {
	t.Parallel()

	c := Catalog()
	c[0].BaseTarget = 999
	if d, _ := Lookup(c[0].ID); d.BaseTarget == 999 {
		t.Error("Catalog() exposed the package table")
	}
}

func TestNewQuests(t *testing.T) {
	t.Parallel()

	quests := NewQuests(Catalog())
	if len(quests) != len(Catalog()) {
		t.Fatalf("len = %d, want %d", len(quests), len(Catalog()))
	}
	for _, q := range quests {
		d, _ := Lookup(q.ID)
		want := models.QuestStatusLocked
		if d.AutoActivate {
			want = models.QuestStatusActive
		}
		if q.Status != want {
			t.Errorf("quest %s status = %s, want %s", q.ID, q.Status, want)
		}
		if q.Progress != 0 || q.PeriodKey != "" {
			t.Errorf("quest %s not fresh: %+v", q.ID, q)
		}
	}
}

func TestReconcile(t *testing.T) {
	t.Parallel()

	defs := []Definition{
		{ID: "a", Period: models.QuestPeriodDay, BaseTarget: 3, AutoActivate: true},
		{ID: "b", Period: models.QuestPeriodWeek, BaseTarget: 2},
		{ID: "c", Period: models.QuestPeriodMonth, BaseTarget: 1, AutoActivate: true},
	}
	stored := []models.Quest{
		{ID: "gone", Status: models.QuestStatusActive},
		{ID: "b", Status: models.QuestStatusActive, Progress: 9, PeriodKey: "2026-W42"},
		{ID: "a", Status: "bogus"},
	}

	got := Reconcile(defs, stored)
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	if got[0].ID != "a" || got[0].Status != models.QuestStatusActive {
		t.Errorf("got[0] = %+v, want fresh a", got[0])
	}
	if got[1].ID != "b" || got[1].Progress != 2 || got[1].PeriodKey != "2026-W42" || got[1].Status != models.QuestStatusActive {
		t.Errorf("got[1] = %+v, want stored b capped at target", got[1])
	}
	if got[2].ID != "c" || got[2].Status != models.QuestStatusActive {
		t.Errorf("got[2] = %+v, want fresh c", got[2])
	}
}

func TestClaim(t *testing.T) {
	t.Parallel()

	quests := []models.Quest{
		{ID: IDBigGame, Status: models.QuestStatusCompleted, BaseTarget: 1, Progress: 1},
		{ID: IDFocusMarathon, Status: models.QuestStatusActive, BaseTarget: 5},
	}

	got, reward, err := Claim(quests, IDBigGame)
	if err != nil {
		t.Fatalf("Claim() error = %v", err)
	}
	if reward != 30 {
		t.Errorf("reward = %d, want 30", reward)
	}
	if got[0].Status != models.QuestStatusClaimed {
		t.Errorf("Status = %s, want claimed", got[0].Status)
	}
	if quests[0].Status != models.QuestStatusCompleted {
		t.Error("Claim() modified its input")
	}

	if _, _, err := Claim(got, IDBigGame); !errors.Is(err, ErrNotClaimable) {
		t.Errorf("second claim error = %v, want ErrNotClaimable", err)
	}
	if _, _, err := Claim(got, IDFocusMarathon); !errors.Is(err, ErrNotClaimable) {
		t.Errorf("active claim error = %v, want ErrNotClaimable", err)
	}
	if _, _, err := Claim(got, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing claim error = %v, want ErrNotFound", err)
	}
}

func TestActivateAndGatedBy(t *testing.T) {
	t.Parallel()

	ids := GatedBy("prod_multitask")
	if len(ids) != 1 || ids[0] != IDWellRounded {
		t.Fatalf("GatedBy(prod_multitask) = %v", ids)
	}
	if ids := GatedBy("crea_architect"); len(ids) != 0 {
		t.Errorf("GatedBy(crea_architect) = %v, want none", ids)
	}

	quests := NewQuests(Catalog())
	got, changed := Activate(quests, IDWellRounded)
	if !changed {
		t.Fatal("Activate() reported no change")
	}
	if q := questByID(t, got, IDWellRounded); q.Status != models.QuestStatusActive {
		t.Errorf("Status = %s, want active", q.Status)
	}
	if _, changed := Activate(got, IDWellRounded); changed {
		t.Error("Activate() on active quest reported a change")
	}
	if _, changed := Activate(got, "missing"); changed {
		t.Error("Activate() on missing quest reported a change")
	}
}
