package skills

import (
	"errors"
	"testing"

	"github.com/benvon/quest-planner/internal/models"
)

func TestCatalog(t *testing.T) {
	t.Parallel()

	all := Catalog()
	if len(all) != 16 {
		t.Fatalf("len(Catalog()) = %d, want 16", len(all))
	}
	for _, b := range []Branch{BranchProductivity, BranchLearning, BranchDiscipline, BranchCreativity} {
		if n := len(ByBranch(b)); n != 4 {
			t.Errorf("branch %s has %d skills, want 4", b, n)
		}
	}
	if _, ok := Lookup("prod_multitask"); !ok {
		t.Error("Lookup(prod_multitask) not found")
	}
	if _, ok := Lookup("nope"); ok {
		t.Error("Lookup(nope) found a skill")
	}
}

func TestUnlock(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		in         models.Progression
		id         string
		wantErr    error
		wantPoints int
	}{
		{
			name:       "spends a point",
			in:         models.Progression{Level: 2, SkillPoints: 1, UnlockedSkills: []string{}},
			id:         "prod_focus",
			wantPoints: 0,
		},
		{
			name:       "unknown skill",
			in:         models.Progression{Level: 2, SkillPoints: 1},
			id:         "missing",
			wantErr:    ErrUnknownSkill,
			wantPoints: 1,
		},
		{
			name:       "already unlocked",
			in:         models.Progression{Level: 3, SkillPoints: 1, UnlockedSkills: []string{"prod_focus"}},
			id:         "prod_focus",
			wantErr:    ErrAlreadyUnlocked,
			wantPoints: 1,
		},
		{
			name:       "no points",
			in:         models.Progression{Level: 1},
			id:         "prod_focus",
			wantErr:    ErrNoSkillPoints,
			wantPoints: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Unlock(tt.in, tt.id)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Unlock() error = %v, want %v", err, tt.wantErr)
			}
			if got.SkillPoints != tt.wantPoints {
				t.Errorf("SkillPoints = %d, want %d", got.SkillPoints, tt.wantPoints)
			}
			if tt.wantErr == nil && !got.HasSkill(tt.id) {
				t.Errorf("skill %s not recorded", tt.id)
			}
		})
	}
}

func TestUnlock_DoesNotAliasInput(t *testing.T) {
	t.Parallel()

	base := make([]string, 1, 4)
	base[0] = "prod_focus"
	in := models.Progression{Level: 3, SkillPoints: 2, UnlockedSkills: base}

	a, err := Unlock(in, "learn_linguist")
	if err != nil {
		t.Fatalf("Unlock() error = %v", err)
	}
	b, err := Unlock(in, "disc_iron_will")
	if err != nil {
		t.Fatalf("Unlock() error = %v", err)
	}
	if !a.HasSkill("learn_linguist") || a.HasSkill("disc_iron_will") {
		t.Errorf("a.UnlockedSkills = %v", a.UnlockedSkills)
	}
	if !b.HasSkill("disc_iron_will") || b.HasSkill("learn_linguist") {
		t.Errorf("b.UnlockedSkills = %v", b.UnlockedSkills)
	}
}
