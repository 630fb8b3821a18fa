package gamification

import "testing"

func TestAwardGroupPolicy(t *testing.T) {
	cases := []struct {
		name   string
		level  int
		xp     int
		amount int
		want   AwardResult
	}{
		{
			name:   "no level up",
			level:  1,
			xp:     0,
			amount: 1500,
			want:   AwardResult{NewLevel: 1, XP: 1500, RequiredXP: 3000},
		},
		{
			name:   "single level up with carry",
			level:  1,
			xp:     0,
			amount: 3500,
			want:   AwardResult{NewLevel: 2, XP: 500, RequiredXP: 4000, LeveledUp: true, LevelsGained: 1},
		},
		{
			name:   "exact threshold rolls over to zero",
			level:  1,
			xp:     0,
			amount: 3000,
			want:   AwardResult{NewLevel: 2, XP: 0, RequiredXP: 4000, LeveledUp: true, LevelsGained: 1},
		},
		{
			name:   "double level up",
			level:  1,
			xp:     2900,
			amount: 4200,
			want:   AwardResult{NewLevel: 3, XP: 100, RequiredXP: 5000, LeveledUp: true, LevelsGained: 2},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Award(GroupPolicy, tc.level, tc.xp, tc.amount)
			if err != nil {
				t.Fatalf("Award: %v", err)
			}
			if got != tc.want {
				t.Fatalf("Award = %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestAwardUserPolicy(t *testing.T) {
	got, err := Award(UserPolicy, 1, 0, 4600)
	if err != nil {
		t.Fatalf("Award: %v", err)
	}
	want := AwardResult{NewLevel: 3, XP: 100, RequiredXP: 3000, LeveledUp: true, LevelsGained: 2}
	if got != want {
		t.Fatalf("Award = %+v, want %+v", got, want)
	}
}

func TestAwardRejectsNonPositive(t *testing.T) {
	for _, amount := range []int{0, -10} {
		if _, err := Award(GroupPolicy, 1, 0, amount); err == nil {
			t.Fatalf("Award(%d) expected error", amount)
		}
	}
}
