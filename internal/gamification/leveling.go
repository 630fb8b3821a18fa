package gamification

import (
	"github.com/quizmize/backend/internal/apierr"
)

// Policy returns the xp required to clear the given level.
type Policy func(level int) int

// GroupPolicy is the curve for study groups.
func GroupPolicy(level int) int {
	return 2000 + level*1000
}

// UserPolicy is the curve for individual accounts. It grows more slowly
// than the group curve so personal levels stay attainable.
func UserPolicy(level int) int {
	return 2000 + (level-1)*500
}

type AwardResult struct {
	NewLevel     int  `json:"newLevel"`
	XP           int  `json:"xp"`
	RequiredXP   int  `json:"requiredXp"`
	LeveledUp    bool `json:"leveledUp"`
	LevelsGained int  `json:"levelsGained"`
}

// Award applies an xp grant under a policy, carrying overflow across as
// many level-ups as the amount covers.
func Award(policy Policy, level, xp, amount int) (AwardResult, error) {
	if amount <= 0 {
		return AwardResult{}, apierr.Validation("xp amount must be positive")
	}
	xp += amount
	required := policy(level)
	gained := 0
	for xp >= required {
		xp -= required
		level++
		gained++
		required = policy(level)
	}
	return AwardResult{
		NewLevel:     level,
		XP:           xp,
		RequiredXP:   required,
		LeveledUp:    gained > 0,
		LevelsGained: gained,
	}, nil
}
