package model

import "time"

// Achievement is a milestone unlocked once an aggregate statistic crosses
// its threshold. Once unlocked it stays unlocked.
type Achievement struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Icon        string     `json:"icon"`
	Threshold   int64      `json:"threshold"`
	Type        string     `json:"type"`
	IsUnlocked  bool       `json:"isUnlocked"`
	UnlockedAt  *time.Time `json:"unlockedAt"`
}

// Achievement types.
const (
	AchievementItemsCount     = "items_count"
	AchievementTotalValue     = "total_value"
	AchievementLocationsCount = "locations_count"
)

// ValidAchievementType reports whether t is a known achievement type.
func ValidAchievementType(t string) bool {
	switch t {
	case AchievementItemsCount, AchievementTotalValue, AchievementLocationsCount:
		return true
	}
	return false
}
