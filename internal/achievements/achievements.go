// Package achievements evaluates threshold rules against inventory stats.
package achievements

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/erazemk/shramba/internal/model"
)

// Evaluate reports whether the stats satisfy the achievement's threshold.
// Unknown types never unlock.
func Evaluate(a model.Achievement, s model.Stats) bool {
	switch a.Type {
	case model.AchievementItemsCount:
		return int64(s.TotalItems) >= a.Threshold
	case model.AchievementTotalValue:
		return s.TotalValue.GreaterThanOrEqual(decimal.NewFromInt(a.Threshold))
	case model.AchievementLocationsCount:
		return int64(s.LocationsCount) >= a.Threshold
	}
	return false
}

// Check unlocks every locked achievement whose rule holds, stamping
// UnlockedAt with now. It returns the IDs of the achievements it unlocked.
// Already unlocked entries are never touched, so repeated calls with the
// same stats return nothing new.
func Check(s model.Stats, list []model.Achievement, now time.Time) []int64 {
	var unlocked []int64
	for i := range list {
		a := &list[i]
		if a.IsUnlocked {
			continue
		}
		if !Evaluate(*a, s) {
			continue
		}
		a.IsUnlocked = true
		t := now
		a.UnlockedAt = &t
		unlocked = append(unlocked, a.ID)
	}
	return unlocked
}

// Progress returns completion towards the threshold as a percentage in
// [0, 100]. Unlocked achievements are always complete.
func Progress(a model.Achievement, s model.Stats) float64 {
	if a.IsUnlocked {
		return 100
	}
	if a.Threshold <= 0 {
		if Evaluate(a, s) {
			return 100
		}
		return 0
	}

	var current decimal.Decimal
	switch a.Type {
	case model.AchievementItemsCount:
		current = decimal.NewFromInt(int64(s.TotalItems))
	case model.AchievementTotalValue:
		current = s.TotalValue
	case model.AchievementLocationsCount:
		current = decimal.NewFromInt(int64(s.LocationsCount))
	default:
		return 0
	}

	pct := current.Mul(decimal.NewFromInt(100)).Div(decimal.NewFromInt(a.Threshold))
	if pct.GreaterThan(decimal.NewFromInt(100)) {
		return 100
	}
	f, _ := pct.Round(1).Float64()
	return f
}

// DefaultCatalog is the set of achievements seeded into a new store.
func DefaultCatalog() []model.Achievement {
	return []model.Achievement{
		{
			Name:        "First Steps",
			Description: "Add your first item to the inventory",
			Type:        model.AchievementItemsCount,
			Icon:        "trophy",
			Threshold:   1,
		},
		{
			Name:        "Getting Organized",
			Description: "Add 10 items to your inventory",
			Type:        model.AchievementItemsCount,
			Icon:        "star",
			Threshold:   10,
		},
		{
			Name:        "Collector",
			Description: "Add 50 items to your inventory",
			Type:        model.AchievementItemsCount,
			Icon:        "crown",
			Threshold:   50,
		},
		{
			Name:        "Valuable Collection",
			Description: "Reach $1000 in total inventory value",
			Type:        model.AchievementTotalValue,
			Icon:        "diamond",
			Threshold:   1000,
		},
		{
			Name:        "Home Mapper",
			Description: "Create 5 different locations",
			Type:        model.AchievementLocationsCount,
			Icon:        "map",
			Threshold:   5,
		},
	}
}
