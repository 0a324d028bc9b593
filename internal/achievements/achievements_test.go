package achievements

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/erazemk/shramba/internal/model"
)

func statsWith(items, locations int, value string) model.Stats {
	return model.Stats{TotalItems: items, LocationsCount: locations, TotalValue: decimal.RequireFromString(value)}
}

func TestEvaluate(t *testing.T) {
	tests := []struct {
		typ       string
		threshold int64
		stats     model.Stats
		want      bool
	}{
		{model.AchievementItemsCount, 1, statsWith(0, 0, "0"), false},
		{model.AchievementItemsCount, 1, statsWith(1, 0, "0"), true},
		{model.AchievementItemsCount, 10, statsWith(11, 0, "0"), true},
		{model.AchievementTotalValue, 1000, statsWith(0, 0, "999.99"), false},
		{model.AchievementTotalValue, 1000, statsWith(0, 0, "1000"), true},
		{model.AchievementLocationsCount, 5, statsWith(0, 4, "0"), false},
		{model.AchievementLocationsCount, 5, statsWith(0, 5, "0"), true},
		{"unknown", 0, statsWith(100, 100, "100"), false},
	}

	for _, tt := range tests {
		a := model.Achievement{Type: tt.typ, Threshold: tt.threshold}
		if got := Evaluate(a, tt.stats); got != tt.want {
			t.Errorf("Evaluate(%s >= %d, %+v) = %v, want %v", tt.typ, tt.threshold, tt.stats, got, tt.want)
		}
	}
}

func TestCheckUnlocksOnce(t *testing.T) {
	list := []model.Achievement{
		{ID: 1, Type: model.AchievementItemsCount, Threshold: 1},
		{ID: 2, Type: model.AchievementItemsCount, Threshold: 10},
	}
	first := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	got := Check(statsWith(1, 0, "0"), list, first)
	if len(got) != 1 || got[0] != 1 {
		t.Fatalf("expected [1] unlocked, got %v", got)
	}
	if !list[0].IsUnlocked || list[0].UnlockedAt == nil || !list[0].UnlockedAt.Equal(first) {
		t.Errorf("expected achievement 1 unlocked at %v, got %+v", first, list[0])
	}
	if list[1].IsUnlocked {
		t.Error("achievement 2 should still be locked")
	}

	// Same stats again: nothing new, timestamp untouched.
	got = Check(statsWith(1, 0, "0"), list, first.Add(time.Hour))
	if len(got) != 0 {
		t.Errorf("expected no new unlocks, got %v", got)
	}
	if !list[0].UnlockedAt.Equal(first) {
		t.Errorf("UnlockedAt changed to %v", list[0].UnlockedAt)
	}
}

func TestCheckMonotonic(t *testing.T) {
	list := []model.Achievement{{ID: 1, Type: model.AchievementTotalValue, Threshold: 100}}
	now := time.Now()

	Check(statsWith(0, 0, "150"), list, now)
	if !list[0].IsUnlocked {
		t.Fatal("expected unlock")
	}

	// Value drops below the threshold; the achievement stays unlocked.
	Check(statsWith(0, 0, "10"), list, now.Add(time.Minute))
	if !list[0].IsUnlocked {
		t.Error("achievement reverted to locked")
	}
}

func TestProgress(t *testing.T) {
	tests := []struct {
		a     model.Achievement
		stats model.Stats
		want  float64
	}{
		{model.Achievement{Type: model.AchievementItemsCount, Threshold: 10}, statsWith(5, 0, "0"), 50},
		{model.Achievement{Type: model.AchievementItemsCount, Threshold: 10}, statsWith(20, 0, "0"), 100},
		{model.Achievement{Type: model.AchievementTotalValue, Threshold: 1000}, statsWith(0, 0, "250"), 25},
		{model.Achievement{Type: model.AchievementLocationsCount, Threshold: 3}, statsWith(0, 1, "0"), 33.3},
		{model.Achievement{Type: model.AchievementItemsCount, Threshold: 10, IsUnlocked: true}, statsWith(0, 0, "0"), 100},
		{model.Achievement{Type: "unknown", Threshold: 10}, statsWith(5, 5, "5"), 0},
	}

	for _, tt := range tests {
		if got := Progress(tt.a, tt.stats); got != tt.want {
			t.Errorf("Progress(%+v) = %v, want %v", tt.a, got, tt.want)
		}
	}
}

func TestDefaultCatalogTypesValid(t *testing.T) {
	for _, a := range DefaultCatalog() {
		if !model.ValidAchievementType(a.Type) {
			t.Errorf("achievement %q has invalid type %q", a.Name, a.Type)
		}
		if a.Threshold <= 0 {
			t.Errorf("achievement %q has non-positive threshold", a.Name)
		}
	}
}
