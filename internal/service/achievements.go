package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/erazemk/shramba/internal/achievements"
	"github.com/erazemk/shramba/internal/model"
)

// AchievementInput holds the fields of a new catalog entry.
type AchievementInput struct {
	Name        string
	Description string
	Icon        string
	Threshold   int64
	Type        string
}

// AchievementProgress is an achievement with its completion percentage.
type AchievementProgress struct {
	model.Achievement
	Progress float64 `json:"progress"`
}

// ListAchievements returns the catalog with unlock state.
func (s *Service) ListAchievements(ctx context.Context) ([]model.Achievement, error) {
	list, err := s.store.ListAchievements(ctx)
	if err != nil {
		return nil, persistence("listing achievements", err)
	}
	return list, nil
}

// CreateAchievement adds a catalog entry. It is checked against the
// current statistics immediately.
func (s *Service) CreateAchievement(ctx context.Context, in AchievementInput) (*model.Achievement, error) {
	a := &model.Achievement{
		Name:        strings.TrimSpace(in.Name),
		Description: strings.TrimSpace(in.Description),
		Icon:        strings.TrimSpace(in.Icon),
		Threshold:   in.Threshold,
		Type:        in.Type,
	}
	if a.Name == "" {
		return nil, invalid("name", "is required")
	}
	if !model.ValidAchievementType(a.Type) {
		return nil, invalid("type", "unknown achievement type %q", a.Type)
	}
	if a.Threshold < 0 {
		return nil, invalid("threshold", "must not be negative")
	}
	if err := s.store.CreateAchievement(ctx, a); err != nil {
		return nil, persistence("creating achievement", err)
	}

	slog.Info("achievement created", "achievement", a.Name)
	s.reevaluate(ctx)

	got, err := s.store.GetAchievement(ctx, a.ID)
	if err != nil {
		return nil, persistence("getting achievement", err)
	}
	if got == nil {
		return a, nil
	}
	return got, nil
}

// UnlockAchievement unlocks an achievement by hand. Unlocking an already
// unlocked achievement keeps its first UnlockedAt.
func (s *Service) UnlockAchievement(ctx context.Context, id int64) (*model.Achievement, error) {
	a, err := s.store.UnlockAchievement(ctx, id, s.clock())
	if err != nil {
		return nil, persistence("unlocking achievement", err)
	}
	if a == nil {
		return nil, notFound("achievement")
	}
	return a, nil
}

// AchievementProgress returns every achievement with its progress towards
// its threshold.
func (s *Service) AchievementProgress(ctx context.Context) ([]AchievementProgress, error) {
	st, err := s.Stats(ctx)
	if err != nil {
		return nil, err
	}
	list, err := s.ListAchievements(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]AchievementProgress, 0, len(list))
	for _, a := range list {
		out = append(out, AchievementProgress{Achievement: a, Progress: achievements.Progress(a, st)})
	}
	return out, nil
}
