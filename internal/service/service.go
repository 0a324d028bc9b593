// Package service implements the inventory operations on top of a
// store.Store: path maintenance, item bookkeeping, achievement unlocking
// and shareable list resolution.
package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/erazemk/shramba/internal/achievements"
	"github.com/erazemk/shramba/internal/model"
	"github.com/erazemk/shramba/internal/sharing"
	"github.com/erazemk/shramba/internal/stats"
	"github.com/erazemk/shramba/internal/store"
)

// Service is safe for concurrent use if its store is.
type Service struct {
	store    store.Store
	now      func() time.Time
	newToken func() (string, error)
}

// Option configures a Service.
type Option func(*Service)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithTokenGenerator overrides share token generation.
func WithTokenGenerator(gen func() (string, error)) Option {
	return func(s *Service) { s.newToken = gen }
}

// New returns a service backed by st.
func New(st store.Store, opts ...Option) *Service {
	s := &Service{
		store:    st,
		now:      time.Now,
		newToken: sharing.NewToken,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) clock() time.Time {
	return s.now().UTC()
}

// Stats computes aggregate statistics over the whole inventory.
func (s *Service) Stats(ctx context.Context) (model.Stats, error) {
	items, locs, err := s.snapshot(ctx)
	if err != nil {
		return model.Stats{}, err
	}
	return stats.Compute(items, locs), nil
}

func (s *Service) snapshot(ctx context.Context) ([]model.Item, []model.Location, error) {
	items, err := s.store.ListItems(ctx, model.ItemFilter{})
	if err != nil {
		return nil, nil, persistence("loading items", err)
	}
	locs, err := s.store.ListLocations(ctx)
	if err != nil {
		return nil, nil, persistence("loading locations", err)
	}
	return items, locs, nil
}

// ExportData returns every item and location for rendering an export.
func (s *Service) ExportData(ctx context.Context) ([]model.Item, []model.Location, error) {
	return s.snapshot(ctx)
}

// EvaluateAchievements unlocks every achievement whose rule holds for the
// current statistics and returns the newly unlocked ones.
func (s *Service) EvaluateAchievements(ctx context.Context) ([]model.Achievement, error) {
	st, err := s.Stats(ctx)
	if err != nil {
		return nil, err
	}
	list, err := s.store.ListAchievements(ctx)
	if err != nil {
		return nil, persistence("loading achievements", err)
	}

	now := s.clock()
	var unlocked []model.Achievement
	for _, id := range achievements.Check(st, list, now) {
		a, err := s.store.UnlockAchievement(ctx, id, now)
		if err != nil {
			return unlocked, persistence("unlocking achievement", err)
		}
		if a == nil {
			continue
		}
		slog.Info("achievement unlocked", "achievement", a.Name)
		unlocked = append(unlocked, *a)
	}
	return unlocked, nil
}

// reevaluate runs after inventory mutations. A failure here must not fail
// the mutation that triggered it; the next mutation retries.
func (s *Service) reevaluate(ctx context.Context) {
	if _, err := s.EvaluateAchievements(ctx); err != nil {
		slog.Error("evaluating achievements", "error", err)
	}
}
