package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/erazemk/shramba/internal/model"
)

const achievementColumns = `id, name, description, icon, threshold, type, is_unlocked, unlocked_at`

func scanAchievement(s rowScanner) (*model.Achievement, error) {
	a := &model.Achievement{}
	if err := s.Scan(&a.ID, &a.Name, &a.Description, &a.Icon, &a.Threshold, &a.Type, &a.IsUnlocked, &a.UnlockedAt); err != nil {
		return nil, err
	}
	return a, nil
}

// ListAchievements returns the catalog ordered by ID.
func (s *Store) ListAchievements(ctx context.Context) ([]model.Achievement, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+achievementColumns+` FROM achievements ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing achievements: %w", err)
	}
	defer rows.Close()

	list := []model.Achievement{}
	for rows.Next() {
		a, err := scanAchievement(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning achievement: %w", err)
		}
		list = append(list, *a)
	}
	return list, rows.Err()
}

// GetAchievement returns an achievement by ID.
func (s *Store) GetAchievement(ctx context.Context, id int64) (*model.Achievement, error) {
	a, err := scanAchievement(s.db.QueryRowContext(ctx,
		`SELECT `+achievementColumns+` FROM achievements WHERE id = ?`, id,
	))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting achievement: %w", err)
	}
	return a, nil
}

// CreateAchievement inserts a catalog entry.
func (s *Store) CreateAchievement(ctx context.Context, a *model.Achievement) error {
	result, err := s.db.ExecContext(ctx,
		`INSERT INTO achievements (name, description, icon, threshold, type, is_unlocked, unlocked_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		a.Name, a.Description, a.Icon, a.Threshold, a.Type, a.IsUnlocked, a.UnlockedAt,
	)
	if err != nil {
		return fmt.Errorf("creating achievement: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("getting achievement id: %w", err)
	}
	a.ID = id
	return nil
}

// UnlockAchievement unlocks an achievement unless it already is.
func (s *Store) UnlockAchievement(ctx context.Context, id int64, at time.Time) (*model.Achievement, error) {
	_, err := s.db.ExecContext(ctx,
		`UPDATE achievements SET is_unlocked = 1, unlocked_at = ? WHERE id = ? AND is_unlocked = 0`,
		at, id,
	)
	if err != nil {
		return nil, fmt.Errorf("unlocking achievement: %w", err)
	}
	return s.GetAchievement(ctx, id)
}
