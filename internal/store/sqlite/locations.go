package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/erazemk/shramba/internal/model"
)

const locationColumns = `id, name, parent_id, path, description, created_at`

func scanLocation(s rowScanner) (*model.Location, error) {
	l := &model.Location{}
	var parentID sql.NullInt64
	var description sql.NullString
	if err := s.Scan(&l.ID, &l.Name, &parentID, &l.Path, &description, &l.CreatedAt); err != nil {
		return nil, err
	}
	l.ParentID = nullInt64Ptr(parentID)
	l.Description = description.String
	return l, nil
}

// ListLocations returns all locations in creation order.
func (s *Store) ListLocations(ctx context.Context) ([]model.Location, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+locationColumns+` FROM locations ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing locations: %w", err)
	}
	defer rows.Close()

	locs := []model.Location{}
	for rows.Next() {
		l, err := scanLocation(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning location: %w", err)
		}
		locs = append(locs, *l)
	}
	return locs, rows.Err()
}

// GetLocation returns a location by ID.
func (s *Store) GetLocation(ctx context.Context, id int64) (*model.Location, error) {
	l, err := scanLocation(s.db.QueryRowContext(ctx,
		`SELECT `+locationColumns+` FROM locations WHERE id = ?`, id,
	))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting location: %w", err)
	}
	return l, nil
}

// CreateLocation inserts a new location.
func (s *Store) CreateLocation(ctx context.Context, l *model.Location) error {
	result, err := s.db.ExecContext(ctx,
		`INSERT INTO locations (name, parent_id, path, description, created_at) VALUES (?, ?, ?, ?, ?)`,
		l.Name, l.ParentID, l.Path, l.Description, l.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("creating location: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("getting location id: %w", err)
	}
	l.ID = id
	return nil
}

// UpdateLocations updates the given locations in a single transaction.
func (s *Store) UpdateLocations(ctx context.Context, locs []model.Location) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	for _, l := range locs {
		_, err := tx.ExecContext(ctx,
			`UPDATE locations SET name = ?, parent_id = ?, path = ?, description = ? WHERE id = ?`,
			l.Name, l.ParentID, l.Path, l.Description, l.ID,
		)
		if err != nil {
			return fmt.Errorf("updating location %d: %w", l.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing location update: %w", err)
	}
	return nil
}

// DeleteLocation removes a location. Children and items keep their
// references to it.
func (s *Store) DeleteLocation(ctx context.Context, id int64) (bool, error) {
	result, err := s.db.ExecContext(ctx, `DELETE FROM locations WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("deleting location: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("deleting location: %w", err)
	}
	return n > 0, nil
}
