package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/erazemk/shramba/internal/model"
)

const listColumns = `id, share_id, name, description, location_id, is_public, expires_at, created_at, updated_at`

func scanList(s rowScanner) (*model.ShareableList, error) {
	l := &model.ShareableList{}
	var description sql.NullString
	var locationID sql.NullInt64
	err := s.Scan(&l.ID, &l.ShareID, &l.Name, &description, &locationID,
		&l.IsPublic, &l.ExpiresAt, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		return nil, err
	}
	l.Description = description.String
	l.LocationID = nullInt64Ptr(locationID)
	return l, nil
}

// ListShareableLists returns all lists, newest first.
func (s *Store) ListShareableLists(ctx context.Context) ([]model.ShareableList, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+listColumns+` FROM shareable_lists ORDER BY created_at DESC, id DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing shareable lists: %w", err)
	}
	defer rows.Close()

	lists := []model.ShareableList{}
	for rows.Next() {
		l, err := scanList(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning shareable list: %w", err)
		}
		lists = append(lists, *l)
	}
	return lists, rows.Err()
}

// GetShareableList returns a list by ID.
func (s *Store) GetShareableList(ctx context.Context, id int64) (*model.ShareableList, error) {
	l, err := scanList(s.db.QueryRowContext(ctx,
		`SELECT `+listColumns+` FROM shareable_lists WHERE id = ?`, id,
	))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting shareable list: %w", err)
	}
	return l, nil
}

// GetShareableListByShareID returns a list by its share token.
func (s *Store) GetShareableListByShareID(ctx context.Context, shareID string) (*model.ShareableList, error) {
	l, err := scanList(s.db.QueryRowContext(ctx,
		`SELECT `+listColumns+` FROM shareable_lists WHERE share_id = ?`, shareID,
	))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting shareable list by share id: %w", err)
	}
	return l, nil
}

// CreateShareableList inserts a new list.
func (s *Store) CreateShareableList(ctx context.Context, l *model.ShareableList) error {
	result, err := s.db.ExecContext(ctx,
		`INSERT INTO shareable_lists (share_id, name, description, location_id, is_public, expires_at, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		l.ShareID, l.Name, l.Description, l.LocationID, l.IsPublic, l.ExpiresAt, l.CreatedAt, l.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("creating shareable list: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("getting shareable list id: %w", err)
	}
	l.ID = id
	return nil
}

// UpdateShareableList writes the mutable fields of a list.
func (s *Store) UpdateShareableList(ctx context.Context, l *model.ShareableList) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE shareable_lists SET name = ?, description = ?, location_id = ?, is_public = ?,
		                            expires_at = ?, updated_at = ?
		 WHERE id = ?`,
		l.Name, l.Description, l.LocationID, l.IsPublic, l.ExpiresAt, l.UpdatedAt, l.ID,
	)
	if err != nil {
		return fmt.Errorf("updating shareable list: %w", err)
	}
	return nil
}

// DeleteShareableList removes a list and its item pairings.
func (s *Store) DeleteShareableList(ctx context.Context, id int64) (bool, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM shareable_list_items WHERE list_id = ?`, id); err != nil {
		return false, fmt.Errorf("deleting shareable list items: %w", err)
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM shareable_lists WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("deleting shareable list: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("deleting shareable list: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("committing shareable list delete: %w", err)
	}
	return n > 0, nil
}

// ListShareableListItems returns the pairings of a list whose item still
// exists, in the order they were added.
func (s *Store) ListShareableListItems(ctx context.Context, listID int64) ([]model.ShareableListItem, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT li.id, li.list_id, li.item_id, li.added_at,
		        i.id, i.name, i.description, i.barcode, i.value, i.purchase_date, i.warranty_end_date,
		        i.location_id, i.photos, i.receipts, i.notes, i.custom_fields, i.created_at, i.updated_at
		 FROM shareable_list_items li
		 LEFT JOIN items i ON i.id = li.item_id
		 WHERE li.list_id = ? AND i.id IS NOT NULL
		 ORDER BY li.added_at, li.id`, listID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing shareable list items: %w", err)
	}
	defer rows.Close()

	entries := []model.ShareableListItem{}
	for rows.Next() {
		var e model.ShareableListItem
		it := &model.Item{}
		var description, barcode, value, notes sql.NullString
		var locationID sql.NullInt64
		var photos, receipts, customFields string
		err := rows.Scan(&e.ID, &e.ListID, &e.ItemID, &e.AddedAt,
			&it.ID, &it.Name, &description, &barcode, &value,
			&it.PurchaseDate, &it.WarrantyEndDate, &locationID,
			&photos, &receipts, &notes, &customFields, &it.CreatedAt, &it.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("scanning shareable list item: %w", err)
		}
		it.Description = description.String
		it.Barcode = barcode.String
		it.Value = value.String
		it.Notes = notes.String
		it.LocationID = nullInt64Ptr(locationID)
		if err := decodeItemJSON(it, photos, receipts, customFields); err != nil {
			return nil, fmt.Errorf("scanning shareable list item: %w", err)
		}
		e.Item = it
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// AddShareableListItem pairs an item with a list, returning the existing
// pairing if there is one.
func (s *Store) AddShareableListItem(ctx context.Context, listID, itemID int64, at time.Time) (*model.ShareableListItem, error) {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO shareable_list_items (list_id, item_id, added_at) VALUES (?, ?, ?)
		 ON CONFLICT (list_id, item_id) DO NOTHING`,
		listID, itemID, at,
	)
	if err != nil {
		return nil, fmt.Errorf("adding shareable list item: %w", err)
	}

	e := &model.ShareableListItem{}
	err = s.db.QueryRowContext(ctx,
		`SELECT id, list_id, item_id, added_at FROM shareable_list_items WHERE list_id = ? AND item_id = ?`,
		listID, itemID,
	).Scan(&e.ID, &e.ListID, &e.ItemID, &e.AddedAt)
	if err != nil {
		return nil, fmt.Errorf("getting shareable list item: %w", err)
	}
	return e, nil
}

// RemoveShareableListItem removes a pairing.
func (s *Store) RemoveShareableListItem(ctx context.Context, listID, itemID int64) (bool, error) {
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM shareable_list_items WHERE list_id = ? AND item_id = ?`, listID, itemID,
	)
	if err != nil {
		return false, fmt.Errorf("removing shareable list item: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("removing shareable list item: %w", err)
	}
	return n > 0, nil
}
