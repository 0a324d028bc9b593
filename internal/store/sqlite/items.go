package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/erazemk/shramba/internal/model"
)

const itemColumns = `id, name, description, barcode, value, purchase_date, warranty_end_date,
	location_id, photos, receipts, notes, custom_fields, created_at, updated_at`

func scanItem(s rowScanner) (*model.Item, error) {
	it := &model.Item{}
	var description, barcode, value, notes sql.NullString
	var locationID sql.NullInt64
	var photos, receipts, customFields string
	err := s.Scan(&it.ID, &it.Name, &description, &barcode, &value,
		&it.PurchaseDate, &it.WarrantyEndDate, &locationID,
		&photos, &receipts, &notes, &customFields, &it.CreatedAt, &it.UpdatedAt)
	if err != nil {
		return nil, err
	}
	it.Description = description.String
	it.Barcode = barcode.String
	it.Value = value.String
	it.Notes = notes.String
	it.LocationID = nullInt64Ptr(locationID)
	if err := decodeItemJSON(it, photos, receipts, customFields); err != nil {
		return nil, err
	}
	return it, nil
}

func decodeItemJSON(it *model.Item, photos, receipts, customFields string) error {
	it.Photos = []string{}
	it.Receipts = []string{}
	it.CustomFields = map[string]any{}
	if photos != "" {
		if err := json.Unmarshal([]byte(photos), &it.Photos); err != nil {
			return fmt.Errorf("decoding photos: %w", err)
		}
	}
	if receipts != "" {
		if err := json.Unmarshal([]byte(receipts), &it.Receipts); err != nil {
			return fmt.Errorf("decoding receipts: %w", err)
		}
	}
	if customFields != "" {
		if err := json.Unmarshal([]byte(customFields), &it.CustomFields); err != nil {
			return fmt.Errorf("decoding custom fields: %w", err)
		}
	}
	if it.Photos == nil {
		it.Photos = []string{}
	}
	if it.Receipts == nil {
		it.Receipts = []string{}
	}
	if it.CustomFields == nil {
		it.CustomFields = map[string]any{}
	}
	return nil
}

// encodeItemJSON returns the JSON columns of an item.
func encodeItemJSON(it *model.Item) (photos, receipts, customFields string, err error) {
	marshal := func(v any, empty string) (string, error) {
		b, err := json.Marshal(v)
		if err != nil {
			return "", err
		}
		if string(b) == "null" {
			return empty, nil
		}
		return string(b), nil
	}
	if photos, err = marshal(it.Photos, "[]"); err != nil {
		return "", "", "", fmt.Errorf("encoding photos: %w", err)
	}
	if receipts, err = marshal(it.Receipts, "[]"); err != nil {
		return "", "", "", fmt.Errorf("encoding receipts: %w", err)
	}
	if customFields, err = marshal(it.CustomFields, "{}"); err != nil {
		return "", "", "", fmt.Errorf("encoding custom fields: %w", err)
	}
	return photos, receipts, customFields, nil
}

// ListItems returns items matching f, newest first. Search is a
// case-insensitive substring match on the name.
func (s *Store) ListItems(ctx context.Context, f model.ItemFilter) ([]model.Item, error) {
	var where []string
	var args []any
	if search := strings.TrimSpace(f.Search); search != "" {
		where = append(where, `instr(unicode_lower(name), ?) > 0`)
		args = append(args, strings.ToLower(search))
	}
	if f.LocationID != nil {
		where = append(where, `location_id = ?`)
		args = append(args, *f.LocationID)
	}

	query := `SELECT ` + itemColumns + ` FROM items`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, ` AND `)
	}
	query += ` ORDER BY created_at DESC, id DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
	}
	defer rows.Close()

	items := []model.Item{}
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning item: %w", err)
		}
		items = append(items, *it)
	}
	return items, rows.Err()
}

// GetItem returns an item by ID.
func (s *Store) GetItem(ctx context.Context, id int64) (*model.Item, error) {
	it, err := scanItem(s.db.QueryRowContext(ctx,
		`SELECT `+itemColumns+` FROM items WHERE id = ?`, id,
	))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting item: %w", err)
	}
	return it, nil
}

// CreateItem inserts a new item.
func (s *Store) CreateItem(ctx context.Context, it *model.Item) error {
	photos, receipts, customFields, err := encodeItemJSON(it)
	if err != nil {
		return fmt.Errorf("creating item: %w", err)
	}

	result, err := s.db.ExecContext(ctx,
		`INSERT INTO items (name, description, barcode, value, purchase_date, warranty_end_date,
		                    location_id, photos, receipts, notes, custom_fields, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		it.Name, it.Description, it.Barcode, it.Value, it.PurchaseDate, it.WarrantyEndDate,
		it.LocationID, photos, receipts, it.Notes, customFields, it.CreatedAt, it.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("creating item: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("getting item id: %w", err)
	}
	it.ID = id
	return nil
}

// UpdateItem writes every mutable field of an item.
func (s *Store) UpdateItem(ctx context.Context, it *model.Item) error {
	photos, receipts, customFields, err := encodeItemJSON(it)
	if err != nil {
		return fmt.Errorf("updating item: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`UPDATE items SET name = ?, description = ?, barcode = ?, value = ?, purchase_date = ?,
		                  warranty_end_date = ?, location_id = ?, photos = ?, receipts = ?,
		                  notes = ?, custom_fields = ?, updated_at = ?
		 WHERE id = ?`,
		it.Name, it.Description, it.Barcode, it.Value, it.PurchaseDate,
		it.WarrantyEndDate, it.LocationID, photos, receipts,
		it.Notes, customFields, it.UpdatedAt, it.ID,
	)
	if err != nil {
		return fmt.Errorf("updating item: %w", err)
	}
	return nil
}

// DeleteItem removes an item. List pairings referencing it are left in
// place and skipped by readers.
func (s *Store) DeleteItem(ctx context.Context, id int64) (bool, error) {
	result, err := s.db.ExecContext(ctx, `DELETE FROM items WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("deleting item: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("deleting item: %w", err)
	}
	return n > 0, nil
}
