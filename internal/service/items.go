package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/erazemk/shramba/internal/model"
)

// ItemInput holds the fields of a new item.
type ItemInput struct {
	Name            string
	Description     string
	Barcode         string
	Value           string
	PurchaseDate    *time.Time
	WarrantyEndDate *time.Time
	LocationID      *int64
	Photos          []string
	Receipts        []string
	Notes           string
	CustomFields    map[string]any
}

// ItemPatch holds the fields to change on an item. Nil pointers, nil
// slices and maps, and unset optionals leave the current value.
type ItemPatch struct {
	Name            *string
	Description     *string
	Barcode         *string
	Value           *string
	PurchaseDate    Optional[time.Time]
	WarrantyEndDate Optional[time.Time]
	LocationID      Optional[int64]
	Photos          []string
	Receipts        []string
	Notes           *string
	CustomFields    map[string]any
}

// ListItems returns items matching f, newest first.
func (s *Service) ListItems(ctx context.Context, f model.ItemFilter) ([]model.Item, error) {
	items, err := s.store.ListItems(ctx, f)
	if err != nil {
		return nil, persistence("listing items", err)
	}
	return items, nil
}

// GetItem returns an item by ID.
func (s *Service) GetItem(ctx context.Context, id int64) (*model.Item, error) {
	it, err := s.store.GetItem(ctx, id)
	if err != nil {
		return nil, persistence("getting item", err)
	}
	if it == nil {
		return nil, notFound("item")
	}
	return it, nil
}

// CreateItem stores a new item and re-evaluates achievements.
func (s *Service) CreateItem(ctx context.Context, in ItemInput) (*model.Item, error) {
	now := s.clock()
	it := &model.Item{
		Name:            strings.TrimSpace(in.Name),
		Description:     in.Description,
		Barcode:         strings.TrimSpace(in.Barcode),
		PurchaseDate:    in.PurchaseDate,
		WarrantyEndDate: in.WarrantyEndDate,
		LocationID:      in.LocationID,
		Photos:          nonNil(in.Photos),
		Receipts:        nonNil(in.Receipts),
		Notes:           in.Notes,
		CustomFields:    in.CustomFields,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if it.CustomFields == nil {
		it.CustomFields = map[string]any{}
	}
	value, err := normalizeValue(in.Value)
	if err != nil {
		return nil, err
	}
	it.Value = value

	if err := s.validateItem(ctx, it, true); err != nil {
		return nil, err
	}
	if err := s.store.CreateItem(ctx, it); err != nil {
		return nil, persistence("creating item", err)
	}

	slog.Info("item created", "item", it.Name)
	s.reevaluate(ctx)
	return it, nil
}

// UpdateItem applies a patch and bumps UpdatedAt.
func (s *Service) UpdateItem(ctx context.Context, id int64, p ItemPatch) (*model.Item, error) {
	it, err := s.GetItem(ctx, id)
	if err != nil {
		return nil, err
	}

	if p.Name != nil {
		it.Name = strings.TrimSpace(*p.Name)
	}
	if p.Description != nil {
		it.Description = *p.Description
	}
	if p.Barcode != nil {
		it.Barcode = strings.TrimSpace(*p.Barcode)
	}
	if p.Value != nil {
		value, err := normalizeValue(*p.Value)
		if err != nil {
			return nil, err
		}
		it.Value = value
	}
	if p.PurchaseDate.Set {
		it.PurchaseDate = p.PurchaseDate.Value
	}
	if p.WarrantyEndDate.Set {
		it.WarrantyEndDate = p.WarrantyEndDate.Value
	}
	if p.LocationID.Set {
		it.LocationID = p.LocationID.Value
	}
	if p.Photos != nil {
		it.Photos = p.Photos
	}
	if p.Receipts != nil {
		it.Receipts = p.Receipts
	}
	if p.Notes != nil {
		it.Notes = *p.Notes
	}
	if p.CustomFields != nil {
		it.CustomFields = p.CustomFields
	}

	if err := s.validateItem(ctx, it, p.LocationID.Set); err != nil {
		return nil, err
	}
	it.UpdatedAt = s.clock()
	if err := s.store.UpdateItem(ctx, it); err != nil {
		return nil, persistence("updating item", err)
	}

	slog.Info("item updated", "item", it.Name)
	s.reevaluate(ctx)
	return it, nil
}

// DeleteItem removes an item. List pairings that reference it are left
// behind and hidden from readers.
func (s *Service) DeleteItem(ctx context.Context, id int64) error {
	ok, err := s.store.DeleteItem(ctx, id)
	if err != nil {
		return persistence("deleting item", err)
	}
	if !ok {
		return notFound("item")
	}

	slog.Info("item deleted", "id", id)
	s.reevaluate(ctx)
	return nil
}

// validateItem checks an item before it is written. The location is only
// checked when it is being set, so items left in a deleted location stay
// editable.
func (s *Service) validateItem(ctx context.Context, it *model.Item, checkLocation bool) error {
	if it.Name == "" {
		return invalid("name", "is required")
	}
	if it.PurchaseDate != nil && it.WarrantyEndDate != nil && it.WarrantyEndDate.Before(*it.PurchaseDate) {
		return invalid("warrantyEndDate", "must not be before purchaseDate")
	}
	if checkLocation && it.LocationID != nil {
		l, err := s.store.GetLocation(ctx, *it.LocationID)
		if err != nil {
			return persistence("getting location", err)
		}
		if l == nil {
			return invalid("locationId", "location %d does not exist", *it.LocationID)
		}
	}
	return nil
}

// normalizeValue accepts an empty string or a non-negative decimal and
// returns it trimmed.
func normalizeValue(v string) (string, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return "", nil
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		return "", invalid("value", "must be a decimal number")
	}
	if d.IsNegative() {
		return "", invalid("value", "must not be negative")
	}
	return v, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
