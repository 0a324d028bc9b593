package model

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Item is a single cataloged physical item.
type Item struct {
	ID              int64          `json:"id"`
	Name            string         `json:"name"`
	Description     string         `json:"description,omitempty"`
	Barcode         string         `json:"barcode,omitempty"`
	Value           string         `json:"value,omitempty"`
	PurchaseDate    *time.Time     `json:"purchaseDate,omitempty"`
	WarrantyEndDate *time.Time     `json:"warrantyEndDate,omitempty"`
	LocationID      *int64         `json:"locationId"`
	Photos          []string       `json:"photos"`
	Receipts        []string       `json:"receipts"`
	Notes           string         `json:"notes,omitempty"`
	CustomFields    map[string]any `json:"customFields"`
	CreatedAt       time.Time      `json:"createdAt"`
	UpdatedAt       time.Time      `json:"updatedAt"`
}

// ParseValue parses a monetary value string. Empty, malformed and negative
// values count as zero.
func ParseValue(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil || d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// ItemFilter narrows item listings. Zero value lists everything.
type ItemFilter struct {
	Search     string
	LocationID *int64
}
