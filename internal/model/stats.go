package model

import "github.com/shopspring/decimal"

// Stats is the aggregate view over the whole inventory.
type Stats struct {
	TotalItems     int             `json:"totalItems"`
	TotalValue     decimal.Decimal `json:"totalValue"`
	LocationsCount int             `json:"locationsCount"`
	RecentItems    []Item          `json:"recentItems"`
}
