package model

import "time"

// ShareableList is a named subset of items published under an opaque token.
type ShareableList struct {
	ID          int64      `json:"id"`
	ShareID     string     `json:"shareId"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	LocationID  *int64     `json:"locationId"`
	IsPublic    bool       `json:"isPublic"`
	ExpiresAt   *time.Time `json:"expiresAt"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// Expired reports whether the list has an expiry in the past.
func (l *ShareableList) Expired(now time.Time) bool {
	return l.ExpiresAt != nil && !now.Before(*l.ExpiresAt)
}

// ShareableListItem joins a list to an item.
type ShareableListItem struct {
	ID      int64     `json:"id"`
	ListID  int64     `json:"listId"`
	ItemID  int64     `json:"itemId"`
	AddedAt time.Time `json:"addedAt"`

	// Joined item (populated when listing list contents).
	Item *Item `json:"item,omitempty"`
}
