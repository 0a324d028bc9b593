// Package store defines the persistence contract shared by the storage
// backends. Get methods return (nil, nil) when the record does not exist;
// Delete and Remove methods report whether a row was removed.
package store

import (
	"context"
	"time"

	"github.com/erazemk/shramba/internal/model"
)

// Locations persists the location hierarchy.
type Locations interface {
	ListLocations(ctx context.Context) ([]model.Location, error)
	GetLocation(ctx context.Context, id int64) (*model.Location, error)
	// CreateLocation inserts l and sets its ID.
	CreateLocation(ctx context.Context, l *model.Location) error
	// UpdateLocations writes name, parent, path and description of every
	// given location atomically.
	UpdateLocations(ctx context.Context, locs []model.Location) error
	DeleteLocation(ctx context.Context, id int64) (bool, error)
}

// Items persists inventory items.
type Items interface {
	// ListItems returns items matching f, newest first.
	ListItems(ctx context.Context, f model.ItemFilter) ([]model.Item, error)
	GetItem(ctx context.Context, id int64) (*model.Item, error)
	// CreateItem inserts it and sets its ID.
	CreateItem(ctx context.Context, it *model.Item) error
	UpdateItem(ctx context.Context, it *model.Item) error
	DeleteItem(ctx context.Context, id int64) (bool, error)
}

// Achievements persists the achievement catalog and unlock state.
type Achievements interface {
	ListAchievements(ctx context.Context) ([]model.Achievement, error)
	GetAchievement(ctx context.Context, id int64) (*model.Achievement, error)
	CreateAchievement(ctx context.Context, a *model.Achievement) error
	// UnlockAchievement marks a locked achievement unlocked at the given
	// time. Already unlocked achievements keep their first timestamp.
	// It returns the stored achievement, or nil if it does not exist.
	UnlockAchievement(ctx context.Context, id int64, at time.Time) (*model.Achievement, error)
}

// ShareableLists persists shareable lists and their item pairings.
type ShareableLists interface {
	ListShareableLists(ctx context.Context) ([]model.ShareableList, error)
	GetShareableList(ctx context.Context, id int64) (*model.ShareableList, error)
	GetShareableListByShareID(ctx context.Context, shareID string) (*model.ShareableList, error)
	CreateShareableList(ctx context.Context, l *model.ShareableList) error
	// UpdateShareableList writes everything except ShareID and CreatedAt.
	UpdateShareableList(ctx context.Context, l *model.ShareableList) error
	// DeleteShareableList removes the list together with its pairings.
	DeleteShareableList(ctx context.Context, id int64) (bool, error)

	// ListShareableListItems returns the pairings of a list joined with
	// their items. Pairings whose item no longer exists are skipped.
	ListShareableListItems(ctx context.Context, listID int64) ([]model.ShareableListItem, error)
	// AddShareableListItem pairs an item with a list. Adding an existing
	// pairing returns it unchanged.
	AddShareableListItem(ctx context.Context, listID, itemID int64, at time.Time) (*model.ShareableListItem, error)
	RemoveShareableListItem(ctx context.Context, listID, itemID int64) (bool, error)
}

// Store is the full persistence surface used by the service layer.
type Store interface {
	Locations
	Items
	Achievements
	ShareableLists
}
