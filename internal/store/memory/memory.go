// Package memory implements store.Store with in-process maps. It is used
// for tests and for running without a database file.
package memory

import (
	"context"
	"maps"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/erazemk/shramba/internal/model"
	"github.com/erazemk/shramba/internal/store"
)

var _ store.Store = (*Store)(nil)

// Store keeps all records in memory. Records are copied on the way in
// and out so callers never share state with the store.
type Store struct {
	mu sync.RWMutex

	seq          map[string]int64
	locations    map[int64]model.Location
	items        map[int64]model.Item
	achievements map[int64]model.Achievement
	lists        map[int64]model.ShareableList
	listItems    map[int64]model.ShareableListItem
}

// New returns an empty store.
func New() *Store {
	return &Store{
		seq:          make(map[string]int64),
		locations:    make(map[int64]model.Location),
		items:        make(map[int64]model.Item),
		achievements: make(map[int64]model.Achievement),
		lists:        make(map[int64]model.ShareableList),
		listItems:    make(map[int64]model.ShareableListItem),
	}
}

// next returns the next ID of a table, starting at 1.
func (s *Store) next(table string) int64 {
	s.seq[table]++
	return s.seq[table]
}

func sortedValues[V any](m map[int64]V) []V {
	ids := slices.Sorted(maps.Keys(m))
	out := make([]V, 0, len(ids))
	for _, id := range ids {
		out = append(out, m[id])
	}
	return out
}

func copyItem(it model.Item) model.Item {
	it.Photos = append([]string{}, it.Photos...)
	it.Receipts = append([]string{}, it.Receipts...)
	fields := make(map[string]any, len(it.CustomFields))
	maps.Copy(fields, it.CustomFields)
	it.CustomFields = fields
	return it
}

// Locations

// ListLocations returns all locations ordered by ID.
func (s *Store) ListLocations(ctx context.Context) ([]model.Location, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return sortedValues(s.locations), nil
}

// GetLocation returns a location by ID, or nil if it does not exist.
func (s *Store) GetLocation(ctx context.Context, id int64) (*model.Location, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	l, ok := s.locations[id]
	if !ok {
		return nil, nil
	}
	return &l, nil
}

// CreateLocation stores l and sets its ID.
func (s *Store) CreateLocation(ctx context.Context, l *model.Location) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	l.ID = s.next("locations")
	s.locations[l.ID] = *l
	return nil
}

// UpdateLocations writes all given locations at once. Unknown IDs are
// skipped and CreatedAt is never changed.
func (s *Store) UpdateLocations(ctx context.Context, locs []model.Location) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, l := range locs {
		old, ok := s.locations[l.ID]
		if !ok {
			continue
		}
		l.CreatedAt = old.CreatedAt
		s.locations[l.ID] = l
	}
	return nil
}

// DeleteLocation removes a location and reports whether it existed.
func (s *Store) DeleteLocation(ctx context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.locations[id]; !ok {
		return false, nil
	}
	delete(s.locations, id)
	return true, nil
}

// Items

// ListItems returns items matching f, newest first.
func (s *Store) ListItems(ctx context.Context, f model.ItemFilter) ([]model.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	search := strings.ToLower(strings.TrimSpace(f.Search))
	items := []model.Item{}
	for _, it := range s.items {
		if search != "" && !strings.Contains(strings.ToLower(it.Name), search) {
			continue
		}
		if f.LocationID != nil && (it.LocationID == nil || *it.LocationID != *f.LocationID) {
			continue
		}
		items = append(items, copyItem(it))
	}
	slices.SortFunc(items, func(a, b model.Item) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		switch {
		case a.ID > b.ID:
			return -1
		case a.ID < b.ID:
			return 1
		}
		return 0
	})
	return items, nil
}

// GetItem returns a copy of an item, or nil if it does not exist.
func (s *Store) GetItem(ctx context.Context, id int64) (*model.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	it, ok := s.items[id]
	if !ok {
		return nil, nil
	}
	it = copyItem(it)
	return &it, nil
}

// CreateItem stores a copy of it and sets its ID.
func (s *Store) CreateItem(ctx context.Context, it *model.Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	it.ID = s.next("items")
	s.items[it.ID] = copyItem(*it)
	return nil
}

// UpdateItem replaces an existing item, keeping its CreatedAt.
func (s *Store) UpdateItem(ctx context.Context, it *model.Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	old, ok := s.items[it.ID]
	if !ok {
		return nil
	}
	updated := copyItem(*it)
	updated.CreatedAt = old.CreatedAt
	s.items[it.ID] = updated
	return nil
}

// DeleteItem removes an item and reports whether it existed. List
// pairings that reference it are left in place.
func (s *Store) DeleteItem(ctx context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[id]; !ok {
		return false, nil
	}
	delete(s.items, id)
	return true, nil
}

// Achievements

// ListAchievements returns all achievements ordered by ID.
func (s *Store) ListAchievements(ctx context.Context) ([]model.Achievement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return sortedValues(s.achievements), nil
}

// GetAchievement returns an achievement by ID, or nil if it does not exist.
func (s *Store) GetAchievement(ctx context.Context, id int64) (*model.Achievement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.achievements[id]
	if !ok {
		return nil, nil
	}
	return &a, nil
}

// CreateAchievement stores a and sets its ID.
func (s *Store) CreateAchievement(ctx context.Context, a *model.Achievement) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a.ID = s.next("achievements")
	s.achievements[a.ID] = *a
	return nil
}

// UnlockAchievement marks an achievement unlocked at the given time
// unless it already is. It returns nil for unknown IDs.
func (s *Store) UnlockAchievement(ctx context.Context, id int64, at time.Time) (*model.Achievement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.achievements[id]
	if !ok {
		return nil, nil
	}
	if !a.IsUnlocked {
		a.IsUnlocked = true
		a.UnlockedAt = &at
		s.achievements[id] = a
	}
	return &a, nil
}

// Shareable lists

// ListShareableLists returns all lists, newest first.
func (s *Store) ListShareableLists(ctx context.Context) ([]model.ShareableList, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	lists := sortedValues(s.lists)
	slices.Reverse(lists)
	slices.SortStableFunc(lists, func(a, b model.ShareableList) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return lists, nil
}

// GetShareableList returns a list by ID, or nil if it does not exist.
func (s *Store) GetShareableList(ctx context.Context, id int64) (*model.ShareableList, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	l, ok := s.lists[id]
	if !ok {
		return nil, nil
	}
	return &l, nil
}

// GetShareableListByShareID returns the list with the given token, or nil.
func (s *Store) GetShareableListByShareID(ctx context.Context, shareID string) (*model.ShareableList, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, l := range s.lists {
		if l.ShareID == shareID {
			return &l, nil
		}
	}
	return nil, nil
}

// CreateShareableList stores l and sets its ID.
func (s *Store) CreateShareableList(ctx context.Context, l *model.ShareableList) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	l.ID = s.next("lists")
	s.lists[l.ID] = *l
	return nil
}

// UpdateShareableList replaces an existing list. ShareID and CreatedAt
// are kept.
func (s *Store) UpdateShareableList(ctx context.Context, l *model.ShareableList) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	old, ok := s.lists[l.ID]
	if !ok {
		return nil
	}
	updated := *l
	updated.ShareID = old.ShareID
	updated.CreatedAt = old.CreatedAt
	s.lists[l.ID] = updated
	return nil
}

// DeleteShareableList removes a list and its pairings and reports whether
// the list existed.
func (s *Store) DeleteShareableList(ctx context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.lists[id]; !ok {
		return false, nil
	}
	delete(s.lists, id)
	maps.DeleteFunc(s.listItems, func(_ int64, e model.ShareableListItem) bool {
		return e.ListID == id
	})
	return true, nil
}

// ListShareableListItems returns the pairings of a list whose item still
// exists, in the order they were added.
func (s *Store) ListShareableListItems(ctx context.Context, listID int64) ([]model.ShareableListItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entries := []model.ShareableListItem{}
	for _, e := range sortedValues(s.listItems) {
		if e.ListID != listID {
			continue
		}
		it, ok := s.items[e.ItemID]
		if !ok {
			continue
		}
		it = copyItem(it)
		e.Item = &it
		entries = append(entries, e)
	}
	return entries, nil
}

// AddShareableListItem pairs an item with a list. Re-adding returns the
// existing pairing.
func (s *Store) AddShareableListItem(ctx context.Context, listID, itemID int64, at time.Time) (*model.ShareableListItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.listItems {
		if e.ListID == listID && e.ItemID == itemID {
			return &e, nil
		}
	}
	e := model.ShareableListItem{ID: s.next("list_items"), ListID: listID, ItemID: itemID, AddedAt: at}
	s.listItems[e.ID] = e
	return &e, nil
}

// RemoveShareableListItem removes a pairing and reports whether it existed.
func (s *Store) RemoveShareableListItem(ctx context.Context, listID, itemID int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, e := range s.listItems {
		if e.ListID == listID && e.ItemID == itemID {
			delete(s.listItems, id)
			return true, nil
		}
	}
	return false, nil
}
