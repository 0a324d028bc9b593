// Package storetest holds behavior tests shared by every store.Store
// implementation.
package storetest

import (
	"context"
	"testing"
	"time"

	"github.com/erazemk/shramba/internal/model"
	"github.com/erazemk/shramba/internal/store"
)

var base = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func ptr[T any](v T) *T { return &v }

// Run runs the shared suite against stores returned by newStore. Each
// subtest gets a fresh, empty store.
func Run(t *testing.T, newStore func(t *testing.T) store.Store) {
	t.Run("Locations", func(t *testing.T) { testLocations(t, newStore(t)) })
	t.Run("Items", func(t *testing.T) { testItems(t, newStore(t)) })
	t.Run("ItemFilter", func(t *testing.T) { testItemFilter(t, newStore(t)) })
	t.Run("Achievements", func(t *testing.T) { testAchievements(t, newStore(t)) })
	t.Run("ShareableLists", func(t *testing.T) { testShareableLists(t, newStore(t)) })
	t.Run("ListItems", func(t *testing.T) { testListItems(t, newStore(t)) })
	t.Run("IDsNotReused", func(t *testing.T) { testIDsNotReused(t, newStore(t)) })
}

func testLocations(t *testing.T, s store.Store) {
	ctx := context.Background()

	home := &model.Location{Name: "Home", Path: "Home", CreatedAt: base}
	if err := s.CreateLocation(ctx, home); err != nil {
		t.Fatalf("CreateLocation: %v", err)
	}
	if home.ID == 0 {
		t.Fatal("expected ID to be set")
	}
	kitchen := &model.Location{Name: "Kitchen", ParentID: ptr(home.ID), Path: "Home/Kitchen", Description: "downstairs", CreatedAt: base}
	if err := s.CreateLocation(ctx, kitchen); err != nil {
		t.Fatalf("CreateLocation: %v", err)
	}

	got, err := s.GetLocation(ctx, kitchen.ID)
	if err != nil {
		t.Fatalf("GetLocation: %v", err)
	}
	if got == nil || got.Path != "Home/Kitchen" || got.Description != "downstairs" {
		t.Fatalf("GetLocation = %+v", got)
	}
	if got.ParentID == nil || *got.ParentID != home.ID {
		t.Errorf("ParentID = %v, want %d", got.ParentID, home.ID)
	}
	if !got.CreatedAt.Equal(base) {
		t.Errorf("CreatedAt = %v, want %v", got.CreatedAt, base)
	}

	missing, err := s.GetLocation(ctx, 999)
	if err != nil || missing != nil {
		t.Errorf("GetLocation(999) = %v, %v; want nil, nil", missing, err)
	}

	home.Name = "House"
	home.Path = "House"
	kitchen.Path = "House/Kitchen"
	if err := s.UpdateLocations(ctx, []model.Location{*home, *kitchen}); err != nil {
		t.Fatalf("UpdateLocations: %v", err)
	}

	locs, err := s.ListLocations(ctx)
	if err != nil {
		t.Fatalf("ListLocations: %v", err)
	}
	if len(locs) != 2 {
		t.Fatalf("expected 2 locations, got %d", len(locs))
	}
	if locs[0].ID != home.ID || locs[0].Path != "House" || locs[1].Path != "House/Kitchen" {
		t.Errorf("unexpected locations: %+v", locs)
	}

	ok, err := s.DeleteLocation(ctx, home.ID)
	if err != nil || !ok {
		t.Fatalf("DeleteLocation = %v, %v", ok, err)
	}
	ok, err = s.DeleteLocation(ctx, home.ID)
	if err != nil || ok {
		t.Errorf("second DeleteLocation = %v, %v; want false, nil", ok, err)
	}

	// Children survive their parent.
	child, err := s.GetLocation(ctx, kitchen.ID)
	if err != nil || child == nil {
		t.Fatalf("child location gone after parent delete: %v, %v", child, err)
	}
}

func testItems(t *testing.T, s store.Store) {
	ctx := context.Background()

	purchased := time.Date(2023, 5, 10, 0, 0, 0, 0, time.UTC)
	it := &model.Item{
		Name:         "Drill",
		Description:  "cordless",
		Barcode:      "4006381333931",
		Value:        "129.99",
		PurchaseDate: &purchased,
		LocationID:   ptr(int64(7)),
		Photos:       []string{"/uploads/a.jpg"},
		Receipts:     []string{},
		CustomFields: map[string]any{"brand": "Bosch"},
		CreatedAt:    base,
		UpdatedAt:    base,
	}
	if err := s.CreateItem(ctx, it); err != nil {
		t.Fatalf("CreateItem: %v", err)
	}

	got, err := s.GetItem(ctx, it.ID)
	if err != nil || got == nil {
		t.Fatalf("GetItem = %v, %v", got, err)
	}
	if got.Name != "Drill" || got.Value != "129.99" || got.Barcode != "4006381333931" {
		t.Errorf("unexpected item: %+v", got)
	}
	if got.PurchaseDate == nil || !got.PurchaseDate.Equal(purchased) {
		t.Errorf("PurchaseDate = %v, want %v", got.PurchaseDate, purchased)
	}
	if got.WarrantyEndDate != nil {
		t.Errorf("WarrantyEndDate = %v, want nil", got.WarrantyEndDate)
	}
	if got.LocationID == nil || *got.LocationID != 7 {
		t.Errorf("LocationID = %v, want 7", got.LocationID)
	}
	if len(got.Photos) != 1 || got.Photos[0] != "/uploads/a.jpg" {
		t.Errorf("Photos = %v", got.Photos)
	}
	if got.Receipts == nil || len(got.Receipts) != 0 {
		t.Errorf("Receipts = %#v, want empty slice", got.Receipts)
	}
	if got.CustomFields["brand"] != "Bosch" {
		t.Errorf("CustomFields = %v", got.CustomFields)
	}

	later := base.Add(time.Hour)
	got.Name = "Hammer drill"
	got.LocationID = nil
	got.UpdatedAt = later
	if err := s.UpdateItem(ctx, got); err != nil {
		t.Fatalf("UpdateItem: %v", err)
	}
	updated, err := s.GetItem(ctx, it.ID)
	if err != nil {
		t.Fatalf("GetItem: %v", err)
	}
	if updated.Name != "Hammer drill" || updated.LocationID != nil {
		t.Errorf("update not applied: %+v", updated)
	}
	if !updated.UpdatedAt.Equal(later) || !updated.CreatedAt.Equal(base) {
		t.Errorf("timestamps = %v / %v", updated.CreatedAt, updated.UpdatedAt)
	}

	ok, err := s.DeleteItem(ctx, it.ID)
	if err != nil || !ok {
		t.Fatalf("DeleteItem = %v, %v", ok, err)
	}
	gone, err := s.GetItem(ctx, it.ID)
	if err != nil || gone != nil {
		t.Errorf("GetItem after delete = %v, %v", gone, err)
	}
	ok, err = s.DeleteItem(ctx, it.ID)
	if err != nil || ok {
		t.Errorf("second DeleteItem = %v, %v; want false, nil", ok, err)
	}
}

func testItemFilter(t *testing.T, s store.Store) {
	ctx := context.Background()

	kitchen, garage := int64(1), int64(2)
	for i, it := range []model.Item{
		{Name: "Coffee Grinder", LocationID: &kitchen},
		{Name: "Garden hose", LocationID: &garage},
		{Name: "Coffee beans", LocationID: &kitchen},
		{Name: "Loose screws"},
		{Name: "Čajna žlička"},
	} {
		it.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		it.UpdatedAt = it.CreatedAt
		if err := s.CreateItem(ctx, &it); err != nil {
			t.Fatalf("CreateItem: %v", err)
		}
	}

	tests := []struct {
		name   string
		filter model.ItemFilter
		want   []string
	}{
		{"all newest first", model.ItemFilter{}, []string{"Čajna žlička", "Loose screws", "Coffee beans", "Garden hose", "Coffee Grinder"}},
		{"search case-insensitive", model.ItemFilter{Search: "COFFEE"}, []string{"Coffee beans", "Coffee Grinder"}},
		{"location", model.ItemFilter{LocationID: &garage}, []string{"Garden hose"}},
		{"search and location", model.ItemFilter{Search: "grind", LocationID: &kitchen}, []string{"Coffee Grinder"}},
		{"no match", model.ItemFilter{Search: "hose", LocationID: &kitchen}, []string{}},
		{"search folds non-ASCII case", model.ItemFilter{Search: "ČAJNA ŽLIČ"}, []string{"Čajna žlička"}},
		{"wildcards are literal", model.ItemFilter{Search: "%"}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, err := s.ListItems(ctx, tt.filter)
			if err != nil {
				t.Fatalf("ListItems: %v", err)
			}
			if items == nil {
				t.Fatal("ListItems returned nil slice")
			}
			if len(items) != len(tt.want) {
				t.Fatalf("got %d items, want %d", len(items), len(tt.want))
			}
			for i, name := range tt.want {
				if items[i].Name != name {
					t.Errorf("items[%d] = %q, want %q", i, items[i].Name, name)
				}
			}
		})
	}
}

func testAchievements(t *testing.T, s store.Store) {
	ctx := context.Background()

	a := &model.Achievement{Name: "First Steps", Description: "Add your first item", Icon: "trophy", Threshold: 1, Type: model.AchievementItemsCount}
	if err := s.CreateAchievement(ctx, a); err != nil {
		t.Fatalf("CreateAchievement: %v", err)
	}

	got, err := s.GetAchievement(ctx, a.ID)
	if err != nil || got == nil {
		t.Fatalf("GetAchievement = %v, %v", got, err)
	}
	if got.IsUnlocked || got.UnlockedAt != nil {
		t.Errorf("new achievement should be locked: %+v", got)
	}

	first := base
	unlocked, err := s.UnlockAchievement(ctx, a.ID, first)
	if err != nil {
		t.Fatalf("UnlockAchievement: %v", err)
	}
	if !unlocked.IsUnlocked || unlocked.UnlockedAt == nil || !unlocked.UnlockedAt.Equal(first) {
		t.Errorf("unexpected unlock result: %+v", unlocked)
	}

	again, err := s.UnlockAchievement(ctx, a.ID, first.Add(time.Hour))
	if err != nil {
		t.Fatalf("UnlockAchievement: %v", err)
	}
	if !again.UnlockedAt.Equal(first) {
		t.Errorf("UnlockedAt changed on second unlock: %v", again.UnlockedAt)
	}

	missing, err := s.UnlockAchievement(ctx, 999, first)
	if err != nil || missing != nil {
		t.Errorf("UnlockAchievement(999) = %v, %v; want nil, nil", missing, err)
	}

	list, err := s.ListAchievements(ctx)
	if err != nil {
		t.Fatalf("ListAchievements: %v", err)
	}
	if len(list) != 1 || !list[0].IsUnlocked {
		t.Errorf("ListAchievements = %+v", list)
	}
}

func testShareableLists(t *testing.T, s store.Store) {
	ctx := context.Background()

	expires := base.Add(24 * time.Hour)
	older := &model.ShareableList{ShareID: "tok-older", Name: "Garage", IsPublic: true, CreatedAt: base, UpdatedAt: base}
	newer := &model.ShareableList{ShareID: "tok-newer", Name: "Moving", Description: "boxes", IsPublic: false, ExpiresAt: &expires, CreatedAt: base.Add(time.Minute), UpdatedAt: base.Add(time.Minute)}
	for _, l := range []*model.ShareableList{older, newer} {
		if err := s.CreateShareableList(ctx, l); err != nil {
			t.Fatalf("CreateShareableList: %v", err)
		}
	}

	lists, err := s.ListShareableLists(ctx)
	if err != nil {
		t.Fatalf("ListShareableLists: %v", err)
	}
	if len(lists) != 2 || lists[0].Name != "Moving" || lists[1].Name != "Garage" {
		t.Fatalf("ListShareableLists = %+v", lists)
	}

	got, err := s.GetShareableListByShareID(ctx, "tok-newer")
	if err != nil || got == nil {
		t.Fatalf("GetShareableListByShareID = %v, %v", got, err)
	}
	if got.IsPublic || got.ExpiresAt == nil || !got.ExpiresAt.Equal(expires) || got.Description != "boxes" {
		t.Errorf("unexpected list: %+v", got)
	}

	none, err := s.GetShareableListByShareID(ctx, "nope")
	if err != nil || none != nil {
		t.Errorf("GetShareableListByShareID(nope) = %v, %v", none, err)
	}

	got.Name = "Moving day"
	got.IsPublic = true
	got.ExpiresAt = nil
	got.ShareID = "changed"
	got.UpdatedAt = base.Add(time.Hour)
	if err := s.UpdateShareableList(ctx, got); err != nil {
		t.Fatalf("UpdateShareableList: %v", err)
	}
	updated, err := s.GetShareableList(ctx, newer.ID)
	if err != nil {
		t.Fatalf("GetShareableList: %v", err)
	}
	if updated.Name != "Moving day" || !updated.IsPublic || updated.ExpiresAt != nil {
		t.Errorf("update not applied: %+v", updated)
	}
	if updated.ShareID != "tok-newer" {
		t.Errorf("ShareID = %q, must not change", updated.ShareID)
	}
}

func testListItems(t *testing.T, s store.Store) {
	ctx := context.Background()

	list := &model.ShareableList{ShareID: "tok", Name: "Lend", IsPublic: true, CreatedAt: base, UpdatedAt: base}
	if err := s.CreateShareableList(ctx, list); err != nil {
		t.Fatalf("CreateShareableList: %v", err)
	}
	var items []*model.Item
	for _, name := range []string{"Ladder", "Tent"} {
		it := &model.Item{Name: name, CreatedAt: base, UpdatedAt: base}
		if err := s.CreateItem(ctx, it); err != nil {
			t.Fatalf("CreateItem: %v", err)
		}
		items = append(items, it)
	}

	first, err := s.AddShareableListItem(ctx, list.ID, items[0].ID, base)
	if err != nil {
		t.Fatalf("AddShareableListItem: %v", err)
	}
	again, err := s.AddShareableListItem(ctx, list.ID, items[0].ID, base.Add(time.Hour))
	if err != nil {
		t.Fatalf("AddShareableListItem: %v", err)
	}
	if again.ID != first.ID || !again.AddedAt.Equal(base) {
		t.Errorf("re-adding returned %+v, want existing %+v", again, first)
	}
	if _, err := s.AddShareableListItem(ctx, list.ID, items[1].ID, base.Add(time.Minute)); err != nil {
		t.Fatalf("AddShareableListItem: %v", err)
	}

	entries, err := s.ListShareableListItems(ctx, list.ID)
	if err != nil {
		t.Fatalf("ListShareableListItems: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Item == nil || entries[0].Item.Name != "Ladder" {
		t.Errorf("entries[0].Item = %+v", entries[0].Item)
	}

	// Deleting the item directly hides the pairing.
	if _, err := s.DeleteItem(ctx, items[0].ID); err != nil {
		t.Fatalf("DeleteItem: %v", err)
	}
	entries, err = s.ListShareableListItems(ctx, list.ID)
	if err != nil {
		t.Fatalf("ListShareableListItems: %v", err)
	}
	if len(entries) != 1 || entries[0].ItemID != items[1].ID {
		t.Errorf("entries after item delete = %+v", entries)
	}

	ok, err := s.RemoveShareableListItem(ctx, list.ID, items[1].ID)
	if err != nil || !ok {
		t.Fatalf("RemoveShareableListItem = %v, %v", ok, err)
	}
	ok, err = s.RemoveShareableListItem(ctx, list.ID, items[1].ID)
	if err != nil || ok {
		t.Errorf("second RemoveShareableListItem = %v, %v; want false, nil", ok, err)
	}

	// Deleting the list removes remaining pairings.
	if _, err := s.AddShareableListItem(ctx, list.ID, items[1].ID, base); err != nil {
		t.Fatalf("AddShareableListItem: %v", err)
	}
	ok, err = s.DeleteShareableList(ctx, list.ID)
	if err != nil || !ok {
		t.Fatalf("DeleteShareableList = %v, %v", ok, err)
	}
	entries, err = s.ListShareableListItems(ctx, list.ID)
	if err != nil {
		t.Fatalf("ListShareableListItems: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("pairings survived list delete: %+v", entries)
	}
}

// testIDsNotReused checks that a deleted row's id is never handed out again,
// so dangling references cannot attach to unrelated new rows.
func testIDsNotReused(t *testing.T, s store.Store) {
	ctx := context.Background()

	list := &model.ShareableList{ShareID: "tok", Name: "Lend", IsPublic: true, CreatedAt: base, UpdatedAt: base}
	if err := s.CreateShareableList(ctx, list); err != nil {
		t.Fatalf("CreateShareableList: %v", err)
	}
	a := &model.Item{Name: "A", CreatedAt: base, UpdatedAt: base}
	if err := s.CreateItem(ctx, a); err != nil {
		t.Fatalf("CreateItem: %v", err)
	}
	if _, err := s.AddShareableListItem(ctx, list.ID, a.ID, base); err != nil {
		t.Fatalf("AddShareableListItem: %v", err)
	}
	if _, err := s.DeleteItem(ctx, a.ID); err != nil {
		t.Fatalf("DeleteItem: %v", err)
	}
	b := &model.Item{Name: "B", CreatedAt: base, UpdatedAt: base}
	if err := s.CreateItem(ctx, b); err != nil {
		t.Fatalf("CreateItem: %v", err)
	}
	if b.ID == a.ID {
		t.Errorf("item id %d reused", a.ID)
	}
	entries, err := s.ListShareableListItems(ctx, list.ID)
	if err != nil {
		t.Fatalf("ListShareableListItems: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("entries = %+v, want none", entries)
	}

	parent := &model.Location{Name: "Parent", Path: "Parent", CreatedAt: base}
	if err := s.CreateLocation(ctx, parent); err != nil {
		t.Fatalf("CreateLocation: %v", err)
	}
	child := &model.Location{Name: "Child", ParentID: ptr(parent.ID), Path: "Parent/Child", CreatedAt: base}
	if err := s.CreateLocation(ctx, child); err != nil {
		t.Fatalf("CreateLocation: %v", err)
	}
	if _, err := s.DeleteLocation(ctx, child.ID); err != nil {
		t.Fatalf("DeleteLocation: %v", err)
	}
	other := &model.Location{Name: "Other", Path: "Other", CreatedAt: base}
	if err := s.CreateLocation(ctx, other); err != nil {
		t.Fatalf("CreateLocation: %v", err)
	}
	if other.ID == child.ID {
		t.Errorf("location id %d reused", child.ID)
	}

	if _, err := s.DeleteShareableList(ctx, list.ID); err != nil {
		t.Fatalf("DeleteShareableList: %v", err)
	}
	next := &model.ShareableList{ShareID: "tok-2", Name: "Next", IsPublic: true, CreatedAt: base, UpdatedAt: base}
	if err := s.CreateShareableList(ctx, next); err != nil {
		t.Fatalf("CreateShareableList: %v", err)
	}
	if next.ID == list.ID {
		t.Errorf("list id %d reused", list.ID)
	}
}
