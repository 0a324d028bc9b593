package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/erazemk/shramba/internal/achievements"
	"github.com/erazemk/shramba/internal/locations"
	"github.com/erazemk/shramba/internal/model"
)

type seedLocation struct {
	name, description string
	parent            int // index into the seeded locations, -1 for a root
}

var seedLocations = []seedLocation{
	{"My Home", "Main house inventory", -1},
	{"Kitchen", "Kitchen appliances and food items", 0},
	{"Refrigerator", "Food items in the fridge", 1},
	{"Living Room", "Entertainment and furniture", 0},
	{"Bedroom", "Personal belongings and clothes", 0},
}

const seedFridge = 2

type seedItem struct {
	name, description, barcode, value, notes string
	bestBefore                               time.Duration
}

var seedItems = []seedItem{
	{
		name:        "Leftover Pizza",
		description: "Homemade pizza with pepperoni and mushrooms",
		value:       "12.00",
		notes:       "Store in airtight container, best consumed within 3 days",
		bestBefore:  3 * 24 * time.Hour,
	},
	{
		name:        "Greek Yogurt",
		description: "Organic plain Greek yogurt, 32oz container",
		barcode:     "1234567890123",
		value:       "5.99",
		bestBefore:  14 * 24 * time.Hour,
	},
	{
		name:        "Meal Prep Containers",
		description: "Chicken teriyaki with rice and vegetables (4 containers)",
		value:       "24.00",
		notes:       "Prepared on Sunday, microwave for 2-3 minutes",
		bestBefore:  5 * 24 * time.Hour,
	},
}

// Seed fills an empty inventory with a starter location tree, a few
// sample items and the achievement catalog. It does nothing if any
// location exists and reports whether it seeded.
func (s *Service) Seed(ctx context.Context) (bool, error) {
	existing, err := s.store.ListLocations(ctx)
	if err != nil {
		return false, persistence("checking existing data", err)
	}
	if len(existing) > 0 {
		return false, nil
	}

	slog.Info("seeding default data")
	now := s.clock()

	created := make([]*model.Location, 0, len(seedLocations))
	for _, sl := range seedLocations {
		l := &model.Location{Name: sl.name, Description: sl.description, CreatedAt: now}
		var parent *model.Location
		if sl.parent >= 0 {
			parent = created[sl.parent]
			pid := parent.ID
			l.ParentID = &pid
		}
		l.Path = locations.ComputePath(l.Name, parent)
		if err := s.store.CreateLocation(ctx, l); err != nil {
			return false, persistence("seeding location", err)
		}
		created = append(created, l)
	}

	fridge := created[seedFridge].ID
	for _, si := range seedItems {
		end := now.Add(si.bestBefore)
		it := &model.Item{
			Name:            si.name,
			Description:     si.description,
			Barcode:         si.barcode,
			Value:           si.value,
			WarrantyEndDate: &end,
			LocationID:      &fridge,
			Photos:          []string{},
			Receipts:        []string{},
			Notes:           si.notes,
			CustomFields:    map[string]any{},
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		if err := s.store.CreateItem(ctx, it); err != nil {
			return false, persistence("seeding item", err)
		}
	}

	for _, a := range achievements.DefaultCatalog() {
		if err := s.store.CreateAchievement(ctx, &a); err != nil {
			return false, persistence("seeding achievement", err)
		}
	}

	if _, err := s.EvaluateAchievements(ctx); err != nil {
		return true, err
	}
	return true, nil
}
