package web

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/erazemk/shramba/internal/locations"
	"github.com/erazemk/shramba/internal/model"
	"github.com/erazemk/shramba/internal/service"
)

// ItemsPage handles GET /items?search=&locationId=.
func (s *Server) ItemsPage(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := model.ItemFilter{Search: q.Get("search")}
	if id, err := strconv.ParseInt(q.Get("locationId"), 10, 64); err == nil {
		filter.LocationID = &id
	}

	items, err := s.Service.ListItems(r.Context(), filter)
	if err != nil {
		slog.Error("failed to list items", "error", err)
	}
	locs, err := s.Service.ListLocations(r.Context())
	if err != nil {
		slog.Error("failed to list locations", "error", err)
	}

	paths := make(map[int64]string, len(locs))
	for _, l := range locs {
		paths[l.ID] = l.Path
	}

	s.Templates.Render(w, "items.html", &struct {
		PageData
		Items     []model.Item
		Paths     map[int64]string
		Locations []locations.FlatNode
		Search    string
		Selected  int64
	}{
		PageData:  PageData{Title: "Items", Error: r.URL.Query().Get("error")},
		Items:     items,
		Paths:     paths,
		Locations: locations.Flatten(locations.BuildHierarchy(locs)),
		Search:    filter.Search,
		Selected:  derefID(filter.LocationID),
	})
}

// ItemDetailPage handles GET /items/{id}.
func (s *Server) ItemDetailPage(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	item, err := s.Service.GetItem(r.Context(), id)
	if errors.Is(err, service.ErrNotFound) {
		s.notFound(w, "Item not found")
		return
	}
	if err != nil {
		slog.Error("failed to get item", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	var location *model.Location
	if item.LocationID != nil {
		location, err = s.Service.GetLocation(r.Context(), *item.LocationID)
		if err != nil && !errors.Is(err, service.ErrNotFound) {
			slog.Error("failed to get item location", "error", err)
		}
	}

	locs, err := s.Service.ListLocations(r.Context())
	if err != nil {
		slog.Error("failed to list locations", "error", err)
	}

	s.Templates.Render(w, "item_detail.html", &struct {
		PageData
		Item      *model.Item
		Location  *model.Location
		Locations []locations.FlatNode
	}{
		PageData:  PageData{Title: item.Name, Error: r.URL.Query().Get("error")},
		Item:      item,
		Location:  location,
		Locations: locations.Flatten(locations.BuildHierarchy(locs)),
	})
}

// ItemCreateSubmit handles POST /items.
func (s *Server) ItemCreateSubmit(w http.ResponseWriter, r *http.Request) {
	f, err := parseItemForm(r)
	if err != nil {
		s.submitFailed(w, r, "/items", err)
		return
	}

	it, err := s.Service.CreateItem(r.Context(), service.ItemInput{
		Name:            f.name,
		Description:     f.description,
		Barcode:         f.barcode,
		Value:           f.value,
		PurchaseDate:    f.purchaseDate,
		WarrantyEndDate: f.warrantyEndDate,
		LocationID:      f.locationID,
		Notes:           f.notes,
	})
	if err != nil {
		s.submitFailed(w, r, "/items", err)
		return
	}
	http.Redirect(w, r, fmt.Sprintf("/items/%d", it.ID), http.StatusSeeOther)
}

// ItemUpdateSubmit handles POST /items/{id}. The form carries every field,
// so empty fields clear their value.
func (s *Server) ItemUpdateSubmit(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	target := fmt.Sprintf("/items/%d", id)
	f, err := parseItemForm(r)
	if err != nil {
		s.submitFailed(w, r, target, err)
		return
	}

	_, err = s.Service.UpdateItem(r.Context(), id, service.ItemPatch{
		Name:            &f.name,
		Description:     &f.description,
		Barcode:         &f.barcode,
		Value:           &f.value,
		Notes:           &f.notes,
		PurchaseDate:    optional(f.purchaseDate),
		WarrantyEndDate: optional(f.warrantyEndDate),
		LocationID:      optional(f.locationID),
	})
	if errors.Is(err, service.ErrNotFound) {
		s.notFound(w, "Item not found")
		return
	}
	if err != nil {
		s.submitFailed(w, r, target, err)
		return
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func (s *Server) notFound(w http.ResponseWriter, message string) {
	s.Templates.RenderStatus(w, http.StatusNotFound, "not_found.html", &PageData{Title: "Not found", Error: message})
}

func derefID(id *int64) int64 {
	if id == nil {
		return 0
	}
	return *id
}
