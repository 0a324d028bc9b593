package api

import (
	"net/http"
	"strconv"

	"github.com/erazemk/shramba/internal/model"
	"github.com/erazemk/shramba/internal/service"
)

// ItemsHandler handles item CRUD endpoints.
type ItemsHandler struct {
	Service *service.Service
}

type createItemRequest struct {
	Name            string         `json:"name" validate:"required,max=200"`
	Description     string         `json:"description" validate:"max=5000"`
	Barcode         string         `json:"barcode" validate:"max=64"`
	Value           string         `json:"value" validate:"omitempty,money"`
	PurchaseDate    *jsonDate      `json:"purchaseDate"`
	WarrantyEndDate *jsonDate      `json:"warrantyEndDate"`
	LocationID      *int64         `json:"locationId" validate:"omitempty,gt=0"`
	Photos          []string       `json:"photos" validate:"max=50,dive,max=2048"`
	Receipts        []string       `json:"receipts" validate:"max=50,dive,max=2048"`
	Notes           string         `json:"notes" validate:"max=5000"`
	CustomFields    map[string]any `json:"customFields"`
}

type updateItemRequest struct {
	Name            *string                    `json:"name" validate:"omitempty,max=200"`
	Description     *string                    `json:"description" validate:"omitempty,max=5000"`
	Barcode         *string                    `json:"barcode" validate:"omitempty,max=64"`
	Value           *string                    `json:"value" validate:"omitempty,money"`
	PurchaseDate    service.Optional[jsonDate] `json:"purchaseDate"`
	WarrantyEndDate service.Optional[jsonDate] `json:"warrantyEndDate"`
	LocationID      service.Optional[int64]    `json:"locationId"`
	Photos          []string                   `json:"photos" validate:"omitempty,max=50,dive,max=2048"`
	Receipts        []string                   `json:"receipts" validate:"omitempty,max=50,dive,max=2048"`
	Notes           *string                    `json:"notes" validate:"omitempty,max=5000"`
	CustomFields    map[string]any             `json:"customFields"`
}

// List handles GET /api/items?search=&locationId=.
func (h *ItemsHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := model.ItemFilter{Search: q.Get("search")}
	if v := q.Get("locationId"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			jsonError(w, http.StatusBadRequest, "invalid locationId")
			return
		}
		filter.LocationID = &id
	}

	items, err := h.Service.ListItems(r.Context(), filter)
	if err != nil {
		serviceError(w, err)
		return
	}
	jsonResponse(w, http.StatusOK, items)
}

// Get handles GET /api/items/{id}.
func (h *ItemsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", "item")
	if !ok {
		return
	}

	item, err := h.Service.GetItem(r.Context(), id)
	if err != nil {
		serviceError(w, err)
		return
	}
	jsonResponse(w, http.StatusOK, item)
}

// Create handles POST /api/items.
func (h *ItemsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createItemRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	item, err := h.Service.CreateItem(r.Context(), service.ItemInput{
		Name:            req.Name,
		Description:     req.Description,
		Barcode:         req.Barcode,
		Value:           req.Value,
		PurchaseDate:    req.PurchaseDate.time(),
		WarrantyEndDate: req.WarrantyEndDate.time(),
		LocationID:      req.LocationID,
		Photos:          req.Photos,
		Receipts:        req.Receipts,
		Notes:           req.Notes,
		CustomFields:    req.CustomFields,
	})
	if err != nil {
		serviceError(w, err)
		return
	}
	jsonResponse(w, http.StatusCreated, item)
}

// Update handles PUT /api/items/{id}. Only the fields present in the body
// are changed.
func (h *ItemsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", "item")
	if !ok {
		return
	}

	var req updateItemRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	item, err := h.Service.UpdateItem(r.Context(), id, service.ItemPatch{
		Name:            req.Name,
		Description:     req.Description,
		Barcode:         req.Barcode,
		Value:           req.Value,
		PurchaseDate:    optionalDate(req.PurchaseDate),
		WarrantyEndDate: optionalDate(req.WarrantyEndDate),
		LocationID:      req.LocationID,
		Photos:          req.Photos,
		Receipts:        req.Receipts,
		Notes:           req.Notes,
		CustomFields:    req.CustomFields,
	})
	if err != nil {
		serviceError(w, err)
		return
	}
	jsonResponse(w, http.StatusOK, item)
}

// Delete handles DELETE /api/items/{id}.
func (h *ItemsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", "item")
	if !ok {
		return
	}

	if err := h.Service.DeleteItem(r.Context(), id); err != nil {
		serviceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
