package api

import (
	"net/http"

	"github.com/erazemk/shramba/internal/service"
)

// LocationsHandler handles location endpoints.
type LocationsHandler struct {
	Service *service.Service
}

type createLocationRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	ParentID    *int64 `json:"parentId" validate:"omitempty,gt=0"`
	Description string `json:"description" validate:"max=1000"`
}

type updateLocationRequest struct {
	Name        *string                 `json:"name" validate:"omitempty,max=100"`
	ParentID    service.Optional[int64] `json:"parentId"`
	Description *string                 `json:"description" validate:"omitempty,max=1000"`
}

// List handles GET /api/locations.
func (h *LocationsHandler) List(w http.ResponseWriter, r *http.Request) {
	locs, err := h.Service.ListLocations(r.Context())
	if err != nil {
		serviceError(w, err)
		return
	}
	jsonResponse(w, http.StatusOK, locs)
}

// Tree handles GET /api/locations/tree.
func (h *LocationsHandler) Tree(w http.ResponseWriter, r *http.Request) {
	tree, err := h.Service.LocationTree(r.Context())
	if err != nil {
		serviceError(w, err)
		return
	}
	jsonResponse(w, http.StatusOK, tree)
}

// Get handles GET /api/locations/{id}.
func (h *LocationsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", "location")
	if !ok {
		return
	}

	l, err := h.Service.GetLocation(r.Context(), id)
	if err != nil {
		serviceError(w, err)
		return
	}
	jsonResponse(w, http.StatusOK, l)
}

// Create handles POST /api/locations.
func (h *LocationsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createLocationRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	l, err := h.Service.CreateLocation(r.Context(), service.LocationInput{
		Name:        req.Name,
		ParentID:    req.ParentID,
		Description: req.Description,
	})
	if err != nil {
		serviceError(w, err)
		return
	}

	jsonResponse(w, http.StatusCreated, l)
}

// Update handles PUT /api/locations/{id}.
func (h *LocationsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", "location")
	if !ok {
		return
	}

	var req updateLocationRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	l, err := h.Service.UpdateLocation(r.Context(), id, service.LocationPatch{
		Name:        req.Name,
		Description: req.Description,
		ParentID:    req.ParentID,
	})
	if err != nil {
		serviceError(w, err)
		return
	}
	jsonResponse(w, http.StatusOK, l)
}

// Delete handles DELETE /api/locations/{id}.
func (h *LocationsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", "location")
	if !ok {
		return
	}

	if err := h.Service.DeleteLocation(r.Context(), id); err != nil {
		serviceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
