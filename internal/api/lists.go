package api

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/erazemk/shramba/internal/service"
	"github.com/erazemk/shramba/internal/sharing"
)

// Bounds for the QR code image size in pixels.
const (
	defaultQRSize = 256
	minQRSize     = 64
	maxQRSize     = 1024
)

// ListsHandler handles shareable list endpoints and public share lookup.
type ListsHandler struct {
	Service *service.Service
	// BaseURL is the public origin used in share links. When empty it is
	// derived from the request.
	BaseURL string
}

type createListRequest struct {
	Name        string    `json:"name" validate:"required,max=200"`
	Description string    `json:"description" validate:"max=2000"`
	LocationID  *int64    `json:"locationId" validate:"omitempty,gt=0"`
	IsPublic    *bool     `json:"isPublic"`
	ExpiresAt   *jsonDate `json:"expiresAt"`
}

type updateListRequest struct {
	Name        *string                    `json:"name" validate:"omitempty,max=200"`
	Description *string                    `json:"description" validate:"omitempty,max=2000"`
	LocationID  service.Optional[int64]    `json:"locationId"`
	IsPublic    *bool                      `json:"isPublic"`
	ExpiresAt   service.Optional[jsonDate] `json:"expiresAt"`
}

type addListItemRequest struct {
	ItemID int64 `json:"itemId" validate:"required,gt=0"`
}

// List handles GET /api/shareable-lists.
func (h *ListsHandler) List(w http.ResponseWriter, r *http.Request) {
	lists, err := h.Service.ListLists(r.Context())
	if err != nil {
		serviceError(w, err)
		return
	}
	jsonResponse(w, http.StatusOK, lists)
}

// Get handles GET /api/shareable-lists/{id}.
func (h *ListsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", "list")
	if !ok {
		return
	}

	l, err := h.Service.GetList(r.Context(), id)
	if err != nil {
		serviceError(w, err)
		return
	}
	jsonResponse(w, http.StatusOK, l)
}

// Create handles POST /api/shareable-lists.
func (h *ListsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createListRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	l, err := h.Service.CreateList(r.Context(), service.ListInput{
		Name:        req.Name,
		Description: req.Description,
		LocationID:  req.LocationID,
		IsPublic:    req.IsPublic,
		ExpiresAt:   req.ExpiresAt.time(),
	})
	if err != nil {
		serviceError(w, err)
		return
	}
	jsonResponse(w, http.StatusCreated, l)
}

// Update handles PUT /api/shareable-lists/{id}.
func (h *ListsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", "list")
	if !ok {
		return
	}

	var req updateListRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	l, err := h.Service.UpdateList(r.Context(), id, service.ListPatch{
		Name:        req.Name,
		Description: req.Description,
		LocationID:  req.LocationID,
		IsPublic:    req.IsPublic,
		ExpiresAt:   optionalDate(req.ExpiresAt),
	})
	if err != nil {
		serviceError(w, err)
		return
	}
	jsonResponse(w, http.StatusOK, l)
}

// Delete handles DELETE /api/shareable-lists/{id}.
func (h *ListsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", "list")
	if !ok {
		return
	}

	if err := h.Service.DeleteList(r.Context(), id); err != nil {
		serviceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Items handles GET /api/shareable-lists/{id}/items.
func (h *ListsHandler) Items(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", "list")
	if !ok {
		return
	}

	entries, err := h.Service.GetListItems(r.Context(), id)
	if err != nil {
		serviceError(w, err)
		return
	}
	jsonResponse(w, http.StatusOK, entries)
}

// AddItem handles POST /api/shareable-lists/{id}/items.
func (h *ListsHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", "list")
	if !ok {
		return
	}

	var req addListItemRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	e, err := h.Service.AddListItem(r.Context(), id, req.ItemID)
	if err != nil {
		serviceError(w, err)
		return
	}
	jsonResponse(w, http.StatusCreated, e)
}

// RemoveItem handles DELETE /api/shareable-lists/{id}/items/{itemId}.
func (h *ListsHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", "list")
	if !ok {
		return
	}
	itemID, ok := pathID(w, r, "itemId", "item")
	if !ok {
		return
	}

	if err := h.Service.RemoveListItem(r.Context(), id, itemID); err != nil {
		serviceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// QRCode handles GET /api/shareable-lists/{id}/qr?size=. It returns a PNG
// encoding the public share link.
func (h *ListsHandler) QRCode(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", "list")
	if !ok {
		return
	}

	size := defaultQRSize
	if v := r.URL.Query().Get("size"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < minQRSize || n > maxQRSize {
			jsonError(w, http.StatusBadRequest, "size must be between 64 and 1024")
			return
		}
		size = n
	}

	l, err := h.Service.GetList(r.Context(), id)
	if err != nil {
		serviceError(w, err)
		return
	}

	png, err := sharing.QRCode(sharing.ShareURL(h.baseURL(r), l.ShareID), size)
	if err != nil {
		slog.Error("generating qr code", "error", err, "list", l.ID)
		jsonError(w, http.StatusInternalServerError, "failed to generate qr code")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "private, max-age=3600")
	w.Write(png)
}

// Resolve handles GET /api/share/{shareId}. It is public: the token is
// the only credential.
func (h *ListsHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	token := r.PathValue("shareId")
	if !sharing.ValidToken(token) {
		jsonError(w, http.StatusNotFound, "shared list not found")
		return
	}

	shared, err := h.Service.ResolveShare(r.Context(), token)
	if err != nil {
		serviceError(w, err)
		return
	}
	jsonResponse(w, http.StatusOK, shared)
}

func (h *ListsHandler) baseURL(r *http.Request) string {
	if h.BaseURL != "" {
		return h.BaseURL
	}
	scheme := "http"
	if r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https" {
		scheme = "https"
	}
	return scheme + "://" + r.Host
}
