package web

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/erazemk/shramba/internal/model"
	"github.com/erazemk/shramba/internal/service"
	"github.com/erazemk/shramba/internal/sharing"
)

// sharedLink is a list with its public URL.
type sharedLink struct {
	model.ShareableList
	URL string
}

// ListsPage handles GET /lists.
func (s *Server) ListsPage(w http.ResponseWriter, r *http.Request) {
	lists, err := s.Service.ListLists(r.Context())
	if err != nil {
		slog.Error("failed to list shareable lists", "error", err)
	}

	items, err := s.Service.ListItems(r.Context(), model.ItemFilter{})
	if err != nil {
		slog.Error("failed to list items", "error", err)
	}

	base := s.baseURL(r)
	links := make([]sharedLink, 0, len(lists))
	for _, l := range lists {
		links = append(links, sharedLink{ShareableList: l, URL: sharing.ShareURL(base, l.ShareID)})
	}

	s.Templates.Render(w, "lists.html", &struct {
		PageData
		Lists []sharedLink
		Items []model.Item
	}{
		PageData: PageData{Title: "Shareable lists", Error: r.URL.Query().Get("error")},
		Lists:    links,
		Items:    items,
	})
}

// ListCreateSubmit handles POST /lists. An unchecked is_public box makes
// the list private.
func (s *Server) ListCreateSubmit(w http.ResponseWriter, r *http.Request) {
	expiresAt, err := formDate(r, "expires_at")
	if err != nil {
		s.submitFailed(w, r, "/lists", err)
		return
	}
	locationID, err := formID(r, "location_id")
	if err != nil {
		s.submitFailed(w, r, "/lists", err)
		return
	}
	isPublic := r.FormValue("is_public") != ""

	_, err = s.Service.CreateList(r.Context(), service.ListInput{
		Name:        r.FormValue("name"),
		Description: r.FormValue("description"),
		LocationID:  locationID,
		IsPublic:    &isPublic,
		ExpiresAt:   expiresAt,
	})
	if err != nil {
		s.submitFailed(w, r, "/lists", err)
		return
	}
	http.Redirect(w, r, "/lists", http.StatusSeeOther)
}

// ListAddItemSubmit handles POST /lists/{id}/items.
func (s *Server) ListAddItemSubmit(w http.ResponseWriter, r *http.Request) {
	listID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	itemID, err := formID(r, "item_id")
	if err == nil && itemID == nil {
		err = &service.ValidationError{Field: "item_id", Message: "is required"}
	}
	if err != nil {
		s.submitFailed(w, r, "/lists", err)
		return
	}

	if _, err := s.Service.AddListItem(r.Context(), listID, *itemID); err != nil {
		s.submitFailed(w, r, "/lists", err)
		return
	}
	http.Redirect(w, r, "/lists", http.StatusSeeOther)
}

func (s *Server) baseURL(r *http.Request) string {
	if s.BaseURL != "" {
		return s.BaseURL
	}
	scheme := "http"
	if r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https" {
		scheme = "https"
	}
	return scheme + "://" + r.Host
}
