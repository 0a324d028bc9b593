package web

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/erazemk/shramba/internal/service"
	"github.com/erazemk/shramba/internal/sharing"
)

// SharePage handles GET /share/{shareId}: the public, read-only view of a
// shareable list.
func (s *Server) SharePage(w http.ResponseWriter, r *http.Request) {
	token := r.PathValue("shareId")
	if !sharing.ValidToken(token) {
		s.sharedNotFound(w)
		return
	}

	shared, err := s.Service.ResolveShare(r.Context(), token)
	if errors.Is(err, service.ErrNotFound) {
		s.sharedNotFound(w)
		return
	}
	if err != nil {
		slog.Error("failed to resolve share", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("X-Robots-Tag", "noindex")
	s.Templates.Render(w, "share.html", &struct {
		PageData
		Shared *service.SharedList
	}{
		PageData: PageData{Title: shared.List.Name, Public: true},
		Shared:   shared,
	})
}

func (s *Server) sharedNotFound(w http.ResponseWriter) {
	s.Templates.RenderStatus(w, http.StatusNotFound, "not_found.html", &PageData{
		Title:  "Not found",
		Public: true,
		Error:  "This list does not exist, is private, or has expired.",
	})
}
