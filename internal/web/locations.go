package web

import (
	"log/slog"
	"net/http"

	"github.com/erazemk/shramba/internal/locations"
	"github.com/erazemk/shramba/internal/service"
)

// LocationsPage handles GET /locations.
func (s *Server) LocationsPage(w http.ResponseWriter, r *http.Request) {
	tree, err := s.Service.LocationTree(r.Context())
	if err != nil {
		slog.Error("failed to build location tree", "error", err)
	}

	s.Templates.Render(w, "locations.html", &struct {
		PageData
		Locations []locations.FlatNode
	}{
		PageData:  PageData{Title: "Locations", Error: r.URL.Query().Get("error")},
		Locations: locations.Flatten(tree),
	})
}

// LocationCreateSubmit handles POST /locations.
func (s *Server) LocationCreateSubmit(w http.ResponseWriter, r *http.Request) {
	parentID, err := formID(r, "parent_id")
	if err != nil {
		s.submitFailed(w, r, "/locations", err)
		return
	}

	_, err = s.Service.CreateLocation(r.Context(), service.LocationInput{
		Name:        r.FormValue("name"),
		ParentID:    parentID,
		Description: r.FormValue("description"),
	})
	if err != nil {
		s.submitFailed(w, r, "/locations", err)
		return
	}
	http.Redirect(w, r, "/locations", http.StatusSeeOther)
}
