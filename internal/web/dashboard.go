package web

import (
	"log/slog"
	"net/http"

	"github.com/erazemk/shramba/internal/model"
	"github.com/erazemk/shramba/internal/service"
)

// Dashboard handles GET /.
func (s *Server) Dashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := s.Service.Stats(r.Context())
	if err != nil {
		slog.Error("failed to compute stats for dashboard", "error", err)
	}
	progress, err := s.Service.AchievementProgress(r.Context())
	if err != nil {
		slog.Error("failed to load achievements for dashboard", "error", err)
	}

	s.Templates.Render(w, "dashboard.html", &struct {
		PageData
		Stats        model.Stats
		Achievements []service.AchievementProgress
	}{
		PageData:     PageData{Title: "Dashboard"},
		Stats:        stats,
		Achievements: progress,
	})
}
