package api

import (
	"net/http"

	"github.com/erazemk/shramba/internal/service"
)

// AchievementsHandler handles achievement and statistics endpoints.
type AchievementsHandler struct {
	Service *service.Service
}

type createAchievementRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description" validate:"max=500"`
	Icon        string `json:"icon" validate:"max=50"`
	Threshold   int64  `json:"threshold" validate:"gte=0"`
	Type        string `json:"type" validate:"required,achievement_type"`
}

// List handles GET /api/achievements.
func (h *AchievementsHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.Service.ListAchievements(r.Context())
	if err != nil {
		serviceError(w, err)
		return
	}
	jsonResponse(w, http.StatusOK, list)
}

// Progress handles GET /api/achievements/progress.
func (h *AchievementsHandler) Progress(w http.ResponseWriter, r *http.Request) {
	list, err := h.Service.AchievementProgress(r.Context())
	if err != nil {
		serviceError(w, err)
		return
	}
	jsonResponse(w, http.StatusOK, list)
}

// Create handles POST /api/achievements.
func (h *AchievementsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createAchievementRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	a, err := h.Service.CreateAchievement(r.Context(), service.AchievementInput{
		Name:        req.Name,
		Description: req.Description,
		Icon:        req.Icon,
		Threshold:   req.Threshold,
		Type:        req.Type,
	})
	if err != nil {
		serviceError(w, err)
		return
	}
	jsonResponse(w, http.StatusCreated, a)
}

// Unlock handles POST /api/achievements/{id}/unlock.
func (h *AchievementsHandler) Unlock(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", "achievement")
	if !ok {
		return
	}

	a, err := h.Service.UnlockAchievement(r.Context(), id)
	if err != nil {
		serviceError(w, err)
		return
	}
	jsonResponse(w, http.StatusOK, a)
}

// Stats handles GET /api/stats.
func (h *AchievementsHandler) Stats(w http.ResponseWriter, r *http.Request) {
	st, err := h.Service.Stats(r.Context())
	if err != nil {
		serviceError(w, err)
		return
	}
	jsonResponse(w, http.StatusOK, st)
}
