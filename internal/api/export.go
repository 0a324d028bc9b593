package api

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/erazemk/shramba/internal/export"
	"github.com/erazemk/shramba/internal/model"
	"github.com/erazemk/shramba/internal/service"
)

// ExportHandler renders the inventory as downloadable files.
type ExportHandler struct {
	Service *service.Service
	Now     func() time.Time
}

type renderFunc func(w io.Writer, items []model.Item, locs []model.Location) error

// CSV handles GET /api/export/csv.
func (h *ExportHandler) CSV(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, "text/csv; charset=utf-8", "csv", export.CSV)
}

// HTML handles GET /api/export/html.
func (h *ExportHandler) HTML(w http.ResponseWriter, r *http.Request) {
	now := h.now()
	h.serve(w, r, "text/html; charset=utf-8", "html", func(w io.Writer, items []model.Item, locs []model.Location) error {
		return export.HTML(w, items, locs, now)
	})
}

// XLSX handles GET /api/export/xlsx.
func (h *ExportHandler) XLSX(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", "xlsx", export.XLSX)
}

// serve renders into a buffer first so a failed render still yields a
// clean error response.
func (h *ExportHandler) serve(w http.ResponseWriter, r *http.Request, contentType, ext string, render renderFunc) {
	items, locs, err := h.Service.ExportData(r.Context())
	if err != nil {
		serviceError(w, err)
		return
	}

	var buf bytes.Buffer
	if err := render(&buf, items, locs); err != nil {
		slog.Error("rendering export", "format", ext, "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to render export")
		return
	}

	filename := fmt.Sprintf("inventory-%s.%s", h.now().Format(time.DateOnly), ext)
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Write(buf.Bytes())
}

func (h *ExportHandler) now() time.Time {
	if h.Now != nil {
		return h.Now().UTC()
	}
	return time.Now().UTC()
}
