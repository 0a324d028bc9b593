package api

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/erazemk/shramba/internal/uploads"
)

// UploadsHandler accepts and serves item photos and receipts.
type UploadsHandler struct {
	Files *uploads.Store
}

// Upload handles POST /api/upload. The file is sent as the multipart field
// "file"; the response carries the URL to store on the item.
func (h *UploadsHandler) Upload(w http.ResponseWriter, r *http.Request) {
	// Leave room for multipart framing on top of the file itself.
	r.Body = http.MaxBytesReader(w, r.Body, uploads.MaxSize+1<<20)

	if err := r.ParseMultipartForm(uploads.MaxSize); err != nil {
		jsonError(w, http.StatusBadRequest, "file too large or invalid multipart form")
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		jsonError(w, http.StatusBadRequest, "file required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, uploads.MaxSize+1))
	if err != nil {
		jsonError(w, http.StatusBadRequest, "failed to read file")
		return
	}

	url, err := h.Files.Save(data)
	switch {
	case errors.Is(err, uploads.ErrUnsupported), errors.Is(err, uploads.ErrTooLarge), errors.Is(err, uploads.ErrInvalidImage):
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	case err != nil:
		slog.Error("saving upload", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to save file")
		return
	}

	slog.Info("file uploaded", "url", url, "size", len(data))
	jsonResponse(w, http.StatusCreated, map[string]string{"url": url})
}

// Serve handles GET /uploads/{name}.
func (h *UploadsHandler) Serve(w http.ResponseWriter, r *http.Request) {
	path, ok := h.Files.Path(r.PathValue("name"))
	if !ok {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
	http.ServeFile(w, r, path)
}
