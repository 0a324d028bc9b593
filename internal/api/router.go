package api

import (
	"net/http"
	"time"

	"github.com/erazemk/shramba/internal/service"
	"github.com/erazemk/shramba/internal/uploads"
)

// Options configures the API router.
type Options struct {
	// Uploads stores photos and receipts.
	Uploads *uploads.Store
	// BaseURL is the public origin used in share links and QR codes.
	BaseURL string
	// Now overrides the clock used for export file names.
	Now func() time.Time
}

// NewRouter creates the API router with all endpoints registered. It also
// serves uploaded files under /uploads/.
func NewRouter(svc *service.Service, opts Options) http.Handler {
	mux := http.NewServeMux()

	locationsHandler := &LocationsHandler{Service: svc}
	itemsHandler := &ItemsHandler{Service: svc}
	achievementsHandler := &AchievementsHandler{Service: svc}
	listsHandler := &ListsHandler{Service: svc, BaseURL: opts.BaseURL}
	exportHandler := &ExportHandler{Service: svc, Now: opts.Now}
	uploadsHandler := &UploadsHandler{Files: opts.Uploads}

	// Locations.
	mux.HandleFunc("GET /api/locations", locationsHandler.List)
	mux.HandleFunc("GET /api/locations/tree", locationsHandler.Tree)
	mux.HandleFunc("POST /api/locations", locationsHandler.Create)
	mux.HandleFunc("GET /api/locations/{id}", locationsHandler.Get)
	mux.HandleFunc("PUT /api/locations/{id}", locationsHandler.Update)
	mux.HandleFunc("DELETE /api/locations/{id}", locationsHandler.Delete)

	// Items.
	mux.HandleFunc("GET /api/items", itemsHandler.List)
	mux.HandleFunc("POST /api/items", itemsHandler.Create)
	mux.HandleFunc("GET /api/items/{id}", itemsHandler.Get)
	mux.HandleFunc("PUT /api/items/{id}", itemsHandler.Update)
	mux.HandleFunc("DELETE /api/items/{id}", itemsHandler.Delete)

	// Achievements and statistics.
	mux.HandleFunc("GET /api/achievements", achievementsHandler.List)
	mux.HandleFunc("POST /api/achievements", achievementsHandler.Create)
	mux.HandleFunc("GET /api/achievements/progress", achievementsHandler.Progress)
	mux.HandleFunc("POST /api/achievements/{id}/unlock", achievementsHandler.Unlock)
	mux.HandleFunc("GET /api/stats", achievementsHandler.Stats)

	// Shareable lists.
	mux.HandleFunc("GET /api/shareable-lists", listsHandler.List)
	mux.HandleFunc("POST /api/shareable-lists", listsHandler.Create)
	mux.HandleFunc("GET /api/shareable-lists/{id}", listsHandler.Get)
	mux.HandleFunc("PUT /api/shareable-lists/{id}", listsHandler.Update)
	mux.HandleFunc("DELETE /api/shareable-lists/{id}", listsHandler.Delete)
	mux.HandleFunc("GET /api/shareable-lists/{id}/items", listsHandler.Items)
	mux.HandleFunc("POST /api/shareable-lists/{id}/items", listsHandler.AddItem)
	mux.HandleFunc("DELETE /api/shareable-lists/{id}/items/{itemId}", listsHandler.RemoveItem)
	mux.HandleFunc("GET /api/shareable-lists/{id}/qr", listsHandler.QRCode)

	// Public share lookup.
	mux.HandleFunc("GET /api/share/{shareId}", listsHandler.Resolve)

	// Export.
	mux.HandleFunc("GET /api/export/csv", exportHandler.CSV)
	mux.HandleFunc("GET /api/export/html", exportHandler.HTML)
	mux.HandleFunc("GET /api/export/xlsx", exportHandler.XLSX)

	// Uploads.
	mux.HandleFunc("POST /api/upload", uploadsHandler.Upload)
	mux.HandleFunc("GET /uploads/{name}", uploadsHandler.Serve)

	// Unknown API paths get a JSON 404 instead of the default text page.
	mux.HandleFunc("/api/", func(w http.ResponseWriter, r *http.Request) {
		jsonError(w, http.StatusNotFound, "not found")
	})

	return mux
}
