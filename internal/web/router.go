package web

import (
	"net/http"

	"github.com/erazemk/shramba/internal/service"
	webembed "github.com/erazemk/shramba/web"
)

// NewRouter creates the web page router with all page routes registered.
// baseURL is the public origin used when rendering share links.
func NewRouter(svc *service.Service, baseURL string) (http.Handler, error) {
	templates, err := LoadTemplates()
	if err != nil {
		return nil, err
	}

	s := &Server{
		Service:   svc,
		Templates: templates,
		BaseURL:   baseURL,
	}

	mux := http.NewServeMux()

	// Static assets.
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.FS(webembed.StaticFS()))))

	// Public share page.
	mux.HandleFunc("GET /share/{shareId}", s.SharePage)

	// Inventory pages.
	mux.HandleFunc("GET /{$}", s.Dashboard)

	mux.HandleFunc("GET /items", s.ItemsPage)
	mux.HandleFunc("POST /items", s.ItemCreateSubmit)
	mux.HandleFunc("GET /items/{id}", s.ItemDetailPage)
	mux.HandleFunc("POST /items/{id}", s.ItemUpdateSubmit)

	mux.HandleFunc("GET /locations", s.LocationsPage)
	mux.HandleFunc("POST /locations", s.LocationCreateSubmit)

	mux.HandleFunc("GET /lists", s.ListsPage)
	mux.HandleFunc("POST /lists", s.ListCreateSubmit)
	mux.HandleFunc("POST /lists/{id}/items", s.ListAddItemSubmit)

	return mux, nil
}
