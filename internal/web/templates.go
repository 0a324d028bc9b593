package web

import (
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/erazemk/shramba/internal/model"
	"github.com/erazemk/shramba/internal/service"
	webembed "github.com/erazemk/shramba/web"
)

// Templates holds parsed HTML templates.
type Templates struct {
	templates map[string]*template.Template
}

// FuncMap returns the template function map.
func FuncMap() template.FuncMap {
	return template.FuncMap{
		"money": func(v any) string {
			switch v := v.(type) {
			case decimal.Decimal:
				return "$" + v.StringFixed(2)
			case string:
				return "$" + model.ParseValue(v).StringFixed(2)
			}
			return ""
		},
		"date": func(t any) string {
			switch t := t.(type) {
			case time.Time:
				return t.UTC().Format(time.DateOnly)
			case *time.Time:
				if t != nil {
					return t.UTC().Format(time.DateOnly)
				}
			}
			return "-"
		},
		"dateInput": func(t *time.Time) string {
			if t == nil {
				return ""
			}
			return t.UTC().Format(time.DateOnly)
		},
		"indent": func(depth int) template.CSS {
			return template.CSS(fmt.Sprintf("padding-left: %.1frem", float64(depth)*1.5))
		},
		"deref": derefID,
		"progress": func(p float64) string {
			return fmt.Sprintf("%.0f%%", p)
		},
	}
}

// LoadTemplates parses all page templates with the layout.
func LoadTemplates() (*Templates, error) {
	tfs := webembed.TemplatesFS()

	// Read layout.
	layoutBytes, err := fs.ReadFile(tfs, "layout.html")
	if err != nil {
		return nil, fmt.Errorf("reading layout template: %w", err)
	}

	pages := []string{
		"dashboard.html",
		"items.html",
		"item_detail.html",
		"locations.html",
		"lists.html",
		"share.html",
		"not_found.html",
	}

	ts := &Templates{templates: make(map[string]*template.Template)}

	for _, page := range pages {
		pageBytes, err := fs.ReadFile(tfs, page)
		if err != nil {
			return nil, fmt.Errorf("reading template %s: %w", page, err)
		}

		tmpl := template.New(page).Funcs(FuncMap())
		tmpl, err = tmpl.Parse(string(layoutBytes))
		if err != nil {
			return nil, fmt.Errorf("parsing layout for %s: %w", page, err)
		}
		tmpl, err = tmpl.Parse(string(pageBytes))
		if err != nil {
			return nil, fmt.Errorf("parsing template %s: %w", page, err)
		}

		ts.templates[page] = tmpl
	}

	return ts, nil
}

// Render renders a template with the given data and a 200 status.
func (ts *Templates) Render(w http.ResponseWriter, name string, data any) {
	ts.RenderStatus(w, http.StatusOK, name, data)
}

// RenderStatus renders a template with the given status code.
func (ts *Templates) RenderStatus(w http.ResponseWriter, status int, name string, data any) {
	tmpl, ok := ts.templates[name]
	if !ok {
		http.Error(w, "template not found", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := tmpl.ExecuteTemplate(w, "layout", data); err != nil {
		slog.Error("failed to render template", "template", name, "error", err)
	}
}

// PageData is the base data passed to all templates.
type PageData struct {
	Title string
	// Public pages hide the navigation to the owner's inventory.
	Public bool
	Error  string
}

// Server holds all dependencies for page handlers.
type Server struct {
	Service   *service.Service
	Templates *Templates
	BaseURL   string
}
