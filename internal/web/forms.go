package web

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/erazemk/shramba/internal/service"
)

// formID parses an optional numeric form field. An empty field means none.
func formID(r *http.Request, field string) (*int64, error) {
	v := strings.TrimSpace(r.FormValue(field))
	if v == "" {
		return nil, nil
	}
	id, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return nil, &service.ValidationError{Field: field, Message: "must be a number"}
	}
	return &id, nil
}

// formDate parses an optional YYYY-MM-DD form field as a UTC date.
func formDate(r *http.Request, field string) (*time.Time, error) {
	v := strings.TrimSpace(r.FormValue(field))
	if v == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation(time.DateOnly, v, time.UTC)
	if err != nil {
		return nil, &service.ValidationError{Field: field, Message: "must be a date (YYYY-MM-DD)"}
	}
	return &t, nil
}

// optional turns a parsed form value into a patch field that always
// overwrites, with nil clearing it.
func optional[T any](v *T) service.Optional[T] {
	if v == nil {
		return service.Null[T]()
	}
	return service.Some(*v)
}

// submitFailed sends input errors back to target as a message and answers
// anything else with a 500.
func (s *Server) submitFailed(w http.ResponseWriter, r *http.Request, target string, err error) {
	var ve *service.ValidationError
	if errors.As(err, &ve) || errors.Is(err, service.ErrNotFound) {
		http.Redirect(w, r, target+"?error="+url.QueryEscape(err.Error()), http.StatusSeeOther)
		return
	}
	slog.Error("form submission failed", "path", r.URL.Path, "error", err)
	http.Error(w, "internal error", http.StatusInternalServerError)
}

// itemForm holds the fields of the item create and edit forms.
type itemForm struct {
	name            string
	description     string
	barcode         string
	value           string
	notes           string
	purchaseDate    *time.Time
	warrantyEndDate *time.Time
	locationID      *int64
}

func parseItemForm(r *http.Request) (itemForm, error) {
	f := itemForm{
		name:        r.FormValue("name"),
		description: r.FormValue("description"),
		barcode:     r.FormValue("barcode"),
		value:       r.FormValue("value"),
		notes:       r.FormValue("notes"),
	}
	var err error
	if f.locationID, err = formID(r, "location_id"); err != nil {
		return itemForm{}, err
	}
	if f.purchaseDate, err = formDate(r, "purchase_date"); err != nil {
		return itemForm{}, err
	}
	if f.warrantyEndDate, err = formDate(r, "warranty_end_date"); err != nil {
		return itemForm{}, err
	}
	return f, nil
}
