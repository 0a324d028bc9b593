package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/erazemk/shramba/internal/model"
	"github.com/erazemk/shramba/internal/service"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their JSON names.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	// money: a non-negative decimal string.
	v.RegisterValidation("money", func(fl validator.FieldLevel) bool {
		d, err := decimal.NewFromString(strings.TrimSpace(fl.Field().String()))
		return err == nil && !d.IsNegative()
	})

	// achievement_type: one of the known rule types.
	v.RegisterValidation("achievement_type", func(fl validator.FieldLevel) bool {
		return model.ValidAchievementType(fl.Field().String())
	})

	return v
}

// validationMessage turns validator errors into a short client message.
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return "invalid request"
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fieldMessage(fe))
	}
	return strings.Join(msgs, "; ")
}

func fieldMessage(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "max":
		return fmt.Sprintf("%s must be at most %s long", field, fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "money":
		return field + " must be a non-negative decimal number"
	case "achievement_type":
		return field + " must be one of items_count, total_value, locations_count"
	}
	return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
}

// jsonDate accepts either a calendar date (2006-01-02) or an RFC 3339
// timestamp. Calendar dates are taken as midnight UTC.
type jsonDate time.Time

func (d *jsonDate) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}
	for _, layout := range []string{time.DateOnly, time.RFC3339Nano} {
		if t, err := time.Parse(layout, s); err == nil {
			*d = jsonDate(t.UTC())
			return nil
		}
	}
	return fmt.Errorf("invalid date %q", s)
}

func (d *jsonDate) time() *time.Time {
	if d == nil {
		return nil
	}
	t := time.Time(*d)
	return &t
}

// optionalDate converts a patch date to the service representation.
func optionalDate(o service.Optional[jsonDate]) service.Optional[time.Time] {
	if !o.Set {
		return service.Optional[time.Time]{}
	}
	return service.Optional[time.Time]{Set: true, Value: o.Value.time()}
}
