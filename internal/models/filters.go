package models

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// Product selects which interaction source a request targets.
type Product string

const (
	ProductPool      Product = "pool"
	ProductLandscape Product = "landscape"
)

// UserType narrows sessions to operator-origin or external-origin users.
type UserType string

const (
	UserTypeAll      UserType = "all"
	UserTypeInternal UserType = "internal"
	UserTypeExternal UserType = "external"
)

// Filters is the canonical filter contract for all analytics operations.
// Every present field must be applied as a SQL predicate; nothing is ever
// filtered after rows are materialized.
type Filters struct {
	Start       time.Time `json:"start" validate:"required"`
	End         time.Time `json:"end" validate:"required"`
	Product     Product   `json:"product" validate:"required,oneof=pool landscape"`
	Environment string    `json:"environment"`
	UserID      string    `json:"user_id"`
	UserType    UserType  `json:"user_type" validate:"omitempty,oneof=all internal external"`
}

// RawFilters carries loosely-typed request parameters before validation.
type RawFilters struct {
	Start       string
	End         string
	Product     string
	Environment string
	UserID      string
	UserType    string
}

var filterValidator = validator.New()

// timestampLayouts accepted for start/end, most specific first.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func parseTimestamp(field, value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, &ValidationError{
			Kind:    ValidationMissingField,
			Field:   field,
			Message: field + " is required",
		}
	}
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, value); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, &ValidationError{
		Kind:    ValidationInvalidRange,
		Field:   field,
		Message: fmt.Sprintf("%s is not a valid timestamp: %q", field, value),
	}
}

// ParseFilters validates raw request parameters and produces an immutable
// filter contract. Pure validation, no I/O.
func ParseFilters(raw RawFilters) (Filters, error) {
	start, err := parseTimestamp("start_date", raw.Start)
	if err != nil {
		return Filters{}, err
	}
	end, err := parseTimestamp("end_date", raw.End)
	if err != nil {
		return Filters{}, err
	}

	userType := UserType(raw.UserType)
	if raw.UserType == "" {
		userType = UserTypeAll
	}

	f := Filters{
		Start:       start,
		End:         end,
		Product:     Product(raw.Product),
		Environment: raw.Environment,
		UserID:      raw.UserID,
		UserType:    userType,
	}
	if err := f.Validate(); err != nil {
		return Filters{}, err
	}
	return f, nil
}

// Validate enforces the closed enumerations and the start/end ordering.
func (f Filters) Validate() error {
	if err := filterValidator.Struct(f); err != nil {
		verrs, ok := err.(validator.ValidationErrors)
		if !ok || len(verrs) == 0 {
			return &ValidationError{Kind: ValidationInvalidEnum, Message: err.Error()}
		}
		first := verrs[0]
		if first.Tag() == "required" {
			return &ValidationError{
				Kind:    ValidationMissingField,
				Field:   first.Field(),
				Message: fmt.Sprintf("%s is required", first.Field()),
			}
		}
		return &ValidationError{
			Kind:    ValidationInvalidEnum,
			Field:   first.Field(),
			Message: fmt.Sprintf("%s has invalid value %q", first.Field(), fmt.Sprint(first.Value())),
		}
	}
	if f.End.Before(f.Start) {
		return &ValidationError{
			Kind:    ValidationInvalidRange,
			Field:   "end_date",
			Message: "end_date must not be before start_date",
		}
	}
	return nil
}

// Applied returns the echo block attached to every analytics response.
func (f Filters) Applied() FiltersApplied {
	return FiltersApplied{
		StartDate:   f.Start.Format(time.RFC3339),
		EndDate:     f.End.Format(time.RFC3339),
		Product:     string(f.Product),
		Environment: f.Environment,
		UserID:      f.UserID,
		UserType:    string(f.UserType),
	}
}
