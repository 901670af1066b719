package models

import (
	"errors"
	"testing"
	"time"
)

func TestParseFiltersValid(t *testing.T) {
	f, err := ParseFilters(RawFilters{
		Start:       "2025-01-01",
		End:         "2025-01-31T23:59:59",
		Product:     "pool",
		Environment: "prod",
		UserID:      "u-42",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.Product != ProductPool {
		t.Errorf("product = %q", f.Product)
	}
	if f.UserType != UserTypeAll {
		t.Errorf("user_type default = %q, want all", f.UserType)
	}
	if f.Start != time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC) {
		t.Errorf("start = %v", f.Start)
	}
}

func TestParseFiltersRFC3339(t *testing.T) {
	_, err := ParseFilters(RawFilters{
		Start:   "2025-03-01T00:00:00Z",
		End:     "2025-03-02T00:00:00Z",
		Product: "landscape",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestParseFiltersErrors(t *testing.T) {
	cases := []struct {
		name     string
		raw      RawFilters
		wantKind string
	}{
		{
			name:     "missing start",
			raw:      RawFilters{End: "2025-01-31", Product: "pool"},
			wantKind: ValidationMissingField,
		},
		{
			name:     "missing end",
			raw:      RawFilters{Start: "2025-01-01", Product: "pool"},
			wantKind: ValidationMissingField,
		},
		{
			name:     "missing product",
			raw:      RawFilters{Start: "2025-01-01", End: "2025-01-31"},
			wantKind: ValidationMissingField,
		},
		{
			name:     "unknown product",
			raw:      RawFilters{Start: "2025-01-01", End: "2025-01-31", Product: "garden"},
			wantKind: ValidationInvalidEnum,
		},
		{
			name:     "unknown user type",
			raw:      RawFilters{Start: "2025-01-01", End: "2025-01-31", Product: "pool", UserType: "robot"},
			wantKind: ValidationInvalidEnum,
		},
		{
			name:     "end before start",
			raw:      RawFilters{Start: "2025-02-01", End: "2025-01-01", Product: "pool"},
			wantKind: ValidationInvalidRange,
		},
		{
			name:     "garbage timestamp",
			raw:      RawFilters{Start: "yesterday", End: "2025-01-31", Product: "pool"},
			wantKind: ValidationInvalidRange,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseFilters(tc.raw)
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("want ValidationError, got %v", err)
			}
			if verr.Kind != tc.wantKind {
				t.Errorf("kind = %q, want %q", verr.Kind, tc.wantKind)
			}
		})
	}
}

func TestFiltersEqualStartEnd(t *testing.T) {
	_, err := ParseFilters(RawFilters{Start: "2025-01-01", End: "2025-01-01", Product: "pool"})
	if err != nil {
		t.Fatalf("equal start/end should be valid, got %v", err)
	}
}

func TestFiltersApplied(t *testing.T) {
	f, err := ParseFilters(RawFilters{
		Start:    "2025-01-01",
		End:      "2025-01-31",
		Product:  "landscape",
		UserType: "internal",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	a := f.Applied()
	if a.Product != "landscape" || a.UserType != "internal" {
		t.Errorf("applied echo = %+v", a)
	}
	if a.StartDate == "" || a.EndDate == "" {
		t.Errorf("applied echo missing range: %+v", a)
	}
}
