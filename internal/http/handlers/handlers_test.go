package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/srs-vsa/analytics-backend/internal/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type errorEnvelope struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) errorEnvelope {
	t.Helper()
	var env errorEnvelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("invalid error body %q: %v", w.Body.String(), err)
	}
	return env
}

func TestAnalyticsEndpointRejectsBadFilters(t *testing.T) {
	h := &Handler{Logger: zerolog.Nop()}
	r := gin.New()
	r.GET("/api/analytics/session-metrics", h.SessionMetrics)

	cases := []struct {
		name  string
		query string
	}{
		{"missing everything", ""},
		{"missing product", "start_date=2025-01-01&end_date=2025-01-31"},
		{"bad product", "start_date=2025-01-01&end_date=2025-01-31&product=garden"},
		{"end before start", "start_date=2025-02-01&end_date=2025-01-01&product=pool"},
		{"bad user type", "start_date=2025-01-01&end_date=2025-01-31&product=pool&user_type=robot"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/api/analytics/session-metrics?"+tc.query, nil)
			r.ServeHTTP(w, req)

			if w.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400; body %s", w.Code, w.Body.String())
			}
			if env := decodeError(t, w); env.Error.Code != "VALIDATION_ERROR" {
				t.Errorf("code = %q", env.Error.Code)
			}
		})
	}
}

func TestWriteMappedStatuses(t *testing.T) {
	h := &Handler{Logger: zerolog.Nop()}

	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{
			"validation",
			&models.ValidationError{Kind: models.ValidationInvalidEnum, Field: "product", Message: "bad"},
			http.StatusBadRequest, "VALIDATION_ERROR",
		},
		{
			"db timeout",
			&models.DataAccessError{Kind: models.DataAccessTimeout, Op: "engagement", Err: errors.New("canceled")},
			http.StatusServiceUnavailable, "DATA_ACCESS_ERROR",
		},
		{
			"db connection",
			&models.DataAccessError{Kind: models.DataAccessConnection, Op: "engagement", Err: errors.New("refused")},
			http.StatusServiceUnavailable, "DATA_ACCESS_ERROR",
		},
		{
			"db schema",
			&models.DataAccessError{Kind: models.DataAccessSchema, Op: "engagement", Err: errors.New("column missing")},
			http.StatusInternalServerError, "DATA_ACCESS_ERROR",
		},
		{
			"classifier down",
			&models.ClassificationUnavailableError{Taxonomy: "pain_point", Err: errors.New("model down")},
			http.StatusBadGateway, "CLASSIFICATION_UNAVAILABLE",
		},
		{
			"unknown",
			errors.New("boom"),
			http.StatusInternalServerError, "INTERNAL",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			h.writeMapped(c, tc.err)

			if w.Code != tc.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tc.wantStatus)
			}
			if env := decodeError(t, w); env.Error.Code != tc.wantCode {
				t.Errorf("code = %q, want %q", env.Error.Code, tc.wantCode)
			}
		})
	}
}

func TestBindFiltersDefaults(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/?start_date=2025-01-01&end_date=2025-01-31&product=landscape", nil)

	f, err := bindFilters(c)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.Product != models.ProductLandscape {
		t.Errorf("product = %q", f.Product)
	}
	if f.UserType != models.UserTypeAll {
		t.Errorf("user_type default = %q", f.UserType)
	}
}
