package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/srs-vsa/analytics-backend/internal/analytics"
	"github.com/srs-vsa/analytics-backend/internal/db"
	"github.com/srs-vsa/analytics-backend/internal/models"
)

type Handler struct {
	Service *analytics.Service
	Store   *db.Store
	Logger  zerolog.Logger
}

func writeError(c *gin.Context, status int, code, msg string, details interface{}) {
	body := gin.H{
		"error": gin.H{
			"code":    code,
			"message": msg,
		},
	}
	if details != nil {
		body["error"].(gin.H)["details"] = details
	}
	c.JSON(status, body)
}

// writeMapped translates the typed error taxonomy onto HTTP statuses.
// Validation failures are client errors; connection/timeout failures are
// retryable 503s; classifier outages are upstream 502s.
func (h *Handler) writeMapped(c *gin.Context, err error) {
	var verr *models.ValidationError
	if errors.As(err, &verr) {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", verr.Message, gin.H{
			"kind":  verr.Kind,
			"field": verr.Field,
		})
		return
	}

	var derr *models.DataAccessError
	if errors.As(err, &derr) {
		status := http.StatusInternalServerError
		if derr.Kind == models.DataAccessTimeout || derr.Kind == models.DataAccessConnection {
			status = http.StatusServiceUnavailable
		}
		h.Logger.Error().Err(err).Str("kind", derr.Kind).Str("op", derr.Op).Msg("data access error")
		writeError(c, status, "DATA_ACCESS_ERROR", "Failed to read interaction data", gin.H{
			"kind": derr.Kind,
		})
		return
	}

	var cerr *models.ClassificationUnavailableError
	if errors.As(err, &cerr) {
		h.Logger.Error().Err(err).Str("taxonomy", cerr.Taxonomy).Msg("classification unavailable")
		writeError(c, http.StatusBadGateway, "CLASSIFICATION_UNAVAILABLE", "Text classification is currently unavailable", gin.H{
			"taxonomy": cerr.Taxonomy,
		})
		return
	}

	h.Logger.Error().Err(err).Msg("unhandled error")
	writeError(c, http.StatusInternalServerError, "INTERNAL", "Internal server error", nil)
}

// bindFilters reads the canonical filter fields off the query string.
func bindFilters(c *gin.Context) (models.Filters, error) {
	return models.ParseFilters(models.RawFilters{
		Start:       c.Query("start_date"),
		End:         c.Query("end_date"),
		Product:     c.Query("product"),
		Environment: c.Query("environment"),
		UserID:      c.Query("user_id"),
		UserType:    c.Query("user_type"),
	})
}

// Healthz godoc
// @Summary Liveness and database connectivity check
// @Success 200 {object} map[string]string
// @Router /healthz [get]
func (h *Handler) Healthz(c *gin.Context) {
	if err := h.Store.Ping(c.Request.Context()); err != nil {
		writeError(c, http.StatusServiceUnavailable, "DB_UNAVAILABLE", "Database unreachable", nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
