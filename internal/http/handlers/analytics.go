package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/srs-vsa/analytics-backend/internal/models"
)

// serve binds filters, runs one KPI computation, and writes either the
// typed result or the mapped error. Every analytics endpoint follows
// this shape.
func (h *Handler) serve(c *gin.Context, fn func(context.Context, models.Filters) (interface{}, error)) {
	f, err := bindFilters(c)
	if err != nil {
		h.writeMapped(c, err)
		return
	}
	out, err := fn(c.Request.Context(), f)
	if err != nil {
		h.writeMapped(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// SessionMetrics godoc
// @Summary Session counts, feedback splits, and duration averages
// @Param start_date query string true "Range start (inclusive)"
// @Param end_date query string true "Range end (inclusive)"
// @Param product query string true "pool or landscape"
// @Param environment query string false "Deployment environment"
// @Param user_id query string false "Single user"
// @Param user_type query string false "all, internal or external"
// @Success 200 {object} models.SessionMetrics
// @Router /api/analytics/session-metrics [get]
func (h *Handler) SessionMetrics(c *gin.Context) {
	h.serve(c, func(ctx context.Context, f models.Filters) (interface{}, error) {
		return h.Service.SessionMetrics(ctx, f)
	})
}

// VolumeTrends godoc
// @Summary Daily session volume with peak and lowest days
// @Success 200 {object} models.VolumeTrends
// @Router /api/analytics/volume-trends [get]
func (h *Handler) VolumeTrends(c *gin.Context) {
	h.serve(c, func(ctx context.Context, f models.Filters) (interface{}, error) {
		return h.Service.VolumeTrends(ctx, f)
	})
}

// UserEngagement godoc
// @Summary Unique users, sessions, and sessions per user
// @Success 200 {object} models.UserEngagement
// @Router /api/analytics/user-engagement [get]
func (h *Handler) UserEngagement(c *gin.Context) {
	h.serve(c, func(ctx context.Context, f models.Filters) (interface{}, error) {
		return h.Service.UserEngagement(ctx, f)
	})
}

// UserRetention godoc
// @Summary Returning versus one-time user split
// @Success 200 {object} models.UserRetention
// @Router /api/analytics/user-retention [get]
func (h *Handler) UserRetention(c *gin.Context) {
	h.serve(c, func(ctx context.Context, f models.Filters) (interface{}, error) {
		return h.Service.UserRetention(ctx, f)
	})
}

// UserSegmentation godoc
// @Summary Power/regular/casual/one-time user buckets
// @Success 200 {object} models.UserSegmentation
// @Router /api/analytics/user-segmentation [get]
func (h *Handler) UserSegmentation(c *gin.Context) {
	h.serve(c, func(ctx context.Context, f models.Filters) (interface{}, error) {
		return h.Service.UserSegmentation(ctx, f)
	})
}

// ReturningUserBehavior godoc
// @Summary Activity profile of returning users
// @Success 200 {object} models.ReturningUserBehavior
// @Router /api/analytics/returning-user-behavior [get]
func (h *Handler) ReturningUserBehavior(c *gin.Context) {
	h.serve(c, func(ctx context.Context, f models.Filters) (interface{}, error) {
		return h.Service.ReturningUserBehavior(ctx, f)
	})
}

// AgentToolUsage godoc
// @Summary Per-tool session counts from agent traces
// @Success 200 {object} models.AgentToolUsage
// @Router /api/analytics/agent-tool-usage [get]
func (h *Handler) AgentToolUsage(c *gin.Context) {
	h.serve(c, func(ctx context.Context, f models.Filters) (interface{}, error) {
		return h.Service.AgentToolUsage(ctx, f)
	})
}

// TimePatterns godoc
// @Summary Sessions by hour of day and day of week
// @Success 200 {object} models.TimePatterns
// @Router /api/analytics/time-patterns [get]
func (h *Handler) TimePatterns(c *gin.Context) {
	h.serve(c, func(ctx context.Context, f models.Filters) (interface{}, error) {
		return h.Service.TimePatterns(ctx, f)
	})
}

// ConversationLength godoc
// @Summary Message-per-session averages and length distribution
// @Success 200 {object} models.ConversationLength
// @Router /api/analytics/conversation-length [get]
func (h *Handler) ConversationLength(c *gin.Context) {
	h.serve(c, func(ctx context.Context, f models.Filters) (interface{}, error) {
		return h.Service.ConversationLength(ctx, f)
	})
}

// PlatformAnalytics godoc
// @Summary Mobile versus web session split
// @Success 200 {object} models.PlatformAnalytics
// @Router /api/analytics/platform-analytics [get]
func (h *Handler) PlatformAnalytics(c *gin.Context) {
	h.serve(c, func(ctx context.Context, f models.Filters) (interface{}, error) {
		return h.Service.PlatformAnalytics(ctx, f)
	})
}

// PainPointClustering godoc
// @Summary User queries bucketed into the fixed pain-point clusters
// @Success 200 {object} models.PainPointClusters
// @Router /api/analytics/pain-point-clustering [get]
func (h *Handler) PainPointClustering(c *gin.Context) {
	h.serve(c, func(ctx context.Context, f models.Filters) (interface{}, error) {
		return h.Service.PainPointClustering(ctx, f)
	})
}

// QueryCategories godoc
// @Summary Per-session intent categories
// @Success 200 {object} models.QueryCategories
// @Router /api/analytics/query-categories [get]
func (h *Handler) QueryCategories(c *gin.Context) {
	h.serve(c, func(ctx context.Context, f models.Filters) (interface{}, error) {
		return h.Service.QueryCategories(ctx, f)
	})
}

// Sentiment godoc
// @Summary Sentiment scores, bands, and extreme examples
// @Success 200 {object} models.SentimentAnalysis
// @Router /api/analytics/sentiment [get]
func (h *Handler) Sentiment(c *gin.Context) {
	h.serve(c, func(ctx context.Context, f models.Filters) (interface{}, error) {
		return h.Service.Sentiment(ctx, f)
	})
}

// Dashboard godoc
// @Summary Fast KPI families computed concurrently
// @Success 200 {object} models.Dashboard
// @Router /api/analytics/dashboard [get]
func (h *Handler) Dashboard(c *gin.Context) {
	f, err := bindFilters(c)
	if err != nil {
		h.writeMapped(c, err)
		return
	}
	c.JSON(http.StatusOK, h.Service.Dashboard(c.Request.Context(), f))
}
