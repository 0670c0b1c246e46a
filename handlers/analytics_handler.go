package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/moody/moodyserver/analytics"
)

// AnalyticsHandler exposes the in-process counters.
type AnalyticsHandler struct {
	tracker *analytics.Tracker
}

func NewAnalyticsHandler(tracker *analytics.Tracker) *AnalyticsHandler {
	return &AnalyticsHandler{tracker: tracker}
}

func (h *AnalyticsHandler) GetMetrics(c *gin.Context) {
	c.JSON(http.StatusOK, h.tracker.Snapshot())
}

func (h *AnalyticsHandler) GetSafetyMetrics(c *gin.Context) {
	c.JSON(http.StatusOK, h.tracker.SafetySnapshot())
}

func (h *AnalyticsHandler) GetCulturalMetrics(c *gin.Context) {
	c.JSON(http.StatusOK, h.tracker.Snapshot().Cultural)
}

func (h *AnalyticsHandler) GetTechnicalMetrics(c *gin.Context) {
	c.JSON(http.StatusOK, h.tracker.TechnicalSnapshot())
}

type trackRequest struct {
	EventType string `json:"eventType" binding:"required"`
}

// TrackEvent records a client-side event. Only the event type is ever
// read; event payloads are never accepted.
func (h *AnalyticsHandler) TrackEvent(c *gin.Context) {
	var req trackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "eventType is required"})
		return
	}

	switch req.EventType {
	case "user_engagement", "safety_incident", "ai_service_usage", "cultural_feature":
		h.tracker.Event()
	default:
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid event type"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Event tracked successfully"})
}
