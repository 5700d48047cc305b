package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/achoumais/achoumais/internal/middleware"
	"github.com/achoumais/achoumais/internal/service"
	"github.com/achoumais/achoumais/internal/utils"
)

// TrackHandler receives navigator.sendBeacon payloads from the delegated
// click listener on the catalog page.
type TrackHandler struct {
	trackingService *service.TrackingService
	limiter         *middleware.IPRateLimiter
}

// NewTrackHandler constructs a TrackHandler.
func NewTrackHandler(trackingService *service.TrackingService, limiter *middleware.IPRateLimiter) *TrackHandler {
	return &TrackHandler{trackingService: trackingService, limiter: limiter}
}

// PostTrack handles POST /v1/track. Accepted beacons get a 202; anything
// outside the click-event vocabulary is rejected. Beacons are best-effort
// by nature, so the page never reads this response.
func (h *TrackHandler) PostTrack(c *gin.Context) {
	if !h.limiter.Allow(c.ClientIP()) {
		utils.Error(c, 429, "RATE_LIMITED", "Too many tracking requests")
		return
	}

	var req struct {
		Name   string            `json:"name" binding:"required"`
		Params map[string]string `json:"params"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
		return
	}

	if !h.trackingService.ReportBeacon(c.Request.Context(), req.Name, req.Params) {
		utils.Error(c, 400, "UNSUPPORTED_EVENT", "Event name is not accepted")
		return
	}

	utils.Success(c, 202, "Event accepted", nil)
}
