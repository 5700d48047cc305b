package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/achoumais/achoumais/internal/service"
	"github.com/achoumais/achoumais/internal/utils"
)

// StatsHandler exposes the first-party event store to the admin surface.
type StatsHandler struct {
	statsService *service.StatsService
}

// NewStatsHandler constructs a StatsHandler.
func NewStatsHandler(statsService *service.StatsService) *StatsHandler {
	return &StatsHandler{statsService: statsService}
}

// GetEvents handles GET /v1/admin/events?limit=.
func (h *StatsHandler) GetEvents(c *gin.Context) {
	limit := 50
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 500 {
			limit = n
		}
	}

	stats, err := h.statsService.Summary(c.Request.Context(), limit)
	if err != nil {
		log.Error().Err(err).Msg("Failed to load event stats")
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to load event stats")
		return
	}

	utils.Success(c, 200, "Event stats retrieved", stats)
}
