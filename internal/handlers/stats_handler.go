package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/batchbinder/content-service/internal/services"
	"github.com/batchbinder/content-service/internal/utils"
)

type StatsHandler struct {
	BaseHandler
	service services.StatsService
}

func NewStatsHandler(service services.StatsService, logger utils.Logger) *StatsHandler {
	return &StatsHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// GetStats returns aggregate content statistics for the admin console
// @Summary Get content statistics
// @Description Totals, per-type and per-department counts, and recent uploads
// @Tags stats
// @Produce json
// @Success 200 {object} SuccessResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /api/stats [get]
func (h *StatsHandler) GetStats(c *gin.Context) {
	h.LogRequest(c, "Getting content stats")

	stats, err := h.service.GetContentStats(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Success: true, Data: stats})
}
