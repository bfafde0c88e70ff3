package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/batchbinder/content-service/internal/services"
	"github.com/batchbinder/content-service/internal/utils"
)

type ExportHandler struct {
	BaseHandler
	service services.ExportService
}

func NewExportHandler(service services.ExportService, logger utils.Logger) *ExportHandler {
	return &ExportHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// ExportContent streams the content inventory as an xlsx workbook
// @Summary Export the content inventory
// @Description Download every content record as a spreadsheet, admin only
// @Tags export
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} binary
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /api/export/content [get]
func (h *ExportHandler) ExportContent(c *gin.Context) {
	h.LogRequest(c, "Exporting content inventory")

	filename := fmt.Sprintf("content-%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")

	if err := h.service.ExportContent(c.Request.Context(), c.Writer); err != nil {
		// Headers may already be out; log and report what we still can
		h.handleServiceError(c, err)
		return
	}

	c.Status(http.StatusOK)
}
