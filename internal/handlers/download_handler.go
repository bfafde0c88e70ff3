package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/batchbinder/content-service/internal/services"
	"github.com/batchbinder/content-service/internal/utils"
)

type DownloadHandler struct {
	BaseHandler
	service services.ContentService
}

func NewDownloadHandler(service services.ContentService, logger utils.Logger) *DownloadHandler {
	return &DownloadHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// Download streams a stored file and bumps the record's download counter
// @Summary Download a content file
// @Description Stream the file attached to a content record as an attachment
// @Tags download
// @Produce octet-stream
// @Param id path string false "Content ID (path form)"
// @Param id query string false "Content ID (query form)"
// @Success 200 {file} binary
// @Failure 400 {object} ErrorResponse "Missing id"
// @Failure 404 {object} ErrorResponse "Record or file missing"
// @Router /api/download/{id} [get]
func (h *DownloadHandler) Download(c *gin.Context) {
	h.LogRequest(c, "Downloading content file")

	// Both /api/download/{id} and /api/download?id={id} are accepted
	id := c.Param("id")
	if id == "" {
		id = c.Query("id")
	}
	if id == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Content ID is required"})
		return
	}

	info, err := h.service.Download(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", info.Filename))
	c.Header("Content-Type", info.MimeType)
	c.Header("Content-Length", fmt.Sprintf("%d", info.Size))
	c.Header("Cache-Control", "no-cache, must-revalidate")
	c.File(info.Path)
}
