package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/batchbinder/content-service/internal/models"
	"github.com/batchbinder/content-service/internal/repositories"
	"github.com/batchbinder/content-service/internal/services"
	"github.com/batchbinder/content-service/internal/utils"
	"github.com/batchbinder/content-service/internal/validator"
)

type ContentHandler struct {
	BaseHandler
	service services.ContentService
}

func NewContentHandler(service services.ContentService, logger utils.Logger) *ContentHandler {
	return &ContentHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// List returns content records matching the query filters
// @Summary List content
// @Description List content records, newest first, optionally filtered
// @Tags content
// @Produce json
// @Param contentType query string false "Filter by content type"
// @Param department query string false "Filter by department"
// @Param semester query string false "Filter by semester"
// @Param subject query string false "Filter by subject"
// @Success 200 {object} SuccessResponse
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /api/content [get]
func (h *ContentHandler) List(c *gin.Context) {
	h.LogRequest(c, "Listing content")

	filter := repositories.ContentFilter{
		ContentType: c.Query("contentType"),
		Department:  c.Query("department"),
		Semester:    c.Query("semester"),
		Subject:     c.Query("subject"),
	}

	contents, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	if contents == nil {
		contents = []models.Content{}
	}
	c.JSON(http.StatusOK, SuccessResponse{Success: true, Data: contents})
}

// GetByID returns one content record
// @Summary Get content by id
// @Tags content
// @Produce json
// @Param id path string true "Content ID"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse "Content not found"
// @Router /api/content/{id} [get]
func (h *ContentHandler) GetByID(c *gin.Context) {
	h.LogRequest(c, "Getting content")

	content, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Success: true, Data: content})
}

// Create stores a new content record with an optional file upload
// @Summary Create content
// @Description Create a content record from a multipart form, admin only
// @Tags content
// @Accept mpfd
// @Produce json
// @Success 201 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse "Validation failure"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Router /api/content [post]
func (h *ContentHandler) Create(c *gin.Context) {
	h.LogRequest(c, "Creating content")

	var req validator.ContentRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request data"})
		return
	}

	// The file part is optional; exclusive content may be metadata only
	file, err := c.FormFile("file")
	if err != nil {
		file = nil
	}

	content, err := h.service.Create(c.Request.Context(), &req, file)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, SuccessResponse{Success: true, Data: content})
}

// Update replaces the editable fields of a content record
// @Summary Update content
// @Tags content
// @Accept json
// @Produce json
// @Param id path string true "Content ID"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse "Validation failure"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Content not found"
// @Router /api/content/{id} [put]
func (h *ContentHandler) Update(c *gin.Context) {
	h.LogRequest(c, "Updating content")

	var req validator.ContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request data"})
		return
	}

	content, err := h.service.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Success: true, Data: content})
}

// Delete removes a content record and its stored file
// @Summary Delete content
// @Tags content
// @Produce json
// @Param id path string true "Content ID"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Content not found"
// @Router /api/content/{id} [delete]
func (h *ContentHandler) Delete(c *gin.Context) {
	h.LogRequest(c, "Deleting content")

	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Content deleted successfully",
	})
}
