package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/batchbinder/content-service/internal/services"
	"github.com/batchbinder/content-service/internal/storage"
	"github.com/batchbinder/content-service/internal/utils"
	"github.com/batchbinder/content-service/internal/validator"
)

// ErrorResponse is the error envelope every endpoint uses.
type ErrorResponse struct {
	Error string `json:"error"`
}

// SuccessResponse wraps data the way the read endpoints return it.
type SuccessResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
}

// BaseHandler carries shared behavior for all HTTP handlers.
type BaseHandler struct {
	logger utils.Logger
}

func NewBaseHandler(logger utils.Logger) BaseHandler {
	return BaseHandler{logger: logger}
}

// LogRequest logs the handler entry point and returns the request-scoped
// logger for further use.
func (h *BaseHandler) LogRequest(c *gin.Context, msg string) utils.Logger {
	logger := utils.LoggerFromContext(c, h.logger)
	logger.Debug(msg, "method", c.Request.Method, "path", c.Request.URL.Path)
	return logger
}

// handleServiceError maps service errors to HTTP responses. Anything not in
// the client-error taxonomy is logged and reported as a generic 500 so
// internals never leak.
func (h *BaseHandler) handleServiceError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	switch {
	case errors.As(err, &verrs):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: verrs.Error()})
	case storage.IsRejectionError(err):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.Is(err, services.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: err.Error()})
	case errors.Is(err, services.ErrContentNotFound), errors.Is(err, services.ErrFileNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
	default:
		utils.LoggerFromContext(c, h.logger).Error("request failed", "error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Server error"})
	}
}

// methodNotAllowed answers requests whose verb has no route.
func methodNotAllowed(c *gin.Context) {
	c.JSON(http.StatusMethodNotAllowed, ErrorResponse{Error: "Method not allowed"})
}
