package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/batchbinder/content-service/internal/auth"
	"github.com/batchbinder/content-service/internal/repositories"
	"github.com/batchbinder/content-service/internal/utils"
)

// AdminAuthMiddleware guards the write endpoints with bearer-token
// authentication.
type AdminAuthMiddleware struct {
	tokens *auth.TokenService
	admins repositories.AdminRepository
	logger utils.Logger
}

func NewAdminAuthMiddleware(tokens *auth.TokenService, admins repositories.AdminRepository, logger utils.Logger) *AdminAuthMiddleware {
	return &AdminAuthMiddleware{
		tokens: tokens,
		admins: admins,
		logger: logger,
	}
}

const bearerPrefix = "Bearer "

// RequireAdmin returns a Gin middleware that rejects requests without a
// valid admin token. The admin record is re-checked on every request, so a
// token outlives its account only until the next call.
func (am *AdminAuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		// The credential must match "Bearer <token>"; a bare token or any
		// other scheme counts as no credential at all.
		authHeader := c.GetHeader("Authorization")
		if !strings.HasPrefix(authHeader, bearerPrefix) {
			c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "No token provided"})
			c.Abort()
			return
		}

		token := strings.TrimSpace(strings.TrimPrefix(authHeader, bearerPrefix))
		if token == "" {
			c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "No token provided"})
			c.Abort()
			return
		}

		claims, status := am.tokens.Verify(token)
		if status != auth.TokenValid {
			am.logger.Warn("rejected admin token", "reason", status.String())
			c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid token"})
			c.Abort()
			return
		}

		admin, err := am.admins.GetByEmail(c.Request.Context(), claims.Email)
		if err != nil {
			if repositories.IsNotFoundError(err) {
				c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Admin not found"})
			} else {
				am.logger.Error("admin lookup failed", "error", err)
				c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Server error"})
			}
			c.Abort()
			return
		}

		c.Set("admin_email", admin.Email)
		c.Next()
	}
}

// AdminEmailFromContext returns the authenticated admin's email, if the
// request passed RequireAdmin.
func AdminEmailFromContext(c *gin.Context) (string, bool) {
	v, exists := c.Get("admin_email")
	if !exists {
		return "", false
	}
	email, ok := v.(string)
	return email, ok
}
