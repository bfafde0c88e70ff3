package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/batchbinder/content-service/internal/auth"
	"github.com/batchbinder/content-service/internal/repositories"
	"github.com/batchbinder/content-service/internal/services"
	"github.com/batchbinder/content-service/internal/utils"
)

type HandlerManager struct {
	authHandler     *AuthHandler
	contentHandler  *ContentHandler
	downloadHandler *DownloadHandler
	statsHandler    *StatsHandler
	exportHandler   *ExportHandler
	authMiddleware  *AdminAuthMiddleware
}

func NewHandlerManager(
	serviceManager services.ServiceManager,
	tokens *auth.TokenService,
	adminRepo repositories.AdminRepository,
	logger utils.Logger,
) *HandlerManager {
	return &HandlerManager{
		authHandler:     NewAuthHandler(serviceManager.Auth(), logger),
		contentHandler:  NewContentHandler(serviceManager.Content(), logger),
		downloadHandler: NewDownloadHandler(serviceManager.Content(), logger),
		statsHandler:    NewStatsHandler(serviceManager.Stats(), logger),
		exportHandler:   NewExportHandler(serviceManager.Export(), logger),
		authMiddleware:  NewAdminAuthMiddleware(tokens, adminRepo, logger),
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	requireAdmin := hm.authMiddleware.RequireAdmin()

	api := router.Group("/api")
	{
		api.POST("/login", hm.authHandler.Login)

		// Content routes: reads are public, writes are admin only
		content := api.Group("/content")
		{
			content.GET("", hm.contentHandler.List)
			content.GET("/:id", hm.contentHandler.GetByID)
			content.POST("", requireAdmin, hm.contentHandler.Create)
			content.PUT("/:id", requireAdmin, hm.contentHandler.Update)
			content.DELETE("/:id", requireAdmin, hm.contentHandler.Delete)

			// Writes without an id are client errors, not unrouted verbs
			content.PUT("", requireAdmin, missingContentID("update"))
			content.DELETE("", requireAdmin, missingContentID("delete"))
		}

		// Download routes: public, both the path and query id forms
		api.GET("/download", hm.downloadHandler.Download)
		api.GET("/download/:id", hm.downloadHandler.Download)

		// Admin console routes
		api.GET("/stats", requireAdmin, hm.statsHandler.GetStats)
		api.GET("/export/content", requireAdmin, hm.exportHandler.ExportContent)
	}

	// Unrouted verbs on known paths answer 405 rather than gin's default 404
	router.HandleMethodNotAllowed = true
	router.NoMethod(methodNotAllowed)
	router.NoRoute(func(c *gin.Context) {
		c.JSON(404, ErrorResponse{Error: "Not found"})
	})

	// Health check endpoint
	router.GET("/health", healthCheck)
}

func missingContentID(op string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(400, ErrorResponse{Error: "Content ID is required for " + op})
	}
}

func healthCheck(c *gin.Context) {
	c.JSON(200, gin.H{
		"status":  "healthy",
		"service": "content-service",
	})
}
