package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/batchbinder/content-service/internal/auth"
	"github.com/batchbinder/content-service/internal/cache"
	"github.com/batchbinder/content-service/internal/events"
	"github.com/batchbinder/content-service/internal/repositories"
	"github.com/batchbinder/content-service/internal/storage"
	"github.com/batchbinder/content-service/internal/validator"
)

// serviceManager owns the service instances and their shared dependencies.
type serviceManager struct {
	repo         repositories.Repository
	tokens       *auth.TokenService
	files        *storage.FileStore
	publisher    events.EventPublisher
	cacheManager *cache.CacheManager
	logger       *slog.Logger
	validator    *validator.Validator

	authService    AuthService
	contentService ContentService
	statsService   StatsService
	exportService  ExportService

	initialized bool
	shutdown    bool
	mu          sync.RWMutex
}

// NewServiceManager creates a service manager with all dependencies.
func NewServiceManager(
	repo repositories.Repository,
	tokens *auth.TokenService,
	files *storage.FileStore,
	publisher events.EventPublisher,
	cacheManager *cache.CacheManager,
	logger *slog.Logger,
	validator *validator.Validator,
) ServiceManager {
	return &serviceManager{
		repo:         repo,
		tokens:       tokens,
		files:        files,
		publisher:    publisher,
		cacheManager: cacheManager,
		logger:       logger,
		validator:    validator,
	}
}

// Initialize builds the service instances. Must run once before any
// accessor is used.
func (sm *serviceManager) Initialize(ctx context.Context) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return fmt.Errorf("service manager already initialized")
	}

	if err := sm.repo.Ping(ctx); err != nil {
		return fmt.Errorf("database not reachable: %w", err)
	}

	sm.authService = NewAuthService(sm.repo, sm.tokens, sm.logger, sm.validator)
	sm.contentService = NewContentService(sm.repo, sm.files, sm.publisher, sm.logger, sm.validator)
	sm.statsService = NewStatsService(sm.repo, sm.cacheManager.Stats, sm.logger)
	sm.exportService = NewExportService(sm.repo, sm.logger)

	sm.initialized = true
	sm.logger.Info("services initialized")
	return nil
}

// Shutdown releases resources owned by the services.
func (sm *serviceManager) Shutdown(ctx context.Context) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.shutdown {
		return nil
	}
	sm.shutdown = true

	if sm.publisher != nil {
		if err := sm.publisher.Close(); err != nil {
			return fmt.Errorf("failed to close event publisher: %w", err)
		}
	}

	sm.logger.Info("services shut down")
	return nil
}

func (sm *serviceManager) Auth() AuthService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.authService
}

func (sm *serviceManager) Content() ContentService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.contentService
}

func (sm *serviceManager) Stats() StatsService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.statsService
}

func (sm *serviceManager) Export() ExportService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.exportService
}
