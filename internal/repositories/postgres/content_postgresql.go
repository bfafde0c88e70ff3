package postgres

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/batchbinder/content-service/internal/cache"
	"github.com/batchbinder/content-service/internal/models"
	"github.com/batchbinder/content-service/internal/repositories"
)

type ContentPostgreSQL struct {
	db           *gorm.DB
	cacheManager *cache.CacheManager
}

func NewContentPostgreSQL(db *gorm.DB, redisClient *redis.Client) repositories.ContentRepository {
	return &ContentPostgreSQL{
		db:           db,
		cacheManager: cache.NewCacheManager(redisClient),
	}
}

// List returns content matching the filter, newest created first, with a
// short-lived cache in front of the query.
func (c *ContentPostgreSQL) List(ctx context.Context, filter repositories.ContentFilter) ([]models.Content, error) {
	cacheKey := fmt.Sprintf("list:%s:%s:%s:%s", filter.ContentType, filter.Department, filter.Semester, filter.Subject)

	var contents []models.Content
	err := c.cacheManager.Content.CacheOrExecute(ctx, cacheKey, &contents, cache.ContentCacheConfig.TTL, func() (interface{}, error) {
		query := c.db.WithContext(ctx).Model(&models.Content{})
		if filter.ContentType != "" {
			query = query.Where("content_type = ?", filter.ContentType)
		}
		if filter.Department != "" {
			query = query.Where("department = ?", filter.Department)
		}
		if filter.Semester != "" {
			query = query.Where("semester = ?", filter.Semester)
		}
		if filter.Subject != "" {
			query = query.Where("subject = ?", filter.Subject)
		}

		var rows []models.Content
		if err := query.Order("created_at DESC").Find(&rows).Error; err != nil {
			return nil, fmt.Errorf("failed to list content: %w", err)
		}
		return rows, nil
	})
	if err != nil {
		return nil, err
	}

	return contents, nil
}

// GetByID resolves one record; malformed and unknown ids both come back as
// ErrNotFound.
func (c *ContentPostgreSQL) GetByID(ctx context.Context, id string) (*models.Content, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, repositories.ErrNotFound
	}

	cacheKey := "id:" + id
	var content models.Content

	err := c.cacheManager.Content.CacheOrExecute(ctx, cacheKey, &content, cache.ContentCacheConfig.TTL, func() (interface{}, error) {
		var row models.Content
		if err := c.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
			return nil, err
		}
		return &row, nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repositories.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get content: %w", err)
	}

	return &content, nil
}

// Create inserts a record, stamping timestamps and the download counter
// server-side.
func (c *ContentPostgreSQL) Create(ctx context.Context, content *models.Content) error {
	now := time.Now()
	content.CreatedAt = now
	content.UpdatedAt = now
	content.Downloads = 0

	if err := c.db.WithContext(ctx).Create(content).Error; err != nil {
		return fmt.Errorf("failed to create content: %w", err)
	}

	cache.SafeInvalidatePattern(ctx, c.cacheManager.Content, "list:*")
	cache.SafeInvalidatePattern(ctx, c.cacheManager.Stats, "*")
	return nil
}

// Update applies only the supplied columns and re-stamps updated_at. A write
// that touches zero rows reports the record absent.
func (c *ContentPostgreSQL) Update(ctx context.Context, id string, fields map[string]interface{}) (*models.Content, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, repositories.ErrNotFound
	}

	fields["updated_at"] = time.Now()

	result := c.db.WithContext(ctx).Model(&models.Content{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to update content: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, repositories.ErrNotFound
	}

	cache.InvalidateContentCache(ctx, c.cacheManager, id)
	return c.GetByID(ctx, id)
}

// Delete removes the database row and then the backing file. The two steps
// are not transactional; a crash in between leaves an orphaned file, never a
// dangling row.
func (c *ContentPostgreSQL) Delete(ctx context.Context, id string) error {
	content, err := c.GetByID(ctx, id)
	if err != nil {
		return err
	}

	result := c.db.WithContext(ctx).Delete(&models.Content{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete content: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return repositories.ErrNotFound
	}

	if content.FilePath != "" {
		if err := os.Remove(content.FilePath); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("record deleted but file removal failed: %w", err)
		}
	}

	cache.InvalidateContentCache(ctx, c.cacheManager, id)
	return nil
}

// IncrementDownloads bumps the counter by one in a single atomic update.
func (c *ContentPostgreSQL) IncrementDownloads(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return repositories.ErrNotFound
	}

	result := c.db.WithContext(ctx).Model(&models.Content{}).Where("id = ?", id).
		UpdateColumn("downloads", gorm.Expr("downloads + ?", 1))
	if result.Error != nil {
		return fmt.Errorf("failed to increment downloads: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return repositories.ErrNotFound
	}

	cache.InvalidateContentCache(ctx, c.cacheManager, id)
	return nil
}
