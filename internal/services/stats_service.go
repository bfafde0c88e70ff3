package services

import (
	"context"
	"log/slog"

	"github.com/batchbinder/content-service/internal/cache"
	"github.com/batchbinder/content-service/internal/repositories"
)

// recentUploadsLimit caps the "latest uploads" list on the admin console.
const recentUploadsLimit = 10

// statsCacheKey is the single cached aggregate; content writes invalidate
// the whole stats prefix.
const statsCacheKey = "overview"

type statsService struct {
	repo   repositories.Repository
	cache  *cache.CacheHelper
	logger *slog.Logger
}

func NewStatsService(repo repositories.Repository, statsCache *cache.CacheHelper, logger *slog.Logger) StatsService {
	return &statsService{repo: repo, cache: statsCache, logger: logger}
}

// GetContentStats serves the aggregate from the stats cache when possible
// and recomputes it otherwise.
func (s *statsService) GetContentStats(ctx context.Context) (*ContentStats, error) {
	var stats ContentStats
	err := s.cache.CacheOrExecute(ctx, statsCacheKey, &stats, cache.StatsCacheConfig.TTL, func() (interface{}, error) {
		return s.computeStats(ctx)
	})
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

// computeStats aggregates over the whole collection. The collection is
// admin-curated and small, so one pass over the repository's newest-first
// listing is sufficient.
func (s *statsService) computeStats(ctx context.Context) (*ContentStats, error) {
	contents, err := s.repo.Content().List(ctx, repositories.ContentFilter{})
	if err != nil {
		return nil, err
	}

	stats := &ContentStats{
		ByType:        make(map[string]int64),
		ByDepartment:  make(map[string]int64),
		RecentUploads: contents,
	}

	for _, c := range contents {
		stats.TotalContent++
		stats.TotalDownloads += c.Downloads
		stats.ByType[string(c.ContentType)]++
		if c.Department != "" {
			stats.ByDepartment[c.Department]++
		}
	}

	if len(stats.RecentUploads) > recentUploadsLimit {
		stats.RecentUploads = stats.RecentUploads[:recentUploadsLimit]
	}

	return stats, nil
}
