package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/batchbinder/content-service/internal/cache"
)

// nilStatsCache is a degraded helper; reads miss and writes are no-ops, so
// every call recomputes.
func nilStatsCache() *cache.CacheHelper {
	return cache.NewCacheManager(nil).Stats
}

func TestGetContentStats(t *testing.T) {
	f := newContentFixture(t)
	svc := NewStatsService(f.repo, nilStatsCache(), testLogger())

	first, err := f.svc.Create(context.Background(), notesRequest(), nil)
	require.NoError(t, err)

	eceReq := notesRequest()
	eceReq.ContentType = "assignments"
	eceReq.Department = "ECE"
	_, err = f.svc.Create(context.Background(), eceReq, nil)
	require.NoError(t, err)

	_, err = f.svc.Create(context.Background(), exclusiveRequest(), nil)
	require.NoError(t, err)

	require.NoError(t, f.repo.Content().IncrementDownloads(context.Background(), first.ID))
	require.NoError(t, f.repo.Content().IncrementDownloads(context.Background(), first.ID))

	stats, err := svc.GetContentStats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(3), stats.TotalContent)
	assert.Equal(t, int64(2), stats.TotalDownloads)
	assert.Equal(t, int64(1), stats.ByType["notes"])
	assert.Equal(t, int64(1), stats.ByType["assignments"])
	assert.Equal(t, int64(1), stats.ByType["exclusive"])
	assert.Equal(t, int64(1), stats.ByDepartment["CSE"])
	assert.Equal(t, int64(1), stats.ByDepartment["ECE"])
	assert.Len(t, stats.RecentUploads, 3)
}

func TestGetContentStatsEmpty(t *testing.T) {
	f := newContentFixture(t)
	svc := NewStatsService(f.repo, nilStatsCache(), testLogger())

	stats, err := svc.GetContentStats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(0), stats.TotalContent)
	assert.Equal(t, int64(0), stats.TotalDownloads)
	assert.Empty(t, stats.ByType)
	assert.Empty(t, stats.RecentUploads)
}

func TestGetContentStatsRecentUploadsCapped(t *testing.T) {
	f := newContentFixture(t)
	svc := NewStatsService(f.repo, nilStatsCache(), testLogger())

	for i := 0; i < recentUploadsLimit+5; i++ {
		req := notesRequest()
		req.Topic = fmt.Sprintf("Topic %d", i)
		_, err := f.svc.Create(context.Background(), req, nil)
		require.NoError(t, err)
	}

	stats, err := svc.GetContentStats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(recentUploadsLimit+5), stats.TotalContent)
	require.Len(t, stats.RecentUploads, recentUploadsLimit)
	// Newest first: the last upload leads the list
	assert.Equal(t, fmt.Sprintf("Topic %d", recentUploadsLimit+4), stats.RecentUploads[0].Topic)
}

func TestGetContentStatsCachedUntilInvalidated(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	cm := cache.NewCacheManager(client)

	f := newContentFixture(t)
	svc := NewStatsService(f.repo, cm.Stats, testLogger())
	ctx := context.Background()

	_, err := f.svc.Create(ctx, notesRequest(), nil)
	require.NoError(t, err)

	stats, err := svc.GetContentStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.TotalContent)

	// A second record lands behind the cached aggregate
	_, err = f.svc.Create(ctx, exclusiveRequest(), nil)
	require.NoError(t, err)

	stats, err = svc.GetContentStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.TotalContent, "aggregate should come from the stats cache")

	// Content writes clear the whole stats prefix
	cache.SafeInvalidatePattern(ctx, cm.Stats, "*")

	stats, err = svc.GetContentStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.TotalContent, "invalidation should force a recompute")
}
