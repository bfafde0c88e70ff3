package cache

import (
	"context"
	"log/slog"
)

// SafeInvalidatePattern safely invalidates cache pattern with logging
func SafeInvalidatePattern(ctx context.Context, helper *CacheHelper, pattern string) {
	if err := helper.InvalidatePattern(ctx, pattern); err != nil {
		slog.ErrorContext(ctx, "Failed to invalidate cache pattern",
			"error", err,
			"pattern", pattern)
	}
}

// SafeDelete safely deletes cache keys with logging
func SafeDelete(ctx context.Context, helper *CacheHelper, keys ...string) {
	if err := helper.Delete(ctx, keys...); err != nil {
		slog.ErrorContext(ctx, "Failed to delete cache keys",
			"error", err,
			"keys", keys)
	}
}

// InvalidateContentCache drops every cached view of one content record plus
// the filtered list and stats entries that may include it.
func InvalidateContentCache(ctx context.Context, cm *CacheManager, contentID string) {
	SafeDelete(ctx, cm.Content, "id:"+contentID)
	SafeInvalidatePattern(ctx, cm.Content, "list:*")
	SafeInvalidatePattern(ctx, cm.Stats, "*")
}
