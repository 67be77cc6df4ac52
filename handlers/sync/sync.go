package sync

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/simpdb/simpdb-api/services"
	"github.com/simpdb/simpdb-api/utils/cache"
	"github.com/simpdb/simpdb-api/utils/response"
	"gorm.io/gorm"
)

// snapshotCacheKey and snapshotCacheTTL bound the cost of the SPA's polling
// loop. The TTL is shorter than the client poll interval, so a change is
// visible on the next poll at the latest.
const (
	snapshotCacheKey = "sync:snapshot"
	snapshotCacheTTL = 5 * time.Second
)

// SyncHandler serves the full dataset the SPA keeps in memory. Clients poll
// this endpoint, work optimistically against their copy and commit through
// the mutation endpoints, which re-check everything server-side.
type SyncHandler struct {
	db        *gorm.DB
	snapshots *services.SnapshotService
	cache     *cache.RedisCache // nil when Redis is unavailable
}

// NewSyncHandler creates a new sync handler
func NewSyncHandler(db *gorm.DB, redisCache *cache.RedisCache) *SyncHandler {
	return &SyncHandler{
		db:        db,
		snapshots: services.NewSnapshotService(db),
		cache:     redisCache,
	}
}

// GetSnapshot handles GET /api/v1/sync
func (h *SyncHandler) GetSnapshot(c *fiber.Ctx) error {
	if h.cache != nil {
		var cached services.DatasetSnapshot
		if err := h.cache.GetJSON(c.Context(), snapshotCacheKey, &cached); err == nil {
			return response.Success(c, cached)
		}
	}

	snapshot, err := h.snapshots.Load()
	if err != nil {
		return response.InternalServerError(c, "Failed to load dataset")
	}

	if h.cache != nil {
		// Cache misses are harmless; next poll reloads from the database
		_ = h.cache.SetJSON(c.Context(), snapshotCacheKey, snapshot, snapshotCacheTTL)
	}

	return response.Success(c, snapshot)
}
