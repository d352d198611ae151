package services

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/go-redis/redis"

	"seenafile_server/config"
	"seenafile_server/models"
)

// CacheService is an optional Redis-backed fallback for interaction lists.
// It is an acceleration layer only: every method is nil-receiver safe, and
// the server runs correctly with no cache at all (degrading to "no data"
// when the live store is also unreachable).
type CacheService struct {
	client *redis.Client
}

const interactionCacheTTL = 24 * time.Hour

// NewCacheService connects to Redis if enabled. Any connection problem is
// logged and treated as "no cache" rather than a boot failure.
func NewCacheService(cfg config.Redis) *CacheService {
	if !cfg.Enabled {
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       0,
	})

	if err := client.Ping().Err(); err != nil {
		log.Printf("⚠️ Redis unreachable, running without interaction cache: %v", err)
		return nil
	}

	log.Println("✅ Redis interaction cache connected")
	return &CacheService{client: client}
}

// StoreInteractions caches a user's interaction list, best effort.
func (cs *CacheService) StoreInteractions(userID string, interactions []models.MovieInteraction) {
	if cs == nil {
		return
	}

	blob, err := json.Marshal(interactions)
	if err != nil {
		return
	}

	if err := cs.client.Set(interactionKey(userID), blob, interactionCacheTTL).Err(); err != nil {
		log.Printf("⚠️ Failed to cache interactions for %s: %v", userID, err)
	}
}

// LoadInteractions returns a cached interaction list, if one exists.
func (cs *CacheService) LoadInteractions(userID string) ([]models.MovieInteraction, bool) {
	if cs == nil {
		return nil, false
	}

	blob, err := cs.client.Get(interactionKey(userID)).Result()
	if err != nil {
		if err != redis.Nil {
			log.Printf("⚠️ Failed to read interaction cache for %s: %v", userID, err)
		}
		return nil, false
	}

	var interactions []models.MovieInteraction
	if err := json.Unmarshal([]byte(blob), &interactions); err != nil {
		return nil, false
	}

	return interactions, true
}

// InvalidateInteractions drops a user's cached list after a write.
func (cs *CacheService) InvalidateInteractions(userID string) {
	if cs == nil {
		return
	}
	cs.client.Del(interactionKey(userID))
}

func interactionKey(userID string) string {
	return "interactions:" + userID
}
