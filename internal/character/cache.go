package character

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/osse101/habitquest/internal/domain"
)

// CacheSchemaVersion is the current version of the cache schema
// Increment this when the cached data structure changes to auto-invalidate old entries
const CacheSchemaVersion = "1.0"

const (
	catalogKey      = "catalog"
	rewardKeyPrefix = "reward:"
)

// cachedCatalogEntry wraps catalog rows with version metadata for cache invalidation
type cachedCatalogEntry struct {
	Version  string
	Rewards  []domain.Reward
	CachedAt time.Time
}

// catalogCache is an in-memory LRU of the shop catalog and single rewards with time-based expiration
type catalogCache struct {
	lru *expirable.LRU[string, *cachedCatalogEntry]
}

// newCatalogCache creates a cache holding up to size entries for ttl
func newCatalogCache(size int, ttl time.Duration) *catalogCache {
	return &catalogCache{
		lru: expirable.NewLRU[string, *cachedCatalogEntry](size, nil, ttl),
	}
}

func (c *catalogCache) get(key string) ([]domain.Reward, bool) {
	entry, found := c.lru.Get(key)
	if !found {
		return nil, false
	}
	if entry.Version != CacheSchemaVersion {
		c.lru.Remove(key)
		return nil, false
	}
	return entry.Rewards, true
}

func (c *catalogCache) set(key string, rewards []domain.Reward) {
	c.lru.Add(key, &cachedCatalogEntry{
		Version:  CacheSchemaVersion,
		Rewards:  rewards,
		CachedAt: time.Now(),
	})
}

// Catalog returns a copy of the cached reward list
func (c *catalogCache) Catalog() ([]domain.Reward, bool) {
	rewards, ok := c.get(catalogKey)
	if !ok {
		return nil, false
	}
	return append([]domain.Reward(nil), rewards...), true
}

// SetCatalog stores the reward list
func (c *catalogCache) SetCatalog(rewards []domain.Reward) {
	c.set(catalogKey, append([]domain.Reward(nil), rewards...))
}

// Reward returns a single cached reward
func (c *catalogCache) Reward(id string) (*domain.Reward, bool) {
	rewards, ok := c.get(rewardKeyPrefix + id)
	if !ok || len(rewards) != 1 {
		return nil, false
	}
	r := rewards[0]
	return &r, true
}

// SetReward stores a single reward
func (c *catalogCache) SetReward(r domain.Reward) {
	c.set(rewardKeyPrefix+r.ID, []domain.Reward{r})
}

// Clear removes all entries from the cache.
func (c *catalogCache) Clear() {
	c.lru.Purge()
}
