package service

import (
	"context"
	"restaurant-directory/core/cache"
	"restaurant-directory/core/constants"
	"restaurant-directory/core/logger"
	"restaurant-directory/core/metrics"
	"restaurant-directory/modules/restaurant/dto"
	"strconv"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
)

const (
	kindAll      = "all"
	kindOne      = "one"
	kindFiltered = "filtered"
)

// NoGeneration marks a generation that could not be read. Nothing is
// stored under it.
const NoGeneration int64 = -1

// listEntry is the cached full list, stamped with the generation it was
// read under so lists derived from it are stored under the same one.
type listEntry struct {
	Generation int64                    `json:"generation"`
	Items      []dto.RestaurantResponse `json:"items"`
}

// CacheService stores restaurant responses in Redis. A nil backend turns
// every lookup into a miss and every write into a no-op.
type CacheService struct {
	cache cache.Cache
	ttl   time.Duration
}

func NewCacheService(c cache.Cache, ttl time.Duration) *CacheService {
	if ttl <= 0 {
		ttl = constants.DefaultCacheTTL
	}
	return &CacheService{cache: c, ttl: ttl}
}

func (s *CacheService) Enabled() bool {
	return s != nil && s.cache != nil
}

func (s *CacheService) TTL() time.Duration {
	return s.ttl
}

func OneKey(id uuid.UUID) string {
	return constants.RedisKeyRestaurant + id.String()
}

// FilteredKey derives the key of a name search. Names differing only in
// case or surrounding space share a key.
func FilteredKey(name string) string {
	normalized := strings.ToLower(strings.TrimSpace(name))
	return constants.RedisKeyRestaurantsFiltered + strconv.FormatUint(xxhash.Sum64String(normalized), 16)
}

// GetAll returns the cached full list and the generation it was stored
// under.
func (s *CacheService) GetAll(ctx context.Context) ([]dto.RestaurantResponse, int64, bool) {
	var entry listEntry
	if !s.get(ctx, kindAll, constants.RedisKeyRestaurantsAll, &entry) {
		return nil, NoGeneration, false
	}
	return entry.Items, entry.Generation, true
}

// Generation snapshots the write generation. Read it before the database
// read whose result is cached; a write in between bumps the generation and
// the cache write is dropped.
func (s *CacheService) Generation(ctx context.Context) int64 {
	if !s.Enabled() {
		return NoGeneration
	}
	gen, err := s.cache.Generation(ctx, constants.RedisKeyRestaurantsGeneration)
	if err != nil {
		logger.Warn("CacheService:Generation", "error", err)
		return NoGeneration
	}
	return gen
}

func (s *CacheService) PutAll(ctx context.Context, gen int64, items []dto.RestaurantResponse) {
	s.putAt(ctx, gen, constants.RedisKeyRestaurantsAll, listEntry{Generation: gen, Items: items})
}

func (s *CacheService) GetOne(ctx context.Context, id uuid.UUID) (*dto.RestaurantResponse, bool) {
	var item dto.RestaurantResponse
	if !s.get(ctx, kindOne, OneKey(id), &item) {
		return nil, false
	}
	return &item, true
}

// PutOne stores item unconditionally; use it right after a write.
func (s *CacheService) PutOne(ctx context.Context, item *dto.RestaurantResponse) {
	s.put(ctx, OneKey(item.ID), item)
}

func (s *CacheService) PutOneAt(ctx context.Context, gen int64, item *dto.RestaurantResponse) {
	s.putAt(ctx, gen, OneKey(item.ID), item)
}

func (s *CacheService) GetFiltered(ctx context.Context, name string) ([]dto.RestaurantResponse, bool) {
	var items []dto.RestaurantResponse
	return items, s.get(ctx, kindFiltered, FilteredKey(name), &items)
}

func (s *CacheService) PutFiltered(ctx context.Context, gen int64, name string, items []dto.RestaurantResponse) {
	s.putAt(ctx, gen, FilteredKey(name), items)
}

func (s *CacheService) InvalidateOne(ctx context.Context, id uuid.UUID) {
	if !s.Enabled() {
		return
	}
	if err := s.cache.Del(ctx, OneKey(id)); err != nil {
		logger.Warn("CacheService:InvalidateOne", "id", id, "error", err)
	}
}

// InvalidateLists bumps the write generation, then drops the full list and
// every name search.
func (s *CacheService) InvalidateLists(ctx context.Context) {
	if !s.Enabled() {
		return
	}
	if err := s.cache.BumpGeneration(ctx, constants.RedisKeyRestaurantsGeneration); err != nil {
		logger.Warn("CacheService:InvalidateLists", "key", constants.RedisKeyRestaurantsGeneration, "error", err)
	}
	if err := s.cache.Del(ctx, constants.RedisKeyRestaurantsAll); err != nil {
		logger.Warn("CacheService:InvalidateLists", "key", constants.RedisKeyRestaurantsAll, "error", err)
	}
	if _, err := s.cache.DeleteByPattern(ctx, constants.RedisKeyRestaurantsFiltered+"*"); err != nil {
		logger.Warn("CacheService:InvalidateLists", "pattern", constants.RedisKeyRestaurantsFiltered+"*", "error", err)
	}
}

// Clear removes every cached restaurant entry and returns how many were
// deleted. The generation counter is kept.
func (s *CacheService) Clear(ctx context.Context) (int64, error) {
	if !s.Enabled() {
		return 0, nil
	}
	var total int64
	patterns := []string{
		constants.RedisKeyRestaurantsAll,
		constants.RedisKeyRestaurantsFiltered + "*",
		constants.RedisKeyRestaurant + "*",
	}
	for _, pattern := range patterns {
		n, err := s.cache.DeleteByPattern(ctx, pattern)
		total += n
		if err != nil {
			return total, err
		}
	}
	logger.Info("CacheService:Clear", "deleted", total)
	return total, nil
}

// Available reports whether Redis answers a PING.
func (s *CacheService) Available(ctx context.Context) bool {
	if !s.Enabled() {
		return false
	}
	return s.cache.Ping(ctx) == nil
}

func (s *CacheService) Stats(ctx context.Context) *dto.CacheStatsResponse {
	stats := &dto.CacheStatsResponse{TTLSeconds: int64(s.ttl / time.Second)}
	if !s.Available(ctx) {
		return stats
	}
	info, err := s.cache.Info(ctx)
	if err != nil {
		logger.Warn("CacheService:Stats", "error", err)
		return stats
	}

	stats.Available = true
	stats.RedisVersion = info["redis_version"]
	stats.UsedMemory = info["used_memory_human"]
	stats.ConnectedClients = infoInt(info, "connected_clients")
	stats.TotalCommands = infoInt(info, "total_commands_processed")
	stats.KeyspaceHits = infoInt(info, "keyspace_hits")
	stats.KeyspaceMisses = infoInt(info, "keyspace_misses")
	stats.HitRate = HitRate(stats.KeyspaceHits, stats.KeyspaceMisses)
	return stats
}

// HitRate is the hit percentage rounded to two decimals, 0 with no lookups.
func HitRate(hits, misses int64) float64 {
	total := hits + misses
	if total == 0 {
		return 0
	}
	rate := float64(hits) / float64(total) * 100
	return float64(int64(rate*100+0.5)) / 100
}

func infoInt(info map[string]string, key string) int64 {
	n, _ := strconv.ParseInt(strings.TrimSpace(info[key]), 10, 64)
	return n
}

func (s *CacheService) get(ctx context.Context, kind, key string, dest any) bool {
	if !s.Enabled() {
		return false
	}
	ok, err := s.cache.GetJSON(ctx, key, dest)
	switch {
	case err != nil:
		metrics.CacheError(kind)
		logger.Warn("CacheService:Get", "key", key, "error", err)
		return false
	case !ok:
		metrics.CacheMiss(kind)
		return false
	}
	metrics.CacheHit(kind)
	return true
}

func (s *CacheService) put(ctx context.Context, key string, value any) {
	if !s.Enabled() {
		return
	}
	if err := s.cache.SetJSON(ctx, key, value, s.ttl); err != nil {
		logger.Warn("CacheService:Put", "key", key, "error", err)
	}
}

func (s *CacheService) putAt(ctx context.Context, gen int64, key string, value any) {
	if !s.Enabled() || gen == NoGeneration {
		return
	}
	stored, err := s.cache.SetJSONIfGeneration(ctx, constants.RedisKeyRestaurantsGeneration, gen, key, value, s.ttl)
	if err != nil {
		logger.Warn("CacheService:Put", "key", key, "error", err)
		return
	}
	if !stored {
		logger.Debug("CacheService:Put:Stale", "key", key, "generation", gen)
	}
}
