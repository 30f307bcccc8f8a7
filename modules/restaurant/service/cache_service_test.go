package service

import (
	"context"
	"errors"
	"fmt"
	"restaurant-directory/core/cache"
	"restaurant-directory/modules/restaurant/dto"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

func newTestCache(t *testing.T) (*CacheService, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewCacheService(cache.NewRedisCache(client), time.Hour), mr
}

func TestCacheServiceAll(t *testing.T) {
	svc, mr := newTestCache(t)
	ctx := context.Background()

	if _, _, ok := svc.GetAll(ctx); ok {
		t.Fatal("expected miss on empty cache")
	}

	gen := svc.Generation(ctx)
	items := []dto.RestaurantResponse{{ID: uuid.New(), Name: "Kushi Tsuru"}}
	svc.PutAll(ctx, gen, items)

	got, stamp, ok := svc.GetAll(ctx)
	if !ok || len(got) != 1 || got[0].Name != "Kushi Tsuru" {
		t.Fatalf("unexpected cached list %+v (hit=%v)", got, ok)
	}
	if stamp != gen {
		t.Fatalf("list generation = %d, want %d", stamp, gen)
	}
	if ttl := mr.TTL("restaurants:all"); ttl != time.Hour {
		t.Fatalf("unexpected ttl %v", ttl)
	}
}

func TestFilteredKeyNormalizesName(t *testing.T) {
	if FilteredKey("Sushi") != FilteredKey("  sushi ") {
		t.Fatal("expected case and space insensitive key")
	}
	if FilteredKey("sushi") == FilteredKey("sashimi") {
		t.Fatal("expected distinct keys")
	}
}

func TestInvalidateLists(t *testing.T) {
	svc, mr := newTestCache(t)
	ctx := context.Background()
	item := dto.RestaurantResponse{ID: uuid.New(), Name: "Osakaya Restaurant"}

	gen := svc.Generation(ctx)
	svc.PutAll(ctx, gen, []dto.RestaurantResponse{item})
	svc.PutFiltered(ctx, gen, "osaka", []dto.RestaurantResponse{item})
	svc.PutFiltered(ctx, gen, "restaurant", []dto.RestaurantResponse{item})
	svc.PutOne(ctx, &item)

	svc.InvalidateLists(ctx)

	if mr.Exists("restaurants:all") {
		t.Fatal("expected full list to be dropped")
	}
	if _, ok := svc.GetFiltered(ctx, "osaka"); ok {
		t.Fatal("expected filtered list to be dropped")
	}
	if _, ok := svc.GetOne(ctx, item.ID); !ok {
		t.Fatal("expected single restaurant entry to survive")
	}
	if next := svc.Generation(ctx); next != gen+1 {
		t.Fatalf("generation = %d, want %d", next, gen+1)
	}
}

func TestInvalidateListsDropsEveryNameSearch(t *testing.T) {
	svc, mr := newTestCache(t)
	ctx := context.Background()
	item := dto.RestaurantResponse{ID: uuid.New(), Name: "Osakaya Restaurant"}

	gen := svc.Generation(ctx)
	for i := 0; i < 250; i++ {
		svc.PutFiltered(ctx, gen, fmt.Sprintf("name-%d", i), []dto.RestaurantResponse{item})
	}
	svc.InvalidateLists(ctx)

	for _, key := range mr.Keys() {
		if strings.HasPrefix(key, "restaurants:filtered:") {
			t.Fatalf("filtered entry %q survived invalidation", key)
		}
	}
}

func TestPutsUnderAnOldGenerationAreDropped(t *testing.T) {
	svc, mr := newTestCache(t)
	ctx := context.Background()
	item := dto.RestaurantResponse{ID: uuid.New(), Name: "Far East Cafe"}

	gen := svc.Generation(ctx)
	svc.InvalidateLists(ctx)

	svc.PutAll(ctx, gen, []dto.RestaurantResponse{item})
	svc.PutFiltered(ctx, gen, "far", []dto.RestaurantResponse{item})
	svc.PutOneAt(ctx, gen, &item)

	for _, key := range []string{"restaurants:all", FilteredKey("far"), OneKey(item.ID)} {
		if mr.Exists(key) {
			t.Fatalf("expected %s to be dropped", key)
		}
	}

	svc.PutOneAt(ctx, svc.Generation(ctx), &item)
	if _, ok := svc.GetOne(ctx, item.ID); !ok {
		t.Fatal("expected put under the current generation to be stored")
	}
	svc.PutAll(ctx, NoGeneration, []dto.RestaurantResponse{item})
	if mr.Exists("restaurants:all") {
		t.Fatal("expected put without a generation to be dropped")
	}
}

func TestClear(t *testing.T) {
	svc, _ := newTestCache(t)
	ctx := context.Background()
	item := dto.RestaurantResponse{ID: uuid.New(), Name: "Far East Cafe"}

	svc.PutAll(ctx, 0, []dto.RestaurantResponse{item})
	svc.PutFiltered(ctx, 0, "far", []dto.RestaurantResponse{item})
	svc.PutOne(ctx, &item)

	deleted, err := svc.Clear(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if deleted != 3 {
		t.Fatalf("Clear() deleted %d keys, want 3", deleted)
	}
}

func TestCacheErrorsDegradeToMiss(t *testing.T) {
	svc, mr := newTestCache(t)
	ctx := context.Background()
	svc.PutAll(ctx, 0, []dto.RestaurantResponse{{Name: "Alioto's Restaurant"}})

	mr.SetError("ERR server unavailable")
	if _, _, ok := svc.GetAll(ctx); ok {
		t.Fatal("expected miss while redis fails")
	}
	if svc.Available(ctx) {
		t.Fatal("expected cache to be unavailable")
	}
}

func TestDisabledCache(t *testing.T) {
	svc := NewCacheService(nil, 0)
	ctx := context.Background()

	if gen := svc.Generation(ctx); gen != NoGeneration {
		t.Fatalf("Generation() = %d on disabled cache", gen)
	}
	svc.PutAll(ctx, 0, []dto.RestaurantResponse{{Name: "x"}})
	if _, _, ok := svc.GetAll(ctx); ok {
		t.Fatal("expected miss on disabled cache")
	}
	if n, err := svc.Clear(ctx); n != 0 || err != nil {
		t.Fatalf("Clear() = %d, %v", n, err)
	}
	stats := svc.Stats(ctx)
	if stats.Available || stats.TTLSeconds != 3600 {
		t.Fatalf("unexpected stats %+v", stats)
	}
}

type infoCache struct {
	cache.Cache
	info map[string]string
	err  error
}

func (c infoCache) Ping(context.Context) error { return nil }

func (c infoCache) Info(context.Context) (map[string]string, error) { return c.info, c.err }

func TestStats(t *testing.T) {
	svc := NewCacheService(infoCache{info: map[string]string{
		"redis_version":            "7.2.4",
		"used_memory_human":        "1.05M",
		"connected_clients":        "3",
		"total_commands_processed": "120",
		"keyspace_hits":            "30",
		"keyspace_misses":          "10",
	}}, time.Hour)

	stats := svc.Stats(context.Background())
	if !stats.Available || stats.RedisVersion != "7.2.4" || stats.ConnectedClients != 3 {
		t.Fatalf("unexpected stats %+v", stats)
	}
	if stats.HitRate != 75 {
		t.Fatalf("HitRate = %v, want 75", stats.HitRate)
	}

	failing := NewCacheService(infoCache{err: errors.New("boom")}, time.Hour)
	if failing.Stats(context.Background()).Available {
		t.Fatal("expected unavailable stats when INFO fails")
	}
}

func TestHitRate(t *testing.T) {
	tests := []struct {
		hits, misses int64
		want         float64
	}{
		{0, 0, 0},
		{1, 2, 33.33},
		{2, 1, 66.67},
		{5, 0, 100},
	}
	for _, tt := range tests {
		if got := HitRate(tt.hits, tt.misses); got != tt.want {
			t.Errorf("HitRate(%d, %d) = %v, want %v", tt.hits, tt.misses, got, tt.want)
		}
	}
}
