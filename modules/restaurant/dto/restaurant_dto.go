package dto

import (
	"restaurant-directory/core/dto"
	"restaurant-directory/modules/restaurant/hours"
	"time"

	"github.com/google/uuid"
)

type CreateRestaurantRequest struct {
	Name         string `json:"name"`
	OpeningHours string `json:"opening_hours"`
}

// UpdateRestaurantRequest is a partial update; nil fields are left alone.
type UpdateRestaurantRequest struct {
	Name         *string `json:"name"`
	OpeningHours *string `json:"opening_hours"`
}

type RestaurantResponse struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Slug         string    `json:"slug"`
	OpeningHours string    `json:"opening_hours"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (r RestaurantResponse) GetName() string         { return r.Name }
func (r RestaurantResponse) GetOpeningHours() string { return r.OpeningHours }

type ListMeta struct {
	Total           int               `json:"total"`
	ExecutionTimeMs float64           `json:"execution_time_ms"`
	Cached          bool              `json:"cached"`
	FiltersApplied  map[string]string `json:"filters_applied"`
}

type RestaurantListResponse struct {
	dto.Pagination[RestaurantResponse]
	Meta ListMeta `json:"meta"`
}

type OpeningHoursResponse struct {
	Restaurant      RestaurantResponse `json:"restaurant"`
	RawOpeningHours string             `json:"raw_opening_hours"`
	ParsedSchedules hours.OpeningHours `json:"parsed_schedules"`
	Parseable       bool               `json:"parseable"`
}

type CheckOpenResponse struct {
	Restaurant   RestaurantResponse `json:"restaurant"`
	Day          string             `json:"day,omitempty"`
	Time         string             `json:"time,omitempty"`
	IsOpen       bool               `json:"is_open"`
	OpeningHours string             `json:"opening_hours"`
}

type UnparseableResponse struct {
	Total       int                  `json:"total"`
	Restaurants []RestaurantResponse `json:"restaurants"`
}

type CacheStatsResponse struct {
	Available        bool    `json:"available"`
	RedisVersion     string  `json:"redis_version,omitempty"`
	UsedMemory       string  `json:"used_memory,omitempty"`
	ConnectedClients int64   `json:"connected_clients"`
	TotalCommands    int64   `json:"total_commands_processed"`
	KeyspaceHits     int64   `json:"keyspace_hits"`
	KeyspaceMisses   int64   `json:"keyspace_misses"`
	HitRate          float64 `json:"hit_rate"`
	TTLSeconds       int64   `json:"ttl_seconds"`
}

type WarmUpResponse struct {
	Count int `json:"count"`
}

type ClearCacheResponse struct {
	Deleted int64 `json:"deleted"`
}

type ExportResponse struct {
	Key    string `json:"key,omitempty"`
	Count  int    `json:"count"`
	Queued bool   `json:"queued"`
}

type ExportedRestaurant struct {
	RestaurantResponse
	Schedules hours.OpeningHours `json:"schedules"`
}

type ExportSnapshot struct {
	GeneratedAt time.Time            `json:"generated_at"`
	Total       int                  `json:"total"`
	Restaurants []ExportedRestaurant `json:"restaurants"`
}
