package constants

import "time"

const (
	DefaultTimeout        = 5 * time.Second
	DefaultRequestTimeout = 10 * time.Second
	ExportTimeout         = 60 * time.Second
)

// Pagination
const (
	DefaultPageNumber = 1
	DefaultPageSize   = 50
	MaxPageSize       = 200
)

// Token scopes
const (
	ScopeTokenAccess  = "access"
	ScopeTokenRefresh = "refresh"
)

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

const (
	ContextTokenData = "token_data"
	ContextRequestID = "request_id"
	HeaderRequestID  = "X-Request-ID"
)

// Login throttling
const (
	MaxLoginAttempts = 5
	BlockDuration    = 15 * time.Minute
)

// Redis keys
const (
	RedisKeyTokenBlacklist = "blacklist:"
	RedisKeyLoginAttempt   = "login:"

	RedisKeyRestaurantsAll      = "restaurants:all"
	RedisKeyRestaurant          = "restaurant:"
	RedisKeyRestaurantsFiltered = "restaurants:filtered:"
	// bumped on every write; list entries are only stored under the
	// generation they were read in
	RedisKeyRestaurantsGeneration = "restaurants:generation"
)

const (
	DefaultCacheTTL = time.Hour
)

const (
	EventEntityRestaurant = "restaurant"
	EventActionCreated    = "created"
	EventActionUpdated    = "updated"
	EventActionDeleted    = "deleted"
)
