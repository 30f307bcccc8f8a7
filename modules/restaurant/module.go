package restaurant

import (
	"restaurant-directory/core/broker"
	"restaurant-directory/core/cache"
	"restaurant-directory/core/database"
	"restaurant-directory/core/middleware"
	"restaurant-directory/core/queue"
	"restaurant-directory/core/storage"
	"restaurant-directory/modules/restaurant/controller"
	"restaurant-directory/modules/restaurant/repository"
	"restaurant-directory/modules/restaurant/router"
	"restaurant-directory/modules/restaurant/service"
	"time"

	"github.com/labstack/echo/v4"
)

// Dependencies are the shared clients the module runs on. Cache may be nil
// when caching is disabled; the other optional clients fall back to no-ops.
type Dependencies struct {
	DB        database.IDatabase
	Cache     cache.Cache
	CacheTTL  time.Duration
	Publisher broker.Publisher
	Enqueuer  queue.Enqueuer
	Store     storage.ObjectStore
}

func NewService(deps Dependencies) *service.RestaurantService {
	repo := repository.NewRestaurantRepository(deps.DB)
	cacheService := service.NewCacheService(deps.Cache, deps.CacheTTL)
	return service.NewRestaurantService(repo, cacheService, deps.Publisher, deps.Enqueuer, deps.Store)
}

func Init(e *echo.Echo, deps Dependencies, mw *middleware.Middleware) *service.RestaurantService {
	// Initialize layers
	restaurantService := NewService(deps)
	restaurantController := controller.NewRestaurantController(restaurantService)

	// Setup routes
	router.NewRestaurantRouter(restaurantController).Setup(e, mw)
	return restaurantService
}
