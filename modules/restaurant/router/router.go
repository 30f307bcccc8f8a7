package router

import (
	"restaurant-directory/core/middleware"
	"restaurant-directory/modules/restaurant/controller"

	"github.com/labstack/echo/v4"
)

type RestaurantRouter struct {
	controller *controller.RestaurantController
}

func NewRestaurantRouter(controller *controller.RestaurantController) *RestaurantRouter {
	return &RestaurantRouter{
		controller: controller,
	}
}

func (r *RestaurantRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	v1 := e.Group("/api/v1")

	// Public routes; /restaurant is kept as an alias of /restaurants
	for _, prefix := range []string{"/restaurants", "/restaurant"} {
		public := v1.Group(prefix)
		public.GET("", r.controller.PublicGetRestaurants)
		public.GET("/slug/:slug", r.controller.PublicGetRestaurantBySlug)
		public.GET("/:id", r.controller.PublicGetRestaurantById)
		public.GET("/:id/opening-hours", r.controller.PublicGetOpeningHours)
		public.GET("/:id/check-open", r.controller.PublicCheckOpen)
	}

	// Admin routes
	admin := v1.Group("/private")
	admin.Use(mw.AuthMiddleware(), mw.AdminMiddleware())

	restaurants := admin.Group("/restaurants")
	restaurants.POST("", r.controller.PrivateCreateRestaurant)
	restaurants.PUT("/:id", r.controller.PrivateUpdateRestaurant)
	restaurants.DELETE("/:id", r.controller.PrivateDeleteRestaurant)
	restaurants.GET("/unparseable", r.controller.PrivateGetUnparseable)
	restaurants.POST("/export", r.controller.PrivateExportRestaurants)

	cache := admin.Group("/cache")
	cache.GET("/stats", r.controller.PrivateGetCacheStats)
	cache.POST("/warm-up", r.controller.PrivateWarmUpCache)
	cache.DELETE("", r.controller.PrivateClearCache)
}
