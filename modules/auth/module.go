package auth

import (
	"restaurant-directory/core/cache"
	"restaurant-directory/core/database"
	"restaurant-directory/core/middleware"
	"restaurant-directory/modules/auth/controller"
	"restaurant-directory/modules/auth/repository"
	"restaurant-directory/modules/auth/router"
	"restaurant-directory/modules/auth/service"

	"github.com/labstack/echo/v4"
)

// Init mounts the auth routes and returns the middleware other modules use
// to protect their routes.
func Init(e *echo.Echo, db database.IDatabase, cache cache.Cache, limiter echo.MiddlewareFunc) *middleware.Middleware {
	authService := GetService(db, cache)
	controller := controller.NewAuthController(authService)
	middleware := middleware.NewMiddleware(authService)

	router.NewAuthRouter(controller, limiter).Setup(e, middleware)
	return middleware
}

// GetService creates an AuthService for use outside the HTTP server
func GetService(db database.IDatabase, cache cache.Cache) *service.AuthService {
	repo := repository.NewAuthRepository(db)
	return service.NewAuthService(repo, cache)
}
