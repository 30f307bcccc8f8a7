package router

import (
	"restaurant-directory/core/middleware"
	"restaurant-directory/modules/auth/controller"

	"github.com/labstack/echo/v4"
)

type AuthRouter struct {
	controller *controller.AuthController
	limiter    echo.MiddlewareFunc
}

// NewAuthRouter takes the rate limiter applied to the public auth routes;
// nil disables it.
func NewAuthRouter(controller *controller.AuthController, limiter echo.MiddlewareFunc) *AuthRouter {
	return &AuthRouter{
		controller: controller,
		limiter:    limiter,
	}
}

func (r *AuthRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	v1 := e.Group("/api/v1")

	// Public routes
	authRoutes := v1.Group("/auth")
	if r.limiter != nil {
		authRoutes.Use(r.limiter)
	}
	authRoutes.POST("/register", r.controller.Register)
	authRoutes.POST("/login", r.controller.Login)
	authRoutes.POST("/refresh", r.controller.RefreshToken)
	authRoutes.POST("/logout", r.controller.Logout, mw.AuthMiddleware())

	// Private routes
	privateRoutes := v1.Group("/private")
	privateRoutes.GET("/me", r.controller.Me, mw.AuthMiddleware())
}
