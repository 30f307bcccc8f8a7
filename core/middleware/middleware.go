package middleware

import (
	"context"
	"net/http"
	"restaurant-directory/core/constants"
	"restaurant-directory/core/controller"
	"restaurant-directory/core/errors"
	"restaurant-directory/core/utils"

	"github.com/labstack/echo/v4"
)

// TokenVerifier validates a bearer token and returns its claims. The auth
// service implements it.
type TokenVerifier interface {
	VerifyAccessToken(ctx context.Context, token string) (*utils.TokenClaims, *errors.AppError)
}

type Middleware struct {
	verifier TokenVerifier
}

func NewMiddleware(verifier TokenVerifier) *Middleware {
	return &Middleware{verifier: verifier}
}

// AuthMiddleware requires a valid, non-revoked access token and stores its
// claims under constants.ContextTokenData.
func (m *Middleware) AuthMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, err := utils.GetTokenFromHeader(c)
			if err != nil {
				code := errors.ErrInvalidTokenFormat
				if err == utils.ErrMissingAuthorizationHeader {
					code = errors.ErrMissingAuthorizationHeader
				}
				return controller.NewErrorResponse(http.StatusUnauthorized, code, err.Error())
			}

			claims, appErr := m.verifier.VerifyAccessToken(c.Request().Context(), token)
			if appErr != nil {
				return controller.NewErrorResponse(controller.HTTPStatus(appErr.Code), appErr.Code, appErr.Message)
			}

			c.Set(constants.ContextTokenData, claims)
			return next(c)
		}
	}
}

// AdminMiddleware must run after AuthMiddleware.
func (m *Middleware) AdminMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := GetTokenData(c)
			if !ok {
				return controller.NewErrorResponse(http.StatusUnauthorized, errors.ErrUnauthorized, "authentication required")
			}
			if !claims.IsAdmin() {
				return controller.NewErrorResponse(http.StatusForbidden, errors.ErrForbidden, "admin role required")
			}
			return next(c)
		}
	}
}

func GetTokenData(c echo.Context) (*utils.TokenClaims, bool) {
	claims, ok := c.Get(constants.ContextTokenData).(*utils.TokenClaims)
	return claims, ok && claims != nil
}
