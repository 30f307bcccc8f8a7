package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"restaurant-directory/core/constants"
	"restaurant-directory/core/errors"
	"restaurant-directory/core/utils"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type fakeVerifier map[string]*utils.TokenClaims

func (f fakeVerifier) VerifyAccessToken(_ context.Context, token string) (*utils.TokenClaims, *errors.AppError) {
	if claims, ok := f[token]; ok {
		return claims, nil
	}
	return nil, errors.NewAppError(errors.ErrUnauthorized, "invalid token", nil)
}

func newTestServer() *echo.Echo {
	mw := NewMiddleware(fakeVerifier{
		"admin-token": {UserID: uuid.New(), Role: constants.RoleAdmin},
		"user-token":  {UserID: uuid.New(), Role: constants.RoleUser},
	})

	e := echo.New()
	e.Use(RequestID())
	private := e.Group("/private", mw.AuthMiddleware())
	private.GET("/me", func(c echo.Context) error {
		claims, _ := GetTokenData(c)
		return c.String(http.StatusOK, claims.Role)
	})
	private.GET("/admin", func(c echo.Context) error {
		return c.NoContent(http.StatusNoContent)
	}, mw.AdminMiddleware())
	return e
}

func TestAuthAndAdminMiddleware(t *testing.T) {
	e := newTestServer()

	tests := []struct {
		path   string
		header string
		status int
	}{
		{"/private/me", "", http.StatusUnauthorized},
		{"/private/me", "Token abc", http.StatusUnauthorized},
		{"/private/me", "Bearer unknown", http.StatusUnauthorized},
		{"/private/me", "Bearer user-token", http.StatusOK},
		{"/private/admin", "Bearer user-token", http.StatusForbidden},
		{"/private/admin", "Bearer admin-token", http.StatusNoContent},
	}

	for _, test := range tests {
		req := httptest.NewRequest(http.MethodGet, test.path, nil)
		if test.header != "" {
			req.Header.Set(echo.HeaderAuthorization, test.header)
		}
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		if rec.Code != test.status {
			t.Fatalf("%s with %q: expected %d, got %d (%s)", test.path, test.header, test.status, rec.Code, rec.Body)
		}
	}
}

func TestRequestID(t *testing.T) {
	e := newTestServer()

	req := httptest.NewRequest(http.MethodGet, "/private/me", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Header().Get(constants.HeaderRequestID) == "" {
		t.Fatal("expected a generated request id")
	}

	req = httptest.NewRequest(http.MethodGet, "/private/me", nil)
	req.Header.Set(constants.HeaderRequestID, "fixed-id")
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if got := rec.Header().Get(constants.HeaderRequestID); got != "fixed-id" {
		t.Fatalf("expected request id to propagate, got %q", got)
	}
}

func TestRateLimiter(t *testing.T) {
	e := echo.New()
	e.POST("/login", func(c echo.Context) error {
		return c.NoContent(http.StatusNoContent)
	}, RateLimiter(0.001, 2))

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}
	if codes[0] != http.StatusNoContent || codes[1] != http.StatusNoContent || codes[2] != http.StatusTooManyRequests {
		t.Fatalf("unexpected status sequence %v", codes)
	}
}
