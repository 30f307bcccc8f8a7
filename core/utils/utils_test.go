package utils

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"restaurant-directory/core/config"
	"restaurant-directory/core/constants"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

func setTestConfig(t *testing.T, accessTTL time.Duration) {
	t.Helper()
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.AccessTTL = accessTTL
	cfg.JWT.RefreshTTL = 24 * time.Hour
	config.Set(cfg)
}

func TestGenerateAndValidateToken(t *testing.T) {
	setTestConfig(t, time.Hour)
	userID := uuid.New()

	token, err := GenerateToken(userID, "admin@example.com", constants.RoleAdmin, constants.ScopeTokenAccess)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	claims, err := ValidateAndParseToken(token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if claims.UserID != userID || claims.Email != "admin@example.com" || !claims.IsAdmin() || claims.Scope != constants.ScopeTokenAccess {
		t.Fatalf("unexpected claims %+v", claims)
	}
	if r := claims.Remaining(); r <= 0 || r > time.Hour {
		t.Fatalf("unexpected remaining lifetime %s", r)
	}

	refresh, err := GenerateToken(userID, "admin@example.com", constants.RoleAdmin, constants.ScopeTokenRefresh)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	refreshClaims, err := ValidateAndParseToken(refresh)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if refreshClaims.Remaining() <= time.Hour {
		t.Fatal("refresh token must outlive the access token")
	}
}

func TestValidateExpiredToken(t *testing.T) {
	setTestConfig(t, -time.Minute)
	token, err := GenerateToken(uuid.New(), "user@example.com", constants.RoleUser, constants.ScopeTokenAccess)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, err = ValidateAndParseToken(token)
	if !errors.Is(err, ErrInvalidToken) || !errors.Is(err, jwt.ErrTokenExpired) {
		t.Fatalf("expected expired token error, got %v", err)
	}
}

func TestValidateTokenWithOtherSecret(t *testing.T) {
	setTestConfig(t, time.Hour)
	token, err := GenerateToken(uuid.New(), "user@example.com", constants.RoleUser, constants.ScopeTokenAccess)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cfg := &config.Config{}
	cfg.JWT.Secret = "another-secret"
	config.Set(cfg)

	if _, err := ValidateAndParseToken(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
	if _, err := ValidateAndParseToken("not-a-token"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestPassword(t *testing.T) {
	hashed, err := HashPassword("password")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hashed == "password" || !ComparePassword(hashed, "password") {
		t.Fatal("expected hash to verify")
	}
	if ComparePassword(hashed, "Password") {
		t.Fatal("expected mismatch")
	}
}

func TestGetTokenFromHeader(t *testing.T) {
	tests := []struct {
		header string
		token  string
		err    error
	}{
		{"Bearer abc.def", "abc.def", nil},
		{"bearer   abc.def ", "abc.def", nil},
		{"", "", ErrMissingAuthorizationHeader},
		{"Basic abc", "", ErrInvalidAuthorizationHeader},
		{"Bearer", "", ErrInvalidAuthorizationHeader},
	}

	e := echo.New()
	for _, test := range tests {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if test.header != "" {
			req.Header.Set(echo.HeaderAuthorization, test.header)
		}
		c := e.NewContext(req, httptest.NewRecorder())

		token, err := GetTokenFromHeader(c)
		if !errors.Is(err, test.err) || token != test.token {
			t.Fatalf("%q: expected %q/%v, got %q/%v", test.header, test.token, test.err, token, err)
		}
	}
}

func TestToUUID(t *testing.T) {
	id := uuid.New()
	if ToUUID(id.String()) != id {
		t.Fatal("expected round trip")
	}
	if ToUUID("42") != uuid.Nil {
		t.Fatal("expected nil uuid")
	}
}

func TestGenerateID(t *testing.T) {
	id := GenerateID(6)
	if len(id) != 6 {
		t.Fatalf("unexpected id %q", id)
	}
	if GenerateRequestID() == GenerateRequestID() {
		t.Fatal("request ids must differ")
	}
	if len(GenerateRandomString(32)) != 32 {
		t.Fatal("unexpected random string length")
	}
}
