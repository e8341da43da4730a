package devbackend

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/libraryhub/portal/internal/core/domain"
)

func signToken(t *testing.T, claims jwt.MapClaims, secret string) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func runAuth(t *testing.T, header string, next echo.HandlerFunc) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := Auth("secret")(next)(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	token := signToken(t, jwt.MapClaims{
		"sub":      "7",
		"username": "alice",
		"role":     "ADMIN",
		"exp":      time.Now().Add(time.Hour).Unix(),
	}, "secret")

	called := false
	rec := runAuth(t, "Bearer "+token, func(c echo.Context) error {
		called = true
		if c.Get(ctxUserID) != "7" || c.Get(ctxUsername) != "alice" {
			t.Fatalf("identity not set")
		}
		if c.Get(ctxRole) != domain.RoleAdmin {
			t.Fatalf("role not set")
		}
		return c.NoContent(http.StatusOK)
	})

	if !called || rec.Code != http.StatusOK {
		t.Fatalf("expected next called with 200, got %d", rec.Code)
	}
}

func TestAuthMiddleware_Rejects(t *testing.T) {
	expired := signToken(t, jwt.MapClaims{
		"sub": "7", "role": "USER", "exp": time.Now().Add(-time.Minute).Unix(),
	}, "secret")
	noExp := signToken(t, jwt.MapClaims{"sub": "7", "role": "USER"}, "secret")
	otherKey := signToken(t, jwt.MapClaims{
		"sub": "7", "role": "USER", "exp": time.Now().Add(time.Hour).Unix(),
	}, "other")

	for name, header := range map[string]string{
		"missing header": "",
		"wrong scheme":   "Token abc",
		"garbage":        "Bearer not-a-token",
		"expired":        "Bearer " + expired,
		"no expiry":      "Bearer " + noExp,
		"wrong key":      "Bearer " + otherKey,
	} {
		rec := runAuth(t, header, func(c echo.Context) error {
			t.Fatalf("%s: should not reach next", name)
			return nil
		})
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("%s: expected 401, got %d", name, rec.Code)
		}
	}
}

func TestRBAC(t *testing.T) {
	tests := []struct {
		role domain.Role
		want int
	}{
		{domain.RoleAdmin, http.StatusOK},
		{domain.RoleUser, http.StatusForbidden},
		{domain.RoleNone, http.StatusForbidden},
	}

	for _, tt := range tests {
		e := echo.New()
		rec := httptest.NewRecorder()
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
		c.Set(ctxRole, tt.role)

		err := RBAC(domain.RoleAdmin)(func(c echo.Context) error {
			return c.NoContent(http.StatusOK)
		})(c)
		if err != nil {
			e.HTTPErrorHandler(err, c)
		}
		if rec.Code != tt.want {
			t.Fatalf("role %q: expected %d, got %d", tt.role, tt.want, rec.Code)
		}
	}
}
