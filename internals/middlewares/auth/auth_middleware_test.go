package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"edutrack_backend/internals/configs"
)

func newProtectedApp() *fiber.App {
	app := fiber.New()
	app.Get("/protected", AuthMiddleware(), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"user_id": c.Locals("user_id"),
			"role":    c.Locals("userRole"),
		})
	})
	app.Get("/teachers-only", AuthMiddleware(),
		OnlyRoles("Only teachers can access this resource", "teacher"),
		func(c *fiber.Ctx) error {
			return c.SendStatus(fiber.StatusOK)
		})
	return app
}

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(configs.JWTSecret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func validClaims(role string) jwt.MapClaims {
	return jwt.MapClaims{
		"id":   uuid.NewString(),
		"role": role,
		"name": "Test User",
		"iat":  time.Now().Unix(),
		"exp":  time.Now().Add(time.Hour).Unix(),
	}
}

func doRequest(t *testing.T, app *fiber.App, path, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	return resp
}

func TestAuthMiddlewareRejects(t *testing.T) {
	configs.JWTSecret = "middleware-secret"
	app := newProtectedApp()

	cases := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"not bearer", "Basic abcdef"},
		{"bearer without token", "Bearer"},
		{"garbage token", "Bearer not.a.token"},
		{"too many fields", "Bearer one two"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := doRequest(t, app, "/protected", tc.header)
			if resp.StatusCode != fiber.StatusUnauthorized {
				t.Errorf("status = %d, want 401", resp.StatusCode)
			}
		})
	}
}

func TestAuthMiddlewareExpiredToken(t *testing.T) {
	configs.JWTSecret = "middleware-secret"
	app := newProtectedApp()

	claims := validClaims("student")
	claims["exp"] = time.Now().Add(-time.Hour).Unix()
	resp := doRequest(t, app, "/protected", "Bearer "+signToken(t, claims))
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Errorf("status = %d, want 401", resp.StatusCode)
	}
}

func TestAuthMiddlewareWrongSecret(t *testing.T) {
	configs.JWTSecret = "signing-secret"
	token := signToken(t, validClaims("student"))

	configs.JWTSecret = "verifying-secret"
	app := newProtectedApp()
	resp := doRequest(t, app, "/protected", "Bearer "+token)
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Errorf("status = %d, want 401", resp.StatusCode)
	}
}

func TestAuthMiddlewareMissingIDClaim(t *testing.T) {
	configs.JWTSecret = "middleware-secret"
	app := newProtectedApp()

	claims := validClaims("student")
	delete(claims, "id")
	resp := doRequest(t, app, "/protected", "Bearer "+signToken(t, claims))
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Errorf("status = %d, want 401", resp.StatusCode)
	}
}

func TestAuthMiddlewareAcceptsValidToken(t *testing.T) {
	configs.JWTSecret = "middleware-secret"
	app := newProtectedApp()

	resp := doRequest(t, app, "/protected", "Bearer "+signToken(t, validClaims("student")))
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
}

func TestRoleGate(t *testing.T) {
	configs.JWTSecret = "middleware-secret"
	app := newProtectedApp()

	resp := doRequest(t, app, "/teachers-only", "Bearer "+signToken(t, validClaims("teacher")))
	if resp.StatusCode != fiber.StatusOK {
		t.Errorf("teacher: status = %d, want 200", resp.StatusCode)
	}

	resp = doRequest(t, app, "/teachers-only", "Bearer "+signToken(t, validClaims("student")))
	if resp.StatusCode != fiber.StatusForbidden {
		t.Errorf("student: status = %d, want 403", resp.StatusCode)
	}
}
