package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"observatory/internal/config"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
)

func TestAdminRequired(t *testing.T) {
	app := fiber.New()
	secret := "test-secret-key-12345678901234567890123456789012"
	InitMiddleware(&config.Config{AdminJWTSecret: secret})

	app.Get("/test", AdminRequired, func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"sub": c.Locals("adminSub")})
	})

	generateToken := func(sub, role string, exp time.Duration) string {
		claims := jwt.MapClaims{
			"sub":  sub,
			"role": role,
			"exp":  time.Now().Add(exp).Unix(),
		}
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
		s, _ := token.SignedString([]byte(secret))
		return s
	}

	tests := []struct {
		name           string
		authHeader     string
		expectedStatus int
	}{
		{
			name:           "Happy Path",
			authHeader:     "Bearer " + generateToken("reviewer", "admin", time.Hour),
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Missing Header",
			authHeader:     "",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Invalid Format",
			authHeader:     "Basic dXNlcjpwYXNz",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Malformed Token",
			authHeader:     "Bearer malformed.token.here",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Expired Token",
			authHeader:     "Bearer " + generateToken("reviewer", "admin", -time.Hour),
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Non-admin Role",
			authHeader:     "Bearer " + generateToken("reviewer", "viewer", time.Hour),
			expectedStatus: http.StatusForbidden,
		},
		{
			name:           "Missing Subject",
			authHeader:     "Bearer " + generateToken("", "admin", time.Hour),
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}

			resp, err := app.Test(req)
			defer func() { _ = resp.Body.Close() }()
			assert.NoError(t, err)
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
		})
	}
}
