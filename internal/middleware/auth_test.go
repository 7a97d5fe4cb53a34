package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-12345678901234567890123456789012"

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return s
}

func validClaims(sub string) jwt.MapClaims {
	return jwt.MapClaims{
		"sub": sub,
		"iss": TokenIssuer,
		"aud": TokenAudience,
		"exp": time.Now().Add(time.Hour).Unix(),
	}
}

func newAuthApp(rdb *redis.Client) *fiber.App {
	app := fiber.New()
	app.Get("/test", AuthRequired(testSecret, rdb), func(c *fiber.Ctx) error {
		ctxUser, _ := c.UserContext().Value(UserIDKey).(uuid.UUID)
		return c.JSON(fiber.Map{"userID": UserID(c).String(), "ctxUserID": ctxUser.String()})
	})
	return app
}

func TestAuthRequired(t *testing.T) {
	userID := uuid.New()
	app := newAuthApp(nil)

	expired := validClaims(userID.String())
	expired["exp"] = time.Now().Add(-time.Hour).Unix()

	wrongIssuer := validClaims(userID.String())
	wrongIssuer["iss"] = "someone-else"

	tests := []struct {
		name           string
		authHeader     string
		cookie         string
		expectedStatus int
	}{
		{"happy path", "Bearer " + signToken(t, validClaims(userID.String())), "", http.StatusOK},
		{"cookie token", "", signToken(t, validClaims(userID.String())), http.StatusOK},
		{"missing token", "", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic dXNlcjpwYXNz", "", http.StatusUnauthorized},
		{"expired", "Bearer " + signToken(t, expired), "", http.StatusUnauthorized},
		{"wrong issuer", "Bearer " + signToken(t, wrongIssuer), "", http.StatusUnauthorized},
		{"numeric subject", "Bearer " + signToken(t, validClaims("123")), "", http.StatusUnauthorized},
		{"nil subject", "Bearer " + signToken(t, validClaims(uuid.Nil.String())), "", http.StatusUnauthorized},
		{"garbage token", "Bearer not.a.jwt", "", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/test", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: accessTokenCookie, Value: tt.cookie})
			}

			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)

			if tt.expectedStatus == http.StatusOK {
				var body map[string]string
				require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
				assert.Equal(t, userID.String(), body["userID"])
				assert.Equal(t, userID.String(), body["ctxUserID"])
			}
		})
	}
}

func TestAuthRequired_RevokedToken(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	userID := uuid.New()
	claims := validClaims(userID.String())
	claims["jti"] = "revoked-jti"
	revoked := signToken(t, claims)

	claims["jti"] = "live-jti"
	live := signToken(t, claims)

	require.NoError(t, rdb.Set(context.Background(), revokedKeyPrefix+"revoked-jti", "1", time.Hour).Err())

	app := newAuthApp(rdb)

	req := httptest.NewRequest("GET", "/test", nil)
	req.Header.Set("Authorization", "Bearer "+revoked)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	req = httptest.NewRequest("GET", "/test", nil)
	req.Header.Set("Authorization", "Bearer "+live)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
