package middleware

import (
	"context"
	"strings"

	"videotube/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	// TokenIssuer and TokenAudience must match the identity service's tokens.
	TokenIssuer   = "videotube-auth"
	TokenAudience = "videotube-api"

	accessTokenCookie = "accessToken"
	revokedKeyPrefix  = "blacklist:"
)

// AuthRequired verifies the access token and stores the acting user ID in
// Fiber locals ("userID") and in the request context. rdb may be nil, in which
// case revocation is not checked.
func AuthRequired(secret string, rdb *redis.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := bearerToken(c.Get("Authorization"))
		if tokenString == "" {
			tokenString = c.Cookies(accessTokenCookie)
		}
		if tokenString == "" {
			return models.RespondWithError(c, models.NewUnauthorizedError("Authorization required"))
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid signing method")
			}
			return []byte(secret), nil
		},
			jwt.WithIssuer(TokenIssuer),
			jwt.WithAudience(TokenAudience),
		)
		if err != nil || !token.Valid {
			return models.RespondWithError(c, models.NewUnauthorizedError("Invalid or expired token"))
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return models.RespondWithError(c, models.NewUnauthorizedError("Invalid token claims"))
		}

		sub, err := claims.GetSubject()
		if err != nil || sub == "" {
			return models.RespondWithError(c, models.NewUnauthorizedError("Invalid subject claim"))
		}
		userID, err := models.ParseID(sub)
		if err != nil {
			return models.RespondWithError(c, models.NewUnauthorizedError("Invalid user ID in token"))
		}

		if jti, _ := claims["jti"].(string); jti != "" && rdb != nil {
			revoked, err := rdb.Exists(c.UserContext(), revokedKeyPrefix+jti).Result()
			if err == nil && revoked > 0 {
				return models.RespondWithError(c, models.NewUnauthorizedError("Token has been revoked"))
			}
		}

		c.Locals("userID", userID)
		c.SetUserContext(context.WithValue(c.UserContext(), UserIDKey, userID))

		return c.Next()
	}
}

// UserID returns the acting user set by AuthRequired.
func UserID(c *fiber.Ctx) uuid.UUID {
	id, _ := c.Locals("userID").(uuid.UUID)
	return id
}

func bearerToken(header string) string {
	parts := strings.Split(header, " ")
	if len(parts) == 2 && parts[0] == "Bearer" {
		return parts[1]
	}
	return ""
}
