package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/wms/backend/internal/infrastructure/auth"
	"github.com/wms/backend/internal/interfaces/http/dto"
)

// Auth context keys and header constants
const (
	ActorKey      = "actor"
	AuthHeaderKey = "Authorization"
	BearerPrefix  = "Bearer "
)

// JWTAuth validates the bearer token and stores the actor in the context.
// Paths in skipPaths pass through unauthenticated.
func JWTAuth(jwtService *auth.JWTService, logger *zap.Logger, skipPaths ...string) gin.HandlerFunc {
	skip := make(map[string]struct{}, len(skipPaths))
	for _, p := range skipPaths {
		skip[p] = struct{}{}
	}

	return func(c *gin.Context) {
		if _, ok := skip[c.Request.URL.Path]; ok {
			c.Next()
			return
		}

		authHeader := c.GetHeader(AuthHeaderKey)
		if !strings.HasPrefix(authHeader, BearerPrefix) {
			abortUnauthorized(c, "Missing bearer token")
			return
		}
		tokenString := strings.TrimPrefix(authHeader, BearerPrefix)
		if tokenString == "" {
			abortUnauthorized(c, "Missing bearer token")
			return
		}

		claims, err := jwtService.ValidateAccessToken(tokenString)
		if err != nil {
			logger.Warn("token validation failed",
				zap.Error(err),
				zap.String("path", c.Request.URL.Path))
			if err == auth.ErrExpiredToken {
				abortUnauthorized(c, "Token has expired")
				return
			}
			abortUnauthorized(c, "Invalid token")
			return
		}

		c.Set(ActorKey, claims.Username)
		c.Next()
	}
}

// DevActor trusts the X-Actor header instead of a token. Development only.
func DevActor() gin.HandlerFunc {
	return func(c *gin.Context) {
		if actor := c.GetHeader("X-Actor"); actor != "" {
			c.Set(ActorKey, actor)
		}
		c.Next()
	}
}

// GetActor returns the authenticated actor, or "" when unauthenticated
func GetActor(c *gin.Context) string {
	return c.GetString(ActorKey)
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized,
		dto.NewErrorResponseWithRequestID(
			dto.ErrCodeUnauthorized,
			message,
			c.GetString(RequestIDKey),
		))
}
