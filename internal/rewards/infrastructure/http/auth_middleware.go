package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/trash2cash/rewards/internal/pkg/jwt"
	"github.com/trash2cash/rewards/internal/pkg/logging"
)

const (
	bearerPrefix     = "Bearer "
	userIDContextKey = "user_id"
)

// NewAuthMiddleware validates the bearer token and stores the authenticated
// user id on the request context. Credentials themselves are never
// re-validated here.
func NewAuthMiddleware(secretKey string, tokenParser jwt.TokenParser, logger logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader(jwt.AuthorizationHeader)
		if !strings.HasPrefix(header, bearerPrefix) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"errors": "authorization token is missing"})
			return
		}

		claims, err := tokenParser.ParseToken([]byte(secretKey), strings.TrimPrefix(header, bearerPrefix))
		if err != nil {
			logger.Warn("failed to parse bearer token", "error", err.Error())
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"errors": "invalid token"})
			return
		}

		c.Set(userIDContextKey, claims.UserID)
		c.Next()
	}
}

func authenticatedUserID(c *gin.Context) (int, bool) {
	val, exists := c.Get(userIDContextKey)
	if !exists {
		return 0, false
	}

	userID, ok := val.(int)
	return userID, ok
}
