package middlewares

import (
	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-tables/utils"
)

// WebSocketAuthMiddleware reads the token from the query string, since browsers
// cannot set headers on websocket upgrades.
func WebSocketAuthMiddleware(tokens *utils.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Query("token")
		if token == "" {
			c.AbortWithStatus(401)
			return
		}

		claims, err := tokens.ParseToken(token)
		if err != nil {
			c.AbortWithStatus(401)
			return
		}

		c.Set(CtxRole, claims.Role)
		c.Set(CtxUserID, claims.UserID)
		c.Set(CtxEmail, claims.Subject)

		c.Next()
	}
}
