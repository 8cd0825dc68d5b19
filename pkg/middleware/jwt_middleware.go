package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"solsub/pkg/utils"
)

// JWTAuthMiddleware guards routes that act on behalf of a connected wallet.
// The wallet address baked into the token is what downstream handlers trust;
// clients never pass their own address on authenticated routes.
func JWTAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			utils.RespondError(c, http.StatusUnauthorized, "Authorization header missing or invalid")
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := utils.ValidateToken(tokenString)
		if err != nil || claims.WalletAddress == "" {
			utils.RespondError(c, http.StatusUnauthorized, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set("wallet_address", claims.WalletAddress)
		c.Next()
	}
}
