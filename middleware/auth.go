package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"stayease/utils"
)

// Context keys populated by AuthRequired.
const (
	CtxUserID    = "userID"
	CtxUserName  = "userName"
	CtxUserEmail = "userEmail"
	ctxClaims    = "authClaims"
)

// AuthRequired verifies the identity-provider bearer token and exposes the
// opaque user ID plus the name/email claims to downstream handlers. The
// application never sees credentials, only verified claims.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		token, err := utils.AuthClient.VerifyIDToken(c.Request.Context(), tokenString)
		if err != nil {
			zap.L().Debug("token verification failed", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		c.Set(CtxUserID, token.UID)
		if name, ok := token.Claims["name"].(string); ok {
			c.Set(CtxUserName, name)
		}
		if email, ok := token.Claims["email"].(string); ok {
			c.Set(CtxUserEmail, email)
		}
		c.Set(ctxClaims, token.Claims)

		c.Next()
	}
}

// ManagerRequired allows only tokens carrying the property-manager claim.
// Must run after AuthRequired.
func ManagerRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, _ := c.Get(ctxClaims)
		m, _ := claims.(map[string]interface{})
		if isManager, _ := m["manager"].(bool); !isManager {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "manager role required"})
			return
		}
		c.Next()
	}
}
