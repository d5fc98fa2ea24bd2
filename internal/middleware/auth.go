package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// Keys set on the gin context for downstream handlers.
const (
	UserIDKey = "userID"
	RoleKey   = "userRole"
)

const (
	RoleCashier = "cashier"
	RoleManager = "manager"
	RoleAdmin   = "admin"
)

// AuthMiddleware validates the Bearer token and stores user_id and role
// on the context. When roles are given, the token's role must match one
// of them; with no roles any valid token passes.
func AuthMiddleware(secret string, roles ...string) gin.HandlerFunc {
	key := []byte(secret)

	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing authorization header"})
			return
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
			return key, nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token claims"})
			return
		}

		role, _ := claims["role"].(string)
		if len(roles) > 0 && !roleAllowed(role, roles) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}

		if uid, ok := claims["user_id"].(float64); ok {
			c.Set(UserIDKey, uint(uid))
		}
		c.Set(RoleKey, role)

		c.Next()
	}
}

func roleAllowed(role string, allowed []string) bool {
	for _, a := range allowed {
		if role == a {
			return true
		}
	}
	return false
}

// UserIDFrom returns the authenticated user id stored by AuthMiddleware.
func UserIDFrom(c *gin.Context) (uint, bool) {
	v, ok := c.Get(UserIDKey)
	if !ok {
		return 0, false
	}
	uid, ok := v.(uint)
	return uid, ok
}
