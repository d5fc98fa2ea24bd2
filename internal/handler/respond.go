package handler

import (
	"fmt"

	"github.com/usmanharun1738/cartar-pos/internal/middleware"

	"github.com/gin-gonic/gin"
)

// sessionID resolves which terminal cart a request operates on. Each
// register sends a stable X-Terminal-ID; requests without one fall back
// to the authenticated user, then to the client address.
func sessionID(c *gin.Context) string {
	if id := c.GetHeader("X-Terminal-ID"); id != "" {
		return id
	}
	if userID, ok := middleware.UserIDFrom(c); ok {
		return fmt.Sprintf("user:%d", userID)
	}
	return c.ClientIP()
}

func errorJSON(err error) gin.H {
	return gin.H{"error": err.Error()}
}
