package middleware

import "github.com/gin-gonic/gin"

// userIDKey holds the authenticated token subject in the request context.
const userIDKey = contextKey("userID")

// GetUserIDFromContext returns the acting user ID stored by AuthMiddleware.
// Handlers record this ID as created_by on invoices, settlements and stock
// movements.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	if v := c.Request.Context().Value(userIDKey); v != nil {
		userID, ok := v.(string)
		return userID, ok
	}
	return "", false
}
