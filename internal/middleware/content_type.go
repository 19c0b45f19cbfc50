package middleware

import "github.com/gin-gonic/gin"

// JSONContentType marks every response as application/json up front. gin's
// JSON renderer keeps a Content-Type that is already set.
func JSONContentType() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Content-Type", "application/json")
		c.Next()
	}
}
