package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// NoCache marks every response as non-cacheable.
func NoCache() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Cache-Control", "no-cache")
		c.Next()
	}
}

// RejectQueryParams fails requests carrying query parameters. Routes whose
// contract needs them (the verify endpoint) simply don't use this guard.
func RejectQueryParams() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.URL.RawQuery != "" {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "query parameters are not allowed"})
			return
		}
		c.Next()
	}
}
