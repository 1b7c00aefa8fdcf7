package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"webapp/internal/services"
)

const accountKey = "account"

// BasicAuth authenticates the request with HTTP Basic credentials and stores
// the matched account in the gin context. Verification status is not checked
// here; individual operations gate on it.
func BasicAuth(accounts services.AccountService) gin.HandlerFunc {
	return func(c *gin.Context) {
		email, password, ok := c.Request.BasicAuth()
		if !ok {
			c.Header("WWW-Authenticate", `Basic realm="webapp"`)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}

		account, err := accounts.Authenticate(c.Request.Context(), email, password)
		if err != nil {
			if errors.Is(err, services.ErrInvalidCredentials) {
				c.Header("WWW-Authenticate", `Basic realm="webapp"`)
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
				return
			}
			logrus.WithError(err).Error("authentication failed")
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "authentication unavailable"})
			return
		}

		c.Set(accountKey, account)
		c.Next()
	}
}
