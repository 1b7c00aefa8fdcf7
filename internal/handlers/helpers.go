package handlers

import (
	"github.com/gin-gonic/gin"

	"webapp/internal/models"
)

// accountFromCtx returns the account stored by the basic-auth middleware.
func accountFromCtx(c *gin.Context) (*models.Account, bool) {
	v, ok := c.Get("account")
	if !ok {
		return nil, false
	}
	account, ok := v.(*models.Account)
	return account, ok
}
