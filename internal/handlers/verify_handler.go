package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"webapp/internal/repositories"
	"webapp/internal/services"
)

type VerifyHandler struct {
	accounts services.AccountService
}

func NewVerifyHandler(accounts services.AccountService) *VerifyHandler {
	return &VerifyHandler{accounts: accounts}
}

// Confirm handles GET /v1/verify?user=<email>&token=<token>.
func (h *VerifyHandler) Confirm(c *gin.Context) {
	email := c.Query("user")
	token := c.Query("token")
	if email == "" || token == "" {
		c.String(http.StatusBadRequest, "missing user or token")
		return
	}

	err := h.accounts.ConfirmVerification(c.Request.Context(), email, token)
	switch {
	case err == nil:
		c.String(http.StatusOK, "Email verified successfully")
	case errors.Is(err, repositories.ErrNotFound):
		c.String(http.StatusNotFound, "user not found")
	case errors.Is(err, services.ErrTokenExpired):
		c.String(http.StatusBadRequest, "verification token expired")
	case errors.Is(err, services.ErrTokenMismatch):
		c.String(http.StatusBadRequest, "invalid verification token")
	default:
		logrus.WithError(err).Error("verification failed")
		c.String(http.StatusInternalServerError, "verification failed")
	}
}
