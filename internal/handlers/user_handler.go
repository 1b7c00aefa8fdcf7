package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"webapp/internal/repositories"
	"webapp/internal/services"
	"webapp/internal/validation"
)

type UserHandler struct {
	accounts services.AccountService
}

func NewUserHandler(accounts services.AccountService) *UserHandler {
	return &UserHandler{accounts: accounts}
}

type createUserRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type updateUserRequest struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Password  *string `json:"password"`

	// emailPresent records whether the email key appeared at all, so that
	// even {"email": null} is rejected.
	emailPresent bool
}

func (r *updateUserRequest) UnmarshalJSON(data []byte) error {
	type plain updateUserRequest
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(data, &keys); err != nil {
		return err
	}
	*r = updateUserRequest(p)
	_, r.emailPresent = keys["email"]
	return nil
}

func (h *UserHandler) Create(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	account, err := h.accounts.Register(c.Request.Context(), services.RegisterRequest{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		switch {
		case errors.Is(err, validation.ErrInvalidFormat),
			errors.Is(err, validation.ErrWeakPassword),
			errors.Is(err, repositories.ErrDuplicateEmail):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logrus.WithError(err).Error("register failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create user"})
		}
		return
	}
	c.JSON(http.StatusCreated, account.Public())
}

func (h *UserHandler) GetSelf(c *gin.Context) {
	account, ok := accountFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	profile, err := h.accounts.GetProfile(account)
	if err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": "email not verified"})
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (h *UserHandler) UpdateSelf(c *gin.Context) {
	account, ok := accountFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	upd := services.ProfileUpdate{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Password:  req.Password,
	}
	if req.emailPresent {
		var email string
		upd.Email = &email
	}

	_, err := h.accounts.UpdateProfile(c.Request.Context(), account, upd)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotVerified):
			c.JSON(http.StatusForbidden, gin.H{"error": "email not verified"})
		case errors.Is(err, services.ErrEmailImmutable),
			errors.Is(err, services.ErrNoFields),
			errors.Is(err, validation.ErrInvalidFormat),
			errors.Is(err, validation.ErrWeakPassword):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, repositories.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		default:
			logrus.WithError(err).Error("profile update failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update user"})
		}
		return
	}
	c.Status(http.StatusNoContent)
}
