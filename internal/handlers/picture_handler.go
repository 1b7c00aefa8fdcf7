package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"webapp/internal/services"
)

type PictureHandler struct {
	pictures services.PictureService
}

func NewPictureHandler(pictures services.PictureService) *PictureHandler {
	return &PictureHandler{pictures: pictures}
}

// Upload handles POST /v1/user/self/pic with a multipart "profilePic" part.
func (h *PictureHandler) Upload(c *gin.Context) {
	account, ok := accountFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	fileHeader, err := c.FormFile("profilePic")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "profilePic file is required"})
		return
	}
	contentType := fileHeader.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "only image uploads are supported"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read uploaded file"})
		return
	}
	defer file.Close()

	key, err := h.pictures.Attach(c.Request.Context(), account, fileHeader.Filename, contentType, file)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotVerified):
			c.JSON(http.StatusForbidden, gin.H{"error": "email not verified"})
		case errors.Is(err, services.ErrPictureExists):
			c.JSON(http.StatusBadRequest, gin.H{"error": "profile picture already exists"})
		default:
			logrus.WithError(err).Error("picture upload failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to upload picture"})
		}
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "profile picture uploaded", "image_key": key})
}

func (h *PictureHandler) Get(c *gin.Context) {
	account, ok := accountFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	meta, err := h.pictures.Metadata(account)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotVerified):
			c.JSON(http.StatusForbidden, gin.H{"error": "email not verified"})
		case errors.Is(err, services.ErrPictureNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "profile picture not found"})
		default:
			logrus.WithError(err).Error("picture metadata failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read picture"})
		}
		return
	}
	c.JSON(http.StatusOK, meta)
}

func (h *PictureHandler) Delete(c *gin.Context) {
	account, ok := accountFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	if err := h.pictures.Detach(c.Request.Context(), account); err != nil {
		switch {
		case errors.Is(err, services.ErrNotVerified):
			c.JSON(http.StatusForbidden, gin.H{"error": "email not verified"})
		case errors.Is(err, services.ErrPictureNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "profile picture not found"})
		default:
			logrus.WithError(err).Error("picture delete failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete picture"})
		}
		return
	}
	c.Status(http.StatusNoContent)
}
