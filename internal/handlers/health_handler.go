package handlers

import (
	"database/sql"
	"net/http"

	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	db *sql.DB
}

func NewHealthHandler(db *sql.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

// Healthz reports liveness. Payloads and query parameters are rejected so the
// endpoint stays a pure probe.
func (h *HealthHandler) Healthz(c *gin.Context) {
	if c.Request.ContentLength > 0 || c.Request.URL.RawQuery != "" {
		c.Status(http.StatusBadRequest)
		return
	}
	if err := h.db.PingContext(c.Request.Context()); err != nil {
		c.Status(http.StatusServiceUnavailable)
		return
	}
	c.Status(http.StatusOK)
}
