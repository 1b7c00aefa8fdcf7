package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"webapp/internal/handlers"
	"webapp/internal/middleware"
	"webapp/internal/services"
)

func SetupRoutes(
	r *gin.Engine,
	accounts services.AccountService,
	userHandler *handlers.UserHandler,
	verifyHandler *handlers.VerifyHandler,
	pictureHandler *handlers.PictureHandler,
	healthHandler *handlers.HealthHandler,
) *gin.Engine {
	r.HandleMethodNotAllowed = true
	r.NoMethod(func(c *gin.Context) { c.Status(http.StatusMethodNotAllowed) })
	r.NoRoute(func(c *gin.Context) { c.Status(http.StatusNotFound) })

	r.Use(middleware.NoCache())

	r.GET("/healthz", healthHandler.Healthz)

	v1 := r.Group("/v1")

	// public
	v1.POST("/user", middleware.RejectQueryParams(), userHandler.Create)
	// the verify contract requires query parameters, so no guard here
	v1.GET("/verify", verifyHandler.Confirm)

	// basic-auth gated
	self := v1.Group("/user/self", middleware.RejectQueryParams(), middleware.BasicAuth(accounts))
	{
		self.GET("", userHandler.GetSelf)
		self.PUT("", userHandler.UpdateSelf)
		self.POST("/pic", pictureHandler.Upload)
		self.GET("/pic", pictureHandler.Get)
		self.DELETE("/pic", pictureHandler.Delete)
	}

	return r
}
