package auth

import (
	"github.com/Niriantsoa01/absence-tracker-intranet-flow/internal/middleware"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/login", middleware.RateLimitByIP(rate.Limit(5), 10), handler.Login)
		authGroup.GET("/me", middleware.AuthMiddleware(), handler.GetMe)
	}
}
