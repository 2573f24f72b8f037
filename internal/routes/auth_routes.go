package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/codeRisshi25/UrbanPulse/internal/middleware"
)

func AuthRoutes(r *gin.Engine, deps Deps) {
	auth := r.Group("/auth")
	auth.Use(middleware.Throttle(deps.Redis, authThrottleLimit, authThrottleWindow))
	{
		auth.POST("/register", deps.Auth.Register)
		auth.POST("/login", deps.Auth.Login)
	}
}
