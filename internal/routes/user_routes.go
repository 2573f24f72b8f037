package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/codeRisshi25/UrbanPulse/internal/middleware"
)

func UserRoutes(r *gin.Engine, deps Deps) {
	user := r.Group("/user")
	user.Use(middleware.Authenticate(deps.Tokens))
	{
		user.GET("/profile", deps.User.Profile)
		user.GET("/me", deps.User.Me)
	}
}
