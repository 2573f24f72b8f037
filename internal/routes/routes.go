package routes

import (
	"net/http"
	"time"

	ginlog "github.com/gin-contrib/logger"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	logrus "github.com/sirupsen/logrus"

	"github.com/codeRisshi25/UrbanPulse/internal/auth"
	"github.com/codeRisshi25/UrbanPulse/internal/controllers"
)

// Deps carries everything the router needs; main constructs it once.
type Deps struct {
	Auth   *controllers.AuthController
	User   *controllers.UserController
	Health *controllers.HealthController
	Tokens *auth.TokenService
	Redis  *redis.Client

	// Production redacts panic details from 500 responses.
	Production bool
}

// Auth endpoints share a fixed-window throttle.
const (
	authThrottleLimit  = 20
	authThrottleWindow = time.Minute
)

func SetupRouter(deps Deps) *gin.Engine {
	r := gin.New()

	r.Use(ginlog.SetLogger())
	r.Use(recovery(deps.Production))

	AuthRoutes(r, deps)
	UserRoutes(r, deps)

	r.GET("/health", deps.Health.Health)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Route not found"})
	})

	return r
}

// recovery converts handler panics into a logged 500. The panic value is
// only echoed to the client outside production.
func recovery(production bool) gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(nil, func(c *gin.Context, recovered any) {
		logrus.WithFields(logrus.Fields{
			"path":  c.Request.URL.Path,
			"panic": recovered,
		}).Error("handler panicked")

		message := "Internal server error"
		if !production {
			if s, ok := recovered.(string); ok {
				message = s
			} else if err, ok := recovered.(error); ok {
				message = err.Error()
			}
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": message,
		})
	})
}
