package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// HealthController reports liveness plus reachability of the backing
// stores. Either handle may be nil; it is then reported as down.
type HealthController struct {
	db  *gorm.DB
	rdb *redis.Client
}

func NewHealthController(db *gorm.DB, rdb *redis.Client) *HealthController {
	return &HealthController{db: db, rdb: rdb}
}

func (hc *HealthController) Health(c *gin.Context) {
	dbStatus := "down"
	if hc.db != nil {
		if sqlDB, err := hc.db.DB(); err == nil && sqlDB.PingContext(c.Request.Context()) == nil {
			dbStatus = "up"
		}
	}

	redisStatus := "down"
	if hc.rdb != nil && hc.rdb.Ping(c.Request.Context()).Err() == nil {
		redisStatus = "up"
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"message":   "API Gateway is running",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"database":  dbStatus,
		"redis":     redisStatus,
	})
}
