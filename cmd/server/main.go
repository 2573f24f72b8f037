package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	logrus "github.com/sirupsen/logrus"

	"github.com/codeRisshi25/UrbanPulse/internal/auth"
	"github.com/codeRisshi25/UrbanPulse/internal/config"
	"github.com/codeRisshi25/UrbanPulse/internal/controllers"
	"github.com/codeRisshi25/UrbanPulse/internal/logger"
	"github.com/codeRisshi25/UrbanPulse/internal/middleware"
	"github.com/codeRisshi25/UrbanPulse/internal/routes"
	"github.com/codeRisshi25/UrbanPulse/internal/service"
	"github.com/codeRisshi25/UrbanPulse/internal/store"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}

	logger.Setup(cfg)

	if cfg.Production() {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := config.ConnectDB(cfg)
	if err != nil {
		log.Fatalf("database: %v", err)
	}

	rdb, err := config.ConnectRedis(cfg)
	if err != nil {
		// Redis only backs the throttle; the gateway runs without it.
		logrus.WithError(err).Warn("redis unavailable, throttling disabled")
		rdb = nil
	}

	users := store.NewGormUsers(db)
	hasher := auth.NewHasher(cfg.BcryptCost)
	tokens := auth.NewTokenService(cfg.JWTSecret)
	svc := service.NewAuthService(users, hasher, tokens)

	r := routes.SetupRouter(routes.Deps{
		Auth:       controllers.NewAuthController(svc),
		User:       controllers.NewUserController(svc),
		Health:     controllers.NewHealthController(db, rdb),
		Tokens:     tokens,
		Redis:      rdb,
		Production: cfg.Production(),
	})

	srv := &http.Server{
		Addr:    cfg.Host + ":" + cfg.Port,
		Handler: middleware.EnableCORS(r, cfg.CORSAllowedOrigins),
	}

	go func() {
		log.Printf("🚀 Server running at %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logrus.WithError(err).Error("server shutdown")
	}

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	if rdb != nil {
		_ = rdb.Close()
	}
}
