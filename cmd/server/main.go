package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	logrus "github.com/sirupsen/logrus"

	"bms/internal/config"
	"bms/internal/logger"
	"bms/internal/middleware"
	"bms/internal/routes"
	"bms/internal/services"
	"bms/internal/store"
)

func main() {
	cfg := config.Load()

	// Initialize structured logging to file
	out := logger.Setup(cfg.LogFile, cfg.LogLevel)
	gin.SetMode(gin.ReleaseMode)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Connect to the database
	db := config.InitDB(ctx, cfg, logger.GormLogger())
	svc := services.New(store.New(db))

	if cfg.SeedSampleData {
		if _, err := svc.SeedSampleData(ctx); err != nil {
			logrus.Fatalf("seeding sample data: %v", err)
		}
	}

	if cfg.JWTSecret == "" {
		logrus.Warn("JWT_SECRET not set, using development signing key")
	}
	middleware.SetSigningKey(cfg.JWTSecret, cfg.JWTTTL)

	r := routes.SetupRouter(svc, routes.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		LogWriter:      out,
	})

	srv := &http.Server{
		Addr:              "0.0.0.0:" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logrus.Infof("Server running at :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Fatalf("listen: %v", err)
		}
	}()

	<-ctx.Done()
	logrus.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("graceful shutdown failed")
	}
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
}
