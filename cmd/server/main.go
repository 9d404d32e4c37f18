// cmd/server/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/proglide/admin-console/internal/config"
	"github.com/proglide/admin-console/internal/housekeeping"
	"github.com/proglide/admin-console/internal/i18n"
	"github.com/proglide/admin-console/internal/logger"
	"github.com/proglide/admin-console/internal/middleware"
	"github.com/proglide/admin-console/internal/router"
	"github.com/proglide/admin-console/internal/session"
	"github.com/proglide/admin-console/internal/upstream"
	"github.com/proglide/admin-console/internal/utils"
	"github.com/proglide/admin-console/internal/workspace"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load configuration")
	}

	// Initialize logging
	logCloser, err := logger.Setup(cfg.Log)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to initialize logging")
	}
	defer logCloser.Close()

	// Initialize i18n
	if err := i18n.Initialize(cfg.I18n.DefaultLocale, os.Getenv("LOCALES_PATH")); err != nil {
		logrus.WithError(err).Fatal("Failed to initialize i18n")
	}

	// Set JWT secret
	utils.SetJWTSecret(cfg.JWT.SecretKey)

	sessions, err := session.NewManager(cfg.Admin.Email, cfg.Admin.Password, cfg.Admin.PasswordHash, cfg.SessionTTL())
	if err != nil {
		logrus.WithError(err).Fatal("Failed to initialize sessions")
	}
	workspaces := workspace.NewRegistry()
	sessions.OnTeardown(workspaces.Drop)

	loginLimiter := middleware.PerMinute(cfg.RateLimit.LoginPerMinute, cfg.RateLimit.LoginBurst)

	sched, err := housekeeping.Start(cfg.Housekeeping.Schedule, &housekeeping.Sweeper{
		Sessions:     sessions,
		Workspaces:   workspaces,
		LoginLimiter: loginLimiter,
		IdleWindow:   cfg.Housekeeping.IdleWindow(),
	})
	if err != nil {
		logrus.WithError(err).Fatal("Failed to start housekeeping")
	}

	// Set Gin mode
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize router
	r := router.Initialize(cfg, router.Deps{
		Upstream:     upstream.NewClient(cfg.Upstream.BaseURL, cfg.Upstream.RequestTimeout()),
		Sessions:     sessions,
		Workspaces:   workspaces,
		LoginLimiter: loginLimiter,
	})

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logrus.WithFields(logrus.Fields{
			"addr":     srv.Addr,
			"upstream": cfg.Upstream.BaseURL,
		}).Info("Starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.WithError(err).Fatal("Failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logrus.Info("Shutting down server...")

	<-sched.Stop().Done()

	// Create a deadline for shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logrus.WithError(err).Error("Server forced to shutdown")
		return
	}

	logrus.Info("Server exited")
}
