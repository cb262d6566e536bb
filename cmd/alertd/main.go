package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/Hades1710/ThirdWave/internal/alert"
	"github.com/Hades1710/ThirdWave/internal/api"
	"github.com/Hades1710/ThirdWave/internal/channel"
	"github.com/Hades1710/ThirdWave/internal/config"
	"github.com/Hades1710/ThirdWave/internal/events"
	"github.com/Hades1710/ThirdWave/internal/logging"
	"github.com/Hades1710/ThirdWave/internal/ratelimit"
	"github.com/Hades1710/ThirdWave/internal/recorder"
	"github.com/Hades1710/ThirdWave/internal/repository"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logging.Fatalf("Fatal while loading config: %v", err)
	}
	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	slog.Info("Server starting", "host", cfg.Server.Host, "port", cfg.Server.Port)

	db, err := repository.NewSQLiteDB(cfg.DB.Path)
	if err != nil {
		logging.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	bus := events.NewBroadcaster()

	rec := recorder.New(bus, db, 2, 64)
	rec.Start(ctx)

	rich := channel.NewRichClient(cfg.RichChannel.BaseURL, cfg.RichChannel.Timeout)
	plain := channel.NewSMTPMailer(
		cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username, cfg.SMTP.Password,
		cfg.SMTP.From, cfg.Alerts.Enabled,
	)

	dispatcher := alert.NewDispatcher(rich, plain, cfg.RichChannel.Enabled)
	limiter := ratelimit.NewWindow(cfg.RateLimit.Ceiling, cfg.RateLimit.Window)
	alerts := alert.NewService(dispatcher, limiter, cfg.Alerts.DefaultRoles, bus)

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false, // Set to false when using wildcard origins
	}))
	router.Use(api.RateLimitMiddleware(cfg.RateLimit.HTTPRPS))

	handler := api.NewHandler(alerts, db)
	handler.RegisterRoutes(router)

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler: router,
	}

	go func() {
		slog.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	cancel()
	rec.Stop()
	bus.Close()

	slog.Info("shutdown complete")
}
