// Package main runs the class registration HTTP API with graceful shutdown.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/classreg/backend/config"
	"github.com/classreg/backend/internal/emaillogs"
	"github.com/classreg/backend/internal/middleware"
	"github.com/classreg/backend/internal/notify"
	"github.com/classreg/backend/internal/registrations"
	"github.com/classreg/backend/internal/schedule"
	"github.com/classreg/backend/pkg/database"
	"github.com/classreg/backend/pkg/queue"
	"github.com/classreg/backend/pkg/redis"
	"github.com/classreg/backend/pkg/response"
)

func main() {
	logger := newLogger()
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("load config", zap.Error(err))
	}

	ctx := context.Background()

	// Persistence: PostgreSQL by default, in-memory when SKIP_DB_CONNECTION=true.
	var regStore registrations.Store
	var logStore emaillogs.Store
	if cfg.Database.Skip {
		logger.Warn("database disabled, using in-memory store")
		regStore = registrations.NewMemoryStore()
		logStore = emaillogs.NewMemoryStore()
	} else {
		pool, err := database.NewPostgresPool(ctx, cfg.Database.DSN(), logger)
		if err != nil {
			logger.Fatal("database", zap.Error(err))
		}
		defer pool.Close()
		if err := database.Migrate(ctx, pool); err != nil {
			logger.Fatal("migrate", zap.Error(err))
		}
		regStore = registrations.NewRepository(pool)
		logStore = emaillogs.NewRepository(pool)
	}

	// Redis backs the email resend queue; the API degrades without it.
	var jobQueue *queue.Queue
	if rdb, err := redis.NewClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, logger); err != nil {
		logger.Warn("redis unavailable, email resend disabled", zap.Error(err))
	} else {
		defer rdb.Close()
		jobQueue = queue.NewQueue(rdb.Client, logger)
	}

	sender := notify.NewLogSender(logger)
	dispatcher := notify.NewDispatcher(sender, logStore, cfg.Email, logger)

	registrationSvc := registrations.NewService(regStore, dispatcher, logger)
	registrationHandler := registrations.NewHandler(registrationSvc, logger)
	emailLogsHandler := emaillogs.NewHandler(logStore, regStore, jobQueue, logger)
	scheduleHandler := schedule.NewHandler(schedule.NewService(logger))

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.CORS(cfg.Server.CORSAllowedOrigins))
	router.Use(middleware.Logger(logger))

	// Health
	router.GET("/health", func(c *gin.Context) { response.OK(c, gin.H{"status": "ok"}) })

	v1 := router.Group("/v1")
	v1.Use(middleware.APIKey(cfg.Auth.APIKeys))
	{
		v1.POST("/registration", registrationHandler.Create)
		v1.POST("/registration/validate", registrationHandler.Validate)
		v1.GET("/registration/:registrationId", registrationHandler.GetByID)
		v1.GET("/registration/:registrationId/emails", emailLogsHandler.ListByRegistration)
		v1.POST("/registration/:registrationId/emails/resend", emailLogsHandler.Resend)
		v1.GET("/schedule", scheduleHandler.List)
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		logger.Info("server listening", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", zap.Error(err))
	}
	logger.Info("server stopped")
}

func newLogger() *zap.Logger {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	logger, _ := config.Build()
	return logger
}
