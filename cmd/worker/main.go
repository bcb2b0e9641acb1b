// Package main runs the email delivery worker.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/classreg/backend/config"
	"github.com/classreg/backend/internal/emaillogs"
	"github.com/classreg/backend/internal/notify"
	"github.com/classreg/backend/internal/registrations"
	"github.com/classreg/backend/internal/worker"
	"github.com/classreg/backend/pkg/database"
	"github.com/classreg/backend/pkg/queue"
	"github.com/classreg/backend/pkg/redis"
)

func main() {
	logger := newLogger()
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("load config", zap.Error(err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := database.NewPostgresPool(ctx, cfg.Database.DSN(), logger)
	if err != nil {
		logger.Fatal("database", zap.Error(err))
	}
	defer pool.Close()

	rdb, err := redis.NewClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, logger)
	if err != nil {
		logger.Fatal("redis", zap.Error(err))
	}
	defer rdb.Close()

	processor := worker.NewEmailProcessor(
		registrations.NewRepository(pool),
		notify.NewLogSender(logger),
		emaillogs.NewRepository(pool),
		queue.NewQueue(rdb.Client, logger),
		logger,
	)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		cancel()
	}()

	logger.Info("email worker started")
	processor.Run(ctx)
	logger.Info("email worker stopped")
}

func newLogger() *zap.Logger {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	logger, _ := config.Build()
	return logger
}
