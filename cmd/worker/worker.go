package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	otelapi "go.opentelemetry.io/otel"
	"go.uber.org/zap"

	"PrivateCheck/config"
	"PrivateCheck/internal/queue"
	"PrivateCheck/internal/service"
	"PrivateCheck/pkg/email"
	"PrivateCheck/pkg/logger"
	"PrivateCheck/pkg/metrics"
	"PrivateCheck/pkg/notify"
	"PrivateCheck/pkg/snowflake"
	"PrivateCheck/storage"
	"PrivateCheck/storage/mq"
)

func main() {

	logger.Init()
	defer logger.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		logger.Logger.Info("Received shutdown signal",
			zap.String("signal", sig.String()),
		)
		cancel()
	}()

	if err := storage.Init(); err != nil {
		logger.Logger.Fatal("Failed to initialize storage", zap.Error(err))
	}
	defer storage.Close(context.Background())

	if err := snowflake.Init(config.Cfg.SnowflakeMachineID+2, config.Cfg.SnowflakeDataCenter); err != nil {
		logger.Logger.Fatal("Failed to initialize snowflake", zap.Error(err))
	}

	if err := metrics.InitMetrics(); err != nil {
		logger.Logger.Warn("Failed to initialize business metrics", zap.Error(err))
	}
	if err := mq.InitMQMetrics(otelapi.Meter("privatecheck-mq")); err != nil {
		logger.Logger.Warn("Failed to initialize MQ metrics", zap.Error(err))
	}

	if err := email.Init(); err != nil {
		logger.Logger.Fatal("Failed to initialize email sender", zap.Error(err))
	}

	if err := notify.Init(); err != nil {
		logger.Logger.Warn("Failed to initialize notifier, reminders will only be logged", zap.Error(err))
	}

	// 启动前跑一次凭证迁移，保证 worker 读到的密钥在新位置
	if err := service.RunSecurityMigration(ctx); err != nil {
		logger.Logger.Error("Security migration failed, will retry on next start", zap.Error(err))
	}

	// 所有消费者共用同一个业务入口
	queue.SetHandlers(service.Worker(), service.Worker())

	logger.Logger.Info("Worker service starting",
		zap.String("service", config.Cfg.ServiceName+"-worker"),
		zap.String("environment", config.Cfg.Environment),
	)

	queue.StartAllConsumers(ctx)

	<-ctx.Done()

	logger.Logger.Info("Worker service shutting down gracefully")
}
