package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"PrivateCheck/config"
	"PrivateCheck/internal/schedule"
	"PrivateCheck/internal/service"
	"PrivateCheck/pkg/logger"
	"PrivateCheck/pkg/snowflake"
	"PrivateCheck/storage"
)

func main() {

	logger.Init()
	defer logger.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	// SIGHUP 触发任务重注册：提醒任务按当前墙钟重排，
	// 漏打卡检查保留已有排期。主机重启后的 systemd 拉起也是同一条路径。
	hupCh := make(chan os.Signal, 1)
	signal.Notify(hupCh, syscall.SIGHUP)

	go func() {
		sig := <-sigCh
		logger.Logger.Info("Scheduler received shutdown signal",
			zap.String("signal", sig.String()),
		)
		cancel()
	}()

	if err := storage.Init(); err != nil {
		logger.Logger.Fatal("Failed to initialize storage for scheduler", zap.Error(err))
	}
	defer storage.Close(context.Background())

	// 与 worker 和 server 作区分，避免 ID 冲突
	if err := snowflake.Init(config.Cfg.SnowflakeMachineID+1, config.Cfg.SnowflakeDataCenter); err != nil {
		logger.Logger.Fatal("Failed to initialize snowflake for scheduler", zap.Error(err))
	}

	// 三个进程启动时都跑一次凭证迁移，谁先起谁搬
	if err := service.RunSecurityMigration(ctx); err != nil {
		logger.Logger.Error("Security migration failed, will retry on next start", zap.Error(err))
	}

	logger.Logger.Info("Scheduler service starting",
		zap.String("service", config.Cfg.ServiceName+"-scheduler"),
		zap.String("environment", config.Cfg.Environment),
	)

	if err := schedule.RegisterDailyJobs(ctx); err != nil {
		logger.Logger.Fatal("Failed to register daily jobs", zap.Error(err))
	}

	s := schedule.GetScheduler()
	s.Start(ctx)

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-hupCh:
				logger.Logger.Info("Re-registering daily jobs on SIGHUP")
				if err := schedule.RegisterDailyJobs(ctx); err != nil {
					logger.Logger.Error("Failed to re-register daily jobs", zap.Error(err))
				}
			}
		}
	}()

	<-ctx.Done()

	s.Stop()
	logger.Logger.Info("Scheduler service shutting down gracefully")
}
