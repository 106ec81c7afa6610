package widget

import (
	"context"

	"go.uber.org/zap"

	"PrivateCheck/internal/queue"
	"PrivateCheck/pkg/logger"
)

// Refresher 打卡完成后的展示面刷新入口。
// 刷新失败只记日志，绝不影响打卡结果。
type Refresher interface {
	Refresh(ctx context.Context, date string, streakDays int, sameDay bool)
}

// EventRefresher 把刷新请求广播到事件交换机，订阅方（桌面部件、看板）各自更新
type EventRefresher struct{}

func NewEventRefresher() *EventRefresher {
	return &EventRefresher{}
}

func (r *EventRefresher) Refresh(ctx context.Context, date string, streakDays int, sameDay bool) {
	if err := queue.PublishCheckInEvent(date, streakDays, sameDay); err != nil {
		logger.Logger.Warn("Widget refresh broadcast failed",
			zap.String("date", date),
			zap.Error(err),
		)
	}
}

// NoopRefresher 测试和单进程场景用
type NoopRefresher struct{}

func (NoopRefresher) Refresh(ctx context.Context, date string, streakDays int, sameDay bool) {}
