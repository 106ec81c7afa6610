package remind

import (
	"context"
	"time"

	"go.uber.org/zap"

	"PrivateCheck/internal/model"
	"PrivateCheck/pkg/errors"
	"PrivateCheck/pkg/logger"
	"PrivateCheck/pkg/metrics"
	"PrivateCheck/pkg/notify"
)

const (
	reminderTitle = "今天还没报平安哦"
	reminderBody  = "是不是忘记打卡了？点我报个平安吧。"
)

// ShouldRemind 当天已打卡则抑制提醒，force 用于手动测试，无条件放行
func ShouldRemind(now time.Time, lastCheckInDate string, force bool) bool {
	if force {
		return true
	}
	return lastCheckInDate == "" || lastCheckInDate != now.Format(model.DateLayout)
}

// Deliver 投递打卡提醒通知
func Deliver(ctx context.Context) error {
	if err := notify.Client().Present(ctx, reminderTitle, reminderBody); err != nil {
		logger.Logger.Error("Reminder notification failed", zap.Error(err))
		return errors.NotifyDispatch
	}

	metrics.RecordReminder(ctx, false)
	logger.Logger.Info("Reminder notification sent")
	return nil
}

// Suppress 记录一次被抑制的提醒
func Suppress(ctx context.Context) {
	metrics.RecordReminder(ctx, true)
	logger.Logger.Debug("Reminder suppressed: already checked in today")
}
