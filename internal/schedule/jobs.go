package schedule

import (
	"context"
	"time"

	"PrivateCheck/config"
	"PrivateCheck/internal/model"
	"PrivateCheck/internal/queue"
)

const (
	JobDailyReminder     = "daily_reminder"
	JobDailyPenaltyCheck = "daily_penalty_check"
)

// RegisterDailyJobs 登记两条每日任务。
// 提醒任务每次注册都按墙钟时间重排，保证落在当天（或明天）的提醒时刻；
// 漏打卡检查保留已有排期，重复注册不会把 24 小时周期清零。
// 开机后和配置变更后重新调用即可。
func RegisterDailyJobs(ctx context.Context) error {
	s := GetScheduler()

	reminder := JobSpec{
		Name:   JobDailyReminder,
		Period: 24 * time.Hour,
		InitialDelay: func(now time.Time) time.Duration {
			return NextReminderDelay(now, config.Cfg.ReminderHour, config.Cfg.ReminderMinute)
		},
		Policy: PolicyReplace,
		Run: func(ctx context.Context) error {
			return queue.PublishReminderDue(model.ReminderDueMessage{})
		},
	}
	if err := s.Register(ctx, reminder); err != nil {
		return err
	}

	penalty := JobSpec{
		Name:           JobDailyPenaltyCheck,
		Period:         24 * time.Hour,
		Policy:         PolicyKeepExisting,
		RequireNetwork: true,
		Run: func(ctx context.Context) error {
			return queue.PublishPenaltyCheck(model.PenaltyCheckMessage{})
		},
	}
	return s.Register(ctx, penalty)
}
