package checkin

import (
	"context"
	"time"

	"go.uber.org/zap"

	"PrivateCheck/internal/model"
	"PrivateCheck/internal/repository"
	"PrivateCheck/internal/widget"
	"PrivateCheck/pkg/errors"
	"PrivateCheck/pkg/logger"
	"PrivateCheck/pkg/metrics"
)

// Engine 打卡状态机。连胜只看日历日，同一天重复打卡不改连胜，只追加历史。
type Engine struct {
	repo      *repository.SettingsRepository
	refresher widget.Refresher
}

func NewEngine(repo *repository.SettingsRepository, refresher widget.Refresher) *Engine {
	return &Engine{repo: repo, refresher: refresher}
}

// Result 一次打卡的结果快照
type Result struct {
	StreakDays int    `json:"streak_days"`
	Date       string `json:"date"`
	SameDay    bool   `json:"same_day"` // 当天已打过卡，本次只追加历史
}

// PerformCheckIn 执行一次打卡。
// 连胜、最近日期和历史在同一个事务里落盘，任何一步失败都不会留下半截状态。
func (e *Engine) PerformCheckIn(ctx context.Context, now time.Time) (Result, error) {
	today := now.Format(model.DateLayout)
	entry := model.HistoryEntry(today, now.Format(model.TimeLayout))

	streak, err := e.repo.StreakDays(ctx)
	if err != nil {
		return Result{}, errors.CheckInStoreFailed
	}
	lastDate, err := e.repo.LastCheckInDate(ctx)
	if err != nil {
		return Result{}, errors.CheckInStoreFailed
	}

	if lastDate == today {
		// 当天重复打卡：连胜和日期不动，历史照常追加
		if err := e.repo.AppendHistory(ctx, entry); err != nil {
			logger.Logger.Error("Failed to append check-in history",
				zap.String("date", today),
				zap.Error(err),
			)
			return Result{}, errors.CheckInStoreFailed
		}

		metrics.RecordCheckIn(ctx, streak, true)
		e.refresher.Refresh(ctx, today, streak, true)

		return Result{StreakDays: streak, Date: today, SameDay: true}, nil
	}

	newStreak := nextStreak(lastDate, streak, today)

	if err := e.repo.ApplyCheckIn(ctx, newStreak, today, entry); err != nil {
		logger.Logger.Error("Failed to apply check-in",
			zap.String("date", today),
			zap.Int("streak_days", newStreak),
			zap.Error(err),
		)
		return Result{}, errors.CheckInStoreFailed
	}

	logger.Logger.Info("Check-in completed",
		zap.String("date", today),
		zap.Int("streak_days", newStreak),
	)

	metrics.RecordCheckIn(ctx, newStreak, false)
	e.refresher.Refresh(ctx, today, newStreak, false)

	return Result{StreakDays: newStreak, Date: today, SameDay: false}, nil
}

// IsCheckedInToday 判断给定时刻所在的日历日是否已打卡
func (e *Engine) IsCheckedInToday(ctx context.Context, now time.Time) (bool, error) {
	lastDate, err := e.repo.LastCheckInDate(ctx)
	if err != nil {
		return false, errors.CheckInStoreFailed
	}
	return lastDate != "" && lastDate == now.Format(model.DateLayout), nil
}

// State 读取当前完整打卡状态
func (e *Engine) State(ctx context.Context) (model.CheckInState, error) {
	state, err := e.repo.State(ctx)
	if err != nil {
		return model.CheckInState{}, errors.CheckInStoreFailed
	}
	return state, nil
}

// nextStreak 计算昨天连到今天则 +1，否则从 1 重来。
// lastDate 为空（首次打卡）或无法解析时都按重新开始处理。
func nextStreak(lastDate string, streak int, today string) int {
	if lastDate == "" {
		return 1
	}

	last, err := time.Parse(model.DateLayout, lastDate)
	if err != nil {
		logger.Logger.Warn("Unparseable last check-in date, restarting streak",
			zap.String("last_date", lastDate),
		)
		return 1
	}

	if last.AddDate(0, 0, 1).Format(model.DateLayout) == today {
		return streak + 1
	}
	return 1
}
