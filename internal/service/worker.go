package service

import (
	"context"
	"sync"
	"time"

	"PrivateCheck/internal/escalate"
	"PrivateCheck/internal/remind"
	"PrivateCheck/pkg/errors"
)

// WorkerService 消费端的业务入口：提醒投递和漏打卡升级都在这里落地
type WorkerService struct {
	dispatcher *escalate.Dispatcher
}

var (
	workerService *WorkerService
	workerOnce    sync.Once
)

func Worker() *WorkerService {
	workerOnce.Do(func() {
		workerService = &WorkerService{
			dispatcher: escalate.NewDispatcher(settingsRepo(), secretVault()),
		}
	})

	return workerService
}

// HandleReminderDue 提醒到期：当天已打卡则按下不表，force 用于手动测试
func (s *WorkerService) HandleReminderDue(ctx context.Context, force bool) error {
	lastDate, err := settingsRepo().LastCheckInDate(ctx)
	if err != nil {
		return errors.StoreIO
	}

	if !remind.ShouldRemind(time.Now(), lastDate, force) {
		remind.Suppress(ctx)
		return nil
	}

	return remind.Deliver(ctx)
}

// HandlePenaltyCheck 漏打卡检查：距最近打卡满三个日历日则给紧急联系人发信
func (s *WorkerService) HandlePenaltyCheck(ctx context.Context) error {
	lastDate, err := settingsRepo().LastCheckInDate(ctx)
	if err != nil {
		return errors.StoreIO
	}
	streak, err := settingsRepo().StreakDays(ctx)
	if err != nil {
		return errors.StoreIO
	}

	decision := escalate.Evaluate(time.Now(), lastDate, streak)
	return s.dispatcher.Dispatch(ctx, decision)
}
