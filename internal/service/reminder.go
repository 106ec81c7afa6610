package service

import (
	"context"
	"sync"

	"PrivateCheck/internal/model"
	"PrivateCheck/internal/queue"
)

type ReminderService struct{}

var (
	reminderService *ReminderService
	reminderOnce    sync.Once
)

func Reminder() *ReminderService {
	reminderOnce.Do(func() {
		reminderService = &ReminderService{}
	})

	return reminderService
}

// TriggerTest 手动触发一次测试提醒，force 绕过已打卡抑制
func (s *ReminderService) TriggerTest(ctx context.Context) error {
	return queue.PublishReminderDue(model.ReminderDueMessage{Force: true})
}
