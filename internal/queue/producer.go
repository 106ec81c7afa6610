package queue

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"PrivateCheck/internal/model"
	"PrivateCheck/pkg/logger"
	"PrivateCheck/pkg/snowflake"
	"PrivateCheck/storage/mq"
)

const (
	SchedulerExchange = "scheduler.topic"
	EventsExchange    = "events.topic"

	ReminderDueRoutingKey  = "scheduler.reminder.due"
	PenaltyCheckRoutingKey = "scheduler.penalty.check"
	CheckInEventRoutingKey = "check_in.completed"

	ReminderDueQueue  = "scheduler.reminder.due"
	PenaltyCheckQueue = "scheduler.penalty.check"
	CheckInEventQueue = "events.check_in.completed"
)

// PublishReminderDue 发布提醒到期消息
func PublishReminderDue(msg model.ReminderDueMessage) error {
	if msg.MessageID == "" {
		id, err := snowflake.NextID()
		if err != nil {
			logger.Logger.Error("Failed to generate message ID", zap.Error(err))
			return fmt.Errorf("failed to generate message ID: %w", err)
		}
		msg.MessageID = fmt.Sprintf("reminder_%d", id)
	}
	if msg.ScheduledAt == "" {
		msg.ScheduledAt = time.Now().Format(time.RFC3339)
	}

	if err := mq.PublishMessage(SchedulerExchange, ReminderDueRoutingKey, msg); err != nil {
		logger.Logger.Error("Failed to publish reminder due message",
			zap.String("message_id", msg.MessageID),
			zap.Error(err),
		)
		return err
	}

	logger.Logger.Info("Published reminder due message",
		zap.String("message_id", msg.MessageID),
		zap.Bool("force", msg.Force),
	)

	return nil
}

// PublishPenaltyCheck 发布漏打卡检查消息
func PublishPenaltyCheck(msg model.PenaltyCheckMessage) error {
	if msg.MessageID == "" {
		id, err := snowflake.NextID()
		if err != nil {
			logger.Logger.Error("Failed to generate message ID", zap.Error(err))
			return fmt.Errorf("failed to generate message ID: %w", err)
		}
		msg.MessageID = fmt.Sprintf("penalty_%d", id)
	}
	if msg.ScheduledAt == "" {
		msg.ScheduledAt = time.Now().Format(time.RFC3339)
	}

	if err := mq.PublishMessage(SchedulerExchange, PenaltyCheckRoutingKey, msg); err != nil {
		logger.Logger.Error("Failed to publish penalty check message",
			zap.String("message_id", msg.MessageID),
			zap.Error(err),
		)
		return err
	}

	logger.Logger.Info("Published penalty check message",
		zap.String("message_id", msg.MessageID),
	)

	return nil
}

// PublishCheckInEvent 发布打卡完成事件，供部件刷新等订阅方消费
func PublishCheckInEvent(date string, streakDays int, sameDay bool) error {
	msg := model.EventMessage{
		EventType:  "check_in.completed",
		EventKey:   date,
		OccurredAt: time.Now().Format(time.RFC3339),
		Payload: map[string]interface{}{
			"date":        date,
			"streak_days": streakDays,
			"same_day":    sameDay,
		},
	}

	if err := mq.PublishMessage(EventsExchange, CheckInEventRoutingKey, msg); err != nil {
		logger.Logger.Error("Failed to publish check-in event",
			zap.String("date", date),
			zap.Error(err),
		)
		return err
	}

	logger.Logger.Debug("Published check-in event",
		zap.String("date", date),
		zap.Int("streak_days", streakDays),
	)

	return nil
}
