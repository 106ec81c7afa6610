package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"PrivateCheck/config"
	"PrivateCheck/internal/cache"
	"PrivateCheck/internal/model"
	"PrivateCheck/pkg/errors"
	"PrivateCheck/pkg/logger"
	"PrivateCheck/pkg/metrics"
	"PrivateCheck/storage/mq"
)

// ReminderHandler 处理到期的打卡提醒
type ReminderHandler interface {
	HandleReminderDue(ctx context.Context, force bool) error
}

// PenaltyHandler 处理到期的漏打卡检查
type PenaltyHandler interface {
	HandlePenaltyCheck(ctx context.Context) error
}

var (
	reminderHandler ReminderHandler
	penaltyHandler  PenaltyHandler
)

// SetHandlers 注入业务处理器（在 worker 启动时调用）
func SetHandlers(reminder ReminderHandler, penalty PenaltyHandler) {
	reminderHandler = reminder
	penaltyHandler = penalty
}

// StartReminderConsumer 启动打卡提醒消费者
func StartReminderConsumer(ctx context.Context) error {
	handler := func(body []byte) error {
		var msg model.ReminderDueMessage
		if err := json.Unmarshal(body, &msg); err != nil {
			return fmt.Errorf("failed to unmarshal reminder due message: %w", err)
		}

		firstTime, err := cache.TryMarkMessageProcessing(ctx, msg.MessageID, 24*time.Hour)
		if err != nil {
			logger.Logger.Warn("Failed to check message processed status",
				zap.String("message_id", msg.MessageID),
				zap.Error(err),
			)
			// 检查失败时继续处理，不阻塞业务，代价是可能重复提醒
		} else if !firstTime {
			return &errors.SkipMessageError{Reason: fmt.Sprintf("Message %s already processed", msg.MessageID)}
		}

		logger.Logger.Info("Processing reminder due message",
			zap.String("message_id", msg.MessageID),
			zap.Bool("force", msg.Force),
		)

		if err := reminderHandler.HandleReminderDue(ctx, msg.Force); err != nil {
			// 提醒失败就放弃这一轮，下个周期还会再来，不值得重试风暴
			if unmarkErr := cache.UnmarkMessageProcessing(ctx, msg.MessageID); unmarkErr != nil {
				logger.Logger.Warn("Failed to unmark message",
					zap.String("message_id", msg.MessageID),
					zap.Error(unmarkErr),
				)
			}
			return &errors.SkipMessageError{Reason: fmt.Sprintf("Reminder delivery failed: %v", err)}
		}

		if err := cache.MarkMessageProcessed(ctx, msg.MessageID); err != nil {
			logger.Logger.Warn("Failed to mark message as processed",
				zap.String("message_id", msg.MessageID),
				zap.Error(err),
			)
		}

		return nil
	}

	return mq.Consume(mq.ConsumeOptions{
		Queue:         ReminderDueQueue,
		ConsumerTag:   "reminder_due_consumer",
		PrefetchCount: 1,
		Handler:       handler,
	})
}

// StartPenaltyConsumer 启动漏打卡检查消费者。
// 邮件发送失败会重回队列，重试次数封顶后放弃本轮。
func StartPenaltyConsumer(ctx context.Context) error {
	handler := func(body []byte) error {
		var msg model.PenaltyCheckMessage
		if err := json.Unmarshal(body, &msg); err != nil {
			return fmt.Errorf("failed to unmarshal penalty check message: %w", err)
		}

		firstTime, err := cache.TryMarkMessageProcessing(ctx, msg.MessageID, 24*time.Hour)
		if err != nil {
			logger.Logger.Warn("Failed to check message processed status",
				zap.String("message_id", msg.MessageID),
				zap.Error(err),
			)
		} else if !firstTime {
			return &errors.SkipMessageError{Reason: fmt.Sprintf("Message %s already processed", msg.MessageID)}
		}

		logger.Logger.Info("Processing penalty check message",
			zap.String("message_id", msg.MessageID),
		)

		if err := penaltyHandler.HandlePenaltyCheck(ctx); err != nil {
			attempts, attemptErr := cache.IncrMessageAttempt(ctx, msg.MessageID)
			if attemptErr != nil {
				logger.Logger.Warn("Failed to count message attempt",
					zap.String("message_id", msg.MessageID),
					zap.Error(attemptErr),
				)
			} else if attempts >= int64(config.Cfg.PenaltyMaxRetries) {
				logger.Logger.Error("Penalty check giving up after max attempts",
					zap.String("message_id", msg.MessageID),
					zap.Int64("attempts", attempts),
					zap.Error(err),
				)
				return &errors.SkipMessageError{
					Reason: fmt.Sprintf("Message %s exceeded %d attempts", msg.MessageID, config.Cfg.PenaltyMaxRetries),
				}
			}

			// 撤掉处理标记，等重投后再试
			metrics.RecordEmailRetry(ctx)
			if unmarkErr := cache.UnmarkMessageProcessing(ctx, msg.MessageID); unmarkErr != nil {
				logger.Logger.Warn("Failed to unmark message",
					zap.String("message_id", msg.MessageID),
					zap.Error(unmarkErr),
				)
			}
			return fmt.Errorf("penalty check failed: %w", err)
		}

		if err := cache.MarkMessageProcessed(ctx, msg.MessageID); err != nil {
			logger.Logger.Warn("Failed to mark message as processed",
				zap.String("message_id", msg.MessageID),
				zap.Error(err),
			)
		}
		if err := cache.ClearMessageAttempt(ctx, msg.MessageID); err != nil {
			logger.Logger.Warn("Failed to clear message attempt counter",
				zap.String("message_id", msg.MessageID),
				zap.Error(err),
			)
		}

		return nil
	}

	return mq.Consume(mq.ConsumeOptions{
		Queue:         PenaltyCheckQueue,
		ConsumerTag:   "penalty_check_consumer",
		PrefetchCount: 1,
		Handler:       handler,
	})
}

// StartAllConsumers 启动 worker 需要的全部消费者，每个一条 goroutine
func StartAllConsumers(ctx context.Context) {
	go func() {
		if err := StartReminderConsumer(ctx); err != nil {
			logger.Logger.Error("Reminder consumer exited", zap.Error(err))
		}
	}()
	go func() {
		if err := StartPenaltyConsumer(ctx); err != nil {
			logger.Logger.Error("Penalty consumer exited", zap.Error(err))
		}
	}()
}
