package mq

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"PrivateCheck/pkg/errors"
	"PrivateCheck/pkg/logger"
)

type MessageHandler func([]byte) error

type ConsumeOptions struct {
	Queue         string
	ConsumerTag   string
	PrefetchCount int
	Handler       MessageHandler
}

// Consume 阻塞消费指定队列，直到通道关闭。手动 ack：
// 业务返回 SkipMessageError 时确认丢弃，其余错误 Nack 回队列。
func Consume(opts ConsumeOptions) error {
	conn := Connection()
	if conn == nil {
		return fmt.Errorf("rabbitmq connection is nil")
	}

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("open consume channel: %w", err)
	}
	defer ch.Close()

	if opts.PrefetchCount > 0 {
		if err := ch.Qos(opts.PrefetchCount, 0, false); err != nil {
			return fmt.Errorf("set qos: %w", err)
		}
	}

	msgs, err := ch.Consume(opts.Queue, opts.ConsumerTag, false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("register consumer: %w", err)
	}

	logger.Logger.Info("consumer started",
		zap.String("queue", opts.Queue),
		zap.String("consumer_tag", opts.ConsumerTag),
		zap.Int("prefetch_count", opts.PrefetchCount),
	)

	for msg := range msgs {
		msgCtx := extractConsumeContext(context.Background(), msg.Headers)
		start := time.Now()

		err := opts.Handler(msg.Body)
		recordConsume(msgCtx, opts.Queue, time.Since(start), err)

		switch {
		case err == nil:
			msg.Ack(false)
		case errors.IsSkipMessageError(err):
			// 重复消息或重试耗尽，确认后丢弃
			logger.Logger.Info("message skipped",
				zap.String("queue", opts.Queue),
				zap.Error(err),
			)
			msg.Ack(false)
		default:
			logger.Logger.Error("message handling failed, requeue",
				zap.String("queue", opts.Queue),
				zap.String("consumer_tag", opts.ConsumerTag),
				zap.Error(err),
			)
			msg.Nack(false, true)
		}
	}

	return nil
}
