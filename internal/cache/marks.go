package cache

import (
	"context"
	"fmt"
	"time"

	"PrivateCheck/storage/redis"
)

const (
	// 用于消息幂等与重试计数，消费端处理前先打标记
	messageProcessedPrefix = "message:processed"
	messageAttemptPrefix   = "message:attempts"

	processedTTL = 48 * time.Hour
	attemptTTL   = 24 * time.Hour
)

// TryMarkMessageProcessing 尝试原子性地标记消息正在处理（使用 SETNX）
// 返回 true 表示成功标记（首次处理），false 表示已被标记（重复消息或正在处理）
func TryMarkMessageProcessing(ctx context.Context, messageID string, ttl time.Duration) (bool, error) {
	key := redis.Key(messageProcessedPrefix, messageID)
	if ttl <= 0 {
		ttl = processedTTL
	}

	result, err := redis.Client().SetNX(ctx, key, "processing", ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to mark message as processing: %w", err)
	}
	return result, nil
}

// MarkMessageProcessed 将消息标记为处理完成（成功后调用，延长幂等窗口）
func MarkMessageProcessed(ctx context.Context, messageID string) error {
	key := redis.Key(messageProcessedPrefix, messageID)
	return redis.Client().Set(ctx, key, "done", processedTTL).Err()
}

// UnmarkMessageProcessing 取消消息处理标记（处理失败时调用，允许重试）
func UnmarkMessageProcessing(ctx context.Context, messageID string) error {
	key := redis.Key(messageProcessedPrefix, messageID)
	return redis.Client().Del(ctx, key).Err()
}

// IncrMessageAttempt 递增消息的处理次数，返回递增后的值
// 用于限制惩罚检查消息的重试上限
func IncrMessageAttempt(ctx context.Context, messageID string) (int64, error) {
	key := redis.Key(messageAttemptPrefix, messageID)

	count, err := redis.Client().Incr(ctx, key).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to incr message attempt: %w", err)
	}

	if count == 1 {
		// 首次递增时设置过期，避免计数 key 常驻
		_ = redis.Client().Expire(ctx, key, attemptTTL).Err()
	}

	return count, nil
}

// ClearMessageAttempt 清除消息的重试计数（处理成功后调用）
func ClearMessageAttempt(ctx context.Context, messageID string) error {
	key := redis.Key(messageAttemptPrefix, messageID)
	return redis.Client().Del(ctx, key).Err()
}
