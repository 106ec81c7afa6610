package schedule

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"PrivateCheck/storage/redis"
)

// 任务的下次触发时间落在 Redis 里，进程重启后照常接续

const nextRunPrefix = "job"

func nextRunKey(jobName string) string {
	return redis.Key(nextRunPrefix, jobName, "next_run")
}

// loadNextRun 读取任务的下次触发时间，第二个返回值表示是否存在
func loadNextRun(ctx context.Context, jobName string) (time.Time, bool, error) {
	val, err := redis.Client().Get(ctx, nextRunKey(jobName)).Result()
	if err == goredis.Nil {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, fmt.Errorf("failed to load next run for %s: %w", jobName, err)
	}

	t, err := time.Parse(time.RFC3339, val)
	if err != nil {
		// 坏值当不存在处理，清掉后按初始延迟重排
		if clearErr := clearNextRun(ctx, jobName); clearErr != nil {
			return time.Time{}, false, fmt.Errorf("corrupt next run value for %s: %w", jobName, err)
		}
		return time.Time{}, false, nil
	}
	return t, true, nil
}

func saveNextRun(ctx context.Context, jobName string, at time.Time) error {
	if err := redis.Client().Set(ctx, nextRunKey(jobName), at.Format(time.RFC3339), 0).Err(); err != nil {
		return fmt.Errorf("failed to save next run for %s: %w", jobName, err)
	}
	return nil
}

func clearNextRun(ctx context.Context, jobName string) error {
	return redis.Client().Del(ctx, nextRunKey(jobName)).Err()
}
