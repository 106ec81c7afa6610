package redis

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"PrivateCheck/config"
)

var (
	client  *redis.Client
	once    sync.Once
	initErr error
)

// Init 建立 Redis 连接。设置、任务相位、幂等标记都在这一个库里。
func Init() error {
	once.Do(func() {
		cfg := config.Cfg

		client = redis.NewClient(&redis.Options{
			Addr:         cfg.RedisAddr,
			Password:     cfg.RedisPassword,
			DB:           cfg.RedisDB,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
			MinIdleConns: 5,
			MaxRetries:   3,
		})

		if cfg.TracingEnabled {
			client.AddHook(NewTracingHook(cfg.ServiceName, cfg.RedisDB))
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		initErr = client.Ping(ctx).Err()
	})

	return initErr
}

func Client() *redis.Client {
	if client == nil {
		panic("redis client not initialized")
	}
	return client
}

func Close(ctx context.Context) error {
	if client == nil {
		return nil
	}
	return client.Close()
}

// Key 按 "pcheck:a:b" 形式拼接带前缀的键名，空段跳过。
func Key(parts ...string) string {
	prefix := config.Cfg.RedisPrefix
	if prefix == "" {
		prefix = "pcheck"
	}

	var sb strings.Builder
	sb.WriteString(prefix)
	for _, part := range parts {
		if part == "" {
			continue
		}
		sb.WriteString(":")
		sb.WriteString(part)
	}

	return sb.String()
}
