package settings

import (
	"context"
	"fmt"

	goredis "github.com/redis/go-redis/v9"

	"PrivateCheck/storage/redis"
)

// RedisStore 生产环境的设置存储实现。
// Observe 通过 Redis pub/sub 广播，跨进程可见（server 写入，worker 订阅）。
type RedisStore struct {
	client *goredis.Client
}

func NewRedisStore() *RedisStore {
	return &RedisStore{client: redis.Client()}
}

func storageKey(key string) string {
	return redis.Key("settings", key)
}

func changeChannel(key string) string {
	return redis.Key("settings", "changed", key)
}

func (s *RedisStore) Get(ctx context.Context, key string) (string, error) {
	val, err := s.client.Get(ctx, storageKey(key)).Result()
	if err == goredis.Nil {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to read setting %s: %w", key, err)
	}
	return val, nil
}

func (s *RedisStore) Set(ctx context.Context, key, value string) error {
	if err := s.client.Set(ctx, storageKey(key), value, 0).Err(); err != nil {
		return fmt.Errorf("failed to write setting %s: %w", key, err)
	}
	s.client.Publish(ctx, changeChannel(key), value)
	return nil
}

func (s *RedisStore) Remove(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, storageKey(key)).Err(); err != nil {
		return fmt.Errorf("failed to remove setting %s: %w", key, err)
	}
	return nil
}

func (s *RedisStore) AddToSet(ctx context.Context, key, member string) error {
	if err := s.client.SAdd(ctx, storageKey(key), member).Err(); err != nil {
		return fmt.Errorf("failed to add to setting set %s: %w", key, err)
	}
	return nil
}

func (s *RedisStore) GetSet(ctx context.Context, key string) ([]string, error) {
	members, err := s.client.SMembers(ctx, storageKey(key)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read setting set %s: %w", key, err)
	}
	return members, nil
}

// SetBatch 用 MULTI/EXEC 提交整批写入，保证打卡的三个键要么都更新要么都不更新
func (s *RedisStore) SetBatch(ctx context.Context, values map[string]string, setAdds map[string][]string) error {
	pipe := s.client.TxPipeline()
	for key, value := range values {
		pipe.Set(ctx, storageKey(key), value, 0)
	}
	for key, members := range setAdds {
		for _, m := range members {
			pipe.SAdd(ctx, storageKey(key), m)
		}
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to commit settings batch: %w", err)
	}

	// 提交成功后再广播，订阅者不会看到未提交的值
	for key, value := range values {
		s.client.Publish(ctx, changeChannel(key), value)
	}
	return nil
}

func (s *RedisStore) Observe(ctx context.Context, key string) (<-chan string, func()) {
	out := make(chan string, 8)
	sub := s.client.Subscribe(ctx, changeChannel(key))

	obsCtx, cancel := context.WithCancel(ctx)

	go func() {
		defer close(out)

		// 先推当前值，订阅者无需单独 Get
		if current, err := s.Get(obsCtx, key); err == nil {
			select {
			case out <- current:
			case <-obsCtx.Done():
				return
			}
		}

		ch := sub.Channel()
		for {
			select {
			case <-obsCtx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				select {
				case out <- msg.Payload:
				case <-obsCtx.Done():
					return
				}
			}
		}
	}()

	return out, func() {
		cancel()
		_ = sub.Close()
	}
}
