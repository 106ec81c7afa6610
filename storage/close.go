package storage

import (
	"context"

	"github.com/cloudwego/hertz/pkg/common/hlog"

	"PrivateCheck/storage/mq"
	"PrivateCheck/storage/redis"
)

func Close(ctx context.Context) {
	if err := mq.Close(ctx); err != nil {
		hlog.Errorf("close rabbitmq failed: %v", err)
	}

	if err := redis.Close(ctx); err != nil {
		hlog.Errorf("close redis failed: %v", err)
	}
}
