package storage

import (
	"PrivateCheck/storage/mq"
	"PrivateCheck/storage/redis"
)

// 统一 init storage 层

func Init() error {
	if err := redis.Init(); err != nil {
		return err
	}

	if err := mq.Init(); err != nil {
		return err
	}

	return nil
}
