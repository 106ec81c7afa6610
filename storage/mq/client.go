package mq

import (
	"context"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"

	"PrivateCheck/config"
)

var (
	conn   *amqp.Connection
	connMu sync.RWMutex
)

func Init() error {
	url := config.Cfg.GetRabbitMQURL()

	c, err := amqp.Dial(url)
	if err != nil {
		return err
	}

	connMu.Lock()
	conn = c
	connMu.Unlock()

	// 声明本服务用到的拓扑
	return declareTopology()
}

// Connection 返回当前连接
func Connection() *amqp.Connection {
	connMu.RLock()
	defer connMu.RUnlock()
	return conn
}

func Close(ctx context.Context) error {
	connMu.Lock()
	defer connMu.Unlock()

	if conn == nil {
		return nil
	}

	err := conn.Close()
	conn = nil
	return err
}

// declareTopology 声明交换机和队列：
// scheduler.topic 承载任务到期消息，events.topic 承载领域事件（部件刷新等）
func declareTopology() error {
	ch, err := conn.Channel()
	if err != nil {
		return err
	}
	defer ch.Close()

	if err := ch.ExchangeDeclare("scheduler.topic", "topic", true, false, false, false, nil); err != nil {
		return err
	}
	if err := ch.ExchangeDeclare("events.topic", "topic", true, false, false, false, nil); err != nil {
		return err
	}

	queues := []struct {
		name string
		key  string
		exch string
	}{
		{"scheduler.reminder.due", "scheduler.reminder.due", "scheduler.topic"},
		{"scheduler.penalty.check", "scheduler.penalty.check", "scheduler.topic"},
		{"events.check_in.completed", "check_in.completed", "events.topic"},
	}

	for _, q := range queues {
		if _, err := ch.QueueDeclare(q.name, true, false, false, false, nil); err != nil {
			return err
		}
		if err := ch.QueueBind(q.name, q.key, q.exch, false, nil); err != nil {
			return err
		}
	}

	return nil
}
