package mq

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"PrivateCheck/pkg/logger"
)

// 发布通道单例，读多写少，只有断开时才在写锁下重建
var (
	publisherCh *amqp.Channel
	pubMutex    sync.RWMutex
)

func getPublisherChannel() (*amqp.Channel, error) {
	pubMutex.RLock()
	if publisherCh != nil && !publisherCh.IsClosed() {
		ch := publisherCh
		pubMutex.RUnlock()
		return ch, nil
	}
	pubMutex.RUnlock()

	pubMutex.Lock()
	defer pubMutex.Unlock()

	// 双检：可能别的 goroutine 已经重建好了
	if publisherCh != nil && !publisherCh.IsClosed() {
		return publisherCh, nil
	}

	conn := Connection()
	if conn == nil {
		return nil, fmt.Errorf("rabbitmq connection is nil")
	}

	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("open publish channel: %w", err)
	}
	publisherCh = ch

	go func() {
		closed := ch.NotifyClose(make(chan *amqp.Error, 1))
		<-closed

		pubMutex.Lock()
		publisherCh = nil
		pubMutex.Unlock()

		logger.Logger.Warn("publish channel closed, recreate on next publish",
			zap.String("component", "rabbitmq"),
		)
	}()

	logger.Logger.Info("publish channel ready", zap.String("component", "rabbitmq"))

	return publisherCh, nil
}

// PublishMessage 把 body 序列化为 JSON 持久化消息发往指定 exchange
func PublishMessage(exchange, routingKey string, body interface{}) error {
	ch, err := getPublisherChannel()
	if err != nil {
		return err
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		Body:         payload,
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now(),
	}

	ctx, span := startPublishSpan(context.Background(), exchange, routingKey, &msg)
	defer span.End()

	err = ch.PublishWithContext(ctx, exchange, routingKey, false, false, msg)
	recordPublish(ctx, exchange, routingKey, span, err)
	if err != nil {
		return fmt.Errorf("publish message: %w", err)
	}
	return nil
}
