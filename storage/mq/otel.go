package mq

import (
	"context"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"go.opentelemetry.io/otel/trace"
)

var (
	// RabbitMQ 相关指标
	mqMessagesTotal   metric.Int64Counter
	mqMessageDuration metric.Float64Histogram
	mqPublishErrors   metric.Int64Counter
	mqConsumeErrors   metric.Int64Counter
)

// InitMQMetrics 初始化 RabbitMQ 指标
func InitMQMetrics(meter metric.Meter) error {
	var err error

	mqMessagesTotal, err = meter.Int64Counter(
		"mq.messages.total",
		metric.WithDescription("Total number of RabbitMQ messages"),
		metric.WithUnit("{message}"),
	)
	if err != nil {
		return err
	}

	mqMessageDuration, err = meter.Float64Histogram(
		"mq.message.duration",
		metric.WithDescription("RabbitMQ message processing duration"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5),
	)
	if err != nil {
		return err
	}

	mqPublishErrors, err = meter.Int64Counter(
		"mq.publish.errors",
		metric.WithDescription("Number of RabbitMQ publish errors"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return err
	}

	mqConsumeErrors, err = meter.Int64Counter(
		"mq.consume.errors",
		metric.WithDescription("Number of RabbitMQ consume errors"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return err
	}

	return nil
}

// MessageHeaderCarrier 让 amqp 消息头适配 OpenTelemetry 传播接口
type MessageHeaderCarrier struct {
	Headers amqp.Table
}

func (c *MessageHeaderCarrier) Get(key string) string {
	if val, ok := c.Headers[key]; ok {
		if s, ok := val.(string); ok {
			return s
		}
	}
	return ""
}

func (c *MessageHeaderCarrier) Set(key, value string) {
	c.Headers[key] = value
}

func (c *MessageHeaderCarrier) Keys() []string {
	keys := make([]string, 0, len(c.Headers))
	for k := range c.Headers {
		keys = append(keys, k)
	}
	return keys
}

// startPublishSpan 为一次发布建 span，并把追踪上下文注入消息头
func startPublishSpan(ctx context.Context, exchange, routingKey string, msg *amqp.Publishing) (context.Context, trace.Span) {
	tracer := otel.Tracer("privatecheck.rabbitmq")

	spanName := "rabbitmq.publish"
	if exchange != "" {
		spanName = "rabbitmq.publish." + exchange
	}

	ctx, span := tracer.Start(ctx, spanName, trace.WithAttributes(
		semconv.MessagingSystem("rabbitmq"),
		attribute.String("messaging.destination.name", exchange),
		attribute.String("messaging.rabbitmq.routing_key", routingKey),
	))

	headers := make(amqp.Table)
	for k, v := range msg.Headers {
		headers[k] = v
	}
	otel.GetTextMapPropagator().Inject(ctx, &MessageHeaderCarrier{Headers: headers})
	msg.Headers = headers

	return ctx, span
}

func recordPublish(ctx context.Context, exchange, routingKey string, span trace.Span, err error) {
	labels := []attribute.KeyValue{
		attribute.String("exchange", exchange),
		attribute.String("routing_key", routingKey),
		attribute.String("direction", "publish"),
	}

	if mqMessagesTotal != nil {
		mqMessagesTotal.Add(ctx, 1, metric.WithAttributes(labels...))
	}

	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		span.RecordError(err)
		if mqPublishErrors != nil {
			mqPublishErrors.Add(ctx, 1, metric.WithAttributes(labels...))
		}
		return
	}
	span.SetStatus(codes.Ok, "published")
}

// extractConsumeContext 从消息头恢复追踪上下文
func extractConsumeContext(ctx context.Context, headers amqp.Table) context.Context {
	if headers == nil {
		return ctx
	}
	return otel.GetTextMapPropagator().Extract(ctx, &MessageHeaderCarrier{Headers: headers})
}

func recordConsume(ctx context.Context, queue string, elapsed time.Duration, err error) {
	labels := []attribute.KeyValue{
		attribute.String("queue", queue),
		attribute.String("direction", "consume"),
	}

	if mqMessagesTotal != nil {
		mqMessagesTotal.Add(ctx, 1, metric.WithAttributes(labels...))
	}
	if mqMessageDuration != nil {
		mqMessageDuration.Record(ctx, elapsed.Seconds(), metric.WithAttributes(labels...))
	}
	if err != nil && mqConsumeErrors != nil {
		mqConsumeErrors.Add(ctx, 1, metric.WithAttributes(labels...))
	}
}
