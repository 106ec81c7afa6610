package middleware

import (
	"context"
	"strings"
	"time"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/config"
	hertztracing "github.com/hertz-contrib/obs-opentelemetry/tracing"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"go.opentelemetry.io/otel/trace"
)

var (
	reqTotal    metric.Int64Counter
	reqDuration metric.Float64Histogram
	reqActive   metric.Int64UpDownCounter
)

// InitMetrics 注册 HTTP 层指标，未注册时中间件只做 trace
func InitMetrics(meter metric.Meter) error {
	var err error

	if reqTotal, err = meter.Int64Counter(
		"http.server.requests.total",
		metric.WithDescription("Total number of HTTP requests"),
		metric.WithUnit("{request}"),
	); err != nil {
		return err
	}

	if reqDuration, err = meter.Float64Histogram(
		"http.server.duration",
		metric.WithDescription("HTTP request duration"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0),
	); err != nil {
		return err
	}

	reqActive, err = meter.Int64UpDownCounter(
		"http.server.active_requests",
		metric.WithDescription("Number of active HTTP requests"),
		metric.WithUnit("{request}"),
	)
	return err
}

// 清洗用户可控字符串，非法 UTF-8 会让指标/trace 序列化失败
func toValidUTF8(val string) string {
	return strings.ToValidUTF8(val, "")
}

// OpenTelemetryMiddleware 为每个请求开 span 并记录请求量、时延、并发数
func OpenTelemetryMiddleware() app.HandlerFunc {
	tracer := otel.Tracer("hertz-server")

	return func(ctx context.Context, c *app.RequestContext) {
		start := time.Now()
		if reqActive != nil {
			reqActive.Add(ctx, 1)
			defer reqActive.Add(ctx, -1)
		}

		method := toValidUTF8(string(c.Method()))
		path := toValidUTF8(string(c.Path()))

		spanCtx, span := tracer.Start(ctx, method+" "+path, trace.WithAttributes(
			semconv.HTTPMethod(method),
			semconv.HTTPRoute(path),
			semconv.HTTPURL(toValidUTF8(c.Request.URI().String())),
		))
		defer span.End()

		if requestID := c.GetHeader("X-Request-Id"); len(requestID) > 0 {
			span.SetAttributes(attribute.String("http.request_id", toValidUTF8(string(requestID))))
		}

		c.Next(spanCtx)

		duration := time.Since(start).Seconds()
		statusCode := int(c.Response.StatusCode())

		span.SetAttributes(semconv.HTTPStatusCode(statusCode))
		switch {
		case statusCode >= 500:
			span.SetStatus(codes.Error, "HTTP error")
			if lastErr := c.Errors.Last(); lastErr != nil {
				span.RecordError(lastErr)
			}
		case statusCode >= 400:
			span.SetStatus(codes.Error, "HTTP error")
		default:
			span.SetStatus(codes.Ok, "HTTP success")
		}

		if reqTotal == nil {
			return
		}
		labels := metric.WithAttributes(
			semconv.HTTPMethod(method),
			semconv.HTTPRoute(path),
			semconv.HTTPStatusCode(statusCode),
		)
		reqTotal.Add(ctx, 1, labels)
		reqDuration.Record(ctx, duration, labels)
	}
}

// NewServerTracerConfig 生成 Hertz server 的 tracer 选项和配套中间件
func NewServerTracerConfig(opts ...hertztracing.Option) (config.Option, app.HandlerFunc) {
	tracer, cfg := hertztracing.NewServerTracer(opts...)
	return tracer, hertztracing.ServerMiddleware(cfg)
}
