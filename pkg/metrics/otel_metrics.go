package metrics

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// OTelMetrics OpenTelemetry 指标集合
type OTelMetrics struct {
	// 打卡相关指标
	CheckInTotal   metric.Int64Counter
	StreakDaysLast metric.Int64Gauge

	// 告警邮件相关指标
	EmailSentTotal    metric.Int64Counter
	EmailFailedTotal  metric.Int64Counter
	EmailSendDuration metric.Float64Histogram
	EmailRetryTotal   metric.Int64Counter

	// 提醒通知相关指标
	ReminderSentTotal       metric.Int64Counter
	ReminderSuppressedTotal metric.Int64Counter
}

var (
	metrics *OTelMetrics
	meter   = otel.Meter("privatecheck")
)

// InitMetrics 初始化 OpenTelemetry 指标
func InitMetrics() error {
	var err error

	metrics = &OTelMetrics{}

	metrics.CheckInTotal, err = meter.Int64Counter(
		"check_in_total",
		metric.WithDescription("Total number of check-ins recorded"),
		metric.WithUnit("{check_in}"),
	)
	if err != nil {
		return err
	}

	metrics.StreakDaysLast, err = meter.Int64Gauge(
		"streak_days",
		metric.WithDescription("Current streak length in days"),
		metric.WithUnit("{day}"),
	)
	if err != nil {
		return err
	}

	metrics.EmailSentTotal, err = meter.Int64Counter(
		"escalation_email_sent_total",
		metric.WithDescription("Total number of escalation emails sent"),
		metric.WithUnit("{email}"),
	)
	if err != nil {
		return err
	}

	metrics.EmailFailedTotal, err = meter.Int64Counter(
		"escalation_email_failed_total",
		metric.WithDescription("Total number of escalation email send failures"),
		metric.WithUnit("{email}"),
	)
	if err != nil {
		return err
	}

	metrics.EmailSendDuration, err = meter.Float64Histogram(
		"escalation_email_send_duration_seconds",
		metric.WithDescription("Time spent sending escalation emails in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return err
	}

	metrics.EmailRetryTotal, err = meter.Int64Counter(
		"escalation_email_retry_total",
		metric.WithDescription("Total number of escalation batches requeued for retry"),
		metric.WithUnit("{batch}"),
	)
	if err != nil {
		return err
	}

	metrics.ReminderSentTotal, err = meter.Int64Counter(
		"reminder_sent_total",
		metric.WithDescription("Total number of reminder notifications sent"),
		metric.WithUnit("{reminder}"),
	)
	if err != nil {
		return err
	}

	metrics.ReminderSuppressedTotal, err = meter.Int64Counter(
		"reminder_suppressed_total",
		metric.WithDescription("Total number of reminders suppressed because today is checked in"),
		metric.WithUnit("{reminder}"),
	)
	if err != nil {
		return err
	}

	return nil
}

// RecordCheckIn 记录一次打卡
func RecordCheckIn(ctx context.Context, streakDays int, sameDay bool) {
	if metrics == nil {
		return
	}
	metrics.CheckInTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.Bool("same_day", sameDay),
	))
	metrics.StreakDaysLast.Record(ctx, int64(streakDays))
}

// RecordEmailSend 记录一次告警邮件发送结果
func RecordEmailSend(ctx context.Context, duration time.Duration, success bool) {
	if metrics == nil {
		return
	}
	if success {
		metrics.EmailSentTotal.Add(ctx, 1)
	} else {
		metrics.EmailFailedTotal.Add(ctx, 1)
	}
	metrics.EmailSendDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(
		attribute.Bool("success", success),
	))
}

// RecordEmailRetry 记录一次整批重试
func RecordEmailRetry(ctx context.Context) {
	if metrics == nil {
		return
	}
	metrics.EmailRetryTotal.Add(ctx, 1)
}

// RecordReminder 记录一次提醒结果（发送或被抑制）
func RecordReminder(ctx context.Context, suppressed bool) {
	if metrics == nil {
		return
	}
	if suppressed {
		metrics.ReminderSuppressedTotal.Add(ctx, 1)
		return
	}
	metrics.ReminderSentTotal.Add(ctx, 1)
}
